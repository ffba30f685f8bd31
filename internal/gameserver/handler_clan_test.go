package gameserver

import (
	"testing"
	"time"

	"github.com/udisondev/slime2go/internal/model"
)

func TestInviteBook(t *testing.T) {
	book := newInviteBook()
	now := time.Now()

	if !book.offer(100, 1, 5, now) {
		t.Fatal("first offer rejected")
	}

	// Repeat offers within the cooldown window are throttled.
	if book.offer(100, 2, 6, now.Add(inviteCooldown/2)) {
		t.Error("offer accepted inside the cooldown window")
	}
	if !book.offer(100, 2, 6, now.Add(inviteCooldown+time.Second)) {
		t.Error("offer rejected after the cooldown expired")
	}

	inv, ok := book.take(100)
	if !ok {
		t.Fatal("take found no pending invite")
	}
	if inv.clanID != 2 || inv.inviterPID != 6 {
		t.Errorf("take returned clan %d from %d, want clan 2 from 6", inv.clanID, inv.inviterPID)
	}

	// take consumes the invite.
	if _, ok := book.take(100); ok {
		t.Error("invite survived take")
	}
}

func TestTakeClanProofs(t *testing.T) {
	inv := &model.Inventory{}
	inv.SetSlot(model.CategoryItem, 2, model.ItemIDProofOfNature)
	inv.SetSlot(model.CategoryItem, 5, model.ItemIDProofOfEarth)

	proofs, ok := takeClanProofs(inv)
	if !ok {
		t.Fatal("proofs not taken despite both being present")
	}
	if len(proofs) != 2 {
		t.Fatalf("took %d slots, want 2", len(proofs))
	}
	if proofs[2] != model.ItemIDProofOfNature || proofs[5] != model.ItemIDProofOfEarth {
		t.Errorf("took %v, want nature in slot 2 and earth in slot 5", proofs)
	}
	if inv.Slot(model.CategoryItem, 2) != 0 || inv.Slot(model.CategoryItem, 5) != 0 {
		t.Error("taken slots not cleared")
	}
}

func TestTakeClanProofsMissing(t *testing.T) {
	// Only one of the two proofs present: nothing may be consumed.
	inv := &model.Inventory{}
	inv.SetSlot(model.CategoryItem, 1, model.ItemIDProofOfNature)
	inv.SetSlot(model.CategoryItem, 3, 40)

	if _, ok := takeClanProofs(inv); ok {
		t.Fatal("proofs taken with proof of earth missing")
	}
	if inv.Slot(model.CategoryItem, 1) != model.ItemIDProofOfNature {
		t.Error("inventory mutated on a failed take")
	}
}

func TestInviteBookForget(t *testing.T) {
	book := newInviteBook()
	book.offer(100, 1, 5, time.Now())
	book.forget(100)
	if _, ok := book.take(100); ok {
		t.Error("invite survived forget")
	}
}

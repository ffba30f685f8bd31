package db

import (
	"context"
	"fmt"

	"github.com/udisondev/slime2go/internal/constants"
	"github.com/udisondev/slime2go/internal/model"
)

// CharacterRepository persists playable characters and their inventories.
type CharacterRepository struct {
	db *DB
}

// NewCharacterRepository creates the repository.
func NewCharacterRepository(db *DB) *CharacterRepository {
	return &CharacterRepository{db: db}
}

const characterColumns = `id, account_id, username, x, y, room_id, body_id, acs1_id, acs2_id,
	points, bank_balance, trees_planted, objects_built, quest_id, quest_step,
	has_signature, is_moderator, COALESCE(clan_id, 0)`

func scanCharacter(row interface{ Scan(...any) error }) (*model.Character, error) {
	var ch model.Character
	err := row.Scan(&ch.ID, &ch.AccountID, &ch.Username, &ch.X, &ch.Y, &ch.RoomID,
		&ch.BodyID, &ch.Acs1ID, &ch.Acs2ID, &ch.Points, &ch.BankBalance,
		&ch.TreesPlanted, &ch.ObjectsBuilt, &ch.QuestID, &ch.QuestStep,
		&ch.HasSignature, &ch.IsModerator, &ch.ClanID)
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

// GetByAccountID retrieves the character of an account.
// Returns nil, nil if none exists yet.
func (r *CharacterRepository) GetByAccountID(ctx context.Context, accountID int64) (*model.Character, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE account_id = $1`, accountID)
	ch, err := scanCharacter(row)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying character of account %d: %w", accountID, err)
	}
	return ch, nil
}

// GetByUsername retrieves a character by its name, for offline lookups.
// Returns nil, nil when no such character exists.
func (r *CharacterRepository) GetByUsername(ctx context.Context, username string) (*model.Character, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE username = $1`, username)
	ch, err := scanCharacter(row)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying character %q: %w", username, err)
	}
	return ch, nil
}

// TransferBank settles an offline transfer in one transaction: the receiver
// is credited, capped at the bank maximum, and the sender's already-debited
// balance is written alongside so neither side lands without the other.
// Returns false when the credit would overflow the receiver's cap.
func (r *CharacterRepository) TransferBank(ctx context.Context, senderID int64, senderBank uint32, receiverID int64, amount uint32) (bool, error) {
	tx, err := r.db.Pool.BeginTx(ctx, txDefault)
	if err != nil {
		return false, fmt.Errorf("beginning bank transfer: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE characters SET bank_balance = bank_balance + $1
		 WHERE id = $2 AND bank_balance + $1 <= $3`,
		amount, receiverID, constants.MaxBankBalance,
	)
	if err != nil {
		return false, fmt.Errorf("crediting bank of character %d: %w", receiverID, err)
	}
	if tag.RowsAffected() != 1 {
		return false, nil
	}
	if _, err := tx.Exec(ctx,
		`UPDATE characters SET bank_balance = $1 WHERE id = $2`,
		senderBank, senderID,
	); err != nil {
		return false, fmt.Errorf("debiting bank of character %d: %w", senderID, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("committing bank transfer: %w", err)
	}
	return true, nil
}

// Create inserts a fresh character at the spawn point, with an empty
// inventory row.
func (r *CharacterRepository) Create(ctx context.Context, accountID int64, username string) (*model.Character, error) {
	ch := &model.Character{
		AccountID: accountID,
		Username:  username,
		X:         constants.SpawnX,
		Y:         constants.SpawnY,
		RoomID:    constants.SpawnRoomID,
		BodyID:    constants.DefaultBody,
	}
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO characters (account_id, username, x, y, room_id, body_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		accountID, username, ch.X, ch.Y, ch.RoomID, ch.BodyID,
	).Scan(&ch.ID)
	if err != nil {
		return nil, fmt.Errorf("creating character %q: %w", username, err)
	}

	if _, err := r.db.Pool.Exec(ctx,
		`INSERT INTO inventories (character_id) VALUES ($1)`, ch.ID,
	); err != nil {
		return nil, fmt.Errorf("creating inventory for character %d: %w", ch.ID, err)
	}
	return ch, nil
}

// Save flushes the mutable character state back to the database.
func (r *CharacterRepository) Save(ctx context.Context, ch *model.Character) error {
	var clanID any
	if ch.ClanID != 0 {
		clanID = ch.ClanID
	}
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE characters SET
			x = $1, y = $2, room_id = $3, body_id = $4, acs1_id = $5, acs2_id = $6,
			points = $7, bank_balance = $8, trees_planted = $9, objects_built = $10,
			quest_id = $11, quest_step = $12, has_signature = $13, clan_id = $14
		 WHERE id = $15`,
		ch.X, ch.Y, ch.RoomID, ch.BodyID, ch.Acs1ID, ch.Acs2ID,
		ch.Points, ch.BankBalance, ch.TreesPlanted, ch.ObjectsBuilt,
		ch.QuestID, ch.QuestStep, ch.HasSignature, clanID, ch.ID,
	)
	if err != nil {
		return fmt.Errorf("saving character %d: %w", ch.ID, err)
	}
	return nil
}

// GetInventory loads the inventory slot arrays of a character.
func (r *CharacterRepository) GetInventory(ctx context.Context, characterID int64) (*model.Inventory, error) {
	inv := &model.Inventory{CharacterID: characterID}
	var emotes, outfits, accessories, items, tools []int16
	err := r.db.Pool.QueryRow(ctx,
		`SELECT emotes, outfits, accessories, items, tools, equipped_tool
		 FROM inventories WHERE character_id = $1`, characterID,
	).Scan(&emotes, &outfits, &accessories, &items, &tools, &inv.EquippedTool)
	if err != nil {
		if noRows(err) {
			return inv, nil
		}
		return nil, fmt.Errorf("querying inventory of character %d: %w", characterID, err)
	}
	for i := 0; i < len(emotes) && i < constants.EmoteSlots; i++ {
		inv.Emotes[i] = uint8(emotes[i])
	}
	for i := 0; i < constants.InventorySlots; i++ {
		if i < len(outfits) {
			inv.Outfits[i] = uint16(outfits[i])
		}
		if i < len(accessories) {
			inv.Accessories[i] = uint16(accessories[i])
		}
		if i < len(items) {
			inv.Items[i] = uint16(items[i])
		}
		if i < len(tools) {
			inv.Tools[i] = uint16(tools[i])
		}
	}
	return inv, nil
}

// SaveInventory flushes the slot arrays back.
func (r *CharacterRepository) SaveInventory(ctx context.Context, inv *model.Inventory) error {
	toI16 := func(arr []uint16) []int16 {
		out := make([]int16, len(arr))
		for i, v := range arr {
			out[i] = int16(v)
		}
		return out
	}
	emotes := make([]int16, constants.EmoteSlots)
	for i, v := range inv.Emotes {
		emotes[i] = int16(v)
	}
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE inventories SET
			emotes = $1, outfits = $2, accessories = $3, items = $4, tools = $5, equipped_tool = $6
		 WHERE character_id = $7`,
		emotes, toI16(inv.Outfits[:]), toI16(inv.Accessories[:]),
		toI16(inv.Items[:]), toI16(inv.Tools[:]), inv.EquippedTool, inv.CharacterID,
	)
	if err != nil {
		return fmt.Errorf("saving inventory of character %d: %w", inv.CharacterID, err)
	}
	return nil
}

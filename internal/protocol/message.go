// Package protocol implements the Slime Online 2 wire format: length-framed
// messages over TCP, an RC4-encrypted payload per frame, and the
// little-endian reader/writer the payload bodies are built from.
package protocol

// MsgType identifies a message. It is the first uint16 of every payload.
type MsgType uint16

// Message id catalog. Ids are shared between both directions: several ids
// serve as both request and response (Login carries the failure code back,
// Register carries the result code back).
const (
	MsgNewPlayer      MsgType = 1
	MsgMovePlayer     MsgType = 2
	MsgPlayerExist    MsgType = 3
	MsgSendID         MsgType = 4
	MsgChangeRoom     MsgType = 5
	MsgLogout         MsgType = 6
	MsgRegister       MsgType = 7
	MsgSendStatus     MsgType = 8
	MsgPing           MsgType = 9
	MsgLogin          MsgType = 10
	MsgPlayerLeave    MsgType = 11
	MsgAction         MsgType = 12
	MsgChangeOutfit   MsgType = 13
	MsgWarp           MsgType = 14
	MsgPosition       MsgType = 15
	MsgCreate         MsgType = 16
	MsgChat           MsgType = 17
	MsgPoint          MsgType = 18
	MsgSave           MsgType = 19
	MsgTime           MsgType = 21
	MsgMusicChange    MsgType = 22
	MsgEmote          MsgType = 23
	MsgServerClose    MsgType = 24
	MsgChangeAcc1     MsgType = 25
	MsgChangeAcc2     MsgType = 26
	MsgRoomShopInfo   MsgType = 27
	MsgShopBuy        MsgType = 28
	MsgShopBuyFail    MsgType = 29
	MsgShopStock      MsgType = 30
	MsgUseItem        MsgType = 31
	MsgCollectInfo    MsgType = 32
	MsgCollectSelf    MsgType = 33
	MsgCollectTaken   MsgType = 34
	MsgOneTimeInfo    MsgType = 35
	MsgOneTimeGone    MsgType = 36
	MsgOneTimeGet     MsgType = 37
	MsgDiscardItem    MsgType = 39
	MsgDiscardedTake  MsgType = 40
	MsgGetItem        MsgType = 41
	MsgCanMoveTrue    MsgType = 42
	MsgPlayerStop     MsgType = 43
	MsgRequestStatus  MsgType = 44
	MsgBankProcess    MsgType = 45
	MsgModAction      MsgType = 46
	MsgMailbox        MsgType = 47
	MsgItemMapSet     MsgType = 48
	MsgItemMapDestroy MsgType = 49
	MsgReturnItem     MsgType = 50
	MsgSignText       MsgType = 52
	MsgSellPrices     MsgType = 53
	MsgSell           MsgType = 54
	MsgPointsDec      MsgType = 55
	MsgStorageReq     MsgType = 56
	MsgStoragePages   MsgType = 57
	MsgStorageMove    MsgType = 58
	MsgPlantSpotFree  MsgType = 63
	MsgPlantSpotUsed  MsgType = 64
	MsgPlantDie       MsgType = 65
	MsgPlantGrow      MsgType = 66
	MsgPlantPinwheel  MsgType = 67
	MsgPlantFairy     MsgType = 68
	MsgPlantGetFruit  MsgType = 69
	MsgPlantHasFruit  MsgType = 70
	MsgGetTopPoints   MsgType = 73
	MsgTimeUpdate     MsgType = 74
	MsgGetSomething   MsgType = 75
	MsgGetWarpInfo    MsgType = 76
	MsgWarpUseSlot    MsgType = 77
	MsgMailSend       MsgType = 78
	MsgMailpaperReq   MsgType = 79
	MsgMailCheck      MsgType = 80
	MsgToolEquip      MsgType = 81
	MsgToolUnequip    MsgType = 82
	MsgQuestBegin     MsgType = 83
	MsgQuestClear     MsgType = 84
	MsgQuestStepInc   MsgType = 85
	MsgQuestCancel    MsgType = 86
	MsgQuestNpcReq    MsgType = 87
	MsgQuestVarCheck  MsgType = 88
	MsgQuestVarInc    MsgType = 89
	MsgQuestVarSet    MsgType = 90
	MsgQuestStatus    MsgType = 91
	MsgQuestReward    MsgType = 92
	MsgEmoteDice      MsgType = 93
	MsgTreePlanted    MsgType = 94
	MsgMusicList      MsgType = 95
	MsgMusicSet       MsgType = 96
	MsgPlayerThrow    MsgType = 97
	MsgCannonEnter    MsgType = 98
	MsgCannonMove     MsgType = 99
	MsgCannonPower    MsgType = 100
	MsgCannonShoot    MsgType = 101
	MsgBuildSpotFree  MsgType = 103
	MsgBuildSpotUsed  MsgType = 104
	MsgBuildSpotOpen  MsgType = 105
	MsgObjectsBuilt   MsgType = 106
	MsgUpgraderGet    MsgType = 108
	MsgUpgraderPts    MsgType = 109
	MsgUpgraderInvest MsgType = 110
	MsgUpgraderShow   MsgType = 111
	MsgUnlockable     MsgType = 112
	MsgBuyGum         MsgType = 113
	MsgBuySoda        MsgType = 114
	MsgSwitchSet      MsgType = 116
	MsgPingReq        MsgType = 117
	MsgServerTime     MsgType = 118
	MsgServerTimeRst  MsgType = 119
	MsgRaceInfo       MsgType = 120
	MsgRaceStart      MsgType = 121
	MsgRaceCheckpoint MsgType = 122
	MsgRaceEnd        MsgType = 123
	MsgMoveGetOn      MsgType = 124
	MsgMoveGetOff     MsgType = 125
	MsgClanCreate     MsgType = 126
	MsgClanDissolve   MsgType = 127
	MsgClanInvite     MsgType = 128
	MsgClanLeave      MsgType = 129
	MsgClanInfo       MsgType = 130
	MsgClanAdmin      MsgType = 131
	MsgCollectEvolve  MsgType = 132
	MsgPlayerTyping   MsgType = 133
	MsgBbsCategories  MsgType = 134
	MsgBbsGui         MsgType = 135
	MsgBbsMaxPages    MsgType = 136
	MsgBbsMessages    MsgType = 137
	MsgBbsContent     MsgType = 138
	MsgBbsReport      MsgType = 139
	MsgBbsReqPost     MsgType = 140
	MsgBbsPost        MsgType = 141
)

// holes in the id space the client never assigned
var invalidIDs = map[MsgType]struct{}{
	20: {}, 38: {}, 51: {}, 59: {}, 60: {}, 61: {}, 62: {},
	71: {}, 72: {}, 102: {}, 107: {}, 115: {},
}

// Valid reports whether t is a known message id.
func (t MsgType) Valid() bool {
	if t < MsgNewPlayer || t > MsgBbsPost {
		return false
	}
	_, hole := invalidIDs[t]
	return !hole
}

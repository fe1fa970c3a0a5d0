// Package events carries the notifications emitted on every successful state
// change, for off-chain consumers (indexers, frontends, the graduation
// operator).
package events

import (
	solanago "github.com/gagliardetto/solana-go"
)

type EventType string

const (
	TypeConfigInitialized  EventType = "config_initialized"
	TypePriceUpdated       EventType = "price_updated"
	TypeLaunchCreated      EventType = "launch_created"
	TypeSharesPurchased    EventType = "shares_purchased"
	TypeSharesSold         EventType = "shares_sold"
	TypeMarketCapUpdated   EventType = "market_cap_updated"
	TypeReadyToGraduate    EventType = "ready_to_graduate"
	TypeGraduated          EventType = "graduated"
	TypeRefundEnabled      EventType = "refund_enabled"
	TypeRefundClaimed      EventType = "refund_claimed"
	TypeRefundPushed       EventType = "refund_pushed"
	TypeTokensClaimed      EventType = "tokens_claimed"
	TypeVestingClaimed     EventType = "vesting_claimed"
	TypeCreatorFeesClaimed EventType = "creator_fees_claimed"
	TypePoked              EventType = "poked"
	TypeLaunchClosed       EventType = "launch_closed"
)

// Event is any protocol notification.
type Event interface {
	Type() EventType
}

// Publisher is the engine-facing side of the bus.
type Publisher interface {
	Publish(event Event) error
}

type ConfigInitialized struct {
	Authority       solanago.PublicKey
	MinSeedLamports uint64
}

func (ConfigInitialized) Type() EventType { return TypeConfigInitialized }

type PriceUpdated struct {
	BasePriceUSD uint64
	Timestamp    int64
}

func (PriceUpdated) Type() EventType { return TypePriceUpdated }

type LaunchCreated struct {
	LaunchID     uint64
	Launch       solanago.PublicKey
	Creator      solanago.PublicKey
	Name         string
	Symbol       string
	SeedLamports uint64
	SeedShares   uint64
	Timestamp    int64
}

func (LaunchCreated) Type() EventType { return TypeLaunchCreated }

type SharesPurchased struct {
	Launch         solanago.PublicKey
	Buyer          solanago.PublicKey
	BaseAmount     uint64
	SharesReceived uint64
	Timestamp      int64
}

func (SharesPurchased) Type() EventType { return TypeSharesPurchased }

type SharesSold struct {
	Launch       solanago.PublicKey
	Seller       solanago.PublicKey
	SharesSold   uint64
	BaseRefunded uint64
	Timestamp    int64
}

func (SharesSold) Type() EventType { return TypeSharesSold }

type MarketCapUpdated struct {
	Launch       solanago.PublicKey
	MarketCapUSD uint64
	TotalShares  uint64
	TotalBase    uint64
	Timestamp    int64
}

func (MarketCapUpdated) Type() EventType { return TypeMarketCapUpdated }

type ReadyToGraduate struct {
	Launch       solanago.PublicKey
	MarketCapUSD uint64
	ThresholdUSD uint64
	Timestamp    int64
}

func (ReadyToGraduate) Type() EventType { return TypeReadyToGraduate }

type Graduated struct {
	Launch      solanago.PublicKey
	TokenMint   solanago.PublicKey
	PoolAddress solanago.PublicKey
	LPMint      solanago.PublicKey
	BaseForLP   uint64
	TotalShares uint64
	Timestamp   int64
}

func (Graduated) Type() EventType { return TypeGraduated }

type RefundEnabled struct {
	Launch    solanago.PublicKey
	Timestamp int64
}

func (RefundEnabled) Type() EventType { return TypeRefundEnabled }

type RefundClaimed struct {
	Launch       solanago.PublicKey
	User         solanago.PublicKey
	BaseRefunded uint64
	Timestamp    int64
}

func (RefundClaimed) Type() EventType { return TypeRefundClaimed }

type RefundPushed struct {
	Launch    solanago.PublicKey
	Recipient solanago.PublicKey
	Amount    uint64
	Timestamp int64
}

func (RefundPushed) Type() EventType { return TypeRefundPushed }

type TokensClaimed struct {
	Launch        solanago.PublicKey
	User          solanago.PublicKey
	TokensClaimed uint64
	Timestamp     int64
}

func (TokensClaimed) Type() EventType { return TypeTokensClaimed }

type VestingClaimed struct {
	Launch          solanago.PublicKey
	User            solanago.PublicKey
	SharesUnlocked  uint64
	RemainingLocked uint64
	Timestamp       int64
}

func (VestingClaimed) Type() EventType { return TypeVestingClaimed }

type CreatorFeesClaimed struct {
	Launch    solanago.PublicKey
	Creator   solanago.PublicKey
	Amount    uint64
	Timestamp int64
}

func (CreatorFeesClaimed) Type() EventType { return TypeCreatorFeesClaimed }

type Poked struct {
	Vault          solanago.PublicKey
	Caller         solanago.PublicKey
	TotalYield     uint64
	CallerReward   uint64
	CreatorReward  uint64
	ProtocolReward uint64
	Compounded     uint64
	Timestamp      int64
}

func (Poked) Type() EventType { return TypePoked }

type LaunchClosed struct {
	Launch    solanago.PublicKey
	Caller    solanago.PublicKey
	Timestamp int64
}

func (LaunchClosed) Type() EventType { return TypeLaunchClosed }

package state

import (
	solanago "github.com/gagliardetto/solana-go"
)

// CreatorStats accumulates per-creator lifetime metrics. Created lazily on a
// creator's first launch and never destroyed. A single prior graduation is the
// sole determinant of the verified fee tier.
type CreatorStats struct {
	Creator         solanago.PublicKey
	GraduatedCount  uint64
	TotalFeesEarned uint64
	TotalLaunches   uint64
}

// IsVerified reports whether the creator has at least one graduation.
func (s *CreatorStats) IsVerified() bool {
	return s.GraduatedCount > 0
}

// CreatorFeeBps returns the creator's fee rate for the current tier.
func (s *CreatorStats) CreatorFeeBps() uint64 {
	if s.IsVerified() {
		return CreatorFeeVerifiedBps
	}
	return CreatorFeeUnverifiedBps
}

func (s *CreatorStats) RecordLaunch() {
	s.TotalLaunches++
}

func (s *CreatorStats) RecordGraduation() {
	s.GraduatedCount++
}

// Address derives the stats record address.
func (s *CreatorStats) Address() solanago.PublicKey {
	return DeriveCreatorStatsAddress(s.Creator)
}

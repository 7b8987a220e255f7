package service

import (
	"context"

	"github.com/stellarhost/portal/internal/model"
	"github.com/stellarhost/portal/internal/repository"
)

// ReferralService exposes the referral program to its participants.
type ReferralService struct {
	referrals *repository.ReferralsRepository
}

// NewReferralService constructs a ReferralService.
func NewReferralService(repos *repository.Repositories) *ReferralService {
	return &ReferralService{referrals: repos.Referrals}
}

// Stats summarizes the caller's standing: their shareable code, how
// many signups they referred, and total commission earned.
func (s *ReferralService) Stats(ctx context.Context, user *model.User) (*model.ReferralStats, error) {
	stats, err := s.referrals.StatsByReferrer(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	stats.ReferralCode = user.ReferralCode
	return stats, nil
}

// Earnings lists the caller's referrals, credited and pending.
func (s *ReferralService) Earnings(ctx context.Context, user *model.User) ([]*model.Referral, error) {
	return s.referrals.ListByReferrer(ctx, user.ID)
}

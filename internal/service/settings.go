package service

import (
	"context"

	"github.com/stellarhost/portal/internal/model"
	"github.com/stellarhost/portal/internal/repository"
)

// SettingsService manages portal configuration rows.
type SettingsService struct {
	settings *repository.SettingsRepository
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(repos *repository.Repositories) *SettingsService {
	return &SettingsService{settings: repos.Settings}
}

// List returns settings. Unauthenticated and customer callers only see
// public rows; admins see everything.
func (s *SettingsService) List(ctx context.Context, user *model.User) ([]*model.Setting, error) {
	publicOnly := user == nil || !user.IsAdmin()
	return s.settings.List(ctx, publicOnly)
}

// Upsert creates or replaces a setting. Admin only.
func (s *SettingsService) Upsert(ctx context.Context, key, value string, isPublic bool) (*model.Setting, error) {
	return s.settings.Upsert(ctx, key, value, isPublic)
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stellarhost/portal/internal/model"
)

// SettingsRepository persists key-value configuration rows.
type SettingsRepository struct {
	db Querier
}

// NewSettingsRepository constructs a SettingsRepository over db.
func NewSettingsRepository(db Querier) *SettingsRepository {
	return &SettingsRepository{db: db}
}

const settingColumns = `key, value, is_public, updated_at`

func scanSetting(row pgx.Row) (*model.Setting, error) {
	var s model.Setting
	err := row.Scan(&s.Key, &s.Value, &s.IsPublic, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Get fetches one setting by key.
func (r *SettingsRepository) Get(ctx context.Context, key string) (*model.Setting, error) {
	row := r.db.QueryRow(ctx, `select `+settingColumns+` from settings where key = $1`, key)
	setting, err := scanSetting(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("table:settings: %w", err)
	}
	return setting, err
}

// List returns settings ordered by key. When publicOnly is set, only
// rows flagged public are returned.
func (r *SettingsRepository) List(ctx context.Context, publicOnly bool) ([]*model.Setting, error) {
	query := `select ` + settingColumns + ` from settings`
	if publicOnly {
		query += ` where is_public`
	}
	query += ` order by key`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []*model.Setting
	for rows.Next() {
		setting, err := scanSetting(rows)
		if err != nil {
			return nil, err
		}
		settings = append(settings, setting)
	}
	return settings, rows.Err()
}

// Upsert writes a setting, inserting or replacing by key.
func (r *SettingsRepository) Upsert(ctx context.Context, key, value string, isPublic bool) (*model.Setting, error) {
	row := r.db.QueryRow(ctx, `
		insert into settings (key, value, is_public, updated_at)
		values ($1, $2, $3, now())
		on conflict (key) do update
			set value = excluded.value, is_public = excluded.is_public, updated_at = now()
		returning `+settingColumns,
		key, value, isPublic,
	)
	return scanSetting(row)
}

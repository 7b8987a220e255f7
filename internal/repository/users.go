package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stellarhost/portal/internal/model"
)

// UsersRepository persists portal accounts.
type UsersRepository struct {
	db Querier
}

// NewUsersRepository constructs a UsersRepository over db.
func NewUsersRepository(db Querier) *UsersRepository {
	return &UsersRepository{db: db}
}

const userColumns = `id, email, password_hash, full_name, phone, role,
	referral_code, referred_by, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Phone, &u.Role,
		&u.ReferralCode, &u.ReferredBy, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new account. A duplicate email surfaces as a
// unique violation from the database, never as a pre-check here, so
// concurrent registrations race safely.
func (r *UsersRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	row := r.db.QueryRow(ctx, `
		insert into users (email, password_hash, full_name, phone, role, referral_code, referred_by)
		values ($1, $2, $3, $4, $5, $6, $7)
		returning `+userColumns,
		u.Email, u.PasswordHash, u.FullName, u.Phone, u.Role, u.ReferralCode, u.ReferredBy,
	)
	return scanUser(row)
}

// GetByID fetches an account by primary key.
func (r *UsersRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row := r.db.QueryRow(ctx, `select `+userColumns+` from users where id = $1`, id)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("table:users: %w", err)
	}
	return user, err
}

// GetByEmail fetches an account by email.
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := r.db.QueryRow(ctx, `select `+userColumns+` from users where email = $1`, email)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("table:users: %w", err)
	}
	return user, err
}

// GetByReferralCode fetches the account owning a referral code.
func (r *UsersRepository) GetByReferralCode(ctx context.Context, code string) (*model.User, error) {
	row := r.db.QueryRow(ctx, `select `+userColumns+` from users where referral_code = $1`, code)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("table:users: %w", err)
	}
	return user, err
}

// UpdateProfile updates the mutable profile fields.
func (r *UsersRepository) UpdateProfile(ctx context.Context, id int64, fullName string, phone *string) (*model.User, error) {
	row := r.db.QueryRow(ctx, `
		update users
		set full_name = $2, phone = $3, updated_at = now()
		where id = $1
		returning `+userColumns,
		id, fullName, phone,
	)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("table:users: %w", err)
	}
	return user, err
}

// Deactivate soft-deletes an account. Tokens already issued keep
// failing verification because the middleware rejects inactive users.
func (r *UsersRepository) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
		update users set is_active = false, updated_at = now() where id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("table:users: %w", pgx.ErrNoRows)
	}
	return nil
}

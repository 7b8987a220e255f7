package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/stellarhost/portal/internal/auth"
	"github.com/stellarhost/portal/internal/errs"
	"github.com/stellarhost/portal/internal/lib/job"
	"github.com/stellarhost/portal/internal/model"
	"github.com/stellarhost/portal/internal/repository"
	"github.com/stellarhost/portal/internal/server"
)

// AuthService handles registration, login and token verification.
type AuthService struct {
	users     *repository.UsersRepository
	referrals *repository.ReferralsRepository
	tokens    *auth.TokenIssuer
	job       *job.JobService
	logger    *zerolog.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(s *server.Server, repos *repository.Repositories, tokens *auth.TokenIssuer) *AuthService {
	return &AuthService{
		users:     repos.Users,
		referrals: repos.Referrals,
		tokens:    tokens,
		job:       s.Job,
		logger:    s.Logger,
	}
}

// RegisterInput is the data needed to create an account.
type RegisterInput struct {
	Email        string
	Password     string
	FullName     string
	Phone        *string
	ReferralCode string
}

// Register creates a new customer account. When a referral code is
// supplied it must belong to an existing user; a pending referral row
// is then created so the referrer earns commission on the new user's
// first payment. The welcome email is queued best-effort.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	var referrer *model.User
	if input.ReferralCode != "" {
		var err error
		referrer, err = s.users.GetByReferralCode(ctx, strings.ToUpper(input.ReferralCode))
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewBadRequestError("Invalid referral code", true, nil, nil, nil)
		}
		if err != nil {
			return nil, err
		}
	}

	passwordHash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	newUser := &model.User{
		Email:        strings.ToLower(input.Email),
		PasswordHash: passwordHash,
		FullName:     input.FullName,
		Phone:        input.Phone,
		Role:         model.RoleCustomer,
		ReferralCode: newReferralCode(),
		IsActive:     true,
	}
	if referrer != nil {
		newUser.ReferredBy = &referrer.ID
	}

	created, err := s.users.Create(ctx, newUser)
	if err != nil {
		return nil, err
	}

	if referrer != nil {
		if _, err := s.referrals.Create(ctx, referrer.ID, created.ID); err != nil {
			s.logger.Error().Err(err).
				Int64("referrer_id", referrer.ID).
				Int64("referred_id", created.ID).
				Msg("failed to record referral link")
		}
	}

	s.enqueueWelcomeEmail(created)

	return created, nil
}

// Login verifies credentials and issues a token. Unknown email and
// wrong password return the same error so accounts cannot be
// enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(email))
	if err != nil || !auth.CheckPassword(user.PasswordHash, password) {
		return "", nil, errs.NewUnauthorizedError("Invalid email or password", true)
	}

	if !user.IsActive {
		return "", nil, errs.NewUnauthorizedError("Account is deactivated", true)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Authenticate resolves a bearer token to its user. The token must be
// valid and unexpired, and the account must still exist and be active.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*model.User, error) {
	userID, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, errs.NewUnauthorizedError("Invalid or expired token", true)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, errs.NewUnauthorizedError("Account is deactivated", true)
	}

	return user, nil
}

// UpdateProfile changes the caller's display name and phone number.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, fullName string, phone *string) (*model.User, error) {
	return s.users.UpdateProfile(ctx, userID, fullName, phone)
}

// Deactivate soft-disables an account. Existing tokens stop working at
// the next request because Authenticate rejects inactive users.
func (s *AuthService) Deactivate(ctx context.Context, userID int64) error {
	return s.users.Deactivate(ctx, userID)
}

func (s *AuthService) enqueueWelcomeEmail(user *model.User) {
	firstName := user.FullName
	if i := strings.IndexByte(firstName, ' '); i > 0 {
		firstName = firstName[:i]
	}

	task, err := job.NewWelcomeEmailTask(user.Email, firstName)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to build welcome email task")
		return
	}

	if _, err := s.job.Client.Enqueue(task); err != nil {
		s.logger.Error().Err(err).Str("email", user.Email).Msg("failed to enqueue welcome email")
	}
}

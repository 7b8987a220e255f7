package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/stellarhost/portal/internal/middleware"
	"github.com/stellarhost/portal/internal/model"
	"github.com/stellarhost/portal/internal/server"
	"github.com/stellarhost/portal/internal/service"
	"github.com/stellarhost/portal/internal/validation"
)

// AuthHandler serves registration, login and profile endpoints.
type AuthHandler struct {
	Handler
	auths *service.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(s *server.Server, auths *service.AuthService) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auths:   auths,
	}
}

// RegisterRequest creates an account. ReferralCode optionally credits
// an existing user's referral program.
type RegisterRequest struct {
	Email        string  `json:"email" validate:"required,email"`
	Password     string  `json:"password" validate:"required,min=8,max=72"`
	FullName     string  `json:"full_name" validate:"required,min=2,max=100"`
	Phone        *string `json:"phone" validate:"omitempty,e164"`
	ReferralCode string  `json:"referral_code" validate:"omitempty,alphanum,len=8"`
}

func (r *RegisterRequest) Validate() error {
	return validation.Struct(r)
}

// Register creates the account and returns it.
func (h *AuthHandler) Register(c echo.Context, req *RegisterRequest) (*model.User, error) {
	return h.auths.Register(c.Request().Context(), service.RegisterInput{
		Email:        req.Email,
		Password:     req.Password,
		FullName:     req.FullName,
		Phone:        req.Phone,
		ReferralCode: req.ReferralCode,
	})
}

// LoginRequest carries credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validation.Struct(r)
}

// LoginResponse returns the bearer token and the account it belongs
// to.
type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Login verifies credentials and issues a token.
func (h *AuthHandler) Login(c echo.Context, req *LoginRequest) (*LoginResponse, error) {
	token, user, err := h.auths.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Token: token, User: user}, nil
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(c echo.Context, _ *EmptyRequest) (*model.User, error) {
	return middleware.GetUser(c), nil
}

// UpdateProfileRequest changes mutable profile fields.
type UpdateProfileRequest struct {
	FullName string  `json:"full_name" validate:"required,min=2,max=100"`
	Phone    *string `json:"phone" validate:"omitempty,e164"`
}

func (r *UpdateProfileRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateProfile updates the caller's profile.
func (h *AuthHandler) UpdateProfile(c echo.Context, req *UpdateProfileRequest) (*model.User, error) {
	user := middleware.GetUser(c)
	return h.auths.UpdateProfile(c.Request().Context(), user.ID, req.FullName, req.Phone)
}

// Deactivate disables the caller's account. Tokens stop working at the
// next request.
func (h *AuthHandler) Deactivate(c echo.Context, _ *EmptyRequest) error {
	user := middleware.GetUser(c)
	return h.auths.Deactivate(c.Request().Context(), user.ID)
}

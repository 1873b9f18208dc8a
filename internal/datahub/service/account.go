package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pmn-sn/datahub/internal/datahub/domain"
	"github.com/pmn-sn/datahub/internal/datahub/store"
	"github.com/pmn-sn/datahub/pkg/cryptox"
	"github.com/pmn-sn/datahub/pkg/idx"
	"github.com/pmn-sn/datahub/pkg/jwtx"
	"github.com/pmn-sn/datahub/pkg/slogx"
)

var (
	// ErrInvalidCredentials signals a wrong email or password. It never
	// reveals whether the email exists.
	ErrInvalidCredentials = errors.New("invalid_credentials")
	// ErrAccountPending signals a self-registered account awaiting admin validation.
	ErrAccountPending = errors.New("account_pending")
	// ErrAdminAccessDenied signals a non-admin account on the admin login.
	ErrAdminAccessDenied = errors.New("admin_access_denied")
	// ErrEmailTaken signals a registration against an existing email.
	ErrEmailTaken = errors.New("email_taken")
	// ErrPasswordMismatch signals that password and confirmation differ.
	ErrPasswordMismatch = errors.New("password_mismatch")
	// ErrMissingFields signals an incomplete registration or login form.
	ErrMissingFields = errors.New("missing_fields")
)

// RegisterRequest is a Chambre de Métiers self-registration submission.
type RegisterRequest struct {
	ChambreName     string
	Region          string
	Departement     string
	Nom             string
	Prenom          string
	Fonction        string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

// Credentials is one login attempt. Email doubles as the username.
type Credentials struct {
	Email    string
	Password string
}

// AccountService handles registration, login and the activity heartbeat.
type AccountService struct {
	Store  store.Store
	Signer *jwtx.Signer
}

// Register creates a pending Chambre de Métiers account. The password
// confirmation is checked before anything is persisted, and the role is
// always the non-admin class regardless of input.
func (s *AccountService) Register(ctx context.Context, req RegisterRequest) error {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return ErrMissingFields
	}
	if req.Password != req.ConfirmPassword {
		return ErrPasswordMismatch
	}

	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	err = s.Store.Users().CreateUser(ctx, domain.UserAccount{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleChambreMetier,
		Status:       domain.StatusPending,
		Nom:          strings.TrimSpace(req.Nom),
		Prenom:       strings.TrimSpace(req.Prenom),
		Fonction:     strings.TrimSpace(req.Fonction),
		ChambreName:  strings.TrimSpace(req.ChambreName),
		Region:       strings.TrimSpace(req.Region),
		Departement:  strings.TrimSpace(req.Departement),
		Phone:        strings.TrimSpace(req.Phone),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return ErrEmailTaken
	}
	return err
}

// Authenticate validates creds and issues a session. Pending accounts never
// get a session. When adminLogin is set, only admin-class roles pass.
func (s *AccountService) Authenticate(ctx context.Context, creds Credentials, adminLogin bool) (domain.Session, error) {
	log := slogx.FromContext(ctx)

	email := normalizeEmail(creds.Email)
	if email == "" || creds.Password == "" {
		return domain.Session{}, ErrInvalidCredentials
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, ErrInvalidCredentials
		}
		return domain.Session{}, err
	}

	if err := cryptox.VerifyPassword(creds.Password, user.PasswordHash); err != nil {
		return domain.Session{}, ErrInvalidCredentials
	}

	if user.Status == domain.StatusPending {
		log.Info("login attempt on pending account", "user_id", user.ID)
		return domain.Session{}, ErrAccountPending
	}

	if adminLogin && !domain.IsAdminRole(user.Role) {
		log.Info("admin login refused for non-admin role", "user_id", user.ID, "role", user.Role)
		return domain.Session{}, ErrAdminAccessDenied
	}

	token, err := s.Signer.Sign(jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.ID},
		Email:            user.Email,
		Role:             user.Role,
		Status:           user.Status,
		Nom:              user.Nom,
		Prenom:           user.Prenom,
		Chambre:          user.ChambreName,
		Fonction:         user.Fonction,
	})
	if err != nil {
		return domain.Session{}, err
	}

	return domain.Session{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     user.Role,
		Status:   user.Status,
		Nom:      user.Nom,
		Prenom:   user.Prenom,
		Chambre:  user.ChambreName,
		Fonction: user.Fonction,
		Token:    token,
	}, nil
}

// TouchActivity records a heartbeat for the given email. It is best-effort:
// failures are logged, never surfaced, and unknown emails are ignored.
func (s *AccountService) TouchActivity(ctx context.Context, email string) {
	email = normalizeEmail(email)
	if email == "" {
		return
	}
	if err := s.Store.Users().TouchLastActive(ctx, email, time.Now().UTC()); err != nil {
		slogx.FromContext(ctx).Warn("activity heartbeat failed", "err", err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/pmn-sn/datahub/internal/datahub/domain"
	"github.com/pmn-sn/datahub/internal/datahub/store"
	"github.com/pmn-sn/datahub/pkg/cryptox"
	"github.com/pmn-sn/datahub/pkg/idx"
	"github.com/pmn-sn/datahub/pkg/slogx"
)

var (
	// ErrInvalidStatus rejects a status outside pending/active/refused.
	ErrInvalidStatus = errors.New("invalid_status")
	// ErrInvalidRole rejects a role assignment outside the admin classes.
	ErrInvalidRole = errors.New("invalid_role")
)

const (
	// DefaultOnlineWindow is the trailing recency window defining "online".
	DefaultOnlineWindow = 5 * time.Minute

	// userListLimit bounds dashboard account listings.
	userListLimit = 100
)

// AdminStats summarizes the dashboard header counters.
type AdminStats struct {
	TotalUsers        int `json:"totalUsers"`
	PendingValidation int `json:"pendingValidation"`
	OnlineUsers       int `json:"onlineUsers"`
}

// CreateAdminRequest creates an administrator account from the dashboard.
// Password is optional; a random one is generated when absent.
type CreateAdminRequest struct {
	Email    string
	Nom      string
	Prenom   string
	Role     string
	Password string
}

// AdminService implements the dashboard's account management operations.
// Every mutation is a single-record update with last-write-wins semantics;
// concurrent admin edits are not serialized here.
type AdminService struct {
	Store        store.Store
	OnlineWindow time.Duration
}

func (s *AdminService) onlineSince(now time.Time) time.Time {
	w := s.OnlineWindow
	if w <= 0 {
		w = DefaultOnlineWindow
	}
	return now.Add(-w)
}

// Stats returns the dashboard counters. The three counts are independent
// reads, not a snapshot.
func (s *AdminService) Stats(ctx context.Context) (AdminStats, error) {
	return readWithRetry(ctx, func(ctx context.Context) (AdminStats, error) {
		users := s.Store.Users()

		total, err := users.CountUsers(ctx)
		if err != nil {
			return AdminStats{}, err
		}
		pending, err := users.CountUsersByStatus(ctx, domain.StatusPending)
		if err != nil {
			return AdminStats{}, err
		}
		online, err := users.CountUsersActiveSince(ctx, s.onlineSince(time.Now().UTC()))
		if err != nil {
			return AdminStats{}, err
		}

		return AdminStats{
			TotalUsers:        total,
			PendingValidation: pending,
			OnlineUsers:       online,
		}, nil
	})
}

// ListUsers returns up to 100 accounts, newest first, optionally narrowed to
// pending, validated (non-pending) or recently-online accounts.
func (s *AdminService) ListUsers(ctx context.Context, filter store.UserListFilter) ([]domain.UserAccount, error) {
	switch filter {
	case store.UserFilterAll, store.UserFilterPending, store.UserFilterActive, store.UserFilterOnline:
	default:
		filter = store.UserFilterAll
	}

	return readWithRetry(ctx, func(ctx context.Context) ([]domain.UserAccount, error) {
		return s.Store.Users().ListUsers(ctx, store.UserListQuery{
			Filter:      filter,
			ActiveSince: s.onlineSince(time.Now().UTC()),
			Limit:       userListLimit,
		})
	})
}

// ListAdmins returns every admin-class account, newest first.
func (s *AdminService) ListAdmins(ctx context.Context) ([]domain.UserAccount, error) {
	return readWithRetry(ctx, func(ctx context.Context) ([]domain.UserAccount, error) {
		return s.Store.Users().ListAdmins(ctx)
	})
}

// UpdateUserStatus validates or refuses an account. Admins may toggle
// between active and refused in either direction.
func (s *AdminService) UpdateUserStatus(ctx context.Context, userID, status string) error {
	if !domain.IsValidStatus(status) {
		return ErrInvalidStatus
	}
	return s.Store.Users().UpdateUserStatus(ctx, userID, status)
}

// UpdateUserRole reassigns an account's role.
func (s *AdminService) UpdateUserRole(ctx context.Context, userID, role string) error {
	switch role {
	case domain.RoleChambreMetier, domain.RoleAdmin, domain.RoleSuperAdmin:
	default:
		return ErrInvalidRole
	}
	return s.Store.Users().UpdateUserRole(ctx, userID, role)
}

// ResetUserPassword replaces an account's password with newPassword.
func (s *AdminService) ResetUserPassword(ctx context.Context, userID, newPassword string) error {
	if newPassword == "" {
		return ErrMissingFields
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Store.Users().UpdatePasswordHash(ctx, userID, hash)
}

// CreateAdminUser creates an administrator account, already active. It
// returns the password that was set so a generated one can be handed to the
// new administrator.
func (s *AdminService) CreateAdminUser(ctx context.Context, req CreateAdminRequest) (string, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return "", ErrMissingFields
	}
	if req.Role != domain.RoleAdmin && req.Role != domain.RoleSuperAdmin {
		return "", ErrInvalidRole
	}

	password := req.Password
	if password == "" {
		var err error
		if password, err = cryptox.GeneratePassword(); err != nil {
			return "", err
		}
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	err = s.Store.Users().CreateUser(ctx, domain.UserAccount{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		Role:         req.Role,
		Status:       domain.StatusActive,
		Nom:          req.Nom,
		Prenom:       req.Prenom,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return "", ErrEmailTaken
	}
	if err != nil {
		return "", err
	}

	return password, nil
}

// SendPasswordResetEmail is a simulation: the notification is logged, never
// delivered. Real delivery is a deployment concern outside this service.
func (s *AdminService) SendPasswordResetEmail(ctx context.Context, email, newPassword string) {
	slogx.FromContext(ctx).Info("email simulation",
		"to", email,
		"subject", "Réinitialisation de mot de passe",
		"password_length", len(newPassword),
	)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pmn-sn/datahub/internal/datahub/domain"
	"github.com/pmn-sn/datahub/internal/datahub/store"
)

func TestAdminService_Stats(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	accounts := &AccountService{Store: st, Signer: newTestSigner()}
	svc := &AdminService{Store: st, OnlineWindow: DefaultOnlineWindow}
	ctx := context.Background()

	registerAccount(t, accounts, "p1@example.sn", "s3cret-pass")
	registerAccount(t, accounts, "p2@example.sn", "s3cret-pass")
	registerAccount(t, accounts, "a1@example.sn", "s3cret-pass")

	activated, err := st.Users().GetUserByEmail(ctx, "a1@example.sn")
	require.NoError(t, err)
	require.NoError(t, svc.UpdateUserStatus(ctx, activated.ID, domain.StatusActive))

	accounts.TouchActivity(ctx, "a1@example.sn")

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, stats.TotalUsers)
	require.Equal(t, 2, stats.PendingValidation)
	require.Equal(t, 1, stats.OnlineUsers)
}

func TestAdminService_ListUsers(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	accounts := &AccountService{Store: st, Signer: newTestSigner()}
	svc := &AdminService{Store: st, OnlineWindow: DefaultOnlineWindow}
	ctx := context.Background()

	registerAccount(t, accounts, "pending@example.sn", "s3cret-pass")
	registerAccount(t, accounts, "active@example.sn", "s3cret-pass")
	registerAccount(t, accounts, "refused@example.sn", "s3cret-pass")

	byEmail := func(email string) domain.UserAccount {
		u, err := st.Users().GetUserByEmail(ctx, email)
		require.NoError(t, err)
		return u
	}

	require.NoError(t, svc.UpdateUserStatus(ctx, byEmail("active@example.sn").ID, domain.StatusActive))
	require.NoError(t, svc.UpdateUserStatus(ctx, byEmail("refused@example.sn").ID, domain.StatusRefused))
	accounts.TouchActivity(ctx, "active@example.sn")

	emails := func(users []domain.UserAccount) []string {
		out := make([]string, 0, len(users))
		for _, u := range users {
			out = append(out, u.Email)
		}
		return out
	}

	t.Run("all", func(t *testing.T) {
		users, err := svc.ListUsers(ctx, store.UserFilterAll)
		require.NoError(t, err)
		require.Len(t, users, 3)
	})

	t.Run("pending", func(t *testing.T) {
		users, err := svc.ListUsers(ctx, store.UserFilterPending)
		require.NoError(t, err)
		require.Equal(t, []string{"pending@example.sn"}, emails(users))
	})

	t.Run("active includes refused accounts", func(t *testing.T) {
		// "active" means validated at least once, i.e. anything but pending.
		users, err := svc.ListUsers(ctx, store.UserFilterActive)
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"active@example.sn", "refused@example.sn"}, emails(users))
	})

	t.Run("online", func(t *testing.T) {
		users, err := svc.ListUsers(ctx, store.UserFilterOnline)
		require.NoError(t, err)
		require.Equal(t, []string{"active@example.sn"}, emails(users))
	})

	t.Run("status change moves the account across filters", func(t *testing.T) {
		pending := byEmail("pending@example.sn")
		require.NoError(t, svc.UpdateUserStatus(ctx, pending.ID, domain.StatusActive))

		users, err := svc.ListUsers(ctx, store.UserFilterPending)
		require.NoError(t, err)
		require.Empty(t, users)

		users, err = svc.ListUsers(ctx, store.UserFilterActive)
		require.NoError(t, err)
		require.Len(t, users, 3)
	})
}

func TestAdminService_UpdateUserStatus(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	accounts := &AccountService{Store: st, Signer: newTestSigner()}
	svc := &AdminService{Store: st, OnlineWindow: DefaultOnlineWindow}
	ctx := context.Background()

	registerAccount(t, accounts, "flip@example.sn", "s3cret-pass")
	user, err := st.Users().GetUserByEmail(ctx, "flip@example.sn")
	require.NoError(t, err)

	t.Run("accepts the known statuses both ways", func(t *testing.T) {
		require.NoError(t, svc.UpdateUserStatus(ctx, user.ID, domain.StatusActive))
		require.NoError(t, svc.UpdateUserStatus(ctx, user.ID, domain.StatusRefused))
		require.NoError(t, svc.UpdateUserStatus(ctx, user.ID, domain.StatusActive))

		got, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusActive, got.Status)
	})

	t.Run("rejects unknown statuses", func(t *testing.T) {
		require.ErrorIs(t, svc.UpdateUserStatus(ctx, user.ID, "banned"), ErrInvalidStatus)
	})

	t.Run("unknown user", func(t *testing.T) {
		err := svc.UpdateUserStatus(ctx, "no-such-id", domain.StatusActive)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestAdminService_UpdateUserRole(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	accounts := &AccountService{Store: st, Signer: newTestSigner()}
	svc := &AdminService{Store: st, OnlineWindow: DefaultOnlineWindow}
	ctx := context.Background()

	registerAccount(t, accounts, "promote@example.sn", "s3cret-pass")
	user, err := st.Users().GetUserByEmail(ctx, "promote@example.sn")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateUserRole(ctx, user.ID, domain.RoleAdmin))

	got, err := st.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, got.Role)

	require.ErrorIs(t, svc.UpdateUserRole(ctx, user.ID, "owner"), ErrInvalidRole)
}

func TestAdminService_CreateAdminUser(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	accounts := &AccountService{Store: st, Signer: newTestSigner()}
	svc := &AdminService{Store: st, OnlineWindow: DefaultOnlineWindow}
	ctx := context.Background()

	t.Run("created admins are active immediately", func(t *testing.T) {
		password, err := svc.CreateAdminUser(ctx, CreateAdminRequest{
			Email:    "ops@example.sn",
			Nom:      "Ops",
			Prenom:   "Team",
			Role:     domain.RoleAdmin,
			Password: "chosen-pass",
		})
		require.NoError(t, err)
		require.Equal(t, "chosen-pass", password)

		sess, err := accounts.Authenticate(ctx, Credentials{Email: "ops@example.sn", Password: "chosen-pass"}, true)
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, sess.Role)
	})

	t.Run("generates a password when none is given", func(t *testing.T) {
		password, err := svc.CreateAdminUser(ctx, CreateAdminRequest{
			Email: "gen@example.sn",
			Role:  domain.RoleSuperAdmin,
		})
		require.NoError(t, err)
		require.Len(t, password, 12)

		_, err = accounts.Authenticate(ctx, Credentials{Email: "gen@example.sn", Password: password}, true)
		require.NoError(t, err)
	})

	t.Run("rejects non-admin roles", func(t *testing.T) {
		_, err := svc.CreateAdminUser(ctx, CreateAdminRequest{
			Email: "cm@example.sn",
			Role:  domain.RoleChambreMetier,
		})
		require.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("rejects duplicate emails", func(t *testing.T) {
		_, err := svc.CreateAdminUser(ctx, CreateAdminRequest{
			Email: "ops@example.sn",
			Role:  domain.RoleAdmin,
		})
		require.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestAdminService_ResetUserPassword(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	accounts := &AccountService{Store: st, Signer: newTestSigner()}
	svc := &AdminService{Store: st, OnlineWindow: DefaultOnlineWindow}
	ctx := context.Background()

	registerAccount(t, accounts, "reset@example.sn", "old-pass")
	user, err := st.Users().GetUserByEmail(ctx, "reset@example.sn")
	require.NoError(t, err)
	require.NoError(t, svc.UpdateUserStatus(ctx, user.ID, domain.StatusActive))

	require.NoError(t, svc.ResetUserPassword(ctx, user.ID, "new-pass"))

	_, err = accounts.Authenticate(ctx, Credentials{Email: "reset@example.sn", Password: "old-pass"}, false)
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = accounts.Authenticate(ctx, Credentials{Email: "reset@example.sn", Password: "new-pass"}, false)
	require.NoError(t, err)
}

func TestAdminService_OnlineWindow(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	accounts := &AccountService{Store: st, Signer: newTestSigner()}
	svc := &AdminService{Store: st, OnlineWindow: time.Minute}
	ctx := context.Background()

	registerAccount(t, accounts, "fresh@example.sn", "s3cret-pass")
	registerAccount(t, accounts, "stale@example.sn", "s3cret-pass")

	now := time.Now().UTC()
	require.NoError(t, st.Users().TouchLastActive(ctx, "fresh@example.sn", now))
	require.NoError(t, st.Users().TouchLastActive(ctx, "stale@example.sn", now.Add(-10*time.Minute)))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, stats.OnlineUsers)

	users, err := svc.ListUsers(ctx, store.UserFilterOnline)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "fresh@example.sn", users[0].Email)
}

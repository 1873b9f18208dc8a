package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pmn-sn/datahub/internal/datahub/domain"
	datahubhttp "github.com/pmn-sn/datahub/internal/datahub/http"
	"github.com/pmn-sn/datahub/internal/datahub/service"
	"github.com/pmn-sn/datahub/internal/datahub/store"
	"github.com/pmn-sn/datahub/internal/datahub/store/drivers/sqlite"
	"github.com/pmn-sn/datahub/pkg/idx"
	"github.com/pmn-sn/datahub/pkg/jwtx"
)

type testEnv struct {
	router *datahubhttp.Router
	store  store.Store
	signer *jwtx.Signer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	secret := []byte("router-test-secret")
	signer := &jwtx.Signer{Secret: secret, Issuer: "datahub-test", TTL: time.Hour}
	verifier := &jwtx.Verifier{Secret: secret, Issuer: "datahub-test"}

	router := datahubhttp.NewRouter(verifier, "test", st, slog.New(slog.DiscardHandler))
	router.SearchService = &service.SearchService{Store: st}
	router.AccountService = &service.AccountService{Store: st, Signer: signer}
	router.AdminService = &service.AdminService{Store: st, OnlineWindow: service.DefaultOnlineWindow}
	router.ApplyRoutes()

	return &testEnv{router: router, store: st, signer: signer}
}

var clientSeq int

// do issues a request against the router. Each call uses a distinct client
// IP so the per-IP rate limits never interfere across tests.
func (e *testEnv) do(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, target, reader)
	clientSeq++
	req.RemoteAddr = fmt.Sprintf("10.9.%d.%d:4000", clientSeq/256, clientSeq%256)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func (e *testEnv) register(t *testing.T, email, password string) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"chambreName":     "Chambre de Métiers de Dakar",
		"region":          "Dakar",
		"nom":             "Ndiaye",
		"prenom":          "Fatou",
		"email":           email,
		"password":        password,
		"confirmPassword": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
}

func (e *testEnv) activate(t *testing.T, email string) domain.UserAccount {
	t.Helper()
	ctx := context.Background()
	user, err := e.store.Users().GetUserByEmail(ctx, email)
	require.NoError(t, err)
	require.NoError(t, e.store.Users().UpdateUserStatus(ctx, user.ID, domain.StatusActive))
	return user
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON[map[string]any](t, rec)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	svc := &service.AdminService{Store: e.store, OnlineWindow: service.DefaultOnlineWindow}
	_, err := e.store.Users().GetUserByEmail(ctx, "admin@example.sn")
	if err != nil {
		_, err = svc.CreateAdminUser(ctx, service.CreateAdminRequest{
			Email:    "admin@example.sn",
			Nom:      "Admin",
			Role:     domain.RoleSuperAdmin,
			Password: "admin-pass",
		})
		require.NoError(t, err)
	}

	rec := e.do(t, http.MethodPost, "/api/auth/admin/login", "", map[string]string{
		"email": "admin@example.sn", "password": "admin-pass",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON[map[string]any](t, rec)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (e *testEnv) seedArtisans(t *testing.T, n int) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := range n {
		at := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, e.store.Artisans().CreateArtisan(ctx, domain.Artisan{
			ID:        idx.NewAt(at).String(),
			Region:    "Dakar",
			Filiere:   "Textile",
			Metier:    "Couturier",
			Nom:       fmt.Sprintf("Artisan%02d", i),
			Telephone: fmt.Sprintf("7712345%02d", i),
			CreatedAt: at,
		}))
	}
}

func TestAuthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	t.Run("register then login is blocked until activation", func(t *testing.T) {
		env.register(t, "cm@example.sn", "s3cret-pass")

		rec := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "cm@example.sn", "password": "s3cret-pass",
		})
		require.Equal(t, http.StatusForbidden, rec.Code)
		body := decodeJSON[map[string]string](t, rec)
		require.Equal(t, "Votre compte est en attente de validation", body["error"])

		env.activate(t, "cm@example.sn")
		env.login(t, "cm@example.sn", "s3cret-pass")
	})

	t.Run("duplicate registration is a conflict", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
			"email": "cm@example.sn", "password": "x", "confirmPassword": "x",
		})
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("wrong password is a French 401", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "cm@example.sn", "password": "wrong",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decodeJSON[map[string]string](t, rec)
		require.Equal(t, "Email ou mot de passe incorrect", body["error"])
	})

	t.Run("admin login refuses chambre accounts", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/auth/admin/login", "", map[string]string{
			"email": "cm@example.sn", "password": "s3cret-pass",
		})
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader([]byte("{")))
		req.RemoteAddr = "10.8.0.1:4000"
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestArtisansEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.seedArtisans(t, 25)

	env.register(t, "cm@example.sn", "s3cret-pass")
	env.activate(t, "cm@example.sn")
	token := env.login(t, "cm@example.sn", "s3cret-pass")

	t.Run("requires a session", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/artisans", "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("returns the default page", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/artisans", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		page := decodeJSON[service.SearchPage](t, rec)
		require.Equal(t, 25, page.Total)
		require.Equal(t, 1, page.Page)
		require.Equal(t, 2, page.TotalPages)
		require.Len(t, page.Items, service.DefaultPageSize)
		// Newest first.
		require.Equal(t, "Artisan24", page.Items[0].Nom)
	})

	t.Run("honours paging and filter parameters", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/artisans?page=2&limit=10&region=Dakar", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		page := decodeJSON[service.SearchPage](t, rec)
		require.Equal(t, 25, page.Total)
		require.Equal(t, 2, page.Page)
		require.Equal(t, 3, page.TotalPages)
		require.Len(t, page.Items, 10)
	})

	t.Run("search parameter narrows results", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/artisans?search=Artisan07", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		page := decodeJSON[service.SearchPage](t, rec)
		require.Equal(t, 1, page.Total)
	})
}

func TestFiltersEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.seedArtisans(t, 3)

	sync := service.NewMetadataSyncService(env.store, slog.New(slog.DiscardHandler), 0)
	require.NoError(t, sync.Sync(context.Background()))

	env.register(t, "cm@example.sn", "s3cret-pass")
	env.activate(t, "cm@example.sn")
	token := env.login(t, "cm@example.sn", "s3cret-pass")

	rec := env.do(t, http.MethodGet, "/api/filters", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	opts := decodeJSON[domain.FilterOptions](t, rec)
	require.Equal(t, []string{"Dakar"}, opts.Regions)
	require.Equal(t, []string{"Textile"}, opts.Filieres)
	require.Equal(t, []string{"Couturier"}, opts.Metiers)
}

func TestActivityEndpoint(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "cm@example.sn", "s3cret-pass")
	env.activate(t, "cm@example.sn")
	token := env.login(t, "cm@example.sn", "s3cret-pass")

	rec := env.do(t, http.MethodPost, "/api/activity", token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	user, err := env.store.Users().GetUserByEmail(context.Background(), "cm@example.sn")
	require.NoError(t, err)
	require.NotNil(t, user.LastActiveAt)

	rec = env.do(t, http.MethodPost, "/api/activity", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouteCheckEndpoint(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.adminToken(t)

	t.Run("anonymous on dashboard redirects to login", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/route-check?path=/dashboard", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		decision := decodeJSON[service.RouteDecision](t, rec)
		require.False(t, decision.Allow)
		require.Equal(t, "/login", decision.Redirect)
	})

	t.Run("garbage token counts as no session", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/route-check?path=/admin", "garbage", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		decision := decodeJSON[service.RouteDecision](t, rec)
		require.Equal(t, "/admin/login", decision.Redirect)
	})

	t.Run("admin session is kept in the admin area", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/route-check?path=/dashboard", adminToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		decision := decodeJSON[service.RouteDecision](t, rec)
		require.Equal(t, "/admin", decision.Redirect)
	})

	t.Run("missing path is a 400", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/route-check", "", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAdminEndpoints(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.adminToken(t)

	env.register(t, "cm@example.sn", "s3cret-pass")
	env.activate(t, "cm@example.sn")
	userToken := env.login(t, "cm@example.sn", "s3cret-pass")

	env.register(t, "pending@example.sn", "s3cret-pass")
	pendingUser, err := env.store.Users().GetUserByEmail(context.Background(), "pending@example.sn")
	require.NoError(t, err)

	t.Run("admin routes refuse chambre sessions", func(t *testing.T) {
		for _, target := range []string{"/api/admin/stats", "/api/admin/users", "/api/admin/admins"} {
			rec := env.do(t, http.MethodGet, target, userToken, nil)
			require.Equal(t, http.StatusForbidden, rec.Code, target)
		}
	})

	t.Run("admin routes refuse anonymous requests", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/admin/stats", "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("stats", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/admin/stats", adminToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		stats := decodeJSON[service.AdminStats](t, rec)
		require.Equal(t, 3, stats.TotalUsers)
		require.Equal(t, 1, stats.PendingValidation)
	})

	t.Run("user listing with filter", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/admin/users?filter=pending", adminToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		users := decodeJSON[[]map[string]any](t, rec)
		require.Len(t, users, 1)
		require.Equal(t, "pending@example.sn", users[0]["email"])
		// The password hash never leaves the service.
		require.NotContains(t, rec.Body.String(), "argon2")
	})

	t.Run("unknown filter is a 400", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/admin/users?filter=bogus", adminToken, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("status update activates the pending account", func(t *testing.T) {
		rec := env.do(t, http.MethodPatch, "/api/admin/users/"+pendingUser.ID+"/status", adminToken,
			map[string]string{"status": "active"})
		require.Equal(t, http.StatusOK, rec.Code)

		env.login(t, "pending@example.sn", "s3cret-pass")
	})

	t.Run("status update on unknown user is a 404", func(t *testing.T) {
		rec := env.do(t, http.MethodPatch, "/api/admin/users/no-such-id/status", adminToken,
			map[string]string{"status": "active"})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid status is a 400", func(t *testing.T) {
		rec := env.do(t, http.MethodPatch, "/api/admin/users/"+pendingUser.ID+"/status", adminToken,
			map[string]string{"status": "banned"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("role update", func(t *testing.T) {
		rec := env.do(t, http.MethodPatch, "/api/admin/users/"+pendingUser.ID+"/role", adminToken,
			map[string]string{"role": "admin"})
		require.Equal(t, http.StatusOK, rec.Code)

		user, err := env.store.Users().GetUserByID(context.Background(), pendingUser.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, user.Role)
	})

	t.Run("create admin with generated password", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/admin/admins", adminToken, map[string]string{
			"email": "second@example.sn", "nom": "Second", "role": "admin",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		body := decodeJSON[map[string]string](t, rec)
		require.Len(t, body["password"], 12)

		listRec := env.do(t, http.MethodGet, "/api/admin/admins", adminToken, nil)
		require.Equal(t, http.StatusOK, listRec.Code)
		require.Contains(t, listRec.Body.String(), "second@example.sn")
	})

	t.Run("password reset", func(t *testing.T) {
		user, err := env.store.Users().GetUserByEmail(context.Background(), "cm@example.sn")
		require.NoError(t, err)

		rec := env.do(t, http.MethodPost, "/api/admin/users/"+user.ID+"/password", adminToken,
			map[string]string{"password": "brand-new-pass"})
		require.Equal(t, http.StatusOK, rec.Code)

		env.login(t, "cm@example.sn", "brand-new-pass")
	})
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = env.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"database":"ok"`)
}

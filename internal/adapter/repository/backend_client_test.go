package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stacksphere/internal/domain/entity"
	domainrepo "stacksphere/internal/domain/repository"
	"stacksphere/pkg/errors"
)

func newTestBackend(t *testing.T, handler http.HandlerFunc) *BackendClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewBackendClient(srv.URL+"/", 0)
}

func TestGetProfileForwardsTokenAndNormalizesRole(t *testing.T) {
	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user-profile/ada@example.com", r.URL.Path)
		assert.Equal(t, "Bearer id-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"email": "ada@example.com",
			"name":  "Ada",
			"role":  "Moderator",
		})
	})

	ctx := entity.WithSession(context.Background(), &entity.Session{Email: "ada@example.com", Token: "id-token"})
	user, err := NewBackendUserRepository(client).GetProfile(ctx, "ada@example.com")

	require.NoError(t, err)
	assert.Equal(t, entity.RoleModerator, user.Role)
	assert.Equal(t, entity.MembershipNone, user.Membership.Status)
}

func TestNon2xxBecomesAppError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		code   string
	}{
		{"not found", http.StatusNotFound, `{"message":"no such product"}`, "NOT_FOUND"},
		{"server error", http.StatusInternalServerError, `oops`, "BACKEND_UNAVAILABLE"},
		{"rejected", http.StatusUnprocessableEntity, `{"error":"bad tags"}`, "BACKEND_REJECTED"},
		{"quota", http.StatusForbidden, `{"upgradeRequired":true,"message":"limit reached"}`, "UPGRADE_REQUIRED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := NewBackendProductRepository(client).GetByID(context.Background(), "p1")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestTransportFailureIsBadGateway(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client := NewBackendClient(srv.URL, 0)
	_, err := NewBackendProductRepository(client).ListPending(context.Background())

	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, errors.StatusOf(err))
}

func TestCreateProductUpgradeRequiredIn2xxBody(t *testing.T) {
	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		_, _ = w.Write([]byte(`{"upgradeRequired":true,"message":"free users may submit one product"}`))
	})

	res, err := NewBackendProductRepository(client).Create(context.Background(), &entity.Product{Name: "Cursor"})
	require.NoError(t, err)
	assert.True(t, res.UpgradeRequired)
	assert.Nil(t, res.Product)
}

func TestListProductsEncodesFilter(t *testing.T) {
	featured := true
	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "ai", q.Get("search"))
		assert.Equal(t, "accepted", q.Get("status"))
		assert.Equal(t, "true", q.Get("featured"))
		assert.Equal(t, "6", q.Get("limit"))
		assert.Equal(t, "12", q.Get("offset"))
		_, _ = w.Write([]byte(`{"products":[{"_id":"p1","name":"Linear","votes":4}],"total":13}`))
	})

	products, total, err := NewBackendProductRepository(client).List(context.Background(), domainrepo.ProductFilter{
		Search:   "ai",
		Status:   entity.ProductAccepted,
		Featured: &featured,
		Limit:    6,
		Offset:   12,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(13), total)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, 4, products[0].Votes)
}

func TestPaymentRepositoryHitsPaymentHost(t *testing.T) {
	var paths []string
	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/create-payment-intent" {
			_, _ = w.Write([]byte(`{"clientSecret":"pi_123_secret_abc"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
	})

	repo := NewBackendPaymentRepository(client)
	intent, err := repo.CreateIntent(context.Background(), 9.99, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "pi_123_secret_abc", intent.ClientSecret)

	require.NoError(t, repo.Save(context.Background(), &entity.Payment{Email: "ada@example.com", Amount: 9.99}))
	assert.Equal(t, []string{"/create-payment-intent", "/payments"}, paths)
}

func TestBaseURLDropsTrailingSlash(t *testing.T) {
	assert.Equal(t, "https://api.example.com", NewBackendClient("https://api.example.com//", 0).BaseURL())
	assert.Equal(t, "https://api.example.com", NewBackendClient("https://api.example.com", 0).BaseURL())
}

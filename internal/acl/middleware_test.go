package acl

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravikiran1811/foodie-hub/internal/shared"
)

type stubAuthorizer struct {
	err     error
	lastCap Capability
	calls   int
}

func (s *stubAuthorizer) Authorize(ctx context.Context, roleID int64, cap Capability) error {
	s.calls++
	s.lastCap = cap
	return s.err
}

func guardRequest(t *testing.T, guard Guard, cap Capability, principal *shared.Principal) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	handlerRan := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerRan = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if principal != nil {
		req = req.WithContext(shared.ContextWithPrincipal(req.Context(), principal))
	}
	res := httptest.NewRecorder()
	guard.Require(cap)(next).ServeHTTP(res, req)
	return res, handlerRan
}

func TestRequireWithoutPrincipal(t *testing.T) {
	auth := &stubAuthorizer{}
	res, ran := guardRequest(t, Guard{Auth: auth}, Cap(shared.CategoryOrders, shared.ActionRead), nil)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.False(t, ran)
	assert.Zero(t, auth.calls, "engine must not be consulted without an identity")
}

func TestRequireDenied(t *testing.T) {
	cap := Cap(shared.CategoryPayments, shared.ActionRead)
	auth := &stubAuthorizer{err: &DeniedError{Capability: cap}}
	principal := &shared.Principal{ID: 7, RoleID: 2, Country: shared.CountryIndia}

	res, ran := guardRequest(t, Guard{Auth: auth}, cap, principal)

	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.False(t, ran, "denied request must never reach the handler body")
	assert.Contains(t, res.Body.String(), "PAYMENTS:READ_001")
}

func TestRequireAllowed(t *testing.T) {
	auth := &stubAuthorizer{}
	principal := &shared.Principal{ID: 7, RoleID: 2, Country: shared.CountryIndia}

	res, ran := guardRequest(t, Guard{Auth: auth}, Cap(shared.CategoryOrders, shared.ActionDelete), principal)

	assert.Equal(t, http.StatusOK, res.Code)
	assert.True(t, ran)
	require.Equal(t, 1, auth.calls)
	assert.Equal(t, Cap(shared.CategoryOrders, shared.ActionDelete), auth.lastCap)
}

func TestRequireStoreFailureDoesNotAllow(t *testing.T) {
	auth := &stubAuthorizer{err: errors.New("connection reset")}
	principal := &shared.Principal{ID: 7, RoleID: 2}

	res, ran := guardRequest(t, Guard{Auth: auth}, Cap(shared.CategoryOrders, shared.ActionRead), principal)

	assert.Equal(t, http.StatusInternalServerError, res.Code)
	assert.False(t, ran)
}

func TestRequireCountry(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	guard := Guard{}

	t.Run("missing country", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/restaurants", nil)
		req = req.WithContext(shared.ContextWithPrincipal(req.Context(), &shared.Principal{ID: 1, RoleID: 3}))
		res := httptest.NewRecorder()
		guard.RequireCountry()(next).ServeHTTP(res, req)
		assert.Equal(t, http.StatusForbidden, res.Code)
	})

	t.Run("country present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/restaurants", nil)
		req = req.WithContext(shared.ContextWithPrincipal(req.Context(), &shared.Principal{ID: 1, RoleID: 3, Country: shared.CountryIndia}))
		res := httptest.NewRecorder()
		guard.RequireCountry()(next).ServeHTTP(res, req)
		assert.Equal(t, http.StatusOK, res.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/restaurants", nil)
		res := httptest.NewRecorder()
		guard.RequireCountry()(next).ServeHTTP(res, req)
		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})
}

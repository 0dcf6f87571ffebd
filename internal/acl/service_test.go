package acl

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravikiran1811/foodie-hub/internal/shared"
)

// memStore is an in-memory entitlement store mirroring the PostgreSQL
// repository semantics closely enough for service-level tests.
type memStore struct {
	categories []Category
	actions    []Action
	roles      map[int64]Role
	links      map[[2]int64]struct{}
	grants     map[[3]int64]bool
	failWith   error
}

func newMemStore() *memStore {
	s := &memStore{
		roles:  make(map[int64]Role),
		links:  make(map[[2]int64]struct{}),
		grants: make(map[[3]int64]bool),
	}
	categories := []struct {
		id   int64
		name string
		key  string
	}{
		{1, "Dashboard", shared.CategoryDashboard},
		{2, "Orders", shared.CategoryOrders},
		{3, "Payments", shared.CategoryPayments},
		{4, "Restaurants", shared.CategoryRestaurants},
		{5, "Users", shared.CategoryUsers},
	}
	for _, c := range categories {
		s.categories = append(s.categories, Category{ID: c.id, Name: c.name, Key: c.key})
	}
	actions := []struct {
		id  int64
		key string
	}{
		{1, shared.ActionRead},
		{2, shared.ActionWrite},
		{3, shared.ActionUpdate},
		{4, shared.ActionDelete},
	}
	for _, a := range actions {
		s.actions = append(s.actions, Action{ID: a.id, Name: a.key, Key: a.key})
	}
	s.roles[1] = Role{ID: 1, Name: "ADMIN"}
	s.roles[2] = Role{ID: 2, Name: "MANAGER"}
	s.roles[3] = Role{ID: 3, Name: "MEMBER"}
	return s
}

func (s *memStore) categoryByKey(key string) (Category, bool) {
	for _, c := range s.categories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

func (s *memStore) actionByKey(key string) (Action, bool) {
	for _, a := range s.actions {
		if a.Key == key {
			return a, true
		}
	}
	return Action{}, false
}

func (s *memStore) grant(roleID int64, categoryKey, actionKey string) {
	c, ok := s.categoryByKey(categoryKey)
	if !ok {
		panic("unknown category " + categoryKey)
	}
	a, ok := s.actionByKey(actionKey)
	if !ok {
		panic("unknown action " + actionKey)
	}
	s.grants[[3]int64{roleID, c.ID, a.ID}] = true
}

func (s *memStore) GrantExists(ctx context.Context, roleID int64, categoryKey, actionKey string) (bool, error) {
	if s.failWith != nil {
		return false, s.failWith
	}
	c, ok := s.categoryByKey(categoryKey)
	if !ok {
		return false, nil
	}
	a, ok := s.actionByKey(actionKey)
	if !ok {
		return false, nil
	}
	return s.grants[[3]int64{roleID, c.ID, a.ID}], nil
}

func (s *memStore) ListRoleGrants(ctx context.Context, roleID int64) ([]Grant, error) {
	var grants []Grant
	for key, allowed := range s.grants {
		if key[0] != roleID || !allowed {
			continue
		}
		var categoryKey, actionKey string
		for _, c := range s.categories {
			if c.ID == key[1] {
				categoryKey = c.Key
			}
		}
		for _, a := range s.actions {
			if a.ID == key[2] {
				actionKey = a.Key
			}
		}
		grants = append(grants, Grant{
			RoleID:      key[0],
			CategoryID:  key[1],
			ActionID:    key[2],
			CategoryKey: categoryKey,
			ActionKey:   actionKey,
			IsAllowed:   true,
		})
	}
	sort.Slice(grants, func(i, j int) bool {
		if grants[i].CategoryKey != grants[j].CategoryKey {
			return grants[i].CategoryKey < grants[j].CategoryKey
		}
		return grants[i].ActionKey < grants[j].ActionKey
	})
	return grants, nil
}

func (s *memStore) ListCategories(ctx context.Context) ([]Category, error) {
	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memStore) ListActions(ctx context.Context) ([]Action, error) {
	out := make([]Action, len(s.actions))
	copy(out, s.actions)
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *memStore) ListRoles(ctx context.Context) ([]Role, error) {
	var out []Role
	for _, r := range s.roles {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) GetRole(ctx context.Context, id int64) (Role, error) {
	role, ok := s.roles[id]
	if !ok {
		return Role{}, ErrRoleNotFound
	}
	return role, nil
}

func (s *memStore) ReplaceGrants(ctx context.Context, roleID int64, pairs []GrantPair, actor string) (int, error) {
	if _, ok := s.roles[roleID]; !ok {
		return 0, ErrRoleNotFound
	}
	for key := range s.grants {
		if key[0] == roleID {
			delete(s.grants, key)
		}
	}
	for _, pair := range pairs {
		s.grants[[3]int64{roleID, pair.CategoryID, pair.ActionID}] = true
	}
	return len(pairs), nil
}

func (s *memStore) InsertGrant(ctx context.Context, roleID, categoryID, actionID int64, actor string) (bool, error) {
	key := [3]int64{roleID, categoryID, actionID}
	if _, ok := s.grants[key]; ok {
		return false, nil
	}
	s.grants[key] = true
	return true, nil
}

func (s *memStore) DeleteGrant(ctx context.Context, roleID, categoryID, actionID int64) (int64, error) {
	key := [3]int64{roleID, categoryID, actionID}
	if _, ok := s.grants[key]; !ok {
		return 0, nil
	}
	delete(s.grants, key)
	return 1, nil
}

func (s *memStore) ListLinks(ctx context.Context) ([]CategoryActionLink, error) {
	var links []CategoryActionLink
	for key := range s.links {
		links = append(links, CategoryActionLink{CategoryID: key[0], ActionID: key[1]})
	}
	return links, nil
}

func newTestService(store *memStore) *Service {
	return NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func seedManager(store *memStore) {
	store.grant(2, shared.CategoryOrders, shared.ActionRead)
	store.grant(2, shared.CategoryOrders, shared.ActionWrite)
	store.grant(2, shared.CategoryOrders, shared.ActionUpdate)
	store.grant(2, shared.CategoryOrders, shared.ActionDelete)
	store.grant(2, shared.CategoryRestaurants, shared.ActionRead)
	store.grant(2, shared.CategoryDashboard, shared.ActionRead)
}

func TestAuthorizeMatchesStore(t *testing.T) {
	store := newMemStore()
	seedManager(store)
	svc := newTestService(store)
	ctx := context.Background()

	err := svc.Authorize(ctx, 2, Cap(shared.CategoryOrders, shared.ActionDelete))
	require.NoError(t, err)

	err = svc.Authorize(ctx, 2, Cap(shared.CategoryPayments, shared.ActionRead))
	require.Error(t, err)
	var denied *DeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, shared.CategoryPayments, denied.Capability.Category)
	assert.Equal(t, shared.ActionRead, denied.Capability.Action)
}

func TestAuthorizeUnauthenticated(t *testing.T) {
	svc := newTestService(newMemStore())
	err := svc.Authorize(context.Background(), 0, Cap(shared.CategoryOrders, shared.ActionRead))
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthorizeStoreFailureIsNotAllow(t *testing.T) {
	store := newMemStore()
	store.failWith = errors.New("connection refused")
	svc := newTestService(store)

	err := svc.Authorize(context.Background(), 1, Cap(shared.CategoryOrders, shared.ActionRead))
	require.Error(t, err)
	var denied *DeniedError
	assert.False(t, errors.As(err, &denied), "store failure must not surface as a denial verdict")
	assert.NotErrorIs(t, err, ErrUnauthenticated)
}

func TestResolveOmitsEmptyCategories(t *testing.T) {
	store := newMemStore()
	seedManager(store)
	svc := newTestService(store)

	doc, err := svc.Resolve(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, doc, 3)
	assert.Contains(t, doc, shared.CategoryOrders)
	assert.Contains(t, doc, shared.CategoryRestaurants)
	assert.Contains(t, doc, shared.CategoryDashboard)
	assert.NotContains(t, doc, shared.CategoryPayments)
	assert.NotContains(t, doc, shared.CategoryUsers)

	orders := doc[shared.CategoryOrders]
	assert.Equal(t, shared.CategoryOrders, orders["parent"])
	assert.Equal(t, true, orders[shared.ActionDelete])
	assert.NotContains(t, orders, shared.ActionImport)
}

func TestResolveEmptyRole(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	doc, err := svc.Resolve(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, doc)
}

func TestResolveFullIsExhaustive(t *testing.T) {
	store := newMemStore()
	seedManager(store)
	svc := newTestService(store)
	ctx := context.Background()

	matrix, err := svc.ResolveFull(ctx, 2)
	require.NoError(t, err)

	assert.Equal(t, "MANAGER", matrix.Role.Name)
	require.Len(t, matrix.Permissions, len(store.categories))
	for _, c := range store.categories {
		cells, ok := matrix.Permissions[c.Key]
		require.True(t, ok, "category %s missing from matrix", c.Key)
		require.Len(t, cells, len(store.actions))
	}

	// Every cell agrees with the decision engine.
	for categoryKey, cells := range matrix.Permissions {
		for actionKey, allowed := range cells {
			granted, err := store.GrantExists(ctx, 2, categoryKey, actionKey)
			require.NoError(t, err)
			assert.Equal(t, granted, allowed, "%s/%s", categoryKey, actionKey)
		}
	}
}

func TestResolveFullUnknownRole(t *testing.T) {
	svc := newTestService(newMemStore())
	_, err := svc.ResolveFull(context.Background(), 99)
	require.ErrorIs(t, err, ErrRoleNotFound)
}

func TestReplaceGrantsIsFullReplace(t *testing.T) {
	store := newMemStore()
	seedManager(store)
	svc := newTestService(store)
	ctx := context.Background()

	// Replace MANAGER's six grants with a single PAYMENTS/READ cell.
	payments, _ := store.categoryByKey(shared.CategoryPayments)
	read, _ := store.actionByKey(shared.ActionRead)
	count, err := svc.ReplaceGrants(ctx, 2, []GrantPair{{CategoryID: payments.ID, ActionID: read.ID}}, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	matrix, err := svc.ResolveFull(ctx, 2)
	require.NoError(t, err)
	for categoryKey, cells := range matrix.Permissions {
		for actionKey, allowed := range cells {
			want := categoryKey == shared.CategoryPayments && actionKey == shared.ActionRead
			assert.Equal(t, want, allowed, "%s/%s", categoryKey, actionKey)
		}
	}
}

func TestReplaceGrantsEmptySetClearsDocument(t *testing.T) {
	store := newMemStore()
	seedManager(store)
	svc := newTestService(store)
	ctx := context.Background()

	count, err := svc.ReplaceGrants(ctx, 2, nil, 1)
	require.NoError(t, err)
	assert.Zero(t, count)

	doc, err := svc.Resolve(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, doc)
}

func TestReplaceGrantsUnknownRole(t *testing.T) {
	svc := newTestService(newMemStore())
	_, err := svc.ReplaceGrants(context.Background(), 42, nil, 1)
	require.ErrorIs(t, err, ErrRoleNotFound)
}

func TestAddGrantIdempotent(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	ctx := context.Background()

	orders, _ := store.categoryByKey(shared.CategoryOrders)
	read, _ := store.actionByKey(shared.ActionRead)

	outcome, err := svc.AddGrant(ctx, 3, orders.ID, read.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, Added, outcome)

	before, err := svc.ResolveFull(ctx, 3)
	require.NoError(t, err)

	outcome, err = svc.AddGrant(ctx, 3, orders.ID, read.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, AlreadyExists, outcome)

	after, err := svc.ResolveFull(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, before.Permissions, after.Permissions)

	// Exactly one true cell.
	trueCells := 0
	for _, cells := range after.Permissions {
		for _, allowed := range cells {
			if allowed {
				trueCells++
			}
		}
	}
	assert.Equal(t, 1, trueCells)
	assert.True(t, after.Permissions[shared.CategoryOrders][shared.ActionRead])
}

func TestRemoveGrantNotFound(t *testing.T) {
	store := newMemStore()
	seedManager(store)
	svc := newTestService(store)
	ctx := context.Background()

	before, err := svc.ResolveFull(ctx, 2)
	require.NoError(t, err)

	payments, _ := store.categoryByKey(shared.CategoryPayments)
	read, _ := store.actionByKey(shared.ActionRead)
	err = svc.RemoveGrant(ctx, 2, payments.ID, read.ID)
	require.ErrorIs(t, err, ErrGrantNotFound)

	after, err := svc.ResolveFull(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, before.Permissions, after.Permissions)
}

func TestRemoveGrantDeletesRow(t *testing.T) {
	store := newMemStore()
	seedManager(store)
	svc := newTestService(store)
	ctx := context.Background()

	orders, _ := store.categoryByKey(shared.CategoryOrders)
	del, _ := store.actionByKey(shared.ActionDelete)
	require.NoError(t, svc.RemoveGrant(ctx, 2, orders.ID, del.ID))

	err := svc.Authorize(ctx, 2, Cap(shared.CategoryOrders, shared.ActionDelete))
	var denied *DeniedError
	require.ErrorAs(t, err, &denied)
}

func TestOrphanedGrantIsStillHonored(t *testing.T) {
	// A grant whose pair has no category-action link is honored at decision
	// time; applicability is not re-checked on the hot path.
	store := newMemStore()
	store.grant(3, shared.CategoryRestaurants, shared.ActionDelete)
	svc := newTestService(store)

	err := svc.Authorize(context.Background(), 3, Cap(shared.CategoryRestaurants, shared.ActionDelete))
	require.NoError(t, err)
}

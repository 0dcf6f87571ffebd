// Package acl implements the authorization core: the entitlement store, the
// access decision engine, the permission resolver and the permission
// administration surface. Every protected operation declares a required
// Capability up front; the decision engine runs before the operation body.
package acl

import "time"

// Category is a protected resource domain, e.g. ORDERS or PAYMENTS.
// Categories are reference data provisioned at system setup.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Key         string    `json:"categoryKey"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// Action is a verb performable on a category, e.g. READ_001. Actions are
// global; they carry meaning only combined with a category.
type Action struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Key         string    `json:"actionKey"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// CategoryActionLink declares that an action is applicable to a category.
// It describes possible grants; it does not grant anything itself.
type CategoryActionLink struct {
	CategoryID int64
	ActionID   int64
}

// Role is a named permission bundle. Every user references exactly one role.
type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Grant is one entitlement row: a (role, category, action) triple. Only a
// row with IsAllowed true grants anything; absence and false both deny.
type Grant struct {
	RoleID      int64
	CategoryID  int64
	ActionID    int64
	CategoryKey string
	ActionKey   string
	IsAllowed   bool
}

// GrantPair identifies one (category, action) cell by ID, as submitted by
// the administration UI.
type GrantPair struct {
	CategoryID int64 `json:"categoryId" validate:"required,gt=0"`
	ActionID   int64 `json:"actionId" validate:"required,gt=0"`
}

// Capability is the required (category, action) pair a protected operation
// declares. Matching is by key, not by raw ID.
type Capability struct {
	Category string
	Action   string
}

func (c Capability) String() string {
	return c.Category + ":" + c.Action
}

// Cap builds a Capability from category and action keys.
func Cap(category, action string) Capability {
	return Capability{Category: category, Action: action}
}

// PermissionNode holds the granted action flags for one category in the
// client-facing document, plus a parent marker mirroring the category key.
type PermissionNode map[string]any

// PermissionDocument is the sparse client-facing projection: one node per
// category that has at least one true grant, nothing else. It is advisory
// state for UI gating; the server-side Authorize call stays authoritative.
type PermissionDocument map[string]PermissionNode

// Matrix is the exhaustive projection used by the administration UI: every
// known category crossed with every known action, each cell a boolean.
type Matrix struct {
	Role        Role                       `json:"role"`
	Permissions map[string]map[string]bool `json:"permissions"`
	Categories  []Category                 `json:"categories"`
	Actions     []Action                   `json:"actions"`
}

// AddOutcome distinguishes a fresh insert from an idempotent no-op.
type AddOutcome int

const (
	// Added means the grant row was inserted.
	Added AddOutcome = iota
	// AlreadyExists means an identical grant was already present.
	AlreadyExists
)

func (o AddOutcome) String() string {
	if o == AlreadyExists {
		return "already_exists"
	}
	return "added"
}

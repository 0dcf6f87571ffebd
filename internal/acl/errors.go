package acl

import (
	"errors"
	"fmt"

	"github.com/ravikiran1811/foodie-hub/internal/platform/httpx"
)

var (
	// ErrRoleNotFound indicates the referenced role does not exist.
	ErrRoleNotFound = errors.New("acl: role not found")
	// ErrGrantNotFound indicates the referenced grant row does not exist.
	ErrGrantNotFound = errors.New("acl: grant not found")
	// ErrUnauthenticated indicates no resolvable identity on the request.
	ErrUnauthenticated = errors.New("acl: unauthenticated")
)

// DeniedError is the structured Forbidden failure returned by the decision
// engine. It carries the missing capability for diagnostics and is never
// swallowed; denial always surfaces as a terminal failure of the protected
// operation.
type DeniedError struct {
	Capability Capability
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("access denied, required permission: %s", e.Capability)
}

// Unwrap lets httpx.RespondError map the denial to a 403 response.
func (e *DeniedError) Unwrap() error {
	return httpx.ErrForbidden
}

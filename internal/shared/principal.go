package shared

// Principal describes the authenticated actor resolved from a signed token.
// The token signature and expiry are validated before a Principal is built;
// code receiving a Principal may trust its claims.
type Principal struct {
	ID      int64
	Email   string
	RoleID  int64
	Country Country
}

// Authenticated reports whether the principal carries a resolved role.
func (p *Principal) Authenticated() bool {
	return p != nil && p.ID != 0 && p.RoleID != 0
}

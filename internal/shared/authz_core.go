package shared

// Category keys for the protected resource domains.
const (
	CategoryOrders      = "ORDERS"
	CategoryPayments    = "PAYMENTS"
	CategoryRestaurants = "RESTAURANTS"
	CategoryUsers       = "USERS"
	CategoryDashboard   = "DASHBOARD"
)

// Action keys. The numeric suffix is a versioning convention carried in the
// stored keys, not a count.
const (
	ActionRead    = "READ_001"
	ActionWrite   = "WRITE_001"
	ActionUpdate  = "UPDATE_001"
	ActionDelete  = "DELETE_001"
	ActionImport  = "IMPORT_001"
	ActionExport  = "EXPORT_001"
	ActionApprove = "APPROVE_001"
	ActionReject  = "REJECT_001"
)

// CategoryKeys lists all seeded category keys.
func CategoryKeys() []string {
	return []string{
		CategoryOrders,
		CategoryPayments,
		CategoryRestaurants,
		CategoryUsers,
		CategoryDashboard,
	}
}

// ActionKeys lists all seeded action keys.
func ActionKeys() []string {
	return []string{
		ActionRead,
		ActionWrite,
		ActionUpdate,
		ActionDelete,
		ActionImport,
		ActionExport,
		ActionApprove,
		ActionReject,
	}
}

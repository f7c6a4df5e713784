package staff

import "context"

// StaffRepository is the read contract against the externally owned staff
// directory. The payroll engine never writes staff rows.
type StaffRepository interface {
	GetByID(ctx context.Context, id string) (Staff, error)
	ListActiveByCanteen(ctx context.Context, canteenID string) ([]Staff, error)
}

package canteen

import "time"

// Canteen is owned by the canteen directory service; only the name is read
// here, denormalized into payrolls at generation time.
type Canteen struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

package canteen

import "context"

type CanteenRepository interface {
	GetName(ctx context.Context, id string) (string, error)
}

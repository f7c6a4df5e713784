package canteen

import "errors"

var (
	ErrCanteenNotFound = errors.New("canteen not found")
)

package clubuser

import "context"

// Directory exposes roster reads from the user management system.
type Directory interface {
	// ListActive returns the club's active users in a stable order.
	ListActive(ctx context.Context, clubID string) ([]User, error)
}

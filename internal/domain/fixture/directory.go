package fixture

import "context"

// Directory exposes fixture reads from the scheduling system.
type Directory interface {
	// ListUpcoming returns every fixture of the club with a kickoff time at
	// or after now, in ascending kickoff order.
	ListUpcoming(ctx context.Context, clubID string) ([]Fixture, error)
}

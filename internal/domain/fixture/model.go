package fixture

import (
	"strings"
	"time"
)

const (
	VenueHome = "HOME"
	VenueAway = "AWAY"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

// Fixture is one scheduled match. Read-only to this service: scheduling
// itself lives in the surrounding application.
type Fixture struct {
	ID        string
	ClubID    string
	Opponent  string
	KickoffAt time.Time
	Venue     string
	Status    string
}

func NormalizeVenue(value string) string {
	venue := strings.ToUpper(strings.TrimSpace(value))
	if venue == "" {
		return VenueHome
	}
	return venue
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func (f Fixture) IsCancelled() bool {
	return NormalizeStatus(f.Status) == StatusCancelled
}

// KicksOffWithin reports whether the fixture kicks off between now and
// now+window, inclusive on both ends.
func (f Fixture) KicksOffWithin(now time.Time, window time.Duration) bool {
	if f.KickoffAt.Before(now) {
		return false
	}
	return !f.KickoffAt.After(now.Add(window))
}

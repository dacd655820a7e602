package template

import (
	"strings"

	"github.com/clubops/matchday-ops/internal/domain/fixture"
)

const (
	AutoApplyAlways = "ALWAYS"
	AutoApplyHome   = "HOME"
	AutoApplyAway   = "AWAY"
	AutoApplyNever  = "NEVER"
	// AutoApplyUnset marks packs created before the auto_apply column
	// existed; venue inference falls back to the pack name for those.
	AutoApplyUnset = ""
)

// Task is one task definition inside a pack. OffsetHours is relative to
// kickoff and may be negative (before kickoff).
type Task struct {
	Label            string
	OffsetHours      *int
	DefaultOwnerRole string
}

// Pack is a named, toggleable bundle of task definitions applied to
// fixtures per a venue policy. Packs are authored elsewhere and only read
// here; Tasks keeps authoring order.
type Pack struct {
	ID               string
	ClubID           string
	Name             string
	Enabled          bool
	AutoApply        string
	DefaultOwnerRole string
	Tasks            []Task
}

func NormalizeAutoApply(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

// AppliesTo reports whether the pack generates tasks for a fixture played
// at the given venue. The literal "(home)"/"(away)" pack-name markers are a
// legacy fallback engaged only when auto_apply is unset.
func (p Pack) AppliesTo(venue string) bool {
	venue = fixture.NormalizeVenue(venue)

	switch NormalizeAutoApply(p.AutoApply) {
	case AutoApplyNever:
		return false
	case AutoApplyAlways:
		return true
	case AutoApplyHome:
		return venue == fixture.VenueHome
	case AutoApplyAway:
		return venue == fixture.VenueAway
	}

	name := strings.ToLower(p.Name)
	if strings.Contains(name, "(home)") {
		return venue == fixture.VenueHome
	}
	if strings.Contains(name, "(away)") {
		return venue == fixture.VenueAway
	}

	return true
}

// OwnerRoleFor resolves the owner role for one task definition: the
// task-level role overrides the pack-level default.
func (p Pack) OwnerRoleFor(t Task) string {
	if role := strings.TrimSpace(t.DefaultOwnerRole); role != "" {
		return role
	}
	return strings.TrimSpace(p.DefaultOwnerRole)
}

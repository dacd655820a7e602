package memory

import (
	"time"

	"github.com/clubops/matchday-ops/internal/domain/clubuser"
	"github.com/clubops/matchday-ops/internal/domain/fixture"
	"github.com/clubops/matchday-ops/internal/domain/template"
)

const (
	ClubIDNorthbridge = "club-northbridge-united"

	PackIDMatchdayHome = "pack-matchday-home"
	PackIDMatchdayAway = "pack-matchday-away"
	PackIDEveryMatch   = "pack-every-match"
)

func SeedUsers() []clubuser.User {
	return []clubuser.User{
		{ID: "usr-mia", ClubID: ClubIDNorthbridge, Name: "Mia Okafor", Status: clubuser.StatusActive, PrimaryRole: "Kit Manager"},
		{ID: "usr-jonas", ClubID: ClubIDNorthbridge, Name: "Jonas Petterson", Status: clubuser.StatusActive, PrimaryRole: "Groundskeeper"},
		{ID: "usr-priya", ClubID: ClubIDNorthbridge, Name: "Priya Shah", Status: clubuser.StatusActive, PrimaryRole: "Team Manager"},
		{ID: "usr-carl", ClubID: ClubIDNorthbridge, Name: "Carl Devine", Status: clubuser.StatusUnavailable, PrimaryRole: "Kit Manager"},
		{ID: "usr-lena", ClubID: ClubIDNorthbridge, Name: "Lena Bauer", Status: clubuser.StatusActive, PrimaryRole: "Physio"},
	}
}

func SeedFixtures(now time.Time) []fixture.Fixture {
	now = now.UTC()
	return []fixture.Fixture{
		{
			ID:        "fx-nb-001",
			ClubID:    ClubIDNorthbridge,
			Opponent:  "Eastvale Rovers",
			KickoffAt: now.Add(26 * time.Hour),
			Venue:     fixture.VenueHome,
			Status:    fixture.StatusScheduled,
		},
		{
			ID:        "fx-nb-002",
			ClubID:    ClubIDNorthbridge,
			Opponent:  "Harbour Town FC",
			KickoffAt: now.Add(4 * 24 * time.Hour),
			Venue:     fixture.VenueAway,
			Status:    fixture.StatusScheduled,
		},
		{
			ID:        "fx-nb-003",
			ClubID:    ClubIDNorthbridge,
			Opponent:  "Millfield Athletic",
			KickoffAt: now.Add(11 * 24 * time.Hour),
			Venue:     fixture.VenueHome,
			Status:    fixture.StatusScheduled,
		},
	}
}

func SeedTemplatePacks() []template.Pack {
	return []template.Pack{
		{
			ID:               PackIDMatchdayHome,
			ClubID:           ClubIDNorthbridge,
			Name:             "Matchday (Home)",
			Enabled:          true,
			AutoApply:        template.AutoApplyHome,
			DefaultOwnerRole: "Kit Manager",
			Tasks: []template.Task{
				{Label: "Prepare home kit", OffsetHours: intPtr(-24)},
				{Label: "Line the pitch", OffsetHours: intPtr(-4), DefaultOwnerRole: "Groundskeeper"},
				{Label: "Set up dugouts", OffsetHours: intPtr(-2), DefaultOwnerRole: "Groundskeeper"},
				{Label: "Check floodlights", OffsetHours: intPtr(-1), DefaultOwnerRole: "Groundskeeper"},
			},
		},
		{
			ID:               PackIDMatchdayAway,
			ClubID:           ClubIDNorthbridge,
			Name:             "Matchday (Away)",
			Enabled:          true,
			AutoApply:        template.AutoApplyAway,
			DefaultOwnerRole: "Team Manager",
			Tasks: []template.Task{
				{Label: "Book team coach", OffsetHours: intPtr(-48)},
				{Label: "Pack away kit", OffsetHours: intPtr(-24), DefaultOwnerRole: "Kit Manager"},
				{Label: "Confirm travel roster", OffsetHours: intPtr(-12)},
			},
		},
		{
			ID:               PackIDEveryMatch,
			ClubID:           ClubIDNorthbridge,
			Name:             "Every Match",
			Enabled:          true,
			AutoApply:        template.AutoApplyAlways,
			DefaultOwnerRole: "Team Manager",
			Tasks: []template.Task{
				{Label: "Submit team sheet", OffsetHours: intPtr(-2)},
				{Label: "Stock medical bag", OffsetHours: intPtr(-3), DefaultOwnerRole: "Physio"},
				{Label: "File match report", OffsetHours: intPtr(24)},
			},
		},
	}
}

func intPtr(v int) *int {
	return &v
}

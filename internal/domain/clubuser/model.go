package clubuser

import "strings"

const (
	StatusActive      = "ACTIVE"
	StatusInactive    = "INACTIVE"
	StatusUnavailable = "UNAVAILABLE"
)

// User is one member of a club's staff roster.
type User struct {
	ID          string
	ClubID      string
	Name        string
	Status      string
	PrimaryRole string
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusActive
	}
	return status
}

func (u User) IsActive() bool {
	return NormalizeStatus(u.Status) == StatusActive
}

// FirstActiveWithRole scans users in input order and returns the first
// active one whose primary role matches. The linear scan over a stably
// ordered list keeps role resolution deterministic.
func FirstActiveWithRole(users []User, role string) (User, bool) {
	role = strings.TrimSpace(role)
	if role == "" {
		return User{}, false
	}

	for _, u := range users {
		if !u.IsActive() {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(u.PrimaryRole), role) {
			return u, true
		}
	}

	return User{}, false
}

package screens

import (
	"strings"

	"crmconsole-backend/models"
)

// StatusAll is the sentinel status meaning "no status filter".
const StatusAll = "todos"

// FilterProfiles returns the profiles whose name or email contains term,
// case-insensitively. An empty term returns the input unchanged. The scan is
// O(n) over the loaded list; nothing touches the backend.
func FilterProfiles(profiles []models.Profile, term string) []models.Profile {
	if term == "" {
		return profiles
	}
	term = strings.ToLower(term)
	filtered := make([]models.Profile, 0, len(profiles))
	for _, p := range profiles {
		name := ""
		if p.FullName != nil {
			name = *p.FullName
		}
		if strings.Contains(strings.ToLower(name), term) ||
			strings.Contains(strings.ToLower(p.Email), term) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// FilterDeals returns the deals matching both the free-text term (title or
// customer name) and the status selector. An empty status or the StatusAll
// sentinel disables status filtering.
func FilterDeals(deals []models.Deal, term, status string) []models.Deal {
	term = strings.ToLower(term)
	if status == StatusAll {
		status = ""
	}
	filtered := make([]models.Deal, 0, len(deals))
	for _, d := range deals {
		matchesTerm := strings.Contains(strings.ToLower(d.Title), term) ||
			strings.Contains(strings.ToLower(d.Customer.Name), term)
		matchesStatus := status == "" || d.Status == status
		if matchesTerm && matchesStatus {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

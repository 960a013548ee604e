package analytics

import (
	"slices"
	"strings"
	"time"

	"emissiondesk/pkg/domain"
)

// RecentJoinWindow is how far back a join date counts as recent.
const RecentJoinWindow = 30 * 24 * time.Hour

// UserStats holds headline figures for the users page.
type UserStats struct {
	Total  int `json:"totalUsers"`
	Active int `json:"activeUsers"`
	Admins int `json:"adminUsers"`
	Recent int `json:"recentUsers"`
}

// ComputeUserStats counts users; Recent counts join dates after now minus
// RecentJoinWindow.
func ComputeUserStats(users []domain.User, now time.Time) UserStats {
	cutoff := now.Add(-RecentJoinWindow)
	stats := UserStats{Total: len(users)}
	for _, u := range users {
		if u.Status == domain.UserActive {
			stats.Active++
		}
		if u.Role == domain.RoleAdmin {
			stats.Admins++
		}
		if u.JoinDate.After(cutoff) {
			stats.Recent++
		}
	}
	return stats
}

// UserCountries returns the distinct user countries, sorted.
func UserCountries(users []domain.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.Country)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// MatchUser reports whether u matches query as a case-insensitive substring
// of its name, email or company. An empty query matches every user.
func MatchUser(u domain.User, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(u.Name), q) ||
		strings.Contains(strings.ToLower(u.Email), q) ||
		strings.Contains(strings.ToLower(u.Company), q)
}

// UserFilter narrows a user list. Zero values match all.
type UserFilter struct {
	Search  string
	Role    domain.Role
	Status  domain.UserStatus
	Country string
}

// FilterUsers returns the users that match f, in order.
func FilterUsers(users []domain.User, f UserFilter) []domain.User {
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if !MatchUser(u, f.Search) {
			continue
		}
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Status != "" && u.Status != f.Status {
			continue
		}
		if f.Country != "" && u.Country != f.Country {
			continue
		}
		out = append(out, u)
	}
	return out
}

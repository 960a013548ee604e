package analytics

import (
	"strings"

	"emissiondesk/pkg/domain"
)

// CategoryCount is one bucket of a category distribution.
type CategoryCount struct {
	Category domain.Category `json:"category"`
	Count    int             `json:"count"`
}

// PriorityCount is one bucket of a priority distribution.
type PriorityCount struct {
	Priority domain.Priority `json:"priority"`
	Count    int             `json:"count"`
}

// NotificationDistribution counts notifications over the fixed category and
// priority enumerations. Every enumeration value is present, possibly with 0.
type NotificationDistribution struct {
	Total      int             `json:"total"`
	Unread     int             `json:"unread"`
	Categories []CategoryCount `json:"categories"`
	Priorities []PriorityCount `json:"priorities"`
}

// CategoryCount returns the count for c, 0 when c is not an enumerated value.
func (d NotificationDistribution) CategoryCount(c domain.Category) int {
	for _, b := range d.Categories {
		if b.Category == c {
			return b.Count
		}
	}
	return 0
}

// PriorityCount returns the count for p, 0 when p is not an enumerated value.
func (d NotificationDistribution) PriorityCount(p domain.Priority) int {
	for _, b := range d.Priorities {
		if b.Priority == p {
			return b.Count
		}
	}
	return 0
}

// DistributeNotifications builds a NotificationDistribution. Values outside
// the enumerations count toward Total but no bucket.
func DistributeNotifications(ns []domain.Notification) NotificationDistribution {
	d := NotificationDistribution{
		Total:      len(ns),
		Categories: make([]CategoryCount, len(domain.Categories)),
		Priorities: make([]PriorityCount, len(domain.Priorities)),
	}
	for i, c := range domain.Categories {
		d.Categories[i].Category = c
	}
	for i, p := range domain.Priorities {
		d.Priorities[i].Priority = p
	}
	for _, n := range ns {
		if !n.IsRead {
			d.Unread++
		}
		for i := range d.Categories {
			if d.Categories[i].Category == n.Category {
				d.Categories[i].Count++
			}
		}
		for i := range d.Priorities {
			if d.Priorities[i].Priority == n.Priority {
				d.Priorities[i].Count++
			}
		}
	}
	return d
}

// ReadFilter selects notifications by read state.
type ReadFilter string

// Read filters.
const (
	ReadAny    ReadFilter = "all"
	ReadOnly   ReadFilter = "read"
	UnreadOnly ReadFilter = "unread"
)

// NotificationFilter narrows a notification list. Zero values match all.
type NotificationFilter struct {
	Read     ReadFilter
	Category domain.Category
	Search   string
}

// Match reports whether n passes the filter. Search is a case-insensitive
// substring match over title and message.
func (f NotificationFilter) Match(n domain.Notification) bool {
	switch f.Read {
	case ReadOnly:
		if !n.IsRead {
			return false
		}
	case UnreadOnly:
		if n.IsRead {
			return false
		}
	}
	if f.Category != "" && n.Category != f.Category {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(n.Title), term) &&
			!strings.Contains(strings.ToLower(n.Message), term) {
			return false
		}
	}
	return true
}

// FilterNotifications returns the notifications that match f, in order.
func FilterNotifications(ns []domain.Notification, f NotificationFilter) []domain.Notification {
	out := make([]domain.Notification, 0, len(ns))
	for _, n := range ns {
		if f.Match(n) {
			out = append(out, n)
		}
	}
	return out
}

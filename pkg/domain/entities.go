// Package domain defines the entities, value types, and error kinds shared by
// the emissions data service and its aggregation engine.
package domain

import "time"

// EntityType identifies the type of record held by the entity store.
type EntityType string

// Supported entity type identifiers used in Change records and snapshot buckets.
const (
	// EntityCountry identifies a country record.
	EntityCountry EntityType = "country"
	// EntityCompany identifies a company record (subsidiaries and emissions embedded).
	EntityCompany EntityType = "company"
	// EntityReport identifies a report (post) record.
	EntityReport EntityType = "report"
	// EntityNotification identifies a notification record.
	EntityNotification EntityType = "notification"
	// EntityUser identifies a user record.
	EntityUser EntityType = "user"
)

// Action represents the type of mutation recorded in a Change.
type Action string

// Mutation actions recorded by store transactions.
const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Change describes a single mutation applied inside a store transaction.
type Change struct {
	Entity EntityType `json:"entity"`
	Action Action     `json:"action"`
	ID     string     `json:"id"`
}

// Country is immutable after seeding.
type Country struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Code       string  `json:"code"` // ISO 3166 alpha-2
	Region     string  `json:"region"`
	Population int64   `json:"population"`
	GDP        float64 `json:"gdp"`       // billions USD
	Emissions  float64 `json:"emissions"` // million tons CO2
}

// GhgEmission is one emission row for a period. Several rows may share a
// period (different sources); they add up when rolled up.
type GhgEmission struct {
	Period    string  `json:"yearMonth"`
	Source    string  `json:"source,omitempty"` // gasoline, lpg, diesel, ...
	Emissions float64 `json:"emissions"`
}

// Subsidiary has no lifecycle outside its owning Company.
type Subsidiary struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name"`
	Country             string        `json:"country"`
	BusinessType        string        `json:"businessType"`
	OwnershipPercentage float64       `json:"ownershipPercentage"` // 0-100
	EstablishedYear     int           `json:"establishedYear"`
	EmployeeCount       int           `json:"employeeCount"`
	Emissions           []GhgEmission `json:"emissions"`
}

// Company owns its Subsidiaries and its own (non-subsidiary) Emissions.
//
// Emissions must be appended in chronological order: the last element is
// treated as the latest period everywhere.
type Company struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Country         string        `json:"country"`
	BusinessType    string        `json:"businessType"`
	Industry        string        `json:"industry"`
	EstablishedYear int           `json:"establishedYear"`
	EmployeeCount   int           `json:"employeeCount"`
	Revenue         float64       `json:"revenue"`
	ParentCompanyID *string       `json:"parentCompanyId,omitempty"`
	Subsidiaries    []Subsidiary  `json:"subsidiaries"`
	Emissions       []GhgEmission `json:"emissions"`
}

// Report is a post attached to a company by id (non-owning reference).
type Report struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CompanyID string `json:"resourceId"`
	DateTime  string `json:"dateTime"` // "YYYY-MM", "YYYY-MM-DD" or RFC 3339
	Content   string `json:"content"`
}

// ReportInput saves a report; an empty ID creates, a non-empty ID replaces.
type ReportInput struct {
	ID        string
	Title     string
	CompanyID string
	DateTime  string
	Content   string
}

// NotificationType tags the visual severity of a notification.
type NotificationType string

// Notification types.
const (
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
	NotificationSuccess NotificationType = "success"
)

// Priority ranks notifications.
type Priority string

// Notification priorities, highest first.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities is the fixed enumeration used by distributions.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Category groups notifications by subject.
type Category string

// Notification categories.
const (
	CategoryEmission Category = "emission"
	CategoryReport   Category = "report"
	CategorySystem   Category = "system"
	CategoryCompany  Category = "company"
)

// Categories is the fixed enumeration used by distributions.
var Categories = []Category{CategoryEmission, CategoryReport, CategorySystem, CategoryCompany}

// Notification ids are integers assigned as max(existing)+1.
type Notification struct {
	ID        int              `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`
	Priority  Priority         `json:"priority"`
	Category  Category         `json:"category"`
}

// Role is a user's access role label.
type Role string

// User roles.
const (
	RoleAdmin   Role = "admin"
	RoleAuditor Role = "auditor"
	RoleUser    Role = "user"
)

// UserStatus marks whether a user account is active.
type UserStatus string

// User statuses.
const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

// User emails are unique across the store (exact, case-sensitive match).
type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	Company   string     `json:"company"`
	Country   string     `json:"country"`
	Status    UserStatus `json:"status"`
	LastLogin time.Time  `json:"lastLogin"`
	JoinDate  time.Time  `json:"joinDate"`
}

package domain

import "context"

// Transaction exposes the mutations a store implementation supports within an
// atomic scope. Nothing is visible to readers until the transaction commits.
type Transaction interface {
	Snapshot() TransactionView
	CreateCompany(Company) (Company, error)
	UpdateCompany(id string, mutator func(*Company) error) (Company, error)
	DeleteCompany(id string) bool
	CreateReport(Report) (Report, error)
	UpdateReport(id string, mutator func(*Report) error) (Report, error)
	DeleteReport(id string) bool
	CreateNotification(Notification) (Notification, error)
	UpdateNotification(id int, mutator func(*Notification) error) (Notification, error)
	DeleteNotification(id int) bool
	CreateUser(User) (User, error)
	UpdateUser(id string, mutator func(*User) error) (User, error)
	DeleteUser(id string) bool
}

// TransactionView provides read-only access to a consistent snapshot. Every
// returned value is a copy.
type TransactionView interface {
	ListCountries() []Country
	FindCountry(id string) (Country, bool)
	ListCompanies() []Company
	FindCompany(id string) (Company, bool)
	ListReports() []Report
	FindReport(id string) (Report, bool)
	ListNotifications() []Notification
	ListUsers() []User
	FindUser(id string) (User, bool)
}

// PersistentStore is the abstraction the service runs against.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) ([]Change, error)
	View(ctx context.Context, fn func(TransactionView) error) error
}

// Package memory provides the in-memory entity store backing the data
// service. Collections are copy-on-write: a transaction clones a collection
// before its first mutation and the whole state is swapped in on commit, so
// readers always observe a complete snapshot.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"emissiondesk/pkg/domain"
)

// Compile-time contract assertion.
var _ domain.PersistentStore = (*Store)(nil)

type (
	// Country aliases domain.Country.
	Country = domain.Country
	// Company aliases domain.Company.
	Company = domain.Company
	// Report aliases domain.Report.
	Report = domain.Report
	// Notification aliases domain.Notification.
	Notification = domain.Notification
	// User aliases domain.User.
	User = domain.User
	// Change aliases domain.Change captured in transactions.
	Change = domain.Change
	// Transaction aliases domain.Transaction.
	Transaction = domain.Transaction
	// TransactionView aliases domain.TransactionView.
	TransactionView = domain.TransactionView
)

// memoryState holds one slice per collection. Committed slices are never
// written again; mutations always go to a fresh copy.
type memoryState struct {
	countries     []Country
	companies     []Company
	reports       []Report
	notifications []Notification
	users         []User
}

// Snapshot captures a point-in-time deep copy of the store state.
type Snapshot struct {
	Countries     []Country      `json:"countries"`
	Companies     []Company      `json:"companies"`
	Reports       []Report       `json:"reports"`
	Notifications []Notification `json:"notifications"`
	Users         []User         `json:"users"`
}

func snapshotFromState(state memoryState) Snapshot {
	return Snapshot{
		Countries:     cloneSlice(state.countries),
		Companies:     domain.CloneCompanies(state.companies),
		Reports:       cloneSlice(state.reports),
		Notifications: cloneSlice(state.notifications),
		Users:         cloneSlice(state.users),
	}
}

func stateFromSnapshot(s Snapshot) memoryState {
	return memoryState{
		countries:     cloneSlice(s.Countries),
		companies:     domain.CloneCompanies(s.Companies),
		reports:       cloneSlice(s.Reports),
		notifications: cloneSlice(s.Notifications),
		users:         cloneSlice(s.Users),
	}
}

func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// Store is the process-wide entity store. It is the sole mutator of its
// collections and hands out copies only.
type Store struct {
	mu    sync.RWMutex
	state memoryState
	newID func() string
}

// NewStore constructs an empty store. Use ImportState to seed it.
func NewStore() *Store {
	return &Store{newID: uuid.NewString}
}

// NewSeededStore constructs a store holding a copy of snapshot.
func NewSeededStore(snapshot Snapshot) *Store {
	s := NewStore()
	s.state = stateFromSnapshot(snapshot)
	return s
}

// ExportState clones the current store state.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromState(s.state)
}

// ImportState replaces the store state with the provided snapshot.
func (s *Store) ImportState(snapshot Snapshot) {
	next := stateFromSnapshot(snapshot)
	s.mu.Lock()
	s.state = next
	s.mu.Unlock()
}

// RunInTransaction applies fn to a transactional copy of the state and swaps
// it in when fn succeeds. On error nothing is committed.
func (s *Store) RunInTransaction(_ context.Context, fn func(tx Transaction) error) ([]Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{store: s, state: s.state}
	if err := fn(tx); err != nil {
		return nil, err
	}
	s.state = tx.state
	return tx.changes, nil
}

// View executes fn against the current committed snapshot.
func (s *Store) View(_ context.Context, fn func(TransactionView) error) error {
	s.mu.RLock()
	state := s.state
	s.mu.RUnlock()
	return fn(transactionView{state: state})
}

type transaction struct {
	store   *Store
	state   memoryState
	owned   [5]bool
	changes []Change
}

const (
	ownCompanies = iota
	ownReports
	ownNotifications
	ownUsers
)

func (tx *transaction) recordChange(entity domain.EntityType, action domain.Action, id string) {
	tx.changes = append(tx.changes, Change{Entity: entity, Action: action, ID: id})
}

// Snapshot returns a read-only view over the transactional state.
func (tx *transaction) Snapshot() TransactionView {
	return transactionView{state: tx.state}
}

func (tx *transaction) companies() []Company {
	if !tx.owned[ownCompanies] {
		tx.state.companies = cloneSlice(tx.state.companies)
		tx.owned[ownCompanies] = true
	}
	return tx.state.companies
}

func (tx *transaction) reports() []Report {
	if !tx.owned[ownReports] {
		tx.state.reports = cloneSlice(tx.state.reports)
		tx.owned[ownReports] = true
	}
	return tx.state.reports
}

func (tx *transaction) notifications() []Notification {
	if !tx.owned[ownNotifications] {
		tx.state.notifications = cloneSlice(tx.state.notifications)
		tx.owned[ownNotifications] = true
	}
	return tx.state.notifications
}

func (tx *transaction) users() []User {
	if !tx.owned[ownUsers] {
		tx.state.users = cloneSlice(tx.state.users)
		tx.owned[ownUsers] = true
	}
	return tx.state.users
}

// CreateCompany appends a company, assigning a random id when none is set.
func (tx *transaction) CreateCompany(c Company) (Company, error) {
	if c.ID == "" {
		c.ID = tx.store.newID()
	}
	if indexOf(tx.state.companies, c.ID, companyID) >= 0 {
		return Company{}, fmt.Errorf("company %q already exists", c.ID)
	}
	stored := domain.CloneCompany(c)
	tx.state.companies = append(tx.companies(), stored)
	tx.recordChange(domain.EntityCompany, domain.ActionCreate, c.ID)
	return domain.CloneCompany(stored), nil
}

// UpdateCompany mutates a company copy and stores the result.
func (tx *transaction) UpdateCompany(id string, mutator func(*Company) error) (Company, error) {
	idx := indexOf(tx.state.companies, id, companyID)
	if idx < 0 {
		return Company{}, domain.ErrNotFound{Entity: domain.EntityCompany, ID: id}
	}
	current := domain.CloneCompany(tx.state.companies[idx])
	if err := mutator(&current); err != nil {
		return Company{}, err
	}
	current.ID = id
	tx.companies()[idx] = domain.CloneCompany(current)
	tx.recordChange(domain.EntityCompany, domain.ActionUpdate, id)
	return current, nil
}

// DeleteCompany removes a company; it reports whether one was present.
func (tx *transaction) DeleteCompany(id string) bool {
	idx := indexOf(tx.state.companies, id, companyID)
	if idx < 0 {
		return false
	}
	tx.owned[ownCompanies] = true
	tx.state.companies = removeAt(tx.state.companies, idx)
	tx.recordChange(domain.EntityCompany, domain.ActionDelete, id)
	return true
}

// CreateReport appends a report, assigning a random id when none is set.
func (tx *transaction) CreateReport(r Report) (Report, error) {
	if r.ID == "" {
		r.ID = tx.store.newID()
	}
	if indexOf(tx.state.reports, r.ID, reportID) >= 0 {
		return Report{}, fmt.Errorf("report %q already exists", r.ID)
	}
	tx.state.reports = append(tx.reports(), r)
	tx.recordChange(domain.EntityReport, domain.ActionCreate, r.ID)
	return r, nil
}

// UpdateReport mutates a report copy and stores the result.
func (tx *transaction) UpdateReport(id string, mutator func(*Report) error) (Report, error) {
	idx := indexOf(tx.state.reports, id, reportID)
	if idx < 0 {
		return Report{}, domain.ErrNotFound{Entity: domain.EntityReport, ID: id}
	}
	current := tx.state.reports[idx]
	if err := mutator(&current); err != nil {
		return Report{}, err
	}
	current.ID = id
	tx.reports()[idx] = current
	tx.recordChange(domain.EntityReport, domain.ActionUpdate, id)
	return current, nil
}

// DeleteReport removes a report; it reports whether one was present.
func (tx *transaction) DeleteReport(id string) bool {
	idx := indexOf(tx.state.reports, id, reportID)
	if idx < 0 {
		return false
	}
	tx.owned[ownReports] = true
	tx.state.reports = removeAt(tx.state.reports, idx)
	tx.recordChange(domain.EntityReport, domain.ActionDelete, id)
	return true
}

// CreateNotification appends a notification with id max(existing)+1, or 1
// when the collection is empty. Any id on the input is ignored.
func (tx *transaction) CreateNotification(n Notification) (Notification, error) {
	next := 1
	for _, existing := range tx.state.notifications {
		if existing.ID >= next {
			next = existing.ID + 1
		}
	}
	n.ID = next
	tx.state.notifications = append(tx.notifications(), n)
	tx.recordChange(domain.EntityNotification, domain.ActionCreate, fmt.Sprint(n.ID))
	return n, nil
}

// UpdateNotification mutates a notification copy and stores the result.
func (tx *transaction) UpdateNotification(id int, mutator func(*Notification) error) (Notification, error) {
	idx := indexOf(tx.state.notifications, id, notificationID)
	if idx < 0 {
		return Notification{}, domain.ErrNotFound{Entity: domain.EntityNotification, ID: fmt.Sprint(id)}
	}
	current := tx.state.notifications[idx]
	if err := mutator(&current); err != nil {
		return Notification{}, err
	}
	current.ID = id
	tx.notifications()[idx] = current
	tx.recordChange(domain.EntityNotification, domain.ActionUpdate, fmt.Sprint(id))
	return current, nil
}

// DeleteNotification removes a notification; it reports whether one was present.
func (tx *transaction) DeleteNotification(id int) bool {
	idx := indexOf(tx.state.notifications, id, notificationID)
	if idx < 0 {
		return false
	}
	tx.owned[ownNotifications] = true
	tx.state.notifications = removeAt(tx.state.notifications, idx)
	tx.recordChange(domain.EntityNotification, domain.ActionDelete, fmt.Sprint(id))
	return true
}

// CreateUser appends a user after checking email uniqueness.
func (tx *transaction) CreateUser(u User) (User, error) {
	if u.ID == "" {
		u.ID = tx.store.newID()
	}
	if indexOf(tx.state.users, u.ID, userID) >= 0 {
		return User{}, fmt.Errorf("user %q already exists", u.ID)
	}
	if tx.emailTaken(u.Email, "") {
		return User{}, domain.ErrDuplicateEmail{Email: u.Email}
	}
	tx.state.users = append(tx.users(), u)
	tx.recordChange(domain.EntityUser, domain.ActionCreate, u.ID)
	return u, nil
}

// UpdateUser mutates a user copy. Email uniqueness is checked only when the
// mutation changes the email.
func (tx *transaction) UpdateUser(id string, mutator func(*User) error) (User, error) {
	idx := indexOf(tx.state.users, id, userID)
	if idx < 0 {
		return User{}, domain.ErrNotFound{Entity: domain.EntityUser, ID: id}
	}
	current := tx.state.users[idx]
	previous := current.Email
	if err := mutator(&current); err != nil {
		return User{}, err
	}
	current.ID = id
	if current.Email != previous && tx.emailTaken(current.Email, id) {
		return User{}, domain.ErrDuplicateEmail{Email: current.Email}
	}
	tx.users()[idx] = current
	tx.recordChange(domain.EntityUser, domain.ActionUpdate, id)
	return current, nil
}

// DeleteUser removes a user; it reports whether one was present.
func (tx *transaction) DeleteUser(id string) bool {
	idx := indexOf(tx.state.users, id, userID)
	if idx < 0 {
		return false
	}
	tx.owned[ownUsers] = true
	tx.state.users = removeAt(tx.state.users, idx)
	tx.recordChange(domain.EntityUser, domain.ActionDelete, id)
	return true
}

func (tx *transaction) emailTaken(email, exceptID string) bool {
	for _, u := range tx.state.users {
		if u.Email == email && u.ID != exceptID {
			return true
		}
	}
	return false
}

func companyID(c Company) string { return c.ID }

func reportID(r Report) string { return r.ID }

func notificationID(n Notification) int { return n.ID }

func userID(u User) string { return u.ID }

func countryID(c Country) string { return c.ID }

func indexOf[T any, K comparable](items []T, id K, key func(T) K) int {
	for i, item := range items {
		if key(item) == id {
			return i
		}
	}
	return -1
}

// removeAt returns a new slice without element i; the input is not modified.
func removeAt[T any](items []T, i int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

type transactionView struct {
	state memoryState
}

func (v transactionView) ListCountries() []Country { return cloneSlice(v.state.countries) }

func (v transactionView) FindCountry(id string) (Country, bool) {
	idx := indexOf(v.state.countries, id, countryID)
	if idx < 0 {
		return Country{}, false
	}
	return v.state.countries[idx], true
}

func (v transactionView) ListCompanies() []Company { return domain.CloneCompanies(v.state.companies) }

func (v transactionView) FindCompany(id string) (Company, bool) {
	idx := indexOf(v.state.companies, id, companyID)
	if idx < 0 {
		return Company{}, false
	}
	return domain.CloneCompany(v.state.companies[idx]), true
}

func (v transactionView) ListReports() []Report { return cloneSlice(v.state.reports) }

func (v transactionView) FindReport(id string) (Report, bool) {
	idx := indexOf(v.state.reports, id, reportID)
	if idx < 0 {
		return Report{}, false
	}
	return v.state.reports[idx], true
}

func (v transactionView) ListNotifications() []Notification {
	return cloneSlice(v.state.notifications)
}

func (v transactionView) ListUsers() []User { return cloneSlice(v.state.users) }

func (v transactionView) FindUser(id string) (User, bool) {
	idx := indexOf(v.state.users, id, userID)
	if idx < 0 {
		return User{}, false
	}
	return v.state.users[idx], true
}

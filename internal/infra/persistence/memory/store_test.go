package memory

import (
	"context"
	"errors"
	"testing"

	"emissiondesk/pkg/domain"
)

func seededSnapshot() Snapshot {
	return Snapshot{
		Countries: []Country{{ID: "kr", Name: "Korea", Code: "KOR", Region: "Asia"}},
		Companies: []Company{{
			ID:   "c1",
			Name: "Acme",
			Subsidiaries: []domain.Subsidiary{{
				ID:        "s1",
				Name:      "Acme Sub",
				Emissions: []domain.GhgEmission{{Period: "2024-01", Emissions: 10}},
			}},
			Emissions: []domain.GhgEmission{{Period: "2024-01", Emissions: 100}},
		}},
		Reports:       []Report{{ID: "p1", Title: "Q1", CompanyID: "c1", DateTime: "2024-02"}},
		Notifications: []Notification{{ID: 3, Title: "a"}, {ID: 7, Title: "b"}},
		Users:         []User{{ID: "u1", Email: "a@example.com"}, {ID: "u2", Email: "b@example.com"}},
	}
}

func TestStoreRunInTransactionAndSnapshots(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	changes, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		created, err := tx.CreateCompany(Company{Name: "Test"})
		if err != nil {
			return err
		}
		if created.ID == "" {
			t.Fatalf("expected generated ID")
		}
		if len(tx.Snapshot().ListCompanies()) != 1 {
			t.Fatalf("snapshot mismatch")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("run transaction: %v", err)
	}
	if len(changes) != 1 || changes[0].Entity != domain.EntityCompany || changes[0].Action != domain.ActionCreate {
		t.Fatalf("unexpected changes %+v", changes)
	}
	snapshot := store.ExportState()
	store.ImportState(Snapshot{})
	if len(store.ExportState().Companies) != 0 {
		t.Fatalf("expected cleared state")
	}
	store.ImportState(snapshot)
	if len(store.ExportState().Companies) != 1 {
		t.Fatalf("expected restored state")
	}
}

func TestFailedTransactionCommitsNothing(t *testing.T) {
	store := NewSeededStore(seededSnapshot())
	boom := errors.New("boom")
	_, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		if _, err := tx.CreateCompany(Company{Name: "Ghost"}); err != nil {
			return err
		}
		tx.DeleteUser("u1")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	state := store.ExportState()
	if len(state.Companies) != 1 || len(state.Users) != 2 {
		t.Fatalf("rolled back transaction leaked: %+v", state)
	}
}

func TestViewReturnsCopies(t *testing.T) {
	store := NewSeededStore(seededSnapshot())
	ctx := context.Background()
	_ = store.View(ctx, func(v domain.TransactionView) error {
		companies := v.ListCompanies()
		companies[0].Name = "mutated"
		companies[0].Emissions[0].Emissions = -1
		companies[0].Subsidiaries[0].Emissions[0].Emissions = -1
		return nil
	})
	_ = store.View(ctx, func(v domain.TransactionView) error {
		c, ok := v.FindCompany("c1")
		if !ok {
			t.Fatalf("expected company")
		}
		if c.Name != "Acme" || c.Emissions[0].Emissions != 100 || c.Subsidiaries[0].Emissions[0].Emissions != 10 {
			t.Fatalf("view aliased store state: %+v", c)
		}
		return nil
	})
}

func TestViewIsIsolatedFromLaterCommits(t *testing.T) {
	store := NewSeededStore(seededSnapshot())
	ctx := context.Background()
	var held domain.TransactionView
	_ = store.View(ctx, func(v domain.TransactionView) error {
		held = v
		return nil
	})
	if _, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		_, err := tx.UpdateCompany("c1", func(c *Company) error {
			c.Name = "Renamed"
			return nil
		})
		return err
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if c, _ := held.FindCompany("c1"); c.Name != "Acme" {
		t.Fatalf("committed snapshot was mutated in place: %q", c.Name)
	}
}

func TestNotificationIDs(t *testing.T) {
	ctx := context.Background()
	store := NewSeededStore(seededSnapshot())
	var created Notification
	_, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateNotification(Notification{ID: 99, Title: "new"})
		return err
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 8 {
		t.Fatalf("expected max+1 id 8, got %d", created.ID)
	}

	empty := NewStore()
	_, _ = empty.RunInTransaction(ctx, func(tx domain.Transaction) error {
		created, err = tx.CreateNotification(Notification{Title: "first"})
		return err
	})
	if created.ID != 1 {
		t.Fatalf("expected id 1 on empty collection, got %d", created.ID)
	}
}

func TestUserEmailUniqueness(t *testing.T) {
	ctx := context.Background()
	store := NewSeededStore(seededSnapshot())
	_, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		_, err := tx.CreateUser(User{Email: "a@example.com"})
		return err
	})
	var dup domain.ErrDuplicateEmail
	if !errors.As(err, &dup) {
		t.Fatalf("expected duplicate email, got %v", err)
	}
	_, err = store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		_, err := tx.UpdateUser("u2", func(u *User) error {
			u.Email = "a@example.com"
			return nil
		})
		return err
	})
	if !errors.As(err, &dup) {
		t.Fatalf("expected duplicate email on update, got %v", err)
	}
	_, err = store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		_, err := tx.UpdateUser("u1", func(u *User) error {
			u.Name = "same email"
			return nil
		})
		return err
	})
	if err != nil {
		t.Fatalf("keeping own email should succeed: %v", err)
	}
}

func TestUserUpdateKeepingImportedDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	snap := seededSnapshot()
	snap.Users[1].Email = snap.Users[0].Email
	store := NewSeededStore(snap)
	_, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		_, err := tx.UpdateUser("u2", func(u *User) error {
			u.Name = "renamed"
			return nil
		})
		return err
	})
	if err != nil {
		t.Fatalf("update leaving email untouched should succeed: %v", err)
	}
	_, err = store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		_, err := tx.UpdateUser("u2", func(u *User) error {
			u.Email = "c@example.com"
			return nil
		})
		return err
	})
	if err != nil {
		t.Fatalf("moving to a free email should succeed: %v", err)
	}
	_, err = store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		_, err := tx.UpdateUser("u2", func(u *User) error {
			u.Email = "a@example.com"
			return nil
		})
		return err
	})
	var dup domain.ErrDuplicateEmail
	if !errors.As(err, &dup) {
		t.Fatalf("expected duplicate email when changing back, got %v", err)
	}
}

func TestUpdateMissingAndDeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewSeededStore(seededSnapshot())
	_, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		_, err := tx.UpdateReport("missing", func(*Report) error { return nil })
		return err
	})
	var nf domain.ErrNotFound
	if !errors.As(err, &nf) || nf.Entity != domain.EntityReport {
		t.Fatalf("expected report not found, got %v", err)
	}
	for i, want := range []bool{true, false} {
		var removed bool
		_, _ = store.RunInTransaction(ctx, func(tx domain.Transaction) error {
			removed = tx.DeleteReport("p1")
			return nil
		})
		if removed != want {
			t.Fatalf("delete #%d: expected %v", i, want)
		}
	}
	if len(store.ExportState().Reports) != 0 {
		t.Fatalf("expected report removed")
	}
}

func TestDeleteThenCreateInOneTransaction(t *testing.T) {
	ctx := context.Background()
	store := NewSeededStore(seededSnapshot())
	changes, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		if !tx.DeleteNotification(3) {
			t.Fatalf("expected notification 3")
		}
		_, err := tx.CreateNotification(Notification{Title: "c"})
		return err
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
	if len(changes) != 2 {
		t.Fatalf("expected two changes, got %d", len(changes))
	}
	got := store.ExportState().Notifications
	if len(got) != 2 || got[0].ID != 7 || got[1].ID != 8 {
		t.Fatalf("unexpected notifications %+v", got)
	}
}

package seed

import (
	"context"
	"testing"

	"emissiondesk/pkg/domain"
)

func TestSeedShape(t *testing.T) {
	snap := Snapshot()
	if len(snap.Countries) != 12 || len(snap.Companies) != 5 || len(snap.Reports) != 1 ||
		len(snap.Notifications) != 6 || len(snap.Users) != 5 {
		t.Fatalf("unexpected seed sizes: %d countries %d companies %d reports %d notifications %d users",
			len(snap.Countries), len(snap.Companies), len(snap.Reports), len(snap.Notifications), len(snap.Users))
	}
	subs := 0
	for _, c := range snap.Companies {
		subs += len(c.Subsidiaries)
		for i := 1; i < len(c.Emissions); i++ {
			if c.Emissions[i-1].Period >= c.Emissions[i].Period {
				t.Fatalf("company %s emissions not chronological", c.ID)
			}
		}
	}
	if subs != 9 {
		t.Fatalf("expected 9 subsidiaries, got %d", subs)
	}
}

func TestSeedUniqueEmails(t *testing.T) {
	seen := map[string]bool{}
	for _, u := range Users() {
		if seen[u.Email] {
			t.Fatalf("duplicate seed email %s", u.Email)
		}
		seen[u.Email] = true
	}
}

func TestSeedReportsReferenceCompanies(t *testing.T) {
	store := NewStore()
	err := store.View(context.Background(), func(v domain.TransactionView) error {
		for _, r := range v.ListReports() {
			if _, ok := v.FindCompany(r.CompanyID); !ok {
				t.Fatalf("report %s references missing company %s", r.ID, r.CompanyID)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}

func TestSnapshotReturnsFreshCopies(t *testing.T) {
	a := Snapshot()
	a.Companies[0].Emissions[0].Emissions = -1
	if Snapshot().Companies[0].Emissions[0].Emissions != 120 {
		t.Fatalf("seed data shared between calls")
	}
}

package core

import (
	"context"
	"strings"

	"emissiondesk/internal/analytics"
	"emissiondesk/pkg/domain"
)

// FetchUsers returns every user.
func (s *Service) FetchUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	err := s.run(ctx, "fetch_users", func(ctx context.Context) error {
		if err := s.settle(ctx, "fetch_users"); err != nil {
			return err
		}
		return s.view(ctx, func(v domain.TransactionView) error {
			out = v.ListUsers()
			return nil
		})
	})
	return out, err
}

// CreateUser stores a new user under a freshly generated id. The email must
// not already be in use. A zero JoinDate is stamped with the service clock.
func (s *Service) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	var created domain.User
	err := s.run(ctx, "create_user", func(ctx context.Context) error {
		if err := s.settle(ctx, "create_user"); err != nil {
			return err
		}
		user.ID = ""
		if user.JoinDate.IsZero() {
			user.JoinDate = s.now()
		}
		return s.apply(ctx, "create_user", func(tx domain.Transaction) error {
			var err error
			created, err = tx.CreateUser(user)
			return err
		})
	})
	return created, err
}

// UpdateUser merges patch into the user as it was when the call began and
// stores the merged record after the delay. The email must stay unique among
// the other users. It reports false when the user does not exist.
func (s *Service) UpdateUser(ctx context.Context, id string, patch domain.UserPatch) (domain.User, bool, error) {
	var (
		updated domain.User
		found   bool
	)
	err := s.run(ctx, "update_user", func(ctx context.Context) error {
		var (
			base   domain.User
			exists bool
		)
		if err := s.view(ctx, func(v domain.TransactionView) error {
			base, exists = v.FindUser(id)
			return nil
		}); err != nil {
			return err
		}
		if err := s.settle(ctx, "update_user"); err != nil {
			return err
		}
		if !exists {
			return nil
		}
		merged := patch.Apply(base)
		err := s.apply(ctx, "update_user", func(tx domain.Transaction) error {
			var err error
			updated, err = tx.UpdateUser(id, func(u *domain.User) error {
				*u = merged
				return nil
			})
			return err
		})
		if isNotFound(err) {
			return nil
		}
		found = err == nil
		return err
	})
	return updated, found, err
}

// DeleteUser removes a user. Deleting an absent id succeeds and reports false.
func (s *Service) DeleteUser(ctx context.Context, id string) (bool, error) {
	var removed bool
	err := s.run(ctx, "delete_user", func(ctx context.Context) error {
		if err := s.settle(ctx, "delete_user"); err != nil {
			return err
		}
		return s.apply(ctx, "delete_user", func(tx domain.Transaction) error {
			removed = tx.DeleteUser(id)
			return nil
		})
	})
	return removed, err
}

// ToggleUserStatus flips the stored status between active and inactive.
func (s *Service) ToggleUserStatus(ctx context.Context, id string) (domain.User, bool, error) {
	var (
		updated domain.User
		found   bool
	)
	err := s.run(ctx, "toggle_user_status", func(ctx context.Context) error {
		if err := s.settle(ctx, "toggle_user_status"); err != nil {
			return err
		}
		err := s.apply(ctx, "toggle_user_status", func(tx domain.Transaction) error {
			var err error
			updated, err = tx.UpdateUser(id, func(u *domain.User) error {
				u.Status = u.Status.Toggled()
				return nil
			})
			return err
		})
		if isNotFound(err) {
			return nil
		}
		found = err == nil
		return err
	})
	return updated, found, err
}

// SearchUsers matches query case-insensitively against name, email and
// company. An empty query returns every user.
func (s *Service) SearchUsers(ctx context.Context, query string) ([]domain.User, error) {
	query = strings.TrimSpace(query)
	out := []domain.User{}
	err := s.run(ctx, "search_users", func(ctx context.Context) error {
		if err := s.settle(ctx, "search_users"); err != nil {
			return err
		}
		return s.view(ctx, func(v domain.TransactionView) error {
			for _, u := range v.ListUsers() {
				if analytics.MatchUser(u, query) {
					out = append(out, u)
				}
			}
			return nil
		})
	})
	return out, err
}

// UserOverview bundles the users page figures.
type UserOverview struct {
	Stats     analytics.UserStats `json:"stats"`
	Countries []string            `json:"countries"`
}

// FetchUserStats computes user counts relative to the service clock along
// with the sorted list of user countries.
func (s *Service) FetchUserStats(ctx context.Context) (UserOverview, error) {
	users, err := s.FetchUsers(ctx)
	if err != nil {
		return UserOverview{}, err
	}
	return UserOverview{
		Stats:     analytics.ComputeUserStats(users, s.now()),
		Countries: analytics.UserCountries(users),
	}, nil
}

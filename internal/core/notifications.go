package core

import (
	"context"

	"golang.org/x/sync/errgroup"

	"emissiondesk/internal/analytics"
	"emissiondesk/pkg/domain"
)

// FetchNotifications returns every notification.
func (s *Service) FetchNotifications(ctx context.Context) ([]domain.Notification, error) {
	var out []domain.Notification
	err := s.run(ctx, "fetch_notifications", func(ctx context.Context) error {
		if err := s.settle(ctx, "fetch_notifications"); err != nil {
			return err
		}
		var err error
		out, err = s.listNotifications(ctx)
		return err
	})
	return out, err
}

// MarkNotificationAsRead sets one notification read and returns the full
// list. An unknown id leaves the list unchanged.
func (s *Service) MarkNotificationAsRead(ctx context.Context, id int) ([]domain.Notification, error) {
	var out []domain.Notification
	err := s.run(ctx, "mark_notification_read", func(ctx context.Context) error {
		if err := s.settle(ctx, "mark_notification_read"); err != nil {
			return err
		}
		err := s.apply(ctx, "mark_notification_read", func(tx domain.Transaction) error {
			_, err := tx.UpdateNotification(id, func(n *domain.Notification) error {
				n.IsRead = true
				return nil
			})
			if isNotFound(err) {
				return nil
			}
			return err
		})
		if err != nil {
			return err
		}
		out, err = s.listNotifications(ctx)
		return err
	})
	return out, err
}

// MarkAllNotificationsAsRead sets every notification read and returns the list.
func (s *Service) MarkAllNotificationsAsRead(ctx context.Context) ([]domain.Notification, error) {
	var out []domain.Notification
	err := s.run(ctx, "mark_all_notifications_read", func(ctx context.Context) error {
		if err := s.settle(ctx, "mark_all_notifications_read"); err != nil {
			return err
		}
		err := s.apply(ctx, "mark_all_notifications_read", func(tx domain.Transaction) error {
			for _, n := range tx.Snapshot().ListNotifications() {
				if n.IsRead {
					continue
				}
				if _, err := tx.UpdateNotification(n.ID, func(n *domain.Notification) error {
					n.IsRead = true
					return nil
				}); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		out, err = s.listNotifications(ctx)
		return err
	})
	return out, err
}

// MarkNotificationsAsRead marks each id read concurrently. Every id goes
// through its own delay and failure gate, and one failure does not cancel
// the others. The first failure is returned once every mark has settled,
// alongside a list reflecting every mark that succeeded.
func (s *Service) MarkNotificationsAsRead(ctx context.Context, ids []int) ([]domain.Notification, error) {
	var g errgroup.Group
	for _, id := range ids {
		g.Go(func() error {
			_, err := s.MarkNotificationAsRead(ctx, id)
			return err
		})
	}
	err := g.Wait()
	list, lerr := s.listNotifications(ctx)
	if err == nil {
		err = lerr
	}
	return list, err
}

// DeleteNotification removes a notification and returns the remaining list.
// An unknown id leaves the list unchanged.
func (s *Service) DeleteNotification(ctx context.Context, id int) ([]domain.Notification, error) {
	var out []domain.Notification
	err := s.run(ctx, "delete_notification", func(ctx context.Context) error {
		if err := s.settle(ctx, "delete_notification"); err != nil {
			return err
		}
		if err := s.apply(ctx, "delete_notification", func(tx domain.Transaction) error {
			tx.DeleteNotification(id)
			return nil
		}); err != nil {
			return err
		}
		var err error
		out, err = s.listNotifications(ctx)
		return err
	})
	return out, err
}

// CreateNotification stores a notification under id max(existing)+1. A zero
// CreatedAt is stamped with the service clock.
func (s *Service) CreateNotification(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	var created domain.Notification
	err := s.run(ctx, "create_notification", func(ctx context.Context) error {
		if err := s.settle(ctx, "create_notification"); err != nil {
			return err
		}
		if n.CreatedAt.IsZero() {
			n.CreatedAt = s.now()
		}
		return s.apply(ctx, "create_notification", func(tx domain.Transaction) error {
			var err error
			created, err = tx.CreateNotification(n)
			return err
		})
	})
	return created, err
}

// FetchNotificationDistribution counts notifications by category and priority.
func (s *Service) FetchNotificationDistribution(ctx context.Context) (analytics.NotificationDistribution, error) {
	ns, err := s.FetchNotifications(ctx)
	if err != nil {
		return analytics.NotificationDistribution{}, err
	}
	return analytics.DistributeNotifications(ns), nil
}

// FilterNotifications fetches notifications and applies f.
func (s *Service) FilterNotifications(ctx context.Context, f analytics.NotificationFilter) ([]domain.Notification, error) {
	ns, err := s.FetchNotifications(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.FilterNotifications(ns, f), nil
}

func (s *Service) listNotifications(ctx context.Context) ([]domain.Notification, error) {
	var out []domain.Notification
	err := s.view(ctx, func(v domain.TransactionView) error {
		out = v.ListNotifications()
		return nil
	})
	return out, err
}

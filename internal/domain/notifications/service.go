package notifications

import (
	"context"
	"log/slog"
)

type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

type Service struct {
	store        StoreAPI
	Mailer       Mailer
	EmailEnabled bool
	DefaultFrom  string
}

func New(store StoreAPI, mailer Mailer, emailEnabled bool, from string) *Service {
	if from == "" {
		from = "no-reply@example.com"
	}
	return &Service{store: store, Mailer: mailer, EmailEnabled: emailEnabled, DefaultFrom: from}
}

func (s *Service) Create(ctx context.Context, userID, ntype, title, body, link string) error {
	if err := s.store.CreateNotification(ctx, userID, ntype, title, body, link); err != nil {
		return err
	}

	if s.Mailer == nil || !s.EmailEnabled {
		return nil
	}

	email, err := s.store.UserEmail(ctx, userID)
	if err != nil {
		slog.Warn("notification email lookup failed", "err", err)
		return nil
	}
	if email == "" {
		return nil
	}
	if err := s.Mailer.Send(ctx, s.DefaultFrom, email, title, body); err != nil {
		slog.Warn("notification email send failed", "err", err)
	}
	return nil
}

// Notify fans a notification out to several users; per-recipient failures are
// logged and do not stop the rest of the fan-out.
func (s *Service) Notify(ctx context.Context, userIDs []string, ntype, title, body, link string) {
	for _, userID := range userIDs {
		if userID == "" {
			continue
		}
		if err := s.Create(ctx, userID, ntype, title, body, link); err != nil {
			slog.Warn("notification create failed", "userId", userID, "type", ntype, "err", err)
		}
	}
}

func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]map[string]any, error) {
	return s.store.ListNotifications(ctx, userID, limit, offset)
}

func (s *Service) Count(ctx context.Context, userID string) (int, error) {
	return s.store.CountNotifications(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.store.MarkRead(ctx, userID, notificationID)
}

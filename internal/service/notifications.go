package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sirupsen/logrus"

	"mutirao/db"
	"mutirao/internal/apperr"
	"mutirao/models"
)

// NotificationService stores notification records and serves the inbox.
// Emission is best-effort: a failed insert is logged and never propagated,
// so the state transition it accompanies stands.
type NotificationService struct {
	store Store
	log   *logrus.Entry
}

func NewNotificationService(store Store, log *logrus.Logger) *NotificationService {
	return &NotificationService{store: store, log: log.WithField("service", "notifications")}
}

// Notify records a notification for a user. Fire-and-forget.
func (s *NotificationService) Notify(ctx context.Context, typ models.NotificationType, recipientID, message string, requestID, senderID *string) {
	n := &db.Notification{
		UserID:    recipientID,
		SenderID:  senderID,
		RequestID: requestID,
		Type:      typ,
		Message:   message,
	}
	if err := s.store.CreateNotification(ctx, n); err != nil {
		s.log.WithError(err).
			WithField("type", typ).
			WithField("recipient", recipientID).
			Warn("notification dropped")
	}
}

func (s *NotificationService) ListForUser(ctx context.Context, userID string) ([]db.Notification, error) {
	return s.store.ListNotificationsByUser(ctx, userID)
}

// MarkRead flips the read flag. Owner-only: a notification belonging to
// another user reads as not found.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	err := s.store.MarkNotificationRead(ctx, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("notification not found")
	}
	return err
}

func (s *NotificationService) CountUnread(ctx context.Context, userID string) (int, error) {
	return s.store.CountUnreadNotifications(ctx, userID)
}

// displayName resolves a user's name for notification text, falling back
// when the identity store cannot be reached.
func displayName(ctx context.Context, store Store, userID string) string {
	u, err := store.GetUser(ctx, userID)
	if err != nil {
		return "A neighbor"
	}
	return u.Name
}

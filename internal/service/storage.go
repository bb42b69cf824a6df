package service

import (
	"context"

	"mutirao/db"
	"mutirao/models"
)

// Store is the persistence surface the services depend on. db.Storage
// implements it; tests substitute a mock.
type Store interface {
	GetUser(ctx context.Context, id string) (*db.User, error)

	ListCategories(ctx context.Context) ([]db.Category, error)

	CreateRequest(ctx context.Context, r *db.Request) error
	GetRequest(ctx context.Context, id string) (*db.Request, error)
	GetRequestRow(ctx context.Context, id, viewerID string) (*db.RequestRow, error)
	ListRequests(ctx context.Context, viewerID string, f models.ListRequestsFilter) ([]db.RequestRow, error)
	UpdateRequestFields(ctx context.Context, r *db.Request) (*db.Request, error)
	DeleteRequest(ctx context.Context, id string) error
	AssignHelper(ctx context.Context, requestID, authorID, helperID string) (*db.Request, error)
	FinalizeRequest(ctx context.Context, requestID, authorID string) (*db.Request, error)
	CancelRequest(ctx context.Context, requestID, authorID string) (*db.Request, error)
	WithdrawHelper(ctx context.Context, requestID, helperID string) (*db.Request, error)

	CreateInterest(ctx context.Context, i *db.Interest) error
	ListInterestsByRequest(ctx context.Context, requestID string) ([]db.InterestRow, error)
	HasInterest(ctx context.Context, requestID, userID string) (bool, error)

	CreateRating(ctx context.Context, r *db.Rating) error
	ListRatingsForUser(ctx context.Context, userID string) ([]db.Rating, error)
	AverageRatingForUser(ctx context.Context, userID string) (float64, int, error)

	GetOrCreateChat(ctx context.Context, requestID, participant1ID, participant2ID string) (*db.Chat, error)
	GetChat(ctx context.Context, id string) (*db.Chat, error)
	ListChatsByRequestForUser(ctx context.Context, requestID, userID string) ([]db.ChatRow, error)
	CreateMessage(ctx context.Context, m *db.Message) error
	ListMessagesByChat(ctx context.Context, chatID string) ([]db.MessageRow, error)

	CreateNotification(ctx context.Context, n *db.Notification) error
	ListNotificationsByUser(ctx context.Context, userID string) ([]db.Notification, error)
	MarkNotificationRead(ctx context.Context, id, userID string) error
	CountUnreadNotifications(ctx context.Context, userID string) (int, error)
}

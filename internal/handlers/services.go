package handlers

import (
	"context"

	"mutirao/db"
	"mutirao/internal/service"
	"mutirao/models"
)

// Service surfaces the handlers depend on; the concrete implementations live
// in internal/service, tests substitute mocks.

type RequestsService interface {
	Create(ctx context.Context, authorID string, input models.CreateRequestInput) (*db.Request, error)
	Get(ctx context.Context, id, viewerID string) (*service.RequestDetail, error)
	List(ctx context.Context, viewerID string, f models.ListRequestsFilter) ([]db.RequestRow, error)
	Update(ctx context.Context, id, callerID string, input models.UpdateRequestInput) (*db.Request, error)
	Delete(ctx context.Context, id, callerID string) error
	DeclareInterest(ctx context.Context, requestID, userID string) (*db.Interest, error)
	AssignHelper(ctx context.Context, requestID, callerID, candidateID string) (*db.Request, error)
	Finalize(ctx context.Context, requestID, callerID string) (*db.Request, error)
	Withdraw(ctx context.Context, requestID, callerID string) (*db.Request, error)
	Cancel(ctx context.Context, requestID, callerID string) (*db.Request, error)
	Categories(ctx context.Context) ([]db.Category, error)
}

type RatingsService interface {
	Rate(ctx context.Context, requestID, raterID string, input models.RateInput) (*db.Rating, error)
	ListForUser(ctx context.Context, userID string) ([]db.Rating, error)
	AverageForUser(ctx context.Context, userID string) (*service.AverageRating, error)
}

type ChatsService interface {
	OpenOrGet(ctx context.Context, requestID, callerID, otherID string) (*db.Chat, error)
	ListForRequest(ctx context.Context, requestID, callerID string) ([]db.ChatRow, error)
	Get(ctx context.Context, chatID, callerID string) (*db.Chat, error)
	Messages(ctx context.Context, chatID, callerID string) ([]db.MessageRow, error)
	PostMessage(ctx context.Context, chatID, senderID, content string) (*db.Message, error)
}

type NotificationsService interface {
	ListForUser(ctx context.Context, userID string) ([]db.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
	CountUnread(ctx context.Context, userID string) (int, error)
}

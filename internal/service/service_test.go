package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"mutirao/db"
	"mutirao/internal/apperr"
	"mutirao/internal/service"
	"mutirao/models"
)

// MockStore implements service.Store. Funcs left nil fall back to benign
// defaults so each test only wires what it cares about.
type MockStore struct {
	GetUserFunc             func(ctx context.Context, id string) (*db.User, error)
	GetRequestFunc          func(ctx context.Context, id string) (*db.Request, error)
	CreateInterestFunc      func(ctx context.Context, i *db.Interest) error
	HasInterestFunc         func(ctx context.Context, requestID, userID string) (bool, error)
	AssignHelperFunc        func(ctx context.Context, requestID, authorID, helperID string) (*db.Request, error)
	FinalizeRequestFunc     func(ctx context.Context, requestID, authorID string) (*db.Request, error)
	CancelRequestFunc       func(ctx context.Context, requestID, authorID string) (*db.Request, error)
	WithdrawHelperFunc      func(ctx context.Context, requestID, helperID string) (*db.Request, error)
	UpdateRequestFieldsFunc func(ctx context.Context, r *db.Request) (*db.Request, error)
	CreateRatingFunc        func(ctx context.Context, r *db.Rating) error
	GetOrCreateChatFunc     func(ctx context.Context, requestID, p1, p2 string) (*db.Chat, error)
	GetChatFunc             func(ctx context.Context, id string) (*db.Chat, error)
	CreateMessageFunc       func(ctx context.Context, m *db.Message) error
	CreateNotificationFunc  func(ctx context.Context, n *db.Notification) error

	Notifications []*db.Notification
}

func (m *MockStore) GetUser(ctx context.Context, id string) (*db.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, id)
	}
	return &db.User{ID: id, Name: "Alice"}, nil
}

func (m *MockStore) ListCategories(ctx context.Context) ([]db.Category, error) {
	return []db.Category{{ID: "cat-1", Name: "Compras"}}, nil
}

func (m *MockStore) CreateRequest(ctx context.Context, r *db.Request) error {
	r.ID = "req-1"
	return nil
}

func (m *MockStore) GetRequest(ctx context.Context, id string) (*db.Request, error) {
	if m.GetRequestFunc != nil {
		return m.GetRequestFunc(ctx, id)
	}
	return &db.Request{ID: id, Title: "Fix my fence", AuthorID: "author-1", Status: models.StatusOpen}, nil
}

func (m *MockStore) GetRequestRow(ctx context.Context, id, viewerID string) (*db.RequestRow, error) {
	return &db.RequestRow{Request: db.Request{ID: id, Title: "Fix my fence", AuthorID: "author-1", Status: models.StatusOpen}}, nil
}

func (m *MockStore) ListRequests(ctx context.Context, viewerID string, f models.ListRequestsFilter) ([]db.RequestRow, error) {
	return []db.RequestRow{}, nil
}

func (m *MockStore) UpdateRequestFields(ctx context.Context, r *db.Request) (*db.Request, error) {
	if m.UpdateRequestFieldsFunc != nil {
		return m.UpdateRequestFieldsFunc(ctx, r)
	}
	return r, nil
}

func (m *MockStore) DeleteRequest(ctx context.Context, id string) error { return nil }

func (m *MockStore) AssignHelper(ctx context.Context, requestID, authorID, helperID string) (*db.Request, error) {
	if m.AssignHelperFunc != nil {
		return m.AssignHelperFunc(ctx, requestID, authorID, helperID)
	}
	return &db.Request{ID: requestID, Title: "Fix my fence", AuthorID: authorID, HelperID: &helperID, Status: models.StatusInProgress}, nil
}

func (m *MockStore) FinalizeRequest(ctx context.Context, requestID, authorID string) (*db.Request, error) {
	if m.FinalizeRequestFunc != nil {
		return m.FinalizeRequestFunc(ctx, requestID, authorID)
	}
	helper := "helper-1"
	return &db.Request{ID: requestID, Title: "Fix my fence", AuthorID: authorID, HelperID: &helper, Status: models.StatusFinalized}, nil
}

func (m *MockStore) CancelRequest(ctx context.Context, requestID, authorID string) (*db.Request, error) {
	if m.CancelRequestFunc != nil {
		return m.CancelRequestFunc(ctx, requestID, authorID)
	}
	return &db.Request{ID: requestID, Title: "Fix my fence", AuthorID: authorID, Status: models.StatusCancelled}, nil
}

func (m *MockStore) WithdrawHelper(ctx context.Context, requestID, helperID string) (*db.Request, error) {
	if m.WithdrawHelperFunc != nil {
		return m.WithdrawHelperFunc(ctx, requestID, helperID)
	}
	return &db.Request{ID: requestID, Title: "Fix my fence", AuthorID: "author-1", Status: models.StatusOpen}, nil
}

func (m *MockStore) CreateInterest(ctx context.Context, i *db.Interest) error {
	if m.CreateInterestFunc != nil {
		return m.CreateInterestFunc(ctx, i)
	}
	i.ID = "interest-1"
	return nil
}

func (m *MockStore) ListInterestsByRequest(ctx context.Context, requestID string) ([]db.InterestRow, error) {
	return []db.InterestRow{}, nil
}

func (m *MockStore) HasInterest(ctx context.Context, requestID, userID string) (bool, error) {
	if m.HasInterestFunc != nil {
		return m.HasInterestFunc(ctx, requestID, userID)
	}
	return true, nil
}

func (m *MockStore) CreateRating(ctx context.Context, r *db.Rating) error {
	if m.CreateRatingFunc != nil {
		return m.CreateRatingFunc(ctx, r)
	}
	r.ID = "rating-1"
	return nil
}

func (m *MockStore) ListRatingsForUser(ctx context.Context, userID string) ([]db.Rating, error) {
	return []db.Rating{}, nil
}

func (m *MockStore) AverageRatingForUser(ctx context.Context, userID string) (float64, int, error) {
	return 4.5, 2, nil
}

func (m *MockStore) GetOrCreateChat(ctx context.Context, requestID, p1, p2 string) (*db.Chat, error) {
	if m.GetOrCreateChatFunc != nil {
		return m.GetOrCreateChatFunc(ctx, requestID, p1, p2)
	}
	return &db.Chat{ID: "chat-1", RequestID: requestID, Participant1ID: p1, Participant2ID: p2}, nil
}

func (m *MockStore) GetChat(ctx context.Context, id string) (*db.Chat, error) {
	if m.GetChatFunc != nil {
		return m.GetChatFunc(ctx, id)
	}
	return &db.Chat{ID: id, RequestID: "req-1", Participant1ID: "author-1", Participant2ID: "helper-1"}, nil
}

func (m *MockStore) ListChatsByRequestForUser(ctx context.Context, requestID, userID string) ([]db.ChatRow, error) {
	return []db.ChatRow{}, nil
}

func (m *MockStore) CreateMessage(ctx context.Context, msg *db.Message) error {
	if m.CreateMessageFunc != nil {
		return m.CreateMessageFunc(ctx, msg)
	}
	msg.ID = "message-1"
	return nil
}

func (m *MockStore) ListMessagesByChat(ctx context.Context, chatID string) ([]db.MessageRow, error) {
	return []db.MessageRow{}, nil
}

func (m *MockStore) CreateNotification(ctx context.Context, n *db.Notification) error {
	if m.CreateNotificationFunc != nil {
		return m.CreateNotificationFunc(ctx, n)
	}
	m.Notifications = append(m.Notifications, n)
	return nil
}

func (m *MockStore) ListNotificationsByUser(ctx context.Context, userID string) ([]db.Notification, error) {
	return []db.Notification{}, nil
}

func (m *MockStore) MarkNotificationRead(ctx context.Context, id, userID string) error { return nil }

func (m *MockStore) CountUnreadNotifications(ctx context.Context, userID string) (int, error) {
	return 0, nil
}

func newServices(store *MockStore) (*service.RequestService, *service.RatingService, *service.ChatService) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	notifier := service.NewNotificationService(store, log)
	return service.NewRequestService(store, notifier, log),
		service.NewRatingService(store, notifier, log),
		service.NewChatService(store, notifier, log)
}

func uniqueViolation() error {
	return &pq.Error{Code: "23505"}
}

// Interest registry

func TestDeclareInterestNotifiesAuthor(t *testing.T) {
	store := &MockStore{}
	requests, _, _ := newServices(store)

	interest, err := requests.DeclareInterest(context.Background(), "req-1", "user-2")
	require.NoError(t, err)
	require.Equal(t, "req-1", interest.RequestID)
	require.Equal(t, "user-2", interest.UserID)

	require.Len(t, store.Notifications, 1)
	require.Equal(t, models.NotifInterestReceived, store.Notifications[0].Type)
	require.Equal(t, "author-1", store.Notifications[0].UserID)
	require.Contains(t, store.Notifications[0].Message, "Fix my fence")
}

func TestDeclareInterestSelfRejected(t *testing.T) {
	store := &MockStore{}
	requests, _, _ := newServices(store)

	_, err := requests.DeclareInterest(context.Background(), "req-1", "author-1")
	require.Equal(t, apperr.KindInvalidOperation, apperr.KindOf(err))
	require.Empty(t, store.Notifications)
}

func TestDeclareInterestDuplicateIsConflict(t *testing.T) {
	store := &MockStore{
		CreateInterestFunc: func(ctx context.Context, i *db.Interest) error {
			return uniqueViolation()
		},
	}
	requests, _, _ := newServices(store)

	_, err := requests.DeclareInterest(context.Background(), "req-1", "user-2")
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestDeclareInterestRequestMissing(t *testing.T) {
	store := &MockStore{
		GetRequestFunc: func(ctx context.Context, id string) (*db.Request, error) {
			return nil, sql.ErrNoRows
		},
	}
	requests, _, _ := newServices(store)

	_, err := requests.DeclareInterest(context.Background(), "missing", "user-2")
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

// Lifecycle engine

func TestAssignHelperCreatesChatAndNotifies(t *testing.T) {
	var chatP1, chatP2 string
	store := &MockStore{
		GetOrCreateChatFunc: func(ctx context.Context, requestID, p1, p2 string) (*db.Chat, error) {
			chatP1, chatP2 = p1, p2
			return &db.Chat{ID: "chat-1", RequestID: requestID, Participant1ID: p1, Participant2ID: p2}, nil
		},
	}
	requests, _, _ := newServices(store)

	updated, err := requests.AssignHelper(context.Background(), "req-1", "author-1", "zz-helper")
	require.NoError(t, err)
	require.Equal(t, models.StatusInProgress, updated.Status)
	require.NotNil(t, updated.HelperID)
	require.Equal(t, "zz-helper", *updated.HelperID)

	// pair is canonical regardless of who is author
	require.Equal(t, "author-1", chatP1)
	require.Equal(t, "zz-helper", chatP2)

	require.Len(t, store.Notifications, 1)
	require.Equal(t, models.NotifHelperChosen, store.Notifications[0].Type)
	require.Equal(t, "zz-helper", store.Notifications[0].UserID)
}

func TestAssignHelperRequiresAuthor(t *testing.T) {
	store := &MockStore{}
	requests, _, _ := newServices(store)

	_, err := requests.AssignHelper(context.Background(), "req-1", "intruder", "user-2")
	require.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestAssignHelperRequiresInterest(t *testing.T) {
	store := &MockStore{
		HasInterestFunc: func(ctx context.Context, requestID, userID string) (bool, error) {
			return false, nil
		},
	}
	requests, _, _ := newServices(store)

	_, err := requests.AssignHelper(context.Background(), "req-1", "author-1", "user-2")
	require.Equal(t, apperr.KindInvalidOperation, apperr.KindOf(err))
}

func TestAssignHelperLostRaceIsConflict(t *testing.T) {
	other := "user-3"
	calls := 0
	store := &MockStore{
		GetRequestFunc: func(ctx context.Context, id string) (*db.Request, error) {
			calls++
			if calls == 1 {
				// first read still sees the request OPEN
				return &db.Request{ID: id, Title: "Fix my fence", AuthorID: "author-1", Status: models.StatusOpen}, nil
			}
			// by the time the conditional write ran, a rival assignment won
			return &db.Request{ID: id, Title: "Fix my fence", AuthorID: "author-1", HelperID: &other, Status: models.StatusInProgress}, nil
		},
		AssignHelperFunc: func(ctx context.Context, requestID, authorID, helperID string) (*db.Request, error) {
			return nil, sql.ErrNoRows
		},
	}
	requests, _, _ := newServices(store)

	_, err := requests.AssignHelper(context.Background(), "req-1", "author-1", "user-2")
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestFinalizeNotifiesHelper(t *testing.T) {
	helper := "helper-1"
	store := &MockStore{
		GetRequestFunc: func(ctx context.Context, id string) (*db.Request, error) {
			return &db.Request{ID: id, Title: "Fix my fence", AuthorID: "author-1", HelperID: &helper, Status: models.StatusInProgress}, nil
		},
	}
	requests, _, _ := newServices(store)

	updated, err := requests.Finalize(context.Background(), "req-1", "author-1")
	require.NoError(t, err)
	require.Equal(t, models.StatusFinalized, updated.Status)

	require.Len(t, store.Notifications, 1)
	require.Equal(t, models.NotifRequestFinalized, store.Notifications[0].Type)
	require.Equal(t, "helper-1", store.Notifications[0].UserID)
}

func TestFinalizeOpenRequestRejected(t *testing.T) {
	store := &MockStore{
		FinalizeRequestFunc: func(ctx context.Context, requestID, authorID string) (*db.Request, error) {
			return nil, sql.ErrNoRows
		},
	}
	requests, _, _ := newServices(store)

	_, err := requests.Finalize(context.Background(), "req-1", "author-1")
	require.Equal(t, apperr.KindInvalidOperation, apperr.KindOf(err))
}

func TestWithdrawClearsHelperAndNotifiesAuthor(t *testing.T) {
	helper := "helper-1"
	store := &MockStore{
		GetRequestFunc: func(ctx context.Context, id string) (*db.Request, error) {
			return &db.Request{ID: id, Title: "Fix my fence", AuthorID: "author-1", HelperID: &helper, Status: models.StatusInProgress}, nil
		},
	}
	requests, _, _ := newServices(store)

	updated, err := requests.Withdraw(context.Background(), "req-1", "helper-1")
	require.NoError(t, err)
	require.Equal(t, models.StatusOpen, updated.Status)
	require.Nil(t, updated.HelperID)

	require.Len(t, store.Notifications, 1)
	require.Equal(t, models.NotifHelperWithdrew, store.Notifications[0].Type)
	require.Equal(t, "author-1", store.Notifications[0].UserID)
}

func TestWithdrawOnlyByCurrentHelper(t *testing.T) {
	helper := "helper-1"
	store := &MockStore{
		GetRequestFunc: func(ctx context.Context, id string) (*db.Request, error) {
			return &db.Request{ID: id, AuthorID: "author-1", HelperID: &helper, Status: models.StatusInProgress}, nil
		},
	}
	requests, _, _ := newServices(store)

	_, err := requests.Withdraw(context.Background(), "req-1", "somebody-else")
	require.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestCancelFinalizedRejected(t *testing.T) {
	helper := "helper-1"
	store := &MockStore{
		GetRequestFunc: func(ctx context.Context, id string) (*db.Request, error) {
			return &db.Request{ID: id, AuthorID: "author-1", HelperID: &helper, Status: models.StatusFinalized}, nil
		},
		CancelRequestFunc: func(ctx context.Context, requestID, authorID string) (*db.Request, error) {
			return nil, sql.ErrNoRows
		},
	}
	requests, _, _ := newServices(store)

	_, err := requests.Cancel(context.Background(), "req-1", "author-1")
	require.Equal(t, apperr.KindInvalidOperation, apperr.KindOf(err))
}

func TestCancelInProgressNotifiesHelper(t *testing.T) {
	helper := "helper-1"
	store := &MockStore{
		GetRequestFunc: func(ctx context.Context, id string) (*db.Request, error) {
			return &db.Request{ID: id, Title: "Fix my fence", AuthorID: "author-1", HelperID: &helper, Status: models.StatusInProgress}, nil
		},
	}
	requests, _, _ := newServices(store)

	updated, err := requests.Cancel(context.Background(), "req-1", "author-1")
	require.NoError(t, err)
	require.Equal(t, models.StatusCancelled, updated.Status)

	require.Len(t, store.Notifications, 1)
	require.Equal(t, models.NotifRequestCancelled, store.Notifications[0].Type)
	require.Equal(t, "helper-1", store.Notifications[0].UserID)
}

func TestUpdateTerminalRequestRejected(t *testing.T) {
	store := &MockStore{
		GetRequestFunc: func(ctx context.Context, id string) (*db.Request, error) {
			return &db.Request{ID: id, AuthorID: "author-1", Status: models.StatusCancelled}, nil
		},
	}
	requests, _, _ := newServices(store)

	title := "New title"
	_, err := requests.Update(context.Background(), "req-1", "author-1", models.UpdateRequestInput{Title: &title})
	require.Equal(t, apperr.KindInvalidOperation, apperr.KindOf(err))
}

func TestNotificationFailureDoesNotFailTransition(t *testing.T) {
	helper := "helper-1"
	store := &MockStore{
		GetRequestFunc: func(ctx context.Context, id string) (*db.Request, error) {
			return &db.Request{ID: id, Title: "Fix my fence", AuthorID: "author-1", HelperID: &helper, Status: models.StatusInProgress}, nil
		},
		CreateNotificationFunc: func(ctx context.Context, n *db.Notification) error {
			return sql.ErrConnDone
		},
	}
	requests, _, _ := newServices(store)

	updated, err := requests.Finalize(context.Background(), "req-1", "author-1")
	require.NoError(t, err)
	require.Equal(t, models.StatusFinalized, updated.Status)
}

// Rating ledger

func finalizedStore(helper string) *MockStore {
	return &MockStore{
		GetRequestFunc: func(ctx context.Context, id string) (*db.Request, error) {
			return &db.Request{ID: id, Title: "Fix my fence", AuthorID: "author-1", HelperID: &helper, Status: models.StatusFinalized}, nil
		},
	}
}

func TestRateByAuthorTargetsHelper(t *testing.T) {
	store := finalizedStore("helper-1")
	_, ratings, _ := newServices(store)

	rating, err := ratings.Rate(context.Background(), "req-1", "author-1", models.RateInput{Score: 5, Comment: "great"})
	require.NoError(t, err)
	require.Equal(t, "helper-1", rating.RateeID)
	require.Equal(t, 5, rating.Score)

	require.Len(t, store.Notifications, 1)
	require.Equal(t, models.NotifRatingReceived, store.Notifications[0].Type)
	require.Equal(t, "helper-1", store.Notifications[0].UserID)
}

func TestRateByHelperTargetsAuthor(t *testing.T) {
	store := finalizedStore("helper-1")
	_, ratings, _ := newServices(store)

	rating, err := ratings.Rate(context.Background(), "req-1", "helper-1", models.RateInput{Score: 4})
	require.NoError(t, err)
	require.Equal(t, "author-1", rating.RateeID)
}

func TestRateScoreOutOfRange(t *testing.T) {
	_, ratings, _ := newServices(finalizedStore("helper-1"))

	_, err := ratings.Rate(context.Background(), "req-1", "author-1", models.RateInput{Score: 6})
	require.Equal(t, apperr.KindInvalid, apperr.KindOf(err))

	_, err = ratings.Rate(context.Background(), "req-1", "author-1", models.RateInput{Score: 0})
	require.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestRateRequiresFinalizedWithHelper(t *testing.T) {
	store := &MockStore{
		GetRequestFunc: func(ctx context.Context, id string) (*db.Request, error) {
			return &db.Request{ID: id, AuthorID: "author-1", Status: models.StatusOpen}, nil
		},
	}
	_, ratings, _ := newServices(store)

	_, err := ratings.Rate(context.Background(), "req-1", "author-1", models.RateInput{Score: 3})
	require.Equal(t, apperr.KindInvalidOperation, apperr.KindOf(err))
}

func TestRateByStrangerForbidden(t *testing.T) {
	_, ratings, _ := newServices(finalizedStore("helper-1"))

	_, err := ratings.Rate(context.Background(), "req-1", "stranger", models.RateInput{Score: 3})
	require.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestRateTwiceIsConflict(t *testing.T) {
	store := finalizedStore("helper-1")
	store.CreateRatingFunc = func(ctx context.Context, r *db.Rating) error {
		return uniqueViolation()
	}
	_, ratings, _ := newServices(store)

	_, err := ratings.Rate(context.Background(), "req-1", "author-1", models.RateInput{Score: 5})
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

// Conversation bootstrap

func TestOpenChatCanonicalUnderArgumentOrder(t *testing.T) {
	var pairs [][2]string
	store := &MockStore{
		GetRequestFunc: func(ctx context.Context, id string) (*db.Request, error) {
			return &db.Request{ID: id, AuthorID: "aa-author", Status: models.StatusOpen}, nil
		},
		GetOrCreateChatFunc: func(ctx context.Context, requestID, p1, p2 string) (*db.Chat, error) {
			pairs = append(pairs, [2]string{p1, p2})
			return &db.Chat{ID: "chat-1", RequestID: requestID, Participant1ID: p1, Participant2ID: p2}, nil
		},
	}
	_, _, chats := newServices(store)

	first, err := chats.OpenOrGet(context.Background(), "req-1", "aa-author", "bb-user")
	require.NoError(t, err)
	second, err := chats.OpenOrGet(context.Background(), "req-1", "bb-user", "aa-author")
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Len(t, pairs, 2)
	require.Equal(t, pairs[0], pairs[1])
	require.Equal(t, "aa-author", pairs[0][0])
	require.Equal(t, "bb-user", pairs[0][1])
}

func TestOpenChatRequiresAuthorAndInterested(t *testing.T) {
	store := &MockStore{
		GetRequestFunc: func(ctx context.Context, id string) (*db.Request, error) {
			return &db.Request{ID: id, AuthorID: "aa-author", Status: models.StatusOpen}, nil
		},
		HasInterestFunc: func(ctx context.Context, requestID, userID string) (bool, error) {
			return false, nil
		},
	}
	_, _, chats := newServices(store)

	// neither side is the author
	_, err := chats.OpenOrGet(context.Background(), "req-1", "bb-user", "cc-user")
	require.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	// author with a user who never declared interest
	_, err = chats.OpenOrGet(context.Background(), "req-1", "aa-author", "bb-user")
	require.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestOpenChatAllowsAssignedHelperWithoutInterestCheck(t *testing.T) {
	helper := "bb-helper"
	store := &MockStore{
		GetRequestFunc: func(ctx context.Context, id string) (*db.Request, error) {
			return &db.Request{ID: id, AuthorID: "aa-author", HelperID: &helper, Status: models.StatusInProgress}, nil
		},
		HasInterestFunc: func(ctx context.Context, requestID, userID string) (bool, error) {
			return false, nil
		},
	}
	_, _, chats := newServices(store)

	chat, err := chats.OpenOrGet(context.Background(), "req-1", "aa-author", "bb-helper")
	require.NoError(t, err)
	require.Equal(t, "chat-1", chat.ID)
}

func TestPostMessageNotifiesOtherParticipant(t *testing.T) {
	store := &MockStore{}
	_, _, chats := newServices(store)

	message, err := chats.PostMessage(context.Background(), "chat-1", "author-1", "hello there")
	require.NoError(t, err)
	require.Equal(t, "hello there", message.Content)

	require.Len(t, store.Notifications, 1)
	require.Equal(t, models.NotifNewMessage, store.Notifications[0].Type)
	require.Equal(t, "helper-1", store.Notifications[0].UserID)
}

func TestPostMessageEmptyContentRejected(t *testing.T) {
	store := &MockStore{}
	_, _, chats := newServices(store)

	_, err := chats.PostMessage(context.Background(), "chat-1", "author-1", "   ")
	require.Equal(t, apperr.KindInvalidOperation, apperr.KindOf(err))
}

func TestPostMessageOnlyParticipants(t *testing.T) {
	store := &MockStore{}
	_, _, chats := newServices(store)

	_, err := chats.PostMessage(context.Background(), "chat-1", "stranger", "hi")
	require.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

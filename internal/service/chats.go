package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"mutirao/db"
	"mutirao/internal/apperr"
	"mutirao/models"
)

// ChatService bootstraps request-scoped conversations and appends messages.
// A chat is keyed by (request, canonical participant pair), so opening it
// from either side resolves to the same row.
type ChatService struct {
	store    Store
	notifier *NotificationService
	log      *logrus.Entry
}

func NewChatService(store Store, notifier *NotificationService, log *logrus.Logger) *ChatService {
	return &ChatService{
		store:    store,
		notifier: notifier,
		log:      log.WithField("service", "chats"),
	}
}

// canonicalPair orders two user ids lexicographically. IDs are UUIDs, so
// string order is a total order over participants.
func canonicalPair(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}

// OpenOrGet finds or lazily creates the chat between the caller and the
// other party. One of the two must be the request's author and the other
// must hold an interest or be the assigned helper.
func (s *ChatService) OpenOrGet(ctx context.Context, requestID, callerID, otherID string) (*db.Chat, error) {
	if callerID == otherID {
		return nil, apperr.InvalidOperation("cannot open a chat with yourself")
	}

	r, err := s.store.GetRequest(ctx, requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("request not found")
	}
	if err != nil {
		return nil, err
	}

	var counterpart string
	switch r.AuthorID {
	case callerID:
		counterpart = otherID
	case otherID:
		counterpart = callerID
	default:
		return nil, apperr.Forbidden("chats are between the request author and an interested user")
	}

	allowed := r.HelperID != nil && *r.HelperID == counterpart
	if !allowed {
		allowed, err = s.store.HasInterest(ctx, requestID, counterpart)
		if err != nil {
			return nil, err
		}
	}
	if !allowed {
		return nil, apperr.Forbidden("chats are between the request author and an interested user")
	}

	p1, p2 := canonicalPair(callerID, otherID)
	chat, err := s.store.GetOrCreateChat(ctx, requestID, p1, p2)
	if err != nil {
		return nil, err
	}
	return chat, nil
}

// ListForRequest returns the caller's chats on a request, most recent
// activity first.
func (s *ChatService) ListForRequest(ctx context.Context, requestID, callerID string) ([]db.ChatRow, error) {
	_, err := s.store.GetRequest(ctx, requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("request not found")
	}
	if err != nil {
		return nil, err
	}
	return s.store.ListChatsByRequestForUser(ctx, requestID, callerID)
}

// Get returns a chat to one of its participants.
func (s *ChatService) Get(ctx context.Context, chatID, callerID string) (*db.Chat, error) {
	chat, err := s.store.GetChat(ctx, chatID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("chat not found")
	}
	if err != nil {
		return nil, err
	}
	if chat.Participant1ID != callerID && chat.Participant2ID != callerID {
		return nil, apperr.Forbidden("only chat participants can access a chat")
	}
	return chat, nil
}

// Messages returns the chat history, oldest first.
func (s *ChatService) Messages(ctx context.Context, chatID, callerID string) ([]db.MessageRow, error) {
	if _, err := s.Get(ctx, chatID, callerID); err != nil {
		return nil, err
	}
	return s.store.ListMessagesByChat(ctx, chatID)
}

// PostMessage appends a message, bumps the chat's last activity and notifies
// the other participant.
func (s *ChatService) PostMessage(ctx context.Context, chatID, senderID, content string) (*db.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.InvalidOperation("message content must not be empty")
	}

	chat, err := s.Get(ctx, chatID, senderID)
	if err != nil {
		return nil, err
	}

	recipientID := chat.Participant1ID
	if senderID == chat.Participant1ID {
		recipientID = chat.Participant2ID
	}

	message := &db.Message{ChatID: chatID, SenderID: senderID, Content: content}
	if err := s.store.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	title := "your request"
	if r, err := s.store.GetRequest(ctx, chat.RequestID); err == nil {
		title = fmt.Sprintf("%q", r.Title)
	}
	s.notifier.Notify(ctx, models.NotifNewMessage, recipientID,
		fmt.Sprintf("You have a new message in the chat for %s.", title),
		&chat.RequestID, &senderID)
	return message, nil
}

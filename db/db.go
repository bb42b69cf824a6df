package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"mutirao/models"
)

type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation. The unique constraints are the authoritative gate against
// concurrent duplicate interests, ratings and chats.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// User (identity store, read-only here)
type User struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"-"`
	Avatar    *string   `db:"avatar" json:"avatar"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

func (s *Storage) GetUser(ctx context.Context, id string) (*User, error) {
	u := &User{}
	query := `SELECT * FROM users WHERE id=$1`
	err := s.db.GetContext(ctx, u, query, id)
	return u, err
}

// Category
type Category struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

func (s *Storage) ListCategories(ctx context.Context) ([]Category, error) {
	categories := []Category{}
	query := `SELECT * FROM categories ORDER BY name ASC`
	err := s.db.SelectContext(ctx, &categories, query)
	return categories, err
}

// Request
type Request struct {
	ID          string               `db:"id" json:"id"`
	Title       string               `db:"title" json:"title"`
	Description string               `db:"description" json:"description"`
	Image       *string              `db:"image" json:"image"`
	CategoryID  *string              `db:"category_id" json:"categoryId"`
	AuthorID    string               `db:"author_id" json:"authorId"`
	HelperID    *string              `db:"helper_id" json:"helperId"`
	Status      models.RequestStatus `db:"status" json:"status"`
	CreatedAt   time.Time            `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time            `db:"updated_at" json:"-"`
}

// RequestRow is a request joined with author display data and the
// viewer-dependent "already interested" projection.
type RequestRow struct {
	Request
	AuthorName    string  `db:"author_name" json:"authorName"`
	AuthorAvatar  *string `db:"author_avatar" json:"authorAvatar"`
	Interested    bool    `db:"interested" json:"interested"`
	InterestCount int     `db:"interest_count" json:"interestCount"`
}

const requestRowColumns = `
        r.id, r.title, r.description, r.image, r.category_id, r.author_id,
        r.helper_id, r.status, r.created_at, r.updated_at,
        u.name AS author_name, u.avatar AS author_avatar,
        EXISTS (
            SELECT 1 FROM interests i
            WHERE i.request_id = r.id AND i.user_id = NULLIF($1, '')::uuid
        ) AS interested,
        (SELECT COUNT(1) FROM interests i WHERE i.request_id = r.id) AS interest_count`

func (s *Storage) CreateRequest(ctx context.Context, r *Request) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	query := `
        INSERT INTO requests (id, title, description, image, category_id, author_id, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		r.ID, r.Title, r.Description, r.Image, r.CategoryID, r.AuthorID, r.Status).
		Scan(&r.CreatedAt, &r.UpdatedAt)
}

func (s *Storage) GetRequest(ctx context.Context, id string) (*Request, error) {
	r := &Request{}
	query := `SELECT * FROM requests WHERE id=$1`
	err := s.db.GetContext(ctx, r, query, id)
	return r, err
}

func (s *Storage) GetRequestRow(ctx context.Context, id, viewerID string) (*RequestRow, error) {
	r := &RequestRow{}
	query := `
        SELECT` + requestRowColumns + `
        FROM requests r
        JOIN users u ON u.id = r.author_id
        WHERE r.id = $2`
	err := s.db.GetContext(ctx, r, query, viewerID, id)
	return r, err
}

func (s *Storage) ListRequests(ctx context.Context, viewerID string, f models.ListRequestsFilter) ([]RequestRow, error) {
	query := `
        SELECT` + requestRowColumns + `
        FROM requests r
        JOIN users u ON u.id = r.author_id`

	args := []interface{}{viewerID}
	var where []string

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(r.title ILIKE $%d OR r.description ILIKE $%d)", n, n))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("r.status = $%d", len(args)))
	}
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		where = append(where, fmt.Sprintf("r.category_id = $%d", len(args)))
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	query += " ORDER BY r.created_at DESC"
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)

	requests := []RequestRow{}
	err := s.db.SelectContext(ctx, &requests, query, args...)
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateRequestFields writes the editable fields, guarded on the request
// still being non-terminal. sql.ErrNoRows means the guard failed.
func (s *Storage) UpdateRequestFields(ctx context.Context, r *Request) (*Request, error) {
	updated := &Request{}
	query := `
        UPDATE requests
        SET title=$1, description=$2, image=$3, category_id=$4, updated_at=NOW()
        WHERE id=$5 AND status IN ('OPEN', 'IN_PROGRESS')
        RETURNING *`
	err := s.db.GetContext(ctx, updated, query,
		r.Title, r.Description, r.Image, r.CategoryID, r.ID)
	return updated, err
}

func (s *Storage) DeleteRequest(ctx context.Context, id string) error {
	var deleted string
	query := `DELETE FROM requests WHERE id=$1 RETURNING id`
	return s.db.QueryRowContext(ctx, query, id).Scan(&deleted)
}

// AssignHelper is the single conditional write that moves OPEN -> IN_PROGRESS.
// The status/helper re-check inside the statement is what loses races cleanly:
// of two concurrent assignments only one can match the guard.
func (s *Storage) AssignHelper(ctx context.Context, requestID, authorID, helperID string) (*Request, error) {
	r := &Request{}
	query := `
        UPDATE requests
        SET helper_id=$1, status='IN_PROGRESS', updated_at=NOW()
        WHERE id=$2 AND author_id=$3 AND status='OPEN' AND helper_id IS NULL
        RETURNING *`
	err := s.db.GetContext(ctx, r, query, helperID, requestID, authorID)
	return r, err
}

// FinalizeRequest moves IN_PROGRESS -> FINALIZED for the author's request.
func (s *Storage) FinalizeRequest(ctx context.Context, requestID, authorID string) (*Request, error) {
	r := &Request{}
	query := `
        UPDATE requests
        SET status='FINALIZED', updated_at=NOW()
        WHERE id=$1 AND author_id=$2 AND status='IN_PROGRESS'
        RETURNING *`
	err := s.db.GetContext(ctx, r, query, requestID, authorID)
	return r, err
}

// CancelRequest moves OPEN or IN_PROGRESS -> CANCELLED for the author's
// request. The helper is cleared so cancelled rows keep the
// helper-implies-in-progress invariant.
func (s *Storage) CancelRequest(ctx context.Context, requestID, authorID string) (*Request, error) {
	r := &Request{}
	query := `
        UPDATE requests
        SET status='CANCELLED', helper_id=NULL, updated_at=NOW()
        WHERE id=$1 AND author_id=$2 AND status IN ('OPEN', 'IN_PROGRESS')
        RETURNING *`
	err := s.db.GetContext(ctx, r, query, requestID, authorID)
	return r, err
}

// WithdrawHelper clears the helper and returns the request to OPEN. The only
// backward transition in the lifecycle; prior interests stay untouched.
func (s *Storage) WithdrawHelper(ctx context.Context, requestID, helperID string) (*Request, error) {
	r := &Request{}
	query := `
        UPDATE requests
        SET helper_id=NULL, status='OPEN', updated_at=NOW()
        WHERE id=$1 AND helper_id=$2 AND status='IN_PROGRESS'
        RETURNING *`
	err := s.db.GetContext(ctx, r, query, requestID, helperID)
	return r, err
}

// Interest
type Interest struct {
	ID        string    `db:"id" json:"id"`
	RequestID string    `db:"request_id" json:"requestId"`
	UserID    string    `db:"user_id" json:"userId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// InterestRow is an interest joined with the declaring user's display data.
type InterestRow struct {
	Interest
	UserName   string  `db:"user_name" json:"userName"`
	UserAvatar *string `db:"user_avatar" json:"userAvatar"`
}

func (s *Storage) CreateInterest(ctx context.Context, i *Interest) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	query := `
        INSERT INTO interests (id, request_id, user_id)
        VALUES ($1, $2, $3)
        RETURNING created_at`
	return s.db.QueryRowContext(ctx, query, i.ID, i.RequestID, i.UserID).
		Scan(&i.CreatedAt)
}

func (s *Storage) ListInterestsByRequest(ctx context.Context, requestID string) ([]InterestRow, error) {
	interests := []InterestRow{}
	query := `
        SELECT i.id, i.request_id, i.user_id, i.created_at,
               u.name AS user_name, u.avatar AS user_avatar
        FROM interests i
        JOIN users u ON u.id = i.user_id
        WHERE i.request_id = $1
        ORDER BY i.created_at ASC`
	err := s.db.SelectContext(ctx, &interests, query, requestID)
	return interests, err
}

func (s *Storage) HasInterest(ctx context.Context, requestID, userID string) (bool, error) {
	var count int
	query := `SELECT COUNT(1) FROM interests WHERE request_id=$1 AND user_id=$2`
	err := s.db.GetContext(ctx, &count, query, requestID, userID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Rating
type Rating struct {
	ID        string    `db:"id" json:"id"`
	RequestID string    `db:"request_id" json:"requestId"`
	RaterID   string    `db:"rater_id" json:"raterId"`
	RateeID   string    `db:"ratee_id" json:"rateeId"`
	Score     int       `db:"score" json:"score"`
	Comment   *string   `db:"comment" json:"comment"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

func (s *Storage) CreateRating(ctx context.Context, r *Rating) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	query := `
        INSERT INTO ratings (id, request_id, rater_id, ratee_id, score, comment)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at`
	return s.db.QueryRowContext(ctx, query,
		r.ID, r.RequestID, r.RaterID, r.RateeID, r.Score, r.Comment).
		Scan(&r.CreatedAt)
}

func (s *Storage) ListRatingsForUser(ctx context.Context, userID string) ([]Rating, error) {
	ratings := []Rating{}
	query := `
        SELECT * FROM ratings
        WHERE ratee_id = $1
        ORDER BY created_at DESC`
	err := s.db.SelectContext(ctx, &ratings, query, userID)
	return ratings, err
}

// AverageRatingForUser returns the mean score received by a user and the
// number of ratings it is based on. Zero count means no ratings yet.
func (s *Storage) AverageRatingForUser(ctx context.Context, userID string) (float64, int, error) {
	var row struct {
		Average float64 `db:"average"`
		Count   int     `db:"count"`
	}
	query := `
        SELECT COALESCE(AVG(score), 0) AS average, COUNT(1) AS count
        FROM ratings
        WHERE ratee_id = $1`
	err := s.db.GetContext(ctx, &row, query, userID)
	return row.Average, row.Count, err
}

// Chat
type Chat struct {
	ID             string    `db:"id" json:"id"`
	RequestID      string    `db:"request_id" json:"requestId"`
	Participant1ID string    `db:"participant1_id" json:"participant1Id"`
	Participant2ID string    `db:"participant2_id" json:"participant2Id"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// ChatRow is a chat joined with both participants' display data.
type ChatRow struct {
	Chat
	Participant1Name   string  `db:"participant1_name" json:"participant1Name"`
	Participant1Avatar *string `db:"participant1_avatar" json:"participant1Avatar"`
	Participant2Name   string  `db:"participant2_name" json:"participant2Name"`
	Participant2Avatar *string `db:"participant2_avatar" json:"participant2Avatar"`
	MessageCount       int     `db:"message_count" json:"messageCount"`
}

// GetOrCreateChat inserts the canonical (request, participant1, participant2)
// row if absent and returns the row either way. The unique constraint makes
// concurrent first contact from both sides converge on one chat.
func (s *Storage) GetOrCreateChat(ctx context.Context, requestID, participant1ID, participant2ID string) (*Chat, error) {
	c := &Chat{}
	insert := `
        INSERT INTO chats (id, request_id, participant1_id, participant2_id)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (request_id, participant1_id, participant2_id) DO NOTHING
        RETURNING *`
	err := s.db.GetContext(ctx, c, insert,
		uuid.NewString(), requestID, participant1ID, participant2ID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	// Conflict path: somebody else (or an earlier call) created it.
	query := `
        SELECT * FROM chats
        WHERE request_id=$1 AND participant1_id=$2 AND participant2_id=$3`
	err = s.db.GetContext(ctx, c, query, requestID, participant1ID, participant2ID)
	return c, err
}

func (s *Storage) GetChat(ctx context.Context, id string) (*Chat, error) {
	c := &Chat{}
	query := `SELECT * FROM chats WHERE id=$1`
	err := s.db.GetContext(ctx, c, query, id)
	return c, err
}

func (s *Storage) ListChatsByRequestForUser(ctx context.Context, requestID, userID string) ([]ChatRow, error) {
	chats := []ChatRow{}
	query := `
        SELECT c.id, c.request_id, c.participant1_id, c.participant2_id,
               c.created_at, c.updated_at,
               u1.name AS participant1_name, u1.avatar AS participant1_avatar,
               u2.name AS participant2_name, u2.avatar AS participant2_avatar,
               (SELECT COUNT(1) FROM messages m WHERE m.chat_id = c.id) AS message_count
        FROM chats c
        JOIN users u1 ON u1.id = c.participant1_id
        JOIN users u2 ON u2.id = c.participant2_id
        WHERE c.request_id = $1
          AND (c.participant1_id = $2 OR c.participant2_id = $2)
        ORDER BY c.updated_at DESC`
	err := s.db.SelectContext(ctx, &chats, query, requestID, userID)
	return chats, err
}

// Message
type Message struct {
	ID        string    `db:"id" json:"id"`
	ChatID    string    `db:"chat_id" json:"chatId"`
	SenderID  string    `db:"sender_id" json:"senderId"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// MessageRow is a message joined with the sender's display data.
type MessageRow struct {
	Message
	SenderName   string  `db:"sender_name" json:"senderName"`
	SenderAvatar *string `db:"sender_avatar" json:"senderAvatar"`
}

// CreateMessage appends a message and bumps the chat's last activity in one
// transaction, so chat ordering never drifts from the message log.
func (s *Storage) CreateMessage(ctx context.Context, m *Message) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insert := `
        INSERT INTO messages (id, chat_id, sender_id, content)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at`
	if err := tx.QueryRowContext(ctx, insert, m.ID, m.ChatID, m.SenderID, m.Content).
		Scan(&m.CreatedAt); err != nil {
		return err
	}

	bump := `UPDATE chats SET updated_at=NOW() WHERE id=$1`
	if _, err := tx.ExecContext(ctx, bump, m.ChatID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Storage) ListMessagesByChat(ctx context.Context, chatID string) ([]MessageRow, error) {
	messages := []MessageRow{}
	query := `
        SELECT m.id, m.chat_id, m.sender_id, m.content, m.created_at,
               u.name AS sender_name, u.avatar AS sender_avatar
        FROM messages m
        JOIN users u ON u.id = m.sender_id
        WHERE m.chat_id = $1
        ORDER BY m.created_at ASC`
	err := s.db.SelectContext(ctx, &messages, query, chatID)
	return messages, err
}

// Notification
type Notification struct {
	ID        string                  `db:"id" json:"id"`
	UserID    string                  `db:"user_id" json:"userId"`
	SenderID  *string                 `db:"sender_id" json:"senderId"`
	RequestID *string                 `db:"request_id" json:"requestId"`
	Type      models.NotificationType `db:"type" json:"type"`
	Message   string                  `db:"message" json:"message"`
	Read      bool                    `db:"read" json:"read"`
	CreatedAt time.Time               `db:"created_at" json:"createdAt"`
}

func (s *Storage) CreateNotification(ctx context.Context, n *Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	query := `
        INSERT INTO notifications (id, user_id, sender_id, request_id, type, message)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at`
	return s.db.QueryRowContext(ctx, query,
		n.ID, n.UserID, n.SenderID, n.RequestID, n.Type, n.Message).
		Scan(&n.CreatedAt)
}

func (s *Storage) ListNotificationsByUser(ctx context.Context, userID string) ([]Notification, error) {
	notifications := []Notification{}
	query := `
        SELECT * FROM notifications
        WHERE user_id = $1
        ORDER BY created_at DESC`
	err := s.db.SelectContext(ctx, &notifications, query, userID)
	return notifications, err
}

// MarkNotificationRead flips the read flag; sql.ErrNoRows when the
// notification does not exist or belongs to someone else.
func (s *Storage) MarkNotificationRead(ctx context.Context, id, userID string) error {
	var marked string
	query := `
        UPDATE notifications SET read=TRUE
        WHERE id=$1 AND user_id=$2
        RETURNING id`
	return s.db.QueryRowContext(ctx, query, id, userID).Scan(&marked)
}

func (s *Storage) CountUnreadNotifications(ctx context.Context, userID string) (int, error) {
	var count int
	query := `SELECT COUNT(1) FROM notifications WHERE user_id=$1 AND read=FALSE`
	err := s.db.GetContext(ctx, &count, query, userID)
	return count, err
}

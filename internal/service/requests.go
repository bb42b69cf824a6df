package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"mutirao/db"
	"mutirao/internal/apperr"
	"mutirao/models"
)

// RequestService owns the request lifecycle state machine and the interest
// registry. Every transition is a single conditional write in the store; the
// eager checks here exist for friendlier errors, the store guard is what
// makes concurrent callers lose cleanly.
type RequestService struct {
	store    Store
	notifier *NotificationService
	log      *logrus.Entry
}

func NewRequestService(store Store, notifier *NotificationService, log *logrus.Logger) *RequestService {
	return &RequestService{
		store:    store,
		notifier: notifier,
		log:      log.WithField("service", "requests"),
	}
}

// RequestDetail is a request with its interest list, as served to clients.
type RequestDetail struct {
	db.RequestRow
	Interests []db.InterestRow `json:"interests"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *RequestService) Create(ctx context.Context, authorID string, input models.CreateRequestInput) (*db.Request, error) {
	r := &db.Request{
		Title:       input.Title,
		Description: input.Description,
		Image:       optional(input.Image),
		CategoryID:  optional(input.CategoryID),
		AuthorID:    authorID,
		Status:      models.StatusOpen,
	}
	if err := s.store.CreateRequest(ctx, r); err != nil {
		return nil, err
	}
	s.log.WithField("request", r.ID).WithField("author", authorID).Info("request created")
	return r, nil
}

func (s *RequestService) Get(ctx context.Context, id, viewerID string) (*RequestDetail, error) {
	row, err := s.store.GetRequestRow(ctx, id, viewerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("request not found")
	}
	if err != nil {
		return nil, err
	}
	interests, err := s.store.ListInterestsByRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	return &RequestDetail{RequestRow: *row, Interests: interests}, nil
}

func (s *RequestService) List(ctx context.Context, viewerID string, f models.ListRequestsFilter) ([]db.RequestRow, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, apperr.Invalid("unknown status filter")
	}
	return s.store.ListRequests(ctx, viewerID, f)
}

// Update edits title/description/image/category. Terminal requests are not
// editable; status never moves through this path.
func (s *RequestService) Update(ctx context.Context, id, callerID string, input models.UpdateRequestInput) (*db.Request, error) {
	r, err := s.store.GetRequest(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("request not found")
	}
	if err != nil {
		return nil, err
	}
	if r.AuthorID != callerID {
		return nil, apperr.Forbidden("only the author can edit a request")
	}
	if r.Status.Terminal() {
		return nil, apperr.InvalidOperation("finalized or cancelled requests cannot be edited")
	}

	if input.Title != nil {
		r.Title = *input.Title
	}
	if input.Description != nil {
		r.Description = *input.Description
	}
	if input.Image != nil {
		r.Image = optional(*input.Image)
	}
	if input.CategoryID != nil {
		r.CategoryID = optional(*input.CategoryID)
	}

	updated, err := s.store.UpdateRequestFields(ctx, r)
	if errors.Is(err, sql.ErrNoRows) {
		// Turned terminal between the read and the guarded write.
		return nil, apperr.InvalidOperation("finalized or cancelled requests cannot be edited")
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a request and, via store-level cascade, its interests,
// ratings, chats and messages. Author-only and irreversible.
func (s *RequestService) Delete(ctx context.Context, id, callerID string) error {
	r, err := s.store.GetRequest(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("request not found")
	}
	if err != nil {
		return err
	}
	if r.AuthorID != callerID {
		return apperr.Forbidden("only the author can delete a request")
	}
	err = s.store.DeleteRequest(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("request not found")
	}
	if err != nil {
		return err
	}
	s.log.WithField("request", id).WithField("author", callerID).Info("request deleted")
	return nil
}

// DeclareInterest records a user's willingness to help. The uniqueness
// constraint on (request, user) is the gate against concurrent duplicates;
// no pre-check is done here.
func (s *RequestService) DeclareInterest(ctx context.Context, requestID, userID string) (*db.Interest, error) {
	r, err := s.store.GetRequest(ctx, requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("request not found")
	}
	if err != nil {
		return nil, err
	}
	if r.AuthorID == userID {
		return nil, apperr.InvalidOperation("authors cannot declare interest in their own request")
	}

	interest := &db.Interest{RequestID: requestID, UserID: userID}
	if err := s.store.CreateInterest(ctx, interest); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apperr.Conflict("interest already declared for this request")
		}
		return nil, err
	}

	name := displayName(ctx, s.store, userID)
	s.notifier.Notify(ctx, models.NotifInterestReceived, r.AuthorID,
		fmt.Sprintf("%s is interested in your request %q.", name, r.Title),
		&r.ID, &userID)
	return interest, nil
}

// AssignHelper picks an interested user and moves the request to
// IN_PROGRESS. The store statement re-validates OPEN and helper IS NULL
// atomically; of two racing assignments exactly one succeeds.
func (s *RequestService) AssignHelper(ctx context.Context, requestID, callerID, candidateID string) (*db.Request, error) {
	r, err := s.store.GetRequest(ctx, requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("request not found")
	}
	if err != nil {
		return nil, err
	}
	if r.AuthorID != callerID {
		return nil, apperr.Forbidden("only the author can choose a helper")
	}
	if candidateID == callerID {
		return nil, apperr.InvalidOperation("the author cannot be the helper")
	}

	has, err := s.store.HasInterest(ctx, requestID, candidateID)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, apperr.InvalidOperation("chosen user has not declared interest in this request")
	}

	updated, err := s.store.AssignHelper(ctx, requestID, callerID, candidateID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, s.assignFailure(ctx, requestID)
	}
	if err != nil {
		return nil, err
	}
	s.log.WithField("request", requestID).WithField("helper", candidateID).Info("helper assigned")

	// Conversation bootstrap between author and helper.
	p1, p2 := canonicalPair(callerID, candidateID)
	if _, err := s.store.GetOrCreateChat(ctx, requestID, p1, p2); err != nil {
		s.log.WithError(err).WithField("request", requestID).Warn("chat bootstrap failed")
	}

	s.notifier.Notify(ctx, models.NotifHelperChosen, candidateID,
		fmt.Sprintf("You were chosen to help with %q.", updated.Title),
		&updated.ID, &callerID)
	return updated, nil
}

// assignFailure turns a lost conditional assignment into the matching error.
func (s *RequestService) assignFailure(ctx context.Context, requestID string) error {
	r, err := s.store.GetRequest(ctx, requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("request not found")
	}
	if err != nil {
		return err
	}
	if r.Status.Terminal() {
		return apperr.InvalidOperation("request is already finalized or cancelled")
	}
	return apperr.Conflict("a helper was already chosen for this request")
}

// Finalize moves IN_PROGRESS -> FINALIZED.
func (s *RequestService) Finalize(ctx context.Context, requestID, callerID string) (*db.Request, error) {
	r, err := s.store.GetRequest(ctx, requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("request not found")
	}
	if err != nil {
		return nil, err
	}
	if r.AuthorID != callerID {
		return nil, apperr.Forbidden("only the author can finalize a request")
	}

	updated, err := s.store.FinalizeRequest(ctx, requestID, callerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.InvalidOperation("only in-progress requests can be finalized")
	}
	if err != nil {
		return nil, err
	}
	s.log.WithField("request", requestID).Info("request finalized")

	if updated.HelperID != nil {
		s.notifier.Notify(ctx, models.NotifRequestFinalized, *updated.HelperID,
			fmt.Sprintf("The request %q you helped with was finalized. Thank you!", updated.Title),
			&updated.ID, &callerID)
	}
	return updated, nil
}

// Withdraw lets the current helper step back, returning the request to OPEN
// with the helper cleared. Prior interests are kept.
func (s *RequestService) Withdraw(ctx context.Context, requestID, callerID string) (*db.Request, error) {
	r, err := s.store.GetRequest(ctx, requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("request not found")
	}
	if err != nil {
		return nil, err
	}
	if r.HelperID == nil || *r.HelperID != callerID {
		return nil, apperr.Forbidden("only the current helper can withdraw")
	}

	updated, err := s.store.WithdrawHelper(ctx, requestID, callerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.InvalidOperation("request is not in progress")
	}
	if err != nil {
		return nil, err
	}
	s.log.WithField("request", requestID).WithField("helper", callerID).Info("helper withdrew")

	name := displayName(ctx, s.store, callerID)
	s.notifier.Notify(ctx, models.NotifHelperWithdrew, updated.AuthorID,
		fmt.Sprintf("%s withdrew from helping with %q.", name, updated.Title),
		&updated.ID, &callerID)
	return updated, nil
}

// Cancel moves OPEN or IN_PROGRESS -> CANCELLED.
func (s *RequestService) Cancel(ctx context.Context, requestID, callerID string) (*db.Request, error) {
	r, err := s.store.GetRequest(ctx, requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("request not found")
	}
	if err != nil {
		return nil, err
	}
	if r.AuthorID != callerID {
		return nil, apperr.Forbidden("only the author can cancel a request")
	}

	// Remember the helper before the write clears context for notification.
	helperID := r.HelperID

	updated, err := s.store.CancelRequest(ctx, requestID, callerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.InvalidOperation("request is already finalized or cancelled")
	}
	if err != nil {
		return nil, err
	}
	s.log.WithField("request", requestID).Info("request cancelled")

	if helperID != nil {
		s.notifier.Notify(ctx, models.NotifRequestCancelled, *helperID,
			fmt.Sprintf("The request %q was cancelled by its author.", updated.Title),
			&updated.ID, &callerID)
	}
	return updated, nil
}

func (s *RequestService) Categories(ctx context.Context) ([]db.Category, error) {
	return s.store.ListCategories(ctx)
}

package models

// Request lifecycle statuses. OPEN is initial; FINALIZED and CANCELLED are terminal.
type RequestStatus string

const (
	StatusOpen       RequestStatus = "OPEN"
	StatusInProgress RequestStatus = "IN_PROGRESS"
	StatusFinalized  RequestStatus = "FINALIZED"
	StatusCancelled  RequestStatus = "CANCELLED"
)

// Terminal reports whether no further lifecycle transition is possible.
func (s RequestStatus) Terminal() bool {
	return s == StatusFinalized || s == StatusCancelled
}

// Valid reports whether s is one of the known statuses.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusFinalized, StatusCancelled:
		return true
	}
	return false
}

// Notification types emitted by the engine.
type NotificationType string

const (
	NotifInterestReceived NotificationType = "INTEREST_RECEIVED"
	NotifHelperChosen     NotificationType = "HELPER_CHOSEN"
	NotifRequestFinalized NotificationType = "REQUEST_FINALIZED"
	NotifHelperWithdrew   NotificationType = "HELPER_WITHDREW"
	NotifRequestCancelled NotificationType = "REQUEST_CANCELLED"
	NotifRatingReceived   NotificationType = "RATING_RECEIVED"
	NotifNewMessage       NotificationType = "NEW_MESSAGE"
)

// CreateRequestInput is the payload for creating a request.
type CreateRequestInput struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=500"`
	Image       string `json:"image" validate:"omitempty,max=255"`
	CategoryID  string `json:"categoryId" validate:"omitempty,uuid4"`
}

// UpdateRequestInput is the payload for partial updates. Status is
// deliberately absent: it only moves through the dedicated transitions.
type UpdateRequestInput struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,min=1,max=500"`
	Image       *string `json:"image" validate:"omitempty,max=255"`
	CategoryID  *string `json:"categoryId" validate:"omitempty,uuid4"`
}

// AssignHelperInput names the interested user the author picked.
type AssignHelperInput struct {
	UserID string `json:"userId" validate:"required"`
}

// RateInput is the payload for the mutual post-completion rating.
type RateInput struct {
	Score   int    `json:"score" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=500"`
}

// OpenChatInput names the other party of a request-scoped chat.
type OpenChatInput struct {
	UserID string `json:"userId" validate:"required"`
}

// PostMessageInput is the payload for a chat message.
type PostMessageInput struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// ListRequestsFilter narrows the request listing.
type ListRequestsFilter struct {
	Search     string
	Status     RequestStatus
	CategoryID string
	Limit      int
	Offset     int
}

package domain

const (
	SubscriptionStarter  = "starter"
	SubscriptionPro      = "pro"
	SubscriptionBusiness = "business"

	DateLayout = "2006-01-02"
)

var (
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageNotAuthorized        = "not authorized"
	MessageNotFound             = "not found"

	ErrUnauthorized = NewError(KindUnauthorized, MessageNotAuthorized)
	ErrInvalidDate  = NewError(KindValidation, "date must be formatted as YYYY-MM-DD or RFC3339")
	ErrInvalidID    = NewError(KindNotFound, "invalid id")
)

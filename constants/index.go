package constants

const (
	ROLE_CUSTOMER  = "customer"
	ROLE_ORGANIZER = "organizer"
	ROLE_ADMIN     = "admin"
)

var Roles = []string{ROLE_CUSTOMER, ROLE_ORGANIZER, ROLE_ADMIN}

const (
	TicketConfirmed = "confirmed"
	TicketCancelled = "cancelled"
	TicketRefunded  = "refunded"
)

const (
	PaymentPending  = "pending"
	PaymentSuccess  = "success"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

const (
	ERROR_INPUT          = "Invalid input"
	ERROR_INTERNAL_ERROR = "Server error"
	ERROR_PARSE_LOCALS   = "Failed to read validated input"
	NOT_ADMIN            = "Access denied"
	MISSING_TOKEN        = "Authorization token required"
	INVALID_TOKEN        = "Invalid token"
	INVALID_CREDENTIALS  = "Invalid email or password"

	EVENT_NOT_FOUND  = "Event not found"
	TICKET_NOT_FOUND = "Ticket not found"
	USER_NOT_FOUND   = "User not found"
)

// CancellationDeadline is how long before an event a ticket may still be
// cancelled.
const CancellationDeadlineHours = 24

// Cancellations inside this window incur CancellationFlatFee.
const (
	CancellationFeeWindowDays = 3
	CancellationFlatFee       = 150.0
)

package pricex

// Severity is the level of a user-facing notification.
type Severity string

// Severity constants.
const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Notification is an ephemeral message shown to the user.
type Notification struct {
	Severity Severity
	Message  string
}

// Notifier shows notifications. Notify must not block.
type Notifier interface {
	Notify(n Notification)
}

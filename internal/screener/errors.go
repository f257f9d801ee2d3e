package screener

import "fmt"

// ValidationError reports a missing or unusable required input. The
// operation was not attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return e.Field + " is required"
}

// NotFoundError reports that no rows exist for the requested role.
type NotFoundError struct {
	Role string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no resumes found for role %q, upload resumes first", e.Role)
}

// StoreError reports a row-store read or write failure. It is fatal to the
// whole operation; there is no automatic retry.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("row store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// NotificationError wraps a reviewer-notification failure. Notification is
// best-effort: these are logged and never change the operation's outcome.
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notify reviewer: %v", e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }

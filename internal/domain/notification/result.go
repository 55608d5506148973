package notification

// Status is the outcome of a bill notification.
type Status string

// Notification status values.
const (
	StatusSent    Status = "sent"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Recipient is the provider's per-number delivery report.
type Recipient struct {
	Number     string
	Status     string
	StatusCode int
	Cost       string
	MessageID  string
}

// Delivery is what the provider reported for one submitted message.
type Delivery struct {
	Summary    string // e.g. "Sent to 1/1 Total Cost: KES 0.8000"
	Recipients []Recipient
	Raw        string // response body as received
}

// Result is the outcome of notifying a tenant about a bill.
type Result struct {
	status   Status
	err      error
	delivery Delivery
}

// NewSent creates a result for a message the provider accepted.
func NewSent(d Delivery) Result { return Result{status: StatusSent, delivery: d} }

// NewSkipped creates a result for a notification that was never attempted.
func NewSkipped(reason error) Result { return Result{status: StatusSkipped, err: reason} }

// NewFailed creates a result for a submission that errored.
func NewFailed(err error) Result { return Result{status: StatusFailed, err: err} }

// Status returns the outcome.
func (r Result) Status() Status { return r.status }

// Err returns the skip reason or failure, if any.
func (r Result) Err() error { return r.err }

// Delivery returns the provider report of a sent message.
func (r Result) Delivery() Delivery { return r.delivery }

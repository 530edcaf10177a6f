package bookings

// Type is the kind of inventory a booking is for.
type Type string

const (
	TypeClass Type = "CLASS"
	TypeEvent Type = "EVENT"
	TypeSpace Type = "SPACE"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeClass, TypeEvent, TypeSpace:
		return true
	}
	return false
}

func (t Type) String() string {
	return string(t)
}

// Status is the canonical booking lifecycle state. Every transition is
// recorded as a StatusHistory row in the same transaction as the change.
type Status string

const (
	// StatusNone is the pseudo-state used as from_status on creation.
	StatusNone Status = "NONE"

	StatusPendingPayment Status = "PENDING_PAYMENT"
	StatusConfirmed      Status = "CONFIRMED"
	StatusCancelled      Status = "CANCELLED"
	StatusRequested      Status = "REQUESTED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPendingPayment, StatusConfirmed, StatusCancelled, StatusRequested:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// ChangedBySystem is the actor recorded for lifecycle-engine transitions.
const ChangedBySystem = "SYSTEM"

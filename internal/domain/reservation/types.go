package reservation

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusPending   Status = "pending"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusPending:
		return true
	default:
		return false
	}
}

// CountsAgainstSchedule reports whether reservations in this status block
// the room's calendar. Only confirmed reservations do; cancellation keeps
// the record for history without holding the slot.
func (s Status) CountsAgainstSchedule() bool {
	return s == StatusConfirmed
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

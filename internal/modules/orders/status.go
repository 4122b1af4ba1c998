package orders

type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// Admin/customer actions driving transitions.
const (
	ActionConfirm = "confirm"
	ActionPrepare = "prepare"
	ActionDeliver = "deliver"
	ActionCancel  = "cancel"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPendingPayment, StatusConfirmed, StatusPreparing, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal statuses accept no further transitions.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// nextStatus resolves an action against the current status. The sequence only
// moves forward; cancel is allowed from any non-terminal status.
func nextStatus(from Status, action string) (Status, error) {
	if from.Terminal() {
		return "", ErrInvalidTransition
	}
	switch action {
	case ActionCancel:
		return StatusCancelled, nil
	case ActionConfirm:
		if from == StatusPendingPayment {
			return StatusConfirmed, nil
		}
	case ActionPrepare:
		if from == StatusConfirmed {
			return StatusPreparing, nil
		}
	case ActionDeliver:
		if from == StatusPreparing {
			return StatusDelivered, nil
		}
	}
	return "", ErrInvalidTransition
}

package order

// Status represents the lifecycle state of an order
type Status string

const (
	StatusNew            Status = "NEW"
	StatusWaitingPayment Status = "WAITING_PAYMENT"
	StatusPaid           Status = "PAID"
	StatusPacking        Status = "PACKING"
	StatusShipped        Status = "SHIPPED"
	StatusDelivered      Status = "DELIVERED"
	StatusCancelled      Status = "CANCELLED"
	StatusReturned       Status = "RETURNED"
)

// AllStatuses lists every known status in lifecycle order
var AllStatuses = []Status{
	StatusNew,
	StatusWaitingPayment,
	StatusPaid,
	StatusPacking,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
	StatusReturned,
}

// IsValid returns true for known statuses
func (s Status) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal returns true for states that allow no further transitions
// other than a return after delivery
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusReturned
}

// CanTransitionTo checks if transition to the target status is allowed.
// Orders move forward through the fulfilment flow; cancellation is possible
// until the order ships, and returns only after shipping or delivery.
func (s Status) CanTransitionTo(target Status) bool {
	allowed, ok := statusTransitions[s]
	if !ok {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

var statusTransitions = map[Status][]Status{
	StatusNew:            {StatusWaitingPayment, StatusPaid, StatusCancelled},
	StatusWaitingPayment: {StatusPaid, StatusCancelled},
	StatusPaid:           {StatusPacking, StatusShipped, StatusCancelled},
	StatusPacking:        {StatusShipped, StatusCancelled},
	StatusShipped:        {StatusDelivered, StatusReturned},
	StatusDelivered:      {StatusReturned},
	StatusCancelled:      {},
	StatusReturned:       {},
}

// AllowsEditing returns true while order lines may still be changed
func (s Status) AllowsEditing() bool {
	switch s {
	case StatusNew, StatusWaitingPayment:
		return true
	}
	return false
}

package queue

import (
	"time"

	"github.com/naijavoice/naijavoice-api/internal/synthesis"
)

const (
	TypeOrderFulfill = "order:fulfill"

	QueueFulfillment = "fulfillment"
)

// OrderFulfillPayload is what an operator sees for one order. Ticket is a
// random reference the operator can quote back to the customer.
type OrderFulfillPayload struct {
	Ticket     string                `json:"ticket"`
	Order      synthesis.OrderRecord `json:"order"`
	ReceivedAt time.Time             `json:"received_at"`
}

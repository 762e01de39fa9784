package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/naijavoice/naijavoice-api/internal/queue"
)

// FulfillmentWorker surfaces queued orders to the operators who record the
// audio by hand. It only logs; delivery happens outside this system.
type FulfillmentWorker struct {
	logger *slog.Logger
}

func NewFulfillmentWorker(logger *slog.Logger) *FulfillmentWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &FulfillmentWorker{logger: logger}
}

func (w *FulfillmentWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.OrderFulfillPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.Order.ID == 0 {
		return fmt.Errorf("payload has no order id: %w", asynq.SkipRetry)
	}

	w.logger.InfoContext(ctx, "order awaiting manual fulfillment",
		"ticket", payload.Ticket,
		"order_id", payload.Order.ID,
		"voice", payload.Order.Voice,
		"speed", payload.Order.Speed,
		"estimated_minutes", payload.Order.EstimatedMinutes,
		"text_preview", payload.Order.Text,
		"received_at", payload.ReceivedAt,
	)
	return nil
}

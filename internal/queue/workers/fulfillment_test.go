package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naijavoice/naijavoice-api/internal/queue"
	"github.com/naijavoice/naijavoice-api/internal/synthesis"
)

func TestProcessTaskLogsOrder(t *testing.T) {
	var buf bytes.Buffer
	w := NewFulfillmentWorker(slog.New(slog.NewJSONHandler(&buf, nil)))

	payload := queue.OrderFulfillPayload{
		Ticket:     "3f1c8a2e-0000-4000-8000-000000000001",
		Order:      synthesis.NewOrder(42, synthesis.Params{Text: "Hello Lagos", Voice: "lagos-female", Speed: 1}),
		ReceivedAt: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC),
	}
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	require.NoError(t, w.ProcessTask(context.Background(), asynq.NewTask(queue.TypeOrderFulfill, data)))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "order awaiting manual fulfillment", line["msg"])
	assert.Equal(t, payload.Ticket, line["ticket"])
	assert.Equal(t, float64(42), line["order_id"])
	assert.Equal(t, "Hello Lagos", line["text_preview"])
}

func TestProcessTaskRejectsBadPayload(t *testing.T) {
	w := NewFulfillmentWorker(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	for name, body := range map[string]string{
		"not json": "nope",
		"no order": `{"ticket":"x"}`,
	} {
		t.Run(name, func(t *testing.T) {
			err := w.ProcessTask(context.Background(), asynq.NewTask(queue.TypeOrderFulfill, []byte(body)))
			require.Error(t, err)
			assert.True(t, errors.Is(err, asynq.SkipRetry))
		})
	}
}

package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/naijavoice/naijavoice-api/internal/config"
	"github.com/naijavoice/naijavoice-api/internal/synthesis"
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// Client hands accepted orders to the operator queue. It implements
// synthesis.Dispatcher.
type Client struct {
	client enqueuer
	now    func() time.Time
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{
		client: asynq.NewClient(RedisOpt(cfg)),
		now:    time.Now,
	}
}

// RedisOpt converts the redis config to asynq connection options.
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Dispatch enqueues one order. asynq assigns the task id: order ids are only
// unique within one API process.
func (c *Client) Dispatch(ctx context.Context, order synthesis.OrderRecord) error {
	payload := OrderFulfillPayload{
		Ticket:     uuid.NewString(),
		Order:      order,
		ReceivedAt: c.now().UTC(),
	}
	return c.enqueue(ctx, TypeOrderFulfill, payload,
		asynq.Queue(QueueFulfillment),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
		asynq.Retention(72*time.Hour),
	)
}

func (c *Client) enqueue(ctx context.Context, taskType string, payload interface{}, opts ...asynq.Option) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	task := asynq.NewTask(taskType, data)
	_, err = c.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}
	return nil
}

package queue

import (
	"context"
	"fmt"

	"github.com/accountly/backend/internal/queue/task"

	"github.com/hibiken/asynq"
)

// EmailNotifier hands verification emails to the asynq queue. Delivery is
// best-effort from the caller's point of view, retries happen worker-side.
type EmailNotifier struct {
	client *asynq.Client
}

func NewEmailNotifier(redisOpt asynq.RedisConnOpt) *EmailNotifier {
	return &EmailNotifier{
		client: asynq.NewClient(redisOpt),
	}
}

func (n *EmailNotifier) NotifyVerificationCode(ctx context.Context, email string, code string) error {
	t, err := task.NewSendVerificationEmailTask(email, code)
	if err != nil {
		return fmt.Errorf("build send verification email task failed: %w", err)
	}

	if _, err := n.client.EnqueueContext(ctx, t); err != nil {
		return fmt.Errorf("enqueue send verification email task failed: %w", err)
	}

	return nil
}

func (n *EmailNotifier) Close() error {
	return n.client.Close()
}

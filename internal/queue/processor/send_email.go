package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/accountly/backend/internal/queue/task"
	"github.com/accountly/backend/internal/worker"

	"github.com/hibiken/asynq"
)

type sendVerificationEmailProcessor struct {
	workers *worker.Workers
}

func NewSendVerificationEmailProcessor(workers *worker.Workers) *sendVerificationEmailProcessor {
	return &sendVerificationEmailProcessor{
		workers: workers,
	}
}

func (p *sendVerificationEmailProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.SendVerificationEmail
	err := json.Unmarshal(t.Payload(), &data)
	if err != nil {
		return fmt.Errorf("process send verification email task json unmarshal failed: %w", err)
	}

	if err = p.workers.EmailSender.SendVerificationEmail(ctx, data.Email, data.VerificationCode); err != nil {
		return fmt.Errorf("send verification email failed: %w", err)
	}

	return nil
}

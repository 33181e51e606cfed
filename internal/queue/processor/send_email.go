package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vibe-gaming/gatekeeper/internal/queue/task"
	"github.com/vibe-gaming/gatekeeper/internal/worker"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
)

type sendEmailProcessor struct {
	workers *worker.Workers
}

func NewSendEmailProcessor(workers *worker.Workers) *sendEmailProcessor {
	return &sendEmailProcessor{
		workers: workers,
	}
}

func (p *sendEmailProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.SendEmail
	if err := json.Unmarshal(t.Payload(), &data); err != nil {
		// a broken payload stays broken on retry
		return fmt.Errorf("process send email task json unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}

	if err := p.workers.EmailSender.SendVerificationEmail(ctx, data.Email, data.VerificationCode); err != nil {
		return errors.Wrap(err, "send verification email failed")
	}

	return nil
}

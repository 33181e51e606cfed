package client

import (
	"context"
	"fmt"
	"time"

	"github.com/vibe-gaming/gatekeeper/internal/domain"
	"github.com/vibe-gaming/gatekeeper/internal/queue/task"
	"github.com/vibe-gaming/gatekeeper/pkg/logger"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Enqueuer is the part of *asynq.Client the notifier needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Notifier schedules verification emails on the asynq queue.
type Notifier struct {
	enqueuer Enqueuer
	maxRetry int
}

func NewNotifier(enqueuer Enqueuer, maxRetry int) *Notifier {
	return &Notifier{
		enqueuer: enqueuer,
		maxRetry: maxRetry,
	}
}

func (n *Notifier) ScheduleVerificationEmail(ctx context.Context, account *domain.Account, delay time.Duration) error {
	t, err := task.NewSendEmailTask(account.Email, account.VerificationCode.String, n.maxRetry)
	if err != nil {
		return fmt.Errorf("create send email task failed: %w", err)
	}

	info, err := n.enqueuer.EnqueueContext(ctx, t, asynq.ProcessIn(delay))
	if err != nil {
		return fmt.Errorf("enqueue send email task failed: %w", err)
	}

	logger.Debug("verification email scheduled",
		zap.String("task_id", info.ID),
		zap.Stringer("account_id", account.ID),
		zap.Duration("delay", delay),
	)

	return nil
}

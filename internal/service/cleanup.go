package service

import (
	"context"
	"fmt"

	"hostpanel/internal/hetzner"

	"go.uber.org/zap"
)

// Notifier sends an out-of-band operator alert. Implementations must accept
// calls on a nil receiver so a disabled notifier needs no call-site checks.
type Notifier interface {
	Notify(msg string)
}

// CleanupQueue runs best-effort compensating deletes of remote instances
// whose local insert failed. Work is fire-and-forget: failures are logged
// (and reported to the notifier) but never retried, and no result reaches
// the caller that enqueued the task.
type CleanupQueue struct {
	client   *hetzner.Client
	notifier Notifier
	logger   *zap.Logger
	tasks    chan int64
}

func NewCleanupQueue(client *hetzner.Client, notifier Notifier, logger *zap.Logger) *CleanupQueue {
	return &CleanupQueue{
		client:   client,
		notifier: notifier,
		logger:   logger,
		tasks:    make(chan int64, 16),
	}
}

// Start runs the worker until ctx is cancelled.
func (q *CleanupQueue) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case hetznerID := <-q.tasks:
				q.run(hetznerID)
			}
		}
	}()
}

// Enqueue schedules a compensating delete. If the queue is full the task is
// dropped with a log line; there is no reconciliation pass to catch it later.
func (q *CleanupQueue) Enqueue(hetznerID int64) {
	select {
	case q.tasks <- hetznerID:
	default:
		q.logger.Error("Cleanup queue full, dropping compensating delete",
			zap.Int64("hetzner_id", hetznerID))
	}
}

func (q *CleanupQueue) run(hetznerID int64) {
	if err := q.client.DeleteServer(context.Background(), hetznerID); err != nil {
		q.logger.Error("Failed to clean up remote instance after database error",
			zap.Int64("hetzner_id", hetznerID), zap.Error(err))
		if q.notifier != nil {
			q.notifier.Notify(fmt.Sprintf(
				"Compensating delete failed for Hetzner server %d; the instance may still be running and billable",
				hetznerID))
		}
		return
	}
	q.logger.Info("Cleaned up remote instance after database error",
		zap.Int64("hetzner_id", hetznerID))
}

package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/1983adrian/adimarketplace-sub002/internal/logger"
	"github.com/1983adrian/adimarketplace-sub002/internal/provider"
	"github.com/1983adrian/adimarketplace-sub002/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer handles asynchronous return workflow tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register registers task handlers.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskReturnStatusNotify, c.handleReturnStatusNotify)
	mux.HandleFunc(queue.TaskReturnStaleSweep, c.handleReturnStaleSweep)
}

func (c *Consumer) handleReturnStatusNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_return_status_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ReturnStatusNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_return_status_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.ReturnID == 0 {
		logger.Debugw("worker_return_status_notify_skip_invalid_payload", "return_id", payload.ReturnID)
		return nil
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_return_status_notify_skip_service_nil", "return_id", payload.ReturnID)
		return nil
	}
	if err := c.NotificationService.NotifyReturnStatus(payload.ReturnID, payload.OrderID, payload.BuyerID, payload.SellerID, payload.Status); err != nil {
		logger.Warnw("worker_return_status_notify_failed",
			"return_id", payload.ReturnID,
			"order_id", payload.OrderID,
			"status", payload.Status,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleReturnStaleSweep(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_return_stale_sweep_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	if c.ReturnService == nil {
		logger.Warnw("worker_return_stale_sweep_skip_service_nil")
		return nil
	}
	cutoff := time.Now().AddDate(0, 0, -c.staleCutoffDays())
	cancelled, err := c.ReturnService.CancelStalePending(cutoff, staleSweepBatchSize)
	if err != nil {
		logger.Warnw("worker_return_stale_sweep_failed", "error", err)
		return err
	}
	if cancelled > 0 {
		logger.Infow("worker_return_stale_sweep_done", "cancelled", cancelled, "cutoff", cutoff)
	}
	return nil
}

func (c *Consumer) staleCutoffDays() int {
	days := 0
	if c != nil && c.Config != nil {
		days = c.Config.Returns.PendingAutoCancelDays
	}
	if days <= 0 {
		days = 30
	}
	return days
}

package queue

import (
	"encoding/json"

	"github.com/1983adrian/adimarketplace-sub002/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskReturnStatusNotify notifies both parties about a return status change.
	TaskReturnStatusNotify = constants.TaskReturnStatusNotify
	// TaskReturnStaleSweep cancels pending returns past the configured age.
	TaskReturnStaleSweep = constants.TaskReturnStaleSweep
)

// ReturnStatusNotifyPayload carries a return status change event.
type ReturnStatusNotifyPayload struct {
	ReturnID uint   `json:"return_id"`
	OrderID  uint   `json:"order_id"`
	BuyerID  uint   `json:"buyer_id"`
	SellerID uint   `json:"seller_id"`
	Status   string `json:"status"`
}

// ReturnStaleSweepPayload carries the sweep trigger. The worker reads its
// cutoff from config, so the payload stays empty.
type ReturnStaleSweepPayload struct{}

// NewReturnStatusNotifyTask creates a return status notification task.
func NewReturnStatusNotifyTask(payload ReturnStatusNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReturnStatusNotify, body), nil
}

// NewReturnStaleSweepTask creates a stale return sweep task.
func NewReturnStaleSweepTask() (*asynq.Task, error) {
	body, err := json.Marshal(ReturnStaleSweepPayload{})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReturnStaleSweep, body), nil
}

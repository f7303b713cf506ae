package tasks

import (
	"encoding/json"

	"innkeep/config"

	"github.com/hibiken/asynq"
)

const (
	TypeInventoryCheckIn  = "inventory:checkin"
	TypeInventoryCheckOut = "inventory:checkout"
)

// InventoryPayload identifies the stay an inventory task acts on.
type InventoryPayload struct {
	RoomID  string `json:"roomId"`
	GuestID string `json:"guestId"`
}

// NewInventoryCheckInTask builds the task that auto-issues default check-in
// items to a fresh stay.
func NewInventoryCheckInTask(roomID, guestID string) (*asynq.Task, error) {
	b, err := json.Marshal(InventoryPayload{RoomID: roomID, GuestID: guestID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeInventoryCheckIn, b), nil
}

// NewInventoryCheckOutTask builds the task that reconciles a stay's issued
// stock at checkout.
func NewInventoryCheckOutTask(roomID, guestID string) (*asynq.Task, error) {
	b, err := json.Marshal(InventoryPayload{RoomID: roomID, GuestID: guestID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeInventoryCheckOut, b), nil
}

// InventoryNotifier dispatches fire-and-forget inventory intents. Failures
// are for the caller to log and swallow; they never block the stay
// operation.
type InventoryNotifier interface {
	NotifyCheckIn(roomID, guestID string) error
	NotifyCheckOut(roomID, guestID string) error
}

// AsynqInventoryNotifier enqueues inventory intents on the task queue with
// no retries: at-most-one delivery attempt.
type AsynqInventoryNotifier struct {
	client *asynq.Client
}

// NewInventoryNotifier creates a notifier backed by the shared Redis queue.
func NewInventoryNotifier() *AsynqInventoryNotifier {
	return &AsynqInventoryNotifier{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		}),
	}
}

// NotifyCheckIn enqueues the default-item issue intent.
func (n *AsynqInventoryNotifier) NotifyCheckIn(roomID, guestID string) error {
	task, err := NewInventoryCheckInTask(roomID, guestID)
	if err != nil {
		return err
	}
	_, err = n.client.Enqueue(task, asynq.MaxRetry(0))
	return err
}

// NotifyCheckOut enqueues the stock reconciliation intent.
func (n *AsynqInventoryNotifier) NotifyCheckOut(roomID, guestID string) error {
	task, err := NewInventoryCheckOutTask(roomID, guestID)
	if err != nil {
		return err
	}
	_, err = n.client.Enqueue(task, asynq.MaxRetry(0))
	return err
}

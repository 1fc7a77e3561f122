package events

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/lumenpay/passgate/ports"
)

// TransferSubmittedEvent is published after the ledger accepts a
// transfer.
type TransferSubmittedEvent struct {
	Sender          string `json:"sender"`
	Recipient       string `json:"recipient"`
	Amount          string `json:"amount"`
	TransactionHash string `json:"transaction_hash"`
}

// LogoutEvent is published when the local session is cleared.
type LogoutEvent struct {
	UserID         string `json:"user_id"`
	SmartAccountID string `json:"smart_account_id"`
}

// WatermillPublisher implements the EventPublisher interface using
// Watermill.
type WatermillPublisher struct {
	publisher     message.Publisher
	transferTopic string
	logoutTopic   string
}

// NewWatermillPublisher creates a new Watermill publisher.
func NewWatermillPublisher(publisher message.Publisher) ports.EventPublisher {
	return &WatermillPublisher{
		publisher:     publisher,
		transferTopic: "passgate.transfer.submitted",
		logoutTopic:   "passgate.session.logout",
	}
}

// PublishTransferSubmitted publishes a transfer-submitted event.
func (p *WatermillPublisher) PublishTransferSubmitted(ctx context.Context, sender, recipient string, amount *big.Int, transactionHash string) error {
	event := TransferSubmittedEvent{
		Sender:          sender,
		Recipient:       recipient,
		Amount:          amount.String(),
		TransactionHash: transactionHash,
	}
	return p.publish(p.transferTopic, event)
}

// PublishLogout publishes a logout event.
func (p *WatermillPublisher) PublishLogout(ctx context.Context, userID, smartAccountID string) error {
	event := LogoutEvent{
		UserID:         userID,
		SmartAccountID: smartAccountID,
	}
	return p.publish(p.logoutTopic, event)
}

func (p *WatermillPublisher) publish(topic string, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(uuid.New().String(), payload)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

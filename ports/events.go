package ports

import (
	"context"
	"math/big"
)

// EventPublisher notifies other components about session and transfer
// activity.
type EventPublisher interface {
	PublishTransferSubmitted(ctx context.Context, sender, recipient string, amount *big.Int, transactionHash string) error
	PublishLogout(ctx context.Context, userID, smartAccountID string) error
}

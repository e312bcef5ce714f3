package ports

import "context"

// ChipTransfer is a single chip balance change for a user.
type ChipTransfer struct {
	UserID   string
	Amount   int64
	Metadata map[string]interface{}
}

// EconomyPort defines the interface for settling Points games in chips.
type EconomyPort interface {
	// GetBalance retrieves the current chip balance for a user.
	GetBalance(ctx context.Context, userID string) (int64, error)

	// SettleOnce applies the transfers of a game atomically, at most once per
	// game. Returns settled=false when the game was already settled.
	SettleOnce(ctx context.Context, gameID string, transfers []ChipTransfer) (bool, error)
}

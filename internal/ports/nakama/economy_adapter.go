package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/sukhmal/RummyScorer-sub000/internal/app"
	"github.com/sukhmal/RummyScorer-sub000/internal/ports"
)

// Wallet is the subset of runtime.NakamaModule used for chip balances.
type Wallet interface {
	AccountGetId(ctx context.Context, userID string) (*api.Account, error)
	MultiUpdate(ctx context.Context, accountUpdates []*runtime.AccountUpdate, storageWrites []*runtime.StorageWrite, storageDeletes []*runtime.StorageDelete, walletUpdates []*runtime.WalletUpdate, updateLedger bool) ([]*api.StorageObjectAck, []*runtime.WalletUpdateResult, error)
}

// NakamaEconomyAdapter implements ports.EconomyPort using Nakama's wallet
// system.
type NakamaEconomyAdapter struct {
	wallet Wallet
	now    func() time.Time
}

// NewNakamaEconomyAdapter creates a new economy adapter.
func NewNakamaEconomyAdapter(wallet Wallet) *NakamaEconomyAdapter {
	return &NakamaEconomyAdapter{
		wallet: wallet,
		now:    time.Now,
	}
}

// GetBalance retrieves the current chip balance for a user.
func (a *NakamaEconomyAdapter) GetBalance(ctx context.Context, userID string) (int64, error) {
	account, err := a.wallet.AccountGetId(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get account: %w", err)
	}

	var wallet map[string]int64
	if w := account.GetWallet(); w != "" {
		if err := json.Unmarshal([]byte(w), &wallet); err != nil {
			return 0, fmt.Errorf("failed to unmarshal wallet: %w", err)
		}
	}

	return wallet[app.ChipCurrency], nil
}

// SettleOnce writes a settlement marker for the game together with every
// wallet change in one transaction. The marker is written only if absent, so a
// second settlement of the same game is rejected and reported as settled=false.
func (a *NakamaEconomyAdapter) SettleOnce(ctx context.Context, gameID string, transfers []ports.ChipTransfer) (bool, error) {
	if gameID == "" {
		return false, fmt.Errorf("gameID is required")
	}

	var total int64
	walletUpdates := make([]*runtime.WalletUpdate, 0, len(transfers))
	for _, t := range transfers {
		if t.Amount == 0 {
			continue
		}
		total += abs(t.Amount)
		walletUpdates = append(walletUpdates, &runtime.WalletUpdate{
			UserID:    t.UserID,
			Changeset: map[string]int64{app.ChipCurrency: t.Amount},
			Metadata:  t.Metadata,
		})
	}

	marker := map[string]interface{}{
		"game_id":    gameID,
		"transfers":  len(walletUpdates),
		"volume":     total,
		"settled_at": a.now().UTC().Format(time.RFC3339),
	}
	value, err := json.Marshal(marker)
	if err != nil {
		return false, fmt.Errorf("failed to marshal settlement marker: %w", err)
	}

	storageWrites := []*runtime.StorageWrite{
		{
			Collection:      SettlementsCollection,
			Key:             gameID,
			Value:           string(value),
			Version:         "*",
			PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}

	_, _, err = a.wallet.MultiUpdate(ctx, nil, storageWrites, nil, walletUpdates, true)
	if err != nil {
		if errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return false, nil
		}
		return false, fmt.Errorf("failed to settle game %s: %w", gameID, err)
	}

	return true, nil
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

var _ ports.EconomyPort = (*NakamaEconomyAdapter)(nil)

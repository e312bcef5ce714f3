package nakama

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

// fakeStorage keeps storage objects in memory, keyed by collection, owner and key.
type fakeStorage struct {
	mu       sync.Mutex
	objects  map[string]*api.StorageObject
	writes   []*runtime.StorageWrite
	writeErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string]*api.StorageObject)}
}

func storageKey(collection, userID, key string) string {
	return collection + "/" + userID + "/" + key
}

func (f *fakeStorage) StorageRead(ctx context.Context, reads []*runtime.StorageRead) ([]*api.StorageObject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*api.StorageObject
	for _, r := range reads {
		if obj, ok := f.objects[storageKey(r.Collection, r.UserID, r.Key)]; ok {
			out = append(out, obj)
		}
	}
	return out, nil
}

func (f *fakeStorage) StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	acks := make([]*api.StorageObjectAck, 0, len(writes))
	for _, w := range writes {
		f.writes = append(f.writes, w)
		f.objects[storageKey(w.Collection, w.UserID, w.Key)] = &api.StorageObject{
			Collection: w.Collection,
			Key:        w.Key,
			UserId:     w.UserID,
			Value:      w.Value,
		}
		acks = append(acks, &api.StorageObjectAck{Collection: w.Collection, Key: w.Key, UserId: w.UserID})
	}
	return acks, nil
}

// StorageList pages through objects in key order; the cursor is the offset.
func (f *fakeStorage) StorageList(ctx context.Context, callerID, userID, collection string, limit int, cursor string) ([]*api.StorageObject, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []*api.StorageObject
	for _, obj := range f.objects {
		if obj.Collection == collection && obj.UserId == userID {
			all = append(all, obj)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Key < all[j].Key })

	start := 0
	if cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil {
			return nil, "", errors.New("bad cursor")
		}
		start = n
	}
	end := min(start+limit, len(all))
	next := ""
	if end < len(all) {
		next = strconv.Itoa(end)
	}
	return all[start:end], next, nil
}

type fakeUsers struct {
	users map[string]*api.User
	calls [][]string
	err   error
}

func (f *fakeUsers) UsersGetId(ctx context.Context, userIDs []string, facebookIDs []string) ([]*api.User, error) {
	f.calls = append(f.calls, userIDs)
	if f.err != nil {
		return nil, f.err
	}
	var out []*api.User
	for _, id := range userIDs {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

// fakeWallet applies wallet updates and honours "*" version writes the way
// Nakama does: a second write of the same object is rejected.
type fakeWallet struct {
	wallets map[string]map[string]int64
	markers map[string]string
	err     error
}

func newFakeWallet() *fakeWallet {
	return &fakeWallet{wallets: make(map[string]map[string]int64), markers: make(map[string]string)}
}

func (f *fakeWallet) AccountGetId(ctx context.Context, userID string) (*api.Account, error) {
	w, ok := f.wallets[userID]
	if !ok {
		return nil, fmt.Errorf("account %s not found", userID)
	}
	wallet := "{"
	keys := make([]string, 0, len(w))
	for k := range w {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, k := range keys {
		if i > 0 {
			wallet += ","
		}
		wallet += strconv.Quote(k) + ":" + strconv.FormatInt(w[k], 10)
	}
	wallet += "}"
	return &api.Account{User: &api.User{Id: userID}, Wallet: wallet}, nil
}

func (f *fakeWallet) MultiUpdate(ctx context.Context, accountUpdates []*runtime.AccountUpdate, storageWrites []*runtime.StorageWrite, storageDeletes []*runtime.StorageDelete, walletUpdates []*runtime.WalletUpdate, updateLedger bool) ([]*api.StorageObjectAck, []*runtime.WalletUpdateResult, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	for _, w := range storageWrites {
		key := storageKey(w.Collection, w.UserID, w.Key)
		if _, exists := f.markers[key]; exists && w.Version == "*" {
			return nil, nil, runtime.ErrStorageRejectedVersion
		}
	}
	for _, w := range storageWrites {
		f.markers[storageKey(w.Collection, w.UserID, w.Key)] = w.Value
	}
	for _, u := range walletUpdates {
		if f.wallets[u.UserID] == nil {
			f.wallets[u.UserID] = make(map[string]int64)
		}
		for k, v := range u.Changeset {
			f.wallets[u.UserID][k] += v
		}
	}
	return nil, nil, nil
}

type sentNotification struct {
	userID  string
	subject string
	content map[string]interface{}
	code    int
}

type fakeNotifier struct {
	sent []sentNotification
}

func (f *fakeNotifier) NotificationSend(ctx context.Context, userID, subject string, content map[string]interface{}, code int, sender string, persistent bool) error {
	f.sent = append(f.sent, sentNotification{userID: userID, subject: subject, content: content, code: code})
	return nil
}

func (f *fakeNotifier) subjects(userID string) []string {
	var out []string
	for _, n := range f.sent {
		if n.userID == userID {
			out = append(out, n.subject)
		}
	}
	return out
}

// testBackend wires every fake into the RPC layer for the duration of a test.
type testBackend struct {
	storage  *fakeStorage
	users    *fakeUsers
	wallet   *fakeWallet
	notifier *fakeNotifier
}

func withTestBackend(t *testing.T) *testBackend {
	t.Helper()
	tb := &testBackend{
		storage:  newFakeStorage(),
		users:    &fakeUsers{users: make(map[string]*api.User)},
		wallet:   newFakeWallet(),
		notifier: &fakeNotifier{},
	}
	prev := newBackend
	newBackend = func(runtime.NakamaModule) backend {
		return backend{
			storage:  tb.storage,
			profiles: NewNakamaAccountAdapter(tb.users),
			economy:  NewNakamaEconomyAdapter(tb.wallet),
			notifier: tb.notifier,
		}
	}
	t.Cleanup(func() { newBackend = prev })
	return tb
}

func userCtx(userID string) context.Context {
	return context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, userID)
}

func errorCode(t *testing.T, err error) int {
	t.Helper()
	var rerr *runtime.Error
	if !errors.As(err, &rerr) {
		t.Fatalf("error %v is not a runtime error", err)
	}
	return rerr.Code
}

package records

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/cadastro/internal/storage"
	"github.com/dmitrijs2005/cadastro/internal/storage/memory"
)

const testKey = "@fromHook:cadastro"

// plainStore hides memory.Store's Update so the repository falls back to
// Get then Set.
type plainStore struct{ storage.Store }

// failingStore fails reads or writes on demand.
type failingStore struct {
	storage.Store
	getErr error
	setErr error
}

func (f *failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.Store.Get(ctx, key)
}

func (f *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.Store.Set(ctx, key, value)
}

// seqIDs returns "id-1", "id-2", ...
func seqIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestRepo(store storage.Store) *Repository {
	r := NewRepository(store, testKey)
	r.newID = seqIDs()
	return r
}

type recordingNotifier struct {
	success []string
	info    []string
}

func (n *recordingNotifier) Success(msg string) { n.success = append(n.success, msg) }
func (n *recordingNotifier) Info(msg string)    { n.info = append(n.info, msg) }

// fakeHasher marks passwords instead of hashing them.
type fakeHasher struct{ err error }

func (h fakeHasher) Hash(pw string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "sealed:" + pw, nil
}

func (h fakeHasher) Verify(pw, sealed string) (bool, error) {
	if !strings.HasPrefix(sealed, "sealed:") {
		return false, errBadSeal
	}
	return sealed == "sealed:"+pw, nil
}

var (
	errDisk    = errors.New("disk on fire")
	errBadSeal = errors.New("not sealed")
)

func newMemory() *memory.Store { return memory.New() }

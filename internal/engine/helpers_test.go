package engine

import (
	"context"
	"sync"
	"time"

	"github.com/makarovdm/go-sync-suite/internal/adapter"
	"github.com/makarovdm/go-sync-suite/internal/store"
	"github.com/makarovdm/go-sync-suite/models"
)

// fakeClock drives Now and AfterFunc by hand so the debounce window can be
// crossed deterministically.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	when    time.Time
	f       func()
	stopped bool
	fired   bool
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, when: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves the clock forward and fires every due timer in scheduling
// order. Callbacks run outside the clock lock, like real timers do.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)

	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.when.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

// memStore is an in-memory LocalStore used in place of the SQLite one.
type memStore struct {
	mu    sync.Mutex
	data  map[string][]byte
	full  bool
	fails int
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Read(namespace string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[namespace]
	if !ok {
		return nil, store.ErrNamespaceNotFound
	}
	return append([]byte(nil), raw...), nil
}

func (m *memStore) Write(namespace string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.full {
		m.fails++
		return store.ErrQuotaExceeded
	}
	m.data[namespace] = append([]byte(nil), value...)
	return nil
}

func (m *memStore) Clear(namespace string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, namespace)
	return nil
}

func (m *memStore) ReadAll() (map[string][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string][]byte, len(m.data))
	for ns, raw := range m.data {
		out[ns] = append([]byte(nil), raw...)
	}
	return out, nil
}

// fakeAdapter is a scripted ServerAdapter holding one in-memory record.
type fakeAdapter struct {
	mu        sync.Mutex
	token     string
	record    models.RemoteRecord
	hasRecord bool
	fetchErr  error
	putErr    error
	fetches   int
	puts      []models.PutRecordRequest
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{token: "test-token"}
}

func (f *fakeAdapter) setRecord(r models.RemoteRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record = r
	f.hasRecord = true
}

func (f *fakeAdapter) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

func (f *fakeAdapter) putCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.puts)
}

func (f *fakeAdapter) lastPut() models.PutRecordRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.puts[len(f.puts)-1]
}

func (f *fakeAdapter) Register(_ context.Context, user models.User) (models.User, error) {
	return models.User{UserID: 1, Login: user.Login, Name: user.Name}, nil
}

func (f *fakeAdapter) Login(_ context.Context, _ models.User) (models.Token, error) {
	return models.Token{SignedString: f.token, UserID: 1}, nil
}

func (f *fakeAdapter) FetchRecord(_ context.Context) (models.RemoteRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.fetchErr != nil {
		return models.RemoteRecord{}, f.fetchErr
	}
	if !f.hasRecord {
		return models.RemoteRecord{}, adapter.ErrNotFound
	}
	return f.record, nil
}

func (f *fakeAdapter) PutRecord(_ context.Context, req models.PutRecordRequest) (models.RemoteRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return models.RemoteRecord{}, f.putErr
	}
	f.puts = append(f.puts, req)
	f.record = models.RemoteRecord{Namespaces: req.Record, UpdatedAt: f.record.UpdatedAt.Add(time.Second)}
	f.hasRecord = true
	return f.record, nil
}

func (f *fakeAdapter) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *fakeAdapter) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

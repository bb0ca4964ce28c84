package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"autonomo/internal/domain/ride"
	"autonomo/internal/domain/vehicle"
	"autonomo/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK RIDE STATE STORE
// ──────────────────────────────────────────────

// MockRideStateStore is an in-memory RideStateStoreInterface.
type MockRideStateStore struct {
	mu     sync.RWMutex
	states map[string]ride.Ride

	// Counters for verification
	GetCallCount int32
	PutCallCount int32

	// Error injection
	GetError error
	PutError error
}

// NewMockRideStateStore creates a new mock ride state store.
func NewMockRideStateStore() *MockRideStateStore {
	return &MockRideStateStore{states: make(map[string]ride.Ride)}
}

// SetState seeds a ride state directly.
func (m *MockRideStateStore) SetState(id string, state ride.Ride) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[id] = state
}

func (m *MockRideStateStore) Get(ctx context.Context, id string) (ride.Ride, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if state, ok := m.states[id]; ok {
		return state, nil
	}
	return ride.InitialRideState{}, nil
}

func (m *MockRideStateStore) Put(ctx context.Context, id string, state ride.Ride) error {
	atomic.AddInt32(&m.PutCallCount, 1)
	if m.PutError != nil {
		return m.PutError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[id] = state
	return nil
}

// ──────────────────────────────────────────────
// MOCK VEHICLE STATE STORE
// ──────────────────────────────────────────────

// MockVehicleStateStore is an in-memory VehicleStateStoreInterface.
type MockVehicleStateStore struct {
	mu     sync.RWMutex
	states map[string]vehicle.Vehicle

	GetCallCount int32
	PutCallCount int32

	GetError error
	PutError error
}

// NewMockVehicleStateStore creates a new mock vehicle state store.
func NewMockVehicleStateStore() *MockVehicleStateStore {
	return &MockVehicleStateStore{states: make(map[string]vehicle.Vehicle)}
}

// SetState seeds a vehicle state directly.
func (m *MockVehicleStateStore) SetState(vin string, state vehicle.Vehicle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[vin] = state
}

func (m *MockVehicleStateStore) Get(ctx context.Context, vin string) (vehicle.Vehicle, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if state, ok := m.states[vin]; ok {
		return state, nil
	}
	return vehicle.InitialVehicleState{}, nil
}

func (m *MockVehicleStateStore) Put(ctx context.Context, vin string, state vehicle.Vehicle) error {
	atomic.AddInt32(&m.PutCallCount, 1)
	if m.PutError != nil {
		return m.PutError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[vin] = state
	return nil
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is an in-memory LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	AcquireCallCount int32
	ReleaseCallCount int32

	AcquireError error
	ReleaseError error

	// DenyAcquire simulates a contended aggregate.
	DenyAcquire bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{locks: make(map[string]bool)}
}

func (m *MockLockStore) AcquireAggregateLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	if m.DenyAcquire {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[key] {
		return false, nil
	}
	m.locks[key] = true
	return true, nil
}

func (m *MockLockStore) ReleaseAggregateLock(ctx context.Context, key string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	if m.ReleaseError != nil {
		return m.ReleaseError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, key)
	return nil
}

// Held reports whether the lock for key is currently held.
func (m *MockLockStore) Held(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locks[key]
}

// ──────────────────────────────────────────────
// MOCK EVENT JOURNAL
// ──────────────────────────────────────────────

// MockEventJournal is an in-memory EventJournal.
type MockEventJournal struct {
	mu      sync.RWMutex
	entries map[string][]repository.StoredEvent

	AppendCallCount int32
	LoadCallCount   int32

	AppendError error
	LoadError   error
}

// NewMockEventJournal creates a new mock event journal.
func NewMockEventJournal() *MockEventJournal {
	return &MockEventJournal{entries: make(map[string][]repository.StoredEvent)}
}

func (m *MockEventJournal) Append(ctx context.Context, aggregateID, eventType string, payload []byte) error {
	atomic.AddInt32(&m.AppendCallCount, 1)
	if m.AppendError != nil {
		return m.AppendError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[aggregateID] = append(m.entries[aggregateID], repository.StoredEvent{
		AggregateID: aggregateID,
		Seq:         int64(len(m.entries[aggregateID]) + 1),
		EventType:   eventType,
		Payload:     payload,
		RecordedAt:  time.Now().UTC(),
	})
	return nil
}

func (m *MockEventJournal) Load(ctx context.Context, aggregateID string) ([]repository.StoredEvent, error) {
	atomic.AddInt32(&m.LoadCallCount, 1)
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := m.entries[aggregateID]
	if len(entries) == 0 {
		return nil, repository.ErrNotFound
	}
	out := make([]repository.StoredEvent, len(entries))
	copy(out, entries)
	return out, nil
}

// History returns the event types journaled for an aggregate, in order.
func (m *MockEventJournal) History(aggregateID string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var types []string
	for _, entry := range m.entries[aggregateID] {
		types = append(types, entry.EventType)
	}
	return types
}

// ──────────────────────────────────────────────
// MOCK PUBLISHER
// ──────────────────────────────────────────────

// PublishedMessage is one message captured by MockPublisher.
type PublishedMessage struct {
	Exchange string
	Key      string
	Payload  []byte
}

// MockPublisher captures published event records.
type MockPublisher struct {
	mu       sync.RWMutex
	messages []PublishedMessage

	PublishCallCount int32
	PublishError     error
}

// NewMockPublisher creates a new mock publisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, exchange, key string, payload []byte) error {
	atomic.AddInt32(&m.PublishCallCount, 1)
	if m.PublishError != nil {
		return m.PublishError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, PublishedMessage{Exchange: exchange, Key: key, Payload: payload})
	return nil
}

// Messages returns a copy of everything published so far.
func (m *MockPublisher) Messages() []PublishedMessage {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]PublishedMessage, len(m.messages))
	copy(out, m.messages)
	return out
}

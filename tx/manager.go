package tx

import (
	"fmt"
	"sync"

	"github.com/deckarep/golang-set"

	"github.com/creditline/go-creditline/db"
	"github.com/creditline/go-creditline/log"
	"github.com/creditline/go-creditline/trustline"
	"github.com/creditline/go-creditline/tx/op"
)

// ManagerContext represents contextual information Manager needs.
type ManagerContext struct {
	Database db.Database        // database instance
	TM       *trustline.Manager // trust line manager
}

func ValidateManagerContext(mc *ManagerContext) error {
	if mc == nil {
		return fmt.Errorf("tx context is nil")
	}
	if mc.Database == nil {
		return fmt.Errorf("database instance is nil")
	}
	if mc.TM == nil {
		return fmt.Errorf("trust line manager is nil")
	}
	return nil
}

// Manager executes ledger operations. Every operation runs inside
// one writable store transaction which is committed only when the
// whole operation succeeded, and two operations touching a common
// trust line never interleave.
type Manager struct {
	database db.Database
	tm       *trustline.Manager

	// trust line keys of the operations in flight
	mu       sync.Mutex
	cond     *sync.Cond
	inflight mapset.Set
}

// NewManager creates an instance of Manager with ManagerContext.
func NewManager(ctx *ManagerContext) *Manager {
	if err := ValidateManagerContext(ctx); err != nil {
		log.Fatalf("tx manager context is invalid: %v", err)
	}
	m := &Manager{
		database: ctx.Database,
		tm:       ctx.TM,
		inflight: mapset.NewThreadUnsafeSet(),
	}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Execute applies the operation within a fresh store transaction.
// On any failure the transaction is rolled back and the ledger is
// left exactly as it was before the call.
func (m *Manager) Execute(o op.Op) error {
	keys := o.Keys()

	m.acquire(keys)
	defer m.release(keys)

	dt, err := m.database.Begin()
	if err != nil {
		return fmt.Errorf("begin store transaction failed: %v", err)
	}

	if err := o.Apply(dt); err != nil {
		if rerr := dt.Rollback(); rerr != nil {
			log.Errorw("rollback store transaction failed", "err", rerr)
		}
		// drop records read within the aborted transaction
		m.tm.Evict(keys...)
		return err
	}

	if err := dt.Commit(); err != nil {
		m.tm.Evict(keys...)
		return fmt.Errorf("commit store transaction failed: %v", err)
	}

	return nil
}

// acquire blocks until none of the keys belongs to an operation in
// flight, then marks all of them as in flight. Keys are taken all at
// once so two operations can never hold conflicting partial sets.
func (m *Manager) acquire(keys []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for m.conflicts(keys) {
		m.cond.Wait()
	}
	for _, k := range keys {
		m.inflight.Add(k)
	}
}

func (m *Manager) release(keys []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, k := range keys {
		m.inflight.Remove(k)
	}
	m.cond.Broadcast()
}

func (m *Manager) conflicts(keys []string) bool {
	for _, k := range keys {
		if m.inflight.Contains(k) {
			return true
		}
	}
	return false
}

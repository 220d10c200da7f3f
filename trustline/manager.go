package trustline

import (
	"fmt"
	"math"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/creditline/go-creditline/db"
	"github.com/creditline/go-creditline/log"
)

// Manager manages the trust line records in the store. All reads and
// writes go through the manager so that the canonical key ordering
// and the record invariants cannot be bypassed.
type Manager struct {
	database db.Database
	bucket   string

	// LRU cache for decoded trust lines
	lines *lru.Cache
}

// NewManager creates a trust line manager on the database.
func NewManager(d db.Database, cacheSize int) *Manager {
	m := &Manager{
		database: d,
		bucket:   "TRUSTLINE",
	}
	err := m.database.NewBucket(m.bucket)
	if err != nil {
		log.Fatalf("create db bucket %s failed: %v", m.bucket, err)
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		log.Fatalf("create trust line LRU cache failed: %v", err)
	}
	m.lines = cache
	return m
}

// Bucket returns the name of the store bucket holding the records.
func (m *Manager) Bucket() string {
	return m.bucket
}

// CreateTrustLine creates a new trust line between the creator and the
// counterparty in the specified asset. The creator extends the stated
// limit to the counterparty, the opposite limit starts at zero until
// the counterparty raises it.
func (m *Manager) CreateTrustLine(dt db.Tx, creator string, counterparty string, asset string, limit int64, allowRippling bool) (*TrustLine, error) {
	if creator == counterparty {
		return nil, ErrSelfTrustLine
	}
	if asset == "" {
		return nil, fmt.Errorf("trust line asset is empty")
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	low, high := OrderAccounts(creator, counterparty)

	key := Key(low, high, asset)
	b, err := dt.Get(m.bucket, key)
	if err != nil {
		return nil, fmt.Errorf("get trust line failed: %v", err)
	}
	if b != nil {
		return nil, ErrAlreadyExists
	}

	now := time.Now().Unix()
	tl := &TrustLine{
		AccountLow:    low,
		AccountHigh:   high,
		Asset:         asset,
		AllowRippling: allowRippling,
		QualityIn:     QualityBase,
		QualityOut:    QualityBase,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if creator == low {
		tl.LimitLowToHigh = limit
	} else {
		tl.LimitHighToLow = limit
	}

	if err := m.SaveTrustLine(dt, tl); err != nil {
		return nil, err
	}

	return tl, nil
}

// GetTrustLine loads the trust line between the two accounts in the
// specified asset, the account pair may be supplied in any order.
func (m *Manager) GetTrustLine(getter db.Getter, a string, b string, asset string) (*TrustLine, error) {
	key := Key(a, b, asset)

	// first check the LRU cache, a copy of the record is
	// returned so callers cannot mutate the cached one
	if tl, ok := m.lines.Get(string(key)); ok {
		cp := *tl.(*TrustLine)
		return &cp, nil
	}

	// then check the store
	val, err := getter.Get(m.bucket, key)
	if err != nil {
		return nil, fmt.Errorf("get trust line failed: %v", err)
	}
	if val == nil {
		return nil, ErrNotFound
	}
	tl, err := Decode(val)
	if err != nil {
		return nil, fmt.Errorf("decode trust line failed: %v", err)
	}

	// cache the record
	m.lines.Add(string(key), tl)
	cp := *tl

	return &cp, nil
}

// SaveTrustLine validates and persists the trust line record.
func (m *Manager) SaveTrustLine(putter db.Putter, tl *TrustLine) error {
	if err := tl.Validate(); err != nil {
		return fmt.Errorf("validate trust line failed: %v", err)
	}

	tl.UpdatedAt = time.Now().Unix()

	b, err := Encode(tl)
	if err != nil {
		return fmt.Errorf("encode trust line failed: %v", err)
	}

	key := Key(tl.AccountLow, tl.AccountHigh, tl.Asset)
	err = putter.Put(m.bucket, key, b)
	if err != nil {
		return fmt.Errorf("save trust line in db failed: %v", err)
	}

	// the write may belong to an uncommitted transaction so the
	// record is evicted instead of refreshed
	m.lines.Remove(string(key))

	return nil
}

// DeleteTrustLine removes the trust line between the two accounts,
// a line with outstanding balance cannot be removed.
func (m *Manager) DeleteTrustLine(dt db.Tx, a string, b string, asset string) error {
	tl, err := m.GetTrustLine(dt, a, b, asset)
	if err != nil {
		return err
	}
	if tl.Balance != 0 {
		return ErrNonZeroBalance
	}

	key := Key(a, b, asset)
	if err := dt.Delete(m.bucket, key); err != nil {
		return fmt.Errorf("delete trust line in db failed: %v", err)
	}

	m.lines.Remove(string(key))

	return nil
}

// ApplyPayment applies a payment of the amount by the payer to the
// trust line balance. This is the only place where a balance changes:
// a payment from the low account decreases the balance and is bounded
// by the limit extended by the low account, a payment from the high
// account increases the balance and is bounded by the limit extended
// by the high account.
func (m *Manager) ApplyPayment(tl *TrustLine, payer string, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	switch payer {
	case tl.AccountLow:
		if tl.Balance < math.MinInt64+amount {
			return ErrInsufficientCredit
		}
		newBalance := tl.Balance - amount
		if newBalance < -tl.LimitLowToHigh {
			return ErrInsufficientCredit
		}
		tl.Balance = newBalance
	case tl.AccountHigh:
		if tl.Balance > math.MaxInt64-amount {
			return ErrInsufficientCredit
		}
		newBalance := tl.Balance + amount
		if newBalance > tl.LimitHighToLow {
			return ErrInsufficientCredit
		}
		tl.Balance = newBalance
	default:
		return ErrNotParty
	}

	return nil
}

// UpdateLimit updates the credit limit the caller extends to the
// other party, the opposite limit is never touched.
func (m *Manager) UpdateLimit(tl *TrustLine, caller string, newLimit int64) error {
	if newLimit < 0 {
		return ErrInvalidLimit
	}

	switch caller {
	case tl.AccountLow:
		if tl.Balance < -newLimit {
			return ErrInvalidLimit
		}
		tl.LimitLowToHigh = newLimit
	case tl.AccountHigh:
		if tl.Balance > newLimit {
			return ErrInvalidLimit
		}
		tl.LimitHighToLow = newLimit
	default:
		return ErrNotParty
	}

	return nil
}

// Evict drops the trust line records with the given store keys from
// the cache. The transaction executor calls this after a rollback so
// reads made inside the aborted transaction cannot linger.
func (m *Manager) Evict(keys ...string) {
	for _, k := range keys {
		m.lines.Remove(k)
	}
}

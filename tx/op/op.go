package op

import (
	"errors"

	"github.com/creditline/go-creditline/db"
)

// DefaultMaxHops is the default maximum number of intermediate
// accounts in a routed payment path.
const DefaultMaxHops = 6

var (
	ErrEmptyPath        = errors.New("payment path is empty")
	ErrPathTooLong      = errors.New("payment path is too long")
	ErrRipplingDisabled = errors.New("rippling is disabled on an interior trust line")
	ErrNotAuthorized    = errors.New("account is not authorized for the operation")
)

// Op is a ledger operation which can be applied within a store
// transaction. Keys lists the store keys of every trust line the
// operation may touch so the executor can serialize conflicting
// operations.
type Op interface {
	Apply(dt db.Tx) error
	Keys() []string
}

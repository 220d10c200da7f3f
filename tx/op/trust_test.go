package op

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creditline/go-creditline/db/memdb"
	"github.com/creditline/go-creditline/trustline"
)

const (
	alice = "Alice"
	bob   = "Bob"
	carol = "Carol"
	asset = "USD"
)

func TestCreateTrustOp(t *testing.T) {
	memorydb := memdb.New()
	tm := trustline.NewManager(memorydb, 100)

	memorytx, _ := memorydb.Begin()

	createOp := CreateTrust{
		TM:            tm,
		SrcAccountID:  alice,
		Counterparty:  bob,
		Asset:         asset,
		Limit:         1000,
		AllowRippling: true,
	}

	// test create new trust line
	err := createOp.Apply(memorytx)
	assert.Nil(t, err)
	assert.Equal(t, []string{trustline.KeyString(alice, bob, asset)}, createOp.Keys())

	// creating the same line again fails
	err = createOp.Apply(memorytx)
	assert.Equal(t, trustline.ErrAlreadyExists, err)

	require.Nil(t, memorytx.Commit())

	// check created trust line
	tl, err := tm.GetTrustLine(memorydb, alice, bob, asset)
	require.Nil(t, err)
	assert.Equal(t, int64(1000), tl.LimitLowToHigh)
	assert.Equal(t, int64(0), tl.LimitHighToLow)
	assert.Equal(t, int64(0), tl.Balance)
}

func TestUpdateLimitOp(t *testing.T) {
	memorydb := memdb.New()
	tm := trustline.NewManager(memorydb, 100)

	memorytx, _ := memorydb.Begin()

	createOp := CreateTrust{TM: tm, SrcAccountID: alice, Counterparty: bob, Asset: asset, Limit: 1000, AllowRippling: true}
	require.Nil(t, createOp.Apply(memorytx))

	// the counterparty raises its own limit
	updateOp := UpdateLimit{
		TM:           tm,
		SrcAccountID: bob,
		Counterparty: alice,
		Asset:        asset,
		NewLimit:     500,
	}
	err := updateOp.Apply(memorytx)
	assert.Nil(t, err)

	require.Nil(t, memorytx.Commit())

	tl, err := tm.GetTrustLine(memorydb, alice, bob, asset)
	require.Nil(t, err)
	assert.Equal(t, int64(1000), tl.LimitLowToHigh)
	assert.Equal(t, int64(500), tl.LimitHighToLow)

	// updating a missing line fails
	memorytx, _ = memorydb.Begin()
	updateOp.Asset = "EUR"
	err = updateOp.Apply(memorytx)
	assert.Equal(t, trustline.ErrNotFound, err)
	require.Nil(t, memorytx.Rollback())
}

func TestSetRipplingOp(t *testing.T) {
	memorydb := memdb.New()
	tm := trustline.NewManager(memorydb, 100)

	memorytx, _ := memorydb.Begin()

	createOp := CreateTrust{TM: tm, SrcAccountID: alice, Counterparty: bob, Asset: asset, Limit: 1000, AllowRippling: true}
	require.Nil(t, createOp.Apply(memorytx))

	// only the canonical low account may toggle rippling
	ripplingOp := SetRippling{
		TM:           tm,
		SrcAccountID: bob,
		Counterparty: alice,
		Asset:        asset,
		Allow:        false,
	}
	err := ripplingOp.Apply(memorytx)
	assert.Equal(t, ErrNotAuthorized, err)

	ripplingOp.SrcAccountID = alice
	ripplingOp.Counterparty = bob
	err = ripplingOp.Apply(memorytx)
	assert.Nil(t, err)

	require.Nil(t, memorytx.Commit())

	tl, err := tm.GetTrustLine(memorydb, alice, bob, asset)
	require.Nil(t, err)
	assert.Equal(t, false, tl.AllowRippling)
}

func TestCloseTrustOp(t *testing.T) {
	memorydb := memdb.New()
	tm := trustline.NewManager(memorydb, 100)

	memorytx, _ := memorydb.Begin()
	createOp := CreateTrust{TM: tm, SrcAccountID: alice, Counterparty: bob, Asset: asset, Limit: 1000, AllowRippling: true}
	require.Nil(t, createOp.Apply(memorytx))
	require.Nil(t, memorytx.Commit())

	// pay over the line so the balance is outstanding
	memorytx, _ = memorydb.Begin()
	payOp := Payment{TM: tm, SrcAccountID: alice, DstAccountID: bob, Asset: asset, Amount: 100}
	require.Nil(t, payOp.Apply(memorytx))

	closeOp := CloseTrust{TM: tm, SrcAccountID: bob, Counterparty: alice, Asset: asset}
	err := closeOp.Apply(memorytx)
	assert.Equal(t, trustline.ErrNonZeroBalance, err)
	require.Nil(t, memorytx.Commit())

	// settle the balance, then close
	memorytx, _ = memorydb.Begin()
	payBack := Payment{TM: tm, SrcAccountID: bob, DstAccountID: alice, Asset: asset, Amount: 100}
	require.Nil(t, payBack.Apply(memorytx))

	err = closeOp.Apply(memorytx)
	assert.Nil(t, err)
	require.Nil(t, memorytx.Commit())

	_, err = tm.GetTrustLine(memorydb, alice, bob, asset)
	assert.Equal(t, trustline.ErrNotFound, err)
}

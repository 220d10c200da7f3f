package op

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creditline/go-creditline/db"
	"github.com/creditline/go-creditline/db/memdb"
	"github.com/creditline/go-creditline/trustline"
)

// createLine creates a trust line with the given limit in each
// direction.
func createLine(t *testing.T, tm *trustline.Manager, dt db.Tx, a, b string, limitAB, limitBA int64, rippling bool) {
	t.Helper()

	createOp := CreateTrust{TM: tm, SrcAccountID: a, Counterparty: b, Asset: asset, Limit: limitAB, AllowRippling: rippling}
	require.Nil(t, createOp.Apply(dt))

	if limitBA > 0 {
		updateOp := UpdateLimit{TM: tm, SrcAccountID: b, Counterparty: a, Asset: asset, NewLimit: limitBA}
		require.Nil(t, updateOp.Apply(dt))
	}
}

func balanceOf(t *testing.T, tm *trustline.Manager, getter db.Getter, a, b string) int64 {
	t.Helper()

	tl, err := tm.GetTrustLine(getter, a, b, asset)
	require.Nil(t, err)
	return tl.Balance
}

func TestDirectPayment(t *testing.T) {
	memorydb := memdb.New()
	tm := trustline.NewManager(memorydb, 100)

	memorytx, _ := memorydb.Begin()
	createLine(t, tm, memorytx, alice, bob, 1000, 0, true)
	require.Nil(t, memorytx.Commit())

	// invalid amounts are rejected before any storage access
	memorytx, _ = memorydb.Begin()
	payOp := Payment{TM: tm, SrcAccountID: alice, DstAccountID: bob, Asset: asset, Amount: 0}
	assert.Equal(t, trustline.ErrInvalidAmount, payOp.Apply(memorytx))

	payOp.Amount = -10
	assert.Equal(t, trustline.ErrInvalidAmount, payOp.Apply(memorytx))

	// payment to self is rejected
	payOp = Payment{TM: tm, SrcAccountID: alice, DstAccountID: alice, Asset: asset, Amount: 10}
	assert.Equal(t, trustline.ErrSelfTrustLine, payOp.Apply(memorytx))

	// a payment cannot create a trust line
	payOp = Payment{TM: tm, SrcAccountID: alice, DstAccountID: carol, Asset: asset, Amount: 10}
	assert.Equal(t, trustline.ErrNotFound, payOp.Apply(memorytx))

	// Alice pays Bob 100
	payOp = Payment{TM: tm, SrcAccountID: alice, DstAccountID: bob, Asset: asset, Amount: 100}
	assert.Nil(t, payOp.Apply(memorytx))
	require.Nil(t, memorytx.Commit())

	assert.Equal(t, int64(-100), balanceOf(t, tm, memorydb, alice, bob))

	// Alice's capacity shrank, Bob's grew
	credit, err := tm.AvailableCredit(memorydb, alice, bob, asset)
	require.Nil(t, err)
	assert.Equal(t, int64(900), credit)

	credit, err = tm.AvailableCredit(memorydb, bob, alice, asset)
	require.Nil(t, err)
	assert.Equal(t, int64(100), credit)
}

func TestDirectPaymentInsufficientCredit(t *testing.T) {
	memorydb := memdb.New()
	tm := trustline.NewManager(memorydb, 100)

	memorytx, _ := memorydb.Begin()
	createLine(t, tm, memorytx, alice, bob, 100, 0, true)

	payOp := Payment{TM: tm, SrcAccountID: alice, DstAccountID: bob, Asset: asset, Amount: 100}
	require.Nil(t, payOp.Apply(memorytx))
	require.Nil(t, memorytx.Commit())

	// the limit is exhausted, one more unit fails
	memorytx, _ = memorydb.Begin()
	payOp.Amount = 1
	assert.Equal(t, trustline.ErrInsufficientCredit, payOp.Apply(memorytx))
	require.Nil(t, memorytx.Rollback())

	assert.Equal(t, int64(-100), balanceOf(t, tm, memorydb, alice, bob))
}

func TestPathPayment(t *testing.T) {
	memorydb := memdb.New()
	tm := trustline.NewManager(memorydb, 100)

	memorytx, _ := memorydb.Begin()
	createLine(t, tm, memorytx, alice, carol, 1000, 0, true)
	createLine(t, tm, memorytx, carol, bob, 1000, 0, true)
	require.Nil(t, memorytx.Commit())

	// Alice pays Bob 100 through Carol
	memorytx, _ = memorydb.Begin()
	ppOp := PathPayment{
		TM:           tm,
		SrcAccountID: alice,
		DstAccountID: bob,
		Asset:        asset,
		Amount:       100,
		Path:         []string{carol},
	}
	err := ppOp.Apply(memorytx)
	assert.Nil(t, err)
	require.Nil(t, memorytx.Commit())

	// Carol's obligations shifted, the routed amount is constant.
	// Alice is the low account of the Alice-Carol line, Carol the
	// high account of the Bob-Carol line, so the signs differ.
	assert.Equal(t, int64(-100), balanceOf(t, tm, memorydb, alice, carol))
	assert.Equal(t, int64(100), balanceOf(t, tm, memorydb, carol, bob))

	// keys cover every hop
	assert.Equal(t, []string{
		trustline.KeyString(alice, carol, asset),
		trustline.KeyString(carol, bob, asset),
	}, ppOp.Keys())
}

func TestPathPaymentValidation(t *testing.T) {
	memorydb := memdb.New()
	tm := trustline.NewManager(memorydb, 100)

	memorytx, _ := memorydb.Begin()

	ppOp := PathPayment{TM: tm, SrcAccountID: alice, DstAccountID: bob, Asset: asset, Amount: 0, Path: []string{carol}}
	assert.Equal(t, trustline.ErrInvalidAmount, ppOp.Apply(memorytx))

	ppOp.Amount = 100
	ppOp.Path = nil
	assert.Equal(t, ErrEmptyPath, ppOp.Apply(memorytx))

	ppOp.Path = []string{"n1", "n2", "n3", "n4", "n5", "n6", "n7"}
	assert.Equal(t, ErrPathTooLong, ppOp.Apply(memorytx))

	// a lower configured maximum applies
	ppOp.Path = []string{"n1", "n2", "n3"}
	ppOp.MaxHops = 2
	assert.Equal(t, ErrPathTooLong, ppOp.Apply(memorytx))

	// adjacent duplicate accounts are rejected before any hop
	ppOp.MaxHops = 0
	ppOp.Path = []string{alice}
	assert.Equal(t, trustline.ErrSelfTrustLine, ppOp.Apply(memorytx))

	// a missing hop line aborts the payment
	ppOp.Path = []string{carol}
	assert.Equal(t, trustline.ErrNotFound, ppOp.Apply(memorytx))

	require.Nil(t, memorytx.Rollback())
}

func TestPathPaymentRipplingDisabled(t *testing.T) {
	memorydb := memdb.New()
	tm := trustline.NewManager(memorydb, 100)

	memorytx, _ := memorydb.Begin()
	createLine(t, tm, memorytx, alice, carol, 1000, 0, true)
	// Carol forbids transit on her line with Bob
	createLine(t, tm, memorytx, carol, bob, 1000, 0, false)
	createLine(t, tm, memorytx, bob, "Dave", 1000, 0, true)
	require.Nil(t, memorytx.Commit())

	// Alice -> Carol -> Bob -> Dave crosses the Carol-Bob line as an
	// interior hop, so the payment is rejected
	memorytx, _ = memorydb.Begin()
	ppOp := PathPayment{
		TM:           tm,
		SrcAccountID: alice,
		DstAccountID: "Dave",
		Asset:        asset,
		Amount:       100,
		Path:         []string{carol, bob},
	}
	err := ppOp.Apply(memorytx)
	assert.Equal(t, ErrRipplingDisabled, err)
	require.Nil(t, memorytx.Rollback())
	tm.Evict(ppOp.Keys()...)

	assert.Equal(t, int64(0), balanceOf(t, tm, memorydb, alice, carol))
	assert.Equal(t, int64(0), balanceOf(t, tm, memorydb, carol, bob))
	assert.Equal(t, int64(0), balanceOf(t, tm, memorydb, bob, "Dave"))

	// the same line is fine as the first or last hop
	memorytx, _ = memorydb.Begin()
	ppOp = PathPayment{
		TM:           tm,
		SrcAccountID: carol,
		DstAccountID: "Dave",
		Asset:        asset,
		Amount:       100,
		Path:         []string{bob},
	}
	err = ppOp.Apply(memorytx)
	assert.Nil(t, err)
	require.Nil(t, memorytx.Commit())
}

package trustline

import (
	"github.com/creditline/go-creditline/db"
	"github.com/creditline/go-creditline/util"
)

// AvailableCredit returns the unused capacity the from account can
// still pay the to account in the specified asset, counting credit
// already in the payer's favor. A missing trust line yields zero
// capacity.
func (m *Manager) AvailableCredit(getter db.Getter, from string, to string, asset string) (int64, error) {
	tl, err := m.GetTrustLine(getter, from, to, asset)
	if err != nil {
		if err == ErrNotFound {
			return 0, nil
		}
		return 0, err
	}

	// a payment by the low account may move the balance down to
	// -LimitLowToHigh, one by the high account up to LimitHighToLow
	if from == tl.AccountLow {
		return util.MaxInt64(0, tl.LimitLowToHigh+tl.Balance), nil
	}
	if from == tl.AccountHigh {
		return util.MaxInt64(0, tl.LimitHighToLow-tl.Balance), nil
	}
	return 0, ErrNotParty
}

// QueryTrustLine loads the trust line between the two accounts, a
// missing line yields nil instead of an error.
func (m *Manager) QueryTrustLine(getter db.Getter, a string, b string, asset string) (*TrustLine, error) {
	tl, err := m.GetTrustLine(getter, a, b, asset)
	if err != nil {
		if err == ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return tl, nil
}

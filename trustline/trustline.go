package trustline

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// QualityBase is the fixed-point base of the quality factors,
// a value of 1000 means a quality of 1.0.
const QualityBase uint32 = 1000

var (
	ErrNotFound           = errors.New("trust line not found")
	ErrAlreadyExists      = errors.New("trust line already exists")
	ErrSelfTrustLine      = errors.New("cannot create trust line with self")
	ErrInvalidLimit       = errors.New("invalid trust line limit")
	ErrInvalidAmount      = errors.New("invalid payment amount")
	ErrInsufficientCredit = errors.New("insufficient credit")
	ErrNonZeroBalance     = errors.New("trust line balance is not zero")
	ErrNotParty           = errors.New("account is not a party of the trust line")
)

// TrustLine is a bilateral credit relationship between two accounts
// in one asset. The two parties are stored in canonical order so a
// single record represents the relationship no matter which party
// initiated it. The balance is signed, a positive balance means
// AccountHigh owes AccountLow and a negative balance means AccountLow
// owes AccountHigh.
type TrustLine struct {
	AccountLow     string `cbor:"account_low" json:"account_low"`
	AccountHigh    string `cbor:"account_high" json:"account_high"`
	Asset          string `cbor:"asset" json:"asset"`
	LimitLowToHigh int64  `cbor:"limit_low_to_high" json:"limit_low_to_high"`
	LimitHighToLow int64  `cbor:"limit_high_to_low" json:"limit_high_to_low"`
	Balance        int64  `cbor:"balance" json:"balance"`
	AllowRippling  bool   `cbor:"allow_rippling" json:"allow_rippling"`
	QualityIn      uint32 `cbor:"quality_in" json:"quality_in"`
	QualityOut     uint32 `cbor:"quality_out" json:"quality_out"`
	CreatedAt      int64  `cbor:"created_at" json:"created_at"`
	UpdatedAt      int64  `cbor:"updated_at" json:"updated_at"`
}

// OrderAccounts orders two account IDs into the canonical
// (low, high) pair.
func OrderAccounts(a string, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}

// Key constructs the store key of the trust line between the two
// accounts in the specified asset. Every segment is length-prefixed
// so distinct triples can never map to the same key, whatever bytes
// the account IDs or the asset code contain.
func Key(a string, b string, asset string) []byte {
	low, high := OrderAccounts(a, b)
	var buf bytes.Buffer
	for _, s := range []string{low, high, asset} {
		binary.Write(&buf, binary.BigEndian, uint32(len(s)))
		buf.WriteString(s)
	}
	return buf.Bytes()
}

// KeyString is the string form of Key.
func KeyString(a string, b string, asset string) string {
	return string(Key(a, b, asset))
}

// Validate checks the structural invariants of the trust line.
func (tl *TrustLine) Validate() error {
	if tl.AccountLow >= tl.AccountHigh {
		return fmt.Errorf("account pair %s, %s not in canonical order", tl.AccountLow, tl.AccountHigh)
	}
	if tl.Asset == "" {
		return errors.New("trust line asset is empty")
	}
	if tl.LimitLowToHigh < 0 || tl.LimitHighToLow < 0 {
		return ErrInvalidLimit
	}
	if tl.Balance < -tl.LimitLowToHigh || tl.Balance > tl.LimitHighToLow {
		return fmt.Errorf("balance %d out of limits [-%d, %d]", tl.Balance, tl.LimitLowToHigh, tl.LimitHighToLow)
	}
	return nil
}

// IsParty reports whether the account is one of the two parties
// of the trust line.
func (tl *TrustLine) IsParty(accountID string) bool {
	return accountID == tl.AccountLow || accountID == tl.AccountHigh
}

// Counterparty returns the other party of the trust line.
func (tl *TrustLine) Counterparty(accountID string) (string, error) {
	switch accountID {
	case tl.AccountLow:
		return tl.AccountHigh, nil
	case tl.AccountHigh:
		return tl.AccountLow, nil
	}
	return "", ErrNotParty
}

package op

import (
	"fmt"

	"github.com/creditline/go-creditline/db"
	"github.com/creditline/go-creditline/trustline"
)

// CreateTrust creates a new trust line between the source account
// and the counterparty, the source account extends the stated limit.
type CreateTrust struct {
	TM            *trustline.Manager
	SrcAccountID  string
	Counterparty  string
	Asset         string
	Limit         int64
	AllowRippling bool
}

func (ct *CreateTrust) Apply(dt db.Tx) error {
	_, err := ct.TM.CreateTrustLine(dt, ct.SrcAccountID, ct.Counterparty, ct.Asset, ct.Limit, ct.AllowRippling)
	if err != nil {
		return err
	}
	return nil
}

func (ct *CreateTrust) Keys() []string {
	return []string{trustline.KeyString(ct.SrcAccountID, ct.Counterparty, ct.Asset)}
}

// UpdateLimit changes the credit limit the source account extends
// to the counterparty.
type UpdateLimit struct {
	TM           *trustline.Manager
	SrcAccountID string
	Counterparty string
	Asset        string
	NewLimit     int64
}

func (ul *UpdateLimit) Apply(dt db.Tx) error {
	tl, err := ul.TM.GetTrustLine(dt, ul.SrcAccountID, ul.Counterparty, ul.Asset)
	if err != nil {
		return err
	}

	if err := ul.TM.UpdateLimit(tl, ul.SrcAccountID, ul.NewLimit); err != nil {
		return err
	}

	if err := ul.TM.SaveTrustLine(dt, tl); err != nil {
		return fmt.Errorf("save trust line failed: %v", err)
	}

	return nil
}

func (ul *UpdateLimit) Keys() []string {
	return []string{trustline.KeyString(ul.SrcAccountID, ul.Counterparty, ul.Asset)}
}

// SetRippling toggles whether third party payments may route through
// the trust line. Only the canonical low account may change it.
type SetRippling struct {
	TM           *trustline.Manager
	SrcAccountID string
	Counterparty string
	Asset        string
	Allow        bool
}

func (sr *SetRippling) Apply(dt db.Tx) error {
	tl, err := sr.TM.GetTrustLine(dt, sr.SrcAccountID, sr.Counterparty, sr.Asset)
	if err != nil {
		return err
	}

	if !tl.IsParty(sr.SrcAccountID) {
		return trustline.ErrNotParty
	}
	if sr.SrcAccountID != tl.AccountLow {
		return ErrNotAuthorized
	}

	tl.AllowRippling = sr.Allow

	if err := sr.TM.SaveTrustLine(dt, tl); err != nil {
		return fmt.Errorf("save trust line failed: %v", err)
	}

	return nil
}

func (sr *SetRippling) Keys() []string {
	return []string{trustline.KeyString(sr.SrcAccountID, sr.Counterparty, sr.Asset)}
}

// CloseTrust removes a settled trust line.
type CloseTrust struct {
	TM           *trustline.Manager
	SrcAccountID string
	Counterparty string
	Asset        string
}

func (ct *CloseTrust) Apply(dt db.Tx) error {
	err := ct.TM.DeleteTrustLine(dt, ct.SrcAccountID, ct.Counterparty, ct.Asset)
	if err != nil {
		return err
	}
	return nil
}

func (ct *CloseTrust) Keys() []string {
	return []string{trustline.KeyString(ct.SrcAccountID, ct.Counterparty, ct.Asset)}
}

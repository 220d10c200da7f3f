package op

import (
	"fmt"

	"github.com/creditline/go-creditline/db"
	"github.com/creditline/go-creditline/trustline"
)

// Payment is a direct peer to peer payment across a single trust
// line. A payment cannot create a trust line, the line between the
// two parties must already exist.
type Payment struct {
	TM           *trustline.Manager
	SrcAccountID string
	DstAccountID string
	Asset        string
	Amount       int64
}

func (p *Payment) Apply(dt db.Tx) error {
	if p.Amount <= 0 {
		return trustline.ErrInvalidAmount
	}
	if p.SrcAccountID == p.DstAccountID {
		return trustline.ErrSelfTrustLine
	}

	tl, err := p.TM.GetTrustLine(dt, p.SrcAccountID, p.DstAccountID, p.Asset)
	if err != nil {
		return err
	}

	if err := p.TM.ApplyPayment(tl, p.SrcAccountID, p.Amount); err != nil {
		return err
	}

	if err := p.TM.SaveTrustLine(dt, tl); err != nil {
		return fmt.Errorf("save trust line failed: %v", err)
	}

	return nil
}

func (p *Payment) Keys() []string {
	return []string{trustline.KeyString(p.SrcAccountID, p.DstAccountID, p.Asset)}
}

// PathPayment routes a payment from the source account to the
// destination account through a chain of trust lines, shifting the
// same amount across every hop. Every interior hop must allow
// rippling. The whole hop sequence is applied within one store
// transaction so either every hop commits or none does.
type PathPayment struct {
	TM           *trustline.Manager
	SrcAccountID string
	DstAccountID string
	Asset        string
	Amount       int64
	Path         []string
	MaxHops      int
}

// nodes builds the full node sequence of the payment.
func (pp *PathPayment) nodes() []string {
	nodes := make([]string, 0, len(pp.Path)+2)
	nodes = append(nodes, pp.SrcAccountID)
	nodes = append(nodes, pp.Path...)
	nodes = append(nodes, pp.DstAccountID)
	return nodes
}

func (pp *PathPayment) Apply(dt db.Tx) error {
	if pp.Amount <= 0 {
		return trustline.ErrInvalidAmount
	}
	if len(pp.Path) == 0 {
		return ErrEmptyPath
	}
	maxHops := pp.MaxHops
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}
	if len(pp.Path) > maxHops {
		return ErrPathTooLong
	}

	nodes := pp.nodes()
	for i := 0; i < len(nodes)-1; i++ {
		if nodes[i] == nodes[i+1] {
			return trustline.ErrSelfTrustLine
		}
	}

	// the hop at index i moves the amount from nodes[i] to
	// nodes[i+1] over the trust line between them
	for i := 0; i < len(nodes)-1; i++ {
		tl, err := pp.TM.GetTrustLine(dt, nodes[i], nodes[i+1], pp.Asset)
		if err != nil {
			return err
		}

		interior := i > 0 && i < len(nodes)-2
		if interior && !tl.AllowRippling {
			return ErrRipplingDisabled
		}

		if err := pp.TM.ApplyPayment(tl, nodes[i], pp.Amount); err != nil {
			return err
		}

		if err := pp.TM.SaveTrustLine(dt, tl); err != nil {
			return fmt.Errorf("save trust line failed: %v", err)
		}
	}

	return nil
}

func (pp *PathPayment) Keys() []string {
	nodes := pp.nodes()
	var keys []string
	for i := 0; i < len(nodes)-1; i++ {
		keys = append(keys, trustline.KeyString(nodes[i], nodes[i+1], pp.Asset))
	}
	return keys
}

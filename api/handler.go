package api

import (
	"errors"
	"net/http"

	"github.com/emicklei/go-restful"

	"github.com/creditline/go-creditline/crypto"
	"github.com/creditline/go-creditline/trustline"
	"github.com/creditline/go-creditline/tx/op"
)

var (
	errNilContext  = errors.New("server context is nil")
	errEmptyAddr   = errors.New("server listen address is empty")
	errNilDatabase = errors.New("database instance is nil")
	errNilTM       = errors.New("trust line manager is nil")
	errNilTxM      = errors.New("transaction executor is nil")

	errInvalidAccountID = errors.New("invalid account ID")
	errEmptyAsset       = errors.New("asset is empty")
)

// CreateTrustLineRequest is the request of creating a trust line,
// rippling is enabled unless the request disables it.
type CreateTrustLineRequest struct {
	AccountID     string `json:"account_id"`
	Counterparty  string `json:"counterparty"`
	Asset         string `json:"asset"`
	Limit         int64  `json:"limit"`
	AllowRippling *bool  `json:"allow_rippling,omitempty"`
}

type UpdateLimitRequest struct {
	AccountID    string `json:"account_id"`
	Counterparty string `json:"counterparty"`
	Asset        string `json:"asset"`
	NewLimit     int64  `json:"new_limit"`
}

type SetRipplingRequest struct {
	AccountID    string `json:"account_id"`
	Counterparty string `json:"counterparty"`
	Asset        string `json:"asset"`
	Allow        bool   `json:"allow"`
}

type CloseTrustLineRequest struct {
	AccountID    string `json:"account_id"`
	Counterparty string `json:"counterparty"`
	Asset        string `json:"asset"`
}

type PaymentRequest struct {
	AccountID string `json:"account_id"`
	Recipient string `json:"recipient"`
	Asset     string `json:"asset"`
	Amount    int64  `json:"amount"`
}

type PathPaymentRequest struct {
	AccountID string   `json:"account_id"`
	Recipient string   `json:"recipient"`
	Asset     string   `json:"asset"`
	Amount    int64    `json:"amount"`
	Path      []string `json:"path"`
}

type AvailableCreditResponse struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Asset  string `json:"asset"`
	Credit int64  `json:"credit"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// checkAccounts validates the well-formedness of the supplied
// account IDs.
func checkAccounts(accountIDs ...string) error {
	for _, id := range accountIDs {
		if !crypto.IsValidAccountKey(id) {
			return errInvalidAccountID
		}
	}
	return nil
}

// writeError maps an engine error to an HTTP response.
func writeError(resp *restful.Response, err error) {
	var code int
	switch err {
	case trustline.ErrNotFound:
		code = http.StatusNotFound
	case trustline.ErrAlreadyExists, trustline.ErrNonZeroBalance:
		code = http.StatusConflict
	case op.ErrNotAuthorized:
		code = http.StatusForbidden
	case trustline.ErrSelfTrustLine, trustline.ErrInvalidLimit,
		trustline.ErrInvalidAmount, trustline.ErrInsufficientCredit,
		trustline.ErrNotParty, op.ErrEmptyPath, op.ErrPathTooLong,
		op.ErrRipplingDisabled, errInvalidAccountID, errEmptyAsset:
		code = http.StatusBadRequest
	default:
		code = http.StatusInternalServerError
	}
	resp.WriteHeaderAndEntity(code, ErrorResponse{Error: err.Error()})
}

func (s *Server) createTrustLine(req *restful.Request, resp *restful.Response) {
	r := CreateTrustLineRequest{}
	if err := req.ReadEntity(&r); err != nil {
		writeError(resp, errors.New("malformed request body"))
		return
	}
	if err := checkAccounts(r.AccountID, r.Counterparty); err != nil {
		writeError(resp, err)
		return
	}
	if r.Asset == "" {
		writeError(resp, errEmptyAsset)
		return
	}

	allowRippling := true
	if r.AllowRippling != nil {
		allowRippling = *r.AllowRippling
	}

	err := s.txm.Execute(&op.CreateTrust{
		TM:            s.tm,
		SrcAccountID:  r.AccountID,
		Counterparty:  r.Counterparty,
		Asset:         r.Asset,
		Limit:         r.Limit,
		AllowRippling: allowRippling,
	})
	if err != nil {
		writeError(resp, err)
		return
	}

	tl, err := s.tm.GetTrustLine(s.database, r.AccountID, r.Counterparty, r.Asset)
	if err != nil {
		writeError(resp, err)
		return
	}
	resp.WriteHeaderAndEntity(http.StatusCreated, tl)
}

func (s *Server) updateLimit(req *restful.Request, resp *restful.Response) {
	r := UpdateLimitRequest{}
	if err := req.ReadEntity(&r); err != nil {
		writeError(resp, errors.New("malformed request body"))
		return
	}
	if err := checkAccounts(r.AccountID, r.Counterparty); err != nil {
		writeError(resp, err)
		return
	}

	err := s.txm.Execute(&op.UpdateLimit{
		TM:           s.tm,
		SrcAccountID: r.AccountID,
		Counterparty: r.Counterparty,
		Asset:        r.Asset,
		NewLimit:     r.NewLimit,
	})
	if err != nil {
		writeError(resp, err)
		return
	}
	resp.WriteHeader(http.StatusOK)
}

func (s *Server) setRippling(req *restful.Request, resp *restful.Response) {
	r := SetRipplingRequest{}
	if err := req.ReadEntity(&r); err != nil {
		writeError(resp, errors.New("malformed request body"))
		return
	}
	if err := checkAccounts(r.AccountID, r.Counterparty); err != nil {
		writeError(resp, err)
		return
	}

	err := s.txm.Execute(&op.SetRippling{
		TM:           s.tm,
		SrcAccountID: r.AccountID,
		Counterparty: r.Counterparty,
		Asset:        r.Asset,
		Allow:        r.Allow,
	})
	if err != nil {
		writeError(resp, err)
		return
	}
	resp.WriteHeader(http.StatusOK)
}

func (s *Server) closeTrustLine(req *restful.Request, resp *restful.Response) {
	r := CloseTrustLineRequest{}
	if err := req.ReadEntity(&r); err != nil {
		writeError(resp, errors.New("malformed request body"))
		return
	}
	if err := checkAccounts(r.AccountID, r.Counterparty); err != nil {
		writeError(resp, err)
		return
	}

	err := s.txm.Execute(&op.CloseTrust{
		TM:           s.tm,
		SrcAccountID: r.AccountID,
		Counterparty: r.Counterparty,
		Asset:        r.Asset,
	})
	if err != nil {
		writeError(resp, err)
		return
	}
	resp.WriteHeader(http.StatusOK)
}

func (s *Server) sendPayment(req *restful.Request, resp *restful.Response) {
	r := PaymentRequest{}
	if err := req.ReadEntity(&r); err != nil {
		writeError(resp, errors.New("malformed request body"))
		return
	}
	if err := checkAccounts(r.AccountID, r.Recipient); err != nil {
		writeError(resp, err)
		return
	}

	err := s.txm.Execute(&op.Payment{
		TM:           s.tm,
		SrcAccountID: r.AccountID,
		DstAccountID: r.Recipient,
		Asset:        r.Asset,
		Amount:       r.Amount,
	})
	if err != nil {
		writeError(resp, err)
		return
	}
	resp.WriteHeader(http.StatusOK)
}

func (s *Server) sendPathPayment(req *restful.Request, resp *restful.Response) {
	r := PathPaymentRequest{}
	if err := req.ReadEntity(&r); err != nil {
		writeError(resp, errors.New("malformed request body"))
		return
	}
	accounts := append([]string{r.AccountID, r.Recipient}, r.Path...)
	if err := checkAccounts(accounts...); err != nil {
		writeError(resp, err)
		return
	}

	err := s.txm.Execute(&op.PathPayment{
		TM:           s.tm,
		SrcAccountID: r.AccountID,
		DstAccountID: r.Recipient,
		Asset:        r.Asset,
		Amount:       r.Amount,
		Path:         r.Path,
		MaxHops:      s.maxHops,
	})
	if err != nil {
		writeError(resp, err)
		return
	}
	resp.WriteHeader(http.StatusOK)
}

func (s *Server) getTrustLine(req *restful.Request, resp *restful.Response) {
	account1 := req.QueryParameter("account1")
	account2 := req.QueryParameter("account2")
	asset := req.QueryParameter("asset")
	if err := checkAccounts(account1, account2); err != nil {
		writeError(resp, err)
		return
	}

	tl, err := s.tm.QueryTrustLine(s.database, account1, account2, asset)
	if err != nil {
		writeError(resp, err)
		return
	}
	if tl == nil {
		writeError(resp, trustline.ErrNotFound)
		return
	}
	resp.WriteEntity(tl)
}

func (s *Server) getAvailableCredit(req *restful.Request, resp *restful.Response) {
	from := req.QueryParameter("from")
	to := req.QueryParameter("to")
	asset := req.QueryParameter("asset")
	if err := checkAccounts(from, to); err != nil {
		writeError(resp, err)
		return
	}

	credit, err := s.tm.AvailableCredit(s.database, from, to, asset)
	if err != nil {
		writeError(resp, err)
		return
	}
	resp.WriteEntity(AvailableCreditResponse{
		From:   from,
		To:     to,
		Asset:  asset,
		Credit: credit,
	})
}

package api

import (
	"net/http"

	"github.com/emicklei/go-restful"

	"github.com/creditline/go-creditline/db"
	"github.com/creditline/go-creditline/log"
	"github.com/creditline/go-creditline/trustline"
	"github.com/creditline/go-creditline/tx"
)

// ServerContext represents contextual information Server needs.
type ServerContext struct {
	Addr     string             // listen address of the server
	Database db.Database        // database instance for the read path
	TM       *trustline.Manager // trust line manager
	TxM      *tx.Manager        // transaction executor
	MaxHops  int                // maximum intermediate accounts of a path
}

func ValidateServerContext(sc *ServerContext) error {
	if sc == nil {
		return errNilContext
	}
	if sc.Addr == "" {
		return errEmptyAddr
	}
	if sc.Database == nil {
		return errNilDatabase
	}
	if sc.TM == nil {
		return errNilTM
	}
	if sc.TxM == nil {
		return errNilTxM
	}
	return nil
}

// Server exposes the ledger operations over HTTP. Mutations go
// through the transaction executor, queries read the store directly.
type Server struct {
	addr     string
	database db.Database
	tm       *trustline.Manager
	txm      *tx.Manager
	maxHops  int

	httpServer *http.Server
}

// NewServer creates a Server with ServerContext.
func NewServer(ctx *ServerContext) *Server {
	if err := ValidateServerContext(ctx); err != nil {
		log.Fatalf("API server context is invalid: %v", err)
	}

	s := &Server{
		addr:     ctx.Addr,
		database: ctx.Database,
		tm:       ctx.TM,
		txm:      ctx.TxM,
		maxHops:  ctx.MaxHops,
	}

	container := restful.NewContainer()
	container.Add(s.webService())
	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: container,
	}

	return s
}

func (s *Server) webService() *restful.WebService {
	ws := new(restful.WebService)
	ws.Path("/v1").Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)

	ws.Route(ws.POST("/trustlines").To(s.createTrustLine))
	ws.Route(ws.PUT("/trustlines/limit").To(s.updateLimit))
	ws.Route(ws.PUT("/trustlines/rippling").To(s.setRippling))
	ws.Route(ws.DELETE("/trustlines").To(s.closeTrustLine))
	ws.Route(ws.GET("/trustlines").To(s.getTrustLine))
	ws.Route(ws.POST("/payments").To(s.sendPayment))
	ws.Route(ws.POST("/payments/path").To(s.sendPathPayment))
	ws.Route(ws.GET("/credit").To(s.getAvailableCredit))

	return ws
}

// Handler returns the underlying HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Serve starts serving incoming API requests.
func (s *Server) Serve() error {
	log.Infow("serving API requests", "addr", s.addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down the server.
func (s *Server) Close() error {
	return s.httpServer.Close()
}

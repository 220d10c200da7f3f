package node

import (
	"time"

	"github.com/creditline/go-creditline/api"
	"github.com/creditline/go-creditline/db"
	"github.com/creditline/go-creditline/log"
	"github.com/creditline/go-creditline/trustline"
	"github.com/creditline/go-creditline/tx"

	// register the database backends
	_ "github.com/creditline/go-creditline/db/boltdb"
	_ "github.com/creditline/go-creditline/db/memdb"
)

// Node is the central controller of the trust line ledger, it owns
// the database and wires the managers and the API server together.
type Node struct {
	database db.Database

	// network address of the API server
	addr string
	// NodeID and seed of this node
	nodeID string
	seed   string
	// start time of the node
	startTime int64

	config *Config

	tm     *trustline.Manager
	txm    *tx.Manager
	server *api.Server

	// channel for stopping all the subroutines
	stopChan chan struct{}
}

// NewNode creates a Node which controls all the sub tasks.
func NewNode(conf *Config) *Node {
	ctor, err := db.GetDB(conf.DBBackend)
	if err != nil {
		log.Fatalf("get database backend failed: %v", err)
	}
	database := ctor(conf.DBPath)

	tm := trustline.NewManager(database, conf.CacheSize)
	txm := tx.NewManager(&tx.ManagerContext{
		Database: database,
		TM:       tm,
	})
	server := api.NewServer(&api.ServerContext{
		Addr:     conf.Addr,
		Database: database,
		TM:       tm,
		TxM:      txm,
		MaxHops:  conf.MaxHops,
	})

	node := &Node{
		database:  database,
		addr:      conf.Addr,
		nodeID:    conf.NodeID,
		seed:      conf.Seed,
		startTime: time.Now().Unix(),
		config:    conf,
		tm:        tm,
		txm:       txm,
		server:    server,
		stopChan:  make(chan struct{}),
	}

	return node
}

// Start the node and serve incoming requests.
func (n *Node) Start() {
	log.Infow("starting the node", "nodeID", n.nodeID, "addr", n.addr)

	go func() {
		if err := n.server.Serve(); err != nil {
			log.Errorf("serve API failed: %v", err)
		}
	}()

	<-n.stopChan
}

// Stop the node by notifying the subroutines to stop.
func (n *Node) Stop() {
	close(n.stopChan)
	n.server.Close()
	n.database.Close()
}

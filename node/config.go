package node

import (
	"errors"

	"github.com/spf13/viper"

	"github.com/creditline/go-creditline/crypto"
	"github.com/creditline/go-creditline/tx/op"
)

// default number of decoded trust lines to cache
const defaultCacheSize = 10000

type Config struct {
	// network ID hash
	NetworkID [32]byte
	// listen address of the API server
	Addr string
	// node ID (public key derived from seed)
	NodeID string
	// seed of this node
	Seed string
	// database backend
	DBBackend string
	// database file path
	DBPath string
	// maximum number of intermediate accounts in a payment path
	MaxHops int
	// size of the trust line cache
	CacheSize int
}

func NewConfig(v *viper.Viper) (*Config, error) {
	if v.GetString("network_id") == "" {
		return nil, errors.New("network ID is missing")
	}
	if v.GetString("addr") == "" {
		return nil, errors.New("listen address is missing")
	}
	if v.GetString("node_id") == "" {
		return nil, errors.New("node ID is empty")
	}
	if v.GetString("seed") == "" {
		return nil, errors.New("node seed is empty")
	}
	if v.GetString("db_backend") == "" {
		return nil, errors.New("db backend is empty")
	}
	if v.GetString("db_path") == "" {
		return nil, errors.New("db path is empty")
	}

	maxHops := v.GetInt("max_hops")
	if maxHops <= 0 {
		maxHops = op.DefaultMaxHops
	}

	cacheSize := v.GetInt("cache_size")
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}

	c := Config{
		NetworkID: crypto.SHA256HashBytes([]byte(v.GetString("network_id"))),
		Addr:      v.GetString("addr"),
		NodeID:    v.GetString("node_id"),
		Seed:      v.GetString("seed"),
		DBBackend: v.GetString("db_backend"),
		DBPath:    v.GetString("db_path"),
		MaxHops:   maxHops,
		CacheSize: cacheSize,
	}

	return &c, nil
}

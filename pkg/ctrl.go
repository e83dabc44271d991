package pkg

import (
	bolt "go.etcd.io/bbolt"

	"github.com/imagekit-tools/cli/internal/api"
)

// CliCtrl wires the API client and the local bolt store together for the
// CLI commands.
type CliCtrl struct {
	Client *api.Client
	DB     *bolt.DB
}

// NewCliCtrl creates a controller and ensures the store buckets exist.
func NewCliCtrl(client *api.Client, db *bolt.DB) (*CliCtrl, error) {
	c := &CliCtrl{Client: client, DB: db}
	if err := c.initBuckets(); err != nil {
		return nil, err
	}
	return c, nil
}

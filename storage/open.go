package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/raushankrgupta/shoplungu/utils"
)

// Options selects and configures a backend
type Options struct {
	Driver       string // memory, file, sqlite, mongo
	Path         string // directory for file, data directory for sqlite
	MongoURI     string
	DatabaseName string
}

// Open returns the backend named by opts.Driver
func Open(ctx context.Context, opts Options) (Storage, error) {
	switch opts.Driver {
	case "memory":
		return NewMemory(), nil
	case "", "file":
		return NewFile(opts.Path)
	case "sqlite":
		return NewSQLite(filepath.Join(opts.Path, "storefront.db"))
	case "mongo":
		client, err := utils.ConnectMongo(ctx, opts.MongoURI)
		if err != nil {
			return nil, err
		}
		return NewMongo(client, opts.DatabaseName), nil
	}
	return nil, fmt.Errorf("unknown storage driver: %q", opts.Driver)
}

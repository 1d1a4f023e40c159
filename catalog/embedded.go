package catalog

import (
	"context"
	_ "embed"
)

//go:embed data/catalog.json
var embeddedCatalog []byte

// EmbeddedSource serves the catalog compiled into the binary
type EmbeddedSource struct{}

func (s *EmbeddedSource) CanLoad(uri string) bool {
	return uri == "" || uri == "embedded"
}

func (s *EmbeddedSource) Load(_ context.Context, _ string) (*Data, error) {
	return decode("catalog.json", embeddedCatalog)
}

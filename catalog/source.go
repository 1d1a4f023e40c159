package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/raushankrgupta/shoplungu/models"
	"gopkg.in/yaml.v3"
)

// Data is the on-disk shape of a catalog
type Data struct {
	Categories []models.Category `json:"categories" yaml:"categories"`
	Products   []models.Product  `json:"products" yaml:"products"`
}

// Source loads catalog data from one kind of location
type Source interface {
	// CanLoad checks if the source can handle the given location
	CanLoad(uri string) bool
	// Load reads the catalog data at the given location
	Load(ctx context.Context, uri string) (*Data, error)
}

// GetSource returns the source that handles uri
func GetSource(uri string) (Source, error) {
	// Register sources here
	sources := []Source{
		&EmbeddedSource{},
		&S3Source{},
		&FileSource{},
	}

	for _, s := range sources {
		if s.CanLoad(uri) {
			return s, nil
		}
	}

	return nil, fmt.Errorf("no catalog source found for %q", uri)
}

// Load builds a catalog from uri. An empty uri loads the embedded catalog.
func Load(ctx context.Context, uri string) (*Catalog, error) {
	source, err := GetSource(uri)
	if err != nil {
		return nil, err
	}
	data, err := source.Load(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %q: %w", uri, err)
	}
	return New(data.Products, data.Categories)
}

// decode picks JSON or YAML by the file extension of name
func decode(name string, raw []byte) (*Data, error) {
	var data Data
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("invalid catalog yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("invalid catalog json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", path.Ext(name))
	}
	return &data, nil
}

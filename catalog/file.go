package catalog

import (
	"context"
	"os"
	"strings"
)

// FileSource reads a local JSON or YAML file, given as a path or file:// URL
type FileSource struct{}

func (s *FileSource) CanLoad(uri string) bool {
	return uri != "" && !strings.Contains(strings.TrimPrefix(uri, "file://"), "://")
}

func (s *FileSource) Load(_ context.Context, uri string) (*Data, error) {
	name := strings.TrimPrefix(uri, "file://")
	raw, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return decode(name, raw)
}

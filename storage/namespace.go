package storage

import "context"

type namespaced struct {
	Storage
	prefix string
}

// Namespace prefixes every key with prefix + "/". Closing the namespace does not
// close the underlying storage.
func Namespace(s Storage, prefix string) Storage {
	return &namespaced{Storage: s, prefix: prefix + "/"}
}

func (n *namespaced) Get(ctx context.Context, key string) ([]byte, error) {
	return n.Storage.Get(ctx, n.prefix+key)
}

func (n *namespaced) Put(ctx context.Context, key string, value []byte) error {
	return n.Storage.Put(ctx, n.prefix+key, value)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	return n.Storage.Delete(ctx, n.prefix+key)
}

func (n *namespaced) Close() error { return nil }

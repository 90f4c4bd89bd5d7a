package cli

import (
	"log/slog"

	"github.com/roach88/xmeta/internal/xattr"
)

// loggedStore records every attribute operation at debug level before
// passing it to the underlying store.
type loggedStore struct {
	store  *xattr.Store
	logger *slog.Logger
}

func (s *loggedStore) Resolve(ref string) (string, error) {
	return s.store.Resolve(ref)
}

func (s *loggedStore) ListKeys(ref string) ([]string, error) {
	keys, err := s.store.ListKeys(ref)
	s.logger.Debug("list attributes", "path", ref, "count", len(keys), "error", err)
	return keys, err
}

func (s *loggedStore) GetRaw(ref, key string) ([]byte, error) {
	data, err := s.store.GetRaw(ref, key)
	s.logger.Debug("get attribute", "path", ref, "key", key, "size", len(data), "error", err)
	return data, err
}

func (s *loggedStore) SetRaw(ref, key string, data []byte) error {
	err := s.store.SetRaw(ref, key, data)
	s.logger.Debug("set attribute", "path", ref, "key", key, "size", len(data), "error", err)
	return err
}

func (s *loggedStore) RemoveRaw(ref, key string) error {
	err := s.store.RemoveRaw(ref, key)
	s.logger.Debug("remove attribute", "path", ref, "key", key, "error", err)
	return err
}

package settings

import (
	"context"

	"github.com/lox/klondike/internal/fileutil"
)

// FileStore keeps settings in a YAML file
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by path. The file and its directory are
// created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the settings file location
func (fs *FileStore) Path() string {
	return fs.path
}

// Load reads the file, returning defaults if it does not exist
func (fs *FileStore) Load(ctx context.Context) (Settings, error) {
	data, found, err := fileutil.ReadFileIfExists(fs.path)
	if err != nil || !found {
		return Defaults(), err
	}
	return decode(data)
}

// Save atomically replaces the file
func (fs *FileStore) Save(ctx context.Context, s Settings) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(fs.path, data, 0o600)
}

// Close is a no-op
func (fs *FileStore) Close() error { return nil }

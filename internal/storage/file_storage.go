package storage

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikmy/fleetsync/pkg/errors"
	"github.com/nikmy/fleetsync/pkg/logger"
)

func newFileStore(dir string, log logger.Logger) (*fileStore, error) {
	if dir == "" {
		dir = "."
	}

	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, errors.WrapFail(err, "create storage dir")
	}

	return &fileStore{
		dir:    dir,
		logger: log.With("file_storage"),
	}, nil
}

// fileStore keeps every key in its own JSON file inside dir.
type fileStore struct {
	dir    string
	logger logger.Logger
}

func (s *fileStore) Get(_ context.Context, key string) ([]byte, error) {
	fileName := s.fileName(key)

	s.logger.Debugf("reading data from %s", fileName)
	bytes, err := os.ReadFile(fileName)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.WrapFailf(err, "read %s", fileName)
	}

	return bytes, nil
}

func (s *fileStore) Put(_ context.Context, key string, value []byte) error {
	fileName := s.fileName(key)
	s.logger.Debugf("saving data to %s", fileName)

	tmp, err := os.CreateTemp(s.dir, "."+filepath.Base(fileName)+".*")
	if err != nil {
		return errors.WrapFail(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	_, err = tmp.Write(value)
	if err == nil {
		err = tmp.Sync()
	}
	closeErr := tmp.Close()
	if err != nil {
		return errors.WrapFailf(err, "write %s", tmp.Name())
	}
	if closeErr != nil {
		return errors.WrapFailf(closeErr, "close %s", tmp.Name())
	}

	err = os.Rename(tmp.Name(), fileName)
	return errors.WrapFailf(err, "replace %s", fileName)
}

func (s *fileStore) Close(context.Context) error {
	return nil
}

func (s *fileStore) fileName(key string) string {
	safe := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, key)
	return filepath.Join(s.dir, safe+".json")
}

package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nikogura/candidate-scorer/pkg/telemetry"
	"github.com/pkg/errors"
)

const recordSuffix = ".record.json"

// FileStore keeps one JSON file per token in a directory.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates the directory if needed and returns a store on it.
func NewFileStore(dir string) (s *FileStore, err error) {
	if dir == "" {
		err = errors.New("records directory is required")
		return s, err
	}

	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create records directory: %s", dir)
		return s, err
	}

	s = &FileStore{dir: dir}
	return s, err
}

func (s *FileStore) path(token string) (path string) {
	path = filepath.Join(s.dir, token+recordSuffix)
	return path
}

// Get reads the record for token.
func (s *FileStore) Get(_ context.Context, token string) (record Record, err error) {
	err = ValidateToken(token)
	if err != nil {
		return record, err
	}

	record, err = loadRecord(s.path(token))
	if os.IsNotExist(errors.Cause(err)) {
		err = ErrNotFound
		return record, err
	}

	return record, err
}

// Put writes the record through a temporary file and a rename, so readers
// never observe a partial document.
func (s *FileStore) Put(_ context.Context, record Record) (err error) {
	err = ValidateToken(record.Token)
	if err != nil {
		return err
	}

	var data []byte
	data, err = json.MarshalIndent(record, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal record")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(record.Token)
	tmp := path + ".tmp"

	err = os.WriteFile(tmp, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write record file: %s", tmp)
		return err
	}

	err = os.Rename(tmp, path)
	if err != nil {
		err = errors.Wrapf(err, "failed to replace record file: %s", path)
		return err
	}

	return err
}

// List walks the directory and returns every readable record ordered by
// token. Unreadable files are logged and skipped.
func (s *FileStore) List(ctx context.Context) (records []Record, err error) {
	records = []Record{}

	walkErr := filepath.Walk(s.dir, func(path string, info os.FileInfo, walkErr error) (walkFuncErr error) {
		walkFuncErr = s.collect(ctx, path, info, walkErr, &records)
		return walkFuncErr
	})
	if walkErr != nil {
		err = errors.Wrap(walkErr, "failed to walk records directory")
		return records, err
	}

	sortRecords(records)
	return records, err
}

func (s *FileStore) collect(ctx context.Context, path string, info os.FileInfo, walkErr error, records *[]Record) (err error) {
	if walkErr != nil {
		err = walkErr
		return err
	}

	err = ctx.Err()
	if err != nil {
		return err
	}

	if info.IsDir() {
		if path != s.dir {
			err = filepath.SkipDir
		}
		return err
	}

	if !strings.HasSuffix(info.Name(), recordSuffix) {
		return err
	}

	record, loadErr := loadRecord(path)
	if loadErr != nil {
		telemetry.Warn("store.skip_record", map[string]any{"path": path, "error": loadErr})
		return err
	}

	*records = append(*records, record)
	return err
}

// Close is a no-op.
func (s *FileStore) Close() (err error) {
	return err
}

func loadRecord(path string) (record Record, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read record file: %s", path)
		return record, err
	}

	err = json.Unmarshal(data, &record)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse record file: %s", path)
		return record, err
	}

	return record, err
}

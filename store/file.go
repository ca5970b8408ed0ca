package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
)

const fileLogPrefix = "filedb"

// ErrCorruptedCollection is returned when a collection file exists but
// does not hold valid JSON. A missing file is not an error: collections
// start from their zero-value shape.
var ErrCorruptedCollection = fmt.Errorf("corrupted collection document")

// FileStore is the set of stores served by the flat-file backend.
type FileStore interface {
	Resource
	Tag
	AppConfig
	Analytics
}

// fileDB persists each collection as one JSON document under dir.
// The mutex serializes read-merge-write cycles within this process;
// across processes the collection is last-write-wins.
type fileDB struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore returns a FileStore rooted at dir. The directory is
// created if it does not exist.
func NewFileStore(dir string) (FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &fileDB{dir: dir}, nil
}

func (f *fileDB) path(collection string) string {
	return filepath.Join(f.dir, collection+".json")
}

// read decodes the collection document into out. A missing file leaves
// out untouched so the caller keeps its default shape.
func (f *fileDB) read(collection string, out interface{}) error {
	data, err := os.ReadFile(f.path(collection))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		log.WithFields(log.Fields{
			"prefix":     fileLogPrefix,
			"collection": collection,
			"error":      err,
		}).Error("read collection fail")
		return err
	}

	if err := json.Unmarshal(data, out); err != nil {
		log.WithFields(log.Fields{
			"prefix":     fileLogPrefix,
			"collection": collection,
			"error":      err,
		}).Error("decode collection fail")
		return ErrCorruptedCollection
	}
	return nil
}

// write replaces the whole collection document. The write is not
// atomic: a crash mid-write can corrupt the file.
func (f *fileDB) write(collection string, doc interface{}) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(f.path(collection), data, 0644); err != nil {
		log.WithFields(log.Fields{
			"prefix":     fileLogPrefix,
			"collection": collection,
			"error":      err,
		}).Error("write collection fail")
		return err
	}
	return nil
}

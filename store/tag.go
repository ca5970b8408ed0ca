package store

import (
	"github.com/rpetter01/bioinformatics-hub/schema"
)

// Tag only has a meaningful read path. The admin write routes exist on
// the HTTP surface but are accepted no-ops for now.
type Tag interface {
	ListTags() ([]string, error)
}

func (f *fileDB) ListTags() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc := schema.TagDocument{Tags: []string{}}
	if err := f.read(schema.TagCollection, &doc); err != nil {
		return nil, err
	}
	return doc.Tags, nil
}

package store

import (
	"encoding/json"

	"github.com/rpetter01/bioinformatics-hub/schema"
)

type AppConfig interface {
	GetStoreButton() (*schema.StoreButton, error)
	SetStoreButton(button schema.StoreButton) (*schema.StoreButton, error)
}

// defaultStoreButton is what a fresh deployment serves before an admin
// configures the button.
var defaultStoreButton = schema.StoreButton{
	Text:    "Visit our store",
	URL:     "",
	Enabled: false,
}

// The config collection is a generic key-to-value document. Only the
// storeButton key is touched here; unknown keys survive a write because
// the whole document is read and written back as raw JSON.

func (f *fileDB) GetStoreButton() (*schema.StoreButton, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.readConfig()
	if err != nil {
		return nil, err
	}

	button := defaultStoreButton
	if raw, ok := doc[schema.StoreButtonKey]; ok {
		if err := json.Unmarshal(raw, &button); err != nil {
			return nil, ErrCorruptedCollection
		}
	}
	return &button, nil
}

// SetStoreButton replaces the whole storeButton object.
func (f *fileDB) SetStoreButton(button schema.StoreButton) (*schema.StoreButton, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.readConfig()
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(button)
	if err != nil {
		return nil, err
	}
	doc[schema.StoreButtonKey] = raw

	if err := f.write(schema.ConfigCollection, doc); err != nil {
		return nil, err
	}
	return &button, nil
}

func (f *fileDB) readConfig() (map[string]json.RawMessage, error) {
	doc := map[string]json.RawMessage{}
	if err := f.read(schema.ConfigCollection, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

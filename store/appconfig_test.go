package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/rpetter01/bioinformatics-hub/schema"
)

type AppConfigTestSuite struct {
	suite.Suite
	dir   string
	store FileStore
}

func (s *AppConfigTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	store, err := NewFileStore(s.dir)
	s.Require().NoError(err)
	s.store = store
}

func (s *AppConfigTestSuite) TestGetStoreButtonDefault() {
	button, err := s.store.GetStoreButton()
	s.NoError(err)
	s.Equal(defaultStoreButton, *button)
}

func (s *AppConfigTestSuite) TestSetStoreButtonRoundTrip() {
	want := schema.StoreButton{
		Text:    "Buy lab merch",
		URL:     "https://shop.example.com",
		Enabled: true,
	}

	button, err := s.store.SetStoreButton(want)
	s.NoError(err)
	s.Equal(want, *button)

	stored, err := s.store.GetStoreButton()
	s.NoError(err)
	s.Equal(want, *stored)
}

// SetStoreButton replaces one key of the config document; anything else
// an operator put in config.json has to survive the write.
func (s *AppConfigTestSuite) TestSetStoreButtonPreservesUnknownKeys() {
	path := filepath.Join(s.dir, schema.ConfigCollection+".json")
	seed := []byte(`{"maintenanceBanner": {"visible": true}, "storeButton": {"text": "old", "url": "", "enabled": false}}`)
	s.Require().NoError(os.WriteFile(path, seed, 0644))

	_, err := s.store.SetStoreButton(schema.StoreButton{Text: "new", Enabled: true})
	s.NoError(err)

	data, err := os.ReadFile(path)
	s.Require().NoError(err)

	doc := map[string]json.RawMessage{}
	s.Require().NoError(json.Unmarshal(data, &doc))
	s.Contains(doc, "maintenanceBanner")

	var button schema.StoreButton
	s.Require().NoError(json.Unmarshal(doc[schema.StoreButtonKey], &button))
	s.Equal("new", button.Text)
	s.True(button.Enabled)
}

func (s *AppConfigTestSuite) TestCorruptedConfig() {
	path := filepath.Join(s.dir, schema.ConfigCollection+".json")
	s.Require().NoError(os.WriteFile(path, []byte("]["), 0644))

	_, err := s.store.GetStoreButton()
	s.ErrorIs(err, ErrCorruptedCollection)
}

func (s *AppConfigTestSuite) TestListTags() {
	tags, err := s.store.ListTags()
	s.NoError(err)
	s.Equal([]string{}, tags)

	path := filepath.Join(s.dir, schema.TagCollection+".json")
	seed := []byte(`{"tags": ["genomics", "proteomics"]}`)
	s.Require().NoError(os.WriteFile(path, seed, 0644))

	tags, err = s.store.ListTags()
	s.NoError(err)
	s.Equal([]string{"genomics", "proteomics"}, tags)
}

func TestAppConfigTestSuite(t *testing.T) {
	suite.Run(t, new(AppConfigTestSuite))
}

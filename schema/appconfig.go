package schema

const (
	ConfigCollection = "config"

	// StoreButtonKey is the only config key current callers read or write.
	// The collection itself is a generic key-to-value mapping.
	StoreButtonKey = "storeButton"
)

// StoreButton is the storefront call-to-action shown on the public site.
type StoreButton struct {
	Text    string `json:"text"`
	URL     string `json:"url"`
	Enabled bool   `json:"enabled"`
}

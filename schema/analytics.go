package schema

const (
	AnalyticsCollection = "analytics"

	// PageViewRetention is how many daily page view buckets are kept.
	PageViewRetention = 30

	// PopularSearchLimit caps the popular searches list to the top terms.
	PopularSearchLimit = 20
)

type PageView struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type ResourceClick struct {
	Resource   string `json:"resource"`
	ResourceID string `json:"resourceId"`
	Clicks     int    `json:"clicks"`
}

type SearchTerm struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// Analytics is the singleton usage aggregate. Every mutation is a
// read-merge-write of the whole document.
type Analytics struct {
	PageViews         []PageView      `json:"pageViews"`
	ResourceClicks    []ResourceClick `json:"resourceClicks"`
	PopularSearches   []SearchTerm    `json:"popularSearches"`
	StoreButtonClicks int             `json:"storeButtonClicks"`
}

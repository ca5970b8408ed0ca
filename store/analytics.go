package store

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rpetter01/bioinformatics-hub/schema"
)

var ErrMissingClickFields = fmt.Errorf("missing required fields (resourceId, resourceName)")
var ErrMissingSearchTerm = fmt.Errorf("missing required field (term)")

// Analytics aggregates usage counters. Every mutation reads the whole
// document, merges one event in and writes the whole document back.
type Analytics interface {
	GetAnalytics() (*schema.Analytics, error)
	RecordPageView() error
	RecordResourceClick(resourceID, resourceName string) error
	RecordSearch(term string) error
	RecordStoreButtonClick() error
}

func (f *fileDB) GetAnalytics() (*schema.Analytics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.readAnalytics()
}

func (f *fileDB) RecordPageView() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	analytics, err := f.readAnalytics()
	if err != nil {
		return err
	}

	analytics.PageViews = mergePageView(analytics.PageViews, time.Now().Format(dateFormat))
	return f.write(schema.AnalyticsCollection, analytics)
}

func (f *fileDB) RecordResourceClick(resourceID, resourceName string) error {
	if resourceID == "" || resourceName == "" {
		return ErrMissingClickFields
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	analytics, err := f.readAnalytics()
	if err != nil {
		return err
	}

	analytics.ResourceClicks = mergeResourceClick(analytics.ResourceClicks, resourceID, resourceName)
	return f.write(schema.AnalyticsCollection, analytics)
}

func (f *fileDB) RecordSearch(term string) error {
	if term == "" {
		return ErrMissingSearchTerm
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	analytics, err := f.readAnalytics()
	if err != nil {
		return err
	}

	analytics.PopularSearches = mergeSearchTerm(analytics.PopularSearches, term)
	return f.write(schema.AnalyticsCollection, analytics)
}

func (f *fileDB) RecordStoreButtonClick() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	analytics, err := f.readAnalytics()
	if err != nil {
		return err
	}

	analytics.StoreButtonClicks++
	return f.write(schema.AnalyticsCollection, analytics)
}

func (f *fileDB) readAnalytics() (*schema.Analytics, error) {
	analytics := schema.Analytics{
		PageViews:       []schema.PageView{},
		ResourceClicks:  []schema.ResourceClick{},
		PopularSearches: []schema.SearchTerm{},
	}
	if err := f.read(schema.AnalyticsCollection, &analytics); err != nil {
		return nil, err
	}
	return &analytics, nil
}

// mergePageView bumps the bucket for date or opens a new one, then
// keeps the most recent buckets sorted newest first.
func mergePageView(views []schema.PageView, date string) []schema.PageView {
	found := false
	for i := range views {
		if views[i].Date == date {
			views[i].Count++
			found = true
			break
		}
	}
	if !found {
		views = append(views, schema.PageView{Date: date, Count: 1})
	}

	// dates are yyyy-mm-dd so the lexical order is the time order
	sort.Slice(views, func(i, j int) bool {
		return views[i].Date > views[j].Date
	})
	if len(views) > schema.PageViewRetention {
		views = views[:schema.PageViewRetention]
	}
	return views
}

// mergeResourceClick matches by resource name, not id.
func mergeResourceClick(clicks []schema.ResourceClick, resourceID, resourceName string) []schema.ResourceClick {
	found := false
	for i := range clicks {
		if clicks[i].Resource == resourceName {
			clicks[i].Clicks++
			found = true
			break
		}
	}
	if !found {
		clicks = append(clicks, schema.ResourceClick{
			Resource:   resourceName,
			ResourceID: resourceID,
			Clicks:     1,
		})
	}

	sort.SliceStable(clicks, func(i, j int) bool {
		return clicks[i].Clicks > clicks[j].Clicks
	})
	return clicks
}

// mergeSearchTerm matches case-insensitively and keeps the casing of
// the first occurrence seen.
func mergeSearchTerm(terms []schema.SearchTerm, term string) []schema.SearchTerm {
	found := false
	for i := range terms {
		if strings.EqualFold(terms[i].Term, term) {
			terms[i].Count++
			found = true
			break
		}
	}
	if !found {
		terms = append(terms, schema.SearchTerm{Term: term, Count: 1})
	}

	sort.SliceStable(terms, func(i, j int) bool {
		return terms[i].Count > terms[j].Count
	})
	if len(terms) > schema.PopularSearchLimit {
		terms = terms[:schema.PopularSearchLimit]
	}
	return terms
}

package store

import (
	"context"
	"regexp"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rpetter01/bioinformatics-hub/schema"
)

type Job interface {
	ListJobs() ([]schema.Job, error)
	SearchJobs(query string) ([]schema.Job, error)
	BulkImportJobs(jobs []schema.Job) (*JobImportResult, error)
	PurgeJobsOlderThan(days int) (int64, error)
}

// JobImportResult reports the outcome of one bulk import batch.
type JobImportResult struct {
	Added             int `json:"added"`
	SkippedDuplicates int `json:"skippedDuplicates"`
}

func (m *mongoDB) ListJobs() ([]schema.Job, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.JobCollection)

	cur, err := c.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": mongoLogPrefix,
			"error":  err,
		}).Error("list jobs fail")
		return nil, err
	}

	jobs := []schema.Job{}
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// SearchJobs matches the query as a case-insensitive substring of the
// title, the company or any tag, newest first.
func (m *mongoDB) SearchJobs(query string) ([]schema.Job, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.JobCollection)

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{
		"$or": bson.A{
			bson.M{"title": pattern},
			bson.M{"company": pattern},
			bson.M{"tags": pattern},
		},
	}

	cur, err := c.Find(ctx, filter, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": mongoLogPrefix,
			"query":  query,
			"error":  err,
		}).Error("search jobs fail")
		return nil, err
	}

	jobs := []schema.Job{}
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// BulkImportJobs inserts the jobs whose url is not already stored.
// Duplicates, against storage or within the batch, are dropped rather
// than merged. isRemote is derived from the location text here so the
// scraper does not have to provide it.
func (m *mongoDB) BulkImportJobs(jobs []schema.Job) (*JobImportResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.JobCollection)

	urls := make([]string, 0, len(jobs))
	for _, j := range jobs {
		urls = append(urls, j.URL)
	}

	cur, err := c.Find(ctx, bson.M{"url": bson.M{"$in": urls}})
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": mongoLogPrefix,
			"error":  err,
		}).Error("query existing job urls fail")
		return nil, err
	}

	existing := map[string]struct{}{}
	for cur.Next(ctx) {
		var j schema.Job
		if err := cur.Decode(&j); err != nil {
			continue
		}
		existing[j.URL] = struct{}{}
	}

	now := time.Now()
	newJobs := make([]interface{}, 0, len(jobs))
	result := JobImportResult{}
	for _, j := range jobs {
		if _, ok := existing[j.URL]; ok {
			result.SkippedDuplicates++
			continue
		}
		existing[j.URL] = struct{}{}

		if j.Location == "" {
			j.Location = "Remote"
		}
		j.ID = primitive.NilObjectID
		j.IsRemote = strings.Contains(strings.ToLower(j.Location), "remote")
		j.CreatedAt = now
		newJobs = append(newJobs, j)
	}

	if len(newJobs) > 0 {
		if _, err := c.InsertMany(ctx, newJobs); err != nil {
			log.WithFields(log.Fields{
				"prefix": mongoLogPrefix,
				"count":  len(newJobs),
				"error":  err,
			}).Error("insert jobs fail")
			return nil, err
		}
	}
	result.Added = len(newJobs)

	log.WithFields(log.Fields{
		"prefix":  mongoLogPrefix,
		"added":   result.Added,
		"skipped": result.SkippedDuplicates,
	}).Info("job import done")
	return &result, nil
}

// PurgeJobsOlderThan deletes jobs created strictly before now minus the
// given number of days. A job exactly at the cutoff is retained.
func (m *mongoDB) PurgeJobsOlderThan(days int) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.JobCollection)

	cutoff := time.Now().AddDate(0, 0, -days)
	result, err := c.DeleteMany(ctx, bson.M{"created_at": bson.M{"$lt": cutoff}})
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": mongoLogPrefix,
			"error":  err,
		}).Error("purge jobs fail")
		return 0, err
	}
	return result.DeletedCount, nil
}

package schema

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	JobCollection = "jobs"
)

// Job is a scraped job posting. Records are owned by the import pipeline:
// the API only lists and searches them, the importer inserts and purges.
type Job struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Company     string             `json:"company" bson:"company"`
	Location    string             `json:"location" bson:"location"`
	Tags        []string           `json:"tags" bson:"tags"`
	URL         string             `json:"url" bson:"url"`
	Source      string             `json:"source" bson:"source"`
	DateScraped string             `json:"date_scraped" bson:"date_scraped"`
	PostedDate  string             `json:"posted_date" bson:"posted_date"`
	IsRemote    bool               `json:"isRemote" bson:"is_remote"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
}

// JobFeed is the document produced by the external scraper and consumed
// by the job sync process.
type JobFeed struct {
	JobCount int   `json:"job_count"`
	Jobs     []Job `json:"jobs"`
}

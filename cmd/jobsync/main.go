// jobsync imports the scraper's job feed into mongodb and purges
// postings older than the retention window. It runs once by default or
// on a cron schedule with -schedule.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rpetter01/bioinformatics-hub/schema"
	"github.com/rpetter01/bioinformatics-hub/store"
)

const retentionDays = 30

func syncJobs(jobs store.Job, feedPath string) error {
	data, err := os.ReadFile(feedPath)
	if err != nil {
		return err
	}

	var feed schema.JobFeed
	if err := json.Unmarshal(data, &feed); err != nil {
		return err
	}
	log.WithField("count", feed.JobCount).Info("job feed loaded")

	result, err := jobs.BulkImportJobs(feed.Jobs)
	if err != nil {
		return err
	}

	deleted, err := jobs.PurgeJobsOlderThan(retentionDays)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"added":   result.Added,
		"skipped": result.SkippedDuplicates,
		"purged":  deleted,
	}).Info("job sync done")
	return nil
}

func main() {
	var feedPath, schedule string
	flag.StringVar(&feedPath, "feed", "./data/bioinformatics_jobs.json", "scraper feed file")
	flag.StringVar(&schedule, "schedule", "", "cron schedule; empty runs the sync once")
	flag.Parse()

	_ = godotenv.Load()
	viper.SetDefault("mongo.database", "bioinformatics-hub")
	viper.AutomaticEnv()
	viper.SetEnvPrefix("hub")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	connURI := viper.GetString("mongo.conn")
	if connURI == "" {
		log.Fatal("mongo.conn is not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connURI))
	if err != nil {
		log.WithError(err).Fatal("connect to mongodb fail")
	}
	defer client.Disconnect(context.Background())

	database := viper.GetString("mongo.database")
	if err := schema.NewMongoDBIndexer(connURI, database).IndexAll(); err != nil {
		log.WithError(err).Fatal("ensure mongodb indexes fail")
	}

	jobs := store.NewMongoStore(client, database)

	if schedule == "" {
		if err := syncJobs(jobs, feedPath); err != nil {
			log.WithError(err).Fatal("job sync fail")
		}
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		if err := syncJobs(jobs, feedPath); err != nil {
			log.WithError(err).Error("job sync fail")
		}
	}); err != nil {
		log.WithError(err).Fatal("invalid cron schedule")
	}

	log.WithField("schedule", schedule).Info("job sync scheduled")
	c.Run()
}

package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/rpetter01/bioinformatics-hub/api"
	"github.com/rpetter01/bioinformatics-hub/schema"
	"github.com/rpetter01/bioinformatics-hub/store"
)

func initConfig(file string) {
	viper.SetDefault("server.port", 3001)
	viper.SetDefault("server.cors_origin", "http://localhost:3000")
	viper.SetDefault("mongo.database", "bioinformatics-hub")
	viper.SetDefault("resource.backend", "file")
	viper.SetDefault("data.dir", "./data")
	viper.SetDefault("log.level", "info")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("hub")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if file != "" {
		viper.SetConfigFile(file)
		if err := viper.ReadInConfig(); err != nil {
			log.WithError(err).Fatal("fail to read config file")
		}
	}
}

func main() {
	var configFile string
	flag.StringVar(&configFile, "c", "", "config file")
	flag.Parse()

	// .env is optional, the environment may already be populated
	_ = godotenv.Load()
	initConfig(configFile)

	if level, err := log.ParseLevel(viper.GetString("log.level")); err == nil {
		log.SetLevel(level)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	connURI := viper.GetString("mongo.conn")
	if connURI == "" {
		log.Fatal("mongo.conn is not configured")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connURI))
	if err != nil {
		log.WithError(err).Fatal("connect to mongodb fail")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.WithError(err).Fatal("ping mongodb fail")
	}

	database := viper.GetString("mongo.database")
	if err := schema.NewMongoDBIndexer(connURI, database).IndexAll(); err != nil {
		log.WithError(err).Fatal("ensure mongodb indexes fail")
	}

	mongoStore := store.NewMongoStore(client, database)
	fileStore, err := store.NewFileStore(viper.GetString("data.dir"))
	if err != nil {
		log.WithError(err).Fatal("open file store fail")
	}

	var resources store.Resource
	switch backend := viper.GetString("resource.backend"); backend {
	case "mongo":
		resources = mongoStore
	case "file":
		resources = fileStore
	default:
		log.WithField("backend", backend).Fatal("unknown resource backend")
	}

	// the verifier keeps refreshing the key set in the background, so it
	// outlives the start-up context
	verifier, err := api.NewAuth0TokenVerifier(context.Background(),
		viper.GetString("auth0.domain"),
		viper.GetString("auth0.audience"),
	)
	if err != nil {
		log.WithError(err).Fatal("initialize token verifier fail")
	}

	server := api.NewServer(
		verifier,
		resources,
		mongoStore,
		fileStore,
		fileStore,
		fileStore,
		viper.GetString("server.cors_origin"),
	)

	addr := fmt.Sprintf(":%d", viper.GetInt("server.port"))
	log.WithField("addr", addr).Info("server start")
	if err := server.Run(addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

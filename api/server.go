package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rpetter01/bioinformatics-hub/store"
)

var log = logrus.WithField("prefix", "api")

// Server routes HTTP requests to the domain stores, applying the token
// and permission checks to mutating routes.
type Server struct {
	verifier   *TokenVerifier
	resources  store.Resource
	jobs       store.Job
	tags       store.Tag
	config     store.AppConfig
	analytics  store.Analytics
	corsOrigin string

	router *gin.Engine
}

func NewServer(
	verifier *TokenVerifier,
	resources store.Resource,
	jobs store.Job,
	tags store.Tag,
	config store.AppConfig,
	analytics store.Analytics,
	corsOrigin string,
) *Server {
	s := &Server{
		verifier:   verifier,
		resources:  resources,
		jobs:       jobs,
		tags:       tags,
		config:     config,
		analytics:  analytics,
		corsOrigin: corsOrigin,
	}
	s.router = s.setupRouter()
	return s
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.logRequest)
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{s.corsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	apiRoute := r.Group("/api")
	apiRoute.GET("/health", s.healthCheck)

	auth := apiRoute.Group("/auth")
	auth.GET("/check", s.authCheck)
	auth.GET("/profile", s.checkToken, s.authProfile)

	resources := apiRoute.Group("/resources")
	resources.GET("", s.listResources)
	resources.GET("/:id", s.getResource)
	resources.POST("", s.checkToken, s.checkAdmin, s.createResource)
	resources.PUT("/:id", s.checkToken, s.checkAdmin, s.updateResource)
	resources.DELETE("/:id", s.checkToken, s.checkAdmin, s.deleteResource)

	jobs := apiRoute.Group("/jobs")
	jobs.GET("", s.listJobs)
	jobs.GET("/search", s.searchJobs)

	tags := apiRoute.Group("/tags")
	tags.GET("", s.listTags)
	tags.POST("", s.checkToken, s.checkAdmin, s.createTag)
	tags.DELETE("/:id", s.checkToken, s.checkAdmin, s.deleteTag)

	config := apiRoute.Group("/config")
	config.GET("/store-button", s.getStoreButton)
	config.PUT("/store-button", s.checkToken, s.checkAdmin, s.updateStoreButton)

	analytics := apiRoute.Group("/analytics")
	analytics.GET("", s.checkToken, s.checkAdmin, s.getAnalytics)
	analytics.POST("/page-view", s.recordPageView)
	analytics.POST("/resource-click", s.recordResourceClick)
	analytics.POST("/search", s.recordSearch)
	analytics.POST("/store-button-click", s.recordStoreButtonClick)

	return r
}

// Run starts serving on addr and blocks.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// logRequest writes one access log line per request.
func (s *Server) logRequest(c *gin.Context) {
	start := time.Now()
	c.Next()

	entry := log.WithFields(logrus.Fields{
		"status":  c.Writer.Status(),
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"elapsed": time.Since(start).String(),
	})
	if len(c.Errors) > 0 {
		entry.Error(c.Errors.String())
	} else {
		entry.Debug("request served")
	}
}

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rpetter01/bioinformatics-hub/schema"
)

var (
	ErrResourceNotFound      = fmt.Errorf("resource not found")
	ErrMissingResourceFields = fmt.Errorf("missing required fields (name, description, category, url)")
	ErrInvalidCategory       = fmt.Errorf("category must be one of tool, database, course, website")
)

// dateFormat is the day-granularity format lastUpdated is kept in.
const dateFormat = "2006-01-02"

type Resource interface {
	ListResources() ([]schema.Resource, error)
	GetResource(id string) (*schema.Resource, error)
	CreateResource(params CreateResourceParams) (*schema.Resource, error)
	UpdateResource(id string, params UpdateResourceParams) (*schema.Resource, error)
	DeleteResource(id string) error
}

type CreateResourceParams struct {
	ID          string
	Name        string
	Description string
	Category    string
	Tags        []string
	URL         string
	Featured    bool
}

// UpdateResourceParams carries a partial update. A nil field is absent
// and keeps the stored value; only Featured may be set to its zero
// value explicitly.
type UpdateResourceParams struct {
	Name        *string
	Description *string
	Category    *string
	Tags        []string
	URL         *string
	Featured    *bool
}

// newResource validates create params and builds the record with its
// defaults applied.
func newResource(params CreateResourceParams) (*schema.Resource, error) {
	if params.Name == "" || params.Description == "" || params.Category == "" || params.URL == "" {
		return nil, ErrMissingResourceFields
	}
	if !schema.IsValidCategory(params.Category) {
		return nil, ErrInvalidCategory
	}

	id := params.ID
	if id == "" {
		id = uuid.NewString()
	}
	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	return &schema.Resource{
		ID:          id,
		Name:        params.Name,
		Description: params.Description,
		Category:    params.Category,
		Tags:        tags,
		URL:         params.URL,
		Popularity:  0,
		LastUpdated: time.Now().Format(dateFormat),
		Featured:    params.Featured,
	}, nil
}

// validateUpdate rejects updates that would clear a required field or
// set an unknown category. Absent fields are always fine.
func validateUpdate(params UpdateResourceParams) error {
	if params.Name != nil && *params.Name == "" {
		return ErrMissingResourceFields
	}
	if params.Description != nil && *params.Description == "" {
		return ErrMissingResourceFields
	}
	if params.URL != nil && *params.URL == "" {
		return ErrMissingResourceFields
	}
	if params.Category != nil && !schema.IsValidCategory(*params.Category) {
		return ErrInvalidCategory
	}
	return nil
}

// mergeResource applies the present fields of params over r and
// refreshes lastUpdated. Both backends go through this merge so their
// partial-update behavior stays identical.
func mergeResource(r *schema.Resource, params UpdateResourceParams) {
	if params.Name != nil {
		r.Name = *params.Name
	}
	if params.Description != nil {
		r.Description = *params.Description
	}
	if params.Category != nil {
		r.Category = *params.Category
	}
	if params.Tags != nil {
		r.Tags = params.Tags
	}
	if params.URL != nil {
		r.URL = *params.URL
	}
	if params.Featured != nil {
		r.Featured = *params.Featured
	}
	r.LastUpdated = time.Now().Format(dateFormat)
}

func (m *mongoDB) ListResources() ([]schema.Resource, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.ResourceCollection)

	cur, err := c.Find(ctx, bson.M{})
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": mongoLogPrefix,
			"error":  err,
		}).Error("list resources fail")
		return nil, err
	}

	resources := []schema.Resource{}
	if err := cur.All(ctx, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

func (m *mongoDB) GetResource(id string) (*schema.Resource, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.ResourceCollection)

	var resource schema.Resource
	if err := c.FindOne(ctx, bson.M{"id": id}).Decode(&resource); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}
	return &resource, nil
}

func (m *mongoDB) CreateResource(params CreateResourceParams) (*schema.Resource, error) {
	resource, err := newResource(params)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.ResourceCollection)
	if _, err := c.InsertOne(ctx, resource); err != nil {
		log.WithFields(log.Fields{
			"prefix":   mongoLogPrefix,
			"resource": resource.ID,
			"error":    err,
		}).Error("create resource fail")
		return nil, err
	}
	return resource, nil
}

// UpdateResource does a field-level $set so unspecified fields keep
// their stored values.
func (m *mongoDB) UpdateResource(id string, params UpdateResourceParams) (*schema.Resource, error) {
	if err := validateUpdate(params); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	set := bson.M{
		"last_updated": time.Now().Format(dateFormat),
	}
	if params.Name != nil {
		set["name"] = *params.Name
	}
	if params.Description != nil {
		set["description"] = *params.Description
	}
	if params.Category != nil {
		set["category"] = *params.Category
	}
	if params.Tags != nil {
		set["tags"] = params.Tags
	}
	if params.URL != nil {
		set["url"] = *params.URL
	}
	if params.Featured != nil {
		set["featured"] = *params.Featured
	}

	c := m.client.Database(m.database).Collection(schema.ResourceCollection)

	var updated schema.Resource
	err := c.FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrResourceNotFound
		}
		log.WithFields(log.Fields{
			"prefix":   mongoLogPrefix,
			"resource": id,
			"error":    err,
		}).Error("update resource fail")
		return nil, err
	}
	return &updated, nil
}

func (m *mongoDB) DeleteResource(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.ResourceCollection)

	result, err := c.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		log.WithFields(log.Fields{
			"prefix":   mongoLogPrefix,
			"resource": id,
			"error":    err,
		}).Error("delete resource fail")
		return err
	}
	if result.DeletedCount == 0 {
		return ErrResourceNotFound
	}
	return nil
}

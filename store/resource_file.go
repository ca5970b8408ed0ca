package store

import (
	"github.com/rpetter01/bioinformatics-hub/schema"
)

// The file-backed resource store keeps the whole collection in
// resources.json shaped {"resources": [...]}. Every mutation is a
// read-merge-write of the document.

func (f *fileDB) ListResources() ([]schema.Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.readResources()
	if err != nil {
		return nil, err
	}
	return doc.Resources, nil
}

func (f *fileDB) GetResource(id string) (*schema.Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.readResources()
	if err != nil {
		return nil, err
	}
	for i := range doc.Resources {
		if doc.Resources[i].ID == id {
			return &doc.Resources[i], nil
		}
	}
	return nil, ErrResourceNotFound
}

func (f *fileDB) CreateResource(params CreateResourceParams) (*schema.Resource, error) {
	resource, err := newResource(params)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.readResources()
	if err != nil {
		return nil, err
	}

	doc.Resources = append(doc.Resources, *resource)
	if err := f.write(schema.ResourceCollection, doc); err != nil {
		return nil, err
	}
	return resource, nil
}

func (f *fileDB) UpdateResource(id string, params UpdateResourceParams) (*schema.Resource, error) {
	if err := validateUpdate(params); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.readResources()
	if err != nil {
		return nil, err
	}

	for i := range doc.Resources {
		if doc.Resources[i].ID != id {
			continue
		}
		mergeResource(&doc.Resources[i], params)
		if err := f.write(schema.ResourceCollection, doc); err != nil {
			return nil, err
		}
		return &doc.Resources[i], nil
	}
	return nil, ErrResourceNotFound
}

func (f *fileDB) DeleteResource(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.readResources()
	if err != nil {
		return err
	}

	for i := range doc.Resources {
		if doc.Resources[i].ID != id {
			continue
		}
		doc.Resources = append(doc.Resources[:i], doc.Resources[i+1:]...)
		return f.write(schema.ResourceCollection, doc)
	}
	return ErrResourceNotFound
}

func (f *fileDB) readResources() (*schema.ResourceDocument, error) {
	doc := schema.ResourceDocument{Resources: []schema.Resource{}}
	if err := f.read(schema.ResourceCollection, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

package schema

const (
	ResourceCollection = "resources"
)

// Resource categories. Writes carrying any other value are rejected.
const (
	CategoryTool     = "tool"
	CategoryDatabase = "database"
	CategoryCourse   = "course"
	CategoryWebsite  = "website"
)

// IsValidCategory reports whether c is one of the four resource categories.
func IsValidCategory(c string) bool {
	switch c {
	case CategoryTool, CategoryDatabase, CategoryCourse, CategoryWebsite:
		return true
	}
	return false
}

// Resource is a catalogued external tool, database, course or website.
type Resource struct {
	ID          string   `json:"id" bson:"id"`
	Name        string   `json:"name" bson:"name"`
	Description string   `json:"description" bson:"description"`
	Category    string   `json:"category" bson:"category"`
	Tags        []string `json:"tags" bson:"tags"`
	URL         string   `json:"url" bson:"url"`
	Popularity  int      `json:"popularity" bson:"popularity"`
	LastUpdated string   `json:"lastUpdated" bson:"last_updated"`
	Featured    bool     `json:"featured" bson:"featured"`
}

// ResourceDocument is the file-backend envelope holding the whole
// resource collection as one JSON document.
type ResourceDocument struct {
	Resources []Resource `json:"resources"`
}

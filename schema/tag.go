package schema

const (
	TagCollection = "tags"
)

// TagDocument is the file-backend envelope for the tag collection.
type TagDocument struct {
	Tags []string `json:"tags"`
}

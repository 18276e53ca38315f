package h2wp

import (
	"net/url"
	"path/filepath"
)

// Defaults applied to ImportOptions fields left empty.
const (
	DefaultPostType = "post"
	DefaultStatus   = "draft"
	DefaultAuthorID = 1
)

// Batch size bounds for a single job step.
const (
	MinBatchSize     = 1
	MaxBatchSize     = 25
	DefaultBatchSize = 15
)

// Post statuses accepted for imported posts.
var validStatuses = map[string]bool{
	"draft":   true,
	"publish": true,
	"private": true,
	"pending": true,
}

// ImportOptions controls how a job imports its files.
// Options are fixed when the job is created.
type ImportOptions struct {
	PostType    string   `json:"postType" yaml:"post_type"`
	Status      string   `json:"status" yaml:"status"`
	AuthorID    int64    `json:"authorId" yaml:"author_id"`
	Category    string   `json:"category" yaml:"category"`
	BaseURL     string   `json:"baseUrl" yaml:"base_url"`
	KeepDates   bool     `json:"keepDates" yaml:"keep_dates"`
	SetFeatured bool     `json:"setFeatured" yaml:"set_featured"`
	DryRun      bool     `json:"dryRun" yaml:"dry_run"`
	ExtractMain bool     `json:"extractMain" yaml:"extract_main"`
	BasePath    string   `json:"basePath" yaml:"base_path"`
	Cleanup     []string `json:"cleanup" yaml:"cleanup"`
}

// DefaultImportOptions returns options with all defaults applied.
func DefaultImportOptions() ImportOptions {
	return ImportOptions{
		PostType: DefaultPostType,
		Status:   DefaultStatus,
		AuthorID: DefaultAuthorID,
	}
}

// ApplyDefaults fills empty fields with their default values.
func (o *ImportOptions) ApplyDefaults() {
	if o.PostType == "" {
		o.PostType = DefaultPostType
	}
	if o.Status == "" {
		o.Status = DefaultStatus
	}
	if o.AuthorID == 0 {
		o.AuthorID = DefaultAuthorID
	}
}

// Validate returns an error if the options contain invalid fields.
func (o *ImportOptions) Validate() error {
	if o.BasePath == "" {
		return Errorf(EINVALID, "base path required")
	}
	if !filepath.IsAbs(o.BasePath) {
		return Errorf(EINVALID, "base path %q must be absolute", o.BasePath)
	}
	if o.PostType == "" {
		return Errorf(EINVALID, "post type required")
	}
	if !validStatuses[o.Status] {
		return Errorf(EINVALID, "invalid post status %q", o.Status)
	}
	if o.AuthorID <= 0 {
		return Errorf(EINVALID, "author ID must be positive")
	}
	if o.BaseURL != "" {
		u, err := url.Parse(o.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return Errorf(EINVALID, "invalid base URL %q", o.BaseURL)
		}
	}
	return nil
}

// ClampBatchSize bounds n to [MinBatchSize, MaxBatchSize].
func ClampBatchSize(n int) int {
	return max(MinBatchSize, min(MaxBatchSize, n))
}

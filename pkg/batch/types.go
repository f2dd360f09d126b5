package batch

import (
	"net/http"
	"time"
)

// Page is one page of a list operation. An empty NextLink marks the final page.
type Page[T any] struct {
	Items    []T
	NextLink string
}

// HasNext reports whether another page follows this one.
func (p *Page[T]) HasNext() bool {
	return p != nil && p.NextLink != ""
}

// ListResponse is the wire shape of a Batch list response.
type ListResponse[T any] struct {
	Metadata string `json:"odata.metadata,omitempty" yaml:"odata.metadata,omitempty"`
	Value    []T    `json:"value"                    yaml:"value"`
	NextLink string `json:"odata.nextLink,omitempty" yaml:"odata.nextLink,omitempty"`
}

// ToPage converts the wire shape to a Page.
func (l *ListResponse[T]) ToPage() *Page[T] {
	return &Page[T]{Items: l.Value, NextLink: l.NextLink}
}

// Response is a decoded service response: typed body, typed headers and the raw status.
type Response[B, H any] struct {
	Body       B
	Headers    H
	StatusCode int
	Raw        *http.Response
}

// NoContent is the body type of operations whose success response carries no body.
type NoContent struct{}

// ResponseHeaders are the headers common to every Batch response.
type ResponseHeaders struct {
	ClientRequestID string    `header:"client-request-id" json:"client_request_id,omitempty" yaml:"client_request_id,omitempty"`
	RequestID       string    `header:"request-id"        json:"request_id,omitempty"        yaml:"request_id,omitempty"`
	ETag            string    `header:"etag"              json:"etag,omitempty"              yaml:"etag,omitempty"`
	LastModified    time.Time `header:"last-modified"     json:"last_modified"               yaml:"last_modified"`
	DataServiceID   string    `header:"dataserviceid"     json:"data_service_id,omitempty"   yaml:"data_service_id,omitempty"`
}

// FileHeaders are returned by file content and file property operations.
type FileHeaders struct {
	ResponseHeaders `header:",squash" json:",inline" yaml:",inline"`

	CreationTime  time.Time `header:"ocp-creation-time"          json:"creation_time"  yaml:"creation_time"`
	IsDirectory   bool      `header:"ocp-batch-file-isdirectory" json:"is_directory"   yaml:"is_directory"`
	FileURL       string    `header:"ocp-batch-file-url"         json:"file_url"       yaml:"file_url"`
	FileMode      string    `header:"ocp-batch-file-mode"        json:"file_mode"      yaml:"file_mode"`
	ContentType   string    `header:"content-type"               json:"content_type"   yaml:"content_type"`
	ContentLength int64     `header:"content-length"             json:"content_length" yaml:"content_length"`
}

// AckResponse is returned by operations without a response body.
type AckResponse = Response[NoContent, ResponseHeaders]

// Include represents OData $expand values.
type Include []string

// Fields represents OData $select values.
type Fields []string

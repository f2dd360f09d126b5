package batch

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/batch-client/internal/constants"
)

// ListOptions are the OData options shared by every list operation.
type ListOptions struct {
	// Filter is an OData $filter clause, e.g. "state eq 'active'".
	Filter string
	// Select restricts the returned properties.
	Select Fields
	// Expand requests related data, e.g. "stats".
	Expand Include
	// MaxResults caps the number of items per page (service maximum 1000).
	MaxResults int
	// Timeout is the server-side processing timeout in seconds.
	Timeout int
}

// NewListOptions creates empty list options.
func NewListOptions() *ListOptions {
	return &ListOptions{}
}

// WithFilter sets the $filter clause.
func (o *ListOptions) WithFilter(filter string) *ListOptions {
	o.Filter = filter

	return o
}

// WithSelect sets the $select properties.
func (o *ListOptions) WithSelect(fields ...string) *ListOptions {
	o.Select = append(o.Select, fields...)

	return o
}

// WithExpand sets the $expand properties.
func (o *ListOptions) WithExpand(include ...string) *ListOptions {
	o.Expand = append(o.Expand, include...)

	return o
}

// WithMaxResults sets the page size.
func (o *ListOptions) WithMaxResults(n int) *ListOptions {
	o.MaxResults = n

	return o
}

// ToValues converts the options to query values. A nil receiver yields empty values.
func (o *ListOptions) ToValues() url.Values {
	values := url.Values{}

	if o == nil {
		return values
	}

	if o.Filter != "" {
		values.Set(constants.QueryFilter, o.Filter)
	}

	if len(o.Select) > 0 {
		values.Set(constants.QuerySelect, strings.Join(o.Select, ","))
	}

	if len(o.Expand) > 0 {
		values.Set(constants.QueryExpand, strings.Join(o.Expand, ","))
	}

	if o.MaxResults > 0 {
		values.Set(constants.QueryMaxResults, strconv.Itoa(o.MaxResults))
	}

	if o.Timeout > 0 {
		values.Set(constants.QueryTimeout, strconv.Itoa(o.Timeout))
	}

	return values
}

// GetOptions are the OData options of single-resource reads.
type GetOptions struct {
	Select Fields
	Expand Include
}

// ToValues converts the options to query values.
func (o *GetOptions) ToValues() url.Values {
	values := url.Values{}

	if o == nil {
		return values
	}

	if len(o.Select) > 0 {
		values.Set(constants.QuerySelect, strings.Join(o.Select, ","))
	}

	if len(o.Expand) > 0 {
		values.Set(constants.QueryExpand, strings.Join(o.Expand, ","))
	}

	return values
}

// FileListOptions extends ListOptions with the recursive flag of file listings.
type FileListOptions struct {
	ListOptions

	Recursive bool
}

// ToValues converts the options to query values.
func (o *FileListOptions) ToValues() url.Values {
	if o == nil {
		return url.Values{}
	}

	values := o.ListOptions.ToValues()
	if o.Recursive {
		values.Set(constants.QueryRecursive, "true")
	}

	return values
}

package batch_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fivetwenty-io/batch-client/pkg/batch"
)

func TestListOptions_ToValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts *batch.ListOptions
		want url.Values
	}{
		{name: "nil", opts: nil, want: url.Values{}},
		{name: "empty", opts: batch.NewListOptions(), want: url.Values{}},
		{
			name: "all options",
			opts: batch.NewListOptions().
				WithFilter("state eq 'active'").
				WithSelect("id", "state").
				WithExpand("stats").
				WithMaxResults(100),
			want: url.Values{
				"$filter":    {"state eq 'active'"},
				"$select":    {"id,state"},
				"$expand":    {"stats"},
				"maxresults": {"100"},
			},
		},
		{
			name: "server timeout",
			opts: &batch.ListOptions{Timeout: 30},
			want: url.Values{"timeout": {"30"}},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, testCase.opts.ToValues())
		})
	}
}

func TestGetOptions_ToValues(t *testing.T) {
	t.Parallel()

	var nilOpts *batch.GetOptions
	assert.Empty(t, nilOpts.ToValues())

	values := (&batch.GetOptions{Select: batch.Fields{"id"}, Expand: batch.Include{"metadata", "stats"}}).ToValues()
	assert.Equal(t, "id", values.Get("$select"))
	assert.Equal(t, "metadata,stats", values.Get("$expand"))
}

func TestFileListOptions_ToValues(t *testing.T) {
	t.Parallel()

	var nilOpts *batch.FileListOptions
	assert.Empty(t, nilOpts.ToValues())

	opts := &batch.FileListOptions{Recursive: true}
	opts.MaxResults = 5

	values := opts.ToValues()
	assert.Equal(t, "true", values.Get("recursive"))
	assert.Equal(t, "5", values.Get("maxresults"))

	assert.Empty(t, (&batch.FileListOptions{}).ToValues().Get("recursive"), "recursive is omitted when false")
}

package client

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/batch-client/pkg/batch"
)

var (
	jobList = operation{name: "Job_List", method: http.MethodGet, path: "/jobs", successCode: http.StatusOK}
	jobGet  = operation{
		name: "Job_Get", method: http.MethodGet, path: "/jobs/{jobId}", successCode: http.StatusOK,
		required: []string{paramJobID}, cacheable: true,
	}
	jobAdd = operation{
		name: "Job_Add", method: http.MethodPost, path: "/jobs", successCode: http.StatusCreated,
		required: []string{paramBody},
	}
	jobDelete = operation{
		name: "Job_Delete", method: http.MethodDelete, path: "/jobs/{jobId}", successCode: http.StatusAccepted,
		required: []string{paramJobID}, evicts: "/jobs/{jobId}",
	}
	jobPatch = operation{
		name: "Job_Patch", method: http.MethodPatch, path: "/jobs/{jobId}", successCode: http.StatusOK,
		required: []string{paramJobID, paramBody}, evicts: "/jobs/{jobId}",
	}
	jobDisable = operation{
		name: "Job_Disable", method: http.MethodPost, path: "/jobs/{jobId}/disable", successCode: http.StatusAccepted,
		required: []string{paramJobID, paramBody}, evicts: "/jobs/{jobId}",
	}
	jobEnable = operation{
		name: "Job_Enable", method: http.MethodPost, path: "/jobs/{jobId}/enable", successCode: http.StatusAccepted,
		required: []string{paramJobID}, evicts: "/jobs/{jobId}",
	}
	jobTerminate = operation{
		name: "Job_Terminate", method: http.MethodPost, path: "/jobs/{jobId}/terminate", successCode: http.StatusAccepted,
		required: []string{paramJobID}, evicts: "/jobs/{jobId}",
	}
	jobGetTaskCounts = operation{
		name: "Job_GetTaskCounts", method: http.MethodGet, path: "/jobs/{jobId}/taskcounts", successCode: http.StatusOK,
		required: []string{paramJobID},
	}
)

// JobsClient implements batch.JobsClient.
type JobsClient struct {
	inv *invoker
}

// NewJobsClient creates a new jobs client.
func NewJobsClient(inv *invoker) *JobsClient {
	return &JobsClient{inv: inv}
}

// List implements batch.JobsClient.List.
func (c *JobsClient) List(ctx context.Context, opts *batch.ListOptions) *batch.Pager[batch.Job] {
	return batch.NewPager(pager[batch.Job](c.inv, jobList, call{query: opts.ToValues()}))
}

// ListAsync implements batch.JobsClient.ListAsync.
func (c *JobsClient) ListAsync(ctx context.Context, opts *batch.ListOptions, callbacks batch.ListCallbacks[batch.Job]) *batch.Future[[]batch.Job] {
	return batch.ListAsync(ctx, pager[batch.Job](c.inv, jobList, call{query: opts.ToValues()}), callbacks)
}

// Get implements batch.JobsClient.Get.
func (c *JobsClient) Get(ctx context.Context, jobID string, opts *batch.GetOptions) (*batch.JobResponse, error) {
	return invoke[batch.Job, batch.ResponseHeaders](ctx, c.inv, jobGet, call{
		params: params(paramJobID, jobID),
		query:  opts.ToValues(),
	})
}

// Add implements batch.JobsClient.Add.
func (c *JobsClient) Add(ctx context.Context, job *batch.JobAddRequest) (*batch.AckResponse, error) {
	return invoke[batch.NoContent, batch.ResponseHeaders](ctx, c.inv, jobAdd, call{body: job})
}

// Delete implements batch.JobsClient.Delete.
func (c *JobsClient) Delete(ctx context.Context, jobID string) (*batch.AckResponse, error) {
	return c.ack(ctx, jobDelete, jobID, nil)
}

// Patch implements batch.JobsClient.Patch.
func (c *JobsClient) Patch(ctx context.Context, jobID string, patch *batch.JobPatchRequest) (*batch.AckResponse, error) {
	return c.ack(ctx, jobPatch, jobID, patch)
}

// Disable implements batch.JobsClient.Disable.
func (c *JobsClient) Disable(ctx context.Context, jobID string, req *batch.JobDisableRequest) (*batch.AckResponse, error) {
	return c.ack(ctx, jobDisable, jobID, req)
}

// Enable implements batch.JobsClient.Enable.
func (c *JobsClient) Enable(ctx context.Context, jobID string) (*batch.AckResponse, error) {
	return c.ack(ctx, jobEnable, jobID, nil)
}

// Terminate implements batch.JobsClient.Terminate. The request may be nil.
func (c *JobsClient) Terminate(ctx context.Context, jobID string, req *batch.JobTerminateRequest) (*batch.AckResponse, error) {
	return c.ack(ctx, jobTerminate, jobID, req)
}

// GetTaskCounts implements batch.JobsClient.GetTaskCounts.
func (c *JobsClient) GetTaskCounts(ctx context.Context, jobID string) (*batch.TaskCountsResponse, error) {
	return invoke[batch.TaskCountsResult, batch.ResponseHeaders](ctx, c.inv, jobGetTaskCounts, call{
		params: params(paramJobID, jobID),
	})
}

func (c *JobsClient) ack(ctx context.Context, op operation, jobID string, body interface{}) (*batch.AckResponse, error) {
	return invoke[batch.NoContent, batch.ResponseHeaders](ctx, c.inv, op, call{
		params: params(paramJobID, jobID),
		body:   body,
	})
}

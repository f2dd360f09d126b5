package client

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/batch-client/pkg/batch"
)

var (
	taskList = operation{
		name: "Task_List", method: http.MethodGet, path: "/jobs/{jobId}/tasks", successCode: http.StatusOK,
		required: []string{paramJobID},
	}
	taskGet = operation{
		name: "Task_Get", method: http.MethodGet, path: "/jobs/{jobId}/tasks/{taskId}", successCode: http.StatusOK,
		required: []string{paramJobID, paramTaskID}, cacheable: true,
	}
	taskAdd = operation{
		name: "Task_Add", method: http.MethodPost, path: "/jobs/{jobId}/tasks", successCode: http.StatusCreated,
		required: []string{paramJobID, paramBody},
	}
	taskAddCollection = operation{
		name: "Task_AddCollection", method: http.MethodPost, path: "/jobs/{jobId}/addtaskcollection", successCode: http.StatusOK,
		required: []string{paramJobID, paramBody},
	}
	taskDelete = operation{
		name: "Task_Delete", method: http.MethodDelete, path: "/jobs/{jobId}/tasks/{taskId}", successCode: http.StatusOK,
		required: []string{paramJobID, paramTaskID}, evicts: "/jobs/{jobId}/tasks/{taskId}",
	}
	taskUpdate = operation{
		name: "Task_Update", method: http.MethodPut, path: "/jobs/{jobId}/tasks/{taskId}", successCode: http.StatusOK,
		required: []string{paramJobID, paramTaskID, paramBody}, evicts: "/jobs/{jobId}/tasks/{taskId}",
	}
	taskTerminate = operation{
		name: "Task_Terminate", method: http.MethodPost, path: "/jobs/{jobId}/tasks/{taskId}/terminate", successCode: http.StatusNoContent,
		required: []string{paramJobID, paramTaskID}, evicts: "/jobs/{jobId}/tasks/{taskId}",
	}
	taskReactivate = operation{
		name: "Task_Reactivate", method: http.MethodPost, path: "/jobs/{jobId}/tasks/{taskId}/reactivate", successCode: http.StatusNoContent,
		required: []string{paramJobID, paramTaskID}, evicts: "/jobs/{jobId}/tasks/{taskId}",
	}
	taskListSubtasks = operation{
		name: "Task_ListSubtasks", method: http.MethodGet, path: "/jobs/{jobId}/tasks/{taskId}/subtasksinfo", successCode: http.StatusOK,
		required: []string{paramJobID, paramTaskID},
	}
)

// TasksClient implements batch.TasksClient.
type TasksClient struct {
	inv *invoker
}

// NewTasksClient creates a new tasks client.
func NewTasksClient(inv *invoker) *TasksClient {
	return &TasksClient{inv: inv}
}

// List implements batch.TasksClient.List.
func (c *TasksClient) List(ctx context.Context, jobID string, opts *batch.ListOptions) *batch.Pager[batch.Task] {
	return batch.NewPager(c.listHandler(jobID, opts))
}

// ListAsync implements batch.TasksClient.ListAsync.
func (c *TasksClient) ListAsync(
	ctx context.Context,
	jobID string,
	opts *batch.ListOptions,
	callbacks batch.ListCallbacks[batch.Task],
) *batch.Future[[]batch.Task] {
	return batch.ListAsync(ctx, c.listHandler(jobID, opts), callbacks)
}

func (c *TasksClient) listHandler(jobID string, opts *batch.ListOptions) batch.PagingHandler[batch.Task] {
	return pager[batch.Task](c.inv, taskList, call{
		params: params(paramJobID, jobID),
		query:  opts.ToValues(),
	})
}

// Get implements batch.TasksClient.Get.
func (c *TasksClient) Get(ctx context.Context, jobID, taskID string, opts *batch.GetOptions) (*batch.TaskResponse, error) {
	return invoke[batch.Task, batch.ResponseHeaders](ctx, c.inv, taskGet, call{
		params: params(paramJobID, jobID, paramTaskID, taskID),
		query:  opts.ToValues(),
	})
}

// Add implements batch.TasksClient.Add.
func (c *TasksClient) Add(ctx context.Context, jobID string, task *batch.TaskAddRequest) (*batch.AckResponse, error) {
	return invoke[batch.NoContent, batch.ResponseHeaders](ctx, c.inv, taskAdd, call{
		params: params(paramJobID, jobID),
		body:   task,
	})
}

// AddCollection implements batch.TasksClient.AddCollection.
// Per-task failures are reported in the result, not as an error.
func (c *TasksClient) AddCollection(
	ctx context.Context,
	jobID string,
	tasks *batch.TaskAddCollectionRequest,
) (*batch.TaskAddCollectionResponse, error) {
	return invoke[batch.TaskAddCollectionResult, batch.ResponseHeaders](ctx, c.inv, taskAddCollection, call{
		params: params(paramJobID, jobID),
		body:   tasks,
	})
}

// Delete implements batch.TasksClient.Delete.
func (c *TasksClient) Delete(ctx context.Context, jobID, taskID string) (*batch.AckResponse, error) {
	return c.ack(ctx, taskDelete, jobID, taskID, nil)
}

// Update implements batch.TasksClient.Update.
func (c *TasksClient) Update(ctx context.Context, jobID, taskID string, update *batch.TaskUpdateRequest) (*batch.AckResponse, error) {
	return c.ack(ctx, taskUpdate, jobID, taskID, update)
}

// Terminate implements batch.TasksClient.Terminate.
func (c *TasksClient) Terminate(ctx context.Context, jobID, taskID string) (*batch.AckResponse, error) {
	return c.ack(ctx, taskTerminate, jobID, taskID, nil)
}

// Reactivate implements batch.TasksClient.Reactivate.
func (c *TasksClient) Reactivate(ctx context.Context, jobID, taskID string) (*batch.AckResponse, error) {
	return c.ack(ctx, taskReactivate, jobID, taskID, nil)
}

// ListSubtasks implements batch.TasksClient.ListSubtasks.
func (c *TasksClient) ListSubtasks(ctx context.Context, jobID, taskID string) (*batch.SubtaskListResponse, error) {
	return invoke[batch.SubtaskList, batch.ResponseHeaders](ctx, c.inv, taskListSubtasks, call{
		params: params(paramJobID, jobID, paramTaskID, taskID),
	})
}

// WaitForCompletion implements batch.TasksClient.WaitForCompletion.
func (c *TasksClient) WaitForCompletion(ctx context.Context, jobID, taskID string, opts *batch.WaitOptions) (*batch.Task, error) {
	return waitFor(ctx, opts, "task "+taskID, func(ctx context.Context) (*batch.Task, bool, error) {
		resp, err := invoke[batch.Task, batch.ResponseHeaders](ctx, c.inv, taskGet, call{
			params: params(paramJobID, jobID, paramTaskID, taskID),
			fresh:  true,
		})
		if err != nil {
			return nil, false, err
		}

		return &resp.Body, resp.Body.State == batch.TaskStateCompleted, nil
	})
}

func (c *TasksClient) ack(ctx context.Context, op operation, jobID, taskID string, body interface{}) (*batch.AckResponse, error) {
	return invoke[batch.NoContent, batch.ResponseHeaders](ctx, c.inv, op, call{
		params: params(paramJobID, jobID, paramTaskID, taskID),
		body:   body,
	})
}

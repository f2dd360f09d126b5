package client

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/batch-client/pkg/batch"
)

const (
	taskFilesPath = "/jobs/{jobId}/tasks/{taskId}/files"
	nodeFilesPath = "/pools/{poolId}/nodes/{nodeId}/files"
)

var (
	taskFileParams = []string{paramJobID, paramTaskID, paramFilePath}
	nodeFileParams = []string{paramPoolID, paramNodeID, paramFilePath}
)

var (
	fileListFromTask = operation{
		name: "File_ListFromTask", method: http.MethodGet, path: taskFilesPath, successCode: http.StatusOK,
		required: []string{paramJobID, paramTaskID},
	}
	fileListFromComputeNode = operation{
		name: "File_ListFromComputeNode", method: http.MethodGet, path: nodeFilesPath, successCode: http.StatusOK,
		required: []string{paramPoolID, paramNodeID},
	}
	fileGetFromTask = operation{
		name: "File_GetFromTask", method: http.MethodGet, path: taskFilesPath + "/{filePath}", successCode: http.StatusOK,
		required: taskFileParams,
	}
	fileGetFromComputeNode = operation{
		name: "File_GetFromComputeNode", method: http.MethodGet, path: nodeFilesPath + "/{filePath}", successCode: http.StatusOK,
		required: nodeFileParams,
	}
	fileGetPropertiesFromTask = operation{
		name: "File_GetPropertiesFromTask", method: http.MethodHead, path: taskFilesPath + "/{filePath}", successCode: http.StatusOK,
		required: taskFileParams,
	}
	fileGetPropertiesFromComputeNode = operation{
		name: "File_GetPropertiesFromComputeNode", method: http.MethodHead, path: nodeFilesPath + "/{filePath}", successCode: http.StatusOK,
		required: nodeFileParams,
	}
	fileDeleteFromTask = operation{
		name: "File_DeleteFromTask", method: http.MethodDelete, path: taskFilesPath + "/{filePath}", successCode: http.StatusOK,
		required: taskFileParams,
	}
	fileDeleteFromComputeNode = operation{
		name: "File_DeleteFromComputeNode", method: http.MethodDelete, path: nodeFilesPath + "/{filePath}", successCode: http.StatusOK,
		required: nodeFileParams,
	}
)

// FilesClient implements batch.FilesClient.
type FilesClient struct {
	inv *invoker
}

// NewFilesClient creates a new files client.
func NewFilesClient(inv *invoker) *FilesClient {
	return &FilesClient{inv: inv}
}

// ListFromTask implements batch.FilesClient.ListFromTask.
func (c *FilesClient) ListFromTask(ctx context.Context, jobID, taskID string, opts *batch.FileListOptions) *batch.Pager[batch.NodeFile] {
	return batch.NewPager(c.taskHandler(jobID, taskID, opts))
}

// ListFromTaskAsync implements batch.FilesClient.ListFromTaskAsync.
func (c *FilesClient) ListFromTaskAsync(
	ctx context.Context,
	jobID, taskID string,
	opts *batch.FileListOptions,
	callbacks batch.ListCallbacks[batch.NodeFile],
) *batch.Future[[]batch.NodeFile] {
	return batch.ListAsync(ctx, c.taskHandler(jobID, taskID, opts), callbacks)
}

// ListFromComputeNode implements batch.FilesClient.ListFromComputeNode.
func (c *FilesClient) ListFromComputeNode(ctx context.Context, poolID, nodeID string, opts *batch.FileListOptions) *batch.Pager[batch.NodeFile] {
	return batch.NewPager(c.nodeHandler(poolID, nodeID, opts))
}

// ListFromComputeNodeAsync implements batch.FilesClient.ListFromComputeNodeAsync.
func (c *FilesClient) ListFromComputeNodeAsync(
	ctx context.Context,
	poolID, nodeID string,
	opts *batch.FileListOptions,
	callbacks batch.ListCallbacks[batch.NodeFile],
) *batch.Future[[]batch.NodeFile] {
	return batch.ListAsync(ctx, c.nodeHandler(poolID, nodeID, opts), callbacks)
}

func (c *FilesClient) taskHandler(jobID, taskID string, opts *batch.FileListOptions) batch.PagingHandler[batch.NodeFile] {
	return pager[batch.NodeFile](c.inv, fileListFromTask, call{
		params: params(paramJobID, jobID, paramTaskID, taskID),
		query:  opts.ToValues(),
	})
}

func (c *FilesClient) nodeHandler(poolID, nodeID string, opts *batch.FileListOptions) batch.PagingHandler[batch.NodeFile] {
	return pager[batch.NodeFile](c.inv, fileListFromComputeNode, call{
		params: params(paramPoolID, poolID, paramNodeID, nodeID),
		query:  opts.ToValues(),
	})
}

// GetFromTask implements batch.FilesClient.GetFromTask. The body holds the raw file bytes.
func (c *FilesClient) GetFromTask(ctx context.Context, jobID, taskID, filePath string) (*batch.FileContentResponse, error) {
	return invoke[[]byte, batch.FileHeaders](ctx, c.inv, fileGetFromTask, call{
		params: params(paramJobID, jobID, paramTaskID, taskID, paramFilePath, filePath),
	})
}

// GetFromComputeNode implements batch.FilesClient.GetFromComputeNode.
func (c *FilesClient) GetFromComputeNode(ctx context.Context, poolID, nodeID, filePath string) (*batch.FileContentResponse, error) {
	return invoke[[]byte, batch.FileHeaders](ctx, c.inv, fileGetFromComputeNode, call{
		params: params(paramPoolID, poolID, paramNodeID, nodeID, paramFilePath, filePath),
	})
}

// GetPropertiesFromTask implements batch.FilesClient.GetPropertiesFromTask.
func (c *FilesClient) GetPropertiesFromTask(ctx context.Context, jobID, taskID, filePath string) (*batch.FilePropertiesResponse, error) {
	return invoke[batch.NoContent, batch.FileHeaders](ctx, c.inv, fileGetPropertiesFromTask, call{
		params: params(paramJobID, jobID, paramTaskID, taskID, paramFilePath, filePath),
	})
}

// GetPropertiesFromComputeNode implements batch.FilesClient.GetPropertiesFromComputeNode.
func (c *FilesClient) GetPropertiesFromComputeNode(ctx context.Context, poolID, nodeID, filePath string) (*batch.FilePropertiesResponse, error) {
	return invoke[batch.NoContent, batch.FileHeaders](ctx, c.inv, fileGetPropertiesFromComputeNode, call{
		params: params(paramPoolID, poolID, paramNodeID, nodeID, paramFilePath, filePath),
	})
}

// DeleteFromTask implements batch.FilesClient.DeleteFromTask.
func (c *FilesClient) DeleteFromTask(ctx context.Context, jobID, taskID, filePath string) (*batch.AckResponse, error) {
	return invoke[batch.NoContent, batch.ResponseHeaders](ctx, c.inv, fileDeleteFromTask, call{
		params: params(paramJobID, jobID, paramTaskID, taskID, paramFilePath, filePath),
	})
}

// DeleteFromComputeNode implements batch.FilesClient.DeleteFromComputeNode.
func (c *FilesClient) DeleteFromComputeNode(ctx context.Context, poolID, nodeID, filePath string) (*batch.AckResponse, error) {
	return invoke[batch.NoContent, batch.ResponseHeaders](ctx, c.inv, fileDeleteFromComputeNode, call{
		params: params(paramPoolID, poolID, paramNodeID, nodeID, paramFilePath, filePath),
	})
}

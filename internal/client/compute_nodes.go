package client

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/batch-client/pkg/batch"
)

const nodePath = "/pools/{poolId}/nodes/{nodeId}"

var nodeParams = []string{paramPoolID, paramNodeID}

var (
	nodeList = operation{
		name: "ComputeNode_List", method: http.MethodGet, path: "/pools/{poolId}/nodes", successCode: http.StatusOK,
		required: []string{paramPoolID},
	}
	nodeGet = operation{
		name: "ComputeNode_Get", method: http.MethodGet, path: nodePath, successCode: http.StatusOK,
		required: nodeParams, cacheable: true,
	}
	nodeReboot = operation{
		name: "ComputeNode_Reboot", method: http.MethodPost, path: nodePath + "/reboot", successCode: http.StatusAccepted,
		required: nodeParams, evicts: nodePath,
	}
	nodeReimage = operation{
		name: "ComputeNode_Reimage", method: http.MethodPost, path: nodePath + "/reimage", successCode: http.StatusAccepted,
		required: nodeParams, evicts: nodePath,
	}
	nodeDisableScheduling = operation{
		name: "ComputeNode_DisableScheduling", method: http.MethodPost, path: nodePath + "/disablescheduling", successCode: http.StatusOK,
		required: nodeParams, evicts: nodePath,
	}
	nodeEnableScheduling = operation{
		name: "ComputeNode_EnableScheduling", method: http.MethodPost, path: nodePath + "/enablescheduling", successCode: http.StatusOK,
		required: nodeParams, evicts: nodePath,
	}
	nodeAddUser = operation{
		name: "ComputeNode_AddUser", method: http.MethodPost, path: nodePath + "/users", successCode: http.StatusCreated,
		required: []string{paramPoolID, paramNodeID, paramBody},
	}
	nodeDeleteUser = operation{
		name: "ComputeNode_DeleteUser", method: http.MethodDelete, path: nodePath + "/users/{userName}", successCode: http.StatusOK,
		required: []string{paramPoolID, paramNodeID, paramUserName},
	}
	nodeGetRemoteLoginSettings = operation{
		name: "ComputeNode_GetRemoteLoginSettings", method: http.MethodGet, path: nodePath + "/remoteloginsettings", successCode: http.StatusOK,
		required: nodeParams,
	}
	nodeUploadBatchServiceLogs = operation{
		name: "ComputeNode_UploadBatchServiceLogs", method: http.MethodPost, path: nodePath + "/uploadbatchservicelogs", successCode: http.StatusOK,
		required: []string{paramPoolID, paramNodeID, paramBody},
	}
)

// ComputeNodesClient implements batch.ComputeNodesClient.
type ComputeNodesClient struct {
	inv *invoker
}

// NewComputeNodesClient creates a new compute nodes client.
func NewComputeNodesClient(inv *invoker) *ComputeNodesClient {
	return &ComputeNodesClient{inv: inv}
}

// List implements batch.ComputeNodesClient.List.
func (c *ComputeNodesClient) List(ctx context.Context, poolID string, opts *batch.ListOptions) *batch.Pager[batch.ComputeNode] {
	return batch.NewPager(c.listHandler(poolID, opts))
}

// ListAsync implements batch.ComputeNodesClient.ListAsync.
func (c *ComputeNodesClient) ListAsync(
	ctx context.Context,
	poolID string,
	opts *batch.ListOptions,
	callbacks batch.ListCallbacks[batch.ComputeNode],
) *batch.Future[[]batch.ComputeNode] {
	return batch.ListAsync(ctx, c.listHandler(poolID, opts), callbacks)
}

func (c *ComputeNodesClient) listHandler(poolID string, opts *batch.ListOptions) batch.PagingHandler[batch.ComputeNode] {
	return pager[batch.ComputeNode](c.inv, nodeList, call{
		params: params(paramPoolID, poolID),
		query:  opts.ToValues(),
	})
}

// Get implements batch.ComputeNodesClient.Get.
func (c *ComputeNodesClient) Get(ctx context.Context, poolID, nodeID string, opts *batch.GetOptions) (*batch.ComputeNodeResponse, error) {
	return invoke[batch.ComputeNode, batch.ResponseHeaders](ctx, c.inv, nodeGet, call{
		params: params(paramPoolID, poolID, paramNodeID, nodeID),
		query:  opts.ToValues(),
	})
}

// Reboot implements batch.ComputeNodesClient.Reboot. The request may be nil.
func (c *ComputeNodesClient) Reboot(ctx context.Context, poolID, nodeID string, req *batch.NodeRebootRequest) (*batch.AckResponse, error) {
	return c.ack(ctx, nodeReboot, poolID, nodeID, req)
}

// Reimage implements batch.ComputeNodesClient.Reimage. The request may be nil.
func (c *ComputeNodesClient) Reimage(ctx context.Context, poolID, nodeID string, req *batch.NodeReimageRequest) (*batch.AckResponse, error) {
	return c.ack(ctx, nodeReimage, poolID, nodeID, req)
}

// DisableScheduling implements batch.ComputeNodesClient.DisableScheduling.
func (c *ComputeNodesClient) DisableScheduling(
	ctx context.Context,
	poolID, nodeID string,
	req *batch.NodeDisableSchedulingRequest,
) (*batch.AckResponse, error) {
	return c.ack(ctx, nodeDisableScheduling, poolID, nodeID, req)
}

// EnableScheduling implements batch.ComputeNodesClient.EnableScheduling.
func (c *ComputeNodesClient) EnableScheduling(ctx context.Context, poolID, nodeID string) (*batch.AckResponse, error) {
	return c.ack(ctx, nodeEnableScheduling, poolID, nodeID, nil)
}

// AddUser implements batch.ComputeNodesClient.AddUser.
func (c *ComputeNodesClient) AddUser(ctx context.Context, poolID, nodeID string, user *batch.NodeUserAddRequest) (*batch.AckResponse, error) {
	return c.ack(ctx, nodeAddUser, poolID, nodeID, user)
}

// DeleteUser implements batch.ComputeNodesClient.DeleteUser.
func (c *ComputeNodesClient) DeleteUser(ctx context.Context, poolID, nodeID, userName string) (*batch.AckResponse, error) {
	return invoke[batch.NoContent, batch.ResponseHeaders](ctx, c.inv, nodeDeleteUser, call{
		params: params(paramPoolID, poolID, paramNodeID, nodeID, paramUserName, userName),
	})
}

// GetRemoteLoginSettings implements batch.ComputeNodesClient.GetRemoteLoginSettings.
func (c *ComputeNodesClient) GetRemoteLoginSettings(ctx context.Context, poolID, nodeID string) (*batch.RemoteLoginSettingsResponse, error) {
	return invoke[batch.RemoteLoginSettings, batch.ResponseHeaders](ctx, c.inv, nodeGetRemoteLoginSettings, call{
		params: params(paramPoolID, poolID, paramNodeID, nodeID),
	})
}

// UploadBatchServiceLogs implements batch.ComputeNodesClient.UploadBatchServiceLogs.
func (c *ComputeNodesClient) UploadBatchServiceLogs(
	ctx context.Context,
	poolID, nodeID string,
	req *batch.UploadBatchServiceLogsRequest,
) (*batch.UploadBatchServiceLogsResponse, error) {
	return invoke[batch.UploadBatchServiceLogsResult, batch.ResponseHeaders](ctx, c.inv, nodeUploadBatchServiceLogs, call{
		params: params(paramPoolID, poolID, paramNodeID, nodeID),
		body:   req,
	})
}

func (c *ComputeNodesClient) ack(ctx context.Context, op operation, poolID, nodeID string, body interface{}) (*batch.AckResponse, error) {
	return invoke[batch.NoContent, batch.ResponseHeaders](ctx, c.inv, op, call{
		params: params(paramPoolID, poolID, paramNodeID, nodeID),
		body:   body,
	})
}

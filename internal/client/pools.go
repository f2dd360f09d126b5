package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/fivetwenty-io/batch-client/pkg/batch"
)

var (
	poolList = operation{name: "Pool_List", method: http.MethodGet, path: "/pools", successCode: http.StatusOK}
	poolGet  = operation{
		name: "Pool_Get", method: http.MethodGet, path: "/pools/{poolId}", successCode: http.StatusOK,
		required: []string{paramPoolID}, cacheable: true,
	}
	poolExists = operation{
		name: "Pool_Exists", method: http.MethodHead, path: "/pools/{poolId}", successCode: http.StatusOK,
		required: []string{paramPoolID},
	}
	poolAdd = operation{
		name: "Pool_Add", method: http.MethodPost, path: "/pools", successCode: http.StatusCreated,
		required: []string{paramBody},
	}
	poolDelete = operation{
		name: "Pool_Delete", method: http.MethodDelete, path: "/pools/{poolId}", successCode: http.StatusAccepted,
		required: []string{paramPoolID}, evicts: "/pools/{poolId}",
	}
	poolPatch = operation{
		name: "Pool_Patch", method: http.MethodPatch, path: "/pools/{poolId}", successCode: http.StatusOK,
		required: []string{paramPoolID, paramBody}, evicts: "/pools/{poolId}",
	}
	poolResize = operation{
		name: "Pool_Resize", method: http.MethodPost, path: "/pools/{poolId}/resize", successCode: http.StatusAccepted,
		required: []string{paramPoolID, paramBody}, evicts: "/pools/{poolId}",
	}
	poolStopResize = operation{
		name: "Pool_StopResize", method: http.MethodPost, path: "/pools/{poolId}/stopresize", successCode: http.StatusAccepted,
		required: []string{paramPoolID}, evicts: "/pools/{poolId}",
	}
	poolEnableAutoScale = operation{
		name: "Pool_EnableAutoScale", method: http.MethodPost, path: "/pools/{poolId}/enableautoscale", successCode: http.StatusOK,
		required: []string{paramPoolID, paramBody}, evicts: "/pools/{poolId}",
	}
	poolDisableAutoScale = operation{
		name: "Pool_DisableAutoScale", method: http.MethodPost, path: "/pools/{poolId}/disableautoscale", successCode: http.StatusOK,
		required: []string{paramPoolID}, evicts: "/pools/{poolId}",
	}
	poolEvaluateAutoScale = operation{
		name: "Pool_EvaluateAutoScale", method: http.MethodPost, path: "/pools/{poolId}/evaluateautoscale", successCode: http.StatusOK,
		required: []string{paramPoolID, paramBody},
	}
	poolRemoveNodes = operation{
		name: "Pool_RemoveNodes", method: http.MethodPost, path: "/pools/{poolId}/removenodes", successCode: http.StatusAccepted,
		required: []string{paramPoolID, paramBody}, evicts: "/pools/{poolId}",
	}
	poolListUsageMetrics = operation{
		name: "Pool_ListUsageMetrics", method: http.MethodGet, path: "/poolusagemetrics", successCode: http.StatusOK,
	}
)

// PoolsClient implements batch.PoolsClient.
type PoolsClient struct {
	inv *invoker
}

// NewPoolsClient creates a new pools client.
func NewPoolsClient(inv *invoker) *PoolsClient {
	return &PoolsClient{inv: inv}
}

// List implements batch.PoolsClient.List.
func (c *PoolsClient) List(ctx context.Context, opts *batch.ListOptions) *batch.Pager[batch.Pool] {
	return batch.NewPager(c.listHandler(opts))
}

// ListAsync implements batch.PoolsClient.ListAsync.
func (c *PoolsClient) ListAsync(ctx context.Context, opts *batch.ListOptions, callbacks batch.ListCallbacks[batch.Pool]) *batch.Future[[]batch.Pool] {
	return batch.ListAsync(ctx, c.listHandler(opts), callbacks)
}

func (c *PoolsClient) listHandler(opts *batch.ListOptions) batch.PagingHandler[batch.Pool] {
	return pager[batch.Pool](c.inv, poolList, call{query: opts.ToValues()})
}

// Get implements batch.PoolsClient.Get.
func (c *PoolsClient) Get(ctx context.Context, poolID string, opts *batch.GetOptions) (*batch.PoolResponse, error) {
	return invoke[batch.Pool, batch.ResponseHeaders](ctx, c.inv, poolGet, call{
		params: params(paramPoolID, poolID),
		query:  opts.ToValues(),
	})
}

// Exists implements batch.PoolsClient.Exists. A 404 reports false without an error.
func (c *PoolsClient) Exists(ctx context.Context, poolID string) (bool, error) {
	_, err := invoke[batch.NoContent, batch.ResponseHeaders](ctx, c.inv, poolExists, call{
		params: params(paramPoolID, poolID),
	})
	if err == nil {
		return true, nil
	}

	svcErr := &batch.ServiceError{}
	if errors.As(err, &svcErr) && svcErr.StatusCode == http.StatusNotFound {
		return false, nil
	}

	return false, err
}

// Add implements batch.PoolsClient.Add.
func (c *PoolsClient) Add(ctx context.Context, pool *batch.PoolAddRequest) (*batch.AckResponse, error) {
	return invoke[batch.NoContent, batch.ResponseHeaders](ctx, c.inv, poolAdd, call{body: pool})
}

// Delete implements batch.PoolsClient.Delete.
func (c *PoolsClient) Delete(ctx context.Context, poolID string) (*batch.AckResponse, error) {
	return c.ack(ctx, poolDelete, poolID, nil)
}

// Patch implements batch.PoolsClient.Patch.
func (c *PoolsClient) Patch(ctx context.Context, poolID string, patch *batch.PoolPatchRequest) (*batch.AckResponse, error) {
	return c.ack(ctx, poolPatch, poolID, patch)
}

// Resize implements batch.PoolsClient.Resize.
func (c *PoolsClient) Resize(ctx context.Context, poolID string, resize *batch.PoolResizeRequest) (*batch.AckResponse, error) {
	return c.ack(ctx, poolResize, poolID, resize)
}

// StopResize implements batch.PoolsClient.StopResize.
func (c *PoolsClient) StopResize(ctx context.Context, poolID string) (*batch.AckResponse, error) {
	return c.ack(ctx, poolStopResize, poolID, nil)
}

// EnableAutoScale implements batch.PoolsClient.EnableAutoScale.
func (c *PoolsClient) EnableAutoScale(ctx context.Context, poolID string, req *batch.PoolEnableAutoScaleRequest) (*batch.AckResponse, error) {
	return c.ack(ctx, poolEnableAutoScale, poolID, req)
}

// DisableAutoScale implements batch.PoolsClient.DisableAutoScale.
func (c *PoolsClient) DisableAutoScale(ctx context.Context, poolID string) (*batch.AckResponse, error) {
	return c.ack(ctx, poolDisableAutoScale, poolID, nil)
}

// EvaluateAutoScale implements batch.PoolsClient.EvaluateAutoScale.
func (c *PoolsClient) EvaluateAutoScale(ctx context.Context, poolID string, req *batch.PoolEvaluateAutoScaleRequest) (*batch.AutoScaleRunResponse, error) {
	return invoke[batch.AutoScaleRun, batch.ResponseHeaders](ctx, c.inv, poolEvaluateAutoScale, call{
		params: params(paramPoolID, poolID),
		body:   req,
	})
}

// RemoveNodes implements batch.PoolsClient.RemoveNodes.
func (c *PoolsClient) RemoveNodes(ctx context.Context, poolID string, req *batch.NodeRemoveRequest) (*batch.AckResponse, error) {
	return c.ack(ctx, poolRemoveNodes, poolID, req)
}

// ListUsageMetrics implements batch.PoolsClient.ListUsageMetrics.
func (c *PoolsClient) ListUsageMetrics(ctx context.Context, opts *batch.ListOptions) *batch.Pager[batch.PoolUsageMetrics] {
	return batch.NewPager(pager[batch.PoolUsageMetrics](c.inv, poolListUsageMetrics, call{query: opts.ToValues()}))
}

// ListUsageMetricsAsync implements batch.PoolsClient.ListUsageMetricsAsync.
func (c *PoolsClient) ListUsageMetricsAsync(
	ctx context.Context,
	opts *batch.ListOptions,
	callbacks batch.ListCallbacks[batch.PoolUsageMetrics],
) *batch.Future[[]batch.PoolUsageMetrics] {
	return batch.ListAsync(ctx, pager[batch.PoolUsageMetrics](c.inv, poolListUsageMetrics, call{query: opts.ToValues()}), callbacks)
}

// WaitForSteadyState implements batch.PoolsClient.WaitForSteadyState.
func (c *PoolsClient) WaitForSteadyState(ctx context.Context, poolID string, opts *batch.WaitOptions) (*batch.Pool, error) {
	return waitFor(ctx, opts, "pool "+poolID, func(ctx context.Context) (*batch.Pool, bool, error) {
		resp, err := invoke[batch.Pool, batch.ResponseHeaders](ctx, c.inv, poolGet, call{
			params: params(paramPoolID, poolID),
			fresh:  true,
		})
		if err != nil {
			return nil, false, err
		}

		return &resp.Body, resp.Body.AllocationState == batch.AllocationStateSteady, nil
	})
}

func (c *PoolsClient) ack(ctx context.Context, op operation, poolID string, body interface{}) (*batch.AckResponse, error) {
	return invoke[batch.NoContent, batch.ResponseHeaders](ctx, c.inv, op, call{
		params: params(paramPoolID, poolID),
		body:   body,
	})
}

package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/fivetwenty-io/batch-client/internal/constants"
)

// Operation types understood by BatchExecutor.
const (
	OperationGet       = "get"
	OperationDelete    = "delete"
	OperationTerminate = "terminate"
)

// Resource types understood by BatchExecutor.
const (
	ResourcePool        = "pool"
	ResourceJob         = "job"
	ResourceTask        = "task"
	ResourceCertificate = "certificate"
	ResourceNode        = "node"
)

// ResourceRef addresses one resource. Only the fields relevant to the resource type are read.
type ResourceRef struct {
	PoolID              string
	JobID               string
	TaskID              string
	NodeID              string
	ThumbprintAlgorithm string
	Thumbprint          string
}

// BatchOperation represents a single operation in a batch.
type BatchOperation struct {
	ID       string
	Type     string // "get", "delete", "terminate"
	Resource string // "pool", "job", "task", "certificate", "node"
	Target   ResourceRef
	Callback func(result *BatchResult)
}

// BatchResult represents the result of a batch operation.
type BatchResult struct {
	ID       string
	Success  bool
	Data     interface{}
	Error    error
	Duration time.Duration
}

// BatchExecutor runs independent operations with bounded concurrency.
type BatchExecutor struct {
	client      Client
	concurrency int
	timeout     time.Duration
}

// NewBatchExecutor creates a new batch executor.
func NewBatchExecutor(client Client, concurrency int) *BatchExecutor {
	if concurrency <= 0 {
		concurrency = constants.DefaultConcurrencyLimit
	}

	return &BatchExecutor{
		client:      client,
		concurrency: concurrency,
		timeout:     constants.DefaultHTTPTimeout,
	}
}

// SetTimeout sets the per-operation timeout.
func (b *BatchExecutor) SetTimeout(timeout time.Duration) {
	b.timeout = timeout
}

// Execute runs the operations and returns their results in input order.
// Individual failures are reported in the results, never as the returned error.
func (b *BatchExecutor) Execute(ctx context.Context, operations []BatchOperation) []BatchResult {
	results := make([]BatchResult, len(operations))

	workers := pool.New().WithMaxGoroutines(b.concurrency)

	for index, operation := range operations {
		workers.Go(func() {
			opCtx, cancel := context.WithTimeout(ctx, b.timeout)
			defer cancel()

			start := time.Now()
			result := b.executeOperation(opCtx, operation)
			result.Duration = time.Since(start)
			results[index] = *result

			if operation.Callback != nil {
				operation.Callback(result)
			}
		})
	}

	workers.Wait()

	return results
}

func (b *BatchExecutor) executeOperation(ctx context.Context, operation BatchOperation) *BatchResult {
	var (
		data interface{}
		err  error
	)

	target := operation.Target

	switch operation.Resource {
	case ResourcePool:
		data, err = dispatchOperation(operation.Type,
			func() (interface{}, error) { return b.client.Pools().Get(ctx, target.PoolID, nil) },
			func() (interface{}, error) { return b.client.Pools().Delete(ctx, target.PoolID) },
			nil,
		)
	case ResourceJob:
		data, err = dispatchOperation(operation.Type,
			func() (interface{}, error) { return b.client.Jobs().Get(ctx, target.JobID, nil) },
			func() (interface{}, error) { return b.client.Jobs().Delete(ctx, target.JobID) },
			func() (interface{}, error) { return b.client.Jobs().Terminate(ctx, target.JobID, nil) },
		)
	case ResourceTask:
		data, err = dispatchOperation(operation.Type,
			func() (interface{}, error) { return b.client.Tasks().Get(ctx, target.JobID, target.TaskID, nil) },
			func() (interface{}, error) { return b.client.Tasks().Delete(ctx, target.JobID, target.TaskID) },
			func() (interface{}, error) { return b.client.Tasks().Terminate(ctx, target.JobID, target.TaskID) },
		)
	case ResourceCertificate:
		data, err = dispatchOperation(operation.Type,
			func() (interface{}, error) {
				return b.client.Certificates().Get(ctx, target.ThumbprintAlgorithm, target.Thumbprint, nil)
			},
			func() (interface{}, error) {
				return b.client.Certificates().Delete(ctx, target.ThumbprintAlgorithm, target.Thumbprint)
			},
			nil,
		)
	case ResourceNode:
		data, err = dispatchOperation(operation.Type,
			func() (interface{}, error) { return b.client.ComputeNodes().Get(ctx, target.PoolID, target.NodeID, nil) },
			nil,
			nil,
		)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedResource, operation.Resource)
	}

	return &BatchResult{
		ID:      operation.ID,
		Success: err == nil,
		Data:    data,
		Error:   err,
	}
}

// dispatchOperation picks the function for opType. A nil function marks an unsupported combination.
func dispatchOperation(opType string, get, del, terminate func() (interface{}, error)) (interface{}, error) {
	var fn func() (interface{}, error)

	switch opType {
	case OperationGet:
		fn = get
	case OperationDelete:
		fn = del
	case OperationTerminate:
		fn = terminate
	}

	if fn == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedOperation, opType)
	}

	return fn()
}

// BatchBuilder helps build batch operations.
type BatchBuilder struct {
	operations []BatchOperation
}

// NewBatchBuilder creates a new batch builder.
func NewBatchBuilder() *BatchBuilder {
	return &BatchBuilder{}
}

// AddGetPool adds a pool read.
func (b *BatchBuilder) AddGetPool(id, poolID string) *BatchBuilder {
	return b.add(id, OperationGet, ResourcePool, ResourceRef{PoolID: poolID})
}

// AddDeletePool adds a pool deletion.
func (b *BatchBuilder) AddDeletePool(id, poolID string) *BatchBuilder {
	return b.add(id, OperationDelete, ResourcePool, ResourceRef{PoolID: poolID})
}

// AddGetJob adds a job read.
func (b *BatchBuilder) AddGetJob(id, jobID string) *BatchBuilder {
	return b.add(id, OperationGet, ResourceJob, ResourceRef{JobID: jobID})
}

// AddDeleteJob adds a job deletion.
func (b *BatchBuilder) AddDeleteJob(id, jobID string) *BatchBuilder {
	return b.add(id, OperationDelete, ResourceJob, ResourceRef{JobID: jobID})
}

// AddTerminateJob adds a job termination.
func (b *BatchBuilder) AddTerminateJob(id, jobID string) *BatchBuilder {
	return b.add(id, OperationTerminate, ResourceJob, ResourceRef{JobID: jobID})
}

// AddGetTask adds a task read.
func (b *BatchBuilder) AddGetTask(id, jobID, taskID string) *BatchBuilder {
	return b.add(id, OperationGet, ResourceTask, ResourceRef{JobID: jobID, TaskID: taskID})
}

// AddDeleteTask adds a task deletion.
func (b *BatchBuilder) AddDeleteTask(id, jobID, taskID string) *BatchBuilder {
	return b.add(id, OperationDelete, ResourceTask, ResourceRef{JobID: jobID, TaskID: taskID})
}

// AddTerminateTask adds a task termination.
func (b *BatchBuilder) AddTerminateTask(id, jobID, taskID string) *BatchBuilder {
	return b.add(id, OperationTerminate, ResourceTask, ResourceRef{JobID: jobID, TaskID: taskID})
}

// AddDeleteCertificate adds a certificate deletion.
func (b *BatchBuilder) AddDeleteCertificate(id, algorithm, thumbprint string) *BatchBuilder {
	return b.add(id, OperationDelete, ResourceCertificate, ResourceRef{ThumbprintAlgorithm: algorithm, Thumbprint: thumbprint})
}

// AddGetNode adds a compute node read.
func (b *BatchBuilder) AddGetNode(id, poolID, nodeID string) *BatchBuilder {
	return b.add(id, OperationGet, ResourceNode, ResourceRef{PoolID: poolID, NodeID: nodeID})
}

// AddOperation adds a custom operation.
func (b *BatchBuilder) AddOperation(operation BatchOperation) *BatchBuilder {
	b.operations = append(b.operations, operation)

	return b
}

func (b *BatchBuilder) add(id, opType, resource string, target ResourceRef) *BatchBuilder {
	return b.AddOperation(BatchOperation{ID: id, Type: opType, Resource: resource, Target: target})
}

// Build returns the operations.
func (b *BatchBuilder) Build() []BatchOperation {
	return b.operations
}

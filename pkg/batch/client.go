package batch

import (
	"context"
	"time"
)

// Response aliases for the operation groups.
type (
	PoolResponse                   = Response[Pool, ResponseHeaders]
	JobResponse                    = Response[Job, ResponseHeaders]
	TaskResponse                   = Response[Task, ResponseHeaders]
	CertificateResponse            = Response[Certificate, ResponseHeaders]
	ComputeNodeResponse            = Response[ComputeNode, ResponseHeaders]
	AutoScaleRunResponse           = Response[AutoScaleRun, ResponseHeaders]
	TaskCountsResponse             = Response[TaskCountsResult, ResponseHeaders]
	TaskAddCollectionResponse      = Response[TaskAddCollectionResult, ResponseHeaders]
	SubtaskListResponse            = Response[SubtaskList, ResponseHeaders]
	RemoteLoginSettingsResponse    = Response[RemoteLoginSettings, ResponseHeaders]
	UploadBatchServiceLogsResponse = Response[UploadBatchServiceLogsResult, ResponseHeaders]
	FileContentResponse            = Response[[]byte, FileHeaders]
	FilePropertiesResponse         = Response[NoContent, FileHeaders]
)

// WaitOptions control state polling.
type WaitOptions struct {
	// Interval is the first wait between polls. It grows exponentially up to MaxInterval.
	Interval time.Duration
	// MaxInterval caps the wait between polls.
	MaxInterval time.Duration
	// Timeout bounds the total wait.
	Timeout time.Duration
}

// PoolsClient defines operations for pools.
type PoolsClient interface {
	List(ctx context.Context, opts *ListOptions) *Pager[Pool]
	ListAsync(ctx context.Context, opts *ListOptions, callbacks ListCallbacks[Pool]) *Future[[]Pool]
	Get(ctx context.Context, poolID string, opts *GetOptions) (*PoolResponse, error)
	Exists(ctx context.Context, poolID string) (bool, error)
	Add(ctx context.Context, pool *PoolAddRequest) (*AckResponse, error)
	Delete(ctx context.Context, poolID string) (*AckResponse, error)
	Patch(ctx context.Context, poolID string, patch *PoolPatchRequest) (*AckResponse, error)
	Resize(ctx context.Context, poolID string, resize *PoolResizeRequest) (*AckResponse, error)
	StopResize(ctx context.Context, poolID string) (*AckResponse, error)
	EnableAutoScale(ctx context.Context, poolID string, req *PoolEnableAutoScaleRequest) (*AckResponse, error)
	DisableAutoScale(ctx context.Context, poolID string) (*AckResponse, error)
	EvaluateAutoScale(ctx context.Context, poolID string, req *PoolEvaluateAutoScaleRequest) (*AutoScaleRunResponse, error)
	RemoveNodes(ctx context.Context, poolID string, req *NodeRemoveRequest) (*AckResponse, error)
	ListUsageMetrics(ctx context.Context, opts *ListOptions) *Pager[PoolUsageMetrics]
	ListUsageMetricsAsync(ctx context.Context, opts *ListOptions, callbacks ListCallbacks[PoolUsageMetrics]) *Future[[]PoolUsageMetrics]
	WaitForSteadyState(ctx context.Context, poolID string, opts *WaitOptions) (*Pool, error)
}

// JobsClient defines operations for jobs.
type JobsClient interface {
	List(ctx context.Context, opts *ListOptions) *Pager[Job]
	ListAsync(ctx context.Context, opts *ListOptions, callbacks ListCallbacks[Job]) *Future[[]Job]
	Get(ctx context.Context, jobID string, opts *GetOptions) (*JobResponse, error)
	Add(ctx context.Context, job *JobAddRequest) (*AckResponse, error)
	Delete(ctx context.Context, jobID string) (*AckResponse, error)
	Patch(ctx context.Context, jobID string, patch *JobPatchRequest) (*AckResponse, error)
	Disable(ctx context.Context, jobID string, req *JobDisableRequest) (*AckResponse, error)
	Enable(ctx context.Context, jobID string) (*AckResponse, error)
	Terminate(ctx context.Context, jobID string, req *JobTerminateRequest) (*AckResponse, error)
	GetTaskCounts(ctx context.Context, jobID string) (*TaskCountsResponse, error)
}

// TasksClient defines operations for the tasks of a job.
type TasksClient interface {
	List(ctx context.Context, jobID string, opts *ListOptions) *Pager[Task]
	ListAsync(ctx context.Context, jobID string, opts *ListOptions, callbacks ListCallbacks[Task]) *Future[[]Task]
	Get(ctx context.Context, jobID, taskID string, opts *GetOptions) (*TaskResponse, error)
	Add(ctx context.Context, jobID string, task *TaskAddRequest) (*AckResponse, error)
	AddCollection(ctx context.Context, jobID string, tasks *TaskAddCollectionRequest) (*TaskAddCollectionResponse, error)
	Delete(ctx context.Context, jobID, taskID string) (*AckResponse, error)
	Update(ctx context.Context, jobID, taskID string, update *TaskUpdateRequest) (*AckResponse, error)
	Terminate(ctx context.Context, jobID, taskID string) (*AckResponse, error)
	Reactivate(ctx context.Context, jobID, taskID string) (*AckResponse, error)
	ListSubtasks(ctx context.Context, jobID, taskID string) (*SubtaskListResponse, error)
	WaitForCompletion(ctx context.Context, jobID, taskID string, opts *WaitOptions) (*Task, error)
}

// CertificatesClient defines operations for account certificates.
type CertificatesClient interface {
	List(ctx context.Context, opts *ListOptions) *Pager[Certificate]
	ListAsync(ctx context.Context, opts *ListOptions, callbacks ListCallbacks[Certificate]) *Future[[]Certificate]
	Get(ctx context.Context, thumbprintAlgorithm, thumbprint string, opts *GetOptions) (*CertificateResponse, error)
	Add(ctx context.Context, certificate *CertificateAddRequest) (*AckResponse, error)
	Delete(ctx context.Context, thumbprintAlgorithm, thumbprint string) (*AckResponse, error)
	CancelDeletion(ctx context.Context, thumbprintAlgorithm, thumbprint string) (*AckResponse, error)
}

// ComputeNodesClient defines operations for the nodes of a pool.
type ComputeNodesClient interface {
	List(ctx context.Context, poolID string, opts *ListOptions) *Pager[ComputeNode]
	ListAsync(ctx context.Context, poolID string, opts *ListOptions, callbacks ListCallbacks[ComputeNode]) *Future[[]ComputeNode]
	Get(ctx context.Context, poolID, nodeID string, opts *GetOptions) (*ComputeNodeResponse, error)
	Reboot(ctx context.Context, poolID, nodeID string, req *NodeRebootRequest) (*AckResponse, error)
	Reimage(ctx context.Context, poolID, nodeID string, req *NodeReimageRequest) (*AckResponse, error)
	DisableScheduling(ctx context.Context, poolID, nodeID string, req *NodeDisableSchedulingRequest) (*AckResponse, error)
	EnableScheduling(ctx context.Context, poolID, nodeID string) (*AckResponse, error)
	AddUser(ctx context.Context, poolID, nodeID string, user *NodeUserAddRequest) (*AckResponse, error)
	DeleteUser(ctx context.Context, poolID, nodeID, userName string) (*AckResponse, error)
	GetRemoteLoginSettings(ctx context.Context, poolID, nodeID string) (*RemoteLoginSettingsResponse, error)
	UploadBatchServiceLogs(ctx context.Context, poolID, nodeID string, req *UploadBatchServiceLogsRequest) (*UploadBatchServiceLogsResponse, error)
}

// FilesClient defines operations for task and node files.
type FilesClient interface {
	ListFromTask(ctx context.Context, jobID, taskID string, opts *FileListOptions) *Pager[NodeFile]
	ListFromTaskAsync(ctx context.Context, jobID, taskID string, opts *FileListOptions, callbacks ListCallbacks[NodeFile]) *Future[[]NodeFile]
	ListFromComputeNode(ctx context.Context, poolID, nodeID string, opts *FileListOptions) *Pager[NodeFile]
	ListFromComputeNodeAsync(ctx context.Context, poolID, nodeID string, opts *FileListOptions, callbacks ListCallbacks[NodeFile]) *Future[[]NodeFile]
	GetFromTask(ctx context.Context, jobID, taskID, filePath string) (*FileContentResponse, error)
	GetFromComputeNode(ctx context.Context, poolID, nodeID, filePath string) (*FileContentResponse, error)
	GetPropertiesFromTask(ctx context.Context, jobID, taskID, filePath string) (*FilePropertiesResponse, error)
	GetPropertiesFromComputeNode(ctx context.Context, poolID, nodeID, filePath string) (*FilePropertiesResponse, error)
	DeleteFromTask(ctx context.Context, jobID, taskID, filePath string) (*AckResponse, error)
	DeleteFromComputeNode(ctx context.Context, poolID, nodeID, filePath string) (*AckResponse, error)
}

// Client provides access to every operation group of a Batch account.
type Client interface {
	Pools() PoolsClient
	Jobs() JobsClient
	Tasks() TasksClient
	Certificates() CertificatesClient
	ComputeNodes() ComputeNodesClient
	Files() FilesClient
}

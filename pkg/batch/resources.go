package batch

import (
	"time"
)

// Pool allocation and state values.
const (
	PoolStateActive   = "active"
	PoolStateDeleting = "deleting"

	AllocationStateSteady   = "steady"
	AllocationStateResizing = "resizing"
	AllocationStateStopping = "stopping"
)

// Job, task and node state values.
const (
	JobStateActive      = "active"
	JobStateDisabled    = "disabled"
	JobStateTerminating = "terminating"
	JobStateCompleted   = "completed"

	TaskStateActive    = "active"
	TaskStatePreparing = "preparing"
	TaskStateRunning   = "running"
	TaskStateCompleted = "completed"

	NodeStateIdle      = "idle"
	NodeStateRunning   = "running"
	NodeStateRebooting = "rebooting"
	NodeStateOffline   = "offline"
)

// ImageReference identifies a marketplace or gallery image.
type ImageReference struct {
	Publisher            string `json:"publisher,omitempty"            yaml:"publisher,omitempty"`
	Offer                string `json:"offer,omitempty"                yaml:"offer,omitempty"`
	Sku                  string `json:"sku,omitempty"                  yaml:"sku,omitempty"`
	Version              string `json:"version,omitempty"              yaml:"version,omitempty"`
	VirtualMachineImageID string `json:"virtualMachineImageId,omitempty" yaml:"virtualMachineImageId,omitempty"`
}

// VirtualMachineConfiguration describes the VMs of a pool.
type VirtualMachineConfiguration struct {
	ImageReference ImageReference `json:"imageReference" yaml:"imageReference"`
	NodeAgentSKUID string         `json:"nodeAgentSKUId" yaml:"nodeAgentSKUId"`
}

// MetadataItem is a name/value pair attached to pools, jobs and tasks.
type MetadataItem struct {
	Name  string `json:"name"  yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// EnvironmentSetting is an environment variable for a task.
type EnvironmentSetting struct {
	Name  string `json:"name"            yaml:"name"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// ResourceFile is a file downloaded to a node before a task runs.
type ResourceFile struct {
	HTTPURL   string `json:"httpUrl,omitempty"   yaml:"httpUrl,omitempty"`
	FilePath  string `json:"filePath,omitempty"  yaml:"filePath,omitempty"`
	FileMode  string `json:"fileMode,omitempty"  yaml:"fileMode,omitempty"`
	BlobPrefix string `json:"blobPrefix,omitempty" yaml:"blobPrefix,omitempty"`
}

// StartTask runs on each node as it joins a pool.
type StartTask struct {
	CommandLine    string               `json:"commandLine"              yaml:"commandLine"`
	ResourceFiles  []ResourceFile       `json:"resourceFiles,omitempty"  yaml:"resourceFiles,omitempty"`
	Environment    []EnvironmentSetting `json:"environmentSettings,omitempty" yaml:"environmentSettings,omitempty"`
	MaxTaskRetries int                  `json:"maxTaskRetryCount,omitempty" yaml:"maxTaskRetryCount,omitempty"`
	WaitForSuccess bool                 `json:"waitForSuccess,omitempty" yaml:"waitForSuccess,omitempty"`
}

// CertificateReference attaches a certificate to a pool.
type CertificateReference struct {
	Thumbprint          string   `json:"thumbprint"                    yaml:"thumbprint"`
	ThumbprintAlgorithm string   `json:"thumbprintAlgorithm"           yaml:"thumbprintAlgorithm"`
	StoreLocation       string   `json:"storeLocation,omitempty"       yaml:"storeLocation,omitempty"`
	StoreName           string   `json:"storeName,omitempty"           yaml:"storeName,omitempty"`
	Visibility          []string `json:"visibility,omitempty"          yaml:"visibility,omitempty"`
}

// ResizeError describes why the last resize failed.
type ResizeError struct {
	Code    string        `json:"code,omitempty"    yaml:"code,omitempty"`
	Message string        `json:"message,omitempty" yaml:"message,omitempty"`
	Values  []ErrorDetail `json:"values,omitempty"  yaml:"values,omitempty"`
}

// AutoScaleRun is the result of an autoscale formula evaluation.
type AutoScaleRun struct {
	Timestamp time.Time    `json:"timestamp"         yaml:"timestamp"`
	Results   string       `json:"results,omitempty" yaml:"results,omitempty"`
	Error     *ResizeError `json:"error,omitempty"   yaml:"error,omitempty"`
}

// Pool is a Batch pool.
type Pool struct {
	ID                          string                       `json:"id"                                    yaml:"id"`
	DisplayName                 string                       `json:"displayName,omitempty"                 yaml:"displayName,omitempty"`
	URL                         string                       `json:"url,omitempty"                         yaml:"url,omitempty"`
	ETag                        string                       `json:"eTag,omitempty"                        yaml:"eTag,omitempty"`
	LastModified                *time.Time                   `json:"lastModified,omitempty"                yaml:"lastModified,omitempty"`
	CreationTime                *time.Time                   `json:"creationTime,omitempty"                yaml:"creationTime,omitempty"`
	State                       string                       `json:"state,omitempty"                       yaml:"state,omitempty"`
	AllocationState             string                       `json:"allocationState,omitempty"             yaml:"allocationState,omitempty"`
	VMSize                      string                       `json:"vmSize,omitempty"                      yaml:"vmSize,omitempty"`
	VirtualMachineConfiguration *VirtualMachineConfiguration `json:"virtualMachineConfiguration,omitempty" yaml:"virtualMachineConfiguration,omitempty"`
	ResizeTimeout               string                       `json:"resizeTimeout,omitempty"               yaml:"resizeTimeout,omitempty"`
	ResizeErrors                []ResizeError                `json:"resizeErrors,omitempty"                yaml:"resizeErrors,omitempty"`
	CurrentDedicatedNodes       int                          `json:"currentDedicatedNodes,omitempty"       yaml:"currentDedicatedNodes,omitempty"`
	CurrentLowPriorityNodes     int                          `json:"currentLowPriorityNodes,omitempty"     yaml:"currentLowPriorityNodes,omitempty"`
	TargetDedicatedNodes        int                          `json:"targetDedicatedNodes,omitempty"        yaml:"targetDedicatedNodes,omitempty"`
	TargetLowPriorityNodes      int                          `json:"targetLowPriorityNodes,omitempty"      yaml:"targetLowPriorityNodes,omitempty"`
	EnableAutoScale             bool                         `json:"enableAutoScale,omitempty"             yaml:"enableAutoScale,omitempty"`
	AutoScaleFormula            string                       `json:"autoScaleFormula,omitempty"            yaml:"autoScaleFormula,omitempty"`
	AutoScaleRun                *AutoScaleRun                `json:"autoScaleRun,omitempty"                yaml:"autoScaleRun,omitempty"`
	TaskSlotsPerNode            int                          `json:"taskSlotsPerNode,omitempty"            yaml:"taskSlotsPerNode,omitempty"`
	StartTask                   *StartTask                   `json:"startTask,omitempty"                   yaml:"startTask,omitempty"`
	CertificateReferences       []CertificateReference       `json:"certificateReferences,omitempty"       yaml:"certificateReferences,omitempty"`
	Metadata                    []MetadataItem               `json:"metadata,omitempty"                    yaml:"metadata,omitempty"`
}

// PoolAddRequest is the body of a pool add call.
type PoolAddRequest struct {
	ID                          string                       `json:"id"`
	DisplayName                 string                       `json:"displayName,omitempty"`
	VMSize                      string                       `json:"vmSize"`
	VirtualMachineConfiguration *VirtualMachineConfiguration `json:"virtualMachineConfiguration,omitempty"`
	TargetDedicatedNodes        int                          `json:"targetDedicatedNodes,omitempty"`
	TargetLowPriorityNodes      int                          `json:"targetLowPriorityNodes,omitempty"`
	EnableAutoScale             bool                         `json:"enableAutoScale,omitempty"`
	AutoScaleFormula            string                       `json:"autoScaleFormula,omitempty"`
	TaskSlotsPerNode            int                          `json:"taskSlotsPerNode,omitempty"`
	StartTask                   *StartTask                   `json:"startTask,omitempty"`
	CertificateReferences       []CertificateReference       `json:"certificateReferences,omitempty"`
	Metadata                    []MetadataItem               `json:"metadata,omitempty"`
}

// PoolPatchRequest updates selected pool properties.
type PoolPatchRequest struct {
	StartTask             *StartTask             `json:"startTask,omitempty"`
	CertificateReferences []CertificateReference `json:"certificateReferences,omitempty"`
	Metadata              []MetadataItem         `json:"metadata,omitempty"`
}

// PoolResizeRequest changes the target node counts.
type PoolResizeRequest struct {
	TargetDedicatedNodes   *int   `json:"targetDedicatedNodes,omitempty"`
	TargetLowPriorityNodes *int   `json:"targetLowPriorityNodes,omitempty"`
	ResizeTimeout          string `json:"resizeTimeout,omitempty"`
	NodeDeallocationOption string `json:"nodeDeallocationOption,omitempty"`
}

// PoolEnableAutoScaleRequest turns autoscale on.
type PoolEnableAutoScaleRequest struct {
	AutoScaleFormula            string `json:"autoScaleFormula,omitempty"`
	AutoScaleEvaluationInterval string `json:"autoScaleEvaluationInterval,omitempty"`
}

// PoolEvaluateAutoScaleRequest evaluates a formula without applying it.
type PoolEvaluateAutoScaleRequest struct {
	AutoScaleFormula string `json:"autoScaleFormula"`
}

// NodeRemoveRequest removes specific nodes from a pool.
type NodeRemoveRequest struct {
	NodeList               []string `json:"nodeList"`
	ResizeTimeout          string   `json:"resizeTimeout,omitempty"`
	NodeDeallocationOption string   `json:"nodeDeallocationOption,omitempty"`
}

// PoolUsageMetrics reports usage of a pool over an aggregation interval.
type PoolUsageMetrics struct {
	PoolID         string    `json:"poolId"         yaml:"poolId"`
	StartTime      time.Time `json:"startTime"      yaml:"startTime"`
	EndTime        time.Time `json:"endTime"        yaml:"endTime"`
	VMSize         string    `json:"vmSize"         yaml:"vmSize"`
	TotalCoreHours float64   `json:"totalCoreHours" yaml:"totalCoreHours"`
}

// PoolInformation binds a job to a pool.
type PoolInformation struct {
	PoolID string `json:"poolId,omitempty" yaml:"poolId,omitempty"`
}

// JobConstraints bounds the execution of a job.
type JobConstraints struct {
	MaxWallClockTime string `json:"maxWallClockTime,omitempty" yaml:"maxWallClockTime,omitempty"`
	MaxTaskRetries   int    `json:"maxTaskRetryCount,omitempty" yaml:"maxTaskRetryCount,omitempty"`
}

// JobExecutionInfo reports the execution state of a job.
type JobExecutionInfo struct {
	StartTime     *time.Time `json:"startTime,omitempty"     yaml:"startTime,omitempty"`
	EndTime       *time.Time `json:"endTime,omitempty"       yaml:"endTime,omitempty"`
	PoolID        string     `json:"poolId,omitempty"        yaml:"poolId,omitempty"`
	TerminateReason string   `json:"terminateReason,omitempty" yaml:"terminateReason,omitempty"`
}

// Job is a Batch job.
type Job struct {
	ID                 string            `json:"id"                           yaml:"id"`
	DisplayName        string            `json:"displayName,omitempty"        yaml:"displayName,omitempty"`
	URL                string            `json:"url,omitempty"                yaml:"url,omitempty"`
	ETag               string            `json:"eTag,omitempty"               yaml:"eTag,omitempty"`
	LastModified       *time.Time        `json:"lastModified,omitempty"       yaml:"lastModified,omitempty"`
	CreationTime       *time.Time        `json:"creationTime,omitempty"       yaml:"creationTime,omitempty"`
	State              string            `json:"state,omitempty"              yaml:"state,omitempty"`
	Priority           int               `json:"priority,omitempty"           yaml:"priority,omitempty"`
	Constraints        *JobConstraints   `json:"constraints,omitempty"        yaml:"constraints,omitempty"`
	PoolInfo           PoolInformation   `json:"poolInfo"                     yaml:"poolInfo"`
	OnAllTasksComplete string            `json:"onAllTasksComplete,omitempty" yaml:"onAllTasksComplete,omitempty"`
	ExecutionInfo      *JobExecutionInfo `json:"executionInfo,omitempty"      yaml:"executionInfo,omitempty"`
	Metadata           []MetadataItem    `json:"metadata,omitempty"           yaml:"metadata,omitempty"`
}

// JobAddRequest is the body of a job add call.
type JobAddRequest struct {
	ID                   string          `json:"id"`
	DisplayName          string          `json:"displayName,omitempty"`
	Priority             int             `json:"priority,omitempty"`
	Constraints          *JobConstraints `json:"constraints,omitempty"`
	PoolInfo             PoolInformation `json:"poolInfo"`
	OnAllTasksComplete   string          `json:"onAllTasksComplete,omitempty"`
	UsesTaskDependencies bool            `json:"usesTaskDependencies,omitempty"`
	Metadata             []MetadataItem  `json:"metadata,omitempty"`
}

// JobPatchRequest updates selected job properties.
type JobPatchRequest struct {
	Priority           *int             `json:"priority,omitempty"`
	Constraints        *JobConstraints  `json:"constraints,omitempty"`
	PoolInfo           *PoolInformation `json:"poolInfo,omitempty"`
	OnAllTasksComplete string           `json:"onAllTasksComplete,omitempty"`
	Metadata           []MetadataItem   `json:"metadata,omitempty"`
}

// JobDisableRequest chooses what happens to running tasks when a job is disabled.
type JobDisableRequest struct {
	DisableTasks string `json:"disableTasks"`
}

// JobTerminateRequest carries the terminate reason.
type JobTerminateRequest struct {
	TerminateReason string `json:"terminateReason,omitempty"`
}

// TaskCounts summarises the tasks of a job by state.
type TaskCounts struct {
	Active    int `json:"active"    yaml:"active"`
	Running   int `json:"running"   yaml:"running"`
	Completed int `json:"completed" yaml:"completed"`
	Succeeded int `json:"succeeded" yaml:"succeeded"`
	Failed    int `json:"failed"    yaml:"failed"`
}

// TaskCountsResult is returned by the job task counts operation.
type TaskCountsResult struct {
	TaskCounts     TaskCounts `json:"taskCounts"     yaml:"taskCounts"`
	TaskSlotCounts TaskCounts `json:"taskSlotCounts" yaml:"taskSlotCounts"`
}

// TaskConstraints bounds the execution of a task.
type TaskConstraints struct {
	MaxWallClockTime  string `json:"maxWallClockTime,omitempty"  yaml:"maxWallClockTime,omitempty"`
	RetentionTime     string `json:"retentionTime,omitempty"     yaml:"retentionTime,omitempty"`
	MaxTaskRetryCount int    `json:"maxTaskRetryCount,omitempty" yaml:"maxTaskRetryCount,omitempty"`
}

// TaskFailureInfo describes why a task failed.
type TaskFailureInfo struct {
	Category string        `json:"category"          yaml:"category"`
	Code     string        `json:"code,omitempty"    yaml:"code,omitempty"`
	Message  string        `json:"message,omitempty" yaml:"message,omitempty"`
	Details  []ErrorDetail `json:"details,omitempty" yaml:"details,omitempty"`
}

// TaskExecutionInfo reports the execution state of a task.
type TaskExecutionInfo struct {
	StartTime   *time.Time       `json:"startTime,omitempty"   yaml:"startTime,omitempty"`
	EndTime     *time.Time       `json:"endTime,omitempty"     yaml:"endTime,omitempty"`
	ExitCode    *int             `json:"exitCode,omitempty"    yaml:"exitCode,omitempty"`
	RetryCount  int              `json:"retryCount"            yaml:"retryCount"`
	Result      string           `json:"result,omitempty"      yaml:"result,omitempty"`
	FailureInfo *TaskFailureInfo `json:"failureInfo,omitempty" yaml:"failureInfo,omitempty"`
}

// NodeInfo identifies the node a task ran on.
type NodeInfo struct {
	PoolID  string `json:"poolId,omitempty"  yaml:"poolId,omitempty"`
	NodeID  string `json:"nodeId,omitempty"  yaml:"nodeId,omitempty"`
	NodeURL string `json:"nodeUrl,omitempty" yaml:"nodeUrl,omitempty"`
}

// Task is a Batch task.
type Task struct {
	ID            string               `json:"id"                            yaml:"id"`
	DisplayName   string               `json:"displayName,omitempty"         yaml:"displayName,omitempty"`
	URL           string               `json:"url,omitempty"                 yaml:"url,omitempty"`
	ETag          string               `json:"eTag,omitempty"                yaml:"eTag,omitempty"`
	CreationTime  *time.Time           `json:"creationTime,omitempty"        yaml:"creationTime,omitempty"`
	State         string               `json:"state,omitempty"               yaml:"state,omitempty"`
	CommandLine   string               `json:"commandLine"                   yaml:"commandLine"`
	ResourceFiles []ResourceFile       `json:"resourceFiles,omitempty"       yaml:"resourceFiles,omitempty"`
	Environment   []EnvironmentSetting `json:"environmentSettings,omitempty" yaml:"environmentSettings,omitempty"`
	Constraints   *TaskConstraints     `json:"constraints,omitempty"         yaml:"constraints,omitempty"`
	ExecutionInfo *TaskExecutionInfo   `json:"executionInfo,omitempty"       yaml:"executionInfo,omitempty"`
	NodeInfo      *NodeInfo            `json:"nodeInfo,omitempty"            yaml:"nodeInfo,omitempty"`
}

// TaskAddRequest is the body of a task add call.
type TaskAddRequest struct {
	ID            string               `json:"id"`
	DisplayName   string               `json:"displayName,omitempty"`
	CommandLine   string               `json:"commandLine"`
	ResourceFiles []ResourceFile       `json:"resourceFiles,omitempty"`
	Environment   []EnvironmentSetting `json:"environmentSettings,omitempty"`
	Constraints   *TaskConstraints     `json:"constraints,omitempty"`
	RequiredSlots int                  `json:"requiredSlots,omitempty"`
}

// TaskAddCollectionRequest adds up to 100 tasks in one call.
type TaskAddCollectionRequest struct {
	Value []TaskAddRequest `json:"value"`
}

// TaskAddResult reports the outcome of one task in a collection add.
type TaskAddResult struct {
	Status  string      `json:"status"            yaml:"status"`
	TaskID  string      `json:"taskId"            yaml:"taskId"`
	ETag    string      `json:"eTag,omitempty"    yaml:"eTag,omitempty"`
	Error   *BatchError `json:"error,omitempty"   yaml:"error,omitempty"`
}

// TaskAddCollectionResult is returned by the task collection add operation.
type TaskAddCollectionResult struct {
	Value []TaskAddResult `json:"value" yaml:"value"`
}

// TaskUpdateRequest updates the constraints of a task.
type TaskUpdateRequest struct {
	Constraints *TaskConstraints `json:"constraints,omitempty"`
}

// Subtask is one instance of a multi-instance task.
type Subtask struct {
	ID        int        `json:"id"                  yaml:"id"`
	State     string     `json:"state,omitempty"     yaml:"state,omitempty"`
	StartTime *time.Time `json:"startTime,omitempty" yaml:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"   yaml:"endTime,omitempty"`
	ExitCode  *int       `json:"exitCode,omitempty"  yaml:"exitCode,omitempty"`
	NodeInfo  *NodeInfo  `json:"nodeInfo,omitempty"  yaml:"nodeInfo,omitempty"`
}

// SubtaskList is returned by the list subtasks operation. It is not paged.
type SubtaskList struct {
	Value []Subtask `json:"value" yaml:"value"`
}

// Certificate is a certificate installed on the account.
type Certificate struct {
	Thumbprint             string      `json:"thumbprint"                       yaml:"thumbprint"`
	ThumbprintAlgorithm    string      `json:"thumbprintAlgorithm"              yaml:"thumbprintAlgorithm"`
	URL                    string      `json:"url,omitempty"                    yaml:"url,omitempty"`
	State                  string      `json:"state,omitempty"                  yaml:"state,omitempty"`
	StateTransitionTime    *time.Time  `json:"stateTransitionTime,omitempty"    yaml:"stateTransitionTime,omitempty"`
	PublicData             string      `json:"publicData,omitempty"             yaml:"publicData,omitempty"`
	DeleteCertificateError *BatchError `json:"deleteCertificateError,omitempty" yaml:"deleteCertificateError,omitempty"`
}

// CertificateAddRequest is the body of a certificate add call.
type CertificateAddRequest struct {
	Thumbprint          string `json:"thumbprint"`
	ThumbprintAlgorithm string `json:"thumbprintAlgorithm"`
	Data                string `json:"data"`
	CertificateFormat   string `json:"certificateFormat,omitempty"`
	Password            string `json:"password,omitempty"`
}

// ComputeNodeError is an error reported by a compute node.
type ComputeNodeError struct {
	Code    string        `json:"code,omitempty"             yaml:"code,omitempty"`
	Message string        `json:"message,omitempty"          yaml:"message,omitempty"`
	Details []ErrorDetail `json:"errorDetails,omitempty"     yaml:"errorDetails,omitempty"`
}

// ComputeNode is a VM in a pool.
type ComputeNode struct {
	ID                    string             `json:"id"                              yaml:"id"`
	URL                   string             `json:"url,omitempty"                   yaml:"url,omitempty"`
	State                 string             `json:"state,omitempty"                 yaml:"state,omitempty"`
	SchedulingState       string             `json:"schedulingState,omitempty"       yaml:"schedulingState,omitempty"`
	StateTransitionTime   *time.Time         `json:"stateTransitionTime,omitempty"   yaml:"stateTransitionTime,omitempty"`
	AllocationTime        *time.Time         `json:"allocationTime,omitempty"        yaml:"allocationTime,omitempty"`
	IPAddress             string             `json:"ipAddress,omitempty"             yaml:"ipAddress,omitempty"`
	VMSize                string             `json:"vmSize,omitempty"                yaml:"vmSize,omitempty"`
	IsDedicated           bool               `json:"isDedicated,omitempty"           yaml:"isDedicated,omitempty"`
	RunningTasksCount     int                `json:"runningTasksCount,omitempty"     yaml:"runningTasksCount,omitempty"`
	TotalTasksRun         int                `json:"totalTasksRun,omitempty"         yaml:"totalTasksRun,omitempty"`
	TotalTasksSucceeded   int                `json:"totalTasksSucceeded,omitempty"   yaml:"totalTasksSucceeded,omitempty"`
	Errors                []ComputeNodeError `json:"errors,omitempty"                yaml:"errors,omitempty"`
}

// NodeRebootRequest chooses what happens to running tasks on reboot.
type NodeRebootRequest struct {
	NodeRebootOption string `json:"nodeRebootOption,omitempty"`
}

// NodeReimageRequest chooses what happens to running tasks on reimage.
type NodeReimageRequest struct {
	NodeReimageOption string `json:"nodeReimageOption,omitempty"`
}

// NodeDisableSchedulingRequest chooses what happens to running tasks.
type NodeDisableSchedulingRequest struct {
	NodeDisableSchedulingOption string `json:"nodeDisableSchedulingOption,omitempty"`
}

// NodeUserAddRequest creates a user account on a node.
type NodeUserAddRequest struct {
	Name         string     `json:"name"`
	IsAdmin      bool       `json:"isAdmin,omitempty"`
	ExpiryTime   *time.Time `json:"expiryTime,omitempty"`
	Password     string     `json:"password,omitempty"`
	SSHPublicKey string     `json:"sshPublicKey,omitempty"`
}

// RemoteLoginSettings locates the SSH/RDP endpoint of a node.
type RemoteLoginSettings struct {
	RemoteLoginIPAddress string `json:"remoteLoginIPAddress" yaml:"remoteLoginIPAddress"`
	RemoteLoginPort      int    `json:"remoteLoginPort"      yaml:"remoteLoginPort"`
}

// UploadBatchServiceLogsRequest uploads node agent logs to a container.
type UploadBatchServiceLogsRequest struct {
	ContainerURL string     `json:"containerUrl"`
	StartTime    time.Time  `json:"startTime"`
	EndTime      *time.Time `json:"endTime,omitempty"`
}

// UploadBatchServiceLogsResult reports the upload destination.
type UploadBatchServiceLogsResult struct {
	VirtualDirectoryName string `json:"virtualDirectoryName" yaml:"virtualDirectoryName"`
	NumberOfFilesUploaded int   `json:"numberOfFilesUploaded" yaml:"numberOfFilesUploaded"`
}

// FileProperties are the properties of a node file.
type FileProperties struct {
	CreationTime  *time.Time `json:"creationTime,omitempty" yaml:"creationTime,omitempty"`
	LastModified  time.Time  `json:"lastModified"           yaml:"lastModified"`
	ContentLength int64      `json:"contentLength"          yaml:"contentLength"`
	ContentType   string     `json:"contentType,omitempty"  yaml:"contentType,omitempty"`
	FileMode      string     `json:"fileMode,omitempty"     yaml:"fileMode,omitempty"`
}

// NodeFile is a file or directory on a compute node.
type NodeFile struct {
	Name        string          `json:"name"                 yaml:"name"`
	URL         string          `json:"url,omitempty"        yaml:"url,omitempty"`
	IsDirectory bool            `json:"isDirectory"          yaml:"isDirectory"`
	Properties  *FileProperties `json:"properties,omitempty" yaml:"properties,omitempty"`
}

//go:build integration

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/fivetwenty-io/batch-client/pkg/batch"
	"github.com/fivetwenty-io/batch-client/pkg/batchclient"
)

// JobWorkflowSuite runs a job end to end on a live pool.
type JobWorkflowSuite struct {
	suite.Suite

	config *TestConfig
	client batchclient.Client
	jobID  string
}

func (s *JobWorkflowSuite) SetupSuite() {
	s.config = LoadTestConfig()
	s.config.SkipIfMissingConfig(s.T())

	client, err := batchclient.NewWithSharedKey(context.Background(), s.config.Endpoint, s.config.Account, s.config.AccountKey)
	s.Require().NoError(err)

	s.client = client
	s.jobID = GenerateTestName("it-job")
}

func (s *JobWorkflowSuite) TearDownSuite() {
	if s.client == nil {
		return
	}

	if _, err := s.client.Jobs().Delete(context.Background(), s.jobID); err != nil && !batch.IsNotFound(err) {
		s.T().Logf("Cleanup warning for job %s: %v", s.jobID, err)
	}

	s.client.Close()
}

func (s *JobWorkflowSuite) TestJobLifecycle() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	exists, err := s.client.Pools().Exists(ctx, s.config.PoolID)
	s.Require().NoError(err)
	s.Require().True(exists, "pool %s must exist", s.config.PoolID)

	_, err = s.client.Jobs().Add(ctx, &batch.JobAddRequest{
		ID:       s.jobID,
		PoolInfo: batch.PoolInformation{PoolID: s.config.PoolID},
	})
	s.Require().NoError(err)

	_, err = s.client.Jobs().Add(ctx, &batch.JobAddRequest{
		ID:       s.jobID,
		PoolInfo: batch.PoolInformation{PoolID: s.config.PoolID},
	})
	s.Require().Error(err)
	s.True(batch.IsConflict(err))
	s.Equal(batch.ErrorCodeJobExists, batch.ErrorCode(err))

	request := &batch.TaskAddCollectionRequest{}
	for i := range 3 {
		request.Value = append(request.Value, batch.TaskAddRequest{
			ID:          fmt.Sprintf("task-%d", i),
			CommandLine: fmt.Sprintf("/bin/sh -c 'echo integration %d'", i),
		})
	}

	added, err := s.client.Tasks().AddCollection(ctx, s.jobID, request)
	s.Require().NoError(err)
	s.Len(added.Body.Value, 3)

	task, err := s.client.Tasks().WaitForCompletion(ctx, s.jobID, "task-0", nil)
	s.Require().NoError(err)
	s.Equal(batch.TaskStateCompleted, task.State)

	stdout, err := s.client.Files().GetFromTask(ctx, s.jobID, "task-0", "stdout.txt")
	s.Require().NoError(err)
	s.Contains(string(stdout.Body), "integration 0")

	var files []string

	err = s.client.Files().ListFromTask(ctx, s.jobID, "task-0", &batch.FileListOptions{Recursive: true}).
		ForEach(ctx, func(file batch.NodeFile) error {
			files = append(files, file.Name)

			return nil
		})
	s.Require().NoError(err)
	s.Contains(files, "stdout.txt")

	tasks, err := s.client.Tasks().ListAsync(ctx, s.jobID, nil, batch.ListCallbacks[batch.Task]{}).Wait()
	s.Require().NoError(err)
	s.Len(tasks, 3)

	_, err = s.client.Jobs().Terminate(ctx, s.jobID, &batch.JobTerminateRequest{TerminateReason: "integration test"})
	s.Require().NoError(err)
}

func TestJobWorkflowSuite(t *testing.T) {
	suite.Run(t, new(JobWorkflowSuite))
}

// TestCLIWorkflow drives the batch binary against the live account.
func TestCLIWorkflow(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)
	config.SkipIfMissingBinary(t)

	runner := NewCommandRunner(config, t)

	stdout, stderr, err := runner.Run("pools", "list", "--output", "json")
	require.NoError(t, err, "Failed to list pools: %s", stderr)
	AssertJSONOutput(t, stdout)
	assert.Contains(t, stdout, config.PoolID)

	stdout, stderr, err = runner.Run("pools", "get", config.PoolID)
	require.NoError(t, err, "Failed to get pool: %s", stderr)
	assert.Contains(t, stdout, config.PoolID)

	stdout, stderr, err = runner.Run("nodes", "list", "--pool", config.PoolID, "--output", "yaml")
	require.NoError(t, err, "Failed to list nodes: %s", stderr)
	assert.Contains(t, stdout, "state:")

	_, stderr, err = runner.Run("jobs", "get", GenerateTestName("missing"))
	require.Error(t, err)
	assert.Contains(t, stderr, "failed to get job")
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/batch-client/pkg/batch"
)

// NewJobsCommand creates the jobs command group.
func NewJobsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "jobs",
		Aliases: []string{"job"},
		Short:   "Manage jobs",
		Long:    "List, inspect, terminate and delete Batch jobs",
	}

	cmd.AddCommand(newJobsListCommand())
	cmd.AddCommand(newJobsGetCommand())
	cmd.AddCommand(newJobsDeleteCommand())
	cmd.AddCommand(newJobsTerminateCommand())

	return cmd
}

func newJobsListCommand() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs",
		Long:  "List all jobs in the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			jobs, err := collect(cmd, client.Jobs().List(cmd.Context(), flags.options()), "jobs")
			if err != nil {
				return err
			}

			return renderList(cmd, jobs, "jobs",
				[]string{"ID", "State", "Pool", "Priority", "Created"},
				func(job batch.Job) []string {
					return []string{job.ID, job.State, job.PoolInfo.PoolID, itoa(job.Priority), formatTime(job.CreationTime)}
				})
		},
	}

	flags.register(cmd)

	return cmd
}

func newJobsGetCommand() *cobra.Command {
	var counts bool

	cmd := &cobra.Command{
		Use:   "get JOB_ID",
		Short: "Get job details",
		Long:  "Display detailed information about a specific job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.Jobs().Get(cmd.Context(), args[0], nil)
			if err != nil {
				return fmt.Errorf("failed to get job: %w", err)
			}

			job := resp.Body
			properties := [][2]string{
				{"ID", job.ID},
				{"Display Name", job.DisplayName},
				{"State", job.State},
				{"Pool", job.PoolInfo.PoolID},
				{"Priority", itoa(job.Priority)},
				{"On All Tasks Complete", job.OnAllTasksComplete},
				{"Created", formatTime(job.CreationTime)},
				{"ETag", resp.Headers.ETag},
			}

			if counts {
				taskCounts, err := client.Jobs().GetTaskCounts(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("failed to get task counts: %w", err)
				}

				tc := taskCounts.Body.TaskCounts
				properties = append(properties,
					[2]string{"Tasks Active", itoa(tc.Active)},
					[2]string{"Tasks Running", itoa(tc.Running)},
					[2]string{"Tasks Completed", itoa(tc.Completed)},
					[2]string{"Tasks Succeeded", itoa(tc.Succeeded)},
					[2]string{"Tasks Failed", itoa(tc.Failed)},
				)
			}

			return renderDetails(cmd, job, properties)
		},
	}

	cmd.Flags().BoolVar(&counts, "task-counts", false, "include the task counts of the job")

	return cmd
}

func newJobsDeleteCommand() *cobra.Command {
	var ifMatch string

	cmd := &cobra.Command{
		Use:   "delete JOB_ID",
		Short: "Delete a job",
		Long:  "Delete a job and all of its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			if _, err := client.Jobs().Delete(conditional(cmd.Context(), ifMatch), args[0]); err != nil {
				return fmt.Errorf("failed to delete job: %w", err)
			}

			printAccepted(cmd, "Job %s is being deleted", args[0])

			return nil
		},
	}

	cmd.Flags().StringVar(&ifMatch, "if-match", "", "only delete when the job ETag matches")

	return cmd
}

func newJobsTerminateCommand() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "terminate JOB_ID",
		Short: "Terminate a job",
		Long:  "Terminate a job. Running tasks are stopped and no new tasks are scheduled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			var request *batch.JobTerminateRequest
			if reason != "" {
				request = &batch.JobTerminateRequest{TerminateReason: reason}
			}

			if _, err := client.Jobs().Terminate(cmd.Context(), args[0], request); err != nil {
				return fmt.Errorf("failed to terminate job: %w", err)
			}

			printAccepted(cmd, "Job %s is terminating", args[0])

			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "terminate reason recorded on the job")

	return cmd
}

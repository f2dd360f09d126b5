package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/batch-client/internal/constants"
	"github.com/fivetwenty-io/batch-client/pkg/batch"
)

// NewTasksCommand creates the tasks command group.
func NewTasksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "Manage tasks",
		Long:    "List, inspect and terminate the tasks of a job",
	}

	cmd.AddCommand(newTasksListCommand())
	cmd.AddCommand(newTasksGetCommand())
	cmd.AddCommand(newTasksTerminateCommand())

	return cmd
}

func newTasksListCommand() *cobra.Command {
	var (
		jobID string
		flags listFlags
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long:  "List the tasks of a job",
		RunE: func(cmd *cobra.Command, args []string) error {
			if jobID == "" {
				return constants.ErrJobRequired
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			tasks, err := collect(cmd, client.Tasks().List(cmd.Context(), jobID, flags.options()), "tasks")
			if err != nil {
				return err
			}

			return renderList(cmd, tasks, "tasks",
				[]string{"ID", "State", "Exit Code", "Node", "Created"},
				func(task batch.Task) []string {
					node := constants.NotAvailable
					if task.NodeInfo != nil {
						node = task.NodeInfo.NodeID
					}

					return []string{task.ID, task.State, exitCode(task), node, formatTime(task.CreationTime)}
				})
		},
	}

	cmd.Flags().StringVarP(&jobID, "job", "j", "", "job ID")
	flags.register(cmd)

	return cmd
}

func newTasksGetCommand() *cobra.Command {
	var jobID string

	cmd := &cobra.Command{
		Use:   "get TASK_ID",
		Short: "Get task details",
		Long:  "Display detailed information about a specific task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if jobID == "" {
				return constants.ErrJobRequired
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.Tasks().Get(cmd.Context(), jobID, args[0], nil)
			if err != nil {
				return fmt.Errorf("failed to get task: %w", err)
			}

			task := resp.Body
			properties := [][2]string{
				{"ID", task.ID},
				{"Job", jobID},
				{"State", task.State},
				{"Command Line", task.CommandLine},
				{"Exit Code", exitCode(task)},
				{"Created", formatTime(task.CreationTime)},
			}

			if info := task.ExecutionInfo; info != nil {
				properties = append(properties,
					[2]string{"Started", formatTime(info.StartTime)},
					[2]string{"Ended", formatTime(info.EndTime)},
					[2]string{"Retries", itoa(info.RetryCount)},
					[2]string{"Result", info.Result},
				)
			}

			if node := task.NodeInfo; node != nil {
				properties = append(properties, [2]string{"Node", node.PoolID + "/" + node.NodeID})
			}

			return renderDetails(cmd, task, properties)
		},
	}

	cmd.Flags().StringVarP(&jobID, "job", "j", "", "job ID")

	return cmd
}

func newTasksTerminateCommand() *cobra.Command {
	var jobID string

	cmd := &cobra.Command{
		Use:   "terminate TASK_ID",
		Short: "Terminate a task",
		Long:  "Terminate a running task. The task moves to the completed state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if jobID == "" {
				return constants.ErrJobRequired
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			if _, err := client.Tasks().Terminate(cmd.Context(), jobID, args[0]); err != nil {
				return fmt.Errorf("failed to terminate task: %w", err)
			}

			printAccepted(cmd, "Task %s of job %s terminated", args[0], jobID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&jobID, "job", "j", "", "job ID")

	return cmd
}

func exitCode(task batch.Task) string {
	if task.ExecutionInfo == nil || task.ExecutionInfo.ExitCode == nil {
		return constants.NotAvailable
	}

	return strconv.Itoa(*task.ExecutionInfo.ExitCode)
}

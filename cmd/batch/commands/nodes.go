package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/batch-client/internal/constants"
	"github.com/fivetwenty-io/batch-client/pkg/batch"
)

// NewNodesCommand creates the nodes command group.
func NewNodesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "nodes",
		Aliases: []string{"node"},
		Short:   "Manage compute nodes",
		Long:    "List, inspect and reboot the compute nodes of a pool",
	}

	cmd.AddCommand(newNodesListCommand())
	cmd.AddCommand(newNodesGetCommand())
	cmd.AddCommand(newNodesRebootCommand())

	return cmd
}

func newNodesListCommand() *cobra.Command {
	var (
		poolID string
		flags  listFlags
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List compute nodes",
		Long:  "List the compute nodes of a pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			if poolID == "" {
				return constants.ErrPoolRequired
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			nodes, err := collect(cmd, client.ComputeNodes().List(cmd.Context(), poolID, flags.options()), "nodes")
			if err != nil {
				return err
			}

			return renderList(cmd, nodes, "nodes",
				[]string{"ID", "State", "Scheduling", "IP Address", "Dedicated", "Running Tasks"},
				func(node batch.ComputeNode) []string {
					return []string{
						node.ID,
						node.State,
						node.SchedulingState,
						orNotAvailable(node.IPAddress),
						fmt.Sprintf("%t", node.IsDedicated),
						itoa(node.RunningTasksCount),
					}
				})
		},
	}

	cmd.Flags().StringVarP(&poolID, "pool", "p", "", "pool ID")
	flags.register(cmd)

	return cmd
}

func newNodesGetCommand() *cobra.Command {
	var poolID string

	cmd := &cobra.Command{
		Use:   "get NODE_ID",
		Short: "Get compute node details",
		Long:  "Display detailed information about a specific compute node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if poolID == "" {
				return constants.ErrPoolRequired
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.ComputeNodes().Get(cmd.Context(), poolID, args[0], nil)
			if err != nil {
				return fmt.Errorf("failed to get node: %w", err)
			}

			node := resp.Body
			properties := [][2]string{
				{"ID", node.ID},
				{"Pool", poolID},
				{"State", node.State},
				{"Scheduling State", node.SchedulingState},
				{"VM Size", node.VMSize},
				{"IP Address", node.IPAddress},
				{"Dedicated", fmt.Sprintf("%t", node.IsDedicated)},
				{"Allocated", formatTime(node.AllocationTime)},
				{"Running Tasks", itoa(node.RunningTasksCount)},
				{"Tasks Run", itoa(node.TotalTasksRun)},
				{"Tasks Succeeded", itoa(node.TotalTasksSucceeded)},
			}

			for _, nodeErr := range node.Errors {
				properties = append(properties, [2]string{"Error", nodeErr.Code + ": " + nodeErr.Message})
			}

			return renderDetails(cmd, node, properties)
		},
	}

	cmd.Flags().StringVarP(&poolID, "pool", "p", "", "pool ID")

	return cmd
}

func newNodesRebootCommand() *cobra.Command {
	var (
		poolID string
		option string
	)

	cmd := &cobra.Command{
		Use:   "reboot NODE_ID",
		Short: "Reboot a compute node",
		Long:  "Restart a compute node. The option decides what happens to running tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if poolID == "" {
				return constants.ErrPoolRequired
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			var request *batch.NodeRebootRequest
			if option != "" {
				request = &batch.NodeRebootRequest{NodeRebootOption: option}
			}

			if _, err := client.ComputeNodes().Reboot(cmd.Context(), poolID, args[0], request); err != nil {
				return fmt.Errorf("failed to reboot node: %w", err)
			}

			printAccepted(cmd, "Node %s of pool %s is rebooting", args[0], poolID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&poolID, "pool", "p", "", "pool ID")
	cmd.Flags().StringVar(&option, "option", "", "requeue, terminate, taskcompletion or retaineddata")

	return cmd
}

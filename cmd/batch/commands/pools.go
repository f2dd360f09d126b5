package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/batch-client/internal/constants"
	"github.com/fivetwenty-io/batch-client/pkg/batch"
)

// NewPoolsCommand creates the pools command group.
func NewPoolsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pools",
		Aliases: []string{"pool"},
		Short:   "Manage pools",
		Long:    "List, inspect, resize and delete Batch pools",
	}

	cmd.AddCommand(newPoolsListCommand())
	cmd.AddCommand(newPoolsGetCommand())
	cmd.AddCommand(newPoolsDeleteCommand())
	cmd.AddCommand(newPoolsResizeCommand())

	return cmd
}

func newPoolsListCommand() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pools",
		Long:  "List all pools in the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			pools, err := collect(cmd, client.Pools().List(cmd.Context(), flags.options()), "pools")
			if err != nil {
				return err
			}

			return renderList(cmd, pools, "pools",
				[]string{"ID", "State", "Allocation", "VM Size", "Dedicated", "Low Priority", "Created"},
				func(pool batch.Pool) []string {
					return []string{
						pool.ID,
						pool.State,
						pool.AllocationState,
						pool.VMSize,
						fmt.Sprintf("%d/%d", pool.CurrentDedicatedNodes, pool.TargetDedicatedNodes),
						fmt.Sprintf("%d/%d", pool.CurrentLowPriorityNodes, pool.TargetLowPriorityNodes),
						formatTime(pool.CreationTime),
					}
				})
		},
	}

	flags.register(cmd)

	return cmd
}

func newPoolsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get POOL_ID",
		Short: "Get pool details",
		Long:  "Display detailed information about a specific pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.Pools().Get(cmd.Context(), args[0], nil)
			if err != nil {
				return fmt.Errorf("failed to get pool: %w", err)
			}

			pool := resp.Body

			return renderDetails(cmd, pool, [][2]string{
				{"ID", pool.ID},
				{"Display Name", pool.DisplayName},
				{"State", pool.State},
				{"Allocation State", pool.AllocationState},
				{"VM Size", pool.VMSize},
				{"Dedicated Nodes", fmt.Sprintf("%d (target %d)", pool.CurrentDedicatedNodes, pool.TargetDedicatedNodes)},
				{"Low Priority Nodes", fmt.Sprintf("%d (target %d)", pool.CurrentLowPriorityNodes, pool.TargetLowPriorityNodes)},
				{"Task Slots Per Node", itoa(pool.TaskSlotsPerNode)},
				{"Autoscale", fmt.Sprintf("%t", pool.EnableAutoScale)},
				{"Created", formatTime(pool.CreationTime)},
				{"ETag", resp.Headers.ETag},
			})
		},
	}
}

func newPoolsDeleteCommand() *cobra.Command {
	var ifMatch string

	cmd := &cobra.Command{
		Use:   "delete POOL_ID",
		Short: "Delete a pool",
		Long:  "Delete a pool. The service removes its nodes in the background",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			if _, err := client.Pools().Delete(conditional(cmd.Context(), ifMatch), args[0]); err != nil {
				return fmt.Errorf("failed to delete pool: %w", err)
			}

			printAccepted(cmd, "Pool %s is being deleted", args[0])

			return nil
		},
	}

	cmd.Flags().StringVar(&ifMatch, "if-match", "", "only delete when the pool ETag matches")

	return cmd
}

func newPoolsResizeCommand() *cobra.Command {
	var (
		dedicated   int
		lowPriority int
		deallocate  string
		ifMatch     string
		wait        bool
	)

	cmd := &cobra.Command{
		Use:   "resize POOL_ID",
		Short: "Resize a pool",
		Long:  "Change the target node counts of a pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &batch.PoolResizeRequest{NodeDeallocationOption: deallocate}

			if cmd.Flags().Changed("dedicated") {
				request.TargetDedicatedNodes = &dedicated
			}

			if cmd.Flags().Changed("low-priority") {
				request.TargetLowPriorityNodes = &lowPriority
			}

			if request.TargetDedicatedNodes == nil && request.TargetLowPriorityNodes == nil {
				return constants.ErrTargetNodesMissing
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			if _, err := client.Pools().Resize(conditional(cmd.Context(), ifMatch), args[0], request); err != nil {
				return fmt.Errorf("failed to resize pool: %w", err)
			}

			if !wait {
				printAccepted(cmd, "Pool %s is resizing", args[0])

				return nil
			}

			pool, err := client.Pools().WaitForSteadyState(cmd.Context(), args[0], nil)
			if err != nil {
				return fmt.Errorf("failed waiting for pool: %w", err)
			}

			printAccepted(cmd, "Pool %s is steady with %d dedicated and %d low priority nodes",
				pool.ID, pool.CurrentDedicatedNodes, pool.CurrentLowPriorityNodes)

			return nil
		},
	}

	cmd.Flags().IntVar(&dedicated, "dedicated", 0, "target dedicated node count")
	cmd.Flags().IntVar(&lowPriority, "low-priority", 0, "target low priority node count")
	cmd.Flags().StringVar(&deallocate, "node-deallocation", "", "requeue, terminate, taskcompletion or retaineddata")
	cmd.Flags().StringVar(&ifMatch, "if-match", "", "only resize when the pool ETag matches")
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "wait for the pool to reach a steady allocation state")

	return cmd
}

// conditional applies an optional If-Match ETag to ctx.
func conditional(ctx context.Context, etag string) context.Context {
	if etag == "" {
		return ctx
	}

	return batch.WithIfMatch(ctx, etag)
}

package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/batch-client/internal/constants"
	"github.com/fivetwenty-io/batch-client/pkg/batch"
)

// NewFilesCommand creates the files command group.
func NewFilesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "files",
		Aliases: []string{"file"},
		Short:   "Browse task and node files",
		Long:    "List the files in a task directory or on a compute node",
	}

	cmd.AddCommand(newFilesListCommand())

	return cmd
}

func newFilesListCommand() *cobra.Command {
	var (
		jobID     string
		taskID    string
		poolID    string
		nodeID    string
		recursive bool
		flags     listFlags
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List files",
		Long: `List files from a task directory (--job and --task) or from a
compute node (--pool and --node)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromTask := jobID != "" && taskID != ""
			fromNode := poolID != "" && nodeID != ""

			if fromTask == fromNode {
				return constants.ErrTaskOrNodeRequired
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			opts := &batch.FileListOptions{ListOptions: *flags.options(), Recursive: recursive}

			var pager *batch.Pager[batch.NodeFile]
			if fromTask {
				pager = client.Files().ListFromTask(cmd.Context(), jobID, taskID, opts)
			} else {
				pager = client.Files().ListFromComputeNode(cmd.Context(), poolID, nodeID, opts)
			}

			files, err := collect(cmd, pager, "files")
			if err != nil {
				return err
			}

			return renderList(cmd, files, "files",
				[]string{"Name", "Directory", "Size", "Modified"},
				func(file batch.NodeFile) []string {
					size, modified := constants.NotAvailable, constants.NotAvailable
					if file.Properties != nil && !file.IsDirectory {
						size = strconv.FormatInt(file.Properties.ContentLength, 10)
						modified = formatTime(&file.Properties.LastModified)
					}

					return []string{file.Name, strconv.FormatBool(file.IsDirectory), size, modified}
				})
		},
	}

	cmd.Flags().StringVarP(&jobID, "job", "j", "", "job ID")
	cmd.Flags().StringVarP(&taskID, "task", "t", "", "task ID")
	cmd.Flags().StringVarP(&poolID, "pool", "p", "", "pool ID")
	cmd.Flags().StringVarP(&nodeID, "node", "n", "", "compute node ID")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "include files in subdirectories")
	flags.register(cmd)

	return cmd
}

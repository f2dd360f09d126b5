package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/batch-client/pkg/batch"
)

const defaultThumbprintAlgorithm = "sha1"

// NewCertificatesCommand creates the certificates command group.
func NewCertificatesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "certificates",
		Aliases: []string{"certificate", "certs", "cert"},
		Short:   "Manage certificates",
		Long:    "List, inspect and delete the certificates of the account",
	}

	cmd.AddCommand(newCertificatesListCommand())
	cmd.AddCommand(newCertificatesGetCommand())
	cmd.AddCommand(newCertificatesDeleteCommand())

	return cmd
}

func newCertificatesListCommand() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List certificates",
		Long:  "List all certificates in the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			certificates, err := collect(cmd, client.Certificates().List(cmd.Context(), flags.options()), "certificates")
			if err != nil {
				return err
			}

			return renderList(cmd, certificates, "certificates",
				[]string{"Thumbprint", "Algorithm", "State", "Since"},
				func(certificate batch.Certificate) []string {
					return []string{
						certificate.Thumbprint,
						certificate.ThumbprintAlgorithm,
						certificate.State,
						formatTime(certificate.StateTransitionTime),
					}
				})
		},
	}

	flags.register(cmd)

	return cmd
}

func newCertificatesGetCommand() *cobra.Command {
	var algorithm string

	cmd := &cobra.Command{
		Use:   "get THUMBPRINT",
		Short: "Get certificate details",
		Long:  "Display detailed information about a specific certificate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.Certificates().Get(cmd.Context(), algorithm, args[0], nil)
			if err != nil {
				return fmt.Errorf("failed to get certificate: %w", err)
			}

			certificate := resp.Body
			properties := [][2]string{
				{"Thumbprint", certificate.Thumbprint},
				{"Algorithm", certificate.ThumbprintAlgorithm},
				{"State", certificate.State},
				{"Since", formatTime(certificate.StateTransitionTime)},
			}

			if deleteErr := certificate.DeleteCertificateError; deleteErr != nil {
				properties = append(properties, [2]string{"Delete Error", deleteErr.Code})
			}

			return renderDetails(cmd, certificate, properties)
		},
	}

	cmd.Flags().StringVar(&algorithm, "algorithm", defaultThumbprintAlgorithm, "thumbprint algorithm")

	return cmd
}

func newCertificatesDeleteCommand() *cobra.Command {
	var algorithm string

	cmd := &cobra.Command{
		Use:   "delete THUMBPRINT",
		Short: "Delete a certificate",
		Long:  "Delete a certificate. Deletion fails while a pool or node still uses it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			if _, err := client.Certificates().Delete(cmd.Context(), algorithm, args[0]); err != nil {
				return fmt.Errorf("failed to delete certificate: %w", err)
			}

			printAccepted(cmd, "Certificate %s is being deleted", args[0])

			return nil
		},
	}

	cmd.Flags().StringVar(&algorithm, "algorithm", defaultThumbprintAlgorithm, "thumbprint algorithm")

	return cmd
}

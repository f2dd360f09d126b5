package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/batch-client/internal/constants"
	"github.com/fivetwenty-io/batch-client/pkg/batch"
	"github.com/fivetwenty-io/batch-client/pkg/batchclient"
)

// clientConfig builds the client configuration from the CLI configuration.
// Without a shared key or service principal the Azure default credential chain is used.
func clientConfig(config *Config) (*batch.Config, error) {
	if config.URL == "" {
		return nil, constants.ErrNoBatchURLConfigured
	}

	clientConfig := &batch.Config{
		BatchURL:     config.URL,
		AccountName:  config.Account,
		AccountKey:   config.AccountKey,
		TenantID:     config.TenantID,
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		APIVersion:   config.APIVersion,
	}

	if config.AccountKey == "" {
		if config.ClientSecret == "" {
			clientConfig.UseAzureCredential = true
		}

		clientConfig.TokenPersister = NewConfigPersister()
		clientConfig.PersistedToken = config.AccessToken

		if config.TokenExpiresAt != nil {
			clientConfig.PersistedTokenExpiry = *config.TokenExpiresAt
		}
	}

	if viper.GetBool("verbose") {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}

		clientConfig.Logger = batch.NewZapLogger(logger)
		clientConfig.Debug = true
	}

	return clientConfig, nil
}

// createClient creates a client from the current configuration. Callers must Close it.
func createClient(cmd *cobra.Command) (batchclient.Client, error) {
	config, err := clientConfig(loadConfig())
	if err != nil {
		return nil, err
	}

	return batchclient.New(cmd.Context(), config)
}

func validateOutput(format string) error {
	switch format {
	case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
		return nil
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnsupportedOutput, format)
	}
}

// encode writes data as JSON or YAML. It reports false for the table format.
func encode(out io.Writer, data interface{}) (bool, error) {
	format := viper.GetString("output")
	if err := validateOutput(format); err != nil {
		return true, err
	}

	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")

		return true, encoder.Encode(data)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)

		return true, encoder.Encode(data)
	default:
		return false, nil
	}
}

// renderList prints items in the configured output format.
func renderList[T any](cmd *cobra.Command, items []T, noun string, header []string, row func(T) []string) error {
	out := cmd.OutOrStdout()

	if done, err := encode(out, items); done {
		return err
	}

	if len(items) == 0 {
		_, _ = fmt.Fprintf(out, "No %s found\n", noun)

		return nil
	}

	table := tablewriter.NewWriter(out)
	table.Header(header)

	for _, item := range items {
		_ = table.Append(row(item))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderDetails prints a single resource as a property table.
func renderDetails(cmd *cobra.Command, data interface{}, properties [][2]string) error {
	out := cmd.OutOrStdout()

	if done, err := encode(out, data); done {
		return err
	}

	table := tablewriter.NewWriter(out)
	table.Header("Property", "Value")

	for _, property := range properties {
		_ = table.Append(property[0], orNotAvailable(property[1]))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func printAccepted(cmd *cobra.Command, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
}

func formatTime(value *time.Time) string {
	if value == nil || value.IsZero() {
		return constants.NotAvailable
	}

	return value.Local().Format(constants.TimeDisplayFormat)
}

func orNotAvailable(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

// listFlags are the OData flags shared by list commands.
type listFlags struct {
	filter     string
	selects    []string
	expand     []string
	maxResults int
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.filter, "filter", "", "OData $filter clause, e.g. \"state eq 'active'\"")
	cmd.Flags().StringSliceVar(&f.selects, "select", nil, "properties to return")
	cmd.Flags().StringSliceVar(&f.expand, "expand", nil, "related data to include, e.g. stats")
	cmd.Flags().IntVar(&f.maxResults, "max-results", 0, "items per page (service maximum 1000)")
}

func (f *listFlags) options() *batch.ListOptions {
	return &batch.ListOptions{
		Filter:     f.filter,
		Select:     f.selects,
		Expand:     f.expand,
		MaxResults: f.maxResults,
	}
}

// collect drains pager.
func collect[T any](cmd *cobra.Command, pager *batch.Pager[T], noun string) ([]T, error) {
	var items []T

	err := pager.ForEach(cmd.Context(), func(item T) error {
		items = append(items, item)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", noun, err)
	}

	return items, nil
}

func itoa(value int) string {
	return strconv.Itoa(value)
}

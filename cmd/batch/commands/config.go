package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/batch-client/internal/constants"
)

// Config represents the CLI configuration.
type Config struct {
	URL          string `json:"url,omitempty"           yaml:"url,omitempty"`
	Account      string `json:"account,omitempty"       yaml:"account,omitempty"`
	AccountKey   string `json:"account_key,omitempty"   yaml:"account_key,omitempty"`
	TenantID     string `json:"tenant_id,omitempty"     yaml:"tenant_id,omitempty"`
	ClientID     string `json:"client_id,omitempty"     yaml:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty" yaml:"client_secret,omitempty"`
	APIVersion   string `json:"api_version,omitempty"   yaml:"api_version,omitempty"`
	Output       string `json:"output,omitempty"        yaml:"output,omitempty"`

	// AccessToken is the last bearer token obtained for URL.
	AccessToken    string     `json:"access_token,omitempty"     yaml:"access_token,omitempty"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty" yaml:"token_expires_at,omitempty"`
}

// configKeys maps the keys accepted by "config set" to their fields.
var configKeys = map[string]func(*Config) *string{
	"url":           func(c *Config) *string { return &c.URL },
	"account":       func(c *Config) *string { return &c.Account },
	"account-key":   func(c *Config) *string { return &c.AccountKey },
	"tenant-id":     func(c *Config) *string { return &c.TenantID },
	"client-id":     func(c *Config) *string { return &c.ClientID },
	"client-secret": func(c *Config) *string { return &c.ClientSecret },
	"api-version":   func(c *Config) *string { return &c.APIVersion },
	"output":        func(c *Config) *string { return &c.Output },
}

var secretKeys = map[string]bool{"account-key": true, "client-secret": true}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the Batch CLI configuration stored in ~/.batch/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := maskSecrets(loadConfig())
			out := cmd.OutOrStdout()

			switch viper.GetString("output") {
			case constants.FormatJSON:
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")

				return encoder.Encode(config)
			case constants.FormatYAML:
				return yaml.NewEncoder(out).Encode(config)
			default:
				return displayConfigTable(out, config)
			}
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY [VALUE]",
		Short: "Set a configuration value",
		Long: `Set a configuration value.

Keys: ` + strings.Join(sortedConfigKeys(), ", ") + `.
When the value of account-key or client-secret is omitted it is read from the terminal without echo.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			var value string
			if len(args) == 2 {
				value = args[1]
			} else {
				if !secretKeys[key] {
					return fmt.Errorf("%w: %s", constants.ErrValueRequired, key)
				}

				secret, err := readSecret(cmd.ErrOrStderr(), key)
				if err != nil {
					return err
				}

				value = secret
			}

			if err := NewConfigPersister().Set(key, value); err != nil {
				return err
			}

			shown := value
			if secretKeys[key] {
				shown = constants.MaskedSecret
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", key, shown)

			return nil
		},
	}
}

func readSecret(prompt io.Writer, key string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("%w: %s", constants.ErrNoTerminal, key)
	}

	_, _ = fmt.Fprintf(prompt, "%s: ", key)

	secret, err := term.ReadPassword(fd)

	_, _ = fmt.Fprintln(prompt)

	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}

	if len(secret) == 0 {
		return "", fmt.Errorf("%w: %s", constants.ErrEmptySecret, key)
	}

	return string(secret), nil
}

// setConfigValue applies key to config.
func setConfigValue(config *Config, key, value string) error {
	field, ok := configKeys[key]
	if !ok {
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	if key == "output" {
		if err := validateOutput(value); err != nil {
			return err
		}
	}

	*field(config) = value

	return nil
}

func loadConfig() *Config {
	config := &Config{
		URL:          viper.GetString("url"),
		Account:      viper.GetString("account"),
		AccountKey:   viper.GetString("account_key"),
		TenantID:     viper.GetString("tenant_id"),
		ClientID:     viper.GetString("client_id"),
		ClientSecret: viper.GetString("client_secret"),
		APIVersion:   viper.GetString("api_version"),
		Output:       viper.GetString("output"),
		AccessToken:  viper.GetString("access_token"),
	}

	if expiresAt := viper.GetTime("token_expires_at"); !expiresAt.IsZero() {
		config.TokenExpiresAt = &expiresAt
	}

	return config
}

func configFilePath() (string, error) {
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}

	return filepath.Join(home, ".batch", "config.yml"), nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configFile, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func maskSecrets(config *Config) *Config {
	masked := *config
	if masked.AccountKey != "" {
		masked.AccountKey = constants.MaskedSecret
	}

	if masked.ClientSecret != "" {
		masked.ClientSecret = constants.MaskedSecret
	}

	if masked.AccessToken != "" {
		masked.AccessToken = constants.MaskedSecret
	}

	return &masked
}

func displayConfigTable(out io.Writer, config *Config) error {
	table := tablewriter.NewWriter(out)
	table.Header("Key", "Value")

	for _, key := range sortedConfigKeys() {
		value := *configKeys[key](config)
		if value == "" {
			value = constants.NotAvailable
		}

		_ = table.Append(key, value)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func sortedConfigKeys() []string {
	keys := make([]string, 0, len(configKeys))
	for key := range configKeys {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

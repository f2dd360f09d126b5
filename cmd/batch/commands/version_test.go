package commands

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/batch-client/internal/constants"
)

func TestVersionCommand(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("output", constants.FormatJSON)

	output, err := execute(t, NewVersionCommand("1.2.3", "abc", "2026-01-01"))
	require.NoError(t, err)

	var info VersionInfo
	requireJSON(t, output, &info)
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "abc", info.Commit)
	assert.Equal(t, constants.DefaultAPIVersion, info.APIVersion)
}

func TestVersionCommand_Table(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("output", constants.FormatTable)

	output, err := execute(t, NewVersionCommand("1.2.3", "abc", "2026-01-01"))
	require.NoError(t, err)
	assert.Contains(t, output, "1.2.3")
	assert.Contains(t, output, "API Version")
}

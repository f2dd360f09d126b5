package commands

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/fivetwenty-io/batch-client/internal/constants"
	"github.com/fivetwenty-io/batch-client/pkg/batchclient"
)

// ConfigPersister serializes read-modify-write cycles of the config file.
// It implements batch.TokenPersister.
type ConfigPersister struct {
	mutex sync.Mutex
}

// NewConfigPersister creates a new config persister.
func NewConfigPersister() *ConfigPersister {
	return &ConfigPersister{}
}

// Set stores value under key in the config file and in the running viper instance.
func (p *ConfigPersister) Set(key, value string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config := loadConfig()

	if err := setConfigValue(config, key, value); err != nil {
		return err
	}

	if err := saveConfigStruct(config); err != nil {
		return err
	}

	viper.Set(viperKey(key), value)

	return nil
}

// UpdateAccessToken saves a bearer token issued for batchURL.
func (p *ConfigPersister) UpdateAccessToken(batchURL, token string, expiresAt time.Time) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config := loadConfig()

	if batchclient.NormalizeURL(config.URL) != batchURL {
		return fmt.Errorf("%w: %s", constants.ErrTokenForOtherAccount, batchURL)
	}

	config.AccessToken = token
	config.TokenExpiresAt = nil

	if !expiresAt.IsZero() {
		config.TokenExpiresAt = &expiresAt
	}

	if err := saveConfigStruct(config); err != nil {
		return err
	}

	viper.Set("access_token", token)
	viper.Set("token_expires_at", expiresAt)

	return nil
}

// viperKey turns "account-key" into "account_key".
func viperKey(key string) string {
	return strings.ReplaceAll(key, "-", "_")
}

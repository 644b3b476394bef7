package testutil

import (
	"testing"

	"github.com/meslamib3/storiesdb/internal/config"
	"github.com/spf13/viper"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	DBFile         string
	ServerAddr     string
	SubmitRate     int
	SubmitBurst    int
	LogLevel       string
	ExportDir      string
	OverwriteFiles bool
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		DBFile:         config.DBFile,
		ServerAddr:     config.ServerAddr,
		SubmitRate:     config.SubmitRate,
		SubmitBurst:    config.SubmitBurst,
		LogLevel:       config.LogLevel,
		ExportDir:      config.ExportDir,
		OverwriteFiles: config.OverwriteFiles,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.DBFile = state.DBFile
	config.ServerAddr = state.ServerAddr
	config.SubmitRate = state.SubmitRate
	config.SubmitBurst = state.SubmitBurst
	config.LogLevel = state.LogLevel
	config.ExportDir = state.ExportDir
	config.OverwriteFiles = state.OverwriteFiles
}

// ResetConfig saves the current config state and schedules restoration
// when the test completes. It also resets viper.
func ResetConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetTestConfig points the database and export directory into env and
// restores the previous configuration when the test completes.
func SetTestConfig(t *testing.T, env *TestEnv) {
	t.Helper()

	ResetConfig(t)

	config.DBFile = env.Path("methods.db")
	config.ServerAddr = "127.0.0.1:0"
	config.SubmitRate = 0
	config.SubmitBurst = 1
	config.LogLevel = "error"
	config.ExportDir = env.Path("export")
	config.OverwriteFiles = false
}

// SetViperValue sets a viper configuration value and schedules cleanup.
func SetViperValue(t *testing.T, key string, value any) {
	t.Helper()

	oldValue := viper.Get(key)
	hadValue := viper.IsSet(key)

	viper.Set(key, value)

	t.Cleanup(func() {
		if hadValue {
			viper.Set(key, oldValue)
		}
		// viper has no Unset, so an unset key cannot be restored.
	})
}

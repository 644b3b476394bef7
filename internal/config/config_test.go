package config

import (
	"log/slog"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetOverwriteFiles(t *testing.T) {
	// Save the original value to restore after the test
	originalValue := OverwriteFiles

	testCases := []struct {
		name     string
		input    bool
		expected bool
	}{
		{
			name:     "set to true",
			input:    true,
			expected: true,
		},
		{
			name:     "set to false",
			input:    false,
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			SetOverwriteFiles(tc.input)
			assert.Equal(t, tc.expected, OverwriteFiles)
		})
	}

	OverwriteFiles = originalValue
}

func TestInitConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	InitConfig()

	assert.Equal(t, DefaultDBFile, DBFile)
	assert.Equal(t, DefaultServerAddr, ServerAddr)
	assert.Equal(t, DefaultSubmitRate, SubmitRate)
	assert.Equal(t, DefaultSubmitBurst, SubmitBurst)
	assert.Equal(t, DefaultLogLevel, LogLevel)
	assert.Equal(t, DefaultExportDir, ExportDir)
	assert.False(t, OverwriteFiles)
}

func TestInitConfigOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set(KeyDBFile, "/data/methods.db")
	viper.Set(KeyServerAddr, ":9000")
	viper.Set(KeySubmitRate, 1)
	viper.Set(KeyLogLevel, "debug")

	InitConfig()

	assert.Equal(t, "/data/methods.db", DBFile)
	assert.Equal(t, ":9000", ServerAddr)
	assert.Equal(t, 1, SubmitRate)
	assert.Equal(t, DefaultSubmitBurst, SubmitBurst)
	assert.Equal(t, "debug", LogLevel)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "", want: slog.LevelInfo},
		{in: "warning", want: slog.LevelWarn},
		{in: " error ", want: slog.LevelError},
		{in: "loud", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifedash/lifedash/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:             ":8080",
		DBPath:           "test.db",
		LogLevel:         "INFO",
		InitialEase:      2.5,
		StatsWorkerCount: 2,
		StatsQueueSize:   64,
		StudyBatchSize:   200,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	err := validConfig().Validate()
	assert.NoError(t, err)
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_LogLevels(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"DEBUG", false},
		{"INFO", false},
		{"WARN", false},
		{"ERROR", false},
		{"debug", false},
		{"INVALID", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = tt.level

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "LOG_LEVEL")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_InitialEaseBounds(t *testing.T) {
	tests := []struct {
		name    string
		ease    float64
		wantErr bool
	}{
		{"minimum", 1.3, false},
		{"maximum", 3.0, false},
		{"default", 2.5, false},
		{"too low", 1.2, true},
		{"too high", 3.1, true},
		{"zero", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.InitialEase = tt.ease

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "INITIAL_EASE_FACTOR")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_WorkerSettings(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*config.Config)
		expectedError string
	}{
		{
			name:          "zero workers",
			mutate:        func(c *config.Config) { c.StatsWorkerCount = 0 },
			expectedError: "STATS_WORKER_COUNT",
		},
		{
			name:          "negative workers",
			mutate:        func(c *config.Config) { c.StatsWorkerCount = -1 },
			expectedError: "STATS_WORKER_COUNT",
		},
		{
			name:          "zero queue",
			mutate:        func(c *config.Config) { c.StatsQueueSize = 0 },
			expectedError: "STATS_QUEUE_SIZE",
		},
		{
			name:          "zero batch size",
			mutate:        func(c *config.Config) { c.StudyBatchSize = 0 },
			expectedError: "STUDY_BATCH_SIZE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{
		Addr:             "",
		DBPath:           "",
		LogLevel:         "INVALID",
		InitialEase:      0,
		StatsWorkerCount: 0,
		StatsQueueSize:   0,
		StudyBatchSize:   0,
	}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DB_PATH cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "INITIAL_EASE_FACTOR")
	assert.Contains(t, errStr, "STATS_WORKER_COUNT")
	assert.Contains(t, errStr, "STATS_QUEUE_SIZE")
	assert.Contains(t, errStr, "STUDY_BATCH_SIZE")
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("INITIAL_EASE_FACTOR", "2.2")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173, https://app.example.com")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, 2.2, cfg.InitialEase)
	assert.Equal(t, []string{"http://localhost:5173", "https://app.example.com"}, cfg.AllowedOrigins)
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "DB_PATH", "LOG_LEVEL", "INITIAL_EASE_FACTOR", "STATS_WORKER_COUNT", "STATS_QUEUE_SIZE", "STUDY_BATCH_SIZE", "ALLOWED_ORIGINS"} {
		if v, ok := os.LookupEnv(key); ok {
			t.Setenv(key, v)
			os.Unsetenv(key)
		}
	}

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 2.5, cfg.InitialEase)
	assert.Equal(t, 2, cfg.StatsWorkerCount)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

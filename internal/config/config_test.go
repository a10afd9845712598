package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

// configEnvVars lists every environment variable Load reads, so tests can
// save and restore the real environment.
var configEnvVars = []string{
	"OPENAI_API_KEY",
	"OPENAI_BASE_URL",
	"CHAT_MODEL",
	"EMBEDDING_MODEL",
	"QDRANT_URL",
	"QDRANT_COLLECTION",
	"QDRANT_VECTOR_SIZE",
	"DB_PATH",
	"LESSONS_DIR",
	"QUESTIONS_PATH",
	"OUTPUT_DIR",
	"API_PORT",
	"RETRIEVAL_ENHANCEMENT",
	"LOG_LEVEL",
	"LOG_FORMAT",
}

// clearEnv unsets every config variable and restores the original values
// when the test finishes.
func clearEnv(t *testing.T) {
	t.Helper()
	original := make(map[string]string)
	for _, key := range configEnvVars {
		if value, ok := os.LookupEnv(key); ok {
			original[key] = value
		}
		_ = os.Unsetenv(key)
	}
	t.Cleanup(func() {
		for _, key := range configEnvVars {
			if value, ok := original[key]; ok {
				_ = os.Setenv(key, value)
			} else {
				_ = os.Unsetenv(key)
			}
		}
	})
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    func(t *testing.T)
		wantErr     bool
		checkConfig func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults applied",
			setupEnv: func(t *testing.T) {
				_ = os.Setenv("OPENAI_API_KEY", "test-key")
				_ = os.Setenv("DB_PATH", filepath.Join(t.TempDir(), "test.db"))
			},
			checkConfig: func(t *testing.T, cfg *Config) {
				if cfg.ChatModel != "gpt-4-turbo" {
					t.Errorf("ChatModel = %q, want gpt-4-turbo", cfg.ChatModel)
				}
				if cfg.EmbeddingModel != "text-embedding-ada-002" {
					t.Errorf("EmbeddingModel = %q", cfg.EmbeddingModel)
				}
				if cfg.QdrantURL != "http://localhost:6333" {
					t.Errorf("QdrantURL = %q", cfg.QdrantURL)
				}
				if cfg.QdrantCollection != "lessons" {
					t.Errorf("QdrantCollection = %q", cfg.QdrantCollection)
				}
				if cfg.QdrantVectorSize != 1536 {
					t.Errorf("QdrantVectorSize = %d, want 1536", cfg.QdrantVectorSize)
				}
				if cfg.APIPort != "4000" {
					t.Errorf("APIPort = %q, want 4000", cfg.APIPort)
				}
				if !cfg.RetrievalEnhancement {
					t.Error("RetrievalEnhancement = false, want true by default")
				}
				if cfg.LogLevel != slog.LevelInfo {
					t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
				}
				if cfg.LogFormat != "text" {
					t.Errorf("LogFormat = %q, want text", cfg.LogFormat)
				}
			},
		},
		{
			name:     "missing api key",
			setupEnv: func(t *testing.T) {},
			wantErr:  true,
		},
		{
			name: "explicit values override defaults",
			setupEnv: func(t *testing.T) {
				_ = os.Setenv("OPENAI_API_KEY", "test-key")
				_ = os.Setenv("DB_PATH", filepath.Join(t.TempDir(), "test.db"))
				_ = os.Setenv("CHAT_MODEL", "gpt-4o")
				_ = os.Setenv("QDRANT_VECTOR_SIZE", "3072")
				_ = os.Setenv("API_PORT", "8080")
				_ = os.Setenv("RETRIEVAL_ENHANCEMENT", "false")
				_ = os.Setenv("LOG_LEVEL", "debug")
				_ = os.Setenv("LOG_FORMAT", "json")
			},
			checkConfig: func(t *testing.T, cfg *Config) {
				if cfg.ChatModel != "gpt-4o" {
					t.Errorf("ChatModel = %q, want gpt-4o", cfg.ChatModel)
				}
				if cfg.QdrantVectorSize != 3072 {
					t.Errorf("QdrantVectorSize = %d, want 3072", cfg.QdrantVectorSize)
				}
				if cfg.APIPort != "8080" {
					t.Errorf("APIPort = %q, want 8080", cfg.APIPort)
				}
				if cfg.RetrievalEnhancement {
					t.Error("RetrievalEnhancement = true, want false")
				}
				if cfg.LogLevel != slog.LevelDebug {
					t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
				}
				if cfg.LogFormat != "json" {
					t.Errorf("LogFormat = %q, want json", cfg.LogFormat)
				}
			},
		},
		{
			name: "invalid vector size",
			setupEnv: func(t *testing.T) {
				_ = os.Setenv("OPENAI_API_KEY", "test-key")
				_ = os.Setenv("QDRANT_VECTOR_SIZE", "not-a-number")
			},
			wantErr: true,
		},
		{
			name: "zero vector size",
			setupEnv: func(t *testing.T) {
				_ = os.Setenv("OPENAI_API_KEY", "test-key")
				_ = os.Setenv("QDRANT_VECTOR_SIZE", "0")
			},
			wantErr: true,
		},
		{
			name: "invalid retrieval enhancement",
			setupEnv: func(t *testing.T) {
				_ = os.Setenv("OPENAI_API_KEY", "test-key")
				_ = os.Setenv("RETRIEVAL_ENHANCEMENT", "sometimes")
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			setupEnv: func(t *testing.T) {
				_ = os.Setenv("OPENAI_API_KEY", "test-key")
				_ = os.Setenv("LOG_LEVEL", "verbose")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			tt.setupEnv(t)

			cfg, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Fatal("Load() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if tt.checkConfig != nil {
				tt.checkConfig(t, cfg)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "info", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "ERROR", want: slog.LevelError},
		{in: "trace", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLogLevel(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatal("parseLogLevel() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseLogLevel() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

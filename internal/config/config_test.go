package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		wantPanic bool
	}{
		{
			name:      "variable set",
			key:       "TEST_VAR",
			value:     "test_value",
			wantPanic: false,
		},
		{
			name:      "variable not set",
			key:       "TEST_VAR_MISSING",
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnv() should have panicked")
					}
				}()
			}

			result := requireEnv(tt.key)
			if !tt.wantPanic && result != tt.value {
				t.Errorf("requireEnv() = %v, want %v", result, tt.value)
			}
		})
	}
}

func TestLoadRequiresRedisAddr(t *testing.T) {
	t.Setenv("POKEDEX_REDIS_ADDR", "")

	defer func() {
		if r := recover(); r == nil {
			t.Error("Load() should panic without POKEDEX_REDIS_ADDR")
		}
	}()
	Load()
}

func TestLoadPasswordRequired(t *testing.T) {
	t.Setenv("POKEDEX_REDIS_ADDR", "localhost:6379")
	t.Setenv("POKEDEX_REDIS_PASSWORD_REQUIRED", "true")
	t.Setenv("POKEDEX_REDIS_PASSWORD", "")

	defer func() {
		if r := recover(); r == nil {
			t.Error("Load() should panic when a password is required but missing")
		}
	}()
	Load()
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POKEDEX_REDIS_ADDR", "localhost:6379")
	t.Setenv("POKEDEX_CATALOG_URL", "http://catalog.local/api/v2/")
	t.Setenv("POKEDEX_ALLOWED_HOSTS", `"dex.domain.ext", *.lan`)

	cfg := Load()

	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %q, want :8080", cfg.ListenPort)
	}
	if cfg.Catalog.BaseURL != "http://catalog.local/api/v2" {
		t.Errorf("Catalog.BaseURL = %q, trailing slash should be trimmed", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.Timeout != 0 {
		t.Errorf("Catalog.Timeout = %v, want transport default (0)", cfg.Catalog.Timeout)
	}
	if len(cfg.AllowedHosts) != 2 || cfg.AllowedHosts[0] != "dex.domain.ext" || cfg.AllowedHosts[1] != "*.lan" {
		t.Errorf("AllowedHosts = %v", cfg.AllowedHosts)
	}
	if cfg.AllowedCIDRS != nil {
		t.Errorf("AllowedCIDRS = %v, want nil", cfg.AllowedCIDRS)
	}
	if cfg.FavoritesSeedFile != "" {
		t.Errorf("FavoritesSeedFile = %q, want empty", cfg.FavoritesSeedFile)
	}
}

func TestLoadTUI(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("POKEDEX_SQLITE_PATH", filepath.Join(dir, "dex.db"))
	t.Setenv("POKEDEX_CATALOG_RPS", "2.5")

	cfg := LoadTUI()

	if cfg.SQLitePath != filepath.Join(dir, "dex.db") {
		t.Errorf("SQLitePath = %q", cfg.SQLitePath)
	}
	if cfg.LogFile == "" {
		t.Error("LogFile should default to a file so the terminal stays clean")
	}
	if cfg.Ephemeral {
		t.Error("Ephemeral should default to false")
	}
	if cfg.Catalog.RPS != 2.5 {
		t.Errorf("Catalog.RPS = %v, want 2.5", cfg.Catalog.RPS)
	}
}

func TestGetenvFloat(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      float64
		expected float64
	}{
		{name: "valid", value: "3.5", def: 1, expected: 3.5},
		{name: "invalid uses default", value: "fast", def: 10, expected: 10},
		{name: "non positive uses default", value: "-1", def: 10, expected: 10},
		{name: "missing uses default", value: "", def: 4, expected: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_FLOAT", tt.value)
			if got := getenvFloat("TEST_FLOAT", tt.def); got != tt.expected {
				t.Errorf("getenvFloat() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "single", input: "10.0.0.0/8", expected: []string{"10.0.0.0/8"}},
		{name: "quoted with spaces", input: ` "a" , 'b',,c `, expected: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitAndTrim(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("splitAndTrim() = %v, want %v", result, tt.expected)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("splitAndTrim()[%d] = %v, want %v", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{
			name:     "valid duration",
			key:      "TEST_DURATION",
			value:    "5s",
			def:      1 * time.Second,
			expected: 5 * time.Second,
		},
		{
			name:     "invalid duration uses default",
			key:      "TEST_DURATION_INVALID",
			value:    "invalid",
			def:      10 * time.Second,
			expected: 10 * time.Second,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_DURATION_MISSING",
			value:    "",
			def:      15 * time.Second,
			expected: 15 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			result := mustDuration(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      bool
		expected bool
	}{
		{name: "true value", value: "true", def: false, expected: true},
		{name: "false value", value: "false", def: true, expected: false},
		{name: "invalid value uses default", value: "invalid", def: true, expected: true},
		{name: "missing variable uses default", value: "", def: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)

			result := mustBool("TEST_BOOL", tt.def)
			if result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}

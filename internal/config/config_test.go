package config

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv resets every variable LoadFromEnv reads so tests start from defaults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "LOG_LEVEL", "HTTP_ADDR", "DATA_SOURCE", "DATA_PATH",
		"DB_DRIVER", "DB_DSN", "SQLITE_PATH", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS",
		"DB_CONN_MAX_LIFETIME", "SQLITE_LOG_SQL", "CHART_MAX_POINTS",
		"AUTHOR_NAME", "DATA_SOURCE_URL", "AUTHOR_EMAIL", "AUTHOR_PROFILE", "AUTHOR_PROFILE_URL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	got, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v, want nil", err)
	}

	if got.AppEnv != "dev" {
		t.Errorf("AppEnv = %q, want %q", got.AppEnv, "dev")
	}
	if got.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want %v", got.LogLevel, slog.LevelInfo)
	}
	if got.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want %q", got.HTTPAddr, ":8080")
	}
	if got.DataSource != DataSourceCSV {
		t.Errorf("DataSource = %q, want %q", got.DataSource, DataSourceCSV)
	}
	if filepath.Base(got.DataPath) != "main_data.csv" || !filepath.IsAbs(got.DataPath) {
		t.Errorf("DataPath = %q, want absolute path ending in main_data.csv", got.DataPath)
	}
	if got.SQLiteDriver != "sqlite3" {
		t.Errorf("SQLiteDriver = %q, want sqlite3", got.SQLiteDriver)
	}
	if got.SQLitePath != "data/airquality.db" {
		t.Errorf("SQLitePath = %q, want data/airquality.db", got.SQLitePath)
	}
	if got.SQLiteMaxOpenConns != 1 || got.SQLiteMaxIdleConns != 1 {
		t.Errorf("pool = (%d, %d), want (1, 1)", got.SQLiteMaxOpenConns, got.SQLiteMaxIdleConns)
	}
	if got.SQLiteConnMaxLifetime != 0 {
		t.Errorf("SQLiteConnMaxLifetime = %v, want 0", got.SQLiteConnMaxLifetime)
	}
	if got.SQLiteLogSQL {
		t.Error("SQLiteLogSQL = true, want false")
	}
	if got.ChartMaxPoints != 2000 {
		t.Errorf("ChartMaxPoints = %d, want 2000", got.ChartMaxPoints)
	}
	if got.AuthorName == "" || got.DataSourceURL == "" {
		t.Errorf("attribution defaults empty: %+v", got)
	}
	if got.AuthorEmail != "mdpranajaya@gmail.com" || got.AuthorProfile != "mdprana" {
		t.Errorf("author defaults = %q, %q", got.AuthorEmail, got.AuthorProfile)
	}
	if got.AuthorProfileURL != "https://www.dicoding.com/users/mdprana/academies" {
		t.Errorf("AuthorProfileURL = %q", got.AuthorProfileURL)
	}
}

func TestLoadFromEnv_AppEnv_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		appEnv string
	}{
		{name: "staging", appEnv: "staging"},
		{name: "uppercase invalid", appEnv: "DEV"},
		{name: "random", appEnv: "whatever"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("APP_ENV", tt.appEnv)

			if _, err := LoadFromEnv(); err == nil {
				t.Fatalf("LoadFromEnv() error = nil, want non-nil")
			}
		})
	}
}

func TestLoadFromEnv_DataSource(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "csv", in: "csv", want: DataSourceCSV},
		{name: "sqlite mixed case", in: " SQLite ", want: DataSourceSQLite},
		{name: "postgres rejected", in: "postgres", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("DATA_SOURCE", tt.in)

			got, err := LoadFromEnv()
			if tt.wantErr {
				if err == nil {
					t.Fatal("LoadFromEnv() error = nil, want non-nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadFromEnv() error = %v, want nil", err)
			}
			if got.DataSource != tt.want {
				t.Errorf("DataSource = %q, want %q", got.DataSource, tt.want)
			}
		})
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_PATH", " /srv/data/beijing.csv ")
	t.Setenv("SQLITE_PATH", "/tmp/aq.db")
	t.Setenv("DB_MAX_OPEN_CONNS", "4")
	t.Setenv("DB_CONN_MAX_LIFETIME", "5m")
	t.Setenv("SQLITE_LOG_SQL", "true")
	t.Setenv("CHART_MAX_POINTS", "500")
	t.Setenv("AUTHOR_NAME", "Data Team")
	t.Setenv("AUTHOR_EMAIL", " team@example.com ")

	got, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v, want nil", err)
	}
	if got.DataPath != "/srv/data/beijing.csv" {
		t.Errorf("DataPath = %q", got.DataPath)
	}
	if got.SQLitePath != "/tmp/aq.db" {
		t.Errorf("SQLitePath = %q", got.SQLitePath)
	}
	if got.SQLiteMaxOpenConns != 4 {
		t.Errorf("SQLiteMaxOpenConns = %d, want 4", got.SQLiteMaxOpenConns)
	}
	if got.SQLiteConnMaxLifetime != 5*time.Minute {
		t.Errorf("SQLiteConnMaxLifetime = %v, want 5m", got.SQLiteConnMaxLifetime)
	}
	if !got.SQLiteLogSQL {
		t.Error("SQLiteLogSQL = false, want true")
	}
	if got.ChartMaxPoints != 500 {
		t.Errorf("ChartMaxPoints = %d, want 500", got.ChartMaxPoints)
	}
	if got.AuthorName != "Data Team" {
		t.Errorf("AuthorName = %q", got.AuthorName)
	}
	if got.AuthorEmail != "team@example.com" {
		t.Errorf("AuthorEmail = %q", got.AuthorEmail)
	}
}

func TestLoadFromEnv_InvalidNumbers(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "open conns not int", key: "DB_MAX_OPEN_CONNS", val: "many"},
		{name: "idle conns negative", key: "DB_MAX_IDLE_CONNS", val: "-1"},
		{name: "lifetime garbage", key: "DB_CONN_MAX_LIFETIME", val: "soon"},
		{name: "chart points too small", key: "CHART_MAX_POINTS", val: "1"},
		{name: "log sql not bool", key: "SQLITE_LOG_SQL", val: "sometimes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			if _, err := LoadFromEnv(); err == nil {
				t.Fatalf("LoadFromEnv() with %s=%q error = nil, want non-nil", tt.key, tt.val)
			}
		})
	}
}

func TestParseLogLevel_Valid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want slog.Level
	}{
		{name: "debug", in: "debug", want: slog.LevelDebug},
		{name: "info", in: "info", want: slog.LevelInfo},
		{name: "warn", in: "warn", want: slog.LevelWarn},
		{name: "warning", in: "warning", want: slog.LevelWarn},
		{name: "error", in: "error", want: slog.LevelError},
		{name: "case insensitive", in: "DeBuG", want: slog.LevelDebug},
		{name: "trims whitespace", in: "  warn \n", want: slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if err != nil {
				t.Fatalf("ParseLogLevel(%q) error = %v, want nil", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseLogLevel_Invalid(t *testing.T) {
	for _, in := range []string{"", "nope", "warns", "1"} {
		got, err := ParseLogLevel(in)
		if err == nil {
			t.Fatalf("ParseLogLevel(%q) error = nil, want non-nil", in)
		}
		// For invalid inputs, function returns LevelInfo along with an error.
		if got != slog.LevelInfo {
			t.Errorf("ParseLogLevel(%q) = %v, want %v on error", in, got, slog.LevelInfo)
		}
	}
}

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DataSourceCSV    = "csv"
	DataSourceSQLite = "sqlite"

	defaultDataFile      = "main_data.csv"
	defaultDataSourceURL = "https://drive.google.com/file/d/1RhU3gJlkteaAQfyn9XOVAz7a5o1-etgr/view"
	defaultAuthorName    = "Made Pranajaya Dibyacita"
	defaultAuthorEmail   = "mdpranajaya@gmail.com"
	defaultAuthorProfile = "mdprana"
	defaultProfileURL    = "https://www.dicoding.com/users/mdprana/academies"
)

type Config struct {
	AppEnv   string
	LogLevel slog.Level
	HTTPAddr string

	// DataSource selects where observations are read from: "csv" or "sqlite".
	DataSource string
	// DataPath is the CSV dataset. Defaults to main_data.csv next to the executable.
	DataPath string

	SQLiteDriver          string
	SQLiteDSN             string
	SQLitePath            string
	SQLiteMaxOpenConns    int
	SQLiteMaxIdleConns    int
	SQLiteConnMaxLifetime time.Duration
	SQLiteLogSQL          bool

	// ChartMaxPoints caps the number of points drawn per line chart.
	ChartMaxPoints int

	AuthorName    string
	DataSourceURL string
	// AuthorEmail, AuthorProfile and AuthorProfileURL fill the sidebar's
	// "About the Author" block.
	AuthorEmail      string
	AuthorProfile    string
	AuthorProfileURL string
}

// LoadFromEnv reads configuration from the environment. A .env file in the
// working directory is loaded first when present; real env vars win.
func LoadFromEnv() (Config, error) {
	_ = godotenv.Load()

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	switch appEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", appEnv)
	}

	logLevelStr := strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	if logLevelStr == "" {
		logLevelStr = "info"
	}
	level, err := ParseLogLevel(logLevelStr)
	if err != nil {
		return Config{}, err
	}

	httpAddr := strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if httpAddr == "" {
		httpAddr = ":8080"
	}

	dataSource := strings.ToLower(strings.TrimSpace(os.Getenv("DATA_SOURCE")))
	if dataSource == "" {
		dataSource = DataSourceCSV
	}
	switch dataSource {
	case DataSourceCSV, DataSourceSQLite:
	default:
		return Config{}, fmt.Errorf("invalid DATA_SOURCE %q (allowed: csv, sqlite)", dataSource)
	}

	dataPath := strings.TrimSpace(os.Getenv("DATA_PATH"))
	if dataPath == "" {
		dataPath, err = defaultDataPath()
		if err != nil {
			return Config{}, err
		}
	}

	driver := strings.TrimSpace(os.Getenv("DB_DRIVER"))
	if driver == "" {
		driver = "sqlite3"
	}
	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	sqlitePath := strings.TrimSpace(os.Getenv("SQLITE_PATH"))
	if sqlitePath == "" {
		sqlitePath = "data/airquality.db"
	}

	maxOpenConns, err := intFromEnv("DB_MAX_OPEN_CONNS", 1, 0)
	if err != nil {
		return Config{}, err
	}
	maxIdleConns, err := intFromEnv("DB_MAX_IDLE_CONNS", 1, 0)
	if err != nil {
		return Config{}, err
	}

	connMaxLifetimeStr := strings.TrimSpace(os.Getenv("DB_CONN_MAX_LIFETIME"))
	if connMaxLifetimeStr == "" {
		connMaxLifetimeStr = "0s"
	}
	connMaxLifetime, err := time.ParseDuration(connMaxLifetimeStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid DB_CONN_MAX_LIFETIME %q: %w", connMaxLifetimeStr, err)
	}

	logSQL := false
	if s := strings.TrimSpace(os.Getenv("SQLITE_LOG_SQL")); s != "" {
		logSQL, err = strconv.ParseBool(s)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SQLITE_LOG_SQL %q: %w", s, err)
		}
	}

	chartMaxPoints, err := intFromEnv("CHART_MAX_POINTS", 2000, 2)
	if err != nil {
		return Config{}, err
	}

	authorName := strings.TrimSpace(os.Getenv("AUTHOR_NAME"))
	if authorName == "" {
		authorName = defaultAuthorName
	}
	dataSourceURL := strings.TrimSpace(os.Getenv("DATA_SOURCE_URL"))
	if dataSourceURL == "" {
		dataSourceURL = defaultDataSourceURL
	}

	authorEmail := stringFromEnv("AUTHOR_EMAIL", defaultAuthorEmail)
	authorProfile := stringFromEnv("AUTHOR_PROFILE", defaultAuthorProfile)
	authorProfileURL := stringFromEnv("AUTHOR_PROFILE_URL", defaultProfileURL)

	return Config{
		AppEnv:                appEnv,
		LogLevel:              level,
		HTTPAddr:              httpAddr,
		DataSource:            dataSource,
		DataPath:              dataPath,
		SQLiteDriver:          driver,
		SQLiteDSN:             dsn,
		SQLitePath:            sqlitePath,
		SQLiteMaxOpenConns:    maxOpenConns,
		SQLiteMaxIdleConns:    maxIdleConns,
		SQLiteConnMaxLifetime: connMaxLifetime,
		SQLiteLogSQL:          logSQL,
		ChartMaxPoints:        chartMaxPoints,
		AuthorName:            authorName,
		DataSourceURL:         dataSourceURL,
		AuthorEmail:           authorEmail,
		AuthorProfile:         authorProfile,
		AuthorProfileURL:      authorProfileURL,
	}, nil
}

// defaultDataPath resolves main_data.csv relative to the running executable.
func defaultDataPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), defaultDataFile), nil
}

func stringFromEnv(key, def string) string {
	if s := strings.TrimSpace(os.Getenv(key)); s != "" {
		return s
	}
	return def
}

func intFromEnv(key string, def int, min int) (int, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	if n < min {
		return 0, fmt.Errorf("invalid %s %d (must be >= %d)", key, n, min)
	}
	return n, nil
}

func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}

package db

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"

	"legal-backend/internal/shared/telemetry"
)

// Options controls the connection pool and startup connectivity.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
	// ConnectAttempts bounds the pings tried before Connect gives up.
	ConnectAttempts int
	// RetryDelay is the wait after the first failed ping; it doubles each time.
	RetryDelay time.Duration
}

var openDB = sql.Open

// DefaultServerOptions suits the long-running API, which may start before
// the database accepts connections.
func DefaultServerOptions() Options {
	return Options{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxIdleTime: 2 * time.Minute,
		ConnMaxLifetime: time.Hour,
		PingTimeout:     5 * time.Second,
		ConnectAttempts: 5,
		RetryDelay:      time.Second,
	}
}

// DefaultCLIOptions suits short-lived commands (migrate, seed-lawyers).
func DefaultCLIOptions() Options {
	return Options{
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxIdleTime: 2 * time.Minute,
		ConnMaxLifetime: time.Hour,
		PingTimeout:     5 * time.Second,
		ConnectAttempts: 1,
	}
}

// OptionsFromEnv overrides defaults with DB_* environment variables.
// Values that fail to parse are logged and ignored.
func OptionsFromEnv(defaults Options) Options {
	v := viper.New()
	v.AutomaticEnv()

	opts := defaults
	envInt(v, "db_max_open_conns", &opts.MaxOpenConns)
	envInt(v, "db_max_idle_conns", &opts.MaxIdleConns)
	envInt(v, "db_connect_attempts", &opts.ConnectAttempts)
	envDuration(v, "db_conn_max_lifetime", &opts.ConnMaxLifetime)
	envDuration(v, "db_conn_max_idle_time", &opts.ConnMaxIdleTime)
	envDuration(v, "db_ping_timeout", &opts.PingTimeout)
	envDuration(v, "db_retry_delay", &opts.RetryDelay)
	return opts
}

// Connect opens a pgx-backed *sql.DB and pings it until it answers or the
// attempts run out. The returned pool is meant to be shared.
func Connect(ctx context.Context, databaseURL string, opts Options) (*sql.DB, error) {
	if databaseURL = trimmed(databaseURL); databaseURL == "" {
		return nil, eris.New("DATABASE_URL is empty")
	}

	db, err := openDB("pgx", databaseURL)
	if err != nil {
		return nil, eris.Wrap(err, "open database")
	}
	applyOptions(db, opts)

	if err := pingWithRetry(ctx, db, opts); err != nil {
		db.Close()
		return nil, err
	}

	stats := db.Stats()
	telemetry.Info("db.connected", map[string]any{
		"open":     stats.OpenConnections,
		"idle":     stats.Idle,
		"max_open": stats.MaxOpenConnections,
	})
	return db, nil
}

func pingWithRetry(ctx context.Context, db *sql.DB, opts Options) error {
	attempts := max(opts.ConnectAttempts, 1)
	timeout := opts.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	delay := opts.RetryDelay

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		err = db.PingContext(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		telemetry.Warn("db.ping_retry", map[string]any{"attempt": attempt, "error": err, "retry_in": delay.String()})
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return eris.Wrap(ctx.Err(), "ping database")
		}
		delay *= 2
	}
	return eris.Wrapf(err, "ping database after %d attempts", attempts)
}

func applyOptions(db *sql.DB, opts Options) {
	if opts.MaxOpenConns <= 0 {
		opts.MaxOpenConns = 10
	}
	if opts.MaxIdleConns <= 0 {
		opts.MaxIdleConns = 5
	}
	if opts.ConnMaxLifetime <= 0 {
		opts.ConnMaxLifetime = time.Hour
	}
	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	if opts.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}
}

func envInt(v *viper.Viper, key string, dst *int) {
	raw := trimmed(v.GetString(key))
	if raw == "" {
		return
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		telemetry.Warn("db.env_invalid", map[string]any{"key": key, "error": err})
		return
	}
	*dst = n
}

func envDuration(v *viper.Viper, key string, dst *time.Duration) {
	raw := trimmed(v.GetString(key))
	if raw == "" {
		return
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		telemetry.Warn("db.env_invalid", map[string]any{"key": key, "error": err})
		return
	}
	*dst = d
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

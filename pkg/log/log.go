// Package log provides a zerolog logger that writes to the console or, once
// Init is called, stores JSON entries in an SQLite database.
package log

import (
	"database/sql"
	"errors"
	"fmt"
	stdlog "log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"des-go/pkg/appdir"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

var (
	writeSinceStart        atomic.Int64
	pkgLogger              = zerolog.Nop()
	dbWriterInstance       *sqliteWriter
	dbHandle               *sql.DB
	mu                     sync.RWMutex // guards dbHandle and pkgLogger across Init/Close
	zerologTimeFieldFormat = time.RFC3339Nano

	ErrNotInitialized = errors.New("log: logger not initialized, call log.Init() first")
)

type sqliteWriter struct {
	db   *sql.DB
	stmt *sql.Stmt
	mu   sync.Mutex
}

func newSQLiteWriter(dbPath string) (*sqliteWriter, *sql.DB, error) {
	dsn := fmt.Sprintf("%s?_pragma=journal_mode=wal&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open sqlite db %s: %w", dbPath, err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping sqlite db %s: %w", dbPath, err)
	}

	createTableSQL := `
    CREATE TABLE IF NOT EXISTS logs (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        inserted_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL,
        log_data TEXT NOT NULL
    );`
	if _, err = db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to create logs table: %w", err)
	}

	for _, idx := range []string{
		`CREATE INDEX IF NOT EXISTS idx_logs_json_time ON logs (json_extract(log_data, '$.time'));`,
		`CREATE INDEX IF NOT EXISTS idx_logs_json_level ON logs (json_extract(log_data, '$.level'));`,
	} {
		if _, err = db.Exec(idx); err != nil {
			stdlog.Printf("Warning: failed to create log index: %v\n", err)
		}
	}

	stmt, err := db.Prepare(`INSERT INTO logs (log_data) VALUES (?)`)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	return &sqliteWriter{db: db, stmt: stmt}, db, nil
}

func (w *sqliteWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err = w.stmt.Exec(string(p)); err != nil {
		stdlog.Printf("ERROR writing log to SQLite: %v\n", err)
		return 0, err
	}
	writeSinceStart.Add(1)
	return len(p), nil
}

func (w *sqliteWriter) close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var firstErr error
	if w.stmt != nil {
		if err := w.stmt.Close(); err != nil {
			firstErr = fmt.Errorf("error closing statement: %w", err)
		}
		w.stmt = nil
	}
	if w.db != nil {
		err := w.db.Close()
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("error closing db: %w", err)
		} else if err != nil {
			firstErr = fmt.Errorf("%v; error closing db: %w", firstErr, err)
		}
		w.db = nil
	}
	return firstErr
}

// SetStd sends log output to stderr in console format at the given level.
func SetStd(level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	pkgLogger = zerolog.New(zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})).
		Level(level).With().Timestamp().Logger()
}

// Init opens dbFile (relative names live in the app directory) and routes
// all subsequent log output into it.
func Init(dbFile string) error {
	if dbFile == "" {
		return errors.New("logger needs an explicit dbFile")
	}
	path := appdir.Path(dbFile)

	mu.Lock()
	defer mu.Unlock()

	if dbWriterInstance != nil {
		return fmt.Errorf("logger already initialized")
	}

	writer, db, err := newSQLiteWriter(path)
	if err != nil {
		return fmt.Errorf("failed to create SQLite writer: %w", err)
	}
	dbWriterInstance = writer
	dbHandle = db
	writeSinceStart.Store(0)

	zerolog.TimeFieldFormat = zerologTimeFieldFormat
	pkgLogger = zerolog.New(dbWriterInstance).With().Timestamp().Logger()
	return nil
}

func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if dbWriterInstance == nil {
		return nil
	}
	dbHandle = nil
	dbWriter := dbWriterInstance
	dbWriterInstance = nil
	pkgLogger = zerolog.Nop()

	writerLogger := zerolog.New(dbWriter).With().Timestamp().Logger()
	writerLogger.Log().Msg("closing SQLite logger")

	if err := dbWriter.close(); err != nil {
		stdlog.Printf("Error closing SQLite logger: %v\n", err)
		return fmt.Errorf("error closing SQLite logger: %w", err)
	}
	return nil
}

func logger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := pkgLogger
	return &l
}

// Logger returns the current package logger, e.g. for request middleware.
func Logger() zerolog.Logger { return *logger() }

func Debug() *zerolog.Event { return logger().Debug() }
func Info() *zerolog.Event  { return logger().Info() }
func Warn() *zerolog.Event  { return logger().Warn() }
func Error() *zerolog.Event { return logger().Error() }
func Fatal() *zerolog.Event { return logger().Fatal() }
func Log() *zerolog.Event   { return logger().Log() }

// Printf sends an info event. Arguments are handled in the manner of
// fmt.Printf.
func Printf(format string, v ...interface{}) {
	logger().Info().CallerSkipFrame(1).Msgf(format, v...)
}

func Fatalf(format string, v ...any) {
	logger().Fatal().Msgf(format, v...)
}

type LogEntry struct {
	ID         int64
	InsertedAt time.Time
	LogData    string // raw JSON
}

const DefaultLimit = 100

func getHandle() (*sql.DB, error) {
	mu.RLock()
	defer mu.RUnlock()
	if dbHandle == nil {
		return nil, ErrNotInitialized
	}
	return dbHandle, nil
}

// parseDBTimestamp tries common SQLite timestamp formats.
func parseDBTimestamp(ts string) time.Time {
	formats := []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, ts); err == nil {
			return t
		}
	}
	return time.Time{}
}

func scanEntries(rows *sql.Rows) ([]LogEntry, error) {
	defer rows.Close()
	var logs []LogEntry
	for rows.Next() {
		var entry LogEntry
		var insertedAtStr string
		if err := rows.Scan(&entry.ID, &insertedAtStr, &entry.LogData); err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}
		entry.InsertedAt = parseDBTimestamp(insertedAtStr)
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating log rows: %w", err)
	}
	return logs, nil
}

// GetLogsSinceStart returns every entry written since Init in this process.
func GetLogsSinceStart() ([]LogEntry, error) {
	return GetLastNLogs(int(writeSinceStart.Load()))
}

// GetLastNLogs retrieves the most recent n entries, oldest first.
func GetLastNLogs(n int) ([]LogEntry, error) {
	handle, err := getHandle()
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return []LogEntry{}, nil
	}
	rows, err := handle.Query(`SELECT id, inserted_at, log_data FROM logs ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query last %d logs: %w", n, err)
	}
	logs, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(logs)-1; i < j; i, j = i+1, j-1 {
		logs[i], logs[j] = logs[j], logs[i]
	}
	return logs, nil
}

// GetLogsBetween retrieves entries whose event time lies in [start, end],
// in event time order. A limit <= 0 means DefaultLimit.
func GetLogsBetween(start, end time.Time, limit int) ([]LogEntry, error) {
	handle, err := getHandle()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	startTimeStr := start.Format(zerologTimeFieldFormat)
	endTimeStr := end.Format(zerologTimeFieldFormat)

	query := `
        SELECT id, inserted_at, log_data
        FROM logs
        WHERE json_extract(log_data, '$.time') >= ? AND json_extract(log_data, '$.time') <= ?
        ORDER BY json_extract(log_data, '$.time') ASC, id ASC
        LIMIT ?`
	rows, err := handle.Query(query, startTimeStr, endTimeStr, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query logs between %s and %s: %w", startTimeStr, endTimeStr, err)
	}
	return scanEntries(rows)
}

// GetLogsSince is GetLogsBetween with end set to now.
func GetLogsSince(start time.Time, limit int) ([]LogEntry, error) {
	return GetLogsBetween(start, time.Now(), limit)
}

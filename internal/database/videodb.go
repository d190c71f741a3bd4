package database

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/parsavid/vidharvest/internal/model"
)

// VideoDB provides SQLite-based storage for discovered videos, their
// subtitles, and crawl run summaries.
//
// Design decision: We use a single database file shared by all crawl
// runs rather than a file per run. This keeps cross-run deduplication
// (HasVideo) a single indexed lookup and makes stats and export
// queries trivial.
type VideoDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures VideoDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a VideoDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*VideoDB, error) {
	dbPath := filepath.Join(dbDir, "vidharvest.db")

	// Check if we should create the database or require it to exist
	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		// Ensure directory exists
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Build connection string
	// We use modernc.org/sqlite which uses a different connection string format.
	// When CreateIfNotExists is false, we use mode=rw to prevent creating new files.
	// When CreateIfNotExists is true, we use mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	// SQLite only supports one writer; a single connection avoids
	// SQLITE_BUSY errors when crawl workers persist concurrently
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	vdb := &VideoDB{
		db:     db,
		dbPath: dbPath,
	}

	// Enable WAL mode if requested
	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Create tables
	if err := vdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return vdb, nil
}

// Close closes the database connection.
func (vdb *VideoDB) Close() error {
	return vdb.db.Close()
}

// Path returns the path of the underlying database file.
func (vdb *VideoDB) Path() string {
	return vdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (vdb *VideoDB) createTables() error {
	schema := `
	-- Videos store one row per discovered video across all runs
	CREATE TABLE IF NOT EXISTS videos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		video_id TEXT NOT NULL UNIQUE,
		url TEXT NOT NULL,
		title TEXT,
		description TEXT,
		channel_id TEXT,
		channel_title TEXT,
		depth INTEGER DEFAULT 0,
		language_score REAL DEFAULT 0,
		accepted INTEGER DEFAULT 0,
		discovered_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_videos_accepted ON videos(accepted);
	CREATE INDEX IF NOT EXISTS idx_videos_channel ON videos(channel_id);
	CREATE INDEX IF NOT EXISTS idx_videos_discovered ON videos(discovered_at);

	-- Subtitles store one row per (video, language, source) artifact.
	-- file_path is NULL when the download failed; the row survives so
	-- the failure stays visible instead of being silently dropped.
	CREATE TABLE IF NOT EXISTS subtitles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		video_id TEXT NOT NULL,
		language TEXT NOT NULL,
		source TEXT NOT NULL,
		format TEXT,
		content TEXT,
		file_path TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(video_id, language, source)
	);

	CREATE INDEX IF NOT EXISTS idx_subtitles_video ON subtitles(video_id);
	CREATE INDEX IF NOT EXISTS idx_subtitles_language ON subtitles(language);

	-- Crawl runs store one summary row per run
	CREATE TABLE IF NOT EXISTS crawl_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL UNIQUE,
		seed_urls TEXT NOT NULL,
		videos_found INTEGER DEFAULT 0,
		videos_accepted INTEGER DEFAULT 0,
		videos_downloaded INTEGER DEFAULT 0,
		subtitles_extracted INTEGER DEFAULT 0,
		skipped_existing INTEGER DEFAULT 0,
		errors INTEGER DEFAULT 0,
		urls_visited INTEGER DEFAULT 0,
		termination TEXT,
		started_at DATETIME,
		finished_at DATETIME
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON crawl_runs(started_at);
	`

	_, err := vdb.db.ExecContext(context.Background(), schema)
	return err
}

// videoColumns is the column list scanned into a model.VideoNode.
// Order must match the Scan calls in GetVideo and queryVideos.
const videoColumns = "video_id, url, title, description, channel_id, channel_title, depth, language_score, accepted, discovered_at"

// UpsertVideo inserts or updates a video row.
// Uses UPSERT keyed on video_id so the store holds exactly one row per
// video. The first discovery timestamp is preserved across updates;
// everything else reflects the latest upsert.
func (vdb *VideoDB) UpsertVideo(ctx context.Context, v *model.VideoNode) error {
	discoveredAt := v.DiscoveredAt
	if discoveredAt.IsZero() {
		discoveredAt = time.Now()
	}

	accepted := 0
	if v.Accepted {
		accepted = 1
	}

	query := `
	INSERT INTO videos (video_id, url, title, description, channel_id, channel_title, depth, language_score, accepted, discovered_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(video_id) DO UPDATE SET
		url = excluded.url,
		title = excluded.title,
		description = excluded.description,
		channel_id = excluded.channel_id,
		channel_title = excluded.channel_title,
		depth = excluded.depth,
		language_score = excluded.language_score,
		accepted = excluded.accepted,
		updated_at = CURRENT_TIMESTAMP
	`

	_, err := vdb.db.ExecContext(ctx, query,
		v.VideoID,
		v.URL,
		v.Title,
		v.Description,
		v.ChannelID,
		v.ChannelTitle,
		v.Depth,
		v.LanguageScore,
		accepted,
		formatTimestamp(discoveredAt),
	)
	if err != nil {
		return &PersistenceError{Op: "upsert video", Key: v.VideoID, Err: err}
	}

	return nil
}

// GetVideo retrieves a video by its id.
// Returns nil without error if the video is not stored.
func (vdb *VideoDB) GetVideo(ctx context.Context, videoID string) (*model.VideoNode, error) {
	query := `
	SELECT ` + videoColumns + `
	FROM videos
	WHERE video_id = ?
	`

	var v model.VideoNode
	var accepted int
	var discoveredAt string

	err := vdb.db.QueryRowContext(ctx, query, videoID).Scan(
		&v.VideoID,
		&v.URL,
		&v.Title,
		&v.Description,
		&v.ChannelID,
		&v.ChannelTitle,
		&v.Depth,
		&v.LanguageScore,
		&accepted,
		&discoveredAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get video: %w", err)
	}

	v.Accepted = accepted != 0
	v.DiscoveredAt = parseTimestamp(discoveredAt)

	return &v, nil
}

// HasVideo reports whether a video with the given id is already stored.
// The crawler uses this for cross-run deduplication before fetching.
func (vdb *VideoDB) HasVideo(ctx context.Context, videoID string) (bool, error) {
	query := `SELECT COUNT(*) FROM videos WHERE video_id = ?`

	var count int
	if err := vdb.db.QueryRowContext(ctx, query, videoID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check video: %w", err)
	}

	return count > 0, nil
}

// UpsertSubtitle inserts or updates a subtitle row.
// Identity is the (video_id, language, source) tuple; re-recording the
// same subtitle replaces its format, content, and file path while
// keeping the original created_at.
func (vdb *VideoDB) UpsertSubtitle(ctx context.Context, s *model.SubtitleRecord) error {
	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
	INSERT INTO subtitles (video_id, language, source, format, content, file_path, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(video_id, language, source) DO UPDATE SET
		format = excluded.format,
		content = excluded.content,
		file_path = excluded.file_path
	`

	_, err := vdb.db.ExecContext(ctx, query,
		s.VideoID,
		s.Language,
		string(s.Source),
		s.Format,
		s.Content,
		nullString(s.FilePath),
		formatTimestamp(createdAt),
	)
	if err != nil {
		return &PersistenceError{Op: "upsert subtitle", Key: s.VideoID, Err: err}
	}

	return nil
}

// GetSubtitle retrieves a subtitle row by its identity tuple.
// Returns nil without error if no such row exists.
func (vdb *VideoDB) GetSubtitle(ctx context.Context, videoID, language string, source model.SubtitleSource) (*model.SubtitleRecord, error) {
	query := `
	SELECT video_id, language, source, format, content, file_path, created_at
	FROM subtitles
	WHERE video_id = ? AND language = ? AND source = ?
	`

	var rec model.SubtitleRecord
	var sourceStr string
	var filePath sql.NullString
	var createdAt string

	err := vdb.db.QueryRowContext(ctx, query, videoID, language, string(source)).Scan(
		&rec.VideoID,
		&rec.Language,
		&sourceStr,
		&rec.Format,
		&rec.Content,
		&filePath,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subtitle: %w", err)
	}

	rec.Source = model.ParseSubtitleSource(sourceStr)
	rec.FilePath = filePath.String
	rec.CreatedAt = parseTimestamp(createdAt)

	return &rec, nil
}

// VideosMissingSubtitles returns accepted videos that have no stored
// subtitle file for the given language, oldest discovery first.
// A subtitle row whose download failed (NULL file_path) still counts as
// missing, so resumed runs retry it.
func (vdb *VideoDB) VideosMissingSubtitles(ctx context.Context, language string) ([]*model.VideoNode, error) {
	query := `
	SELECT ` + videoColumns + `
	FROM videos
	WHERE accepted = 1
	  AND NOT EXISTS (
	    SELECT 1 FROM subtitles
	    WHERE subtitles.video_id = videos.video_id
	      AND subtitles.language = ?
	      AND subtitles.file_path IS NOT NULL
	      AND subtitles.file_path != ''
	  )
	ORDER BY discovered_at, id
	`

	return vdb.queryVideos(ctx, query, language)
}

// Stats returns row counts across all tables.
func (vdb *VideoDB) Stats(ctx context.Context) (*model.StoreStats, error) {
	stats := &model.StoreStats{
		SubtitlesByLanguage: make(map[string]int),
	}

	if err := vdb.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM videos`).Scan(&stats.Videos); err != nil {
		return nil, fmt.Errorf("failed to count videos: %w", err)
	}
	if err := vdb.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM videos WHERE accepted = 1`).Scan(&stats.AcceptedVideos); err != nil {
		return nil, fmt.Errorf("failed to count accepted videos: %w", err)
	}
	if err := vdb.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM subtitles`).Scan(&stats.Subtitles); err != nil {
		return nil, fmt.Errorf("failed to count subtitles: %w", err)
	}
	if err := vdb.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM crawl_runs`).Scan(&stats.CrawlRuns); err != nil {
		return nil, fmt.Errorf("failed to count crawl runs: %w", err)
	}

	rows, err := vdb.db.QueryContext(ctx, `SELECT language, COUNT(*) FROM subtitles GROUP BY language`)
	if err != nil {
		return nil, fmt.Errorf("failed to count subtitles by language: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var language string
		var count int
		if err := rows.Scan(&language, &count); err != nil {
			return nil, fmt.Errorf("failed to scan language count: %w", err)
		}
		stats.SubtitlesByLanguage[language] = count
	}

	return stats, rows.Err()
}

// SaveRunSummary inserts or updates the stored summary of a crawl run.
// Keyed on run_id, so re-saving a finalized run updates its counters in
// place. The start time is preserved from the first save.
func (vdb *VideoDB) SaveRunSummary(ctx context.Context, sum *model.CrawlRunSummary) error {
	seedsJSON, err := json.Marshal(sum.SeedURLs)
	if err != nil {
		return &PersistenceError{Op: "save run summary", Key: sum.RunID, Err: err}
	}

	var finishedAt sql.NullString
	if !sum.FinishedAt.IsZero() {
		finishedAt = sql.NullString{String: formatTimestamp(sum.FinishedAt), Valid: true}
	}

	query := `
	INSERT INTO crawl_runs (run_id, seed_urls, videos_found, videos_accepted, videos_downloaded, subtitles_extracted, skipped_existing, errors, urls_visited, termination, started_at, finished_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(run_id) DO UPDATE SET
		seed_urls = excluded.seed_urls,
		videos_found = excluded.videos_found,
		videos_accepted = excluded.videos_accepted,
		videos_downloaded = excluded.videos_downloaded,
		subtitles_extracted = excluded.subtitles_extracted,
		skipped_existing = excluded.skipped_existing,
		errors = excluded.errors,
		urls_visited = excluded.urls_visited,
		termination = excluded.termination,
		finished_at = excluded.finished_at
	`

	_, err = vdb.db.ExecContext(ctx, query,
		sum.RunID,
		string(seedsJSON),
		sum.VideosFound,
		sum.VideosAccepted,
		sum.VideosDownloaded,
		sum.SubtitlesExtracted,
		sum.SkippedExisting,
		sum.Errors,
		sum.URLsVisited,
		sum.Termination.String(),
		formatTimestamp(sum.StartedAt),
		finishedAt,
	)
	if err != nil {
		return &PersistenceError{Op: "save run summary", Key: sum.RunID, Err: err}
	}

	return nil
}

// RecentRuns returns stored run summaries, most recent first.
// n limits the result; n <= 0 returns all runs.
func (vdb *VideoDB) RecentRuns(ctx context.Context, n int) ([]*model.CrawlRunSummary, error) {
	if n <= 0 {
		n = -1 // SQLite treats a negative LIMIT as unlimited
	}

	query := `
	SELECT run_id, seed_urls, videos_found, videos_accepted, videos_downloaded, subtitles_extracted, skipped_existing, errors, urls_visited, termination, started_at, finished_at
	FROM crawl_runs
	ORDER BY started_at DESC, id DESC
	LIMIT ?
	`

	rows, err := vdb.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*model.CrawlRunSummary
	for rows.Next() {
		var sum model.CrawlRunSummary
		var seedsJSON string
		var termination string
		var startedAt string
		var finishedAt sql.NullString

		err := rows.Scan(
			&sum.RunID,
			&seedsJSON,
			&sum.VideosFound,
			&sum.VideosAccepted,
			&sum.VideosDownloaded,
			&sum.SubtitlesExtracted,
			&sum.SkippedExisting,
			&sum.Errors,
			&sum.URLsVisited,
			&termination,
			&startedAt,
			&finishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		// A malformed seed list loses the seeds, not the row
		if seedsJSON != "" {
			if err := json.Unmarshal([]byte(seedsJSON), &sum.SeedURLs); err != nil {
				sum.SeedURLs = nil
			}
		}
		sum.Termination = model.ParseTerminationReason(termination)
		sum.StartedAt = parseTimestamp(startedAt)
		if finishedAt.Valid {
			sum.FinishedAt = parseTimestamp(finishedAt.String)
		}

		runs = append(runs, &sum)
	}

	return runs, rows.Err()
}

// ExportFormat selects the serialization used by ExportVideos.
type ExportFormat string

// Export format constants.
const (
	// ExportCSV writes comma-separated values with a header row.
	ExportCSV ExportFormat = "csv"

	// ExportJSON writes an indented JSON array.
	ExportJSON ExportFormat = "json"
)

// ParseExportFormat converts a string to ExportFormat.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(s) {
	case "csv":
		return ExportCSV, nil
	case "json":
		return ExportJSON, nil
	default:
		return "", fmt.Errorf("unsupported export format: %q (want csv or json)", s)
	}
}

// ExportVideos writes every stored video to w in the given format,
// oldest discovery first.
func (vdb *VideoDB) ExportVideos(ctx context.Context, w io.Writer, format ExportFormat) error {
	switch format {
	case ExportCSV, ExportJSON:
	default:
		return fmt.Errorf("unsupported export format: %q (want csv or json)", format)
	}

	query := `
	SELECT ` + videoColumns + `
	FROM videos
	ORDER BY discovered_at, id
	`

	videos, err := vdb.queryVideos(ctx, query)
	if err != nil {
		return err
	}

	if format == ExportJSON {
		if videos == nil {
			videos = []*model.VideoNode{} // encode an empty array, not null
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(videos)
	}

	return writeVideosCSV(w, videos)
}

// writeVideosCSV writes videos as CSV with a header row.
func writeVideosCSV(w io.Writer, videos []*model.VideoNode) error {
	cw := csv.NewWriter(w)

	header := []string{"video_id", "url", "title", "description", "channel_id", "channel_title", "depth", "language_score", "accepted", "discovered_at"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, v := range videos {
		row := []string{
			v.VideoID,
			v.URL,
			v.Title,
			v.Description,
			v.ChannelID,
			v.ChannelTitle,
			strconv.Itoa(v.Depth),
			strconv.FormatFloat(v.LanguageScore, 'f', -1, 64),
			strconv.FormatBool(v.Accepted),
			v.DiscoveredAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// queryVideos runs a query selecting videoColumns and scans the rows.
func (vdb *VideoDB) queryVideos(ctx context.Context, query string, args ...interface{}) ([]*model.VideoNode, error) {
	rows, err := vdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	var videos []*model.VideoNode
	for rows.Next() {
		var v model.VideoNode
		var accepted int
		var discoveredAt string

		err := rows.Scan(
			&v.VideoID,
			&v.URL,
			&v.Title,
			&v.Description,
			&v.ChannelID,
			&v.ChannelTitle,
			&v.Depth,
			&v.LanguageScore,
			&accepted,
			&discoveredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}

		v.Accepted = accepted != 0
		v.DiscoveredAt = parseTimestamp(discoveredAt)
		videos = append(videos, &v)
	}

	return videos, rows.Err()
}

// nullString converts an empty string to a SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// formatTimestamp renders a time in the SQLite default datetime format.
// Times are stored in UTC so ordering inside SQLite behaves regardless
// of the host timezone.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	// Return zero time if no format matches
	// This is a fallback to avoid breaking functionality for edge cases
	return time.Time{}
}

package mapping

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/parsavid/vidharvest/internal/youtube"
)

// Absent is the literal token written in place of a path when the
// artifact was not produced. It is part of the file format, not an
// internal marker: readers of the ledger match on it.
const Absent = "N/A"

// Header is the first line of a fresh ledger file.
const Header = "URL | Video File | Farsi Subtitle | English Subtitle"

// fieldSep separates the columns of a row.
const fieldSep = " | "

// ErrClosed is returned when recording to a closed ledger.
var ErrClosed = errors.New("mapping: ledger closed")

// Record is one row of the ledger. Empty path fields are written as the
// Absent sentinel, never as empty strings.
type Record struct {
	// URL is the canonical watch URL the row describes.
	URL string

	// VideoFile is the local video file path, or Absent.
	VideoFile string

	// FarsiSubtitle is the local Farsi subtitle path, or Absent.
	FarsiSubtitle string

	// EnglishSubtitle is the local English subtitle path, or Absent.
	EnglishSubtitle string
}

// VideoID derives the video id from the record's URL.
// Ledger rows always carry canonical watch URLs, so this only returns ""
// for rows written by hand.
func (r Record) VideoID() string {
	id, ok := youtube.ExtractVideoID(r.URL)
	if !ok {
		return ""
	}
	return id
}

// Ledger is the append-only mapping file.
//
// Design decision: We append one full line per record with O_APPEND and
// fsync rather than rewriting the file because:
//  1. A crash can never corrupt rows already on disk
//  2. Resumed runs append superseding rows instead of editing old ones
//  3. Readers can tail the file while a crawl is running
// The cost is that the current state of a URL is the LAST row mentioning
// it; Summarize folds the history down for display.
type Ledger struct {
	// mu serializes writers within the process.
	mu sync.Mutex

	// f is the open ledger file.
	f *os.File

	// path is the ledger file location.
	path string
}

// Open opens the ledger at path, creating it (and its parent directories)
// with a header line if it does not exist yet. Existing rows are preserved.
func Open(path string) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("create ledger directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600) //nolint:gosec // User-provided ledger path is intentional
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	// A fresh file gets the header; an existing one keeps its contents.
	if info.Size() == 0 {
		if _, err := f.WriteString(Header + "\n"); err != nil {
			f.Close()
			return nil, fmt.Errorf("write ledger header: %w", err)
		}
		if err := f.Sync(); err != nil {
			f.Close()
			return nil, err
		}
	}

	return &Ledger{f: f, path: path}, nil
}

// Path returns the ledger file location.
func (l *Ledger) Path() string {
	return l.path
}

// Record appends one row to the ledger. The full line goes to the file in
// a single write followed by fsync, so readers never observe a partial
// row even if the process dies immediately after.
func (l *Ledger) Record(rec Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.f == nil {
		return ErrClosed
	}

	line := strings.Join([]string{
		sanitizeField(rec.URL),
		sanitizeField(rec.VideoFile),
		sanitizeField(rec.FarsiSubtitle),
		sanitizeField(rec.EnglishSubtitle),
	}, fieldSep) + "\n"

	if _, err := l.f.WriteString(line); err != nil {
		return fmt.Errorf("write ledger row: %w", err)
	}
	return l.f.Sync()
}

// ReadAll returns every record currently in the ledger file.
func (l *Ledger) ReadAll() ([]Record, error) {
	return ReadFile(l.path)
}

// Close closes the ledger file. Further Record calls return ErrClosed.
func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}

// ReadFile reads every record from the ledger at path. The header, blank
// lines, and malformed rows are skipped rather than failing the read: a
// ledger that survived a crash is still mostly useful.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided ledger path is intentional
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	records := make([]Record, 0)
	scanner := bufio.NewScanner(f)
	// Rows carry file paths and URLs; 1MB covers any sane line.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line == Header {
			continue
		}

		parts := strings.Split(line, fieldSep)
		if len(parts) < 4 {
			continue
		}

		records = append(records, Record{
			URL:             strings.TrimSpace(parts[0]),
			VideoFile:       strings.TrimSpace(parts[1]),
			FarsiSubtitle:   strings.TrimSpace(parts[2]),
			EnglishSubtitle: strings.TrimSpace(parts[3]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	return records, nil
}

// Summarize folds records down to one per URL, last row winning, with
// first-appearance order preserved. Resumed runs append superseding rows,
// so the last row is the current state of a URL.
func Summarize(records []Record) []Record {
	index := make(map[string]int)
	out := make([]Record, 0, len(records))

	for _, rec := range records {
		if i, ok := index[rec.URL]; ok {
			out[i] = rec
			continue
		}
		index[rec.URL] = len(out)
		out = append(out, rec)
	}

	return out
}

// sanitizeField makes a value safe to embed in a single ledger line.
// Empty values become the Absent sentinel; newlines would split the row
// and are replaced.
func sanitizeField(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return Absent
	}
	v = strings.ReplaceAll(v, "\n", " ")
	v = strings.ReplaceAll(v, "\r", " ")
	return v
}

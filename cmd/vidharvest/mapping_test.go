package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parsavid/vidharvest/internal/mapping"
)

// TestNewMappingCmd tests the mapping command creation.
func TestNewMappingCmd(t *testing.T) {
	t.Parallel()

	cmd := NewMappingCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "mapping" {
			t.Errorf("expected use 'mapping', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has latest flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("latest")
		if flag == nil {
			t.Fatal("expected latest flag to exist")
		}
		if flag.DefValue != "false" {
			t.Errorf("expected default 'false', got %q", flag.DefValue)
		}
	})

	t.Run("has mapping-file flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("mapping-file") == nil {
			t.Error("expected mapping-file flag to exist")
		}
	})
}

// writeLedgerHistory writes a three-row ledger where the first URL is
// harvested twice, the second row superseding the first.
func writeLedgerHistory(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mapping.txt")
	ledger, err := mapping.Open(path)
	if err != nil {
		t.Fatalf("failed to open ledger: %v", err)
	}

	rows := []mapping.Record{
		{
			URL:           "https://www.youtube.com/watch?v=aaaaaaaaaaa",
			FarsiSubtitle: "/data/subs/aaaaaaaaaaa_fa.srt",
		},
		{
			URL:       "https://www.youtube.com/watch?v=bbbbbbbbbbb",
			VideoFile: "/data/videos/bbbbbbbbbbb.mp4",
		},
		{
			URL:             "https://www.youtube.com/watch?v=aaaaaaaaaaa",
			FarsiSubtitle:   "/data/subs/aaaaaaaaaaa_fa.srt",
			EnglishSubtitle: "/data/subs/aaaaaaaaaaa_en.srt",
		},
	}
	for _, rec := range rows {
		if err := ledger.Record(rec); err != nil {
			t.Fatalf("failed to record ledger row: %v", err)
		}
	}

	if err := ledger.Close(); err != nil {
		t.Fatalf("failed to close ledger: %v", err)
	}
	return path
}

// TestRunMappingCmd tests printing the ledger.
func TestRunMappingCmd(t *testing.T) {
	t.Run("prints full history", func(t *testing.T) {
		clearCrawlEnv(t)
		path := writeLedgerHistory(t)

		cmd := NewMappingCmd()
		var buf bytes.Buffer
		cmd.SetOut(&buf)
		cmd.SetErr(&buf)
		cmd.SetArgs([]string{"--mapping-file", path})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		output := buf.String()

		if !strings.Contains(output, mapping.Header) {
			t.Errorf("expected header line, got:\n%s", output)
		}

		// Header plus all three history rows.
		lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
		if len(lines) != 4 {
			t.Errorf("expected 4 lines, got %d:\n%s", len(lines), output)
		}
		if strings.Count(output, "watch?v=aaaaaaaaaaa") != 2 {
			t.Errorf("expected both rows for the re-harvested URL, got:\n%s", output)
		}
	})

	t.Run("folds history with latest flag", func(t *testing.T) {
		clearCrawlEnv(t)
		path := writeLedgerHistory(t)

		cmd := NewMappingCmd()
		var buf bytes.Buffer
		cmd.SetOut(&buf)
		cmd.SetErr(&buf)
		cmd.SetArgs([]string{"--mapping-file", path, "--latest"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		output := buf.String()

		lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
		if len(lines) != 3 {
			t.Errorf("expected header and 2 folded rows, got %d:\n%s", len(lines), output)
		}
		if strings.Count(output, "watch?v=aaaaaaaaaaa") != 1 {
			t.Errorf("expected a single folded row per URL, got:\n%s", output)
		}
		// The folded row is the superseding one.
		if !strings.Contains(output, "/data/subs/aaaaaaaaaaa_en.srt") {
			t.Errorf("expected latest row with English subtitle, got:\n%s", output)
		}
	})

	t.Run("keeps absent markers verbatim", func(t *testing.T) {
		clearCrawlEnv(t)
		path := writeLedgerHistory(t)

		cmd := NewMappingCmd()
		var buf bytes.Buffer
		cmd.SetOut(&buf)
		cmd.SetErr(&buf)
		cmd.SetArgs([]string{"--mapping-file", path, "--latest"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// The video-only row has no subtitles on either side.
		wantRow := "https://www.youtube.com/watch?v=bbbbbbbbbbb | /data/videos/bbbbbbbbbbb.mp4 | N/A | N/A"
		if !strings.Contains(buf.String(), wantRow) {
			t.Errorf("expected row %q, got:\n%s", wantRow, buf.String())
		}
	})

	t.Run("returns error when ledger is missing", func(t *testing.T) {
		clearCrawlEnv(t)

		cmd := NewMappingCmd()
		var buf bytes.Buffer
		cmd.SetOut(&buf)
		cmd.SetErr(&buf)
		cmd.SetArgs([]string{"--mapping-file", filepath.Join(t.TempDir(), "missing.txt")})

		err := cmd.Execute()
		if err == nil {
			t.Fatal("expected error for missing ledger")
		}
		if !strings.Contains(err.Error(), "no mapping ledger") {
			t.Errorf("expected missing ledger error, got %v", err)
		}
	})
}

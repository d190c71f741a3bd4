package model

import (
	"path/filepath"
	"strings"
	"time"
)

// subtitleSourceUnknownStr is the string representation for unknown sources.
const subtitleSourceUnknownStr = "unknown"

// SubtitleSource identifies where subtitle content originated.
type SubtitleSource string

// Subtitle source constants.
const (
	// SubtitleSourceUnknown represents an unknown source.
	SubtitleSourceUnknown SubtitleSource = ""
	// SubtitleSourceManual represents subtitles uploaded by the creator.
	SubtitleSourceManual SubtitleSource = "manual"
	// SubtitleSourceAuto represents automatically generated subtitles.
	SubtitleSourceAuto SubtitleSource = "auto"
	// SubtitleSourceProvider represents subtitles obtained from an
	// external download provider, where manual/auto cannot be told apart.
	SubtitleSourceProvider SubtitleSource = "provider"
)

// String returns the string representation of the SubtitleSource.
func (s SubtitleSource) String() string {
	if s == SubtitleSourceUnknown {
		return subtitleSourceUnknownStr
	}
	return string(s)
}

// IsValid returns true if this is a known subtitle source.
func (s SubtitleSource) IsValid() bool {
	switch s {
	case SubtitleSourceManual, SubtitleSourceAuto, SubtitleSourceProvider:
		return true
	default:
		return false
	}
}

// ParseSubtitleSource converts a string to SubtitleSource.
func ParseSubtitleSource(s string) SubtitleSource {
	switch s {
	case "manual":
		return SubtitleSourceManual
	case "auto", "automatic":
		return SubtitleSourceAuto
	case "provider":
		return SubtitleSourceProvider
	default:
		return SubtitleSourceUnknown
	}
}

// Subtitle format constants. Providers serve SRT or WebVTT; anything
// else is stored as-is in the Format field.
const (
	// SubtitleFormatSRT is the SubRip format.
	SubtitleFormatSRT = "srt"
	// SubtitleFormatVTT is the WebVTT format.
	SubtitleFormatVTT = "vtt"
)

// SubtitleFormatFromPath derives the subtitle format from a file's
// extension. An absent artifact has no path and no format.
func SubtitleFormatFromPath(path string) string {
	if path == "" {
		return ""
	}
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

// SubtitleRecord represents one subtitle artifact for an accepted video.
// Identity is the (VideoID, Language, Source) tuple; the metadata store
// upserts on that key.
type SubtitleRecord struct {
	// VideoID is the video this subtitle belongs to.
	VideoID string `json:"video_id"`

	// Language is the subtitle language tag ("fa", "en").
	Language string `json:"language"`

	// Source identifies where the subtitle came from.
	Source SubtitleSource `json:"source"`

	// Format is the subtitle file format (SubtitleFormatSRT, SubtitleFormatVTT).
	Format string `json:"format,omitempty"`

	// Content is the subtitle text when it was loaded into memory.
	// May be empty if only a file reference exists.
	Content string `json:"content,omitempty"`

	// FilePath is the local path of the downloaded subtitle file.
	// Empty when the download attempt failed; the record still exists
	// so the failure is visible, not silently dropped.
	FilePath string `json:"file_path,omitempty"`

	// CreatedAt is when the record was first written.
	CreatedAt time.Time `json:"created_at"`
}

package download

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/parsavid/vidharvest/internal/model"
	"github.com/parsavid/vidharvest/internal/youtube"
)

// downsubName identifies the provider in errors and logs.
const downsubName = "downsub"

// subtitleLangRegex recognizes a language label in anchor text. The
// word boundaries keep "en" from matching inside "french".
var subtitleLangRegex = regexp.MustCompile(`\b(english|farsi|persian|fa|en)\b`)

// languageAliases normalizes matched labels to language tags.
var languageAliases = map[string]string{
	"farsi":   "fa",
	"persian": "fa",
	"fa":      "fa",
	"english": "en",
	"en":      "en",
}

// DownSub downloads subtitle files through a downsub-style service:
// POST the watch URL to the service's form, then scan the result page
// anchors for subtitle links labeled with a language.
type DownSub struct {
	providerClient

	// baseURL is the service's form endpoint.
	baseURL string

	// dir is where downloaded subtitle files land.
	dir string
}

// NewDownSub creates a subtitle provider for the service at baseURL,
// saving files under dir.
func NewDownSub(baseURL, dir string, opts ...ProviderOption) *DownSub {
	return &DownSub{
		providerClient: newProviderClient(downsubName, opts...),
		baseURL:        baseURL,
		dir:            dir,
	}
}

// DownloadSubtitles implements SubtitleDownloader. It prefers SRT over
// VTT when the service offers both, and saves the file as
// <dir>/<videoID>_<language>.<format>. The language accepts tags
// ("fa") and aliases ("farsi", "persian").
func (d *DownSub) DownloadSubtitles(ctx context.Context, videoID, language string) (string, error) {
	lang := strings.ToLower(language)
	if tag, ok := languageAliases[lang]; ok {
		lang = tag
	}

	watchURL := youtube.WatchURL(videoID)

	doc, pageURL, err := d.submitWatchURL(ctx, d.baseURL, url.Values{
		formFieldURL: {watchURL},
	})
	if err != nil {
		return "", &DownloadError{Provider: downsubName, VideoID: videoID, Err: err}
	}

	formats := subtitleLinks(doc, pageURL)[lang]
	if len(formats) == 0 {
		return "", &DownloadError{
			Provider: downsubName,
			VideoID:  videoID,
			Err:      fmt.Errorf("%w: %s", ErrNoSubtitleLink, lang),
		}
	}

	format := model.SubtitleFormatSRT
	fileURL, ok := formats[format]
	if !ok {
		format = model.SubtitleFormatVTT
		fileURL = formats[format]
	}

	path := filepath.Join(d.dir, fmt.Sprintf("%s_%s.%s", videoID, lang, format))
	if err := d.saveFile(ctx, fileURL, path); err != nil {
		return "", &DownloadError{Provider: downsubName, VideoID: videoID, Err: err}
	}

	d.logger.Debug("downloaded subtitles",
		"video_id", videoID,
		"language", lang,
		"format", format,
		"path", path,
	)

	return path, nil
}

// subtitleLinks scans result-page anchors for subtitle links, keyed by
// language tag and then format. A link qualifies when its href
// mentions "subtitle", ".srt", or ".vtt" and its anchor text names a
// language the collector understands. The first link per language and
// format wins.
func subtitleLinks(doc *goquery.Document, pageURL *url.URL) map[string]map[string]string {
	found := make(map[string]map[string]string)

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}

		lower := strings.ToLower(href)
		if !strings.Contains(lower, "subtitle") &&
			!strings.Contains(lower, ".srt") &&
			!strings.Contains(lower, ".vtt") {
			return
		}

		m := subtitleLangRegex.FindStringSubmatch(strings.ToLower(sel.Text()))
		if m == nil {
			return
		}
		lang := languageAliases[m[1]]

		format := model.SubtitleFormatVTT
		if strings.Contains(lower, ".srt") {
			format = model.SubtitleFormatSRT
		}

		if found[lang] == nil {
			found[lang] = make(map[string]string)
		}
		if _, exists := found[lang][format]; !exists {
			found[lang][format] = resolveHref(pageURL, href)
		}
	})

	return found
}

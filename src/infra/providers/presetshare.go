package providers

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/contre95/presetcli/src/features/caching"
	"github.com/contre95/presetcli/src/preset"
)

var htmlBreak = regexp.MustCompile(`<br ?/?>`)

var synthParams = map[preset.Synth]string{
	preset.SynthAny:   "",
	preset.SynthSerum: "1",
	preset.SynthVital: "2",
}

var genreParams = map[preset.Genre]string{
	preset.GenreAny:       "",
	preset.GenreHouse:     "4",
	preset.GenreSynthwave: "10",
	preset.GenreDnB:       "1",
}

var soundParams = map[preset.Sound]string{
	preset.SoundAny:        "",
	preset.SoundArp:        "1",
	preset.SoundAtmosphere: "14",
	preset.SoundBass:       "7",
	preset.SoundChord:      "10",
	preset.SoundDrone:      "13",
	preset.SoundDrums:      "3",
	preset.SoundFX:         "4",
	preset.SoundKeys:       "6",
	preset.SoundLead:       "11",
	preset.SoundMisc:       "18",
	preset.SoundPad:        "12",
	preset.SoundPluck:      "5",
	preset.SoundReese:      "8",
	preset.SoundSeq:        "2",
	preset.SoundStab:       "9",
	preset.SoundSub:        "17",
	preset.SoundSynth:      "16",
	preset.SoundVox:        "15",
}

var sortParams = map[preset.Sort]string{
	preset.SortRelevance:      "relevance",
	preset.SortEarliest:       "created_at",
	preset.SortMostLiked:      "likes",
	preset.SortMostDownloaded: "downloads",
	preset.SortMostCommented:  "comments",
	preset.SortRandom:         "random",
}

// PresetShareCatalog scrapes the presetshare.com search pages.
type PresetShareCatalog struct {
	baseURL string
	fetcher caching.Fetcher
}

// NewPresetShareCatalog creates a catalog client. The fetcher carries the session cookie.
func NewPresetShareCatalog(baseURL string, fetcher caching.Fetcher) *PresetShareCatalog {
	return &PresetShareCatalog{
		baseURL: strings.TrimRight(baseURL, "/"),
		fetcher: fetcher,
	}
}

// Provider returns the provider this catalog serves.
func (c *PresetShareCatalog) Provider() preset.Provider {
	return preset.PresetShare
}

// Search fetches one page of results. Premium entries are returned flagged, not dropped.
func (c *PresetShareCatalog) Search(ctx context.Context, opts preset.SearchOptions) (preset.SearchResults, error) {
	searchURL, err := c.searchURL(opts)
	if err != nil {
		return preset.SearchResults{}, err
	}

	slog.Debug("Searching presetshare", "url", searchURL)
	status, body, err := c.fetcher.Fetch(ctx, searchURL)
	if err != nil {
		return preset.SearchResults{}, &preset.FetchError{URL: searchURL, Err: err}
	}

	switch status {
	case http.StatusOK:
		return c.parseResults(body)
	case http.StatusNotFound:
		return preset.SearchResults{Results: []preset.SearchResult{}, Page: 1, TotalPages: 1}, nil
	default:
		return preset.SearchResults{}, &preset.FetchError{URL: searchURL, StatusCode: status}
	}
}

func (c *PresetShareCatalog) searchURL(opts preset.SearchOptions) (string, error) {
	instrument, ok := synthParams[opts.Synth]
	if !ok {
		return "", &preset.ParseError{Kind: "synth", Input: opts.Synth.String()}
	}
	genre, ok := genreParams[opts.Genre]
	if !ok {
		return "", &preset.ParseError{Kind: "genre", Input: opts.Genre.String()}
	}
	sound, ok := soundParams[opts.Sound]
	if !ok {
		return "", &preset.ParseError{Kind: "sound", Input: opts.Sound.String()}
	}
	order, ok := sortParams[opts.Sort]
	if !ok {
		return "", &preset.ParseError{Kind: "sort", Input: opts.Sort.String()}
	}
	page := opts.Page
	if page < 1 {
		page = 1
	}

	// Parameter order is kept stable; url.Values.Encode would sort the keys.
	query := strings.Join([]string{
		"query=" + url.QueryEscape(opts.Keywords),
		"instrument=" + instrument,
		"genre=" + genre,
		"type=" + sound,
		"orderby=" + order,
		"page=" + strconv.Itoa(page),
	}, "&")
	return fmt.Sprintf("%s/presets?%s", c.baseURL, query), nil
}

func (c *PresetShareCatalog) parseResults(body []byte) (preset.SearchResults, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return preset.SearchResults{}, &preset.ParseError{Kind: "markup", Input: "search page", Err: err}
	}

	page, totalPages := extractPagination(doc)

	results := []preset.SearchResult{}
	var parseErr error
	doc.Find(".preset-item").EachWithBreak(func(i int, s *goquery.Selection) bool {
		result, err := c.extractResult(s)
		if err != nil {
			parseErr = err
			return false
		}
		results = append(results, result)
		return true
	})
	if parseErr != nil {
		return preset.SearchResults{}, parseErr
	}

	return preset.SearchResults{Results: results, Page: page, TotalPages: totalPages}, nil
}

func (c *PresetShareCatalog) extractResult(s *goquery.Selection) (preset.SearchResult, error) {
	synthText := strings.ToLower(strings.TrimSpace(s.Find(".preset-item__info > .link-success").First().Text()))
	synth, err := preset.ParseSynth(synthText)
	if err == nil && synth == preset.SynthAny {
		err = &preset.ParseError{Kind: "synth", Input: synthText}
	}
	if err != nil {
		return preset.SearchResult{}, err
	}

	result := preset.SearchResult{
		Provider:  preset.PresetShare,
		IsPremium: true,
		Synth:     synth,
		Name:      strings.TrimSpace(s.Find(".preset-item__name").First().Text()),
	}

	button := s.Find("[data-author-name][data-preset-id]").First()
	if button.Length() > 0 {
		result.IsPremium = button.HasClass("for-subs")
		result.Author, _ = button.Attr("data-author-name")
		if raw, ok := button.Attr("data-preset-id"); ok {
			if id, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && id > 0 {
				result.ID = id
				result.DownloadURL = fmt.Sprintf("%s/download/index?id=%d", c.baseURL, id)
			}
		}
	}

	if title, ok := s.Find(".preset-item-info-handle2").First().Attr("data-pt-title"); ok {
		result.Description = htmlToText(title)
	}
	if source, ok := s.Find(".presetshare-player").First().Attr("data-source"); ok && source != "" {
		result.PreviewURL = c.baseURL + source
	}

	return result, nil
}

func extractPagination(doc *goquery.Document) (int, int) {
	page, total := 0, 0
	doc.Find("ul.paginator > li").Each(func(i int, s *goquery.Selection) {
		switch strings.TrimSpace(s.Text()) {
		case "<<", ">>":
			return
		}
		total++
		if s.HasClass("active") {
			page = total
		}
	})
	if page < 1 {
		page = 1
	}
	if total < page {
		total = page
	}
	return page, total
}

func htmlToText(raw string) string {
	return htmlBreak.ReplaceAllString(html.UnescapeString(raw), "\n")
}

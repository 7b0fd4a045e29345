package transcript

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const watchBaseURL = "https://www.youtube.com"

// Client fetches YouTube caption tracks over the public timedtext endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	language   string
}

type Option func(*Client)

// WithProxy routes all requests through an HTTP proxy. YouTube rate-limits
// datacenter IPs hard; the proxy URL carries any credentials.
func WithProxy(proxyURL *url.URL) Option {
	return func(c *Client) {
		c.httpClient.Transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
	}
}

// WithBaseURL redirects requests, used by tests.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(base, "/")
	}
}

// WithLanguage selects the caption language (default "en").
func WithLanguage(lang string) Option {
	return func(c *Client) {
		c.language = lang
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    watchBaseURL,
		language:   "en",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var videoIDRX = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ParseVideoID extracts the 11-character video ID from a watch URL, a
// youtu.be short link, or a bare ID.
func ParseVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if videoIDRX.MatchString(raw) {
		return raw, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrInvalidURL
	}
	if id := u.Query().Get("v"); videoIDRX.MatchString(id) {
		return id, nil
	}
	if strings.Contains(u.Host, "youtu.be") {
		if id := strings.Trim(u.Path, "/"); videoIDRX.MatchString(id) {
			return id, nil
		}
	}
	// Last resort: take whatever follows the first "=".
	if _, after, ok := strings.Cut(raw, "="); ok {
		after, _, _ = strings.Cut(after, "&")
		if videoIDRX.MatchString(after) {
			return after, nil
		}
	}
	return "", ErrInvalidURL
}

// Fetch retrieves and joins the caption snippets for a video.
func (c *Client) Fetch(ctx context.Context, videoID string) (string, error) {
	page, err := c.get(ctx, c.baseURL+"/watch?v="+url.QueryEscape(videoID))
	if err != nil {
		return "", err
	}

	track, err := pickTrack(page, c.language)
	if err != nil {
		return "", err
	}

	body, err := c.get(ctx, track)
	if err != nil {
		return "", err
	}

	return joinSnippets(body)
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept-Language", c.language)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transcript fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrVideoUnavailable
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transcript fetch: unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind,omitempty"`
}

// pickTrack locates the captionTracks array embedded in the watch page and
// returns the URL of the best track for lang. Manually authored tracks win
// over auto-generated ("asr") ones.
func pickTrack(page []byte, lang string) (string, error) {
	body := string(page)

	if strings.Contains(body, `"status":"ERROR"`) || strings.Contains(body, `"status":"LOGIN_REQUIRED"`) {
		return "", ErrVideoUnavailable
	}

	const marker = `"captionTracks":`
	start := strings.Index(body, marker)
	if start == -1 {
		return "", ErrTranscriptsDisabled
	}

	raw, err := clampArray(body[start+len(marker):])
	if err != nil {
		return "", ErrTranscriptsDisabled
	}

	var tracks []captionTrack
	if err := json.Unmarshal([]byte(raw), &tracks); err != nil {
		return "", fmt.Errorf("transcript fetch: parsing caption tracks: %w", err)
	}
	if len(tracks) == 0 {
		return "", ErrTranscriptsDisabled
	}

	var fallback string
	for _, t := range tracks {
		if t.LanguageCode != lang {
			continue
		}
		if t.Kind != "asr" {
			return t.BaseURL, nil
		}
		if fallback == "" {
			fallback = t.BaseURL
		}
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", ErrNoTranscript
}

// clampArray returns the leading JSON array of s, honoring quoting so
// brackets inside URLs do not end the scan early.
func clampArray(s string) (string, error) {
	if len(s) == 0 || s[0] != '[' {
		return "", fmt.Errorf("expected array")
	}
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			escaped = inString
		case '"':
			inString = !inString
		case '[':
			if !inString {
				depth++
			}
		case ']':
			if !inString {
				depth--
				if depth == 0 {
					return s[:i+1], nil
				}
			}
		}
	}
	return "", fmt.Errorf("unterminated array")
}

type timedText struct {
	XMLName xml.Name  `xml:"transcript"`
	Texts   []snippet `xml:"text"`
}

type snippet struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",chardata"`
}

func joinSnippets(body []byte) (string, error) {
	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", fmt.Errorf("transcript fetch: parsing timedtext: %w", err)
	}
	if len(tt.Texts) == 0 {
		return "", ErrNoTranscript
	}

	parts := make([]string, 0, len(tt.Texts))
	for _, s := range tt.Texts {
		t := strings.TrimSpace(strings.ReplaceAll(s.Text, "\n", " "))
		if t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " "), nil
}

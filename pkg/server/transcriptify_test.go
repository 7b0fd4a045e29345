package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nougat/pkg/transcript"
)

func fakeYouTube(t *testing.T, watchBody func(base string) string) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/watch":
			fmt.Fprint(w, watchBody(srv.URL))
		case "/api/timedtext":
			fmt.Fprint(w, `<transcript><text start="0" dur="1">raw transcript text</text></transcript>`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHandleTranscriptify(t *testing.T) {
	t.Run("cleans fetched transcript", func(t *testing.T) {
		srv := fakeYouTube(t, func(base string) string {
			return fmt.Sprintf(`"captionTracks":[{"baseUrl":"%s/api/timedtext","languageCode":"en"}]`, base)
		})
		stub := &stubInferencer{out: "Raw transcript text, cleaned up."}
		s := newTestServer(stub, transcript.NewClient(transcript.WithBaseURL(srv.URL)))

		rec := postJSON(s, "/nougat/transcriptify", `{"text":"https://www.youtube.com/watch?v=dQw4w9WgXcQ"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "cleaned up")
		assert.Contains(t, stub.user, "raw transcript text")
	})

	t.Run("caches the fetch between requests", func(t *testing.T) {
		var watchHits int
		srv := fakeYouTube(t, func(base string) string {
			watchHits++
			return fmt.Sprintf(`"captionTracks":[{"baseUrl":"%s/api/timedtext","languageCode":"en"}]`, base)
		})
		stub := &stubInferencer{out: "cleaned"}
		s := newTestServer(stub, transcript.NewClient(transcript.WithBaseURL(srv.URL)))

		for range 2 {
			rec := postJSON(s, "/nougat/transcriptify", `{"text":"https://www.youtube.com/watch?v=dQw4w9WgXcQ"}`)
			require.Equal(t, http.StatusOK, rec.Code)
		}
		assert.Equal(t, 1, watchHits)
	})

	t.Run("bad URL is a 400", func(t *testing.T) {
		s := newTestServer(&stubInferencer{}, nil)

		rec := postJSON(s, "/nougat/transcriptify", `{"text":"not a video url"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unavailable video is a 404", func(t *testing.T) {
		srv := fakeYouTube(t, func(string) string {
			return `{"playabilityStatus":{"status":"ERROR"}}`
		})
		s := newTestServer(&stubInferencer{}, transcript.NewClient(transcript.WithBaseURL(srv.URL)))

		rec := postJSON(s, "/nougat/transcriptify", `{"text":"dQw4w9WgXcQ"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("disabled captions are a 403", func(t *testing.T) {
		srv := fakeYouTube(t, func(string) string {
			return `<html>no captions on this one</html>`
		})
		s := newTestServer(&stubInferencer{}, transcript.NewClient(transcript.WithBaseURL(srv.URL)))

		rec := postJSON(s, "/nougat/transcriptify", `{"text":"dQw4w9WgXcQ"}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing language track is a 422", func(t *testing.T) {
		srv := fakeYouTube(t, func(base string) string {
			return fmt.Sprintf(`"captionTracks":[{"baseUrl":"%s/api/timedtext","languageCode":"de"}]`, base)
		})
		s := newTestServer(&stubInferencer{}, transcript.NewClient(transcript.WithBaseURL(srv.URL)))

		rec := postJSON(s, "/nougat/transcriptify", `{"text":"dQw4w9WgXcQ"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

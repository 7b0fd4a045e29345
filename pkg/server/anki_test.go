package server

import (
	"archive/zip"
	"bytes"
	"database/sql"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func buildDeck(t *testing.T, notes []string) []byte {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "collection.db")
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE notes (id INTEGER PRIMARY KEY, flds TEXT NOT NULL, tags TEXT NOT NULL DEFAULT '')`)
	require.NoError(t, err)
	for i, flds := range notes {
		_, err = db.Exec(`INSERT INTO notes (id, flds, tags) VALUES (?, ?, '')`, i+1, flds)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	raw, err := os.ReadFile(dbPath)
	require.NoError(t, err)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("collection.anki2")
	require.NoError(t, err)
	_, err = w.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func postDeck(t *testing.T, s *Server, payload []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("deck", "deck.apkg")
	require.NoError(t, err)
	_, err = fw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/nougat/import-anki", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func TestHandleImportAnki(t *testing.T) {
	t.Run("imports cards from an apkg", func(t *testing.T) {
		deck := buildDeck(t, []string{
			"Mitochondria\x1fPowerhouse of the cell",
			"Osmosis\x1fWater diffusion",
		})
		s := newTestServer(&stubInferencer{}, nil)

		rec := postDeck(t, s, deck)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"count":2`)
		assert.Contains(t, rec.Body.String(), "Mitochondria")
	})

	t.Run("missing file is a 400", func(t *testing.T) {
		s := newTestServer(&stubInferencer{}, nil)

		req := httptest.NewRequest(http.MethodPost, "/nougat/import-anki", nil)
		rec := httptest.NewRecorder()
		s.Echo.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed archive is a 400", func(t *testing.T) {
		s := newTestServer(&stubInferencer{}, nil)

		rec := postDeck(t, s, []byte("not a zip"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

// Package anki reads exported Anki decks (.apkg files). An apkg is a zip
// archive whose collection.anki2 member is a SQLite database; note fields
// live in the notes table, joined by a 0x1f separator.
package anki

import (
	"archive/zip"
	"database/sql"
	"fmt"
	"html"
	"io"
	"os"
	"regexp"
	"strings"

	_ "modernc.org/sqlite"
)

const fieldSeparator = "\x1f"

// Card is one imported note, reduced to its first two fields.
type Card struct {
	Front string   `json:"front"`
	Back  string   `json:"back"`
	Tags  []string `json:"tags,omitempty"`
}

// ReadDeck extracts the collection database from an apkg archive and returns
// its notes as cards.
func ReadDeck(r io.ReaderAt, size int64) ([]Card, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("anki import: not a zip archive: %w", err)
	}

	collection := pickCollection(zr)
	if collection == nil {
		return nil, fmt.Errorf("anki import: no collection database in archive")
	}

	path, err := extractToTemp(collection)
	if err != nil {
		return nil, err
	}
	defer os.Remove(path)

	return readNotes(path)
}

// pickCollection prefers the newer collection.anki21 over collection.anki2,
// matching how Anki itself resolves exports.
func pickCollection(zr *zip.Reader) *zip.File {
	var fallback *zip.File
	for _, f := range zr.File {
		switch f.Name {
		case "collection.anki21":
			return f
		case "collection.anki2":
			fallback = f
		}
	}
	return fallback
}

func extractToTemp(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("anki import: opening %s: %w", f.Name, err)
	}
	defer rc.Close()

	tmp, err := os.CreateTemp("", "anki-collection-*.db")
	if err != nil {
		return "", fmt.Errorf("anki import: %w", err)
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, rc); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("anki import: extracting %s: %w", f.Name, err)
	}
	return tmp.Name(), nil
}

func readNotes(path string) ([]Card, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("anki import: opening collection: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT flds, tags FROM notes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("anki import: reading notes: %w", err)
	}
	defer rows.Close()

	var cards []Card
	for rows.Next() {
		var flds, tags string
		if err := rows.Scan(&flds, &tags); err != nil {
			return nil, fmt.Errorf("anki import: scanning note: %w", err)
		}
		card, ok := cardFromNote(flds, tags)
		if ok {
			cards = append(cards, card)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("anki import: reading notes: %w", err)
	}
	return cards, nil
}

func cardFromNote(flds, tags string) (Card, bool) {
	fields := strings.Split(flds, fieldSeparator)
	front := StripHTML(fields[0])
	if front == "" {
		return Card{}, false
	}

	var back string
	if len(fields) > 1 {
		rest := make([]string, 0, len(fields)-1)
		for _, f := range fields[1:] {
			if f = StripHTML(f); f != "" {
				rest = append(rest, f)
			}
		}
		back = strings.Join(rest, "\n")
	}

	return Card{
		Front: front,
		Back:  back,
		Tags:  strings.Fields(tags),
	}, true
}

var (
	brRX  = regexp.MustCompile(`(?i)<br\s*/?>|</div>`)
	tagRX = regexp.MustCompile(`<[^>]*>`)
)

// StripHTML flattens an Anki field to plain text. Line-breaking tags become
// newlines, everything else is dropped, and entities are unescaped.
func StripHTML(s string) string {
	s = brRX.ReplaceAllString(s, "\n")
	s = tagRX.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(s)
}

package server

import (
	"bytes"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"nougat/pkg/anki"
)

// Deck uploads larger than this are rejected before parsing.
const maxDeckBytes = 64 << 20

// POST /nougat/import-anki
func (s *Server) handleImportAnki(c echo.Context) error {
	file, err := c.FormFile("deck")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "deck file is required")
	}
	if file.Size > maxDeckBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "deck file too large")
	}

	src, err := file.Open()
	if err != nil {
		log.Error("failed opening uploaded deck", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed reading upload")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxDeckBytes))
	if err != nil {
		log.Error("failed reading uploaded deck", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed reading upload")
	}

	cards, err := anki.ReadDeck(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		log.Warn("failed importing deck", "name", file.Filename, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "not a valid apkg deck")
	}
	log.Info("imported anki deck", "name", file.Filename, "cards", len(cards))

	return c.JSON(http.StatusOK, map[string]any{
		"cards": cards,
		"count": len(cards),
	})
}

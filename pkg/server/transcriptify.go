package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/openai/openai-go/v3"

	"nougat/pkg/transcript"
	"nougat/pkg/utils"
)

const transcriptChunkRunes = 8192 * 4

// POST /nougat/transcriptify
func (s *Server) handleTranscriptify(c echo.Context) error {
	var req TextRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid json")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	videoID, err := transcript.ParseVideoID(req.Text)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	raw, err := s.transcripts.Get(videoID)
	if err != nil {
		return transcriptError(videoID, err)
	}
	log.Info("fetched transcript", "video", videoID, "chars", len(raw))

	var cleaned []string
	for i, chunk := range utils.ChunkText(raw, transcriptChunkRunes) {
		params := &openai.ChatCompletionNewParams{
			MaxCompletionTokens: openai.Int(completionBudget(chunk)),
		}
		out, err := s.Inferencer.Infer(c.Request().Context(), params, transcriptPrompt, chunk)
		if err != nil {
			log.Error("transcript cleanup failed", "video", videoID, "chunk", i+1, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "inference failed")
		}
		if out = strings.TrimSpace(out); out != "" {
			cleaned = append(cleaned, out)
		}
	}

	return c.JSON(http.StatusOK, map[string]string{
		"transcript": strings.Join(cleaned, "\n\n"),
	})
}

// transcriptError maps the fetch failure taxonomy onto distinct statuses:
// a missing video is 404, captions turned off is 403, and a caption set with
// no usable track is 422.
func transcriptError(videoID string, err error) error {
	log.Warn("transcript fetch failed", "video", videoID, "error", err)
	switch {
	case errors.Is(err, transcript.ErrVideoUnavailable):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, transcript.ErrTranscriptsDisabled):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, transcript.ErrNoTranscript):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "transcript fetch failed")
	}
}

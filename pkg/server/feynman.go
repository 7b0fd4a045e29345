package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/openai/openai-go/v3"

	"nougat/pkg/schema"
	"nougat/pkg/utils"
)

type FeynmanRequest struct {
	Term     string `json:"term" validate:"required"`
	Text     string `json:"text" validate:"required"`
	Response string `json:"response" validate:"required"`
}

const maxMissedTerms = 8

// POST /nougat/feynman
func (s *Server) handleFeynman(c echo.Context) error {
	var req FeynmanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid json")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user := fmt.Sprintf("TERM:\n%s\n\nTEXT:\n%s\n\nRESPONSE:\n%s", req.Term, req.Text, req.Response)
	params := &openai.ChatCompletionNewParams{
		MaxCompletionTokens: openai.Int(completionBudget(user)),
		ResponseFormat:      schema.EvaluationResponseFormat(),
	}

	out, err := s.Inferencer.Infer(c.Request().Context(), params, feynmanPrompt, user)
	if err != nil {
		log.Error("feynman inference failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "inference failed")
	}

	var eval schema.Evaluation
	if err := json.Unmarshal([]byte(utils.ExtractJSON(out)), &eval); err != nil {
		log.Error("failed parsing feynman evaluation", "error", err)
		log.Debug("raw model output", "output", out)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed parsing model output")
	}

	// Missed terms come from a local word diff, not from the model.
	eval.MissedTerms = utils.MissingWords(req.Text, req.Response, maxMissedTerms)

	return c.JSON(http.StatusOK, map[string]any{"scores": eval})
}

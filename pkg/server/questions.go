package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/openai/openai-go/v3"

	"nougat/pkg/schema"
	"nougat/pkg/utils"
)

// TextRequest is the shared body for the text-synthesis routes. Difficulty,
// count, and citations are optional knobs carried into the prompt.
type TextRequest struct {
	Text       string `json:"text" validate:"required"`
	Difficulty string `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
	Count      int    `json:"count,omitempty" validate:"omitempty,min=1,max=50"`
	Citations  bool   `json:"citations,omitempty"`
}

// POST /nougat/tftext
func (s *Server) handleTrueFalse(c echo.Context) error {
	set, req, err := synthesize[schema.TrueFalseSet](c, s, trueFalsePrompt, schema.TrueFalseResponseFormat())
	if err != nil {
		return err
	}
	if req.Count > 0 && len(set.Questions) > req.Count {
		set.Questions = set.Questions[:req.Count]
	}
	return c.JSON(http.StatusOK, set)
}

// POST /nougat/mcqtext
func (s *Server) handleMultipleChoice(c echo.Context) error {
	set, req, err := synthesize[schema.MultipleChoiceSet](c, s, multipleChoicePrompt, schema.MultipleChoiceResponseFormat())
	if err != nil {
		return err
	}
	if req.Count > 0 && len(set.Questions) > req.Count {
		set.Questions = set.Questions[:req.Count]
	}
	return c.JSON(http.StatusOK, set)
}

// POST /nougat/fitb
func (s *Server) handleFillInBlank(c echo.Context) error {
	set, req, err := synthesize[schema.FillInBlankSet](c, s, fillInBlankPrompt, schema.FillInBlankResponseFormat())
	if err != nil {
		return err
	}
	if req.Count > 0 && len(set.Questions) > req.Count {
		set.Questions = set.Questions[:req.Count]
	}
	return c.JSON(http.StatusOK, set)
}

// synthesize runs the shared three-step flow of the text routes: bind the
// request, send the interpolated prompt to the model, and parse the cleaned
// output into T.
func synthesize[T any](c echo.Context, s *Server, system string, format openai.ChatCompletionNewParamsResponseFormatUnion) (*T, *TextRequest, error) {
	var req TextRequest
	if err := c.Bind(&req); err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid json")
	}
	if err := c.Validate(&req); err != nil {
		return nil, nil, err
	}
	req.Text = strings.TrimSpace(req.Text)

	system += promptDirectives(&req)
	user := "TEXT:\n" + req.Text

	params := &openai.ChatCompletionNewParams{
		MaxCompletionTokens: openai.Int(completionBudget(system + user)),
		ResponseFormat:      format,
	}

	out, err := s.Inferencer.Infer(c.Request().Context(), params, system, user)
	if err != nil {
		log.Error("inference failed", "path", c.Path(), "error", err)
		return nil, nil, echo.NewHTTPError(http.StatusInternalServerError, "inference failed")
	}

	var parsed T
	if err := json.Unmarshal([]byte(utils.ExtractJSON(out)), &parsed); err != nil {
		log.Error("failed parsing model output", "path", c.Path(), "error", err)
		log.Debug("raw model output", "output", out)
		return nil, nil, echo.NewHTTPError(http.StatusInternalServerError, "failed parsing model output")
	}
	return &parsed, &req, nil
}

// completionBudget sizes MaxCompletionTokens from the prompt length so long
// inputs get room for proportionally long outputs.
func completionBudget(prompt string) int64 {
	const floor = 4096
	n, err := utils.NumTokens(prompt)
	if err != nil {
		n = len(prompt) / 4
	}
	budget := int64(n) * 2
	if budget < floor {
		budget = floor
	}
	return budget
}

package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/openai/openai-go/v3"
	"github.com/segmentio/ksuid"

	"nougat/pkg/inference"
	"nougat/pkg/schema"
	"nougat/pkg/utils"
)

type ChatRequest struct {
	Message   string        `json:"message" validate:"required"`
	SessionID string        `json:"session_id,omitempty"`
	History   []schema.Turn `json:"history,omitempty"`
}

type SummarizeRequest struct {
	SessionID string        `json:"session_id,omitempty"`
	History   []schema.Turn `json:"history,omitempty"`
}

const maxSessionTurns = 100

// POST /nougat/chatbot
func (s *Server) handleChatbot(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid json")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	session, ok := schema.Session{}, false
	if req.SessionID != "" {
		session, ok = s.Sessions.Load(req.SessionID)
	}
	if !ok {
		session = schema.Session{
			ID:        ksuid.New().String(),
			Turns:     req.History,
			CreatedAt: now,
		}
	}

	session.Turns = append(session.Turns, schema.Turn{Role: "user", Content: req.Message})

	params := &openai.ChatCompletionNewParams{
		MaxCompletionTokens: openai.Int(2048),
		Temperature:         openai.Float(0.7),
	}
	reply, err := s.Inferencer.Chat(c.Request().Context(), params, tutorPrompt, toTurns(session.Turns))
	if err != nil {
		log.Error("chatbot inference failed", "session", session.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "inference failed")
	}
	reply = strings.TrimSpace(reply)

	session.Turns = append(session.Turns, schema.Turn{Role: "assistant", Content: reply})
	if len(session.Turns) > maxSessionTurns {
		session.Turns = session.Turns[len(session.Turns)-maxSessionTurns:]
	}
	session.UpdatedAt = now
	s.Sessions.Store(session.ID, session)

	return c.JSON(http.StatusOK, map[string]any{
		"reply":      reply,
		"session_id": session.ID,
	})
}

// POST /chatbot/summarize
func (s *Server) handleChatSummarize(c echo.Context) error {
	var req SummarizeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid json")
	}

	history := req.History
	if len(history) == 0 && req.SessionID != "" {
		session, ok := s.Sessions.Load(req.SessionID)
		if !ok {
			return echo.NewHTTPError(http.StatusNotFound, "unknown session")
		}
		history = session.Turns
	}
	if len(history) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "history or session_id is required")
	}

	user := renderHistory(history)
	params := &openai.ChatCompletionNewParams{
		MaxCompletionTokens: openai.Int(completionBudget(user)),
		ResponseFormat:      schema.ChatSummaryResponseFormat(),
	}

	out, err := s.Inferencer.Infer(c.Request().Context(), params, chatSummaryPrompt, user)
	if err != nil {
		log.Error("chat summarization failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "inference failed")
	}

	var summary schema.ChatSummary
	if err := json.Unmarshal([]byte(utils.ExtractJSON(out)), &summary); err != nil {
		log.Error("failed parsing chat summary", "error", err)
		log.Debug("raw model output", "output", out)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed parsing model output")
	}

	return c.JSON(http.StatusOK, summary)
}

func toTurns(turns []schema.Turn) []inference.Turn {
	out := make([]inference.Turn, 0, len(turns))
	for _, t := range turns {
		out = append(out, inference.Turn{Role: t.Role, Content: t.Content})
	}
	return out
}

func renderHistory(turns []schema.Turn) string {
	var b strings.Builder
	for _, t := range turns {
		label := "Student"
		if t.Role == "assistant" {
			label = "Tutor"
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(strings.TrimSpace(t.Content))
		b.WriteString("\n")
	}
	return b.String()
}

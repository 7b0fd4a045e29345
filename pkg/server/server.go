package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"nougat/pkg/flight"
	"nougat/pkg/inference"
	"nougat/pkg/schema"
	"nougat/pkg/transcript"
	"nougat/pkg/utils"
)

// SessionsFile is where tutoring sessions are persisted between runs.
const SessionsFile = "ChatSessions.json"

type Server struct {
	Echo       *echo.Echo
	Inferencer inference.Inferencer
	Sessions   *utils.SyncMap[string, schema.Session]
	Ctx        context.Context

	transcripts *flight.Cache[string, string]
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func NewServer(ctx context.Context, inf inference.Inferencer, fetcher *transcript.Client) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &requestValidator{validate: validator.New()}

	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	s := &Server{
		Echo:       e,
		Inferencer: inf,
		Sessions:   utils.NewSyncMap[string, schema.Session](),
		Ctx:        ctx,
	}
	s.transcripts = flight.New(time.Hour, func(id string) (string, error) {
		return fetcher.Fetch(ctx, id)
	})

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.Echo.GET("/", s.handleGetRoot)

	nougat := s.Echo.Group("/nougat")
	nougat.POST("/tftext", s.handleTrueFalse)
	nougat.POST("/mcqtext", s.handleMultipleChoice)
	nougat.POST("/fitb", s.handleFillInBlank)
	nougat.POST("/cards", s.handleCards)
	nougat.POST("/keyterms", s.handleKeyTerms)
	nougat.POST("/feynman", s.handleFeynman)
	nougat.POST("/chatbot", s.handleChatbot)
	nougat.POST("/transcriptify", s.handleTranscriptify)
	nougat.POST("/import-anki", s.handleImportAnki)

	s.Echo.POST("/chatbot/summarize", s.handleChatSummarize)
}

func (s *Server) Start(addr string) error {
	log.Info("server listening", "addr", addr)
	return s.Echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info("shutting down server")

	return errors.Join(
		utils.Save(SessionsFile, s.Sessions.Snapshot()),
		s.Echo.Shutdown(ctx),
	)
}

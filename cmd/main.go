package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/joho/godotenv/autoload"
	gommonlog "github.com/labstack/gommon/log"

	"nougat/pkg/inference"
	"nougat/pkg/schema"
	"nougat/pkg/server"
	"nougat/pkg/transcript"
	"nougat/pkg/utils"
)

func main() {
	ctx, done := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	inf, err := buildInferencer()
	if err != nil {
		log.Fatal("failed building inferencer", "error", err)
	}

	srv := server.NewServer(ctx, inf, buildFetcher())
	srv.Echo.Logger.SetLevel(gommonlog.INFO)
	if os.Getenv("DEBUG") != "" {
		srv.Echo.Logger.SetLevel(gommonlog.DEBUG)
		log.SetLevel(log.DebugLevel)
	}

	sessions, err := utils.Load[map[string]schema.Session](server.SessionsFile)
	if err == nil && sessions != nil {
		srv.Sessions.Replace(sessions)
		log.Info("loaded chat sessions", "count", len(sessions))
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn("failed loading chat sessions", "error", err)
	}

	addr := ":8080"
	if envAddr := os.Getenv("PORT"); envAddr != "" {
		addr = ":" + envAddr
	}

	finishedShutDown := make(chan struct{})
	go func() {
		<-ctx.Done()
		// The signal context is already canceled; draining needs its own
		// deadline.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown error", "error", err)
		}
		done()
		close(finishedShutDown)
	}()

	if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", "error", err)
	}
	<-finishedShutDown
}

// buildInferencer picks the upstream by which API key is configured.
// OpenRouter is the service's usual upstream; Gemini and OpenAI are direct
// alternatives.
func buildInferencer() (inference.Inferencer, error) {
	if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
		return inference.NewOpenRouterInferencer(key, os.Getenv("OPENROUTER_MODEL")), nil
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return inference.NewGeminiInferencer(key, os.Getenv("GEMINI_MODEL"))
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return inference.NewOpenAIInferencer(key, os.Getenv("OPENAI_MODEL")), nil
	}

	// No key configured: point the OpenAI client at a local
	// OpenAI-compatible server.
	openAI := inference.NewOpenAIInferencer("", os.Getenv("OPENAI_MODEL"))
	openAI.ChangeBaseURL("http://localhost:1234/v1")
	return openAI, nil
}

func buildFetcher() *transcript.Client {
	var opts []transcript.Option
	if raw := os.Getenv("TRANSCRIPT_PROXY_URL"); raw != "" {
		proxyURL, err := url.Parse(raw)
		if err != nil {
			log.Warn("invalid TRANSCRIPT_PROXY_URL, fetching directly", "error", err)
		} else {
			opts = append(opts, transcript.WithProxy(proxyURL))
		}
	}
	if lang := os.Getenv("TRANSCRIPT_LANGUAGE"); lang != "" {
		opts = append(opts, transcript.WithLanguage(lang))
	}
	return transcript.NewClient(opts...)
}

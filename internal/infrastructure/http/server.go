// Package http provides the HTTP server infrastructure.
// Framework layer: translates UI events into SessionManager calls and maps
// the domain failure taxonomy onto status codes and inline messages.
package http

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sanhariharan/Chat-With-Csv/internal/domain/entities"
	"github.com/sanhariharan/Chat-With-Csv/internal/domain/usecases"
	"github.com/sanhariharan/Chat-With-Csv/pkg/log"
)

//go:embed templates/index.html
var templatesFS embed.FS

// Server is the HTTP server for the chat UI and its JSON API.
type Server struct {
	sessions *usecases.SessionManager
	addr     string
	mode     string
}

// NewServer creates a new HTTP server.
func NewServer(sessions *usecases.SessionManager, port, mode string) *Server {
	return &Server{
		sessions: sessions,
		addr:     ":" + port,
		mode:     mode,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(s.mode)
	r := gin.New()
	r.Use(requestLogger(), gin.Recovery())

	r.GET("/", s.handleIndex)

	api := r.Group("/api")
	{
		api.POST("/upload", s.handleUpload)
		api.POST("/chat", s.handleChat)
		api.GET("/session", s.handleSession)
		api.GET("/health", s.handleHealth)
	}

	return r
}

// Start runs the HTTP server until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:        s.addr,
		Handler:     s.Router(),
		ReadTimeout: 30 * time.Second,
		// No write timeout: generation latency is unbounded.
	}

	log.Infof("chat-with-csv listening on %s", s.addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleIndex serves the embedded single-page UI.
func (s *Server) handleIndex(c *gin.Context) {
	page, err := templatesFS.ReadFile("templates/index.html")
	if err != nil {
		c.String(http.StatusInternalServerError, "ui unavailable")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// uploadResponse describes the session after a completed upload.
type uploadResponse struct {
	State    string `json:"state"`
	Source   string `json:"source"`
	Rows     int    `json:"rows"`
	Greeting string `json:"greeting"`
}

// handleUpload ingests one CSV file and resets the session around it.
func (s *Server) handleUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a CSV file is required"})
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".csv") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only .csv files are accepted"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload"})
		return
	}
	defer file.Close()

	session, err := s.sessions.Upload(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		log.Error("upload failed", err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, uploadResponse{
		State:    session.State.String(),
		Source:   session.SourceName,
		Rows:     session.DocCount,
		Greeting: fmt.Sprintf("Hello! Ask me anything about %s", session.SourceName),
	})
}

// chatRequest is the JSON body of a chat submission.
type chatRequest struct {
	Query string `json:"query"`
}

// chatResponse is the typed answer shape at the orchestrator boundary.
type chatResponse struct {
	Answer    string   `json:"answer"`
	Past      []string `json:"past"`
	Generated []string `json:"generated"`
}

// handleChat runs one chat turn against the active session.
func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	answer, session, err := s.sessions.Ask(c.Request.Context(), req.Query)
	if err != nil {
		log.Error("chat turn failed", err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, chatResponse{
		Answer:    answer,
		Past:      session.Transcript.Past,
		Generated: session.Transcript.Generated,
	})
}

// sessionResponse is the current session rendered for the page.
type sessionResponse struct {
	State     string   `json:"state"`
	Source    string   `json:"source,omitempty"`
	Rows      int      `json:"rows"`
	Past      []string `json:"past"`
	Generated []string `json:"generated"`
}

// handleSession lets the page rebuild its transcript after a reload.
func (s *Server) handleSession(c *gin.Context) {
	session := s.sessions.Session()
	c.JSON(http.StatusOK, sessionResponse{
		State:     session.State.String(),
		Source:    session.SourceName,
		Rows:      session.DocCount,
		Past:      session.Transcript.Past,
		Generated: session.Transcript.Generated,
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// statusFor maps the domain failure taxonomy onto HTTP status codes.
func statusFor(err error) int {
	var ingestErr *entities.IngestError
	var buildErr *entities.IndexBuildError
	if errors.As(err, &ingestErr) || errors.As(err, &buildErr) {
		return http.StatusBadRequest
	}
	if errors.Is(err, usecases.ErrNoIndex) {
		return http.StatusConflict
	}
	var embedErr *entities.EmbeddingError
	if errors.As(err, &embedErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// requestLogger logs each request with zap, the way the rest of the app logs.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Infow("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

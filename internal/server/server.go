// Package server exposes the interpreter over HTTP: a JSON chat endpoint,
// a WebSocket channel, liveness and Prometheus metrics.
package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sentry/internal/command"
	"sentry/internal/logging"
)

// Interpreter is what the transport needs from the interpretation layer.
type Interpreter interface {
	Interpret(ctx context.Context, userText, userName string) (string, error)
}

// Config carries the HTTP server settings.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server wires the gin engine, the interpreter and the metrics registry.
type Server struct {
	cfg      Config
	engine   *gin.Engine
	interp   Interpreter
	logger   logging.Logger
	metrics  *metrics
	upgrader websocket.Upgrader
	started  time.Time
}

type chatRequest struct {
	Message string `json:"message"`
	Name    string `json:"name"`
}

type chatResponse struct {
	Reply string `json:"reply"`
	Kind  string `json:"kind"`
}

type errorResponse struct {
	Error string `json:"error"`
}

const (
	kindText    = "text"
	kindCommand = "command"
	kindError   = "error"
)

// New builds the server and its routes.
func New(cfg Config, interp Interpreter, logger logging.Logger) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 60 * time.Second
	}

	s := &Server{
		cfg:     cfg,
		interp:  interp,
		logger:  logging.OrNop(logger),
		metrics: newMetrics(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		started: time.Now(),
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	corsConfig.AllowWebSockets = true
	engine.Use(cors.New(corsConfig))
	engine.Use(s.metrics.middleware())

	engine.POST("/chat", s.handleChat)
	engine.GET("/chat/ws", s.handleChatWS)
	engine.GET("/healthz", s.handleHealth)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))

	s.engine = engine
	return s
}

// Handler exposes the engine for httptest.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("interpreter server listening on %s", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	resp, status := s.interpret(c.Request.Context(), req)
	if status != http.StatusOK {
		c.JSON(status, errorResponse{Error: resp.Reply})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// interpret runs one chat turn and classifies the reply. On failure the
// returned Reply field carries the error text.
func (s *Server) interpret(ctx context.Context, req chatRequest) (chatResponse, int) {
	if strings.TrimSpace(req.Message) == "" {
		return chatResponse{Reply: "message is required"}, http.StatusBadRequest
	}

	reply, err := s.interp.Interpret(ctx, req.Message, req.Name)
	if err != nil {
		s.logger.Error("interpretation failed: %v", err)
		s.metrics.recordOutcome(kindError)
		return chatResponse{Reply: "Something went wrong with the AI model."}, http.StatusInternalServerError
	}

	kind := kindText
	if command.ParseReply(reply).IsCommand() {
		kind = kindCommand
	}
	s.metrics.recordOutcome(kind)
	return chatResponse{Reply: reply, Kind: kind}, http.StatusOK
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.started).String(),
	})
}

package monitor

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/PixPMusic/gopher-midi/internal/log"
	"github.com/PixPMusic/gopher-midi/midi"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StatsSource reports stream counters
type StatsSource interface {
	Stats() midi.Stats
}

// Server exposes live stream statistics, recent messages and an ad-hoc parser over HTTP
type Server struct {
	router   *gin.Engine
	server   *http.Server
	addr     string
	session  string
	started  time.Time
	registry *midi.Registry
	stats    StatsSource
	counts   func() map[string]uint64
	history  *History
	logger   *log.Logger
}

// Option configures a Server
type Option func(*Server)

// WithRouteCounts adds per route forward counts to /stats
func WithRouteCounts(counts func() map[string]uint64) Option {
	return func(s *Server) {
		s.counts = counts
	}
}

// NewServer instantiates the monitor. registry is used by /parse.
func NewServer(addr string, registry *midi.Registry, stats StatsSource, history *History, logger *log.Logger, opts ...Option) *Server {
	s := &Server{
		addr:     addr,
		session:  uuid.New().String(),
		started:  time.Now(),
		registry: registry,
		stats:    stats,
		history:  history,
		logger:   logger.With(log.LogParams{"service": "monitor"}),
	}
	for _, opt := range opts {
		opt(s)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(s.logMiddleware)

	router.GET("/session", s.handleSession)
	router.GET("/stats", s.handleStats)
	router.GET("/messages", s.handleMessages)
	router.GET("/types", s.handleTypes)
	router.POST("/parse", s.handleParse)

	s.router = router
	s.server = &http.Server{
		Addr:    addr,
		Handler: router,
	}
	return s
}

func (s *Server) logMiddleware(c *gin.Context) {
	start := time.Now()
	path := c.Request.URL.Path
	raw := c.Request.URL.RawQuery

	c.Next()

	end := time.Now()
	if raw != "" {
		path = path + "?" + raw
	}
	s.logger.With(log.LogParams{
		"latency":     end.Sub(start).String(),
		"client_ip":   c.ClientIP(),
		"method":      c.Request.Method,
		"status_code": c.Writer.Status(),
		"body_size":   c.Writer.Size(),
		"path":        path,
	}).Debug("Handled request")
}

func (s *Server) handleSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"id":      s.session,
		"started": s.started,
	})
}

func (s *Server) handleStats(c *gin.Context) {
	resp := gin.H{"stream": s.stats.Stats()}
	if s.counts != nil {
		resp["routes"] = s.counts()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleMessages(c *gin.Context) {
	limit := 0
	if l := c.Query("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, s.history.Last(limit))
}

func (s *Server) handleTypes(c *gin.Context) {
	types := s.registry.Types()
	names := make([]string, 0, len(types))
	for _, d := range types {
		names = append(names, d.Kind.String())
	}
	c.JSON(http.StatusOK, names)
}

type parseRequest struct {
	Hex     string `json:"hex" binding:"required"`
	Channel *int   `json:"channel"`
}

type parseResult struct {
	Message  string `json:"message,omitempty"`
	Kind     string `json:"kind,omitempty"`
	Consumed int    `json:"consumed"`
	Skipped  int    `json:"skipped"`
}

// handleParse runs the parser over the posted bytes until it asks for more
func (s *Server) handleParse(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.With(log.LogParams{"error": err.Error()}).Info("Bad parse request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to unmarshal request"})
		return
	}
	data, err := midi.ParseHex(req.Hex)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	channel := midi.AnyChannel
	if req.Channel != nil {
		ch, err := midi.ParseChannel(*req.Channel)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "channel must be -1 or 0-15"})
			return
		}
		channel = ch
	}

	results := []parseResult{}
	for {
		out := s.registry.Parse(data, channel)
		if out.Consumed == 0 {
			break
		}
		res := parseResult{Consumed: out.Consumed, Skipped: out.Skipped}
		if out.Message != nil {
			res.Message = out.Message.String()
			res.Kind = out.Message.Kind().String()
		}
		results = append(results, res)
		data = data[out.Consumed:]
	}
	c.JSON(http.StatusOK, gin.H{
		"results":   results,
		"remaining": midi.FormatHex(data),
	})
}

// Handler returns the HTTP handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves the API in the background
func (s *Server) Start() {
	go func() {
		s.logger.With(log.LogParams{
			"addr":    s.addr,
			"session": s.session,
		}).Info("Monitor starting")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.With(log.LogParams{
				"addr": s.addr,
				"err":  err.Error(),
			}).Error("Monitor closed")
		}
	}()
}

// Stop shuts the server down, waiting up to five seconds for requests in flight
func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Error("Monitor forcefully shutdown")
	}
	s.logger.Info("Monitor stopped")
}

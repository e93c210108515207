// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package serve exposes a stored knowledge graph over HTTP: entity
// pages with Turtle content negotiation, pattern queries, label search,
// and dataset statistics.
package serve

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/loregraph/loregraph/internal/export"
	"github.com/loregraph/loregraph/internal/graph"
	"github.com/loregraph/loregraph/internal/ontology"
	"github.com/loregraph/loregraph/internal/store"
	"github.com/loregraph/loregraph/pkg/types"
)

// Server serves a triple store over HTTP.
type Server struct {
	cfg types.ServeConfig
	log *logrus.Logger

	mu sync.RWMutex
	st *store.Store

	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New opens the store at cfg.DBPath and returns a server ready to run.
func New(cfg types.ServeConfig, log *logrus.Logger) (*Server, error) {
	st, err := store.Open(types.StoreConfig{DBPath: cfg.DBPath})
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	requestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "loregraph_http_requests_total",
		Help: "HTTP requests by method, route, and status.",
	}, []string{"method", "route", "status"})
	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "loregraph_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	registry.MustRegister(requestsTotal, requestDuration)

	return &Server{
		cfg:             cfg,
		log:             log,
		st:              st,
		registry:        registry,
		requestsTotal:   requestsTotal,
		requestDuration: requestDuration,
	}, nil
}

// Close releases the underlying store.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Close()
}

func (s *Server) store() *store.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st
}

// Router builds the gin engine with logging, metrics, and all routes.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.observe)

	r.GET("/healthz", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	r.GET("/api/stats", s.handleStats)
	r.GET("/api/query", s.handleQuery)
	r.GET("/api/search", s.handleSearch)
	r.GET("/api/entities", s.handleEntities)
	r.GET("/resource/:name", s.handleResource)
	return r
}

// observe logs each request with a minted request ID and feeds the
// prometheus counters.
func (s *Server) observe(c *gin.Context) {
	start := time.Now()
	requestID := uuid.NewString()
	c.Header("X-Request-ID", requestID)

	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	status := c.Writer.Status()
	elapsed := time.Since(start)

	s.requestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
	s.requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     status,
		"elapsed":    elapsed.String(),
	}).Info("request")
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleStats(c *gin.Context) {
	stats, err := s.store().Stats(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleQuery(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	sts, err := s.store().Match(c.Request.Context(),
		ontology.Expand(c.Query("s")),
		ontology.Expand(c.Query("p")),
		ontology.Expand(c.Query("o")),
		limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(sts), "triples": toJSON(sts)})
}

func (s *Server) handleSearch(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	hits, err := s.store().SearchLabels(c.Request.Context(), q, limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(hits), "results": hits})
}

func (s *Server) handleEntities(c *gin.Context) {
	class := c.Query("type")
	if class == "" {
		class = string(ontology.Person)
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	entities, err := s.store().Entities(c.Request.Context(), ontology.Expand(class), limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"type": ontology.Expand(class), "count": len(entities), "entities": entities})
}

func (s *Server) handleResource(c *gin.Context) {
	entity := string(ontology.Res(c.Param("name")))
	sts, err := s.store().Describe(c.Request.Context(), entity)
	if err != nil {
		s.fail(c, err)
		return
	}
	if len(sts) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown resource", "resource": entity})
		return
	}

	if strings.Contains(c.GetHeader("Accept"), "text/turtle") {
		g := graph.New()
		for _, st := range sts {
			g.InsertIfAbsent(st)
		}
		c.Header("Content-Type", "text/turtle; charset=utf-8")
		c.Status(http.StatusOK)
		if err := export.WriteTurtle(c.Writer, g); err != nil {
			s.log.WithError(err).Warn("writing turtle response")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"resource": entity, "triples": toJSON(sts)})
}

func (s *Server) fail(c *gin.Context, err error) {
	s.log.WithError(err).Error("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// tripleJSON is the wire shape of one triple.
type tripleJSON struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
	Literal   bool   `json:"literal"`
	Datatype  string `json:"datatype,omitempty"`
	Lang      string `json:"lang,omitempty"`
}

func toJSON(sts []graph.Statement) []tripleJSON {
	out := make([]tripleJSON, len(sts))
	for i, st := range sts {
		out[i] = tripleJSON{
			Subject:   string(st.Subject),
			Predicate: string(st.Predicate),
			Object:    st.Object.Value,
			Literal:   st.Object.Kind == graph.TermLiteral,
			Datatype:  st.Object.Datatype,
			Lang:      st.Object.Lang,
		}
	}
	return out
}

// Run serves until ctx is cancelled. With cfg.Watch set, the store
// reloads whenever the database file changes on disk.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.Addr, Handler: s.Router()}

	if s.cfg.Watch {
		stop, err := s.watch()
		if err != nil {
			return err
		}
		defer stop()
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.cfg.Addr).Info("serving")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// watch reloads the store when the database file is rewritten.
func (s *Server) watch() (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(s.cfg.DBPath)); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != s.cfg.DBPath || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				s.reload()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.WithError(err).Warn("watcher error")
			}
		}
	}()
	return func() { watcher.Close() }, nil
}

func (s *Server) reload() {
	fresh, err := store.Open(types.StoreConfig{DBPath: s.cfg.DBPath})
	if err != nil {
		s.log.WithError(err).Error("reloading store")
		return
	}
	s.mu.Lock()
	old := s.st
	s.st = fresh
	s.mu.Unlock()
	if err := old.Close(); err != nil {
		s.log.WithError(err).Warn("closing replaced store")
	}
	s.log.Info("store reloaded after database change")
}

package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/antoinebou12/horaire-search/internal/buildinfo"
	searcherrors "github.com/antoinebou12/horaire-search/internal/errors"
	"github.com/antoinebou12/horaire-search/internal/search"
)

// registerRoutes wires the reference endpoints onto the gin engine.
func (s *Server) registerRoutes() {
	s.router.GET("/", s.handleRoot)
	s.router.GET("/healthz", s.handleHealthz)
	s.router.GET("/ready", s.handleReady)
	s.router.GET("/search", s.handleSearch)
	s.router.GET("/autocomplete", s.handleAutocomplete)

	metricsGroup := s.router.Group("/metrics")
	if s.cfg.IsMetricsAuthEnabled() {
		metricsGroup.Use(gin.BasicAuth(gin.Accounts{s.cfg.MetricsUsername: s.cfg.MetricsPassword}))
	}
	metricsGroup.GET("", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})))
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":     s.cfg.ServerName,
		"version":     buildinfo.Version,
		"corpus_size": s.engine.Size(),
	})
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleReady(c *gin.Context) {
	if !s.ready.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// handleSearch serves GET /search?query=…&algorithm={bm25|fuzzy|hybrid}&limit=…
// &maxDistance=…&programmes=…&minCredits=…&maxCredits=…
func (s *Server) handleSearch(c *gin.Context) {
	query := c.Query("query")
	if strings.TrimSpace(query) == "" {
		c.JSON(http.StatusOK, gin.H{"results": []search.SearchHit{}})
		return
	}

	if !s.ready.Ready() || s.engine.Size() == 0 {
		c.JSON(http.StatusOK, gin.H{"results": []search.SearchHit{}})
		return
	}

	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err != nil || v < 1 {
			s.respondValidationError(c, "limit", "must be a positive integer")
			return
		}
	}
	limit := clampInt(parseIntOr(c.Query("limit"), 20), 1, s.cfg.Engine.MaxResultsPerSearch)
	algo := search.ParseAlgorithm(c.Query("algorithm"))
	explicit := strings.TrimSpace(c.Query("algorithm")) != ""

	var maxDistance *int
	if raw := c.Query("maxDistance"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			s.respondValidationError(c, "maxDistance", "must be a non-negative integer")
			return
		}
		maxDistance = &v
	}

	opts := parseSearchOptions(c)

	var (
		hits []search.SearchHit
		err  error
	)
	if explicit {
		hits, err = s.engine.Search(c.Request.Context(), algo, query, limit, maxDistance, opts)
	} else {
		hits, err = s.engine.SearchAuto(c.Request.Context(), query, limit, maxDistance, opts)
	}
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"results": []search.SearchHit{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": hits})
}

// handleAutocomplete serves GET /autocomplete?query=…&limit=…&programmes=…
func (s *Server) handleAutocomplete(c *gin.Context) {
	query := c.Query("query")
	if strings.TrimSpace(query) == "" || !s.ready.Ready() || s.engine.Size() == 0 {
		c.JSON(http.StatusOK, gin.H{"results": []search.AutocompleteHit{}})
		return
	}

	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err != nil || v < 1 {
			s.respondValidationError(c, "limit", "must be a positive integer")
			return
		}
	}
	limit := clampInt(parseIntOr(c.Query("limit"), 10), 1, s.cfg.Engine.MaxResultsPerAutocomplete)
	opts := parseSearchOptions(c)

	hits, err := s.engine.Autocomplete(c.Request.Context(), query, limit, opts)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"results": []search.AutocompleteHit{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": hits})
}

// respondValidationError rejects a malformed query parameter with the
// field and message the engine would otherwise silently coerce away.
func (s *Server) respondValidationError(c *gin.Context, field, message string) {
	verr := searcherrors.NewValidationError(field, message)
	c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
}

func parseSearchOptions(c *gin.Context) *search.SearchOptions {
	opts := &search.SearchOptions{}

	if raw := c.Query("programmes"); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				opts.Programmes = append(opts.Programmes, strings.ToUpper(trimmed))
			}
		}
	}
	if raw := c.Query("minCredits"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			opts.MinCredits = &v
		}
	}
	if raw := c.Query("maxCredits"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			opts.MaxCredits = &v
		}
	}
	if opts.IsEmpty() {
		return nil
	}
	return opts
}

func parseIntOr(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the loaded reaction table as a JSON API with an
// embedded browsing/plotting page. The table is immutable after load, so
// handlers share it across concurrent requests without locking.
// Implements: prd004-dashboard (R1-R4);
//
//	docs/ARCHITECTURE § Dashboard.
package server

import (
	_ "embed"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/rxndb/internal/dataset"
	"github.com/pdiddy/rxndb/pkg/types"
)

//go:embed index.html
var indexHTML []byte

// Server serves the dashboard API over a loaded table.
type Server struct {
	table      *dataset.Table
	rejects    []dataset.Reject
	resolution int
}

// New builds a Server over the given table. rejects is surfaced on the
// status endpoint for diagnostics; resolution is the curve sample count
// (0 uses the loader default).
func New(table *dataset.Table, rejects []dataset.Reject, resolution int) *Server {
	if resolution <= 0 {
		resolution = dataset.DefaultResolution
	}
	return &Server{table: table, rejects: rejects, resolution: resolution}
}

// Router wires the API routes.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/", s.Index)
	r.GET("/healthz", s.Health)
	r.GET("/api/reactions", s.Reactions)
	r.GET("/api/reactions/:id/curve", s.Curve)
	r.GET("/api/phases", s.Phases)

	return r
}

// Index serves the embedded dashboard page.
func (s *Server) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

// Health reports table size and load diagnostics.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"reactions": s.table.Len(),
		"rejected":  len(s.rejects),
	})
}

// Reactions returns the table rows, optionally filtered by reactant,
// product, curve type, or id query parameters. Filters compose with AND
// semantics and preserve table order.
func (s *Server) Reactions(c *gin.Context) {
	table := s.table

	if reactants := c.QueryArray("reactant"); len(reactants) > 0 {
		table = table.ByReactants(reactants)
	}
	if products := c.QueryArray("product"); len(products) > 0 {
		table = table.ByProducts(products)
	}
	if ct := c.Query("type"); ct != "" {
		table = table.ByCurveType(types.CurveType(ct))
	}
	if ids := c.QueryArray("id"); len(ids) > 0 {
		table = table.ByIDs(ids)
	}

	rows := table.Rows()
	if rows == nil {
		rows = []dataset.Row{}
	}
	c.JSON(http.StatusOK, gin.H{"reactions": rows, "count": len(rows)})
}

// curveResponse is the sampled curve for one record.
type curveResponse struct {
	ID       string      `json:"id"`
	Reaction string      `json:"rxn"`
	PlotType string      `json:"plot_type"`
	Units    types.Units `json:"units"`
	T        []float64   `json:"t"`
	P        []float64   `json:"p"`

	// Label is the curve midpoint where the dashboard draws the
	// reaction label.
	Label *labelPoint `json:"label,omitempty"`
}

type labelPoint struct {
	T float64 `json:"t"`
	P float64 `json:"p"`
}

// Curve returns the sampled (T, P) points for one record. The optional
// n query parameter overrides the sample resolution.
func (s *Server) Curve(c *gin.Context) {
	id := c.Param("id")
	rec, ok := s.table.ByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown reaction id " + id})
		return
	}

	n := s.resolution
	if raw := c.Query("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "n must be a positive integer"})
			return
		}
		n = v
	}

	ts, ps := dataset.Points(rec, n)
	resp := curveResponse{
		ID:       rec.ID,
		Reaction: rec.Reaction,
		PlotType: string(rec.PlotType),
		Units:    rec.Units,
		T:        ts,
		P:        ps,
	}
	if tv, pv, ok := dataset.Midpoint(rec, n); ok {
		resp.Label = &labelPoint{T: tv, P: pv}
	}
	if resp.T == nil {
		resp.T, resp.P = []float64{}, []float64{}
	}
	c.JSON(http.StatusOK, resp)
}

// Phases returns the sorted unique phase names for the filter controls.
func (s *Server) Phases(c *gin.Context) {
	phases := s.table.UniquePhases()
	if phases == nil {
		phases = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"phases": phases})
}

// Addr joins host and port for http.Server.
func Addr(cfg types.ServerConfig) string {
	host := cfg.Host
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port == 0 {
		port = 8000
	}
	return host + ":" + strconv.Itoa(port)
}

// Run serves the dashboard until the listener fails.
func (s *Server) Run(cfg types.ServerConfig) error {
	return s.Router().Run(Addr(cfg))
}

package server

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/piwi3910/palletpack/internal/engine"
	"github.com/piwi3910/palletpack/internal/export"
	"github.com/piwi3910/palletpack/internal/importer"
	"github.com/piwi3910/palletpack/internal/model"
)

// PackRequest is the body accepted by the packing endpoints. Shapes and
// ShapeList may be combined; settings fields left out keep the server defaults.
type PackRequest struct {
	Settings  model.PackSettings   `json:"settings"`
	Shapes    []model.ShapeRequest `json:"shapes"`
	ShapeList string               `json:"shape_list"` // e.g. "10x20, 15x15:3"
}

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bindRequest decodes the body over the server defaults and expands the shape
// list. It writes the error response itself and returns false on failure.
func (s *Server) bindRequest(c *gin.Context) (PackRequest, []model.Shape, bool) {
	req := PackRequest{Settings: s.config.Defaults}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return req, nil, false
	}

	requests := req.Shapes
	if req.ShapeList != "" {
		parsed := importer.ParseShapeList(req.ShapeList)
		if len(parsed.Errors) > 0 {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid shape list", Details: parsed.Errors})
			return req, nil, false
		}
		requests = append(requests, parsed.Shapes...)
	}

	if n := model.CountRequests(requests); s.config.MaxShapes > 0 && n > s.config.MaxShapes {
		c.JSON(http.StatusRequestEntityTooLarge, errorResponse{
			Error: fmt.Sprintf("too many shapes: %d (limit %d)", n, s.config.MaxShapes),
		})
		return req, nil, false
	}
	return req, model.ExpandRequests(requests), true
}

func (s *Server) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if s.config.Timeout > 0 {
		return context.WithTimeout(c.Request.Context(), s.config.Timeout)
	}
	return context.WithCancel(c.Request.Context())
}

// pack runs the requested algorithm and writes an error response on failure.
func (s *Server) pack(c *gin.Context, settings model.PackSettings, shapes []model.Shape) (model.PackResult, bool) {
	ctx, cancel := s.requestContext(c)
	defer cancel()

	res, err := engine.New(settings, s.logger).Optimize(ctx, shapes)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return res, false
	}
	return res, true
}

func (s *Server) handlePack(c *gin.Context) {
	req, shapes, ok := s.bindRequest(c)
	if !ok {
		return
	}
	res, ok := s.pack(c, req.Settings, shapes)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, res)
}

// evolve binds the request and runs the genetic search regardless of the
// requested algorithm.
func (s *Server) evolve(c *gin.Context) (model.GeneticResult, bool) {
	req, shapes, ok := s.bindRequest(c)
	if !ok {
		return model.GeneticResult{}, false
	}
	req.Settings.Algorithm = model.AlgorithmGenetic
	return s.evolveShapes(c, req.Settings, shapes)
}

func (s *Server) evolveShapes(c *gin.Context, settings model.PackSettings, shapes []model.Shape) (model.GeneticResult, bool) {
	if err := model.ValidateSettings(settings, shapes); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return model.GeneticResult{}, false
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()

	res, err := engine.New(settings, s.logger).Evolve(ctx, shapes)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return res, false
	}
	if res.Interrupted {
		s.logger.Warn("genetic search hit the request timeout",
			zap.Duration("timeout", s.config.Timeout),
			zap.Int("generations", res.Generations),
		)
	}
	return res, true
}

// handleEvolve returns the full GeneticResult including the per-generation
// history.
func (s *Server) handleEvolve(c *gin.Context) {
	if res, ok := s.evolve(c); ok {
		c.JSON(http.StatusOK, res)
	}
}

// handleFitnessPlot evolves the request and returns the fitness curve as PNG.
func (s *Server) handleFitnessPlot(c *gin.Context) {
	res, ok := s.evolve(c)
	if !ok {
		return
	}
	if len(res.History) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "no shapes to evolve"})
		return
	}
	var buf bytes.Buffer
	if err := export.WriteFitnessPlot(&buf, res.History); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// handleChart packs the request and returns an HTML utilization chart.
func (s *Server) handleChart(c *gin.Context) {
	req, shapes, ok := s.bindRequest(c)
	if !ok {
		return
	}
	var (
		res     model.PackResult
		history []model.GenerationStats
	)
	if req.Settings.Algorithm == model.AlgorithmGenetic {
		gr, ok := s.evolveShapes(c, req.Settings, shapes)
		if !ok {
			return
		}
		res, history = gr.AsPackResult(), gr.History
	} else if res, ok = s.pack(c, req.Settings, shapes); !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.RenderCharts(&buf, res, history); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// handleRender packs the request and returns one pallet as a PNG. The query
// parameters pallet (1-based, default 1) and scale (pixels per cell) select
// the image.
func (s *Server) handleRender(c *gin.Context) {
	index, err := strconv.Atoi(c.DefaultQuery("pallet", "1"))
	if err != nil || index < 1 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "pallet must be a positive integer"})
		return
	}
	var scale float64
	if raw := c.Query("scale"); raw != "" {
		scale, err = strconv.ParseFloat(raw, 64)
		if err != nil || scale <= 0 || scale > 100 {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "scale must be a number in (0, 100]"})
			return
		}
	}

	req, shapes, ok := s.bindRequest(c)
	if !ok {
		return
	}
	res, ok := s.pack(c, req.Settings, shapes)
	if !ok {
		return
	}
	if index > len(res.Pallets) {
		c.JSON(http.StatusNotFound, errorResponse{
			Error: fmt.Sprintf("pallet %d not found, result has %d", index, len(res.Pallets)),
		})
		return
	}

	pallet := res.Pallets[index-1]
	if scale == 0 {
		scale = export.DefaultScale(pallet.Width, pallet.Height, 800)
	}
	var buf bytes.Buffer
	if err := export.RenderPNG(&buf, pallet, len(res.Pallets), scale); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/buzzline/consumer/internal/ports"
)

// RecordAdmin is the slice of the ingest service the ops surface needs.
type RecordAdmin interface {
	DeleteMessage(ctx context.Context, id string) error
}

// Handler serves the operational surface of the consumer. There is no query
// API over the stored records; the loop is the product, this is its cockpit.
type Handler struct {
	service RecordAdmin
	sink    ports.RecordSink
	log     ports.Logger
}

func NewHandler(service RecordAdmin, sink ports.RecordSink, log ports.Logger) *Handler {
	return &Handler{service: service, sink: sink, log: log}
}

// NewRouter wires the ops endpoints. otelServiceName, when non-empty, enables
// the otelgin middleware.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(h.log))
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/readyz", h.ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.DELETE("/records/:id", h.deleteRecord)

	return r
}

// ready reports whether the sink handle is currently usable.
func (h *Handler) ready(c *gin.Context) {
	if err := h.sink.Ping(c.Request.Context()); err != nil {
		h.log.Warnf(c.Request.Context(), "readiness ping failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "sink unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (h *Handler) deleteRecord(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty id"})
		return
	}

	if err := h.service.DeleteMessage(c.Request.Context(), id); err != nil {
		if errors.Is(err, ports.ErrNoSuchRecord) {
			c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
			return
		}
		h.log.Errorf(c.Request.Context(), "DeleteMessage failed id=%s err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}

// requestLogger logs one line per request with status and latency.
func requestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Infof(c.Request.Context(), "http %s %s status=%d took=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// Package httpapi exposes the workbench as a small JSON API for local
// front ends.
package httpapi

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"comicstudio/internal/imagecodec"
	"comicstudio/internal/store"
	"comicstudio/internal/universe"
)

type Workbench interface {
	Snapshot() (universe.Tree, universe.Author)
	Session() store.Session
	CreateUniverse(ctx context.Context) (string, error)
	Select(ctx context.Context, id string) error
	SetView(ctx context.Context, view string) error
	Update(ctx context.Context, p universe.Path, patch universe.Patch) error
	InsertWith(ctx context.Context, parent universe.Path, child universe.Node, patch universe.Patch) (string, error)
	Delete(ctx context.Context, p universe.Path) error
	SetAuthor(ctx context.Context, author universe.Author) error
	AddImage(ctx context.Context, codec imagecodec.Codec, gallery universe.Path, filename string, data []byte) (string, error)
}

type Handler struct {
	wb      Workbench
	codec   imagecodec.Codec
	log     *zap.Logger
	metrics *Metrics
}

func NewRouter(wb Workbench, codec imagecodec.Codec, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if codec == nil {
		codec = imagecodec.Passthrough{}
	}
	h := &Handler{wb: wb, codec: codec, log: log, metrics: NewMetrics()}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log), h.metrics.middleware())

	if serve, err := metricsHandler(h.metrics); err != nil {
		log.Error("metrics disabled", zap.Error(err))
	} else {
		r.GET("/metrics", serve)
	}

	api := r.Group("/api")
	{
		api.GET("/session", h.GetSession)
		api.PUT("/session", h.PutSession)
		api.GET("/author", h.GetAuthor)
		api.PUT("/author", h.PutAuthor)

		universes := api.Group("/universes")
		{
			universes.GET("", h.ListUniverses)
			universes.POST("", h.CreateUniverse)
			universes.GET("/:id", h.GetUniverse)
			universes.GET("/:id/export", h.ExportUniverse)
		}

		nodes := api.Group("/nodes")
		{
			nodes.GET("", h.GetNode)
			nodes.POST("", h.AddNode)
			nodes.PATCH("", h.UpdateNode)
			nodes.DELETE("", h.DeleteNode)
		}

		api.POST("/images", h.UploadImage)
		api.GET("/validate", h.Validate)
	}
	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

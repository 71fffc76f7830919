package httpapi

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"comicstudio/internal/export"
	"comicstudio/internal/imagecodec"
	"comicstudio/internal/store"
	"comicstudio/internal/studio"
	"comicstudio/internal/universe"
	"comicstudio/internal/validate"
)

const maxUploadBytes = 32 << 20

type addNodeRequest struct {
	Parent string         `json:"parent" binding:"required"`
	Kind   string         `json:"kind" binding:"required"`
	Fields map[string]any `json:"fields"`
}

type updateNodeRequest struct {
	Path   string         `json:"path" binding:"required"`
	Fields map[string]any `json:"fields" binding:"required"`
}

func (h *Handler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.wb.Session())
}

// PutSession selects a universe and a view in one request.
func (h *Handler) PutSession(c *gin.Context) {
	var req store.Session
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ActiveUniverseID != h.wb.Session().ActiveUniverseID {
		if err := h.wb.Select(c.Request.Context(), req.ActiveUniverseID); err != nil {
			h.fail(c, err)
			return
		}
	}
	if req.View != "" {
		if err := h.wb.SetView(c.Request.Context(), req.View); err != nil {
			h.fail(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, h.wb.Session())
}

func (h *Handler) GetAuthor(c *gin.Context) {
	_, author := h.wb.Snapshot()
	c.JSON(http.StatusOK, author)
}

func (h *Handler) PutAuthor(c *gin.Context) {
	var author universe.Author
	if err := c.ShouldBindJSON(&author); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.wb.SetAuthor(c.Request.Context(), author); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, author)
}

func (h *Handler) ListUniverses(c *gin.Context) {
	tree, _ := h.wb.Snapshot()
	c.JSON(http.StatusOK, gin.H{"universes": tree, "active": h.wb.Session().ActiveUniverseID})
}

func (h *Handler) CreateUniverse(c *gin.Context) {
	id, err := h.wb.CreateUniverse(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) GetUniverse(c *gin.Context) {
	tree, _ := h.wb.Snapshot()
	u, ok := universe.FindUniverse(tree, c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "universe not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) ExportUniverse(c *gin.Context) {
	tree, author := h.wb.Snapshot()
	u, ok := universe.FindUniverse(tree, c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "universe not found"})
		return
	}
	var buf bytes.Buffer
	if err := (export.Markdown{Images: c.Query("images") == "true"}).Export(&buf, u, author); err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(u)+`"`)
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", buf.Bytes())
}

func (h *Handler) GetNode(c *gin.Context) {
	p, err := universe.ParsePath(c.Query("path"))
	if err != nil {
		h.fail(c, err)
		return
	}
	tree, _ := h.wb.Snapshot()
	node, ok := universe.Find(tree, p)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "node not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"kind": node.Kind(), "node": node})
}

func (h *Handler) AddNode(c *gin.Context) {
	var req addNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	parent, err := universe.ParsePath(req.Parent)
	if err != nil {
		h.fail(c, err)
		return
	}
	kind, ok := universe.ParseKind(req.Kind)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown kind " + req.Kind})
		return
	}
	node, _ := universe.New(kind)
	id, err := h.wb.InsertWith(c.Request.Context(), parent, node, universe.Patch(req.Fields))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) UpdateNode(c *gin.Context) {
	var req updateNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := universe.ParsePath(req.Path)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.wb.Update(c.Request.Context(), p, universe.Patch(req.Fields)); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteNode(c *gin.Context) {
	p, err := universe.ParsePath(c.Query("path"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.wb.Delete(c.Request.Context(), p); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage takes a multipart form with a gallery path and one file.
func (h *Handler) UploadImage(c *gin.Context) {
	gallery, err := universe.ParsePath(c.PostForm("gallery"))
	if err != nil {
		h.fail(c, err)
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if header.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}
	h.metrics.observeUpload(header.Size)
	f, err := header.Open()
	if err != nil {
		h.fail(c, err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		h.fail(c, err)
		return
	}

	id, err := h.wb.AddImage(c.Request.Context(), h.codec, gallery, header.Filename, data)
	if err != nil {
		h.fail(c, err)
		return
	}
	if id == "" {
		c.JSON(http.StatusGone, gin.H{"error": "gallery no longer exists"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) Validate(c *gin.Context) {
	tree, _ := h.wb.Snapshot()
	c.JSON(http.StatusOK, validate.Run(tree, h.wb.Session()))
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, studio.ErrNotFound), errors.Is(err, studio.ErrUnknownUniverse):
		status = http.StatusNotFound
	case errors.Is(err, universe.ErrInvalidPath), errors.Is(err, universe.ErrInvalidPatch),
		errors.Is(err, universe.ErrInvalidChild), errors.Is(err, imagecodec.ErrNotAnImage):
		status = http.StatusBadRequest
	case errors.Is(err, studio.ErrNoActiveUniverse):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

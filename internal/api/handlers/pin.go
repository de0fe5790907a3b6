package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bountyboard/bountyboard-backend/internal/api/middleware"
	pkgerrors "github.com/bountyboard/bountyboard-backend/pkg/errors"
	"github.com/bountyboard/bountyboard-backend/pkg/types"
)

const maxPinFileSize = 32 << 20

func (h *Handler) PinJSON(c *gin.Context) {
	logger := middleware.GetLogger(c)
	if h.content == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": pkgerrors.ErrPinNotConfigured})
		return
	}

	var req types.PinJSONRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgerrors.ErrInvalidRequestBody})
		return
	}
	if len(req.Data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgerrors.ErrDataRequired})
		return
	}
	name := req.Name
	if name == "" {
		name = "bounty-board-json"
	}

	cid, err := h.content.PinJSON(c.Request.Context(), name, req.Data)
	if err != nil {
		logger.Errorf("Failed to pin JSON: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": pkgerrors.ErrPinFailed})
		return
	}

	logger.Infof("POST [PinJSON] Successful, cid: %s", cid)
	c.JSON(http.StatusOK, types.PinResponse{Success: true, CID: cid, GatewayURL: h.content.GatewayURL(cid)})
}

func (h *Handler) PinFile(c *gin.Context) {
	logger := middleware.GetLogger(c)
	if h.content == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": pkgerrors.ErrPinNotConfigured})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgerrors.ErrFileRequired})
		return
	}
	if header.Size > maxPinFileSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File is too large"})
		return
	}

	file, err := header.Open()
	if err != nil {
		logger.Errorf("Failed to open uploaded file: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgerrors.ErrFileRequired})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPinFileSize))
	if err != nil {
		logger.Errorf("Failed to read uploaded file: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgerrors.ErrFileRequired})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	cid, err := h.content.PinFile(c.Request.Context(), header.Filename, contentType, data)
	if err != nil {
		logger.Errorf("Failed to pin file %s: %v", header.Filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": pkgerrors.ErrPinFailed})
		return
	}

	logger.Infof("POST [PinFile] Successful, file: %s, cid: %s", header.Filename, cid)
	c.JSON(http.StatusOK, types.PinResponse{Success: true, CID: cid, GatewayURL: h.content.GatewayURL(cid)})
}

package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fekuna/omnipos-warehouse-service/internal/auth"
	"github.com/fekuna/omnipos-warehouse-service/internal/inventory"
	"github.com/fekuna/omnipos-warehouse-service/internal/inventory/export"
	"github.com/fekuna/omnipos-warehouse-service/pkg/apperror"
	"github.com/fekuna/omnipos-warehouse-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ExportHandler streams the caller's inventory as a CSV or XLSX attachment.
type ExportHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
	now    func() time.Time
}

func NewExportHandler(uc inventory.UseCase, log logger.ZapLogger) *ExportHandler {
	return &ExportHandler{uc: uc, logger: log, now: time.Now}
}

// Export serves GET /api/export?format=csv|xlsx. csv is the default.
func (h *ExportHandler) Export(c *gin.Context) {
	format := strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", export.FormatCSV)))
	if format != export.FormatCSV && format != export.FormatXLSX {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported export format %q", format)})
		return
	}

	userID := auth.GetUserID(c.Request.Context())
	items, err := h.uc.ListInventories(c.Request.Context(), userID)
	if err != nil {
		if apperror.Is(err, apperror.KindUnauthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to load inventory for export", zap.Int64("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	var buf bytes.Buffer
	contentType := export.ContentTypeCSV
	if format == export.FormatXLSX {
		contentType = export.ContentTypeXLSX
		err = export.WriteXLSX(&buf, items)
	} else {
		err = export.WriteCSV(&buf, items)
	}
	if err != nil {
		h.logger.Error("failed to render inventory export", zap.String("format", format), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.FileName(h.now(), format)))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

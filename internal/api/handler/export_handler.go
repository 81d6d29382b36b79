package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/service"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/response"
)

const (
	csvContentType  = "text/csv; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportHandler serves CSV/XLSX downloads and import templates.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

func attachmentHeader(c *gin.Context, filename string) {
	escaped := url.QueryEscape(filename)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", escaped))
}

// CSV downloads a domain's records as a CSV file.
// GET /api/v1/export/:domain/csv
func (h *ExportHandler) CSV(c *gin.Context) {
	content, filename, err := h.exportSvc.ExportCSV(c.Request.Context(), c.Param("domain"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	attachmentHeader(c, filename)
	c.Data(http.StatusOK, csvContentType, content)
}

// XLSX downloads a domain's records as a workbook.
// GET /api/v1/export/:domain/xlsx
func (h *ExportHandler) XLSX(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportXLSX(c.Request.Context(), c.Param("domain"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	attachmentHeader(c, filename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Template downloads the CSV import template for a domain.
// GET /api/v1/export/:domain/template
func (h *ExportHandler) Template(c *gin.Context) {
	content, filename, err := h.exportSvc.Template(c.Param("domain"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	attachmentHeader(c, filename)
	c.Data(http.StatusOK, csvContentType, content)
}

func (h *ExportHandler) handleError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrUnknownDomain) {
		response.BadRequest(c, 161, "unknown export domain")
		return
	}
	response.InternalError(c)
}

package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/dto"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/service"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/response"
)

// ImportHandler ingests CSV uploads into a domain.
type ImportHandler struct {
	importSvc service.ImportService
}

// NewImportHandler creates an ImportHandler.
func NewImportHandler(importSvc service.ImportService) *ImportHandler {
	return &ImportHandler{importSvc: importSvc}
}

// Import reads the uploaded CSV and imports it into the named domain.
// POST /api/v1/import/:domain
func (h *ImportHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 162, "missing file field")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, 162, "unable to read uploaded file")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, 162, "unable to read uploaded file")
		return
	}

	var result *dto.ImportResult
	switch c.Param("domain") {
	case service.DomainDelegations:
		result, err = h.importSvc.ImportDelegations(c.Request.Context(), string(content))
	case service.DomainHelpdesk:
		result, err = h.importSvc.ImportHelpdesk(c.Request.Context(), string(content))
	case service.DomainNBD:
		result, err = h.importSvc.ImportNBD(c.Request.Context(), string(content))
	default:
		response.BadRequest(c, 161, "unknown import domain")
		return
	}
	if err != nil {
		if errors.Is(err, service.ErrBadImportFile) {
			response.ErrorWithDetails(c, http.StatusBadRequest, 162, "invalid import file", err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

package handler

import (
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/service"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/response"
)

// UploadHandler accepts multipart attachments and forwards them to the
// blob proxy.
type UploadHandler struct {
	uploadSvc service.UploadService
}

// NewUploadHandler creates an UploadHandler.
func NewUploadHandler(uploadSvc service.UploadService) *UploadHandler {
	return &UploadHandler{uploadSvc: uploadSvc}
}

// Upload stores every file in the "files" multipart field.
// POST /api/v1/uploads
func (h *UploadHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, 100, "invalid multipart form")
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		response.BadRequest(c, 100, "no files provided")
		return
	}

	files := make([]service.UploadFile, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			response.BadRequest(c, 100, "unable to read uploaded file")
			return
		}
		opened = append(opened, f)
		files = append(files, service.UploadFile{Name: header.Filename, Content: f})
	}

	response.OK(c, h.uploadSvc.Upload(c.Request.Context(), files))
}

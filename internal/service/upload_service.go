package service

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/dto"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/blob"
)

// UploadFile is one file pulled from a multipart request.
type UploadFile struct {
	Name    string
	Content io.Reader
}

// UploadService pushes attachments to the blob proxy. Files go up one
// at a time; a failed file is recorded and the rest still upload.
type UploadService interface {
	Upload(ctx context.Context, files []UploadFile) *dto.UploadResult
}

type uploadService struct {
	uploader blob.Uploader
	logger   *zap.Logger
}

// NewUploadService creates an UploadService.
func NewUploadService(uploader blob.Uploader, logger *zap.Logger) UploadService {
	return &uploadService{uploader: uploader, logger: logger}
}

func (s *uploadService) Upload(ctx context.Context, files []UploadFile) *dto.UploadResult {
	result := &dto.UploadResult{URLs: []string{}, Failed: []string{}}
	for _, f := range files {
		url, err := s.uploader.Upload(ctx, f.Name, f.Content)
		if err != nil {
			s.logger.Warn("file upload failed", zap.String("file", f.Name), zap.Error(err))
			result.Failed = append(result.Failed, f.Name)
			continue
		}
		result.URLs = append(result.URLs, url)
	}
	return result
}

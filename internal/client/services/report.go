package services

import (
	"context"

	"github.com/dmitrijs2005/medreport/internal/client/client"
	"github.com/dmitrijs2005/medreport/internal/client/models"
	"github.com/dmitrijs2005/medreport/internal/logging"
)

// ReportService uploads medical reports for summarization.
type ReportService interface {
	Upload(ctx context.Context, file models.PendingFile) (models.Summary, error)
}

type reportService struct {
	client client.Client
	logger logging.Logger
}

func NewReportService(c client.Client, logger logging.Logger) ReportService {
	return &reportService{client: c, logger: logger}
}

// Upload sends file and returns the summary exactly as the backend produced
// it. Validation is the caller's job.
func (s *reportService) Upload(ctx context.Context, file models.PendingFile) (models.Summary, error) {
	s.logger.Info(ctx, "uploading report", "file", file.Name, "bytes", file.Size)

	res, err := s.client.UploadReport(ctx, file)
	if err != nil {
		s.logger.Warn(ctx, "report upload failed", "file", file.Name, "error", err)
		return "", err
	}

	s.logger.Info(ctx, "report summarized", "file", file.Name, "summary_bytes", len(res.Summary))
	return res.Summary, nil
}

package reports

import (
	"bytes"
	"context"
	"time"

	"stock-matcher/core/export"
	"stock-matcher/core/metrics"
	"stock-matcher/core/reconcile"
	"stock-matcher/core/session"

	"go.uber.org/zap"
)

// ReportResponse is a report together with its bucket counts.
type ReportResponse struct {
	*reconcile.Report
	Summary reconcile.Summary `json:"summary"`
}

// File is a rendered export.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Published locates an uploaded export.
type Published struct {
	Bucket string `json:"bucket"`
	Object string `json:"object"`
}

// Service builds reports and exports from the session.
type Service struct {
	session   *session.Session
	publisher *export.Publisher
	bucket    string
	logger    *zap.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewService creates a new reports service. publisher may be nil, which disables publishing.
func NewService(sess *session.Session, publisher *export.Publisher, bucket string, logger *zap.Logger, m *metrics.Metrics) *Service {
	return &Service{
		session:   sess,
		publisher: publisher,
		bucket:    bucket,
		logger:    logger,
		metrics:   m,
		now:       time.Now,
	}
}

// Report reconciles scope and makes it the selected scope.
func (s *Service) Report(ctx context.Context, scope reconcile.Scope) (*ReportResponse, error) {
	report, err := s.session.Report(ctx, scope)
	if err != nil {
		return nil, err
	}
	return &ReportResponse{Report: report, Summary: report.Summary()}, nil
}

// Selected reconciles the last reported scope, store-wide when none was chosen yet.
func (s *Service) Selected(ctx context.Context) (*ReportResponse, error) {
	return s.Report(ctx, reconcile.ParseScope(s.session.SelectedScope()))
}

// Comparison returns the full-catalog comparison over every rack.
func (s *Service) Comparison() (*reconcile.Comparison, error) {
	return s.session.Comparison()
}

// DiscrepancyCSV renders the non-matched lines of scope's report. The selected
// scope is left as it was.
func (s *Service) DiscrepancyCSV(scope reconcile.Scope) (*File, error) {
	report, err := s.session.BuildReport(scope)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := export.WriteDiscrepancyCSV(&buf, report); err != nil {
		return nil, err
	}
	s.metrics.ObserveReport(scopeLabel(scope), "csv")

	return &File{
		Name:        export.DiscrepancyFileName(scope.ID(), s.now()),
		ContentType: "text/csv",
		Data:        buf.Bytes(),
	}, nil
}

// Workbook renders the three-sheet session workbook.
func (s *Service) Workbook() (*File, error) {
	sheets, err := s.session.WorkbookSheets()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, sheets); err != nil {
		return nil, err
	}
	return &File{
		Name:        export.WorkbookFileName(s.now()),
		ContentType: export.WorkbookContentType,
		Data:        buf.Bytes(),
	}, nil
}

// PublishWorkbook renders the workbook and uploads it.
func (s *Service) PublishWorkbook(ctx context.Context) (*Published, error) {
	if s.publisher == nil {
		return nil, export.ErrPublishingDisabled
	}

	file, err := s.Workbook()
	if err != nil {
		return nil, err
	}

	object, err := s.publisher.Publish(ctx, file.Name, file.ContentType, file.Data)
	if err != nil {
		s.logger.Error("Failed to publish workbook", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Workbook published", zap.String("object", object), zap.Int("bytes", len(file.Data)))
	return &Published{Bucket: s.bucket, Object: object}, nil
}

func scopeLabel(scope reconcile.Scope) string {
	if scope.IsStoreWide() {
		return "store"
	}
	return "rack"
}

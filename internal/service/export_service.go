package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/refine-admin-api/internal/dto"
	"github.com/noah-isme/refine-admin-api/internal/models"
	"github.com/noah-isme/refine-admin-api/internal/query"
	"github.com/noah-isme/refine-admin-api/internal/repository"
	appErrors "github.com/noah-isme/refine-admin-api/pkg/errors"
	"github.com/noah-isme/refine-admin-api/pkg/export"
	"github.com/noah-isme/refine-admin-api/pkg/jobs"
	"github.com/noah-isme/refine-admin-api/pkg/storage"
)

type exportJobStore interface {
	Create(ctx context.Context, job *models.ExportJob) error
	GetByID(ctx context.Context, id string) (*models.ExportJob, error)
	Update(ctx context.Context, id string, params repository.UpdateExportJobParams) error
	ListByStatus(ctx context.Context, limit int, statuses ...models.ExportStatus) ([]models.ExportJob, error)
	ListFinishedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.ExportJob, error)
}

type postExportSource interface {
	ExportRows(ctx context.Context, q models.ListQuery, max int) ([]models.Post, error)
}

type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix       string
	MaxRows         int
	CleanupInterval time.Duration
}

// ExportDownload is a resolved signed download.
type ExportDownload struct {
	Body        io.ReadCloser
	Filename    string
	ContentType string
	ExpiresAt   time.Time
}

// ExportService owns the export job lifecycle: creation, status, signed
// downloads, recovery after restart and cleanup of expired files.
type ExportService struct {
	repo      exportJobStore
	posts     postExportSource
	store     storage.Store
	signer    *storage.SignedURLSigner
	queue     jobDispatcher
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ExportConfig
	now       func() time.Time
}

// NewExportService constructs an ExportService. The queue may be attached
// later with SetQueue since the queue handler needs the service.
func NewExportService(repo exportJobStore, posts postExportSource, store storage.Store, signer *storage.SignedURLSigner, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg ExportConfig) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = 5000
	}
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/api/v1"
	}
	return &ExportService{
		repo:      repo,
		posts:     posts,
		store:     store,
		signer:    signer,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// SetQueue attaches the dispatcher jobs are enqueued on.
func (s *ExportService) SetQueue(queue jobDispatcher) {
	s.queue = queue
}

// CreateJob validates the request, persists the job and enqueues it.
func (s *ExportService) CreateJob(ctx context.Context, resource string, req dto.ExportRequest, actorID string) (*dto.ExportJobResponse, error) {
	if resource != models.ResourcePosts {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "resource "+resource+" cannot be exported")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export payload")
	}
	values, err := url.ParseQuery(strings.TrimPrefix(req.Query, "?"))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export query")
	}
	listQuery, err := query.Parse(values)
	if err != nil {
		return nil, err
	}

	job := &models.ExportJob{
		Resource:  resource,
		Format:    req.Format,
		Query:     listQuery,
		Status:    models.ExportStatusQueued,
		CreatedBy: actorID,
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, internalError(err, "failed to create export job")
	}
	if err := s.enqueue(job); err != nil {
		s.markFailed(ctx, job.ID, "failed to enqueue job")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue export job")
	}
	return &dto.ExportJobResponse{ID: job.ID, Status: job.Status}, nil
}

// GetStatus returns job metadata. Editors only see their own jobs.
func (s *ExportService) GetStatus(ctx context.Context, id, actorID string, role models.UserRole) (*dto.ExportStatusResponse, error) {
	job, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != models.RoleAdmin && job.CreatedBy != actorID {
		return nil, appErrors.ErrForbidden
	}
	resp := &dto.ExportStatusResponse{
		ID:        job.ID,
		Resource:  job.Resource,
		Format:    job.Format,
		Status:    job.Status,
		ResultURL: job.ResultURL,
	}
	if job.ErrorMessage != nil && *job.ErrorMessage != "" {
		resp.Error = job.ErrorMessage
	}
	if job.FinishedAt != nil {
		finished := job.FinishedAt.UTC().Format(time.RFC3339)
		resp.FinishedAt = &finished
	}
	return resp, nil
}

// ResolveDownload verifies a signed token and opens the stored file.
func (s *ExportService) ResolveDownload(ctx context.Context, token string) (*ExportDownload, error) {
	claims, err := s.signer.Verify(token, false)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status, "invalid or expired download token")
	}
	job, err := s.load(ctx, claims.JobID)
	if err != nil {
		return nil, err
	}
	if job.ResultURL == nil || extractToken(*job.ResultURL) != token {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "token mismatch")
	}
	if job.Status != models.ExportStatusFinished {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "export not ready")
	}
	renderer, err := export.ForFormat(string(job.Format))
	if err != nil {
		return nil, internalError(err, "unsupported export format")
	}
	body, err := s.store.Open(ctx, claims.Key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "export file expired")
		}
		return nil, internalError(err, "failed to open export file")
	}
	return &ExportDownload{
		Body:        body,
		Filename:    path.Base(claims.Key),
		ContentType: renderer.ContentType(),
		ExpiresAt:   claims.ExpiresAt,
	}, nil
}

// Generate renders a job's rows, stores the file and returns the signed
// download URL.
func (s *ExportService) Generate(ctx context.Context, job *models.ExportJob) (string, error) {
	renderer, err := export.ForFormat(string(job.Format))
	if err != nil {
		return "", err
	}
	dataset, err := s.dataset(ctx, job)
	if err != nil {
		return "", err
	}
	payload, err := renderer.Render(dataset)
	if err != nil {
		return "", fmt.Errorf("render %s export: %w", job.Format, err)
	}

	key := s.buildKey(job, renderer.Extension())
	if err := s.store.Save(ctx, key, payload, renderer.ContentType()); err != nil {
		return "", err
	}
	token, _, err := s.signer.Sign(job.ID, key)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/exports/download/%s", strings.TrimRight(s.cfg.APIPrefix, "/"), token), nil
}

// RecoverPendingJobs re-enqueues jobs left queued or processing by a
// previous process.
func (s *ExportService) RecoverPendingJobs(ctx context.Context) {
	pending, err := s.repo.ListByStatus(ctx, 50, models.ExportStatusQueued, models.ExportStatusProcessing)
	if err != nil {
		s.logger.Warn("failed to recover pending export jobs", zap.Error(err))
		return
	}
	for i := range pending {
		if err := s.enqueue(&pending[i]); err != nil {
			s.logger.Warn("failed to requeue export job", zap.String("job_id", pending[i].ID), zap.Error(err))
		}
	}
}

// StartCleanup purges expired export files every CleanupInterval until ctx ends.
func (s *ExportService) StartCleanup(ctx context.Context) {
	if s.cfg.CleanupInterval <= 0 {
		return
	}
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.CleanupExpired(ctx)
			}
		}
	}()
}

// CleanupExpired deletes the files of jobs whose links have expired, then
// sweeps any file older than the link TTL.
func (s *ExportService) CleanupExpired(ctx context.Context) {
	const batch = 100
	cutoff := s.now().Add(-s.signer.TTL())
	jobsBefore, err := s.repo.ListFinishedBefore(ctx, cutoff, batch)
	if err != nil {
		s.logger.Warn("export cleanup list failed", zap.Error(err))
		return
	}
	for _, job := range jobsBefore {
		if job.ResultURL == nil {
			continue
		}
		claims, err := s.signer.Verify(extractToken(*job.ResultURL), true)
		if err != nil {
			continue
		}
		if err := s.store.Delete(ctx, claims.Key); err != nil {
			s.logger.Warn("export cleanup delete failed", zap.String("job_id", job.ID), zap.Error(err))
		}
	}
	removed, err := s.store.CleanupOlderThan(ctx, s.signer.TTL())
	if err != nil {
		s.logger.Warn("export storage sweep failed", zap.Error(err))
		return
	}
	if len(removed) > 0 {
		s.logger.Info("expired exports removed", zap.Int("count", len(removed)))
	}
}

func (s *ExportService) enqueue(job *models.ExportJob) error {
	if s.queue == nil {
		return jobs.ErrNotStarted
	}
	return s.queue.Enqueue(jobs.Job{ID: job.ID, Type: job.Resource + "." + string(job.Format)})
}

func (s *ExportService) load(ctx context.Context, id string) (*models.ExportJob, error) {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
		}
		return nil, internalError(err, "failed to load export job")
	}
	return job, nil
}

func (s *ExportService) markFailed(ctx context.Context, id, message string) {
	failed := models.ExportStatusFailed
	now := s.now()
	if err := s.repo.Update(ctx, id, repository.UpdateExportJobParams{
		Status:       &failed,
		ErrorMessage: &message,
		FinishedAt:   &now,
	}); err != nil {
		s.logger.Warn("failed to mark export job failed", zap.String("job_id", id), zap.Error(err))
	}
}

func (s *ExportService) dataset(ctx context.Context, job *models.ExportJob) (export.Dataset, error) {
	switch job.Resource {
	case models.ResourcePosts:
		posts, err := s.posts.ExportRows(ctx, job.Query, s.cfg.MaxRows)
		if err != nil {
			return export.Dataset{}, err
		}
		return postDataset(posts), nil
	default:
		return export.Dataset{}, fmt.Errorf("resource %s cannot be exported", job.Resource)
	}
}

func (s *ExportService) buildKey(job *models.ExportJob, ext string) string {
	timestamp := s.now().Format("20060102_150405")
	short := job.ID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("%s/%s_%s_%s.%s", job.Resource, job.Resource, timestamp, short, ext)
}

func postDataset(posts []models.Post) export.Dataset {
	headers := []string{"ID", "Title", "Status", "Category", "Created At"}
	rows := make([]map[string]string, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, map[string]string{
			"ID":         strconv.FormatInt(p.ID, 10),
			"Title":      p.Title,
			"Status":     string(p.Status),
			"Category":   p.Category.Title,
			"Created At": p.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return export.Dataset{Title: "Posts", Headers: headers, Rows: rows}
}

func extractToken(resultURL string) string {
	if i := strings.LastIndex(resultURL, "/"); i >= 0 {
		return resultURL[i+1:]
	}
	return resultURL
}

// ExportWorker bridges queue jobs to the ExportService.
type ExportWorker struct {
	repo     exportJobStore
	exporter *ExportService
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewExportWorker constructs a worker.
func NewExportWorker(repo exportJobStore, exporter *ExportService, metrics *MetricsService, logger *zap.Logger) *ExportWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportWorker{repo: repo, exporter: exporter, metrics: metrics, logger: logger}
}

// Handle processes one queued export. A failed attempt puts the job back to
// QUEUED and returns the error so the queue retries it.
func (w *ExportWorker) Handle(ctx context.Context, job jobs.Job) error {
	record, err := w.repo.GetByID(ctx, job.ID)
	if err != nil {
		return err
	}
	if record.Status == models.ExportStatusFinished || record.Status == models.ExportStatusFailed {
		return nil
	}

	start := time.Now()
	processing := models.ExportStatusProcessing
	if err := w.repo.Update(ctx, job.ID, repository.UpdateExportJobParams{Status: &processing}); err != nil {
		return err
	}

	resultURL, err := w.exporter.Generate(ctx, record)
	if err != nil {
		queued := models.ExportStatusQueued
		msg := err.Error()
		if updateErr := w.repo.Update(ctx, job.ID, repository.UpdateExportJobParams{Status: &queued, ErrorMessage: &msg}); updateErr != nil {
			w.logger.Warn("failed to requeue export job", zap.String("job_id", job.ID), zap.Error(updateErr))
		}
		return err
	}

	finished := models.ExportStatusFinished
	now := time.Now().UTC()
	none := ""
	if err := w.repo.Update(ctx, job.ID, repository.UpdateExportJobParams{
		Status:       &finished,
		ResultURL:    &resultURL,
		ErrorMessage: &none,
		FinishedAt:   &now,
	}); err != nil {
		return err
	}
	w.metrics.RecordExport(string(record.Format), false, time.Since(start))
	w.logger.Info("export finished", zap.String("job_id", job.ID), zap.String("format", string(record.Format)))
	return nil
}

// Fail marks a job FAILED once the queue has given up on it.
func (w *ExportWorker) Fail(ctx context.Context, job jobs.Job, err error) {
	w.exporter.markFailed(ctx, job.ID, err.Error())
	format := job.Type
	if i := strings.LastIndex(format, "."); i >= 0 {
		format = format[i+1:]
	}
	w.metrics.RecordExport(format, true, 0)
}

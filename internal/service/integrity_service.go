package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"exam_integrity_backend/internal/config"
	"exam_integrity_backend/internal/integrity"
	"exam_integrity_backend/internal/model"
	"exam_integrity_backend/internal/util"
	"exam_integrity_backend/pkg/logger"
	"exam_integrity_backend/pkg/monitoring"
	"exam_integrity_backend/pkg/tracing"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type AttemptStore interface {
	FindByID(ctx context.Context, id uint) (*model.ExamAttempt, error)
	ListByExam(ctx context.Context, examID uint) ([]model.ExamAttempt, error)
}

type ProctorEventStore interface {
	ListByAttempt(ctx context.Context, attemptID uint) ([]model.ProctorEvent, error)
}

type AnswerSegmentStore interface {
	ListSavedByAttempt(ctx context.Context, attemptID uint) ([]model.AnswerSegment, error)
}

type ReportArchiver interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
}

type IntegrityService struct {
	Attempts AttemptStore
	Events   ProctorEventStore
	Answers  AnswerSegmentStore
	Cache    ReportCache
	Archive  ReportArchiver

	mu  sync.RWMutex
	cfg config.IntegrityConfig

	now func() time.Time
}

// NewIntegrityService cache 与 archive 可以为 nil
func NewIntegrityService(
	attempts AttemptStore,
	events ProctorEventStore,
	answers AnswerSegmentStore,
	cache ReportCache,
	archive ReportArchiver,
	cfg config.IntegrityConfig,
) *IntegrityService {
	return &IntegrityService{
		Attempts: attempts,
		Events:   events,
		Answers:  answers,
		Cache:    cache,
		Archive:  archive,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *IntegrityService) settings() config.IntegrityConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Options 当前生效的焦点窗口参数
func (s *IntegrityService) Options() integrity.FocusLossOptions {
	return s.settings().FocusLossOptions()
}

// UpdateConfig 配置热更新入口
func (s *IntegrityService) UpdateConfig(cfg config.IntegrityConfig) {
	s.mu.Lock()
	old := s.cfg
	s.cfg = cfg
	s.mu.Unlock()

	if old.FocusLossOptions() != cfg.FocusLossOptions() {
		logger.Log.Info("Integrity options updated",
			zap.Int("windowSeconds", cfg.WindowSeconds),
			zap.Int("graceMs", cfg.GraceMs),
		)
	}
}

func reportCacheKey(attemptID uint, opts integrity.FocusLossOptions) string {
	return fmt.Sprintf("%s%d:w%d:g%d", util.IntegrityReportKeyPrefix, attemptID, opts.WindowSeconds, opts.GraceMs)
}

func (s *IntegrityService) findAttempt(ctx context.Context, attemptID uint) (*model.ExamAttempt, error) {
	attempt, err := s.Attempts.FindByID(ctx, attemptID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAttemptNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load attempt %d: %w", attemptID, err)
	}
	return attempt, nil
}

// GetAttemptReport 分析单次作答；作答中的记录拒绝分析
func (s *IntegrityService) GetAttemptReport(ctx context.Context, attemptID uint) (*model.AttemptIntegrityReport, error) {
	ctx, span := tracing.Tracer.Start(ctx, "IntegrityService.GetAttemptReport")
	defer span.End()
	span.SetAttributes(attribute.Int64("attempt.id", int64(attemptID)))

	attempt, err := s.findAttempt(ctx, attemptID)
	if err != nil {
		tracing.Fail(span, err)
		return nil, err
	}
	if !attempt.Status.Frozen() {
		return nil, util.ErrAttemptInProgress
	}

	report, err := s.reportFor(ctx, attempt)
	if err != nil {
		tracing.Fail(span, err)
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("integrity.score", report.Score.Score),
		attribute.String("integrity.band", string(report.Score.Band)),
	)
	return report, nil
}

func (s *IntegrityService) reportFor(ctx context.Context, attempt *model.ExamAttempt) (*model.AttemptIntegrityReport, error) {
	settings := s.settings()
	opts := settings.FocusLossOptions()
	key := reportCacheKey(attempt.ID, opts)

	if s.Cache != nil {
		cached, ok, err := s.Cache.Get(ctx, key)
		if err != nil {
			logger.Log.Warn("读取完整性报告缓存失败", zap.String("key", key), zap.Error(err))
		}
		monitoring.ObserveCacheLookup(ok)
		if ok {
			return cached, nil
		}
	}

	start := time.Now()

	rows, err := s.Events.ListByAttempt(ctx, attempt.ID)
	if err != nil {
		return nil, fmt.Errorf("load proctor events for attempt %d: %w", attempt.ID, err)
	}
	segments, err := s.Answers.ListSavedByAttempt(ctx, attempt.ID)
	if err != nil {
		return nil, fmt.Errorf("load answer segments for attempt %d: %w", attempt.ID, err)
	}

	events, stats := toIntegrityEvents(rows)
	if stats.MalformedMetadata > 0 || stats.UnknownKinds > 0 {
		logger.Log.Warn("监考事件数据不规范，已按默认值处理",
			zap.Uint("attemptId", attempt.ID),
			zap.Int("malformedMetadata", stats.MalformedMetadata),
			zap.Int("unknownKinds", stats.UnknownKinds),
		)
	}
	answers := toAnswerTimestamps(segments)

	outOfOrder := !integrity.IsChronological(events)
	if outOfOrder {
		logger.Log.Warn("监考事件未按时间排序，结果不可靠", zap.Uint("attemptId", attempt.ID))
	}

	report := &model.AttemptIntegrityReport{
		AttemptID:   attempt.ID,
		ExamID:      attempt.ExamID,
		StudentID:   attempt.StudentID,
		Options:     opts,
		EventCount:  len(events),
		AnswerCount: len(answers),
		OutOfOrder:  outOfOrder,
		ComputedAt:  s.now().UTC(),
		Report:      integrity.Analyze(events, answers, opts),
	}

	monitoring.ObserveReport(string(report.Score.Band), time.Since(start))
	logger.Log.Debug("Integrity report computed",
		zap.Uint("attemptId", attempt.ID),
		zap.Int("score", report.Score.Score),
		zap.String("band", string(report.Score.Band)),
	)

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, report, settings.CacheTTL()); err != nil {
			logger.Log.Warn("写入完整性报告缓存失败", zap.String("key", key), zap.Error(err))
		}
	}
	return report, nil
}

// SummarizeExam 并发分析同一考试下所有已提交的作答
func (s *IntegrityService) SummarizeExam(ctx context.Context, examID uint) (*model.ExamIntegritySummary, error) {
	ctx, span := tracing.Tracer.Start(ctx, "IntegrityService.SummarizeExam")
	defer span.End()
	span.SetAttributes(attribute.Int64("exam.id", int64(examID)))

	attempts, err := s.Attempts.ListByExam(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("list attempts for exam %d: %w", examID, err)
	}
	if len(attempts) == 0 {
		return nil, util.ErrExamNotFound
	}

	summary := &model.ExamIntegritySummary{
		ExamID: examID,
		ByBand: map[integrity.Band]int{
			integrity.BandNone:   0,
			integrity.BandLow:    0,
			integrity.BandMedium: 0,
			integrity.BandHigh:   0,
		},
	}

	var frozen []*model.ExamAttempt
	for i := range attempts {
		if attempts[i].Status.Frozen() {
			frozen = append(frozen, &attempts[i])
		} else {
			summary.Skipped++
		}
	}

	rows := make([]model.AttemptIntegritySummary, len(frozen))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.settings().MaxParallel)
	for i, attempt := range frozen {
		g.Go(func() error {
			report, err := s.reportFor(gctx, attempt)
			if err != nil {
				return err
			}
			rows[i] = model.AttemptIntegritySummary{
				AttemptID: attempt.ID,
				StudentID: attempt.StudentID,
				Score:     report.Score.Score,
				Band:      report.Score.Band,
				FocusFlag: report.FocusLoss.Flag,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		tracing.Fail(span, err)
		return nil, err
	}

	for _, row := range rows {
		summary.ByBand[row.Band]++
	}
	summary.Attempts = rows
	return summary, nil
}

// ArchiveAttemptReport 将报告快照写入对象存储，供复核留档
func (s *IntegrityService) ArchiveAttemptReport(ctx context.Context, attemptID uint) (*model.ArchivedReport, error) {
	if s.Archive == nil || !s.settings().ArchiveEnabled {
		return nil, util.ErrArchiveDisabled
	}

	report, err := s.GetAttemptReport(ctx, attemptID)
	if err != nil {
		return nil, err
	}

	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode report for attempt %d: %w", attemptID, err)
	}

	key := fmt.Sprintf("integrity/%d/%d/%s.json", report.ExamID, attemptID, uuid.NewString())
	url, err := s.Archive.Upload(ctx, key, bytes.NewReader(b), int64(len(b)), util.MimeJSON)
	if err != nil {
		return nil, fmt.Errorf("archive report for attempt %d: %w", attemptID, err)
	}

	logger.Log.Info("Integrity report archived", zap.Uint("attemptId", attemptID), zap.String("key", key))
	return &model.ArchivedReport{AttemptID: attemptID, Key: key, URL: url}, nil
}

type PreviewEvent struct {
	Kind      string         `json:"kind"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata"`
}

type PreviewAnswer struct {
	QuestionID string    `json:"questionId"`
	SavedAt    time.Time `json:"savedAt"`
}

type PreviewRequest struct {
	Events        []PreviewEvent  `json:"events"`
	Answers       []PreviewAnswer `json:"answers"`
	WindowSeconds *int            `json:"windowSeconds"`
	GraceMs       *int            `json:"graceMs"`
}

// PreviewBodyLimit 预览请求体的字节上限
func (s *IntegrityService) PreviewBodyLimit() int64 {
	return s.settings().PreviewBodyLimit()
}

// Preview 对请求中的事件直接运行分析，不访问存储
func (s *IntegrityService) Preview(req PreviewRequest) (*integrity.Report, error) {
	settings := s.settings()
	if len(req.Events) > settings.PreviewMaxEvents || len(req.Answers) > settings.PreviewMaxAnswers {
		return nil, fmt.Errorf("%w: %d events (max %d), %d answers (max %d)", util.ErrPreviewTooLarge,
			len(req.Events), settings.PreviewMaxEvents, len(req.Answers), settings.PreviewMaxAnswers)
	}

	opts := settings.FocusLossOptions()
	if req.WindowSeconds != nil {
		opts.WindowSeconds = *req.WindowSeconds
	}
	if req.GraceMs != nil {
		opts.GraceMs = *req.GraceMs
	}
	if opts.WindowSeconds < 0 || opts.GraceMs < 0 {
		return nil, fmt.Errorf("%w: windowSeconds=%d graceMs=%d", util.ErrInvalidOptions, opts.WindowSeconds, opts.GraceMs)
	}

	events := make([]integrity.Event, 0, len(req.Events))
	for i, e := range req.Events {
		kind := integrity.EventKind(e.Kind)
		if !kind.Valid() {
			return nil, fmt.Errorf("events[%d]: %w: %q", i, util.ErrInvalidEventKind, e.Kind)
		}
		events = append(events, integrity.Event{Kind: kind, Timestamp: e.Timestamp, Metadata: e.Metadata})
	}
	// 调用方负责排序；请求体可能乱序，这里按时间稳定排序
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	answers := make([]integrity.AnswerTimestamp, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, integrity.AnswerTimestamp{QuestionID: a.QuestionID, SavedAt: a.SavedAt})
	}

	report := integrity.Analyze(events, answers, opts)
	return &report, nil
}

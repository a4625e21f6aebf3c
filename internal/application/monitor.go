package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"leak-watch/internal/domain/entity"
	"leak-watch/internal/domain/port"
	"leak-watch/internal/lgr"
)

// RunObserver получает события запуска для вывода пользователю
type RunObserver interface {
	Connected(model entity.ModelRef)
	ImageStarted(index, total int, imageName string)
	ImageFinished(result entity.ImageResult)
}

// MonitorConfig параметры запуска
type MonitorConfig struct {
	Model      entity.ModelRef
	Facility   entity.Facility
	Confidence int // порог уверенности в процентах
}

// RunReport результат всего запуска
type RunReport struct {
	Results     []entity.ImageResult
	Summary     *entity.RunSummary
	Description *entity.AiDescription
}

type MonitorService struct {
	cfg       MonitorConfig
	resolver  port.ModelResolver
	loader    port.ImageLoader
	annotator port.Annotator
	alerts    port.AlertPublisher
	results   port.ResultRepository
	describer port.SummaryDescriber
	clock     Clock
	newRunID  func() string
}

// MonitorDeps внешние зависимости сервиса. Annotator и Describer необязательны.
type MonitorDeps struct {
	Resolver  port.ModelResolver
	Loader    port.ImageLoader
	Annotator port.Annotator
	Alerts    port.AlertPublisher
	Results   port.ResultRepository
	Describer port.SummaryDescriber
	Clock     Clock
	NewRunID  func() string
}

// NewMonitorService создаёт сервис, который прогоняет изображения через модель.
func NewMonitorService(cfg MonitorConfig, deps MonitorDeps) *MonitorService {
	clock := deps.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	return &MonitorService{
		cfg:       cfg,
		resolver:  deps.Resolver,
		loader:    deps.Loader,
		annotator: deps.Annotator,
		alerts:    deps.Alerts,
		results:   deps.Results,
		describer: deps.Describer,
		clock:     clock,
		newRunID:  deps.NewRunID,
	}
}

// Run подключается к модели и обрабатывает изображения строго по очереди.
// Ошибка одного изображения попадает в его результат, ошибка подключения
// или отмена контекста прерывает весь запуск. obs может быть nil.
func (s *MonitorService) Run(ctx context.Context, imagePaths []string, obs RunObserver) (*RunReport, error) {
	if s.resolver == nil || s.loader == nil || s.results == nil {
		return nil, errors.New("monitor service is not configured")
	}

	runID := ""
	if s.newRunID != nil {
		runID = s.newRunID()
	}
	log := lgr.Logger.With(slog.String("runID", runID))
	ctx = lgr.WithLogger(ctx, log)

	if obs == nil {
		obs = nopObserver{}
	}

	log.Info("connecting to model",
		slog.String("workspace", s.cfg.Model.Workspace),
		slog.String("project", s.cfg.Model.Project),
		slog.Int("version", s.cfg.Model.Version),
	)
	predictor, err := s.resolver.ResolveModel(ctx, s.cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("connect to model: %w", err)
	}
	obs.Connected(s.cfg.Model)

	for i, path := range imagePaths {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run interrupted before image %d/%d: %w", i+1, len(imagePaths), err)
		}

		name := entity.ImageName(path)
		obs.ImageStarted(i+1, len(imagePaths), name)

		result := s.processImage(ctx, log, predictor, path, name)
		if result.Failed() {
			log.Warn("image failed", slog.String("image", name), slog.Any("error", result.Err))
		} else {
			log.Info("image analyzed",
				slog.String("image", name),
				slog.Int("leaked", result.Counts.Leaked),
				slog.Int("normal", result.Counts.Normal),
				slog.Int("detections", result.Counts.Total()),
			)
		}

		if err := s.results.Append(ctx, result); err != nil {
			return nil, fmt.Errorf("store result for %s: %w", name, err)
		}
		obs.ImageFinished(result)

		if !result.Failed() {
			s.publishAlert(ctx, log, name, result.Counts.Leaked)
		}
	}

	// отмена во время последнего изображения тоже прерывает запуск
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run interrupted: %w", err)
	}

	results, err := s.results.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	summary := Summarize(results, SummaryInput{
		RunID:    runID,
		Model:    s.cfg.Model,
		Facility: s.cfg.Facility,
		Now:      s.clock.Now(),
	})
	log.Info("run finished",
		slog.Int("analyzed", summary.ImagesAnalyzed),
		slog.Int("failed", summary.ImagesFailed),
		slog.Int("leaks", summary.TotalLeaks),
		slog.String("severity", string(summary.Facility.OverallSeverity)),
	)

	report := &RunReport{Results: results, Summary: summary}
	if summary.HasEquipment() {
		report.Description = s.describe(ctx, log, summary)
	}
	return report, nil
}

// processImage читает, отправляет и классифицирует одно изображение
func (s *MonitorService) processImage(ctx context.Context, log *slog.Logger, predictor port.Predictor, path, name string) entity.ImageResult {
	data, err := s.loader.Load(path)
	if err != nil {
		return entity.NewImageFailure(name, err)
	}

	resp, err := predictor.Predict(ctx, name, data, s.cfg.Confidence)
	if err != nil {
		return entity.NewImageFailure(name, err)
	}

	counts := Classify(resp.Predictions)

	if s.annotator != nil && counts.Total() > 0 {
		out, err := s.annotator.Annotate(data, name, counts.Detections)
		if err != nil {
			log.Warn("annotation skipped", slog.String("image", name), slog.Any("error", err))
		} else {
			log.Debug("annotated image written", slog.String("path", out))
		}
	}

	return entity.NewImageSuccess(name, counts)
}

func (s *MonitorService) publishAlert(ctx context.Context, log *slog.Logger, name string, leaks int) {
	alert, ok := BuildAlert(name, leaks, s.cfg.Facility)
	if !ok || s.alerts == nil {
		return
	}
	if err := s.alerts.Publish(ctx, alert); err != nil {
		log.Error("alert publish failed", slog.String("image", name), slog.Any("error", err))
	}
}

func (s *MonitorService) describe(ctx context.Context, log *slog.Logger, summary *entity.RunSummary) *entity.AiDescription {
	if s.describer == nil {
		return nil
	}
	desc, err := s.describer.Describe(ctx, summary)
	if err != nil {
		log.Warn("summary description unavailable", slog.Any("error", err))
		return nil
	}
	return desc
}

type nopObserver struct{}

func (nopObserver) Connected(entity.ModelRef) {}
func (nopObserver) ImageStarted(int, int, string) {}
func (nopObserver) ImageFinished(entity.ImageResult) {}

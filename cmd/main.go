package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/xerrors"

	"leak-watch/config"
	console "leak-watch/internal/api"
	app "leak-watch/internal/application"
	"leak-watch/internal/container"
	"leak-watch/internal/domain/entity"
	"leak-watch/internal/domain/port"
	"leak-watch/internal/infrastructure/describer"
	"leak-watch/internal/infrastructure/roboflow"
	"leak-watch/internal/infrastructure/storage"
	"leak-watch/internal/infrastructure/vision"
	"leak-watch/internal/lgr"
)

var (
	configFlag     = flag.String("config", "", "Path to YAML config (default: $CONFIG_PATH or ./config.yaml)")
	noColorFlag    = flag.Bool("no-color", false, "Disable colored output")
	confidenceFlag = flag.Int("confidence", -1, "Confidence threshold in percent, overrides config")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	presenter := console.NewPresenter(os.Stdout, *noColorFlag)

	cfg, err := config.Load(*configFlag)
	if err != nil {
		lgr.Logger.Error("config load error", slog.Any("error", xerrors.New(err.Error())))
		presenter.Fail(err)
		return 1
	}

	logCloser, err := lgr.Init(lgr.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		lgr.Logger.Error("logger init error", slog.Any("error", xerrors.New(err.Error())))
		presenter.Fail(err)
		return 1
	}
	defer logCloser.Close()

	if *confidenceFlag >= 0 {
		cfg.Roboflow.Confidence = *confidenceFlag
	}
	if err := cfg.Validate(); err != nil {
		lgr.Logger.Error("invalid config", slog.Any("error", xerrors.New(err.Error())))
		presenter.Fail(err)
		return 1
	}

	images := flag.Args()
	if len(images) == 0 {
		images = cfg.Images
	}
	if len(images) == 0 {
		err := errors.New("no images given: pass paths as arguments or set IMAGES")
		lgr.Logger.Error("nothing to do", slog.Any("error", err))
		presenter.Fail(err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rfCfg := roboflow.DefaultConfig(cfg.Roboflow.APIKey)
	rfCfg.APIURL = cfg.Roboflow.APIURL
	rfCfg.DetectURL = cfg.Roboflow.DetectURL
	rfCfg.Overlap = cfg.Roboflow.Overlap
	rfCfg.Timeout = cfg.Timeout()
	client, err := roboflow.NewClient(rfCfg)
	if err != nil {
		lgr.Logger.Error("roboflow client error", slog.Any("error", err))
		presenter.Fail(err)
		return 1
	}

	processor := vision.NewImageProcessor(cfg.Vision.MaxImageSide, cfg.Vision.AnnotateDir)

	// Необязательные адаптеры оставляем nil-интерфейсами, а не nil-указателями
	var annotator port.Annotator
	if cfg.Vision.AnnotateDir != "" {
		annotator = processor
	}
	var summaryDescriber port.SummaryDescriber
	if cfg.OpenAI.APIKey != "" {
		summaryDescriber = describer.NewOpenAIDescriber(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	}

	model := entity.ModelRef{
		Workspace: cfg.Roboflow.Workspace,
		Project:   cfg.Roboflow.Project,
		Version:   cfg.Roboflow.Version,
	}

	// Собираем сервисы приложения
	appContainer := container.New(
		app.MonitorConfig{
			Model:      model,
			Facility:   entity.Facility{ID: cfg.Facility.ID, Name: cfg.Facility.Name},
			Confidence: cfg.Roboflow.Confidence,
		},
		container.Adapters{
			Resolver:  client,
			Loader:    processor,
			Annotator: annotator,
			Alerts:    presenter,
			Results:   storage.NewMemoryResultRepository(),
			Describer: summaryDescriber,
		},
	)

	presenter.Start(model, len(images))
	report, err := appContainer.MonitorService.Run(ctx, images, presenter)
	if err != nil {
		lgr.Logger.Error("run failed", slog.Any("error", err))
		presenter.Fail(err)
		return 1
	}

	if err := presenter.Report(report); err != nil {
		lgr.Logger.Error("report failed", slog.Any("error", err))
		return 1
	}
	return 0
}

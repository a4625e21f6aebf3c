package container

import (
	"github.com/google/uuid"

	app "leak-watch/internal/application"
	"leak-watch/internal/domain/port"
)

type Container struct {
	MonitorService *app.MonitorService
}

// Adapters внешние реализации портов. Annotator и Describer могут быть nil.
type Adapters struct {
	Resolver  port.ModelResolver
	Loader    port.ImageLoader
	Annotator port.Annotator
	Alerts    port.AlertPublisher
	Results   port.ResultRepository
	Describer port.SummaryDescriber
}

func New(cfg app.MonitorConfig, a Adapters) *Container {
	monitorService := app.NewMonitorService(cfg, app.MonitorDeps{
		Resolver:  a.Resolver,
		Loader:    a.Loader,
		Annotator: a.Annotator,
		Alerts:    a.Alerts,
		Results:   a.Results,
		Describer: a.Describer,
		Clock:     app.SystemClock{},
		NewRunID:  uuid.NewString,
	})

	return &Container{
		MonitorService: monitorService,
	}
}

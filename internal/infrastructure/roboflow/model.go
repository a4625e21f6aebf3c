package roboflow

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/mdobak/go-xerrors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"leak-watch/internal/domain/entity"
	"leak-watch/internal/domain/port"
)

// ProjectInfo краткое описание проекта из ответа workspace
type ProjectInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type workspaceResponse struct {
	Workspace struct {
		Name     string        `json:"name"`
		URL      string        `json:"url"`
		Projects []ProjectInfo `json:"projects"`
	} `json:"workspace"`
}

type projectResponse struct {
	Project struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Type string `json:"type"`
	} `json:"project"`
	Versions []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"versions"`
}

// Workspace рабочее пространство
type Workspace struct {
	client   *Client
	ID       string
	Name     string
	Projects []ProjectInfo
}

// Project загружает проект и список его версий
func (w *Workspace) Project(ctx context.Context, id string) (*Project, error) {
	var body projectResponse
	if err := w.client.getJSON(ctx, []string{w.ID, id}, &body); err != nil {
		return nil, fmt.Errorf("load project %s/%s: %w", w.ID, id, err)
	}

	versions := make([]int, 0, len(body.Versions))
	for _, v := range body.Versions {
		// id версии имеет вид workspace/project/N
		n, err := strconv.Atoi(path.Base(v.ID))
		if err != nil {
			continue
		}
		versions = append(versions, n)
	}

	return &Project{
		client:    w.client,
		Workspace: w.ID,
		ID:        id,
		Name:      body.Project.Name,
		Type:      body.Project.Type,
		Versions:  versions,
	}, nil
}

// Project проект с обученными версиями
type Project struct {
	client    *Client
	Workspace string
	ID        string
	Name      string
	Type      string
	Versions  []int
}

// Version возвращает модель указанной версии
func (p *Project) Version(n int) (*Model, error) {
	if !slices.Contains(p.Versions, n) {
		return nil, xerrors.New(fmt.Errorf("roboflow: project %s/%s: version %d not found", p.Workspace, p.ID, n))
	}
	return &Model{client: p.client, Project: p.ID, Version: n}, nil
}

// Model версия модели, доступная для инференса
type Model struct {
	client  *Client
	Project string
	Version int
}

// Predict отправляет изображение в hosted-инференс. Тело запроса: base64 от байтов изображения.
func (m *Model) Predict(ctx context.Context, imageName string, imageData []byte, confidence int) (*entity.PredictionResponse, error) {
	ctx, span := m.client.tracer.Start(ctx, "roboflow.Predict",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("image.name", imageName),
			attribute.Int("image.bytes", len(imageData)),
			attribute.String("model.project", m.Project),
			attribute.Int("model.version", m.Version),
			attribute.Int("model.confidence", confidence),
		),
	)
	defer span.End()

	resp, err := m.predict(ctx, imageData, confidence)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("predictions", len(resp.Predictions)))
	return resp, nil
}

func (m *Model) predict(ctx context.Context, imageData []byte, confidence int) (*entity.PredictionResponse, error) {
	c := m.client
	query := url.Values{}
	query.Set("confidence", strconv.Itoa(confidence))
	query.Set("overlap", strconv.Itoa(c.cfg.Overlap))
	query.Set("format", "json")

	u, err := c.endpoint(c.cfg.DetectURL, []string{m.Project, strconv.Itoa(m.Version)}, query)
	if err != nil {
		return nil, err
	}

	body := base64.StdEncoding.EncodeToString(imageData)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), strings.NewReader(body))
	if err != nil {
		return nil, xerrors.New(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out entity.PredictionResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

var _ port.Predictor = (*Model)(nil)

package roboflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mdobak/go-xerrors"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"leak-watch/internal/domain/entity"
	"leak-watch/internal/domain/port"
)

const (
	DefaultAPIURL    = "https://api.roboflow.com"
	DefaultDetectURL = "https://detect.roboflow.com"
	DefaultOverlap   = 30
	DefaultTimeout   = 30 * time.Second

	// сколько байт тела ответа попадает в текст ошибки
	maxErrorBody = 512
)

// Config настройки клиента сервиса инференса
type Config struct {
	APIKey    string
	APIURL    string // адрес API метаданных: workspace, project, versions
	DetectURL string // адрес hosted-инференса
	Overlap   int    // порог перекрытия рамок в процентах

	// HTTPClient если не задан, создаётся с таймаутом Timeout
	HTTPClient *http.Client
	Timeout    time.Duration

	// Tracer если не задан, используется noop
	Tracer trace.Tracer
}

// DefaultConfig возвращает настройки публичного hosted API
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:    apiKey,
		APIURL:    DefaultAPIURL,
		DetectURL: DefaultDetectURL,
		Overlap:   DefaultOverlap,
		Timeout:   DefaultTimeout,
	}
}

// Client HTTP-клиент hosted-инференса
type Client struct {
	cfg    Config
	http   *http.Client
	tracer trace.Tracer
}

// NewClient создаёт клиент. Сеть не трогает: ключ проверяется при первом запросе.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("roboflow: api key is required")
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.DetectURL == "" {
		cfg.DetectURL = DefaultDetectURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("leak-watch/roboflow")
	}

	return &Client{cfg: cfg, http: httpClient, tracer: tracer}, nil
}

// ResolveModel проходит цепочку workspace → project → version
func (c *Client) ResolveModel(ctx context.Context, ref entity.ModelRef) (port.Predictor, error) {
	ws, err := c.Workspace(ctx, ref.Workspace)
	if err != nil {
		return nil, err
	}
	project, err := ws.Project(ctx, ref.Project)
	if err != nil {
		return nil, err
	}
	model, err := project.Version(ref.Version)
	if err != nil {
		return nil, err
	}
	return model, nil
}

// Workspace загружает описание рабочего пространства
func (c *Client) Workspace(ctx context.Context, id string) (*Workspace, error) {
	var body workspaceResponse
	if err := c.getJSON(ctx, []string{id}, &body); err != nil {
		return nil, fmt.Errorf("load workspace %s: %w", id, err)
	}

	return &Workspace{
		client:   c,
		ID:       id,
		Name:     body.Workspace.Name,
		Projects: body.Workspace.Projects,
	}, nil
}

// getJSON выполняет GET к API метаданных и декодирует ответ
func (c *Client) getJSON(ctx context.Context, segments []string, out any) error {
	u, err := c.endpoint(c.cfg.APIURL, segments, nil)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return xerrors.New(err)
	}

	return c.do(req, out)
}

// endpoint собирает URL с api_key; ключ в тексты ошибок не попадает
func (c *Client) endpoint(base string, segments []string, query url.Values) (*url.URL, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, xerrors.New(fmt.Errorf("roboflow: invalid base url %q: %w", base, err))
	}
	u = u.JoinPath(segments...)

	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.cfg.APIKey)
	u.RawQuery = query.Encode()
	return u, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return xerrors.New(fmt.Errorf("roboflow: %s %s: %w", req.Method, req.URL.Path, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return xerrors.New(fmt.Errorf("roboflow: read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return xerrors.New(&StatusError{
			Method: req.Method,
			Path:   req.URL.Path,
			Code:   resp.StatusCode,
			Body:   truncate(strings.TrimSpace(string(data)), maxErrorBody),
		})
	}

	if err := json.Unmarshal(data, out); err != nil {
		return xerrors.New(fmt.Errorf("roboflow: decode response from %s: %w", req.URL.Path, err))
	}
	return nil
}

// StatusError ответ сервиса с кодом не из 2xx
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("roboflow: %s %s: status %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("roboflow: %s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

var _ port.ModelResolver = (*Client)(nil)

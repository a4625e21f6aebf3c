package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config.yaml"

type Roboflow struct {
	APIKey         string `yaml:"apiKey"`
	Workspace      string `yaml:"workspace"`
	Project        string `yaml:"project"`
	Version        int    `yaml:"version"`
	Confidence     int    `yaml:"confidence"` // в процентах
	Overlap        int    `yaml:"overlap"`
	APIURL         string `yaml:"apiURL"`
	DetectURL      string `yaml:"detectURL"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

type Facility struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type Vision struct {
	MaxImageSide int    `yaml:"maxImageSide"`
	AnnotateDir  string `yaml:"annotateDir"`
}

type OpenAI struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
}

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type Config struct {
	Roboflow Roboflow `yaml:"roboflow"`
	Facility Facility `yaml:"facility"`
	Images   []string `yaml:"images"`
	Vision   Vision   `yaml:"vision"`
	OpenAI   OpenAI   `yaml:"openai"`
	Log      Log      `yaml:"log"`
}

// Default возвращает значения, с которыми модель обучалась и проверялась
func Default() *Config {
	return &Config{
		Roboflow: Roboflow{
			Workspace:      "water-treatment-equipment-status-detection",
			Project:        "equipment-status-monitor-12qyy",
			Version:        3,
			Confidence:     40,
			Overlap:        30,
			APIURL:         "https://api.roboflow.com",
			DetectURL:      "https://detect.roboflow.com",
			TimeoutSeconds: 30,
		},
		Facility: Facility{
			ID:   "water-treatment-1",
			Name: "Primary Water Treatment Plant",
		},
		Vision: Vision{MaxImageSide: 1024},
		Log:    Log{Level: "info"},
	}
}

// Load собирает конфигурацию: значения по умолчанию, затем YAML-файл, затем переменные окружения.
// Если path пустой, берётся CONFIG_PATH или config.yaml, а отсутствие файла не ошибка.
func Load(path string) (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	explicit := path != ""
	if !explicit {
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			path, explicit = v, true
		} else {
			path = DefaultPath
		}
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Roboflow.APIKey, "ROBOFLOW_API_KEY")
	setString(&c.Roboflow.Workspace, "ROBOFLOW_WORKSPACE")
	setString(&c.Roboflow.Project, "ROBOFLOW_PROJECT")
	setString(&c.Roboflow.APIURL, "ROBOFLOW_API_URL")
	setString(&c.Roboflow.DetectURL, "ROBOFLOW_DETECT_URL")
	setString(&c.Facility.ID, "FACILITY_ID")
	setString(&c.Facility.Name, "FACILITY_NAME")
	setString(&c.Vision.AnnotateDir, "ANNOTATE_DIR")
	setString(&c.OpenAI.APIKey, "OPENAI_API_KEY")
	setString(&c.OpenAI.Model, "OPENAI_MODEL")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.File, "LOG_FILE")

	ints := []struct {
		dst *int
		key string
	}{
		{&c.Roboflow.Version, "ROBOFLOW_VERSION"},
		{&c.Roboflow.Confidence, "ROBOFLOW_CONFIDENCE"},
		{&c.Roboflow.Overlap, "ROBOFLOW_OVERLAP"},
		{&c.Roboflow.TimeoutSeconds, "ROBOFLOW_TIMEOUT"},
		{&c.Vision.MaxImageSide, "MAX_IMAGE_SIDE"},
	}
	for _, it := range ints {
		if err := setInt(it.dst, it.key); err != nil {
			return err
		}
	}

	if v := os.Getenv("IMAGES"); v != "" {
		c.Images = splitList(v)
	}
	return nil
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	var errs []error
	if c.Roboflow.APIKey == "" {
		errs = append(errs, errors.New("ROBOFLOW_API_KEY is required"))
	}
	if c.Roboflow.Workspace == "" || c.Roboflow.Project == "" {
		errs = append(errs, errors.New("roboflow workspace and project are required"))
	}
	if c.Roboflow.Version <= 0 {
		errs = append(errs, fmt.Errorf("roboflow version must be positive, got %d", c.Roboflow.Version))
	}
	if c.Roboflow.Confidence < 0 || c.Roboflow.Confidence > 100 {
		errs = append(errs, fmt.Errorf("confidence must be within 0..100, got %d", c.Roboflow.Confidence))
	}
	return errors.Join(errs...)
}

// Timeout таймаут HTTP-запросов к сервису инференса
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Roboflow.TimeoutSeconds) * time.Second
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

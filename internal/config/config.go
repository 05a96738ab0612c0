package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"

	"github.com/DanielPopoola/mollie-ideal/internal/domain"
)

const (
	DefaultBaseURL = "https://secure.mollie.nl/xml/ideal"
	DefaultTimeout = 30 * time.Second

	envPrefix = "MOLLIE_"
)

type Config struct {
	Gateway GatewayConfig `koanf:"gateway"`
	Logger  LoggerConfig  `koanf:"logger"`
}

// GatewayConfig holds the partner credentials and endpoints used for every call.
type GatewayConfig struct {
	PartnerID   int64         `koanf:"partner_id" validate:"required,gt=0"`
	ProfileKey  *string       `koanf:"profile_key"`
	TestMode    bool          `koanf:"test_mode"`
	ReportURL   string        `koanf:"report_url" validate:"omitempty,url"`
	ReturnURL   string        `koanf:"return_url" validate:"omitempty,url"`
	BaseURL     string        `koanf:"base_url" validate:"required,url"`
	TestBaseURL string        `koanf:"test_base_url" validate:"omitempty,url"`
	Timeout     time.Duration `koanf:"timeout" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("koanf"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// NewGatewayConfig returns a config holding only defaults. PartnerID must be
// set before Update succeeds.
func NewGatewayConfig() GatewayConfig {
	return GatewayConfig{
		BaseURL:     DefaultBaseURL,
		TestBaseURL: DefaultBaseURL,
		Timeout:     DefaultTimeout,
	}
}

// Reset restores every field to its default.
func (c *GatewayConfig) Reset() {
	*c = NewGatewayConfig()
}

// Update validates the pending field assignments.
func (c *GatewayConfig) Update() error {
	if err := validate.Struct(c); err != nil {
		return toValidationError(err)
	}
	return nil
}

func (c *GatewayConfig) SetProfileKey(key string) {
	c.ProfileKey = &key
}

func (c *GatewayConfig) ClearProfileKey() {
	c.ProfileKey = nil
}

// ProfileKeyValue reports the profile key and whether one is configured.
// An empty key counts as absent.
func (c GatewayConfig) ProfileKeyValue() (string, bool) {
	if c.ProfileKey == nil || *c.ProfileKey == "" {
		return "", false
	}
	return *c.ProfileKey, true
}

// Endpoint is the sandbox URL in test mode, the production URL otherwise.
func (c GatewayConfig) Endpoint() string {
	if c.TestMode && c.TestBaseURL != "" {
		return c.TestBaseURL
	}
	return c.BaseURL
}

func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &domain.ValidationError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("failed %q check", fe.Tag()),
		}
	}
	return err
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"gateway.base_url":      DefaultBaseURL,
		"gateway.test_base_url": DefaultBaseURL,
		"gateway.timeout":       DefaultTimeout.String(),
		"logger.level":          "info",
		"logger.format":         "text",
	}
}

// LoadConfig layers defaults, the YAML file at path (skipped when path is
// empty) and MOLLIE_ environment variables, in that order.
func LoadConfig(path string) (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		logger.Error("failed to load defaults", "error", err)
		return nil, err
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			logger.Error("failed to load config file", "path", path, "error", err)
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	err = mainConfig.Gateway.Update()
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"slices"
	"strings"
	"time"

	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/pkg/configparser"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	"github.com/Temutjin2k/ride-analytics/pkg/validator"
)

// Flags
var (
	modeFlag = flag.String("mode", string(types.DashboardMode), "application mode: dashboard | report")
	fileFlag = flag.String("file", "", "ride records file rendered in report mode")
)

// Errors
var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config contains all configuration variables of the application
type (
	Config struct {
		Mode types.ServiceMode `ignored:"true"`
		File string            `ignored:"true"`

		Log      LogConfig      `envconfig:"LOG"`
		HTTP     HTTPConfig     `envconfig:"HTTP"`
		Session  SessionConfig  `envconfig:"SESSION"`
		Chart    ChartConfig    `envconfig:"CHART"`
		RabbitMQ RabbitMQConfig `envconfig:"RABBITMQ"`
		Import   ImportConfig   `envconfig:"IMPORT"`
	}

	LogConfig struct {
		Level string `envconfig:"LEVEL" default:"INFO"`
	}

	HTTPConfig struct {
		Port         string        `envconfig:"PORT" default:"8080"`
		MaxUploadMB  int64         `envconfig:"MAX_UPLOAD_MB" default:"50"`
		ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"30s"`
		WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"60s"`
	}

	SessionConfig struct {
		Secret        string        `envconfig:"SECRET" default:"change-me-in-production"`
		TTL           time.Duration `envconfig:"TTL" default:"2h"`
		Capacity      int           `envconfig:"CAPACITY" default:"32"`
		SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"1m"`
	}

	// ChartConfig points chart URLs at a quickchart instance. Empty host keeps the public one.
	ChartConfig struct {
		Scheme string `envconfig:"SCHEME" default:"https"`
		Host   string `envconfig:"HOST"`
		Port   string `envconfig:"PORT"`
	}

	RabbitMQConfig struct {
		Enabled  bool   `envconfig:"ENABLED" default:"false"`
		Host     string `envconfig:"HOST" default:"localhost"`
		Port     string `envconfig:"PORT" default:"5672"`
		User     string `envconfig:"USER" default:"guest"`
		Password string `envconfig:"PASSWORD" default:"guest"`
		Exchange string `envconfig:"EXCHANGE" default:"analytics_topic"`
	}

	ImportConfig struct {
		Dir string `envconfig:"DIR"`
	}
)

func (c RabbitMQConfig) GetDSN() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		c.User,
		c.Password,
		c.Host,
		c.Port,
	)
}

// Address returns the quickchart host with its port, or "" for the public instance.
func (c ChartConfig) Address() string {
	if c.Host == "" || c.Port == "" {
		return c.Host
	}
	return net.JoinHostPort(c.Host, c.Port)
}

// MaxUploadBytes returns the upload limit in bytes.
func (c HTTPConfig) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

func NewConfig(filepath string) (*Config, error) {
	cfg := &Config{}

	// Loading enviromental variables and parsing to config struct.
	if err := configparser.LoadAndParseYaml(filepath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load and parse config: %w", err)
	}

	// Parsing flags
	parseFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseFlags(cfg *Config) {
	if modeFlag != nil {
		cfg.Mode = types.ServiceMode(*modeFlag)
	}
	if fileFlag != nil {
		cfg.File = *fileFlag
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	v := validator.New()

	v.Check(c.Mode.Valid(), "mode", "must be dashboard or report")
	v.Check(c.Mode != types.ReportMode || c.File != "" || c.Import.Dir != "", "file", "report mode needs -file or IMPORT_DIR")
	v.Check(logger.ValidateLogLevel(c.Log.Level), "LOG_LEVEL", "must be DEBUG, INFO, WARN or ERROR")

	if c.Mode == types.DashboardMode {
		v.Check(c.HTTP.Port != "", "HTTP_PORT", "must be provided")
		v.Check(c.HTTP.MaxUploadMB > 0, "HTTP_MAX_UPLOAD_MB", "must be greater than zero")
		v.Check(c.Session.Secret != "", "SESSION_SECRET", "must be provided")
		v.Check(c.Session.TTL > 0, "SESSION_TTL", "must be greater than zero")
		v.Check(c.Session.Capacity > 0, "SESSION_CAPACITY", "must be greater than zero")
		v.Check(c.Session.SweepInterval > 0, "SESSION_SWEEP_INTERVAL", "must be greater than zero")
	}

	v.Check(validator.PermittedValue(c.Chart.Scheme, "http", "https"), "CHART_SCHEME", "must be http or https")

	if c.RabbitMQ.Enabled {
		v.Check(c.RabbitMQ.Host != "", "RABBITMQ_HOST", "must be provided")
		v.Check(c.RabbitMQ.Exchange != "", "RABBITMQ_EXCHANGE", "must be provided")
	}

	if v.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(v.Errors))
	for key, msg := range v.Errors {
		msgs = append(msgs, key+": "+msg)
	}
	slices.Sort(msgs)
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

package oisetup

import (
	"net/url"
	"os"
	"time"

	"github.com/xoplog/oitrace/oiconst"
	"github.com/xoplog/oitrace/oiotel"

	"github.com/pkg/errors"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"gopkg.in/yaml.v3"
)

// Protocol names follow OTEL_EXPORTER_OTLP_PROTOCOL.
type Protocol string

const (
	ProtocolHTTP Protocol = "http/protobuf"
	ProtocolGRPC Protocol = "grpc"
)

type Config struct {
	// Endpoint is the full URL of the collector, for example
	// http://localhost:6006/v1/traces for Phoenix over HTTP.
	Endpoint string `yaml:"endpoint"`
	// ProjectName is only used by SetupPhoenix.
	ProjectName string              `yaml:"project_name"`
	Mode        oiotel.DeliveryMode `yaml:"mode"`
	Protocol    Protocol            `yaml:"protocol"`
	Insecure    bool                `yaml:"insecure"`
	// Headers are sent with every export. SetupPhoenix always overrides the
	// project header.
	Headers map[string]string `yaml:"headers"`
	Batch   BatchConfig       `yaml:"batch"`
}

// BatchConfig tunes the BatchSpanProcessor. Zero values keep the SDK
// defaults.
type BatchConfig struct {
	MaxQueueSize       int           `yaml:"max_queue_size"`
	MaxExportBatchSize int           `yaml:"max_export_batch_size"`
	BatchTimeout       time.Duration `yaml:"batch_timeout"`
	ExportTimeout      time.Duration `yaml:"export_timeout"`
	// Blocking makes OnEnd wait for queue space instead of dropping spans.
	Blocking bool `yaml:"blocking"`
}

func DefaultConfig() Config {
	return Config{
		ProjectName: oiconst.DefaultProjectName,
		Mode:        oiotel.Buffered,
		Protocol:    ProtocolHTTP,
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return config, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(b, &config); err != nil {
		return config, errors.Wrapf(err, "parse config %s", path)
	}
	return config, nil
}

func (c Config) Validate() error {
	if c.Endpoint == "" {
		return errors.New("endpoint is required")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return errors.Wrap(err, "endpoint")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Errorf("endpoint %q must be an http or https URL", c.Endpoint)
	}
	if u.Host == "" {
		return errors.Errorf("endpoint %q has no host", c.Endpoint)
	}
	switch c.Protocol {
	case ProtocolHTTP, ProtocolGRPC:
	default:
		return errors.Errorf("unknown protocol '%s'", c.Protocol)
	}
	switch c.Mode {
	case oiotel.Immediate, oiotel.Buffered:
	default:
		return errors.Errorf("unknown delivery mode '%s'", c.Mode)
	}
	if c.Batch.MaxQueueSize < 0 || c.Batch.MaxExportBatchSize < 0 ||
		c.Batch.BatchTimeout < 0 || c.Batch.ExportTimeout < 0 {
		return errors.New("batch settings must not be negative")
	}
	return nil
}

func (b BatchConfig) options() []sdktrace.BatchSpanProcessorOption {
	var opts []sdktrace.BatchSpanProcessorOption
	if b.MaxQueueSize > 0 {
		opts = append(opts, sdktrace.WithMaxQueueSize(b.MaxQueueSize))
	}
	if b.MaxExportBatchSize > 0 {
		opts = append(opts, sdktrace.WithMaxExportBatchSize(b.MaxExportBatchSize))
	}
	if b.BatchTimeout > 0 {
		opts = append(opts, sdktrace.WithBatchTimeout(b.BatchTimeout))
	}
	if b.ExportTimeout > 0 {
		opts = append(opts, sdktrace.WithExportTimeout(b.ExportTimeout))
	}
	if b.Blocking {
		opts = append(opts, sdktrace.WithBlocking())
	}
	return opts
}

package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the alarm relay binaries.
type Config struct {
	// ServerAddress is the gRPC address of the alarm listener.
	ServerAddress string `yaml:"server_addr"`
	// Timeout bounds network operations and RPC calls.
	Timeout time.Duration `yaml:"timeout"`
	// Attempts is how many times the reporter tries to publish an event.
	Attempts int `yaml:"attempts"`
	// Reporter overrides the detected process identity.
	Reporter string `yaml:"reporter"`
	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
	// Sink selects where the reporter publishes events.
	Sink string `yaml:"sink"`
	// Encoding is the payload format for the mqtt, redis and stdout sinks.
	Encoding string `yaml:"encoding"`
	// MQTT configures the mqtt sink.
	MQTT MQTTConfig `yaml:"mqtt"`
	// Redis configures the redis sink.
	Redis RedisConfig `yaml:"redis"`
}

// MQTTConfig holds MQTT broker settings.
type MQTTConfig struct {
	// Broker is the broker URL, e.g. tcp://127.0.0.1:1883.
	Broker string `yaml:"broker"`
	// ClientID identifies this client to the broker.
	ClientID string `yaml:"client_id"`
	// TopicPrefix is prepended to the alarm name to build the topic.
	TopicPrefix string `yaml:"topic_prefix"`
	// QoS is the MQTT quality of service level (0, 1 or 2).
	QoS byte `yaml:"qos"`
	// Retained asks the broker to keep the last event per topic.
	Retained bool `yaml:"retained"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// RedisConfig holds Redis settings.
type RedisConfig struct {
	// Addr is the host:port of the Redis server.
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// Stream is the stream key events are appended to.
	Stream string `yaml:"stream"`
}

// Sink names.
const (
	SinkGRPC   = "grpc"
	SinkMQTT   = "mqtt"
	SinkRedis  = "redis"
	SinkStdout = "stdout"
)

const (
	// DefaultConfigFilename is the default filename for relay settings.
	DefaultConfigFilename = "alarm-relay-settings.yaml"

	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 5 * time.Second

	// DefaultAttempts is the default number of publish attempts.
	DefaultAttempts = 3

	// DefaultLogLevel is used when log_level is empty.
	DefaultLogLevel = "info"

	// DefaultEncoding is used when encoding is empty.
	DefaultEncoding = "proto"

	// DefaultTopicPrefix is the default MQTT topic prefix.
	DefaultTopicPrefix = "alarms"

	// DefaultStream is the default Redis stream key.
	DefaultStream = "alarms"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600

	// maxQoS is the highest MQTT quality of service level.
	maxQoS = 2
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errServerSocketRequired is returned when the grpc sink has no server address.
	errServerSocketRequired = errors.New("server address must be provided")
	// errBrokerRequired is returned when the mqtt sink has no broker.
	errBrokerRequired = errors.New("mqtt broker must be provided")
	// errRedisAddrRequired is returned when the redis sink has no address.
	errRedisAddrRequired = errors.New("redis address must be provided")
	// errInvalidQoS is returned for MQTT QoS levels above 2.
	errInvalidQoS = errors.New("mqtt qos must be 0, 1 or 2")
	// errUnknownSink is returned for unsupported sink names.
	errUnknownSink = errors.New("unknown sink")
	// errUnknownEncoding is returned for unsupported payload encodings.
	errUnknownEncoding = errors.New("unknown encoding")
)

// Load reads configuration from the provided path and validates it.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Read parses the file without validating it, so callers can apply
// command-line overrides before calling Validate.
func Read(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	return &cfg, nil
}

// Save writes cfg to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions: the file may hold broker credentials.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills defaults and checks the settings required by the selected sink.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	applyDefaults(settings)

	if settings.ServerAddress != "" {
		if _, err := net.ResolveTCPAddr("tcp", settings.ServerAddress); err != nil {
			return fmt.Errorf("invalid server socket: %w", err)
		}
	}

	switch settings.Encoding {
	case "proto", "json":
	default:
		return fmt.Errorf("%w: %q", errUnknownEncoding, settings.Encoding)
	}

	switch settings.Sink {
	case SinkGRPC:
		if settings.ServerAddress == "" {
			return errServerSocketRequired
		}
	case SinkMQTT:
		if settings.MQTT.Broker == "" {
			return errBrokerRequired
		}

		if settings.MQTT.QoS > maxQoS {
			return errInvalidQoS
		}
	case SinkRedis:
		if settings.Redis.Addr == "" {
			return errRedisAddrRequired
		}
	case SinkStdout:
	default:
		return fmt.Errorf("%w: %q", errUnknownSink, settings.Sink)
	}

	return nil
}

// applyDefaults sets every empty optional field to its default.
func applyDefaults(settings *Config) {
	settings.Sink = strings.ToLower(strings.TrimSpace(settings.Sink))
	if settings.Sink == "" {
		settings.Sink = SinkGRPC
	}

	settings.Encoding = strings.ToLower(strings.TrimSpace(settings.Encoding))
	if settings.Encoding == "" {
		settings.Encoding = DefaultEncoding
	}

	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	if settings.Attempts <= 0 {
		settings.Attempts = DefaultAttempts
	}

	if settings.LogLevel == "" {
		settings.LogLevel = DefaultLogLevel
	}

	if settings.MQTT.TopicPrefix == "" {
		settings.MQTT.TopicPrefix = DefaultTopicPrefix
	}

	if settings.Redis.Stream == "" {
		settings.Redis.Stream = DefaultStream
	}
}

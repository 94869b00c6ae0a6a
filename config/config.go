package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/avelines/newspulse/internal/feeds"
)

// Config collects every runtime knob. All values come from the
// environment with documented defaults; there is no dynamic
// reconfiguration beyond process restart.
type Config struct {
	Port int

	// Escalation knobs
	MaxExternalCalls    int           // external scorer calls per window
	ExternalCallWindow  time.Duration // budget reset interval
	MinEscalationLength int           // shortest text worth an external call
	OpenAIAPIKey        string
	OpenAIModel         string

	// Pipeline knobs
	ChunkSize     int
	ItemLimit     int
	RecencyWindow time.Duration
	PerFeedLimit  int
	SourcesFile   string

	// Cache knobs
	CacheTTL       time.Duration
	ValkeyAddr     string
	ValkeyPassword string
	ValkeyTLS      bool

	// Collaborator knobs; empty values disable the collaborator
	AWSRegion      string
	AWSEndpoint    string
	DynamoTable    string
	KafkaBroker    string
	KafkaTopic     string
}

func FromEnv() Config {
	return Config{
		Port: envInt("PORT", 3001),

		MaxExternalCalls:    envInt("MAX_EXTERNAL_CALLS", 25),
		ExternalCallWindow:  envDuration("EXTERNAL_CALL_WINDOW", time.Hour),
		MinEscalationLength: envInt("MIN_ESCALATION_LENGTH", 20),
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:         envString("OPENAI_MODEL", "gpt-4o-mini"),

		ChunkSize:     envInt("SCORING_CHUNK_SIZE", 8),
		ItemLimit:     envInt("ITEM_LIMIT", 20),
		RecencyWindow: envDuration("RECENCY_WINDOW", 7*24*time.Hour),
		PerFeedLimit:  envInt("PER_FEED_LIMIT", 25),
		SourcesFile:   envString("SOURCES_FILE", "config/sources.yaml"),

		CacheTTL:       envDuration("CACHE_TTL", 10*time.Minute),
		ValkeyAddr:     os.Getenv("VALKEY_INIT_ADDRESS"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
		ValkeyTLS:      os.Getenv("VALKEY_TLS") == "true",

		AWSRegion:   envString("AWS_REGION", "us-west-2"),
		AWSEndpoint: os.Getenv("AWS_ENDPOINT"),
		DynamoTable: os.Getenv("DYNAMO_TABLE"),
		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		KafkaTopic:  envString("KAFKA_TOPIC", "newspulse.scored_batches"),
	}
}

// LoadSources reads the YAML feed-source list.
func LoadSources(path string) ([]feeds.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file %s: %w", path, err)
	}

	var parsed struct {
		Sources []feeds.Source `yaml:"sources"`
	}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse sources file %s: %w", path, err)
	}
	return parsed.Sources, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the indexer configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Logging    LoggingConfig    `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Chain      ChainConfig      `yaml:"chain"`
	Ingestion  IngestionConfig  `yaml:"ingestion"`
	Submission SubmissionConfig `yaml:"submission"`
	Auth       AuthConfig       `yaml:"auth"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `yaml:"host" default:"0.0.0.0"`
	Port            int           `yaml:"port" default:"3001" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"30s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" default:"60s"`
	// CORSAllowedOrigins lists the browser origins allowed to call the API.
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" default:"[\"*\"]"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host" default:"localhost" validate:"required"`
	Port     int    `yaml:"port" default:"5432" validate:"min=1,max=65535"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Database string `yaml:"database" default:"dao_indexer" validate:"required"`
	SSLMode  string `yaml:"ssl_mode" default:"disable" validate:"oneof=disable require verify-ca verify-full"`

	MaxOpenConns    int           `yaml:"max_open_conns" default:"10" validate:"min=1"`
	MaxIdleConns    int           `yaml:"max_idle_conns" default:"5" validate:"min=0"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" default:"30m"`
	DialTimeout     time.Duration `yaml:"dial_timeout" default:"5s"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `yaml:"level" default:"info"`
	Format     string `yaml:"format" default:"json" validate:"oneof=json console"`
	OutputPath string `yaml:"output_path" default:"stdout"`
}

// MonitoringConfig contains monitoring and metrics settings
type MonitoringConfig struct {
	Enabled bool `yaml:"enabled" default:"true"`
}

// ChainConfig describes how to reach the chain nodes and which contracts to watch.
type ChainConfig struct {
	// ChainName is the network identifier embedded in every deploy header.
	ChainName string `yaml:"chain_name" default:"casper-test" validate:"required"`
	// RPCEndpoints is tried in order; the first healthy node wins.
	RPCEndpoints   []string      `yaml:"rpc_endpoints" validate:"required,min=1,dive,url"`
	EventStreamURL string        `yaml:"event_stream_url" validate:"omitempty,url"`
	RequestTimeout time.Duration `yaml:"request_timeout" default:"15s"`

	DAOContractHash   string `yaml:"dao_contract_hash" validate:"required,startswith=hash-,len=69"`
	TokenContractHash string `yaml:"token_contract_hash" validate:"omitempty,startswith=hash-,len=69"`
	TokenType         string `yaml:"token_type" default:"key"`
}

// IngestionConfig controls the push (event stream) and pull (deploy polling) paths.
type IngestionConfig struct {
	StreamEnabled         bool          `yaml:"stream_enabled" default:"true"`
	StreamWorkers         int           `yaml:"stream_workers" default:"4" validate:"min=1,max=64"`
	ReconnectInitialDelay time.Duration `yaml:"reconnect_initial_delay" default:"1s" validate:"gt=0"`
	ReconnectMaxDelay     time.Duration `yaml:"reconnect_max_delay" default:"60s"`

	PollInterval    time.Duration `yaml:"poll_interval" default:"4s" validate:"gt=0"`
	MaxPollAttempts int           `yaml:"max_poll_attempts" default:"45" validate:"min=1"`
	JobRetention    time.Duration `yaml:"job_retention" default:"1h" validate:"gt=0"`

	// ProposalMode is "legacy" (single proposal per DAO, proposal_id defaults to 1)
	// or "multi" (proposal_id must always be explicit).
	ProposalMode          string        `yaml:"proposal_mode" default:"legacy" validate:"oneof=legacy multi"`
	DefaultVotingDuration time.Duration `yaml:"default_voting_duration" default:"24h"`

	ReconcileInterval time.Duration `yaml:"reconcile_interval" default:"5m"`
	ReconcileTimeout  time.Duration `yaml:"reconcile_timeout" default:"2m"`
}

// SubmissionConfig contains settings for the backend-signed and user-signed deploy flows.
type SubmissionConfig struct {
	// SigningKeyPath points to a PEM secret key. Empty disables backend-signed submission.
	SigningKeyPath string `yaml:"signing_key_path"`
	KeyAlgorithm   string `yaml:"key_algorithm" default:"ed25519" validate:"oneof=ed25519 secp256k1"`
	// SigningKeyMasterKey is a base64 AES-256 key. When set, the key file holds
	// an encrypted raw private key instead of PEM.
	SigningKeyMasterKey string `yaml:"signing_key_master_key"`

	Cooldown  time.Duration `yaml:"cooldown" default:"10s"`
	DeployTTL time.Duration `yaml:"deploy_ttl" default:"30m"`
	GasPrice  uint64        `yaml:"gas_price" default:"1" validate:"min=1"`

	CreateDAOPayment      string `yaml:"create_dao_payment" default:"300000000000" validate:"numeric"`
	CreateProposalPayment string `yaml:"create_proposal_payment" default:"300000000000" validate:"numeric"`
	VotePayment           string `yaml:"vote_payment" default:"150000000000" validate:"numeric"`
}

// AuthConfig holds the optional admin token settings guarding backend-signed routes.
type AuthConfig struct {
	AdminJWTSecret string `yaml:"admin_jwt_secret"`
	AdminJWTIssuer string `yaml:"admin_jwt_issuer"`
}

// Load reads the YAML file at configPath, expands ${VAR} references from the
// environment, applies defaults and validates the result.
func Load(configPath string) (*Config, error) {
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(raw)
}

// Parse builds a Config from YAML bytes.
func Parse(raw []byte) (*Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply config defaults: %w", err)
	}

	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(raw))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return err
	}
	if cfg.Ingestion.StreamEnabled && cfg.Chain.EventStreamURL == "" {
		return fmt.Errorf("chain.event_stream_url is required when ingestion.stream_enabled is true")
	}
	if cfg.Ingestion.ReconnectMaxDelay < cfg.Ingestion.ReconnectInitialDelay {
		return fmt.Errorf("ingestion.reconnect_max_delay must not be lower than reconnect_initial_delay")
	}
	return nil
}

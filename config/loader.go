package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"home-route-agent/domain"
)

const (
	minArchetypes = 3
	maxArchetypes = 5
)

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml and
// applies environment overrides.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	v.SetConfigName("config." + env)
	_ = v.MergeInConfig() // optional

	return build(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return build(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for _, key := range []string{
		"llm.provider", "llm.model", "llm.api_key", "llm.base_url",
		"redis.address", "redis.password", "redis.enabled",
		"server.port", "logging.level", "logging.format",
	} {
		_ = v.BindEnv(key)
	}
	return v
}

func build(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() {
	paths := []string{".env", "../.env"}
	if root := findProjectRoot(); root != "" {
		paths = append(paths, filepath.Join(root, ".env"))
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// expandEnvVars resolves ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok || !strings.Contains(strVal, "$") {
			continue
		}
		if expanded := os.ExpandEnv(strVal); expanded != strVal {
			v.Set(key, expanded)
		}
	}
}

// overrideEmptyConfig falls back to provider-specific key variables.
func overrideEmptyConfig(cfg *Config) {
	if cfg.LLM.APIKey != "" {
		return
	}
	var envKey string
	switch strings.ToLower(cfg.LLM.Provider) {
	case "openai":
		envKey = "OPENAI_API_KEY"
	case "claude":
		envKey = "ANTHROPIC_API_KEY"
	case "gemini":
		envKey = "GEMINI_API_KEY"
	}
	if envKey != "" {
		cfg.LLM.APIKey = os.Getenv(envKey)
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "home-route-agent"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30000
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60000
	}
	if cfg.Server.RateLimit == 0 {
		cfg.Server.RateLimit = 5
	}
	if cfg.Server.RateLimitWindow == 0 {
		cfg.Server.RateLimitWindow = 60000
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "none"
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 5000
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 400
	}

	if cfg.Redis.TTL == 0 {
		cfg.Redis.TTL = 3600
	}

	if len(cfg.Routes.Archetypes) == 0 {
		cfg.Routes.Archetypes = DefaultArchetypes()
	}
	if cfg.Routes.Growth.Model == "" {
		cfg.Routes.Growth.Model = "random"
	}
	if cfg.Routes.Growth.MinIncomeGrowth == 0 {
		cfg.Routes.Growth.MinIncomeGrowth = 0.025
	}
	if cfg.Routes.Growth.MaxIncomeGrowth == 0 {
		cfg.Routes.Growth.MaxIncomeGrowth = 0.035
	}
	if cfg.Routes.Growth.SavingsEscalation == 0 {
		cfg.Routes.Growth.SavingsEscalation = 0.02
	}

	if cfg.Affordability.InterestRate == 0 {
		cfg.Affordability.InterestRate = 3.8
	}
	if cfg.Affordability.TermYears == 0 {
		cfg.Affordability.TermYears = 30
	}
}

func validateConfig(cfg *Config) error {
	switch strings.ToLower(cfg.LLM.Provider) {
	case "none", "openai", "claude", "gemini", "ollama":
	default:
		return fmt.Errorf("llm.provider %q is not supported", cfg.LLM.Provider)
	}

	if cfg.Redis.Enabled && cfg.Redis.Address == "" {
		return fmt.Errorf("redis.address is required when redis is enabled")
	}

	n := len(cfg.Routes.Archetypes)
	if n < minArchetypes || n > maxArchetypes {
		return fmt.Errorf("routes.archetypes must define %d to %d archetypes, got %d", minArchetypes, maxArchetypes, n)
	}
	seen := make(map[string]bool, n)
	for i := range cfg.Routes.Archetypes {
		a := &cfg.Routes.Archetypes[i]
		if a.Kind == "" {
			return fmt.Errorf("routes.archetypes: kind is required")
		}
		if !domain.ArchetypeKind(a.Kind).Valid() {
			return fmt.Errorf("routes.archetypes: unknown kind %q, expected one of %v", a.Kind, domain.ArchetypeKinds())
		}
		if seen[a.Kind] {
			return fmt.Errorf("routes.archetypes: duplicate kind %q", a.Kind)
		}
		seen[a.Kind] = true
		tier, ok := domain.ParseRiskLevel(a.RiskTier)
		if !ok {
			return fmt.Errorf("archetype %s: risk_tier %q must be Low, Moderate or High", a.Kind, a.RiskTier)
		}
		a.RiskTier = string(tier)
		if a.HorizonYears < 1 {
			return fmt.Errorf("archetype %s: horizon_years must be at least 1", a.Kind)
		}
		if a.DownPaymentFraction <= 0 || a.DownPaymentFraction > 1 {
			return fmt.Errorf("archetype %s: down_payment_fraction must be in (0, 1]", a.Kind)
		}
		if a.InterestRate < 0 {
			return fmt.Errorf("archetype %s: interest_rate must not be negative", a.Kind)
		}
		if a.LoanTermYears < 1 {
			return fmt.Errorf("archetype %s: loan_term_years must be at least 1", a.Kind)
		}
	}

	g := cfg.Routes.Growth
	if g.Model != "fixed" && g.Model != "random" {
		return fmt.Errorf("routes.growth.model must be fixed or random")
	}
	if g.MinIncomeGrowth > g.MaxIncomeGrowth {
		return fmt.Errorf("routes.growth.min_income_growth exceeds max_income_growth")
	}
	return nil
}

package config

import (
	"fmt"
	"time"

	"home-route-agent/domain"
)

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Server        ServerConfig        `mapstructure:"server"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	LLM           LLMConfig           `mapstructure:"llm"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Routes        RoutesConfig        `mapstructure:"routes"`
	Affordability AffordabilityConfig `mapstructure:"affordability"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"read_timeout"`  // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"` // milliseconds
	IdleTimeout     int    `mapstructure:"idle_timeout"`  // milliseconds
	RateLimit       int    `mapstructure:"rate_limit"`
	RateLimitWindow int    `mapstructure:"rate_limit_window"` // milliseconds
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type LLMConfig struct {
	Provider  string `mapstructure:"provider"`
	Model     string `mapstructure:"model"`
	APIKey    string `mapstructure:"api_key"`
	BaseURL   string `mapstructure:"base_url"`
	Timeout   int    `mapstructure:"timeout"` // milliseconds, per call
	MaxTokens int    `mapstructure:"max_tokens"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      int    `mapstructure:"ttl"` // seconds
}

type ArchetypeConfig struct {
	Kind                string  `mapstructure:"kind"`
	Name                string  `mapstructure:"name"`
	Tagline             string  `mapstructure:"tagline"`
	HorizonYears        int     `mapstructure:"horizon_years"`
	DownPaymentFraction float64 `mapstructure:"down_payment_fraction"`
	InterestRate        float64 `mapstructure:"interest_rate"`
	LoanTermYears       int     `mapstructure:"loan_term_years"`
	RiskTier            string  `mapstructure:"risk_tier"`
}

type GrowthConfig struct {
	Model             string  `mapstructure:"model"` // fixed | random
	Seed              int64   `mapstructure:"seed"`
	MinIncomeGrowth   float64 `mapstructure:"min_income_growth"`
	MaxIncomeGrowth   float64 `mapstructure:"max_income_growth"`
	SavingsEscalation float64 `mapstructure:"savings_escalation"`
}

type RoutesConfig struct {
	Archetypes []ArchetypeConfig `mapstructure:"archetypes"`
	Growth     GrowthConfig      `mapstructure:"growth"`
}

type AffordabilityConfig struct {
	InterestRate float64 `mapstructure:"interest_rate"`
	TermYears    int     `mapstructure:"term_years"`
}

// DomainArchetypes converts the configured catalogue into domain archetypes.
func (r RoutesConfig) DomainArchetypes() []domain.Archetype {
	out := make([]domain.Archetype, 0, len(r.Archetypes))
	for _, a := range r.Archetypes {
		out = append(out, domain.Archetype{
			Kind:                domain.ArchetypeKind(a.Kind),
			Name:                a.Name,
			Tagline:             a.Tagline,
			HorizonYears:        a.HorizonYears,
			DownPaymentFraction: a.DownPaymentFraction,
			InterestRate:        a.InterestRate,
			LoanTermYears:       a.LoanTermYears,
			RiskTier:            domain.RiskLevel(a.RiskTier),
		})
	}
	return out
}

// DefaultArchetypes is the built-in catalogue used when none is configured.
func DefaultArchetypes() []ArchetypeConfig {
	return []ArchetypeConfig{
		{
			Kind:                string(domain.ArchetypeFastTrack),
			Name:                "Fast Track",
			Tagline:             "Buy within two years with a lean down payment",
			HorizonYears:        2,
			DownPaymentFraction: 0.15,
			InterestRate:        4.2,
			LoanTermYears:       25,
			RiskTier:            string(domain.RiskHigh),
		},
		{
			Kind:                string(domain.ArchetypeBalanced),
			Name:                "Balanced Path",
			Tagline:             "Three years of steady saving for a solid 20% down payment",
			HorizonYears:        3,
			DownPaymentFraction: 0.20,
			InterestRate:        3.8,
			LoanTermYears:       30,
			RiskTier:            string(domain.RiskModerate),
		},
		{
			Kind:                string(domain.ArchetypeConservative),
			Name:                "Conservative Builder",
			Tagline:             "Five years to a 25% down payment and the lowest rate",
			HorizonYears:        5,
			DownPaymentFraction: 0.25,
			InterestRate:        3.5,
			LoanTermYears:       30,
			RiskTier:            string(domain.RiskLow),
		},
	}
}

// GetDuration converts milliseconds from config to time.Duration.
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

package config

import (
	"log"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`

	// PublicURL is where this service is reachable; FrontendURL hosts the dashboard.
	PublicURL   string `mapstructure:"PUBLIC_URL"`
	FrontendURL string `mapstructure:"FRONTEND_URL"`

	// ServiceHostnames is a comma-separated list of hostnames this deployment
	// answers on. Links targeting any of them are rejected as loop risks.
	ServiceHostnames string `mapstructure:"SERVICE_HOSTNAMES"`

	// OAuth identity provider
	OAuthClientID     string `mapstructure:"OAUTH_CLIENT_ID"`
	OAuthClientSecret string `mapstructure:"OAUTH_CLIENT_SECRET"`
	OAuthAuthURL      string `mapstructure:"OAUTH_AUTH_URL"`
	OAuthTokenURL     string `mapstructure:"OAUTH_TOKEN_URL"`
	OAuthUserInfoURL  string `mapstructure:"OAUTH_USERINFO_URL"`
	OAuthCallbackURL  string `mapstructure:"OAUTH_CALLBACK_URL"`

	// Redis (optional hot cache for the redirect path)
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	// Outbound collaborators
	SlackWebhookURL string `mapstructure:"SLACK_WEBHOOK_URL"`
	GeoIPBaseURL    string `mapstructure:"GEOIP_BASE_URL"`
}

var AppConfig *Config

func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}

	if AppConfig.GeoIPBaseURL == "" {
		AppConfig.GeoIPBaseURL = "https://ipapi.co"
	}
}

// Hostnames returns every hostname this deployment answers on, lowercased
// and deduplicated: the PublicURL host plus the SERVICE_HOSTNAMES list.
func (c *Config) Hostnames() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(h string) {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" && !seen[h] {
			seen[h] = true
			out = append(out, h)
		}
	}

	if c.PublicURL != "" {
		if u, err := url.Parse(c.PublicURL); err == nil {
			add(u.Hostname())
		}
	}
	for _, h := range strings.Split(c.ServiceHostnames, ",") {
		add(h)
	}
	return out
}

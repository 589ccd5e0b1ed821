package smtp

import "time"

// Config holds SMTP relay configuration.
type Config struct {
	Host        string        `yaml:"host" env:"SMTP_HOST"`
	Username    string        `yaml:"user" env:"SMTP_USER"`
	Password    string        `yaml:"pass" env:"SMTP_PASS"`
	SenderEmail string        `yaml:"from_email" env:"SMTP_FROM_EMAIL"` // Default: Username
	SenderName  string        `yaml:"from_name" env:"SMTP_FROM_NAME"`
	Port        int           `yaml:"port" env:"SMTP_PORT"`       // Default: 465 when Secure, otherwise 587
	Timeout     time.Duration `yaml:"timeout" env:"SMTP_TIMEOUT"` // Per-step connection timeout; Default: 30s
	Secure      bool          `yaml:"secure" env:"SMTP_SECURE"`   // Implicit TLS instead of STARTTLS
}

const (
	defaultPort       = 587
	defaultSecurePort = 465
	defaultTimeout    = 30 * time.Second
)

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = defaultPort
		if c.Secure {
			c.Port = defaultSecurePort
		}
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	if c.SenderEmail == "" {
		c.SenderEmail = c.Username
	}
}

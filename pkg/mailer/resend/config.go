package resend

// Config holds Resend email provider configuration.
type Config struct {
	APIKey      string `yaml:"api_key" env:"RESEND_API_KEY"`
	SenderEmail string `yaml:"from_email" env:"RESEND_FROM_EMAIL"`
	SenderName  string `yaml:"from_name" env:"RESEND_FROM_NAME"`
}

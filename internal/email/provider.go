package email

// Provider sends transactional mail. The SMTP implementation is used in
// deployment; tests and local development use the mock.
type Provider interface {
	SendOTP(to, name, code string) error
}

// Config holds SMTP connection settings.
type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

package email

import "kamau_backend/internal/logger"

// MockProvider logs instead of sending. Used in tests and when SMTP is
// not configured.
type MockProvider struct {
	// Sent records every call for assertions.
	Sent []MockMessage
}

type MockMessage struct {
	To   string
	Name string
	Code string
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) SendOTP(to, name, code string) error {
	p.Sent = append(p.Sent, MockMessage{To: to, Name: name, Code: code})
	logger.Info("mock email: otp sent", "to", to, "code", code)
	return nil
}

package email

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/estatery/estatery/internal/shared/config"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	// FrontendURL prefixes the links placed in emails.
	FrontendURL string
}

func SMTPConfigFrom(cfg config.EmailConfig, frontendURL string) SMTPConfig {
	return SMTPConfig{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		Username:    cfg.SMTPUser,
		Password:    cfg.SMTPPassword,
		FromAddress: cfg.FromAddress,
		FromName:    cfg.FromName,
		FrontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

// sender is the part of gomail.Dialer the service needs.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPEmailService struct {
	config SMTPConfig
	dialer sender
}

func NewSMTPEmailService(cfg SMTPConfig) *SMTPEmailService {
	return &SMTPEmailService{
		config: cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *SMTPEmailService) send(msg *Message) error {
	m := gomail.NewMessage()
	if s.config.FromName != "" {
		m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	} else {
		m.SetHeader("From", s.config.FromAddress)
	}
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Plain)
	m.AddAlternative("text/html", msg.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *SMTPEmailService) SendPasswordResetEmail(to, name, token string) error {
	return s.send(passwordResetMessage(to, name, s.config.FrontendURL+"/reset-password/"+token))
}

func (s *SMTPEmailService) SendReviewOutcomeEmail(to, name string, n ReviewNotice) error {
	return s.send(reviewOutcomeMessage(to, name, n))
}

func (s *SMTPEmailService) SendNewLeadEmail(to, name string, n LeadNotice) error {
	return s.send(newLeadMessage(to, name, n))
}

func (s *SMTPEmailService) SendPurchaseEmail(to, name string, n PurchaseNotice) error {
	return s.send(purchaseMessage(to, name, n))
}

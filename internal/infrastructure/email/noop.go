package email

import "github.com/estatery/estatery/internal/shared/logger"

// NoopEmailService logs instead of sending. It is used when SMTP is not configured.
type NoopEmailService struct {
	logger logger.Interface
}

func NewNoopEmailService(log logger.Interface) *NoopEmailService {
	return &NoopEmailService{logger: log}
}

func (s *NoopEmailService) SendPasswordResetEmail(to, _, _ string) error {
	s.logger.Infow("email disabled, password reset email skipped", "to", to)
	return nil
}

func (s *NoopEmailService) SendReviewOutcomeEmail(to, _ string, n ReviewNotice) error {
	s.logger.Infow("email disabled, review email skipped", "to", to, "property", n.PropertyTitle)
	return nil
}

func (s *NoopEmailService) SendNewLeadEmail(to, _ string, n LeadNotice) error {
	s.logger.Infow("email disabled, lead email skipped", "to", to, "property", n.PropertyTitle)
	return nil
}

func (s *NoopEmailService) SendPurchaseEmail(to, _ string, n PurchaseNotice) error {
	s.logger.Infow("email disabled, purchase email skipped", "to", to, "property", n.PropertyTitle)
	return nil
}

package http

import (
	"fmt"

	"github.com/estatery/estatery/internal/infrastructure/auth"
	"github.com/estatery/estatery/internal/infrastructure/email"
	"github.com/estatery/estatery/internal/infrastructure/payment"
	"github.com/estatery/estatery/internal/infrastructure/permission"
	"github.com/estatery/estatery/internal/infrastructure/ratelimit"
	"github.com/estatery/estatery/internal/infrastructure/storage"
	"github.com/estatery/estatery/internal/shared/services/markdown"
)

// mailer is every notification the use cases send. SMTP and the no-op
// service both satisfy it.
type mailer interface {
	SendPasswordResetEmail(to, name, token string) error
	SendReviewOutcomeEmail(to, name string, n email.ReviewNotice) error
	SendNewLeadEmail(to, name string, n email.LeadNotice) error
	SendPurchaseEmail(to, name string, n email.PurchaseNotice) error
}

// services holds the outbound adapters shared by several use cases.
type services struct {
	jwt      *auth.JWTService
	hasher   *auth.BcryptPasswordHasher
	google   *auth.GoogleOAuthClient
	mailer   mailer
	storage  *storage.LocalStorage
	markdown markdown.Renderer
	paystack *payment.PaystackClient
	enforcer *permission.Enforcer
	limiter  ratelimit.RateLimiter
}

// ============================================================
// Section 1: Infrastructure
// ============================================================

func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	c.sqlDB = sqlDB

	c.repos = newRepositories(c.db, log)

	enforcer, err := permission.NewEnforcer(c.db, log)
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := permission.SeedDefaultPolicies(enforcer, log); err != nil {
		return err
	}

	c.svcs = &services{
		jwt:      auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes),
		hasher:   auth.NewBcryptPasswordHasher(cfg.Auth.BcryptCost),
		google:   auth.NewGoogleOAuthClient(cfg.OAuth.Google),
		mailer:   newMailer(c),
		storage:  storage.NewLocalStorage(cfg.Upload, log),
		markdown: markdown.NewRenderer(),
		paystack: payment.NewPaystackClient(cfg.Paystack, log),
		enforcer: enforcer,
		limiter:  ratelimit.NewRedisRateLimiter(c.redis),
	}

	if !c.svcs.google.Configured() {
		log.Infow("google sign-in disabled, oauth.google.client_id is empty")
	}
	if !c.svcs.paystack.Configured() {
		log.Warnw("paystack secret key is not set, payment initialization will fail")
	}
	return nil
}

func newMailer(c *Container) mailer {
	if !c.cfg.Email.Enabled() {
		c.log.Infow("smtp not configured, emails are logged only")
		return email.NewNoopEmailService(c.log)
	}
	return email.NewSMTPEmailService(email.SMTPConfigFrom(c.cfg.Email, c.cfg.Server.FrontendURL))
}

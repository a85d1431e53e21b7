// Package testutil wires use cases to real repositories over in-memory SQLite
// and provides fakes for the outbound services.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/estatery/estatery/internal/domain/agent"
	"github.com/estatery/estatery/internal/domain/buyer"
	"github.com/estatery/estatery/internal/domain/property"
	vo "github.com/estatery/estatery/internal/domain/property/valueobjects"
	"github.com/estatery/estatery/internal/domain/subscription"
	"github.com/estatery/estatery/internal/domain/user"
	uservo "github.com/estatery/estatery/internal/domain/user/valueobjects"
	"github.com/estatery/estatery/internal/infrastructure/email"
	"github.com/estatery/estatery/internal/infrastructure/persistence/models"
	"github.com/estatery/estatery/internal/infrastructure/repository"
	"github.com/estatery/estatery/internal/infrastructure/storage"
	"github.com/estatery/estatery/internal/shared/authorization"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/db"
	"github.com/estatery/estatery/internal/shared/logger"
)

// AgentTrial is the trial length given to fixture agents.
const AgentTrial = 14 * 24 * time.Hour

// NewDB opens a migrated in-memory database on a single connection, which
// also serialises concurrent transactions.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  gormlogger.Discard,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(models.All()...))
	return gdb
}

// Repos bundles every repository over one database.
type Repos struct {
	DB            *gorm.DB
	Tx            *db.TransactionManager
	Users         *repository.UserRepository
	Agents        *repository.AgentProfileRepository
	Buyers        *repository.BuyerProfileRepository
	Saved         *repository.SavedPropertyRepository
	Purchases     *repository.PurchaseRepository
	Leads         *repository.LeadRepository
	Properties    *repository.PropertyRepository
	Subscriptions *repository.SubscriptionRepository
	Payments      *repository.PaymentRepository
}

func NewRepos(t testing.TB) *Repos {
	gdb := NewDB(t)
	log := logger.NewNop()
	return &Repos{
		DB:            gdb,
		Tx:            db.NewTransactionManager(gdb),
		Users:         repository.NewUserRepository(gdb),
		Agents:        repository.NewAgentProfileRepository(gdb),
		Buyers:        repository.NewBuyerProfileRepository(gdb),
		Saved:         repository.NewSavedPropertyRepository(gdb),
		Purchases:     repository.NewPurchaseRepository(gdb),
		Leads:         repository.NewLeadRepository(gdb),
		Properties:    repository.NewPropertyRepository(gdb, log),
		Subscriptions: repository.NewSubscriptionRepository(gdb, log),
		Payments:      repository.NewPaymentRepository(gdb, log),
	}
}

// CreateUser stores a user holding roles.
func (r *Repos) CreateUser(t testing.TB, address, name string, roles ...authorization.Role) *user.User {
	t.Helper()
	e, err := uservo.NewEmail(address)
	require.NoError(t, err)
	u, err := user.NewUser(e, name, biztime.NowUTC())
	require.NoError(t, err)
	for _, role := range roles {
		u.AttachRole(role, biztime.NowUTC())
	}
	require.NoError(t, r.Users.Create(context.Background(), u))
	return u
}

// CreateAgent stores an AGENT user with a profile whose trial ends at trialEndsAt.
func (r *Repos) CreateAgent(t testing.TB, address string, trialEndsAt time.Time) (*user.User, *agent.Profile) {
	t.Helper()
	u := r.CreateUser(t, address, "Agent "+address, authorization.RoleAgent)
	started := trialEndsAt.Add(-AgentTrial)
	p, err := agent.NewProfile(u.ID(), AgentTrial, started)
	require.NoError(t, err)
	p.Apply(agent.Patch{Whatsapp: ptr("+234 801 234 5678")}, started)
	stored, err := r.Agents.Provision(context.Background(), p)
	require.NoError(t, err)
	return u, stored
}

func (r *Repos) CreateBuyer(t testing.TB, address string) (*user.User, *buyer.Profile) {
	t.Helper()
	u := r.CreateUser(t, address, "Buyer "+address, authorization.RoleBuyer)
	p, err := buyer.NewProfile(u.ID(), biztime.NowUTC())
	require.NoError(t, err)
	stored, err := r.Buyers.Provision(context.Background(), p)
	require.NoError(t, err)
	return u, stored
}

// Subscribe gives the agent a plan expiring at expiresAt.
func (r *Repos) Subscribe(t testing.TB, agentID uint, plan subscription.Plan, expiresAt time.Time) {
	t.Helper()
	s, err := subscription.NewSubscription(agentID, plan, &expiresAt, biztime.NowUTC())
	require.NoError(t, err)
	require.NoError(t, r.Subscriptions.Save(context.Background(), s))
}

// CreateListing stores an agent listing set to status through the admin path.
func (r *Repos) CreateListing(t testing.TB, agentID uint, title string, status vo.Status, createdAt time.Time) *property.Property {
	t.Helper()
	p, err := property.NewAgentListing(agentID, Details(title), false, createdAt)
	require.NoError(t, err)
	if status != vo.StatusPending {
		var reason *string
		if status == vo.StatusRejected {
			reason = ptr("photos are blurry")
		}
		require.NoError(t, p.AssignStatus(status, reason, createdAt))
	}
	require.NoError(t, r.Properties.Create(context.Background(), p))
	return p
}

// Details returns valid listing content titled title.
func Details(title string) property.Details {
	return property.Details{
		Title:       title,
		Location:    "Lekki, Lagos",
		Description: "Spacious **three** bedroom flat",
		Price:       45_000_000_00,
		Category:    "APARTMENT",
		Bedrooms:    3,
		Bathrooms:   2,
	}
}

func ptr[T any](v T) *T { return &v }

// FakeImageStore keeps uploads in memory.
type FakeImageStore struct {
	mu      sync.Mutex
	next    int
	Saved   []string
	Removed []string
	Err     error
}

func (s *FakeImageStore) SaveImages(uploads []storage.Upload) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	urls := make([]string, 0, len(uploads))
	for range uploads {
		s.next++
		urls = append(urls, fmt.Sprintf("/uploads/img-%d.png", s.next))
	}
	s.Saved = append(s.Saved, urls...)
	return urls, nil
}

func (s *FakeImageStore) Remove(urls []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Removed = append(s.Removed, urls...)
}

// Mailer records sends on a channel so tests can wait for async notifications.
type Mailer struct {
	Sent chan SentMail
}

type SentMail struct {
	Kind string
	To   string
	Body any
}

func NewMailer() *Mailer {
	return &Mailer{Sent: make(chan SentMail, 16)}
}

func (m *Mailer) SendPasswordResetEmail(to, _, token string) error {
	m.Sent <- SentMail{Kind: "reset", To: to, Body: token}
	return nil
}

func (m *Mailer) SendReviewOutcomeEmail(to, _ string, n email.ReviewNotice) error {
	m.Sent <- SentMail{Kind: "review", To: to, Body: n}
	return nil
}

func (m *Mailer) SendNewLeadEmail(to, _ string, n email.LeadNotice) error {
	m.Sent <- SentMail{Kind: "lead", To: to, Body: n}
	return nil
}

func (m *Mailer) SendPurchaseEmail(to, _ string, n email.PurchaseNotice) error {
	m.Sent <- SentMail{Kind: "purchase", To: to, Body: n}
	return nil
}

// Wait returns the next mail or fails after a second.
func (m *Mailer) Wait(t testing.TB) SentMail {
	t.Helper()
	select {
	case mail := <-m.Sent:
		return mail
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for email")
	}
	return SentMail{}
}

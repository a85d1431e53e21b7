package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/estatery/estatery/internal/domain/agent"
	"github.com/estatery/estatery/internal/domain/buyer"
	"github.com/estatery/estatery/internal/domain/payment"
	"github.com/estatery/estatery/internal/domain/property"
	vo "github.com/estatery/estatery/internal/domain/property/valueobjects"
	"github.com/estatery/estatery/internal/domain/subscription"
	"github.com/estatery/estatery/internal/domain/user"
	uservo "github.com/estatery/estatery/internal/domain/user/valueobjects"
	"github.com/estatery/estatery/internal/infrastructure/persistence/models"
	"github.com/estatery/estatery/internal/shared/authorization"
	"github.com/estatery/estatery/internal/shared/logger"
)

var now = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(models.All()...))
	return gdb
}

func createAgent(t *testing.T, gdb *gorm.DB, userID uint, suspended bool) *agent.Profile {
	t.Helper()
	repo := NewAgentProfileRepository(gdb)

	p, err := agent.NewProfile(userID, 14*24*time.Hour, now)
	require.NoError(t, err)
	stored, err := repo.Provision(context.Background(), p)
	require.NoError(t, err)

	if suspended {
		stored.SetSuspended(true, now)
		require.NoError(t, repo.Update(context.Background(), stored))
	}
	return stored
}

func createListing(t *testing.T, repo *PropertyRepository, agentID uint, title string, price int64, createdAt time.Time) *property.Property {
	t.Helper()
	p, err := property.NewAgentListing(agentID, property.Details{
		Title:    title,
		Location: "Lekki, Lagos",
		Price:    price,
		Category: "apartment",
		Bedrooms: 3,
	}, false, createdAt)
	require.NoError(t, err)
	require.NoError(t, p.Approve(createdAt))
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestUserRepository(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewUserRepository(gdb)
	ctx := context.Background()

	email, err := uservo.NewEmail("Ada@Example.com")
	require.NoError(t, err)
	u, err := user.NewUser(email, "Ada", now)
	require.NoError(t, err)
	u.AttachRole(authorization.RoleBuyer, now)
	u.SetPasswordHash("hash", now)

	t.Run("create and load with roles", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, u))
		assert.NotZero(t, u.ID())

		found, err := repo.GetByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.True(t, found.HasRole(authorization.RoleBuyer))
		assert.True(t, found.HasPassword())
	})

	t.Run("duplicate email", func(t *testing.T) {
		dup, err := user.NewUser(email, "Other", now)
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Create(ctx, dup), user.ErrEmailTaken)
	})

	t.Run("update adds roles", func(t *testing.T) {
		u.AttachRole(authorization.RoleAgent, now)
		require.NoError(t, repo.Update(ctx, u))
		// Saving twice must not duplicate role rows.
		require.NoError(t, repo.Update(ctx, u))

		found, err := repo.GetByID(ctx, u.ID())
		require.NoError(t, err)
		assert.Equal(t, []authorization.Role{authorization.RoleAgent, authorization.RoleBuyer}, found.Roles().Slice())

		count, err := repo.CountByRole(ctx, authorization.RoleAgent)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("list by role", func(t *testing.T) {
		users, total, err := repo.List(ctx, user.ListFilter{Role: authorization.RoleAgent, Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, users, 1)

		_, total, err = repo.List(ctx, user.ListFilter{Role: authorization.RoleAdmin})
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 999)
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

func TestAgentProfileRepository_ProvisionIsIdempotent(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewAgentProfileRepository(gdb)
	ctx := context.Background()

	first := createAgent(t, gdb, 7, false)
	again, err := agent.NewProfile(7, time.Hour, now.Add(time.Hour))
	require.NoError(t, err)

	stored, err := repo.Provision(ctx, again)
	require.NoError(t, err)
	assert.Equal(t, first.ID(), stored.ID())
	assert.True(t, first.TrialEndsAt().Equal(*stored.TrialEndsAt()))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPropertyRepository_ListFilters(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewPropertyRepository(gdb, logger.NewNop())
	ctx := context.Background()

	active := createAgent(t, gdb, 1, false)
	suspended := createAgent(t, gdb, 2, true)

	cheap := createListing(t, repo, active.ID(), "Cheap flat", 1_000, now)
	createListing(t, repo, active.ID(), "Pricey villa", 9_000, now)
	createListing(t, repo, suspended.ID(), "Hidden", 2_000, now)

	draft, err := property.NewAgentListing(active.ID(), property.Details{
		Title: "Draft", Location: "Ikeja", Price: 5, Category: "land",
	}, true, now)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, draft))

	t.Run("approved only, suspended agents excluded", func(t *testing.T) {
		props, total, err := repo.List(ctx, property.Filter{
			Statuses:               []vo.Status{vo.StatusApproved},
			ExcludeSuspendedAgents: true,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, props, 2)
	})

	t.Run("price range and location", func(t *testing.T) {
		maxPrice := int64(1_500)
		props, _, err := repo.List(ctx, property.Filter{
			Statuses: []vo.Status{vo.StatusApproved},
			Location: "lekki",
			MaxPrice: &maxPrice,
		})
		require.NoError(t, err)
		require.Len(t, props, 1)
		assert.Equal(t, cheap.ID(), props[0].ID())
	})

	t.Run("count by status", func(t *testing.T) {
		id := active.ID()
		counts, err := repo.CountByStatus(ctx, &id)
		require.NoError(t, err)
		assert.Equal(t, int64(2), counts[vo.StatusApproved])
		assert.Equal(t, int64(1), counts[vo.StatusDraft])
		assert.Zero(t, counts[vo.StatusSold])
	})
}

func TestPropertyRepository_ImagesAndDelete(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewPropertyRepository(gdb, logger.NewNop())
	ctx := context.Background()

	p := createListing(t, repo, 1, "With images", 100, now)
	require.NoError(t, p.ReplaceImages([]string{"/uploads/a.jpg", "/uploads/b.jpg"}, now))
	require.NoError(t, repo.Update(ctx, p, true))

	require.NoError(t, p.ReplaceImages([]string{"/uploads/c.jpg"}, now))
	require.NoError(t, repo.Update(ctx, p, true))

	found, err := repo.GetByID(ctx, p.ID())
	require.NoError(t, err)
	require.Len(t, found.Images(), 1)
	assert.Equal(t, "/uploads/c.jpg", found.Images()[0].URL())

	require.NoError(t, repo.Delete(ctx, p.ID()))
	_, err = repo.GetByID(ctx, p.ID())
	assert.ErrorIs(t, err, property.ErrPropertyNotFound)

	var images int64
	require.NoError(t, gdb.Model(&models.PropertyImageModel{}).Count(&images).Error)
	assert.Zero(t, images)

	assert.ErrorIs(t, repo.Delete(ctx, p.ID()), property.ErrPropertyNotFound)
}

func TestPropertyRepository_MarkSoldIfApproved(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewPropertyRepository(gdb, logger.NewNop())
	ctx := context.Background()

	p := createListing(t, repo, 1, "Sell me", 100, now)

	ok, err := repo.MarkSoldIfApproved(ctx, p.ID())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.MarkSoldIfApproved(ctx, p.ID())
	require.NoError(t, err)
	assert.False(t, ok)

	found, err := repo.GetByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.StatusSold, found.Status())
}

func TestBuyerRepositories(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	props := NewPropertyRepository(gdb, logger.NewNop())
	saved := NewSavedPropertyRepository(gdb)
	purchases := NewPurchaseRepository(gdb)
	leads := NewLeadRepository(gdb)

	p := createListing(t, props, 4, "Flat", 100, now)

	t.Run("save is idempotent", func(t *testing.T) {
		first, err := saved.Save(ctx, &buyer.SavedProperty{BuyerID: 1, PropertyID: p.ID(), CreatedAt: now})
		require.NoError(t, err)
		second, err := saved.Save(ctx, &buyer.SavedProperty{BuyerID: 1, PropertyID: p.ID(), CreatedAt: now.Add(time.Minute)})
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		list, err := saved.ListByBuyer(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, list, 1)

		count, err := saved.CountByAgent(ctx, 4)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		removed, err := saved.Delete(ctx, 1, p.ID())
		require.NoError(t, err)
		assert.True(t, removed)
		removed, err = saved.Delete(ctx, 1, p.ID())
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("property purchased once", func(t *testing.T) {
		require.NoError(t, purchases.Create(ctx, &buyer.Purchase{BuyerID: 1, PropertyID: p.ID(), Price: 100, CreatedAt: now}))
		err := purchases.Create(ctx, &buyer.Purchase{BuyerID: 2, PropertyID: p.ID(), Price: 100, CreatedAt: now})
		assert.ErrorIs(t, err, buyer.ErrAlreadyPurchased)

		list, err := purchases.ListByBuyer(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("recent lead lookup", func(t *testing.T) {
		require.NoError(t, leads.Create(ctx, &buyer.Lead{
			BuyerID: 1, PropertyID: p.ID(), AgentID: 4, Channel: buyer.ChannelWhatsApp, CreatedAt: now,
		}))

		found, err := leads.FindRecent(ctx, 1, p.ID(), now.Add(-time.Hour))
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, buyer.ChannelWhatsApp, found.Channel)

		found, err = leads.FindRecent(ctx, 1, p.ID(), now.Add(time.Second))
		require.NoError(t, err)
		assert.Nil(t, found)

		count, err := leads.CountByAgent(ctx, 4)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestSubscriptionRepository_SaveKeepsOneRowPerAgent(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewSubscriptionRepository(gdb, logger.NewNop())
	ctx := context.Background()

	expires := now.Add(30 * 24 * time.Hour)
	s, err := subscription.NewSubscription(3, subscription.PlanBasic, &expires, now)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, s))

	replacement, err := subscription.NewSubscription(3, subscription.PlanPremium, &expires, now)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, replacement))
	assert.Equal(t, s.ID(), replacement.ID())

	found, err := repo.GetByAgentID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, subscription.PlanPremium, found.Plan())

	_, total, err := repo.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, err = repo.GetByAgentID(ctx, 99)
	assert.ErrorIs(t, err, subscription.ErrSubscriptionNotFound)
}

func TestPaymentRepository(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewPaymentRepository(gdb, logger.NewNop())
	ctx := context.Background()

	p, err := payment.NewPayment("SUB-1", 5, subscription.PlanBasic, 500000, "NGN", now)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, p))

	changed, err := p.MarkAsPaid(500000, "NGN", now, map[string]any{"status": "success"})
	require.NoError(t, err)
	require.True(t, changed)
	require.NoError(t, repo.Update(ctx, p))

	found, err := repo.GetByReferenceForUpdate(ctx, "SUB-1")
	require.NoError(t, err)
	assert.Equal(t, payment.StatusSuccess, found.Status())
	assert.Equal(t, "success", found.GatewayResponse()["status"])

	total, err := repo.SumSuccessful(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(500000), total)

	_, err = repo.GetByReference(ctx, "missing")
	assert.ErrorIs(t, err, payment.ErrPaymentNotFound)
}

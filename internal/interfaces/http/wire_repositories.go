package http

import (
	"gorm.io/gorm"

	"github.com/estatery/estatery/internal/domain/agent"
	"github.com/estatery/estatery/internal/domain/buyer"
	"github.com/estatery/estatery/internal/domain/payment"
	"github.com/estatery/estatery/internal/domain/property"
	"github.com/estatery/estatery/internal/domain/subscription"
	"github.com/estatery/estatery/internal/domain/user"
	"github.com/estatery/estatery/internal/infrastructure/repository"
	"github.com/estatery/estatery/internal/shared/db"
	"github.com/estatery/estatery/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	userRepo         user.Repository
	agentRepo        agent.Repository
	buyerRepo        buyer.ProfileRepository
	savedRepo        buyer.SavedPropertyRepository
	purchaseRepo     buyer.PurchaseRepository
	leadRepo         buyer.LeadRepository
	propertyRepo     property.Repository
	subscriptionRepo subscription.Repository
	paymentRepo      payment.Repository
	txManager        *db.TransactionManager
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(gdb *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		userRepo:         repository.NewUserRepository(gdb),
		agentRepo:        repository.NewAgentProfileRepository(gdb),
		buyerRepo:        repository.NewBuyerProfileRepository(gdb),
		savedRepo:        repository.NewSavedPropertyRepository(gdb),
		purchaseRepo:     repository.NewPurchaseRepository(gdb),
		leadRepo:         repository.NewLeadRepository(gdb),
		propertyRepo:     repository.NewPropertyRepository(gdb, log),
		subscriptionRepo: repository.NewSubscriptionRepository(gdb, log),
		paymentRepo:      repository.NewPaymentRepository(gdb, log),
		txManager:        db.NewTransactionManager(gdb),
	}
}

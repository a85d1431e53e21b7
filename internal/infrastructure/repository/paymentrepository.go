package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/estatery/estatery/internal/domain/payment"
	"github.com/estatery/estatery/internal/infrastructure/persistence/mappers"
	"github.com/estatery/estatery/internal/infrastructure/persistence/models"
	"github.com/estatery/estatery/internal/shared/db"
	"github.com/estatery/estatery/internal/shared/logger"
)

type PaymentRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPaymentRepository(db *gorm.DB, log logger.Interface) *PaymentRepository {
	return &PaymentRepository{db: db, logger: log}
}

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	model := mappers.PaymentToModel(p)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create payment", "reference", model.Reference, "error", err)
		return fmt.Errorf("failed to create payment: %w", err)
	}

	p.SetID(model.ID)
	return nil
}

func (r *PaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	model := mappers.PaymentToModel(p)

	// RowsAffected may be 0 when the values are unchanged, so it is not checked.
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.PaymentModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"status":            model.Status,
			"authorization_url": model.AuthorizationURL,
			"gateway_response":  model.GatewayResponse,
			"paid_at":           model.PaidAt,
			"updated_at":        model.UpdatedAt,
		}).Error; err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) GetByReference(ctx context.Context, reference string) (*payment.Payment, error) {
	return r.getByReference(db.GetTxFromContext(ctx, r.db), reference)
}

// GetByReferenceForUpdate takes a row lock on MySQL. SQLite serialises writers
// at the database level and has no FOR UPDATE.
func (r *PaymentRepository) GetByReferenceForUpdate(ctx context.Context, reference string) (*payment.Payment, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	if tx.Dialector.Name() == "mysql" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.getByReference(tx, reference)
}

func (r *PaymentRepository) getByReference(tx *gorm.DB, reference string) (*payment.Payment, error) {
	var model models.PaymentModel

	if err := tx.Where("reference = ?", reference).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payment.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return mappers.PaymentToDomain(&model)
}

func (r *PaymentRepository) SumSuccessful(ctx context.Context) (int64, error) {
	var total int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.PaymentModel{}).
		Where("status = ?", payment.StatusSuccess.String()).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to sum payments: %w", err)
	}
	return total, nil
}

package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vatid/backend/internal/domain/checkout"
	"github.com/vatid/backend/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements checkout.OrderRepository using GORM.
// Order meta data lives in the generic order_meta table.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx returns a new repository instance bound to the given transaction
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: tx}
}

// Save inserts or updates the order and upserts its meta rows in one transaction.
// Meta keys no longer present on the order are removed.
func (r *GormOrderRepository) Save(ctx context.Context, order *checkout.Order) error {
	model := models.OrderModelFromDomain(order)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return err
		}

		if len(model.Meta) == 0 {
			return tx.Where("order_id = ?", order.ID).Delete(&models.OrderMetaModel{}).Error
		}

		keys := make([]string, len(model.Meta))
		for i, m := range model.Meta {
			keys[i] = m.MetaKey
		}
		if err := tx.Where("order_id = ? AND meta_key NOT IN ?", order.ID, keys).
			Delete(&models.OrderMetaModel{}).Error; err != nil {
			return err
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}, {Name: "meta_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"meta_value"}),
		}).Create(&model.Meta).Error
	})
}

// FindByID finds an order by its ID, including meta data
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*checkout.Order, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByNumber finds an order by its number, including meta data
func (r *GormOrderRepository) FindByNumber(ctx context.Context, number string) (*checkout.Order, error) {
	return r.findOne(ctx, "number = ?", number)
}

func (r *GormOrderRepository) findOne(ctx context.Context, query string, arg any) (*checkout.Order, error) {
	var model models.OrderModel
	err := r.db.WithContext(ctx).
		Preload("Meta", func(db *gorm.DB) *gorm.DB { return db.Order("meta_key") }).
		Where(query, arg).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, checkout.ErrOrderNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindMeta returns a single meta value for an order
func (r *GormOrderRepository) FindMeta(ctx context.Context, orderID uuid.UUID, key string) (string, bool, error) {
	var row models.OrderMetaModel
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND meta_key = ?", orderID, key).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return row.MetaValue, true, nil
}

// Compile-time interface check
var _ checkout.OrderRepository = (*GormOrderRepository)(nil)

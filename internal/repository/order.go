package repository

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Wallian169/p2p-tg-bot/internal/database"
	"github.com/Wallian169/p2p-tg-bot/internal/models"
)

const (
	tableOrders              = "orders"
	tableOrderPaymentMethods = "order_payment_methods"
)

type OrderRepository struct {
	session *database.Session
}

func NewOrderRepository(s *database.Session) *OrderRepository {
	return &OrderRepository{session: s}
}

// Create inserts the order row and then one join row per payment method.
// Relations set on o (Owner, Currency, PaymentMethods) are not written;
// only their ids are. created_at and updated_at get the same instant.
func (r *OrderRepository) Create(o *models.Order, paymentMethodIDs ...uint) error {
	if err := r.session.DB().Omit(clause.Associations).Create(o).Error; err != nil {
		return errors.Wrap(err, "create order")
	}

	for _, pmID := range paymentMethodIDs {
		if err := r.AttachPaymentMethod(o.ID, pmID); err != nil {
			return err
		}
	}
	return nil
}

// GetByID loads an order with its owner, currency and payment methods.
func (r *OrderRepository) GetByID(id uint) (*models.Order, error) {
	var o models.Order
	err := models.WithOrderRelations(r.session.DB()).
		Where("orders.id = ?", id).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(tableOrders)
		}
		return nil, errors.Wrapf(err, "get order %d", id)
	}
	return &o, nil
}

// ListByOwner returns the orders of one user, oldest first.
func (r *OrderRepository) ListByOwner(ownerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := models.WithOrderRelations(r.session.DB()).
		Where("orders.owner_id = ?", ownerID).
		Order("orders.id").
		Find(&orders).Error
	if err != nil {
		return nil, errors.Wrapf(err, "list orders of user %d", ownerID)
	}
	return orders, nil
}

// Update applies changes (column -> value) and returns the stored order.
//
// updated_at always moves strictly forward, even when two updates land in
// the same clock tick or race each other. The row is read under FOR UPDATE,
// so a session that does not hold a transaction gets one for the duration
// of the call. created_at, id and owner_id are never changed. An empty
// change set leaves the row, updated_at included, untouched.
func (r *OrderRepository) Update(id uint, changes map[string]interface{}) (*models.Order, error) {
	changes = sanitize(changes)
	delete(changes, "owner_id")
	if len(changes) == 0 {
		return r.GetByID(id)
	}

	if r.session.InTransaction() {
		return r.update(id, changes)
	}

	var o *models.Order
	err := r.session.Transaction(func() error {
		var err error
		o, err = r.update(id, changes)
		return err
	})
	return o, err
}

func (r *OrderRepository) update(id uint, changes map[string]interface{}) (*models.Order, error) {
	var current models.Order
	err := r.session.DB().
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Select("id", "updated_at").
		Where("id = ?", id).
		First(&current).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(tableOrders)
		}
		return nil, errors.Wrapf(err, "get order %d", id)
	}

	changes["updated_at"] = nextUpdatedAt(current.UpdatedAt)

	err = r.session.DB().
		Model(&models.Order{}).
		Where("id = ?", id).
		Updates(changes).Error
	if err != nil {
		return nil, errors.Wrapf(err, "update order %d", id)
	}

	return r.GetByID(id)
}

func nextUpdatedAt(prev time.Time) time.Time {
	now := database.Now()
	if !now.After(prev) {
		return prev.UTC().Add(time.Microsecond)
	}
	return now
}

// Delete removes the order and its join rows.
func (r *OrderRepository) Delete(id uint) error {
	err := r.session.DB().
		Where("order_id = ?", id).
		Delete(&models.OrderPaymentMethod{}).Error
	if err != nil {
		return errors.Wrapf(err, "delete payment methods of order %d", id)
	}

	return deleteByID[models.Order](r.session, tableOrders, id)
}

// AttachPaymentMethod links a payment method to an order. Attaching the
// same method twice violates the composite primary key.
func (r *OrderRepository) AttachPaymentMethod(orderID, paymentMethodID uint) error {
	row := models.OrderPaymentMethod{OrderID: orderID, PaymentMethodID: paymentMethodID}
	if err := r.session.DB().Create(&row).Error; err != nil {
		return errors.Wrapf(err, "attach payment method %d to order %d", paymentMethodID, orderID)
	}
	return nil
}

func (r *OrderRepository) DetachPaymentMethod(orderID, paymentMethodID uint) error {
	res := r.session.DB().
		Where("order_id = ? AND payment_method_id = ?", orderID, paymentMethodID).
		Delete(&models.OrderPaymentMethod{})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "detach payment method %d from order %d", paymentMethodID, orderID)
	}
	if res.RowsAffected == 0 {
		return notFound(tableOrderPaymentMethods)
	}
	return nil
}

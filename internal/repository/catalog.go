package repository

import (
	"github.com/Wallian169/p2p-tg-bot/internal/database"
	"github.com/Wallian169/p2p-tg-bot/internal/models"
)

const (
	tableCurrencies     = "currencies"
	tableUsers          = "users"
	tablePictures       = "pictures"
	tablePaymentMethods = "payment_methods"
)

type CurrencyRepository struct {
	session *database.Session
}

func NewCurrencyRepository(s *database.Session) *CurrencyRepository {
	return &CurrencyRepository{session: s}
}

func (r *CurrencyRepository) Create(c *models.Currency) error {
	return create(r.session, tableCurrencies, c)
}

func (r *CurrencyRepository) GetByID(id uint) (*models.Currency, error) {
	return getByID[models.Currency](r.session, tableCurrencies, id)
}

func (r *CurrencyRepository) GetByName(name string) (*models.Currency, error) {
	return getBy[models.Currency](r.session, tableCurrencies, "name", name)
}

func (r *CurrencyRepository) List() ([]models.Currency, error) {
	return list[models.Currency](r.session, tableCurrencies)
}

func (r *CurrencyRepository) Update(id uint, changes map[string]interface{}) (*models.Currency, error) {
	return update[models.Currency](r.session, tableCurrencies, id, changes)
}

// Delete fails with a foreign key violation while orders still use the
// currency.
func (r *CurrencyRepository) Delete(id uint) error {
	return deleteByID[models.Currency](r.session, tableCurrencies, id)
}

type UserRepository struct {
	session *database.Session
}

func NewUserRepository(s *database.Session) *UserRepository {
	return &UserRepository{session: s}
}

// Create inserts u, generating its UUID when empty.
func (r *UserRepository) Create(u *models.User) error {
	return create(r.session, tableUsers, u)
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	return getByID[models.User](r.session, tableUsers, id)
}

func (r *UserRepository) GetByUUID(uuid string) (*models.User, error) {
	return getBy[models.User](r.session, tableUsers, "uuid", uuid)
}

func (r *UserRepository) Update(id uint, changes map[string]interface{}) (*models.User, error) {
	return update[models.User](r.session, tableUsers, id, changes)
}

func (r *UserRepository) Delete(id uint) error {
	return deleteByID[models.User](r.session, tableUsers, id)
}

type PictureRepository struct {
	session *database.Session
}

func NewPictureRepository(s *database.Session) *PictureRepository {
	return &PictureRepository{session: s}
}

func (r *PictureRepository) Create(p *models.Picture) error {
	return create(r.session, tablePictures, p)
}

func (r *PictureRepository) GetByID(id uint) (*models.Picture, error) {
	return getByID[models.Picture](r.session, tablePictures, id)
}

func (r *PictureRepository) Update(id uint, changes map[string]interface{}) (*models.Picture, error) {
	return update[models.Picture](r.session, tablePictures, id, changes)
}

func (r *PictureRepository) Delete(id uint) error {
	return deleteByID[models.Picture](r.session, tablePictures, id)
}

type PaymentMethodRepository struct {
	session *database.Session
}

func NewPaymentMethodRepository(s *database.Session) *PaymentMethodRepository {
	return &PaymentMethodRepository{session: s}
}

func (r *PaymentMethodRepository) Create(p *models.PaymentMethod) error {
	return create(r.session, tablePaymentMethods, p)
}

func (r *PaymentMethodRepository) GetByID(id uint) (*models.PaymentMethod, error) {
	return getByID[models.PaymentMethod](r.session, tablePaymentMethods, id)
}

func (r *PaymentMethodRepository) GetByName(name string) (*models.PaymentMethod, error) {
	return getBy[models.PaymentMethod](r.session, tablePaymentMethods, "name", name)
}

func (r *PaymentMethodRepository) List() ([]models.PaymentMethod, error) {
	return list[models.PaymentMethod](r.session, tablePaymentMethods)
}

func (r *PaymentMethodRepository) Update(id uint, changes map[string]interface{}) (*models.PaymentMethod, error) {
	return update[models.PaymentMethod](r.session, tablePaymentMethods, id, changes)
}

func (r *PaymentMethodRepository) Delete(id uint) error {
	return deleteByID[models.PaymentMethod](r.session, tablePaymentMethods, id)
}

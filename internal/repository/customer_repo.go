package repository

import (
	"taraas/internal/models"

	"gorm.io/gorm"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(c *models.Customer) error {
	return r.db.Create(c).Error
}

func (r *CustomerRepository) GetByID(id uint) (*models.Customer, error) {
	var c models.Customer
	err := r.db.First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) GetByEmail(email string) (*models.Customer, error) {
	var c models.Customer
	err := r.db.Where("email = ?", email).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Customer{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *CustomerRepository) Update(c *models.Customer) error {
	return r.db.Save(c).Error
}

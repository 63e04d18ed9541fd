package migrations

import (
	"github.com/Rakhulsr/asili-market/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Session{}, &models.Category{}, &models.Product{}, &models.Order{}, &models.Promotion{})
}

package postgres

import (
	"log"

	"github.com/zyra-app/zyra-change-service/internal/config"
	"github.com/zyra-app/zyra-change-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.ChangeConfig) *gorm.DB {
	dsn := cfg.ChangeDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(&models.ChangeRecordModel{}, &models.AutomationSettingsModel{}, &models.DailyActionWindowModel{})

	return db
}

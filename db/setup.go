package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/buglane-dev/buglane/internal/models"
)

var DB *gorm.DB

// ConnectDatabase opens the store. driver selects the dialect ("postgres"
// or "mysql"); an empty driver means postgres.
func ConnectDatabase(driver, dsn string) error {
	var dialector gorm.Dialector

	switch driver {
	case "", "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	var err error

	DB, err = gorm.Open(dialector, &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.User{},
		&models.Project{},
		&models.Bug{},
		&models.Comment{},
		&models.Activity{},
	}

	for _, model := range models {
		if err := DB.AutoMigrate(model); err != nil {
			return err
		}
	}

	return nil
}

package migration

import (
	"fmt"

	"SlimMom-Backend/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	models := []struct {
		name  string
		model any
	}{
		{"user", &entities.User{}},
		{"product", &entities.Product{}},
		{"diary", &entities.Diary{}},
		{"contact", &entities.Contact{}},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("migrating %s table: %w", m.name, err)
		}
	}

	fmt.Println("Database migration complete")
	return nil
}

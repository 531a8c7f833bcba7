package db

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/fixtrack/fixtrack/internal/domain/issue"
	"github.com/fixtrack/fixtrack/internal/domain/user"
	"gorm.io/gorm"
	yaml "gopkg.in/yaml.v2"
)

//go:embed seed.yaml
var seedData []byte

type seedFile struct {
	Roles      []string `yaml:"roles"`
	Categories []string `yaml:"categories"`
}

// Seed inserts the baseline roles and issue categories. Existing rows are
// left alone, so it is safe to run on every startup.
func Seed(db *gorm.DB) error {
	var sf seedFile
	if err := yaml.Unmarshal(seedData, &sf); err != nil {
		return fmt.Errorf("failed to parse seed data: %w", err)
	}

	for _, name := range sf.Roles {
		var r user.Role
		err := db.Where("name = ?", name).First(&r).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&user.Role{Name: name}).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	for _, name := range sf.Categories {
		var c issue.Category
		err := db.Where("name = ?", name).First(&c).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&issue.Category{Name: name}).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	return nil
}

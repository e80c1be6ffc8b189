package seeders

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"undangan.link/configs/configslog"
	"undangan.link/models"
)

// SeedTemplates installs one starter design per category so a fresh
// install has something to build invitations from.
func SeedTemplates(db *gorm.DB) error {
	templatesToSeed := []models.Template{
		{
			Name:         "Rose Garden",
			Category:     models.CategoryRomantic,
			PreviewURL:   "https://cdn.undangan.link/templates/rose-garden/preview.png",
			TemplateData: `{"palette":["#f8e1e7","#b76e79"],"font":"Great Vibes","sections":["hero","story","event","rsvp","guestbook"]}`,
			IsActive:     true,
		},
		{
			Name:         "Monochrome",
			Category:     models.CategoryContemporary,
			PreviewURL:   "https://cdn.undangan.link/templates/monochrome/preview.png",
			TemplateData: `{"palette":["#111111","#fafafa"],"font":"Inter","sections":["hero","event","rsvp"]}`,
			IsActive:     true,
		},
		{
			Name:         "Golden Hall",
			Category:     models.CategoryFormal,
			PreviewURL:   "https://cdn.undangan.link/templates/golden-hall/preview.png",
			TemplateData: `{"palette":["#1c1c2e","#c9a227"],"font":"Playfair Display","sections":["hero","story","event","rsvp","guestbook"]}`,
			IsActive:     true,
		},
		{
			Name:         "Batik Heritage",
			Category:     models.CategoryTraditional,
			PreviewURL:   "https://cdn.undangan.link/templates/batik-heritage/preview.png",
			TemplateData: `{"palette":["#4a2c16","#d9a066"],"font":"Lora","sections":["hero","story","event","rsvp","guestbook"]}`,
			IsActive:     true,
		},
	}

	var createdCount int64
	errorOccurred := false

	configslog.SLog.Info("Seeding starter templates...")

	for _, templateToSeed := range templatesToSeed {
		var existing models.Template
		result := db.Where("name = ?", templateToSeed.Name).First(&existing)

		if result.Error == nil {
			configslog.SLog.Debugf("Template '%s' already exists, skipping.", templateToSeed.Name)
			continue
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			configslog.Log.Error("Failed to check template",
				zap.String("name", templateToSeed.Name),
				zap.Error(result.Error),
			)
			errorOccurred = true
			continue
		}

		if err := db.Create(&templateToSeed).Error; err != nil {
			configslog.Log.Error("Failed to create template",
				zap.String("name", templateToSeed.Name),
				zap.Error(err),
			)
			errorOccurred = true
			continue
		}

		configslog.SLog.Infof("Template '%s' created (ID: %d).", templateToSeed.Name, templateToSeed.ID)
		createdCount++
	}

	if createdCount > 0 {
		configslog.SLog.Infof("%d new templates seeded.", createdCount)
	} else if !errorOccurred {
		configslog.SLog.Info("All starter templates already present.")
	}

	if errorOccurred {
		return errors.New("at least one template failed to seed")
	}
	return nil
}

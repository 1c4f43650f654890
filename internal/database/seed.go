package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"inkwell/internal/models"
)

// SeedThemes inserts catalog themes that are not in the database yet.
// Existing rows keep their styles and version.
func SeedThemes(db *sql.DB, themes []models.ThemeDefinition) error {
	inserted := 0
	for _, t := range themes {
		styles, err := json.Marshal(t.Styles)
		if err != nil {
			return fmt.Errorf("seed marshal theme %s: %w", t.ID, err)
		}
		res, err := db.Exec(`
			INSERT INTO themes (id, name, category, version, styles)
			VALUES ($1, $2, $3, 1, $4)
			ON CONFLICT (id) DO NOTHING
		`, t.ID, t.Name, t.Category, styles)
		if err != nil {
			return fmt.Errorf("seed insert theme %s: %w", t.ID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}

	slog.Info("theme catalog seeded", "themes", len(themes), "inserted", inserted)
	return nil
}

// DemoBlogSlug is the slug of the development blog created by SeedDemoBlog.
const DemoBlogSlug = "demo"

// SeedDemoBlog creates a demo blog on the given theme if no blog exists.
func SeedDemoBlog(db *sql.DB, themeID string) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM blogs").Scan(&count); err != nil {
		return fmt.Errorf("seed check blogs: %w", err)
	}
	if count > 0 {
		slog.Info("blogs already present, skipping demo blog")
		return nil
	}

	custom := models.Customization{
		DarkMode: models.DarkModeConfig{Enabled: true, DefaultMode: models.ModeSystem},
		Fonts:    models.Fonts{FontSource: models.FontSourceGoogle},
	}
	data, err := json.Marshal(custom)
	if err != nil {
		return fmt.Errorf("seed marshal customization: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO blogs (slug, name, theme_id, customization)
		VALUES ($1, $2, $3, $4)
	`, DemoBlogSlug, "Demo Blog", themeID, data)
	if err != nil {
		return fmt.Errorf("seed insert demo blog: %w", err)
	}

	slog.Info("demo blog seeded", "slug", DemoBlogSlug, "theme", themeID)
	return nil
}

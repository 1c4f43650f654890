// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"inkwell/internal/models"
)

// ThemeStore handles theme catalog database operations.
type ThemeStore struct {
	db *sql.DB
}

// NewThemeStore creates a new ThemeStore.
func NewThemeStore(db *sql.DB) *ThemeStore {
	return &ThemeStore{db: db}
}

// themeColumns lists the columns selected in theme queries.
const themeColumns = `id, name, category, version, styles, created_at, updated_at`

// scanTheme scans a theme row from the result set.
func scanTheme(scanner interface{ Scan(...any) error }) (*models.ThemeDefinition, error) {
	var t models.ThemeDefinition
	var styles []byte
	if err := scanner.Scan(&t.ID, &t.Name, &t.Category, &t.Version, &styles, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(styles, &t.Styles); err != nil {
		return nil, fmt.Errorf("decode theme styles %s: %w", t.ID, err)
	}
	return &t, nil
}

// List returns all themes ordered by category and name.
func (s *ThemeStore) List(ctx context.Context) ([]models.ThemeDefinition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+themeColumns+`
		FROM themes
		ORDER BY category, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	defer rows.Close()

	var items []models.ThemeDefinition
	for rows.Next() {
		t, err := scanTheme(rows)
		if err != nil {
			return nil, fmt.Errorf("scan theme: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// FindByID retrieves a theme by its id. Returns nil if not found.
func (s *ThemeStore) FindByID(ctx context.Context, id string) (*models.ThemeDefinition, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+themeColumns+` FROM themes WHERE id = $1`, id)
	t, err := scanTheme(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find theme by id: %w", err)
	}
	return t, nil
}

// Update replaces a theme's name, category and styles and bumps its
// version. Returns nil if the theme does not exist.
func (s *ThemeStore) Update(ctx context.Context, t models.ThemeDefinition) (*models.ThemeDefinition, error) {
	styles, err := json.Marshal(t.Styles)
	if err != nil {
		return nil, fmt.Errorf("encode theme styles: %w", err)
	}
	row := s.db.QueryRowContext(ctx, `
		UPDATE themes
		SET name = $1, category = $2, styles = $3, version = version + 1, updated_at = NOW()
		WHERE id = $4
		RETURNING `+themeColumns,
		t.Name, t.Category, styles, t.ID,
	)
	updated, err := scanTheme(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update theme: %w", err)
	}
	return updated, nil
}

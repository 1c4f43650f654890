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

// BlogStore handles blog database operations. Only the styling-related
// columns are managed here.
type BlogStore struct {
	db *sql.DB
}

// NewBlogStore creates a new BlogStore.
func NewBlogStore(db *sql.DB) *BlogStore {
	return &BlogStore{db: db}
}

// blogColumns lists the columns selected in blog queries.
const blogColumns = `id, slug, name, theme_id, version, customization, created_at, updated_at`

// scanBlog scans a blog row from the result set.
func scanBlog(scanner interface{ Scan(...any) error }) (*models.Blog, error) {
	var b models.Blog
	var custom []byte
	err := scanner.Scan(&b.ID, &b.Slug, &b.Name, &b.ThemeID, &b.Version, &custom, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(custom, &b.Customization); err != nil {
		return nil, fmt.Errorf("decode customization %s: %w", b.Slug, err)
	}
	return &b, nil
}

// List returns all blogs ordered by slug.
func (s *BlogStore) List(ctx context.Context) ([]models.Blog, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+blogColumns+` FROM blogs ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	var items []models.Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		items = append(items, *b)
	}
	return items, rows.Err()
}

// FindBySlug retrieves a blog by its slug. Returns nil if not found.
func (s *BlogStore) FindBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+blogColumns+` FROM blogs WHERE slug = $1`, slug)
	b, err := scanBlog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find blog by slug: %w", err)
	}
	return b, nil
}

// Create inserts a blog and returns it with its generated id.
func (s *BlogStore) Create(ctx context.Context, b models.Blog) (*models.Blog, error) {
	custom, err := json.Marshal(b.Customization)
	if err != nil {
		return nil, fmt.Errorf("encode customization: %w", err)
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO blogs (slug, name, theme_id, customization)
		VALUES ($1, $2, $3, $4)
		RETURNING `+blogColumns,
		b.Slug, b.Name, b.ThemeID, custom,
	)
	created, err := scanBlog(row)
	if err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	return created, nil
}

// UpdateCustomization replaces a blog's customization and bumps its version.
// Returns nil if the blog does not exist.
func (s *BlogStore) UpdateCustomization(ctx context.Context, slug string, c models.Customization) (*models.Blog, error) {
	custom, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode customization: %w", err)
	}
	row := s.db.QueryRowContext(ctx, `
		UPDATE blogs
		SET customization = $1, version = version + 1, updated_at = NOW()
		WHERE slug = $2
		RETURNING `+blogColumns,
		custom, slug,
	)
	b, err := scanBlog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update customization: %w", err)
	}
	return b, nil
}

// SetTheme switches a blog to another theme and bumps its version.
// Returns nil if the blog does not exist.
func (s *BlogStore) SetTheme(ctx context.Context, slug, themeID string) (*models.Blog, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE blogs
		SET theme_id = $1, version = version + 1, updated_at = NOW()
		WHERE slug = $2
		RETURNING `+blogColumns,
		themeID, slug,
	)
	b, err := scanBlog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("set blog theme: %w", err)
	}
	return b, nil
}

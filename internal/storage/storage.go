package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"menu-planner/internal/ingredient"
	"menu-planner/internal/plan"
)

// sanitizeID makes a user identifier safe for filenames.
func sanitizeID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, id)
}

// CatalogStore provides file-based storage for per-user ingredient
// catalogs. Catalogs are stored as ordered JSON arrays so category
// insertion order survives a round trip.
type CatalogStore struct {
	basePath string
}

// NewCatalogStore creates a CatalogStore and ensures the base directory exists.
func NewCatalogStore(basePath string) (*CatalogStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &CatalogStore{basePath: basePath}, nil
}

func (s *CatalogStore) path(userID string) string {
	return filepath.Join(s.basePath, fmt.Sprintf("catalog_%s.json", sanitizeID(userID)))
}

// Save writes the user's catalog to disk.
func (s *CatalogStore) Save(userID string, catalog ingredient.Catalog) error {
	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	if err := os.WriteFile(s.path(userID), data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	return nil
}

// Load reads the user's catalog from disk.
func (s *CatalogStore) Load(userID string) (ingredient.Catalog, error) {
	data, err := os.ReadFile(s.path(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	var catalog ingredient.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	return catalog, nil
}

// Exists checks whether the user has a stored catalog.
func (s *CatalogStore) Exists(userID string) bool {
	_, err := os.Stat(s.path(userID))
	return !os.IsNotExist(err)
}

// PlanStore provides file-based storage for meal plans, one file per user
// and month.
type PlanStore struct {
	basePath string
}

// NewPlanStore creates a PlanStore and ensures the base directory exists.
func NewPlanStore(basePath string) (*PlanStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &PlanStore{basePath: basePath}, nil
}

func (s *PlanStore) path(userID string, year int, month time.Month) string {
	return filepath.Join(s.basePath, fmt.Sprintf("plan_%s_%04d-%02d.json", sanitizeID(userID), year, int(month)))
}

// Save writes a month's plan to disk.
func (s *PlanStore) Save(userID string, year int, month time.Month, p plan.Plan) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	if err := os.WriteFile(s.path(userID, year, month), data, 0644); err != nil {
		return fmt.Errorf("failed to write plan file: %w", err)
	}
	return nil
}

// Load reads a month's plan from disk.
func (s *PlanStore) Load(userID string, year int, month time.Month) (plan.Plan, error) {
	data, err := os.ReadFile(s.path(userID, year, month))
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}
	var p plan.Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}
	return p, nil
}

// Exists checks whether a plan is stored for the given user and month.
func (s *PlanStore) Exists(userID string, year int, month time.Month) bool {
	_, err := os.Stat(s.path(userID, year, month))
	return !os.IsNotExist(err)
}

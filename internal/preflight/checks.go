package preflight

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"panotour/internal/database"
	"panotour/internal/filestore"
)

// CheckResult represents the result of a preflight check
type CheckResult struct {
	Name    string
	Status  string // "pass", "fail", "warning"
	Message string
	Error   error
}

// Checker performs pre-flight checks before server starts
type Checker struct {
	db    *database.DB
	store *filestore.Store
}

// NewChecker creates a new preflight checker
func NewChecker(db *database.DB, store *filestore.Store) *Checker {
	return &Checker{db: db, store: store}
}

// RunAll runs all preflight checks and returns results
func (c *Checker) RunAll() []CheckResult {
	log.Println("🔍 Running pre-flight checks...")

	results := []CheckResult{
		c.checkDatabaseConnection(),
		c.checkDatabaseSchema(),
		c.checkAssetDirectories(),
	}

	passed := 0
	failed := 0
	warnings := 0

	for _, result := range results {
		switch result.Status {
		case "pass":
			log.Printf("   ✅ %s: %s", result.Name, result.Message)
			passed++
		case "fail":
			log.Printf("   ❌ %s: %s", result.Name, result.Message)
			if result.Error != nil {
				log.Printf("      Error: %v", result.Error)
			}
			failed++
		case "warning":
			log.Printf("   ⚠️  %s: %s", result.Name, result.Message)
			warnings++
		}
	}

	log.Printf("📊 Pre-flight summary: %d passed, %d failed, %d warnings", passed, failed, warnings)

	return results
}

// HasFailures returns true if any check failed
func HasFailures(results []CheckResult) bool {
	for _, result := range results {
		if result.Status == "fail" {
			return true
		}
	}
	return false
}

// checkDatabaseConnection verifies database connectivity
func (c *Checker) checkDatabaseConnection() CheckResult {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.db.PingContext(ctx); err != nil {
		return CheckResult{
			Name:    "Database Connection",
			Status:  "fail",
			Message: "Cannot connect to database",
			Error:   err,
		}
	}

	return CheckResult{
		Name:    "Database Connection",
		Status:  "pass",
		Message: fmt.Sprintf("%s database connection successful", c.db.Dialect()),
	}
}

// checkDatabaseSchema verifies all required tables exist
func (c *Checker) checkDatabaseSchema() CheckResult {
	ctx := context.Background()

	for _, table := range database.Tables {
		exists, err := c.db.TableExists(ctx, table)
		if err != nil || !exists {
			return CheckResult{
				Name:    "Database Schema",
				Status:  "fail",
				Message: fmt.Sprintf("Required table '%s' not found", table),
				Error:   err,
			}
		}
	}

	return CheckResult{
		Name:    "Database Schema",
		Status:  "pass",
		Message: fmt.Sprintf("All %d required tables exist", len(database.Tables)),
	}
}

// checkAssetDirectories verifies the upload and icon directories accept writes
func (c *Checker) checkAssetDirectories() CheckResult {
	dirs := []string{filestore.DirUploads, filestore.DirSystemIcons, filestore.DirCustomIcons}

	for _, dir := range dirs {
		path := c.store.Dir(dir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return CheckResult{
				Name:    "Asset Directories",
				Status:  "fail",
				Message: fmt.Sprintf("Cannot create %s", path),
				Error:   err,
			}
		}

		probe, err := os.CreateTemp(path, ".preflight-*")
		if err != nil {
			return CheckResult{
				Name:    "Asset Directories",
				Status:  "fail",
				Message: fmt.Sprintf("Directory %s is not writable", path),
				Error:   err,
			}
		}
		probe.Close()
		os.Remove(probe.Name())
	}

	return CheckResult{
		Name:    "Asset Directories",
		Status:  "pass",
		Message: fmt.Sprintf("Asset directories writable under %s", filepath.Clean(c.store.Root())),
	}
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"overtime-tracker/internal/api"
	"overtime-tracker/internal/config"
	"overtime-tracker/internal/repository/sqlite"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// RepositoryFactory creates repository instances based on environment
type RepositoryFactory struct {
	env Environment
}

// NewRepositoryFactory creates a new repository factory for the given environment
func NewRepositoryFactory(env Environment) *RepositoryFactory {
	return &RepositoryFactory{env: env}
}

// BusinessAPI opens the repository for cfg and wraps it in the business API.
// It satisfies cli.APIFactory.
func (rf *RepositoryFactory) BusinessAPI(cfg *config.Config, logger *slog.Logger) (api.BusinessAPI, io.Closer, error) {
	repo, err := rf.CreateRepository(cfg)
	if err != nil {
		return nil, nil, err
	}
	return api.NewBusinessAPI(repo, cfg, logger), repo, nil
}

// CreateRepository creates a repository instance based on the current environment
func (rf *RepositoryFactory) CreateRepository(cfg *config.Config) (sqlite.Repository, error) {
	switch rf.env {
	case Development:
		return rf.createDevelopmentRepository(cfg)
	case Testing:
		return rf.createTestingRepository()
	default:
		return rf.createProductionRepository(cfg)
	}
}

// createDevelopmentRepository uses a database file in the working directory
func (rf *RepositoryFactory) createDevelopmentRepository(cfg *config.Config) (sqlite.Repository, error) {
	repo, err := sqlite.NewWithConfig(cfg.Database.Filename, cfg.RepositoryOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize development database: %w", err)
	}
	return repo, nil
}

// createTestingRepository uses an in-memory database that disappears on exit
func (rf *RepositoryFactory) createTestingRepository() (sqlite.Repository, error) {
	repo, err := config.CreateTestRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize testing database: %w", err)
	}
	return repo, nil
}

// createProductionRepository uses the configured database location
func (rf *RepositoryFactory) createProductionRepository(cfg *config.Config) (sqlite.Repository, error) {
	repo, err := config.CreateRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database at %s: %w", cfg.GetDatabasePath(), err)
	}
	return repo, nil
}

// getEnvironment determines the current environment from OT_ENV
func getEnvironment() Environment {
	switch os.Getenv("OT_ENV") {
	case "development":
		return Development
	case "testing":
		return Testing
	default:
		return Production
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.ConfigsPath != "table_configs" {
		t.Errorf("Expected configs_path to be 'table_configs', got '%s'", config.ConfigsPath)
	}

	if config.Database.Provider != "postgresql" {
		t.Errorf("Expected database provider to be 'postgresql', got '%s'", config.Database.Provider)
	}

	if config.Database.URLEnv != "DATABASE_URL" {
		t.Errorf("Expected database url_env to be 'DATABASE_URL', got '%s'", config.Database.URLEnv)
	}

	if config.Generate.Rows != 100 {
		t.Errorf("Expected default rows to be 100, got %d", config.Generate.Rows)
	}

	if config.Generate.BatchSize != 250 {
		t.Errorf("Expected default batch_size to be 250, got %d", config.Generate.BatchSize)
	}

	if config.Generate.MinRelated != 1 || config.Generate.MaxRelated != 5 {
		t.Errorf("Expected related range [1, 5], got [%d, %d]", config.Generate.MinRelated, config.Generate.MaxRelated)
	}

	if config.Generate.PoolSize != 10 {
		t.Errorf("Expected default pool_size to be 10, got %d", config.Generate.PoolSize)
	}
}

func TestInitializeProject(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "mocksmith-test")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}
	defer os.Chdir(originalDir)

	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	if err := InitializeProject(); err != nil {
		t.Fatalf("Failed to initialize project: %v", err)
	}

	configPath := filepath.Join(tempDir, ConfigFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Errorf("Config file was not created at %s", configPath)
	}

	if _, err := os.Stat(filepath.Join(tempDir, "table_configs")); os.IsNotExist(err) {
		t.Error("Directory table_configs was not created")
	}

	if err := InitializeProject(); err == nil {
		t.Error("Expected second initialization to fail, but it succeeded")
	}
}

func TestIsInitialized(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "mocksmith-test")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}
	defer os.Chdir(originalDir)

	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	if IsInitialized() {
		t.Error("Expected project to not be initialized, but it was")
	}

	configPath := filepath.Join(tempDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte("{}"), 0644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}

	if !IsInitialized() {
		t.Error("Expected project to be initialized, but it wasn't")
	}
}

func TestValidate(t *testing.T) {
	config := DefaultConfig()
	if err := config.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}

	config.Database.Provider = "oracle"
	if err := config.Validate(); err == nil {
		t.Error("Expected unsupported provider to fail validation")
	}

	config = DefaultConfig()
	config.Generate.MinRelated = 9
	config.Generate.MaxRelated = 3
	if err := config.Validate(); err == nil {
		t.Error("Expected min_related > max_related to fail validation")
	}

	config = DefaultConfig()
	config.ConfigsPath = ""
	if err := config.Validate(); err == nil {
		t.Error("Expected empty configs_path to fail validation")
	}
}

func TestGetDatabaseURL(t *testing.T) {
	config := DefaultConfig()
	config.Database.URLEnv = "MOCKSMITH_TEST_DB_URL"

	os.Unsetenv("MOCKSMITH_TEST_DB_URL")
	if _, err := config.GetDatabaseURL(); err == nil {
		t.Error("Expected missing environment variable to fail")
	}

	t.Setenv("MOCKSMITH_TEST_DB_URL", "postgres://localhost:5432/demo")
	url, err := config.GetDatabaseURL()
	if err != nil {
		t.Fatalf("GetDatabaseURL failed: %v", err)
	}
	if url != "postgres://localhost:5432/demo" {
		t.Errorf("Unexpected URL: %s", url)
	}
}

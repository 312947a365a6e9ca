// Package configs provides configuration structures and utilities for the
// storefront service. This file contains tests for the configuration
// functionality.
//
// Package configs 提供店铺服务的配置结构和工具。
// 本文件包含配置功能的测试。
package configs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies that DefaultConfig returns a properly initialized
// Config with the expected default values for important settings.
//
// TestDefaultConfig 验证DefaultConfig返回一个正确初始化的Config，
// 包含重要设置的预期默认值。
func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if config == nil {
		t.Fatal("DefaultConfig() returned nil")
	}

	// Test default values
	// 测试默认值
	if config.Server.Port != 8080 {
		t.Errorf("Expected Server.Port to be 8080, got %d", config.Server.Port)
	}
	if config.Catalog.DefaultCategory != "Doces" {
		t.Errorf("Expected Catalog.DefaultCategory to be 'Doces', got '%s'", config.Catalog.DefaultCategory)
	}
	if config.Catalog.PriceFloor != 50 {
		t.Errorf("Expected Catalog.PriceFloor to be 50, got %v", config.Catalog.PriceFloor)
	}
	if config.Auth.SimulatedLatency != 1500*time.Millisecond {
		t.Errorf("Expected Auth.SimulatedLatency to be 1.5s, got %v", config.Auth.SimulatedLatency)
	}
	if config.Auth.Store != "memory" {
		t.Errorf("Expected Auth.Store to be 'memory', got '%s'", config.Auth.Store)
	}

	if err := config.Validate(); err != nil {
		t.Errorf("Default config failed validation: %v", err)
	}
}

// TestLoadAndSaveConfig tests the ability to save and load configuration
// to and from files in both YAML and JSON formats.
//
// TestLoadAndSaveConfig 测试将配置保存到文件和从文件加载配置的能力，
// 包括YAML和JSON两种格式。
func TestLoadAndSaveConfig(t *testing.T) {
	// Create a temporary directory for test files
	// 创建测试文件的临时目录
	tempDir, err := os.MkdirTemp("", "docemila-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	// Test YAML
	// 测试YAML
	yamlPath := filepath.Join(tempDir, "config.yaml")
	config := DefaultConfig()
	config.Server.Port = 9090
	config.Catalog.DefaultCategory = "Bolos"
	config.Auth.Store = "redis"

	if err := config.SaveToFile(yamlPath); err != nil {
		t.Fatalf("Failed to save YAML config: %v", err)
	}

	loadedConfig, err := LoadFromFile(yamlPath)
	if err != nil {
		t.Fatalf("Failed to load YAML config: %v", err)
	}

	if loadedConfig.Server.Port != 9090 {
		t.Errorf("Expected Server.Port to be 9090, got %d", loadedConfig.Server.Port)
	}
	if loadedConfig.Catalog.DefaultCategory != "Bolos" {
		t.Errorf("Expected Catalog.DefaultCategory to be 'Bolos', got '%s'", loadedConfig.Catalog.DefaultCategory)
	}
	if loadedConfig.Auth.Store != "redis" {
		t.Errorf("Expected Auth.Store to be 'redis', got '%s'", loadedConfig.Auth.Store)
	}

	// Test JSON
	// 测试JSON
	jsonPath := filepath.Join(tempDir, "config.json")
	config.Server.Port = 7070
	config.Catalog.PriceFloor = 80

	if err := config.SaveToFile(jsonPath); err != nil {
		t.Fatalf("Failed to save JSON config: %v", err)
	}

	loadedConfig, err = LoadFromFile(jsonPath)
	if err != nil {
		t.Fatalf("Failed to load JSON config: %v", err)
	}

	if loadedConfig.Server.Port != 7070 {
		t.Errorf("Expected Server.Port to be 7070, got %d", loadedConfig.Server.Port)
	}
	if loadedConfig.Catalog.PriceFloor != 80 {
		t.Errorf("Expected Catalog.PriceFloor to be 80, got %v", loadedConfig.Catalog.PriceFloor)
	}

	// Unsupported format
	// 不支持的格式
	if _, err := LoadFromFile(filepath.Join(tempDir, "config.toml")); err == nil {
		t.Error("Expected error for unsupported file format")
	}
}

// TestLoadFromReader tests loading configuration from an in-memory reader.
// TestLoadFromReader 测试从内存读取器加载配置。
func TestLoadFromReader(t *testing.T) {
	yamlData := `
server:
  port: 3000
catalog:
  default_category: Tortas
`
	config, err := LoadFromReader(strings.NewReader(yamlData), "yaml")
	if err != nil {
		t.Fatalf("Failed to load config from reader: %v", err)
	}
	if config.Server.Port != 3000 {
		t.Errorf("Expected Server.Port to be 3000, got %d", config.Server.Port)
	}
	if config.Catalog.DefaultCategory != "Tortas" {
		t.Errorf("Expected Catalog.DefaultCategory to be 'Tortas', got '%s'", config.Catalog.DefaultCategory)
	}

	// Defaults must survive partial overrides
	// 默认值必须在部分覆盖后保留
	if config.Catalog.PriceFloor != 50 {
		t.Errorf("Expected Catalog.PriceFloor default 50, got %v", config.Catalog.PriceFloor)
	}
}

// TestValidateConfig tests the validation rules for invalid settings.
// TestValidateConfig 测试无效设置的验证规则。
func TestValidateConfig(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"InvalidPort", func(c *Config) { c.Server.Port = 0 }},
		{"InvalidMode", func(c *Config) { c.Server.Mode = "production" }},
		{"MissingProductsFile", func(c *Config) { c.Catalog.ProductsFile = "" }},
		{"RatingOutOfRange", func(c *Config) { c.Catalog.DefaultRating = 6 }},
		{"ReviewRangeInverted", func(c *Config) { c.Catalog.ReviewCountMin = 60; c.Catalog.ReviewCountMax = 10 }},
		{"InvalidSessionStore", func(c *Config) { c.Auth.Store = "postgres" }},
		{"RedisWithoutAddr", func(c *Config) { c.Auth.Store = "redis"; c.Auth.RedisAddr = "" }},
		{"InvalidLogLevel", func(c *Config) { c.Log.Level = "verbose" }},
		{"FileOutputWithoutPath", func(c *Config) { c.Log.Output = "file"; c.Log.FilePath = "" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := DefaultConfig()
			tc.mutate(config)
			if err := config.Validate(); err == nil {
				t.Errorf("Expected validation error for %s", tc.name)
			}
		})
	}
}

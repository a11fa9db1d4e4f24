package config

import "testing"

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")

		cfg := Load()
		if cfg.Port != "8080" {
			t.Errorf("Expected default port 8080, got %s", cfg.Port)
		}
		if cfg.MongoURL != "mongodb://localhost:27017" {
			t.Errorf("Unexpected default mongo url: %s", cfg.MongoURL)
		}
		if cfg.CollectionName != "employees" {
			t.Errorf("Unexpected default collection: %s", cfg.CollectionName)
		}
		if !cfg.SchemaValidation {
			t.Error("Expected schema validation on by default")
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("PORT", "9999")
		t.Setenv("SCHEMA_VALIDATION", "false")

		cfg := Load()
		if cfg.Port != "9999" {
			t.Errorf("Expected port 9999, got %s", cfg.Port)
		}
		if cfg.SchemaValidation {
			t.Error("Expected schema validation off")
		}
	})

	t.Run("unparsable bool falls back to default", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("SCHEMA_VALIDATION", "maybe")

		if cfg := Load(); !cfg.SchemaValidation {
			t.Error("Expected fallback to default true")
		}
	})
}

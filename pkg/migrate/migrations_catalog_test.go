package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/craftsign/signquote-backend/pkg/migrate"
)

func TestMaterialsMigrationContainsSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_materials.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no materials migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TYPE pricing_model AS ENUM",
		"CREATE TYPE discount_type AS ENUM",
		"CREATE TYPE text_processing_mode AS ENUM",
		"CREATE TABLE IF NOT EXISTS materials",
		"CREATE UNIQUE INDEX IF NOT EXISTS uk_materials_tenant_name",
		"CHECK (specific_gravity IS NULL OR specific_gravity > 0)",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestTierMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_material_discount_tiers.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no discount tier migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"FOREIGN KEY (material_id) REFERENCES materials(id) ON DELETE CASCADE",
		"CHECK (min_quantity >= 1)",
		"CHECK (max_quantity IS NULL OR max_quantity >= min_quantity)",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestCoefficientMigrationSeedsGlobalDefaults(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_character_coefficients.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no character coefficient migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	for _, class := range []string{"hiragana", "katakana", "kanji_simple", "kanji_normal", "kanji_complex", "uppercase", "lowercase", "symbol"} {
		if !strings.Contains(content, "'"+class+"'") {
			t.Errorf("missing seeded class %q", class)
		}
	}
	if !strings.Contains(content, "uk_character_coefficients_global") {
		t.Errorf("missing global uniqueness index")
	}
}

func TestMigrationDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir invalid: %v", err)
	}
}

package database_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func loadSchema(t *testing.T) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join("..", "..", "db_schema.sql"))
	if err != nil {
		t.Fatalf("reading db_schema.sql: %v", err)
	}
	return string(content)
}

func columnDefinition(t *testing.T, schema, column string) string {
	t.Helper()
	for _, line := range strings.Split(schema, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, column+" ") {
			return trimmed
		}
	}
	t.Fatalf("column %s not found in db_schema.sql", column)
	return ""
}

// Guest counts are optional: the models carry *int and the repositories bind
// the pointer directly, so an omitted count inserts SQL NULL. The columns
// must accept that.
func TestGuestColumnsAreNullable(t *testing.T) {
	schema := loadSchema(t)
	for _, column := range []string{"reservation_guests", "revenue_guests"} {
		def := columnDefinition(t, schema, column)
		if strings.Contains(def, "NOT NULL") {
			t.Errorf("%s is declared NOT NULL; inserting a record without a guest count would fail: %s", column, def)
		}
	}
}

// Nullable model fields generally bind pointers straight into INSERTs; any
// audit or free-text column backed by a pointer field must accept NULL.
func TestPointerBackedColumnsAreNullable(t *testing.T) {
	schema := loadSchema(t)
	for _, column := range []string{
		"reservation_notes",
		"revenue_notes",
		"customer_code",
		"setting_value",
		"created_by",
		"updated_by",
	} {
		for _, line := range strings.Split(schema, "\n") {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, column+" ") && strings.Contains(trimmed, "NOT NULL") {
				t.Errorf("%s is declared NOT NULL but the model field is a pointer: %s", column, trimmed)
			}
		}
	}
}

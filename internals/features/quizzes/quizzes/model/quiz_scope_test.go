package model

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		t.Fatalf("buka dry-run db: %v", err)
	}
	return db
}

// Scope ActiveByCourse dipakai initialize progres dan statistik baca;
// keduanya harus menghitung quiz aktif saja supaya penyebut konsisten.
func TestActiveByCourseFiltersActive(t *testing.T) {
	db := dryRunDB(t)

	var n int64
	stmt := db.Model(&QuizModel{}).
		Scopes(ActiveByCourse(uuid.New())).
		Count(&n).Statement

	sql := stmt.SQL.String()
	if !strings.Contains(sql, "quiz_is_active = TRUE") {
		t.Errorf("query harus memfilter quiz aktif, got: %s", sql)
	}
	if !strings.Contains(sql, "quiz_course_id") {
		t.Errorf("query harus memfilter kursus, got: %s", sql)
	}
	if !strings.Contains(sql, "quiz_deleted_at") {
		t.Errorf("soft delete harus ikut ter-filter lewat model, got: %s", sql)
	}
}

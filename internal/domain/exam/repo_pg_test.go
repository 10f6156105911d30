package exam

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kaseketi/kaseketi-vet-clinic/internal/platform/db"
)

// newTestPool connects to the database named by TEST_DATABASE_URL and runs
// the migrations. Tests using it are skipped when the variable is unset.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := db.NewMigrator(pool, "../../../migrations").Up(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return pool
}

func insertTestPatient(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	id := uuid.New()
	_, err := pool.Exec(ctx,
		`INSERT INTO patient (id, name, species) VALUES ($1, 'Rex', 'Canine')`, id)
	if err != nil {
		t.Fatalf("insert patient: %v", err)
	}
	t.Cleanup(func() {
		pool.Exec(ctx, `DELETE FROM exam WHERE patient_id = $1`, id)
		pool.Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	})
	return id
}

func TestSave_RollsBackExamOnFindingFailure(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	patientID := insertTestPatient(t, pool)

	sev := "Mild"
	e := &Exam{
		PatientID: patientID,
		ExamDate:  time.Now().UTC(),
		Status:    StatusDraft,
		// Duplicate system_name violates the finding unique constraint after
		// the exam row is already written inside the same transaction.
		Findings: []*Finding{
			{SystemName: "skin", IsNormal: false, Severity: &sev, FieldValues: map[string]any{}},
			{SystemName: "skin", IsNormal: true, FieldValues: map[string]any{}},
		},
	}

	repo := NewRepo(pool)
	if err := repo.Save(ctx, e); err == nil {
		t.Fatal("expected unique-constraint error from duplicate finding")
	}

	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM exam WHERE id = $1`, e.ID).Scan(&count); err != nil {
		t.Fatalf("count exam rows: %v", err)
	}
	if count != 0 {
		t.Errorf("exam row survived a failed finding insert, want full rollback, got %d rows", count)
	}

	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM finding WHERE exam_id = $1`, e.ID).Scan(&count); err != nil {
		t.Fatalf("count finding rows: %v", err)
	}
	if count != 0 {
		t.Errorf("finding rows survived a failed save, got %d rows", count)
	}
}

func TestSave_PersistsExamWithFindings(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	patientID := insertTestPatient(t, pool)

	sev := "Moderate"
	e := &Exam{
		PatientID:           patientID,
		ExamDate:            time.Now().UTC(),
		PresentingComplaint: "Limping on left hind leg",
		Status:              StatusDraft,
		Findings: []*Finding{
			{SystemName: "general", IsNormal: true, FieldValues: map[string]any{}},
			{SystemName: "skin", IsNormal: false, Severity: &sev,
				FieldValues: map[string]any{"lesions": true}},
		},
	}

	repo := NewRepo(pool)
	if err := repo.Save(ctx, e); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.GetByID(ctx, e.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PresentingComplaint != "Limping on left hind leg" {
		t.Errorf("unexpected complaint: %q", got.PresentingComplaint)
	}
	if len(got.Findings) != 2 {
		t.Fatalf("expected 2 findings, got %d", len(got.Findings))
	}
}

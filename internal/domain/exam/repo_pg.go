package exam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kaseketi/kaseketi-vet-clinic/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

// NewRepo returns the Postgres-backed exam repository.
func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const examCols = `id, patient_id, examiner_id, examiner_name, exam_date,
	presenting_complaint, plan_notes, status, generated_report,
	signed_by, signed_at, created_at, updated_at`

func (r *repoPG) Save(ctx context.Context, e *Exam) error {
	return db.WithTx(ctx, r.pool, func(ctx context.Context) error {
		q := r.conn(ctx)

		if e.ID == uuid.Nil {
			e.ID = uuid.New()
			_, err := q.Exec(ctx, `
				INSERT INTO exam (
					id, patient_id, examiner_id, examiner_name, exam_date,
					presenting_complaint, plan_notes, status, generated_report
				) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
				e.ID, e.PatientID, e.ExaminerID, e.ExaminerName, e.ExamDate,
				e.PresentingComplaint, e.PlanNotes, e.Status, e.GeneratedReport,
			)
			if err != nil {
				return fmt.Errorf("insert exam: %w", err)
			}
		} else {
			// The status guard makes the signed-lock a storage-level CAS:
			// a concurrent sign loses no data and a late edit is rejected.
			ct, err := q.Exec(ctx, `
				UPDATE exam SET
					examiner_id=$2, examiner_name=$3, exam_date=$4,
					presenting_complaint=$5, plan_notes=$6, status=$7,
					generated_report=$8, updated_at=NOW()
				WHERE id = $1 AND status <> 'signed'`,
				e.ID, e.ExaminerID, e.ExaminerName, e.ExamDate,
				e.PresentingComplaint, e.PlanNotes, e.Status, e.GeneratedReport,
			)
			if err != nil {
				return fmt.Errorf("update exam: %w", err)
			}
			if ct.RowsAffected() == 0 {
				return r.lockError(ctx, e.ID)
			}
			if _, err := q.Exec(ctx, `DELETE FROM finding WHERE exam_id = $1`, e.ID); err != nil {
				return fmt.Errorf("clear findings: %w", err)
			}
		}

		for _, f := range e.Findings {
			f.ID = uuid.New()
			f.ExamID = e.ID
			values, err := json.Marshal(f.FieldValues)
			if err != nil {
				return fmt.Errorf("encode field values for %s: %w", f.SystemName, err)
			}
			_, err = q.Exec(ctx, `
				INSERT INTO finding (id, exam_id, system_name, is_normal, severity, field_values, notes)
				VALUES ($1,$2,$3,$4,$5,$6,$7)`,
				f.ID, f.ExamID, f.SystemName, f.IsNormal, f.Severity, values, f.Notes,
			)
			if err != nil {
				return fmt.Errorf("insert finding %s: %w", f.SystemName, err)
			}
		}
		return nil
	})
}

// lockError distinguishes a missing exam from a signed one after a guarded
// update matched no rows.
func (r *repoPG) lockError(ctx context.Context, id uuid.UUID) error {
	var status string
	err := r.conn(ctx).QueryRow(ctx, `SELECT status FROM exam WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrExamNotFound
	}
	if err != nil {
		return err
	}
	if status == StatusSigned {
		return ErrExamSigned
	}
	return fmt.Errorf("exam %s not updated", id)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Exam, error) {
	e, err := scanExam(r.conn(ctx).QueryRow(ctx, `SELECT `+examCols+` FROM exam WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrExamNotFound
	}
	if err != nil {
		return nil, err
	}
	findings, err := r.findings(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Findings = findings
	return e, nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Exam, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM exam`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+examCols+` FROM exam ORDER BY exam_date DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectExams(rows, total)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Exam, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM exam WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+examCols+` FROM exam WHERE patient_id = $1 ORDER BY exam_date DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectExams(rows, total)
}

func (r *repoPG) Sign(ctx context.Context, id uuid.UUID, signerID uuid.UUID, signerName string) error {
	ct, err := r.conn(ctx).Exec(ctx, `
		UPDATE exam SET
			status = 'signed',
			signed_by = $2,
			signed_at = NOW(),
			examiner_id = COALESCE(examiner_id, $2),
			examiner_name = CASE WHEN examiner_name = '' THEN $3 ELSE examiner_name END,
			updated_at = NOW()
		WHERE id = $1 AND status <> 'signed'`,
		id, signerID, signerName,
	)
	if err != nil {
		return fmt.Errorf("sign exam: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return r.lockError(ctx, id)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	return db.WithTx(ctx, r.pool, func(ctx context.Context) error {
		q := r.conn(ctx)
		ct, err := q.Exec(ctx, `DELETE FROM exam WHERE id = $1 AND status <> 'signed'`, id)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return r.lockError(ctx, id)
		}
		_, err = q.Exec(ctx, `DELETE FROM finding WHERE exam_id = $1`, id)
		return err
	})
}

func (r *repoPG) findings(ctx context.Context, examID uuid.UUID) ([]*Finding, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, exam_id, system_name, is_normal, severity, field_values, notes
		FROM finding WHERE exam_id = $1 ORDER BY system_name`, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var findings []*Finding
	for rows.Next() {
		var f Finding
		var raw []byte
		if err := rows.Scan(&f.ID, &f.ExamID, &f.SystemName, &f.IsNormal, &f.Severity, &raw, &f.Notes); err != nil {
			return nil, err
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &f.FieldValues); err != nil {
				return nil, fmt.Errorf("decode field values for %s: %w", f.SystemName, err)
			}
		}
		findings = append(findings, &f)
	}
	return findings, rows.Err()
}

func scanExam(row pgx.Row) (*Exam, error) {
	var e Exam
	err := row.Scan(
		&e.ID, &e.PatientID, &e.ExaminerID, &e.ExaminerName, &e.ExamDate,
		&e.PresentingComplaint, &e.PlanNotes, &e.Status, &e.GeneratedReport,
		&e.SignedBy, &e.SignedAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func collectExams(rows pgx.Rows, total int) ([]*Exam, int, error) {
	var exams []*Exam
	for rows.Next() {
		var e Exam
		err := rows.Scan(
			&e.ID, &e.PatientID, &e.ExaminerID, &e.ExaminerName, &e.ExamDate,
			&e.PresentingComplaint, &e.PlanNotes, &e.Status, &e.GeneratedReport,
			&e.SignedBy, &e.SignedAt, &e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		exams = append(exams, &e)
	}
	return exams, total, rows.Err()
}

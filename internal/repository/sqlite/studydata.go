package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/seongmin/studyhub/internal/apperror"
	"github.com/seongmin/studyhub/internal/model"
	"github.com/seongmin/studyhub/internal/repository"
)

// compile-time check that *DB implements repository.StudyDataRepository
var _ repository.StudyDataRepository = (*DB)(nil)

// CreateStudyData inserts a new study-data document. The id is a generated
// xid string; the question list starts empty and lives in the questions
// JSON column.
func (db *DB) CreateStudyData(ctx context.Context, data *model.StudyData) error {
	data.ID = xid.New().String()
	if data.Questions == nil {
		data.Questions = model.QuestionList{}
	}
	if data.SlideInfo == nil {
		data.SlideInfo = []string{}
	}

	now := time.Now()
	data.CreatedAt = now
	data.UpdatedAt = now

	slideInfo, err := marshalJSON(data.SlideInfo)
	if err != nil {
		return fmt.Errorf("sqlite: encoding slide info: %w", err)
	}
	questions, err := marshalJSON(data.Questions)
	if err != nil {
		return fmt.Errorf("sqlite: encoding questions: %w", err)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO study_data
		   (id, week, date, slide_info, study_group_id, questions, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		data.ID,
		data.Week,
		data.Date,
		slideInfo,
		data.StudyGroupID,
		questions,
		data.CreatedAt,
		data.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting study data: %w", err)
	}

	return nil
}

func scanStudyData(scan func(dest ...any) error) (*model.StudyData, error) {
	var (
		d         model.StudyData
		slideInfo string
		questions string
	)
	err := scan(
		&d.ID, &d.Week, &d.Date, &slideInfo, &d.StudyGroupID, &questions,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := unmarshalJSON(slideInfo, &d.SlideInfo); err != nil {
		return nil, fmt.Errorf("decoding slide info of %s: %w", d.ID, err)
	}
	if err := unmarshalJSON(questions, &d.Questions); err != nil {
		return nil, fmt.Errorf("decoding questions of %s: %w", d.ID, err)
	}

	return &d, nil
}

// GetStudyDataByID retrieves one study-data document with its embedded
// questions.
func (db *DB) GetStudyDataByID(ctx context.Context, id string) (*model.StudyData, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, week, date, slide_info, study_group_id, questions, created_at, updated_at
		 FROM study_data WHERE id = ?`,
		id,
	)

	d, err := scanStudyData(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound(apperror.CodeStudyDataNotFound, "study data", id)
		}
		return nil, fmt.Errorf("sqlite: getting study data %s: %w", id, err)
	}

	return d, nil
}

func (db *DB) listStudyData(ctx context.Context, query string, args ...any) ([]model.StudyData, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing study data: %w", err)
	}
	defer rows.Close()

	list := []model.StudyData{}
	for rows.Next() {
		d, err := scanStudyData(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning study data row: %w", err)
		}
		list = append(list, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating study data: %w", err)
	}

	return list, nil
}

// ListStudyData returns every study-data document, oldest first.
func (db *DB) ListStudyData(ctx context.Context) ([]model.StudyData, error) {
	return db.listStudyData(ctx,
		`SELECT id, week, date, slide_info, study_group_id, questions, created_at, updated_at
		 FROM study_data ORDER BY created_at`,
	)
}

// ListStudyDataByGroup returns the study-data documents of one study
// group, ordered by week.
func (db *DB) ListStudyDataByGroup(ctx context.Context, studyGroupID string) ([]model.StudyData, error) {
	return db.listStudyData(ctx,
		`SELECT id, week, date, slide_info, study_group_id, questions, created_at, updated_at
		 FROM study_data WHERE study_group_id = ? ORDER BY week`,
		studyGroupID,
	)
}

// UpdateStudyData writes the full document back — scalar fields and the
// embedded question list in one statement, so a document is never half
// updated.
func (db *DB) UpdateStudyData(ctx context.Context, data *model.StudyData) error {
	data.UpdatedAt = time.Now()

	slideInfo, err := marshalJSON(data.SlideInfo)
	if err != nil {
		return fmt.Errorf("sqlite: encoding slide info: %w", err)
	}
	questions, err := marshalJSON(data.Questions)
	if err != nil {
		return fmt.Errorf("sqlite: encoding questions: %w", err)
	}

	result, err := db.conn.ExecContext(ctx,
		`UPDATE study_data
		 SET week = ?, date = ?, slide_info = ?, study_group_id = ?, questions = ?, updated_at = ?
		 WHERE id = ?`,
		data.Week,
		data.Date,
		slideInfo,
		data.StudyGroupID,
		questions,
		data.UpdatedAt,
		data.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating study data %s: %w", data.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound(apperror.CodeStudyDataNotFound, "study data", data.ID)
	}

	return nil
}

// DeleteStudyData removes a study-data document and, with it, every
// embedded question.
func (db *DB) DeleteStudyData(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM study_data WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting study data %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound(apperror.CodeStudyDataNotFound, "study data", id)
	}

	return nil
}

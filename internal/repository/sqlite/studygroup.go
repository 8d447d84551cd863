package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/seongmin/studyhub/internal/apperror"
	"github.com/seongmin/studyhub/internal/model"
	"github.com/seongmin/studyhub/internal/repository"
)

// compile-time check that *DB implements repository.StudyGroupRepository
var _ repository.StudyGroupRepository = (*DB)(nil)

// CreateStudyGroup inserts a new study group, assigning a fresh UUID and
// an empty member list. The member list is stored as a JSON array in the
// people column — it belongs to the group document, not to its own table.
func (db *DB) CreateStudyGroup(ctx context.Context, group *model.StudyGroup) error {
	group.ID = uuid.NewString()
	if group.People == nil {
		group.People = []string{}
	}

	now := time.Now()
	group.CreatedAt = now
	group.UpdatedAt = now

	people, err := marshalJSON(group.People)
	if err != nil {
		return fmt.Errorf("sqlite: encoding people list: %w", err)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO study_groups
		   (id, title, category, password, salt, owner, max_people, is_premium, people, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		group.ID,
		group.Title,
		group.Category,
		group.Password,
		group.Salt,
		group.Owner,
		group.MaxPeople,
		group.IsPremium,
		people,
		group.CreatedAt,
		group.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting study group: %w", err)
	}

	return nil
}

// GetStudyGroupByID retrieves a study group by id.
func (db *DB) GetStudyGroupByID(ctx context.Context, id string) (*model.StudyGroup, error) {
	var (
		g      model.StudyGroup
		people string
	)
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, category, password, salt, owner, max_people, is_premium, people, created_at, updated_at
		 FROM study_groups WHERE id = ?`,
		id,
	).Scan(
		&g.ID, &g.Title, &g.Category, &g.Password, &g.Salt, &g.Owner,
		&g.MaxPeople, &g.IsPremium, &people, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound(apperror.CodeStudyGroupNotFound, "study group", id)
		}
		return nil, fmt.Errorf("sqlite: getting study group %s: %w", id, err)
	}

	if err := unmarshalJSON(people, &g.People); err != nil {
		return nil, fmt.Errorf("sqlite: decoding people list of group %s: %w", id, err)
	}

	return &g, nil
}

// ListStudyGroups returns every study group, oldest first.
func (db *DB) ListStudyGroups(ctx context.Context) ([]model.StudyGroup, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, category, password, salt, owner, max_people, is_premium, people, created_at, updated_at
		 FROM study_groups ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing study groups: %w", err)
	}
	defer rows.Close()

	groups := []model.StudyGroup{}
	for rows.Next() {
		var (
			g      model.StudyGroup
			people string
		)
		if err := rows.Scan(
			&g.ID, &g.Title, &g.Category, &g.Password, &g.Salt, &g.Owner,
			&g.MaxPeople, &g.IsPremium, &people, &g.CreatedAt, &g.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning study group row: %w", err)
		}
		if err := unmarshalJSON(people, &g.People); err != nil {
			return nil, fmt.Errorf("sqlite: decoding people list of group %s: %w", g.ID, err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating study groups: %w", err)
	}

	return groups, nil
}

// UpdateStudyGroup writes the full group document back, member list
// included.
func (db *DB) UpdateStudyGroup(ctx context.Context, group *model.StudyGroup) error {
	group.UpdatedAt = time.Now()

	people, err := marshalJSON(group.People)
	if err != nil {
		return fmt.Errorf("sqlite: encoding people list: %w", err)
	}

	result, err := db.conn.ExecContext(ctx,
		`UPDATE study_groups
		 SET title = ?, category = ?, password = ?, salt = ?, owner = ?,
		     max_people = ?, is_premium = ?, people = ?, updated_at = ?
		 WHERE id = ?`,
		group.Title,
		group.Category,
		group.Password,
		group.Salt,
		group.Owner,
		group.MaxPeople,
		group.IsPremium,
		people,
		group.UpdatedAt,
		group.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating study group %s: %w", group.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound(apperror.CodeStudyGroupNotFound, "study group", group.ID)
	}

	return nil
}

// DeleteStudyGroup removes a study group by id.
func (db *DB) DeleteStudyGroup(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM study_groups WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting study group %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound(apperror.CodeStudyGroupNotFound, "study group", id)
	}

	return nil
}

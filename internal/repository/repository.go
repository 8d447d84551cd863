// Package repository declares the storage interfaces the service layer
// depends on. The concrete implementation lives in repository/sqlite;
// services only ever see these interfaces.
//
// Method names carry the entity (CreateUser, not Create) because a single
// storage handle implements all three interfaces.
package repository

import (
	"context"

	"github.com/seongmin/studyhub/internal/model"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	// GetUserByEmail backs the duplicate-email check on user creation.
	// Returns a not-found error when no user has the email.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id string) error
}

type StudyGroupRepository interface {
	CreateStudyGroup(ctx context.Context, group *model.StudyGroup) error
	GetStudyGroupByID(ctx context.Context, id string) (*model.StudyGroup, error)
	ListStudyGroups(ctx context.Context) ([]model.StudyGroup, error)
	UpdateStudyGroup(ctx context.Context, group *model.StudyGroup) error
	DeleteStudyGroup(ctx context.Context, id string) error
}

// StudyDataRepository persists study-data documents. The embedded question
// list is part of the document: UpdateStudyData writes the whole document
// back, questions included. There is no per-question storage operation —
// two concurrent read-modify-write cycles on the same document can lose an
// update, which this layer does not guard against.
type StudyDataRepository interface {
	CreateStudyData(ctx context.Context, data *model.StudyData) error
	GetStudyDataByID(ctx context.Context, id string) (*model.StudyData, error)
	ListStudyData(ctx context.Context) ([]model.StudyData, error)
	ListStudyDataByGroup(ctx context.Context, studyGroupID string) ([]model.StudyData, error)
	UpdateStudyData(ctx context.Context, data *model.StudyData) error
	DeleteStudyData(ctx context.Context, id string) error
}

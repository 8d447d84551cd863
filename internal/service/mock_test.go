package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/seongmin/studyhub/internal/apperror"
	"github.com/seongmin/studyhub/internal/model"
)

// Hand-written in-memory mocks for the repository interfaces. They store
// copies so a test can't accidentally observe its own aliased pointer, and
// they simulate the repository contract exactly: not-found errors carry
// the same codes the sqlite implementation uses.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// ------------------------------------------------------------------ users

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *model.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound(apperror.CodeUserNotFound, "user", id)
	}
	result := *u
	return &result, nil
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound(apperror.CodeUserNotFound, "user", email)
}

func (m *mockUserRepo) ListUsers(_ context.Context) ([]model.User, error) {
	result := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, nil
}

func (m *mockUserRepo) UpdateUser(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return apperror.NotFound(apperror.CodeUserNotFound, "user", user.ID)
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) DeleteUser(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return apperror.NotFound(apperror.CodeUserNotFound, "user", id)
	}
	delete(m.users, id)
	return nil
}

// ----------------------------------------------------------- study groups

type mockGroupRepo struct {
	groups map[string]*model.StudyGroup
	nextID int
}

func newMockGroupRepo() *mockGroupRepo {
	return &mockGroupRepo{groups: make(map[string]*model.StudyGroup)}
}

func (m *mockGroupRepo) CreateStudyGroup(_ context.Context, group *model.StudyGroup) error {
	m.nextID++
	group.ID = fmt.Sprintf("group-%d", m.nextID)
	if group.People == nil {
		group.People = []string{}
	}
	now := time.Now()
	group.CreatedAt = now
	group.UpdatedAt = now
	stored := *group
	m.groups[group.ID] = &stored
	return nil
}

func (m *mockGroupRepo) GetStudyGroupByID(_ context.Context, id string) (*model.StudyGroup, error) {
	g, ok := m.groups[id]
	if !ok {
		return nil, apperror.NotFound(apperror.CodeStudyGroupNotFound, "study group", id)
	}
	result := *g
	result.People = append([]string{}, g.People...)
	return &result, nil
}

func (m *mockGroupRepo) ListStudyGroups(_ context.Context) ([]model.StudyGroup, error) {
	result := make([]model.StudyGroup, 0, len(m.groups))
	for _, g := range m.groups {
		result = append(result, *g)
	}
	return result, nil
}

func (m *mockGroupRepo) UpdateStudyGroup(_ context.Context, group *model.StudyGroup) error {
	if _, ok := m.groups[group.ID]; !ok {
		return apperror.NotFound(apperror.CodeStudyGroupNotFound, "study group", group.ID)
	}
	stored := *group
	stored.People = append([]string{}, group.People...)
	m.groups[group.ID] = &stored
	return nil
}

func (m *mockGroupRepo) DeleteStudyGroup(_ context.Context, id string) error {
	if _, ok := m.groups[id]; !ok {
		return apperror.NotFound(apperror.CodeStudyGroupNotFound, "study group", id)
	}
	delete(m.groups, id)
	return nil
}

// ------------------------------------------------------------- study data

type mockDataRepo struct {
	data        map[string]*model.StudyData
	nextID      int
	updateCalls int // how many times UpdateStudyData ran, to assert "no write happened"
}

func newMockDataRepo() *mockDataRepo {
	return &mockDataRepo{data: make(map[string]*model.StudyData)}
}

func copyStudyData(d *model.StudyData) *model.StudyData {
	result := *d
	result.SlideInfo = append([]string{}, d.SlideInfo...)
	result.Questions = append(model.QuestionList{}, d.Questions...)
	return &result
}

func (m *mockDataRepo) CreateStudyData(_ context.Context, data *model.StudyData) error {
	m.nextID++
	data.ID = fmt.Sprintf("sd-%d", m.nextID)
	if data.Questions == nil {
		data.Questions = model.QuestionList{}
	}
	now := time.Now()
	data.CreatedAt = now
	data.UpdatedAt = now
	m.data[data.ID] = copyStudyData(data)
	return nil
}

func (m *mockDataRepo) GetStudyDataByID(_ context.Context, id string) (*model.StudyData, error) {
	d, ok := m.data[id]
	if !ok {
		return nil, apperror.NotFound(apperror.CodeStudyDataNotFound, "study data", id)
	}
	return copyStudyData(d), nil
}

func (m *mockDataRepo) ListStudyData(_ context.Context) ([]model.StudyData, error) {
	result := make([]model.StudyData, 0, len(m.data))
	for _, d := range m.data {
		result = append(result, *copyStudyData(d))
	}
	return result, nil
}

func (m *mockDataRepo) ListStudyDataByGroup(_ context.Context, studyGroupID string) ([]model.StudyData, error) {
	result := []model.StudyData{}
	for _, d := range m.data {
		if d.StudyGroupID == studyGroupID {
			result = append(result, *copyStudyData(d))
		}
	}
	return result, nil
}

func (m *mockDataRepo) UpdateStudyData(_ context.Context, data *model.StudyData) error {
	if _, ok := m.data[data.ID]; !ok {
		return apperror.NotFound(apperror.CodeStudyDataNotFound, "study data", data.ID)
	}
	m.updateCalls++
	m.data[data.ID] = copyStudyData(data)
	return nil
}

func (m *mockDataRepo) DeleteStudyData(_ context.Context, id string) error {
	if _, ok := m.data[id]; !ok {
		return apperror.NotFound(apperror.CodeStudyDataNotFound, "study data", id)
	}
	delete(m.data, id)
	return nil
}

// ---------------------------------------------------------------- helpers

func newTestUserService(t *testing.T) (*UserService, *mockUserRepo) {
	t.Helper()
	repo := newMockUserRepo()
	return NewUserService(repo, testLogger()), repo
}

func newTestGroupService(t *testing.T) (*StudyGroupService, *mockGroupRepo) {
	t.Helper()
	repo := newMockGroupRepo()
	return NewStudyGroupService(repo, testLogger()), repo
}

func newTestDataService(t *testing.T) (*StudyDataService, *mockDataRepo, *mockGroupRepo) {
	t.Helper()
	repo := newMockDataRepo()
	groups := newMockGroupRepo()
	return NewStudyDataService(repo, groups, testLogger()), repo, groups
}

func newTestQuestionService(t *testing.T) (*QuestionService, *mockDataRepo) {
	t.Helper()
	repo := newMockDataRepo()
	return NewQuestionService(repo, testLogger()), repo
}

package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/xid"
	"github.com/seongmin/studyhub/internal/apperror"
	"github.com/seongmin/studyhub/internal/model"
)

func createTestStudyData(t *testing.T, db *DB, groupID string, week int) *model.StudyData {
	t.Helper()
	data := &model.StudyData{
		Week:         week,
		Date:         time.Date(2021, 8, 14, 0, 0, 0, 0, time.UTC),
		SlideInfo:    []string{"intro", "graphs"},
		StudyGroupID: groupID,
	}
	if err := db.CreateStudyData(context.Background(), data); err != nil {
		t.Fatalf("failed to create test study data: %v", err)
	}
	return data
}

func TestCreateStudyData(t *testing.T) {
	db := newTestDB(t)

	data := createTestStudyData(t, db, "group-1", 3)

	if data.ID == "" {
		t.Error("CreateStudyData() did not assign an ID")
	}
	if data.Questions == nil {
		t.Error("Questions = nil, want empty list")
	}

	found, err := db.GetStudyDataByID(context.Background(), data.ID)
	if err != nil {
		t.Fatalf("GetStudyDataByID() error = %v", err)
	}
	if found.Week != 3 {
		t.Errorf("Week = %d, want 3", found.Week)
	}
	if len(found.SlideInfo) != 2 || found.SlideInfo[0] != "intro" {
		t.Errorf("SlideInfo = %v, want [intro graphs]", found.SlideInfo)
	}
	if len(found.Questions) != 0 {
		t.Errorf("len(Questions) = %d, want 0", len(found.Questions))
	}
}

func TestGetStudyDataByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetStudyDataByID(context.Background(), "ghost")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

// TestQuestionsRoundTrip persists a document with embedded questions and
// reads it back, checking the list keeps its order and counters.
func TestQuestionsRoundTrip(t *testing.T) {
	db := newTestDB(t)
	data := createTestStudyData(t, db, "group-1", 1)

	data.Questions = model.QuestionList{
		{ID: xid.New().String(), User: "kakao1", Title: "first", Content: "why?", Like: 2, SlideOrder: 1},
		{ID: xid.New().String(), User: "kakao2", Title: "second", Content: "how?", Like: 0, SlideOrder: 4},
	}
	if err := db.UpdateStudyData(context.Background(), data); err != nil {
		t.Fatalf("UpdateStudyData() error = %v", err)
	}

	found, err := db.GetStudyDataByID(context.Background(), data.ID)
	if err != nil {
		t.Fatalf("GetStudyDataByID() error = %v", err)
	}
	if len(found.Questions) != 2 {
		t.Fatalf("len(Questions) = %d, want 2", len(found.Questions))
	}
	if found.Questions[0].Title != "first" || found.Questions[1].Title != "second" {
		t.Errorf("question order not preserved: %v, %v",
			found.Questions[0].Title, found.Questions[1].Title)
	}
	if found.Questions[0].Like != 2 {
		t.Errorf("Like = %d, want 2", found.Questions[0].Like)
	}
}

func TestListStudyDataByGroup(t *testing.T) {
	db := newTestDB(t)
	createTestStudyData(t, db, "group-a", 2)
	createTestStudyData(t, db, "group-a", 1)
	createTestStudyData(t, db, "group-b", 1)

	list, err := db.ListStudyDataByGroup(context.Background(), "group-a")
	if err != nil {
		t.Fatalf("ListStudyDataByGroup() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len(list) = %d, want 2", len(list))
	}
	// Ordered by week.
	if list[0].Week != 1 || list[1].Week != 2 {
		t.Errorf("weeks = [%d %d], want [1 2]", list[0].Week, list[1].Week)
	}
}

func TestListStudyData(t *testing.T) {
	db := newTestDB(t)
	createTestStudyData(t, db, "group-a", 1)
	createTestStudyData(t, db, "group-b", 1)

	list, err := db.ListStudyData(context.Background())
	if err != nil {
		t.Fatalf("ListStudyData() error = %v", err)
	}
	if len(list) != 2 {
		t.Errorf("len(list) = %d, want 2", len(list))
	}
}

func TestUpdateStudyData_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.UpdateStudyData(context.Background(), &model.StudyData{ID: "ghost"})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestDeleteStudyData(t *testing.T) {
	db := newTestDB(t)
	data := createTestStudyData(t, db, "group-1", 1)

	if err := db.DeleteStudyData(context.Background(), data.ID); err != nil {
		t.Fatalf("DeleteStudyData() error = %v", err)
	}

	_, err := db.GetStudyDataByID(context.Background(), data.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("after delete: error = %v, want ErrNotFound", err)
	}
}

func TestDeleteStudyData_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.DeleteStudyData(context.Background(), "ghost")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

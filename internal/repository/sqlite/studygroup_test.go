package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/seongmin/studyhub/internal/apperror"
	"github.com/seongmin/studyhub/internal/model"
)

func createTestGroup(t *testing.T, db *DB, title string) *model.StudyGroup {
	t.Helper()
	group := &model.StudyGroup{
		Title:     title,
		Category:  "algorithms",
		Password:  "opaque-hash",
		Salt:      "opaque-salt",
		Owner:     "kakao12345",
		MaxPeople: 8,
	}
	if err := db.CreateStudyGroup(context.Background(), group); err != nil {
		t.Fatalf("failed to create test group: %v", err)
	}
	return group
}

func TestCreateStudyGroup(t *testing.T) {
	db := newTestDB(t)

	group := createTestGroup(t, db, "weekly algo")

	if group.ID == "" {
		t.Error("CreateStudyGroup() did not assign an ID")
	}
	if group.People == nil {
		t.Error("People = nil, want empty slice")
	}

	found, err := db.GetStudyGroupByID(context.Background(), group.ID)
	if err != nil {
		t.Fatalf("GetStudyGroupByID() error = %v", err)
	}
	if found.Title != "weekly algo" {
		t.Errorf("Title = %q, want %q", found.Title, "weekly algo")
	}
	if len(found.People) != 0 {
		t.Errorf("len(People) = %d, want 0", len(found.People))
	}
}

func TestGetStudyGroupByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetStudyGroupByID(context.Background(), "ghost")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestListStudyGroups(t *testing.T) {
	db := newTestDB(t)
	createTestGroup(t, db, "one")
	createTestGroup(t, db, "two")

	groups, err := db.ListStudyGroups(context.Background())
	if err != nil {
		t.Fatalf("ListStudyGroups() error = %v", err)
	}
	if len(groups) != 2 {
		t.Errorf("len(groups) = %d, want 2", len(groups))
	}
}

// TestUpdateStudyGroup_PeopleRoundTrip checks the member list survives a
// write/read cycle in join order.
func TestUpdateStudyGroup_PeopleRoundTrip(t *testing.T) {
	db := newTestDB(t)
	group := createTestGroup(t, db, "with members")

	group.People = []string{"kakao1", "google2", "kakao3"}
	if err := db.UpdateStudyGroup(context.Background(), group); err != nil {
		t.Fatalf("UpdateStudyGroup() error = %v", err)
	}

	found, err := db.GetStudyGroupByID(context.Background(), group.ID)
	if err != nil {
		t.Fatalf("GetStudyGroupByID() error = %v", err)
	}
	if len(found.People) != 3 {
		t.Fatalf("len(People) = %d, want 3", len(found.People))
	}
	for i, want := range []string{"kakao1", "google2", "kakao3"} {
		if found.People[i] != want {
			t.Errorf("People[%d] = %q, want %q", i, found.People[i], want)
		}
	}
}

func TestUpdateStudyGroup_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.UpdateStudyGroup(context.Background(), &model.StudyGroup{ID: "ghost"})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestDeleteStudyGroup(t *testing.T) {
	db := newTestDB(t)
	group := createTestGroup(t, db, "doomed")

	if err := db.DeleteStudyGroup(context.Background(), group.ID); err != nil {
		t.Fatalf("DeleteStudyGroup() error = %v", err)
	}

	_, err := db.GetStudyGroupByID(context.Background(), group.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("after delete: error = %v, want ErrNotFound", err)
	}
}

func TestDeleteStudyGroup_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.DeleteStudyGroup(context.Background(), "ghost")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

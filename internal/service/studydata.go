package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/seongmin/studyhub/internal/apperror"
	"github.com/seongmin/studyhub/internal/model"
	"github.com/seongmin/studyhub/internal/repository"
)

// StudyDataInput carries the writable fields of a study-data document.
type StudyDataInput struct {
	Week         int
	Date         time.Time
	SlideInfo    []string
	StudyGroupID string
}

// StudyDataService handles business logic for study-session data. It
// holds both the study-data repository and the study-group repository:
// every create and update verifies the referenced group exists first, so
// a study data can never point at a group that was never created.
type StudyDataService struct {
	repo   repository.StudyDataRepository
	groups repository.StudyGroupRepository
	logger *slog.Logger
}

func NewStudyDataService(repo repository.StudyDataRepository, groups repository.StudyGroupRepository, logger *slog.Logger) *StudyDataService {
	return &StudyDataService{
		repo:   repo,
		groups: groups,
		logger: logger,
	}
}

// checkGroupExists is the foreign-key check done by lookup. A missing
// group surfaces as STUDY_GROUP_NOT_FOUND before anything is written.
func (s *StudyDataService) checkGroupExists(ctx context.Context, studyGroupID string) error {
	if strings.TrimSpace(studyGroupID) == "" {
		return apperror.ValidationFailed("studyGroupId", "studyGroupId is required")
	}
	_, err := s.groups.GetStudyGroupByID(ctx, studyGroupID)
	return err
}

// Create stores a new study-data document with an empty question list,
// after verifying the referenced study group exists.
func (s *StudyDataService) Create(ctx context.Context, in StudyDataInput) (*model.StudyData, error) {
	if in.Week <= 0 {
		return nil, apperror.ValidationFailed("week", "week must be positive")
	}
	if err := s.checkGroupExists(ctx, in.StudyGroupID); err != nil {
		return nil, err
	}

	data := &model.StudyData{
		Week:         in.Week,
		Date:         in.Date,
		SlideInfo:    in.SlideInfo,
		StudyGroupID: in.StudyGroupID,
		Questions:    model.QuestionList{},
	}

	if err := s.repo.CreateStudyData(ctx, data); err != nil {
		s.logger.Error("failed to create study data",
			slog.String("studyGroupId", in.StudyGroupID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating study data: %w", err)
	}

	s.logger.Info("study data created",
		slog.String("id", data.ID),
		slog.String("studyGroupId", data.StudyGroupID),
		slog.Int("week", data.Week),
	)
	return data, nil
}

// GetByID retrieves one study-data document.
func (s *StudyDataService) GetByID(ctx context.Context, id string) (*model.StudyData, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "study data id is required")
	}
	return s.repo.GetStudyDataByID(ctx, id)
}

// List returns all study-data documents.
func (s *StudyDataService) List(ctx context.Context) ([]model.StudyData, error) {
	list, err := s.repo.ListStudyData(ctx)
	if err != nil {
		s.logger.Error("failed to list study data", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing study data: %w", err)
	}
	return list, nil
}

// ListByGroup returns the study-data documents belonging to one study
// group. An unknown group id yields an empty list, not an error — the
// endpoint has always answered that way.
func (s *StudyDataService) ListByGroup(ctx context.Context, studyGroupID string) ([]model.StudyData, error) {
	studyGroupID = strings.TrimSpace(studyGroupID)
	if studyGroupID == "" {
		return nil, apperror.ValidationFailed("studyGroupId", "study group id is required")
	}

	list, err := s.repo.ListStudyDataByGroup(ctx, studyGroupID)
	if err != nil {
		s.logger.Error("failed to list study data by group",
			slog.String("studyGroupId", studyGroupID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing study data by group: %w", err)
	}
	return list, nil
}

// Update replaces the scalar fields of a study-data document. The
// embedded question list is preserved as-is: editing session metadata
// must never drop members' questions.
func (s *StudyDataService) Update(ctx context.Context, id string, in StudyDataInput) (*model.StudyData, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "study data id is required")
	}
	if in.Week <= 0 {
		return nil, apperror.ValidationFailed("week", "week must be positive")
	}
	if err := s.checkGroupExists(ctx, in.StudyGroupID); err != nil {
		return nil, err
	}

	data, err := s.repo.GetStudyDataByID(ctx, id)
	if err != nil {
		return nil, err
	}

	data.Week = in.Week
	data.Date = in.Date
	data.SlideInfo = in.SlideInfo
	data.StudyGroupID = in.StudyGroupID

	if err := s.repo.UpdateStudyData(ctx, data); err != nil {
		s.logger.Error("failed to update study data",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating study data: %w", err)
	}

	s.logger.Info("study data updated", slog.String("id", id))
	return data, nil
}

// Delete removes a study-data document (questions included) and returns
// the deleted record.
func (s *StudyDataService) Delete(ctx context.Context, id string) (*model.StudyData, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "study data id is required")
	}

	data, err := s.repo.GetStudyDataByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteStudyData(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info("study data deleted", slog.String("id", id))
	return data, nil
}

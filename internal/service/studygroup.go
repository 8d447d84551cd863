package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/seongmin/studyhub/internal/apperror"
	"github.com/seongmin/studyhub/internal/model"
	"github.com/seongmin/studyhub/internal/repository"
)

// StudyGroupInput carries the writable fields of a study group. Password
// and Salt arrive pre-hashed from the sign-up flow; this service stores
// them opaque.
type StudyGroupInput struct {
	Title     string
	Category  string
	Password  string
	Salt      string
	Owner     string
	MaxPeople int
	IsPremium bool
}

// StudyGroupService handles business logic for study groups, including
// the member list.
type StudyGroupService struct {
	repo   repository.StudyGroupRepository
	logger *slog.Logger
}

func NewStudyGroupService(repo repository.StudyGroupRepository, logger *slog.Logger) *StudyGroupService {
	return &StudyGroupService{
		repo:   repo,
		logger: logger,
	}
}

// Create makes a new study group with an empty member list.
func (s *StudyGroupService) Create(ctx context.Context, in StudyGroupInput) (*model.StudyGroup, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if in.MaxPeople <= 0 {
		return nil, apperror.ValidationFailed("maxPeople", "maxPeople must be positive")
	}

	group := &model.StudyGroup{
		Title:     in.Title,
		Category:  in.Category,
		Password:  in.Password,
		Salt:      in.Salt,
		Owner:     in.Owner,
		MaxPeople: in.MaxPeople,
		IsPremium: in.IsPremium,
		People:    []string{},
	}

	if err := s.repo.CreateStudyGroup(ctx, group); err != nil {
		s.logger.Error("failed to create study group",
			slog.String("title", in.Title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating study group: %w", err)
	}

	s.logger.Info("study group created",
		slog.String("id", group.ID),
		slog.String("title", group.Title),
	)
	return group, nil
}

// GetByID retrieves a study group by id.
func (s *StudyGroupService) GetByID(ctx context.Context, id string) (*model.StudyGroup, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "study group id is required")
	}
	return s.repo.GetStudyGroupByID(ctx, id)
}

// List returns all study groups.
func (s *StudyGroupService) List(ctx context.Context) ([]model.StudyGroup, error) {
	groups, err := s.repo.ListStudyGroups(ctx)
	if err != nil {
		s.logger.Error("failed to list study groups", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing study groups: %w", err)
	}
	return groups, nil
}

// Update replaces the group's writable fields. The member list is not
// touched here — it changes only through AddMember and RemoveMember.
func (s *StudyGroupService) Update(ctx context.Context, id string, in StudyGroupInput) (*model.StudyGroup, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "study group id is required")
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if in.MaxPeople <= 0 {
		return nil, apperror.ValidationFailed("maxPeople", "maxPeople must be positive")
	}

	group, err := s.repo.GetStudyGroupByID(ctx, id)
	if err != nil {
		return nil, err
	}

	group.Title = in.Title
	group.Category = in.Category
	group.Password = in.Password
	group.Salt = in.Salt
	group.Owner = in.Owner
	group.MaxPeople = in.MaxPeople
	group.IsPremium = in.IsPremium

	if err := s.repo.UpdateStudyGroup(ctx, group); err != nil {
		s.logger.Error("failed to update study group",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating study group: %w", err)
	}

	s.logger.Info("study group updated", slog.String("id", id))
	return group, nil
}

// AddMember appends a user id to the group's member list. Join order is
// insertion order. The same id can appear twice — membership is a plain
// list, and the client is expected to not re-join.
func (s *StudyGroupService) AddMember(ctx context.Context, groupID, userID string) (*model.StudyGroup, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperror.ValidationFailed("userId", "userId is required")
	}

	group, err := s.repo.GetStudyGroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	group.People = append(group.People, userID)

	if err := s.repo.UpdateStudyGroup(ctx, group); err != nil {
		s.logger.Error("failed to add member",
			slog.String("groupId", groupID),
			slog.String("userId", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("adding member: %w", err)
	}

	s.logger.Info("member added",
		slog.String("groupId", groupID),
		slog.String("userId", userID),
	)
	return group, nil
}

// RemoveMember removes the first occurrence of userID from the member
// list, keeping the order of everyone else. A userID that is not in the
// list is an error — nothing is removed.
func (s *StudyGroupService) RemoveMember(ctx context.Context, groupID, userID string) (*model.StudyGroup, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperror.ValidationFailed("userId", "userId is required")
	}

	group, err := s.repo.GetStudyGroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, p := range group.People {
		if p == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperror.NotFound(apperror.CodeStudyMemberNotFound, "study member", userID)
	}

	group.People = append(group.People[:idx], group.People[idx+1:]...)

	if err := s.repo.UpdateStudyGroup(ctx, group); err != nil {
		s.logger.Error("failed to remove member",
			slog.String("groupId", groupID),
			slog.String("userId", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("removing member: %w", err)
	}

	s.logger.Info("member removed",
		slog.String("groupId", groupID),
		slog.String("userId", userID),
	)
	return group, nil
}

// Delete removes a study group and returns the deleted record.
func (s *StudyGroupService) Delete(ctx context.Context, id string) (*model.StudyGroup, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "study group id is required")
	}

	group, err := s.repo.GetStudyGroupByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteStudyGroup(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info("study group deleted", slog.String("id", id))
	return group, nil
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/seongmin/studyhub/internal/apperror"
	"github.com/seongmin/studyhub/internal/model"
	"github.com/seongmin/studyhub/internal/repository"
)

// QuestionInput carries the fields of a new question. The id and the like
// counter are never client-supplied: the id is generated here and likes
// start at zero.
type QuestionInput struct {
	User          string
	Title         string
	Content       string
	SlideOrder    int
	SlideImageURL string
}

// QuestionService orchestrates mutations of the question list embedded in
// a study-data document. Every operation is a read-modify-write cycle:
// load the parent document, apply the pure list operation from the model
// package, write the whole document back.
//
// There is no compare-and-swap on the document, so two concurrent likes on
// the same study data race and one increment can be lost. That matches the
// storage model this service was built on; callers needing exact counts
// would have to serialize upstream.
type QuestionService struct {
	repo   repository.StudyDataRepository
	logger *slog.Logger
}

func NewQuestionService(repo repository.StudyDataRepository, logger *slog.Logger) *QuestionService {
	return &QuestionService{
		repo:   repo,
		logger: logger,
	}
}

// ListByStudyData returns the questions of one study-data document in
// their embedded order.
func (s *QuestionService) ListByStudyData(ctx context.Context, studyDataID string) (model.QuestionList, error) {
	studyDataID = strings.TrimSpace(studyDataID)
	if studyDataID == "" {
		return nil, apperror.ValidationFailed("studyDataId", "study data id is required")
	}

	data, err := s.repo.GetStudyDataByID(ctx, studyDataID)
	if err != nil {
		return nil, err
	}
	return data.Questions, nil
}

// Create appends a new question to the study data's question list. The
// question gets a generated xid and a like count of zero; the parent
// document must exist.
func (s *QuestionService) Create(ctx context.Context, studyDataID string, in QuestionInput) (*model.Question, error) {
	studyDataID = strings.TrimSpace(studyDataID)
	if studyDataID == "" {
		return nil, apperror.ValidationFailed("studyDataId", "study data id is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}

	data, err := s.repo.GetStudyDataByID(ctx, studyDataID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	question := model.Question{
		ID:            xid.New().String(),
		User:          in.User,
		Title:         in.Title,
		Content:       in.Content,
		SlideOrder:    in.SlideOrder,
		SlideImageURL: in.SlideImageURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	data.Questions = data.Questions.Append(question)

	if err := s.repo.UpdateStudyData(ctx, data); err != nil {
		s.logger.Error("failed to append question",
			slog.String("studyDataId", studyDataID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("appending question: %w", err)
	}

	s.logger.Info("question created",
		slog.String("id", question.ID),
		slog.String("studyDataId", studyDataID),
	)
	return &question, nil
}

// mutate runs op against the question list of the given study data,
// persists the result, and returns the post-mutation question. Domain
// errors from op (not found, like underflow) pass through untouched and
// nothing is written.
func (s *QuestionService) mutate(ctx context.Context, studyDataID, questionID string, op func(model.QuestionList) (model.QuestionList, error)) (*model.Question, error) {
	studyDataID = strings.TrimSpace(studyDataID)
	if studyDataID == "" {
		return nil, apperror.ValidationFailed("studyDataId", "study data id is required")
	}
	questionID = strings.TrimSpace(questionID)
	if questionID == "" {
		return nil, apperror.ValidationFailed("questionId", "question id is required")
	}

	data, err := s.repo.GetStudyDataByID(ctx, studyDataID)
	if err != nil {
		return nil, err
	}

	updated, err := op(data.Questions)
	if err != nil {
		return nil, err
	}
	data.Questions = updated

	if err := s.repo.UpdateStudyData(ctx, data); err != nil {
		s.logger.Error("failed to persist question list",
			slog.String("studyDataId", studyDataID),
			slog.String("questionId", questionID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("persisting question list: %w", err)
	}

	question, err := updated.FindByID(questionID)
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// Update replaces the editable fields of one question.
func (s *QuestionService) Update(ctx context.Context, studyDataID, questionID string, upd model.QuestionUpdate) (*model.Question, error) {
	if strings.TrimSpace(upd.Title) == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	q, err := s.mutate(ctx, studyDataID, questionID, func(l model.QuestionList) (model.QuestionList, error) {
		return l.UpdateByID(questionID, upd)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("question updated",
		slog.String("studyDataId", studyDataID),
		slog.String("questionId", questionID),
	)
	return q, nil
}

// Like increments the question's like counter in place; the list order
// does not change.
func (s *QuestionService) Like(ctx context.Context, studyDataID, questionID string) (*model.Question, error) {
	q, err := s.mutate(ctx, studyDataID, questionID, func(l model.QuestionList) (model.QuestionList, error) {
		return l.IncrementLike(questionID)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("question liked",
		slog.String("studyDataId", studyDataID),
		slog.String("questionId", questionID),
	)
	return q, nil
}

// Unlike decrements the question's like counter. At zero the decrement is
// rejected with a like-underflow error and nothing is persisted.
func (s *QuestionService) Unlike(ctx context.Context, studyDataID, questionID string) (*model.Question, error) {
	q, err := s.mutate(ctx, studyDataID, questionID, func(l model.QuestionList) (model.QuestionList, error) {
		return l.DecrementLike(questionID)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("question unliked",
		slog.String("studyDataId", studyDataID),
		slog.String("questionId", questionID),
	)
	return q, nil
}

// Delete removes one question from the study data and returns the removed
// question.
func (s *QuestionService) Delete(ctx context.Context, studyDataID, questionID string) (*model.Question, error) {
	studyDataID = strings.TrimSpace(studyDataID)
	if studyDataID == "" {
		return nil, apperror.ValidationFailed("studyDataId", "study data id is required")
	}
	questionID = strings.TrimSpace(questionID)
	if questionID == "" {
		return nil, apperror.ValidationFailed("questionId", "question id is required")
	}

	data, err := s.repo.GetStudyDataByID(ctx, studyDataID)
	if err != nil {
		return nil, err
	}

	// Grab the question before removal so the response can echo it.
	removed, err := data.Questions.FindByID(questionID)
	if err != nil {
		return nil, err
	}

	updated, err := data.Questions.RemoveByID(questionID)
	if err != nil {
		return nil, err
	}
	data.Questions = updated

	if err := s.repo.UpdateStudyData(ctx, data); err != nil {
		s.logger.Error("failed to remove question",
			slog.String("studyDataId", studyDataID),
			slog.String("questionId", questionID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("removing question: %w", err)
	}

	s.logger.Info("question deleted",
		slog.String("studyDataId", studyDataID),
		slog.String("questionId", questionID),
	)
	return &removed, nil
}

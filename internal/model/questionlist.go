package model

import (
	"time"

	"github.com/seongmin/studyhub/internal/apperror"
)

// QuestionList is the ordered list of questions embedded in a StudyData
// document.
//
// Every operation is pure with respect to the receiver: it returns a fresh
// list and never mutates the caller's slice or its elements. The caller
// (the question service) is responsible for writing the resulting list back
// to the parent document — these operations know nothing about persistence.
type QuestionList []Question

// clone returns a copy of the list with its own backing array.
func (l QuestionList) clone() QuestionList {
	out := make(QuestionList, len(l))
	copy(out, l)
	return out
}

// Append returns a new list with q added at the end. The like counter is
// forced to zero regardless of what the caller set; a question starts with
// no endorsements. The caller must assign q.ID (a freshly generated unique
// string) before appending — uniqueness is guaranteed by the generation
// strategy, not checked here.
func (l QuestionList) Append(q Question) QuestionList {
	q.Like = 0
	return append(l.clone(), q)
}

// FindByID returns the question with the given id. Lookup is a linear,
// order-preserving scan.
func (l QuestionList) FindByID(id string) (Question, error) {
	for _, q := range l {
		if q.ID == id {
			return q, nil
		}
	}
	return Question{}, apperror.NotFound(apperror.CodeQuestionNotFound, "question", id)
}

// IncrementLike returns a new list where the matching question's like
// counter is one higher. The question stays at its original position —
// liking a question does not reorder the list.
func (l QuestionList) IncrementLike(id string) (QuestionList, error) {
	for i, q := range l {
		if q.ID == id {
			out := l.clone()
			out[i].Like++
			out[i].UpdatedAt = time.Now()
			return out, nil
		}
	}
	return nil, apperror.NotFound(apperror.CodeQuestionNotFound, "question", id)
}

// DecrementLike returns a new list where the matching question's like
// counter is one lower. A counter at zero stays at zero: the operation
// fails with a like-underflow error and the list is unchanged.
func (l QuestionList) DecrementLike(id string) (QuestionList, error) {
	for i, q := range l {
		if q.ID == id {
			if q.Like <= 0 {
				return nil, apperror.LikeUnderflow(id)
			}
			out := l.clone()
			out[i].Like--
			out[i].UpdatedAt = time.Now()
			return out, nil
		}
	}
	return nil, apperror.NotFound(apperror.CodeQuestionNotFound, "question", id)
}

// RemoveByID returns a new list with the matching question excluded.
// The result is always compact — no holes — and the remaining questions
// keep their relative order.
func (l QuestionList) RemoveByID(id string) (QuestionList, error) {
	for i, q := range l {
		if q.ID == id {
			out := make(QuestionList, 0, len(l)-1)
			out = append(out, l[:i]...)
			out = append(out, l[i+1:]...)
			return out, nil
		}
	}
	return nil, apperror.NotFound(apperror.CodeQuestionNotFound, "question", id)
}

// QuestionUpdate carries the editable fields of a question.
type QuestionUpdate struct {
	Title         string
	Content       string
	SlideOrder    int
	SlideImageURL string
}

// UpdateByID returns a new list where the matching question's editable
// fields are replaced with upd. ID, author, like counter, and creation time
// are untouched.
func (l QuestionList) UpdateByID(id string, upd QuestionUpdate) (QuestionList, error) {
	for i, q := range l {
		if q.ID == id {
			out := l.clone()
			out[i].Title = upd.Title
			out[i].Content = upd.Content
			out[i].SlideOrder = upd.SlideOrder
			out[i].SlideImageURL = upd.SlideImageURL
			out[i].UpdatedAt = time.Now()
			return out, nil
		}
	}
	return nil, apperror.NotFound(apperror.CodeQuestionNotFound, "question", id)
}

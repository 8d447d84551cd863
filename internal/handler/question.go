package handler

import (
	"log/slog"
	"net/http"

	"github.com/seongmin/studyhub/internal/model"
	"github.com/seongmin/studyhub/internal/service"
)

// QuestionHandler exposes the question-list endpoints under /question.
// Questions live inside a study-data document, so every route carries the
// parent study-data id.
type QuestionHandler struct {
	svc    *service.QuestionService
	logger *slog.Logger
}

func NewQuestionHandler(svc *service.QuestionService, logger *slog.Logger) *QuestionHandler {
	return &QuestionHandler{svc: svc, logger: logger}
}

type createQuestionRequest struct {
	StudyDataID   string `json:"studyDataId"`
	User          string `json:"user"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	SlideOrder    *int   `json:"slideOrder"`
	SlideImageURL string `json:"slideImageURL"`
}

func (req *createQuestionRequest) validate() []FieldError {
	var errs []FieldError
	if req.StudyDataID == "" {
		errs = append(errs, FieldError{Field: "studyDataId", Message: "studyDataId is required"})
	}
	if req.User == "" {
		errs = append(errs, FieldError{Field: "user", Message: "user is required"})
	}
	if req.Title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "title is required"})
	}
	if req.Content == "" {
		errs = append(errs, FieldError{Field: "content", Message: "content is required"})
	}
	if req.SlideOrder == nil {
		errs = append(errs, FieldError{Field: "slideOrder", Message: "slideOrder must be a number"})
	}
	if req.SlideImageURL == "" {
		errs = append(errs, FieldError{Field: "slideImageURL", Message: "slideImageURL is required"})
	}
	return errs
}

type updateQuestionRequest struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	SlideOrder    *int   `json:"slideOrder"`
	SlideImageURL string `json:"slideImageURL"`
}

func (req *updateQuestionRequest) validate() []FieldError {
	var errs []FieldError
	if req.Title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "title is required"})
	}
	if req.Content == "" {
		errs = append(errs, FieldError{Field: "content", Message: "content is required"})
	}
	if req.SlideOrder == nil {
		errs = append(errs, FieldError{Field: "slideOrder", Message: "slideOrder must be a number"})
	}
	if req.SlideImageURL == "" {
		errs = append(errs, FieldError{Field: "slideImageURL", Message: "slideImageURL is required"})
	}
	return errs
}

// HandleListByStudyData handles GET /question/{studyDataId}.
func (h *QuestionHandler) HandleListByStudyData(w http.ResponseWriter, r *http.Request) {
	questions, err := h.svc.ListByStudyData(r.Context(), r.PathValue("studyDataId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, questions)
}

// HandleCreate handles POST /question.
func (h *QuestionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createQuestionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	question, err := h.svc.Create(r.Context(), req.StudyDataID, service.QuestionInput{
		User:          req.User,
		Title:         req.Title,
		Content:       req.Content,
		SlideOrder:    *req.SlideOrder,
		SlideImageURL: req.SlideImageURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	h.logger.Info("question created",
		slog.String("id", question.ID), slog.String("studyDataId", req.StudyDataID))
	writeData(w, http.StatusCreated, question)
}

// HandleUpdate handles PUT /question/{studyDataId}/{questionId}.
func (h *QuestionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateQuestionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	question, err := h.svc.Update(r.Context(),
		r.PathValue("studyDataId"), r.PathValue("questionId"), model.QuestionUpdate{
			Title:         req.Title,
			Content:       req.Content,
			SlideOrder:    *req.SlideOrder,
			SlideImageURL: req.SlideImageURL,
		})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, question)
}

// HandleLike handles POST /question/like/{studyDataId}/{questionId}.
func (h *QuestionHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	question, err := h.svc.Like(r.Context(),
		r.PathValue("studyDataId"), r.PathValue("questionId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, question)
}

// HandleUnlike handles DELETE /question/like/{studyDataId}/{questionId}.
// Taking a like away from a question at zero is rejected with a 400.
func (h *QuestionHandler) HandleUnlike(w http.ResponseWriter, r *http.Request) {
	question, err := h.svc.Unlike(r.Context(),
		r.PathValue("studyDataId"), r.PathValue("questionId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, question)
}

// HandleDelete handles DELETE /question/{studyDataId}/{questionId}. The
// response echoes the removed question.
func (h *QuestionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	question, err := h.svc.Delete(r.Context(),
		r.PathValue("studyDataId"), r.PathValue("questionId"))
	if err != nil {
		writeError(w, err)
		return
	}
	h.logger.Info("question deleted", slog.String("id", question.ID))
	writeData(w, http.StatusOK, question)
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/seongmin/studyhub/internal/service"
)

// StudyGroupHandler exposes the CRUD and membership endpoints under
// /studygroup.
type StudyGroupHandler struct {
	svc    *service.StudyGroupService
	logger *slog.Logger
}

func NewStudyGroupHandler(svc *service.StudyGroupService, logger *slog.Logger) *StudyGroupHandler {
	return &StudyGroupHandler{svc: svc, logger: logger}
}

type studyGroupRequest struct {
	Title     string `json:"title"`
	Category  string `json:"category"`
	Password  string `json:"password"`
	Salt      string `json:"salt"`
	Owner     string `json:"owner"`
	MaxPeople *int   `json:"maxPeople"`
	IsPremium *bool  `json:"isPremium"`
}

func (req *studyGroupRequest) validate() []FieldError {
	var errs []FieldError
	if req.Title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "title is required"})
	}
	if req.Category == "" {
		errs = append(errs, FieldError{Field: "category", Message: "category is required"})
	}
	if req.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	}
	if req.Salt == "" {
		errs = append(errs, FieldError{Field: "salt", Message: "salt is required"})
	}
	if req.Owner == "" {
		errs = append(errs, FieldError{Field: "owner", Message: "owner is required"})
	}
	if req.MaxPeople == nil {
		errs = append(errs, FieldError{Field: "maxPeople", Message: "maxPeople must be a number"})
	} else if *req.MaxPeople < 1 {
		errs = append(errs, FieldError{Field: "maxPeople", Message: "maxPeople must be at least 1"})
	}
	if req.IsPremium == nil {
		errs = append(errs, FieldError{Field: "isPremium", Message: "isPremium must be a boolean"})
	}
	return errs
}

func (req *studyGroupRequest) toInput() service.StudyGroupInput {
	return service.StudyGroupInput{
		Title:     req.Title,
		Category:  req.Category,
		Password:  req.Password,
		Salt:      req.Salt,
		Owner:     req.Owner,
		MaxPeople: *req.MaxPeople,
		IsPremium: *req.IsPremium,
	}
}

type memberRequest struct {
	UserID string `json:"userId"`
}

func (req *memberRequest) validate() []FieldError {
	if req.UserID == "" {
		return []FieldError{{Field: "userId", Message: "userId is required"}}
	}
	return nil
}

// HandleList handles GET /studygroup.
func (h *StudyGroupHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, groups)
}

// HandleGetByID handles GET /studygroup/{id}.
func (h *StudyGroupHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	group, err := h.svc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, group)
}

// HandleCreate handles POST /studygroup.
func (h *StudyGroupHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req studyGroupRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	group, err := h.svc.Create(r.Context(), req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	h.logger.Info("study group created", slog.String("id", group.ID))
	writeData(w, http.StatusCreated, group)
}

// HandleUpdate handles PUT /studygroup/{id}. The member list is managed
// through the people endpoints and is left untouched here.
func (h *StudyGroupHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req studyGroupRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	group, err := h.svc.Update(r.Context(), r.PathValue("id"), req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, group)
}

// HandleDelete handles DELETE /studygroup/{id}.
func (h *StudyGroupHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	group, err := h.svc.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	h.logger.Info("study group deleted", slog.String("id", group.ID))
	writeData(w, http.StatusOK, group)
}

// HandleAddMember handles POST /studygroup/people/{id}.
func (h *StudyGroupHandler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	group, err := h.svc.AddMember(r.Context(), r.PathValue("id"), req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, group)
}

// HandleRemoveMember handles DELETE /studygroup/people/{id}.
func (h *StudyGroupHandler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	group, err := h.svc.RemoveMember(r.Context(), r.PathValue("id"), req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, group)
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/seongmin/studyhub/internal/service"
)

// UserHandler exposes the CRUD endpoints under /user.
type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, logger: logger}
}

// createUserRequest mirrors the POST /user body. IsPremium is a *bool so
// a missing field is distinguishable from an explicit false.
type createUserRequest struct {
	Provider     string `json:"provider"`
	ID           string `json:"id"`
	Nickname     string `json:"nickname"`
	Email        string `json:"email"`
	ProfileImage string `json:"profileImage"`
	IsPremium    *bool  `json:"isPremium"`
}

func (req *createUserRequest) validate() []FieldError {
	var errs []FieldError
	if req.Provider == "" {
		errs = append(errs, FieldError{Field: "provider", Message: "provider is required"})
	}
	if req.ID == "" {
		errs = append(errs, FieldError{Field: "id", Message: "id is required"})
	}
	if req.Nickname == "" {
		errs = append(errs, FieldError{Field: "nickname", Message: "nickname is required"})
	}
	if req.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	}
	if req.ProfileImage == "" {
		errs = append(errs, FieldError{Field: "profileImage", Message: "profileImage is required"})
	}
	if req.IsPremium == nil {
		errs = append(errs, FieldError{Field: "isPremium", Message: "isPremium must be a boolean"})
	}
	return errs
}

type updateUserRequest struct {
	Nickname     string `json:"nickname"`
	Email        string `json:"email"`
	ProfileImage string `json:"profileImage"`
	IsPremium    *bool  `json:"isPremium"`
}

func (req *updateUserRequest) validate() []FieldError {
	var errs []FieldError
	if req.Nickname == "" {
		errs = append(errs, FieldError{Field: "nickname", Message: "nickname is required"})
	}
	if req.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	}
	if req.ProfileImage == "" {
		errs = append(errs, FieldError{Field: "profileImage", Message: "profileImage is required"})
	}
	if req.IsPremium == nil {
		errs = append(errs, FieldError{Field: "isPremium", Message: "isPremium must be a boolean"})
	}
	return errs
}

// HandleList handles GET /user.
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, users)
}

// HandleGetByID handles GET /user/{id}.
func (h *UserHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, user)
}

// HandleCreate handles POST /user.
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	user, err := h.svc.Create(r.Context(),
		req.Provider, req.ID, req.Nickname, req.Email, req.ProfileImage, *req.IsPremium)
	if err != nil {
		writeError(w, err)
		return
	}
	h.logger.Info("user created", slog.String("id", user.ID))
	writeData(w, http.StatusCreated, user)
}

// HandleUpdate handles PUT /user/{id}.
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	user, err := h.svc.Update(r.Context(),
		r.PathValue("id"), req.Nickname, req.Email, req.ProfileImage, *req.IsPremium)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, user)
}

// HandleDelete handles DELETE /user/{id}. The response echoes the deleted
// user.
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	h.logger.Info("user deleted", slog.String("id", user.ID))
	writeData(w, http.StatusOK, user)
}

package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/seongmin/studyhub/internal/service"
)

// dateLayout is the wire format for the study-session date.
const dateLayout = "2006-01-02"

// StudyDataHandler exposes the CRUD endpoints under /studydata.
type StudyDataHandler struct {
	svc    *service.StudyDataService
	logger *slog.Logger
}

func NewStudyDataHandler(svc *service.StudyDataService, logger *slog.Logger) *StudyDataHandler {
	return &StudyDataHandler{svc: svc, logger: logger}
}

// studyDataRequest mirrors the create/update body. SlideInfo is a
// *[]string so an absent field is distinguishable from an explicitly
// empty list — a session may legitimately have no slides yet.
type studyDataRequest struct {
	Week         *int      `json:"week"`
	Date         string    `json:"date"`
	SlideInfo    *[]string `json:"slideInfo"`
	StudyGroupID string    `json:"studyGroupId"`
}

// validate checks the request and, when the date parses, returns it
// alongside the field errors.
func (req *studyDataRequest) validate() (time.Time, []FieldError) {
	var errs []FieldError
	if req.Week == nil {
		errs = append(errs, FieldError{Field: "week", Message: "week must be a number"})
	} else if *req.Week < 1 {
		errs = append(errs, FieldError{Field: "week", Message: "week must be at least 1"})
	}
	if req.SlideInfo == nil {
		errs = append(errs, FieldError{Field: "slideInfo", Message: "slideInfo must be an array"})
	}
	if req.StudyGroupID == "" {
		errs = append(errs, FieldError{Field: "studyGroupId", Message: "studyGroupId is required"})
	}

	var date time.Time
	if req.Date == "" {
		errs = append(errs, FieldError{Field: "date", Message: "date is required"})
	} else {
		var err error
		date, err = time.Parse(dateLayout, req.Date)
		if err != nil {
			errs = append(errs, FieldError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
		}
	}
	return date, errs
}

func (req *studyDataRequest) toInput(date time.Time) service.StudyDataInput {
	return service.StudyDataInput{
		Week:         *req.Week,
		Date:         date,
		SlideInfo:    *req.SlideInfo,
		StudyGroupID: req.StudyGroupID,
	}
}

// HandleList handles GET /studydata.
func (h *StudyDataHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, data)
}

// HandleGetByID handles GET /studydata/{id}.
func (h *StudyDataHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, data)
}

// HandleListByGroup handles GET /studydata/bystudy/{groupId}. An unknown
// group yields an empty list, not a 404.
func (h *StudyDataHandler) HandleListByGroup(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.ListByGroup(r.Context(), r.PathValue("groupId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, data)
}

// HandleCreate handles POST /studydata.
func (h *StudyDataHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req studyDataRequest
	if !decodeBody(w, r, &req) {
		return
	}
	date, errs := req.validate()
	if len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	data, err := h.svc.Create(r.Context(), req.toInput(date))
	if err != nil {
		writeError(w, err)
		return
	}
	h.logger.Info("study data created",
		slog.String("id", data.ID), slog.String("studyGroupId", data.StudyGroupID))
	writeData(w, http.StatusCreated, data)
}

// HandleUpdate handles PUT /studydata/{id}. Questions are managed through
// the /question endpoints and survive the update unchanged.
func (h *StudyDataHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req studyDataRequest
	if !decodeBody(w, r, &req) {
		return
	}
	date, errs := req.validate()
	if len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	data, err := h.svc.Update(r.Context(), r.PathValue("id"), req.toInput(date))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, data)
}

// HandleDelete handles DELETE /studydata/{id}.
func (h *StudyDataHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	h.logger.Info("study data deleted", slog.String("id", data.ID))
	writeData(w, http.StatusOK, data)
}

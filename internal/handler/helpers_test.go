package handler_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/seongmin/studyhub/internal/handler"
	"github.com/seongmin/studyhub/internal/repository/sqlite"
	"github.com/seongmin/studyhub/internal/service"
)

// testEnv wires real services over an in-memory database so handler
// tests exercise the full request path without a server.
type testEnv struct {
	users     *handler.UserHandler
	groups    *handler.StudyGroupHandler
	studyData *handler.StudyDataHandler
	questions *handler.QuestionHandler
	userSvc   *service.UserService
	groupSvc  *service.StudyGroupService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	userSvc := service.NewUserService(db, logger)
	groupSvc := service.NewStudyGroupService(db, logger)
	dataSvc := service.NewStudyDataService(db, db, logger)
	questionSvc := service.NewQuestionService(db, logger)

	return &testEnv{
		users:     handler.NewUserHandler(userSvc, logger),
		groups:    handler.NewStudyGroupHandler(groupSvc, logger),
		studyData: handler.NewStudyDataHandler(dataSvc, logger),
		questions: handler.NewQuestionHandler(questionSvc, logger),
		userSvc:   userSvc,
		groupSvc:  groupSvc,
	}
}

// envelope mirrors the wire format of every response.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

// doJSON invokes a handler func directly with an optional JSON body and
// path values, and decodes the envelope.
func doJSON(t *testing.T, fn http.HandlerFunc, method, target, body string, pathValues map[string]string) (int, envelope) {
	t.Helper()

	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	rr := httptest.NewRecorder()

	fn(rr, req)

	var env envelope
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode response envelope: %v", err)
	}
	return rr.Code, env
}

func decodeData(t *testing.T, env envelope, dst any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("failed to decode data payload: %v", err)
	}
}

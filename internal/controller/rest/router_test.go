package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/fitnesshub/internal/auth"
	"github.com/Freeeeeet/fitnesshub/internal/model"
	"github.com/Freeeeeet/fitnesshub/internal/schedule"
	"github.com/Freeeeeet/fitnesshub/internal/service"
)

const testSecret = "test-secret"

type stubSchedule struct {
	createErr error
	created   service.SlotInput
	adminID   int64
	deleteErr error
}

func (s *stubSchedule) List(context.Context) ([]*model.TrainerSlot, error) {
	return []*model.TrainerSlot{{ID: 1, TrainerID: 7, DayOfWeek: schedule.Monday}}, nil
}

func (s *stubSchedule) Create(_ context.Context, adminID int64, in service.SlotInput) (*model.TrainerSlot, error) {
	s.adminID = adminID
	s.created = in
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &model.TrainerSlot{ID: 42, TrainerID: in.TrainerID}, nil
}

func (s *stubSchedule) Update(_ context.Context, id int64, in service.SlotInput) (*model.TrainerSlot, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &model.TrainerSlot{ID: id, TrainerID: in.TrainerID}, nil
}

func (s *stubSchedule) Delete(context.Context, int64) error {
	return s.deleteErr
}

func (s *stubSchedule) ForTrainerUser(_ context.Context, userID int64) (*service.TrainerSchedule, error) {
	return &service.TrainerSchedule{
		Trainer: &model.TrainerProfile{Trainer: model.Trainer{ID: 7, UserID: userID}},
		Load:    schedule.Load{DaysPerWeek: 2},
	}, nil
}

func (s *stubSchedule) AvailableTrainers(context.Context, string, string) ([]*model.AvailableTrainer, error) {
	return []*model.AvailableTrainer{{ID: 7, Name: "Anna"}}, nil
}

type testServer struct {
	router   *gin.Engine
	tokens   *auth.TokenManager
	schedule *stubSchedule
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{
		tokens:   auth.NewTokenManager(testSecret, time.Hour),
		schedule: &stubSchedule{},
	}
	ts.router = NewRouter(Services{Schedule: ts.schedule}, ts.tokens, Options{}, zap.NewNop())
	return ts
}

func (ts *testServer) token(t *testing.T, id int64, role model.Role) string {
	t.Helper()
	tok, err := ts.tokens.Issue(&model.User{ID: id, Email: "u@example.com", Role: role})
	require.NoError(t, err)
	return tok
}

func (ts *testServer) do(t *testing.T, method, path, token, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec.Code, out
}

func TestAuthMiddleware(t *testing.T) {
	ts := newTestServer(t)

	code, body := ts.do(t, http.MethodGet, "/api/admin/trainer-schedule", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Токен отсутствует", body["error"])
	assert.Equal(t, false, body["success"])

	code, body = ts.do(t, http.MethodGet, "/api/admin/trainer-schedule", "garbage", "")
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Неверный токен", body["error"])

	foreign, err := auth.NewTokenManager("other", time.Hour).Issue(&model.User{ID: 1, Role: model.RoleAdmin})
	require.NoError(t, err)
	code, _ = ts.do(t, http.MethodGet, "/api/admin/trainer-schedule", foreign, "")
	assert.Equal(t, http.StatusForbidden, code)

	code, body = ts.do(t, http.MethodGet, "/api/admin/trainer-schedule", ts.token(t, 5, model.RoleClient), "")
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Доступ запрещен", body["error"])

	code, body = ts.do(t, http.MethodGet, "/api/admin/trainer-schedule", ts.token(t, 1, model.RoleAdmin), "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["schedule"], 1)
}

func TestCreateSlot(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.token(t, 3, model.RoleAdmin)

	code, body := ts.do(t, http.MethodPost, "/api/admin/trainer-schedule", admin,
		`{"trainer_id":7,"day_of_week":"monday","start_time":"08:00","end_time":"13:00","max_slots":2}`)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Персональный слот расписания создан", body["message"])
	assert.EqualValues(t, 42, body["scheduleId"])
	assert.Equal(t, int64(3), ts.schedule.adminID)
	assert.Equal(t, "monday", ts.schedule.created.DayOfWeek)
	require.NotNil(t, ts.schedule.created.MaxSlots)
	assert.Equal(t, 2, *ts.schedule.created.MaxSlots)
}

func TestCreateSlot_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "too short", err: schedule.ErrDurationTooShort, wantCode: http.StatusBadRequest, wantMsg: "Продолжительность тренировки должна быть не менее 5 часов"},
		{name: "overlap", err: schedule.ErrOverlap, wantCode: http.StatusConflict, wantMsg: "Время пересекается с существующим слотом тренера"},
		{name: "no trainer", err: model.ErrTrainerNotFound, wantCode: http.StatusNotFound, wantMsg: "Тренер не найден"},
		{name: "validation", err: &service.ValidationError{Message: "Неверный день недели"}, wantCode: http.StatusBadRequest, wantMsg: "Неверный день недели"},
		{name: "unexpected", err: assert.AnError, wantCode: http.StatusInternalServerError, wantMsg: "Ошибка сервера"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.schedule.createErr = tt.err

			code, body := ts.do(t, http.MethodPost, "/api/admin/trainer-schedule", ts.token(t, 1, model.RoleAdmin),
				`{"trainer_id":7,"day_of_week":"monday","start_time":"08:00","end_time":"10:00"}`)

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, body["error"])
		})
	}
}

func TestSlotRoutes_BadInput(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.token(t, 1, model.RoleAdmin)

	code, body := ts.do(t, http.MethodPost, "/api/admin/trainer-schedule", admin, `{"trainer_id":"seven"`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, msgBadRequest, body["error"])

	code, body = ts.do(t, http.MethodDelete, "/api/admin/trainer-schedule/abc", admin, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, msgBadID, body["error"])

	ts.schedule.deleteErr = model.ErrSlotNotFound
	code, body = ts.do(t, http.MethodDelete, "/api/admin/trainer-schedule/9", admin, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Слот не найден", body["error"])
}

func TestTrainerSchedule(t *testing.T) {
	ts := newTestServer(t)

	code, _ := ts.do(t, http.MethodGet, "/api/trainer/schedule", ts.token(t, 70, model.RoleAdmin), "")
	assert.Equal(t, http.StatusForbidden, code)

	code, body := ts.do(t, http.MethodGet, "/api/trainer/schedule", ts.token(t, 70, model.RoleTrainer), "")
	require.Equal(t, http.StatusOK, code)
	load := body["load"].(map[string]any)
	assert.EqualValues(t, 2, load["days_per_week"])
}

func TestHealthAndRequestID(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(requestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-1", rec.Header().Get(requestIDHeader))

	code, body := ts.do(t, http.MethodGet, "/api/nope", "", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, msgRouteNotFound, body["error"])
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(2, zap.NewNop()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	var codes []int
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestLimiterStore_DropsIdleClients(t *testing.T) {
	now := time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)
	store := newLimiterStore(60)
	store.now = func() time.Time { return now }

	store.get("10.0.0.1")
	store.get("10.0.0.2")
	assert.Equal(t, 2, store.size())

	now = now.Add(limiterIdleTTL / 2)
	store.get("10.0.0.2")

	now = now.Add(limiterIdleTTL / 2)
	kept := store.get("10.0.0.2")
	assert.Equal(t, 1, store.size(), "idle client is removed")

	now = now.Add(time.Second)
	assert.Same(t, kept, store.get("10.0.0.2"), "active client keeps its limiter")
}

func TestDayListUnmarshal(t *testing.T) {
	var req sessionRequest
	require.NoError(t, json.Unmarshal([]byte(`{"days":"monday, friday"}`), &req))
	assert.Equal(t, dayList{"monday", "friday"}, req.Days)

	require.NoError(t, json.Unmarshal([]byte(`{"days":["tuesday"]}`), &req))
	assert.Equal(t, dayList{"tuesday"}, req.Days)

	assert.Error(t, json.Unmarshal([]byte(`{"days":5}`), &req))
}

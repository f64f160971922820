package validate_slot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Diana0617/BC-sub011/internal/domain"
	"github.com/Diana0617/BC-sub011/internal/service/availability"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	available bool
	err       error
	req       *availability.ValidateRequest
}

func (f *fakeService) ValidateSlotAvailability(_ context.Context, req *availability.ValidateRequest) (bool, error) {
	f.req = req
	return f.available, f.err
}

func serve(svc AvailabilityService, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/businesses/{businessId}/branches/{branchId}/availability/validate", NewHandler(svc, nopLogger{}).Handle).
		Methods(http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/businesses/1/branches/2/availability/validate", strings.NewReader(body)))
	return rec
}

const validBody = `{"specialistUserId":7,"serviceId":20,"startTime":"2025-03-10T10:00:00-05:00","endTime":"2025-03-10T10:30:00-05:00"}`

func TestHandle_Success(t *testing.T) {
	svc := &fakeService{available: true}
	rec := serve(svc, validBody)
	require.Equal(t, http.StatusOK, rec.Code)

	var body ValidateSlotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Available)

	require.NotNil(t, svc.req)
	assert.Equal(t, int64(2), svc.req.BranchID)
	assert.Equal(t, domain.UserRef(7), svc.req.Specialist)
	assert.Equal(t, 30*time.Minute, svc.req.EndTime.Sub(svc.req.StartTime))
}

func TestHandle_Unavailable(t *testing.T) {
	rec := serve(&fakeService{available: false}, validBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"available":false`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "malformed", body: `{`, status: http.StatusBadRequest},
		{name: "missing specialist", body: `{"serviceId":20,"startTime":"2025-03-10T10:00:00Z","endTime":"2025-03-10T10:30:00Z"}`, status: http.StatusBadRequest},
		{name: "both specialist ids", body: `{"specialistUserId":7,"specialistProfileId":70,"serviceId":20,"startTime":"2025-03-10T10:00:00Z","endTime":"2025-03-10T10:30:00Z"}`, status: http.StatusBadRequest},
		{name: "negative specialist", body: `{"specialistProfileId":-70,"serviceId":20,"startTime":"2025-03-10T10:00:00Z","endTime":"2025-03-10T10:30:00Z"}`, status: http.StatusBadRequest},
		{name: "bad time", body: `{"specialistUserId":7,"serviceId":20,"startTime":"10:00","endTime":"10:30"}`, status: http.StatusBadRequest},
		{name: "specialist", body: validBody, err: availability.ErrSpecialistNotFound, status: http.StatusNotFound},
		{name: "invalid", body: validBody, err: availability.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "internal", body: validBody, err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

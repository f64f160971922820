package get_available_specialists

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Diana0617/BC-sub011/internal/domain"
	"github.com/Diana0617/BC-sub011/internal/service/availability"
	"github.com/Diana0617/BC-sub011/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	list []availability.AvailableSpecialist
	err  error
	req  *availability.SpecialistsRequest
}

func (f *fakeService) GetAvailableSpecialists(_ context.Context, req *availability.SpecialistsRequest) ([]availability.AvailableSpecialist, error) {
	f.req = req
	return f.list, f.err
}

func serve(svc AvailabilityService, query string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/businesses/{businessId}/branches/{branchId}/available-specialists", NewHandler(svc, nopLogger{}).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/businesses/1/branches/2/available-specialists?"+query, nil))
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := &fakeService{list: []availability.AvailableSpecialist{{
		Specialist:   domain.SpecialistIdentity{UserID: 7, ProfileID: 70, FirstName: "Laura"},
		WorkingHours: domain.WorkingWindow{Start: types.MustTimeString("10:00"), End: types.MustTimeString("15:00")},
		Slot:         domain.Slot{StartTime: types.MustTimeString("11:00"), EndTime: types.MustTimeString("11:30")},
	}}}

	rec := serve(svc, "serviceId=20&date=2025-03-10&time=11:00")
	require.Equal(t, http.StatusOK, rec.Code)

	var body AvailableSpecialistsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Specialists, 1)
	assert.Equal(t, int64(7), body.Specialists[0].ID)
	assert.Equal(t, int64(70), body.Specialists[0].ProfileID)
	assert.Equal(t, "11:30", body.Specialists[0].SlotEnd)
	assert.Equal(t, types.MustTimeString("11:00"), svc.req.Time)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		err    error
		status int
	}{
		{name: "bad time", query: "serviceId=20&date=2025-03-10&time=25:00", status: http.StatusBadRequest},
		{name: "missing date", query: "serviceId=20&time=11:00", status: http.StatusBadRequest},
		{name: "branch", query: "serviceId=20&date=2025-03-10&time=11:00", err: availability.ErrBranchNotFound, status: http.StatusNotFound},
		{name: "internal", query: "serviceId=20&date=2025-03-10&time=11:00", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.query)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

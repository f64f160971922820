package get_availability_range

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Diana0617/BC-sub011/internal/service/availability"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	days []*availability.DayAvailability
	err  error
	req  *availability.RangeRequest
}

func (f *fakeService) GetAvailabilityRange(_ context.Context, req *availability.RangeRequest) ([]*availability.DayAvailability, error) {
	f.req = req
	return f.days, f.err
}

func serve(svc AvailabilityService, query string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/businesses/{businessId}/branches/{branchId}/availability/range", NewHandler(svc, nopLogger{}).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/businesses/1/branches/2/availability/range?"+query, nil))
	return rec
}

func TestHandle_Success(t *testing.T) {
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	svc := &fakeService{days: []*availability.DayAvailability{
		{Date: monday, DayOfWeek: "monday", AvailableSlots: 4, TotalSlots: 4},
	}}

	rec := serve(svc, "specialistUserId=7&serviceId=20&startDate=2025-03-09&endDate=2025-03-11")
	require.Equal(t, http.StatusOK, rec.Code)

	var body AvailabilityRangeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-03-09", body.StartDate)
	assert.Equal(t, "2025-03-11", body.EndDate)
	require.Len(t, body.Days, 1)
	assert.Equal(t, "2025-03-10", body.Days[0].Date)
	assert.Equal(t, 4, body.Days[0].AvailableSlots)
}

func TestHandle_Errors(t *testing.T) {
	valid := "specialistUserId=7&serviceId=20&startDate=2025-03-09&endDate=2025-03-11"
	tests := []struct {
		name   string
		query  string
		err    error
		status int
	}{
		{name: "no specialist", query: "serviceId=20&startDate=2025-03-09&endDate=2025-03-11", status: http.StatusBadRequest},
		{name: "both specialist ids", query: "specialistUserId=7&specialistProfileId=70&serviceId=20&startDate=2025-03-09&endDate=2025-03-11", status: http.StatusBadRequest},
		{name: "bad start", query: "specialistUserId=7&serviceId=20&startDate=x&endDate=2025-03-11", status: http.StatusBadRequest},
		{name: "bad end", query: "specialistUserId=7&serviceId=20&startDate=2025-03-09", status: http.StatusBadRequest},
		{name: "too large", query: valid, err: fmt.Errorf("%w: 40 days", availability.ErrRangeTooLarge), status: http.StatusBadRequest},
		{name: "reversed", query: valid, err: availability.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "business", query: valid, err: availability.ErrBusinessNotFound, status: http.StatusNotFound},
		{name: "internal", query: valid, err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.query)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

package athlete_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/2beens/stravastats/internal/athlete"
	"github.com/2beens/stravastats/internal/strava"
)

const testAthleteID = int64(227615)

func setupHandler(t *testing.T) (*mux.Router, *MockClientResolver, *MockAPI) {
	t.Helper()
	ctrl := gomock.NewController(t)
	resolver := NewMockClientResolver(ctrl)
	api := NewMockAPI(ctrl)

	router := mux.NewRouter()
	athlete.NewHandler(resolver).SetupRoutes(router)
	return router, resolver, api
}

func TestHandler_Profile(t *testing.T) {
	router, resolver, api := setupHandler(t)

	resolver.EXPECT().ResolveClient(gomock.Any()).Return(testAthleteID, api, nil)
	api.EXPECT().GetLoggedInAthlete(gomock.Any()).Return(&strava.Athlete{
		ID:        testAthleteID,
		Firstname: "John",
		Lastname:  "Applestrava",
		City:      "San Francisco",
	}, nil)
	api.EXPECT().GetAthleteStats(gomock.Any(), testAthleteID).Return(&strava.AthleteStats{
		BiggestRideDistance: 175454.0,
		AllRideTotals:       strava.ActivityTotal{Count: 375, Distance: 9381464.0},
	}, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/athlete", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var profile athlete.Profile
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &profile))
	require.NotNil(t, profile.Athlete)
	require.NotNil(t, profile.Stats)
	assert.Equal(t, "John Applestrava", profile.Athlete.FullName())
	assert.Equal(t, 375, profile.Stats.AllRideTotals.Count)
	assert.Equal(t, 175454.0, profile.Stats.BiggestRideDistance)
}

func TestHandler_Profile_Unauthorized(t *testing.T) {
	router, resolver, _ := setupHandler(t)
	resolver.EXPECT().ResolveClient(gomock.Any()).Return(int64(0), nil, errors.New("no session"))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/athlete", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestHandler_Profile_StravaErrors(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "TokenRevoked",
			err:            &strava.APIError{StatusCode: http.StatusUnauthorized, Message: "Authorization Error"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "RateLimited",
			err:            &strava.APIError{StatusCode: http.StatusTooManyRequests, Message: "Rate Limit Exceeded"},
			expectedStatus: http.StatusTooManyRequests,
		},
		{
			name:           "Other",
			err:            errors.New("connection reset"),
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router, resolver, api := setupHandler(t)
			resolver.EXPECT().ResolveClient(gomock.Any()).Return(testAthleteID, api, nil)
			api.EXPECT().GetLoggedInAthlete(gomock.Any()).Return(&strava.Athlete{ID: testAthleteID}, nil).AnyTimes()
			api.EXPECT().GetAthleteStats(gomock.Any(), testAthleteID).Return(nil, tc.err)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/athlete", nil))
			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}

func TestHandler_Profile_Options(t *testing.T) {
	router, _, _ := setupHandler(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/athlete", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "GET, OPTIONS", rr.Header().Get("Allow"))
}

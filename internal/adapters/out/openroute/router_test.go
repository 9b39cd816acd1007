package openroute_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookrider/internal/adapters/out/openroute"
	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/navigation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const directionsBody = `{
	"features": [{
		"properties": {
			"summary": {"distance": 10000, "duration": 1080},
			"segments": [{
				"steps": [
					{
						"distance": 6000,
						"duration": 600,
						"instruction": "Head north",
						"way_points": [0, 1]
					},
					{
						"distance": 4000,
						"duration": 480,
						"instruction": "Arrive at destination",
						"way_points": [1, 2]
					}
				]
			}]
		},
		"geometry": {
			"coordinates": [[14.5528, 53.4285], [14.60, 53.40], [21.0122, 52.2297]]
		}
	}]
}`

func newRouter(t *testing.T, handler http.HandlerFunc) openroute.Router {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return openroute.NewRouter(openroute.NewClient(server.URL, "test-key", time.Second))
}

func routeEndpoints(t *testing.T) (kernel.Coordinate, kernel.Coordinate) {
	t.Helper()
	start, err := kernel.NewCoordinate(53.4285, 14.5528)
	require.NoError(t, err)
	end, err := kernel.NewCoordinate(52.2297, 21.0122)
	require.NoError(t, err)
	return start, end
}

func TestRouter_Route_Success(t *testing.T) {
	var gotPath, gotStart, gotEnd string
	router := newRouter(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotStart = r.URL.Query().Get("start")
		gotEnd = r.URL.Query().Get("end")
		_, _ = w.Write([]byte(directionsBody))
	})
	start, end := routeEndpoints(t)

	result, err := router.Route(context.Background(), start, end, navigation.Car)

	require.NoError(t, err)
	assert.Equal(t, "/v2/directions/driving-car", gotPath)
	assert.Equal(t, "14.5528,53.4285", gotStart)
	assert.Equal(t, "21.0122,52.2297", gotEnd)
	assert.InDelta(t, 10000, result.TotalDistanceMeters(), 1e-9)
	assert.InDelta(t, 18, result.TotalDurationMinutes(), 1e-9)

	steps := result.Steps()
	require.Len(t, steps, 2)
	assert.InDelta(t, 6000, steps[0].DistanceMeters(), 1e-9)
	assert.InDelta(t, 10, steps[0].DurationMinutes(), 1e-9)
	assert.Equal(t, "Head north", steps[0].Instruction())

	waypoints := steps[0].Waypoints()
	require.Len(t, waypoints, 2)
	assert.InDelta(t, 53.4285, waypoints[0].Latitude(), 1e-9)
	assert.InDelta(t, 14.5528, waypoints[0].Longitude(), 1e-9)
	assert.InDelta(t, 53.40, waypoints[1].Latitude(), 1e-9)

	lastWaypoints := steps[1].Waypoints()
	require.Len(t, lastWaypoints, 2)
	assert.InDelta(t, 52.2297, lastWaypoints[1].Latitude(), 1e-9)
}

func TestRouter_Route_UnroutablePoint(t *testing.T) {
	router := newRouter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{
			"error": {
				"message": "Could not find routable point within a radius of 350.0 meters of specified coordinate 1: 290.504721"
			}
		}`))
	})
	start, end := routeEndpoints(t)

	_, err := router.Route(context.Background(), start, end, navigation.Car)

	require.Error(t, err)
	require.ErrorIs(t, err, navigation.ErrInvalidCoordinates)
	assert.Contains(t, err.Error(), "specified coordinate 1: 290.504721")
}

func TestRouter_Route_NoRoute(t *testing.T) {
	router := newRouter(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"features": [{
				"properties": {"summary": {"distance": 0, "duration": 0}, "segments": []},
				"geometry": {"coordinates": []}
			}]
		}`))
	})
	start, end := routeEndpoints(t)

	_, err := router.Route(context.Background(), start, end, navigation.Car)

	require.Error(t, err)
	assert.ErrorIs(t, err, navigation.ErrNoRouteFound)
}

func TestRouter_Route_ServerError(t *testing.T) {
	router := newRouter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	start, end := routeEndpoints(t)

	_, err := router.Route(context.Background(), start, end, navigation.Car)

	require.Error(t, err)
	assert.ErrorIs(t, err, navigation.ErrExternalAPIFailure)
}

func TestRouter_Route_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(directionsBody))
	}))
	t.Cleanup(server.Close)
	router := openroute.NewRouter(openroute.NewClient(server.URL, "test-key", 20*time.Millisecond))
	start, end := routeEndpoints(t)

	_, err := router.Route(context.Background(), start, end, navigation.Car)

	require.Error(t, err)
	assert.ErrorIs(t, err, navigation.ErrExternalAPIFailure)
}

func TestRouter_Route_InvalidProfile(t *testing.T) {
	router := newRouter(t, func(http.ResponseWriter, *http.Request) {
		t.Fatal("no request expected for an invalid profile")
	})
	start, end := routeEndpoints(t)

	_, err := router.Route(context.Background(), start, end, navigation.UnknownProfile)

	require.Error(t, err)
	assert.ErrorIs(t, err, navigation.ErrInvalidTransportProfile)
}

func TestRouter_Route_UnconstructedCoordinate(t *testing.T) {
	router := newRouter(t, func(http.ResponseWriter, *http.Request) {
		t.Fatal("no request expected for an invalid coordinate")
	})
	start, _ := routeEndpoints(t)

	_, err := router.Route(context.Background(), start, kernel.Coordinate{}, navigation.Car)

	require.Error(t, err)
	assert.ErrorIs(t, err, navigation.ErrInvalidCoordinates)
	// Both components of the rejected coordinate are quoted, lon first.
	assert.Contains(t, err.Error(), "coordinate 1: 0.0000000 0.0000000")
}

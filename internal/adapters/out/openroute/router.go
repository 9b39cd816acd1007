package openroute

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/navigation"
)

const routerFailureMessage = "External routing service is currently unavailable"

// Router computes routes via the /v2/directions endpoint.
type Router struct {
	client Client
}

// NewRouter creates a router on the shared client.
func NewRouter(client Client) Router {
	return Router{client: client}
}

type directionsResponse struct {
	Features []struct {
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"summary"`
			Segments []struct {
				Steps []struct {
					Distance    float64 `json:"distance"`
					Duration    float64 `json:"duration"`
					Instruction string  `json:"instruction"`
					WayPoints   []int   `json:"way_points"`
				} `json:"steps"`
			} `json:"segments"`
		} `json:"properties"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

type directionsError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Route computes the route from start to end with the given transport
// profile. Distance comes back in meters; the engine's seconds are
// normalized to minutes.
func (r Router) Route(
	ctx context.Context,
	start, end kernel.Coordinate,
	profile navigation.TransportProfile,
) (navigation.NavigationResult, error) {
	if err := profile.Validate(); err != nil {
		return navigation.NavigationResult{}, err
	}
	if err := start.Validate(); err != nil {
		return navigation.NavigationResult{}, navigation.NewUnroutableCoordinateError(0, start.Latitude(), start.Longitude())
	}
	if err := end.Validate(); err != nil {
		return navigation.NavigationResult{}, navigation.NewUnroutableCoordinateError(1, end.Latitude(), end.Longitude())
	}

	query := url.Values{}
	query.Set("start", fmt.Sprintf("%g,%g", start.Longitude(), start.Latitude()))
	query.Set("end", fmt.Sprintf("%g,%g", end.Longitude(), end.Latitude()))

	status, body, err := r.client.get(ctx, "/v2/directions/"+profile.WireString(), query, routerFailureMessage)
	if err != nil {
		return navigation.NavigationResult{}, err
	}

	switch {
	case status >= http.StatusInternalServerError:
		return navigation.NavigationResult{}, navigation.NewExternalAPIFailureError(routerFailureMessage, nil)
	case status >= http.StatusBadRequest:
		return navigation.NavigationResult{}, rejectionError(body)
	}

	var parsed directionsResponse
	if err = json.Unmarshal(body, &parsed); err != nil {
		return navigation.NavigationResult{}, navigation.NewExternalAPIFailureError(routerFailureMessage, err)
	}
	if len(parsed.Features) == 0 {
		return navigation.NavigationResult{}, navigation.ErrNoRouteFound
	}
	return buildResult(parsed)
}

// rejectionError surfaces the engine's own description of the rejected
// coordinates, typically the unroutable point message.
func rejectionError(body []byte) error {
	var parsed directionsError
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Error.Message == "" {
		return navigation.NewInvalidCoordinatesError(
			"An error occurred while processing the response.")
	}
	return navigation.NewInvalidCoordinatesError(parsed.Error.Message)
}

func buildResult(parsed directionsResponse) (navigation.NavigationResult, error) {
	feature := parsed.Features[0]
	geometry := feature.Geometry.Coordinates

	steps := make([]navigation.RouteStep, 0)
	for _, segment := range feature.Properties.Segments {
		for _, raw := range segment.Steps {
			waypoints, err := sliceWaypoints(geometry, raw.WayPoints)
			if err != nil {
				return navigation.NavigationResult{}, err
			}
			step, err := navigation.NewRouteStep(raw.Distance, raw.Duration/60, raw.Instruction, waypoints)
			if err != nil {
				return navigation.NavigationResult{}, err
			}
			steps = append(steps, step)
		}
	}

	summary := feature.Properties.Summary
	return navigation.NewNavigationResult(summary.Distance, summary.Duration/60, steps)
}

// sliceWaypoints cuts the step's stretch out of the route geometry by
// its way_points index pair. Indexes outside the geometry are skipped
// rather than failing the whole route.
func sliceWaypoints(geometry [][]float64, indexes []int) ([]kernel.Coordinate, error) {
	if len(indexes) != 2 {
		return nil, nil
	}

	waypoints := make([]kernel.Coordinate, 0, indexes[1]-indexes[0]+1)
	for i := indexes[0]; i <= indexes[1]; i++ {
		if i < 0 || i >= len(geometry) || len(geometry[i]) < 2 {
			continue
		}
		coordinate, err := kernel.NewCoordinate(geometry[i][1], geometry[i][0])
		if err != nil {
			return nil, err
		}
		waypoints = append(waypoints, coordinate)
	}
	return waypoints, nil
}

package navigation

import (
	"errors"
	"fmt"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// RouteStep is a single maneuver of a computed route. It carries the
// step's share of distance and duration, the human-readable instruction
// and the waypoints the step covers.
//
// RouteStep is a transient value object. It is never persisted.
type RouteStep struct {
	distanceMeters  float64
	durationMinutes float64
	instruction     string
	waypoints       []kernel.Coordinate
}

// NewRouteStep creates a validated RouteStep.
// Distance and duration must not be negative.
func NewRouteStep(
	distanceMeters float64,
	durationMinutes float64,
	instruction string,
	waypoints []kernel.Coordinate,
) (RouteStep, error) {
	if distanceMeters < 0 {
		return RouteStep{}, errs.NewValueIsInvalidErrorWithCause(
			"distanceMeters is invalid", fmt.Errorf("%g is negative", distanceMeters))
	}
	if durationMinutes < 0 {
		return RouteStep{}, errs.NewValueIsInvalidErrorWithCause(
			"durationMinutes is invalid", fmt.Errorf("%g is negative", durationMinutes))
	}
	for _, waypoint := range waypoints {
		if err := waypoint.Validate(); err != nil {
			return RouteStep{}, err
		}
	}

	return RouteStep{
		distanceMeters:  distanceMeters,
		durationMinutes: durationMinutes,
		instruction:     instruction,
		waypoints:       append([]kernel.Coordinate(nil), waypoints...),
	}, nil
}

// DistanceMeters returns the step's distance in meters.
func (s RouteStep) DistanceMeters() float64 {
	return s.distanceMeters
}

// DurationMinutes returns the step's duration in minutes.
func (s RouteStep) DurationMinutes() float64 {
	return s.durationMinutes
}

// Instruction returns the human-readable maneuver description.
func (s RouteStep) Instruction() string {
	return s.instruction
}

// Waypoints returns a copy of the coordinates the step covers.
func (s RouteStep) Waypoints() []kernel.Coordinate {
	return append([]kernel.Coordinate(nil), s.waypoints...)
}

// NavigationResult is the outcome of routing between two coordinates:
// total distance in meters, total duration in minutes and the ordered
// list of steps.
//
// NavigationResult is a transient value object. It is never persisted.
type NavigationResult struct {
	totalDistanceMeters  float64
	totalDurationMinutes float64
	steps                []RouteStep
}

// NewNavigationResult creates a validated NavigationResult.
//
// A route with non-positive total distance means the routable points
// coincide or the engine returned an empty route, both of which surface
// as ErrNoRouteFound.
func NewNavigationResult(
	totalDistanceMeters float64,
	totalDurationMinutes float64,
	steps []RouteStep,
) (NavigationResult, error) {
	if totalDistanceMeters <= 0 {
		return NavigationResult{}, ErrNoRouteFound
	}
	if totalDurationMinutes < 0 {
		return NavigationResult{}, errs.NewValueIsInvalidErrorWithCause(
			"totalDurationMinutes is invalid", fmt.Errorf("%g is negative", totalDurationMinutes))
	}

	return NavigationResult{
		totalDistanceMeters:  totalDistanceMeters,
		totalDurationMinutes: totalDurationMinutes,
		steps:                append([]RouteStep(nil), steps...),
	}, nil
}

// TotalDistanceMeters returns the route's total distance in meters.
func (r NavigationResult) TotalDistanceMeters() float64 {
	return r.totalDistanceMeters
}

// TotalDistanceKm returns the route's total distance in kilometers as a
// decimal, suitable for pricing.
func (r NavigationResult) TotalDistanceKm() decimal.Decimal {
	return decimal.NewFromFloat(r.totalDistanceMeters).
		Div(decimal.NewFromInt(1000))
}

// TotalDurationMinutes returns the route's total duration in minutes.
func (r NavigationResult) TotalDurationMinutes() float64 {
	return r.totalDurationMinutes
}

// Steps returns a copy of the ordered route steps.
func (r NavigationResult) Steps() []RouteStep {
	return append([]RouteStep(nil), r.steps...)
}

// Validate ensures the result was built through NewNavigationResult.
func (r NavigationResult) Validate() error {
	if r.totalDistanceMeters <= 0 {
		return errors.New(
			"NavigationResult must be created via NewNavigationResult constructor")
	}
	return nil
}

// Package navigation holds the value objects and error taxonomy of the
// routing and geocoding domain: transport profiles, computed routes and
// the errors the navigation ports surface to the application layer.
package navigation

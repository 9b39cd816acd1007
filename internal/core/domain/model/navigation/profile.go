package navigation

import "strings"

// TransportProfile selects the vehicle profile used when routing between
// two coordinates. It is a value object parsed from client input and mapped
// to the routing engine's wire token.
type TransportProfile int

const (
	// UnknownProfile represents an invalid or undefined profile.
	// This value (0) helps catch uninitialized TransportProfile values.
	UnknownProfile TransportProfile = iota

	// Car routes over the road network for motor vehicles.
	Car

	// Bicycle routes over cycling infrastructure.
	Bicycle

	// Foot routes over walkable paths.
	Foot
)

// getProfileStrings returns a map of TransportProfile values to their
// client-facing tokens.
func getProfileStrings() map[TransportProfile]string {
	return map[TransportProfile]string{
		UnknownProfile: "unknown",
		Car:            "car",
		Bicycle:        "bicycle",
		Foot:           "foot",
	}
}

// getProfileWireStrings returns a map of valid TransportProfile values to
// the tokens the routing engine expects.
func getProfileWireStrings() map[TransportProfile]string {
	//nolint:exhaustive // UnknownProfile is intentionally excluded as it's invalid
	return map[TransportProfile]string{
		Car:     "driving-car",
		Bicycle: "cycling-regular",
		Foot:    "foot-walking",
	}
}

// ParseTransportProfile parses a client token into a TransportProfile.
// Matching is case-insensitive and ignores surrounding whitespace.
//
// Returns InvalidTransportProfileError naming the token when it is not
// one of "car", "bicycle" or "foot".
func ParseTransportProfile(token string) (TransportProfile, error) {
	normalized := strings.ToLower(strings.TrimSpace(token))
	for profile, clientToken := range getProfileStrings() {
		if profile != UnknownProfile && clientToken == normalized {
			return profile, nil
		}
	}
	return UnknownProfile, NewInvalidTransportProfileError(token)
}

// Validate checks if the TransportProfile value is valid.
//
// Valid profiles are: Car, Bicycle, Foot.
// UnknownProfile (0) and any other values are invalid.
func (p TransportProfile) Validate() error {
	if _, ok := getProfileWireStrings()[p]; !ok {
		return NewInvalidTransportProfileError(p.String())
	}
	return nil
}

// String returns the client-facing token of the profile.
// Implements the fmt.Stringer interface and is safe to call on any
// TransportProfile value, including invalid ones.
func (p TransportProfile) String() string {
	if str, ok := getProfileStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// WireString returns the token the routing engine expects, for example
// "driving-car" for Car. Returns an empty string for invalid profiles.
func (p TransportProfile) WireString() string {
	return getProfileWireStrings()[p]
}

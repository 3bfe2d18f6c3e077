// internal/models/aircraft_type.go
package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AircraftType is the role classification of an aircraft, stored as its integer code.
type AircraftType int

const (
	Fighter AircraftType = 1
	Striker AircraftType = 2
	Bomber  AircraftType = 3
	Trainer AircraftType = 4
)

var aircraftTypeNames = map[AircraftType]string{
	Fighter: "Fighter",
	Striker: "Striker",
	Bomber:  "Bomber",
	Trainer: "Trainer",
}

func (t AircraftType) String() string {
	if name, ok := aircraftTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("AircraftType(%d)", int(t))
}

// Valid reports whether t is one of the known codes.
func (t AircraftType) Valid() bool {
	_, ok := aircraftTypeNames[t]
	return ok
}

// ParseAircraftType accepts a type name, case-insensitive.
func ParseAircraftType(name string) (AircraftType, error) {
	for code, n := range aircraftTypeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return code, nil
		}
	}
	return 0, fmt.Errorf("unknown aircraft type %q", name)
}

// UnmarshalJSON accepts either the integer code (1..4) or the type name.
func (t *AircraftType) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var code int
	if err := json.Unmarshal(data, &code); err == nil {
		if !AircraftType(code).Valid() {
			return fmt.Errorf("unknown aircraft type code %d", code)
		}
		*t = AircraftType(code)
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("aircraft_type must be an integer code or a name: %w", err)
	}
	parsed, err := ParseAircraftType(name)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

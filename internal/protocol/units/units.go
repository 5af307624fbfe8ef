// Package units converts scaled field values between units of one family.
package units

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrUnitsMismatch = errors.New("units: incompatible units")
	ErrUnknownUnit   = errors.New("units: unknown unit")
)

// Family groups units that convert into each other.
type Family uint8

const (
	FamilyNone Family = iota
	FamilyTime
	FamilyDistance
	FamilySpeed
	FamilyFrequency
	FamilyAngle
	FamilyCurrent
	FamilyVoltage
)

// Unit is a declared unit of a scaled field.
type Unit uint8

const (
	None Unit = iota

	Nanoseconds
	Microseconds
	Milliseconds
	Seconds
	Minutes
	Hours
	Days
	Weeks

	Nanometers
	Micrometers
	Millimeters
	Centimeters
	Meters
	Decimeters
	Kilometers

	NanometersPerSecond
	MicrometersPerSecond
	MillimetersPerSecond
	CentimetersPerSecond
	MetersPerSecond
	KilometersPerSecond
	KilometersPerHour

	Hertz
	Kilohertz
	Megahertz
	Gigahertz

	Degrees
	Radians

	Nanoamps
	Microamps
	Milliamps
	Amps
	Kiloamps

	Nanovolts
	Microvolts
	Millivolts
	Volts
	Kilovolts
)

type unitInfo struct {
	name   string
	family Family
	// factor converts one unit into the family base unit.
	factor float64
}

var table = map[Unit]unitInfo{
	None: {"none", FamilyNone, 1},

	Nanoseconds:  {"ns", FamilyTime, 1e-9},
	Microseconds: {"us", FamilyTime, 1e-6},
	Milliseconds: {"ms", FamilyTime, 1e-3},
	Seconds:      {"sec", FamilyTime, 1},
	Minutes:      {"min", FamilyTime, 60},
	Hours:        {"h", FamilyTime, 3600},
	Days:         {"day", FamilyTime, 24 * 3600},
	Weeks:        {"week", FamilyTime, 7 * 24 * 3600},

	Nanometers:  {"nm", FamilyDistance, 1e-9},
	Micrometers: {"um", FamilyDistance, 1e-6},
	Millimeters: {"mm", FamilyDistance, 1e-3},
	Centimeters: {"cm", FamilyDistance, 1e-2},
	Meters:      {"m", FamilyDistance, 1},
	Decimeters:  {"dm", FamilyDistance, 1e-1},
	Kilometers:  {"km", FamilyDistance, 1e3},

	NanometersPerSecond:  {"nm/s", FamilySpeed, 1e-9},
	MicrometersPerSecond: {"um/s", FamilySpeed, 1e-6},
	MillimetersPerSecond: {"mm/s", FamilySpeed, 1e-3},
	CentimetersPerSecond: {"cm/s", FamilySpeed, 1e-2},
	MetersPerSecond:      {"m/s", FamilySpeed, 1},
	KilometersPerSecond:  {"km/s", FamilySpeed, 1e3},
	KilometersPerHour:    {"km/h", FamilySpeed, 1e3 / 3600},

	Hertz:     {"hz", FamilyFrequency, 1},
	Kilohertz: {"khz", FamilyFrequency, 1e3},
	Megahertz: {"mhz", FamilyFrequency, 1e6},
	Gigahertz: {"ghz", FamilyFrequency, 1e9},

	Degrees: {"deg", FamilyAngle, math.Pi / 180},
	Radians: {"rad", FamilyAngle, 1},

	Nanoamps:  {"na", FamilyCurrent, 1e-9},
	Microamps: {"ua", FamilyCurrent, 1e-6},
	Milliamps: {"ma", FamilyCurrent, 1e-3},
	Amps:      {"a", FamilyCurrent, 1},
	Kiloamps:  {"ka", FamilyCurrent, 1e3},

	Nanovolts:  {"nv", FamilyVoltage, 1e-9},
	Microvolts: {"uv", FamilyVoltage, 1e-6},
	Millivolts: {"mv", FamilyVoltage, 1e-3},
	Volts:      {"v", FamilyVoltage, 1},
	Kilovolts:  {"kv", FamilyVoltage, 1e3},
}

func (u Unit) String() string {
	if info, ok := table[u]; ok {
		return info.name
	}
	return fmt.Sprintf("unit(%d)", uint8(u))
}

// Family reports the family of u; unknown units are FamilyNone.
func (u Unit) Family() Family {
	return table[u].family
}

// Parse resolves a unit by its short name, case-insensitive.
func Parse(name string) (Unit, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for u, info := range table {
		if info.name == name {
			return u, nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownUnit, name)
}

// Convert expresses v, given in from, in to.
func Convert(v float64, from, to Unit) (float64, error) {
	fi, ok := table[from]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownUnit, from)
	}
	ti, ok := table[to]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownUnit, to)
	}
	if from == to {
		return v, nil
	}
	if fi.family == FamilyNone || fi.family != ti.family {
		return 0, fmt.Errorf("%w: %s -> %s", ErrUnitsMismatch, fi.name, ti.name)
	}
	return v * fi.factor / ti.factor, nil
}

package models

import (
	"time"
	_ "time/tzdata" // zone lookups must not depend on the host zoneinfo
)

// TemperatureUnit selects the unit the forecast provider reports temperatures in
type TemperatureUnit string

const (
	Celsius    TemperatureUnit = "celsius"
	Fahrenheit TemperatureUnit = "fahrenheit"
)

// Symbol returns the degree suffix for the unit
func (u TemperatureUnit) Symbol() string {
	if u == Fahrenheit {
		return "°F"
	}
	return "°C"
}

// Toggle flips between Celsius and Fahrenheit
func (u TemperatureUnit) Toggle() TemperatureUnit {
	if u == Fahrenheit {
		return Celsius
	}
	return Fahrenheit
}

// ParseTemperatureUnit maps anything that is not "fahrenheit" to Celsius
func ParseTemperatureUnit(s string) TemperatureUnit {
	if TemperatureUnit(s) == Fahrenheit {
		return Fahrenheit
	}
	return Celsius
}

// CurrentConditions holds the eight "current" fields requested from the forecast API
type CurrentConditions struct {
	Temperature         float64 // in the requested unit
	ApparentTemperature float64 // in the requested unit
	IsDay               bool
	Precipitation       float64 // mm
	WindSpeed           float64 // km/h
	WindDirection       float64 // degrees
	RelativeHumidity    float64 // percent
	WeatherCode         int
}

// Description returns the human text for the weather code
func (c CurrentConditions) Description() string {
	return DescribeWeatherCode(c.WeatherCode)
}

// Forecast is the current + hourly payload for a resolved place
type Forecast struct {
	Timezone         string // IANA id reported by the provider
	UTCOffsetSeconds int
	Unit             TemperatureUnit
	Current          CurrentConditions
	HourlyTemps      []float64
	FetchedAt        time.Time
}

// LastTemps returns at most the trailing n hourly temperatures
func (f *Forecast) LastTemps(n int) []float64 {
	if f == nil || len(f.HourlyTemps) == 0 {
		return nil
	}
	start := len(f.HourlyTemps) - n
	if start < 0 {
		start = 0
	}
	return f.HourlyTemps[start:]
}

// Location returns the time zone of the forecast, falling back to the fixed UTC offset
func (f *Forecast) Location() *time.Location {
	if f == nil {
		return nil
	}
	if f.Timezone != "" {
		if loc, err := time.LoadLocation(f.Timezone); err == nil {
			return loc
		}
	}
	return time.FixedZone(f.Timezone, f.UTCOffsetSeconds)
}

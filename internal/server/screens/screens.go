// Package screens provides the display roster: named default screens plus
// on-demand configuration for any screen id beyond the defaults.
package screens

import (
	"fmt"
	"strconv"
)

// Screen describes one logical display. Screens are not tied to physical
// hardware; the id is a stable opaque string.
type Screen struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	BgColor string `json:"bgColor"`
	Active  bool   `json:"isActive"`
}

// colorOptions is the wheel used to assign a background gradient to screens
// beyond the default roster.
var colorOptions = []string{
	"from-red-600 to-pink-700",
	"from-orange-600 to-red-700",
	"from-yellow-600 to-orange-700",
	"from-green-600 to-blue-700",
	"from-blue-600 to-indigo-700",
	"from-purple-600 to-pink-700",
	"from-pink-600 to-red-700",
	"from-teal-600 to-cyan-700",
	"from-amber-600 to-brown-700",
	"from-slate-600 to-slate-800",
	"from-gray-600 to-gray-800",
	"from-zinc-600 to-zinc-800",
}

var defaults = []Screen{
	{ID: "1", Name: "Screen 1", BgColor: "from-orange-600 to-red-700", Active: true},
	{ID: "2", Name: "Screen 2", BgColor: "from-green-600 to-blue-700", Active: true},
	{ID: "3", Name: "Screen 3", BgColor: "from-purple-600 to-pink-700", Active: true},
	{ID: "4", Name: "Screen 4", BgColor: "from-yellow-600 to-orange-700", Active: true},
	{ID: "5", Name: "Screen 5", BgColor: "from-blue-600 to-indigo-700", Active: true},
	{ID: "6", Name: "Screen 6", BgColor: "from-pink-600 to-red-700", Active: true},
	{ID: "7", Name: "Screen 7", BgColor: "from-amber-600 to-brown-700", Active: true},
	{ID: "8", Name: "Screen 8", BgColor: "from-teal-600 to-cyan-700", Active: true},
}

// Get returns the configuration for a screen id. Ids outside the default
// roster are still valid: a configuration is generated deterministically
// using the color wheel.
func Get(screenID string) Screen {
	for _, s := range defaults {
		if s.ID == screenID {
			return s
		}
	}

	idx := 0
	if n, err := strconv.Atoi(screenID); err == nil && n > 0 {
		idx = (n - 1) % len(colorOptions)
	}

	return Screen{
		ID:      screenID,
		Name:    fmt.Sprintf("Screen %s", screenID),
		BgColor: colorOptions[idx],
		Active:  true,
	}
}

// List returns configurations for screens 1..max.
func List(max int) []Screen {
	result := make([]Screen, 0, max)
	for i := 1; i <= max; i++ {
		result = append(result, Get(strconv.Itoa(i)))
	}
	return result
}

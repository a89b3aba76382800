// pkg/route/route.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package route tokenizes an item-15 flight plan route string into the
// ordered sequence of waypoints a consumer walks the Graph with (§4.8):
// for each one, find_ident resolves the ident to candidate vertices, and
// the airway (or DCT, if none) names the sub-graph the lateral path
// search is restricted to in reaching it from the previous waypoint.
package route

import (
	"fmt"
	"strconv"
	"strings"
)

// Waypoint is one parsed route element. Airway is "" for a DCT (direct)
// leg from the previous waypoint; it's never set on the first waypoint,
// which has no previous leg.
type Waypoint struct {
	Ident   string
	Airway  string
	LevelFt int32 // 0 if the token carried no speed/level change group
	SpeedKt int32 // 0 if the token carried no speed/level change group
}

// Parse tokenizes an item-15 route string of the form
//
//	FIX [AIRWAY|DCT] FIX [/N0440F350] [AIRWAY|DCT] FIX ...
//
// into the ordered waypoint list, the same alternating fix/airway shape
// parseWaypoints in the teacher's scenario-string tokenizer reads, field
// by field with explicit errors rather than a single monolithic regexp.
func Parse(s string, isAirway func(string) bool) ([]Waypoint, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("route: empty route string")
	}

	var waypoints []Waypoint
	pendingAirway := ""
	for i, field := range fields {
		ident, level, speed, err := splitToken(field)
		if err != nil {
			return nil, fmt.Errorf("route: %q: %w", field, err)
		}

		isDCT := ident == "DCT"
		if !isDCT && isAirway != nil && isAirway(ident) {
			if i == 0 {
				return nil, fmt.Errorf("route: %q: can't begin a route with an airway", field)
			}
			if i == len(fields)-1 {
				return nil, fmt.Errorf("route: %q: can't end a route with an airway", field)
			}
			if level != 0 || speed != 0 {
				return nil, fmt.Errorf("route: %q: can't have a speed/level change on an airway token", field)
			}
			if pendingAirway != "" {
				return nil, fmt.Errorf("route: %q: two airways in a row with no waypoint between them", field)
			}
			pendingAirway = ident
			continue
		}
		if isDCT {
			if i == 0 {
				return nil, fmt.Errorf("route: can't begin a route with DCT")
			}
			if pendingAirway != "" {
				return nil, fmt.Errorf("route: DCT immediately after %q with no waypoint between them", pendingAirway)
			}
			continue
		}

		waypoints = append(waypoints, Waypoint{
			Ident:   ident,
			Airway:  pendingAirway,
			LevelFt: level,
			SpeedKt: speed,
		})
		pendingAirway = ""
	}

	if pendingAirway != "" {
		return nil, fmt.Errorf("route: %q: can't end a route with an airway", pendingAirway)
	}
	if len(waypoints) == 0 {
		return nil, fmt.Errorf("route: %q: no waypoints found", s)
	}
	return waypoints, nil
}

// splitToken splits a field into its leading ident and an optional
// trailing "/N0440F350"-style speed/level change group: speed as
// N|M|K followed by 4 digits, immediately followed by altitude as
// F|A|S followed by 3-5 digits. Any other "/..." suffix is an error,
// matching parseWaypoints' policy of rejecting unrecognized modifiers
// rather than silently ignoring them.
func splitToken(field string) (ident string, levelFt, speedKt int32, err error) {
	slash := strings.IndexByte(field, '/')
	if slash < 0 {
		return field, 0, 0, nil
	}
	ident = field[:slash]
	if ident == "" {
		return "", 0, 0, fmt.Errorf("no fix found before /")
	}
	group := field[slash+1:]
	if len(group) < 6 {
		return "", 0, 0, fmt.Errorf("malformed speed/level change group %q", group)
	}

	switch group[0] {
	case 'N', 'M', 'K':
	default:
		return "", 0, 0, fmt.Errorf("unrecognized speed unit %q", group[0:1])
	}
	speed, err := strconv.Atoi(group[1:5])
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid speed %q: %w", group[1:5], err)
	}

	rest := group[5:]
	if len(rest) == 0 {
		return "", 0, 0, fmt.Errorf("missing altitude after speed in %q", group)
	}
	var unit byte
	switch rest[0] {
	case 'F', 'A', 'S':
		unit = rest[0]
	default:
		return "", 0, 0, fmt.Errorf("unrecognized altitude unit %q", rest[0:1])
	}
	level, err := strconv.Atoi(rest[1:])
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid altitude %q: %w", rest[1:], err)
	}

	levelFt = int32(level)
	if unit == 'F' || unit == 'A' {
		levelFt *= 100
	}
	return ident, levelFt, int32(speed), nil
}

// Encode renders waypoints back to an item-15 route string, the reverse
// of Parse, mirroring WaypointArray.Encode's round-trip in the teacher.
func Encode(waypoints []Waypoint) string {
	var b strings.Builder
	for i, wp := range waypoints {
		if i > 0 {
			b.WriteByte(' ')
			if wp.Airway != "" {
				b.WriteString(wp.Airway)
			} else {
				b.WriteString("DCT")
			}
			b.WriteByte(' ')
		}
		b.WriteString(wp.Ident)
		if wp.SpeedKt != 0 || wp.LevelFt != 0 {
			b.WriteByte('/')
			b.WriteByte('N')
			fmt.Fprintf(&b, "%04d", wp.SpeedKt)
			b.WriteByte('F')
			fmt.Fprintf(&b, "%03d", wp.LevelFt/100)
		}
	}
	return b.String()
}

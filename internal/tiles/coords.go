// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package tiles

import (
	"fmt"
	"math"
)

// MaxLatitude is the Web Mercator latitude limit.
const MaxLatitude = 85.05112878

// Coord addresses one slippy-map tile.
type Coord struct {
	Z int `json:"z"`
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coord) String() string {
	return fmt.Sprintf("%d/%d/%d", c.Z, c.X, c.Y)
}

// TileFor returns the tile containing lat/lon at zoom z. Latitudes beyond
// the Mercator limit are clamped and longitudes wrap.
func TileFor(lat, lon float64, z int) Coord {
	if z < 0 {
		z = 0
	}
	n := math.Exp2(float64(z))
	maxIdx := int(n) - 1

	lat = math.Max(-MaxLatitude, math.Min(MaxLatitude, lat))
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	lon -= 180

	latRad := lat * math.Pi / 180
	x := int(math.Floor((lon + 180) / 360 * n))
	y := int(math.Floor((1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2 * n))

	return Coord{Z: z, X: clamp(x, 0, maxIdx), Y: clamp(y, 0, maxIdx)}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

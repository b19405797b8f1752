package particle

import "math"

func degrees(v Vec) float64 {
	d := math.Atan2(v.Y, v.X) * 180 / math.Pi
	if d < 0 {
		d += 360
	}
	return d
}

package astro

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// shakeFreq holds the three sine frequencies per axis.
var shakeFreq = [3][3]float64{
	{1, 2.1, 4.3},
	{1.23, 4.56, 7.89},
	{3.45, 6.78, 9.01},
}

// CameraShake returns the jitter offset applied to the camera rig at the
// given elapsed time. Each axis is a product of three sines so the motion
// never visibly repeats.
func CameraShake(amplitude, elapsed float64) mgl32.Vec3 {
	t := elapsed * 0.2
	var out mgl32.Vec3
	for axis, f := range shakeFreq {
		out[axis] = float32(amplitude * math.Sin(t*f[0]) * math.Sin(t*f[1]) * math.Sin(t*f[2]))
	}
	return out
}

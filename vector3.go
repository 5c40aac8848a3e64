package tubefall

import "math"

type Vector3 struct {
	X float64
	Y float64
	Z float64
}

func NewVector3(x, y, z float64) *Vector3 {
	return &Vector3{
		X: x,
		Y: y,
		Z: z,
	}
}

func (v *Vector3) Normalize() {
	length := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
	if length == 0 {
		return
	}
	v.X /= length
	v.Y /= length
	v.Z /= length
}

func (v *Vector3) Copy() *Vector3 {
	return &Vector3{
		X: v.X,
		Y: v.Y,
		Z: v.Z,
	}
}

func GetLength(vec []float64) float64 {
	return math.Sqrt(vec[0]*vec[0] + vec[1]*vec[1] + vec[2]*vec[2])
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func clampFloat(value, min, max float64) float64 {
	return math.Max(min, math.Min(value, max))
}

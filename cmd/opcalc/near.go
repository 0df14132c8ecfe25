package main

import "math"

// near rounds x to the few bits of fraction that survive adding and then
// subtracting 256 in single precision. Values that agree there are close
// enough to print a name for.
func near(x float64) float32 {
	y := float32(float32(x) + 256)
	return float32(y - 256)
}

var nearValues = func() map[float32]string {
	known := []struct {
		v    float64
		name string
	}{
		{0.5, "1 / 2"},
		{1.0 / 3, "1 / 3"},
		{2.0 / 3, "2 / 3"},
		{1.0 / 6, "1 / 6"},
		{1.0 / 7, "1 / 7"},
		{1.0 / 9, "1 / 9"},
		{math.Sqrt2, "sqrt 2"},
		{math.Sqrt2 / 2, "sqrt 2 / 2"},
		{math.Sqrt(3), "sqrt 3"},
		{math.Sqrt(3) / 2, "sqrt 3 / 2"},
		{math.Pi, "pi"},
		{math.Pi / 2, "pi / 2"},
		{math.Pi / 3, "pi / 3"},
		{math.Pi / 4, "pi / 4"},
		{math.Pi / 6, "pi / 6"},
		{2 * math.Pi, "tau"},
		{1 / math.Pi, "1 / pi"},
		{math.E, "e"},
		{1 / math.E, "1 / e"},
		{math.Phi - 1, "phi"},
		{math.Phi, "1 + phi"},
		{math.Ln2, "log 2"},
		{math.Ln10, "log 10"},
	}
	m := make(map[float32]string, 2*len(known))
	for _, k := range known {
		m[near(k.v)] = k.name
		m[near(-k.v)] = "-" + k.name
	}
	return m
}()

// nearName returns the name of a known value close to x, or the empty string
// if there is none or x is far from zero.
func nearName(x float64) string {
	if math.IsNaN(x) || math.Abs(x) >= 256 {
		return ""
	}
	return nearValues[near(x)]
}

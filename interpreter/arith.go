package interpreter

import "math"

// Checked int64 arithmetic. Each function reports false on overflow.

func addInt(x, y int64) (int64, bool) {
	r := x + y
	if (y > 0 && r < x) || (y < 0 && r > x) {
		return 0, false
	}
	return r, true
}

func subInt(x, y int64) (int64, bool) {
	r := x - y
	if (y > 0 && r > x) || (y < 0 && r < x) {
		return 0, false
	}
	return r, true
}

func mulInt(x, y int64) (int64, bool) {
	if x == 0 || y == 0 {
		return 0, true
	}
	if (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
		return 0, false
	}
	r := x * y
	if r/y != x {
		return 0, false
	}
	return r, true
}

func divInt(x, y int64) (int64, bool) {
	if x == math.MinInt64 && y == -1 {
		return 0, false
	}
	return x / y, true
}

// powInt computes x**y for y >= 0 by repeated squaring.
func powInt(x, y int64) (int64, bool) {
	result := int64(1)
	base := x
	for y > 0 {
		if y&1 == 1 {
			var ok bool
			if result, ok = mulInt(result, base); !ok {
				return 0, false
			}
		}
		y >>= 1
		if y > 0 {
			var ok bool
			if base, ok = mulInt(base, base); !ok {
				return 0, false
			}
		}
	}
	return result, true
}

package geometry

import (
	"math"
	"testing"
)

// floatEquals is a helper for testing scalar float values with epsilon.
func floatEquals(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

func TestNewVector(t *testing.T) {
	v := NewVector(1, 2)
	if v.X != 1 || v.Y != 2 {
		t.Errorf("NewVector(1, 2) = %v; want (1, 2)", v)
	}
}

func TestVector_String(t *testing.T) {
	v := Vector2D{1.234, 5.678}
	want := "(1.23, 5.68)"
	if got := v.String(); got != want {
		t.Errorf("Vector2D.String() = %q; want %q", got, want)
	}
}

func TestVector_Arithmetic(t *testing.T) {
	v1 := Vector2D{1, 2}
	v2 := Vector2D{3, 4}

	t.Run("Add", func(t *testing.T) {
		want := Vector2D{4, 6}
		if got := v1.Add(v2); !got.Eq(want) {
			t.Errorf("%v.Add(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Sub", func(t *testing.T) {
		want := Vector2D{-2, -2}
		if got := v1.Sub(v2); !got.Eq(want) {
			t.Errorf("%v.Sub(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Mul", func(t *testing.T) {
		want := Vector2D{2, 4}
		if got := v1.Mul(2); !got.Eq(want) {
			t.Errorf("%v.Mul(2) = %v; want %v", v1, got, want)
		}
	})

	t.Run("Dot", func(t *testing.T) {
		if got := v1.Dot(v2); got != 11 {
			t.Errorf("%v.Dot(%v) = %v; want 11", v1, v2, got)
		}
	})

	t.Run("Cross", func(t *testing.T) {
		if got := (Vector2D{1, 0}).Cross(Vector2D{0, 1}); got != 1 {
			t.Errorf("Cross X,Y = %v; want 1", got)
		}
		if got := v1.Cross(v1.Mul(3)); got != 0 {
			t.Errorf("Cross parallel = %v; want 0", got)
		}
	})
}

func TestVector_Magnitude(t *testing.T) {
	v := Vector2D{3, 4} // 3-4-5 triangle

	t.Run("Len", func(t *testing.T) {
		if got := v.Len(); got != 5 {
			t.Errorf("Len = %v; want 5", got)
		}
	})

	t.Run("LenSqr", func(t *testing.T) {
		if got := v.LenSqr(); got != 25 {
			t.Errorf("LenSqr = %v; want 25", got)
		}
	})

	t.Run("Normalize", func(t *testing.T) {
		got := v.Normalize()
		want := Vector2D{0.6, 0.8}
		if !got.Eq(want) {
			t.Errorf("Normalize = %v; want %v", got, want)
		}
	})

	t.Run("NormalizeZero", func(t *testing.T) {
		if got := Zero.Normalize(); got != Zero {
			t.Errorf("Normalize(0,0) = %v; want (0,0)", got)
		}
	})

	t.Run("DistanceTo", func(t *testing.T) {
		if got := (Vector2D{1, 1}).DistanceTo(Vector2D{4, 5}); got != 5 {
			t.Errorf("DistanceTo = %v; want 5", got)
		}
	})
}

func TestVector_ClampMagnitude(t *testing.T) {
	tests := []struct {
		name  string
		v     Vector2D
		limit float64
		want  Vector2D
	}{
		{"under limit", Vector2D{0.3, 0.4}, 1, Vector2D{0.3, 0.4}},
		{"exactly at limit", Vector2D{3, 4}, 5, Vector2D{3, 4}},
		{"over limit", Vector2D{3, 4}, 1, Vector2D{0.6, 0.8}},
		{"negative components", Vector2D{-6, -8}, 5, Vector2D{-3, -4}},
		{"zero vector", Zero, 0.01, Zero},
		{"zero vector zero limit", Zero, 0, Zero},
		{"zero limit", Vector2D{1, 1}, 0, Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.ClampMagnitude(tt.limit)
			if !got.Eq(tt.want) {
				t.Errorf("%v.ClampMagnitude(%v) = %v; want %v", tt.v, tt.limit, got, tt.want)
			}
			if again := got.ClampMagnitude(tt.limit); !again.Eq(got) {
				t.Errorf("ClampMagnitude is not idempotent: %v then %v", got, again)
			}
			if got.Len() > tt.limit+Epsilon {
				t.Errorf("|%v| = %v exceeds limit %v", got, got.Len(), tt.limit)
			}
		})
	}
}

func TestVector_SetMagnitude(t *testing.T) {
	tests := []struct {
		name string
		v    Vector2D
		mag  float64
	}{
		{"grow", Vector2D{5, 5}, 10},
		{"shrink", Vector2D{3, 4}, 1},
		{"unit axis", Vector2D{0, -7}, 2.5},
		{"tiny vector", Vector2D{1e-6, -2e-6}, 1},
		{"zero magnitude", Vector2D{2, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.SetMagnitude(tt.mag)
			if !floatEquals(got.Len(), tt.mag) {
				t.Errorf("|%v.SetMagnitude(%v)| = %v; want %v", tt.v, tt.mag, got.Len(), tt.mag)
			}
			if tt.mag == 0 {
				return
			}
			// same direction: parallel and pointing the same way
			if !floatEquals(got.Cross(tt.v)/(got.Len()*tt.v.Len()), 0) {
				t.Errorf("%v is not parallel to %v", got, tt.v)
			}
			if got.Dot(tt.v) <= 0 {
				t.Errorf("%v points away from %v", got, tt.v)
			}
		})
	}
}

func TestVector_SetMagnitudeZeroIsNotFinite(t *testing.T) {
	got := Zero.SetMagnitude(1)
	if got.IsFinite() {
		t.Errorf("Zero.SetMagnitude(1) = %v; want non-finite components", got)
	}
	if !math.IsNaN(got.X) || !math.IsNaN(got.Y) {
		t.Errorf("Zero.SetMagnitude(1) = %v; want NaN components", got)
	}
}

func TestVector_IsFinite(t *testing.T) {
	tests := []struct {
		v    Vector2D
		want bool
	}{
		{Vector2D{1, 2}, true},
		{Zero, true},
		{Vector2D{math.NaN(), 0}, false},
		{Vector2D{0, math.Inf(-1)}, false},
		{Vector2D{math.Inf(1), math.Inf(1)}, false},
	}
	for _, tt := range tests {
		if got := tt.v.IsFinite(); got != tt.want {
			t.Errorf("%v.IsFinite() = %v; want %v", tt.v, got, tt.want)
		}
	}
}

func TestVector_Eq(t *testing.T) {
	v := Vector2D{1, 2}

	if !v.Eq(Vector2D{1, 2}) {
		t.Error("Eq exact match failed")
	}

	vClose := Vector2D{1 + Epsilon/2, 2 - Epsilon/2}
	if !v.Eq(vClose) {
		t.Error("Eq epsilon match failed")
	}

	if v.Eq(Vector2D{1.1, 2}) {
		t.Error("Eq mismatch failed")
	}
}

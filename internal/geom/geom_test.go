package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectIntersects(t *testing.T) {
	base := R(0, 0, 10, 10)

	tests := []struct {
		name     string
		other    Rect
		expected bool
	}{
		{name: "overlapping", other: R(5, 5, 10, 10), expected: true},
		{name: "contained", other: R(2, 2, 2, 2), expected: true},
		{name: "touching edge", other: R(10, 0, 5, 5), expected: false},
		{name: "disjoint", other: R(20, 20, 5, 5), expected: false},
		{name: "overlap on x only", other: R(5, 11, 5, 5), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, base.Intersects(tt.other))
			assert.Equal(t, tt.expected, tt.other.Intersects(base))
		})
	}
}

func TestRectContains(t *testing.T) {
	r := R(2, 3, 4, 5)
	assert.True(t, r.Contains(Pt(2, 3)))
	assert.True(t, r.Contains(Pt(5.9, 7.9)))
	assert.False(t, r.Contains(Pt(6, 3)))
	assert.False(t, r.Contains(Pt(1, 4)))
	assert.Equal(t, Pt(4, 5.5), r.Center())
}

func TestPointMath(t *testing.T) {
	p := Pt(3, 4)
	assert.Equal(t, Pt(4, 6), p.Add(Pt(1, 2)))
	assert.Equal(t, Pt(2, 2), p.Sub(Pt(1, 2)))
	assert.Equal(t, 7.0, p.Manhattan(Pt(0, 0)))
	assert.Equal(t, R(1, 1, 4, 5), R(0, 0, 4, 5).Translate(Pt(1, 1)))
	assert.Equal(t, R(7, 8, 4, 5), R(0, 0, 4, 5).Moved(Pt(7, 8)))
}

package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(h, m int) time.Time {
	return time.Date(2026, 1, 5, h, m, 0, 0, time.UTC)
}

func TestSpan_Overlaps(t *testing.T) {
	a := Span{Start: at(9, 0), End: at(10, 0)}

	assert.True(t, a.Overlaps(Span{Start: at(9, 30), End: at(10, 30)}))
	assert.True(t, a.Overlaps(Span{Start: at(8, 0), End: at(11, 0)}))

	// Граничащие интервалы не пересекаются (полуоткрытая семантика)
	assert.False(t, a.Overlaps(Span{Start: at(10, 0), End: at(11, 0)}))
	assert.False(t, a.Overlaps(Span{Start: at(8, 0), End: at(9, 0)}))
}

func TestMerge_OverlappingAndAdjacent(t *testing.T) {
	spans := []Span{
		{Start: at(12, 0), End: at(13, 0)},
		{Start: at(9, 0), End: at(10, 0)},
		{Start: at(10, 0), End: at(11, 0)}, // смежный с первым
		{Start: at(9, 30), End: at(10, 30)},
	}

	merged := Merge(spans)

	assert.Equal(t, []Span{
		{Start: at(9, 0), End: at(11, 0)},
		{Start: at(12, 0), End: at(13, 0)},
	}, merged)
}

func TestMerge_Idempotent(t *testing.T) {
	spans := []Span{
		{Start: at(9, 0), End: at(11, 0)},
		{Start: at(12, 0), End: at(13, 0)},
	}

	once := Merge(spans)
	twice := Merge(once)
	assert.Equal(t, once, twice)
}

func TestMerge_DropsEmpty(t *testing.T) {
	spans := []Span{
		{Start: at(9, 0), End: at(9, 0)},
		{Start: at(10, 0), End: at(9, 0)},
	}
	assert.Nil(t, Merge(spans))
}

func TestSubtract(t *testing.T) {
	base := []Span{{Start: at(9, 0), End: at(17, 0)}}
	busy := []Span{
		{Start: at(10, 0), End: at(11, 0)},
		{Start: at(12, 0), End: at(14, 0)},
	}

	gaps := Subtract(base, busy)

	assert.Equal(t, []Span{
		{Start: at(9, 0), End: at(10, 0)},
		{Start: at(11, 0), End: at(12, 0)},
		{Start: at(14, 0), End: at(17, 0)},
	}, gaps)
}

func TestSubtract_BusyCoversBase(t *testing.T) {
	base := []Span{{Start: at(9, 0), End: at(17, 0)}}
	busy := []Span{{Start: at(8, 0), End: at(18, 0)}}

	assert.Empty(t, Subtract(base, busy))
}

func TestSubtract_NoBusy(t *testing.T) {
	base := []Span{{Start: at(9, 0), End: at(17, 0)}}
	assert.Equal(t, base, Subtract(base, nil))
}

func TestIntersect(t *testing.T) {
	a := []Span{
		{Start: at(9, 0), End: at(12, 0)},
		{Start: at(14, 0), End: at(17, 0)},
	}
	b := []Span{{Start: at(11, 0), End: at(15, 0)}}

	got := Intersect(a, b)

	assert.Equal(t, []Span{
		{Start: at(11, 0), End: at(12, 0)},
		{Start: at(14, 0), End: at(15, 0)},
	}, got)
}

func TestIntersect_NoOverlap(t *testing.T) {
	a := []Span{{Start: at(9, 0), End: at(10, 0)}}
	b := []Span{{Start: at(10, 0), End: at(11, 0)}}

	assert.Empty(t, Intersect(a, b))
}

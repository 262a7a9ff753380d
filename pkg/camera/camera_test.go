package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"iiifview/pkg/geom"
)

var testLimits = Limits{
	MinZoomScale:      0.25,
	MinImageSize:      256,
	WorldImageMaxSize: geom.V(2713, 1910),
}

func TestFit(t *testing.T) {
	world := geom.FromCorners(geom.V(0, -1910), geom.V(2713, 0))
	s := Fit(world, geom.V(1000, 800))

	assert.Equal(t, 2.713, s.Scale)
	assert.Equal(t, geom.V(1356.5, -955), s.Translation)
}

func TestApplyZoomAtCentre(t *testing.T) {
	initial := State{Scale: 2}
	centre := geom.V(500, 400)

	next, inv := initial.Apply(ModeZoom, centre, centre, 0.5, geom.Vec2{}, testLimits)

	assert.Equal(t, 1.0, next.Scale)
	assert.Equal(t, geom.Vec2{}, next.Translation)
	assert.Equal(t, InvalidateZoom, inv)
}

func TestApplyZoomKeepsCursorFixed(t *testing.T) {
	initial := State{Scale: 2}
	centre := geom.V(500, 400)
	cursor := geom.V(600, 400)

	next, inv := initial.Apply(ModeZoom, cursor, centre, 0.5, geom.Vec2{}, testLimits)

	assert.Equal(t, 1.0, next.Scale)
	assert.Equal(t, geom.V(100, 0), next.Translation)
	assert.Equal(t, InvalidateZoom, inv)
}

func TestApplyPan(t *testing.T) {
	initial := State{Scale: 2}
	centre := geom.V(500, 400)

	next, inv := initial.Apply(ModePan, centre, centre, 1, geom.V(10, 20), testLimits)

	assert.Equal(t, 2.0, next.Scale)
	assert.Equal(t, geom.V(-20, 40), next.Translation)
	assert.Equal(t, InvalidateTranslate, inv)
}

func TestApplyZoomClamped(t *testing.T) {
	initial := State{Scale: 2}
	centre := geom.V(500, 400)

	next, _ := initial.Apply(ModeZoom, centre, centre, 0.01, geom.Vec2{}, testLimits)
	assert.Equal(t, testLimits.MinZoomScale, next.Scale)

	next, _ = initial.Apply(ModeZoom, centre, centre, 100, geom.Vec2{}, testLimits)
	assert.Equal(t, 2713.0/256, next.Scale)
}

func TestApplyNoChange(t *testing.T) {
	initial := State{Translation: geom.V(3, 4), Scale: 2}
	centre := geom.V(500, 400)

	next, inv := initial.Apply(ModePan|ModeZoom, centre, centre, 1, geom.Vec2{}, testLimits)

	assert.Equal(t, initial, next)
	assert.Equal(t, Invalidate(0), inv)
}

func TestApplyNoMode(t *testing.T) {
	initial := State{Scale: 2}
	next, inv := initial.Apply(0, geom.Vec2{}, geom.Vec2{}, 0.5, geom.V(10, 10), testLimits)
	assert.Equal(t, initial, next)
	assert.Equal(t, Invalidate(0), inv)
}

func TestViewportWorldRect(t *testing.T) {
	s := State{Translation: geom.V(100, -50), Scale: 2}
	r := s.ViewportWorldRect(geom.V(200, 100))

	assert.Equal(t, geom.V(-100, -150), r.Min)
	assert.Equal(t, geom.V(300, 50), r.Max)
}

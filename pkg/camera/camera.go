package camera

import "iiifview/pkg/geom"

// Mode selects which gestures the current input drives.
type Mode uint8

const (
	ModePan Mode = 1 << iota
	ModeZoom
)

func (m Mode) Has(flag Mode) bool {
	return m&flag != 0
}

// Invalidate reports which parts of the view an Apply call changed, so
// the caller knows whether tiles need recomputing.
type Invalidate uint8

const (
	InvalidateTranslate Invalidate = 1 << iota
	InvalidateZoom
)

// Limits bound the zoom range. MinImageSize is the smallest on-screen
// long edge the image may shrink to, in viewport pixels.
type Limits struct {
	MinZoomScale      float64
	MinImageSize      float64
	WorldImageMaxSize geom.Vec2
}

// State is an orthographic pan/zoom camera over world space. Scale is
// world units per viewport pixel, so larger means zoomed out.
type State struct {
	Translation geom.Vec2
	Scale       float64
}

// Fit frames the whole world rect in the viewport, centred.
func Fit(worldRect geom.Rect, viewport geom.Vec2) State {
	zoom := worldRect.Size().DivVec(viewport)
	return State{
		Scale:       zoom.MaxElement(),
		Translation: geom.V(worldRect.Width()/2, -worldRect.Height()/2),
	}
}

// Apply folds a gesture into the camera. The gesture is relative to
// the state captured when it started: deltaZoom is the accumulated
// zoom factor and deltaMove the accumulated cursor drag in viewport
// pixels. Zooming keeps the world point under the cursor fixed.
func (initial State) Apply(mode Mode, cursor, viewportCentre geom.Vec2, deltaZoom float64, deltaMove geom.Vec2, limits Limits) (State, Invalidate) {
	if !mode.Has(ModePan | ModeZoom) {
		return initial, 0
	}

	zoom := 1.0
	if mode.Has(ModeZoom) {
		zoom = deltaZoom
	}

	maxScale := limits.WorldImageMaxSize.MaxElement() / limits.MinImageSize
	scale := initial.Scale * zoom
	if scale < limits.MinZoomScale {
		scale = limits.MinZoomScale
	}
	if scale > maxScale {
		scale = maxScale
	}
	deltaScale := initial.Scale - scale

	moveDueToZoom := cursor.Sub(viewportCentre).ReflectY().Mul(deltaScale)

	move := geom.Vec2{}
	if mode.Has(ModePan) {
		move = deltaMove.ReflectY()
	}

	if deltaMove == (geom.Vec2{}) && deltaScale == 0 {
		return initial, 0
	}

	next := State{
		Scale:       scale,
		Translation: initial.Translation.Sub(move.Mul(scale)).Add(moveDueToZoom),
	}
	var invalidate Invalidate
	if deltaMove != (geom.Vec2{}) {
		invalidate |= InvalidateTranslate
	}
	if deltaScale != 0 {
		invalidate |= InvalidateZoom
	}
	return next, invalidate
}

// ViewportWorldRect is the world-space rect the camera shows through a
// viewport of the given pixel size.
func (s State) ViewportWorldRect(viewport geom.Vec2) geom.Rect {
	half := viewport.Mul(s.Scale / 2)
	return geom.FromCorners(s.Translation.Sub(half), s.Translation.Add(half))
}

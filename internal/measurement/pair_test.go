package measurement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/stlmeasure/pkg/geometry"
)

type fakeVisual struct {
	kind    string
	pos     geometry.Vector3
	text    string
	scene   *fakeScene
	removed bool
}

func (v *fakeVisual) Remove() {
	if v.removed {
		v.scene.doubleRemoves++
	}
	v.removed = true
}

type fakeScene struct {
	visuals       []*fakeVisual
	doubleRemoves int
}

func (s *fakeScene) add(kind string, pos geometry.Vector3, text string) *fakeVisual {
	v := &fakeVisual{kind: kind, pos: pos, text: text, scene: s}
	s.visuals = append(s.visuals, v)
	return v
}

func (s *fakeScene) AddMarker(pos geometry.Vector3, index int) Visual {
	return s.add("marker", pos, "")
}

func (s *fakeScene) AddLine(start, end geometry.Vector3) Visual {
	return s.add("line", start.Midpoint(end), "")
}

func (s *fakeScene) AddLabel(anchor geometry.Vector3, text string) Visual {
	return s.add("label", anchor, text)
}

// live returns the visuals that have not been removed
func (s *fakeScene) live() []*fakeVisual {
	var out []*fakeVisual
	for _, v := range s.visuals {
		if !v.removed {
			out = append(out, v)
		}
	}
	return out
}

func (s *fakeScene) liveKinds() map[string]int {
	kinds := map[string]int{}
	for _, v := range s.live() {
		kinds[v.kind]++
	}
	return kinds
}

var (
	p1 = geometry.NewVector3(0, 0, 0)
	p2 = geometry.NewVector3(3, 4, 0)
	p3 = geometry.NewVector3(-1, 2, 7)
)

func TestPairStartsEmpty(t *testing.T) {
	pair := NewPair(&fakeScene{}, DefaultFormat())

	assert.Equal(t, Empty, pair.State())
	assert.Empty(t, pair.Points())
	_, ok := pair.Distance()
	assert.False(t, ok)
	_, ok = pair.Label()
	assert.False(t, ok)
}

func TestPairFirstPoint(t *testing.T) {
	scene := &fakeScene{}
	pair := NewPair(scene, DefaultFormat())

	assert.Equal(t, OnePoint, pair.Add(p1))
	assert.Equal(t, []geometry.Vector3{p1}, pair.Points())
	assert.Equal(t, map[string]int{"marker": 1}, scene.liveKinds())
}

func TestPairCompleteMeasuresDistance(t *testing.T) {
	scene := &fakeScene{}
	pair := NewPair(scene, DefaultFormat())

	pair.Add(p1)
	require.Equal(t, Complete, pair.Add(p2))

	d, ok := pair.Distance()
	require.True(t, ok)
	assert.Equal(t, 5.0, d.Value)
	assert.Equal(t, geometry.NewVector3(1.5, 2, 0), d.Midpoint)
	assert.Equal(t, geometry.NewVector3(3, 4, 0), d.Delta)

	label, ok := pair.Label()
	require.True(t, ok)
	assert.Equal(t, "5.0000", label)

	assert.Equal(t, map[string]int{"marker": 2, "line": 1, "label": 1}, scene.liveKinds())
	for _, v := range scene.live() {
		if v.kind == "label" {
			assert.Equal(t, geometry.NewVector3(1.5, 2, 0), v.pos)
			assert.Equal(t, "5.0000", v.text)
		}
	}
}

func TestPairThirdPickStartsFreshPair(t *testing.T) {
	scene := &fakeScene{}
	pair := NewPair(scene, DefaultFormat())

	pair.Add(p1)
	pair.Add(p2)
	assert.Equal(t, OnePoint, pair.Add(p3))

	assert.Equal(t, []geometry.Vector3{p3}, pair.Points())
	_, ok := pair.Distance()
	assert.False(t, ok)

	live := scene.live()
	require.Len(t, live, 1)
	assert.Equal(t, "marker", live[0].kind)
	assert.Equal(t, p3, live[0].pos)
	assert.Zero(t, scene.doubleRemoves)
}

func TestPairFourthPickCompletesNewPair(t *testing.T) {
	scene := &fakeScene{}
	pair := NewPair(scene, DefaultFormat())

	for _, p := range []geometry.Vector3{p1, p2, p3, p1} {
		pair.Add(p)
	}

	d, ok := pair.Distance()
	require.True(t, ok)
	assert.Equal(t, p3, d.Start)
	assert.Equal(t, p1, d.End)
	assert.Equal(t, map[string]int{"marker": 2, "line": 1, "label": 1}, scene.liveKinds())
}

func TestPairDistanceIsSymmetric(t *testing.T) {
	forward := NewPair(&fakeScene{}, DefaultFormat())
	forward.Add(p2)
	forward.Add(p3)

	backward := NewPair(&fakeScene{}, DefaultFormat())
	backward.Add(p3)
	backward.Add(p2)

	df, _ := forward.Distance()
	db, _ := backward.Distance()
	assert.Equal(t, df.Value, db.Value)
	assert.Equal(t, df.Midpoint, db.Midpoint)
}

func TestPairReset(t *testing.T) {
	scene := &fakeScene{}
	pair := NewPair(scene, DefaultFormat())

	assert.False(t, pair.Reset())

	pair.Add(p1)
	pair.Add(p2)
	assert.True(t, pair.Reset())
	assert.Equal(t, Empty, pair.State())
	assert.Empty(t, scene.live())
}

func TestPairToleratesNilVisuals(t *testing.T) {
	pair := NewPair(nilScene{}, DefaultFormat())

	pair.Add(p1)
	pair.Add(p2)
	assert.Equal(t, OnePoint, pair.Add(p3))
}

type nilScene struct{}

func (nilScene) AddMarker(geometry.Vector3, int) Visual           { return nil }
func (nilScene) AddLine(geometry.Vector3, geometry.Vector3) Visual { return nil }
func (nilScene) AddLabel(geometry.Vector3, string) Visual          { return nil }

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "5.0000", FormatDistance(5, 4, ""))
	assert.Equal(t, "1.23 mm", FormatDistance(1.23456, 2, "mm"))
	assert.Equal(t, "2.0000", FormatDistance(2, -1, ""))

	d := NewDistance(p1, geometry.NewVector3(1, 1, 1))
	assert.Equal(t, "1.732 mm", d.Text(Format{Precision: 3, Unit: "mm"}))
	assert.InDelta(t, 1.7320508075688772, d.Value, 0)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "empty", Empty.String())
	assert.Equal(t, "one-point", OnePoint.String())
	assert.Equal(t, "complete", Complete.String())
	assert.Equal(t, "State(7)", State(7).String())
}

package recycler

import (
	"bytes"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akashdeep-Patra/pooled-list/internal/window"
)

func linearFixture(t *testing.T, extent float64, opts ...fixtureOption) *fixture {
	t.Helper()
	f, err := newFixture(Linear, newFakeViewport(window.Vertical, extent), 50, &LayoutMetadata{}, opts...)
	require.NoError(t, err)
	t.Cleanup(f.list.Close)
	return f
}

func gridFixture(t *testing.T, extent float64, columns int) *fixture {
	t.Helper()
	f, err := newFixture(Grid, newFakeViewport(window.Vertical, extent), 50,
		&LayoutMetadata{ConstraintCount: columns})
	require.NoError(t, err)
	t.Cleanup(f.list.Close)
	return f
}

func span(from, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = from + i
	}
	return out
}

// requireConsistent checks the window invariants against an independent
// calculation from the current viewport position.
func requireConsistent(t *testing.T, f *fixture) {
	t.Helper()
	l := f.list
	p := window.NormalizePosition(f.viewport.Axis(), f.viewport.ScrollFraction())
	want := window.Calculate(l.Len(), l.Geometry(), p)

	require.Equal(t, want.CulledAbove, l.CulledAbove())
	require.Len(t, l.ActiveIndices(), want.Size)
	require.Equal(t, span(want.CulledAbove, want.Size), l.ActiveIndices())

	items := l.Items()
	var bound []int
	for _, e := range l.Active() {
		bound = append(bound, e.Data())
	}
	if want.Size > 0 {
		require.Equal(t, items[want.CulledAbove:want.CulledAbove+want.Size], bound)
	}
	require.Equal(t, bound, f.displayedData(), "display order must match index order")

	// Spacers lead the content children.
	nodes := f.content.Nodes()
	for i := 0; i < l.SpacerNodes(); i++ {
		require.IsType(t, &Spacer{}, nodes[i])
	}
	require.Equal(t, window.ContentExtent(l.Len(), l.Geometry()), f.content.Extent())
}

func TestNewRequiresCollaborators(t *testing.T) {
	vp := newFakeViewport(window.Vertical, 100)
	_, err := New(Config[int]{Content: NewDisplayList(), Viewport: vp})
	assert.Error(t, err)
	_, err = New(Config[int]{NewElement: func() Element[int] { return &fakeElement{} }, Viewport: vp})
	assert.Error(t, err)
	_, err = New(Config[int]{NewElement: func() Element[int] { return &fakeElement{} }, Content: NewDisplayList()})
	assert.Error(t, err)
}

func TestNewPrewarmsPools(t *testing.T) {
	f := linearFixture(t, 200)
	st := f.list.Stats()
	assert.Equal(t, DefaultPoolCapacity, st.Pool.Created)
	assert.Equal(t, DefaultPoolCapacity, st.Pool.Free)
	assert.Equal(t, 0, st.Pool.Active)
	assert.Equal(t, -1, f.list.CulledAbove())
	assert.Equal(t, 1, f.list.SpacerNodes())

	g := gridFixture(t, 200, 4)
	assert.Equal(t, DefaultSpacerPoolCapacity, g.list.Stats().SpacerPool.Created)
	assert.Equal(t, 0, g.list.SpacerNodes())
}

func TestScenarioLinearAtStart(t *testing.T) {
	f := linearFixture(t, 200)
	f.list.Initialize(sequence(100))

	w := f.list.Window()
	assert.Equal(t, 4, w.VisibleCapacity)
	assert.Equal(t, 5, w.Size)
	assert.Equal(t, 0, f.list.CulledAbove())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, f.list.ActiveIndices())
	assert.Equal(t, []int{0, 10, 20, 30, 40}, f.displayedData())
	assert.Equal(t, 1.0, f.viewport.ScrollFraction(), "vertical start edge is raw fraction 1")

	sp := f.content.Nodes()[0].(*Spacer)
	assert.True(t, sp.Ignored())
	assert.Zero(t, sp.Extent())
	requireConsistent(t, f)
}

func TestScenarioLinearAtEnd(t *testing.T) {
	f := linearFixture(t, 200)
	f.list.Initialize(sequence(100))
	f.viewport.scrollTo(1)

	assert.Equal(t, 95, f.list.CulledAbove())
	assert.Equal(t, []int{95, 96, 97, 98, 99}, f.list.ActiveIndices())
	assert.Equal(t, []int{950, 960, 970, 980, 990}, f.displayedData())

	sp := f.content.Nodes()[0].(*Spacer)
	assert.False(t, sp.Ignored())
	assert.Equal(t, 95*50.0, sp.Extent())

	st := f.list.Stats()
	assert.Equal(t, 1, st.Rebuilds)
	assert.Equal(t, 1, st.Reorientations)
	assert.Equal(t, 5, st.Moves, "a jump larger than the window moves each element once")
	requireConsistent(t, f)
}

func TestScenarioOneStepReorientation(t *testing.T) {
	f := linearFixture(t, 200)
	f.list.Initialize(sequence(100))
	before := f.list.Stats()

	// floor(p * (100-4)) == 1
	f.viewport.scrollTo(1.5 / 96)
	after := f.list.Stats()

	assert.Equal(t, 1, f.list.CulledAbove())
	assert.Equal(t, before.Pool.Acquired, after.Pool.Acquired, "no pool traffic")
	assert.Equal(t, before.Pool.Released, after.Pool.Released, "no pool traffic")
	assert.Equal(t, before.Rebuilds, after.Rebuilds)
	assert.Equal(t, before.Moves+1, after.Moves)
	assert.Equal(t, before.Pushes+1, after.Pushes, "only the moved element is rebound")
	requireConsistent(t, f)

	f.viewport.scrollTo(0)
	assert.Equal(t, before.Moves+2, f.list.Stats().Moves)
	assert.Equal(t, []int{0, 10, 20, 30, 40}, f.displayedData())
	requireConsistent(t, f)
}

func TestScenarioGridContentExtent(t *testing.T) {
	f := gridFixture(t, 100, 4)
	f.list.Initialize(sequence(23))

	assert.Equal(t, 300.0, f.content.Extent())
	w := f.list.Window()
	assert.Equal(t, 8, w.VisibleCapacity)
	assert.Equal(t, 12, w.Size)
	assert.Equal(t, 11, w.MaxCulled)
	assert.Equal(t, 0, f.list.SpacerNodes())
	requireConsistent(t, f)
}

func TestGridSpacersTrackCulledCells(t *testing.T) {
	f := gridFixture(t, 100, 4)
	f.list.Initialize(sequence(23))

	f.viewport.scrollTo(0.5) // floor(0.5*15) = 7, rounded down to 4
	assert.Equal(t, 4, f.list.CulledAbove())
	assert.Equal(t, 4, f.list.SpacerNodes())
	requireConsistent(t, f)

	f.viewport.scrollTo(1) // final line is exempt from rounding
	assert.Equal(t, 11, f.list.CulledAbove())
	assert.Equal(t, 11, f.list.SpacerNodes())
	for _, n := range f.content.Nodes()[:11] {
		assert.Equal(t, 50.0, n.Extent())
	}
	requireConsistent(t, f)

	f.viewport.scrollTo(0)
	assert.Equal(t, 0, f.list.SpacerNodes())
	st := f.list.Stats().SpacerPool
	assert.Equal(t, 0, st.Active)
	assert.Equal(t, 11, st.Created, "spacers beyond the prewarm are built on demand")
	requireConsistent(t, f)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	for _, mode := range []Mode{Linear, Grid} {
		t.Run(mode.String(), func(t *testing.T) {
			f, err := newFixture(mode, newFakeViewport(window.Vertical, 200), 50,
				&LayoutMetadata{ConstraintCount: 3})
			require.NoError(t, err)
			defer f.list.Close()

			f.list.Initialize(sequence(60))
			f.viewport.scrollTo(0.4)
			before := f.list.Stats()

			f.list.Refresh()
			after := f.list.Stats()
			assert.Equal(t, before.Pool, after.Pool)
			assert.Equal(t, before.SpacerPool, after.SpacerPool)
			assert.Equal(t, before.Pushes, after.Pushes)
			assert.Equal(t, before.Moves, after.Moves)
			assert.Equal(t, before.Recomputes+1, after.Recomputes)
		})
	}
}

func TestRebuildAndReorientationAgree(t *testing.T) {
	for _, target := range []float64{0.01, 0.3, 0.77, 1} {
		scrolled := linearFixture(t, 200)
		scrolled.list.Initialize(sequence(100))
		for p := 0.0; p < target; p += 0.005 {
			scrolled.viewport.scrollTo(p)
		}
		scrolled.viewport.scrollTo(target)

		// A window size change forces a rebuild at the same position.
		rebuilt := linearFixture(t, 100)
		rebuilt.list.Initialize(sequence(100))
		rebuilt.viewport.extent = 200
		rebuilt.viewport.place(target)
		rebuilt.list.Refresh()

		assert.Equal(t, 2, rebuilt.list.Stats().Rebuilds)
		assert.Equal(t, scrolled.list.ActiveIndices(), rebuilt.list.ActiveIndices())
		assert.Equal(t, scrolled.displayedData(), rebuilt.displayedData())
		assert.Equal(t, scrolled.content.Nodes()[0].Extent(), rebuilt.content.Nodes()[0].Extent())
	}
}

func TestEmptySequence(t *testing.T) {
	f := linearFixture(t, 200)
	f.list.Initialize(nil)

	assert.Empty(t, f.list.ActiveIndices())
	assert.Equal(t, 0, f.list.CulledAbove())
	assert.Zero(t, f.content.Nodes()[0].Extent())
	assert.Equal(t, 1, f.content.Len())
	assert.Zero(t, f.content.Extent())

	f.viewport.scrollTo(1)
	assert.Empty(t, f.list.ActiveIndices())
	requireConsistent(t, f)
}

func TestContentThatFits(t *testing.T) {
	f := linearFixture(t, 200)
	f.list.Initialize(sequence(3))
	f.viewport.scrollTo(1)

	assert.Equal(t, 0, f.list.CulledAbove())
	assert.Equal(t, []int{0, 1, 2}, f.list.ActiveIndices())
	requireConsistent(t, f)
}

func TestMutationsKeepPosition(t *testing.T) {
	f := linearFixture(t, 200)
	f.list.Initialize(sequence(100))
	f.viewport.scrollTo(0.5)
	culled := f.list.CulledAbove()

	f.list.Add(1000)
	assert.Equal(t, 101, f.list.Len())
	require.NoError(t, f.list.Insert(0, -1))
	v, err := f.list.At(0)
	require.NoError(t, err)
	assert.Equal(t, -1, v)

	assert.InDelta(t, 0.5, 1-f.viewport.ScrollFraction(), 1e-9, "position is kept")
	assert.GreaterOrEqual(t, f.list.CulledAbove(), culled)
	requireConsistent(t, f)

	assert.True(t, f.list.Remove(1000))
	assert.False(t, f.list.Remove(12345))
	require.NoError(t, f.list.RemoveAt(0))
	assert.Equal(t, sequence(100), f.list.Items())
	requireConsistent(t, f)

	f.list.Clear()
	assert.Equal(t, 0, f.list.Len())
	assert.Empty(t, f.list.Active())
	requireConsistent(t, f)
}

func TestRemoveFirstMatch(t *testing.T) {
	f := linearFixture(t, 200)
	f.list.Initialize([]int{1, 2, 1, 3})
	assert.True(t, f.list.Remove(1))
	assert.Equal(t, []int{2, 1, 3}, f.list.Items())
}

func TestIndexErrors(t *testing.T) {
	f := linearFixture(t, 200)
	f.list.Initialize(sequence(3))

	assert.ErrorIs(t, f.list.RemoveAt(-1), ErrIndexOutOfRange)
	assert.ErrorIs(t, f.list.RemoveAt(3), ErrIndexOutOfRange)
	assert.ErrorIs(t, f.list.Insert(-1, 0), ErrIndexOutOfRange)
	assert.ErrorIs(t, f.list.Insert(4, 0), ErrIndexOutOfRange)
	assert.ErrorIs(t, f.list.Set(3, 0), ErrIndexOutOfRange)
	_, err := f.list.At(5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	require.NoError(t, f.list.Insert(3, 99))
	assert.Equal(t, []int{0, 10, 20, 99}, f.list.Items())
}

func TestSetRefreshesVisibleElement(t *testing.T) {
	f := linearFixture(t, 200)
	f.list.Initialize(sequence(100))
	before := f.list.Stats()

	require.NoError(t, f.list.Set(2, 7))
	after := f.list.Stats()
	assert.Equal(t, []int{0, 10, 7, 30, 40}, f.displayedData())
	assert.Equal(t, before.Rebuilds, after.Rebuilds)
	assert.Equal(t, before.Pushes+1, after.Pushes)

	// Off-screen overwrites cost nothing.
	require.NoError(t, f.list.Set(50, 7))
	assert.Equal(t, after.Pushes, f.list.Stats().Pushes)
}

func TestReleasedElementsAreReset(t *testing.T) {
	f := linearFixture(t, 200)
	f.list.Initialize(sequence(100))
	active := f.list.Active()
	for _, e := range active {
		assert.True(t, e.(*fakeElement).active)
	}

	f.list.Clear()
	for _, e := range active {
		fe := e.(*fakeElement)
		assert.False(t, fe.active)
		assert.Equal(t, 2, fe.resets, "reset on prewarm and on release")
		assert.Equal(t, -1, f.content.IndexOf(fe))
	}
}

func TestResetOnMutation(t *testing.T) {
	f := linearFixture(t, 200, func(c *Config[int]) { c.ResetOnMutation = true })
	f.list.Initialize(sequence(100))
	f.viewport.scrollTo(1)
	require.Equal(t, 95, f.list.CulledAbove())

	f.list.Add(1)
	assert.Equal(t, 0, f.list.CulledAbove())
	assert.Equal(t, 1.0, f.viewport.ScrollFraction())
	requireConsistent(t, f)
}

func TestResetReturnsToStart(t *testing.T) {
	f := linearFixture(t, 200)
	f.list.Initialize(sequence(100))
	f.viewport.scrollTo(0.6)
	rebuilds := f.list.Stats().Rebuilds

	f.list.Reset()
	assert.Equal(t, 0, f.list.CulledAbove())
	assert.Equal(t, rebuilds+1, f.list.Stats().Rebuilds)
	requireConsistent(t, f)
}

func TestHorizontalAxis(t *testing.T) {
	f, err := newFixture(Linear, newFakeViewport(window.Horizontal, 200), 50, &LayoutMetadata{})
	require.NoError(t, err)
	defer f.list.Close()

	f.list.Initialize(sequence(100))
	assert.Equal(t, 0.0, f.viewport.ScrollFraction())
	f.viewport.SetScrollFraction(1)
	assert.Equal(t, 95, f.list.CulledAbove())
	requireConsistent(t, f)
}

func TestSpacingAndPadding(t *testing.T) {
	f, err := newFixture(Linear, newFakeViewport(window.Vertical, 200), 40,
		&LayoutMetadata{Spacing: 10, PaddingStart: 5, PaddingEnd: 7})
	require.NoError(t, err)
	defer f.list.Close()

	f.list.Initialize(sequence(10))
	g := f.list.Geometry()
	assert.Equal(t, 50.0, g.ElementExtent)
	assert.Equal(t, 5+10*50.0-10+7, f.content.Extent())

	f.viewport.scrollTo(1) // culled = min(floor(6), 5) = 5
	assert.Equal(t, 5, f.list.CulledAbove())
	assert.Equal(t, 5*50.0-10, f.content.Nodes()[0].Extent())
}

func TestExternalViewport(t *testing.T) {
	f := linearFixture(t, 200, func(c *Config[int]) {
		c.ExternalViewport = newFakeViewport(window.Vertical, 400)
	})
	f.list.Initialize(sequence(100))
	assert.Equal(t, 9, f.list.Window().Size)
}

func TestMissingLayoutMetadataWarns(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	f, err := newFixture(Grid, newFakeViewport(window.Vertical, 200), 50, nil,
		func(c *Config[int]) { c.Logger = logger })
	require.NoError(t, err)
	defer f.list.Close()

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), ErrMissingLayoutMetadata.Error())
	assert.Equal(t, 1, f.list.Geometry().ConstraintCount)

	f.list.Initialize(sequence(10))
	assert.Equal(t, 5, f.list.Window().Size)
}

func TestReentrantMutationPanics(t *testing.T) {
	f := linearFixture(t, 200)
	for _, e := range f.elements {
		e.onSet = func(int) { f.list.Add(0) }
	}
	assert.PanicsWithValue(t, ErrReentrant, func() { f.list.Initialize(sequence(10)) })
	for _, e := range f.elements {
		e.onSet = nil
	}
	assert.NotPanics(t, func() { f.list.Initialize(sequence(10)) })
}

func TestClose(t *testing.T) {
	f, err := newFixture(Grid, newFakeViewport(window.Vertical, 100), 50, &LayoutMetadata{ConstraintCount: 2})
	require.NoError(t, err)
	f.list.Initialize(sequence(40))
	f.viewport.scrollTo(1)

	f.list.Close()
	assert.Empty(t, f.viewport.listeners)
	assert.Zero(t, f.content.Len())
	for _, e := range f.elements {
		assert.True(t, e.destroyed)
	}
	st := f.list.Stats()
	assert.Equal(t, st.Pool.Created, st.Pool.Destroyed)
	assert.Equal(t, st.SpacerPool.Created, st.SpacerPool.Destroyed)

	assert.NotPanics(t, f.list.Close)
	assert.PanicsWithValue(t, ErrClosed, func() { f.list.Add(1) })
	assert.NotPanics(t, func() { f.viewport.scrollTo(0) }, "late notifications are ignored")
}

func TestRandomOperationsKeepInvariants(t *testing.T) {
	for _, mode := range []Mode{Linear, Grid} {
		t.Run(mode.String(), func(t *testing.T) {
			rng := rand.New(rand.NewPCG(7, uint64(mode)))
			f, err := newFixture(mode, newFakeViewport(window.Vertical, 180), 30,
				&LayoutMetadata{Spacing: 2, PaddingStart: 3, ConstraintCount: 3})
			require.NoError(t, err)
			defer f.list.Close()

			f.list.Initialize(sequence(40))
			next := 10000
			for step := 0; step < 2000; step++ {
				n := f.list.Len()
				switch op := rng.IntN(9); {
				case op == 0:
					f.list.Add(next)
					next++
				case op == 1:
					require.NoError(t, f.list.Insert(rng.IntN(n+1), next))
					next++
				case op == 2 && n > 0:
					require.NoError(t, f.list.RemoveAt(rng.IntN(n)))
				case op == 3 && n > 0:
					v, err := f.list.At(rng.IntN(n))
					require.NoError(t, err)
					assert.True(t, f.list.Remove(v))
				case op == 4 && n > 0:
					require.NoError(t, f.list.Set(rng.IntN(n), next))
					next++
				case op == 5:
					f.viewport.extent = float64(60 + rng.IntN(200))
					f.list.Refresh()
				case op == 6 && rng.IntN(20) == 0:
					f.list.Clear()
				default:
					f.viewport.scrollTo(rng.Float64())
				}
				requireConsistent(t, f)
			}
		})
	}
}

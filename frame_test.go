package tubefall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type renderCall struct {
	world string
	clear bool
}

type recordingRenderer struct {
	calls []renderCall
}

func (r *recordingRenderer) RenderFrame(w *World, cam *Camera, clear bool) {
	r.calls = append(r.calls, renderCall{world: w.Name, clear: clear})
}

const tickDt = 1.0 / TicksPerSecond

func newTestDriver(t *testing.T, preset string) *FrameDriver {
	t.Helper()
	p, err := NewEmbeddedPresetLoader().Load(preset)
	require.NoError(t, err)
	d, err := NewFrameDriver(p, 800, 600, NewNopLogger())
	require.NoError(t, err)
	return d
}

func runTicks(d *FrameDriver, in InputSource, n int) FrameState {
	var s FrameState
	for i := 0; i < n; i++ {
		s = d.Tick(in.Poll(800, 600), tickDt)
	}
	return s
}

func TestFrameDriverStartsInRoom(t *testing.T) {
	d := newTestDriver(t, "gallery")

	s := d.Tick(InputFrame{}, tickDt)
	assert.Equal(t, PhaseRoom, s.Phase)
	assert.Equal(t, uint64(1), s.Tick)
	assert.InDelta(t, tickDt, s.Elapsed, 1e-12)
	assert.False(t, s.PopUpVisible, "pop-up is hidden from the doorway")
	assert.Equal(t, d.Camera().Pose(), s.Pose)

	r := &recordingRenderer{}
	d.Render(r)
	assert.Equal(t, []renderCall{{world: "room", clear: true}}, r.calls)
}

func TestFrameDriverWalkInShowsPopUp(t *testing.T) {
	d := newTestDriver(t, "gallery")

	frames := make([]InputFrame, 300)
	for i := range frames {
		frames[i] = InputFrame{ScrollDelta: 100}
	}
	s := runTicks(d, NewScriptedInput(frames...), len(frames))

	assert.Equal(t, PhaseRoom, s.Phase)
	assert.InDelta(t, 1, s.Scroll.Progress, 1e-3)
	assert.True(t, s.PopUpVisible)
	assert.True(t, d.Room.PopUp.Visible)
}

func TestFrameDriverClickOnHiddenPopUpIsIgnored(t *testing.T) {
	d := newTestDriver(t, "gallery")
	d.Tick(InputFrame{}, tickDt)
	require.False(t, d.Room.PopUp.Visible)

	at, ok := d.Camera().Project(d.Room.PopUp.WorldPosition(), 800, 600)
	if ok {
		s := d.Tick(InputFrame{Click: &at}, tickDt)
		assert.Equal(t, PhaseRoom, s.Phase)
	}
	s := d.Tick(InputFrame{Click: &ScreenPoint{X: 400, Y: 300}}, tickDt)
	assert.Equal(t, PhaseRoom, s.Phase)
}

func TestFrameDriverFullJourney(t *testing.T) {
	d := newTestDriver(t, "gallery")
	pilot := NewAutopilot(d, 300)

	var s FrameState
	for i := 0; i < 400 && s.Phase == PhaseRoom; i++ {
		s = d.Tick(pilot.Poll(800, 600), tickDt)
	}
	require.Equal(t, PhaseExploding, s.Phase)
	assert.False(t, d.Controls().Enabled())
	frozen := s.Scroll

	r := &recordingRenderer{}
	d.Render(r)
	assert.Equal(t, []renderCall{{world: "room", clear: true}, {world: "track", clear: false}}, r.calls)

	for i := 0; i < 400 && s.Phase != PhaseFalling; i++ {
		s = d.Tick(pilot.Poll(800, 600), tickDt)
	}
	require.Equal(t, PhaseFalling, s.Phase)
	start := d.Track.Curve.PointAt(0)
	assertVecNear(t, start, s.Pose.Position, 1e-6)

	prev := s.Fall.Progress
	for i := 0; i < 120; i++ {
		s = d.Tick(InputFrame{ScrollDelta: 500, Click: &ScreenPoint{X: 400, Y: 300}}, tickDt)
		assert.Equal(t, PhaseFalling, s.Phase)
		assert.GreaterOrEqual(t, s.Fall.Progress, prev)
		assert.LessOrEqual(t, s.Fall.Progress, 0.98)
		prev = s.Fall.Progress
	}
	assert.InDelta(t, 120*0.0007, s.Fall.Progress, 1e-9)
	assert.Equal(t, frozen, s.Scroll)
	assert.Equal(t, d.Camera().Pose(), s.Pose)
}

func TestFrameDriverDriftPreset(t *testing.T) {
	d := newTestDriver(t, "drift")
	pilot := NewAutopilot(d, 300)

	var s FrameState
	for i := 0; i < 400 && s.Phase == PhaseRoom; i++ {
		s = d.Tick(pilot.Poll(800, 600), tickDt)
	}
	assert.Equal(t, PhaseExploding, s.Phase)
}

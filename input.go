package tubefall

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerState is the cursor in normalised device coordinates, y up.
type PointerState struct {
	X, Y float64
}

// ScreenPoint is a position in pixels, y down.
type ScreenPoint struct {
	X, Y float64
}

// InputFrame is everything the frame driver needs from one tick of input.
type InputFrame struct {
	// ScrollDelta is in browser wheel pixels, positive when scrolling down.
	ScrollDelta float64
	Pointer     PointerState
	// Click is set when the left button went down this tick.
	Click *ScreenPoint
	// DragX and DragY are the pixel movement while the left button is held.
	DragX, DragY float64
}

type InputSource interface {
	Poll(width, height int) InputFrame
}

const defaultWheelPixelsPerNotch = 100

// EbitenInput reads the mouse through ebiten.
type EbitenInput struct {
	WheelPixelsPerNotch float64

	dragging     bool
	lastX, lastY int
}

func NewEbitenInput() *EbitenInput {
	return &EbitenInput{WheelPixelsPerNotch: defaultWheelPixelsPerNotch}
}

func (in *EbitenInput) Poll(width, height int) InputFrame {
	var frame InputFrame

	_, wheelY := ebiten.Wheel()
	// ebiten reports wheel-down as negative
	frame.ScrollDelta = -wheelY * in.WheelPixelsPerNotch

	mx, my := ebiten.CursorPosition()
	if width > 0 && height > 0 {
		x, y := ScreenToNDC(float64(mx), float64(my), float64(width), float64(height))
		frame.Pointer = PointerState{X: clampFloat(x, -1, 1), Y: clampFloat(y, -1, 1)}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		frame.Click = &ScreenPoint{X: float64(mx), Y: float64(my)}
		in.dragging = true
		in.lastX, in.lastY = mx, my
	} else if in.dragging && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		frame.DragX = float64(mx - in.lastX)
		frame.DragY = float64(my - in.lastY)
		in.lastX, in.lastY = mx, my
	} else {
		in.dragging = false
	}

	return frame
}

// ScriptedInput replays a fixed list of frames, then repeats the last
// pointer position with no scroll, click or drag.
type ScriptedInput struct {
	frames []InputFrame
	next   int
	last   PointerState
}

func NewScriptedInput(frames ...InputFrame) *ScriptedInput {
	return &ScriptedInput{frames: frames}
}

func (s *ScriptedInput) Push(frames ...InputFrame) {
	s.frames = append(s.frames, frames...)
}

func (s *ScriptedInput) Remaining() int {
	return len(s.frames) - s.next
}

func (s *ScriptedInput) Poll(width, height int) InputFrame {
	if s.next >= len(s.frames) {
		return InputFrame{Pointer: s.last}
	}
	frame := s.frames[s.next]
	s.next++
	s.last = frame.Pointer
	return frame
}

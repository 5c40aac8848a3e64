package tubefall

// Autopilot walks into the room, waits for the pop-up and clicks it. After
// that it sends nothing.
type Autopilot struct {
	driver      *FrameDriver
	walkFrames  int
	scrollDelta float64
	frame       int
	clicked     bool
}

func NewAutopilot(driver *FrameDriver, walkFrames int) *Autopilot {
	return &Autopilot{
		driver:      driver,
		walkFrames:  walkFrames,
		scrollDelta: defaultWheelPixelsPerNotch,
	}
}

func (a *Autopilot) Poll(width, height int) InputFrame {
	a.frame++
	if a.frame <= a.walkFrames {
		return InputFrame{ScrollDelta: a.scrollDelta}
	}
	if a.clicked {
		return InputFrame{}
	}

	popUp := a.driver.Room.PopUp
	if !popUp.Visible {
		return InputFrame{}
	}
	at, ok := a.driver.Camera().Project(popUp.WorldPosition(), float64(width), float64(height))
	if !ok {
		return InputFrame{}
	}
	a.clicked = true
	return InputFrame{Click: &at}
}

package tubefall

// TicksPerSecond is the fixed logical tick rate.
const TicksPerSecond = 60

// FrameState is a read-only snapshot of one tick.
type FrameState struct {
	Tick         uint64
	Elapsed      float64
	Phase        Phase
	Scroll       ScrollState
	Fall         FallState
	Pose         CameraPose
	Pointer      PointerState
	PopUpVisible bool
	Tweens       int
}

// Renderer draws one scene through a camera, optionally clearing first.
type Renderer interface {
	RenderFrame(w *World, cam *Camera, clear bool)
}

// FrameDriver owns the scene state and advances it one tick at a time.
type FrameDriver struct {
	Room  *Room
	Track *Track

	camera    *Camera
	controls  *RoomControls
	machine   *PhaseMachine
	scheduler *Scheduler
	popUp     PopUpConfig
	log       Logger

	width, height int
	state         FrameState
}

// NewFrameDriver builds both scenes and the state machine from a preset.
func NewFrameDriver(p *Preset, width, height int, logger Logger) (*FrameDriver, error) {
	if logger == nil {
		logger = NewNopLogger()
	}

	room, err := BuildRoom(p.Room)
	if err != nil {
		return nil, err
	}
	track, err := BuildTrack(p.Track)
	if err != nil {
		return nil, err
	}

	scheduler := NewScheduler()
	controls := NewRoomControls(
		p.Camera,
		NewScrollIntegrator(p.Scroll),
		NewParallaxSmoother(TicksPerSecond, p.Camera.SpringFreq, p.Camera.SpringDamping),
	)
	machine := NewPhaseMachine(p.Fall, p.Explosion.Plan(), track.Curve, scheduler, room.World, controls, logger)
	machine.ApplyRoomPose(controls.Pose())

	d := &FrameDriver{
		Room:      room,
		Track:     track,
		camera:    NewCamera(p.Camera.FOV),
		controls:  controls,
		machine:   machine,
		scheduler: scheduler,
		popUp:     p.PopUp,
		log:       logger,
		width:     width,
		height:    height,
	}
	d.camera.SetPose(machine.Pose())
	d.state = d.snapshot(PointerState{})
	logger.Infof("scene %s ready, track length %.2f", p.Name, track.Curve.Length())
	return d, nil
}

func (d *FrameDriver) Camera() *Camera {
	return d.camera
}

func (d *FrameDriver) Machine() *PhaseMachine {
	return d.machine
}

func (d *FrameDriver) Controls() *RoomControls {
	return d.controls
}

func (d *FrameDriver) State() FrameState {
	return d.state
}

func (d *FrameDriver) Resize(width, height int) {
	d.width, d.height = width, height
}

// Tick runs one logical frame: click handling, free controls, pop-up
// presentation, then the fall and the tween queue.
func (d *FrameDriver) Tick(in InputFrame, dt float64) FrameState {
	d.state.Tick++
	d.state.Elapsed += dt

	if in.Click != nil && d.machine.Phase() == PhaseRoom {
		if target, ok := ResolveClick(in.Click.X, in.Click.Y, d.width, d.height, d.camera, d.Room.World); ok {
			d.log.Debugf("picked %s (%s)", target.Name, target.ID)
			d.machine.Trigger()
		}
	}

	if d.controls.Enabled() {
		d.controls.Update(in)
		d.machine.ApplyRoomPose(d.controls.Pose())
	}

	ComputePopUpPresentation(d.popUp, d.machine.Pose().Position, d.state.Elapsed).ApplyTo(d.Room.PopUp)

	if d.machine.Phase() != PhaseRoom {
		d.machine.Tick()
		d.scheduler.Step(dt)
	}

	d.camera.SetPose(d.machine.Pose())
	d.state = d.snapshot(in.Pointer)
	return d.state
}

func (d *FrameDriver) snapshot(pointer PointerState) FrameState {
	return FrameState{
		Tick:         d.state.Tick,
		Elapsed:      d.state.Elapsed,
		Phase:        d.machine.Phase(),
		Scroll:       d.controls.Scroll(),
		Fall:         d.machine.Fall(),
		Pose:         d.machine.Pose(),
		Pointer:      pointer,
		PopUpVisible: d.Room.PopUp.Visible,
		Tweens:       d.scheduler.Len(),
	}
}

// Render draws the room, then the track on top once the room is left.
func (d *FrameDriver) Render(r Renderer) {
	r.RenderFrame(d.Room.World, d.camera, true)
	if d.machine.Phase() != PhaseRoom {
		r.RenderFrame(d.Track.World, d.camera, false)
	}
}

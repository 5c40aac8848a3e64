package tubefall

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed presets/*.yaml
var embeddedPresets embed.FS

const DefaultPresetName = "gallery"

var ErrUnknownPreset = errors.New("unknown preset")

type ExplosionTargetConfig struct {
	Surface  string `yaml:"surface"`
	Position Vec3   `yaml:"position"`
	// RotationTurns are end angles in multiples of pi.
	RotationTurns Vec3 `yaml:"rotationTurns"`
}

type ExplosionConfig struct {
	Duration float64                 `yaml:"duration"`
	Targets  []ExplosionTargetConfig `yaml:"targets"`
}

func (c ExplosionConfig) Plan() ExplosionPlan {
	plan := ExplosionPlan{Duration: c.Duration}
	for _, t := range c.Targets {
		plan.Targets = append(plan.Targets, ExplosionTarget{
			Surface:  t.Surface,
			Position: t.Position.Vec(),
			Rotation: radiansFromTurns(t.RotationTurns),
		})
	}
	return plan
}

// Preset is one complete scene configuration.
type Preset struct {
	Name      string          `yaml:"name"`
	Camera    CameraConfig    `yaml:"camera"`
	Scroll    ScrollConfig    `yaml:"scroll"`
	Fall      FallConfig      `yaml:"fall"`
	PopUp     PopUpConfig     `yaml:"popUp"`
	Room      RoomConfig      `yaml:"room"`
	Explosion ExplosionConfig `yaml:"explosion"`
	Track     TrackConfig     `yaml:"track"`
}

// Validate reports the first field that would make the scene misbehave.
func (p *Preset) Validate() error {
	switch {
	case p.Name == "":
		return errors.New("name is empty")
	case p.Camera.FOV <= 0 || p.Camera.FOV >= 180:
		return fmt.Errorf("camera.fov %v out of range (0, 180)", p.Camera.FOV)
	case p.Scroll.MaxVelocity <= 0:
		return fmt.Errorf("scroll.maxVelocity must be positive, got %v", p.Scroll.MaxVelocity)
	case p.Scroll.Friction < 0 || p.Scroll.Friction >= 1:
		return fmt.Errorf("scroll.friction %v out of range [0, 1)", p.Scroll.Friction)
	case p.Scroll.Smoothing <= 0 || p.Scroll.Smoothing > 1:
		return fmt.Errorf("scroll.smoothing %v out of range (0, 1]", p.Scroll.Smoothing)
	case p.Fall.Speed <= 0:
		return fmt.Errorf("fall.speed must be positive, got %v", p.Fall.Speed)
	case p.Fall.Ceiling <= 0 || p.Fall.Ceiling > 1:
		return fmt.Errorf("fall.ceiling %v out of range (0, 1]", p.Fall.Ceiling)
	case p.Fall.LookCeiling < p.Fall.Ceiling || p.Fall.LookCeiling > 1:
		return fmt.Errorf("fall.lookCeiling %v must be in [ceiling, 1]", p.Fall.LookCeiling)
	case p.PopUp.ShowDistance <= 0:
		return fmt.Errorf("popUp.showDistance must be positive, got %v", p.PopUp.ShowDistance)
	case p.Room.Width <= 0 || p.Room.Height <= 0 || p.Room.Depth <= 0:
		return errors.New("room dimensions must be positive")
	case p.Explosion.Duration <= 0:
		return fmt.Errorf("explosion.duration must be positive, got %v", p.Explosion.Duration)
	case len(p.Track.Points) < 2:
		return fmt.Errorf("track.points needs at least 2 points, got %d", len(p.Track.Points))
	}
	return nil
}

// PresetLoader reads presets/<name>.yaml files from a file system.
type PresetLoader struct {
	fsys fs.FS
	dir  string
}

// NewPresetLoader loads from a directory on disk.
func NewPresetLoader(dir string) *PresetLoader {
	return &PresetLoader{fsys: os.DirFS(dir), dir: "."}
}

// NewFSPresetLoader loads from dir inside fsys.
func NewFSPresetLoader(fsys fs.FS, dir string) *PresetLoader {
	return &PresetLoader{fsys: fsys, dir: dir}
}

// NewEmbeddedPresetLoader loads the presets compiled into the binary.
func NewEmbeddedPresetLoader() *PresetLoader {
	return NewFSPresetLoader(embeddedPresets, "presets")
}

func (l *PresetLoader) Names() ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

func (l *PresetLoader) Load(name string) (*Preset, error) {
	data, err := fs.ReadFile(l.fsys, path.Join(l.dir, name+".yaml"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
		}
		return nil, fmt.Errorf("failed to read preset %s: %w", name, err)
	}

	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse preset %s: %w", name, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid preset %s: %w", name, err)
	}
	return &p, nil
}

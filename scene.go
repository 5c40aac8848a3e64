package tubefall

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	SurfaceFloor     = "floor"
	SurfaceCeiling   = "ceiling"
	SurfaceFrontWall = "frontWall"
	SurfaceBackWall  = "backWall"
	SurfaceLeftWall  = "leftWall"
	SurfaceRightWall = "rightWall"
	SurfacePopUp     = "popUp"
)

type RoomConfig struct {
	Width         float64           `yaml:"width"`
	Height        float64           `yaml:"height"`
	Depth         float64           `yaml:"depth"`
	PopUpSize     [2]float64        `yaml:"popUpSize"`
	PopUpPosition Vec3              `yaml:"popUpPosition"`
	Background    string            `yaml:"background"`
	Colors        map[string]string `yaml:"colors"`
}

type FogConfig struct {
	Color string  `yaml:"color"`
	Near  float64 `yaml:"near"`
	Far   float64 `yaml:"far"`
}

type TrackConfig struct {
	Points         []Vec3     `yaml:"points"`
	TubeSegments   int        `yaml:"tubeSegments"`
	TubeRadius     float64    `yaml:"tubeRadius"`
	RadialSegments int        `yaml:"radialSegments"`
	WireColor      string     `yaml:"wireColor"`
	FrameCount     int        `yaml:"frameCount"`
	FrameSize      [2]float64 `yaml:"frameSize"`
	FrameColor     string     `yaml:"frameColor"`
	WindowCount    int        `yaml:"windowCount"`
	WindowSize     [2]float64 `yaml:"windowSize"`
	WindowColors   []string   `yaml:"windowColors"`
	Fog            FogConfig  `yaml:"fog"`
}

// Room is the walled scene the camera starts in.
type Room struct {
	World      *World
	PopUp      *Model
	Background color.RGBA
}

type roomSurface struct {
	name     string
	width    float64
	height   float64
	position mgl64.Vec3
	rotation mgl64.Vec3
}

func BuildRoom(cfg RoomConfig) (*Room, error) {
	w, h, d := cfg.Width, cfg.Height, cfg.Depth
	surfaces := []roomSurface{
		{SurfaceFloor, w, d, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{-math.Pi / 2, 0, 0}},
		{SurfaceFrontWall, w, h, mgl64.Vec3{0, h / 2, -d / 2}, mgl64.Vec3{0, 0, 0}},
		{SurfaceBackWall, w, h, mgl64.Vec3{0, h / 2, d / 2}, mgl64.Vec3{math.Pi, 0, math.Pi}},
		{SurfaceCeiling, w, d, mgl64.Vec3{0, h, 0}, mgl64.Vec3{math.Pi / 2, 0, 0}},
		{SurfaceLeftWall, d, h, mgl64.Vec3{-w / 2, h / 2, 0}, mgl64.Vec3{0, math.Pi / 2, 0}},
		{SurfaceRightWall, d, h, mgl64.Vec3{w / 2, h / 2, 0}, mgl64.Vec3{0, -math.Pi / 2, 0}},
	}

	world := NewWorld("room")
	for _, s := range surfaces {
		col, err := surfaceColor(cfg.Colors, s.name)
		if err != nil {
			return nil, err
		}
		m := NewQuad(s.name, s.width, s.height, col)
		m.Position = s.position
		m.Rotation = s.rotation
		world.AddObject(m)
	}

	popUpColor, err := surfaceColor(cfg.Colors, SurfacePopUp)
	if err != nil {
		return nil, err
	}
	popUp := NewQuad(SurfacePopUp, cfg.PopUpSize[0], cfg.PopUpSize[1], popUpColor)
	popUp.Tag = TagPopUp
	popUp.DoubleSided = true
	popUp.Outline = true
	popUp.Position = cfg.PopUpPosition.Vec()
	popUp.Visible = false
	world.AddObject(popUp)

	background, err := ParseHexColor(cfg.Background)
	if err != nil {
		return nil, fmt.Errorf("room background: %w", err)
	}

	return &Room{World: world, PopUp: popUp, Background: background}, nil
}

func surfaceColor(colors map[string]string, name string) (color.RGBA, error) {
	hex, ok := colors[name]
	if !ok {
		return color.RGBA{}, fmt.Errorf("room colour for %s is missing", name)
	}
	c, err := ParseHexColor(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("room colour for %s: %w", name, err)
	}
	return c, nil
}

// Track is the tube scene the camera falls through.
type Track struct {
	World *World
	Curve *CatmullRomCurve
	Tube  *Model
}

func BuildTrack(cfg TrackConfig) (*Track, error) {
	if len(cfg.Points) < 2 {
		return nil, fmt.Errorf("track needs at least 2 points, got %d", len(cfg.Points))
	}
	points := make([]mgl64.Vec3, len(cfg.Points))
	for i, p := range cfg.Points {
		points[i] = p.Vec()
	}
	curve := NewCatmullRomCurve(points)
	world := NewWorld("track")

	wire, err := ParseHexColor(cfg.WireColor)
	if err != nil {
		return nil, fmt.Errorf("track wire colour: %w", err)
	}
	tube := NewTubeWireframe("tube", curve, cfg.TubeSegments, cfg.TubeRadius, cfg.RadialSegments, wire)
	world.AddObject(tube)

	frameColor, err := ParseHexColor(cfg.FrameColor)
	if err != nil {
		return nil, fmt.Errorf("track frame colour: %w", err)
	}
	if cfg.FrameCount > 0 {
		frame := NewQuad("frame", cfg.FrameSize[0], cfg.FrameSize[1], frameColor)
		frame.Outline = true
		world.AddObject(NewWindowStrip("frames", frame, curve, cfg.FrameCount, float64(cfg.FrameCount-1)))
	}

	if cfg.WindowCount > 0 {
		if len(cfg.WindowColors) == 0 {
			return nil, fmt.Errorf("track has %d windows but no window colours", cfg.WindowCount)
		}
		windows := NewGroup("windows")
		for i := 0; i < cfg.WindowCount; i++ {
			col, err := ParseHexColor(cfg.WindowColors[i%len(cfg.WindowColors)])
			if err != nil {
				return nil, fmt.Errorf("track window %d colour: %w", i, err)
			}
			w := NewQuad(fmt.Sprintf("window-%d", i), cfg.WindowSize[0], cfg.WindowSize[1], col)
			placeOnCurve(w, curve, float64(i)/float64(cfg.WindowCount))
			windows.Add(w)
		}
		world.AddObject(windows)
	}

	if cfg.Fog.Far > cfg.Fog.Near {
		fogColor, err := ParseHexColor(cfg.Fog.Color)
		if err != nil {
			return nil, fmt.Errorf("track fog colour: %w", err)
		}
		world.Fog = &Fog{Color: fogColor, Near: cfg.Fog.Near, Far: cfg.Fog.Far}
	}

	return &Track{World: world, Curve: curve, Tube: tube}, nil
}

// ParseHexColor reads #rrggbb or #rrggbbaa.
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

package data

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/acimap/kernel/internal/core/event"
	"github.com/acimap/kernel/internal/objects"
	"github.com/acimap/kernel/internal/sim"
	"github.com/acimap/kernel/internal/world"
)

// Rect is an axis-aligned block of tiles. W and H default to 1.
type Rect struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

func (r Rect) size() (int, int) {
	w, h := r.W, r.H
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}
	return w, h
}

// Each visits every tile of the rectangle.
func (r Rect) Each(fn func(x, y int)) {
	w, h := r.size()
	for y := r.Y; y < r.Y+h; y++ {
		for x := r.X; x < r.X+w; x++ {
			fn(x, y)
		}
	}
}

func (r Rect) within(width, height int) bool {
	w, h := r.size()
	return r.X >= 0 && r.Y >= 0 && w > 0 && h > 0 && r.X+w <= width && r.Y+h <= height
}

// Region sets the ground level of a block of tiles.
type Region struct {
	Rect        `yaml:",inline"`
	GroundLevel float32 `yaml:"ground_level"`
}

// TileOverride sets the starting air and liquid of a block of tiles.
type TileOverride struct {
	Rect   `yaml:",inline"`
	Air    *AirEntry `yaml:"air"`
	Liquid string    `yaml:"liquid"`
	Level  float32   `yaml:"level"`
}

type AirEntry struct {
	Nitrogen float32 `yaml:"nitrogen"`
	Oxygen   float32 `yaml:"oxygen"`
	Fumes    float32 `yaml:"fumes"`
}

func (a AirEntry) Air() world.AirData {
	return world.AirData{Nitrogen: a.Nitrogen, Oxygen: a.Oxygen, Fumes: a.Fumes}
}

type AirLevelerEntry struct {
	X        int `yaml:"x"`
	Y        int `yaml:"y"`
	AirEntry `yaml:",inline"`
}

type OxygenUserEntry struct {
	X    int     `yaml:"x"`
	Y    int     `yaml:"y"`
	Rate float32 `yaml:"rate"`
}

type AirPusherEntry struct {
	X         int     `yaml:"x"`
	Y         int     `yaml:"y"`
	Direction string  `yaml:"direction"`
	Amount    float32 `yaml:"amount"`
}

type LiquidLevelerEntry struct {
	X      int     `yaml:"x"`
	Y      int     `yaml:"y"`
	Liquid string  `yaml:"liquid"`
	Level  float32 `yaml:"level"`
}

type BuildingEntry struct {
	Type   string `yaml:"type"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Facing string `yaml:"facing"`
}

type CharacterEntry struct {
	X      float32  `yaml:"x"`
	Y      float32  `yaml:"y"`
	Health float32  `yaml:"health"`
	Work   []string `yaml:"work"`
}

// Scenario describes a starting world.
type Scenario struct {
	Name           string               `yaml:"name"`
	Width          int                  `yaml:"width"`
	Height         int                  `yaml:"height"`
	Terrain        *Terrain             `yaml:"terrain"`
	Regions        []Region             `yaml:"regions"`
	Walls          []Rect               `yaml:"walls"`
	Tiles          []TileOverride       `yaml:"tiles"`
	AirLevelers    []AirLevelerEntry    `yaml:"air_levelers"`
	OxygenUsers    []OxygenUserEntry    `yaml:"oxygen_users"`
	AirPushers     []AirPusherEntry     `yaml:"air_pushers"`
	LiquidLevelers []LiquidLevelerEntry `yaml:"liquid_levelers"`
	Buildings      []BuildingEntry      `yaml:"buildings"`
	Characters     []CharacterEntry     `yaml:"characters"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	s, err := ParseScenario(raw)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// ParseScenario decodes and validates a scenario document.
func ParseScenario(raw []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks sizes, coordinates and names so Build cannot fail.
func (s *Scenario) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", s.Width, s.Height)
	}
	var errs []error
	tile := func(what string, i, x, y int) {
		if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
			errs = append(errs, fmt.Errorf("%s %d: tile (%d,%d) outside %dx%d", what, i, x, y, s.Width, s.Height))
		}
	}
	rect := func(what string, i int, r Rect) {
		if !r.within(s.Width, s.Height) {
			errs = append(errs, fmt.Errorf("%s %d: block at (%d,%d) does not fit %dx%d", what, i, r.X, r.Y, s.Width, s.Height))
		}
	}
	liquid := func(what string, i int, name string, level float32) {
		if _, err := world.ParseLiquidKind(name); err != nil {
			errs = append(errs, fmt.Errorf("%s %d: %w", what, i, err))
		}
		if level < 0 || level > world.MaxLiquidLevel {
			errs = append(errs, fmt.Errorf("%s %d: liquid level %g outside 0..%g", what, i, level, world.MaxLiquidLevel))
		}
	}
	air := func(what string, i int, a AirEntry) {
		if a.Nitrogen < 0 || a.Oxygen < 0 || a.Fumes < 0 {
			errs = append(errs, fmt.Errorf("%s %d: negative air amount", what, i))
		}
	}

	for i, r := range s.Regions {
		rect("region", i, r.Rect)
	}
	for i, r := range s.Walls {
		rect("wall", i, r)
	}
	for i, t := range s.Tiles {
		rect("tile", i, t.Rect)
		liquid("tile", i, t.Liquid, t.Level)
		if t.Air != nil {
			air("tile", i, *t.Air)
		}
	}
	for i, e := range s.AirLevelers {
		tile("air leveler", i, e.X, e.Y)
		air("air leveler", i, e.AirEntry)
	}
	for i, e := range s.OxygenUsers {
		tile("oxygen user", i, e.X, e.Y)
		if e.Rate < 0 {
			errs = append(errs, fmt.Errorf("oxygen user %d: negative rate %g", i, e.Rate))
		}
	}
	for i, e := range s.AirPushers {
		tile("air pusher", i, e.X, e.Y)
		if _, err := world.ParseFacing(e.Direction); err != nil {
			errs = append(errs, fmt.Errorf("air pusher %d: %w", i, err))
		}
	}
	for i, e := range s.LiquidLevelers {
		tile("liquid leveler", i, e.X, e.Y)
		liquid("liquid leveler", i, e.Liquid, e.Level)
	}
	for i, e := range s.Buildings {
		tile("building", i, e.X, e.Y)
		if _, err := parseBuildingType(e.Type); err != nil {
			errs = append(errs, fmt.Errorf("building %d: %w", i, err))
		}
		if _, err := world.ParseFacing(e.Facing); err != nil {
			errs = append(errs, fmt.Errorf("building %d: %w", i, err))
		}
	}
	for i, e := range s.Characters {
		tile("character", i, int(e.X), int(e.Y))
		if e.X < 0 || e.Y < 0 {
			errs = append(errs, fmt.Errorf("character %d: negative position", i))
		}
		for _, w := range e.Work {
			if _, err := parseWorkGoal(w); err != nil {
				errs = append(errs, fmt.Errorf("character %d: %w", i, err))
			}
		}
	}
	return errors.Join(errs...)
}

func parseBuildingType(s string) (objects.BuildingType, error) {
	switch s {
	case "ventilator", "hand_cranked_ventilator":
		return objects.HandCrankedVentilator, nil
	}
	return 0, fmt.Errorf("unknown building type %q", s)
}

func parseWorkGoal(s string) (objects.WorkGoal, error) {
	switch s {
	case "ventilation", "work_at_ventilation":
		return objects.WorkAtVentilation, nil
	}
	return 0, fmt.Errorf("unknown work goal %q", s)
}

func liquidData(name string, level float32) world.LiquidData {
	kind, _ := world.ParseLiquidKind(name)
	switch kind {
	case world.LiquidWater:
		return world.Water(level)
	case world.LiquidLava:
		return world.Lava(level)
	}
	return world.NoLiquid()
}

// BuildGrid creates the tiles of the scenario.
func (s *Scenario) BuildGrid() *world.Grid {
	g := world.NewGrid(s.Width, s.Height)
	if s.Terrain != nil {
		s.Terrain.Apply(g)
	}
	for _, r := range s.Regions {
		r.Each(func(x, y int) { g.At(x, y).GroundLevel = r.GroundLevel })
	}
	for _, t := range s.Tiles {
		t.Each(func(x, y int) {
			tile := g.At(x, y)
			if t.Air != nil {
				tile.Air = t.Air.Air()
			}
			if t.Liquid != "" {
				tile.Liquids = liquidData(t.Liquid, t.Level)
			}
		})
	}
	for _, w := range s.Walls {
		w.Each(func(x, y int) { g.At(x, y).SetWall() })
	}
	return g
}

// Populate pushes the scenario's objects into reg in file order: environment
// effectors, then buildings, then characters.
func (s *Scenario) Populate(reg *objects.Registry) {
	for _, e := range s.AirLevelers {
		objects.Push(reg, objects.NewAirLeveler(e.X, e.Y, e.Air()))
	}
	for _, e := range s.OxygenUsers {
		objects.Push(reg, objects.NewOxygenUser(e.X, e.Y, e.Rate))
	}
	for _, e := range s.AirPushers {
		dir, _ := world.ParseFacing(e.Direction)
		objects.Push(reg, objects.NewAirPusher(e.X, e.Y, dir, e.Amount))
	}
	for _, e := range s.LiquidLevelers {
		objects.Push(reg, objects.NewLiquidLeveler(e.X, e.Y, liquidData(e.Liquid, e.Level)))
	}
	for _, e := range s.Buildings {
		facing, _ := world.ParseFacing(e.Facing)
		objects.Push(reg, objects.NewVentilator(e.X, e.Y, facing))
	}
	for _, e := range s.Characters {
		work := make([]objects.WorkGoal, 0, len(e.Work))
		for _, w := range e.Work {
			g, _ := parseWorkGoal(w)
			work = append(work, g)
		}
		health := e.Health
		if health == 0 {
			health = 1
		}
		objects.Push(reg, objects.NewCharacter(mgl32.Vec2{e.X, e.Y}, health, work))
	}
}

// Build creates a ready simulation. bus and log may be nil.
func (s *Scenario) Build(bus *event.Bus, log *zap.Logger) (*sim.Simulation, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	reg := objects.NewRegistry()
	s.Populate(reg)
	return sim.New(s.BuildGrid(), reg, bus, log), nil
}

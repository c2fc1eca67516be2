package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// AbilitySpec is the authored description of one ability.
type AbilitySpec struct {
	Key      string  `yaml:"key"`
	Name     string  `yaml:"name"`
	Kind     string  `yaml:"kind"`
	Cooldown float64 `yaml:"cooldown"`
	Cost     int     `yaml:"cost"`

	Range      float64        `yaml:"range"`
	SnapRadius float64        `yaml:"snap_radius"`
	Flight     *FlightSpec    `yaml:"flight"`
	Preview    PreviewSpec    `yaml:"preview"`
	Arc        ArcSpec        `yaml:"arc"`
	Spawn      SpawnSpec      `yaml:"spawn"`
	Slam       SlamSpec       `yaml:"slam"`
	Buff       BuffSpec       `yaml:"buff"`
	Held       HeldSpec       `yaml:"held"`
	Content    []string       `yaml:"content"`
	Immediate  bool           `yaml:"immediate"`
	Instant    bool           `yaml:"instant"`
	Script     string         `yaml:"script"`
	ScriptArgs map[string]any `yaml:"script_args"`
	Color      *YAMLColor     `yaml:"color"`
}

type FlightSpec struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// PreviewSpec places the placement marker relative to its drawn bounds.
type PreviewSpec struct {
	AnchorX float64 `yaml:"anchor_x"`
	AnchorY float64 `yaml:"anchor_y"`
	CenterX float64 `yaml:"center_x"`
	CenterY float64 `yaml:"center_y"`
}

type ArcSpec struct {
	Steps    int     `yaml:"steps"`
	Duration float64 `yaml:"duration"`
}

// SpawnSpec is what the ability puts into the world.
type SpawnSpec struct {
	Prefab string  `yaml:"prefab"`
	Fuse   float64 `yaml:"fuse"`
	Radius float64 `yaml:"radius"`
	Damage float64 `yaml:"damage"`
	Heal   float64 `yaml:"heal"`
	Health float64 `yaml:"health"`
}

type SlamSpec struct {
	Radius       float64 `yaml:"radius"`
	Damage       float64 `yaml:"damage"`
	ImpulseScale float64 `yaml:"impulse_scale"`
}

type BuffSpec struct {
	Duration        float64 `yaml:"duration"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
}

// HeldSpec is the visual attached to the owner while winding up.
type HeldSpec struct {
	AttachPoint string `yaml:"attach_point"`
	Content     string `yaml:"content"`
}

// LoadAbilitySpec loads one ability by file name, with or without the
// abilities/ prefix.
func LoadAbilitySpec(name string) (AbilitySpec, error) {
	spec, err := LoadSpec[AbilitySpec](abilityPath(name))
	if err != nil {
		return AbilitySpec{}, err
	}
	if spec.Key == "" {
		return AbilitySpec{}, fmt.Errorf("prefabs: %s: missing key", name)
	}
	return spec, nil
}

// LoadAbilitySpecs loads every ability spec.
func LoadAbilitySpecs() ([]AbilitySpec, error) {
	names, err := List("abilities")
	if err != nil {
		return nil, err
	}
	specs := make([]AbilitySpec, 0, len(names))
	seen := make(map[string]string, len(names))
	for _, name := range names {
		spec, err := LoadAbilitySpec(name)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[spec.Key]; dup {
			return nil, fmt.Errorf("prefabs: %s: key %q already used by %s", name, spec.Key, prev)
		}
		seen[spec.Key] = name
		specs = append(specs, spec)
	}
	return specs, nil
}

func abilityPath(name string) string {
	clean := cleanPrefabPath(name)
	if !strings.HasPrefix(clean, "abilities/") {
		clean = "abilities/" + clean
	}
	if !isSpecFile(clean) {
		clean += ".yaml"
	}
	return clean
}

// EntitySpec describes a spawnable body.
type EntitySpec struct {
	Name     string       `yaml:"name"`
	Mass     float64      `yaml:"mass"`
	Collider ColliderSpec `yaml:"collider"`
	Health   float64      `yaml:"health"`
	Static   bool         `yaml:"static"`
	// TTL is the lifetime in seconds of a spawned copy; zero lives forever.
	TTL   float64    `yaml:"ttl"`
	Actor *ActorSpec `yaml:"actor"`
	Color *YAMLColor `yaml:"color"`
}

// ActorSpec configures an entity that can own abilities.
type ActorSpec struct {
	Speed     float64    `yaml:"speed"`
	Reach     float64    `yaml:"reach"`
	HandX     float64    `yaml:"hand_x"`
	HandY     float64    `yaml:"hand_y"`
	Resources int        `yaml:"resources"`
	Regen     float64    `yaml:"regen"`
	Throw     TimingSpec `yaml:"throw"`
	Drop      DropSpec   `yaml:"drop"`
	Slam      TimingSpec `yaml:"slam"`
	Abilities []string   `yaml:"abilities"`
}

type TimingSpec struct {
	Release float64 `yaml:"release"`
	Total   float64 `yaml:"total"`
}

type DropSpec struct {
	Spawn float64 `yaml:"spawn"`
	Drop  float64 `yaml:"drop"`
	Total float64 `yaml:"total"`
}

type ColliderSpec struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Radius     float64 `yaml:"radius"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
}

// LoadEntitySpec loads entities/<name>.yaml.
func LoadEntitySpec(name string) (EntitySpec, error) {
	clean := cleanPrefabPath(name)
	if !strings.HasPrefix(clean, "entities/") {
		clean = "entities/" + clean
	}
	if !isSpecFile(clean) {
		clean += ".yaml"
	}
	spec, err := LoadSpec[EntitySpec](clean)
	if err != nil {
		return EntitySpec{}, err
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(strings.TrimPrefix(clean, "entities/"), ".yaml")
	}
	return spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// ColorOr returns the color or fallback when unset.
func (c *YAMLColor) ColorOr(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

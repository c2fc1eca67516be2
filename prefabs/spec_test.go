package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoadAbilitySpecs(t *testing.T) {
	specs, err := LoadAbilitySpecs()
	if err != nil {
		t.Fatalf("LoadAbilitySpecs: %v", err)
	}
	byKey := make(map[string]AbilitySpec, len(specs))
	for _, s := range specs {
		byKey[s.Key] = s
	}

	cases := []struct {
		key    string
		kind   string
		prefab string
	}{
		{"throw_bomb", "throw", "bomb"},
		{"plant_dynamite", "place", "dynamite"},
		{"build_barricade", "place", "barricade"},
		{"ground_slam", "slam", ""},
		{"sprint", "slam", ""},
		{"food_heal", "lob", "food"},
	}
	for _, c := range cases {
		t.Run(c.key, func(t *testing.T) {
			s, ok := byKey[c.key]
			if !ok {
				t.Fatalf("missing spec %s", c.key)
			}
			if s.Kind != c.kind || s.Spawn.Prefab != c.prefab {
				t.Fatalf("kind=%q prefab=%q", s.Kind, s.Spawn.Prefab)
			}
		})
	}

	bomb := byKey["throw_bomb"]
	if bomb.Flight == nil || bomb.Flight.Min != 0.1 || bomb.Flight.Max != 1.2 {
		t.Fatalf("flight = %+v", bomb.Flight)
	}
	if bomb.Held.AttachPoint != "hand" || bomb.Arc.Steps != 32 {
		t.Fatalf("held=%+v arc=%+v", bomb.Held, bomb.Arc)
	}
}

func TestLoadAbilitySpecPaths(t *testing.T) {
	for _, name := range []string{"sprint", "sprint.yaml", "abilities/sprint.yaml", "prefabs/abilities/sprint.yaml"} {
		s, err := LoadAbilitySpec(name)
		if err != nil {
			t.Fatalf("LoadAbilitySpec(%q): %v", name, err)
		}
		if s.Key != "sprint" || !s.Instant {
			t.Fatalf("LoadAbilitySpec(%q) = %+v", name, s)
		}
	}
	if _, err := LoadAbilitySpec("nope"); err == nil {
		t.Fatalf("loaded a missing spec")
	}
}

func TestLoadEntitySpec(t *testing.T) {
	actor, err := LoadEntitySpec("actor")
	if err != nil {
		t.Fatalf("LoadEntitySpec: %v", err)
	}
	if actor.Actor == nil || actor.Actor.Throw.Release != 0.3 || len(actor.Actor.Abilities) == 0 {
		t.Fatalf("actor section = %+v", actor.Actor)
	}
	food, err := LoadEntitySpec("entities/food.yaml")
	if err != nil {
		t.Fatalf("LoadEntitySpec: %v", err)
	}
	if food.Name != "food" || food.Collider.Radius != 8 || food.TTL != 6 {
		t.Fatalf("food = %+v", food)
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "abilities"), 0o755); err != nil {
		t.Fatal(err)
	}
	data := []byte("key: sprint\nname: Disk Sprint\nkind: slam\ninstant: true\n")
	if err := os.WriteFile(filepath.Join(dir, "abilities", "sprint.yaml"), data, 0o644); err != nil {
		t.Fatal(err)
	}
	extra := []byte("key: dash\nkind: slam\ninstant: true\n")
	if err := os.WriteFile(filepath.Join(dir, "abilities", "dash.yaml"), extra, 0o644); err != nil {
		t.Fatal(err)
	}

	prev := Dir
	Dir = dir
	defer func() { Dir = prev }()

	s, err := LoadAbilitySpec("sprint")
	if err != nil {
		t.Fatalf("LoadAbilitySpec: %v", err)
	}
	if s.Name != "Disk Sprint" {
		t.Fatalf("name = %q, want the disk copy", s.Name)
	}

	names, err := List("abilities")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	found := false
	for _, n := range names {
		if n == "abilities/dash.yaml" {
			found = true
		}
	}
	if !found || len(names) != 7 {
		t.Fatalf("List = %v, want the embedded six plus dash", names)
	}
}

func TestDuplicateKeysRejected(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "abilities"), 0o755); err != nil {
		t.Fatal(err)
	}
	dup := []byte("key: sprint\nkind: slam\ninstant: true\n")
	if err := os.WriteFile(filepath.Join(dir, "abilities", "zz_sprint_copy.yaml"), dup, 0o644); err != nil {
		t.Fatal(err)
	}
	prev := Dir
	Dir = dir
	defer func() { Dir = prev }()

	if _, err := LoadAbilitySpecs(); err == nil {
		t.Fatalf("duplicate keys accepted")
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: `"#ff9b30"`, want: color.NRGBA{R: 0xff, G: 0x9b, B: 0x30, A: 0xff}},
		{in: `"10203040"`, want: color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}},
		{in: `"#fff"`, wantErr: true},
		{in: `[1, 2]`, wantErr: true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			var got YAMLColor
			err := yaml.Unmarshal([]byte(c.in), &got)
			if c.wantErr {
				if err == nil {
					t.Fatalf("parsed %s", c.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.Color != c.want {
				t.Fatalf("color = %v, want %v", got.Color, c.want)
			}
		})
	}

	var unset *YAMLColor
	fallback := color.White
	if unset.ColorOr(fallback) != fallback {
		t.Fatalf("nil color did not fall back")
	}
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"announce.tengo", "scripts/announce.tengo", "prefabs/scripts/announce.tengo"} {
		if _, err := LoadScript(name); err != nil {
			t.Fatalf("LoadScript(%q): %v", name, err)
		}
	}
}

package main

import (
	"fmt"
	"image/color"
	"log"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/abilitykit/ability"
	"github.com/milk9111/abilitykit/common"
	"github.com/milk9111/abilitykit/ecs"
	"github.com/milk9111/abilitykit/ecs/component"
	"github.com/milk9111/abilitykit/ecs/entity"
	"github.com/milk9111/abilitykit/ecs/render"
	"github.com/milk9111/abilitykit/ecs/system"
	"github.com/milk9111/abilitykit/effect"
	"github.com/milk9111/abilitykit/prefabs"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Config struct {
	Actor   string
	Keys    []string
	Dummies int
	Debug   bool
	Watch   bool
}

type segment struct {
	a, b cp.Vector
}

type camera struct {
	offset cp.Vector
}

func (c *camera) toWorld(x, y float64) cp.Vector {
	return cp.Vector{X: x - c.offset.X, Y: y - c.offset.Y}
}

func (c *camera) toScreen(p cp.Vector) (float32, float32) {
	return float32(p.X + c.offset.X), float32(p.Y + c.offset.Y)
}

type Game struct {
	cfg     Config
	sim     *system.Simulation
	player  ecs.Entity
	keys    []string
	catalog *ability.Catalog
	content *render.Library
	watcher *prefabs.Watcher
	camera  *camera
	input   *inputSystem
	ground  []segment
	frames  int
}

func NewGame(cfg Config) (*Game, error) {
	sim := system.NewSimulation(common.TickSeconds)
	cam := &camera{offset: cp.Vector{X: baseWidth / 2, Y: baseHeight - 160}}
	g := &Game{
		cfg:     cfg,
		sim:     sim,
		content: render.NewLibrary(),
		camera:  cam,
		input:   &inputSystem{camera: cam},
		ground: []segment{
			{a: cp.Vector{X: -2000, Y: 0}, b: cp.Vector{X: 2000, Y: 0}},
			{a: cp.Vector{X: 260, Y: -140}, b: cp.Vector{X: 520, Y: -140}},
			{a: cp.Vector{X: -620, Y: -90}, b: cp.Vector{X: -420, Y: -40}},
		},
	}
	for _, s := range g.ground {
		sim.Physics.AddGround(s.a, s.b, 2)
	}

	spec, err := prefabs.LoadEntitySpec(cfg.Actor)
	if err != nil {
		return nil, fmt.Errorf("abilitylab: %w", err)
	}
	player, err := entity.BuildActor(sim.World, spec, cp.Vector{X: 0, Y: -spec.Collider.Height / 2})
	if err != nil {
		return nil, fmt.Errorf("abilitylab: %w", err)
	}
	if err := ecs.Add(sim.World, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return nil, fmt.Errorf("abilitylab: tag player: %w", err)
	}
	g.player = player

	for i := 0; i < cfg.Dummies; i++ {
		x := 320.0 + float64(i)*220
		if i%2 == 1 {
			x = -x
		}
		if _, err := entity.NewProp(sim.World, "dummy", cp.Vector{X: x, Y: -40}); err != nil {
			return nil, fmt.Errorf("abilitylab: %w", err)
		}
	}

	g.keys = cfg.Keys
	if len(g.keys) == 0 {
		g.keys = spec.Actor.Abilities
	}
	catalog, err := ability.LoadCatalog(effect.Loader)
	if err != nil {
		return nil, fmt.Errorf("abilitylab: %w", err)
	}
	if err := entity.Equip(sim.World, player, catalog, sim.Abilities, g.content, g.keys); err != nil {
		return nil, fmt.Errorf("abilitylab: %w", err)
	}
	g.catalog = catalog

	if cfg.Watch {
		dirs := prefabs.WatchDirs()
		if len(dirs) == 0 {
			log.Printf("abilitylab: no %s directory on disk, hot reload disabled", prefabs.Dir)
		} else if g.watcher, err = prefabs.NewWatcher(dirs...); err != nil {
			return nil, fmt.Errorf("abilitylab: watch: %w", err)
		}
	}
	return g, nil
}

func (g *Game) Close() {
	if g == nil {
		return
	}
	_ = g.watcher.Close()
	entity.Unequip(g.sim.World, g.player)
}

func (g *Game) Update() error {
	g.frames++
	g.reload()

	g.input.Update(g.sim.World)
	g.sim.Step()

	if g.cfg.Debug {
		for _, ev := range g.sim.World.Events().Drain() {
			log.Printf("event: %s %+v", ev.Type, ev.Data)
		}
	}
	return nil
}

// reload rebuilds the catalog after specs or scripts change on disk. A
// broken edit keeps the running abilities.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok {
			log.Printf("abilitylab: watch: %v", err)
		}
	default:
	}
	changed := g.watcher.Drain()
	if len(changed) == 0 {
		return
	}
	log.Printf("abilitylab: reloading after changes to %s", strings.Join(changed, ", "))

	catalog, err := ability.LoadCatalog(effect.Loader)
	if err != nil {
		log.Printf("abilitylab: reload: %v", err)
		return
	}
	g.sim.Abilities.ResetSpecs()
	if err := entity.Equip(g.sim.World, g.player, catalog, g.sim.Abilities, g.content, g.keys); err != nil {
		log.Printf("abilitylab: reload: %v", err)
		return
	}
	g.catalog = catalog
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	for _, s := range g.ground {
		x0, y0 := g.camera.toScreen(s.a)
		x1, y1 := g.camera.toScreen(s.b)
		vector.StrokeLine(screen, x0, y0, x1, y1, 4, colornames.Darkolivegreen, true)
	}

	g.drawBodies(screen)
	g.drawPlayer(screen)
	g.drawPreview(screen)
	g.drawHUD(screen)
}

func (g *Game) drawBodies(screen *ebiten.Image) {
	w := g.sim.World
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		var clr color.Color = colornames.Gray
		if p, ok := ecs.Get(w, e, component.PrefabComponent.Kind()); ok && p.Color != nil {
			clr = p.Color
		}
		x, y := g.camera.toScreen(t.Vec())
		if body.Radius > 0 {
			vector.DrawFilledCircle(screen, x, y, float32(body.Radius), clr, true)
		} else {
			vector.DrawFilledRect(screen, x-float32(body.Width/2), y-float32(body.Height/2), float32(body.Width), float32(body.Height), clr, true)
		}
		if g.cfg.Debug && body.Shape != nil {
			bb := body.Shape.BB()
			l, tp := g.camera.toScreen(cp.Vector{X: bb.L, Y: bb.B})
			r, b := g.camera.toScreen(cp.Vector{X: bb.R, Y: bb.T})
			vector.StrokeRect(screen, l, tp, r-l, b-tp, 1, colornames.Yellow, false)
		}

		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && h.Max > 0 {
			top := float32(body.Height / 2)
			if body.Radius > 0 {
				top = float32(body.Radius)
			}
			frac := float32(common.Saturate(h.Current / h.Max))
			vector.DrawFilledRect(screen, x-20, y-top-10, 40, 4, colornames.Darkred, false)
			vector.DrawFilledRect(screen, x-20, y-top-10, 40*frac, 4, colornames.Lime, false)
		}
		if f, ok := ecs.Get(w, e, component.FuseComponent.Kind()); ok {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.1f", f.Remaining), int(x)-8, int(y)-28)
		}
	})
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	owner := entity.NewActorOwner(g.sim.World, g.player)
	a, ok := ecs.Get(g.sim.World, g.player, component.ActorComponent.Kind())
	if !ok {
		return
	}
	hx, hy := g.camera.toScreen(owner.HandPosition())
	vector.StrokeCircle(screen, hx, hy, 4, 1, colornames.White, true)
	i := 0
	for point, h := range a.Attached {
		name, _ := g.content.Path(h)
		vector.DrawFilledCircle(screen, hx, hy, 7, colornames.Orange, true)
		ebitenutil.DebugPrintAt(screen, point+": "+path.Base(name), int(hx)+10, int(hy)-12+i*14)
		i++
	}
}

func (g *Game) drawPreview(screen *ebiten.Image) {
	slots, ok := ecs.Get(g.sim.World, g.player, component.AbilitySlotsComponent.Kind())
	if !ok {
		return
	}
	pv := slots.Current().Preview()
	if !pv.Visible {
		return
	}
	var clr color.Color = colornames.Limegreen
	if !pv.Valid {
		clr = colornames.Red
	}
	for i := 1; i < len(pv.Arc); i++ {
		x0, y0 := g.camera.toScreen(pv.Arc[i-1])
		x1, y1 := g.camera.toScreen(pv.Arc[i])
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, clr, true)
	}
	mx, my := g.camera.toScreen(pv.Marker)
	vector.StrokeCircle(screen, mx, my, 8, 2, clr, true)
	if pv.Radius > 0 {
		vector.StrokeCircle(screen, mx, my, float32(pv.Radius), 1, clr, true)
	}
	if pv.Target != 0 {
		if p, ok := g.sim.Abilities.EntityPosition(pv.Target); ok {
			tx, ty := g.camera.toScreen(p)
			vector.StrokeCircle(screen, tx, ty, 36, 2, colornames.Gold, true)
		}
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	w := g.sim.World
	var b strings.Builder
	fmt.Fprintf(&b, "FPS %.0f  RMB aim  LMB confirm  Esc cancel  1-9 slot  A/D walk\n", ebiten.ActualFPS())
	if res, ok := ecs.Get(w, g.player, component.ResourcesComponent.Kind()); ok {
		fmt.Fprintf(&b, "resources %d/%d", res.Amount, res.Max)
	}
	if h, ok := ecs.Get(w, g.player, component.HealthComponent.Kind()); ok {
		fmt.Fprintf(&b, "  health %.0f/%.0f", h.Current, h.Max)
	}
	b.WriteString("\n")
	if slots, ok := ecs.Get(w, g.player, component.AbilitySlotsComponent.Kind()); ok {
		for i, in := range slots.Slots {
			marker := " "
			if i == slots.Active {
				marker = ">"
			}
			fmt.Fprintf(&b, "%s%d %-16s %-9s cd %4.1f/%-4.1f cost %d\n", marker, i+1, in.Key(), in.State(), in.RemainingCooldown(), in.Cooldown(), in.ResourceCost())
		}
	}
	ebitenutil.DebugPrint(screen, b.String())
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

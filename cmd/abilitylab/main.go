package main

import (
	"flag"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	abilities := flag.String("ability", "", "comma separated ability keys to equip (default: the actor's list)")
	actorName := flag.String("actor", "actor", "entity spec in prefabs/entities to control")
	dummies := flag.Int("dummies", 3, "number of target dummies")
	debug := flag.Bool("debug", false, "draw colliders and log world events")
	watch := flag.Bool("watch", false, "reload prefab specs and scripts when they change on disk")
	flag.Parse()

	var keys []string
	for _, k := range strings.Split(*abilities, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}

	game, err := NewGame(Config{
		Actor:   *actorName,
		Keys:    keys,
		Dummies: *dummies,
		Debug:   *debug,
		Watch:   *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("abilitylab")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

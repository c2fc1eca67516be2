package component

import "image/color"

// Prefab records which entity spec an entity was built from.
type Prefab struct {
	Name  string
	Color color.Color
}

var PrefabComponent = NewComponent[Prefab]()

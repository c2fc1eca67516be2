package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/abilitykit/ecs"
	"github.com/milk9111/abilitykit/ecs/component"
)

var slotKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// inputSystem copies keyboard, mouse and gamepad state into the player's
// AbilityInput. Right mouse aims, left mouse confirms, Escape cancels.
type inputSystem struct {
	camera *camera
}

func (i *inputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	const stickDeadzone = 0.2

	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	aiming := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	confirm := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	cancel := inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	slot := -1
	for i, k := range slotKeys {
		if inpututil.IsKeyJustPressed(k) {
			slot = i
		}
	}

	moveX := 0.0
	if left {
		moveX -= 1
	}
	if right {
		moveX += 1
	}

	mx, my := ebiten.CursorPosition()
	aim := i.camera.toWorld(float64(mx), float64(my))

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			moveX = leftX
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomLeft) {
			aiming = true
		}
		confirm = confirm || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
		cancel = cancel || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightRight)
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontTopRight) {
			slot = -2
		}
	}

	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.AbilityInputComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag, input *component.AbilityInput) {
		input.MoveX = moveX
		input.Aiming = aiming
		input.Aim = cp.Vector{X: aim.X, Y: aim.Y}
		// Confirm and Cancel stay latched until the ability system reads them.
		input.Confirm = input.Confirm || confirm
		input.Cancel = input.Cancel || cancel
		switch {
		case slot >= 0:
			input.Slot = slot
		case slot == -2:
			if slots, ok := ecs.Get(w, e, component.AbilitySlotsComponent.Kind()); ok && len(slots.Slots) > 0 {
				input.Slot = (slots.Active + 1) % len(slots.Slots)
			}
		}
	})
}

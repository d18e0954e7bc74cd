package gui

import rl "github.com/gen2brain/raylib-go/raylib"

type binding struct {
	keys   []int32
	shift  bool // requires shift held; unshifted bindings fire only without it
	repeat bool
	action Action
}

var bindings = []binding{
	{keys: []int32{rl.KeyDown, rl.KeyJ}, repeat: true, action: ActionNext},
	{keys: []int32{rl.KeyUp, rl.KeyK}, repeat: true, action: ActionPrev},
	{keys: []int32{rl.KeyRight, rl.KeyL}, repeat: true, action: ActionIncrease},
	{keys: []int32{rl.KeyLeft, rl.KeyH}, repeat: true, action: ActionDecrease},
	{keys: []int32{rl.KeyRight, rl.KeyL}, shift: true, repeat: true, action: ActionIncreaseCoarse},
	{keys: []int32{rl.KeyLeft, rl.KeyH}, shift: true, repeat: true, action: ActionDecreaseCoarse},
	{keys: []int32{rl.KeyP}, action: ActionNextPreset},
	{keys: []int32{rl.KeyP}, shift: true, action: ActionPrevPreset},
	{keys: []int32{rl.KeyR}, action: ActionReset},
	{keys: []int32{rl.KeyTab}, action: ActionTogglePanel},
	{keys: []int32{rl.KeyO}, action: ActionOpen},
	{keys: []int32{rl.KeyS}, action: ActionSave},
	{keys: []int32{rl.KeyF12}, action: ActionSnapshot},
	{keys: []int32{rl.KeyQ, rl.KeyEscape}, action: ActionQuit},
}

// pollActions returns the actions triggered by keys pressed this frame.
func pollActions() []Action {
	shift := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)

	var actions []Action
	for _, b := range bindings {
		if b.shift != shift {
			continue
		}
		for _, k := range b.keys {
			if rl.IsKeyPressed(k) || (b.repeat && rl.IsKeyPressedRepeat(k)) {
				actions = append(actions, b.action)
				break
			}
		}
	}
	return actions
}

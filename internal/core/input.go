package core

// Action represents a discrete input event, abstracted from physical key presses.
// Each action maps 1:1 onto an engine mutation; no raw keycodes reach the engine.
type Action int

const (
	ActionNone      Action = iota
	ActionMoveLeft         // Left arrow
	ActionMoveRight        // Right arrow
	ActionRotateCW         // Up arrow (Z with --inverse-rotation)
	ActionRotateCCW        // Z (Up arrow with --inverse-rotation)
	ActionSoftDrop         // Down arrow - temporary gravity boost
	ActionHardDrop         // Space - drop to the floor and lock
	ActionPause            // P - pause/unpause game
	ActionRestart          // R - restart after game over
	ActionExit             // Esc, Q, Ctrl+C - leave the game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionRotateCW:
		return "RotateCW"
	case ActionRotateCCW:
		return "RotateCCW"
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionHardDrop:
		return "HardDrop"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionExit:
		return "Exit"
	default:
		return "Unknown"
	}
}

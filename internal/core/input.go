package core

// Action represents a semantic game action, abstracted from physical key presses.
// Movement is not an action: it travels as a continuous vector on InputFrame.
type Action int

const (
	ActionNone    Action = iota
	ActionChoice1        // 1 - first perk offer
	ActionChoice2        // 2 - second perk offer
	ActionChoice3        // 3 - third perk offer
	ActionConfirm        // Enter/Space - continue past level summary or chest
	ActionPause          // P, Escape - pause/unpause
	ActionRestart        // R - retry after a lost level
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionChoice1:
		return "Choice1"
	case ActionChoice2:
		return "Choice2"
	case ActionChoice3:
		return "Choice3"
	case ActionConfirm:
		return "Confirm"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// ChoiceIndex returns the zero-based offer index for a choice action, or -1.
func (a Action) ChoiceIndex() int {
	switch a {
	case ActionChoice1:
		return 0
	case ActionChoice2:
		return 1
	case ActionChoice3:
		return 2
	default:
		return -1
	}
}

// InputFrame represents the input state sampled once per simulation tick.
type InputFrame struct {
	// Move is the normalized movement vector, magnitude in [0, 1].
	Move Vec2

	// DT is the clamped frame delta in seconds. Zero means "use the fixed tick".
	DT float64

	// Actions maps discrete actions to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// SetMove stores the movement vector, clamping its magnitude to 1.
func (f *InputFrame) SetMove(v Vec2) {
	f.Move = ClampLen(v, 1)
}

// Clear resets actions and movement for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Move = Vec2{}
	f.DT = 0
}

package viewer

import "github.com/gdamore/tcell/v2"

// Action is a viewer command bound to a key.
type Action uint8

const (
	ActionNone Action = iota
	ActionPanN
	ActionPanS
	ActionPanE
	ActionPanW
	ActionPause
	ActionStep
	ActionFinish
	ActionRestart
	ActionReseed
	ActionTheme
	ActionQuit
)

// Help is the key summary shown in the HUD.
const Help = "hjkl/arrows pan  space pause  . step  f finish  r restart  n new seed  t theme  q quit"

// keyToAction maps a tcell key event to a viewer action.
func keyToAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionPanN
	case tcell.KeyDown:
		return ActionPanS
	case tcell.KeyRight:
		return ActionPanE
	case tcell.KeyLeft:
		return ActionPanW
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyEnter:
		return ActionFinish
	}

	switch ev.Rune() {
	case 'k', 'K':
		return ActionPanN
	case 'j', 'J':
		return ActionPanS
	case 'l', 'L':
		return ActionPanE
	case 'h', 'H':
		return ActionPanW
	case ' ', 'p', 'P':
		return ActionPause
	case '.':
		return ActionStep
	case 'f', 'F':
		return ActionFinish
	case 'r', 'R':
		return ActionRestart
	case 'n', 'N':
		return ActionReseed
	case 't', 'T':
		return ActionTheme
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}

package gui

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/qnkhuat/gestris/pkg/event"
)

// KeyCommand maps a key press on the board to a game command. Russian layout
// letters are accepted alongside Latin ones.
func KeyCommand(ev *tcell.EventKey) event.Command {
	switch ev.Key() {
	case tcell.KeyLeft:
		return event.CommandMoveLeft
	case tcell.KeyRight:
		return event.CommandMoveRight
	case tcell.KeyUp:
		return event.CommandRotate
	case tcell.KeyDown:
		return event.CommandSoftDrop
	case tcell.KeyEscape:
		return event.CommandRestart
	case tcell.KeyRune:
		switch unicode.ToLower(ev.Rune()) {
		case ' ':
			return event.CommandHardDrop
		case 'p', 'з':
			return event.CommandPause
		case 's', 'ы':
			return event.CommandSave
		}
	}

	return event.CommandNone
}

func isMenuKey(ev *tcell.EventKey) bool {
	if ev.Key() != tcell.KeyRune {
		return false
	}
	r := unicode.ToLower(ev.Rune())
	return r == 'm' || r == 'ь'
}

func (ui *UI) handleGameKey(ev *tcell.EventKey) *tcell.EventKey {
	if isMenuKey(ev) {
		ui.show(pageMenu)
		return nil
	}

	switch cmd := KeyCommand(ev); cmd {
	case event.CommandNone:
		return ev
	case event.CommandSave:
		ui.command(cmd, ui.texts().Saved)
	case event.CommandRestart:
		ui.setMessage("")
		ui.match.Send(cmd)
	default:
		ui.match.Send(cmd)
	}

	return nil
}

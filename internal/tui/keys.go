package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kestrel-editor/kestrel/internal/app"
	"github.com/kestrel-editor/kestrel/internal/engine/buffer"
)

// translateKey maps a terminal key event to a control-loop message.
// Returns nil for keys the editor does not bind.
func translateKey(ev *tcell.EventKey) app.Msg {
	extend := ev.Modifiers()&tcell.ModShift != 0

	switch ev.Key() {
	case tcell.KeyCtrlQ:
		return app.QuitMsg{}
	case tcell.KeyCtrlN:
		return app.NewFileMsg{}
	case tcell.KeyCtrlO:
		return app.OpenFileMsg{}
	case tcell.KeyCtrlS:
		return app.SaveFileMsg{}
	case tcell.KeyCtrlT:
		return app.CycleThemeMsg{}
	case tcell.KeyCtrlA:
		return app.EditMsg{Action: buffer.SelectAll()}

	case tcell.KeyUp:
		return app.EditMsg{Action: buffer.MoveCursor(buffer.DirUp, extend)}
	case tcell.KeyDown:
		return app.EditMsg{Action: buffer.MoveCursor(buffer.DirDown, extend)}
	case tcell.KeyLeft:
		return app.EditMsg{Action: buffer.MoveCursor(buffer.DirLeft, extend)}
	case tcell.KeyRight:
		return app.EditMsg{Action: buffer.MoveCursor(buffer.DirRight, extend)}
	case tcell.KeyHome:
		return app.EditMsg{Action: buffer.MoveCursor(buffer.DirLineStart, extend)}
	case tcell.KeyEnd:
		return app.EditMsg{Action: buffer.MoveCursor(buffer.DirLineEnd, extend)}

	case tcell.KeyEnter:
		return app.EditMsg{Action: buffer.InsertNewline()}
	case tcell.KeyTab:
		return app.EditMsg{Action: buffer.InsertRune('\t')}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return app.EditMsg{Action: buffer.Backspace()}
	case tcell.KeyDelete:
		return app.EditMsg{Action: buffer.Delete()}

	case tcell.KeyRune:
		return app.EditMsg{Action: buffer.InsertRune(ev.Rune())}
	}

	return nil
}

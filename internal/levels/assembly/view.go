package assembly

import (
	"fmt"

	"github.com/vovakirdan/phone-secrets/internal/core"
)

type ui struct {
	focusSlots bool
	item       core.Cursor
	slot       core.Cursor
}

func newUI() ui {
	return ui{
		item: core.NewCursor(len(Components)),
		slot: core.NewCursor(len(Components)),
	}
}

// Input maps platform actions onto the tray and the slots.
func (l *Level) Input(a core.Action) {
	switch a {
	case core.ActionNext:
		l.Next()
	case core.ActionSwitch, core.ActionLeft, core.ActionRight:
		l.ui.focusSlots = !l.ui.focusSlots
	case core.ActionUp:
		l.focused().Move(-1)
	case core.ActionDown:
		l.focused().Move(1)
	case core.ActionAlt:
		l.Deselect()
		l.ui.focusSlots = false
	case core.ActionConfirm:
		l.confirm()
	}
}

func (l *Level) confirm() {
	if l.completed {
		return
	}
	if !l.ui.focusSlots {
		id := l.items[l.ui.item.Pos()]
		if l.Select(id) == nil && l.Selected() == id {
			l.ui.focusSlots = true
		}
		return
	}
	if l.Tap(Components[l.ui.slot.Pos()].ID) == core.MatchPlaced {
		l.ui.focusSlots = false
	}
}

func (l *Level) focused() *core.Cursor {
	if l.ui.focusSlots {
		return &l.ui.slot
	}
	return &l.ui.item
}

// Render draws the component tray, the phone slots and the progress bar.
func (l *Level) Render(dst *core.Screen) {
	dst.DrawTextCentered(0, fmt.Sprintf("Level %d: %s", info.Number, info.Title), core.ColorCyan)
	dst.DrawTextCentered(1, info.Subtitle, core.ColorGray)

	x := 4
	dst.DrawText(x, 3, fmt.Sprintf("Placed %d/%d ", l.Count(), l.Total()))
	dst.DrawBar(x+14, 3, 30, l.Progress(), core.ColorCyan)

	dst.DrawText(x, 5, "Components")
	for i, id := range l.items {
		c, _ := componentByID(id)
		color := core.ColorDefault
		label := c.Name
		switch {
		case l.Placed(id):
			color, label = core.ColorGray, c.Name+" ✓"
		case l.Selected() == id:
			color = core.ColorCyan
		}
		dst.DrawColored(x, 6+i, mark(!l.ui.focusSlots && i == l.ui.item.Pos())+label, color)
	}

	sx := x + 30
	dst.DrawBox(sx, 5, 28, len(Components)+2, l.frameColor())
	for i, c := range Components {
		color := core.ColorGray
		label := "[ " + c.Name + " ]"
		switch {
		case l.ErrorSlot() == c.ID:
			color = core.ColorRed
		case l.Placed(c.ID):
			color, label = core.ColorGreen, c.Name
		}
		dst.DrawColored(sx+1, 6+i, mark(l.ui.focusSlots && i == l.ui.slot.Pos())+label, color)
	}

	y := 8 + len(Components)
	switch {
	case l.poweredOn:
		dst.DrawColored(sx+8, 5, " ON ", core.ColorCyan)
		n := dst.DrawWrapped(x, y, dst.Width()-8, Conclusion, core.ColorGreen)
		dst.DrawColored(x, y+n+1, "[n] next level", core.ColorGreen)
	case l.completed:
		dst.DrawColored(x, y, "Powering on...", core.ColorYellow)
	case l.Selected() != "":
		c, _ := componentByID(l.Selected())
		dst.DrawColored(x, y, "Selected: "+c.Name+". Pick the slot it belongs to.", core.ColorCyan)
	default:
		c, _ := componentByID(l.items[l.ui.item.Pos()])
		dst.DrawColored(x, y, c.Desc, core.ColorGray)
		dst.DrawColored(x, y+1, "[enter] pick, then place   [tab] switch column   [x] drop selection", core.ColorGray)
	}
}

func (l *Level) frameColor() core.Color {
	if l.poweredOn {
		return core.ColorCyan
	}
	return core.ColorGray
}

func mark(on bool) string {
	if on {
		return "> "
	}
	return "  "
}

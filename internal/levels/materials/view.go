package materials

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/phone-secrets/internal/core"
)

// ui holds cursor state of the terminal view.
type ui struct {
	focusParts bool
	mineral    core.Cursor
	part       core.Cursor
	option     core.Cursor // 0 dispose, 1 recycle
}

func newUI() ui {
	return ui{
		mineral: core.NewCursor(len(Minerals)),
		part:    core.NewCursor(len(Parts)),
		option:  core.NewCursor(2),
	}
}

func (u *ui) reset() {
	*u = newUI()
}

// Input maps platform actions onto the current phase.
func (l *Level) Input(a core.Action) {
	if a == core.ActionNext {
		l.Next()
		return
	}
	switch l.phase {
	case PhaseExtraction:
		l.inputExtraction(a)
	case PhaseAssembly:
		l.inputAssembly(a)
	case PhaseEndOfLife:
		l.inputEndOfLife(a)
	}
}

func (l *Level) inputExtraction(a core.Action) {
	switch a {
	case core.ActionUp, core.ActionLeft:
		l.ui.mineral.Move(-1)
	case core.ActionDown, core.ActionRight:
		l.ui.mineral.Move(1)
	case core.ActionConfirm:
		if l.AllExtracted() {
			_ = l.AdvancePhase()
			return
		}
		_, _ = l.Extract(Minerals[l.ui.mineral.Pos()].ID)
	}
}

func (l *Level) inputAssembly(a core.Action) {
	switch a {
	case core.ActionSwitch:
		l.ui.focusParts = !l.ui.focusParts
	case core.ActionUp:
		l.focused().Move(-1)
	case core.ActionDown:
		l.focused().Move(1)
	case core.ActionAlt:
		l.board.Deselect()
		l.ui.focusParts = false
	case core.ActionConfirm:
		if l.ready {
			_ = l.AdvancePhase()
			return
		}
		if !l.ui.focusParts {
			if l.SelectMineral(Minerals[l.ui.mineral.Pos()].ID) {
				l.ui.focusParts = true
			}
			return
		}
		if r, _ := l.TapPart(Parts[l.ui.part.Pos()].ID); r == core.MatchPlaced {
			l.ui.focusParts = false
		}
	}
}

func (l *Level) focused() *core.Cursor {
	if l.ui.focusParts {
		return &l.ui.part
	}
	return &l.ui.mineral
}

func (l *Level) inputEndOfLife(a core.Action) {
	switch a {
	case core.ActionLeft, core.ActionUp:
		l.ui.option.Move(-1)
	case core.ActionRight, core.ActionDown:
		l.ui.option.Move(1)
	case core.ActionAlt:
		_ = l.Dispose()
	case core.ActionConfirm:
		if l.ui.option.Pos() == 0 {
			_ = l.Dispose()
		} else {
			_ = l.Recycle()
		}
	}
}

// Render draws the phase tabs and the active phase.
func (l *Level) Render(dst *core.Screen) {
	dst.DrawTextCentered(0, fmt.Sprintf("Level %d: %s", info.Number, info.Title), core.ColorCyan)
	dst.DrawTextCentered(1, info.Subtitle, core.ColorGray)

	x := (dst.Width() - 60) / 2
	for p := PhaseExtraction; p <= PhaseEndOfLife; p++ {
		c := core.ColorGray
		switch {
		case p == l.phase:
			c = core.ColorCyan
		case p < l.phase:
			c = core.ColorGreen
		}
		x = dst.DrawColored(x, 3, fmt.Sprintf("[Phase %d: %s]", p, p), c) + 2
	}

	switch l.phase {
	case PhaseExtraction:
		l.renderExtraction(dst)
	case PhaseAssembly:
		l.renderAssembly(dst)
	case PhaseEndOfLife:
		l.renderEndOfLife(dst)
	}
}

func (l *Level) renderExtraction(dst *core.Screen) {
	x := 4
	dst.DrawText(x, 5, "Scenery: ")
	for i := 0; i < l.env.Config.Materials.Trees; i++ {
		switch l.TreeState(i) {
		case TreeStanding:
			dst.Set(x+9+i*2, 5, '♣', core.ColorGreen)
		case TreeFading:
			dst.Set(x+9+i*2, 5, '♣', core.ColorGray)
		case TreeGone:
			dst.Set(x+9+i*2, 5, '_', core.ColorOrange)
		}
	}
	scenery := map[Landscape]string{
		LandscapeClean:      "clear sky, blue river",
		LandscapePolluted:   "smog, muddy river",
		LandscapeDevastated: "scorched earth",
	}[l.Landscape()]
	dst.DrawColored(x, 6, fmt.Sprintf("Damage: %d%%  (%s)", int(l.Damage()+0.5), scenery), core.ColorRed)

	for i, m := range Minerals {
		y := 8 + i*2
		marker := "  "
		if i == l.ui.mineral.Pos() {
			marker = "> "
		}
		dst.DrawText(x, y, marker+fmt.Sprintf("%-10s", m.Name))
		dst.DrawBar(x+12, y, 30, l.Extracted(m.ID)/100, core.ColorYellow)
		dst.DrawColored(x+44, y, fmt.Sprintf("%3d%%  %s", int(l.Extracted(m.ID)), m.Use), core.ColorGray)
	}

	if l.AllExtracted() {
		dst.DrawWrapped(x, 15, dst.Width()-8, ExtractionFact, core.ColorOrange)
		dst.DrawColored(x, 18, "[enter] next phase: manufacturing", core.ColorGreen)
	} else {
		dst.DrawColored(x, 15, "[↑/↓] choose a mineral   [enter] mine", core.ColorGray)
	}
}

func (l *Level) renderAssembly(dst *core.Screen) {
	x := 4
	dst.DrawText(x, 5, "Minerals")
	dst.DrawText(x+30, 5, "Parts")
	for i, m := range Minerals {
		y := 7 + i*2
		c := core.ColorDefault
		label := m.Name
		switch {
		case l.Assembled(m.ID):
			c, label = core.ColorGreen, m.Name+" ✓"
		case l.board.Selected() == m.ID:
			c = core.ColorCyan
		}
		dst.DrawColored(x, y, cursorMark(!l.ui.focusParts && i == l.ui.mineral.Pos())+label, c)
	}
	for i, p := range Parts {
		y := 7 + i*2
		c := core.ColorDefault
		if l.board.Filled(p.ID) {
			c = core.ColorGreen
		}
		if l.board.ErrorSlot() == p.ID {
			c = core.ColorRed
		}
		dst.DrawColored(x+30, y, cursorMark(l.ui.focusParts && i == l.ui.part.Pos())+"["+p.Name+"]", c)
	}

	dst.DrawColored(x, 14, fmt.Sprintf("CO2 emitted: %d kg", int(l.CO2()+0.5)), core.ColorOrange)
	switch {
	case l.ready:
		dst.DrawWrapped(x, 16, dst.Width()-8, AssemblyFact, core.ColorOrange)
		dst.DrawColored(x, 19, "[enter] next phase: end of life", core.ColorGreen)
	case l.counting:
		dst.DrawColored(x, 16, "Counting the manufacturing footprint...", core.ColorGray)
	default:
		dst.DrawColored(x, 16, "[enter] pick a mineral, then its part   [tab] switch column   [x] drop selection", core.ColorGray)
	}
}

func (l *Level) renderEndOfLife(dst *core.Screen) {
	x := 4
	dst.DrawText(x, 5, "Your phone is worn out. What do you do with it?")
	options := []string{"Throw it away", "Recycle it"}
	for i, o := range options {
		c := core.ColorDefault
		if i == 0 && l.choice != ChoiceNone {
			c = core.ColorGray
		}
		dst.DrawColored(x+i*24, 7, cursorMark(i == l.ui.option.Pos())+o, c)
	}

	kind, step := l.Animation()
	if step == 0 {
		return
	}
	steps, fact, c := DisposeSteps, DisposeFact, core.ColorRed
	if kind == ChoiceRecycle {
		steps, fact, c = RecycleSteps, RecycleFact, core.ColorGreen
	}
	for i := 0; i < step; i++ {
		dst.DrawColored(x, 9+i, fmt.Sprintf("%d. %s", i+1, steps[i]), c)
	}
	if step == 3 {
		dst.DrawWrapped(x, 13, dst.Width()-8, fact, c)
	}
	if l.completed {
		result := "Recycled: 80% of metals recovered."
		if l.choice == ChoiceBoth {
			result = "Landfill: 0% recovered. Recycling: 80% recovered. Good call."
		}
		dst.DrawColored(x, 16, result, core.ColorGreen)
		dst.DrawColored(x, 18, "[n] next level", core.ColorGreen)
	}
}

func cursorMark(on bool) string {
	if on {
		return "> "
	}
	return strings.Repeat(" ", 2)
}

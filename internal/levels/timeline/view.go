package timeline

import (
	"fmt"

	"github.com/vovakirdan/phone-secrets/internal/core"
)

// Input maps platform actions: confirm upgrades the phone, left/right review
// unlocked stages.
func (l *Level) Input(a core.Action) {
	switch a {
	case core.ActionConfirm:
		_ = l.Advance()
	case core.ActionLeft:
		_ = l.Review(l.viewing - 1)
	case core.ActionRight:
		_ = l.Review(l.viewing + 1)
	case core.ActionNext:
		l.Next()
	}
}

// Render draws the current stage and the timeline strip.
func (l *Level) Render(dst *core.Screen) {
	w := dst.Width()
	dst.DrawTextCentered(0, fmt.Sprintf("Level %d: %s", info.Number, info.Title), core.ColorCyan)
	dst.DrawTextCentered(1, info.Subtitle, core.ColorGray)

	stage := Stages[l.viewing]
	boxW := core.Min(w-4, 70)
	boxX := (w - boxW) / 2
	dst.DrawBox(boxX, 3, boxW, 9, core.ColorBlue)
	dst.DrawColored(boxX+2, 4, stage.Year, core.ColorYellow)
	dst.DrawColored(boxX+2+len(stage.Year)+2, 4, stage.Name, core.ColorWhite)
	if l.InfoVisible() {
		dst.DrawWrapped(boxX+2, 6, boxW-4, stage.Desc, core.ColorDefault)
	} else {
		dst.DrawColored(boxX+2, 6, "...", core.ColorGray)
	}

	l.renderStrip(dst, 13)

	switch {
	case l.completed:
		dst.DrawWrapped(boxX, 16, boxW, Conclusion, core.ColorGreen)
		dst.DrawTextCentered(19, "Last evolution reached! [n] next level", core.ColorGreen)
	case l.viewing < len(Stages)-1:
		dst.DrawTextCentered(16, "[enter] upgrade   [←/→] review unlocked stages", core.ColorGray)
	}
}

// renderStrip draws one marker per stage: done, current, or locked.
func (l *Level) renderStrip(dst *core.Screen, y int) {
	const cell = 7
	total := len(Stages) * cell
	x := (dst.Width() - total) / 2
	for i, s := range Stages {
		marker, c := "○", core.ColorGray
		switch {
		case i == l.viewing:
			marker, c = "◉", core.ColorCyan
		case i <= l.unlocked:
			marker, c = "✓", core.ColorGreen
		}
		dst.DrawColored(x+i*cell+cell/2, y, marker, c)
		dst.DrawColored(x+i*cell+(cell-len(s.Year))/2, y+1, s.Year, c)
	}
}

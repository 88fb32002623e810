package tui

import (
	"fmt"

	"github.com/vovakirdan/phone-secrets/internal/core"
	"github.com/vovakirdan/phone-secrets/internal/progress"
	"github.com/vovakirdan/phone-secrets/internal/registry"
	"github.com/vovakirdan/phone-secrets/internal/session"
)

const farewell = "A phone is much more than an object: it packs history, science, " +
	"engineering and psychology into your pocket. Use it wisely!"

// drawWelcome renders the start screen with the level list.
func drawWelcome(dst *core.Screen, orch *progress.Orchestrator) {
	levels := registry.List()
	top := core.Max(1, (dst.Height()-len(levels)-10)/2)

	dst.DrawTextCentered(top, "PHONE SECRETS", core.ColorCyan)
	dst.DrawTextCentered(top+1, "An interactive journey through the device in your pocket", core.ColorGray)
	dst.DrawTextCentered(top+2, fmt.Sprintf("%d interactive levels", len(levels)), core.ColorGray)

	w := 52
	x := core.Max(0, (dst.Width()-w)/2)
	dst.DrawBox(x, top+4, w, len(levels)+2, core.ColorBlue)
	for i, info := range levels {
		mark, c := "  ", core.ColorWhite
		if orch.Completed(info.Number) {
			mark, c = "v ", core.ColorGreen
		}
		line := fmt.Sprintf("%s%d. %s - %s", mark, info.Number, info.Title, info.Subtitle)
		dst.DrawColored(x+2, top+5+i, line, c)
	}

	y := top + 7 + len(levels)
	if n := len(orch.CompletedLevels()); n > 0 {
		dst.DrawTextCentered(y, fmt.Sprintf("%d of %d levels completed", n, progress.Levels), core.ColorGreen)
		y++
	}
	dst.DrawTextCentered(y+1, "[enter] start   [1-5] jump to a level   [q] quit", core.ColorYellow)
}

// drawFinal renders the certificate shown after the last level.
func drawFinal(dst *core.Screen, sess *session.Session) {
	orch := sess.Progress()
	levels := registry.List()

	w := core.Min(dst.Width()-2, 72)
	x := core.Max(0, (dst.Width()-w)/2)
	h := core.Min(dst.Height(), len(levels)+16)
	dst.DrawBox(x, 0, w, h, core.ColorYellow)

	dst.DrawTextCentered(1, "CERTIFICATE OF ACHIEVEMENT", core.ColorYellow)
	dst.DrawTextCentered(2, "Phone Secrets", core.ColorGray)
	dst.DrawTextCentered(4, fmt.Sprintf("Congratulations! You completed %d of %d levels.",
		len(orch.CompletedLevels()), progress.Levels), core.ColorWhite)

	y := 6
	for _, info := range levels {
		c := core.ColorGray
		if orch.Completed(info.Number) {
			c = core.ColorCyan
		}
		dst.DrawColored(x+3, y, fmt.Sprintf("%d. %s", info.Number, info.Topic), c)
		y++
	}

	y++
	if scores, ok := orch.Level3Scores(); ok {
		dst.DrawColored(x+3, y, "Your results in the dopamine lab:", core.ColorMagenta)
		y++
		line := fmt.Sprintf("final wellbeing %d%%   final dopamine %d%%", scores.Wellbeing, scores.Dopamine)
		if run, ok := sess.LastRun(); ok && run.Tier != "" {
			line += "   outcome " + run.Tier
		}
		dst.DrawColored(x+5, y, line, core.ColorPink)
		y++
	}

	y += dst.DrawWrapped(x+3, y+1, w-6, farewell, core.ColorWhite) + 1
	dst.DrawTextCentered(core.Min(y+1, dst.Height()-1), "[r] restart the adventure   [esc] welcome   [h] history", core.ColorYellow)
}

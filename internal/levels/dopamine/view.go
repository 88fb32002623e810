package dopamine

import (
	"fmt"

	"github.com/vovakirdan/phone-secrets/internal/core"
)

var sparks = []rune("▁▂▃▄▅▆▇█")

// Input maps platform actions: confirm starts the run and presses the
// highlighted activity, up/down move through the catalog.
func (l *Level) Input(a core.Action) {
	switch l.stage {
	case StageIntro:
		if a == core.ActionConfirm {
			_ = l.Start()
		}
	case StagePlaying:
		switch a {
		case core.ActionUp:
			l.cursor.Move(-1)
		case core.ActionDown:
			l.cursor.Move(1)
		case core.ActionLeft, core.ActionRight, core.ActionSwitch:
			l.jumpColumn()
		case core.ActionConfirm:
			_, _ = l.Activate(Activities()[l.cursor.Pos()].ID)
		}
	case StageResults:
		if a == core.ActionNext {
			l.Next()
		}
	}
}

// jumpColumn moves the cursor between the screen and real lists.
func (l *Level) jumpColumn() {
	n := len(ScreenActivities)
	if l.cursor.Pos() < n {
		l.cursor.Move(n)
	} else {
		l.cursor.Move(-n)
	}
}

// Mood describes the brain state for a dopamine level.
func Mood(d float64) string {
	switch {
	case d > 80:
		return "Overloaded, crash imminent!"
	case d > 60:
		return "Stimulated"
	case d > 40:
		return "Normal"
	case d > 20:
		return "Dropping..."
	default:
		return "Withdrawal, grey world"
	}
}

// Render draws the stage.
func (l *Level) Render(dst *core.Screen) {
	dst.DrawTextCentered(0, fmt.Sprintf("Level %d: %s", info.Number, info.Title), core.ColorCyan)
	dst.DrawTextCentered(1, info.Subtitle, core.ColorGray)

	switch l.stage {
	case StageIntro:
		l.renderIntro(dst)
	case StagePlaying:
		l.renderPlaying(dst)
	case StageResults:
		l.renderResults(dst)
	}
}

func (l *Level) renderIntro(dst *core.Screen) {
	x, w := 4, dst.Width()-8
	secs := l.env.Config.Dopamine.Duration
	y := 3
	y += dst.DrawWrapped(x, y, w, fmt.Sprintf("You have %d seconds to balance two gauges:", secs), core.ColorDefault) + 1
	dst.DrawColored(x, y, "Dopamine", core.ColorPink)
	dst.DrawText(x+12, y, "instant pleasure; rises fast with screens, then crashes")
	dst.DrawColored(x, y+1, "Wellbeing", core.ColorGreen)
	dst.DrawText(x+12, y+1, "long-term health; real activities build it up")
	y += 3
	y += dst.DrawWrapped(x, y, w, "Screen activities: 1 press, lots of dopamine, wellbeing drops.", core.ColorGray)
	y += dst.DrawWrapped(x, y, w, "Real activities: several presses, less dopamine, wellbeing rises.", core.ColorGray)
	y += dst.DrawWrapped(x, y, w, "Too little dopamine turns the screen grey. Too much and it crashes.", core.ColorGray)
	dst.DrawTextCentered(y+1, fmt.Sprintf("[enter] start (%ds)", secs), core.ColorGreen)
}

func (l *Level) renderPlaying(dst *core.Screen) {
	x := 2
	gray := l.Grayscale() > 0
	tint := func(c core.Color) core.Color {
		if gray {
			return core.ColorGray
		}
		return c
	}

	screenUses, realUses := l.Uses()
	dst.DrawColored(x, 2, fmt.Sprintf("Time %d:%02d   Crashes %d   Screen %d   Real %d",
		l.timeLeft/60, l.timeLeft%60, l.crashes, screenUses, realUses), core.ColorWhite)

	dst.DrawText(x, 3, "Dopamine ")
	dst.DrawBar(x+10, 3, 30, l.dopamine.Ratio(), tint(core.ColorPink))
	dst.DrawText(x+41, 3, fmt.Sprintf("%3d  %s", l.dopamine.Rounded(), Mood(l.Dopamine())))
	dst.DrawText(x, 4, "Wellbeing")
	dst.DrawBar(x+10, 4, 30, l.wellbeing.Ratio(), tint(core.ColorGreen))
	dst.DrawText(x+41, 4, fmt.Sprintf("%3d", l.wellbeing.Rounded()))

	dh, wh := l.History()
	dst.DrawColored(x, 5, "trend D "+sparkline(dh), tint(core.ColorPink))
	dst.DrawColored(x+24, 5, "W "+sparkline(wh), tint(core.ColorGreen))

	for i, a := range Activities() {
		y := 7 + i
		if a.Kind == KindReal {
			y++
		}
		c := core.ColorOrange
		if a.Kind == KindReal {
			c = core.ColorGreen
		}
		status := fmt.Sprintf("%+3.0f D %+3.0f W", a.Dopamine, a.Wellbeing)
		switch {
		case l.cooldowns[a.ID] > 0:
			c = core.ColorGray
			status = fmt.Sprintf("cooldown %ds", l.cooldowns[a.ID])
		case l.progress[a.ID] > 0:
			status = fmt.Sprintf("%d/%d presses", l.progress[a.ID], a.Clicks)
		case a.Clicks > 1:
			status += fmt.Sprintf("  (%d presses)", a.Clicks)
		}
		mark := "  "
		if i == l.cursor.Pos() {
			mark = "> "
		}
		dst.DrawColored(x, y, fmt.Sprintf("%s%-20s %s", mark, a.Name, status), tint(c))
	}

	y := 18
	if l.notice != "" {
		dst.DrawTextCentered(y, l.notice, core.ColorRed)
		y++
	}
	if l.Withdrawal() {
		dst.DrawTextCentered(y, "Withdrawal... everything feels dull", core.ColorGray)
		y++
	}
	if l.popup != "" {
		dst.DrawColored(dst.Width()-len([]rune(l.popup))-4, 2, "["+l.popup+"]", core.ColorYellow)
	}
	dst.DrawWrapped(x, core.Max(y+1, 20), dst.Width()-4, "Tip: "+l.Tip(), core.ColorBlue)
}

func (l *Level) renderResults(dst *core.Screen) {
	x, w := 4, dst.Width()-8
	r := l.results

	c := core.ColorGreen
	switch r.Tier {
	case TierCorrect:
		c = core.ColorYellow
	case TierImbalanced:
		c = core.ColorOrange
	case TierSevere:
		c = core.ColorRed
	}
	dst.DrawTextCentered(3, r.Tier.Label(), c)
	dst.DrawText(x, 5, fmt.Sprintf("Wellbeing %d   Dopamine %d   Crashes %d", r.Scores.Wellbeing, r.Scores.Dopamine, r.Crashes))
	dst.DrawText(x, 6, fmt.Sprintf("Screen activities %d   Real activities %d", r.ScreenUses, r.RealUses))
	dst.DrawText(x, 7, fmt.Sprintf("Peak dopamine %.0f   Lowest wellbeing %.0f", r.PeakDopamine, r.LowestWellbeing))
	dst.DrawColored(x, 8, fmt.Sprintf("Dopamine volatility: mean %.1f, std dev %.1f", r.Dopamine.Mean, r.Dopamine.StdDev), core.ColorGray)

	dst.DrawWrapped(x, 10, w, Lesson, core.ColorDefault)
	dst.DrawTextCentered(dst.Height()-2, "[n] next level", core.ColorGreen)
}

// sparkline renders samples in [0, 100] as block characters.
func sparkline(samples []float64) string {
	out := make([]rune, len(samples))
	for i, v := range samples {
		idx := int(core.ClampF(v, 0, 100) / 100 * float64(len(sparks)-1))
		out[i] = sparks[idx]
	}
	return string(out)
}

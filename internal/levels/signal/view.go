package signal

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/phone-secrets/internal/core"
)

const (
	fineStep   = 1
	coarseStep = 5
)

// Input: left/right nudge the slider, up/down move it faster, enter calls.
func (l *Level) Input(a core.Action) {
	switch a {
	case core.ActionLeft:
		_ = l.Move(-fineStep)
	case core.ActionRight:
		_ = l.Move(fineStep)
	case core.ActionDown:
		_ = l.Move(-coarseStep)
	case core.ActionUp:
		_ = l.Move(coarseStep)
	case core.ActionConfirm:
		_, _ = l.Confirm()
	case core.ActionNext:
		l.Next()
	}
}

// Render draws the two phones, the spectrum slider and the feedback.
func (l *Level) Render(dst *core.Screen) {
	dst.DrawTextCentered(0, fmt.Sprintf("Level %d: %s", info.Number, info.Title), core.ColorCyan)
	dst.DrawTextCentered(1, info.Subtitle, core.ColorGray)

	x := 4
	width := core.Min(dst.Width()-8, 101)
	l.renderLink(dst, x, 3, width)
	l.renderSlider(dst, x, 7, width)

	y := 12
	switch {
	case l.failure != FailureNone:
		dst.DrawWrapped(x, y, width, l.failure.Message(), core.ColorRed)
	case l.phase == PhaseConnecting:
		dst.DrawColored(x, y, "Connection established! Call in progress...", core.ColorGreen)
	case l.phase == PhaseConnected:
		for _, p := range Education {
			y += dst.DrawWrapped(x, y, width, p, core.ColorDefault) + 1
		}
		dst.DrawColored(x, y, "[n] finish the adventure", core.ColorGreen)
	default:
		dst.DrawColored(x, y, "[←/→] tune   [↑/↓] tune faster   [enter] test the connection", core.ColorGray)
	}
}

func (l *Level) renderLink(dst *core.Screen, x, y, width int) {
	phone := core.ColorGray
	if l.phase != PhaseTuning {
		phone = core.ColorGreen
	}
	dst.DrawColored(x, y, "[phone]", phone)
	dst.DrawColored(x+width-7, y, "[phone]", phone)

	wave := core.ColorCyan
	if l.Danger() && l.phase == PhaseTuning {
		wave = core.ColorRed
	}
	span := width - 16
	period := core.Max(2, (100-l.value)/10+2)
	var sb strings.Builder
	for i := 0; i < span; i++ {
		if i%period < period/2 {
			sb.WriteRune('~')
		} else {
			sb.WriteRune('-')
		}
	}
	dst.DrawColored(x+8, y, sb.String(), wave)

	bars := strings.Repeat("▮", l.Bars()) + strings.Repeat("▯", 5-l.Bars())
	dst.DrawColored(x+width-7, y+1, bars, phone)
	if l.phase != PhaseTuning {
		dst.DrawColored(x, y+1, l.CallClock(), core.ColorGreen)
	}
	if l.Danger() && l.phase == PhaseTuning {
		dst.DrawTextCentered(y+1, "! Dangerous radiation !", core.ColorRed)
	}
}

func (l *Level) renderSlider(dst *core.Screen, x, y, width int) {
	for i := 0; i < width; i++ {
		v := i * 100 / core.Max(1, width-1)
		dst.Set(x+i, y, '═', BandFor(v).Color)
	}
	knob := x + l.value*(width-1)/100
	dst.Set(knob, y, '█', core.ColorWhite)

	b := l.Band()
	dst.DrawTextCentered(y+1, fmt.Sprintf("%s (%d)", b.Name, l.value), b.Color)
	dst.DrawColored(x, y+2, "← long wavelength", core.ColorGray)
	right := "short wavelength →"
	dst.DrawColored(x+width-len([]rune(right)), y+2, right, core.ColorGray)
	if l.Completed() {
		dst.DrawColored(x+15*(width-1)/100, y+3, "mobile telephony: "+Telephony, core.ColorCyan)
	}
}

package signal

import "github.com/vovakirdan/phone-secrets/internal/core"

// Band is one region of the electromagnetic spectrum on the slider.
type Band struct {
	ID    string
	Name  string
	From  int // Inclusive
	To    int // Exclusive, except for the last band
	Color core.Color
}

// Bands covers the slider range 0..100, long wavelengths first.
var Bands = []Band{
	{ID: "radio", Name: "Radio waves", From: 0, To: 15, Color: core.ColorRed},
	{ID: "microwave", Name: "Microwaves", From: 15, To: 35, Color: core.ColorOrange},
	{ID: "infrared", Name: "Infrared", From: 35, To: 50, Color: core.ColorYellow},
	{ID: "visible", Name: "Visible light", From: 50, To: 65, Color: core.ColorGreen},
	{ID: "ultraviolet", Name: "Ultraviolet", From: 65, To: 78, Color: core.ColorBlue},
	{ID: "xray", Name: "X-rays", From: 78, To: 90, Color: core.ColorMagenta},
	{ID: "gamma", Name: "Gamma rays", From: 90, To: 100, Color: core.ColorPink},
}

// BandFor returns the band holding value. 100 belongs to the last band.
func BandFor(value int) Band {
	value = core.Clamp(value, 0, 100)
	for _, b := range Bands {
		if value >= b.From && value < b.To {
			return b
		}
	}
	return Bands[len(Bands)-1]
}

// Failure explains why a connection attempt did not work.
type Failure int

const (
	FailureNone Failure = iota
	FailureRadiation
	FailureLowBandwidth
	FailureInfrared
	FailureVisible
	FailureUltraviolet
	FailureGeneric
)

// Message returns the explanation shown to the player.
func (f Failure) Message() string {
	switch f {
	case FailureRadiation:
		return "These frequencies are radiation that is dangerous to health! Phones do not use this part of the spectrum. Try a lower frequency."
	case FailureLowBandwidth:
		return "Low-frequency radio waves do not have enough bandwidth to carry the data of a phone call. Try a slightly higher frequency."
	case FailureInfrared:
		return "Infrared is used by remote controls, not by cellular networks. The right frequency is in another part of the spectrum."
	case FailureVisible:
		return "Visible light does not go through walls! It cannot carry mobile calls. Look for a frequency that passes through obstacles."
	case FailureUltraviolet:
		return "Ultraviolet is absorbed by the atmosphere and harmful to the skin. It is not suited to telecommunications."
	case FailureGeneric:
		return "This frequency is not ideal for cellular communication. Watch the signal bars and look for the strongest signal!"
	default:
		return ""
	}
}

// Education is revealed once the call goes through.
var Education = []string{
	"Cell phones use microwaves between 700 MHz and 2.6 GHz. These frequencies carry a lot of data at high speed while passing through walls and the atmosphere. Wi-Fi uses similar frequencies (2.4 GHz and 5 GHz).",
	"The higher the frequency (5G goes up to 39 GHz), the faster the link but the shorter the range. That is why 5G needs more antennas placed closer together.",
}

// Telephony labels the band used by mobile networks, shown after success.
const Telephony = "700 MHz - 2.6 GHz"

package dopamine

// Kind separates screen activities from real-life ones.
type Kind int

const (
	KindScreen Kind = iota
	KindReal
)

// Activity is a catalogued player action. Effects apply once Clicks
// presses have accumulated, after which the activity cools down.
type Activity struct {
	ID        string
	Name      string
	Kind      Kind
	Dopamine  float64
	Wellbeing float64
	Cooldown  int // Ticks
	Clicks    int // Presses needed to activate, at least 1
	Desc      string
}

// ScreenActivities give a lot of dopamine for one click.
var ScreenActivities = []Activity{
	{ID: "social", Name: "Social media", Kind: KindScreen, Dopamine: 25, Wellbeing: -8, Cooldown: 3, Clicks: 1, Desc: "Infinite scroll, likes, instant dopamine"},
	{ID: "video", Name: "Short videos", Kind: KindScreen, Dopamine: 20, Wellbeing: -6, Cooldown: 4, Clicks: 1, Desc: "Fast, addictive content"},
	{ID: "gaming", Name: "Mobile game", Kind: KindScreen, Dopamine: 30, Wellbeing: -10, Cooldown: 5, Clicks: 1, Desc: "Instant rewards, loot boxes, streaks"},
	{ID: "notifs", Name: "Check notifications", Kind: KindScreen, Dopamine: 15, Wellbeing: -4, Cooldown: 2, Clicks: 1, Desc: "The compulsive loop: check, check again..."},
}

// RealActivities take effort but build lasting wellbeing.
var RealActivities = []Activity{
	{ID: "walk", Name: "Walk outside", Kind: KindReal, Dopamine: 5, Wellbeing: 15, Cooldown: 6, Clicks: 4, Desc: "Daylight, movement, fresh air"},
	{ID: "read", Name: "Read a book", Kind: KindReal, Dopamine: 3, Wellbeing: 12, Cooldown: 5, Clicks: 3, Desc: "Deep focus, active imagination"},
	{ID: "friends", Name: "See friends", Kind: KindReal, Dopamine: 8, Wellbeing: 18, Cooldown: 8, Clicks: 5, Desc: "Real human connection, oxytocin"},
	{ID: "sport", Name: "Play sports", Kind: KindReal, Dopamine: 6, Wellbeing: 20, Cooldown: 7, Clicks: 4, Desc: "Natural endorphins, self-confidence"},
	{ID: "create", Name: "Create / draw", Kind: KindReal, Dopamine: 4, Wellbeing: 14, Cooldown: 6, Clicks: 3, Desc: "Creative flow, lasting satisfaction"},
}

// Activities returns the whole catalog, screen activities first.
func Activities() []Activity {
	out := make([]Activity, 0, len(ScreenActivities)+len(RealActivities))
	out = append(out, ScreenActivities...)
	return append(out, RealActivities...)
}

func activityByID(id string) (Activity, bool) {
	for _, a := range Activities() {
		if a.ID == id {
			return a, true
		}
	}
	return Activity{}, false
}

// crashMessages escalate with the number of previous crashes; the last repeats.
var crashMessages = []string{
	"Dopamine crash! Your brain is getting used to it...",
	"Tolerance rising, you always need more...",
	"Pleasure fades, anxiety grows...",
	"Addiction loop engaged...",
}

const overheatMessage = "Dopamine crash! The peak was too high, brutal fall"

// Tips rotate during a run.
var Tips = []string{
	"Screen activities give a lot of dopamine but wellbeing drops!",
	"Real activities take more effort but steady your mind.",
	"Dopamine falls on its own: that is digital withdrawal.",
	"If dopamine gets too low the screen turns grey, like your motivation!",
	"Find the balance: not too much screen, not zero pleasure.",
}

// notifications are the fake temptations popping up during a run.
var notifications = []string{
	"New message from Marie!",
	"5 likes on your story",
	"Your energy is recharged!",
	"Someone mentioned you",
	"7-day streak, don't lose it!",
	"-70% on your wishlist!",
}

// Lesson is the educational text of the results screen.
const Lesson = "Apps are built to exploit dopamine: every like, notification and scroll triggers a small spike, like a slot machine. " +
	"The brain builds tolerance and needs more for the same effect; when stimulation stops, the crash follows. " +
	"Real activities take more effort but release endorphins, oxytocin and serotonin for lasting wellbeing. " +
	"The key is not to ban screens but to find a balance."

package timeline

// Stage is one step of the phone's history.
type Stage struct {
	Year string
	Name string
	Desc string
}

// Stages are the nine eras of the telephone, oldest first.
var Stages = []Stage{
	{
		Year: "1876", Name: "Bell's telephone",
		Desc: "Alexander Graham Bell's first device carries the voice as an electric signal over a copper wire. Built from wood and metal, it needs human operators to connect every call.",
	},
	{
		Year: "1920s", Name: "Rotary dial phone",
		Desc: "Wired networks spread through society. Automatic exchanges replace operators and the black bakelite rotary dial becomes a symbol of modern homes.",
	},
	{
		Year: "1960s", Name: "Touch-Tone phone",
		Desc: "Keys replace the dial and make dialing faster. Each key sends a unique pair of frequencies (DTMF) that the exchange decodes.",
	},
	{
		Year: "1983", Name: "Motorola DynaTAC 8000X",
		Desc: "The first analog mobile phone. About 800 g, 30 minutes of talk time, and a price near 10,000 of today's dollars. Mobile telephony begins with a business elite.",
	},
	{
		Year: "1992", Name: "Nokia 1011 (GSM 2G)",
		Desc: "Digital networks replace analog signals with data, improving quality and security. SMS appears and phones get smaller and lighter.",
	},
	{
		Year: "2000", Name: "Nokia 3310",
		Desc: "A cultural phenomenon famous for its toughness and for Snake. Text messages are everywhere and the phone becomes a personal object.",
	},
	{
		Year: "2007", Name: "iPhone (1st generation)",
		Desc: "A multitouch screen replaces the keypad. Apps turn the phone into a pocket computer running mobile internet, music and photos on a single device.",
	},
	{
		Year: "2012", Name: "4G smartphone",
		Desc: "Streaming, video calls and social networks explode on 4G. The phone replaces the camera, the GPS, the alarm clock, the music player and even the wallet.",
	},
	{
		Year: "2020+", Name: "5G smartphone",
		Desc: "Very high throughput and low latency open the door to augmented reality, connected objects and mobile payment. The phone becomes an extension of our digital identity.",
	},
}

// Conclusion is shown once the last stage is reached.
const Conclusion = "In 150 years the telephone went from an experimental invention to a pocket computer that concentrates dozens of functions."

package assembly

// Component is a phone part and, by the same ID, the slot it fits.
type Component struct {
	ID   string
	Name string
	Desc string
}

// Components lists the ten parts in slot order, top of the phone first.
var Components = []Component{
	{ID: "camera", Name: "Rear camera", Desc: "Captures light and turns it into a digital image."},
	{ID: "antenna", Name: "Antenna", Desc: "Sends and receives the radio waves used to communicate."},
	{ID: "cpu", Name: "Processor (SoC)", Desc: "Runs the computations. Holds the CPU, GPU and modem."},
	{ID: "ram", Name: "Memory (RAM)", Desc: "Stores temporary data (RAM) and permanent data (storage)."},
	{ID: "wifi", Name: "Wi-Fi / Bluetooth", Desc: "Short-range wireless communication."},
	{ID: "pcb", Name: "Motherboard (PCB)", Desc: "The phone's backbone. Connects every other component."},
	{ID: "screen", Name: "Display (OLED)", Desc: "Shows images with millions of pixels."},
	{ID: "battery", Name: "Battery (Li-ion)", Desc: "Stores electrical energy. Made with lithium."},
	{ID: "speaker", Name: "Speaker", Desc: "Turns electrical signals into sound waves."},
	{ID: "mic", Name: "Microphone", Desc: "Picks up sound waves and turns them into electrical signals."},
}

// Conclusion is shown once the phone powers on.
const Conclusion = "You built a working smartphone! Every component plays its part in a device with more computing power than the computers that sent people to the Moon."

func componentByID(id string) (Component, bool) {
	for _, c := range Components {
		if c.ID == id {
			return c, true
		}
	}
	return Component{}, false
}

package materials

// Mineral is one raw material of the phone and the part it ends up in.
type Mineral struct {
	ID   string
	Name string
	Part string // Slot ID of the part it is assembled into
	Use  string
}

// Part is an assembly slot.
type Part struct {
	ID   string
	Name string
}

// Minerals are the three extracted resources, in display order.
var Minerals = []Mineral{
	{ID: "lithium", Name: "Lithium", Part: "battery", Use: "Li-ion battery"},
	{ID: "neodyme", Name: "Neodymium", Part: "speaker", Use: "Speaker magnets"},
	{ID: "gold", Name: "Gold", Part: "circuit", Use: "Circuit board contacts"},
}

// Parts are the assembly slots, in display order.
var Parts = []Part{
	{ID: "battery", Name: "Battery"},
	{ID: "speaker", Name: "Speaker"},
	{ID: "circuit", Name: "Circuit board"},
}

// Facts shown when a phase is finished.
const (
	ExtractionFact = "Extracting one tonne of lithium takes about 2 million litres of water. Cobalt mines often employ children in dangerous conditions."
	AssemblyFact   = "Building one phone emits about 70 kg of CO2. 80% of a phone's carbon footprint comes from manufacturing, not use."
	DisposeFact    = "Heavy metals leach into soil and groundwater for hundreds of years. Lithium, mercury and lead spread through ecosystems."
	RecycleFact    = "Recycling recovers up to 80% of the precious metals. The phone is taken apart and its materials go back into production."
)

// DisposeSteps and RecycleSteps caption the three animation steps.
var (
	DisposeSteps = [3]string{
		"The phone lands on a landfill.",
		"Toxic fluids seep into the ground.",
		"Groundwater contamination.",
	}
	RecycleSteps = [3]string{
		"The phone arrives at the recycling plant.",
		"It is dismantled and materials are sorted.",
		"Metals recovered and ready to be reused!",
	}
)

func mineralByID(id string) (Mineral, bool) {
	for _, m := range Minerals {
		if m.ID == id {
			return m, true
		}
	}
	return Mineral{}, false
}

// Package model defines the 19-variable Alzheimer's disease progression ODE
// system: amyloid-beta aggregation, tau phosphorylation and tangle formation,
// neuronal loss, and the innate immune response (astrocytes, microglia,
// infiltrating macrophages, cytokines).
//
// Concentrations are in g/mL and time is in days (age of the subject), so a
// typical integration runs from day 365*30 to day 365*80.
package model

// State vector indices. The ordering is fixed; Derivatives, InitialState and
// the biomarker definitions all depend on it.
const (
	ABi       = iota // amyloid-beta monomer inside neurons
	ABmo             // amyloid-beta monomer outside neurons
	ABoo             // amyloid-beta oligomer outside neurons
	ABpo             // amyloid-beta plaque outside neurons
	GSK3             // glycogen synthase kinase-type 3
	Tau              // hyperphosphorylated tau protein
	NFTi             // neurofibrillary tangles inside neurons
	NFTo             // neurofibrillary tangles outside neurons
	Neurons          // living neurons
	Astrocytes       // activated astrocytes
	MicroRest        // resting microglia
	MicroPro         // proinflammatory microglia
	MicroAnti        // anti-inflammatory microglia
	MacroPro         // proinflammatory macrophages
	MacroAnti        // anti-inflammatory macrophages
	TGFBeta          // transforming growth factor beta
	IL10             // interleukin 10
	TNFAlpha         // tumor necrosis factor alpha
	MCP1             // monocyte chemoattractant protein 1

	NumStates // 19
)

// Biomarker identifies one of the tracked model outputs used for
// sensitivity analysis.
type Biomarker struct {
	// Name is the short label used in filenames and chart titles.
	Name string
	// Index is the state vector component the biomarker reads.
	Index int
	// Unit is the display unit for chart axes.
	Unit string
}

// Biomarkers are the outputs tracked by every analysis: extracellular
// amyloid-beta plaques, intraneuronal tangle burden, and neuron count.
var Biomarkers = []Biomarker{
	{Name: "AB", Index: ABpo, Unit: "g/mL"},
	{Name: "tau", Index: NFTi, Unit: "g/mL"},
	{Name: "N", Index: Neurons, Unit: "g/mL"},
}

// BiomarkerByName returns the tracked biomarker with the given name.
func BiomarkerByName(name string) (Biomarker, bool) {
	for _, b := range Biomarkers {
		if b.Name == name {
			return b, true
		}
	}
	return Biomarker{}, false
}

// DaysPerYear converts between subject age in years and model time in days.
// Initial conditions use the 365-day year of the source model; plots divide
// by 365.25 for display.
const DaysPerYear = 365.0

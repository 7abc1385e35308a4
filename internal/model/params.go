package model

import (
	"fmt"
	"math"
	"sort"
)

// Avogadro's number (1/mol), used to convert molecule counts to grams.
const avogadro = 6.02214076e23

// Sex selects the sex-dependent reference densities and insulin curve.
type Sex int

const (
	Woman Sex = 0
	Man   Sex = 1
)

func (s Sex) String() string {
	if s == Man {
		return "men"
	}
	return "women"
}

// Case is one demographic scenario: sex and APOE4 carrier status.
type Case struct {
	Sex   Sex
	APOE4 bool
}

// Label returns the human-readable case name used in chart titles and
// output filenames, e.g. "Women (APOE+)".
func (c Case) Label() string {
	sex := "Women"
	if c.Sex == Man {
		sex = "Men"
	}
	apoe := "APOE-"
	if c.APOE4 {
		apoe = "APOE+"
	}
	return fmt.Sprintf("%s (%s)", sex, apoe)
}

// Cases are the four demographic scenarios every analysis runs over.
var Cases = []Case{
	{Woman, false},
	{Woman, true},
	{Man, false},
	{Man, true},
}

// Params holds every rate constant of the model. Values are derived from the
// subject's sex and APOE4 status at construction time; after that each field
// is an independent scalar that the sensitivity drivers may perturb by name.
//
// Field comments give the unit; names follow the source literature
// (kappa_* conversion/activation rates, d_* degradation rates, lambda_*
// creation rates, K_* half-saturation constants).
type Params struct {
	Sex   Sex
	APOE4 bool

	// AP is 1 for APOE4 carriers and 0 otherwise. Kept as a float so the
	// rate laws read like the published equations.
	AP float64

	RhoBrain float64 // density of the brain (g/mL)
	N0       float64 // reference neuron density (g/mL), sex dependent
	A0       float64 // reference astrocyte density (g/mL), sex dependent

	// Intracellular amyloid-beta monomer.
	LambdaABi float64 // creation rate of AB42 inside neurons from APP (g/mL/day)
	DeltaAPi  float64 // APOE4 effect on intracellular AB creation (unitless)
	DABi      float64 // degradation rate of AB42 inside neurons (/day)

	// Extracellular amyloid-beta monomer.
	LambdaABmo    float64 // creation rate of extracellular AB monomer (g/mL/day)
	DeltaAPm      float64 // APOE4 effect on extracellular AB monomer creation (unitless)
	LambdaAABmo   float64 // creation rate of extracellular AB monomer by astrocytes (g/mL/day)
	KappaABmoABoo float64 // monomer -> oligomer conversion rate (mL/g/day)
	DeltaAPmo     float64 // APOE4 effect on monomer -> oligomer conversion (unitless)

	// Extracellular amyloid-beta oligomer.
	KappaABooABpo float64 // oligomer -> plaque conversion rate (mL/g/day)
	DABoo         float64 // degradation rate of extracellular AB oligomer (/day)

	// Extracellular amyloid-beta plaque.
	DMantiABpo    float64 // plaque clearance rate by anti-inflammatory microglia (/day)
	DHatMantiABpo float64 // plaque clearance rate by anti-inflammatory macrophages (/day)
	DeltaAPdp     float64 // APOE4 effect on plaque clearance (unitless)
	KABpo         float64 // plaque half-saturation for clearance (g/mL)

	// GSK-3.
	Ins0       float64 // reference brain insulin concentration at age 30 (g/mL)
	DG         float64 // degradation rate of GSK-3 (/day)
	G0         float64 // reference GSK-3 concentration (g/mL), sex dependent
	LambdaInsG float64 // insulin-driven creation rate of GSK-3 (g/mL/day)

	// Tau.
	LambdaTau  float64 // baseline tau phosphorylation rate (g/mL/day)
	LambdaGTau float64 // GSK-3 driven tau phosphorylation rate (g/mL/day)
	KappaTauFi float64 // tau -> NFT conversion rate (mL/g/day)
	DTau       float64 // tau degradation/dephosphorylation rate (/day)

	// Intracellular NFT.
	DFi float64 // degradation rate of intracellular NFT (/day)

	// Extracellular NFT.
	KappaMFo float64 // max clearance rate of extracellular NFT by microglia (/day)
	KManti   float64 // anti-inflammatory microglia half-saturation for NFT clearance (g/mL)
	DFo      float64 // degradation rate of extracellular NFT (/day)

	// Neurons.
	DFiN  float64 // max neuron death rate induced by intracellular NFT (/day)
	KFi   float64 // intracellular NFT half-saturation for neuron death (g/mL)
	Gamma float64 // sigmoid sharpness of NFT-induced neuron death (unitless)
	DTaN  float64 // max neuron death rate induced by TNF-alpha (/day)
	KTa   float64 // TNF-alpha half-saturation for neuron death (g/mL)
	KI10  float64 // IL-10 concentration halving TNF-alpha-induced death (g/mL)

	// Astrocytes.
	AMax       float64 // max astrocyte density (g/mL)
	KappaTaA   float64 // astrocyte activation rate by TNF-alpha (mL/g/day)
	KappaABpoA float64 // astrocyte activation rate by AB plaque (mL/g/day)
	DA         float64 // astrocyte death rate (/day)

	// Resting microglia.
	KappaFoM   float64 // microglia activation rate by extracellular NFT (/day)
	KFo        float64 // extracellular NFT half-saturation for activation (g/mL)
	KappaABooM float64 // microglia activation rate by AB oligomer (/day)
	KABooM     float64 // AB oligomer half-saturation for activation (g/mL)
	DMpro      float64 // degradation rate of proinflammatory microglia (/day)
	DManti     float64 // degradation rate of anti-inflammatory microglia (/day)

	// Microglia polarization.
	Beta         float64 // pro/anti-inflammatory environmental ratio (unitless)
	KTaAct       float64 // TNF-alpha half-saturation for proinflammatory polarization (g/mL)
	KI10Act      float64 // IL-10 half-saturation for anti-inflammatory polarization (g/mL)
	KappaTbMpro  float64 // max Mpro -> Manti conversion under TGF-beta (/day)
	KTbM         float64 // TGF-beta half-saturation for Mpro conversion (g/mL)
	KappaTaManti float64 // max Manti -> Mpro conversion under TNF-alpha (/day)
	KTaM         float64 // TNF-alpha half-saturation for Manti conversion (g/mL)

	// Macrophages.
	KappaPMhat      float64 // max macrophage import rate under MCP-1 (/day)
	KP              float64 // MCP-1 half-saturation for import (g/mL)
	MhatMax         float64 // max macrophage concentration in the brain (g/mL)
	KappaTbMhatpro  float64 // max Mhatpro -> Mhatanti conversion under TGF-beta (/day)
	KTbMhat         float64 // TGF-beta half-saturation for Mhatpro conversion (g/mL)
	KappaTaMhatanti float64 // max Mhatanti -> Mhatpro conversion under TNF-alpha (/day)
	KTaMhat         float64 // TNF-alpha half-saturation for Mhatanti conversion (g/mL)
	DMhatpro        float64 // death rate of proinflammatory macrophages (/day)
	DMhatanti       float64 // death rate of anti-inflammatory macrophages (/day)

	// Cytokines.
	KappaMantiTb     float64 // TGF-beta production rate by Manti (/day)
	KappaMhatantiTb  float64 // TGF-beta production rate by Mhatanti (/day)
	DTb              float64 // degradation rate of TGF-beta (/day)
	KappaMantiI10    float64 // IL-10 production rate by Manti (/day)
	KappaMhatantiI10 float64 // IL-10 production rate by Mhatanti (/day)
	DI10             float64 // degradation rate of IL-10 (/day)
	KappaMproTa      float64 // TNF-alpha production rate by Mpro (/day)
	KappaMhatproTa   float64 // TNF-alpha production rate by Mhatpro (/day)
	DTa              float64 // degradation rate of TNF-alpha (/day)
	KappaMproP       float64 // MCP-1 production rate by Mpro (/day)
	KappaMhatproP    float64 // MCP-1 production rate by Mhatpro (/day)
	KappaAP          float64 // MCP-1 production rate by astrocytes (/day)
	DP               float64 // degradation rate of MCP-1 (/day)
}

// NewParams derives the full parameter set for one demographic case.
// The derivations reproduce the published constants: molar masses, half-lives
// and literature rates combined into per-day mass-concentration units.
func NewParams(c Case) *Params {
	p := &Params{Sex: c.Sex, APOE4: c.APOE4}
	if c.APOE4 {
		p.AP = 1
	}

	p.RhoBrain = 1.03

	if c.Sex == Woman {
		p.N0 = 0.45
		p.A0 = 0.10
	} else {
		p.N0 = 0.42
		p.A0 = 0.12
	}

	const mABm = 4514.0   // molar mass of an AB42 monomer (g/mol)
	const mMhat = 4.990e-9 // mass of a macrophage or microglia (g)

	// Intracellular amyloid-beta monomer.
	p.LambdaABi = (3.63e-12 * 1e-3 * mABm * 86400) / 2
	p.DeltaAPi = (8373.0-2178)/(5631-783) - 1
	p.DABi = math.Ln2 / (1.75 / 24)

	// Extracellular amyloid-beta monomer.
	p.LambdaABmo = p.LambdaABi
	p.DeltaAPm = p.DeltaAPi
	p.LambdaAABmo = (1.0 / 13.0) * p.LambdaABmo
	p.KappaABmoABoo = 38 * 1000 * (1 / (2 * mABm)) * 86400 // lower bound of the published range
	p.DeltaAPmo = 2.7 - 1

	// Extracellular amyloid-beta oligomer.
	p.KappaABooABpo = (3.0 / 7.0) * 1e6 * 1000 / (2 * mABm)
	p.DABoo = 0.3e-3 * 86400

	// Extracellular amyloid-beta plaque.
	p.DHatMantiABpo = math.Ln2 / 3
	p.DMantiABpo = math.Ln2 / 0.85
	p.DeltaAPdp = (5.0 / 20.0) - 1
	p.KABpo = (1.11 + 0.53) / 527.4 / 1000

	// GSK-3.
	p.Ins0 = insulin(30*DaysPerYear, c.Sex)
	p.DG = math.Ln2 / (41.0 / 24.0)
	if c.Sex == Woman {
		p.G0 = 1104e-12 * 47000 * p.RhoBrain
	} else {
		p.G0 = 310e-12 * 47000 * p.RhoBrain
	}
	p.LambdaInsG = p.DG * p.G0

	// Tau.
	p.LambdaTau = 26.3e-12
	p.LambdaGTau = ((20.0 / 21.0) - (20.0 / 57.0)) * 1e-6 / 0.5 / 1000 / 1000 * 72500
	p.KappaTauFi = (100.0 / 3.0) * 1e-6 / 19344 * 86400 * 1000
	p.DTau = math.Ln2 / 5.16

	// Intracellular NFT.
	p.DFi = 1e-2 * p.DTau

	// Extracellular NFT.
	p.KappaMFo = 0.4
	if c.Sex == Woman {
		p.KManti = (1.0 / 4.0) * 3.811e-2
	} else {
		p.KManti = (1.0 / 4.0) * 3.193e-2
	}
	p.DFo = 1.0 / 10.0 * p.DTau

	// Neurons.
	p.DFiN = 1 / (2.51 * 365)
	p.KFi = 1.25e-10
	p.Gamma = 15
	p.DTaN = 7.26e-3 / 365 * 10
	p.KTa = 4.48e-12
	p.KI10 = 2.12e-12

	// Astrocytes.
	p.AMax = p.A0
	p.KappaTaA = 0.92 / 100e-9
	p.KappaABpoA = (p.KappaTaA * 2.24e-12) / (2 * p.KABpo)
	p.DA = 0.4

	// Resting microglia.
	const totalMaxActivRateM = 0.20
	p.KappaFoM = totalMaxActivRateM * 2 / 3
	p.KFo = 11 * ((1000 * 72500) / avogadro) * 1000
	p.KappaABooM = totalMaxActivRateM * 1 / 3
	p.KABooM = 0.060 / 527.4 / 1000 * 1.5e2
	p.DMpro = 7.67e-4
	p.DManti = 7.67e-4

	// Microglia polarization.
	p.Beta = 1
	p.KTaAct = 2.24e-12
	p.KI10Act = 2.12e-12
	p.KappaTbMpro = 4.8
	p.KTbM = 5.9e-11
	p.KappaTaManti = 4.8
	p.KTaM = 2.24e-12 * 2e2

	// Macrophages.
	p.KappaPMhat = 1.0 / 3.0 * 1e-2
	p.KP = 6.23e-10 * 1e2
	p.MhatMax = (830 * mMhat) / 2e-4
	p.KappaTbMhatpro = 1 / (10.0 / 24.0)
	p.KTbMhat = p.KTbM
	p.KappaTaMhatanti = 1 / (10.0 / 24.0)
	p.KTaMhat = p.KTaM
	p.DMhatpro = 7.67e-4
	p.DMhatanti = 7.67e-4

	// Cytokines.
	p.KappaMhatantiTb = 10 * (47e-12 / 18 * 24) / (2e6 * mMhat) // upper bound of the published range
	p.KappaMantiTb = p.KappaMhatantiTb
	p.DTb = math.Ln2 / (3.0 / 1440.0)
	p.KappaMhatantiI10 = 660e-12 / (2e5 * mMhat)
	p.KappaMantiI10 = p.KappaMhatantiI10
	p.DI10 = math.Ln2 / (3.556 / 24)
	p.KappaMhatproTa = (1.5e-9 / 18 * 24) / (4e6 * mMhat)
	p.KappaMproTa = p.KappaMhatproTa
	p.DTa = math.Ln2 / (18.2 / 1440.0)
	p.KappaMhatproP = 11e-9 / (2e6 * mMhat)
	p.KappaMproP = p.KappaMhatproP
	p.KappaAP = (1.0 / 10.0) * p.KappaMhatproP // lower bound of the published range
	p.DP = math.Ln2 / (3.0 / 24.0)

	return p
}

// insulin returns the brain insulin concentration (g/mL) at age t days.
// Linear fits to peripheral insulin data, scaled by the 10:1
// peripheral-to-brain ratio.
func insulin(t float64, s Sex) float64 {
	if s == Man {
		return 0.1 * (-4.257e-15*t + 3.763e-10)
	}
	return 0.1 * (-4.151e-15*t + 3.460e-10)
}

// Ins returns the brain insulin concentration (g/mL) at age t days for this
// parameter set's sex.
func (p *Params) Ins(t float64) float64 {
	return insulin(t, p.Sex)
}

// DABmo returns the age-dependent degradation rate (/day) of extracellular
// amyloid-beta monomer. The half-life grows linearly with age, from 3.8 h at
// 30 years to 9.4 h at 80 years.
func (p *Params) DABmo(t float64) float64 {
	halflife := (7.0/547500.0)*t + (11.0 / 600.0)
	return math.Ln2 / halflife
}

// Clone returns an independent copy of p. Perturbing the copy leaves the
// original untouched.
func (p *Params) Clone() *Params {
	q := *p
	return &q
}

// fields maps the literature parameter names to the struct fields holding
// them. Sex and APOE4 status are demographic inputs, not rate constants, so
// they are not listed and cannot be perturbed.
func (p *Params) fields() map[string]*float64 {
	return map[string]*float64{
		"rho_cerveau": &p.RhoBrain,
		"N_0":         &p.N0,
		"A_0":         &p.A0,

		"lambda_ABi":     &p.LambdaABi,
		"delta_APi":      &p.DeltaAPi,
		"d_ABi":          &p.DABi,
		"lambda_ABmo":    &p.LambdaABmo,
		"delta_APm":      &p.DeltaAPm,
		"lambda_AABmo":   &p.LambdaAABmo,
		"kappa_ABmoABoo": &p.KappaABmoABoo,
		"delta_APmo":     &p.DeltaAPmo,
		"kappa_ABooABpo": &p.KappaABooABpo,
		"d_ABoo":         &p.DABoo,
		"d_MantiABpo":    &p.DMantiABpo,
		"d_hatMantiABpo": &p.DHatMantiABpo,
		"delta_APdp":     &p.DeltaAPdp,
		"K_ABpo":         &p.KABpo,

		"Ins_0":       &p.Ins0,
		"d_G":         &p.DG,
		"G_0":         &p.G0,
		"lambda_InsG": &p.LambdaInsG,

		"lambda_tau":  &p.LambdaTau,
		"lambda_Gtau": &p.LambdaGTau,
		"kappa_tauFi": &p.KappaTauFi,
		"d_tau":       &p.DTau,
		"d_Fi":        &p.DFi,

		"kappa_MFo": &p.KappaMFo,
		"K_Manti":   &p.KManti,
		"d_Fo":      &p.DFo,

		"d_FiN": &p.DFiN,
		"K_Fi":  &p.KFi,
		"n":     &p.Gamma,
		"d_TaN": &p.DTaN,
		"K_Ta":  &p.KTa,
		"K_I10": &p.KI10,

		"A_max":       &p.AMax,
		"kappa_TaA":   &p.KappaTaA,
		"kappa_ABpoA": &p.KappaABpoA,
		"d_A":         &p.DA,

		"kappa_FoM":   &p.KappaFoM,
		"K_Fo":        &p.KFo,
		"kappa_ABooM": &p.KappaABooM,
		"K_ABooM":     &p.KABooM,
		"d_Mpro":      &p.DMpro,
		"d_Manti":     &p.DManti,

		"beta":          &p.Beta,
		"K_TaAct":       &p.KTaAct,
		"K_I10Act":      &p.KI10Act,
		"kappa_TbMpro":  &p.KappaTbMpro,
		"K_TbM":         &p.KTbM,
		"kappa_TaManti": &p.KappaTaManti,
		"K_TaM":         &p.KTaM,

		"kappa_PMhat":      &p.KappaPMhat,
		"K_P":              &p.KP,
		"Mhatmax":          &p.MhatMax,
		"kappa_TbMhatpro":  &p.KappaTbMhatpro,
		"K_TbMhat":         &p.KTbMhat,
		"kappa_TaMhatanti": &p.KappaTaMhatanti,
		"K_TaMhat":         &p.KTaMhat,
		"d_Mhatpro":        &p.DMhatpro,
		"d_Mhatanti":       &p.DMhatanti,

		"kappa_MantiTb":     &p.KappaMantiTb,
		"kappa_MhatantiTb":  &p.KappaMhatantiTb,
		"d_Tb":              &p.DTb,
		"kappa_MantiI10":    &p.KappaMantiI10,
		"kappa_MhatantiI10": &p.KappaMhatantiI10,
		"d_I10":             &p.DI10,
		"kappa_MproTa":      &p.KappaMproTa,
		"kappa_MhatproTa":   &p.KappaMhatproTa,
		"d_Ta":              &p.DTa,
		"kappa_MproP":       &p.KappaMproP,
		"kappa_MhatproP":    &p.KappaMhatproP,
		"kappa_AP":          &p.KappaAP,
		"d_P":               &p.DP,
	}
}

// Names returns every perturbable parameter name in ascending order.
func (p *Params) Names() []string {
	f := p.fields()
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the value of the named parameter.
func (p *Params) Get(name string) (float64, error) {
	ptr, ok := p.fields()[name]
	if !ok {
		return 0, fmt.Errorf("unknown parameter %q", name)
	}
	return *ptr, nil
}

// Set assigns the named parameter. No range validation is performed; a
// nonsensical value surfaces as a solver failure, not an error here.
func (p *Params) Set(name string, v float64) error {
	ptr, ok := p.fields()[name]
	if !ok {
		return fmt.Errorf("unknown parameter %q", name)
	}
	*ptr = v
	return nil
}

// Scale multiplies the named parameter by factor.
func (p *Params) Scale(name string, factor float64) error {
	ptr, ok := p.fields()[name]
	if !ok {
		return fmt.Errorf("unknown parameter %q", name)
	}
	*ptr *= factor
	return nil
}

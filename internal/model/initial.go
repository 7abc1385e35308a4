package model

import "math"

// InitialState returns the state vector at the start of the integration
// (startAge in years, typically 30). Fast species are placed at their
// quasi-steady state given the reference slow pools; the remaining pools use
// literature seed values.
func InitialState(p *Params, startAge float64) []float64 {
	y0 := make([]float64, NumStates)
	t0 := startAge * DaysPerYear

	// Intracellular AB monomer: production/degradation balance.
	y0[ABi] = p.LambdaABi * (1 + p.AP*p.DeltaAPi) / p.DABi

	// Extracellular AB monomer: positive root of the steady-state quadratic
	// (dimerization + clearance vs production).
	y0[ABmo] = positiveRoot(
		p.KappaABmoABoo*(1+p.AP*p.DeltaAPmo),
		p.DABmo(t0),
		-p.LambdaABmo*(1+p.AP*p.DeltaAPm),
	)

	// Extracellular AB oligomer: same construction, fed by the monomer pool.
	y0[ABoo] = positiveRoot(
		p.KappaABooABpo,
		p.DABoo,
		-p.KappaABmoABoo*(1+p.AP*p.DeltaAPmo)*y0[ABmo]*y0[ABmo],
	)

	y0[GSK3] = p.G0

	// Tau: steady-state quadratic of phosphorylation vs aggregation+decay.
	y0[Tau] = positiveRoot(
		p.KappaTauFi,
		p.DTau,
		-(p.LambdaTau + p.LambdaGTau),
	)

	y0[NFTi] = p.KappaTauFi * y0[Tau] * y0[Tau] / p.DFi
	y0[NFTo] = 5e-17

	y0[Neurons] = p.N0
	y0[Astrocytes] = 0

	// Microglia: literature seeds for the polarized pools, with the resting
	// pool making up the sex-dependent total density.
	y0[MicroPro] = 1e-12
	y0[MicroAnti] = 1e-4
	m0 := 3.811e-2
	if p.Sex == Man {
		m0 = 3.193e-2
	}
	y0[MicroRest] = m0 - (y0[MicroPro] + y0[MicroAnti])

	y0[MacroPro] = 0
	y0[MacroAnti] = 0

	// Plaques: equilibrium between oligomer influx and immune clearance,
	// which depends on the microglia/macrophage pools set above.
	psi := p.KappaABooABpo * y0[ABoo] * y0[ABoo]
	clear := (p.DMantiABpo*y0[MicroAnti] + p.DHatMantiABpo*y0[MacroAnti]) *
		(1 + p.AP*p.DeltaAPdp)
	y0[ABpo] = (psi * p.KABpo) / (clear - psi)

	// Cytokines: production/decay balance of the seeded immune pools.
	y0[TGFBeta] = (p.KappaMantiTb*y0[MicroAnti] + p.KappaMhatantiTb*y0[MacroAnti]) / p.DTb
	y0[IL10] = (p.KappaMantiI10*y0[MicroAnti] + p.KappaMhatantiI10*y0[MacroAnti]) / p.DI10
	y0[TNFAlpha] = (p.KappaMproTa*y0[MicroPro] + p.KappaMhatproTa*y0[MacroPro]) / p.DTa
	y0[MCP1] = (p.KappaMproP*y0[MicroPro] + p.KappaMhatproP*y0[MacroPro] +
		p.KappaAP*y0[Astrocytes]) / p.DP

	return y0
}

// positiveRoot returns the positive root of a*x^2 + b*x + c = 0, assuming
// a > 0 and c <= 0 so exactly one non-negative root exists.
func positiveRoot(a, b, c float64) float64 {
	return (-b + math.Sqrt(b*b-4*a*c)) / (2 * a)
}

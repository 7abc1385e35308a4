package model

import "math"

// Derivatives evaluates the right-hand side of the ODE system at time t
// (subject age in days), writing the rate of change of each state variable
// into dydt. Pure function of (t, y, p): no validation, no side effects.
//
// The neuron equation is evaluated first because the intracellular species
// (AB monomer, GSK-3, tau, NFT) leak out of dying neurons at a rate
// proportional to |dN/dt|.
func Derivatives(t float64, y []float64, p *Params, dydt []float64) {
	// Living neurons: death driven by intracellular NFTs (sigmoid) and by
	// TNF-alpha, the latter attenuated by IL-10.
	dydt[Neurons] = -p.DFiN*sigmoid(y[NFTi], p.KFi, p.Gamma)*y[Neurons] -
		p.DTaN*(y[TNFAlpha]/(y[TNFAlpha]+p.KTa))*(1/(1+y[IL10]/p.KI10))*y[Neurons]

	// Mass of intracellular species released per dying neuron.
	spill := math.Abs(dydt[Neurons]) / y[Neurons]

	// Amyloid-beta monomer inside neurons.
	dydt[ABi] = p.LambdaABi*(1+p.AP*p.DeltaAPi)*(y[Neurons]/p.N0) -
		p.DABi*y[ABi] - y[ABi]*spill

	// Amyloid-beta monomer outside neurons: spilled intracellular monomer,
	// neuronal and astrocytic production, dimerization loss, age-dependent
	// clearance.
	dydt[ABmo] = y[ABi]*spill +
		p.LambdaABmo*(1+p.AP*p.DeltaAPm)*(y[Neurons]/p.N0) +
		p.LambdaAABmo*(y[Astrocytes]/p.A0) -
		p.KappaABmoABoo*(1+p.AP*p.DeltaAPmo)*y[ABmo]*y[ABmo] -
		p.DABmo(t)*y[ABmo]

	// Amyloid-beta oligomers outside neurons.
	dydt[ABoo] = p.KappaABmoABoo*(1+p.AP*p.DeltaAPmo)*y[ABmo]*y[ABmo] -
		p.KappaABooABpo*y[ABoo]*y[ABoo] - p.DABoo*y[ABoo]

	// Amyloid-beta plaques: formed from oligomers, cleared by
	// anti-inflammatory microglia and macrophages (Michaelis-Menten).
	dydt[ABpo] = p.KappaABooABpo*y[ABoo]*y[ABoo] -
		(p.DMantiABpo*y[MicroAnti]+p.DHatMantiABpo*y[MacroAnti])*
			(1+p.AP*p.DeltaAPdp)*(y[ABpo]/(y[ABpo]+p.KABpo))

	// GSK-3: production inversely proportional to the age-declining insulin
	// concentration.
	dydt[GSK3] = p.LambdaInsG*(p.Ins0/p.Ins(t))*(y[Neurons]/p.N0) -
		p.DG*y[GSK3] - y[GSK3]*spill

	// Hyperphosphorylated tau.
	dydt[Tau] = p.LambdaTau*(y[Neurons]/p.N0) + p.LambdaGTau*(y[GSK3]/p.G0) -
		p.KappaTauFi*y[Tau]*y[Tau]*(y[Neurons]/p.N0) -
		y[Tau]*spill - p.DTau*y[Tau]

	// NFTs inside neurons.
	dydt[NFTi] = p.KappaTauFi*y[Tau]*y[Tau]*(y[Neurons]/p.N0) -
		y[NFTi]*spill - p.DFi*y[NFTi]

	// NFTs outside neurons: released by dying neurons, cleared by
	// anti-inflammatory microglia.
	dydt[NFTo] = y[NFTi]*spill -
		p.KappaMFo*(y[MicroAnti]/(y[MicroAnti]+p.KManti))*y[NFTo] -
		p.DFo*y[NFTo]

	// Astrocytes: activated by plaques and TNF-alpha, capped at AMax.
	dydt[Astrocytes] = (p.KappaABpoA*y[ABpo]+p.KappaTaA*y[TNFAlpha])*
		(p.AMax-y[Astrocytes]) - p.DA*y[Astrocytes]

	// Total microglia activation flux out of the resting pool, driven by
	// extracellular NFTs and AB oligomers.
	mActiv := p.KappaFoM*(y[NFTo]/(y[NFTo]+p.KFo))*y[MicroRest] +
		p.KappaABooM*(y[ABoo]/(y[ABoo]+p.KABooM))*y[MicroRest]

	dydt[MicroRest] = p.DMpro*y[MicroPro] + p.DManti*y[MicroAnti] - mActiv

	// Polarization fractions of newly activated cells.
	epsTa := y[TNFAlpha] / (y[TNFAlpha] + p.KTaAct)
	epsI10 := y[IL10] / (y[IL10] + p.KI10Act)
	proFrac := (p.Beta * epsTa) / (p.Beta*epsTa + epsI10)
	antiFrac := epsI10 / (p.Beta*epsTa + epsI10)

	// Proinflammatory microglia.
	dydt[MicroPro] = proFrac*mActiv -
		p.KappaTbMpro*(y[TGFBeta]/(y[TGFBeta]+p.KTbM))*y[MicroPro] +
		p.KappaTaManti*(y[TNFAlpha]/(y[TNFAlpha]+p.KTaM))*y[MicroAnti] -
		p.DMpro*y[MicroPro]

	// Anti-inflammatory microglia.
	dydt[MicroAnti] = antiFrac*mActiv +
		p.KappaTbMpro*(y[TGFBeta]/(y[TGFBeta]+p.KTbM))*y[MicroPro] -
		p.KappaTaManti*(y[TNFAlpha]/(y[TNFAlpha]+p.KTaM))*y[MicroAnti] -
		p.DManti*y[MicroAnti]

	// Macrophage import under MCP-1 signaling, bounded by MhatMax.
	mhatImport := p.KappaPMhat * (y[MCP1] / (y[MCP1] + p.KP)) *
		(p.MhatMax - (y[MacroPro] + y[MacroAnti]))

	// Proinflammatory macrophages.
	dydt[MacroPro] = mhatImport*proFrac -
		p.KappaTbMhatpro*(y[TGFBeta]/(y[TGFBeta]+p.KTbMhat))*y[MacroPro] +
		p.KappaTaMhatanti*(y[TNFAlpha]/(y[TNFAlpha]+p.KTaMhat))*y[MacroAnti] -
		p.DMhatpro*y[MacroPro]

	// Anti-inflammatory macrophages.
	dydt[MacroAnti] = mhatImport*antiFrac +
		p.KappaTbMhatpro*(y[TGFBeta]/(y[TGFBeta]+p.KTbMhat))*y[MacroPro] -
		p.KappaTaMhatanti*(y[TNFAlpha]/(y[TNFAlpha]+p.KTaMhat))*y[MacroAnti] -
		p.DMhatanti*y[MacroAnti]

	// Cytokines: produced by the polarized immune pools, first-order decay.
	dydt[TGFBeta] = p.KappaMantiTb*y[MicroAnti] + p.KappaMhatantiTb*y[MacroAnti] -
		p.DTb*y[TGFBeta]

	dydt[IL10] = p.KappaMantiI10*y[MicroAnti] + p.KappaMhatantiI10*y[MacroAnti] -
		p.DI10*y[IL10]

	dydt[TNFAlpha] = p.KappaMproTa*y[MicroPro] + p.KappaMhatproTa*y[MacroPro] -
		p.DTa*y[TNFAlpha]

	dydt[MCP1] = p.KappaMproP*y[MicroPro] + p.KappaMhatproP*y[MacroPro] +
		p.KappaAP*y[Astrocytes] - p.DP*y[MCP1]
}

// sigmoid is the Hill-type switch used for NFT-induced neuron death:
// 1 / (1 + exp(-gamma*(x-k)/k)).
func sigmoid(x, k, gamma float64) float64 {
	return 1 / (1 + math.Exp(-gamma*(x-k)/k))
}

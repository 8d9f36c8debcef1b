package resistance

import (
	"math"

	"github.com/LexxSaa28/wavecore/errs"
)

// Config tunes the Holtrop-Mennen calculation (holtrop_mennen.rs
// HoltropMennenConfig).
type Config struct {
	// EnforceValidityRange rejects a calculation whose applicability score
	// (AssessApplicability's average over the six range checks) falls below
	// MinimumConfidence instead of silently extrapolating; a parameter
	// outside its range lowers the score but does not by itself reject.
	EnforceValidityRange bool
	// MinimumConfidence is the applicability score below which
	// EnforceValidityRange rejects the input.
	MinimumConfidence float64
	// EnableFormFactorCorrection applies the (1+k) viscous form factor to
	// the frictional resistance; disabling it leaves CF unscaled.
	EnableFormFactorCorrection bool
}

// DefaultConfig mirrors holtrop_mennen.rs's HoltropMennenConfig::default.
func DefaultConfig() Config {
	return Config{
		EnforceValidityRange:       true,
		MinimumConfidence:          0.6,
		EnableFormFactorCorrection: true,
	}
}

// CalmWaterResult is the resistance breakdown for one hull/speed point
// (holtrop_mennen.rs HoltropMennenResult).
type CalmWaterResult struct {
	TotalResistance       float64 // RT, N
	FrictionalResistance  float64 // RF, N
	AppendageResistance   float64 // RAPP, N
	WaveResistance        float64 // RW, N
	BulbousBowResistance  float64 // RB, N
	TransomResistance     float64 // RTR, N
	ModelShipCorrelation  float64 // RA, N
	ResistanceCoefficient float64 // CT
	EffectivePower        float64 // PE, kW
	Applicability         float64 // 0-1 score from AssessApplicability
}

type dimensionalParameters struct {
	speedMS                          float64
	froudeNumber                     float64
	reynoldsNumber                   float64
	wettedSurfaceArea                float64
	beamDraftRatio                   float64
	longitudinalPrismaticCoefficient float64
	displacementVolume               float64
	waterDensity                     float64
}

// Calculate runs the full Holtrop-Mennen method for hull under conditions,
// following holtrop_mennen.rs's calculate_resistance pipeline: validate,
// score applicability, derive dimensional parameters, sum the six
// components (holtrop_mennen.rs calculate_resistance).
func Calculate(hull Hull, conditions OperatingConditions, cfg Config) (*CalmWaterResult, error) {
	if err := validateInputs(hull, conditions); err != nil {
		return nil, err
	}

	applicability := AssessApplicability(hull, conditions)
	if cfg.EnforceValidityRange && applicability < cfg.MinimumConfidence {
		return nil, errs.New(errs.InvalidInput, "resistance.Calculate",
			"applicability score below minimum confidence threshold for Holtrop-Mennen")
	}

	params := dimensionalParams(hull, conditions)

	frictional := frictionalResistance(hull, params, cfg)
	appendage := appendageResistance(hull, params)
	wave := waveResistance(hull, params)
	bulb := bulbousBowResistance(hull, params)
	transom := transomResistance(hull, params)
	correlation := modelShipCorrelation(hull, params)

	total := frictional + appendage + wave + bulb + transom + correlation

	return &CalmWaterResult{
		TotalResistance:       total,
		FrictionalResistance:  frictional,
		AppendageResistance:   appendage,
		WaveResistance:        wave,
		BulbousBowResistance:  bulb,
		TransomResistance:     transom,
		ModelShipCorrelation:  correlation,
		ResistanceCoefficient: total / (0.5 * params.waterDensity * params.speedMS * params.speedMS * params.wettedSurfaceArea),
		EffectivePower:        total * params.speedMS / 1000.0,
		Applicability:         applicability,
	}, nil
}

func validateInputs(hull Hull, conditions OperatingConditions) error {
	switch {
	case hull.LengthBetweenPerpendiculars <= 0:
		return errs.New(errs.InvalidInput, "resistance.Calculate", "length between perpendiculars must be positive")
	case hull.Beam <= 0:
		return errs.New(errs.InvalidInput, "resistance.Calculate", "beam must be positive")
	case hull.Draft <= 0:
		return errs.New(errs.InvalidInput, "resistance.Calculate", "hull draft must be positive")
	case hull.BlockCoefficient <= 0 || hull.BlockCoefficient > 1:
		return errs.New(errs.InvalidInput, "resistance.Calculate", "block coefficient must be in (0,1]")
	case hull.PrismaticCoefficient <= 0 || hull.PrismaticCoefficient > 1:
		return errs.New(errs.InvalidInput, "resistance.Calculate", "prismatic coefficient must be in (0,1]")
	case conditions.SpeedKnots < 0:
		return errs.New(errs.InvalidInput, "resistance.Calculate", "speed cannot be negative")
	case conditions.Draft <= 0:
		return errs.New(errs.InvalidInput, "resistance.Calculate", "operating draft must be positive")
	case conditions.Displacement <= 0:
		return errs.New(errs.InvalidInput, "resistance.Calculate", "displacement must be positive")
	case conditions.WaterDensity <= 0:
		return errs.New(errs.InvalidInput, "resistance.Calculate", "water density must be positive")
	case conditions.KinematicViscosity <= 0:
		return errs.New(errs.InvalidInput, "resistance.Calculate", "kinematic viscosity must be positive")
	}
	return nil
}

// AssessApplicability scores, on [0,1], how well hull/conditions fall
// within Holtrop-Mennen's published validity ranges (length, CB, CP, Fn,
// L/B, B/T), averaging the six per-parameter scores the way
// holtrop_mennen.rs's assess_applicability does.
func AssessApplicability(hull Hull, conditions OperatingConditions) float64 {
	speedMS := conditions.SpeedKnots * 0.5144
	froude := speedMS / math.Sqrt(9.81*hull.LengthBetweenPerpendiculars)
	lb := hull.LengthBetweenPerpendiculars / hull.Beam
	bt := hull.Beam / hull.Draft

	scores := [6]float64{
		rangeScore(hull.LengthBetweenPerpendiculars, 15.0, 450.0),
		rangeScore(hull.BlockCoefficient, 0.4, 0.85),
		rangeScore(hull.PrismaticCoefficient, 0.55, 0.85),
		rangeScore(froude, 0.1, 0.8),
		rangeScore(lb, 3.9, 14.9),
		rangeScore(bt, 2.1, 4.0),
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

// rangeScore is 1 when v is within [lo,hi] and decays linearly to 0 as v
// moves past a bound by that bound's own magnitude (deviation measured
// relative to lo or hi), per assess_applicability's
// deviation.min(1.0).max(0.0) pattern.
func rangeScore(v, lo, hi float64) float64 {
	if v >= lo && v <= hi {
		return 1.0
	}
	var deviation float64
	if v < lo {
		deviation = (lo - v) / lo
	} else {
		deviation = (v - hi) / hi
	}
	if deviation > 1.0 {
		deviation = 1.0
	}
	score := 1.0 - deviation
	if score < 0 {
		score = 0
	}
	return score
}

func dimensionalParams(hull Hull, conditions OperatingConditions) dimensionalParameters {
	speedMS := conditions.SpeedKnots * 0.5144
	lwl := hull.LengthWaterline
	draft := conditions.Draft
	displacementVolume := conditions.Displacement / conditions.WaterDensity * 1000.0

	wettedSurfaceArea := lwl*(2.0*draft+hull.Beam)*math.Sqrt(hull.MidshipCoefficient)*
		(0.453+0.4425*hull.BlockCoefficient-0.2862*hull.MidshipCoefficient-
			0.003467*hull.Beam/draft+0.3696*hull.WaterplaneCoefficient) +
		2.38*hull.TransomArea/hull.BlockCoefficient

	return dimensionalParameters{
		speedMS:                          speedMS,
		froudeNumber:                     speedMS / math.Sqrt(9.81*hull.LengthBetweenPerpendiculars),
		reynoldsNumber:                   speedMS * hull.LengthBetweenPerpendiculars / conditions.KinematicViscosity,
		wettedSurfaceArea:                wettedSurfaceArea,
		beamDraftRatio:                   hull.Beam / draft,
		longitudinalPrismaticCoefficient: displacementVolume / (lwl * hull.MidshipCoefficient * hull.Beam * draft),
		displacementVolume:               displacementVolume,
		waterDensity:                     conditions.WaterDensity,
	}
}

func frictionalResistance(hull Hull, p dimensionalParameters, cfg Config) float64 {
	cf := 0.075 / math.Pow(math.Log10(p.reynoldsNumber)-2.0, 2)

	formFactor := 1.0
	if cfg.EnableFormFactorCorrection {
		formFactor = 1.0 + 0.93*math.Pow(p.beamDraftRatio, -0.92497)*
			math.Pow(0.95-p.longitudinalPrismaticCoefficient, -0.521448)*
			math.Pow(1.0-p.longitudinalPrismaticCoefficient+0.0225, 0.6906)
	}

	return 0.5 * p.waterDensity * p.speedMS * p.speedMS * p.wettedSurfaceArea * cf * formFactor
}

func appendageResistance(hull Hull, p dimensionalParameters) float64 {
	total := 0.0
	for _, a := range hull.Appendages {
		cf := appendageCf(a.Type, a.DragCoefficient)
		total += 0.5 * p.waterDensity * p.speedMS * p.speedMS * a.Area * cf
	}
	return total
}

func waveResistance(hull Hull, p dimensionalParameters) float64 {
	lbp := hull.LengthBetweenPerpendiculars
	beam := hull.Beam
	draft := hull.Draft
	cp := hull.PrismaticCoefficient
	ie := hull.HalfAngleEntrance * math.Pi / 180.0

	c1 := 2223105.0 * math.Pow(
		math.Pow(lbp, 3.78613)*math.Pow(draft/beam, 1.07961)*math.Pow(90.0-ie*180.0/math.Pi, -1.37565),
		0.01)
	c2 := math.Exp(-1.89 * math.Sqrt(c1))
	c5 := 1.0 - 0.8*hull.TransomArea/(beam*draft*hull.MidshipCoefficient)

	m1 := 0.0140407*lbp/draft - 1.75254*math.Pow(p.displacementVolume, 1.0/3.0)/lbp -
		4.79323*beam/lbp - c16(cp)
	m2 := c17(cp) * c2 * math.Exp(-0.1*math.Pow(p.froudeNumber, -2))

	var lambda float64
	if lbp/beam < 12.0 {
		lambda = 1.446*cp - 0.03*lbp/beam
	} else {
		lambda = 1.446*cp - 0.36
	}

	cw := c1 * c2 * c5 * math.Exp(m1*math.Pow(p.froudeNumber, 0.9)+m2*math.Cos(lambda*math.Pow(p.froudeNumber, -2)))

	return 0.5 * p.waterDensity * p.speedMS * p.speedMS * p.wettedSurfaceArea * cw
}

func bulbousBowResistance(hull Hull, p dimensionalParameters) float64 {
	bulb := hull.BulbousBow
	if bulb == nil {
		return 0
	}

	tf := hull.Draft
	fni := p.speedMS / math.Sqrt(9.81*(tf-bulb.CenterHeight-0.25*math.Sqrt(bulb.Area))+0.15*p.speedMS*p.speedMS)

	base := 0.11 * math.Exp(-3.0*fni*fni) * math.Pow(bulb.Area, 1.5) * p.waterDensity * 9.81 /
		(bulb.Area + p.wettedSurfaceArea)

	switch {
	case fni < 0.2:
		return base
	case fni < 0.55:
		return base * (1.0 - (fni-0.2)/0.35)
	default:
		return 0
	}
}

func transomResistance(hull Hull, p dimensionalParameters) float64 {
	if hull.TransomArea <= 0 {
		return 0
	}
	beam := hull.Beam
	cwp := hull.WaterplaneCoefficient

	fnt := p.speedMS / math.Sqrt(2.0*9.81*hull.TransomArea/(beam+beam*cwp))
	c6 := 0.0
	if fnt < 5.0 {
		c6 = 0.2 * (1.0 - 0.2*fnt)
	}
	return 0.5 * p.waterDensity * p.speedMS * p.speedMS * hull.TransomArea * c6
}

func modelShipCorrelation(hull Hull, p dimensionalParameters) float64 {
	lbp := hull.LengthBetweenPerpendiculars
	cp := hull.PrismaticCoefficient
	cwp := hull.WaterplaneCoefficient

	ca := 0.006*math.Pow(lbp+100.0, -0.16) - 0.00205 +
		0.003*math.Sqrt(lbp/7.5)*math.Pow(hull.BlockCoefficient, 4.0)*c2Coefficient(cp)*(0.04-c4Coefficient(cwp))

	return 0.5 * p.waterDensity * p.speedMS * p.speedMS * p.wettedSurfaceArea * ca
}

// c16, c17, c2Coefficient, c4Coefficient are the small piecewise helper
// coefficients Holtrop-Mennen's wave-resistance and correlation-allowance
// terms use (holtrop_mennen.rs c16/c17/c2/c4). Named with a Coefficient
// suffix on the two that would otherwise collide with Go builtins/receiver
// names in this file.
func c16(cp float64) float64 {
	if cp < 0.8 {
		return 8.07981*cp - 13.8673*cp*cp + 6.984388*cp*cp*cp
	}
	return 1.73014 - 0.7067*cp
}

func c17(cp float64) float64 {
	if cp < 0.7 {
		return 6.919385 - 7.23014*cp + 2.441481*cp*cp
	}
	return -0.4 + cp
}

func c2Coefficient(cp float64) float64 {
	if cp < 0.7 {
		return 0.20 - 0.28571*cp
	}
	return 0.30 - 0.71429*(cp-0.7)
}

func c4Coefficient(cwp float64) float64 {
	return cwp
}

// Package resistance computes calm-water resistance by the Holtrop-Mennen
// method and added resistance in waves from a hull's principal particulars
// (SPEC_FULL.md §4.9, supplementing spec.md with a feature dropped from the
// distillation but present in original_source/resistance/). It is an
// optional post-processing step run after a pipeline.Result and, for added
// resistance, a rao.Result are available; it never mutates or is consulted
// by the BEM core itself.
package resistance

// SternType is the hull's stern form, used only as a descriptive field;
// Holtrop-Mennen's own formulas key off block/prismatic coefficients and
// transom area rather than this tag directly (holtrop_mennen.rs never
// branches on it either).
type SternType int

const (
	NormalStern SternType = iota
	VShapedStern
	UShapedStern
)

func (s SternType) String() string {
	switch s {
	case VShapedStern:
		return "V"
	case UShapedStern:
		return "U"
	default:
		return "Normal"
	}
}

// AppendageType selects the per-type frictional coefficient
// appendageResistance looks up (holtrop_mennen.rs
// calculate_appendage_resistance).
type AppendageType int

const (
	Rudder AppendageType = iota
	Skeg
	Bracket
	Shaft
	BossArms
	OtherAppendage
)

// appendageCf returns the typical drag coefficient Holtrop-Mennen's
// appendage term uses for each appendage type; OtherAppendage falls back to
// the Appendage's own Cd since there is no tabulated default for it.
func appendageCf(t AppendageType, fallback float64) float64 {
	switch t {
	case Rudder:
		return 0.008
	case Skeg:
		return 0.006
	case Bracket:
		return 0.040
	case Shaft:
		return 0.006
	case BossArms:
		return 0.020
	default:
		return fallback
	}
}

// Appendage is one hull appendage (rudder, skeg, shaft, ...) contributing
// to the appendage resistance component.
type Appendage struct {
	Type           AppendageType
	Area           float64 // wetted area, m^2
	DragCoefficient float64 // used only when Type == OtherAppendage
}

// BulbousBow is the bulb geometry used by the bulbous-bow resistance term;
// a nil *BulbousBow on Hull means the hull has none.
type BulbousBow struct {
	Area          float64 // ABT, transverse bulb area at the forward perpendicular, m^2
	CenterHeight  float64 // hB, bulb centroid height above keel, m
}

// Hull carries the principal particulars and form coefficients
// calculate_dimensional_parameters and the six resistance components read
// from (holtrop_mennen.rs, types.rs HullParameters).
type Hull struct {
	LengthOverall               float64 // LOA, m
	LengthBetweenPerpendiculars float64 // LBP, m
	LengthWaterline              float64 // LWL, m
	Beam                         float64 // B, m
	Draft                        float64 // T, m (design draft)
	Displacement                 float64 // Δ, m^3
	BlockCoefficient             float64 // CB
	MidshipCoefficient           float64 // CM
	WaterplaneCoefficient        float64 // CWP
	PrismaticCoefficient         float64 // CP
	LongitudinalCenterBuoyancy   float64 // LCB from midships, %LBP
	HalfAngleEntrance            float64 // iE, degrees
	SternType                    SternType
	BulbousBow                   *BulbousBow
	TransomArea                  float64 // AT, m^2
	Appendages                   []Appendage
}

// OperatingConditions is the speed/draft/loading point resistance is
// evaluated at (types.rs OperatingConditions).
type OperatingConditions struct {
	SpeedKnots          float64
	Draft               float64 // m, current draft (may differ from Hull.Draft under trim/loading)
	Displacement        float64 // tonnes
	WaterDensity        float64 // kg/m^3
	KinematicViscosity  float64 // m^2/s
}

// DefaultOperatingConditions mirrors types.rs's OperatingConditions::default,
// a 15kt loaded seawater condition used when a caller has nothing more
// specific to evaluate.
func DefaultOperatingConditions() OperatingConditions {
	return OperatingConditions{
		SpeedKnots:         15.0,
		Draft:              8.0,
		Displacement:       10000.0,
		WaterDensity:       1025.0,
		KinematicViscosity: 1.188e-6,
	}
}

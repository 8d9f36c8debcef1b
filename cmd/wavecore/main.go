// Command wavecore is a smoke-test entrypoint: it runs a small BEM solve
// on a heaving hemisphere, solves for its RAO, runs the validation suite,
// and evaluates the hull's calm-water and added resistance, printing a
// summary of each stage. It mirrors the teacher's examples/ demo style
// (a self-contained package main with constant simulation parameters and
// fmt.Printf progress) rather than a flag-driven CLI, since spec.md's
// Non-goals exclude CLI orchestration as a product surface.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/LexxSaa28/wavecore/body"
	"github.com/LexxSaa28/wavecore/environment"
	"github.com/LexxSaa28/wavecore/mesh"
	"github.com/LexxSaa28/wavecore/pipeline"
	"github.com/LexxSaa28/wavecore/rao"
	"github.com/LexxSaa28/wavecore/resistance"
	"github.com/LexxSaa28/wavecore/validation"
	"gonum.org/v1/gonum/mat"
)

const (
	hemisphereRadius = 1.0
	panelsPerAxis    = 24
	heaveOmega       = 1.2
)

func main() {
	fmt.Println("=== WaveCore demo: heaving hemisphere ===")
	result, hullBody := solveHemisphere()

	fmt.Println("\n=== RAO at the demo frequency ===")
	printRAO(result, hullBody)

	fmt.Println("\n=== Validation suite ===")
	runValidationSuite()

	fmt.Println("\n=== Resistance (illustrative container-ship hull) ===")
	runResistanceDemo()
}

func solveHemisphere() (*pipeline.Result, *body.Body) {
	m, err := mesh.Hemisphere(hemisphereRadius, panelsPerAxis, panelsPerAxis/2)
	if err != nil {
		log.Fatalf("mesh.Hemisphere: %v", err)
	}

	mass := 2.0 / 3.0 * 3.14159265 * hemisphereRadius * hemisphereRadius * hemisphereRadius * 1000
	inertia := isotropicInertia(0.4 * mass * hemisphereRadius * hemisphereRadius)
	hullBody, err := body.New(mass, mesh.Point{}, inertia, [6]bool{false, false, true, false, false, false})
	if err != nil {
		log.Fatalf("body.New: %v", err)
	}

	env := environment.StandardSeawater(environment.Infinite())

	p := pipeline.New(pipeline.Default())
	result, err := p.Run(context.Background(), m, hullBody, env, []float64{heaveOmega}, []float64{0}, nil)
	if err != nil {
		log.Fatalf("pipeline.Run: %v", err)
	}

	fmt.Printf("A_33(%.2f) = %.4f kg, B_33 = %.4f kg/s\n", heaveOmega, result.AddedMass[0].At(2, 2), result.Damping[0].At(2, 2))
	return result, hullBody
}

func printRAO(result *pipeline.Result, hullBody *body.Body) {
	solved, err := rao.Solve(hullBody, heaveOmega, result.AddedMass[0], result.Damping[0], result.Hydrostatics.Restoring, result.ExcitingForce[0][0])
	if err != nil {
		log.Fatalf("rao.Solve: %v", err)
	}
	fmt.Printf("heave RAO = %.4f, singular modes = %v\n", solved.Motion[body.Heave], solved.Singular)
}

func runValidationSuite() {
	suite := validation.NewSuite(validation.DefaultSuiteConfig())
	for _, report := range suite.RunAll(context.Background()) {
		status := "PASS"
		if !report.Passed {
			status = "FAIL"
		}
		fmt.Printf("[%s] %s: %s\n", status, report.Name, report.Summary)
	}
}

func runResistanceDemo() {
	hull := resistance.Hull{
		LengthOverall:               300.0,
		LengthBetweenPerpendiculars: 280.0,
		LengthWaterline:             285.0,
		Beam:                        40.0,
		Draft:                       12.0,
		Displacement:                52000.0,
		BlockCoefficient:            0.65,
		MidshipCoefficient:          0.99,
		WaterplaneCoefficient:       0.85,
		PrismaticCoefficient:        0.66,
		HalfAngleEntrance:           20.0,
		BulbousBow:                  &resistance.BulbousBow{Area: 25.0, CenterHeight: 4.0},
		Appendages:                  []resistance.Appendage{{Type: resistance.Rudder, Area: 80.0}},
	}
	conditions := resistance.OperatingConditions{
		SpeedKnots:         18.0,
		Draft:              12.0,
		Displacement:       52000.0,
		WaterDensity:       1025.0,
		KinematicViscosity: 1.188e-6,
	}

	calm, err := resistance.Calculate(hull, conditions, resistance.DefaultConfig())
	if err != nil {
		log.Fatalf("resistance.Calculate: %v", err)
	}
	fmt.Printf("calm-water RT = %.0f N, PE = %.0f kW (applicability %.2f)\n", calm.TotalResistance, calm.EffectivePower, calm.Applicability)

	spectrum := resistance.WaveSpectrum{
		SignificantWaveHeight: 3.0,
		PeakPeriod:            8.0,
		WaveDirectionDeg:      0.0,
		Type:                  resistance.JONSWAP,
		Frequencies:           []float64{0.3, 0.5, 0.7, 0.9, 1.1},
		SpectralDensities:     []float64{0.4, 1.3, 1.6, 0.8, 0.3},
	}
	waves, err := resistance.CalculateAddedResistance(hull, conditions, spectrum, nil)
	if err != nil {
		log.Fatalf("resistance.CalculateAddedResistance: %v", err)
	}
	fmt.Printf("added resistance (%s) = %.0f N\n", waves.Method, waves.TotalResistance)
}

// isotropicInertia returns the diagonal inertia tensor i·I, which is
// positive definite for i > 0 as body.New requires.
func isotropicInertia(i float64) *mat.SymDense {
	return mat.NewSymDense(3, []float64{i, 0, 0, 0, i, 0, 0, 0, i})
}

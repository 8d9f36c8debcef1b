package mesh

import "math"

// QualityGrade classifies a single panel's quality score, mirroring
// original_source/meshes/src/quality.rs's QualityGrade enum but trimmed to
// the metrics spec.md actually calls for (a per-mesh quality score plus
// watertightness).
type QualityGrade int

const (
	Excellent QualityGrade = iota
	Good
	Fair
	Poor
	VeryPoor
)

func (g QualityGrade) String() string {
	switch g {
	case Excellent:
		return "Excellent"
	case Good:
		return "Good"
	case Fair:
		return "Fair"
	case Poor:
		return "Poor"
	default:
		return "VeryPoor"
	}
}

func gradeFromScore(score float64) QualityGrade {
	switch {
	case score > 0.8:
		return Excellent
	case score > 0.6:
		return Good
	case score > 0.4:
		return Fair
	case score > 0.2:
		return Poor
	default:
		return VeryPoor
	}
}

// PanelQuality holds the aspect ratio and skewness of one panel and its
// resulting quality score in [0,1].
type PanelQuality struct {
	AspectRatio float64
	Skewness    float64
	Score       float64
	Grade       QualityGrade
}

// QualityReport summarizes mesh quality and watertightness (spec.md §4.1
// validate()).
type QualityReport struct {
	Watertight   bool
	NumPanels    int
	OverallScore float64
	PoorPanels   []int
	PerPanel     []PanelQuality
}

// Validate computes the mesh's QualityReport. It never fails: quality is
// diagnostic, unlike RequireWatertight which is a hard precondition.
func (m *Mesh) Validate() QualityReport {
	report := QualityReport{
		Watertight: m.watertight,
		NumPanels:  len(m.panels),
		PerPanel:   make([]PanelQuality, len(m.panels)),
	}

	var scoreSum float64
	for i, p := range m.panels {
		pq := panelQuality(p)
		report.PerPanel[i] = pq
		scoreSum += pq.Score
		if pq.Grade == Poor || pq.Grade == VeryPoor {
			report.PoorPanels = append(report.PoorPanels, i)
		}
	}
	if len(m.panels) > 0 {
		report.OverallScore = scoreSum / float64(len(m.panels))
	}
	return report
}

func panelQuality(p *Panel) PanelQuality {
	edgeLens := make([]float64, len(p.Vertices))
	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		edgeLens[i] = Distance(p.Vertices[i], p.Vertices[(i+1)%n])
	}
	minEdge, maxEdge := edgeLens[0], edgeLens[0]
	for _, l := range edgeLens[1:] {
		if l < minEdge {
			minEdge = l
		}
		if l > maxEdge {
			maxEdge = l
		}
	}
	aspectRatio := 1.0
	if minEdge > 0 {
		aspectRatio = maxEdge / minEdge
	}

	// Skewness proxy: deviation of the panel's actual area from the area of
	// a regular polygon with the same perimeter (0 = regular, 1 = maximally
	// skewed), a cheap analytic stand-in for the Rust source's angle-based
	// skewness that needs no per-edge angle enumeration.
	perimeter := 0.0
	for _, l := range edgeLens {
		perimeter += l
	}
	var regularArea float64
	if n == 3 {
		side := perimeter / 3
		regularArea = math.Sqrt(3) / 4 * side * side
	} else {
		side := perimeter / 4
		regularArea = side * side
	}
	skewness := 0.0
	if regularArea > 0 {
		skewness = math.Abs(regularArea-p.Area) / regularArea
		if skewness > 1 {
			skewness = 1
		}
	}

	aspectScore := 1.0 / aspectRatio
	if aspectRatio < 1 {
		aspectScore = aspectRatio
	}
	score := aspectScore * (1 - skewness)
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return PanelQuality{
		AspectRatio: aspectRatio,
		Skewness:    skewness,
		Score:       score,
		Grade:       gradeFromScore(score),
	}
}

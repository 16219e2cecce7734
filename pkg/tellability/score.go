package tellability

// Counts are the inputs of the tellability score.
type Counts struct {
	Polyvalent          int `json:"polyvalent_vertices"`
	Vertices            int `json:"vertices"`
	ProductiveConflicts int `json:"productive_conflicts"`
	Suspense            int `json:"suspense"`
	PlotLength          int `json:"plot_length"`
}

// Score combines functional polyvalence and suspense:
//
//	polyvalent/vertices + suspense/plotLength
//
// A plot without productive conflict scores 0. A term with a zero
// denominator contributes 0.
func Score(c Counts) float64 {
	if c.ProductiveConflicts < 1 {
		return 0
	}
	var score float64
	if c.Vertices > 0 {
		score += float64(c.Polyvalent) / float64(c.Vertices)
	}
	if c.PlotLength > 0 {
		score += float64(c.Suspense) / float64(c.PlotLength)
	}
	return score
}

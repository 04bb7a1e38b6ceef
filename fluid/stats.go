package fluid

// Stats summarizes the current simulation state.
type Stats struct {
	Frames         uint64
	Mass           float64
	Speed          float64
	MeanDivergence float64
	Rects          int
}

func sumField(f Field) float64 {
	var s float64
	for _, v := range f {
		s += float64(v)
	}
	return s
}

func sumAbs(f Field) float64 {
	var s float64
	for _, v := range f {
		if v < 0 {
			s -= float64(v)
		} else {
			s += float64(v)
		}
	}
	return s
}

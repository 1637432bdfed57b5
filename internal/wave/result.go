package wave

// Result1D collects the outputs of a 1D run. Snapshots and Times are
// aligned; Amplitude is dense (one entry per step, plus the initial state)
// regardless of the snapshot stride. All slices are append-only during the
// run and immutable afterward.
type Result1D struct {
	Times      []float64
	Snapshots  [][]float64
	Amplitude  []float64
	Dt         float64
	StepsTaken int
}

// Result2D additionally records the total energy at each saved snapshot,
// aligned index-for-index with Snapshots.
type Result2D struct {
	Times      []float64
	Snapshots  [][][]float64
	Amplitude  []float64
	Energy     []float64
	Dt         float64
	StepsTaken int
}

// Package export writes run series as PNG charts.
package export

import (
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"
)

// AmplitudeChart plots max|phi| against time.
func AmplitudeChart(path string, times, amplitude []float64) error {
	return renderLine(path, "time t", "max |phi|", times, amplitude)
}

// EnergyChart plots the total energy record against snapshot time.
func EnergyChart(path string, times, energy []float64) error {
	return renderLine(path, "time t", "total energy", times, energy)
}

// DispersionChart overlays the measured spectrum and the theoretical
// frequency curve over wavenumber.
func DispersionChart(path string, k, mag, omegaTheory []float64) error {
	if len(k) < 2 {
		return fmt.Errorf("export: need at least 2 points, got %d", len(k))
	}
	graph := chart.Chart{
		XAxis:          chart.XAxis{Name: "wave number k"},
		YAxis:          chart.YAxis{Name: "|FFT(phi)|"},
		YAxisSecondary: chart.YAxis{Name: "frequency omega"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "simulation FFT",
				XValues: k,
				YValues: mag,
			},
			chart.ContinuousSeries{
				Name:    "theory: omega^2 = c^2 k^2 + omega0^2",
				YAxis:   chart.YAxisSecondary,
				XValues: k,
				YValues: omegaTheory,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return render(path, graph)
}

// DecayChart overlays an amplitude trace with its fitted decay curve.
func DecayChart(path string, times, amplitude, fitted []float64) error {
	if len(times) < 2 {
		return fmt.Errorf("export: need at least 2 points, got %d", len(times))
	}
	graph := chart.Chart{
		XAxis: chart.XAxis{Name: "time t"},
		YAxis: chart.YAxis{Name: "max |phi|"},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "simulation", XValues: times, YValues: amplitude},
			chart.ContinuousSeries{Name: "exponential fit", XValues: times, YValues: fitted},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return render(path, graph)
}

func renderLine(path, xName, yName string, xs, ys []float64) error {
	if len(xs) < 2 || len(xs) != len(ys) {
		return fmt.Errorf("export: need matching series of at least 2 points, got %d/%d", len(xs), len(ys))
	}
	graph := chart.Chart{
		XAxis:  chart.XAxis{Name: xName},
		YAxis:  chart.YAxis{Name: yName},
		Series: []chart.Series{chart.ContinuousSeries{XValues: xs, YValues: ys}},
	}
	return render(path, graph)
}

func render(path string, graph chart.Chart) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return graph.Render(chart.PNG, f)
}

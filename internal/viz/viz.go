// Package viz renders run outputs as terminal plots.
package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ccff"))

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	StableStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	UnstableStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))
)

// Series plots a scalar series with a caption.
func Series(caption string, data []float64, height int) string {
	if len(data) == 0 {
		return LabelStyle.Render("(no data)")
	}
	return asciigraph.Plot(downsample(data, 160),
		asciigraph.Height(height),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

// Spectrum plots spectral magnitude over wavenumber, annotating the peak.
func Spectrum(k, mag []float64) string {
	if len(mag) == 0 {
		return LabelStyle.Render("(no data)")
	}
	graph := asciigraph.Plot(downsample(mag, 160),
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("|FFT| over k in [%.2f, %.2f]", k[0], k[len(k)-1])),
	)

	peakIdx := 0
	for i := range mag {
		if mag[i] > mag[peakIdx] {
			peakIdx = i
		}
	}
	note := LabelStyle.Render(fmt.Sprintf("peak |FFT| = %.3g at k = %.3f", mag[peakIdx], k[peakIdx]))
	return graph + "\n" + note
}

// FieldProfile plots a 1D field snapshot.
func FieldProfile(phi []float64, t float64) string {
	return asciigraph.Plot(downsample(phi, 160),
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("phi(x) at t = %.3f", t)),
	)
}

// Header renders a styled section title with a rule.
func Header(title string) string {
	return TitleStyle.Render(title) + "\n" + LabelStyle.Render(strings.Repeat("-", len(title)))
}

// downsample thins a series to at most n points so wide traces stay
// readable at terminal width.
func downsample(data []float64, n int) []float64 {
	if len(data) <= n {
		return data
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = data[i*len(data)/n]
	}
	return out
}

// Package storage persists finished runs as a flat name-to-value bundle:
// metadata.json for scalar parameters and CSV files for the arrays. A
// reloaded bundle is indistinguishable from an in-memory one to the
// analyzer.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/dispersion"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata mirrors the scalar parameters of a RunBundle.
type RunMetadata struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Dim        int       `json:"dim"`
	L          float64   `json:"L"`
	Lx         float64   `json:"Lx"`
	Ly         float64   `json:"Ly"`
	Nx         int       `json:"Nx"`
	Ny         int       `json:"Ny"`
	C          float64   `json:"c"`
	Omega0     float64   `json:"omega0"`
	Dx         float64   `json:"dx"`
	Dy         float64   `json:"dy"`
	Dt         float64   `json:"dt"`
	PulseWidth float64   `json:"pulse_width"`
}

// Save writes a bundle under a fresh run directory and returns its ID.
func (s *Store) Save(b *dispersion.RunBundle) (string, error) {
	runID := fmt.Sprintf("%dd_%d", b.Dim, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Timestamp:  time.Now(),
		Dim:        b.Dim,
		L:          b.L,
		Lx:         b.Lx,
		Ly:         b.Ly,
		Nx:         b.Nx,
		Ny:         b.Ny,
		C:          b.C,
		Omega0:     b.Omega0,
		Dx:         b.Dx,
		Dy:         b.Dy,
		Dt:         b.Dt,
		PulseWidth: b.PulseWidth,
	}
	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	if err := s.writeSnapshots(runDir, b); err != nil {
		return "", err
	}
	if err := writeSeries(filepath.Join(runDir, "amplitude.csv"), nil, b.Amplitude); err != nil {
		return "", err
	}
	if b.Dim == 2 {
		if err := writeSeries(filepath.Join(runDir, "energy.csv"), b.Times, b.Energy); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) writeSnapshots(runDir string, b *dispersion.RunBundle) error {
	f, err := os.Create(filepath.Join(runDir, "snapshots.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	for si, t := range b.Times {
		row := []string{formatFloat(t)}
		if b.Dim == 1 {
			for _, v := range b.Snapshots1D[si] {
				row = append(row, formatFloat(v))
			}
		} else {
			for _, col := range b.Snapshots2D[si] {
				for _, v := range col {
					row = append(row, formatFloat(v))
				}
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// List returns the metadata of every stored run.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

// Load reads only the metadata of a stored run.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadBundle reconstructs the full RunBundle of a stored run, normalized
// into the same structure an in-memory run produces.
func (s *Store) LoadBundle(runID string) (*dispersion.RunBundle, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	b := &dispersion.RunBundle{
		Dim:        meta.Dim,
		L:          meta.L,
		Lx:         meta.Lx,
		Ly:         meta.Ly,
		Nx:         meta.Nx,
		Ny:         meta.Ny,
		C:          meta.C,
		Omega0:     meta.Omega0,
		Dx:         meta.Dx,
		Dy:         meta.Dy,
		Dt:         meta.Dt,
		PulseWidth: meta.PulseWidth,
	}

	runDir := filepath.Join(s.baseDir, runID)

	times, fields, err := readSnapshots(filepath.Join(runDir, "snapshots.csv"))
	if err != nil {
		return nil, err
	}
	b.Times = times
	if meta.Dim == 1 {
		b.Snapshots1D = fields
	} else {
		b.Snapshots2D = make([][][]float64, len(fields))
		for si, flat := range fields {
			if len(flat) != meta.Nx*meta.Ny {
				return nil, fmt.Errorf("storage: snapshot %d has %d cells, expected %dx%d",
					si, len(flat), meta.Nx, meta.Ny)
			}
			snap := make([][]float64, meta.Nx)
			for i := 0; i < meta.Nx; i++ {
				snap[i] = flat[i*meta.Ny : (i+1)*meta.Ny]
			}
			b.Snapshots2D[si] = snap
		}
	}

	if _, vals, err := readSeries(filepath.Join(runDir, "amplitude.csv")); err == nil {
		b.Amplitude = vals
	} else {
		return nil, err
	}
	if meta.Dim == 2 {
		if _, vals, err := readSeries(filepath.Join(runDir, "energy.csv")); err == nil {
			b.Energy = vals
		} else {
			return nil, err
		}
	}

	return b, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeSeries stores a scalar series; times may be nil for a dense per-step
// trace whose axis is reconstructed from dt.
func writeSeries(path string, times, values []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	for i, v := range values {
		row := make([]string, 0, 2)
		if times != nil {
			row = append(row, formatFloat(times[i]))
		}
		row = append(row, formatFloat(v))
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func readSnapshots(path string) (times []float64, fields [][]float64, err error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, nil, err
	}
	for _, rec := range records {
		if len(rec) < 2 {
			continue
		}
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, nil, err
		}
		vals := make([]float64, len(rec)-1)
		for i, cell := range rec[1:] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, nil, err
			}
			vals[i] = v
		}
		times = append(times, t)
		fields = append(fields, vals)
	}
	return times, fields, nil
}

func readSeries(path string) (times, values []float64, err error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, nil, err
	}
	for _, rec := range records {
		if len(rec) == 0 {
			continue
		}
		v, err := strconv.ParseFloat(rec[len(rec)-1], 64)
		if err != nil {
			return nil, nil, err
		}
		values = append(values, v)
		if len(rec) == 2 {
			t, err := strconv.ParseFloat(rec[0], 64)
			if err != nil {
				return nil, nil, err
			}
			times = append(times, t)
		}
	}
	return times, values, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 17, 64)
}

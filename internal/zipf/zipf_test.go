package zipf

import (
	"bufio"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestZipfFrequencies(t *testing.T) {
	const total = 100000
	freqs := Zipf(50, total, 1.0)

	if len(freqs) != 50 {
		t.Fatalf("len = %d, want 50", len(freqs))
	}
	// Monotonically decreasing.
	for i := 1; i < len(freqs); i++ {
		if freqs[i] >= freqs[i-1] {
			t.Errorf("rank %d frequency %f not below rank %d (%f)", i+1, freqs[i], i, freqs[i-1])
		}
	}
	// Normalised to the token total.
	sum := 0.0
	for _, f := range freqs {
		sum += f
	}
	if math.Abs(sum-total) > 1e-6*total {
		t.Errorf("sum = %f, want %d", sum, total)
	}
	// f(2) is half of f(1) for s=1.
	if ratio := freqs[0] / freqs[1]; math.Abs(ratio-2.0) > 1e-9 {
		t.Errorf("f(1)/f(2) = %f, want 2", ratio)
	}
}

func TestMandelbrotNormalised(t *testing.T) {
	const total = 50000
	freqs := Mandelbrot(100, total, MandelbrotParams{B: 1.1, P: 1.0, Rho: 2.0})

	sum := 0.0
	for i, f := range freqs {
		sum += f
		if i > 0 && f >= freqs[i-1] {
			t.Errorf("rank %d not decreasing", i+1)
		}
	}
	if math.Abs(sum-total) > 1e-6*total {
		t.Errorf("sum = %f, want %d", sum, total)
	}
}

// Fitting data generated from known parameters should recover them up to the
// grid resolution.
func TestFitMandelbrotRecoversParams(t *testing.T) {
	want := MandelbrotParams{B: 1.1, P: 1.0, Rho: 2.0}
	theoretical := Mandelbrot(500, 1000000, want)

	frequencies := make([]int64, len(theoretical))
	for i, f := range theoretical {
		frequencies[i] = int64(math.Round(f))
	}

	got := FitMandelbrot(frequencies)
	if math.Abs(got.B-want.B) > 0.051 {
		t.Errorf("B = %f, want about %f", got.B, want.B)
	}
	if math.Abs(got.Rho-want.Rho) > 0.21 {
		t.Errorf("rho = %f, want about %f", got.Rho, want.Rho)
	}
}

func TestSavePlotData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zipf.tsv")
	freq := map[string]int64{
		"кот":    30,
		"собака": 20,
		"мышь":   10,
	}
	if err := SavePlotData(freq, path); err != nil {
		t.Fatalf("SavePlotData: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	want := []string{
		"# Rank\tFrequency\tTerm",
		"1\t30\tкот",
		"2\t20\tсобака",
		"3\t10\tмышь",
	}
	if len(lines) != len(want) {
		t.Fatalf("lines = %v", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWriteGnuplotScript(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "zipf.tsv")
	if err := WriteGnuplotScript(dataPath, "zipf.png", "Zipf", 1000, MandelbrotParams{B: 1.1, P: 500, Rho: 2.0}); err != nil {
		t.Fatalf("WriteGnuplotScript: %v", err)
	}

	data, err := os.ReadFile(dataPath + ".gnuplot")
	if err != nil {
		t.Fatalf("read script: %v", err)
	}
	script := string(data)
	for _, fragment := range []string{"set logscale xy", "mandelbrot(x)", "zipf(x)", "zipf.png"} {
		if !strings.Contains(script, fragment) {
			t.Errorf("script missing %q", fragment)
		}
	}
}

func TestDeviationByZone(t *testing.T) {
	empirical := []int64{100, 50, 30, 20, 10}
	theoretical := []float64{100, 50, 30, 20, 10}

	zones := DeviationByZone(empirical, theoretical)
	if len(zones) == 0 {
		t.Fatal("no zones")
	}
	for _, zone := range zones {
		if zone.RelErrorPct != 0 {
			t.Errorf("zone %s error = %f, want 0", zone.Name, zone.RelErrorPct)
		}
	}
}

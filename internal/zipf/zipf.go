// Package zipf fits term-frequency distributions against Zipf's law and the
// Zipf-Mandelbrot generalisation, and produces rank/frequency data files for
// plotting.
package zipf

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"sort"
)

// MandelbrotParams parameterise f(r) = P / (r + Rho)^B.
type MandelbrotParams struct {
	B   float64
	P   float64
	Rho float64
}

// Zipf returns the theoretical frequencies f(r) = C / r^s for ranks 1..n,
// with C normalised so the frequencies sum to totalTokens.
func Zipf(numRanks int, totalTokens int64, s float64) []float64 {
	result := make([]float64, numRanks)
	harmonic := 0.0
	for r := 1; r <= numRanks; r++ {
		harmonic += 1.0 / math.Pow(float64(r), s)
	}
	c := float64(totalTokens) / harmonic
	for r := 1; r <= numRanks; r++ {
		result[r-1] = c / math.Pow(float64(r), s)
	}
	return result
}

// Mandelbrot returns the theoretical Zipf–Mandelbrot frequencies for ranks
// 1..n, scaled so they sum to totalTokens.
func Mandelbrot(numRanks int, totalTokens int64, params MandelbrotParams) []float64 {
	result := make([]float64, numRanks)
	sum := 0.0
	for r := 1; r <= numRanks; r++ {
		val := params.P / math.Pow(float64(r)+params.Rho, params.B)
		result[r-1] = val
		sum += val
	}
	scale := float64(totalTokens) / sum
	for i := range result {
		result[i] *= scale
	}
	return result
}

// FitMandelbrot grid-searches B and rho against the empirical frequencies
// (sorted descending), scoring by log-scale MSE over the first 1000 ranks.
func FitMandelbrot(frequencies []int64) MandelbrotParams {
	best := MandelbrotParams{B: 1.0, P: 1.0, Rho: 2.7}
	if len(frequencies) == 0 {
		return best
	}
	bestError := math.MaxFloat64

	var total int64
	for _, f := range frequencies {
		total += f
	}

	for b := 0.8; b <= 1.5; b += 0.05 {
		for rho := 1.0; rho <= 5.0; rho += 0.2 {
			theoretical := Mandelbrot(len(frequencies), total, MandelbrotParams{B: b, P: 1.0, Rho: rho})

			n := len(frequencies)
			if n > 1000 {
				n = 1000
			}
			errSum := 0.0
			for i := 0; i < n; i++ {
				logEmp := math.Log(float64(frequencies[i]) + 1)
				logTheo := math.Log(theoretical[i] + 1)
				errSum += (logEmp - logTheo) * (logEmp - logTheo)
			}
			errSum /= float64(n)

			if errSum < bestError {
				bestError = errSum
				best.B = b
				best.Rho = rho
				best.P = float64(frequencies[0]) * math.Pow(1+rho, b)
			}
		}
	}
	return best
}

// SavePlotData writes a rank/frequency/term TSV sorted by descending
// frequency.
func SavePlotData(freq map[string]int64, path string) error {
	type termFreq struct {
		term  string
		count int64
	}
	sorted := make([]termFreq, 0, len(freq))
	for term, count := range freq {
		sorted = append(sorted, termFreq{term, count})
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].count > sorted[j].count })

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating plot data file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "# Rank\tFrequency\tTerm")
	for i, tf := range sorted {
		fmt.Fprintf(w, "%d\t%d\t%s\n", i+1, tf.count, tf.term)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing plot data: %w", err)
	}
	return nil
}

// WriteGnuplotScript emits a gnuplot script next to the data file that plots
// the empirical distribution against the Zipf and fitted Mandelbrot curves
// on log-log axes.
func WriteGnuplotScript(dataPath, imagePath, title string, totalTokens int64, params MandelbrotParams) error {
	scriptPath := dataPath + ".gnuplot"
	f, err := os.Create(scriptPath)
	if err != nil {
		return fmt.Errorf("creating gnuplot script: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "set terminal png size 1200,800 enhanced font 'Arial,12'")
	fmt.Fprintf(w, "set output '%s'\n", imagePath)
	fmt.Fprintf(w, "set title '%s'\n", title)
	fmt.Fprintln(w, "set xlabel 'Rank (log)'")
	fmt.Fprintln(w, "set ylabel 'Frequency (log)'")
	fmt.Fprintln(w, "set logscale xy")
	fmt.Fprintln(w, "set grid")
	fmt.Fprintln(w, "set key top right")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "zipf(x) = %d / (1.78 * x)\n", totalTokens)
	fmt.Fprintf(w, "B = %g\nrho = %g\nP = %g\n", params.B, params.Rho, params.P)
	fmt.Fprintln(w, "mandelbrot(x) = P / (x + rho)**B")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "plot '%s' using 1:2 with points pt 7 ps 0.3 lc rgb 'blue' title 'empirical', \\\n", dataPath)
	fmt.Fprintln(w, "     zipf(x) with lines lw 2 lc rgb 'red' title 'Zipf (s=1)', \\")
	w.WriteString("     mandelbrot(x) with lines lw 2 lc rgb 'green' title sprintf('Mandelbrot (B=%.2f, rho=%.2f)', B, rho)\n")
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing gnuplot script: %w", err)
	}
	return nil
}

// ZoneDeviation is the mean relative error of one rank band against the
// theoretical distribution.
type ZoneDeviation struct {
	Name        string
	RelErrorPct float64
	AboveTheory bool
}

// DeviationByZone compares empirical frequencies (descending) to theoretical
// ones across the conventional rank bands.
func DeviationByZone(empirical []int64, theoretical []float64) []ZoneDeviation {
	zones := []struct {
		name       string
		start, end int
	}{
		{"top-10", 0, 10},
		{"top 10-100", 10, 100},
		{"mid (100-1000)", 100, 1000},
		{"tail (1000+)", 1000, len(empirical)},
	}

	var out []ZoneDeviation
	for _, zone := range zones {
		if zone.start >= len(empirical) {
			continue
		}
		end := zone.end
		if end > len(empirical) {
			end = len(empirical)
		}

		relError := 0.0
		sumEmp := 0.0
		sumTheo := 0.0
		for i := zone.start; i < end; i++ {
			emp := float64(empirical[i])
			theo := theoretical[i]
			if theo > 0 {
				relError += math.Abs(emp-theo) / theo
			}
			sumEmp += emp
			sumTheo += theo
		}
		relError = relError / float64(end-zone.start) * 100

		out = append(out, ZoneDeviation{
			Name:        zone.name,
			RelErrorPct: relError,
			AboveTheory: sumEmp > sumTheo,
		})
	}
	return out
}

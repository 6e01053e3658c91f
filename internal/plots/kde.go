package plots

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/Jai-Chauhan/SCT-DS-2/internal/analysis"
)

// maxBins bounds AutoBins for heavy-tailed data.
const maxBins = 200

// AutoBins picks a histogram bin count: the smaller of the Freedman-Diaconis
// and Sturges widths, falling back to Sturges when the IQR is zero.
func AutoBins(vals []float64) int {
	n := len(vals)
	if n < 2 {
		return 1
	}
	span := floats.Max(vals) - floats.Min(vals)
	if span == 0 {
		return 1
	}
	width := span / (math.Log2(float64(n)) + 1)
	iqr := analysis.Quantile(vals, 0.75) - analysis.Quantile(vals, 0.25)
	if fd := 2 * iqr / math.Cbrt(float64(n)); fd > 0 && fd < width {
		width = fd
	}
	bins := int(math.Ceil(span / width))
	if bins < 1 {
		return 1
	}
	if bins > maxBins {
		return maxBins
	}
	return bins
}

// KDE is a Gaussian kernel density estimate with Scott's bandwidth.
type KDE struct {
	data []float64
	bw   float64
}

// NewKDE returns nil when the bandwidth would be zero (fewer than two values
// or zero variance).
func NewKDE(vals []float64) *KDE {
	if len(vals) < 2 {
		return nil
	}
	sd := analysis.StdDev(vals)
	bw := sd * math.Pow(float64(len(vals)), -0.2)
	if bw == 0 || math.IsNaN(bw) {
		return nil
	}
	return &KDE{data: vals, bw: bw}
}

// Bandwidth is the kernel standard deviation.
func (k *KDE) Bandwidth() float64 { return k.bw }

// Density evaluates the estimate at x.
func (k *KDE) Density(x float64) float64 {
	var sum float64
	for _, v := range k.data {
		z := (x - v) / k.bw
		sum += math.Exp(-0.5 * z * z)
	}
	return sum / (float64(len(k.data)) * k.bw * math.Sqrt(2*math.Pi))
}

package rebin

import (
	"math"
	"sort"
)

// span maps one output pixel onto the input pixel index space. lo and
// hi are the floor indices of the output pixel's lower and upper
// boundaries, loFrac and hiFrac the fractional parts. A span whose
// boundaries fall outside the input span is not valid.
type span struct {
	lo, hi int
	loFrac float64
	hiFrac float64
	valid  bool
}

// edgePositions maps each query wavelength onto the fractional index
// space of nodes by piecewise-linear interpolation. nodes must be
// strictly increasing. Queries outside [nodes[0], nodes[len-1]] map to
// NaN rather than clamping.
func edgePositions(nodes, queries []float64) []float64 {
	n := len(nodes)
	pos := make([]float64, len(queries))
	for i, q := range queries {
		if math.IsNaN(q) || q < nodes[0] || q > nodes[n-1] {
			pos[i] = math.NaN()
			continue
		}
		k := sort.SearchFloat64s(nodes, q)
		if nodes[k] == q {
			pos[i] = float64(k)
			continue
		}
		pos[i] = float64(k-1) + (q-nodes[k-1])/(nodes[k]-nodes[k-1])
	}

	return pos
}

// buildSpans pairs consecutive boundary positions into per-pixel spans.
// Positions are non-negative, so int truncation is a floor.
func buildSpans(pos []float64) []span {
	spans := make([]span, len(pos)-1)
	for i := range spans {
		lo, hi := pos[i], pos[i+1]
		if math.IsNaN(lo) || math.IsNaN(hi) {
			continue
		}
		ilo, ihi := int(lo), int(hi)
		spans[i] = span{
			lo:     ilo,
			hi:     ihi,
			loFrac: lo - float64(ilo),
			hiFrac: hi - float64(ihi),
			valid:  true,
		}
	}

	return spans
}

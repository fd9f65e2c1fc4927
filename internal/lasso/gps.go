//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lasso

import (
	"math"

	"github.com/e-gun/sparse"
)

// the fitter walks Friedman's generalized path seeking algorithm (https://jerryfriedman.su.domains/ftp/GPSpub.pdf):
// at every step the coordinate with the steepest risk-to-penalty ratio moves by a fixed increment
// dv, so the L1 arc length of the coefficient vector grows linearly and the whole regularization
// path falls out of a single run; early steps correspond to heavy penalization

// sparseRows - a compact row-major copy of the design matrix for the hot loop
type sparseRows struct {
	n, p int
	idx  [][]int
	val  [][]float64
}

func newSparseRows(m *sparse.CSR) *sparseRows {
	n, p := m.Dims()
	sr := &sparseRows{n: n, p: p, idx: make([][]int, n), val: make([][]float64, n)}
	for i := 0; i < n; i++ {
		m.DoRowNonZero(i, func(_ int, j int, v float64) {
			sr.idx[i] = append(sr.idx[i], j)
			sr.val[i] = append(sr.val[i], v)
		})
	}
	return sr
}

// pathRecord - the state of a fit at one recorded step
type pathRecord struct {
	step    int
	penalty float64 // sum of |beta|: grows as the penalty relaxes
	dev     float64 // mean binomial deviance over the eval rows
	nonzero int
}

// snapshot - the coefficients as they stood at one requested step
type snapshot struct {
	step int
	b0   float64
	beta []float64
}

// log(1 + e^u) without overflow
func softplus(u float64) float64 {
	if u > 35 {
		return u
	}
	if u < -35 {
		return 0
	}
	return math.Log1p(math.Exp(u))
}

func sigmoid(u float64) float64 {
	if u > 35 {
		return 1
	}
	if u < -35 {
		return 0
	}
	return 1 / (1 + math.Exp(-u))
}

func sgn(a float64) float64 {
	switch {
	case a < 0:
		return -1
	case a > 0:
		return +1
	}
	return 0
}

// meanDeviance - 2 * mean(log(1 + exp(-y*z))) over the masked rows
func meanDeviance(z []float64, y []float64, mask []bool) float64 {
	var dev float64
	var ct int
	for i := range z {
		if !mask[i] {
			continue
		}
		dev += 2 * softplus(-y[i]*z[i])
		ct++
	}
	if ct == 0 {
		return 0
	}
	return dev / float64(ct)
}

// baseRateIntercept - the log odds of the positive class among the masked rows, lightly smoothed
func baseRateIntercept(y []float64, mask []bool) float64 {
	var pos, neg float64
	for i := range y {
		if !mask[i] {
			continue
		}
		if y[i] > 0 {
			pos++
		} else {
			neg++
		}
	}
	return math.Log((pos + 0.5) / (neg + 0.5))
}

// runGPS - fit an L1-penalized logistic model on the train rows
//
// the intercept is never penalized: it starts at the training base rate and takes one Newton
// step per iteration while the penalized coordinates creep along the path. deviance over the
// eval rows is recorded every opt.RecordEvery steps; coefficients are captured at the steps
// listed in snapAt

func runGPS(rows *sparseRows, y []float64, train []bool, eval []bool, opt FitOptions, snapAt []int) ([]pathRecord, []snapshot) {
	n, p := rows.n, rows.p

	beta := make([]float64, p)
	b0 := baseRateIntercept(y, train)

	z := make([]float64, n)
	g := make([]float64, p)

	wantSnap := make(map[int]bool, len(snapAt))
	for _, s := range snapAt {
		wantSnap[s] = true
	}

	var records []pathRecord
	var snaps []snapshot

	nz := func() int {
		ct := 0
		for j := range beta {
			if beta[j] != 0 {
				ct++
			}
		}
		return ct
	}

	l1 := func() float64 {
		var s float64
		for j := range beta {
			s += math.Abs(beta[j])
		}
		return s
	}

	for step := 1; step <= opt.MaxSteps; step++ {
		// z = b0 + x.beta for every row; eval rows need it for the deviance record
		for i := 0; i < n; i++ {
			f := b0
			ix, vx := rows.idx[i], rows.val[i]
			for k := range ix {
				f += vx[k] * beta[ix[k]]
			}
			z[i] = f
		}

		// one Newton step on the unpenalized intercept
		var g0, h0 float64
		for i := 0; i < n; i++ {
			if !train[i] {
				continue
			}
			mu := sigmoid(z[i])
			t := 0.0
			if y[i] > 0 {
				t = 1.0
			}
			g0 += mu - t
			h0 += mu * (1 - mu)
		}
		if h0 > 1e-10 {
			d := g0 / h0
			b0 -= d
			for i := 0; i < n; i++ {
				z[i] -= d
			}
		}

		// risk gradient: g[j] = sum_i -eyf_i * x_ij with eyf = y * sigmoid(-y*z)
		for j := range g {
			g[j] = 0
		}
		for i := 0; i < n; i++ {
			if !train[i] {
				continue
			}
			eyf := y[i] * sigmoid(-y[i]*z[i])
			ix, vx := rows.idx[i], rows.val[i]
			for k := range ix {
				g[ix[k]] += -eyf * vx[k]
			}
		}

		// the lasso penalty derivative is 1 everywhere, so the ratio is just -g[j];
		// a coordinate whose coefficient opposes its own gradient gets corrected first
		jstar := -1
		best := -math.MaxFloat64
		jcorr := -1
		bestcorr := -math.MaxFloat64
		for j := 0; j < p; j++ {
			li := -g[j]
			abs := math.Abs(li)
			if abs > best {
				best = abs
				jstar = j
			}
			if li*beta[j] < 0 && abs > bestcorr {
				bestcorr = abs
				jcorr = j
			}
		}
		if jcorr >= 0 {
			jstar = jcorr
		}

		beta[jstar] += opt.StepSize * sgn(-g[jstar])

		if step%opt.RecordEvery == 0 || step == opt.MaxSteps {
			// refresh z so the record reflects the step just taken
			for i := 0; i < n; i++ {
				f := b0
				ix, vx := rows.idx[i], rows.val[i]
				for k := range ix {
					f += vx[k] * beta[ix[k]]
				}
				z[i] = f
			}
			records = append(records, pathRecord{
				step:    step,
				penalty: l1(),
				dev:     meanDeviance(z, y, eval),
				nonzero: nz(),
			})
		}

		if wantSnap[step] {
			bcopy := make([]float64, p)
			copy(bcopy, beta)
			snaps = append(snaps, snapshot{step: step, b0: b0, beta: bcopy})
		}
	}

	return records, snaps
}

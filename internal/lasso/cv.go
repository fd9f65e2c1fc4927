//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lasso

import (
	"math"
	"math/rand"
	"sync"
)

// foldAssignments - shuffle the rows with a fixed seed and deal them round-robin into k folds
func foldAssignments(n int, k int, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)
	foldid := make([]int, n)
	for i, p := range perm {
		foldid[p] = i % k
	}
	return foldid
}

// cvCurve - pooled out-of-fold deviance along the path
type cvCurve struct {
	steps  []int
	mean   []float64
	stderr []float64
}

// crossValidate - one path per fold, each fold fit with its own rows held out; the folds run
// concurrently but land in their own slots, so the pooled curve is deterministic
func crossValidate(rows *sparseRows, y []float64, foldid []int, k int, opt FitOptions) cvCurve {
	curves := make([][]pathRecord, k)

	var wg sync.WaitGroup
	sem := make(chan struct{}, opt.Workers)
	for f := 0; f < k; f++ {
		wg.Add(1)
		go func(f int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			train := make([]bool, rows.n)
			eval := make([]bool, rows.n)
			for i := range foldid {
				if foldid[i] == f {
					eval[i] = true
				} else {
					train[i] = true
				}
			}
			recs, _ := runGPS(rows, y, train, eval, opt, nil)
			curves[f] = recs
		}(f)
	}
	wg.Wait()

	npts := len(curves[0])
	cc := cvCurve{
		steps:  make([]int, npts),
		mean:   make([]float64, npts),
		stderr: make([]float64, npts),
	}

	for c := 0; c < npts; c++ {
		var m float64
		for f := 0; f < k; f++ {
			m += curves[f][c].dev
		}
		m /= float64(k)

		var sq float64
		for f := 0; f < k; f++ {
			d := curves[f][c].dev - m
			sq += d * d
		}
		sd := 0.0
		if k > 1 {
			sd = math.Sqrt(sq / float64(k-1))
		}

		cc.steps[c] = curves[0][c].step
		cc.mean[c] = m
		cc.stderr[c] = sd / math.Sqrt(float64(k))
	}
	return cc
}

// chooseOnCurve - the minimum of the pooled curve, and the most penalized point whose mean
// deviance sits within one standard error of that minimum
func chooseOnCurve(cc cvCurve) (imin int, i1se int) {
	imin = 0
	for c := range cc.mean {
		if cc.mean[c] < cc.mean[imin] {
			imin = c
		}
	}

	i1se = imin
	limit := cc.mean[imin] + cc.stderr[imin]
	for c := 0; c <= imin; c++ {
		if cc.mean[c] <= limit {
			i1se = c
			break
		}
	}
	return imin, i1se
}

//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package web serves the run reports: an index page, a per-run report assembled from
// tables and chart fragments, the chart files themselves, and the raw JSON artifacts.
package web

import (
	"sort"
	"sync"
	"time"

	"github.com/e-gun/KritesGoClassifier/internal/str"
)

// ReportBundle - everything the server needs to show one classification run
type ReportBundle struct {
	Report    *str.EvalReport
	Model     *str.FittedModel
	Fragments []NamedFragment   // pre-rendered chart html+js, in display order
	ChartFile map[string]string // chart filename -> path on disk; doubles as the serving whitelist
	When      time.Time
}

// NamedFragment - a chart fragment plus the heading it gets on the report page
type NamedFragment struct {
	Name string
	HTML string
}

// MakeRunVault - called only once; yields the AllRuns vault
func MakeRunVault() RunVault {
	return RunVault{
		RunMap: make(map[string]ReportBundle),
		mutex:  sync.RWMutex{},
	}
}

// RunVault - there should be only one of these; and it contains all the registered runs
type RunVault struct {
	RunMap map[string]ReportBundle
	mutex  sync.RWMutex
}

// AllRuns - the vault the report routes read from
var AllRuns = MakeRunVault()

// InsertRB - add a run to the vault
func (rv *RunVault) InsertRB(rb ReportBundle) {
	rv.mutex.Lock()
	defer rv.mutex.Unlock()
	rv.RunMap[rb.Report.RunID] = rb
}

// GetRB - fetch a run; the second value reports whether it was there at all
func (rv *RunVault) GetRB(id string) (ReportBundle, bool) {
	rv.mutex.RLock()
	defer rv.mutex.RUnlock()
	rb, ok := rv.RunMap[id]
	return rb, ok
}

// DeleteRB - drop a run from the vault
func (rv *RunVault) DeleteRB(id string) {
	rv.mutex.Lock()
	defer rv.mutex.Unlock()
	delete(rv.RunMap, id)
}

// IDs - every registered run id, newest first
func (rv *RunVault) IDs() []string {
	rv.mutex.RLock()
	defer rv.mutex.RUnlock()
	ids := make([]string, 0, len(rv.RunMap))
	for id := range rv.RunMap {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return rv.RunMap[ids[i]].When.After(rv.RunMap[ids[j]].When)
	})
	return ids
}

// Count - how many runs are registered
func (rv *RunVault) Count() int {
	rv.mutex.RLock()
	defer rv.mutex.RUnlock()
	return len(rv.RunMap)
}

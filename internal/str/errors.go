//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

import (
	"fmt"
	"strings"
)

// the pipeline's failures are typed so a stage can be tested for the failure it promises;
// nothing is retried and nothing is silently defaulted: main sends all of these to Msg.EC()

// DataResolutionError - a requested title matched no known work, or more than one
type DataResolutionError struct {
	Title      string
	Candidates []string
}

func (e *DataResolutionError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("cannot resolve '%s': no known work matches", e.Title)
	}
	return fmt.Sprintf("cannot resolve '%s' to exactly one known work: matches [%s]", e.Title,
		strings.Join(e.Candidates, ", "))
}

// AlignmentError - ids, labels, and matrix rows stopped agreeing at a join point
type AlignmentError struct {
	Where  string
	Want   int
	Got    int
	Detail string
}

func (e *AlignmentError) Error() string {
	m := fmt.Sprintf("%s: alignment failure: want %d, got %d", e.Where, e.Want, e.Got)
	if e.Detail != "" {
		m += ": " + e.Detail
	}
	return m
}

// DegenerateClassError - a split holds only one class; fitting and AUC are meaningless
type DegenerateClassError struct {
	Where string
	Label string
}

func (e *DegenerateClassError) Error() string {
	return fmt.Sprintf("%s: only one class present ('%s')", e.Where, e.Label)
}

// EmptyVocabularyError - the frequency filter removed every word
type EmptyVocabularyError struct {
	Threshold int
	PreFilter int
}

func (e *EmptyVocabularyError) Error() string {
	return fmt.Sprintf("frequency filter at >%d removed all %d words: no vocabulary left",
		e.Threshold, e.PreFilter)
}

package usecase

import "github.com/manifoldfrs/doc-classifier/internal/core/domain"

// Thresholds are the two confidence cut-offs driving the decision kernel.
type Thresholds struct {
	// EarlyExit stops the pipeline once a stage scores at or above it.
	EarlyExit float64
	// Assignment is the minimum confidence required to keep a label;
	// below it the document is labeled unsure.
	Assignment float64
}

// Aggregation is the combined outcome for the stage results seen so far.
type Aggregation struct {
	Label      string
	Confidence float64
	Final      bool
}

// Aggregate is the decision kernel of the pipeline. It is a pure function
// over the ordered stage results executed so far: invoking it again on the
// same list always yields the same answer.
//
// The most recently executed stage with a non-nil label is authoritative,
// since later stages see strictly richer signal. The run is final when that
// stage reaches the early-exit threshold or when complete is true (all
// applicable stages executed). On completion, if even the best observed
// confidence (ties resolved toward the later stage) stays below the
// assignment threshold, the label collapses to unsure while the confidence
// field keeps reporting that best value.
func Aggregate(results []domain.StageResult, complete bool, t Thresholds) Aggregation {
	var last, best *domain.StageResult
	for i := range results {
		r := &results[i]
		if !r.Labeled() {
			continue
		}
		last = r
		if best == nil || *r.Confidence >= *best.Confidence {
			best = r
		}
	}

	if last != nil && *last.Confidence >= t.EarlyExit {
		return Aggregation{Label: *last.Label, Confidence: *last.Confidence, Final: true}
	}
	if !complete {
		if last == nil {
			return Aggregation{}
		}
		return Aggregation{Label: *last.Label, Confidence: *last.Confidence}
	}

	if last == nil {
		return Aggregation{Label: domain.LabelUnsure, Confidence: 0, Final: true}
	}
	if *best.Confidence < t.Assignment {
		return Aggregation{Label: domain.LabelUnsure, Confidence: *best.Confidence, Final: true}
	}
	return Aggregation{Label: *last.Label, Confidence: *last.Confidence, Final: true}
}

package usecase

import "github.com/manifoldfrs/doc-classifier/internal/core/domain"

// Observer receives pipeline execution events. The metrics layer implements
// it; use cases stay free of any instrumentation dependency.
type Observer interface {
	DocumentObserved(status string, seconds float64)
	StageObserved(stage domain.StageName, outcome string, seconds float64)
	EarlyExit(stage domain.StageName)
	BatchObserved(mode string, size int)
	JobStarted()
	JobFinished()
}

// NoopObserver discards every event.
type NoopObserver struct{}

func (NoopObserver) DocumentObserved(string, float64)                  {}
func (NoopObserver) StageObserved(domain.StageName, string, float64)   {}
func (NoopObserver) EarlyExit(domain.StageName)                        {}
func (NoopObserver) BatchObserved(string, int)                         {}
func (NoopObserver) JobStarted()                                       {}
func (NoopObserver) JobFinished()                                      {}

package runner

import "github.com/yaklabco/mdcheck/pkg/finding"

// Observer is notified as a run progresses. Events for one file arrive in
// order: FileStarted, then either FileFailed or RulesDone followed by
// AdvisoryStarted/AdvisoryDone or AdvisorySkipped.
type Observer interface {
	// DirectoryScanned reports how many Markdown files a directory holds.
	DirectoryScanned(dir string, files int)
	FileStarted(path string)
	FileFailed(path string, err error)
	RulesDone(path string, report *finding.Report)
	AdvisoryStarted(path string)
	AdvisoryDone(path string, report *finding.Report)
	AdvisorySkipped(path string)
}

// NopObserver ignores every event.
type NopObserver struct{}

var _ Observer = NopObserver{}

func (NopObserver) DirectoryScanned(string, int) {}
func (NopObserver) FileStarted(string) {}
func (NopObserver) FileFailed(string, error) {}
func (NopObserver) RulesDone(string, *finding.Report) {}
func (NopObserver) AdvisoryStarted(string) {}
func (NopObserver) AdvisoryDone(string, *finding.Report) {}
func (NopObserver) AdvisorySkipped(string) {}

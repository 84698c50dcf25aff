package game

import (
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ProgressInterval is the number of frames between progress lines.
const ProgressInterval = 60

// Progress is a snapshot of a run's timing.
type Progress struct {
	// Completed counts frames finished so far, including the current one
	Completed int
	Total     int

	Elapsed   time.Duration
	Remaining time.Duration

	// Finish is the estimated wall-clock end of the run
	Finish time.Time

	// Percent is Completed/Total in percent
	Percent float64
}

// ProgressReporter logs timing statistics every ProgressInterval frames.
// The estimate assumes every frame costs the same as the average so far.
type ProgressReporter struct {
	Total int

	// Run is the 1-based ordinal of the current run; Runs is how many runs
	// there are in total. The ordinal is only logged when Runs > 1.
	Run  int
	Runs int

	logger  hclog.Logger
	printer *message.Printer
	now     func() time.Time
	start   time.Time
}

// NewProgressReporter creates a reporter for a run of total frames.
func NewProgressReporter(total, run, runs int, logger hclog.Logger) *ProgressReporter {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &ProgressReporter{
		Total:   total,
		Run:     run,
		Runs:    runs,
		logger:  logger,
		printer: message.NewPrinter(language.English),
		now:     time.Now,
	}
}

// Start records the run's start time.
func (pr *ProgressReporter) Start() {
	pr.start = pr.now()
}

// Snapshot computes the statistics after frameIndex has been written.
func (pr *ProgressReporter) Snapshot(frameIndex int) Progress {
	now := pr.now()
	completed := frameIndex + 1
	elapsed := now.Sub(pr.start)

	perFrame := elapsed / time.Duration(completed)
	estimated := perFrame * time.Duration(pr.Total)

	return Progress{
		Completed: completed,
		Total:     pr.Total,
		Elapsed:   elapsed,
		Remaining: estimated - elapsed,
		Finish:    pr.start.Add(estimated),
		Percent:   float64(completed) / float64(pr.Total) * 100,
	}
}

// Observe logs a progress line when frameIndex falls on the interval.
// Returns true if a line was logged.
func (pr *ProgressReporter) Observe(frameIndex int) bool {
	if frameIndex%ProgressInterval != 0 {
		return false
	}

	p := pr.Snapshot(frameIndex)
	args := make([]interface{}, 0, 12)
	if pr.Runs > 1 {
		args = append(args, "video", pr.printer.Sprintf("%d/%d", pr.Run, pr.Runs))
	}
	args = append(args,
		"frame", pr.printer.Sprintf("%d/%d", p.Completed, p.Total),
		"elapsed", pr.printer.Sprintf("%.2fs", p.Elapsed.Seconds()),
		"remaining", pr.printer.Sprintf("%.2fs", p.Remaining.Seconds()),
		"finish", p.Finish.Local().Format(time.TimeOnly),
		"completion", pr.printer.Sprintf("%.2f%%", p.Percent),
	)
	pr.logger.Info("render progress", args...)
	return true
}

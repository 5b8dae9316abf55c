package renderer

import "github.com/df07/go-weekend-raytracer/pkg/core"

// progressStep is the completion fraction between progress messages
const progressStep = 0.1

// progressReporter logs completion percentages as rows finish
type progressReporter struct {
	logger    core.Logger
	totalRows int
	doneRows  int
	nextLog   float64
}

func newProgressReporter(logger core.Logger, totalRows int) *progressReporter {
	return &progressReporter{logger: logger, totalRows: totalRows, nextLog: progressStep}
}

func (p *progressReporter) rowDone() {
	p.doneRows++
	fraction := float64(p.doneRows) / float64(p.totalRows)
	if fraction >= p.nextLog || p.doneRows == p.totalRows {
		p.logger.Printf("%.2f %%\n", fraction*100)
		for p.nextLog <= fraction {
			p.nextLog += progressStep
		}
	}
}

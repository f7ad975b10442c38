// Package statdump merges statistics dumps: it loads two dumps, folds records sharing an id,
// orders the result by cost and stores it as a new dump.
package statdump

import (
	"time"

	"github.com/cqkv/statdump/model"
	"github.com/cqkv/statdump/report"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Pipeline runs load, aggregate, sort, report and store, in that order, on the caller's
// goroutine. It is not safe to run two pipelines against the same destination.
type Pipeline struct {
	options *options
}

// Summary describes a successful run.
type Summary struct {
	LoadedA int
	LoadedB int
	Merged  int
}

func NewPipeline(opts ...Option) *Pipeline {
	return &Pipeline{options: newOptions(opts)}
}

// Run merges the dumps at srcA and srcB into dst. Any failure stops the run before dst is
// written and is returned as a *StageError.
func (p *Pipeline) Run(srcA, srcB, dst string) (*Summary, error) {
	o := p.options
	start := time.Now()

	for _, path := range []string{srcA, srcB, dst} {
		if path == "" {
			return nil, &StageError{Stage: StageArgs, Err: model.Wrap(ErrInvalidArgument, errors.New("empty path"))}
		}
	}

	a, err := o.loadDump(srcA)
	if err != nil {
		return nil, &StageError{Stage: StageLoad, Path: srcA, Err: err}
	}
	b, err := o.loadDump(srcB)
	if err != nil {
		return nil, &StageError{Stage: StageLoad, Path: srcB, Err: err}
	}

	merged, err := o.aggregate(a, b)
	if err != nil {
		return nil, &StageError{Stage: StageAggregate, Err: err}
	}
	o.logger.WithFields(logrus.Fields{
		"a":      len(a),
		"b":      len(b),
		"merged": len(merged),
	}).Debug("dumps aggregated")

	SortByCost(merged)

	if o.reportWriter != nil && o.top > 0 {
		if err = report.PrintTop(o.reportWriter, merged, o.top); err != nil {
			return nil, &StageError{Stage: StageReport, Err: err}
		}
	}

	if err = o.storeDump(dst, merged); err != nil {
		return nil, &StageError{Stage: StageStore, Path: dst, Err: err}
	}

	o.logger.WithFields(logrus.Fields{
		"dst":     dst,
		"records": len(merged),
		"took":    time.Since(start),
	}).Info("dump merged")

	return &Summary{LoadedA: len(a), LoadedB: len(b), Merged: len(merged)}, nil
}

package app

import (
	"context"
	"errors"

	"qc-station/internal/domain/port"
)

// MultiReporter рассылает результаты всем подключённым получателям
type MultiReporter []port.VerdictReporter

func (m MultiReporter) ReportVerdict(ctx context.Context, report port.CycleReport) error {
	var errs []error
	for _, r := range m {
		if err := r.ReportVerdict(ctx, report); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m MultiReporter) ReportFailure(ctx context.Context, cycleID string, err error) error {
	var errs []error
	for _, r := range m {
		if rerr := r.ReportFailure(ctx, cycleID, err); rerr != nil {
			errs = append(errs, rerr)
		}
	}
	return errors.Join(errs...)
}

var _ port.VerdictReporter = MultiReporter(nil)

package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/recruit-ops/internal/domain"
	"github.com/honeycarbs/recruit-ops/internal/export"
)

type fakeSource struct {
	granularity domain.Granularity
	periods     []domain.AggregatedPeriod
	err         error
}

func (f *fakeSource) Aggregate(_ context.Context, g domain.Granularity) ([]domain.AggregatedPeriod, error) {
	f.granularity = g
	return f.periods, f.err
}

type fakeExporter struct {
	target  export.Target
	mode    export.Mode
	periods []domain.AggregatedPeriod
}

func (f *fakeExporter) ExportPeriods(_ context.Context, target export.Target, periods []domain.AggregatedPeriod, mode export.Mode) (export.Result, error) {
	f.target, f.periods, f.mode = target, periods, mode
	return export.Result{SpreadsheetID: target.SpreadsheetID, Tab: target.Tab, WrittenRows: len(periods)}, nil
}

func TestRunOnce(t *testing.T) {
	src := &fakeSource{periods: []domain.AggregatedPeriod{{Key: "2024-05-W1"}, {Key: "2024-05-W2"}}}
	exp := &fakeExporter{}
	target := export.Target{SpreadsheetID: "sheet", Tab: "Metrics"}

	s := New("@daily", src, exp, target, nil)
	res, err := s.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.GranularityWeekly, src.granularity)
	assert.Equal(t, target, exp.target)
	assert.Equal(t, export.ModeReplace, exp.mode)
	assert.Len(t, exp.periods, 2)
	assert.Equal(t, 2, res.WrittenRows)
}

func TestRunOnce_SourceError(t *testing.T) {
	exp := &fakeExporter{}
	s := New("@daily", &fakeSource{err: errors.New("db down")}, exp, export.Target{}, nil)

	_, err := s.RunOnce(context.Background())
	assert.ErrorContains(t, err, "db down")
	assert.Nil(t, exp.periods)
}

func TestStart_InvalidSpec(t *testing.T) {
	s := New("every tuesday", &fakeSource{}, &fakeExporter{}, export.Target{}, nil)
	assert.Error(t, s.Start(context.Background()))
}

func TestStartAndShutdown(t *testing.T) {
	s := New("@hourly", &fakeSource{}, &fakeExporter{}, export.Target{}, nil)
	require.NoError(t, s.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Shutdown(ctx))
}

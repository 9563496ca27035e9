package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"StockPulse/internal/analysis"
	"StockPulse/internal/collector"
	"StockPulse/internal/model"
	"StockPulse/internal/notifier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []*notifier.Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg *notifier.Message) error {
	r.sent = append(r.sent, msg)
	return r.err
}

func newTestScheduler(f collector.Fetcher, sender notifier.Sender, symbols ...string) *Scheduler {
	col := collector.NewCollector(f, 90, analysis.Options{RangeDays: 20})
	s := NewScheduler(context.Background(), col, sender, nil, symbols, "Stock Assistant", time.UTC)
	s.Now = func() time.Time { return time.Date(2026, 10, 16, 21, 30, 0, 0, time.UTC) }
	return s
}

func TestRunOnce_DropsShortHistory(t *testing.T) {
	f := &collector.MockFetcher{Bars: map[string][]model.Bar{
		"LONG":  collector.GenerateMockBars(100, 60),
		"SHORT": collector.GenerateMockBars(100, 10),
	}}
	sender := &recordingSender{}
	s := newTestScheduler(f, sender, "LONG", "SHORT")

	out, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "LONG", out.Results[0].Symbol)
	assert.Equal(t, []string{"SHORT"}, out.Skipped)
	require.Len(t, sender.sent, 1)
	assert.Len(t, sender.sent[0].Embeds, 1)
	assert.NotEmpty(t, out.RunID)
}

func TestRunOnce_KeepsOrderAndContinuesAfterFailure(t *testing.T) {
	f := &collector.MockFetcher{
		Price: 50,
		Errs:  map[string]error{"MSFT": errors.New("timeout")},
	}
	sender := &recordingSender{}
	s := newTestScheduler(f, sender, "AAPL", "MSFT", "NVDA")

	out, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT", "NVDA"}, f.Calls)
	require.Len(t, out.Results, 2)
	assert.Equal(t, "AAPL", out.Results[0].Symbol)
	assert.Equal(t, "NVDA", out.Results[1].Symbol)
}

func TestRunOnce_NoResultsSkipsDelivery(t *testing.T) {
	f := &collector.MockFetcher{Errs: map[string]error{"A": errors.New("x"), "B": errors.New("y")}}
	sender := &recordingSender{}
	s := newTestScheduler(f, sender, "A", "B")

	out, err := s.RunOnce(context.Background())
	assert.ErrorIs(t, err, ErrNoResults)
	assert.Empty(t, sender.sent)
	assert.Nil(t, out.Message)
}

func TestRunOnce_DeliveryFailure(t *testing.T) {
	f := &collector.MockFetcher{Price: 10}
	sender := &recordingSender{err: &notifier.DeliveryError{StatusCode: 500, Body: "down"}}
	s := newTestScheduler(f, sender, "AAPL")

	out, err := s.RunOnce(context.Background())
	var de *notifier.DeliveryError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 500, de.StatusCode)
	assert.Len(t, sender.sent, 1, "sent exactly once")
	assert.Len(t, out.Results, 1)
}

func TestRunAndLog_NeverPanicsOnFailures(t *testing.T) {
	f := &collector.MockFetcher{Errs: map[string]error{"A": errors.New("x")}}
	s := newTestScheduler(f, &recordingSender{}, "A")
	out := s.RunAndLog(context.Background())
	require.NotNil(t, out)
	assert.Equal(t, []string{"A"}, out.Skipped)
}

func TestRegister(t *testing.T) {
	s := newTestScheduler(&collector.MockFetcher{}, &recordingSender{})
	assert.NoError(t, s.Register("0 30 21 * * 1-5"))
	assert.Error(t, s.Register("not a cron"))
	assert.Len(t, s.Cron.Entries(), 1)
}

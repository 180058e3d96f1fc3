package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type staticStats entity.Stats

func (s staticStats) Stats(context.Context) entity.Stats {
	return entity.Stats(s)
}

func TestStatsReporter_report(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := NewStatsReporter(staticStats{TotalURLs: 4, ActiveURLs: 3, TotalClicks: 9}, zap.New(core))

	r.report()

	entries := logs.FilterMessage("URL statistics").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.EqualValues(t, 4, fields["totalUrls"])
	assert.EqualValues(t, 3, fields["activeUrls"])
	assert.EqualValues(t, 9, fields["totalClicks"])
}

func TestStatsReporter_Start(t *testing.T) {
	t.Run("invalid schedule", func(t *testing.T) {
		r := NewStatsReporter(staticStats{}, zap.NewNop())

		assert.Error(t, r.Start("every now and then"))
	})

	t.Run("start and stop", func(t *testing.T) {
		r := NewStatsReporter(staticStats{}, zap.NewNop())

		require.NoError(t, r.Start("@every 1h"))
		r.Stop(context.Background())
	})
}

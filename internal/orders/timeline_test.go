package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumina_back_end/internal/models"
)

func orderWithStatus(s models.OrderStatus) *models.Order {
	return &models.Order{
		Status:    s,
		CreatedAt: time.Date(2025, 1, 20, 10, 30, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 1, 23, 11, 0, 0, 0, time.UTC),
	}
}

func completedCount(steps []models.TimelineStep) int {
	n := 0
	for _, s := range steps {
		if s.Completed {
			n++
		}
	}
	return n
}

func TestTimeline_PendingShowsOnlyPlaced(t *testing.T) {
	steps := Timeline(orderWithStatus(models.StatusPending))
	require.Len(t, steps, 6)
	assert.Equal(t, 1, completedCount(steps))
	assert.True(t, steps[0].Completed)
	assert.True(t, steps[0].Current)
	assert.NotEmpty(t, steps[0].Timestamp)
}

func TestTimeline_PaidMatchesConfirmed(t *testing.T) {
	paid := Timeline(orderWithStatus(models.StatusPaid))
	confirmed := Timeline(orderWithStatus(models.StatusConfirmed))
	assert.Equal(t, completedCount(confirmed), completedCount(paid))
	assert.Equal(t, 2, completedCount(paid))
}

func TestTimeline_InTransit(t *testing.T) {
	steps := Timeline(orderWithStatus(models.StatusInTransit))
	assert.Equal(t, 5, completedCount(steps))
	assert.True(t, steps[4].Current)
	assert.False(t, steps[5].Completed)
}

func TestTimeline_DeliveredHasNoCurrentStep(t *testing.T) {
	steps := Timeline(orderWithStatus(models.StatusDelivered))
	assert.Equal(t, 6, completedCount(steps))
	for _, s := range steps {
		assert.False(t, s.Current)
	}
}

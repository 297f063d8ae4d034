package orders

import (
	"time"

	"lumina_back_end/internal/models"
)

var milestones = []string{
	"Order Placed",
	"Order Confirmed",
	"Packed & Ready",
	"Shipped",
	"In Transit",
	"Delivered",
}

// milestoneRank maps a status to how many milestones are completed. Payment
// is not a physical milestone: a paid order shows the same progress as a
// confirmed one.
func milestoneRank(status models.OrderStatus) int {
	switch status {
	case models.StatusPending:
		return 1
	case models.StatusConfirmed, models.StatusPaid:
		return 2
	case models.StatusPacked:
		return 3
	case models.StatusShipped:
		return 4
	case models.StatusInTransit:
		return 5
	case models.StatusDelivered:
		return 6
	case models.StatusCancelled:
		return 1
	default:
		return 1
	}
}

// Timeline derives the fulfillment milestones for the track-order page. Only
// the placed and most recent milestones have known timestamps; intermediate
// transitions are not stored.
func Timeline(o *models.Order) []models.TimelineStep {
	rank := milestoneRank(o.Status)

	steps := make([]models.TimelineStep, 0, len(milestones))
	for i, name := range milestones {
		step := models.TimelineStep{
			Status:    name,
			Completed: i < rank,
		}
		if i == 0 {
			step.Timestamp = formatTS(o.CreatedAt)
		}
		if i == rank-1 {
			step.Current = rank < len(milestones)
			if i > 0 {
				step.Timestamp = formatTS(o.UpdatedAt)
			}
		}
		steps = append(steps, step)
	}
	return steps
}

func formatTS(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006 3:04 PM")
}

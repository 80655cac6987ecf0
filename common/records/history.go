package records

import (
	"github.com/jlexm/turtle-tracker-svc/common"
	"github.com/jlexm/turtle-tracker-svc/common/models"
	"sort"
	"time"
)

// HistoryView is one history entry prepared for display
type HistoryView struct {
	Date    *time.Time             `json:"date"`
	Changes map[string]interface{} `json:"changes"`
	// Display renders the changes for people, the image marker "Not Updated" reads "No Change"
	Display map[string]interface{} `json:"display"`
	Latest  bool                   `json:"latest"`
}

// OrderHistory returns the entries most recent first, the first one flagged as latest.
// Entries with the same date keep the later appended one first and entries without a date come last.
func OrderHistory(history []models.HistoryEntry) []HistoryView {
	order := make([]int, len(history))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		left, right := history[order[a]].Date, history[order[b]].Date
		switch {
		case left == nil && right == nil:
			return order[a] > order[b]
		case left == nil:
			return false
		case right == nil:
			return true
		case !left.Equal(*right):
			return left.After(*right)
		default:
			return order[a] > order[b]
		}
	})

	views := make([]HistoryView, 0, len(history))
	for position, index := range order {
		entry := history[index]
		views = append(views, HistoryView{
			Date:    entry.Date,
			Changes: entry.Changes,
			Display: display(entry.Changes),
			Latest:  position == 0,
		})
	}

	return views
}

func display(changes map[string]interface{}) map[string]interface{} {
	rendered := make(map[string]interface{}, len(changes))
	for field, value := range changes {
		if field == models.FieldImage && value == common.ImageNotUpdated {
			value = common.NoChange
		}
		rendered[field] = value
	}

	return rendered
}

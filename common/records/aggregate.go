package records

import (
	"github.com/jlexm/turtle-tracker-svc/common"
	"github.com/jlexm/turtle-tracker-svc/common/models"
)

// DateCount is the number of records rescued on Date
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Sample is one (length, weight) point of a record
type Sample struct {
	ID     string  `json:"id"`
	Length float64 `json:"length"`
	Weight float64 `json:"weight"`
}

// GroupByRescueDate counts records per rescue day ("2006-01-02", UTC).
// Days appear in the order of their first occurrence in turtles. Records without a rescue date are skipped.
func GroupByRescueDate(turtles []models.Turtle) []DateCount {
	counts := make([]DateCount, 0)
	positions := make(map[string]int)
	for _, turtle := range turtles {
		if turtle.DateRescued == nil {
			continue
		}
		day := turtle.DateRescued.UTC().Format(common.DateFormat)
		if position, ok := positions[day]; ok {
			counts[position].Count++

			continue
		}
		positions[day] = len(counts)
		counts = append(counts, DateCount{Date: day, Count: 1})
	}

	return counts
}

// PairLengthWeight returns one sample per record in input order.
// Records missing either measurement are skipped, the sample id keeps the link back to the record.
func PairLengthWeight(turtles []models.Turtle) []Sample {
	samples := make([]Sample, 0, len(turtles))
	for _, turtle := range turtles {
		if turtle.Length == nil || turtle.Weight == nil {
			continue
		}
		samples = append(samples, Sample{ID: turtle.ID, Length: *turtle.Length, Weight: *turtle.Weight})
	}

	return samples
}

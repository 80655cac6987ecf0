package records

import (
	"github.com/jlexm/turtle-tracker-svc/common"
	"github.com/jlexm/turtle-tracker-svc/common/models"
	"time"
)

// ApplyChanges computes the next state of prev for one save made at `at`.
// Supplied fields overwrite prev, a non-empty newImageURL replaces the image URL and an empty one
// carries the previous URL forward. The returned entry, already appended to the new state's
// history, lists exactly the supplied fields plus the image marker. prev is not modified.
func ApplyChanges(prev models.Turtle, changes models.TurtleChanges,
	newImageURL string, at time.Time) (models.Turtle, models.HistoryEntry) {
	next := prev
	if changes.Notes != nil {
		next.Notes = *changes.Notes
	}
	if changes.Location != nil {
		next.Location = *changes.Location
	}
	if changes.Length != nil {
		length := *changes.Length
		next.Length = &length
	}
	if changes.Weight != nil {
		weight := *changes.Weight
		next.Weight = &weight
	}
	if changes.TurtleType != nil {
		next.TurtleType = *changes.TurtleType
	}

	entryChanges := changes.Submitted()
	if newImageURL != "" {
		next.ImageURL = newImageURL
		entryChanges[models.FieldImage] = common.ImageUpdated
	} else {
		entryChanges[models.FieldImage] = common.ImageNotUpdated
	}

	date := at
	entry := models.HistoryEntry{Date: &date, Changes: entryChanges}
	next.UpdateDate = &date
	next.History = make([]models.HistoryEntry, 0, len(prev.History)+1)
	next.History = append(next.History, prev.History...)
	next.History = append(next.History, entry)
	next.ETag = ""

	return next, entry
}

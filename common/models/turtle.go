package models

import (
	"time"
)

// Turtle is one rescued turtle as stored in the turtles collection.
// The document id is not part of the stored fields; it is injected as "id" on read.
//
//nolint:lll
type Turtle struct {
	ID          string         `json:"id" firestore:"-" structs:"id"`
	ImageURL    string         `json:"imageUrl" firestore:"imageUrl" structs:"imageUrl"`
	DateRescued *time.Time     `json:"dateRescued" firestore:"dateRescued" structs:"dateRescued,omitnested"`
	Length      *float64       `json:"length,omitempty" validate:"omitempty,gt=0" firestore:"length,omitempty" structs:"length"`
	Weight      *float64       `json:"weight,omitempty" validate:"omitempty,gt=0" firestore:"weight,omitempty" structs:"weight"`
	Location    string         `json:"location" firestore:"location" structs:"location"`
	Notes       string         `json:"notes" firestore:"notes" structs:"notes"`
	TurtleType  string         `json:"turtleType" validate:"omitempty,turtle_type" firestore:"turtleType" structs:"turtleType"`
	CreatedAt   *time.Time     `json:"createdAt" firestore:"createdAt" structs:"createdAt,omitnested"`
	UpdateDate  *time.Time     `json:"updateDate" firestore:"updateDate" structs:"updateDate,omitnested"`
	History     []HistoryEntry `json:"history" firestore:"history" structs:"history,omitnested"`
	ETag        string         `json:"etag,omitempty" firestore:"-" structs:"-"`
}

// HistoryEntry records what one save submitted. Entries are only ever appended.
type HistoryEntry struct {
	Date    *time.Time             `json:"date" firestore:"date" structs:"date,omitnested"`
	Changes map[string]interface{} `json:"changes" firestore:"changes" structs:"changes"`
}

// LastHistoryEntry returns the most recently appended entry, or nil for an empty history.
func (t Turtle) LastHistoryEntry() *HistoryEntry {
	if len(t.History) == 0 {
		return nil
	}

	return &t.History[len(t.History)-1]
}

const (
	FieldNotes       = "notes"
	FieldDateRescued = "dateRescued"
	FieldCreatedAt   = "createdAt"
	FieldLocation    = "location"
	FieldLength      = "length"
	FieldWeight      = "weight"
	FieldTurtleType  = "turtleType"
	FieldImage       = "image"
	FieldImageURL    = "imageUrl"
	FieldUpdateDate  = "updateDate"
	FieldHistory     = "history"
)

var marineTurtleTypes = []string{
	"Green",
	"Hawksbill",
	"Loggerhead",
	"Olive Ridley",
	"Leatherback",
	"Kemp's Ridley",
	"Flatback",
}

var freshwaterTurtleTypes = []string{
	"Red-eared Slider",
	"Painted Turtle",
	"Snapping Turtle",
	"Box Turtle",
	"Softshell Turtle",
	"Asian Leaf Turtle",
	"Malayan Box Turtle",
	"Sulcata Tortoise",
}

// TurtleTypes returns the closed list of species labels, marine first.
func TurtleTypes() []string {
	types := make([]string, 0, len(marineTurtleTypes)+len(freshwaterTurtleTypes))
	types = append(types, marineTurtleTypes...)

	return append(types, freshwaterTurtleTypes...)
}

// IsTurtleType reports whether label is one of TurtleTypes.
func IsTurtleType(label string) bool {
	for _, t := range TurtleTypes() {
		if t == label {
			return true
		}
	}

	return false
}

// Image is an uploaded picture waiting to be written to the blob store.
type Image struct {
	FileName    string
	ContentType string
	Data        []byte
}

// HasData reports whether an image was actually supplied.
func (i *Image) HasData() bool {
	return i != nil && len(i.Data) > 0
}

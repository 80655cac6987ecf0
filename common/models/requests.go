package models

// TurtleRequest is the body accepted when a turtle record is created.
// Every field except notes is required.
//
//nolint:lll
type TurtleRequest struct {
	DateRescued string   `json:"dateRescued" validate:"required,datetime=2006-01-02" structs:"dateRescued"`
	Length      *float64 `json:"length" validate:"required,gt=0" structs:"length"`
	Weight      *float64 `json:"weight" validate:"required,gt=0" structs:"weight"`
	Location    string   `json:"location" validate:"required,max=256" structs:"location"`
	Notes       string   `json:"notes" validate:"omitempty,max=2000" structs:"notes"`
	TurtleType  string   `json:"turtleType" validate:"required,turtle_type" structs:"turtleType"`
}

// TurtleChanges is a proposed partial update. A nil field was not submitted and is left untouched.
//
//nolint:lll
type TurtleChanges struct {
	Notes      *string  `json:"notes,omitempty" validate:"omitempty,max=2000" structs:"notes"`
	Location   *string  `json:"location,omitempty" validate:"omitempty,min=1,max=256" structs:"location"`
	Length     *float64 `json:"length,omitempty" validate:"omitempty,gt=0" structs:"length"`
	Weight     *float64 `json:"weight,omitempty" validate:"omitempty,gt=0" structs:"weight"`
	TurtleType *string  `json:"turtleType,omitempty" validate:"omitempty,turtle_type" structs:"turtleType"`
}

// Submitted returns the supplied fields keyed by their document field name.
func (c TurtleChanges) Submitted() map[string]interface{} {
	submitted := make(map[string]interface{})
	if c.Notes != nil {
		submitted[FieldNotes] = *c.Notes
	}
	if c.Location != nil {
		submitted[FieldLocation] = *c.Location
	}
	if c.Length != nil {
		submitted[FieldLength] = *c.Length
	}
	if c.Weight != nil {
		submitted[FieldWeight] = *c.Weight
	}
	if c.TurtleType != nil {
		submitted[FieldTurtleType] = *c.TurtleType
	}

	return submitted
}

// Submitted returns the fields of a creation that are recorded in the first history entry.
func (r TurtleRequest) Submitted() map[string]interface{} {
	submitted := map[string]interface{}{
		FieldLocation:   r.Location,
		FieldTurtleType: r.TurtleType,
	}
	if r.Length != nil {
		submitted[FieldLength] = *r.Length
	}
	if r.Weight != nil {
		submitted[FieldWeight] = *r.Weight
	}
	if r.Notes != "" {
		submitted[FieldNotes] = r.Notes
	}

	return submitted
}

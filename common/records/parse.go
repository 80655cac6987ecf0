package records

import (
	"context"
	"fmt"
	"github.com/benpate/rosetta/convert"
	"github.com/jlexm/turtle-tracker-svc/common"
	"github.com/jlexm/turtle-tracker-svc/common/models"
	"github.com/jlexm/turtle-tracker-svc/common/utils"
	"time"
)

// ParseTurtle converts a stored document into a validated turtle record.
// Older documents are normalised first: the image URL kept under "image", the rescue date
// kept as a "2006-01-02" string and measurements kept as numeric strings are all accepted.
func ParseTurtle(ctx context.Context, data map[string]interface{}) (models.Turtle, error) {
	var turtle models.Turtle
	if data == nil {
		return turtle, fmt.Errorf("%w: empty document", ErrInvalidRecord)
	}
	document := make(map[string]interface{}, len(data))
	for key, value := range data {
		document[key] = value
	}
	if legacyURL, ok := document[models.FieldImage].(string); ok {
		if _, present := document[models.FieldImageURL]; !present {
			document[models.FieldImageURL] = legacyURL
		}
	}
	delete(document, models.FieldImage)
	if rescued, ok := document[models.FieldDateRescued].(string); ok {
		if rescued == "" {
			delete(document, models.FieldDateRescued)
		} else {
			parsed, err := time.Parse(common.DateFormat, rescued)
			if err != nil {
				return turtle, fmt.Errorf("%w: %s: %v", ErrInvalidRecord, models.FieldDateRescued, err)
			}
			document[models.FieldDateRescued] = parsed
		}
	}
	for _, field := range []string{models.FieldLength, models.FieldWeight} {
		if measurement, ok := document[field].(string); ok {
			if measurement == "" {
				delete(document, field)
			} else {
				document[field] = convert.Float(measurement)
			}
		}
	}

	if err := utils.ConvertToObject(document, &turtle); err != nil {
		return turtle, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if err := utils.ValidateEntity(ctx, turtle); err != nil {
		return turtle, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	return turtle, nil
}

// ParseTurtles parses every document, failing on the first invalid one
func ParseTurtles(ctx context.Context, data []map[string]interface{}) ([]models.Turtle, error) {
	turtles := make([]models.Turtle, 0, len(data))
	for _, document := range data {
		turtle, err := ParseTurtle(ctx, document)
		if err != nil {
			return nil, fmt.Errorf("document %v: %w", document[common.ID], err)
		}
		turtles = append(turtles, turtle)
	}

	return turtles, nil
}

// WithETag returns turtle with its etag populated
func WithETag(turtle models.Turtle) (models.Turtle, error) {
	turtle.ETag = ""
	etag, err := utils.GetETag(turtle)
	if err != nil {
		return turtle, err
	}
	turtle.ETag = etag

	return turtle, nil
}

package records

import (
	"cloud.google.com/go/firestore"
	"context"
	"errors"
	"fmt"
	"github.com/jlexm/turtle-tracker-svc/common"
	"github.com/jlexm/turtle-tracker-svc/common/cloud"
	"github.com/jlexm/turtle-tracker-svc/common/logging"
	"github.com/jlexm/turtle-tracker-svc/common/metrics"
	"github.com/jlexm/turtle-tracker-svc/common/models"
	"github.com/jlexm/turtle-tracker-svc/common/utils"
	"go.opencensus.io/trace"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"path"
	"strings"
	"time"
)

const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
	OperationGet    = "get"
	OperationList   = "list"
)

// Engine creates, edits and deletes turtle records over a document store and a blob store.
// Every edit appends exactly one history entry and is written in a single transaction.
type Engine struct {
	db    cloud.DB
	blobs cloud.Blob
	now   func() time.Time
}

// NewEngine returns an Engine using the wall clock
func NewEngine(db cloud.DB, blobs cloud.Blob) *Engine {
	return &Engine{
		db:    db,
		blobs: blobs,
		now:   Now,
	}
}

// WithClock returns a copy of the engine reading the time from now
func (e *Engine) WithClock(now func() time.Time) *Engine {
	clone := *e
	clone.now = now

	return &clone
}

// Now is the current UTC time truncated to the precision the document store keeps
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Get reads and parses one record
func (e *Engine) Get(ctx context.Context, id string) (turtle models.Turtle, err error) {
	ctx, span := trace.StartSpan(ctx, utils.GetSpanName("records.Get"))
	defer span.End()
	defer observe(OperationGet, time.Now(), &err)
	data, err := e.db.GetByID(ctx, common.TurtlesCollection, id)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return turtle, fmt.Errorf("%w: %s", ErrNotFound, id)
		}

		return turtle, fmt.Errorf("read turtle %s: %w", id, err)
	}
	turtle, err = ParseTurtle(ctx, data)
	if err != nil {
		logging.WithTurtleID(ctx, id).Errorf("Stored turtle record failed to parse : %v", err)

		return turtle, err
	}

	return WithETag(turtle)
}

// List reads and parses every record
func (e *Engine) List(ctx context.Context) (turtles []models.Turtle, err error) {
	ctx, span := trace.StartSpan(ctx, utils.GetSpanName("records.List"))
	defer span.End()
	defer observe(OperationList, time.Now(), &err)
	data, err := e.db.ListAll(ctx, common.TurtlesCollection)
	if err != nil {
		return nil, fmt.Errorf("list turtles: %w", err)
	}
	turtles, err = ParseTurtles(ctx, data)
	if err != nil {
		return nil, err
	}
	for i := range turtles {
		if turtles[i], err = WithETag(turtles[i]); err != nil {
			return nil, err
		}
	}

	return turtles, nil
}

// Page reads up to pageSize records ordered by id, starting after the id startAfter.
// The returned cursor is the id of the last record of the page.
func (e *Engine) Page(ctx context.Context, startAfter string,
	pageSize int) (turtles []models.Turtle, cursor string, err error) {
	ctx, span := trace.StartSpan(ctx, utils.GetSpanName("records.Page"))
	defer span.End()
	defer observe(OperationList, time.Now(), &err)
	data, cursor, err := e.db.GetAll(ctx, common.TurtlesCollection, cloud.Page{
		StartAfterID: startAfter,
		PageSize:     pageSize,
		OrderBy:      firestore.DocumentID,
		Sort:         common.SortAscending,
	}, nil)
	if err != nil {
		return nil, "", fmt.Errorf("page turtles: %w", err)
	}
	turtles, err = ParseTurtles(ctx, data)
	if err != nil {
		return nil, "", err
	}
	for i := range turtles {
		if turtles[i], err = WithETag(turtles[i]); err != nil {
			return nil, "", err
		}
	}

	return turtles, cursor, nil
}

// Create stores a new record. The image, when supplied, is uploaded before the document is written
// and the first history entry records the submitted fields.
func (e *Engine) Create(ctx context.Context, request models.TurtleRequest,
	image *models.Image) (turtle models.Turtle, err error) {
	ctx, span := trace.StartSpan(ctx, utils.GetSpanName("records.Create"))
	defer span.End()
	defer observe(OperationCreate, time.Now(), &err)
	rescued, err := time.Parse(common.DateFormat, request.DateRescued)
	if err != nil {
		return turtle, fmt.Errorf("%s: %w", models.FieldDateRescued, err)
	}

	id := e.db.NewDocumentID(common.TurtlesCollection)
	logger := logging.WithTurtleID(ctx, id)
	var imageURL string
	if image.HasData() {
		if imageURL, err = e.upload(ctx, id, image); err != nil {
			return turtle, err
		}
	}

	at := e.now()
	changes := request.Submitted()
	if imageURL != "" {
		changes[models.FieldImage] = common.ImageUpdated
	} else {
		changes[models.FieldImage] = common.ImageNotUpdated
	}
	turtle = models.Turtle{
		ID:          id,
		ImageURL:    imageURL,
		DateRescued: &rescued,
		Length:      request.Length,
		Weight:      request.Weight,
		Location:    request.Location,
		Notes:       request.Notes,
		TurtleType:  request.TurtleType,
		CreatedAt:   &at,
		UpdateDate:  &at,
		History:     []models.HistoryEntry{{Date: &at, Changes: changes}},
	}
	if _, err = e.db.Save(ctx, common.TurtlesCollection, id, turtle); err != nil {
		logger.Errorf("Error occurred while saving the turtle record : %v", err)

		return models.Turtle{}, fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	logger.Infof("Turtle record created")

	return WithETag(turtle)
}

// Update applies changes to the record id. When ifMatch is not empty it must equal the etag of the
// stored record, both before the image is uploaded and again inside the transaction.
// It returns the record before and after the edit.
func (e *Engine) Update(ctx context.Context, id string, ifMatch string, changes models.TurtleChanges,
	image *models.Image) (old models.Turtle, next models.Turtle, err error) {
	ctx, span := trace.StartSpan(ctx, utils.GetSpanName("records.Update"))
	defer span.End()
	defer observe(OperationUpdate, time.Now(), &err)
	logger := logging.WithTurtleID(ctx, id)

	current, err := e.Get(ctx, id)
	if err != nil {
		return old, next, err
	}
	if err = checkPrecondition(current, ifMatch); err != nil {
		return old, next, err
	}
	var imageURL string
	if image.HasData() {
		if imageURL, err = e.upload(ctx, id, image); err != nil {
			return old, next, err
		}
	}

	at := e.now()
	err = e.db.UpdateInTransaction(ctx, common.TurtlesCollection, id,
		func(data map[string]interface{}) ([]firestore.Update, error) {
			prev, err := ParseTurtle(ctx, data)
			if err != nil {
				return nil, err
			}
			if err = checkPrecondition(prev, ifMatch); err != nil {
				return nil, err
			}
			if prev, err = WithETag(prev); err != nil {
				return nil, err
			}
			var entry models.HistoryEntry
			next, entry = ApplyChanges(prev, changes, imageURL, at)
			old = prev

			return updatesFor(changes, next, entry), nil
		})
	if err != nil {
		switch {
		case status.Code(err) == codes.NotFound:
			return models.Turtle{}, models.Turtle{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		case errors.Is(err, ErrPreconditionFailed), errors.Is(err, ErrInvalidRecord):
			return models.Turtle{}, models.Turtle{}, err
		default:
			logger.Errorf("Error occurred while updating the turtle record : %v", err)

			return models.Turtle{}, models.Turtle{}, fmt.Errorf("%w: %v", ErrWriteFailure, err)
		}
	}
	logger.Infof("Turtle record updated, history has %d entries", len(next.History))
	next, err = WithETag(next)

	return old, next, err
}

// checkPrecondition fails with ErrPreconditionFailed unless ifMatch is empty or the etag of turtle
func checkPrecondition(turtle models.Turtle, ifMatch string) error {
	if ifMatch == "" {
		return nil
	}
	matches, err := utils.MatchesETag(turtle, ifMatch)
	if err != nil {
		return err
	}
	if !matches {
		return ErrPreconditionFailed
	}

	return nil
}

// Delete removes the record permanently
func (e *Engine) Delete(ctx context.Context, id string) (err error) {
	ctx, span := trace.StartSpan(ctx, utils.GetSpanName("records.Delete"))
	defer span.End()
	defer observe(OperationDelete, time.Now(), &err)
	_, err = e.db.Delete(ctx, common.TurtlesCollection, id)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}

		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	logging.WithTurtleID(ctx, id).Infof("Turtle record deleted")

	return nil
}

// updatesFor returns the document updates of one edit: the supplied fields, the image URL carried
// forward or replaced, the update date and the atomic append of the history entry
func updatesFor(changes models.TurtleChanges, next models.Turtle, entry models.HistoryEntry) []firestore.Update {
	submitted := changes.Submitted()
	updates := make([]firestore.Update, 0, len(submitted)+3)
	for _, field := range []string{models.FieldNotes, models.FieldLocation, models.FieldLength,
		models.FieldWeight, models.FieldTurtleType} {
		if value, ok := submitted[field]; ok {
			updates = append(updates, firestore.Update{Path: field, Value: value})
		}
	}

	return append(updates,
		firestore.Update{Path: models.FieldImageURL, Value: next.ImageURL},
		firestore.Update{Path: models.FieldUpdateDate, Value: *entry.Date},
		firestore.Update{Path: models.FieldHistory, Value: firestore.ArrayUnion(map[string]interface{}{
			"date":    *entry.Date,
			"changes": entry.Changes,
		})},
	)
}

// upload writes the image to turtle_images/{id}_{suffix}_{filename} and returns its URL
func (e *Engine) upload(ctx context.Context, id string, image *models.Image) (string, error) {
	ctx, span := trace.StartSpan(ctx, utils.GetSpanName("records.upload"))
	defer span.End()
	blobPath := ImagePath(id, image.FileName)
	if err := e.blobs.Put(ctx, blobPath, image.Data, image.ContentType); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailure, err)
	}
	url, err := e.blobs.GetURL(ctx, blobPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailure, err)
	}
	metrics.RecordImageUpload(len(image.Data))

	return url, nil
}

// ImagePath returns a fresh blob path for an image of the record id
func ImagePath(id string, fileName string) string {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "image"
	}

	return fmt.Sprintf("%s/%s_%s_%s", common.TurtleImagesPrefix, id, utils.GetRandomID(common.RandomIDLength), name)
}

func observe(operation string, started time.Time, err *error) {
	outcome := metrics.OutcomeSuccess
	if *err != nil {
		outcome = metrics.OutcomeError
	}
	metrics.RecordOperation(operation, outcome, started)
}

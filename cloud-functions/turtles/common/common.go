package common

import (
	"context"
	"fmt"
	"github.com/fatih/structs"
	turtleModels "github.com/jlexm/turtle-tracker-svc/cloud-functions/turtles/models"
	"github.com/jlexm/turtle-tracker-svc/common"
	"github.com/jlexm/turtle-tracker-svc/common/audit"
	"github.com/jlexm/turtle-tracker-svc/common/auth"
	"github.com/jlexm/turtle-tracker-svc/common/cloud"
	"github.com/jlexm/turtle-tracker-svc/common/models"
	"github.com/jlexm/turtle-tracker-svc/common/records"
	"github.com/jlexm/turtle-tracker-svc/common/response"
	"go.uber.org/zap"
	"net/http"
	"os"
	"time"
)

// GetTurtleFromDB reads the record turtleID, answering the request itself when that fails
func GetTurtleFromDB(responseWriter http.ResponseWriter, request *http.Request, logger *zap.SugaredLogger,
	engine *records.Engine, turtleID string) (models.Turtle, bool) {
	turtle, err := engine.Get(request.Context(), turtleID)
	if err != nil {
		RespondWithRecordError(responseWriter, request, logger, err, turtleID)

		return models.Turtle{}, false
	}

	return turtle, true
}

// RespondWithRecordError answers with the status of an engine error
func RespondWithRecordError(responseWriter http.ResponseWriter, request *http.Request, logger *zap.SugaredLogger,
	err error, turtleID string) {
	switch records.StatusCode(err) {
	case http.StatusNotFound:
		response.RespondWithNotFoundErrorMessage(responseWriter, request,
			fmt.Sprintf("Turtle ID %s not found", turtleID), err)
	case http.StatusPreconditionFailed:
		logger.Debugf("If-Match did not match turtle %s : %v", turtleID, err)
		response.RespondWithPreconditionFailed(responseWriter, request)
	case http.StatusBadGateway:
		logger.Errorf("Error occurred while uploading the turtle image : %v", err)
		response.RespondWithResponseObject(responseWriter,
			response.NewResponse(http.StatusBadGateway, "Image upload failed, please try again", nil),
			response.GetCommonResponseHeaders(request))
	default:
		logger.Errorf("Internal server error while processing turtle %s : %v", turtleID, err)
		response.RespondWithInternalServerError(responseWriter, request)
	}
}

// GetTurtleHeaders returns the common headers plus the ETag and Last-Modified of turtle
func GetTurtleHeaders(request *http.Request, turtle models.Turtle) response.HeaderMap {
	headers := response.GetCommonResponseHeaders(request).WithHeader(common.HeaderEtag, turtle.ETag)
	if turtle.UpdateDate != nil {
		headers = headers.WithHeader(common.HeaderLastModified, turtle.UpdateDate.UTC().Format(time.RFC3339))
	}

	return headers
}

// PublishTurtleChange sends the audit message of a create or update and the turtle change message.
// A delete only sends the change message. The author is the user authenticated on request.
func PublishTurtleChange(ctx context.Context, request *http.Request, pubsubClient cloud.Queue,
	changeType string, oldTurtle *models.Turtle, newTurtle *models.Turtle) {
	var turtleID string
	if newTurtle != nil {
		turtleID = newTurtle.ID
	} else if oldTurtle != nil {
		turtleID = oldTurtle.ID
	}

	if changeType != common.ChangeTypeDelete && newTurtle != nil {
		var changedBy string
		if user, ok := auth.UserFromContext(request.Context()); ok {
			changedBy = user.Email
		}
		changedAt := ChangedAt(*newTurtle)
		var oldEntity map[string]interface{}
		if oldTurtle != nil {
			oldEntity = structs.Map(oldTurtle)
		}
		pubsubClient.Publish(ctx, os.Getenv(common.EnvAuditLogTopic),
			audit.GetPubSubAuditMessage(audit.GetTurtleAuditPath(turtleID),
				request.Header.Get(common.HeaderXCorrelationID), changedBy,
				changeType,
				common.EntityTurtle,
				&changedAt,
				oldEntity,
				structs.Map(newTurtle),
			))
	}

	pubsubClient.Publish(ctx, os.Getenv(common.EnvTurtleMessageTopic),
		turtleModels.GetPubSubTurtleMessage(turtleID, changeType))
}

// ChangedAt is the date of the last history entry of turtle, its update date when it has no history
func ChangedAt(turtle models.Turtle) time.Time {
	if entry := turtle.LastHistoryEntry(); entry != nil && entry.Date != nil {
		return *entry.Date
	}
	if turtle.UpdateDate != nil {
		return *turtle.UpdateDate
	}

	return time.Now().UTC()
}

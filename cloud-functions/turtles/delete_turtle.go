package turtles

import (
	"fmt"
	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/TakeoffTech/go-telemetry/sdpropagation"
	"github.com/go-andiamo/urit"
	turtleCommon "github.com/jlexm/turtle-tracker-svc/cloud-functions/turtles/common"
	"github.com/jlexm/turtle-tracker-svc/common"
	"github.com/jlexm/turtle-tracker-svc/common/auth"
	"github.com/jlexm/turtle-tracker-svc/common/cloud"
	"github.com/jlexm/turtle-tracker-svc/common/logging"
	"github.com/jlexm/turtle-tracker-svc/common/models"
	"github.com/jlexm/turtle-tracker-svc/common/records"
	"github.com/jlexm/turtle-tracker-svc/common/response"
	"github.com/jlexm/turtle-tracker-svc/common/utils"
	"go.opencensus.io/trace"
	"net/http"
)

// This file has the function and handler to permanently delete a turtle record
var deleteTurtlePath = urit.MustCreateTemplate(fmt.Sprintf("/turtles/{%s}", common.PathParamTurtleID))

func init() {
	functions.HTTP("DeleteTurtle", deleteTurtle)
}

func deleteTurtle(responseWriter http.ResponseWriter, request *http.Request) {
	ctx, span := sdpropagation.StartSpanWithRemoteParentFromRequest(request,
		utils.GetSpanName("delete_turtle.deleteTurtle"))
	defer span.End()
	requestWithContext := logging.RequestWithLogger(ctx, request)
	deleteTurtleHandler(responseWriter, requestWithContext, auth.NewSessionsFromEnv(ctx),
		cloud.NewFirestoreRepository(ctx), cloud.NewPubSubRepository(ctx))
}

func deleteTurtleHandler(responseWriter http.ResponseWriter, request *http.Request,
	authenticator auth.Authenticator, dbClient cloud.DB, pubsubClient cloud.Queue) {
	ctx, span := trace.StartSpan(request.Context(), utils.GetSpanName("delete_turtle.deleteTurtleHandler"))
	defer span.End()
	logger := logging.GetLoggerFromContext(ctx)
	pathParams, validationResponse := utils.ValidateRequest(request, utils.RequestValidation{
		RequiredHeaders: common.GetMandatoryHeaders(),
		RequiredPath:    deleteTurtlePath,
		RequestMethod:   http.MethodDelete,
	})
	if validationResponse != nil {
		logger.Debugf("Request validation failed. validationResponse : %v", validationResponse)
		response.RespondWithResponseObject(responseWriter, validationResponse, response.GetCommonResponseHeaders(request))

		return
	}
	request, user, ok := auth.RequireUser(responseWriter, request, authenticator)
	if !ok {
		return
	}

	turtleID := pathParams[common.PathParamTurtleID]
	if err := records.NewEngine(dbClient, nil).Delete(ctx, turtleID); err != nil {
		turtleCommon.RespondWithRecordError(responseWriter, request, logger, err, turtleID)

		return
	}

	response.RespondWithoutBody(responseWriter, http.StatusNoContent, response.GetCommonResponseHeaders(request))
	logger.Debugf("Turtle %s deleted by %s", turtleID, user.Email)

	turtleCommon.PublishTurtleChange(ctx, request, pubsubClient, common.ChangeTypeDelete,
		&models.Turtle{ID: turtleID}, nil)
}

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
	"github.com/jlexm/turtle-tracker-svc/common/records"
	"github.com/jlexm/turtle-tracker-svc/common/response"
	"github.com/jlexm/turtle-tracker-svc/common/utils"
	"go.opencensus.io/trace"
	"net/http"
)

// This file has the function and handler to get a turtle record
var getTurtlePath = urit.MustCreateTemplate(fmt.Sprintf("/turtles/{%s}", common.PathParamTurtleID))

func init() {
	functions.HTTP("GetTurtle", getTurtle)
}

func getTurtle(responseWriter http.ResponseWriter, request *http.Request) {
	ctx, span := sdpropagation.StartSpanWithRemoteParentFromRequest(request,
		utils.GetSpanName("get_turtle.getTurtle"))
	defer span.End()
	requestWithContext := logging.RequestWithLogger(ctx, request)
	getTurtleHandler(responseWriter, requestWithContext, auth.NewSessionsFromEnv(ctx), cloud.NewFirestoreRepository(ctx))
}

func getTurtleHandler(responseWriter http.ResponseWriter, request *http.Request,
	authenticator auth.Authenticator, dbClient cloud.DB) {
	ctx, span := trace.StartSpan(request.Context(), utils.GetSpanName("get_turtle.getTurtleHandler"))
	defer span.End()
	logger := logging.GetLoggerFromContext(ctx)
	pathParams, validationResponse := utils.ValidateRequest(request, utils.RequestValidation{
		RequiredHeaders: common.GetMandatoryHeaders(),
		RequiredPath:    getTurtlePath,
		RequestMethod:   http.MethodGet,
	})
	if validationResponse != nil {
		logger.Debugf("Request validation failed. validationResponse : %v", validationResponse)
		response.RespondWithResponseObject(responseWriter, validationResponse, response.GetCommonResponseHeaders(request))

		return
	}
	request, _, ok := auth.RequireUser(responseWriter, request, authenticator)
	if !ok {
		return
	}

	turtleID := pathParams[common.PathParamTurtleID]
	turtle, ok := turtleCommon.GetTurtleFromDB(responseWriter, request, logger, records.NewEngine(dbClient, nil), turtleID)
	if !ok {
		return
	}

	response.Respond(responseWriter, http.StatusOK, turtle, turtleCommon.GetTurtleHeaders(request, turtle))
	logger.Debugf("Turtle %s successfully fetched from DB", turtleID)
}

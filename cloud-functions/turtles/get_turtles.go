package turtles

import (
	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/TakeoffTech/go-telemetry/sdpropagation"
	"github.com/go-andiamo/urit"
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

// This file has the function and handler to list the turtle records page by page
var getTurtlesPath = urit.MustCreateTemplate("/turtles")

func init() {
	functions.HTTP("GetTurtles", getTurtles)
}

func getTurtles(responseWriter http.ResponseWriter, request *http.Request) {
	ctx, span := sdpropagation.StartSpanWithRemoteParentFromRequest(request,
		utils.GetSpanName("get_turtles.getTurtles"))
	defer span.End()
	requestWithContext := logging.RequestWithLogger(ctx, request)
	getTurtlesHandler(responseWriter, requestWithContext, auth.NewSessionsFromEnv(ctx), cloud.NewFirestoreRepository(ctx))
}

func getTurtlesHandler(responseWriter http.ResponseWriter, request *http.Request,
	authenticator auth.Authenticator, dbClient cloud.DB) {
	ctx, span := trace.StartSpan(request.Context(), utils.GetSpanName("get_turtles.getTurtlesHandler"))
	defer span.End()
	logger := logging.GetLoggerFromContext(ctx)

	_, validationResponse := utils.ValidateRequest(request, utils.RequestValidation{
		RequiredHeaders: append(common.GetMandatoryHeaders(), utils.AddPaginationHeaderIfNotAdded(request)...),
		RequiredPath:    getTurtlesPath,
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

	pageSize := utils.GetPageSizeFromHeader(request, logger)
	startAfterID, err := utils.GetStartAfterFromHeader(request, common.TurtlesEncryptionKey)
	if err != nil {
		logger.Errorf("Error occurred while decoding the next page token : %v", err)
		response.RespondWithInternalServerError(responseWriter, request)

		return
	}
	logger.Debugf("ID got after decoding the next page token : %s", startAfterID)

	turtles, lastID, err := records.NewEngine(dbClient, nil).Page(ctx, startAfterID, pageSize)
	if err != nil {
		logger.Errorf("Internal server error while fetching the turtles from DB : %v", err)
		response.RespondWithInternalServerError(responseWriter, request)

		return
	}

	nextPageToken, err := utils.GetNextPageTokenFor(lastID, len(turtles), pageSize, common.TurtlesEncryptionKey)
	if err != nil {
		logger.Errorf("Error occurred while creating the next page token : %v", err)
		response.RespondWithInternalServerError(responseWriter, request)

		return
	}
	if turtles == nil {
		turtles = []models.Turtle{}
	}

	response.Respond(responseWriter, http.StatusOK, turtles,
		response.GetCommonResponseHeaders(request).WithHeader(common.HeaderNextPageToken, nextPageToken))
	logger.Debugf("%d turtles successfully fetched from DB", len(turtles))
}

package turtles

import (
	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/TakeoffTech/go-telemetry/sdpropagation"
	"github.com/go-andiamo/urit"
	"github.com/jlexm/turtle-tracker-svc/cloud-functions/turtles/models"
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

// This file has the function and handler returning the rescue trend and length/weight chart data
var getTurtleStatsPath = urit.MustCreateTemplate("/turtle-stats")

func init() {
	functions.HTTP("GetTurtleStats", getTurtleStats)
}

func getTurtleStats(responseWriter http.ResponseWriter, request *http.Request) {
	ctx, span := sdpropagation.StartSpanWithRemoteParentFromRequest(request,
		utils.GetSpanName("get_turtle_stats.getTurtleStats"))
	defer span.End()
	requestWithContext := logging.RequestWithLogger(ctx, request)
	getTurtleStatsHandler(responseWriter, requestWithContext, auth.NewSessionsFromEnv(ctx),
		cloud.NewFirestoreRepository(ctx))
}

func getTurtleStatsHandler(responseWriter http.ResponseWriter, request *http.Request,
	authenticator auth.Authenticator, dbClient cloud.DB) {
	ctx, span := trace.StartSpan(request.Context(), utils.GetSpanName("get_turtle_stats.getTurtleStatsHandler"))
	defer span.End()
	logger := logging.GetLoggerFromContext(ctx)
	_, validationResponse := utils.ValidateRequest(request, utils.RequestValidation{
		RequiredHeaders: common.GetMandatoryHeaders(),
		RequiredPath:    getTurtleStatsPath,
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

	turtles, err := records.NewEngine(dbClient, nil).List(ctx)
	if err != nil {
		logger.Errorf("Internal server error while fetching the turtles from DB : %v", err)
		response.RespondWithInternalServerError(responseWriter, request)

		return
	}

	stats := models.Stats{
		RescueTrends: records.GroupByRescueDate(turtles),
		LengthWeight: records.PairLengthWeight(turtles),
	}
	response.Respond(responseWriter, http.StatusOK, stats, response.GetCommonResponseHeaders(request))
	logger.Debugf("Stats computed over %d turtles", len(turtles))
}

package auth

import (
	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/TakeoffTech/go-telemetry/sdpropagation"
	"github.com/go-andiamo/urit"
	"github.com/jlexm/turtle-tracker-svc/cloud-functions/auth/models"
	"github.com/jlexm/turtle-tracker-svc/common"
	commonAuth "github.com/jlexm/turtle-tracker-svc/common/auth"
	"github.com/jlexm/turtle-tracker-svc/common/logging"
	"github.com/jlexm/turtle-tracker-svc/common/response"
	"github.com/jlexm/turtle-tracker-svc/common/utils"
	"go.opencensus.io/trace"
	"net/http"
)

// This file has the function and handler returning the user behind the bearer token
var getSessionPath = urit.MustCreateTemplate("/session")

func init() {
	functions.HTTP("GetSession", getSession)
}

func getSession(responseWriter http.ResponseWriter, request *http.Request) {
	ctx, span := sdpropagation.StartSpanWithRemoteParentFromRequest(request,
		utils.GetSpanName("get_session.getSession"))
	defer span.End()
	requestWithContext := logging.RequestWithLogger(ctx, request)
	getSessionHandler(responseWriter, requestWithContext, commonAuth.NewSessionsFromEnv(ctx))
}

func getSessionHandler(responseWriter http.ResponseWriter, request *http.Request,
	authenticator commonAuth.Authenticator) {
	ctx, span := trace.StartSpan(request.Context(), utils.GetSpanName("get_session.getSessionHandler"))
	defer span.End()
	logger := logging.GetLoggerFromContext(ctx)
	_, validationResponse := utils.ValidateRequest(request, utils.RequestValidation{
		RequiredPath:    getSessionPath,
		RequestMethod:   http.MethodGet,
		RequiredHeaders: common.GetMandatoryHeaders(),
	})
	if validationResponse != nil {
		logger.Debugf("Request validation failed. validationResponse : %v", validationResponse)
		response.RespondWithResponseObject(responseWriter, validationResponse, response.GetCommonResponseHeaders(request))

		return
	}

	request, user, ok := commonAuth.RequireUser(responseWriter, request, authenticator)
	if !ok {
		return
	}

	response.Respond(responseWriter, http.StatusOK, models.GetSession(user, false), response.GetCommonResponseHeaders(request))
}

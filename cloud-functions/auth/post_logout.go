package auth

import (
	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/TakeoffTech/go-telemetry/sdpropagation"
	"github.com/go-andiamo/urit"
	"github.com/jlexm/turtle-tracker-svc/common"
	commonAuth "github.com/jlexm/turtle-tracker-svc/common/auth"
	"github.com/jlexm/turtle-tracker-svc/common/logging"
	"github.com/jlexm/turtle-tracker-svc/common/response"
	"github.com/jlexm/turtle-tracker-svc/common/utils"
	"go.opencensus.io/trace"
	"net/http"
)

// This file has the function and handler ending the session of the bearer token
var postLogoutPath = urit.MustCreateTemplate("/logout")

func init() {
	functions.HTTP("PostLogout", postLogout)
}

func postLogout(responseWriter http.ResponseWriter, request *http.Request) {
	ctx, span := sdpropagation.StartSpanWithRemoteParentFromRequest(request,
		utils.GetSpanName("post_logout.postLogout"))
	defer span.End()
	requestWithContext := logging.RequestWithLogger(ctx, request)
	postLogoutHandler(responseWriter, requestWithContext, commonAuth.NewSessionsFromEnv(ctx))
}

func postLogoutHandler(responseWriter http.ResponseWriter, request *http.Request,
	authenticator commonAuth.Authenticator) {
	ctx, span := trace.StartSpan(request.Context(), utils.GetSpanName("post_logout.postLogoutHandler"))
	defer span.End()
	logger := logging.GetLoggerFromContext(ctx)
	_, validationResponse := utils.ValidateRequest(request, utils.RequestValidation{
		RequiredPath:    postLogoutPath,
		RequestMethod:   http.MethodPost,
		RequiredHeaders: append(common.GetMandatoryHeaders(), common.HeaderAuthorization),
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
	if err := authenticator.SignOut(ctx, commonAuth.BearerToken(request)); err != nil {
		logger.Errorf("Error occurred while signing out : %v", err)
		response.RespondWithInternalServerError(responseWriter, request)

		return
	}

	response.RespondWithoutBody(responseWriter, http.StatusNoContent, response.GetCommonResponseHeaders(request))
	logger.Infof("User %s signed out", user.ID)
}

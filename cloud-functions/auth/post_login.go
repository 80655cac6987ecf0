package auth

import (
	"errors"
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

// This file has the function and handler signing a staff member in with email and password
var postLoginPath = urit.MustCreateTemplate("/login")

func init() {
	functions.HTTP("PostLogin", postLogin)
}

func postLogin(responseWriter http.ResponseWriter, request *http.Request) {
	ctx, span := sdpropagation.StartSpanWithRemoteParentFromRequest(request,
		utils.GetSpanName("post_login.postLogin"))
	defer span.End()
	requestWithContext := logging.RequestWithLogger(ctx, request)
	postLoginHandler(responseWriter, requestWithContext, commonAuth.NewSessionsFromEnv(ctx))
}

func postLoginHandler(responseWriter http.ResponseWriter, request *http.Request,
	authenticator commonAuth.Authenticator) {
	ctx, span := trace.StartSpan(request.Context(), utils.GetSpanName("post_login.postLoginHandler"))
	defer span.End()
	logger := logging.GetLoggerFromContext(ctx)

	var login models.LoginRequest
	_, validationResponse := utils.ValidateRequest(request, utils.RequestValidation{
		RequiredPath:    postLoginPath,
		RequestMethod:   http.MethodPost,
		RequiredHeaders: common.GetMandatoryHeaders(),
		RequestBodyValidation: &utils.RequestBodyValidation{
			Entity:             &login,
			CompleteValidation: true,
		},
	})
	if validationResponse != nil {
		logger.Debugf("Request body validation failed. validationResponse : %v", validationResponse)
		response.RespondWithResponseObject(responseWriter, validationResponse, response.GetCommonResponseHeaders(request))

		return
	}

	user, err := authenticator.SignIn(ctx, login.Email, login.Password)
	if err != nil {
		if errors.Is(err, commonAuth.ErrAuthFailure) {
			logger.Debugf("Sign in refused for %s : %v", login.Email, err)
			response.RespondWithUnauthorized(responseWriter, request, "Invalid email or password")

			return
		}
		logger.Errorf("Error occurred while signing in : %v", err)
		response.RespondWithInternalServerError(responseWriter, request)

		return
	}

	response.Respond(responseWriter, http.StatusOK, models.GetSession(user, true), response.GetCommonResponseHeaders(request))
	logger.Infof("User %s signed in", user.ID)
}

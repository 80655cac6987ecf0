package turtles

import (
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

// This file has the function and handler to create a turtle record
var postTurtlePath = urit.MustCreateTemplate("/turtles")

func init() {
	functions.HTTP("PostTurtle", postTurtle)
}

func postTurtle(responseWriter http.ResponseWriter, request *http.Request) {
	ctx, span := sdpropagation.StartSpanWithRemoteParentFromRequest(request,
		utils.GetSpanName("post_turtle.postTurtle"))
	defer span.End()
	requestWithContext := logging.RequestWithLogger(ctx, request)
	postTurtleHandler(responseWriter, requestWithContext, auth.NewSessionsFromEnv(ctx),
		cloud.NewFirestoreRepository(ctx), cloud.NewS3Repository(ctx), cloud.NewPubSubRepository(ctx))
}

func postTurtleHandler(responseWriter http.ResponseWriter, request *http.Request, authenticator auth.Authenticator,
	dbClient cloud.DB, blobClient cloud.Blob, pubsubClient cloud.Queue) {
	ctx, span := trace.StartSpan(request.Context(), utils.GetSpanName("post_turtle.postTurtleHandler"))
	defer span.End()
	logger := logging.GetLoggerFromContext(ctx)

	var turtleRequest models.TurtleRequest
	var image models.Image
	_, validationResponse := utils.ValidateRequest(request, utils.RequestValidation{
		RequiredPath:    postTurtlePath,
		RequestMethod:   http.MethodPost,
		RequiredHeaders: common.GetMandatoryHeaders(),
		RequestBodyValidation: &utils.RequestBodyValidation{
			Entity:             &turtleRequest,
			CompleteValidation: true,
			Upload:             &image,
		},
	})
	if validationResponse != nil {
		logger.Debugf("Request body validation failed. validationResponse : %v", validationResponse)
		response.RespondWithResponseObject(responseWriter, validationResponse, response.GetCommonResponseHeaders(request))

		return
	}

	request, user, ok := auth.RequireUser(responseWriter, request, authenticator)
	if !ok {
		return
	}

	turtle, err := records.NewEngine(dbClient, blobClient).Create(ctx, turtleRequest, &image)
	if err != nil {
		turtleCommon.RespondWithRecordError(responseWriter, request, logger, err, turtle.ID)

		return
	}

	response.Respond(responseWriter, http.StatusCreated, turtle,
		turtleCommon.GetTurtleHeaders(request, turtle).
			WithHeader(common.HeaderLocation, utils.GetTurtleURL(turtle.ID)))
	logger.Debugf("Turtle successfully created with id : %s by %s", turtle.ID, user.Email)

	turtleCommon.PublishTurtleChange(ctx, request, pubsubClient, common.ChangeTypeCreate, nil, &turtle)
}

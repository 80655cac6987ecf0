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

// This file has the function and handler to edit a turtle record, optionally replacing its image
var patchTurtlePath = urit.MustCreateTemplate(fmt.Sprintf("/turtles/{%s}", common.PathParamTurtleID))

func init() {
	functions.HTTP("PatchTurtle", patchTurtle)
}

func patchTurtle(responseWriter http.ResponseWriter, request *http.Request) {
	ctx, span := sdpropagation.StartSpanWithRemoteParentFromRequest(request,
		utils.GetSpanName("patch_turtle.patchTurtle"))
	defer span.End()
	requestWithContext := logging.RequestWithLogger(ctx, request)
	patchTurtleHandler(responseWriter, requestWithContext, auth.NewSessionsFromEnv(ctx),
		cloud.NewFirestoreRepository(ctx), cloud.NewS3Repository(ctx), cloud.NewPubSubRepository(ctx))
}

func patchTurtleHandler(responseWriter http.ResponseWriter, request *http.Request, authenticator auth.Authenticator,
	dbClient cloud.DB, blobClient cloud.Blob, pubsubClient cloud.Queue) {
	ctx, span := trace.StartSpan(request.Context(), utils.GetSpanName("patch_turtle.patchTurtleHandler"))
	defer span.End()
	logger := logging.GetLoggerFromContext(ctx)

	var changes models.TurtleChanges
	var image models.Image
	pathParams, validationResponse := utils.ValidateRequest(request, utils.RequestValidation{
		RequiredPath:    patchTurtlePath,
		RequestMethod:   http.MethodPatch,
		RequiredHeaders: append(common.GetMandatoryHeaders(), common.HeaderIfMatch),
		RequestBodyValidation: &utils.RequestBodyValidation{
			Entity:     &changes,
			Upload:     &image,
			AllowEmpty: true,
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

	turtleID := pathParams[common.PathParamTurtleID]
	oldTurtle, newTurtle, err := records.NewEngine(dbClient, blobClient).
		Update(ctx, turtleID, request.Header.Get(common.HeaderIfMatch), changes, &image)
	if err != nil {
		turtleCommon.RespondWithRecordError(responseWriter, request, logger, err, turtleID)

		return
	}

	response.Respond(responseWriter, http.StatusOK, newTurtle, turtleCommon.GetTurtleHeaders(request, newTurtle))
	logger.Debugf("Turtle %s successfully updated by %s", turtleID, user.Email)

	turtleCommon.PublishTurtleChange(ctx, request, pubsubClient, common.ChangeTypeUpdate,
		&oldTurtle, &newTurtle)
}

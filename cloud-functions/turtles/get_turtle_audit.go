package turtles

import (
	"fmt"
	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/TakeoffTech/go-telemetry/sdpropagation"
	"github.com/go-andiamo/urit"
	"github.com/jlexm/turtle-tracker-svc/common"
	"github.com/jlexm/turtle-tracker-svc/common/audit"
	"github.com/jlexm/turtle-tracker-svc/common/audit/models"
	"github.com/jlexm/turtle-tracker-svc/common/auth"
	"github.com/jlexm/turtle-tracker-svc/common/cloud"
	"github.com/jlexm/turtle-tracker-svc/common/dbutil"
	"github.com/jlexm/turtle-tracker-svc/common/logging"
	"github.com/jlexm/turtle-tracker-svc/common/response"
	"github.com/jlexm/turtle-tracker-svc/common/utils"
	"go.opencensus.io/trace"
	"net/http"
	"time"
)

// This file has the function and handler to get audit logs for a turtle from DB
var getTurtleAuditPath = urit.MustCreateTemplate(fmt.Sprintf("/turtles/{%s}/auditLogs", common.PathParamTurtleID))

func init() {
	functions.HTTP("GetTurtleAudit", getTurtleAudit)
}

func getTurtleAudit(responseWriter http.ResponseWriter, request *http.Request) {
	ctx, span := sdpropagation.StartSpanWithRemoteParentFromRequest(request,
		utils.GetSpanName("get_turtle_audit.getTurtleAudit"))
	defer span.End()
	requestWithContext := logging.RequestWithLogger(ctx, request)
	getTurtleAuditHandler(responseWriter, requestWithContext, auth.NewSessionsFromEnv(ctx),
		cloud.NewFirestoreRepository(ctx))
}

func getTurtleAuditHandler(responseWriter http.ResponseWriter, request *http.Request,
	authenticator auth.Authenticator, dbClient cloud.DB) {
	ctx, span := trace.StartSpan(request.Context(), utils.GetSpanName("get_turtle_audit.getTurtleAuditHandler"))
	defer span.End()
	logger := logging.GetLoggerFromContext(ctx)
	pathParams, validationResponse := utils.ValidateRequest(request, utils.RequestValidation{
		RequiredHeaders: append(common.GetMandatoryHeaders(), utils.AddPaginationHeaderIfNotAdded(request)...),
		RequiredPath:    getTurtleAuditPath,
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
	if !dbutil.IsTurtleIDPresentInDB(responseWriter, request, dbClient, turtleID, logger) {
		return
	}

	pageSize := utils.GetPageSizeFromHeader(request, logger)
	startAfterID, err := utils.GetStartAfterFromHeader(request, common.TurtlesEncryptionKey)
	if err != nil {
		logger.Errorf("Error occurred while decoding the next page token : %v", err)
		response.RespondWithInternalServerError(responseWriter, request)

		return
	}
	logger.Debugf("Changed at got after decoding the next page token : %s", startAfterID)
	parsedTime, _ := time.Parse(common.TimeParseFormat, startAfterID)

	data, lastChangedAt, err := dbClient.GetAll(ctx, audit.GetTurtleAuditPath(turtleID),
		cloud.Page{
			StartAfterID: parsedTime,
			PageSize:     pageSize,
			OrderBy:      common.ChangedAt,
			Sort:         common.SortDescending,
		}, nil)
	if err != nil {
		logger.Errorf("Internal server error while fetching the turtle audit logs from DB : %v", err)
		response.RespondWithInternalServerError(responseWriter, request)

		return
	}

	nextPageToken, err := utils.GetNextPageTokenFor(lastChangedAt, len(data), pageSize, common.TurtlesEncryptionKey)
	if err != nil {
		logger.Errorf("Error occurred while creating the next page token : %v", err)
		response.RespondWithInternalServerError(responseWriter, request)

		return
	}

	auditLog := &models.AuditLog{}
	utils.CreateResponseForGetAllByModel(ctx, responseWriter, request, data, nextPageToken, auditLog)
}

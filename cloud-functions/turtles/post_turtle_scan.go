package turtles

import (
	"context"
	"errors"
	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/TakeoffTech/go-telemetry/sdpropagation"
	"github.com/go-andiamo/urit"
	turtleCommon "github.com/jlexm/turtle-tracker-svc/cloud-functions/turtles/common"
	"github.com/jlexm/turtle-tracker-svc/cloud-functions/turtles/models"
	"github.com/jlexm/turtle-tracker-svc/common"
	"github.com/jlexm/turtle-tracker-svc/common/auth"
	"github.com/jlexm/turtle-tracker-svc/common/cloud"
	"github.com/jlexm/turtle-tracker-svc/common/logging"
	"github.com/jlexm/turtle-tracker-svc/common/qr"
	"github.com/jlexm/turtle-tracker-svc/common/records"
	"github.com/jlexm/turtle-tracker-svc/common/response"
	"github.com/jlexm/turtle-tracker-svc/common/utils"
	"go.opencensus.io/trace"
	"net/http"
)

// This file has the function and handler resolving scanner results to a turtle record.
// The first successful decode wins and the caller is redirected to the record.
var postTurtleScanPath = urit.MustCreateTemplate("/turtle-scans")

func init() {
	functions.HTTP("PostTurtleScan", postTurtleScan)
}

func postTurtleScan(responseWriter http.ResponseWriter, request *http.Request) {
	ctx, span := sdpropagation.StartSpanWithRemoteParentFromRequest(request,
		utils.GetSpanName("post_turtle_scan.postTurtleScan"))
	defer span.End()
	requestWithContext := logging.RequestWithLogger(ctx, request)
	postTurtleScanHandler(responseWriter, requestWithContext, auth.NewSessionsFromEnv(ctx),
		cloud.NewFirestoreRepository(ctx))
}

func postTurtleScanHandler(responseWriter http.ResponseWriter, request *http.Request,
	authenticator auth.Authenticator, dbClient cloud.DB) {
	ctx, span := trace.StartSpan(request.Context(), utils.GetSpanName("post_turtle_scan.postTurtleScanHandler"))
	defer span.End()
	logger := logging.GetLoggerFromContext(ctx)

	var scan models.ScanRequest
	_, validationResponse := utils.ValidateRequest(request, utils.RequestValidation{
		RequiredPath:    postTurtleScanPath,
		RequestMethod:   http.MethodPost,
		RequiredHeaders: common.GetMandatoryHeaders(),
		RequestBodyValidation: &utils.RequestBodyValidation{
			Entity:             &scan,
			CompleteValidation: true,
		},
	})
	if validationResponse != nil {
		logger.Debugf("Request body validation failed. validationResponse : %v", validationResponse)
		response.RespondWithResponseObject(responseWriter, validationResponse, response.GetCommonResponseHeaders(request))

		return
	}
	request, _, ok := auth.RequireUser(responseWriter, request, authenticator)
	if !ok {
		return
	}

	scanCtx, cancel := context.WithTimeout(ctx, scan.WaitFor(common.DefaultScanTimeout, common.MaxScanTimeout))
	defer cancel()
	text, err := qr.FirstDecoded(scanCtx, qr.Stream(scanCtx, scan.QREvents()))
	if err != nil {
		respondWithScanError(responseWriter, request, err)

		return
	}
	turtleID, err := qr.RecordID(text)
	if err != nil {
		respondWithScanError(responseWriter, request, err)

		return
	}
	if _, ok := turtleCommon.GetTurtleFromDB(responseWriter, request, logger,
		records.NewEngine(dbClient, nil), turtleID); !ok {
		return
	}

	logger.Debugf("Scan resolved to turtle %s", turtleID)
	response.RespondWithoutBody(responseWriter, http.StatusSeeOther,
		response.GetCommonResponseHeaders(request).WithHeader(common.HeaderLocation, utils.GetTurtleURL(turtleID)))
}

func respondWithScanError(responseWriter http.ResponseWriter, request *http.Request, err error) {
	logging.GetLoggerFromContext(request.Context()).Debugf("Scan did not resolve to a turtle : %v", err)
	var scanResponse *response.Response
	switch {
	case errors.Is(err, qr.ErrNotRecordID):
		scanResponse = response.NewResponse(http.StatusBadRequest, "Scanned code is not a turtle record", nil)
	case errors.Is(err, context.DeadlineExceeded):
		scanResponse = response.NewResponse(http.StatusRequestTimeout, "Scan timed out before a code was decoded", nil)
	default:
		scanResponse = response.NewResponse(http.StatusBadRequest, "No QR code could be decoded", []string{err.Error()})
	}
	response.RespondWithResponseObject(responseWriter, scanResponse, response.GetCommonResponseHeaders(request))
}

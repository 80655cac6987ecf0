package dbutil

import (
	"fmt"
	"github.com/jlexm/turtle-tracker-svc/common"
	"github.com/jlexm/turtle-tracker-svc/common/cloud"
	"github.com/jlexm/turtle-tracker-svc/common/response"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"net/http"
)

// IsTurtleIDPresentInDB will check turtle with given turtle ID present in db.
// When it is not, the request is answered with 404 or 500.
func IsTurtleIDPresentInDB(responseWriter http.ResponseWriter, request *http.Request, dbClient cloud.DB,
	turtleID string, logger *zap.SugaredLogger) bool {
	_, err := dbClient.GetByID(request.Context(), common.TurtlesCollection, turtleID)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			response.RespondWithNotFoundErrorMessage(responseWriter, request,
				fmt.Sprintf("Turtle with id : %s does not exist", turtleID), err)
		} else {
			logger.Errorf("Internal server error while fetching the turtle from DB : %v", err)
			response.RespondWithInternalServerError(responseWriter, request)
		}

		return false
	}

	return true
}

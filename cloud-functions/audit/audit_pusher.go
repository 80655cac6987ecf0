package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/cloudevents/sdk-go/v2/event"
	"github.com/fatih/structs"
	"github.com/google/uuid"
	"github.com/jlexm/turtle-tracker-svc/common"
	"github.com/jlexm/turtle-tracker-svc/common/audit"
	auditmodels "github.com/jlexm/turtle-tracker-svc/common/audit/models"
	"github.com/jlexm/turtle-tracker-svc/common/cloud"
	"github.com/jlexm/turtle-tracker-svc/common/logging"
	"github.com/jlexm/turtle-tracker-svc/common/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"reflect"
	"strings"
)

func init() {
	functions.CloudEvent("PushAudit", PushAudit)
}

type MessagePublishedData struct {
	Message PubSubMessage
}

type PubSubMessage struct {
	Data []byte `json:"data"`
}

func PushAudit(ctx context.Context, event event.Event) error {
	logger := logging.GetLoggerFromContext(ctx)
	var msg MessagePublishedData

	if err := event.DataAs(&msg); err != nil {
		logger.Errorf("Error occurred while converting event data to MessagePublishedData struct: %v", err)

		return err
	}

	return pushAuditLog(ctx, msg.Message.Data, cloud.NewFirestoreRepository(ctx))
}

func pushAuditLog(ctx context.Context, data []byte, dbClient cloud.DB) error {
	logger := logging.GetLoggerFromContext(ctx)
	var pubsubAuditMsg audit.PubSubAuditMessage
	err := json.Unmarshal(data, &pubsubAuditMsg)
	if err != nil {
		logger.Errorf("Error occurred while converting data to audit struct: %v", err)

		return err
	}
	auditLog := getAuditLog(&pubsubAuditMsg)
	logger = logging.GetLoggerWithXCorrelationID(pubsubAuditMsg.XCorrelationID)
	logger.Debugf("Audit Entity to be pushed %+v", auditLog)

	var retryCount int
	uniqueID := uuid.NewString()
	for retryCount = 0; retryCount < common.MaxRetryCount; retryCount++ {
		updateTime, err := dbClient.Save(ctx, pubsubAuditMsg.Path, uniqueID, auditLog)
		if err != nil {
			if status.Code(err) == codes.AlreadyExists {
				logger.Infof("Audit Log with ID %s already exists. Now generating new uuid for saving", uniqueID)
				uniqueID = uuid.NewString()

				continue
			}
			logger.Errorf("Error occurred while saving audit entity %v", err)

			return err
		}
		logger.Infof("Audit Entity pushed successfully in %s at %v", pubsubAuditMsg.Path, updateTime)

		break
	}

	if retryCount == common.MaxRetryCount {
		logger.Errorf("Unable to save audit log after %d retries "+
			"as function was unable to generate unique id", common.MaxRetryCount)

		return fmt.Errorf("unable to save audit log after %d retries as function was unable to generate unique id",
			common.MaxRetryCount)
	}

	return nil
}

// getAuditLog will compute the diff between old and new entity object and create an
// auditLog object which will be saved to the firestore
func getAuditLog(msg *audit.PubSubAuditMessage) *auditmodels.AuditLog {
	var diffs []auditmodels.Diff
	auditFields := getAuditChangeDetailFields(msg)
	switch msg.ChangeType {
	case common.AuditTypeCreate:
		for _, key := range auditFields {
			if msg.NewEntity[key] != nil {
				diffs = append(diffs, auditmodels.Diff{
					Field:    key,
					OldValue: nil,
					NewValue: msg.NewEntity[key],
				})
			}
		}
	case common.AuditTypeUpdate:
		for _, key := range auditFields {
			if !reflect.DeepEqual(msg.OldEntity[key], msg.NewEntity[key]) {
				diffs = append(diffs, auditmodels.Diff{
					Field:    key,
					OldValue: msg.OldEntity[key],
					NewValue: msg.NewEntity[key],
				})
			}
		}
	}

	return audit.NewAuditLog(msg.ChangedBy, msg.ChangeType, diffs, msg.ChangedAt, msg.ExpiresAt)
}

// getAuditChangeDetailFields returns the stored fields of the changed entity worth diffing.
// Fields not stored in the document and the append only history are left out.
func getAuditChangeDetailFields(msg *audit.PubSubAuditMessage) []string {
	var auditFields []string
	switch msg.EntityChanged {
	case common.EntityTurtle:
		for _, field := range structs.Fields(models.Turtle{}) {
			name := strings.Split(field.Tag(common.Firestore), ",")[0]
			if name == "-" || name == "" || name == models.FieldHistory {
				continue
			}
			auditFields = append(auditFields, name)
		}
	default:
		return extractFields(msg.NewEntity)
	}

	return auditFields
}

func extractFields(entity map[string]interface{}) []string {
	var keys []string
	for key := range entity {
		keys = append(keys, key)
	}

	return keys
}

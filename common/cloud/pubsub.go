package cloud

import (
	"cloud.google.com/go/pubsub"
	"context"
	"encoding/json"
	"github.com/jlexm/turtle-tracker-svc/common"
	"github.com/jlexm/turtle-tracker-svc/common/logging"
	"github.com/jlexm/turtle-tracker-svc/common/utils"
	"go.opencensus.io/trace"
	"go.uber.org/zap"
	"log"
	"os"
)

type PubSubRepository struct {
	client *pubsub.Client
	logger *zap.SugaredLogger
}

var PubSubRepositoryObj PubSubRepository

// NewPubSubRepository creates a PubSubRepositoryObj
func NewPubSubRepository(ctx context.Context) *PubSubRepository {
	ctx, span := trace.StartSpan(ctx, utils.GetSpanName("pubsub.NewPubSubRepository"))
	defer span.End()
	PubSubRepositoryObj.logger = logging.GetLoggerFromContext(ctx)
	if PubSubRepositoryObj.client != nil {
		return &PubSubRepositoryObj
	}
	pubSubClient, err := pubsub.NewClient(ctx, os.Getenv(common.EnvProjectID))
	if err != nil {
		log.Fatalf("Failed to create pubsub client: %v", err)
	}
	PubSubRepositoryObj.client = pubSubClient

	return &PubSubRepositoryObj
}

// Close releases the shared pubsub client
func (p *PubSubRepository) Close() error {
	if p.client == nil {
		return nil
	}
	err := p.client.Close()
	p.client = nil

	return err
}

// Publish is a common method to publish any message to the topicName.
// Publishing is best effort, failures are logged and never reach the caller.
func (p *PubSubRepository) Publish(ctx context.Context, topicName string, message any) {
	ctx, span := trace.StartSpan(ctx, utils.GetSpanName("pubsub.Publish"))
	defer span.End()
	logger := logging.GetLoggerFromContext(ctx)
	if topicName == "" {
		logger.Debugf("No topic configured, message dropped")

		return
	}
	topic := p.client.Topic(topicName)
	defer topic.Stop()

	bytes, err := json.Marshal(message)
	if err != nil {
		logger.Errorf("Error while marshalling message to byte array: %v", err)

		return
	}

	result := topic.Publish(ctx, &pubsub.Message{
		Data: bytes,
	})
	id, err := result.Get(ctx)
	if err != nil {
		logger.Errorf("Error while publishing message to pubsub topic %s: %v", topicName, err)

		return
	}
	logger.Debugf("Message successfully published to %s, message id : %s", topicName, id)
}

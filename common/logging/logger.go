package logging

import (
	"context"
	"github.com/TakeoffTech/go-log/zapx"
	"github.com/jlexm/turtle-tracker-svc/common"
	"go.uber.org/zap"
	"log"
	"net/http"
)

var logger *zap.SugaredLogger

// init function will initialise a base logger
func init() {
	zapLogger, err := zapx.New(zapx.Config{
		ServiceName: common.ServiceName,
	})
	if err != nil {
		log.Printf(`{"severity": "error", "message": "failed to initialize zap logging: %v"}`, err)
		logger = zap.S()

		return
	}
	logger = zapLogger
}

type CtxLogger struct{}

// GetLoggerFromContext is used to get a logger from context
// If context based logger is not found base logger is returned
func GetLoggerFromContext(ctx context.Context) *zap.SugaredLogger {
	if l, ok := ctx.Value(CtxLogger{}).(*zap.SugaredLogger); ok {
		return l
	}

	return logger
}

// GetContextWithLogger extracts the X-Correlation-ID from the request
// Returns the context key and a logger carrying the X-Correlation-ID
func GetContextWithLogger(request *http.Request) (CtxLogger, *zap.SugaredLogger) {
	return CtxLogger{}, GetLoggerWithXCorrelationID(request.Header.Get(common.HeaderXCorrelationID))
}

// RequestWithLogger returns a copy of request whose context is ctx plus the correlated logger.
func RequestWithLogger(ctx context.Context, request *http.Request) *http.Request {
	key, requestLogger := GetContextWithLogger(request)

	return request.WithContext(context.WithValue(ctx, key, requestLogger))
}

// GetLoggerWithXCorrelationID This function accepts a xCorrelationID string,
// Returns a newLogger with the X-Correlation-ID
func GetLoggerWithXCorrelationID(xCorrelationID string) *zap.SugaredLogger {
	if xCorrelationID != "" {
		return logger.With(common.HeaderXCorrelationID, xCorrelationID)
	}

	return logger
}

// WithTurtleID returns a logger from ctx annotated with the turtle record id.
func WithTurtleID(ctx context.Context, turtleID string) *zap.SugaredLogger {
	return GetLoggerFromContext(ctx).With(common.PathParamTurtleID, turtleID)
}

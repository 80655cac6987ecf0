package logging

import (
	"github.com/TakeoffTech/go-telemetry/opencensusx"
	"github.com/jlexm/turtle-tracker-svc/common"
	"os"
)

// init function will initialise the opencensus telemetry when a telemetry project is configured
func init() {
	if os.Getenv(common.EnvOpencensusxProjectID) != "" {
		opencensusx.InitTelemetryWithServiceName(logger, common.ServiceName)
	}
}

package common

import (
	"cloud.google.com/go/firestore"
	"time"
)

const EnvProjectID string = "PROJECT_ID"
const EnvOpencensusxProjectID string = "OPENCENSUSX_PROJECT_ID"
const EnvAuditLogTopic string = "AUDIT_LOG_TOPIC"
const EnvTurtleMessageTopic = "TURTLE_MESSAGE_TOPIC"
const EnvIdentityAPIKey = "IDENTITY_API_KEY"
const EnvBlobS3Bucket = "BLOB_S3_BUCKET"
const EnvBlobS3Region = "BLOB_S3_REGION"
const EnvBlobS3Endpoint = "BLOB_S3_ENDPOINT"
const EnvBlobS3PathStyle = "BLOB_S3_PATH_STYLE"
const EnvBlobPublicBaseURL = "BLOB_PUBLIC_BASE_URL"
const EnvBlobS3AccessKeyID = "BLOB_S3_ACCESS_KEY_ID"
const EnvBlobS3SecretAccessKey = "BLOB_S3_SECRET_ACCESS_KEY"
const DefaultS3Region = "us-east-1"

const ServiceName string = "turtle-tracker-svc"
const TurtlesCollection string = "turtles"
const TurtleAuditCollection string = "turtle-audit"
const TurtleImagesPrefix string = "turtle_images"

const TurtlePath string = "/turtles/"
const TurtleAdminPath string = "/admin/turtle/"

const PathParamTurtleID string = "turtle_id"

const MaxRetryCount int = 3
const DefaultPageSize int = 25
const DataRetentionTime = time.Hour * 24 * 90 // 90 days
const SessionCacheTime = time.Minute * 15     // 15 minutes
const IDTokenLifetime = time.Hour
const ExpireTokenDuration float64 = 15        //in minutes
const APIVersionV1 string = "v1"
const MaxImageBytes int64 = 10 << 20 // 10 MiB
const DefaultPresignExpiry = time.Hour * 24 * 7
const DefaultScanTimeout = time.Second * 5
const MaxScanTimeout = time.Second * 30

const HeaderAcceptVersion string = "Accept-Version"
const HeaderXCorrelationID string = "X-Correlation-ID"
const HeaderAuthorization string = "Authorization"
const HeaderLastModified string = "Last-Modified"
const HeaderLocation string = "Location"
const HeaderEtag string = "ETag"
const HeaderIfMatch string = "If-Match"
const HeaderPageToken string = "page_token"
const HeaderPageSize string = "page_size"
const HeaderNextPageToken string = "next_page_token"

const HeaderContentType string = "Content-Type"
const ContentTypeApplicationJSON string = "application/json"
const ContentTypeMultipartForm string = "multipart/form-data"
const BearerPrefix string = "Bearer "

const FormFieldTurtle string = "turtle"
const FormFieldImage string = "image"

const ID string = "id"
const ETag string = "etag"
const ChangedAt string = "changed_at"
const CreatedAt string = "createdAt"

const TimeParseFormat string = "2006-01-02 15:04:05 -0700 MST"
const DateFormat string = "2006-01-02"

const Firestore string = "firestore"
const Disallowed string = "disallowed"
const Validate string = "validate"

const EntityTurtle string = "turtle"

const AuditTypeCreate string = "create"
const AuditTypeUpdate string = "update"

const RandomIDLength int = 5
const ColonSeparator string = "::::"
const Underscore = "_"
const TurtlesEncryptionKey = "Q7vLm2XpT9rKc4Nw" + EntityTurtle

const SortAscending = firestore.Asc
const SortDescending = firestore.Desc

const ImageUpdated = "Updated"
const ImageNotUpdated = "Not Updated"
const NoChange = "No Change"

const MinPageSize = 2
const MaxPageSize = 100
const ReturnError = -1
const OperatorEquals string = "=="

const ChangeTypeCreate string = "create"
const ChangeTypeUpdate string = "update"
const ChangeTypeDelete string = "delete"

func GetMandatoryHeaders() []string {
	return []string{
		HeaderAcceptVersion, HeaderXCorrelationID,
	}
}

func GetSupportedVersions() []string {
	return []string{
		APIVersionV1,
	}
}

package cloud

import (
	"cloud.google.com/go/firestore"
	"context"
	"time"
)

// Mutator receives the current data of a document inside a transaction and returns the
// updates to write. Returning an error aborts the transaction without writing.
type Mutator func(data map[string]interface{}) ([]firestore.Update, error)

// DB interface
// This interface is a common interface for the DB operations
type DB interface {
	GetAll(ctx context.Context, collectionPath string, pageDetails Page,
		whereClauses []Where) ([]map[string]interface{}, string, error)
	ListAll(ctx context.Context, collectionPath string) ([]map[string]interface{}, error)
	GetByID(ctx context.Context, collectionPath string, documentID string) (map[string]interface{}, error)
	NewDocumentID(collectionPath string) string
	Save(ctx context.Context,
		collectionPath string, documentID string, document interface{}) (time.Time, error)
	UpdateInTransaction(ctx context.Context, collectionPath string, documentID string, mutate Mutator) error
	Delete(ctx context.Context, collectionPath string, documentID string) (bool, error)
}

// Queue interface
// This interface is a common interface for the Queue/PubSub operations
type Queue interface {
	Publish(ctx context.Context, topicName string, message any)
}

// Blob interface
// This interface is a common interface for the binary object store
type Blob interface {
	Put(ctx context.Context, path string, data []byte, contentType string) error
	GetURL(ctx context.Context, path string) (string, error)
}

type Page struct {
	StartAfterID any
	PageSize     int
	OrderBy      string
	Sort         firestore.Direction
}

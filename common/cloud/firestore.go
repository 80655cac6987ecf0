package cloud

import (
	"cloud.google.com/go/firestore"
	"context"
	"errors"
	"github.com/benpate/rosetta/convert"
	"github.com/jlexm/turtle-tracker-svc/common"
	"github.com/jlexm/turtle-tracker-svc/common/logging"
	"github.com/jlexm/turtle-tracker-svc/common/utils"
	"go.opencensus.io/trace"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"log"
	"os"
	"time"
)

type FirestoreRepository struct {
	client *firestore.Client
	logger *zap.SugaredLogger
}

type Where struct {
	Field    string
	Operator string
	Value    interface{}
}

var FirestoreRepositoryObj FirestoreRepository

// NewFirestoreRepository creates a FirestoreRepositoryObj
func NewFirestoreRepository(ctx context.Context) *FirestoreRepository {
	ctx, span := trace.StartSpan(ctx, utils.GetSpanName("firestore.NewFirestoreRepository"))
	defer span.End()
	FirestoreRepositoryObj.logger = logging.GetLoggerFromContext(ctx)
	if FirestoreRepositoryObj.client != nil {
		return &FirestoreRepositoryObj
	}
	firestoreClient, err := firestore.NewClient(ctx, os.Getenv(common.EnvProjectID))
	if err != nil {
		log.Fatalf("Failed to create firestore client: %v", err)
	}
	FirestoreRepositoryObj.client = firestoreClient

	return &FirestoreRepositoryObj
}

// Close releases the shared firestore client
func (f *FirestoreRepository) Close() error {
	if f.client == nil {
		return nil
	}
	err := f.client.Close()
	f.client = nil

	return err
}

// withID returns the document data with the document id injected under "id"
func withID(doc *firestore.DocumentSnapshot) map[string]interface{} {
	data := doc.Data()
	if data == nil {
		data = map[string]interface{}{}
	}
	data[common.ID] = doc.Ref.ID

	return data
}

// NewDocumentID allocates a fresh auto-generated document id under collectionPath
func (f *FirestoreRepository) NewDocumentID(collectionPath string) string {
	return f.client.Collection(collectionPath).NewDoc().ID
}

// Save function will create the document in the DB with the given collectionPath and documentID
// It fails with codes.AlreadyExists when the document is already present
func (f *FirestoreRepository) Save(ctx context.Context,
	collectionPath string, documentID string, document interface{}) (time.Time, error) {
	ctx, span := trace.StartSpan(ctx, utils.GetSpanName("firestore.Save"))
	defer span.End()
	result, err := f.client.Collection(collectionPath).Doc(documentID).Create(ctx, document)
	if err != nil {
		f.logger.Errorf("Error occurred while saving the document to DB : %v", err)

		return time.Time{}, err
	}

	return result.UpdateTime, nil
}

// GetByID returns a single document for the passed collectionPath and documentID
// A missing document is reported as a codes.NotFound status error
func (f *FirestoreRepository) GetByID(ctx context.Context,
	collectionPath string, documentID string) (map[string]interface{}, error) {
	ctx, span := trace.StartSpan(ctx, utils.GetSpanName("firestore.GetByID"))
	defer span.End()
	doc, err := f.client.Collection(collectionPath).Doc(documentID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			f.logger.Debugf("Document ID %s not found", documentID)

			return nil, status.Error(codes.NotFound, "document not found")
		}

		return nil, err
	}

	return withID(doc), nil
}

// UpdateInTransaction reads the document, lets mutate compute the updates against the fresh data
// and writes them, all within one firestore transaction. Concurrent writers are serialized by
// firestore, which retries the transaction on contention.
func (f *FirestoreRepository) UpdateInTransaction(ctx context.Context,
	collectionPath string, documentID string, mutate Mutator) error {
	ctx, span := trace.StartSpan(ctx, utils.GetSpanName("firestore.UpdateInTransaction"))
	defer span.End()
	ref := f.client.Collection(collectionPath).Doc(documentID)
	err := f.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}
		updates, err := mutate(withID(doc))
		if err != nil {
			return err
		}

		return tx.Update(ref, updates)
	})
	if err != nil && status.Code(err) != codes.NotFound {
		f.logger.Errorf("Error occurred while updating the document in DB : %v", err)
	}

	return err
}

// GetAll will return one page of documents under the collectionPath matching whereClauses
// The second return value is the cursor to start the next page after
func (f *FirestoreRepository) GetAll(ctx context.Context,
	collectionPath string, pageDetails Page, whereClauses []Where) ([]map[string]interface{}, string, error) {
	ctx, span := trace.StartSpan(ctx, utils.GetSpanName("firestore.GetAll"))
	defer span.End()
	query := f.client.Collection(collectionPath).OrderBy(pageDetails.OrderBy, pageDetails.Sort)
	//Check if the startAfterID is zero value which means we don't have to add startAfter in the query
	var zeroStartAfterID bool
	switch startAfterID := pageDetails.StartAfterID.(type) {
	case time.Time:
		zeroStartAfterID = startAfterID.IsZero()
	default:
		zeroStartAfterID = convert.IsZeroValue(startAfterID)
	}
	if !zeroStartAfterID {
		query = query.StartAfter(pageDetails.StartAfterID)
	}
	if pageDetails.PageSize > 0 {
		query = query.Limit(pageDetails.PageSize)
	}

	//Add all where clauses to the query
	for _, where := range whereClauses {
		query = query.Where(where.Field, where.Operator, where.Value)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		f.logger.Errorf("Error occurred while fetching the documents from DB : %v", err)

		return nil, "", err
	}

	var lastDocID string
	if len(docs) > 0 {
		last := docs[len(docs)-1]
		if pageDetails.OrderBy == firestore.DocumentID {
			lastDocID = last.Ref.ID
		} else {
			lastDocID = convert.StringDefault(last.Data()[pageDetails.OrderBy], "")
		}
	}

	result := make([]map[string]interface{}, 0, len(docs))
	for _, doc := range docs {
		result = append(result, withID(doc))
	}

	return result, lastDocID, nil
}

// ListAll streams every document of collectionPath
func (f *FirestoreRepository) ListAll(ctx context.Context, collectionPath string) ([]map[string]interface{}, error) {
	ctx, span := trace.StartSpan(ctx, utils.GetSpanName("firestore.ListAll"))
	defer span.End()
	var result []map[string]interface{}
	docItr := f.client.Collection(collectionPath).Documents(ctx)
	defer docItr.Stop()
	for {
		doc, err := docItr.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			f.logger.Errorf("Error occurred while listing documents from DB: %v", err)

			return nil, err
		}
		result = append(result, withID(doc))
	}

	return result, nil
}

// Delete function will delete the document id provided under the collection path
// A missing document is reported as a codes.NotFound status error
func (f *FirestoreRepository) Delete(ctx context.Context, collectionPath string,
	documentID string) (bool, error) {
	ctx, span := trace.StartSpan(ctx, utils.GetSpanName("firestore.Delete"))
	defer span.End()
	_, err := f.client.Collection(collectionPath).Doc(documentID).Delete(ctx, firestore.Exists)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			f.logger.Debugf("Document ID %s not found for delete", documentID)

			return false, err
		}
		f.logger.Errorf("Error occurred while deleting the document from DB : %v", err)

		return false, err
	}

	return true, nil
}

package turtles

import (
	"cloud.google.com/go/firestore"
	"encoding/json"
	"errors"
	"github.com/jlexm/turtle-tracker-svc/common"
	"github.com/jlexm/turtle-tracker-svc/common/cloud"
	"github.com/jlexm/turtle-tracker-svc/common/models"
	"github.com/jlexm/turtle-tracker-svc/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func turtlesPage(startAfter string, pageSize int) cloud.Page {
	return cloud.Page{
		StartAfterID: startAfter,
		PageSize:     pageSize,
		OrderBy:      firestore.DocumentID,
		Sort:         common.SortAscending,
	}
}

func Test_getTurtlesHandler(t *testing.T) {
	rescued := time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 4, 20, 10, 0, 0, 0, time.UTC)

	t.Run("Invalid page_size", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := signedInRequest(http.MethodGet, "/turtles", "")
		r.Header.Set(common.HeaderPageSize, "1000")
		getTurtlesHandler(w, r, mocks.NewAuthenticator(t), mocks.NewDB(t))
		response := w.Result()
		assert.Equal(t, http.StatusBadRequest, response.StatusCode)
		bytes, _ := io.ReadAll(response.Body)
		assert.Equal(t, "{\"code\":400,\"message\":\"Request validation failed\",\"errors\":[\"page_size must be between 2 to 100\"]}", string(bytes))
	})

	t.Run("Invalid page_token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := signedInRequest(http.MethodGet, "/turtles", "")
		r.Header.Set(common.HeaderPageToken, "not-a-token")
		getTurtlesHandler(w, r, mocks.NewAuthenticator(t), mocks.NewDB(t))
		assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
	})

	t.Run("Full page returns a token that continues after the last id", func(t *testing.T) {
		db := mocks.NewDB(t)
		db.On("GetAll", mock.Anything, common.TurtlesCollection, turtlesPage("", 2), mock.Anything).
			Return([]map[string]interface{}{
				storedTurtle("t1", rescued, createdAt),
				storedTurtle("t2", rescued, createdAt),
			}, "t2", nil)
		db.On("GetAll", mock.Anything, common.TurtlesCollection, turtlesPage("t2", 2), mock.Anything).
			Return([]map[string]interface{}{storedTurtle("t3", rescued, createdAt)}, "t3", nil)
		authenticator := signedIn(t)

		w := httptest.NewRecorder()
		r := signedInRequest(http.MethodGet, "/turtles", "")
		r.Header.Set(common.HeaderPageSize, "2")
		getTurtlesHandler(w, r, authenticator, db)
		response := w.Result()
		require.Equal(t, http.StatusOK, response.StatusCode)
		var turtles []models.Turtle
		require.NoError(t, json.NewDecoder(response.Body).Decode(&turtles))
		require.Len(t, turtles, 2)
		assert.NotEmpty(t, turtles[0].ETag)
		token := response.Header.Get(common.HeaderNextPageToken)
		require.NotEmpty(t, token)

		w = httptest.NewRecorder()
		r = signedInRequest(http.MethodGet, "/turtles", "")
		r.Header.Set(common.HeaderPageSize, "2")
		r.Header.Set(common.HeaderPageToken, token)
		getTurtlesHandler(w, r, authenticator, db)
		response = w.Result()
		require.Equal(t, http.StatusOK, response.StatusCode)
		require.NoError(t, json.NewDecoder(response.Body).Decode(&turtles))
		require.Len(t, turtles, 1)
		assert.Equal(t, "t3", turtles[0].ID)
		assert.Empty(t, response.Header.Get(common.HeaderNextPageToken))
	})

	t.Run("No turtles", func(t *testing.T) {
		db := mocks.NewDB(t)
		db.On("GetAll", mock.Anything, common.TurtlesCollection, turtlesPage("", common.DefaultPageSize), mock.Anything).
			Return([]map[string]interface{}{}, "", nil)
		w := httptest.NewRecorder()
		getTurtlesHandler(w, signedInRequest(http.MethodGet, "/turtles", ""), signedIn(t), db)
		response := w.Result()
		assert.Equal(t, http.StatusOK, response.StatusCode)
		bytes, _ := io.ReadAll(response.Body)
		assert.Equal(t, "[]", string(bytes))
	})

	t.Run("DB Down", func(t *testing.T) {
		db := mocks.NewDB(t)
		db.On("GetAll", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, "", errors.New("connection Timeout"))
		w := httptest.NewRecorder()
		getTurtlesHandler(w, signedInRequest(http.MethodGet, "/turtles", ""), signedIn(t), db)
		assert.Equal(t, http.StatusInternalServerError, w.Result().StatusCode)
	})
}

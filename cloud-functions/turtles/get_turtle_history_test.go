package turtles

import (
	"encoding/json"
	turtleModels "github.com/jlexm/turtle-tracker-svc/cloud-functions/turtles/models"
	"github.com/jlexm/turtle-tracker-svc/common"
	"github.com/jlexm/turtle-tracker-svc/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func Test_getTurtleHistoryHandler(t *testing.T) {
	rescued := time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 4, 20, 10, 0, 0, 0, time.UTC)
	editedAt := time.Date(2025, 4, 21, 9, 30, 0, 0, time.UTC)

	t.Run("Most recent entry first", func(t *testing.T) {
		db := mocks.NewDB(t)
		stored := storedTurtle("t1", rescued, createdAt)
		stored["history"] = append(stored["history"].([]interface{}), map[string]interface{}{
			"date":    editedAt,
			"changes": map[string]interface{}{"weight": 5.2, "image": common.ImageNotUpdated},
		})
		stored["updateDate"] = editedAt
		db.On("GetByID", mock.Anything, common.TurtlesCollection, "t1").Return(stored, nil)
		w := httptest.NewRecorder()
		getTurtleHistoryHandler(w, signedInRequest(http.MethodGet, "/turtles/t1/history", ""), signedIn(t), db)
		response := w.Result()
		require.Equal(t, http.StatusOK, response.StatusCode)
		var history turtleModels.History
		require.NoError(t, json.NewDecoder(response.Body).Decode(&history))
		assert.Equal(t, "t1", history.ID)
		require.Len(t, history.Entries, 2)
		assert.True(t, history.Entries[0].Latest)
		assert.False(t, history.Entries[1].Latest)
		assert.True(t, editedAt.Equal(*history.Entries[0].Date))
		assert.Equal(t, common.ImageNotUpdated, history.Entries[0].Changes["image"])
		assert.Equal(t, common.NoChange, history.Entries[0].Display["image"])
		assert.Equal(t, common.ImageUpdated, history.Entries[1].Display["image"])
	})

	t.Run("Turtle not found", func(t *testing.T) {
		db := mocks.NewDB(t)
		db.On("GetByID", mock.Anything, common.TurtlesCollection, "nope").
			Return(nil, status.Error(codes.NotFound, "document not found"))
		w := httptest.NewRecorder()
		getTurtleHistoryHandler(w, signedInRequest(http.MethodGet, "/turtles/nope/history", ""), signedIn(t), db)
		assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
	})

	t.Run("Wrong path", func(t *testing.T) {
		w := httptest.NewRecorder()
		getTurtleHistoryHandler(w, signedInRequest(http.MethodGet, "/turtles/t1", ""), mocks.NewAuthenticator(t), mocks.NewDB(t))
		assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
	})
}

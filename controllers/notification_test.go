package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"plantmon/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetNotificationsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	r := testRouter()
	user := createUser(t, db, "alice")
	other := createUser(t, db, "bob")

	for _, msg := range []string{"first", "second"} {
		n := models.Notification{UserID: user.ID, Message: msg, Type: models.NotificationLowMoisture}
		require.NoError(t, db.Create(&n).Error)
	}
	require.NoError(t, db.Create(&models.Notification{UserID: other.ID, Message: "not yours", Type: models.NotificationSystemAlert}).Error)

	w := authedJSON(t, r, user.ID, http.MethodGet, "/notifications", "")
	require.Equal(t, http.StatusOK, w.Code)

	var notifications []models.Notification
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &notifications))
	require.Len(t, notifications, 2, "only the caller's notifications are returned")
}

func TestMarkNotificationRead(t *testing.T) {
	db := setupTestDB(t)
	r := testRouter()
	user := createUser(t, db, "alice")

	n := models.Notification{UserID: user.ID, Message: "needs water", Type: models.NotificationLowMoisture}
	require.NoError(t, db.Create(&n).Error)

	w := authedJSON(t, r, user.ID, http.MethodPut, fmt.Sprintf("/notifications/%d/read", n.ID), "")
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.First(&n, n.ID).Error)
	assert.True(t, n.IsRead)
}

func TestMarkNotificationReadForeignNotification(t *testing.T) {
	db := setupTestDB(t)
	r := testRouter()
	owner := createUser(t, db, "alice")
	intruder := createUser(t, db, "bob")

	n := models.Notification{UserID: owner.ID, Message: "needs water", Type: models.NotificationLowMoisture}
	require.NoError(t, db.Create(&n).Error)

	w := authedJSON(t, r, intruder.ID, http.MethodPut, fmt.Sprintf("/notifications/%d/read", n.ID), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	require.NoError(t, db.First(&n, n.ID).Error)
	assert.False(t, n.IsRead)
}

func TestNotificationsRequireToken(t *testing.T) {
	setupTestDB(t)
	r := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

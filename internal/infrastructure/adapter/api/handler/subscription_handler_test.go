package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/perna2k6/pernateste/internal/domain/entity"
	"github.com/perna2k6/pernateste/internal/domain/port/persistence"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/logger"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/repository/memory"
	timeprovider "github.com/perna2k6/pernateste/internal/infrastructure/adapter/time"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubscriptionRouter(subscriptions persistence.SubscriptionRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/subscriptions", NewSubscriptionHandler(subscriptions, logger.NewNoopLogger()).GetActive)
	return router
}

func TestSubscriptionGetActiveEndpoint(t *testing.T) {
	tp := timeprovider.NewRealTimeProvider()

	t.Run("current subscription is returned", func(t *testing.T) {
		store := memory.NewStore(tp)
		now := tp.Now()
		require.NoError(t, store.Subscriptions().Create(context.Background(), &entity.Subscription{
			UserID:        7,
			TransactionID: 1,
			PlanCode:      entity.PlanPremium,
			Status:        entity.SubscriptionActive,
			StartsAt:      now,
			EndsAt:        now.AddDate(0, 1, 0),
			CreatedAt:     now,
		}))
		router := newSubscriptionRouter(store.Subscriptions())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/subscriptions?userId=7", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Success bool `json:"success"`
			Data    struct {
				UserID   uint64 `json:"userId"`
				PlanCode string `json:"planCode"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, uint64(7), body.Data.UserID)
		assert.Equal(t, entity.PlanPremium, body.Data.PlanCode)
	})

	t.Run("no active subscription is a success with null data", func(t *testing.T) {
		store := memory.NewStore(tp)
		router := newSubscriptionRouter(store.Subscriptions())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/subscriptions?userId=7", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "true", string(body["success"]))
		assert.Equal(t, "null", string(body["data"]))
	})

	t.Run("expired subscription reads as none", func(t *testing.T) {
		store := memory.NewStore(tp)
		now := tp.Now()
		require.NoError(t, store.Subscriptions().Create(context.Background(), &entity.Subscription{
			UserID:        7,
			TransactionID: 1,
			PlanCode:      entity.PlanBasic,
			Status:        entity.SubscriptionActive,
			StartsAt:      now.AddDate(0, -2, 0),
			EndsAt:        now.Add(-time.Hour),
			CreatedAt:     now.AddDate(0, -2, 0),
		}))
		router := newSubscriptionRouter(store.Subscriptions())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/subscriptions?userId=7", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "null", string(body["data"]))
	})

	t.Run("malformed userId returns 400", func(t *testing.T) {
		store := memory.NewStore(tp)
		router := newSubscriptionRouter(store.Subscriptions())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/subscriptions?userId=abc", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

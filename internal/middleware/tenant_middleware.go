package middleware

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/repositories"
	"resto_pos_backend/internal/tenant"
	"resto_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Context keys for values set by TenantMiddleware.
const (
	ctxKeyTenantDB   = "tenantDB"
	ctxKeyRestaurant = "tenantRestaurant"
)

// restaurantIDBody is the minimal body shape used to sniff the restaurant
// identifier out of JSON payloads.
type restaurantIDBody struct {
	RestaurantID string `json:"restaurantId"`
}

// TenantMiddleware resolves the restaurant a request belongs to and attaches
// the tenant database handle to the request context. The restaurant code is
// taken from the x-restaurant-id header first, then a restaurantId JSON body
// field, then a restaurantId query parameter. The code is verified against
// the registry on every request; an unknown code is a 404 regardless of how
// it was supplied.
func TenantMiddleware(masterRepo repositories.MasterRepository, pool *tenant.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := extractRestaurantCode(c)
		if code == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Restaurant ID is required.", "supply x-restaurant-id header, restaurantId body field or restaurantId query parameter"))
			return
		}

		if sessionCode, ok := SessionRestaurantCode(c); ok && sessionCode != code {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Session is not valid for this restaurant.", ""))
			return
		}

		restaurant, err := masterRepo.FindRestaurantByCode(code)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Invalid restaurant ID.", ""))
				return
			}
			utils.LogError(err, "TenantMiddleware: registry lookup failed for code "+code)
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to resolve restaurant.", "Internal error"))
			return
		}

		db, err := pool.Get(restaurant.Code, restaurant.DatabaseURL)
		if err != nil {
			utils.LogError(err, "TenantMiddleware: could not open tenant database for code "+code)
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to connect to restaurant database.", "Internal error"))
			return
		}

		c.Set(ctxKeyTenantDB, db)
		c.Set(ctxKeyRestaurant, restaurant)
		c.Next()
	}
}

// extractRestaurantCode reads the restaurant code from the header, body or
// query, in that order. When read from the body, the body is restored so the
// handler can still bind it.
func extractRestaurantCode(c *gin.Context) string {
	if code := c.GetHeader("x-restaurant-id"); code != "" {
		return code
	}

	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err == nil {
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			var body restaurantIDBody
			if json.Unmarshal(bodyBytes, &body) == nil && body.RestaurantID != "" {
				return body.RestaurantID
			}
		}
	}

	return c.Query("restaurantId")
}

// TenantDB returns the tenant database handle resolved for this request.
func TenantDB(c *gin.Context) (*sql.DB, bool) {
	v, exists := c.Get(ctxKeyTenantDB)
	if !exists {
		return nil, false
	}
	db, ok := v.(*sql.DB)
	return db, ok
}

// RequestRestaurant returns the registry row of the restaurant resolved for
// this request.
func RequestRestaurant(c *gin.Context) (*models.Restaurant, bool) {
	v, exists := c.Get(ctxKeyRestaurant)
	if !exists {
		return nil, false
	}
	r, ok := v.(*models.Restaurant)
	return r, ok
}

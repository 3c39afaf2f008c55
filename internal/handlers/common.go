package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"resto_pos_backend/internal/middleware"
	"resto_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// mustTenantDB fetches the tenant handle resolved by TenantMiddleware. A
// missing handle means the route is wired without the middleware, which is a
// server bug, not a client error.
func mustTenantDB(c *gin.Context) (*sql.DB, bool) {
	db, ok := middleware.TenantDB(c)
	if !ok {
		utils.LogError(errors.New("tenant database not in context"), "handler reached without tenant middleware")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Restaurant context missing.", "Internal error"))
		return nil, false
	}
	return db, true
}

// pathID parses the named path parameter as an int64 ID.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid "+name+" parameter.", c.Param(name)))
		return 0, false
	}
	return id, true
}

// optionalQueryInt64 parses an optional int64 query parameter.
func optionalQueryInt64(c *gin.Context, name string) *int64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// optionalQueryString returns a pointer to a query parameter, or nil when absent.
func optionalQueryString(c *gin.Context, name string) *string {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	return &raw
}

// optionalQueryBool parses an optional boolean query parameter.
func optionalQueryBool(c *gin.Context, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

// queryInt parses an int query parameter with a fallback.
func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func respondInternal(c *gin.Context, message string) {
	utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, message, "Internal error"))
}

package units

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"parking-app/database"
	"parking-app/internal/app/http/middleware"
	"parking-app/internal/domain/associations"
	"parking-app/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(middleware.AuthMiddleware(middleware.HMACVerifier{Key: []byte(testutil.JWTSecret)}))
	r.GET("/units", ListUnits)
	r.GET("/units/:id", GetUnit)
	r.POST("/admin/units", CreateUnit)
	return r
}

func call(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUnitsHandlers(t *testing.T) {
	db := testutil.NewTestDB(t)
	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	a := testutil.SeedAssociation(t, db, associations.Association{})
	own := testutil.SeedUnit(t, db, a.ID, "1A", testutil.IntPtr(2))
	testutil.SeedUnit(t, db, a.ID, "1B", nil)
	r := newRouter(t)

	resident := testutil.Token(t, "res-1", "resident", own.ID)
	manager := testutil.Token(t, "mgr-1", "manager", "")

	t.Run("resident sees only their unit", func(t *testing.T) {
		w := call(r, http.MethodGet, "/units", resident, "")
		require.Equal(t, http.StatusOK, w.Code)
		var list []UnitDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		require.Len(t, list, 1)
		assert.Equal(t, own.ID, list[0].ID)
	})

	t.Run("manager sees the association", func(t *testing.T) {
		w := call(r, http.MethodGet, "/units?association_id="+a.ID, manager, "")
		require.Equal(t, http.StatusOK, w.Code)
		var list []UnitDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Len(t, list, 2)
	})

	t.Run("unbound resident gets an empty list", func(t *testing.T) {
		w := call(r, http.MethodGet, "/units", testutil.Token(t, "res-x", "resident", ""), "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("get unit", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/units/"+own.ID, resident, "").Code)
		assert.Equal(t, http.StatusNotFound, call(r, http.MethodGet, "/units/missing", manager, "").Code)
		assert.Equal(t, http.StatusForbidden, call(r, http.MethodGet, "/units/missing", resident, "").Code)
	})

	t.Run("create unit", func(t *testing.T) {
		w := call(r, http.MethodPost, "/admin/units", manager, `{"association_id":"`+a.ID+`","unit_number":" 2C ","bedrooms":3}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var dto UnitDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
		assert.Equal(t, "2C", dto.UnitNumber)
		require.NotNil(t, dto.Bedrooms)
		assert.Equal(t, 3, *dto.Bedrooms)

		w = call(r, http.MethodPost, "/admin/units", manager, `{"association_id":"missing","unit_number":"9"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = call(r, http.MethodPost, "/admin/units", manager, `{"association_id":"`+a.ID+`","unit_number":"9","bedrooms":-1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

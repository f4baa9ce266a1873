package cartControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopall-store/storefront-api/catalog"
	"github.com/shopall-store/storefront-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.CartItem{}))
	require.NoError(t, db.Create(&models.Product{
		ID:    catalog.ToUUID("1"),
		Name:  "Classic Runner",
		Price: 120,
		Stock: 25,
	}).Error)
	return db
}

func setupRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	r.GET("/api/cart", GetCart(db))
	r.POST("/api/cart", UpsertCartItem(db))
	r.DELETE("/api/cart", DeleteCartItem(db))
	return r
}

func postCart(t *testing.T, r *gin.Engine, input CartItemInput) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(input)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cart", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestUpsertReplacesQuantityOnSameLine(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db, "user-1")

	w := postCart(t, r, CartItemInput{ProductID: "1", Quantity: 2, SelectedColor: "black", SelectedSize: 9})
	require.Equal(t, http.StatusOK, w.Code)

	w = postCart(t, r, CartItemInput{ProductID: "1", Quantity: 5, SelectedColor: "black", SelectedSize: 9})
	require.Equal(t, http.StatusOK, w.Code)

	var items []models.CartItem
	require.NoError(t, db.Find(&items).Error)
	require.Len(t, items, 1, "same conflict key must upsert, not insert")
	assert.Equal(t, 5, items[0].Quantity, "request quantity replaces the row quantity")
}

func TestUpsertAcceptsShortAndUUIDIDs(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db, "user-1")

	w := postCart(t, r, CartItemInput{ProductID: "1", Quantity: 1, SelectedColor: "white", SelectedSize: 8})
	require.Equal(t, http.StatusOK, w.Code)
	w = postCart(t, r, CartItemInput{ProductID: catalog.ToUUID("1"), Quantity: 3, SelectedColor: "white", SelectedSize: 8})
	require.Equal(t, http.StatusOK, w.Code)

	var items []models.CartItem
	require.NoError(t, db.Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, catalog.ToUUID("1"), items[0].ProductID)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestUpsertDifferentSizeCreatesNewLine(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db, "user-1")

	postCart(t, r, CartItemInput{ProductID: "1", Quantity: 1, SelectedColor: "black", SelectedSize: 9})
	postCart(t, r, CartItemInput{ProductID: "1", Quantity: 1, SelectedColor: "black", SelectedSize: 10})

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestUpsertUnknownProductIs400(t *testing.T) {
	r := setupRouter(setupTestDB(t), "user-1")

	w := postCart(t, r, CartItemInput{ProductID: "999", Quantity: 1, SelectedColor: "black"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "Product does not exist"}`, w.Body.String())
}

func TestGetCartReturnsOnlyOwnRows(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.CartItem{
		UserID: "user-2", ProductID: catalog.ToUUID("1"), SelectedColor: "red", Quantity: 1,
	}).Error)

	r := setupRouter(db, "user-1")
	postCart(t, r, CartItemInput{ProductID: "1", Quantity: 2, SelectedColor: "black", SelectedSize: 9})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []models.CartItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "user-1", resp.Items[0].UserID)
	assert.Equal(t, "Classic Runner", resp.Items[0].Product.Name)
}

func TestDeleteByProductAndColor(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db, "user-1")
	postCart(t, r, CartItemInput{ProductID: "1", Quantity: 1, SelectedColor: "black", SelectedSize: 9})
	postCart(t, r, CartItemInput{ProductID: "1", Quantity: 1, SelectedColor: "white", SelectedSize: 9})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/cart?product_id=1&color=black", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var items []models.CartItem
	require.NoError(t, db.Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, "white", items[0].SelectedColor)
}

func TestDeleteWithoutFiltersClearsCart(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db, "user-1")
	postCart(t, r, CartItemInput{ProductID: "1", Quantity: 1, SelectedColor: "black", SelectedSize: 9})
	postCart(t, r, CartItemInput{ProductID: "1", Quantity: 1, SelectedColor: "white", SelectedSize: 8})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/cart", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", "user-1").Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

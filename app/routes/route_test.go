package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Rakhulsr/asili-market/app/configs"
	"github.com/Rakhulsr/asili-market/app/db/testdb"
	"github.com/Rakhulsr/asili-market/app/models"
	"github.com/Rakhulsr/asili-market/app/repositories"
	"github.com/gorilla/mux"
	"github.com/gorilla/securecookie"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	adminUsername = "admin"
	adminPassword = "admin-pass-123"
)

type testServer struct {
	router *mux.Router
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testdb.Open(t)
	router := NewRouter(db, Config{
		Logger: zerolog.Nop(),
		SessionKeys: &configs.SessionKeys{
			AuthKey: securecookie.GenerateRandomKey(32),
			EncKey:  securecookie.GenerateRandomKey(32),
		},
	})
	return &testServer{router: router, db: db}
}

func (s *testServer) doJSONRequest(t *testing.T, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) createUser(t *testing.T, username, password string, isAdmin bool) *models.User {
	t.Helper()
	user := &models.User{Username: username, Password: password, IsAdmin: isAdmin}
	require.NoError(t, repositories.NewUserRepository(s.db).Create(context.Background(), user))
	return user
}

// loginAdmin seeds the admin account and returns its session cookies.
func (s *testServer) loginAdmin(t *testing.T) []*http.Cookie {
	t.Helper()
	s.createUser(t, adminUsername, adminPassword, true)

	rec := s.doJSONRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": adminUsername,
		"password": adminPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func fieldErrors(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	decode(t, rec, &body)
	return body.Fields
}

func validOrderBody() map[string]interface{} {
	return map[string]interface{}{
		"fullName": "Wanjiru Kamau",
		"phone":    "0712345678",
		"address":  "Moi Avenue, Nairobi",
		"notes":    "Call on arrival",
		"items": []map[string]interface{}{
			{"id": 1, "name": "Kiondo Basket", "price": 1950, "image": "/images/kiondo.jpg", "quantity": 1, "category": "Crafts"},
			{"id": 2, "name": "Kenyan Tea", "price": 450, "image": "/images/tea.jpg", "quantity": 2, "category": "Foods & Drinks"},
		},
		"total":         3000,
		"paymentMethod": "cod",
	}
}

func (s *testServer) createCategory(t *testing.T, cookies []*http.Cookie, name, slug string) models.Category {
	t.Helper()
	rec := s.doJSONRequest(t, http.MethodPost, "/api/categories", map[string]interface{}{
		"name": name, "slug": slug, "featured": true,
	}, cookies...)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var category models.Category
	decode(t, rec, &category)
	return category
}

func (s *testServer) createProduct(t *testing.T, cookies []*http.Cookie, name, slug string, categoryID uint, images []string) models.Product {
	t.Helper()
	rec := s.doJSONRequest(t, http.MethodPost, "/api/products", map[string]interface{}{
		"name": name, "slug": slug, "price": 1950, "images": images,
		"categoryId": categoryID, "featured": true, "stock": 10,
	}, cookies...)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var product models.Product
	decode(t, rec, &product)
	return product
}

func TestCategorySlugValidation(t *testing.T) {
	s := newTestServer(t)
	cookies := s.loginAdmin(t)

	rec := s.doJSONRequest(t, http.MethodPost, "/api/categories", map[string]interface{}{
		"name": "Foods & Drinks", "slug": "Foods & Drinks",
	}, cookies...)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, fieldErrors(t, rec), "slug")

	category := s.createCategory(t, cookies, "Foods & Drinks", "foods-drinks")
	assert.NotZero(t, category.ID)
	assert.Equal(t, "foods-drinks", category.Slug)
}

func TestCategoryDeleteIsIdempotent(t *testing.T) {
	s := newTestServer(t)
	cookies := s.loginAdmin(t)
	category := s.createCategory(t, cookies, "Crafts", "crafts")

	path := "/api/categories/" + jsonNumber(category.ID)
	assert.Equal(t, http.StatusNoContent, s.doJSONRequest(t, http.MethodDelete, path, nil, cookies...).Code)
	assert.Equal(t, http.StatusNoContent, s.doJSONRequest(t, http.MethodDelete, path, nil, cookies...).Code)
	assert.Equal(t, http.StatusNoContent, s.doJSONRequest(t, http.MethodDelete, "/api/categories/999", nil, cookies...).Code)
	assert.Equal(t, http.StatusNoContent, s.doJSONRequest(t, http.MethodDelete, "/api/categories/0", nil, cookies...).Code)
	assert.Equal(t, http.StatusNoContent, s.doJSONRequest(t, http.MethodDelete, "/api/products/0", nil, cookies...).Code)
	assert.Equal(t, http.StatusNoContent, s.doJSONRequest(t, http.MethodDelete, "/api/promotions/0", nil, cookies...).Code)
	assert.Equal(t, http.StatusBadRequest, s.doJSONRequest(t, http.MethodDelete, "/api/categories/abc", nil, cookies...).Code)

	rec := s.doJSONRequest(t, http.MethodGet, "/api/categories/crafts", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCategoryUpdate(t *testing.T) {
	s := newTestServer(t)
	cookies := s.loginAdmin(t)
	category := s.createCategory(t, cookies, "Crafts", "crafts")
	path := "/api/categories/" + jsonNumber(category.ID)

	rec := s.doJSONRequest(t, http.MethodPut, path, map[string]interface{}{"name": "Handcrafts"}, cookies...)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated models.Category
	decode(t, rec, &updated)
	assert.Equal(t, "Handcrafts", updated.Name)
	assert.Equal(t, "crafts", updated.Slug)

	rec = s.doJSONRequest(t, http.MethodPut, path, map[string]interface{}{"slug": "Bad Slug"}, cookies...)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.doJSONRequest(t, http.MethodPut, "/api/categories/abc", map[string]interface{}{"name": "X y"}, cookies...)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.doJSONRequest(t, http.MethodPut, "/api/categories/999", map[string]interface{}{"name": "Ghost"}, cookies...)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminRoutesRequireAdminSession(t *testing.T) {
	s := newTestServer(t)

	rec := s.doJSONRequest(t, http.MethodDelete, "/api/categories/1", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.doJSONRequest(t, http.MethodGet, "/api/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	cookies := s.loginAdmin(t)
	require.NoError(t, s.db.Model(&models.User{}).Where("username = ?", adminUsername).Update("is_admin", false).Error)

	rec = s.doJSONRequest(t, http.MethodPost, "/api/categories", map[string]interface{}{"name": "Crafts", "slug": "crafts"}, cookies...)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLoginFlow(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, adminUsername, adminPassword, true)
	s.createUser(t, "shopper", "shopper-pass", false)

	rec := s.doJSONRequest(t, http.MethodPost, "/api/auth/login", map[string]string{"username": adminUsername})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.doJSONRequest(t, http.MethodPost, "/api/auth/login", map[string]string{"username": adminUsername, "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.doJSONRequest(t, http.MethodPost, "/api/auth/login", map[string]string{"username": "ghost", "password": "whatever"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.doJSONRequest(t, http.MethodPost, "/api/auth/login", map[string]string{"username": "shopper", "password": "shopper-pass"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Result().Cookies())

	rec = s.doJSONRequest(t, http.MethodPost, "/api/auth/login", map[string]string{"username": adminUsername, "password": adminPassword})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	var profile models.UserProfile
	decode(t, rec, &profile)
	assert.Equal(t, adminUsername, profile.Username)
	assert.True(t, profile.IsAdmin)
	cookies := rec.Result().Cookies()

	rec = s.doJSONRequest(t, http.MethodGet, "/api/auth/me", nil, cookies...)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &profile)
	assert.Equal(t, adminUsername, profile.Username)

	rec = s.doJSONRequest(t, http.MethodPost, "/api/auth/logout", nil, cookies...)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = s.doJSONRequest(t, http.MethodGet, "/api/auth/me", nil, cookies...)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionStorageFailureIsServerError(t *testing.T) {
	s := newTestServer(t)
	cookies := s.loginAdmin(t)

	require.NoError(t, s.db.Migrator().DropTable(&models.Session{}))

	rec := s.doJSONRequest(t, http.MethodGet, "/api/auth/me", nil, cookies...)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())

	rec = s.doJSONRequest(t, http.MethodGet, "/api/orders", nil, cookies...)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = s.doJSONRequest(t, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeForDeletedUser(t *testing.T) {
	s := newTestServer(t)
	cookies := s.loginAdmin(t)

	require.NoError(t, s.db.Where("username = ?", adminUsername).Delete(&models.User{}).Error)

	rec := s.doJSONRequest(t, http.MethodGet, "/api/auth/me", nil, cookies...)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductImagesRoundTripInOrder(t *testing.T) {
	s := newTestServer(t)
	cookies := s.loginAdmin(t)
	category := s.createCategory(t, cookies, "Crafts", "crafts")

	images := []string{"/images/z.jpg", "https://cdn.example.com/a.jpg", "/images/m.jpg"}
	s.createProduct(t, cookies, "Kiondo Basket", "kiondo-basket", category.ID, images)

	rec := s.doJSONRequest(t, http.MethodGet, "/api/products/kiondo-basket", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var detail struct {
		Images   []string         `json:"images"`
		Category *models.Category `json:"category"`
	}
	decode(t, rec, &detail)
	assert.Equal(t, images, detail.Images)
	require.NotNil(t, detail.Category)
	assert.Equal(t, "crafts", detail.Category.Slug)
}

func TestProductDetailAfterCategoryDeleted(t *testing.T) {
	s := newTestServer(t)
	cookies := s.loginAdmin(t)
	category := s.createCategory(t, cookies, "Crafts", "crafts")
	s.createProduct(t, cookies, "Kiondo Basket", "kiondo-basket", category.ID, []string{"/images/a.jpg"})

	rec := s.doJSONRequest(t, http.MethodDelete, "/api/categories/"+jsonNumber(category.ID), nil, cookies...)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.doJSONRequest(t, http.MethodGet, "/api/products/kiondo-basket", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decode(t, rec, &body)
	embedded, present := body["category"]
	assert.True(t, present)
	assert.Nil(t, embedded)
	assert.EqualValues(t, category.ID, body["categoryId"])
}

func TestProductValidationAndUpdate(t *testing.T) {
	s := newTestServer(t)
	cookies := s.loginAdmin(t)

	rec := s.doJSONRequest(t, http.MethodPost, "/api/products", map[string]interface{}{
		"name": "Kiondo", "slug": "kiondo", "price": 0, "images": []string{}, "categoryId": 1, "stock": 1,
	}, cookies...)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	fields := fieldErrors(t, rec)
	assert.Contains(t, fields, "price")
	assert.Contains(t, fields, "images")

	product := s.createProduct(t, cookies, "Kiondo Basket", "kiondo-basket", 1, []string{"/images/a.jpg"})
	path := "/api/products/" + jsonNumber(product.ID)

	rec = s.doJSONRequest(t, http.MethodPut, path, map[string]interface{}{"price": 2100, "images": []string{"/images/b.jpg", "/images/a.jpg"}}, cookies...)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated models.Product
	decode(t, rec, &updated)
	assert.True(t, updated.Price.Equal(decimal.NewFromInt(2100)))
	assert.Equal(t, []string{"/images/b.jpg", "/images/a.jpg"}, updated.Images)
	assert.Equal(t, "Kiondo Basket", updated.Name)

	assert.Equal(t, http.StatusNotFound, s.doJSONRequest(t, http.MethodPut, "/api/products/999", map[string]interface{}{"stock": 1}, cookies...).Code)
	assert.Equal(t, http.StatusNoContent, s.doJSONRequest(t, http.MethodDelete, path, nil, cookies...).Code)
	assert.Equal(t, http.StatusNotFound, s.doJSONRequest(t, http.MethodGet, "/api/products/kiondo-basket", nil).Code)
}

func TestProductListings(t *testing.T) {
	s := newTestServer(t)
	cookies := s.loginAdmin(t)
	crafts := s.createCategory(t, cookies, "Crafts", "crafts")

	for _, slug := range []string{"p-one", "p-two", "p-three", "p-four", "p-five", "p-six"} {
		s.createProduct(t, cookies, "Product "+slug, slug, crafts.ID, []string{"/images/" + slug + ".jpg"})
	}

	var products []models.Product

	rec := s.doJSONRequest(t, http.MethodGet, "/api/products/new-arrivals", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &products)
	require.Len(t, products, 4)
	assert.Equal(t, "p-six", products[0].Slug)

	rec = s.doJSONRequest(t, http.MethodGet, "/api/products/new-arrivals?limit=2", nil)
	decode(t, rec, &products)
	assert.Len(t, products, 2)

	rec = s.doJSONRequest(t, http.MethodGet, "/api/products/new-arrivals?limit=abc", nil)
	decode(t, rec, &products)
	assert.Len(t, products, 4)

	rec = s.doJSONRequest(t, http.MethodGet, "/api/products/category/"+jsonNumber(crafts.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &products)
	assert.Len(t, products, 6)

	rec = s.doJSONRequest(t, http.MethodGet, "/api/products/category/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.doJSONRequest(t, http.MethodGet, "/api/products/featured", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &products)
	assert.Len(t, products, 6)

	rec = s.doJSONRequest(t, http.MethodGet, "/api/categories/featured", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var categories []models.Category
	decode(t, rec, &categories)
	assert.Len(t, categories, 1)
}

func TestProductSearch(t *testing.T) {
	s := newTestServer(t)
	cookies := s.loginAdmin(t)
	s.createProduct(t, cookies, "Kiondo Basket", "kiondo-basket", 1, []string{"/images/a.jpg"})
	s.createProduct(t, cookies, "Soapstone Bowl", "soapstone-bowl", 1, []string{"/images/b.jpg"})

	rec := s.doJSONRequest(t, http.MethodGet, "/api/products/search?q=BASKET", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var products []models.Product
	decode(t, rec, &products)
	require.Len(t, products, 1)
	assert.Equal(t, "kiondo-basket", products[0].Slug)

	rec = s.doJSONRequest(t, http.MethodGet, "/api/products/search?q=zzz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = s.doJSONRequest(t, http.MethodGet, "/api/products/search", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderMpesaRule(t *testing.T) {
	s := newTestServer(t)

	body := validOrderBody()
	body["paymentMethod"] = "mpesa"
	rec := s.doJSONRequest(t, http.MethodPost, "/api/orders", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Valid M-Pesa code is required for this payment method.", fieldErrors(t, rec)["mpesaCode"])

	body["mpesaCode"] = "QK12345XYZ"
	rec = s.doJSONRequest(t, http.MethodPost, "/api/orders", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	cod := validOrderBody()
	rec = s.doJSONRequest(t, http.MethodPost, "/api/orders", cod)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestOrderRejectsBadInput(t *testing.T) {
	s := newTestServer(t)

	rec := s.doJSONRequest(t, http.MethodPost, "/api/orders", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := validOrderBody()
	body["total"] = 150
	rec = s.doJSONRequest(t, http.MethodPost, "/api/orders", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, fieldErrors(t, rec), "total")

	body = validOrderBody()
	body["phone"] = "0712"
	body["status"] = "completed"
	rec = s.doJSONRequest(t, http.MethodPost, "/api/orders", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	fields := fieldErrors(t, rec)
	assert.Contains(t, fields, "phone")
	assert.Contains(t, fields, "status")

	var count int64
	require.NoError(t, s.db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestOrderCreateAndFetch(t *testing.T) {
	s := newTestServer(t)

	rec := s.doJSONRequest(t, http.MethodPost, "/api/orders", validOrderBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.Order
	decode(t, rec, &created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, models.OrderStatusPending, created.Status)
	assert.Equal(t, models.OrderReference(created.ID), created.Reference)
	assert.WithinDuration(t, time.Now(), created.CreatedAt, time.Minute)

	rec = s.doJSONRequest(t, http.MethodGet, "/api/orders/"+jsonNumber(created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched models.Order
	decode(t, rec, &fetched)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Wanjiru Kamau", fetched.FullName)
	assert.Equal(t, "0712345678", fetched.Phone)
	assert.Equal(t, "Moi Avenue, Nairobi", fetched.Address)
	require.NotNil(t, fetched.Notes)
	assert.Equal(t, "Call on arrival", *fetched.Notes)
	assert.True(t, fetched.Total.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, models.PaymentCOD, fetched.PaymentMethod)
	assert.Nil(t, fetched.MpesaCode)
	require.Len(t, fetched.Items, 2)
	assert.Equal(t, "Kiondo Basket", fetched.Items[0].Name)
	assert.Equal(t, 2, fetched.Items[1].Quantity)
	assert.True(t, fetched.Items[1].Price.Equal(decimal.NewFromInt(450)))

	assert.Equal(t, http.StatusBadRequest, s.doJSONRequest(t, http.MethodGet, "/api/orders/abc", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.doJSONRequest(t, http.MethodGet, "/api/orders/999", nil).Code)
}

func TestOrderRoundTripsSubmittedItems(t *testing.T) {
	s := newTestServer(t)

	items := []map[string]interface{}{
		{"id": 1, "name": "Bowl", "price": 1000, "image": "u", "quantity": 2, "category": "Crafts"},
	}
	rec := s.doJSONRequest(t, http.MethodPost, "/api/orders", map[string]interface{}{
		"fullName":      "Jane Doe",
		"phone":         "0712345678",
		"address":       "123 Rd",
		"paymentMethod": "cod",
		"items":         items,
		"total":         2150,
		"status":        "pending",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	submitted, err := json.Marshal(items)
	require.NoError(t, err)

	var created struct {
		ID     uint            `json:"id"`
		Status string          `json:"status"`
		Items  json.RawMessage `json:"items"`
	}
	decode(t, rec, &created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "pending", created.Status)
	assert.JSONEq(t, string(submitted), string(created.Items))

	var createdOrder models.Order
	decode(t, rec, &createdOrder)

	rec = s.doJSONRequest(t, http.MethodGet, "/api/orders/"+jsonNumber(created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched struct {
		Items json.RawMessage `json:"items"`
	}
	decode(t, rec, &fetched)
	assert.JSONEq(t, string(submitted), string(fetched.Items))

	var fetchedOrder models.Order
	decode(t, rec, &fetchedOrder)
	assert.Equal(t, createdOrder.ID, fetchedOrder.ID)
	assert.Equal(t, createdOrder.Reference, fetchedOrder.Reference)
	assert.Equal(t, "Jane Doe", fetchedOrder.FullName)
	assert.Equal(t, "123 Rd", fetchedOrder.Address)
	assert.Equal(t, createdOrder.Status, fetchedOrder.Status)
	assert.Equal(t, createdOrder.PaymentMethod, fetchedOrder.PaymentMethod)
	assert.True(t, decimal.NewFromInt(2150).Equal(fetchedOrder.Total))
	assert.True(t, createdOrder.CreatedAt.Equal(fetchedOrder.CreatedAt))
}

func TestOrderStatusUpdate(t *testing.T) {
	s := newTestServer(t)
	cookies := s.loginAdmin(t)

	rec := s.doJSONRequest(t, http.MethodPost, "/api/orders", validOrderBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	var order models.Order
	decode(t, rec, &order)
	path := "/api/orders/" + jsonNumber(order.ID) + "/status"

	rec = s.doJSONRequest(t, http.MethodPut, path, map[string]string{"status": "shipped"}, cookies...)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.doJSONRequest(t, http.MethodPut, path, map[string]string{}, cookies...)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.doJSONRequest(t, http.MethodPut, path, map[string]string{"status": "completed"}, cookies...)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated models.Order
	decode(t, rec, &updated)
	assert.Equal(t, models.OrderStatusCompleted, updated.Status)

	rec = s.doJSONRequest(t, http.MethodGet, "/api/orders/"+jsonNumber(order.ID), nil)
	decode(t, rec, &updated)
	assert.Equal(t, models.OrderStatusCompleted, updated.Status)

	rec = s.doJSONRequest(t, http.MethodPut, path, map[string]string{"status": "pending"}, cookies...)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.doJSONRequest(t, http.MethodPut, "/api/orders/99999/status", map[string]string{"status": "completed"}, cookies...)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderStatusTransitionsOverHTTP(t *testing.T) {
	s := newTestServer(t)
	cookies := s.loginAdmin(t)

	newOrder := func() string {
		rec := s.doJSONRequest(t, http.MethodPost, "/api/orders", validOrderBody())
		require.Equal(t, http.StatusCreated, rec.Code)
		var order models.Order
		decode(t, rec, &order)
		return "/api/orders/" + jsonNumber(order.ID) + "/status"
	}
	setStatus := func(path, status string) int {
		return s.doJSONRequest(t, http.MethodPut, path, map[string]string{"status": status}, cookies...).Code
	}

	path := newOrder()
	assert.Equal(t, http.StatusOK, setStatus(path, "pending"))
	assert.Equal(t, http.StatusOK, setStatus(path, "processing"))
	assert.Equal(t, http.StatusOK, setStatus(path, "processing"))
	assert.Equal(t, http.StatusConflict, setStatus(path, "pending"))
	assert.Equal(t, http.StatusOK, setStatus(path, "completed"))
	assert.Equal(t, http.StatusOK, setStatus(path, "completed"))
	assert.Equal(t, http.StatusConflict, setStatus(path, "cancelled"))

	path = newOrder()
	assert.Equal(t, http.StatusOK, setStatus(path, "cancelled"))
	assert.Equal(t, http.StatusConflict, setStatus(path, "pending"))
	assert.Equal(t, http.StatusConflict, setStatus(path, "processing"))
	assert.Equal(t, http.StatusConflict, setStatus(path, "completed"))
	assert.Equal(t, http.StatusOK, setStatus(path, "cancelled"))

	rec := s.doJSONRequest(t, http.MethodGet, strings.TrimSuffix(path, "/status"), nil)
	var order models.Order
	decode(t, rec, &order)
	assert.Equal(t, models.OrderStatusCancelled, order.Status)
}

func TestOrdersListNewestFirst(t *testing.T) {
	s := newTestServer(t)
	cookies := s.loginAdmin(t)

	for i := 0; i < 3; i++ {
		rec := s.doJSONRequest(t, http.MethodPost, "/api/orders", validOrderBody())
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := s.doJSONRequest(t, http.MethodGet, "/api/orders", nil, cookies...)
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []models.Order
	decode(t, rec, &orders)
	require.Len(t, orders, 3)
	assert.Greater(t, orders[0].ID, orders[1].ID)
	assert.Greater(t, orders[1].ID, orders[2].ID)
}

func TestPromotions(t *testing.T) {
	s := newTestServer(t)
	cookies := s.loginAdmin(t)
	crafts := s.createCategory(t, cookies, "Crafts", "crafts")
	s.createProduct(t, cookies, "Kiondo Basket", "kiondo-basket", crafts.ID, []string{"/images/a.jpg"})

	now := time.Now().UTC()
	rec := s.doJSONRequest(t, http.MethodPost, "/api/promotions", map[string]interface{}{
		"title":           "Festive Sale",
		"startDate":       now.Add(-time.Hour),
		"endDate":         now.AddDate(0, 0, 7),
		"isActive":        true,
		"discountPercent": 20,
		"categorySlug":    "crafts",
		"couponCode":      "FESTIVE20",
	}, cookies...)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var promotion models.Promotion
	decode(t, rec, &promotion)

	rec = s.doJSONRequest(t, http.MethodGet, "/api/promotions/active", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var active []models.Promotion
	decode(t, rec, &active)
	require.Len(t, active, 1)

	rec = s.doJSONRequest(t, http.MethodGet, "/api/promotions/"+jsonNumber(promotion.ID)+"/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var discounted []models.DiscountedProduct
	decode(t, rec, &discounted)
	require.Len(t, discounted, 1)
	assert.Equal(t, "1560", discounted[0].DiscountedPrice.String())

	path := "/api/promotions/" + jsonNumber(promotion.ID)
	rec = s.doJSONRequest(t, http.MethodPut, path, map[string]interface{}{"endDate": now.AddDate(0, 0, -3)}, cookies...)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, fieldErrors(t, rec), "endDate")

	rec = s.doJSONRequest(t, http.MethodPut, path, map[string]interface{}{"isActive": false}, cookies...)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.doJSONRequest(t, http.MethodGet, "/api/promotions/active", nil)
	assert.JSONEq(t, `[]`, rec.Body.String())

	assert.Equal(t, http.StatusNoContent, s.doJSONRequest(t, http.MethodDelete, path, nil, cookies...).Code)
	assert.Equal(t, http.StatusNotFound, s.doJSONRequest(t, http.MethodPut, path, map[string]interface{}{"isActive": true}, cookies...).Code)
}

func TestDashboardStats(t *testing.T) {
	s := newTestServer(t)
	cookies := s.loginAdmin(t)
	s.createProduct(t, cookies, "Kiondo Basket", "kiondo-basket", 1, []string{"/images/a.jpg"})

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusCreated, s.doJSONRequest(t, http.MethodPost, "/api/orders", validOrderBody()).Code)
	}
	rec := s.doJSONRequest(t, http.MethodPut, "/api/orders/2/status", map[string]string{"status": "cancelled"}, cookies...)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.doJSONRequest(t, http.MethodGet, "/api/admin/stats", nil, cookies...)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var stats struct {
		ProductCount     int64            `json:"productCount"`
		OrderCount       int64            `json:"orderCount"`
		OrdersByStatus   map[string]int64 `json:"ordersByStatus"`
		Revenue          decimal.Decimal  `json:"revenue"`
		RevenueFormatted string           `json:"revenueFormatted"`
		RecentOrders     []models.Order   `json:"recentOrders"`
	}
	decode(t, rec, &stats)
	assert.Equal(t, int64(1), stats.ProductCount)
	assert.Equal(t, int64(2), stats.OrderCount)
	assert.Equal(t, int64(1), stats.OrdersByStatus["cancelled"])
	assert.True(t, stats.Revenue.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, "KSh 3,000", stats.RevenueFormatted)
	assert.Len(t, stats.RecentOrders, 2)
}

func TestOperationalEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.doJSONRequest(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	require.Equal(t, http.StatusCreated, s.doJSONRequest(t, http.MethodPost, "/api/orders", validOrderBody()).Code)

	rec = s.doJSONRequest(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `asili_orders_created_total{payment_method="cod"} 1`)
	assert.Contains(t, rec.Body.String(), `route="/api/orders"`)

	rec = s.doJSONRequest(t, http.MethodGet, "/api/nothing-here", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())
}

func jsonNumber(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}

package brand

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"sway_back_end/internal/models"
)

func TestParseStringList_JSONArray(t *testing.T) {
	got := parseStringList(`["S","M","L"]`)
	if len(got) != 3 || got[0] != "S" || got[2] != "L" {
		t.Fatalf("unexpected list %v", got)
	}
}

func TestParseStringList_CommaFallback(t *testing.T) {
	got := parseStringList("red, blue , green")
	if len(got) != 3 || got[1] != "blue" {
		t.Fatalf("unexpected list %v", got)
	}
}

func TestParseStringList_Empty(t *testing.T) {
	if got := parseStringList("  "); got != nil {
		t.Fatalf("expected nil for blank input, got %v", got)
	}
}

func TestParseStringMap(t *testing.T) {
	got := parseStringMap(`{"fabric":"lawn","fit":"regular"}`)
	if got["fabric"] != "lawn" || got["fit"] != "regular" {
		t.Fatalf("unexpected map %v", got)
	}
	if parseStringMap("not json") != nil {
		t.Fatal("expected nil for malformed input")
	}
}

func TestCreationResponse_SurfacesWarnings(t *testing.T) {
	product := models.Product{Name: "Linen Kurta"}

	resp := creationResponse(product, []string{"broken.jpg", "huge.png"})

	w, ok := resp["warnings"].(gin.H)
	if !ok {
		t.Fatalf("expected a warnings object, got %v", resp["warnings"])
	}
	files, ok := w["files"].([]string)
	if !ok || len(files) != 2 || files[0] != "broken.jpg" {
		t.Fatalf("expected the skipped files listed by name, got %v", w["files"])
	}
	if resp["success"] != true {
		t.Fatal("partial upload failure must still report success")
	}
}

func TestCreationResponse_NoWarnings(t *testing.T) {
	resp := creationResponse(models.Product{Name: "Linen Kurta"}, nil)
	if _, ok := resp["warnings"]; ok {
		t.Fatal("clean creates must not carry a warnings key")
	}
}

func createRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/products", CreateProduct)
	return r
}

func postCreate(r *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateProduct_MalformedDiscount(t *testing.T) {
	w := postCreate(createRouter(), url.Values{
		"name":          {"Linen Kurta"},
		"category":      {"women"},
		"originalPrice": {"2000"},
		"discount":      {"abc"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a non-numeric discount, got %d", w.Code)
	}
}

func TestCreateProduct_MalformedStock(t *testing.T) {
	w := postCreate(createRouter(), url.Values{
		"name":          {"Linen Kurta"},
		"category":      {"women"},
		"originalPrice": {"2000"},
		"stock":         {"many"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a non-numeric stock, got %d", w.Code)
	}
}

func TestCreateProduct_NegativeStock(t *testing.T) {
	w := postCreate(createRouter(), url.Values{
		"name":          {"Linen Kurta"},
		"category":      {"women"},
		"originalPrice": {"2000"},
		"stock":         {"-3"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative stock, got %d", w.Code)
	}
}

func TestDuplicateKeyField(t *testing.T) {
	err := errors.New(`E11000 duplicate key error collection: products index: slug_1 dup key`)
	if field := duplicateKeyField(err); field != "slug" {
		t.Fatalf("expected slug, got %q", field)
	}

	err = errors.New(`E11000 duplicate key error index: sku_1`)
	if field := duplicateKeyField(err); field != "sku" {
		t.Fatalf("expected sku, got %q", field)
	}

	if field := duplicateKeyField(errors.New("something else")); field != "field" {
		t.Fatalf("expected generic fallback, got %q", field)
	}
}

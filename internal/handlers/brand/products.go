package brand

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sway_back_end/internal/database"
	"sway_back_end/internal/handlers"
	"sway_back_end/internal/models"
	"sway_back_end/internal/services"
	"sway_back_end/internal/utils"
)

func productCollection() *mongo.Collection {
	return database.MongoProductsDB.Collection("products")
}

// GET /api/brand/products — the brand's own catalog, filtered and paged.
func ListProducts(c *gin.Context) {
	brandID := c.GetString("user_id")
	page, limit := handlers.ParsePageLimit(c)

	status := c.DefaultQuery("status", "active")
	filter := handlers.BuildProductFilter(status, c.Query("category"), c.Query("search"))
	filter["brandId"] = brandID

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	col := productCollection()

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		log.Println("❌ Brand product count failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		log.Println("❌ Brand product listing failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"products":   products,
		"pagination": handlers.BuildPagination(page, limit, total),
	})
}

// POST /api/brand/products — multipart create with best-effort image upload.
func CreateProduct(c *gin.Context) {
	brandID := c.GetString("user_id")
	brandName := c.GetString("brand_name")

	name := strings.TrimSpace(c.PostForm("name"))
	category := strings.TrimSpace(c.PostForm("category"))
	originalPriceStr := c.PostForm("originalPrice")

	if name == "" || category == "" || originalPriceStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, category and original price are required"})
		return
	}

	originalPrice, err := strconv.ParseFloat(originalPriceStr, 64)
	if err != nil || originalPrice <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid original price"})
		return
	}

	discount, err := strconv.ParseFloat(c.DefaultPostForm("discount", "0"), 64)
	if err != nil || discount < 0 || discount > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Discount must be a number between 0 and 100"})
		return
	}

	stock, err := strconv.Atoi(c.DefaultPostForm("stock", "0"))
	if err != nil || stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock must be a non-negative number"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	product := models.Product{
		ID:             primitive.NewObjectID(),
		Name:           name,
		Slug:           utils.Slugify(name),
		SKU:            utils.GenerateSKU(brandName),
		Description:    c.PostForm("description"),
		Category:       category,
		SubCategory:    c.PostForm("subCategory"),
		OriginalPrice:  originalPrice,
		Discount:       discount,
		Price:          utils.SalePrice(originalPrice, discount),
		Stock:          stock,
		InStock:        stock > 0,
		Sizes:          parseStringList(c.PostForm("sizes")),
		Colors:         parseStringList(c.PostForm("colors")),
		Tags:           parseStringList(c.PostForm("tags")),
		Features:       parseStringList(c.PostForm("features")),
		Specifications: parseStringMap(c.PostForm("specifications")),
		BrandID:        brandID,
		BrandName:      brandName,
		BrandEmail:     c.GetString("email"),
		Status:         "active",
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	warnings := []string{}

	if form, err := c.MultipartForm(); err == nil {
		uploaded, failed := services.UploadProductImages(ctx, form.File["images"])
		product.Images = uploaded
		warnings = append(warnings, failed...)

		if thumbs := form.File["thumbnail"]; len(thumbs) > 0 {
			thumbURL, err := services.UploadFile(ctx, "thumbnails", thumbs[0])
			if err != nil {
				log.Printf("⚠️ Thumbnail upload failed for %s: %v", thumbs[0].Filename, err)
				warnings = append(warnings, thumbs[0].Filename)
			} else {
				product.Thumbnail = thumbURL
			}
		}
	}

	if _, err := productCollection().InsertOne(ctx, product); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "A product with this " + duplicateKeyField(err) + " already exists",
			})
			return
		}
		log.Println("❌ Product insert failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	go services.IndexProduct(product)
	go handlers.InvalidateProductCache(context.Background())

	log.Printf("✅ Product created: %s (%s) by brand %s", product.Name, product.SKU, brandName)
	c.JSON(http.StatusCreated, creationResponse(product, warnings))
}

// creationResponse shapes the 201 body; skipped uploads surface under
// warnings.files so the storefront can tell the brand which images are missing.
func creationResponse(product models.Product, warnings []string) gin.H {
	resp := gin.H{"success": true, "product": product}
	if len(warnings) > 0 {
		resp["warnings"] = gin.H{"files": warnings}
	}
	return resp
}

// PUT /api/brand/products/:id — edit, scoped to the owning brand.
func UpdateProduct(c *gin.Context) {
	brandID := c.GetString("user_id")

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var input struct {
		Name           *string           `json:"name"`
		Description    *string           `json:"description"`
		Category       *string           `json:"category"`
		SubCategory    *string           `json:"subCategory"`
		OriginalPrice  *float64          `json:"originalPrice"`
		Discount       *float64          `json:"discount"`
		Stock          *int              `json:"stock"`
		Sizes          []string          `json:"sizes"`
		Colors         []string          `json:"colors"`
		Tags           []string          `json:"tags"`
		Features       []string          `json:"features"`
		Specifications map[string]string `json:"specifications"`
		Status         *string           `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	col := productCollection()

	var existing models.Product
	if err := col.FindOne(ctx, bson.M{"_id": objID, "brandId": brandID}).Decode(&existing); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.Name != nil {
		set["name"] = *input.Name
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if input.Category != nil {
		set["category"] = *input.Category
	}
	if input.SubCategory != nil {
		set["subCategory"] = *input.SubCategory
	}
	if input.Sizes != nil {
		set["sizes"] = input.Sizes
	}
	if input.Colors != nil {
		set["colors"] = input.Colors
	}
	if input.Tags != nil {
		set["tags"] = input.Tags
	}
	if input.Features != nil {
		set["features"] = input.Features
	}
	if input.Specifications != nil {
		set["specifications"] = input.Specifications
	}
	if input.Status != nil {
		if *input.Status != "active" && *input.Status != "inactive" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		set["status"] = *input.Status
	}

	// Price is derived, never set directly.
	originalPrice := existing.OriginalPrice
	discount := existing.Discount
	if input.OriginalPrice != nil {
		originalPrice = *input.OriginalPrice
		set["originalPrice"] = originalPrice
	}
	if input.Discount != nil {
		discount = *input.Discount
		set["discount"] = discount
	}
	if input.OriginalPrice != nil || input.Discount != nil {
		set["price"] = utils.SalePrice(originalPrice, discount)
	}

	// inStock stays in sync with every stock write.
	if input.Stock != nil {
		if *input.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock cannot be negative"})
			return
		}
		set["stock"] = *input.Stock
		set["inStock"] = *input.Stock > 0
	}

	if _, err := col.UpdateOne(ctx, bson.M{"_id": objID, "brandId": brandID}, bson.M{"$set": set}); err != nil {
		log.Println("❌ Product update failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	var updated models.Product
	if err := col.FindOne(ctx, bson.M{"_id": objID}).Decode(&updated); err == nil {
		go services.IndexProduct(updated)
	}
	go handlers.InvalidateProductCache(context.Background())

	c.JSON(http.StatusOK, gin.H{"success": true, "product": updated})
}

// DELETE /api/brand/products/:id — soft delete, products are never removed.
func DeleteProduct(c *gin.Context) {
	brandID := c.GetString("user_id")

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := productCollection().UpdateOne(ctx,
		bson.M{"_id": objID, "brandId": brandID},
		bson.M{"$set": bson.M{"status": "inactive", "updatedAt": time.Now()}},
	)
	if err != nil {
		log.Println("❌ Product deactivation failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	go services.RemoveProductFromIndex(objID.Hex())
	go handlers.InvalidateProductCache(context.Background())

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deactivated"})
}

// parseStringList decodes a JSON-encoded array form field ("[\"S\",\"M\"]").
// A bare comma-separated string is accepted as a fallback.
func parseStringList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		return list
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseStringMap decodes a JSON-encoded object form field.
func parseStringMap(raw string) map[string]string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var m map[string]string
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil
	}
	return m
}

// duplicateKeyField pulls the offending field name out of a Mongo duplicate
// key error so the 409 can name it.
func duplicateKeyField(err error) string {
	var writeErr mongo.WriteException
	msg := err.Error()
	if we, ok := err.(mongo.WriteException); ok {
		writeErr = we
		if len(writeErr.WriteErrors) > 0 {
			msg = writeErr.WriteErrors[0].Message
		}
	}

	for _, field := range []string{"slug", "sku", "name"} {
		if strings.Contains(msg, field) {
			return field
		}
	}
	return "field"
}

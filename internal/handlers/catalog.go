package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sway_back_end/internal/database"
	"sway_back_end/internal/models"
	"sway_back_end/internal/services"
)

func getProductCollection() *mongo.Collection {
	if database.MongoProductsDB == nil {
		panic("❌ MongoProductsDB not initialised — did you call database.ConnectDatabases()?")
	}
	return database.MongoProductsDB.Collection("products")
}

type productListing struct {
	Success    bool             `json:"success"`
	Products   []models.Product `json:"products"`
	Pagination Pagination       `json:"pagination"`
}

// GET /api/products — public catalog, active products only, cache-aside.
func ListProducts(c *gin.Context) {
	page, limit := ParsePageLimit(c)
	category := c.Query("category")
	search := c.Query("search")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cacheKey := fmt.Sprintf("products:list:%d:%d:%s:%s", page, limit, category, search)
	if val, err := database.Redis.Get(ctx, cacheKey).Result(); err == nil && val != "" {
		var cached productListing
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	filter := BuildProductFilter("active", category, search)
	col := getProductCollection()

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		log.Println("❌ Product count failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		log.Println("❌ Product listing failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		log.Println("❌ Product decoding failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	resp := productListing{
		Success:    true,
		Products:   products,
		Pagination: BuildPagination(page, limit, total),
	}

	if data, err := json.Marshal(resp); err == nil {
		database.Redis.Set(ctx, cacheKey, data, 10*time.Minute)
	}

	c.JSON(http.StatusOK, resp)
}

// GET /api/products/:id — public product detail.
func GetProduct(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var product models.Product
	err = getProductCollection().FindOne(ctx, bson.M{"_id": objID, "status": "active"}).Decode(&product)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

// GET /api/products/search?q — Elasticsearch first, Mongo regex fallback.
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'q' parameter"})
		return
	}

	results, err := services.SearchProducts(query)
	if err == nil && len(results) > 0 {
		c.JSON(http.StatusOK, gin.H{"success": true, "products": results})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := BuildProductFilter("active", "", query)

	cursor, err := getProductCollection().Find(ctx, filter)
	if err != nil {
		log.Println("❌ Fallback search failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

// InvalidateProductCache drops every cached catalog page. Called after any
// product write. SCAN rather than KEYS so the sweep never blocks the server.
func InvalidateProductCache(ctx context.Context) {
	iter := database.Redis.Scan(ctx, 0, "products:list:*", 100).Iterator()

	keys := []string{}
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Println("⚠️ Cache invalidation scan failed:", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	database.Redis.Del(ctx, keys...)
}

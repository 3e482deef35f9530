package customer

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"sway_back_end/internal/database"
	"sway_back_end/internal/models"
)

func wishlistCollection() *mongo.Collection {
	return database.MongoCustomersDB.Collection("wishlist")
}

// GET /api/customer/wishlist — wishlist entries with their live products.
func GetWishlist(c *gin.Context) {
	userID := c.GetString("user_id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := wishlistCollection().Find(ctx, bson.M{"userId": userID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
		return
	}
	defer cursor.Close(ctx)

	items := []models.WishlistItem{}
	if err := cursor.All(ctx, &items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode wishlist"})
		return
	}

	products := []models.Product{}
	if len(items) > 0 {
		ids := make([]primitive.ObjectID, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ProductID)
		}

		pcursor, err := productsCollection().Find(ctx, bson.M{"_id": bson.M{"$in": ids}, "status": "active"})
		if err == nil {
			defer pcursor.Close(ctx)
			pcursor.All(ctx, &products)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "items": items, "products": products})
}

// POST /api/customer/wishlist/:productId
func AddToWishlist(c *gin.Context) {
	userID := c.GetString("user_id")

	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var product models.Product
	if err := productsCollection().FindOne(ctx, bson.M{"_id": productID, "status": "active"}).Decode(&product); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	count, _ := wishlistCollection().CountDocuments(ctx, bson.M{"userId": userID, "productId": productID})
	if count > 0 {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Already in wishlist"})
		return
	}

	item := models.WishlistItem{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		ProductID: productID,
		AddedAt:   time.Now(),
	}
	if _, err := wishlistCollection().InsertOne(ctx, item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "item": item})
}

// DELETE /api/customer/wishlist/:productId
func RemoveFromWishlist(c *gin.Context) {
	userID := c.GetString("user_id")

	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := wishlistCollection().DeleteOne(ctx, bson.M{"userId": userID, "productId": productID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not in wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Removed from wishlist"})
}

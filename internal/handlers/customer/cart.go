package customer

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sway_back_end/internal/database"
	"sway_back_end/internal/models"
)

const cartTTL = 30 * 24 * time.Hour

// The cart is storefront convenience state held in Redis; the order
// endpoint re-validates everything against the products collection.

// GET /api/customer/cart
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	val, err := database.Redis.Get(ctx, "cart:"+userID).Result()
	if err != nil || val == "" {
		c.JSON(http.StatusOK, gin.H{"success": true, "items": []models.CartItem{}})
		return
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(val), &items); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "items": []models.CartItem{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "items": items})
}

// PUT /api/customer/cart — replaces the whole cart document.
func SaveCart(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		Items []models.CartItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart"})
		return
	}

	data, err := json.Marshal(input.Items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := database.Redis.Set(ctx, "cart:"+userID, data, cartTTL).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(input.Items)})
}

// DELETE /api/customer/cart
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	database.Redis.Del(ctx, "cart:"+userID)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart cleared"})
}

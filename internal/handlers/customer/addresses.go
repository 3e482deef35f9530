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

func addressesCollection() *mongo.Collection {
	return database.MongoCustomersDB.Collection("addresses")
}

// GET /api/customer/addresses
func ListAddresses(c *gin.Context) {
	userID := c.GetString("user_id")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := addressesCollection().Find(ctx, bson.M{"userId": userID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch addresses"})
		return
	}
	defer cursor.Close(ctx)

	addresses := []models.Address{}
	if err := cursor.All(ctx, &addresses); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode addresses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "addresses": addresses})
}

// POST /api/customer/addresses
func CreateAddress(c *gin.Context) {
	userID := c.GetString("user_id")

	var input models.Address
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address"})
		return
	}

	if input.FullName == "" || input.Street == "" || input.City == "" || input.Country == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, street, city and country are required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	input.ID = primitive.NewObjectID()
	input.UserID = userID

	// First address becomes the default.
	count, _ := addressesCollection().CountDocuments(ctx, bson.M{"userId": userID})
	input.IsDefault = count == 0

	if _, err := addressesCollection().InsertOne(ctx, input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save address"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "address": input})
}

// PUT /api/customer/addresses/:id
func UpdateAddress(c *gin.Context) {
	userID := c.GetString("user_id")

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address id"})
		return
	}

	var input models.Address
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := addressesCollection().UpdateOne(ctx,
		bson.M{"_id": objID, "userId": userID},
		bson.M{"$set": bson.M{
			"label":      input.Label,
			"fullName":   input.FullName,
			"phone":      input.Phone,
			"street":     input.Street,
			"apartment":  input.Apartment,
			"city":       input.City,
			"state":      input.State,
			"postalCode": input.PostalCode,
			"country":    input.Country,
		}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update address"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Address updated"})
}

// PUT /api/customer/addresses/:id/default
// Two-step unset/set; concurrent edits can briefly leave zero defaults.
func MakeDefaultAddress(c *gin.Context) {
	userID := c.GetString("user_id")

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address id"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, _ = addressesCollection().UpdateMany(ctx,
		bson.M{"userId": userID}, bson.M{"$set": bson.M{"isDefault": false}})

	result, err := addressesCollection().UpdateOne(ctx,
		bson.M{"_id": objID, "userId": userID},
		bson.M{"$set": bson.M{"isDefault": true}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set default address"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Default address updated"})
}

// DELETE /api/customer/addresses/:id
func DeleteAddress(c *gin.Context) {
	userID := c.GetString("user_id")

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address id"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := addressesCollection().DeleteOne(ctx, bson.M{"_id": objID, "userId": userID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete address"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Address deleted"})
}

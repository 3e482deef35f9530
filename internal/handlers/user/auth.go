package user

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"sway_back_end/internal/database"
	"sway_back_end/internal/models"
	"sway_back_end/internal/utils"
)

// Read per call so a secret loaded from .env by config.Load() is honoured.
func jwtSecret() []byte { return []byte(os.Getenv("JWT_SECRET")) }

func usersCollection() *mongo.Collection {
	return database.MongoAuthDB.Collection("users")
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var input struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		Role      string `json:"role"`
		BrandName string `json:"brandName"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Name == "" || input.Email == "" || len(input.Password) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email and a password of at least 8 characters are required"})
		return
	}

	if input.Role == "" {
		input.Role = "customer"
	}
	if input.Role != "customer" && input.Role != "brand" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}
	if input.Role == "brand" && input.BrandName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Brand name is required for brand accounts"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var existing models.User
	err := usersCollection().FindOne(ctx, bson.M{"email": input.Email}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	user := models.User{
		ID:        primitive.NewObjectID().Hex(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  hashed,
		Role:      input.Role,
		BrandName: input.BrandName,
		CreatedAt: time.Now(),
	}

	if _, err := usersCollection().InsertOne(ctx, user); err != nil {
		log.Println("❌ User insert failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	log.Printf("✅ Account created: %s (%s)", user.Email, user.Role)

	c.JSON(http.StatusCreated, gin.H{
		"token":     generateJWT(user),
		"userId":    user.ID,
		"email":     user.Email,
		"name":      user.Name,
		"role":      user.Role,
		"brandName": user.BrandName,
	})
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := usersCollection().FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(input.Email))}).Decode(&user)
	if err != nil || !utils.CheckPassword(user.Password, input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     generateJWT(user),
		"userId":    user.ID,
		"email":     user.Email,
		"name":      user.Name,
		"role":      user.Role,
		"brandName": user.BrandName,
	})
}

// GET /api/auth/me
func Me(c *gin.Context) {
	userID := c.GetString("user_id")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := usersCollection().FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":    user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"role":      user.Role,
		"brandName": user.BrandName,
	})
}

func generateJWT(user models.User) string {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	if user.BrandName != "" {
		claims["brand_name"] = user.BrandName
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString(jwtSecret())
	return tokenString
}

package customer

import (
	"context"
	"errors"
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
	"sway_back_end/internal/handlers"
	"sway_back_end/internal/handlers/payment"
	"sway_back_end/internal/models"
	"sway_back_end/internal/utils"
)

const deliveryLeadDays = 5

// orderError carries the HTTP status a validation failure maps to, so the
// transaction callback can abort with the right response.
type orderError struct {
	status  int
	message string
}

func (e *orderError) Error() string { return e.message }

type orderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

type placeOrderRequest struct {
	Items           []orderItemRequest      `json:"items"`
	ShippingAddress *models.ShippingAddress `json:"shippingAddress"`
	Payment         struct {
		Method string `json:"method"`
	} `json:"payment"`
	Notes       string `json:"notes,omitempty"`
	IsGift      bool   `json:"isGift,omitempty"`
	GiftMessage string `json:"giftMessage,omitempty"`
	Source      string `json:"source,omitempty"`
}

func ordersCollection() *mongo.Collection {
	return database.MongoOrdersDB.Collection("orders")
}

func productsCollection() *mongo.Collection {
	return database.MongoProductsDB.Collection("products")
}

// checkItem validates one requested line against the live product.
func checkItem(p models.Product, req orderItemRequest) *orderError {
	if p.Status != "active" || !p.InStock {
		return &orderError{http.StatusBadRequest, fmt.Sprintf("%s is currently unavailable", p.Name)}
	}
	if req.Quantity < 1 {
		return &orderError{http.StatusBadRequest, fmt.Sprintf("Invalid quantity for %s", p.Name)}
	}
	if p.Stock < req.Quantity {
		return &orderError{http.StatusBadRequest, fmt.Sprintf("Insufficient stock for %s. Available: %d", p.Name, p.Stock)}
	}
	if req.Size != "" && !contains(p.Sizes, req.Size) {
		return &orderError{http.StatusBadRequest, fmt.Sprintf("Invalid size for %s", p.Name)}
	}
	if req.Color != "" && !contains(p.Colors, req.Color) {
		return &orderError{http.StatusBadRequest, fmt.Sprintf("Invalid color for %s", p.Name)}
	}
	return nil
}

// snapshotItem freezes the product into the order line so later brand edits
// never rewrite purchase history.
func snapshotItem(p models.Product, req orderItemRequest) models.OrderItem {
	image := p.Thumbnail
	if image == "" && len(p.Images) > 0 {
		image = p.Images[0].URL
	}
	return models.OrderItem{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Image:       image,
		BrandName:   p.BrandName,
		BrandEmail:  p.BrandEmail,
		SKU:         p.SKU,
		Price:       p.Price,
		Quantity:    req.Quantity,
		Size:        req.Size,
		Color:       req.Color,
	}
}

// buildPricing computes the order totals from the accumulated subtotal.
func buildPricing(subtotal, discount float64) models.OrderPricing {
	shipping := utils.ShippingCost(subtotal)
	tax := utils.Tax(subtotal)
	return models.OrderPricing{
		Subtotal:     subtotal,
		Discount:     discount,
		ShippingCost: shipping,
		Tax:          tax,
		Total:        utils.OrderTotal(subtotal, discount, shipping, tax),
	}
}

// paymentIntentStamped reports whether the transaction id write reached the
// order document. The webhook matches on payment.transactionId, so if the
// stamp is missing the client must not be handed a client secret to pay with.
func paymentIntentStamped(res *mongo.UpdateResult, err error) bool {
	return err == nil && res != nil && res.MatchedCount > 0
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// POST /api/customer/orders — validates the cart, decrements stock and
// writes the order inside one transaction. Any failure rolls everything back.
func PlaceOrder(c *gin.Context) {
	userID := c.GetString("user_id")
	userEmail := c.GetString("email")

	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order items are required"})
		return
	}
	if req.ShippingAddress == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Shipping address is required"})
		return
	}
	if req.Payment.Method == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment method is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	session, err := database.MongoClient.StartSession()
	if err != nil {
		log.Println("❌ Session start failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}
	defer session.EndSession(ctx)

	now := time.Now()

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		items := make([]models.OrderItem, 0, len(req.Items))
		subtotal := 0.0

		for _, itemReq := range req.Items {
			objID, err := primitive.ObjectIDFromHex(itemReq.ProductID)
			if err != nil {
				return nil, &orderError{http.StatusBadRequest, "Invalid product id"}
			}

			var product models.Product
			if err := productsCollection().FindOne(sc, bson.M{"_id": objID}).Decode(&product); err != nil {
				if err == mongo.ErrNoDocuments {
					return nil, &orderError{http.StatusNotFound, "Product not found"}
				}
				return nil, err
			}

			if oe := checkItem(product, itemReq); oe != nil {
				return nil, oe
			}

			// Guarded decrement; inStock is derived in the same write so the
			// two can never drift apart.
			update := bson.A{bson.M{"$set": bson.M{
				"stock":     bson.M{"$subtract": bson.A{"$stock", itemReq.Quantity}},
				"inStock":   bson.M{"$gt": bson.A{bson.M{"$subtract": bson.A{"$stock", itemReq.Quantity}}, 0}},
				"updatedAt": now,
			}}}
			res, err := productsCollection().UpdateOne(sc,
				bson.M{"_id": objID, "stock": bson.M{"$gte": itemReq.Quantity}}, update)
			if err != nil {
				return nil, err
			}
			if res.ModifiedCount == 0 {
				return nil, &orderError{http.StatusBadRequest,
					fmt.Sprintf("Insufficient stock for %s. Available: %d", product.Name, product.Stock)}
			}

			items = append(items, snapshotItem(product, itemReq))
			subtotal += product.Price * float64(itemReq.Quantity)
		}

		order := models.Order{
			ID:              primitive.NewObjectID(),
			OrderNumber:     utils.GenerateOrderNumber(now),
			CustomerID:      userID,
			Items:           items,
			Pricing:         buildPricing(subtotal, 0),
			ShippingAddress: *req.ShippingAddress,
			Payment: models.OrderPayment{
				Method: req.Payment.Method,
				Status: "pending",
			},
			Status: models.OrderStatusPending,
			StatusHistory: []models.StatusChange{
				{Status: models.OrderStatusPending, Note: "Order placed", ChangedAt: now},
			},
			EstimatedDelivery: now.AddDate(0, 0, deliveryLeadDays),
			Notes:             req.Notes,
			IsGift:            req.IsGift,
			GiftMessage:       req.GiftMessage,
			Source:            req.Source,
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		if _, err := ordersCollection().InsertOne(sc, order); err != nil {
			return nil, err
		}

		return order, nil
	})

	if err != nil {
		var oe *orderError
		if errors.As(err, &oe) {
			c.JSON(oe.status, gin.H{"error": oe.message})
			return
		}
		log.Println("❌ Order transaction failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	order := result.(models.Order)

	resp := gin.H{
		"success": true,
		"order": gin.H{
			"_id":               order.ID,
			"orderNumber":       order.OrderNumber,
			"total":             order.Pricing.Total,
			"status":            order.Status,
			"items":             order.Items,
			"estimatedDelivery": order.EstimatedDelivery,
		},
	}

	if order.Payment.Method == "card" {
		clientSecret, intentID, err := payment.CreateIntentForOrder(order, userEmail)
		if err != nil {
			log.Println("⚠️ Payment intent creation failed:", err)
		} else {
			res, err := ordersCollection().UpdateOne(ctx, bson.M{"_id": order.ID},
				bson.M{"$set": bson.M{"payment.transactionId": intentID}})
			if !paymentIntentStamped(res, err) {
				log.Printf("❌ Failed to record intent %s on order %s: %v", intentID, order.OrderNumber, err)
			} else {
				resp["clientSecret"] = clientSecret
			}
		}
	}

	// Post-commit housekeeping: drop the Redis cart, refresh the catalog
	// cache, send the confirmation mail.
	go func(order models.Order, email string) {
		ctx := context.Background()
		database.Redis.Del(ctx, "cart:"+order.CustomerID)
		handlers.InvalidateProductCache(ctx)

		if email == "" {
			return
		}
		html := utils.GenerateOrderConfirmationHTML(order)
		pdf, err := utils.GenerateInvoicePDF(order)
		if err != nil {
			log.Println("⚠️ Invoice PDF generation failed:", err)
			pdf = nil
		}
		if err := utils.SendConfirmationEmail(email, "Your Sway order "+order.OrderNumber, html, pdf); err != nil {
			log.Println("❌ Confirmation email failed:", err)
		} else {
			log.Println("📧 Confirmation email sent to", email)
		}
	}(order, userEmail)

	log.Printf("✅ Order %s placed by %s (total %.2f)", order.OrderNumber, userID, order.Pricing.Total)
	c.JSON(http.StatusCreated, resp)
}

// GET /api/customer/orders — own orders, newest first.
func ListMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	page, limit := handlers.ParsePageLimit(c)

	filter := bson.M{"customerId": userID}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	col := ordersCollection()

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		log.Println("❌ Order count failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		log.Println("❌ Order listing failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"orders":     orders,
		"pagination": handlers.BuildPagination(page, limit, total),
	})
}

// GET /api/customer/orders/:id — ownership-scoped fetch.
func GetOrderByID(c *gin.Context) {
	userID := c.GetString("user_id")

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order models.Order
	err = ordersCollection().FindOne(ctx, bson.M{"_id": objID, "customerId": userID}).Decode(&order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// PUT /api/customer/orders/:id/cancel — allowed before processing starts;
// restores the stock it took, in one transaction.
func CancelOrder(c *gin.Context) {
	userID := c.GetString("user_id")

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	session, err := database.MongoClient.StartSession()
	if err != nil {
		log.Println("❌ Session start failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
		return
	}
	defer session.EndSession(ctx)

	now := time.Now()

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var order models.Order
		err := ordersCollection().FindOne(sc, bson.M{"_id": objID, "customerId": userID}).Decode(&order)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, &orderError{http.StatusNotFound, "Order not found"}
			}
			return nil, err
		}

		if order.Status != models.OrderStatusPending && order.Status != models.OrderStatusConfirmed {
			return nil, &orderError{http.StatusBadRequest,
				fmt.Sprintf("Order can no longer be cancelled (status: %s)", order.Status)}
		}

		for _, item := range order.Items {
			update := bson.A{bson.M{"$set": bson.M{
				"stock":     bson.M{"$add": bson.A{"$stock", item.Quantity}},
				"inStock":   true,
				"updatedAt": now,
			}}}
			if _, err := productsCollection().UpdateOne(sc, bson.M{"_id": item.ProductID}, update); err != nil {
				return nil, err
			}
		}

		_, err = ordersCollection().UpdateOne(sc, bson.M{"_id": objID}, bson.M{
			"$set": bson.M{"status": models.OrderStatusCancelled, "updatedAt": now},
			"$push": bson.M{"statusHistory": models.StatusChange{
				Status:    models.OrderStatusCancelled,
				Note:      "Cancelled by customer",
				ChangedAt: now,
			}},
		})
		return nil, err
	})

	if err != nil {
		var oe *orderError
		if errors.As(err, &oe) {
			c.JSON(oe.status, gin.H{"error": oe.message})
			return
		}
		log.Println("❌ Order cancellation failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
		return
	}

	go handlers.InvalidateProductCache(context.Background())

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order cancelled"})
}

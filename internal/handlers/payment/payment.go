package payment

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
	"github.com/stripe/stripe-go/v83/webhook"
	"go.mongodb.org/mongo-driver/bson"

	"sway_back_end/internal/database"
	"sway_back_end/internal/models"
)

// CreateIntentForOrder opens a Stripe PaymentIntent for a card order and
// returns the client secret the storefront needs to collect the payment.
func CreateIntentForOrder(order models.Order, email string) (string, string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(order.Pricing.Total * 100)),
		Currency: stripe.String("pkr"),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"order_id":     order.ID.Hex(),
			"order_number": order.OrderNumber,
			"email":        email,
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", "", err
	}

	log.Printf("💳 PaymentIntent created: %s (%.2f) for order %s", intent.ID, order.Pricing.Total, order.OrderNumber)
	return intent.ClientSecret, intent.ID, nil
}

// POST /api/payments/webhook — Stripe calls back here once a card payment
// settles; the matching order moves to confirmed.
func StripeWebhook(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := c.GetRawData()
	if err != nil {
		log.Println("❌ Webhook payload read failed:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	var event stripe.Event

	if secret == "" {
		log.Println("⚠️ STRIPE_WEBHOOK_SECRET not set — test mode")
		if err := json.Unmarshal(payload, &event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}
	} else {
		event, err = webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), secret)
		if err != nil {
			log.Println("❌ Invalid Stripe signature:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
			return
		}
	}

	log.Printf("📥 Stripe event received: %s", event.Type)
	handleStripeEvent(event)

	c.Status(http.StatusOK)
}

func handleStripeEvent(event stripe.Event) {
	if event.Type != "payment_intent.succeeded" {
		log.Printf("ℹ️ Ignoring event: %s", event.Type)
		return
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		log.Println("❌ PaymentIntent decoding failed:", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	col := database.MongoOrdersDB.Collection("orders")

	// Keyed by the intent id, so replayed webhooks are harmless.
	res, err := col.UpdateOne(ctx,
		bson.M{"payment.transactionId": pi.ID, "payment.status": bson.M{"$ne": "paid"}},
		bson.M{
			"$set": bson.M{
				"payment.status": "paid",
				"status":         models.OrderStatusConfirmed,
				"updatedAt":      time.Now(),
			},
			"$push": bson.M{"statusHistory": models.StatusChange{
				Status:    models.OrderStatusConfirmed,
				Note:      "Payment received",
				ChangedAt: time.Now(),
			}},
		},
	)
	if err != nil {
		log.Println("❌ Order payment update failed:", err)
		return
	}
	if res.ModifiedCount == 0 {
		log.Printf("🔁 No pending order for intent %s — already processed?", pi.ID)
		return
	}

	log.Printf("✅ Order confirmed for intent %s", pi.ID)
}

package ordernotif

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"grafibot/models"
)

var (
	instance *OrderNotifier
	once     sync.Once
)

type OrderNotifier struct {
	webhookURL  string
	environment string
	appName     string
	mu          sync.RWMutex
}

// Init initializes the global order notifier instance
func Init(webhookURL, environment string) {
	once.Do(func() {
		instance = &OrderNotifier{
			webhookURL:  webhookURL,
			environment: environment,
			appName:     "GrafiBot",
		}
	})
}

// New sends a new-order notification message to the configured webhook
func New(order *models.Order) {
	if instance == nil {
		log.Printf("⚠️ Order notifier not initialized, skipping notification for order %d", order.ID)
		return
	}

	instance.send(order)
}

func (n *OrderNotifier) send(order *models.Order) {
	if n.webhookURL == "" {
		return // Order notifications disabled
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	// Send notification asynchronously to avoid blocking the order flow
	go n.sendWebhookNotification(order)
}

func (n *OrderNotifier) sendWebhookNotification(order *models.Order) {
	fields := []map[string]any{
		{"type": "mrkdwn", "text": fmt.Sprintf("*Service:* %s", n.appName)},
		{"type": "mrkdwn", "text": fmt.Sprintf("*Environment:* %s", n.environment)},
		{"type": "mrkdwn", "text": fmt.Sprintf("*Pedido:* `%d`", order.ID)},
		{"type": "mrkdwn", "text": fmt.Sprintf("*Timestamp:* %s", time.Now().Format("2006-01-02 15:04:05 UTC"))},
	}

	payload := map[string]any{
		"blocks": []map[string]any{
			{
				"type":   "section",
				"fields": fields,
			},
			{
				"type": "section",
				"text": map[string]any{
					"type": "mrkdwn",
					"text": fmt.Sprintf("📦 *Novo pedido:*\n%d x %s (R$ %s)",
						order.Quantidade, order.Produto, order.ValorFinal.String()),
				},
			},
		},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		log.Printf("❌ Failed to marshal order notification payload: %v", err)
		return
	}

	// Create request with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", n.webhookURL, strings.NewReader(string(payloadBytes)))
	if err != nil {
		log.Printf("❌ Failed to create order notification request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("❌ Failed to send order notification: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("❌ Order notification failed with status: %d", resp.StatusCode)
	}
}

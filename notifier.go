package main

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Notifier recebe eventos do ciclo de vida dos pedidos e os repassa aos
// interessados. A entrega é melhor-esforço: o Broadcast nunca bloqueia nem
// falha a requisição que o originou. A referência é injetada nos use cases,
// não há singleton global.
type Notifier interface {
	Broadcast(ctx context.Context, event string, order *Order)
}

// OrderEvent é o envelope enviado aos ouvintes
type OrderEvent struct {
	Event string    `json:"event"`
	Order *Order    `json:"order"`
	At    time.Time `json:"at"`
}

// EventHub distribui eventos para os ouvintes SSE conectados no momento.
// Ouvintes lentos perdem eventos; não há buffer para desconectados.
type EventHub struct {
	mu          sync.RWMutex
	subscribers map[chan OrderEvent]struct{}
	logger      *zap.Logger
}

// NewEventHub cria uma nova instância de EventHub
func NewEventHub(logger *zap.Logger) *EventHub {
	return &EventHub{
		subscribers: make(map[chan OrderEvent]struct{}),
		logger:      logger,
	}
}

// Subscribe registra um ouvinte e retorna o canal de eventos dele
func (h *EventHub) Subscribe() chan OrderEvent {
	ch := make(chan OrderEvent, 8)
	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()
	h.logger.Info("🟢 listener connected", zap.Int("listeners", h.Count()))
	return ch
}

// Unsubscribe remove o ouvinte e fecha o canal dele
func (h *EventHub) Unsubscribe(ch chan OrderEvent) {
	h.mu.Lock()
	if _, ok := h.subscribers[ch]; ok {
		delete(h.subscribers, ch)
		close(ch)
	}
	h.mu.Unlock()
	h.logger.Info("🔴 listener disconnected", zap.Int("listeners", h.Count()))
}

// Count retorna o número de ouvintes conectados
func (h *EventHub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Broadcast envia o evento para cada ouvinte sem bloquear: se o buffer do
// ouvinte estiver cheio, o evento é descartado para ele
func (h *EventHub) Broadcast(ctx context.Context, event string, order *Order) {
	ev := OrderEvent{Event: event, Order: order, At: time.Now()}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subscribers {
		select {
		case ch <- ev:
		default:
		}
	}
}

// KafkaNotifier publica os eventos de pedido em um tópico Kafka
type KafkaNotifier struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewKafkaNotifier cria uma nova instância de KafkaNotifier
func NewKafkaNotifier(brokers []string, topic string, logger *zap.Logger) *KafkaNotifier {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    100,
	}
	return &KafkaNotifier{writer: writer, logger: logger}
}

// Broadcast publica o evento em background; falhas são só registradas
func (n *KafkaNotifier) Broadcast(ctx context.Context, event string, order *Order) {
	payload, err := json.Marshal(OrderEvent{Event: event, Order: order, At: time.Now()})
	if err != nil {
		n.logger.Error("failed to marshal order event", zap.Error(err))
		return
	}

	ctx = context.WithoutCancel(ctx)
	go func() {
		msg := kafka.Message{
			Key:   []byte(order.ID),
			Value: payload,
			Headers: []kafka.Header{
				{Key: "event", Value: []byte(event)},
			},
		}
		if err := n.writer.WriteMessages(ctx, msg); err != nil {
			n.logger.Error("failed to publish order event", zap.String("event", event), zap.Error(err))
		}
	}()
}

// Close libera o writer Kafka
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

// WebhookNotifier entrega os eventos de pedido com um POST na URL configurada
type WebhookNotifier struct {
	client *resty.Client
	url    string
	logger *zap.Logger
}

// NewWebhookNotifier cria uma nova instância de WebhookNotifier
func NewWebhookNotifier(url string, logger *zap.Logger) *WebhookNotifier {
	client := resty.New().SetTimeout(5 * time.Second)
	return &WebhookNotifier{client: client, url: url, logger: logger}
}

// Broadcast envia o evento em background; falhas são só registradas
func (n *WebhookNotifier) Broadcast(ctx context.Context, event string, order *Order) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		resp, err := n.client.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(OrderEvent{Event: event, Order: order, At: time.Now()}).
			Post(n.url)
		if err != nil {
			n.logger.Error("failed to deliver webhook", zap.String("event", event), zap.Error(err))
			return
		}
		if resp.IsError() {
			n.logger.Error("webhook returned an error status",
				zap.String("event", event),
				zap.Int("status", resp.StatusCode()),
			)
		}
	}()
}

// MultiNotifier repassa cada evento para todos os sinks configurados
type MultiNotifier []Notifier

// Broadcast envia o evento para cada sink
func (m MultiNotifier) Broadcast(ctx context.Context, event string, order *Order) {
	for _, n := range m {
		n.Broadcast(ctx, event, order)
	}
}

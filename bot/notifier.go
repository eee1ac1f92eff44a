// Package bot posts restaurant events to a Telegram chat.
package bot

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"restaurante/config"
	"restaurante/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// sendTimeout bounds every Bot API request.
const sendTimeout = 10 * time.Second

// Sender is the part of *tgbotapi.BotAPI the notifier uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier sends messages to one chat. A nil *Notifier is valid and drops
// every message, so callers don't have to check whether notifications are on.
type Notifier struct {
	api    Sender
	chatID int64
}

// New returns nil (notifications off) when no token or chat is configured.
func New(cfg config.TelegramConfig) (*Notifier, error) {
	if cfg.Token == "" || cfg.ChatID == 0 {
		return nil, nil
	}
	api, err := tgbotapi.NewBotAPIWithClient(cfg.Token, tgbotapi.APIEndpoint, &http.Client{Timeout: sendTimeout})
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return NewWithSender(api, cfg.ChatID), nil
}

func NewWithSender(api Sender, chatID int64) *Notifier {
	return &Notifier{api: api, chatID: chatID}
}

func (n *Notifier) send(text string) error {
	if n == nil {
		return nil
	}
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		log.Printf("telegram send chat_id=%d: %v", n.chatID, err)
		return err
	}
	return nil
}

// PedidoCreated announces a new order. Failures are logged, not returned:
// the order is already stored.
func (n *Notifier) PedidoCreated(p *models.Pedido) {
	_ = n.send(FormatPedido(p))
}

// LowStock sends the low-stock report; nothing is sent for an empty list.
func (n *Notifier) LowStock(items []models.Ingrediente) error {
	if len(items) == 0 {
		return nil
	}
	return n.send(FormatLowStock(items))
}

func FormatPedido(p *models.Pedido) string {
	return fmt.Sprintf(
		"🧾 Nuevo pedido #%d\nCliente: %s\nMenús: %d\n%s\n%s",
		p.ID, p.ClienteEmail, p.CantidadMenus, p.Descripcion,
		p.FechaCreacion.Format("2006-01-02 15:04"),
	)
}

func FormatLowStock(items []models.Ingrediente) string {
	var b strings.Builder
	b.WriteString("⚠️ Stock bajo:\n")
	for _, i := range items {
		fmt.Fprintf(&b, "• %s: %d %s\n", i.Nombre, i.Cantidad, i.UnidadMedida)
	}
	return strings.TrimRight(b.String(), "\n")
}

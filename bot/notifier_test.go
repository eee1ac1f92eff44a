package bot

import (
	"errors"
	"testing"
	"time"

	"restaurante/config"
	"restaurante/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, f.err
}

func TestNew_DisabledWithoutToken(t *testing.T) {
	n, err := New(config.TelegramConfig{})
	require.NoError(t, err)
	assert.Nil(t, n)

	// nil notifier is a no-op
	n.PedidoCreated(&models.Pedido{ID: 1})
	assert.NoError(t, n.LowStock([]models.Ingrediente{{Nombre: "Sal"}}))
}

func TestPedidoCreated(t *testing.T) {
	fs := &fakeSender{}
	n := NewWithSender(fs, 42)

	n.PedidoCreated(&models.Pedido{
		ID:            7,
		ClienteEmail:  "ana@example.com",
		Descripcion:   "Cena",
		CantidadMenus: 2,
		FechaCreacion: time.Date(2024, 5, 1, 20, 30, 0, 0, time.UTC),
	})

	require.Len(t, fs.sent, 1)
	assert.Equal(t, int64(42), fs.sent[0].ChatID)
	assert.Contains(t, fs.sent[0].Text, "#7")
	assert.Contains(t, fs.sent[0].Text, "ana@example.com")
	assert.Contains(t, fs.sent[0].Text, "2024-05-01 20:30")
}

func TestLowStock(t *testing.T) {
	fs := &fakeSender{}
	n := NewWithSender(fs, 1)

	require.NoError(t, n.LowStock(nil))
	assert.Empty(t, fs.sent)

	require.NoError(t, n.LowStock([]models.Ingrediente{
		{Nombre: "Sal", Cantidad: 2, UnidadMedida: "g"},
		{Nombre: "Aceite", Cantidad: 0, UnidadMedida: "ml"},
	}))
	require.Len(t, fs.sent, 1)
	assert.Equal(t, "⚠️ Stock bajo:\n• Sal: 2 g\n• Aceite: 0 ml", fs.sent[0].Text)

	fs.err = errors.New("network down")
	assert.Error(t, n.LowStock([]models.Ingrediente{{Nombre: "Sal"}}))
}

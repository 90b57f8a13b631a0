package client

import (
	"net/url"
	"os/exec"
	"runtime"

	"go.uber.org/zap"
)

// ShareChannel accepts a pre-formatted text payload and hands it to an
// external composition surface. No response is awaited.
type ShareChannel interface {
	Share(text string) error
}

// WhatsAppChannel opens the system browser on a pre-filled WhatsApp
// message-composition page.
type WhatsAppChannel struct {
	logger *zap.Logger
}

func NewWhatsAppChannel(logger *zap.Logger) *WhatsAppChannel {
	return &WhatsAppChannel{logger: logger}
}

// ShareURL builds the composition URL for the given payload.
func ShareURL(text string) string {
	return "https://api.whatsapp.com/send?text=" + url.QueryEscape(text)
}

func (c *WhatsAppChannel) Share(text string) error {
	target := ShareURL(text)
	c.logger.Info("abrindo canal de compartilhamento", zap.Int("tamanho", len(text)))
	return openBrowser(target)
}

func openBrowser(target string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", target).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target).Start()
	default:
		return exec.Command("xdg-open", target).Start()
	}
}

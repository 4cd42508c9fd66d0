package tui

import (
	"errors"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

var errNoClipboard = errors.New("clipboard unavailable")

// copyToClipboard tries the system clipboard first and falls back to an OSC52
// escape, which most terminals forward to the host clipboard (also over ssh).
func copyToClipboard(text string) error {
	if err := clipboard.WriteAll(text); err == nil {
		return nil
	}
	if term := os.Getenv("TERM"); term == "" || strings.EqualFold(term, "dumb") {
		return errNoClipboard
	}
	info, err := os.Stdout.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice == 0 {
		return errNoClipboard
	}
	_, err = osc52.New(text).WriteTo(os.Stdout)
	return err
}

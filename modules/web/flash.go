package web

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const flashCookie = "flash"

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

// setFlash stores a flash message in a short-lived cookie. The next page
// render consumes it.
func setFlash(c *fiber.Ctx, category, message string) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(category + "|" + message),
		Path:     "/",
		MaxAge:   60,
		HTTPOnly: true,
	})
}

// popFlash reads and clears the flash cookie.
func popFlash(c *fiber.Ctx) *Flash {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return nil
	}

	c.Cookie(&fiber.Cookie{
		Name:    flashCookie,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
	})

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}
	category, message, found := strings.Cut(decoded, "|")
	if !found {
		return &Flash{Category: "info", Message: decoded}
	}
	return &Flash{Category: category, Message: message}
}

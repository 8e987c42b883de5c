package server

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const flashCookie = "flash"

const (
	flashDanger  = "danger"
	flashWarning = "warning"
	flashSuccess = "success"
)

// Flash is a one-shot message shown on the next index render.
type Flash struct {
	Level   string
	Message string
}

// setFlash stores a flash message in a short-lived cookie, read and cleared
// by the next page load.
func setFlash(c *gin.Context, level, message string) {
	value := url.QueryEscape(level + "|" + message)
	c.SetCookie(flashCookie, value, 60, "/", "", false, true)
}

// popFlash reads and clears the flash cookie. Returns nil when none is set.
func popFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	value, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}
	level, message, found := strings.Cut(value, "|")
	if !found {
		return &Flash{Level: flashWarning, Message: value}
	}
	return &Flash{Level: level, Message: message}
}

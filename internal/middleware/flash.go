package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/skillbridge-web/pkg/flash"
)

const (
	flashStoreKey = "flash_store"
	flashNowKey   = "flash_now"
)

// Flashes makes store available to SetFlash and PopFlash.
func Flashes(store *flash.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(flashStoreKey, store)
		c.Next()
	}
}

// SetFlash queues a message for the next page the browser loads.
func SetFlash(c *gin.Context, kind flash.Kind, text string) {
	store := flashStore(c)
	if store == nil {
		return
	}
	if err := store.Set(c.Writer, kind, text); err != nil {
		_ = c.Error(err)
	}
}

// FlashNow shows a message on the page rendered by this request instead of
// the next one.
func FlashNow(c *gin.Context, kind flash.Kind, text string) {
	c.Set(flashNowKey, &flash.Message{Kind: kind, Text: text})
}

// PopFlash returns the message to show on the current page, if any.
func PopFlash(c *gin.Context) *flash.Message {
	if v, ok := c.Get(flashNowKey); ok {
		if msg, ok := v.(*flash.Message); ok {
			return msg
		}
	}
	store := flashStore(c)
	if store == nil {
		return nil
	}
	return store.Pop(c.Writer, c.Request)
}

func flashStore(c *gin.Context) *flash.Store {
	if v, ok := c.Get(flashStoreKey); ok {
		if store, ok := v.(*flash.Store); ok {
			return store
		}
	}
	return nil
}

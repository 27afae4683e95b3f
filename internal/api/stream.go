package api

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/RaevaDesai/CommunityFund/internal/watch"
)

// streamValue forwards every published snapshot of v to the client as a
// server-sent event until the client disconnects. The current snapshot is
// delivered immediately on subscribe, so clients never start from an empty
// screen.
func streamValue[T any](c *gin.Context, v *watch.Value[T], event string) {
	ch, stop := v.Subscribe()
	defer stop()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(event, snapshot)
			return true
		case <-ctx.Done():
			return false
		}
	})
}

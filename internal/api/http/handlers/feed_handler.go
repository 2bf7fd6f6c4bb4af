package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/placement-portal/internal/feed"
	"github.com/spec-kit/placement-portal/internal/service"
)

// FeedHandler streams collection changes over server-sent events.
type FeedHandler struct {
	feed   feed.Feed
	logger *zap.Logger
}

// NewFeedHandler constructs the handler.
func NewFeedHandler(f feed.Feed, logger *zap.Logger) *FeedHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedHandler{feed: f, logger: logger}
}

var feedCollections = map[string]struct{}{
	service.CollectionApplications: {},
	service.CollectionPostings:     {},
	service.CollectionReviews:      {},
}

const feedPingInterval = 15 * time.Second

// Stream handles GET /feed. The collections query parameter selects which
// collections to watch; absent means all of them.
func (h *FeedHandler) Stream(c *fiber.Ctx) error {
	collections := parseCollections(c.Query("collections"))
	if len(collections) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "unknown collection")
	}

	merged := make(chan feed.Change, 32)
	cancels := make([]feed.CancelFunc, 0, len(collections))
	for _, collection := range collections {
		ch, cancel := h.feed.Subscribe(collection)
		cancels = append(cancels, cancel)
		go func(ch <-chan feed.Change) {
			for change := range ch {
				select {
				case merged <- change:
				default:
				}
			}
		}(ch)
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer func() {
			for _, cancel := range cancels {
				cancel()
			}
		}()

		ping := time.NewTicker(feedPingInterval)
		defer ping.Stop()

		for {
			select {
			case change := <-merged:
				payload, err := json.Marshal(change)
				if err != nil {
					h.logger.Warn("feed change marshal failed", zap.Error(err))
					continue
				}
				fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload)
			case <-ping.C:
				fmt.Fprint(w, ": ping\n\n")
			}
			if err := w.Flush(); err != nil {
				// Client went away.
				return
			}
		}
	})
	return nil
}

func parseCollections(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{service.CollectionApplications, service.CollectionPostings, service.CollectionReviews}
	}
	out := make([]string, 0, 3)
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if _, ok := feedCollections[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

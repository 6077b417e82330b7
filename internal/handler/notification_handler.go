package handler

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"volunteer-match/internal/domain"
	"volunteer-match/internal/middleware"
	"volunteer-match/internal/service/notification"
)

const (
	streamBuffer    = 16
	streamKeepAlive = 15 * time.Second
)

type NotificationHandler struct {
	notifService notification.Service
	keepAlive    time.Duration

	closeOnce sync.Once
	done      chan struct{}
}

func NewNotificationHandler(notifService notification.Service) *NotificationHandler {
	return &NotificationHandler{
		notifService: notifService,
		keepAlive:    streamKeepAlive,
		done:         make(chan struct{}),
	}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	volunteerID, err := volunteerParam(c, "volunteerId")
	if err != nil {
		return err
	}

	notices, err := h.notifService.ListForVolunteer(c.UserContext(), volunteerID, c.QueryInt("limit", 50))
	if err != nil {
		if errors.Is(err, domain.ErrVolunteerNotFound) {
			return middleware.NotFound("Volunteer not found")
		}
		return err
	}
	return c.JSON(notices)
}

// Stream holds a Server-Sent-Events connection open and writes one
// "event: notice" frame per payload published on the volunteer's channel.
// A client that falls streamBuffer notices behind loses the overflow.
func (h *NotificationHandler) Stream(c *fiber.Ctx) error {
	volunteerID, err := volunteerParam(c, "volunteerId")
	if err != nil {
		return err
	}

	notices := make(chan domain.NoticePayload, streamBuffer)
	unsubscribe, err := h.notifService.Subscribe(c.UserContext(), volunteerID, func(p domain.NoticePayload) {
		select {
		case notices <- p:
		default:
		}
	})
	if err != nil {
		if errors.Is(err, domain.ErrVolunteerNotFound) {
			return middleware.NotFound("Volunteer not found")
		}
		return err
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer unsubscribe()

		ticker := time.NewTicker(h.keepAlive)
		defer ticker.Stop()

		fmt.Fprint(w, ": connected\n\n")
		if err := w.Flush(); err != nil {
			return
		}

		for {
			select {
			case <-h.done:
				return
			case p := <-notices:
				data, err := json.Marshal(p)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: notice\nid: %s\ndata: %s\n\n", p.ID, data)
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
			}
			// A failed flush means the client went away.
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))

	return nil
}

// CloseStreams ends every open stream so the server can shut down.
func (h *NotificationHandler) CloseStreams() {
	h.closeOnce.Do(func() { close(h.done) })
}

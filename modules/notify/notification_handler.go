package notify

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shipfwd/notifyd/pkg/notification"
)

// NotificationHandler exposes the notification lifecycle and query services
// over HTTP.
type NotificationHandler struct {
	service *notification.Service
	query   *notification.Query
	log     *slog.Logger
}

// NewNotificationHandler creates the notification HTTP handler.
func NewNotificationHandler(service *notification.Service, query *notification.Query, log *slog.Logger) *NotificationHandler {
	if log == nil {
		log = slog.Default()
	}
	return &NotificationHandler{service: service, query: query, log: log}
}

// Handle returns the router for the notification endpoints.
func (h *NotificationHandler) Handle() http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.create)
	r.Post("/bulk", h.createBulk)
	r.Get("/pending", h.pending)
	r.Get("/entity/{entityType}/{entityId}", h.byEntity)

	r.Route("/user/{userId}", func(r chi.Router) {
		r.Get("/", h.listForUser)
		r.Get("/unread-count", h.unreadCount)
		r.Get("/stats", h.stats)
		r.Patch("/read-all", h.markAllRead)
		r.Delete("/cleanup", h.cleanup)
	})

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.get)
		r.Put("/", h.update)
		r.Delete("/", h.delete)
		r.Patch("/read", h.markRead)
		r.Patch("/sent", h.markSent)
	})

	return r
}

func (h *NotificationHandler) create(w http.ResponseWriter, r *http.Request) {
	var params notification.CreateParams
	if err := decodeJSON(r, &params); err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}

	n, err := h.service.Create(r.Context(), params)
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, n)
}

func (h *NotificationHandler) createBulk(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Notifications []notification.CreateParams `json:"notifications"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}

	result, err := h.service.CreateBulk(r.Context(), body.Notifications)
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

func (h *NotificationHandler) get(w http.ResponseWriter, r *http.Request) {
	n, err := h.query.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, n)
}

func (h *NotificationHandler) listForUser(w http.ResponseWriter, r *http.Request) {
	filter := notification.ListFilter{
		Type:  notification.Type(r.URL.Query().Get("type")),
		Limit: queryInt64(r, "limit"),
		Skip:  queryInt64(r, "skip"),
	}
	if v := r.URL.Query().Get("isRead"); v != "" {
		isRead := v == "true"
		filter.IsRead = &isRead
	}
	if v := r.URL.Query().Get("isSent"); v != "" {
		isSent := v == "true"
		filter.IsSent = &isSent
	}

	list, err := h.query.ListForUser(r.Context(), chi.URLParam(r, "userId"), filter)
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *NotificationHandler) unreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.query.UnreadCount(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (h *NotificationHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.query.StatsByType(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *NotificationHandler) markRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.MarkRead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, n)
}

func (h *NotificationHandler) markAllRead(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.MarkAllRead(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":       "all notifications marked as read",
		"modifiedCount": count,
	})
}

func (h *NotificationHandler) markSent(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.MarkSent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, n)
}

func (h *NotificationHandler) pending(w http.ResponseWriter, r *http.Request) {
	channel := notification.Channel(r.URL.Query().Get("channel"))
	list, err := h.query.Pending(r.Context(), channel)
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *NotificationHandler) byEntity(w http.ResponseWriter, r *http.Request) {
	list, err := h.query.ByEntity(r.Context(),
		notification.EntityType(chi.URLParam(r, "entityType")),
		chi.URLParam(r, "entityId"))
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *NotificationHandler) update(w http.ResponseWriter, r *http.Request) {
	var fields notification.UpdateFields
	if err := decodeJSON(r, &fields); err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}

	n, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), fields)
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, n)
}

func (h *NotificationHandler) delete(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":      "notification deleted",
		"notification": n,
	})
}

func (h *NotificationHandler) cleanup(w http.ResponseWriter, r *http.Request) {
	olderThanDays := int(queryInt64(r, "olderThanDays"))

	count, err := h.service.Cleanup(r.Context(), chi.URLParam(r, "userId"), olderThanDays)
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":      "old notifications deleted",
		"deletedCount": count,
	})
}

func queryInt64(r *http.Request, name string) int64 {
	v, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

package notify

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shipfwd/notifyd/pkg/notification"
	"github.com/shipfwd/notifyd/pkg/preference"
)

// PreferenceHandler exposes delivery-preference management over HTTP.
type PreferenceHandler struct {
	resolver *preference.Resolver
	log      *slog.Logger
}

// NewPreferenceHandler creates the preference HTTP handler.
func NewPreferenceHandler(resolver *preference.Resolver, log *slog.Logger) *PreferenceHandler {
	if log == nil {
		log = slog.Default()
	}
	return &PreferenceHandler{resolver: resolver, log: log}
}

// Handle returns the router for the preference endpoints.
func (h *PreferenceHandler) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.list)
	r.Post("/", h.create)

	r.Route("/user/{userId}", func(r chi.Router) {
		r.Get("/", h.getOrCreate)
		r.Put("/", h.replace)
		r.Delete("/", h.delete)
		r.Patch("/type/{type}", h.setCategory)
		r.Get("/type/{type}/channels", h.channels)
		r.Post("/dnd/enable", h.enableDND)
		r.Post("/dnd/disable", h.disableDND)
		r.Get("/dnd/status", h.dndStatus)
		r.Post("/reset", h.reset)
	})

	return r
}

// preferenceBody is the JSON shape for create and replace requests.
type preferenceBody struct {
	UserID       string                                       `json:"userId"`
	Preferences  map[notification.Type][]notification.Channel `json:"preferences"`
	DoNotDisturb preference.DoNotDisturb                      `json:"doNotDisturb"`
}

func (h *PreferenceHandler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.resolver.List(r.Context())
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *PreferenceHandler) create(w http.ResponseWriter, r *http.Request) {
	var body preferenceBody
	if err := decodeJSON(r, &body); err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}

	p, err := h.resolver.Create(r.Context(), body.UserID, body.Preferences, body.DoNotDisturb)
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

func (h *PreferenceHandler) getOrCreate(w http.ResponseWriter, r *http.Request) {
	p, err := h.resolver.GetOrCreate(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *PreferenceHandler) replace(w http.ResponseWriter, r *http.Request) {
	var body preferenceBody
	if err := decodeJSON(r, &body); err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}

	p, err := h.resolver.Replace(r.Context(), chi.URLParam(r, "userId"), body.Preferences, body.DoNotDisturb)
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *PreferenceHandler) setCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Channels []notification.Channel `json:"channels"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}

	p, err := h.resolver.SetCategory(r.Context(),
		chi.URLParam(r, "userId"),
		notification.Type(chi.URLParam(r, "type")),
		body.Channels)
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *PreferenceHandler) enableDND(w http.ResponseWriter, r *http.Request) {
	var body struct {
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}

	p, err := h.resolver.EnableDoNotDisturb(r.Context(),
		chi.URLParam(r, "userId"), body.StartTime, body.EndTime)
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *PreferenceHandler) disableDND(w http.ResponseWriter, r *http.Request) {
	p, err := h.resolver.DisableDoNotDisturb(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *PreferenceHandler) dndStatus(w http.ResponseWriter, r *http.Request) {
	suppressed, err := h.resolver.IsSuppressed(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"isInDoNotDisturbPeriod": suppressed})
}

func (h *PreferenceHandler) reset(w http.ResponseWriter, r *http.Request) {
	p, err := h.resolver.ResetToDefault(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *PreferenceHandler) delete(w http.ResponseWriter, r *http.Request) {
	p, err := h.resolver.Delete(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":    "preference deleted",
		"preference": p,
	})
}

func (h *PreferenceHandler) channels(w http.ResponseWriter, r *http.Request) {
	channels, err := h.resolver.ChannelsFor(r.Context(),
		chi.URLParam(r, "userId"),
		notification.Type(chi.URLParam(r, "type")))
	if err != nil {
		respondError(r.Context(), w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string][]notification.Channel{"channels": channels})
}

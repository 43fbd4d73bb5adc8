package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"devblog-api/internal/middleware"
	"devblog-api/internal/model"
	"devblog-api/internal/service"
)

type SubscriptionHandler struct {
	subscriptions *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptions *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions}
}

func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthenticated)
		return
	}

	if err := h.subscriptions.Subscribe(r.Context(), actor, chi.URLParam(r, "authorID")); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"subscribed": true}, nil)
}

func (h *SubscriptionHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthenticated)
		return
	}

	if err := h.subscriptions.Unsubscribe(r.Context(), actor, chi.URLParam(r, "authorID")); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"subscribed": false}, nil)
}

func (h *SubscriptionHandler) SubscriberCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.subscriptions.SubscriberCount(r.Context(), chi.URLParam(r, "authorID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"subscribers": count}, nil)
}

func (h *SubscriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthenticated)
		return
	}

	authors, err := h.subscriptions.ListAuthors(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"subscriptions": authors}, nil)
}

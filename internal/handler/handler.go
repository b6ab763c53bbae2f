package handler

import (
	"net/http"
	"sync"

	"github.com/shivanshkc/pinterestauth/internal/repository"
	"github.com/shivanshkc/pinterestauth/internal/session"
	"github.com/shivanshkc/pinterestauth/internal/utils/errutils"
	"github.com/shivanshkc/pinterestauth/internal/utils/httputils"
	"github.com/shivanshkc/pinterestauth/pkg/config"
	"github.com/shivanshkc/pinterestauth/pkg/oauth"
)

// Handler encapsulates all REST handlers.
type Handler struct {
	config config.Config
	// stateMap holds the state of every ongoing OAuth flow, keyed by the strategy's session key and the state ID.
	stateMap *sync.Map

	strategies map[string]oauth.Strategy[repository.User]
	repo       repository.Repository
	sessions   *session.Manager
}

// NewHandler creates a new Handler instance.
func NewHandler(config config.Config, repo repository.Repository, sessions *session.Manager,
	strategies ...oauth.Strategy[repository.User],
) *Handler {
	strategyMap := make(map[string]oauth.Strategy[repository.User], len(strategies))
	for _, strategy := range strategies {
		strategyMap[strategy.Name()] = strategy
	}

	return &Handler{
		config:     config,
		stateMap:   &sync.Map{},
		strategies: strategyMap,
		repo:       repo,
		sessions:   sessions,
	}
}

// NotFound handler can be used to serve any unrecognized routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	httputils.WriteErr(w, errutils.NotFound())
}

// Health returns 200 if everything is running fine.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	info := map[string]string{"name": h.config.Application.Name}
	httputils.Write(w, http.StatusOK, nil, info)
}

// strategyByName returns the strategy registered under the given name, or nil.
func (h *Handler) strategyByName(name string) oauth.Strategy[repository.User] {
	return h.strategies[name]
}

// fallbackRedirectURL is used when an OAuth flow fails before the client's redirect URL is known.
func (h *Handler) fallbackRedirectURL() string {
	if len(h.config.AllowedRedirectURLs) == 0 {
		return h.config.Application.BaseURL
	}
	return h.config.AllowedRedirectURLs[0]
}

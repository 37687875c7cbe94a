package admin

import "github.com/1983adrian/adimarketplace-sub002/internal/provider"

// Handler serves the back office API routes.
type Handler struct {
	*provider.Container
}

// New creates the admin handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

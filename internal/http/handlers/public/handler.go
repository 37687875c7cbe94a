package public

import "github.com/1983adrian/adimarketplace-sub002/internal/provider"

// Handler serves buyer and seller facing API routes.
type Handler struct {
	*provider.Container
}

// New creates the public handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

package clientapp

import (
	"context"
	"strings"

	"gym_backend/internal/models"
	"gym_backend/pkg/utils"
)

// ClientLister loads the full client list.
type ClientLister interface {
	ListClients(ctx context.Context) ([]models.Client, error)
}

// ClientCache is a read-through copy of GET /clientes. Writes must call Invalidate.
type ClientCache struct {
	api     ClientLister
	clients []models.Client
	loaded  bool
}

func NewClientCache(api ClientLister) *ClientCache {
	return &ClientCache{api: api}
}

// Load refreshes the cache from the server.
func (c *ClientCache) Load(ctx context.Context) error {
	clients, err := c.api.ListClients(ctx)
	if err != nil {
		return err
	}
	c.clients, c.loaded = clients, true
	return nil
}

// Clients returns the cached list, loading it on first use.
func (c *ClientCache) Clients(ctx context.Context) ([]models.Client, error) {
	if !c.loaded {
		if err := c.Load(ctx); err != nil {
			return nil, err
		}
	}
	return c.clients, nil
}

// Search returns the clients whose name contains text, ignoring case.
// Empty text matches nothing.
func (c *ClientCache) Search(ctx context.Context, text string) ([]models.Client, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	clients, err := c.Clients(ctx)
	if err != nil {
		return nil, err
	}
	var matches []models.Client
	for _, cl := range clients {
		if utils.ContainsFold(cl.Nombre, text) {
			matches = append(matches, cl)
		}
	}
	return matches, nil
}

func (c *ClientCache) Invalidate() {
	c.clients, c.loaded = nil, false
}

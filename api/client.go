package api

import (
	"github.com/pkg/errors"

	"github.com/fplassist/go-fpl-client/transport"
)

// Client exposes the remote service's resources as typed request/response
// mappings over the transport. No business logic lives here: paths and
// bodies are built from typed parameters, and classified failures propagate
// unchanged.
type Client struct {
	t *transport.Client
}

// New creates a resource client over the given transport.
func New(t *transport.Client) (*Client, error) {
	if t == nil {
		return nil, errors.New("[api.New] transport is required")
	}
	return &Client{t: t}, nil
}

// internal/scratch/swap.go
package scratch

import (
	"github.com/ferrisbury/slate/internal/logger"
	"github.com/ferrisbury/slate/internal/surface"
)

// Controller tracks which logical region is active: an external surface
// or the scratch surface. It remembers the last external surface each
// time the user swaps in, so a second swap restores it. The scratch
// surface is created on demand and its handle is cleared by the host's
// destroy hook when the user closes it.
type Controller struct {
	host surface.Host
	name string

	scratchID surface.ID
	prevID    surface.ID
}

// NewController creates a swap controller for the given host. name is
// the display name given to the scratch surface on creation.
func NewController(host surface.Host, name string) *Controller {
	return &Controller{
		host: host,
		name: name,
	}
}

// ScratchID returns the scratch surface handle, or surface.None before
// the surface exists (or after the user closed it).
func (c *Controller) ScratchID() surface.ID {
	return c.scratchID
}

// InScratch reports whether the scratch surface is currently active.
func (c *Controller) InScratch() bool {
	return c.scratchID != surface.None && c.host.Active() == c.scratchID
}

// Swap toggles between the scratch surface and the last external
// surface. Swapping in records the current surface to return to;
// swapping out reads (without clearing) the remembered one. Failures
// leave the active surface unchanged.
func (c *Controller) Swap() Outcome {
	active := c.host.Active()

	if c.scratchID != surface.None && active == c.scratchID {
		// Inside the scratch surface: go back where we came from.
		if c.prevID == surface.None || !c.host.Valid(c.prevID) {
			return Warning("cannot restore previous surface")
		}
		if err := c.host.Activate(c.prevID); err != nil {
			return Warning("cannot restore previous surface")
		}
		return Ok()
	}

	// Outside: remember where we are, then enter the scratch surface.
	c.prevID = active

	if c.scratchID != surface.None && c.host.Valid(c.scratchID) {
		if err := c.host.Activate(c.scratchID); err != nil {
			return Failure("cannot activate scratch surface", err)
		}
		return Ok()
	}

	id, err := c.host.CreateScratch(c.name)
	if err != nil {
		c.scratchID = surface.None
		return Failure("cannot create scratch surface", err)
	}
	c.host.OnDestroy(id, func() {
		logger.Debugf("Controller: scratch surface %d destroyed by host", id)
		c.scratchID = surface.None
	})
	c.scratchID = id

	if err := c.host.Activate(id); err != nil {
		return Failure("cannot activate scratch surface", err)
	}
	return Ok()
}

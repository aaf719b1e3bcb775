package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"addrlease/internal/domain/deployment"
)

// CreateNetwork godoc
//
//	@Summary		Create a new network
//	@Description	Create a network with its subnets and exclusion lists
//	@Tags			networks
//	@Accept			json
//	@Produce		json
//	@Param			network	body		deployment.NetworkCreateRequest	true	"Network creation request"
//	@Success		201		{object}	deployment.Network
//	@Failure		400		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Router			/networks [post]
func (h *Handler) CreateNetwork(c *gin.Context) {
	var req deployment.NetworkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n, err := h.networks.CreateNetwork(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, deployment.ErrDuplicateNetworkName) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, n)
}

// ListNetworks godoc
//
//	@Summary	List all networks
//	@Tags		networks
//	@Produce	json
//	@Success	200	{array}		deployment.Network
//	@Failure	500	{object}	map[string]string
//	@Router		/networks [get]
func (h *Handler) ListNetworks(c *gin.Context) {
	networks, err := h.networks.ListNetworks(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, networks)
}

// GetNetwork godoc
//
//	@Summary	Get a network
//	@Tags		networks
//	@Produce	json
//	@Param		networkName	path		string	true	"Network name"
//	@Success	200			{object}	deployment.Network
//	@Failure	404			{object}	map[string]string
//	@Router		/networks/{networkName} [get]
func (h *Handler) GetNetwork(c *gin.Context) {
	n, err := h.networks.GetNetwork(c.Request.Context(), c.Param("networkName"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, n)
}

// DeleteNetwork godoc
//
//	@Summary		Delete a network
//	@Description	Releases every lease on the network and removes its definition
//	@Tags			networks
//	@Param			networkName	path	string	true	"Network name"
//	@Success		204
//	@Failure		404	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Router			/networks/{networkName} [delete]
func (h *Handler) DeleteNetwork(c *gin.Context) {
	name := c.Param("networkName")
	if err := h.networks.DeleteNetwork(c.Request.Context(), name); err != nil {
		if errors.Is(err, deployment.ErrNetworkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.events.Broadcast(LeaseEvent{Type: EventNetworkDeleted, Network: name})
	c.Status(http.StatusNoContent)
}

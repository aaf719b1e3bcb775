package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"addrlease/internal/application/allocator"
	"addrlease/internal/domain/deployment"
	"addrlease/internal/domain/lease"
)

// LeaseRequest is the wire form of a reservation request. An empty IP asks
// for dynamic allocation; a concrete IP is an explicit (static) reservation.
type LeaseRequest struct {
	IP         string `json:"ip,omitempty"`
	Deployment string `json:"deployment" binding:"required"`
	Job        string `json:"job" binding:"required"`
	Index      int    `json:"index"`
}

// CreateLease godoc
//
//	@Summary		Lease an address
//	@Description	Reserves the given IP for an instance, or allocates the lowest free address when no IP is given. Re-reserving an address held by the same instance is idempotent.
//	@Tags			leases
//	@Accept			json
//	@Produce		json
//	@Param			networkName	path		string			true	"Network name"
//	@Param			lease		body		LeaseRequest	true	"Lease request"
//	@Param			X-Task-Id	header		string			false	"Orchestration task stamped on the lease"
//	@Success		201			{object}	deployment.Reservation
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Failure		409			{object}	map[string]string
//	@Router			/networks/{networkName}/leases [post]
func (h *Handler) CreateLease(c *gin.Context) {
	var req LeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	net, err := h.networks.GetNetwork(c.Request.Context(), c.Param("networkName"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	// Task provenance comes from the calling orchestration context; generate
	// one for ad-hoc callers.
	taskID := c.GetHeader("X-Task-Id")
	if taskID == "" {
		taskID = uuid.NewString()
	}

	res := &deployment.Reservation{
		NetworkName: net.Name,
		Instance:    deployment.Instance{Deployment: req.Deployment, Job: req.Job, Index: req.Index},
		Type:        deployment.ReservationUnresolved,
	}

	if req.IP == "" {
		_, ok, err := h.allocator.AllocateDynamicAny(c.Request.Context(), taskID, net, res)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !ok {
			// Exhaustion is an expected outcome callers must branch on.
			c.JSON(http.StatusConflict, gin.H{"code": "pool_exhausted", "error": "no address available"})
			return
		}
	} else {
		addr, err := lease.ParseAddress(req.IP)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		res.IP = addr

		if err := h.allocator.Reserve(c.Request.Context(), taskID, net, res); err != nil {
			var inUse *allocator.AddressInUseError
			if errors.As(err, &inUse) {
				c.JSON(http.StatusConflict, gin.H{
					"code":   "address_in_use",
					"error":  inUse.Error(),
					"holder": inUse.HolderRef,
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	h.events.Broadcast(LeaseEvent{
		Type:     EventLeaseCreated,
		Network:  net.Name,
		Address:  res.IP.String(),
		Instance: res.Instance.Ref(),
		TaskID:   taskID,
	})
	c.JSON(http.StatusCreated, res)
}

// ListLeases godoc
//
//	@Summary	List leases on a network
//	@Tags		leases
//	@Produce	json
//	@Param		networkName	path		string	true	"Network name"
//	@Success	200			{array}		lease.Record
//	@Failure	404			{object}	map[string]string
//	@Router		/networks/{networkName}/leases [get]
func (h *Handler) ListLeases(c *gin.Context) {
	records, err := h.networks.ListLeases(c.Request.Context(), c.Param("networkName"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

// ReleaseLease godoc
//
//	@Summary		Release a leased address
//	@Description	Removes the lease; releasing an address that was never leased succeeds as a no-op
//	@Tags			leases
//	@Param			networkName	path	string	true	"Network name"
//	@Param			ip			path	string	true	"Leased IP address"
//	@Success		204
//	@Failure		400	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Router			/networks/{networkName}/leases/{ip} [delete]
func (h *Handler) ReleaseLease(c *gin.Context) {
	addr, err := lease.ParseAddress(c.Param("ip"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name := c.Param("networkName")

	if err := h.allocator.Release(c.Request.Context(), addr, name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.events.Broadcast(LeaseEvent{Type: EventLeaseReleased, Network: name, Address: addr.String()})
	c.Status(http.StatusNoContent)
}

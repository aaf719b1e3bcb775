package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"     // swagger embed files
	ginSwagger "github.com/swaggo/gin-swagger" // gin-swagger middleware

	"addrlease/internal/application/allocator"
	"addrlease/internal/application/ipam"
	"addrlease/internal/application/network"

	_ "addrlease/docs" // swagger docs
)

// Handler handles HTTP requests for the leasing API
type Handler struct {
	networks  *network.Service
	allocator *allocator.Service
	ipam      *ipam.Service
	events    *EventHub
}

// NewHandler creates a new API handler
func NewHandler(networks *network.Service, alloc *allocator.Service, ipamService *ipam.Service) *Handler {
	return &Handler{
		networks:  networks,
		allocator: alloc,
		ipam:      ipamService,
		events:    NewEventHub(),
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	api := r.Group("/api/v1")
	api.Use(authMiddleware)
	{
		networks := api.Group("/networks")
		{
			networks.POST("", h.CreateNetwork)
			networks.GET("", h.ListNetworks)
			networks.GET("/:networkName", h.GetNetwork)
			networks.DELETE("/:networkName", h.DeleteNetwork)

			leases := networks.Group("/:networkName/leases")
			{
				leases.POST("", h.CreateLease)
				leases.GET("", h.ListLeases)
				leases.DELETE("/:ip", h.ReleaseLease)
			}
		}

		api.GET("/ipam/suggest", h.SuggestCIDRs)
		api.GET("/ws", h.HandleWebSocket)
		api.GET("/health", h.Health)
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// Health godoc
//
//	@Summary	Health check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SuggestCIDRs godoc
//
//	@Summary		Suggest subnet CIDRs
//	@Description	Returns CIDRs sized to hold at least max_instances VMs each, carved from base_cidr
//	@Tags			ipam
//	@Produce		json
//	@Param			max_instances	query	int		true	"Maximum number of instances per subnet"
//	@Param			count			query	int		false	"How many CIDRs to return"	default(1)
//	@Param			base_cidr		query	string	false	"Root CIDR to carve from"	default(10.0.0.0/8)
//	@Success		200	{object}	map[string]any
//	@Failure		400	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Router			/ipam/suggest [get]
func (h *Handler) SuggestCIDRs(c *gin.Context) {
	maxStr := c.Query("max_instances")
	if maxStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max_instances query parameter is required"})
		return
	}
	maxInstances, err := strconv.Atoi(maxStr)
	if err != nil || maxInstances <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max_instances must be a positive integer"})
		return
	}
	count, err := strconv.Atoi(c.DefaultQuery("count", "1"))
	if err != nil || count <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "count must be a positive integer"})
		return
	}
	baseCIDR := c.DefaultQuery("base_cidr", "10.0.0.0/8")

	prefixLen, cidrs, err := h.ipam.SuggestCIDRs(c.Request.Context(), baseCIDR, maxInstances, count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"base_cidr":        baseCIDR,
		"max_instances":    maxInstances,
		"suggested_prefix": prefixLen,
		"usable_hosts":     (1 << (32 - prefixLen)) - 2,
		"cidrs":            cidrs,
	})
}

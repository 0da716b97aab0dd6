package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-service/internal/platform/node"
)

// NodeHandler serves host introspection.
type NodeHandler struct {
	appName string
	collect func() node.Info
	now     func() time.Time
}

// NewNodeHandler creates a node handler reporting appName.
func NewNodeHandler(appName string) *NodeHandler {
	return &NodeHandler{
		appName: appName,
		collect: node.Collect,
		now:     time.Now,
	}
}

// GetNodeInfo handles GET /api/nodeinfo.
//
// @Summary Describe the serving node
// @Tags system
// @Produce json
// @Success 200 {object} dto.NodeInfoResponse
// @Router /api/nodeinfo [get]
func (h *NodeHandler) GetNodeInfo(c *gin.Context) {
	info := h.collect()

	c.JSON(http.StatusOK, dto.NodeInfoResponse{
		Hostname:            info.Hostname,
		App:                 h.appName,
		OSName:              info.OSName,
		OSVersion:           info.OSVersion,
		OSArch:              info.OSArch,
		AvailableProcessors: info.Processors,
		MaxMemoryMB:         info.MaxMemoryMB,
		TotalMemoryMB:       info.TotalMemoryMB,
		FreeMemoryMB:        info.FreeMemoryMB,
		Timestamp:           dto.FormatTimestamp(h.now()),
	})
}

// RegisterNodeRoutes registers node routes on the given router group.
func (h *NodeHandler) RegisterNodeRoutes(rg *gin.RouterGroup) {
	rg.GET("/nodeinfo", h.GetNodeInfo)
}

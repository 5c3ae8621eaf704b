package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pion/webrtc/v4"

	"github.com/leshko/huddle/internal/config"
)

// WebRTCConfigHandler serves the ICE server list browsers should negotiate
// with. The server itself never opens a PeerConnection; media stays
// end-to-end between peers.
func WebRTCConfigHandler(cfg *config.Config) gin.HandlerFunc {
	rtcCfg := webrtc.Configuration{
		ICEServers: []webrtc.ICEServer{
			{URLs: cfg.ICEServers},
		},
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, rtcCfg)
	}
}

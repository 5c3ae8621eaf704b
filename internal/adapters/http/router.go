package http

import (
	"context"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/leshko/huddle/internal/adapters/signal"
	"github.com/leshko/huddle/internal/app"
	"github.com/leshko/huddle/internal/config"
	"github.com/leshko/huddle/internal/store"
)

// ClientTokenMiddleware gives every browser a stable token used as the
// creator identity on room records. Who the human actually is gets resolved
// upstream; the coordinator never checks it.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = uuid.NewString()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, coord *app.Coordinator, st *store.Store) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	cookieStore := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("HuddleSessions", cookieStore))
	r.Use(ClientTokenMiddleware())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	api := r.Group("/api")

	ctrl := signal.NewController(coord, cfg)
	api.GET("/ws/signal", func(c *gin.Context) {
		ctrl.HandleSignal(ctx, c)
	})

	rooms := &RoomsAPI{Store: st}
	api.POST("/rooms", rooms.Create)
	api.GET("/rooms", rooms.List)
	api.GET("/rooms/:code", rooms.Get)

	api.GET("/webrtc-config", WebRTCConfigHandler(cfg))

	// Live presence: which rooms currently have members, and how many.
	// Ephemeral state, distinct from the persisted records above.
	api.GET("/presence", func(c *gin.Context) {
		c.JSON(200, coord.Rooms.List())
	})

	return r
}

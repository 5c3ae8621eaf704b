package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/leshko/huddle/internal/store"
)

// RoomsAPI is the thin CRUD layer over persisted room records. It exists so
// creators get a shareable code; the signaling path never consults it.
type RoomsAPI struct {
	Store *store.Store
}

type createRoomRequest struct {
	Name string `json:"name" binding:"required"`
}

func (a *RoomsAPI) Create(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid name"})
		return
	}

	createdBy := c.GetString("client_token")
	rec, err := a.Store.CreateRoom(req.Name, createdBy)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("create room")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
		return
	}

	c.JSON(http.StatusCreated, rec)
}

func (a *RoomsAPI) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	createdBy := c.GetString("client_token")
	recs, total, err := a.Store.ListRoomsByCreator(createdBy, page, limit)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("list rooms")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rooms"})
		return
	}
	if recs == nil {
		recs = []*store.RoomRecord{}
	}

	c.JSON(http.StatusOK, gin.H{"data": recs, "total": total})
}

func (a *RoomsAPI) Get(c *gin.Context) {
	rec, err := a.Store.GetRoomByCode(c.Param("code"))
	if err != nil {
		if errors.Is(err, store.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		log.Error().Err(err).Str("module", "adapters.http").Msg("get room")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get room"})
		return
	}

	c.JSON(http.StatusOK, rec)
}

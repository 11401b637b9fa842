package api

import (
	"errors"
	"net/http"

	"github.com/ericogr/arena-battles/internal/constants"
	"github.com/ericogr/arena-battles/internal/logging"
	"github.com/ericogr/arena-battles/internal/service"
	"github.com/ericogr/arena-battles/internal/storage"

	"github.com/gin-gonic/gin"
)

// CharacterHandler serves the character CRUD endpoints.
type CharacterHandler struct {
	repo storage.Repository
}

func NewCharacterHandler(repo storage.Repository) *CharacterHandler {
	return &CharacterHandler{repo: repo}
}

func (h *CharacterHandler) List(c *gin.Context) {
	chars, err := h.repo.ListCharacters(c.Request.Context())
	if err != nil {
		logging.Error("list characters failed", err, nil)
		c.JSON(http.StatusInternalServerError, errorBody(constants.ErrFailedFetchCharacters, constants.CodeInternal, err.Error()))
		return
	}
	respondData(c, http.StatusOK, chars, "")
}

func (h *CharacterHandler) Get(c *gin.Context) {
	ch, err := service.GetCharacter(c.Request.Context(), h.repo, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, ch, "")
}

// Create stores a character. Without user_id it belongs to the session user.
func (h *CharacterHandler) Create(c *gin.Context) {
	var req service.CharacterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.UserID == "" {
		req.UserID = currentUserID(c)
	}
	ch, err := service.CreateCharacter(c.Request.Context(), h.repo, req)
	if err != nil {
		respondError(c, err)
		return
	}
	logging.Info("character created", logging.Fields{constants.LogFieldCharacterID: ch.ID, constants.LogFieldUserID: ch.UserID})
	respondData(c, http.StatusCreated, ch, "Character created")
}

func (h *CharacterHandler) Update(c *gin.Context) {
	var req service.CharacterPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	ch, err := service.UpdateCharacter(c.Request.Context(), h.repo, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, ch, "Character updated")
}

func (h *CharacterHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.repo.DeleteCharacter(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorBody("character not found", service.CodeCharacterNotFound, ""))
			return
		}
		logging.Error("delete character failed", err, logging.Fields{constants.LogFieldCharacterID: id})
		c.JSON(http.StatusInternalServerError, errorBody(constants.ErrFailedDeleteCharacter, constants.CodeInternal, err.Error()))
		return
	}
	respondData(c, http.StatusOK, gin.H{"id": id}, "Character deleted")
}

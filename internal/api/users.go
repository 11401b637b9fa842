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

// UserHandler serves the account CRUD endpoints.
type UserHandler struct {
	repo storage.Repository
}

func NewUserHandler(repo storage.Repository) *UserHandler {
	return &UserHandler{repo: repo}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.repo.ListUsers(c.Request.Context())
	if err != nil {
		logging.Error("list users failed", err, nil)
		c.JSON(http.StatusInternalServerError, errorBody(constants.ErrFailedFetchUsers, constants.CodeInternal, err.Error()))
		return
	}
	out, err := MarshalForContext(c, users)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody(constants.ErrFailedFetchUsers, constants.CodeInternal, err.Error()))
		return
	}
	respondData(c, http.StatusOK, out, "")
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := service.GetUser(c.Request.Context(), h.repo, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	out, err := MarshalForContext(c, u)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, out, "")
}

func (h *UserHandler) Create(c *gin.Context) {
	var req service.UserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	u, err := service.CreateUser(c.Request.Context(), h.repo, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, u, "User created")
}

func (h *UserHandler) Update(c *gin.Context) {
	var req service.UserPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	u, err := service.UpdateUser(c.Request.Context(), h.repo, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, u, "User updated")
}

// Delete removes the user and every character it owns.
func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.repo.DeleteUser(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorBody("user not found", service.CodeUserNotFound, ""))
			return
		}
		logging.Error("delete user failed", err, logging.Fields{constants.LogFieldUserID: id})
		c.JSON(http.StatusInternalServerError, errorBody(constants.ErrFailedDeleteUser, constants.CodeInternal, err.Error()))
		return
	}
	respondData(c, http.StatusOK, gin.H{"id": id}, "User deleted")
}

// ListCharacters returns the characters owned by the user in the path.
func (h *UserHandler) ListCharacters(c *gin.Context) {
	id := c.Param("id")
	if _, err := service.GetUser(c.Request.Context(), h.repo, id); err != nil {
		respondError(c, err)
		return
	}
	chars, err := h.repo.ListCharactersByUser(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody(constants.ErrFailedFetchCharacters, constants.CodeInternal, err.Error()))
		return
	}
	respondData(c, http.StatusOK, chars, "")
}

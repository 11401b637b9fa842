package api

import (
	"net/http"

	"github.com/ericogr/arena-battles/internal/constants"
	"github.com/ericogr/arena-battles/internal/game"
	"github.com/ericogr/arena-battles/internal/logging"
	"github.com/ericogr/arena-battles/internal/service"
	"github.com/ericogr/arena-battles/internal/storage"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	repo   storage.Repository
	tokens *TokenIssuer
}

func NewAuthHandler(repo storage.Repository, tokens *TokenIssuer) *AuthHandler {
	return &AuthHandler{repo: repo, tokens: tokens}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and returns it with a session token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.UserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	u, err := service.Register(c.Request.Context(), h.repo, req)
	if err != nil {
		respondError(c, err)
		return
	}
	logging.Info("user registered", logging.Fields{constants.LogFieldUserID: u.ID})
	h.respondSession(c, http.StatusCreated, u, "User registered")
}

// Login exchanges email and password for a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	u, err := service.Login(c.Request.Context(), h.repo, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondSession(c, http.StatusOK, u, "Login successful")
}

// Profile returns the account behind the session token.
func (h *AuthHandler) Profile(c *gin.Context) {
	u, err := service.GetUser(c.Request.Context(), h.repo, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, u, "")
}

func (h *AuthHandler) respondSession(c *gin.Context, status int, u *game.User, msg string) {
	token, err := h.tokens.Issue(u)
	if err != nil {
		logging.Error("failed to issue token", err, logging.Fields{constants.LogFieldUserID: u.ID})
		c.JSON(http.StatusInternalServerError, errorBody(constants.ErrFailedIssueToken, constants.CodeInternal, ""))
		return
	}
	respondData(c, status, gin.H{constants.JSONKeyUser: u, constants.JSONKeyToken: token}, msg)
}

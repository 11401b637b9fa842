package api

import (
	"github.com/ericogr/arena-battles/internal/constants"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Tokens     *TokenIssuer
	Auth       *AuthHandler
	Users      *UserHandler
	Characters *CharacterHandler
	Battles    *BattleHandler
	Products   *ProductHandler
}

// NewRouter builds the gin engine with every route of the service.
func NewRouter(h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger())

	router.GET(constants.RouteRoot, Root)

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteVersion, Version)
		apiRoutes.POST(constants.RouteAuthRegister, h.Auth.Register)
		apiRoutes.POST(constants.RouteAuthLogin, h.Auth.Login)
		apiRoutes.GET(constants.RouteCharacters, h.Characters.List)
		apiRoutes.GET(constants.RouteCharacterByID, h.Characters.Get)
		apiRoutes.GET(constants.RouteProducts, h.Products.List)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(AuthRequired(h.Tokens))

		protected.GET(constants.RouteAuthProfile, h.Auth.Profile)

		protected.GET(constants.RouteUsers, h.Users.List)
		protected.POST(constants.RouteUsers, h.Users.Create)
		protected.GET(constants.RouteUserByID, h.Users.Get)
		protected.PUT(constants.RouteUserByID, h.Users.Update)
		protected.DELETE(constants.RouteUserByID, h.Users.Delete)
		protected.GET(constants.RouteUserCharacters, h.Users.ListCharacters)

		protected.POST(constants.RouteCharacters, h.Characters.Create)
		protected.PUT(constants.RouteCharacterByID, h.Characters.Update)
		protected.DELETE(constants.RouteCharacterByID, h.Characters.Delete)

		protected.POST(constants.RouteBattle, h.Battles.Battle)
		protected.GET(constants.RouteLastBattle, h.Battles.LastBattle)
	}

	return router
}

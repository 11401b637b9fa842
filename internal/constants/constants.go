package constants

// Centralized constants for headers, env keys, routes and messages.
const (
	// Environment variable keys
	EnvConfigPath     = "ARENA_CONFIG"
	EnvAddr           = "ARENA_ADDR"
	EnvDBDriver       = "ARENA_DB_DRIVER"
	EnvDBDSN          = "ARENA_DB_DSN"
	EnvJWTSecret      = "JWT_SECRET"
	EnvJWTExpiresIn   = "JWT_EXPIRES_IN"
	EnvProductsPath   = "PRODUCTS_PATH"
	EnvLogLevel       = "LOG_LEVEL"
	EnvBattleTx       = "ARENA_BATTLE_TX"
	EnvHealthcheckURL = "HEALTHCHECK_URL"

	DefaultConfigPath   = "./arena_config.json"
	DefaultAddr         = ":8080"
	DefaultDBDriver     = "sqlite"
	DefaultDBDSN        = "./data/arena.db"
	DefaultProductsPath = "./data/products.json"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"

	// Authorization prefix
	BearerPrefix = "Bearer "

	// Gin context key holding the authenticated user.
	ContextKeyUserID    = "userID"
	ContextKeyUserEmail = "userEmail"

	JWTIssuer = "arena-battles"
)

// Routes used by the backend router
const (
	RouteRoot           = "/"
	RouteAPIPrefix      = "/api"
	RouteVersion        = "/version"
	RouteAuthRegister   = "/auth/register"
	RouteAuthLogin      = "/auth/login"
	RouteAuthProfile    = "/auth/profile"
	RouteUsers          = "/users"
	RouteUserByID       = "/users/:id"
	RouteUserCharacters = "/users/:id/characters"
	RouteCharacters     = "/characters"
	RouteCharacterByID  = "/characters/:id"
	RouteBattle         = "/battle/:challengerID/:defenderID"
	RouteLastBattle     = "/battle/last/:characterID"
	RouteProducts       = "/products"
)

// Common JSON response keys
const (
	JSONKeyData    = "data"
	JSONKeyCount   = "count"
	JSONKeyError   = "error"
	JSONKeyCode    = "code"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
	JSONKeyStatus  = "status"
	JSONKeyToken   = "token"
	JSONKeyUser    = "user"
)

// Error codes produced by handlers outside the service layer.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeAuthRequired   = "AUTH_REQUIRED"
	CodeInvalidToken   = "INVALID_TOKEN"
	CodeFileNotFound   = "FILE_NOT_FOUND"
	CodeInternal       = "INTERNAL_ERROR"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest        = "Invalid request"
	ErrAuthRequired          = "Authentication required"
	ErrInvalidToken          = "Invalid or expired token"
	ErrFailedIssueToken      = "Failed to issue token"
	ErrFailedFetchUsers      = "Failed to fetch users"
	ErrFailedFetchCharacters = "Failed to fetch characters"
	ErrFailedDeleteUser      = "Failed to delete user"
	ErrFailedDeleteCharacter = "Failed to delete character"
	ErrSameCharacterParams   = "Challenger and defender must be different characters"
	ErrProductsFileNotFound  = "Products file not found"
	ErrFailedLoadProducts    = "Failed to load products"
	ErrInternal              = "Internal server error"
)

// Logging field names
const (
	LogFieldCharacterID  = "character_id"
	LogFieldChallengerID = "challenger_id"
	LogFieldDefenderID   = "defender_id"
	LogFieldBattleID     = "battle_id"
	LogFieldWinnerID     = "winner_id"
	LogFieldUserID       = "user_id"
	LogFieldCode         = "code"
	LogFieldSource       = "source"
	LogFieldPath         = "path"
	LogFieldMethod       = "method"
	LogFieldStatus       = "status"
	LogFieldLatencyMS    = "latency_ms"
	LogFieldKey          = "key"
	LogFieldAddr         = "addr"
)

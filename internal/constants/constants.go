package constants

// Centralized constants for env keys, routes and response strings.
const (
	// Environment variable keys
	EnvConfigPath = "ARENA_CONFIG"
	EnvDBPath     = "ARENA_DB"
)

// Routes used by the backend router
const (
	RouteAPIPrefix     = "/api"
	RouteSessions      = "/sessions"
	RouteSessionByID   = "/sessions/:sessionID"
	RouteSessionJoin   = "/sessions/:sessionID/join"
	RouteSessionAction = "/sessions/:sessionID/action"
	RouteSessionReset  = "/sessions/:sessionID/reset"
	RouteSessionFlee   = "/sessions/:sessionID/flee"
	RouteSessionChoice = "/sessions/:sessionID/choice"
	RouteLeaderboard   = "/leaderboard"
	RouteWalletStats   = "/wallet-stats"
	RouteVersion       = "/version"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest    = "Invalid request"
	ErrInvalidSessionID  = "Invalid session ID"
	ErrSessionNotFound   = "Session not found"
	ErrWalletRequired    = "Wallet address is required"
	ErrInvalidAttributes = "Attributes must be non-negative and sum to 3"

	ErrFailedCreateSession = "Failed to create session"
	ErrFailedUpdateSession = "Failed to update session"
	ErrFailedFetchSessions = "Failed to fetch sessions"
	ErrFailedDeleteSession = "Failed to delete session"
	ErrFailedStoreAction   = "Failed to store action"

	ErrSessionFull            = "Session is full"
	ErrSelfJoin               = "Cannot join your own session"
	ErrSessionInactive        = "Session is no longer joinable"
	ErrSessionNotActive       = "Session is not active"
	ErrNotParticipant         = "Wallet is not part of this session"
	ErrInvalidAction          = "Invalid action"
	ErrActionAlreadySubmitted = "Action already submitted for this round"

	ErrBattleNotCompleted = "Battle is not completed"
	ErrNoWinner           = "Battle ended without a winner"
	ErrNotWinner          = "Only the winner may choose"
	ErrChoiceAlreadyMade  = "Winner choice already made"
	ErrInvalidChoice      = "Invalid winner choice"

	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedFetchStats       = "Failed to fetch wallet stats"
)

// Logging field names
const (
	LogFieldSessionID = "session_id"
	LogFieldWallet    = "wallet"
	LogFieldAddr      = "addr"
)

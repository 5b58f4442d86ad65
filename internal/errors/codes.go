package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The frontend maps these codes to localized messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong username/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed or forged token
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // token blacklisted after logout
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"     // username already taken
	AuthEmailExists        = "AUTH_EMAIL_EXISTS"        // email already taken

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN" // no permission for this action
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Generic resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Games (GAME_) ====================
	GameNotFound      = "GAME_NOT_FOUND"
	GameTitleExists   = "GAME_TITLE_EXISTS"
	GameSelfBaseGame  = "GAME_SELF_BASE_GAME"  // a game cannot be its own base game
	GameBaseNotFound  = "GAME_BASE_NOT_FOUND"  // referenced base game does not exist
	GameInvalidPrice  = "GAME_INVALID_PRICE"

	// ==================== Tags/Devs (TAG_/DEV_) ====================
	TagNotFound   = "TAG_NOT_FOUND"
	TagNameExists = "TAG_NAME_EXISTS"
	DevNotFound   = "DEV_NOT_FOUND"
	DevNameExists = "DEV_NAME_EXISTS"

	// ==================== Library (LIBRARY_) ====================
	LibraryEntryNotFound = "LIBRARY_ENTRY_NOT_FOUND"
	LibraryEntryExists   = "LIBRARY_ENTRY_EXISTS" // one entry per (user, game)

	// ==================== Friendships (FRIENDSHIP_) ====================
	FriendshipNotFound = "FRIENDSHIP_NOT_FOUND"
	FriendshipExists   = "FRIENDSHIP_EXISTS"
	FriendshipSelf     = "FRIENDSHIP_SELF" // user cannot befriend themselves

	// ==================== Reviews (REVIEW_) ====================
	ReviewNotFound      = "REVIEW_NOT_FOUND"
	ReviewExists        = "REVIEW_EXISTS" // one review per (user, game)
	ReviewInvalidRating = "REVIEW_INVALID_RATING"

	// ==================== Saves (SAVE_) ====================
	SaveNotFound = "SAVE_NOT_FOUND"
	SaveExists   = "SAVE_EXISTS" // one save per (user, game)

	// ==================== Events (EVENT_) ====================
	EventNotFound     = "EVENT_NOT_FOUND"
	EventInvalidDates = "EVENT_INVALID_DATES" // end_date must be strictly after start_date

	// ==================== Achievements (ACHIEVEMENT_) ====================
	AchievementNotFound = "ACHIEVEMENT_NOT_FOUND"
	AchievementUnlocked = "ACHIEVEMENT_ALREADY_UNLOCKED"

	// ==================== News (NEWS_) ====================
	NewsNotFound = "NEWS_NOT_FOUND"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalTxnTimeout    = "INTERNAL_TXN_TIMEOUT" // transaction exceeded lock wait or execution bound
)

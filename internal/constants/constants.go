package constants

// ContextUserKey is the gin context key holding the authenticated user.
const ContextUserKey = "currentUser"

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

// BcryptCost is the cost factor used when hashing passwords.
const BcryptCost = 12

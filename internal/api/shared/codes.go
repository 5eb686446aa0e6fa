package shared

// Message codes carried in the envelope's "message" field.
const (
	MsgSuccess             = "SUCCESS"
	MsgCreated             = "CREATED"
	MsgEmailInvalid        = "EMAIL_INVALID"
	MsgNameInvalid         = "NAME_INVALID"
	MsgPasswordInvalid     = "PASSWORD_INVALID"
	MsgWalletInvalid       = "WALLET_INVALID"
	MsgConflict            = "CONFLICT"
	MsgUserNotFound        = "USER_NOT_FOUND"
	MsgInvalidToken        = "INVALID_TOKEN"
	MsgUnauthorized        = "UNAUTHORIZED"
	MsgForbidden           = "FORBIDDEN"
	MsgBadRequest          = "BAD_REQUEST"
	MsgNotFound            = "NOT_FOUND"
	MsgMethodNotAllowed    = "METHOD_NOT_ALLOWED"
	MsgInternalServerError = "INTERNAL_SERVER_ERROR"
)

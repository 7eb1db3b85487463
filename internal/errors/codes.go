package errors

import stderrors "errors"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Permission errors
	CodeManageChannelsRequired Code = "MANAGE_CHANNELS_REQUIRED"
	CodeAdministratorRequired  Code = "ADMINISTRATOR_REQUIRED"
	CodeAdminRoleRequired      Code = "ADMIN_ROLE_REQUIRED"
	CodeCreateEventsRequired   Code = "CREATE_EVENTS_REQUIRED"
	CodeNotRoomMember          Code = "NOT_ROOM_MEMBER"

	// Room errors
	CodeRoomExists          Code = "ROOM_EXISTS"
	CodeRoomNotFound        Code = "ROOM_NOT_FOUND"
	CodeRoomChannelUnset    Code = "ROOM_CHANNEL_UNSET"
	CodePersonAlreadyInRoom Code = "PERSON_ALREADY_IN_ROOM"

	// Event errors
	CodeEventNotFound Code = "EVENT_NOT_FOUND"
	CodeInvalidName   Code = "INVALID_NAME"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// Kind groups codes into the failure categories the command shell reports.
type Kind int

const (
	KindInternal Kind = iota
	KindPermissionDenied
	KindAlreadyExists
	KindNotFound
	KindInvalidInput
	KindInvalidState
)

// Kind maps a domain code to its failure category.
func (c Code) Kind() Kind {
	switch c {
	case CodeManageChannelsRequired,
		CodeAdministratorRequired,
		CodeAdminRoleRequired,
		CodeCreateEventsRequired,
		CodeNotRoomMember:
		return KindPermissionDenied

	case CodeRoomExists,
		CodePersonAlreadyInRoom:
		return KindAlreadyExists

	case CodeRoomNotFound,
		CodeEventNotFound,
		CodeNotFound:
		return KindNotFound

	case CodeInvalidName:
		return KindInvalidInput

	case CodeRoomChannelUnset:
		return KindInvalidState

	default:
		return KindInternal
	}
}

// GetCode extracts the error code from any error.
// Returns CodeUnknown if the error is not a domain error.
func GetCode(err error) Code {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode checks if the error has the specified code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}

// GetMetadata extracts metadata from an error if present.
func GetMetadata(err error) map[string]string {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Metadata
	}
	return nil
}

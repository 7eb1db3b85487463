package i18n

// Error codes must match the codes defined in internal/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeManageChannelsRequired = "MANAGE_CHANNELS_REQUIRED"
	CodeAdministratorRequired  = "ADMINISTRATOR_REQUIRED"
	CodeAdminRoleRequired      = "ADMIN_ROLE_REQUIRED"
	CodeCreateEventsRequired   = "CREATE_EVENTS_REQUIRED"
	CodeNotRoomMember          = "NOT_ROOM_MEMBER"
	CodeRoomExists             = "ROOM_EXISTS"
	CodeRoomNotFound           = "ROOM_NOT_FOUND"
	CodeRoomChannelUnset       = "ROOM_CHANNEL_UNSET"
	CodePersonAlreadyInRoom    = "PERSON_ALREADY_IN_ROOM"
	CodeEventNotFound          = "EVENT_NOT_FOUND"
	CodeInvalidName            = "INVALID_NAME"
	CodeNotFound               = "NOT_FOUND"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		// Permission errors
		CodeManageChannelsRequired: "You need the Manage Channels permission to do that",
		CodeAdministratorRequired:  "You must have Administrator permission to set the admin role",
		CodeAdminRoleRequired:      "You must have the admin role to do that",
		CodeCreateEventsRequired:   "You do not have permission to create events",
		CodeNotRoomMember:          "You are not a member of this room",

		// Room errors
		CodeRoomExists:          "Room {{.Hotel}} {{.RoomNumber}} already exists",
		CodeRoomNotFound:        "No valid room found",
		CodeRoomChannelUnset:    "No room channel set for this server. Please set a room channel first",
		CodePersonAlreadyInRoom: "That person is already in the room",

		// Event errors
		CodeEventNotFound: "No event is registered for this channel",
		CodeInvalidName:   "Names must be 3-30 characters long and contain only letters, digits, underscores, or hyphens",

		// Storage errors
		CodeNotFound: "The requested resource was not found",
	},
}

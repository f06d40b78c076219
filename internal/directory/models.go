package directory

import id "trackwatch/pkg/domain"

// UserType values as stored in the directory.
const (
	UserTypeTraveler    = "traveler"
	UserTypeTravelAdmin = "travel admin"
)

// User is a directory record for anyone known to the system, traveler or
// admin. TravelID is empty for users not assigned to a group; such users
// cannot be routed to an administrator.
type User struct {
	ID          id.UserID
	Name        string
	UserType    string
	TravelID    id.TravelID
	DeviceToken string
}

// Admin is the administrator selected to receive alerts for a travel group.
// DeviceToken is empty when the admin has no registered push device.
type Admin struct {
	ID          id.UserID
	TravelID    id.TravelID
	Name        string
	DeviceToken string
}

package core

// Profile is the cached display metadata for a platform user identity.
// An absent profile is a valid state; consumers must tolerate an empty
// display name.
type Profile struct {
	UserID        string
	DisplayName   string
	PictureURL    string
	StatusMessage string
}

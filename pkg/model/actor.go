package model

// Actor roles as supplied by the authenticating gateway.
const (
	RoleUser  = "user"
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// Actor identifies the already-authenticated caller of a request. It is
// carried explicitly through request context rather than read from any
// global session state.
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanManageVenue reports whether the actor may administer the given venue:
// platform admins always, owners only for venues they own.
func (a Actor) CanManageVenue(v *Venue) bool {
	if a.IsAdmin() {
		return true
	}
	return a.Role == RoleOwner && v != nil && v.OwnerID == a.UserID
}

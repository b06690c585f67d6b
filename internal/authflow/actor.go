package authflow

// Actor context values used by the generated getActorContext helper.
const (
	// SystemActorID identifies actions taken with no signed-in user.
	SystemActorID = "system"
	// SystemActorType is the actor type of the synthetic system actor.
	SystemActorType = "system"
	// DefaultActorType is used for signed-in users holding none of the roles.
	DefaultActorType = "user"
)

// AdminRole picks the role that gates destructive operations: "admin" when
// configured, otherwise the first role. It returns "" for no roles.
func AdminRole(roles []string) string {
	for _, r := range roles {
		if r == "admin" {
			return r
		}
	}
	if len(roles) > 0 {
		return roles[0]
	}
	return ""
}

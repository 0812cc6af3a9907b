package rbac

const (
	RoleLearner = "learner"
	RoleAdmin   = "admin"
)

// RolePermissions is the default policy. A learner token is bound to one session,
// so "own" checks happen in RequireOwnerOr.
var RolePermissions = map[string][]string{
	RoleLearner: {
		"session:view",
		"session:upload",
		"session:answer",
		"session:restart",
	},
	RoleAdmin: {
		"*",
	},
}

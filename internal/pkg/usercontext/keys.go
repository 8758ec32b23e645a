package usercontext

// Shared Locals/session keys used across controllers and middlewares
const (
	ContextKey  = "USER_CONTEXT"
	AuthKey     = "authenticated"
	KeyUserID   = "user_id"
	KeyUsername = "username"
	KeyEmail    = "email"
	KeyUserType = "user_type"
	KeyUserRole = "user_role"
	KeyPlan     = "user_plan"
)

package httpx

// Fixed utility routes of the console's navigation surface.
const (
	PathLogin          = "/login"
	PathRegister       = "/register"
	PathResetPassword  = "/reset-password"
	PathPendingAccount = "/pending-account"
	PathUnauthorized   = "/unauthorized"
	PathDashboard      = "/dashboard"
	PathProfile        = "/profile"
)

package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteSignup   = "/members/signup"
	RouteLogin    = "/members/login"
	RouteLogout   = "/members/logout"
	RouteWithdraw = "/members/withdrawal"
)

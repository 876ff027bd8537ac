package server

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("POST "+RouteSignup, ChainMiddleware(s.SignupHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))

	// Routes below require a valid, non-blacklisted access token
	s.RegisterRouteHandler("POST "+RouteLogout, ChainMiddleware(s.LogoutHandler(), append(s.APIMiddleware(), s.RequireAccessToken)...))
	s.RegisterRouteHandler("POST "+RouteWithdraw, ChainMiddleware(s.WithdrawHandler(), append(s.APIMiddleware(), s.RequireAccessToken)...))
}

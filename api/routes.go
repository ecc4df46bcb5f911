package api

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	v1 := s.router.Group("/api/v1")
	auth := AuthMiddleware(s.auth)

	pairs := v1.Group("/pairs")
	{
		pairs.GET("/:asset0/:asset1", s.handleGetPair)
		pairs.POST("/enable", auth, s.handleEnablePair)
	}

	quote := v1.Group("/quote")
	{
		quote.GET("/exact-supply", s.handleQuoteExactSupply)
		quote.GET("/exact-target", s.handleQuoteExactTarget)
	}

	swap := v1.Group("/swap")
	{
		swap.POST("/exact-supply", auth, s.handleSwapExactSupply)
		swap.POST("/exact-target", auth, s.handleSwapExactTarget)
	}

	liquidity := v1.Group("/liquidity")
	{
		liquidity.POST("/add", auth, s.handleAddLiquidity)
		liquidity.POST("/remove", auth, s.handleRemoveLiquidity)
	}

	provisioning := v1.Group("/provisioning")
	{
		provisioning.POST("/start", auth, s.provisioningParamsHandler(s.app.DexKeeper.ListProvisioning, "provisioning started"))
		provisioning.POST("/update", auth, s.provisioningParamsHandler(s.app.DexKeeper.UpdateProvisioningParameters, "provisioning parameters updated"))
		provisioning.POST("/contribute", auth, s.handleContribute)
		provisioning.POST("/enable", auth, s.handleEnableProvisioning)
		provisioning.POST("/claim", auth, s.handleClaim)
	}

	v1.GET("/params", s.handleGetParams)
	v1.POST("/params", auth, s.handleUpdateParams)
	v1.GET("/balances/:address/*asset", s.handleGetBalance)
	v1.GET("/events", s.handleGetEvents)
	v1.GET("/invariants", s.handleInvariants)
}

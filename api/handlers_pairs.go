package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	dextypes "github.com/bholdus-chain/dex/x/dex/types"
)

const maxEventsPage = 500

// handleGetPair returns status, reserves and shares of a pair in the order
// the caller named its assets.
func (s *Server) handleGetPair(c *gin.Context) {
	ctx := c.Request.Context()
	a, b := c.Param("asset0"), c.Param("asset1")
	k := s.app.DexKeeper

	status, err := k.GetTradingPairStatus(ctx, a, b)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	reserveA, reserveB, err := k.GetLiquidity(ctx, a, b)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	total, err := k.GetTotalShares(ctx, a, b)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	pair := dextypes.MustNewTradingPair(a, b)

	resp := PairResponse{
		Asset0:       a,
		Asset1:       b,
		Status:       status.Status.String(),
		Reserve0:     reserveA,
		Reserve1:     reserveB,
		ShareAsset:   pair.ShareAssetID(),
		TotalShares:  total,
		Provisioning: status.Provisioning,
	}
	if rate, found, err := k.GetInitialShareExchangeRate(ctx, a, b); err != nil {
		s.abortWithError(c, err)
		return
	} else if found {
		resp.ExchangeRate = &rate
	}
	c.JSON(http.StatusOK, resp)
}

// handleEnablePair enables a pair directly, skipping provisioning.
func (s *Server) handleEnablePair(c *gin.Context) {
	var req PairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	caller, ok := s.senderAddress(c, req.Sender)
	if !ok {
		return
	}
	if err := s.app.DexKeeper.EnableTradingPair(c.Request.Context(), caller, req.Asset0, req.Asset1); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "trading pair enabled"})
}

func (s *Server) handleGetParams(c *gin.Context) {
	c.JSON(http.StatusOK, s.app.DexKeeper.GetParams(c.Request.Context()))
}

func (s *Server) handleUpdateParams(c *gin.Context) {
	var req UpdateParamsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	caller, ok := s.senderAddress(c, req.Sender)
	if !ok {
		return
	}
	if err := s.app.DexKeeper.UpdateParams(c.Request.Context(), caller, req.Params); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, req.Params)
}

// handleGetBalance returns a ledger balance. The asset is a wildcard segment
// so share assets, which contain '/', need no escaping.
func (s *Server) handleGetBalance(c *gin.Context) {
	who, err := parseAddress("address", c.Param("address"))
	if err != nil {
		badRequest(c, "Invalid address", err)
		return
	}
	asset := strings.TrimPrefix(c.Param("asset"), "/")
	if asset == "" {
		badRequest(c, "Invalid asset", nil)
		return
	}
	c.JSON(http.StatusOK, BalanceResponse{
		Address: who.String(),
		Asset:   asset,
		Amount:  s.app.LedgerKeeper.Balance(c.Request.Context(), asset, who),
	})
}

// handleGetEvents pages through recent notifications with ?after=&limit=.
func (s *Server) handleGetEvents(c *gin.Context) {
	after, err := strconv.ParseUint(c.DefaultQuery("after", "0"), 10, 64)
	if err != nil {
		badRequest(c, "Invalid after", err)
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		badRequest(c, "Invalid limit", err)
		return
	}
	if limit > maxEventsPage {
		limit = maxEventsPage
	}
	c.JSON(http.StatusOK, EventsResponse{
		LastSeq: s.app.Events.LastSeq(),
		Events:  s.app.Events.Recent(after, limit),
	})
}

func (s *Server) handleInvariants(c *gin.Context) {
	broken := s.app.CheckInvariants(c.Request.Context())
	code := http.StatusOK
	if len(broken) > 0 {
		code = http.StatusInternalServerError
	}
	c.JSON(code, InvariantsResponse{Broken: len(broken) > 0, Invariants: broken})
}

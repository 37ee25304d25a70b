package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/footyalerts/footy-alerts/internal/services"
	"github.com/footyalerts/footy-alerts/internal/types"
)

type SubscriptionHandler struct {
	subscriptionService services.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// subscribeRequest is the registration payload the frontend posts, wrapping
// the raw PushSubscription the browser hands it.
type subscribeRequest struct {
	Team          *types.Team `json:"team"`
	CloseGames    bool        `json:"close_games"`
	FinalScores   bool        `json:"final_scores"`
	QuarterScores bool        `json:"quarter_scores"`
	WebPush       struct {
		Endpoint string `json:"endpoint"`
		Keys     struct {
			P256dh string `json:"p256dh"`
			Auth   string `json:"auth"`
		} `json:"keys"`
	} `json:"web_push"`
}

// subscriptionResponse echoes the stored settings without the push keys.
type subscriptionResponse struct {
	Team          *types.Team `json:"team"`
	CloseGames    bool        `json:"close_games"`
	FinalScores   bool        `json:"final_scores"`
	QuarterScores bool        `json:"quarter_scores"`
}

func (sh *SubscriptionHandler) Create(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub := &types.Subscription{
		Endpoint:      req.WebPush.Endpoint,
		Team:          req.Team,
		CloseGames:    req.CloseGames,
		FinalScores:   req.FinalScores,
		QuarterScores: req.QuarterScores,
		P256dh:        req.WebPush.Keys.P256dh,
		Auth:          req.WebPush.Keys.Auth,
	}
	if err := sh.subscriptionService.Subscribe(c.Request.Context(), sub); err != nil {
		if errors.Is(err, services.ErrInvalidSubscription) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusCreated)
}

func (sh *SubscriptionHandler) Get(c *gin.Context) {
	endpoint, ok := endpointParam(c)
	if !ok {
		return
	}

	sub, err := sh.subscriptionService.Get(c.Request.Context(), endpoint)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if sub == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no subscription for endpoint"})
		return
	}
	c.JSON(http.StatusOK, subscriptionResponse{
		Team:          sub.Team,
		CloseGames:    sub.CloseGames,
		FinalScores:   sub.FinalScores,
		QuarterScores: sub.QuarterScores,
	})
}

// endpointParam extracts the push endpoint query parameter. The frontend
// percent-encodes the endpoint URL before putting it in the query string,
// so it is decoded once more here.
func endpointParam(c *gin.Context) (string, bool) {
	raw := c.Query("endpoint")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endpoint query parameter is required"})
		return "", false
	}
	endpoint, err := url.QueryUnescape(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endpoint is not valid percent-encoding"})
		return "", false
	}
	return endpoint, true
}

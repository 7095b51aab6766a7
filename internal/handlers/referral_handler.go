package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"referral-system/internal/auth"
	"referral-system/internal/services"
)

// ReferralHandler handles referral-code and redemption endpoints
type ReferralHandler struct {
	referralService *services.ReferralService
}

// NewReferralHandler creates a new ReferralHandler
func NewReferralHandler(referralService *services.ReferralService) *ReferralHandler {
	return &ReferralHandler{
		referralService: referralService,
	}
}

// CreateCode issues a new referral code for the authenticated user
// POST /referral/code
func (h *ReferralHandler) CreateCode(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	code, err := h.referralService.CreateCode(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"referral_code": code})
}

// DeactivateCode revokes the authenticated user's active referral code
// DELETE /referral/code
func (h *ReferralHandler) DeactivateCode(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.referralService.DeactivateCode(userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterWithCode registers a new user who presents a referral code
// POST /referral/register
func (h *ReferralHandler) RegisterWithCode(c *gin.Context) {
	var req struct {
		Email        string `json:"email" binding:"required,email"`
		Password     string `json:"password" binding:"required,min=8"`
		ReferralCode string `json:"referral_code" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.referralService.RedeemAndRegister(req.Email, req.Password, req.ReferralCode)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// GetReferees lists everyone who registered through the user's codes
// GET /referral/referees
func (h *ReferralHandler) GetReferees(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	referees, err := h.referralService.ListReferees(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"referees": referees,
		"count":    len(referees),
	})
}

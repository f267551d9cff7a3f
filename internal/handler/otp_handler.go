package handler

import (
	"errors"
	"net/http"

	"taraas/internal/service"

	"github.com/gin-gonic/gin"
)

type OtpHandler struct {
	otpSvc *service.OtpService
}

func NewOtpHandler(otpSvc *service.OtpService) *OtpHandler {
	return &OtpHandler{otpSvc: otpSvc}
}

func (h *OtpHandler) Send(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.otpSvc.Issue(req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrOtpThrottled), errors.Is(err, service.ErrOtpDailyLimit):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send code"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully"})
}

func (h *OtpHandler) Verify(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
		Otp   string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ok, err := h.otpSvc.Verify(req.Email, req.Otp)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOtpNotRequested):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrOtpExpired):
			c.JSON(http.StatusGone, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrOtpLocked):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "verification failed"})
		}
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid OTP code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "verification successful"})
}

package controller

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"github.com/maisonthread/storefront/http/controller/dto"
	"github.com/maisonthread/storefront/utils"
)

// Login exchanges the configured admin credentials for a signed bearer
// token. Only available once JWT verification is configured; without a
// secret the auth middleware runs in presence-only mode and any non-empty
// token is accepted.
func (ctrl *Controller) Login(c *gin.Context) {
	ctx := c.Request.Context()
	env := ctrl.Config.EnvConfig

	if env.JWT.SecretKey == "" || env.Admin.Username == "" {
		utils.JSON404(c, "Admin login is not configured")
		return
	}

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "Username and password are required")
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(env.Admin.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(env.Admin.Password)) == 1
	if !userOK || !passOK {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Auth] Failed login attempt for user %q", req.Username)
		utils.JSON401(c, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(req.Username, env)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Auth] Failed to sign token")
		utils.JSON500(c, "Failed to issue token", err)
		return
	}

	utils.JSON200(c, dto.LoginResponse{Token: token})
}

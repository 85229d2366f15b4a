package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/maisonthread/storefront/utils"
)

func (ctrl *Controller) HealthCheck(c *gin.Context) {
	utils.JSON200(c, gin.H{
		"status":  "OK",
		"message": "Server is running",
	})
}

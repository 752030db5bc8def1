package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (api *API) GetTheme(c *gin.Context) {
	sess := session(c)
	if sess == nil {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mode":   sess.Theme.Mode(),
		"config": sess.Theme.Config(),
	})
}

func (api *API) ToggleTheme(c *gin.Context) {
	sess := session(c)
	if sess == nil {
		return
	}

	mode := sess.Theme.Toggle()

	c.JSON(http.StatusOK, gin.H{
		"mode":   mode,
		"config": sess.Theme.Config(),
	})
}

package controllers

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"storefront/models"

	"github.com/gin-gonic/gin"
)

func (api *API) GetFeed(c *gin.Context) {
	sess := session(c)
	if sess == nil {
		return
	}

	if wait, _ := strconv.ParseBool(c.Query("wait")); wait {
		ctx, cancel := context.WithTimeout(c.Request.Context(), waitTimeout)
		defer cancel()
		if err := sess.Feed.Wait(ctx); err != nil {
			log.Println(err)
		}
	}

	c.JSON(http.StatusOK, api.feedView(sess.Feed.Snapshot()))
}

// Search is the search-box input event. An empty term clears the feed.
func (api *API) Search(c *gin.Context) {
	sess := session(c)
	if sess == nil {
		return
	}

	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	sess.Feed.SetTerm(req.Term)

	c.JSON(http.StatusOK, api.feedView(sess.Feed.Snapshot()))
}

// ResetFeed is the full reset: feed back to initial state and cart emptied.
func (api *API) ResetFeed(c *gin.Context) {
	sess := session(c)
	if sess == nil {
		return
	}

	sess.Feed.Reset()

	c.JSON(http.StatusOK, api.feedView(sess.Feed.Snapshot()))
}

// LoadMore is fired when the last rendered item becomes visible.
func (api *API) LoadMore(c *gin.Context) {
	sess := session(c)
	if sess == nil {
		return
	}

	sess.Feed.LoadMore()

	c.JSON(http.StatusOK, api.feedView(sess.Feed.Snapshot()))
}

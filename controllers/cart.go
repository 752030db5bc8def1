package controllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"storefront/cart"
	"storefront/models"

	"github.com/gin-gonic/gin"
)

func (api *API) GetCart(c *gin.Context) {
	sess := session(c)
	if sess == nil {
		return
	}

	c.JSON(http.StatusOK, api.cartView(sess.Cart))
}

// AddToCart moves a product from the feed into the cart.
func (api *API) AddToCart(c *gin.Context) {
	sess := session(c)
	if sess == nil {
		return
	}

	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.Id == 0 {
		sendError(c, http.StatusBadRequest, "missing-id")
		return
	}

	product, ok := sess.Feed.Product(req.Id)
	if !ok {
		sendError(c, http.StatusNotFound, "product-not-found")
		return
	}

	sess.Cart.Add(product)
	sess.Feed.RemoveProduct(product.Id)

	c.JSON(http.StatusOK, api.cartView(sess.Cart))
}

func (api *API) RemoveFromCart(c *gin.Context) {
	sess := session(c)
	if sess == nil {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		sendError(c, http.StatusBadRequest, "invalid-id")
		return
	}

	if !sess.Cart.Remove(id) {
		sendError(c, http.StatusNotFound, "product-not-found")
		return
	}

	c.JSON(http.StatusOK, api.cartView(sess.Cart))
}

func (api *API) ClearCart(c *gin.Context) {
	sess := session(c)
	if sess == nil {
		return
	}

	sess.Cart.Clear()

	c.JSON(http.StatusOK, api.cartView(sess.Cart))
}

func (api *API) OpenCart(c *gin.Context) {
	sess := session(c)
	if sess == nil {
		return
	}

	sess.Cart.Open()

	c.JSON(http.StatusOK, api.cartView(sess.Cart))
}

func (api *API) CloseCart(c *gin.Context) {
	sess := session(c)
	if sess == nil {
		return
	}

	sess.Cart.Close()

	c.JSON(http.StatusOK, api.cartView(sess.Cart))
}

func (api *API) ExportCart(c *gin.Context) {
	sess := session(c)
	if sess == nil {
		return
	}

	items := sess.Cart.Items()
	if len(items) == 0 {
		sendError(c, http.StatusNotFound, "cart-empty")
		return
	}

	fileName := cart.ExportFileName(api.Now())

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment;filename=\""+fileName+"\"")

	if err := cart.Export(c.Writer, items, api.Currency); err != nil {
		log.Println(err)
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}
}

func (api *API) EmailCart(c *gin.Context) {
	sess := session(c)
	if sess == nil {
		return
	}

	if api.Mailer == nil {
		sendError(c, http.StatusServiceUnavailable, "email-disabled")
		return
	}

	var req models.EmailCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	if !strings.Contains(req.Email, "@") {
		sendError(c, http.StatusBadRequest, "missing-email")
		return
	}

	items := sess.Cart.Items()
	if len(items) == 0 {
		sendError(c, http.StatusNotFound, "cart-empty")
		return
	}

	if err := api.Mailer.Send(req.Email, items); err != nil {
		log.Println(err)
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

package controllers

import (
	"net/http"
	"time"

	"storefront/cart"
	"storefront/formatter"
	"storefront/middlewares"
	"storefront/models"
	"storefront/sessions"

	"github.com/gin-gonic/gin"
)

const (
	skeletonCount = 8
	waitTimeout   = 15 * time.Second
)

type GenericResponse struct {
	Message string `json:"message"`
}

type API struct {
	Sessions *sessions.Store
	Mailer   *cart.Mailer
	Currency string
	Now      func() time.Time
}

func NewAPI(store *sessions.Store) *API {
	return &API{
		Sessions: store,
		Currency: formatter.DefaultCurrency,
		Now:      time.Now,
	}
}

func sendError(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{
		"message": msg,
	})
}

// session returns the request session or answers 401 when the middleware
// did not run.
func session(c *gin.Context) *sessions.Session {
	sess := middlewares.CurrentSession(c)
	if sess == nil {
		sendError(c, http.StatusUnauthorized, "invalid-session")
	}
	return sess
}

func (api *API) feedView(state models.SearchState) models.FeedView {
	items := make([]models.ProductView, 0, len(state.Items))
	for _, p := range state.Items {
		items = append(items, models.ProductView{
			Product:        p,
			PriceFormatted: formatter.Currency(p.Price, api.Currency),
		})
	}

	view := models.FeedView{
		Term:        state.Term,
		Page:        state.Page,
		Items:       items,
		HasMore:     state.HasMore,
		IsLoading:   state.IsLoading,
		HasSearched: state.HasSearched,
		Status:      state.Status,
		ShowWelcome: !state.HasSearched && !state.IsLoading,
		ShowEmpty:   !state.IsLoading && state.HasSearched && len(items) == 0,
		ShowEnd:     !state.IsLoading && !state.HasMore && len(items) > 0,
	}

	if state.IsLoading {
		view.Skeletons = skeletonCount
	}

	return view
}

func (api *API) cartView(c *cart.Controller) models.CartView {
	items := c.Items()
	views := make([]models.CartItemView, 0, len(items))
	for _, item := range items {
		views = append(views, models.CartItemView{
			CartItem:       item,
			PriceFormatted: formatter.Currency(item.Price, api.Currency),
		})
	}

	total := cart.Total(items)
	totalFloat, _ := total.Float64()

	return models.CartView{
		Items:          views,
		Count:          len(views),
		Total:          total.StringFixed(2),
		TotalFormatted: formatter.Currency(totalFloat, api.Currency),
		IsOpen:         c.IsOpen(),
	}
}

package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"storefront/feed"
	"storefront/middlewares"
	"storefront/models"
	"storefront/sessions"

	"github.com/gin-gonic/gin"
)

func init() {
	log.SetFlags(log.LstdFlags | log.LUTC | log.Lshortfile)
	gin.SetMode(gin.TestMode)
}

func parsePayload(p interface{}) *bytes.Buffer {
	data, _ := json.Marshal(p)
	return bytes.NewBuffer(data)
}

// pagedSearcher answers 8 products for page 1 and 5 for page 2.
type pagedSearcher struct {
	mu    sync.Mutex
	calls int
}

func (s *pagedSearcher) Search(ctx context.Context, term string, page, pageSize int) ([]models.Product, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	n, from := 8, 1
	if page > 1 {
		n, from = 5, 9
	}

	products := make([]models.Product, 0, n)
	for i := from; i < from+n; i++ {
		products = append(products, models.Product{Id: int64(i), Name: fmt.Sprintf("%s %d", term, i), Price: 10, ImageUrl: "img.jpg"})
	}
	return products, nil
}

func newTestAPI() (*API, *sessions.Session) {
	searcher := &pagedSearcher{}
	store := sessions.NewStore(func() *feed.Controller {
		return feed.NewController(searcher, feed.Options{PageSize: 8, Debounce: 20 * time.Millisecond})
	}, time.Minute)

	sess, _ := store.Create()
	return NewAPI(store), sess
}

func newTestContext(sess *sessions.Session, method, target string, body interface{}) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var req *http.Request
	if body == nil {
		req, _ = http.NewRequest(method, target, nil)
	} else {
		req, _ = http.NewRequest(method, target, parsePayload(body))
	}
	c.Request = req

	if sess != nil {
		middlewares.SetSession(c, sess)
	}

	return w, c
}

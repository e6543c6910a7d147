package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchDescription(t *testing.T) {
	longText := strings.Repeat("a", 1500)

	pages := map[string]string{
		"/by-id": `<html><body>
			<div class="summary">summary fallback text</div>
			<div id="event-description">  Matched by identifier.  </div>
		</body></html>`,
		"/by-class": `<html><body>
			<div class="event-description">Matched by class.</div>
		</body></html>`,
		"/by-summary": `<html><body>
			<div class="summary">Matched by summary fallback.</div>
		</body></html>`,
		"/no-description": `<html><body>
			<p>Nothing descriptive here.</p>
		</body></html>`,
		"/long": fmt.Sprintf(`<html><body>
			<div id="event-description">%s</div>
		</body></html>`, longText),
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(page))
	}))
	defer srv.Close()

	s := newTestScraper(srv)
	ctx := context.Background()

	t.Run("identifier match wins over fallbacks", func(t *testing.T) {
		assert.Equal(t, "Matched by identifier.", s.FetchDescription(ctx, srv.URL+"/by-id"))
	})

	t.Run("class match", func(t *testing.T) {
		assert.Equal(t, "Matched by class.", s.FetchDescription(ctx, srv.URL+"/by-class"))
	})

	t.Run("summary fallback", func(t *testing.T) {
		assert.Equal(t, "Matched by summary fallback.", s.FetchDescription(ctx, srv.URL+"/by-summary"))
	})

	t.Run("no container yields empty", func(t *testing.T) {
		assert.Empty(t, s.FetchDescription(ctx, srv.URL+"/no-description"))
	})

	t.Run("missing page yields empty", func(t *testing.T) {
		assert.Empty(t, s.FetchDescription(ctx, srv.URL+"/gone"))
	})

	t.Run("long description is truncated with marker", func(t *testing.T) {
		desc := s.FetchDescription(ctx, srv.URL+"/long")
		assert.Len(t, desc, 1003)
		assert.True(t, strings.HasSuffix(desc, "..."))
	})
}

func TestFetchDescriptionTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	s := newTestScraper(srv)
	srv.Close()

	assert.Empty(t, s.FetchDescription(context.Background(), srv.URL+"/e/x-1"))
}

package attendance

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestAdminListNextOffsetMatchesServedRows(t *testing.T) {
	// limit=1000 は 200 に切り詰めて返す。next_offset も切り詰め後の
	// 行数で進む（過大な値で進めるとクライアントがレコードを読み飛ばす）。
	gin.SetMode(gin.TestMode)
	fake := &fakeStore{total: 2000}
	svc := &Service{store: fake, clock: realClock{}}

	r := gin.New()
	RegisterAdminRoutes(r.Group("/"), svc)

	req := httptest.NewRequest(http.MethodGet, "/attendance?limit=1000&offset=0", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}

	var body struct {
		Total      int64 `json:"total"`
		NextOffset int   `json:"next_offset"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if fake.lastList.Limit != MaxPageLimit {
		t.Errorf("store saw limit %d, want %d", fake.lastList.Limit, MaxPageLimit)
	}
	if body.NextOffset != MaxPageLimit {
		t.Errorf("next_offset = %d, want %d", body.NextOffset, MaxPageLimit)
	}
}

func TestAdminListNextOffsetZeroOnLastPage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fake := &fakeStore{total: 30}
	svc := &Service{store: fake, clock: realClock{}}

	r := gin.New()
	RegisterAdminRoutes(r.Group("/"), svc)

	req := httptest.NewRequest(http.MethodGet, "/attendance", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body struct {
		NextOffset int `json:"next_offset"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.NextOffset != 0 {
		t.Errorf("next_offset = %d, want 0 (no further page)", body.NextOffset)
	}
}

package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 20, 41)
	if p.TotalPage != 3 {
		t.Fatalf("expected 3 pages for 41/20, got %d", p.TotalPage)
	}
	p = NewPagination(1, 20, 40)
	if p.TotalPage != 2 {
		t.Fatalf("expected 2 pages for 40/20, got %d", p.TotalPage)
	}
	p = NewPagination(1, 0, 10)
	if p.TotalPage != 0 {
		t.Fatalf("expected 0 pages for zero page size, got %d", p.TotalPage)
	}
}

func TestErrorAttachesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/x", nil)
	c.Set(requestIDField, "req-9")

	ErrorWithData(c, CodeBadRequest, "bad", gin.H{"drift": true})

	var resp struct {
		StatusCode int                    `json:"status_code"`
		Data       map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != CodeBadRequest {
		t.Fatalf("status_code want %d got %d", CodeBadRequest, resp.StatusCode)
	}
	if resp.Data[requestIDField] != "req-9" || resp.Data["drift"] != true {
		t.Fatalf("expected request id merged into data, got %v", resp.Data)
	}
}

func TestErrorWithoutRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/x", nil)

	Error(c, CodeInternal, "boom")

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.Data != nil {
		t.Fatalf("expected nil data without request id, got %v", resp.Data)
	}
}

package handler

import (
	"Fanscope/internal/service"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/relations?"+rawQuery, nil)
	return c
}

func TestParseOwnerID(t *testing.T) {
	tests := []struct {
		query   string
		want    uint64
		wantErr bool
	}{
		{"owner_id=7", 7, false},
		{"owner_id=0", 0, true},
		{"owner_id=-3", 0, true},
		{"owner_id=abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := parseOwnerID(newTestContext(t, tt.query))
		if (err != nil) != tt.wantErr {
			t.Errorf("parseOwnerID(%q) err = %v, wantErr %v", tt.query, err, tt.wantErr)
			continue
		}
		if tt.wantErr && err != service.ErrParamInvalid {
			t.Errorf("parseOwnerID(%q) err = %v, want ErrParamInvalid", tt.query, err)
		}
		if got != tt.want {
			t.Errorf("parseOwnerID(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}

func TestGetPagination(t *testing.T) {
	tests := []struct {
		query        string
		wantPage     int
		wantPageSize int
	}{
		{"", 1, 10},
		{"page=3&page_size=25", 3, 25},
		{"page=0&page_size=0", 1, 10},
		{"page=-1&page_size=500", 1, 10},
		{"page=abc&page_size=xyz", 1, 10},
		{"page_size=100", 1, 100},
		{"page_size=101", 1, 10},
	}
	for _, tt := range tests {
		page, pageSize := getPagination(newTestContext(t, tt.query))
		if page != tt.wantPage || pageSize != tt.wantPageSize {
			t.Errorf("getPagination(%q) = %d/%d, want %d/%d",
				tt.query, page, pageSize, tt.wantPage, tt.wantPageSize)
		}
	}
}

func TestBuildPageResult(t *testing.T) {
	tests := []struct {
		name         string
		count        int64
		page         int
		pageSize     int
		wantNext     *int
		wantPrevious *int
	}{
		{"first of three", 25, 1, 10, ptr(2), nil},
		{"middle", 25, 2, 10, ptr(3), ptr(1)},
		{"last", 25, 3, 10, nil, ptr(2)},
		{"exact boundary", 20, 2, 10, nil, ptr(1)},
		{"empty", 0, 1, 10, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildPageResult(tt.count, tt.page, tt.pageSize, nil)
			if got.Count != tt.count {
				t.Errorf("count = %d, want %d", got.Count, tt.count)
			}
			if !intPtrEqual(got.Next, tt.wantNext) {
				t.Errorf("next = %v, want %v", fmtPtr(got.Next), fmtPtr(tt.wantNext))
			}
			if !intPtrEqual(got.Previous, tt.wantPrevious) {
				t.Errorf("previous = %v, want %v", fmtPtr(got.Previous), fmtPtr(tt.wantPrevious))
			}
		})
	}
}

func ptr(v int) *int { return &v }

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func fmtPtr(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

package scripture

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeCache struct {
	data    map[string]string
	getErr  error
	setErr  error
	setKeys []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	if c.getErr != nil {
		return "", c.getErr
	}
	v, ok := c.data[key]
	if !ok {
		return "", errors.New("cache miss")
	}
	return v, nil
}

func (c *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = value
	c.setKeys = append(c.setKeys, key)
	return nil
}

func TestChapterFetchesAndCaches(t *testing.T) {
	var gotPath string
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"verse":1,"text":"In the beginning God created the heavens and the earth."},{"verse":2,"text":"Now the earth was formless and empty..."}]`))
	}))
	defer srv.Close()

	cache := newFakeCache()
	client := NewClient(srv.URL, cache)

	verses, err := client.Chapter(context.Background(), "ESV", "Genesis", 1)
	if err != nil {
		t.Fatalf("Chapter() error: %v", err)
	}
	if gotPath != "/get-text/ESV/1/1/" {
		t.Fatalf("request path = %q", gotPath)
	}
	if len(verses) != 2 || verses[0].Verse != 1 || verses[1].Verse != 2 {
		t.Fatalf("unexpected verses: %+v", verses)
	}

	// Second call must come from cache.
	verses2, err := client.Chapter(context.Background(), "ESV", "Genesis", 1)
	if err != nil {
		t.Fatalf("cached Chapter() error: %v", err)
	}
	if hits != 1 {
		t.Fatalf("source hit %d times, want 1", hits)
	}
	if len(verses2) != 2 {
		t.Fatalf("cached verses: %+v", verses2)
	}
}

func TestChapterSurvivesCacheFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"verse":1,"text":"Blessed is the man..."}]`))
	}))
	defer srv.Close()

	cache := newFakeCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	client := NewClient(srv.URL, cache)

	verses, err := client.Chapter(context.Background(), "KRV", "Psalms", 1)
	if err != nil {
		t.Fatalf("Chapter() should not fail on cache errors: %v", err)
	}
	if len(verses) != 1 {
		t.Fatalf("verses: %+v", verses)
	}
}

func TestChapterNilCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	if _, err := client.Chapter(context.Background(), "NIV", "John", 3); err != nil {
		t.Fatalf("Chapter() with nil cache: %v", err)
	}
}

func TestChapterValidation(t *testing.T) {
	client := NewClient("http://unused.invalid", nil)
	tests := []struct {
		name    string
		version string
		book    string
		chapter int
	}{
		{"unknown version", "MSG", "Genesis", 1},
		{"unknown book", "ESV", "Opinions", 1},
		{"bad chapter", "ESV", "Genesis", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := client.Chapter(context.Background(), tt.version, tt.book, tt.chapter); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestChapterUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	if _, err := client.Chapter(context.Background(), "ESV", "Genesis", 1); err == nil {
		t.Fatal("expected error on upstream 502")
	}
}

func TestBookIndex(t *testing.T) {
	tests := []struct {
		book string
		want int
	}{
		{"Genesis", 1},
		{"Malachi", 39},
		{"Matthew", 40},
		{"Revelation", 66},
		{"Laodiceans", 0},
	}
	for _, tt := range tests {
		if got := BookIndex(tt.book); got != tt.want {
			t.Errorf("BookIndex(%q) = %d, want %d", tt.book, got, tt.want)
		}
	}
}

func TestKoreanName(t *testing.T) {
	if got := KoreanName("John"); got != "요한복음" {
		t.Fatalf("KoreanName(John) = %q", got)
	}
	if got := KoreanName("Laodiceans"); got != "Laodiceans" {
		t.Fatalf("unknown book should pass through, got %q", got)
	}
}

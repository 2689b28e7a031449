package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(url string) *Client {
	return NewClient(url, "test-token", "user-7")
}

func TestListMediaParsesPage(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/media" {
			t.Errorf("path = %q, want /api/media", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		q := r.URL.Query()
		gotQuery = map[string]string{
			"page":     q.Get("page"),
			"per_page": q.Get("per_page"),
			"search":   q.Get("search"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": [
				{"id": "m1", "name": "surf reel", "media_type": "video", "url": "https://cdn/m1.mp4",
				 "reward": 5, "view_count": 42, "has_watched": false,
				 "tags": [{"id": "t1", "name": "Sports", "slug": "sports"}]},
				{"id": "m2", "name": "sunset", "media_type": "image", "url": "https://cdn/m2.jpg",
				 "reward": 2, "view_count": 7, "has_watched": true, "tags": []}
			],
			"meta": {"current_page": 2, "last_page": 9}
		}`))
	}))
	defer srv.Close()

	page, err := testClient(srv.URL).ListMedia(context.Background(), 2, "surf")
	if err != nil {
		t.Fatal(err)
	}

	if gotQuery["page"] != "2" || gotQuery["per_page"] != "20" || gotQuery["search"] != "surf" {
		t.Errorf("query = %v", gotQuery)
	}
	if len(page.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(page.Items))
	}
	if page.Items[0].ID != "m1" || !page.Items[0].Kind.TimeBased() {
		t.Errorf("item 0 = %+v", page.Items[0])
	}
	if len(page.Items[0].Tags) != 1 || page.Items[0].Tags[0].Slug != "sports" {
		t.Errorf("item 0 tags = %+v", page.Items[0].Tags)
	}
	if page.Cursor.Current != 2 || page.Cursor.Last != 9 {
		t.Errorf("cursor = %+v, want 2/9", page.Cursor)
	}
	if !page.Cursor.HasNext() {
		t.Error("page 2 of 9 should have a next page")
	}
}

func TestListMediaOmitsEmptySearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("search") {
			t.Error("empty search term should not be sent")
		}
		w.Write([]byte(`{"data": [], "meta": {"current_page": 1, "last_page": 1}}`))
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).ListMedia(context.Background(), 1, ""); err != nil {
		t.Fatal(err)
	}
}

func TestListMediaRejectsMissingMeta(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).ListMedia(context.Background(), 1, ""); err == nil {
		t.Fatal("expected an error for a response without pagination meta")
	}
}

func TestRecordWatchSendsIdempotencyKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/api/media-watched/m1/user-7" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Idempotency-Key"); got != "key-123" {
			t.Errorf("Idempotency-Key = %q, want key-123", got)
		}
		w.Write([]byte(`{
			"message": "watch recorded",
			"reward": 5,
			"quiz": {"id": "q1", "question": "what sport?", "option_a": "surfing",
			         "option_b": "skiing", "option_c": "golf", "option_d": "chess", "answer": "a"}
		}`))
	}))
	defer srv.Close()

	res, err := testClient(srv.URL).RecordWatch(context.Background(), "m1", "key-123")
	if err != nil {
		t.Fatal(err)
	}
	if res.Reward != 5 {
		t.Errorf("reward = %d, want 5", res.Reward)
	}
	if res.Quiz == nil || res.Quiz.ID != "q1" || res.Quiz.OptionA != "surfing" {
		t.Errorf("quiz = %+v", res.Quiz)
	}
}

func TestRecordWatchWithoutQuiz(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": "watch recorded", "reward": 2}`))
	}))
	defer srv.Close()

	res, err := testClient(srv.URL).RecordWatch(context.Background(), "m2", "key-456")
	if err != nil {
		t.Fatal(err)
	}
	if res.Quiz != nil {
		t.Errorf("quiz = %+v, want nil", res.Quiz)
	}
}

func TestSubmitQuizAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/quiz-answered/q1/user-7" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"correct": true, "reward": 10}`))
	}))
	defer srv.Close()

	out, err := testClient(srv.URL).SubmitQuizAnswer(context.Background(), "q1", "a")
	if err != nil {
		t.Fatal(err)
	}
	if !out.Correct || out.Reward != 10 {
		t.Errorf("outcome = %+v, want correct with reward 10", out)
	}
}

func TestRetriesTransientServerError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "upstream hiccup", http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"data": [], "meta": {"current_page": 1, "last_page": 1}}`))
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).ListMedia(context.Background(), 1, ""); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestDoesNotRetryClientError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "no such media", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).RecordWatch(context.Background(), "nope", "key-789"); err == nil {
		t.Fatal("expected an error for 404")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry on 4xx)", calls)
	}
}

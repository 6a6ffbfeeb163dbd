package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/studyme-ai/studyme/internal/models"
)

type fakeSummarizer struct {
	text string
	err  error
	mode string
}

func (f *fakeSummarizer) Summarize(ctx context.Context, text, mode string) (string, error) {
	f.mode = mode
	return f.text, f.err
}

type fakeExplainer struct{ expl *models.Explanation }

func (f *fakeExplainer) Explain(ctx context.Context, text string) (*models.Explanation, error) {
	return f.expl, nil
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSummarizeEndpoint(t *testing.T) {
	sum := &fakeSummarizer{text: "short version"}
	h := NewTextHandler(sum, nil, nil, nil)

	rec := httptest.NewRecorder()
	h.Summarize(rec, postJSON("/api/summarize", `{"text": "a long enough piece of text", "mode": "brief"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("got %d: %s", rec.Code, rec.Body.String())
	}
	if sum.mode != models.ModeBrief {
		t.Errorf("mode: %q", sum.mode)
	}
	if !strings.Contains(rec.Body.String(), "short version") {
		t.Errorf("body: %s", rec.Body.String())
	}
}

func TestTextPayloadValidation(t *testing.T) {
	h := NewTextHandler(&fakeSummarizer{}, nil, nil, nil)

	cases := map[string]string{
		"too short":       `{"text": "hi"}`,
		"blank":           `{"text": "          "}`,
		"bad mode":        `{"text": "a perfectly fine text", "mode": "verbose"}`,
		"not json":        `text=hello`,
		"oversized input": `{"text": "` + strings.Repeat("a", 100001) + `"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Summarize(rec, postJSON("/api/summarize", body))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("got %d, want 400", rec.Code)
			}
		})
	}
}

func TestExplainEndpointReturnsPayload(t *testing.T) {
	h := NewTextHandler(nil, &fakeExplainer{expl: &models.Explanation{
		Bullets:     []string{"term"},
		Explanation: "the breakdown",
		Notes:       "the notes",
	}}, nil, nil)

	rec := httptest.NewRecorder()
	h.Explain(rec, postJSON("/api/explain", `{"text": "a long enough piece of text"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("got %d", rec.Code)
	}
	for _, want := range []string{"term", "the breakdown", "the notes"} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Errorf("body missing %q: %s", want, rec.Body.String())
		}
	}
}

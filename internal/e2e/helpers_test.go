package e2e

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"apistation/internal/gateway"
	"apistation/internal/httpapi"
	"apistation/internal/models"
	"apistation/internal/upstream"
)

const testToken = "hf_test_token"

// fakeProvider mimics the inference provider: task endpoints under
// /models/{model} and the OpenAI-compatible chat surface under /v1.
type fakeProvider struct {
	mu       sync.Mutex
	models   []string
	auth     []string
	chatReqs []map[string]any
}

func (f *fakeProvider) record(model, auth string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.models = append(f.models, model)
	f.auth = append(f.auth, auth)
}

func (f *fakeProvider) lastModel() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.models) == 0 {
		return ""
	}
	return f.models[len(f.models)-1]
}

func (f *fakeProvider) lastAuth() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.auth) == 0 {
		return ""
	}
	return f.auth[len(f.auth)-1]
}

func (f *fakeProvider) lastChat() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.chatReqs) == 0 {
		return nil
	}
	return f.chatReqs[len(f.chatReqs)-1]
}

func (f *fakeProvider) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	switch {
	case r.URL.Path == "/v1/chat/completions":
		f.chat(w, r, body)
	case strings.HasPrefix(r.URL.Path, "/models/"):
		model := strings.TrimPrefix(r.URL.Path, "/models/")
		f.record(model, r.Header.Get("Authorization"))
		if model == models.TranscriptionModel {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"text":" hello world","chunks":[]}`))
			return
		}
		f.textToImage(w, body)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeProvider) textToImage(w http.ResponseWriter, body []byte) {
	var p struct {
		Inputs     string `json:"inputs"`
		Parameters struct {
			Width  int `json:"width"`
			Height int `json:"height"`
		} `json:"parameters"`
	}
	_ = json.Unmarshal(body, &p)
	if p.Inputs == "fail" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"Model is currently loading","estimated_time":20}`))
		return
	}
	// Reply in JPEG so the gateway has to re-encode.
	img := image.NewRGBA(image.Rect(0, 0, p.Parameters.Width/64, p.Parameters.Height/64))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	_ = jpeg.Encode(&buf, img, nil)
	w.Header().Set("Content-Type", "image/jpeg")
	_, _ = w.Write(buf.Bytes())
}

func (f *fakeProvider) chat(w http.ResponseWriter, r *http.Request, body []byte) {
	var req map[string]any
	_ = json.Unmarshal(body, &req)
	model, _ := req["model"].(string)
	f.record(model, r.Header.Get("Authorization"))
	f.mu.Lock()
	f.chatReqs = append(f.chatReqs, req)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if strings.Contains(string(body), "please fail") {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"inference backend exploded","type":"server_error"}}`))
		return
	}
	_, _ = w.Write([]byte(`{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"created": 1,
		"model": "` + model + `",
		"choices": [
			{"index": 0, "message": {"role": "assistant", "content": "Hi there"}, "finish_reason": "stop"},
			{"index": 1, "message": {"role": "assistant", "content": "ignored"}, "finish_reason": "stop"}
		],
		"usage": {"prompt_tokens": 1, "completion_tokens": 2, "total_tokens": 3}
	}`))
}

// newStack starts a fake provider and the full gateway in front of it.
func newStack(t *testing.T) (*httptest.Server, *fakeProvider) {
	t.Helper()
	fp := &fakeProvider{}
	provider := httptest.NewServer(fp)
	t.Cleanup(provider.Close)

	up, err := upstream.New(upstream.Options{
		Token:        testToken,
		InferenceURL: provider.URL,
		ChatURL:      provider.URL + "/v1",
	})
	if err != nil {
		t.Fatalf("upstream: %v", err)
	}
	gw, err := gateway.New(gateway.Config{
		Upstream:        up,
		TokenConfigured: true,
		Logger:          zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("gateway: %v", err)
	}
	srv := httptest.NewServer(httpapi.NewMux(gw))
	t.Cleanup(srv.Close)
	return srv, fp
}

func postJSON(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, b
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, b
}

func postAudio(t *testing.T, url string, audio []byte) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "clip.wav")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	_, _ = fw.Write(audio)
	_ = mw.Close()
	resp, err := http.Post(url, mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, b
}

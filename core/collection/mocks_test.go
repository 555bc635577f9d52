package collection

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/jbpiacentino/lumen-digest/core/domain"
	"github.com/jbpiacentino/lumen-digest/core/interfaces"
)

// mockHTTPClient is a mock implementation of the HTTPClient interface
type mockHTTPClient struct {
	getFunc    func(ctx context.Context, url string) (interfaces.Response, error)
	postFunc   func(ctx context.Context, url string, body io.Reader) (interfaces.Response, error)
	patchFunc  func(ctx context.Context, url string, body io.Reader) (interfaces.Response, error)
	deleteFunc func(ctx context.Context, url string) (interfaces.Response, error)
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, url)
	}
	return nil, nil
}

func (m *mockHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	if m.postFunc != nil {
		return m.postFunc(ctx, url, body)
	}
	return nil, nil
}

func (m *mockHTTPClient) Patch(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	if m.patchFunc != nil {
		return m.patchFunc(ctx, url, body)
	}
	return nil, nil
}

func (m *mockHTTPClient) Delete(ctx context.Context, url string) (interfaces.Response, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, url)
	}
	return nil, nil
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	return ""
}

// articleListResponse encodes an article list body the way the backend does
func articleListResponse(items []domain.Article, total int) *mockResponse {
	payload := struct {
		Items []domain.Article `json:"items"`
		Total int              `json:"total"`
	}{Items: items, Total: total}
	data, _ := json.Marshal(payload)
	return &mockResponse{statusCode: 200, body: string(data)}
}

// taxonomyResponse encodes a taxonomy body for the given forest
func taxonomyResponse(labels map[string]string, tree []domain.CategoryNode) *mockResponse {
	payload := domain.TaxonomyResponse{Labels: labels, Tree: tree}
	data, _ := json.Marshal(payload)
	return &mockResponse{statusCode: 200, body: string(data)}
}

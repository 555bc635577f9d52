package backend

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/jbpiacentino/lumen-digest/core/domain"
	coreerrors "github.com/jbpiacentino/lumen-digest/core/errors"
	"github.com/jbpiacentino/lumen-digest/core/interfaces"
)

func newTestClient(http *mockHTTPClient) *Client {
	return NewClient(interfaces.Dependencies{HTTPClient: http}, "http://backend")
}

func TestNewClient_TrimsTrailingSlashes(t *testing.T) {
	client := NewClient(interfaces.Dependencies{}, "http://backend///")

	if got := client.endpoint("/articles"); got != "http://backend/articles" {
		t.Errorf("endpoint = %q, want %q", got, "http://backend/articles")
	}
}

func TestDecode_UnauthorizedBecomesSessionExpired(t *testing.T) {
	for _, status := range []int{401, 403} {
		mockClient := &mockHTTPClient{
			getFunc: func(ctx context.Context, u string) (interfaces.Response, error) {
				return &mockResponse{statusCode: status, body: `{"detail":"not authenticated"}`}, nil
			},
		}
		client := newTestClient(mockClient)

		_, err := client.ListArticles(context.Background(), ListParams{})

		if !coreerrors.IsSessionExpired(err) {
			t.Errorf("status %d: got %v, want SessionExpiredError", status, err)
		}
	}
}

func TestDecode_ServerErrorCarriesDetailMessage(t *testing.T) {
	mockClient := &mockHTTPClient{
		getFunc: func(ctx context.Context, u string) (interfaces.Response, error) {
			return &mockResponse{statusCode: 404, body: `{"detail":"article not found"}`}, nil
		},
	}
	client := newTestClient(mockClient)

	_, err := client.ListArticles(context.Background(), ListParams{})

	var apiErr *coreerrors.ExternalAPIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %v, want ExternalAPIError", err)
	}
	if apiErr.StatusCode != 404 {
		t.Errorf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
	if apiErr.Message != "article not found" {
		t.Errorf("Message = %q, want the backend detail", apiErr.Message)
	}
}

func TestDecode_ServerErrorWithoutDetailGetsGenericMessage(t *testing.T) {
	mockClient := &mockHTTPClient{
		getFunc: func(ctx context.Context, u string) (interfaces.Response, error) {
			return &mockResponse{statusCode: 500, body: "internal server error"}, nil
		},
	}
	client := newTestClient(mockClient)

	_, err := client.ListArticles(context.Background(), ListParams{})

	var apiErr *coreerrors.ExternalAPIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %v, want ExternalAPIError", err)
	}
	if !strings.Contains(apiErr.Message, "500") {
		t.Errorf("Message = %q, want generic message naming the status", apiErr.Message)
	}
}

func TestDecode_TransportFailureBecomesNetworkError(t *testing.T) {
	cause := errors.New("connection refused")
	mockClient := &mockHTTPClient{
		getFunc: func(ctx context.Context, u string) (interfaces.Response, error) {
			return nil, cause
		},
	}
	client := newTestClient(mockClient)

	_, err := client.ListArticles(context.Background(), ListParams{})

	if !coreerrors.IsNetwork(err) {
		t.Fatalf("got %v, want NetworkError", err)
	}
	if !errors.Is(err, cause) {
		t.Error("NetworkError should wrap the transport cause")
	}
}

func TestListArticles_AlwaysSendsPageSize(t *testing.T) {
	var requested string
	mockClient := &mockHTTPClient{
		getFunc: func(ctx context.Context, u string) (interfaces.Response, error) {
			requested = u
			return &mockResponse{statusCode: 200, body: `{"items":[],"total":0}`}, nil
		},
	}
	client := newTestClient(mockClient)

	_, err := client.ListArticles(context.Background(), ListParams{PageSize: 0})
	if err != nil {
		t.Fatalf("ListArticles returned error: %v", err)
	}

	parsed, err := url.Parse(requested)
	if err != nil {
		t.Fatalf("request URL unparseable: %v", err)
	}
	// page_size=0 is the fetch-all contract and must be explicit
	if got := parsed.Query().Get("page_size"); got != "0" {
		t.Errorf("page_size = %q, want \"0\"", got)
	}
}

func TestListArticles_RepeatsCategoryAndSourceParams(t *testing.T) {
	var requested string
	mockClient := &mockHTTPClient{
		getFunc: func(ctx context.Context, u string) (interfaces.Response, error) {
			requested = u
			return &mockResponse{statusCode: 200, body: `{"items":[],"total":0}`}, nil
		},
	}
	client := newTestClient(mockClient)

	_, err := client.ListArticles(context.Background(), ListParams{
		Days:        7,
		Page:        2,
		PageSize:    24,
		CategoryIDs: []string{"tech", "ai"},
		Sources:     []string{"Example Wire"},
	})
	if err != nil {
		t.Fatalf("ListArticles returned error: %v", err)
	}

	parsed, _ := url.Parse(requested)
	q := parsed.Query()
	if got := q["category_ids"]; len(got) != 2 || got[0] != "tech" || got[1] != "ai" {
		t.Errorf("category_ids = %v, want [tech ai]", got)
	}
	if got := q.Get("days"); got != "7" {
		t.Errorf("days = %q, want \"7\"", got)
	}
	if got := q.Get("page"); got != "2" {
		t.Errorf("page = %q, want \"2\"", got)
	}
	if got := q["sources"]; len(got) != 1 || got[0] != "Example Wire" {
		t.Errorf("sources = %v, want [Example Wire]", got)
	}
}

func TestListArticles_NilItemsBecomesEmptySlice(t *testing.T) {
	mockClient := &mockHTTPClient{
		getFunc: func(ctx context.Context, u string) (interfaces.Response, error) {
			return &mockResponse{statusCode: 200, body: `{"total":0}`}, nil
		},
	}
	client := newTestClient(mockClient)

	list, err := client.ListArticles(context.Background(), ListParams{})
	if err != nil {
		t.Fatalf("ListArticles returned error: %v", err)
	}
	if list.Items == nil {
		t.Error("Items should be an empty slice, not nil")
	}
}

func TestUpdateReview_PatchesTheReviewEndpoint(t *testing.T) {
	var path, payload string
	mockClient := &mockHTTPClient{
		patchFunc: func(ctx context.Context, u string, body io.Reader) (interfaces.Response, error) {
			path = u
			data, _ := io.ReadAll(body)
			payload = string(data)
			return &mockResponse{statusCode: 200, body: `{"id":7,"title":"t","review_status":"correct"}`}, nil
		},
	}
	client := newTestClient(mockClient)

	status := domain.ReviewCorrect
	article, err := client.UpdateReview(context.Background(), 7, domain.ReviewPatch{ReviewStatus: &status})
	if err != nil {
		t.Fatalf("UpdateReview returned error: %v", err)
	}

	if path != "http://backend/articles/7/review" {
		t.Errorf("path = %q, want the review endpoint", path)
	}
	if !strings.Contains(payload, `"review_status":"correct"`) {
		t.Errorf("payload = %q, missing review_status", payload)
	}
	if strings.Contains(payload, "review_note") {
		t.Errorf("payload = %q, nil fields must be omitted", payload)
	}
	if article.ReviewStatus != domain.ReviewCorrect {
		t.Errorf("article status = %q, want correct", article.ReviewStatus)
	}
}

func TestReclassify_PreviewReturnsDebugWithoutArticle(t *testing.T) {
	mockClient := &mockHTTPClient{
		postFunc: func(ctx context.Context, u string, body io.Reader) (interfaces.Response, error) {
			if u != "http://backend/articles/3/reclassify" {
				t.Errorf("path = %q, want the reclassify endpoint", u)
			}
			return &mockResponse{
				statusCode: 200,
				body:       `{"debug":{"cleaned_text":"text","top_k":[{"category_id":"tech","score":0.9}],"threshold":0.36,"margin_threshold":0.07}}`,
			}, nil
		},
	}
	client := newTestClient(mockClient)

	result, err := client.Reclassify(context.Background(), 3, domain.DefaultReclassifyOptions())
	if err != nil {
		t.Fatalf("Reclassify returned error: %v", err)
	}
	if result.Article != nil {
		t.Error("preview result should carry no article")
	}
	if result.Debug == nil || len(result.Debug.TopK) != 1 {
		t.Fatalf("Debug = %+v, want one scored candidate", result.Debug)
	}
	if result.Debug.TopK[0].CategoryID != "tech" {
		t.Errorf("top candidate = %q, want tech", result.Debug.TopK[0].CategoryID)
	}
}

func TestDeleteArticle_UsesDeleteVerb(t *testing.T) {
	var path string
	mockClient := &mockHTTPClient{
		deleteFunc: func(ctx context.Context, u string) (interfaces.Response, error) {
			path = u
			return &mockResponse{statusCode: 204, body: ""}, nil
		},
	}
	client := newTestClient(mockClient)

	if err := client.DeleteArticle(context.Background(), 12); err != nil {
		t.Fatalf("DeleteArticle returned error: %v", err)
	}
	if path != "http://backend/articles/12" {
		t.Errorf("path = %q, want /articles/12", path)
	}
}

func TestTaxonomy_MalformedResponseDegradesToEmpty(t *testing.T) {
	warned := false
	mockClient := &mockHTTPClient{
		getFunc: func(ctx context.Context, u string) (interfaces.Response, error) {
			return &mockResponse{statusCode: 200, body: "not json"}, nil
		},
	}
	deps := interfaces.Dependencies{
		HTTPClient: mockClient,
		Logger: &mockLogger{
			warnFunc: func(msg string, fields map[string]interface{}) { warned = true },
		},
	}
	client := NewClient(deps, "http://backend")

	tax, err := client.Taxonomy(context.Background(), "en")

	if err != nil {
		t.Errorf("malformed taxonomy should degrade, got error %v", err)
	}
	if len(tax.Tree) != 0 || len(tax.Labels) != 0 {
		t.Errorf("taxonomy = %+v, want empty fallback", tax)
	}
	if !warned {
		t.Error("degraded taxonomy should be logged")
	}
}

func TestTaxonomy_SessionExpiryStillPropagates(t *testing.T) {
	mockClient := &mockHTTPClient{
		getFunc: func(ctx context.Context, u string) (interfaces.Response, error) {
			return &mockResponse{statusCode: 401, body: `{"detail":"expired"}`}, nil
		},
	}
	client := newTestClient(mockClient)

	_, err := client.Taxonomy(context.Background(), "en")

	if !coreerrors.IsSessionExpired(err) {
		t.Errorf("got %v, want SessionExpiredError", err)
	}
}

func TestTaxonomy_DefaultsLanguageToEnglish(t *testing.T) {
	var requested string
	mockClient := &mockHTTPClient{
		getFunc: func(ctx context.Context, u string) (interfaces.Response, error) {
			requested = u
			return &mockResponse{statusCode: 200, body: `{"labels":{},"tree":[]}`}, nil
		},
	}
	client := newTestClient(mockClient)

	_, err := client.Taxonomy(context.Background(), "")
	if err != nil {
		t.Fatalf("Taxonomy returned error: %v", err)
	}
	if !strings.Contains(requested, "lang=en") {
		t.Errorf("request = %q, want lang=en default", requested)
	}
}

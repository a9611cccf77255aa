package solver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonathan/quiz-solver/internal/fetch"
	"github.com/jonathan/quiz-solver/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTarget = "https://tds-llm-analysis.s-anand.net/project2/uv.json"

var testIdentity = types.Identity{Email: "student@example.com", Secret: "s3cret"}

// fakeRenderer serves canned text and HTML per URL and records calls.
type fakeRenderer struct {
	text      map[string]string
	html      map[string]string
	err       error
	textCalls []string
	htmlCalls []string
}

func (f *fakeRenderer) RenderText(_ context.Context, url string) (string, error) {
	f.textCalls = append(f.textCalls, url)
	if f.err != nil {
		return "", f.err
	}
	return f.text[url], nil
}

func (f *fakeRenderer) RenderHTML(_ context.Context, url string) (string, error) {
	f.htmlCalls = append(f.htmlCalls, url)
	if f.err != nil {
		return "", f.err
	}
	return f.html[url], nil
}

func newTestResolver(r PageRenderer, d Downloader) *Resolver {
	return NewResolver(r, d, Options{
		CommandTargetURL:  testTarget,
		PlaceholderAnswer: "placeholder",
	})
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestSelectStrategy(t *testing.T) {
	tests := []struct {
		name     string
		info     types.QuizInfo
		expected Strategy
	}{
		{
			name:     "scrape target wins over everything",
			info:     types.QuizInfo{ScrapeURL: strPtr("https://q.example.com/data"), RawText: "uv http get; csv file", CSVQuiz: true, CSVCutoff: intPtr(3), CurrentURL: "https://q.example.com/project2-uv"},
			expected: StrategyScrape,
		},
		{
			name:     "command by page text",
			info:     types.QuizInfo{RawText: "Craft the UV HTTP GET command", CurrentURL: "https://q.example.com/q1"},
			expected: StrategyCommand,
		},
		{
			name:     "command by url beats csv",
			info:     types.QuizInfo{RawText: "Download the CSV file. Cutoff: 10", CSVQuiz: true, CSVCutoff: intPtr(10), CurrentURL: "https://q.example.com/project2-uv?email=x"},
			expected: StrategyCommand,
		},
		{
			name:     "csv with cutoff",
			info:     types.QuizInfo{CSVQuiz: true, CSVCutoff: intPtr(10), CurrentURL: "https://q.example.com/csv"},
			expected: StrategyCSV,
		},
		{
			name:     "csv without cutoff falls through",
			info:     types.QuizInfo{CSVQuiz: true, CurrentURL: "https://q.example.com/csv"},
			expected: StrategyPlaceholder,
		},
		{
			name:     "plain page",
			info:     types.QuizInfo{RawText: "hello", CurrentURL: "https://q.example.com/"},
			expected: StrategyPlaceholder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SelectStrategy(&tt.info))
		})
	}
}

func TestResolve_Scrape(t *testing.T) {
	renderer := &fakeRenderer{text: map[string]string{
		"https://q.example.com/data": "Welcome\nThe secret code is 4821 today\nBye 99",
	}}
	info := &types.QuizInfo{ScrapeURL: strPtr("https://q.example.com/data"), CurrentURL: "https://q.example.com/q"}

	answer, err := newTestResolver(renderer, nil).Resolve(context.Background(), info, testIdentity)
	require.NoError(t, err)
	assert.Equal(t, types.StringAnswer("4821"), answer)
	assert.Equal(t, []string{"https://q.example.com/data"}, renderer.textCalls)
}

func TestResolve_ScrapeRenderError(t *testing.T) {
	renderErr := &fetch.RenderError{URL: "https://q.example.com/data", Cause: errors.New("timeout")}
	renderer := &fakeRenderer{err: renderErr}
	info := &types.QuizInfo{ScrapeURL: strPtr("https://q.example.com/data")}

	_, err := newTestResolver(renderer, nil).Resolve(context.Background(), info, testIdentity)
	require.Error(t, err)

	var target *fetch.RenderError
	assert.ErrorAs(t, err, &target)
}

func TestResolve_Command(t *testing.T) {
	renderer := &fakeRenderer{}
	info := &types.QuizInfo{
		RawText:    "Download the CSV file. Cutoff: 10",
		CSVQuiz:    true,
		CSVCutoff:  intPtr(10),
		CurrentURL: "https://q.example.com/project2-uv?email=student@example.com",
	}

	answer, err := newTestResolver(renderer, nil).Resolve(context.Background(), info, testIdentity)
	require.NoError(t, err)
	assert.Equal(t,
		types.StringAnswer(`uv http get https://tds-llm-analysis.s-anand.net/project2/uv.json?email=student@example.com -H "Accept: application/json"`),
		answer)
	assert.Empty(t, renderer.textCalls)
	assert.Empty(t, renderer.htmlCalls)
}

func TestResolve_Placeholder(t *testing.T) {
	info := &types.QuizInfo{RawText: "anything", CSVQuiz: true, CurrentURL: "https://q.example.com/q"}

	answer, err := newTestResolver(&fakeRenderer{}, nil).Resolve(context.Background(), info, testIdentity)
	require.NoError(t, err)
	assert.Equal(t, types.StringAnswer("placeholder"), answer)
}

func TestResolve_CSV(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/files/data.csv", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("value\n5\n15\n25\n"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	pageURL := server.URL + "/quiz/csv"
	renderer := &fakeRenderer{html: map[string]string{
		pageURL: `<html><body><p>Download the CSV file.</p><a href="../files/data.csv">data</a></body></html>`,
	}}
	info := &types.QuizInfo{CSVQuiz: true, CSVCutoff: intPtr(10), CurrentURL: pageURL}

	answer, err := newTestResolver(renderer, fetch.NewDownloader(nil)).Resolve(context.Background(), info, testIdentity)
	require.NoError(t, err)
	assert.Equal(t, types.IntegerAnswer(40), answer)
	assert.Equal(t, []string{pageURL}, renderer.htmlCalls)
}

func TestResolve_CSVNoLink(t *testing.T) {
	pageURL := "https://q.example.com/quiz/csv"
	renderer := &fakeRenderer{html: map[string]string{
		pageURL: `<html><body><p>Download the CSV file.</p></body></html>`,
	}}
	info := &types.QuizInfo{CSVQuiz: true, CSVCutoff: intPtr(10), CurrentURL: pageURL}

	answer, err := newTestResolver(renderer, fetch.NewDownloader(nil)).Resolve(context.Background(), info, testIdentity)
	require.NoError(t, err)
	assert.Equal(t, types.StringAnswer("0"), answer)
}

func TestResolve_CSVDownloadError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	pageURL := server.URL + "/quiz"
	renderer := &fakeRenderer{html: map[string]string{
		pageURL: `<a href="/missing.csv">data</a>`,
	}}
	info := &types.QuizInfo{CSVQuiz: true, CSVCutoff: intPtr(10), CurrentURL: pageURL}

	_, err := newTestResolver(renderer, fetch.NewDownloader(nil)).Resolve(context.Background(), info, testIdentity)
	require.Error(t, err)

	var fetchErr *fetch.Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
}

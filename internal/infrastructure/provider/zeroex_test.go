package provider_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"swapwatch/internal/application"
	"swapwatch/internal/domain"
	"swapwatch/internal/infrastructure/httpx"
	"swapwatch/internal/infrastructure/provider"

	"github.com/stretchr/testify/require"
)

type rtFunc func(*http.Request) *http.Response

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r), nil }

func httpClient(resBody string, code int, seen *[]*http.Request) *http.Client {
	return &http.Client{
		Timeout: 2 * time.Second,
		Transport: rtFunc(func(r *http.Request) *http.Response {
			if seen != nil {
				*seen = append(*seen, r)
			}
			return &http.Response{
				StatusCode: code,
				Body:       io.NopCloser(strings.NewReader(resBody)),
				Header:     make(http.Header),
				Request:    r,
			}
		}),
	}
}

const sampleQuote = `{"chainId":1,"price":"1800.123456","guaranteedPrice":"1782.122","buyToken":"DAI"}`

func request(t *testing.T, base string) domain.QuoteRequest {
	t.Helper()
	req, err := domain.NewQuoteRequest(base, "WETH", "DAI", "")
	require.NoError(t, err)
	return req
}

func TestZeroEx_BuildsQueryAndReturnsBody(t *testing.T) {
	var seen []*http.Request
	p := provider.NewZeroEx(&httpx.Client{HTTP: httpClient(sampleQuote, 200, &seen)})

	body, err := p.Fetch(context.Background(), request(t, "https://api.0x.org/swap/v1/quote"))
	require.NoError(t, err)
	require.Equal(t, sampleQuote, body)

	require.Len(t, seen, 1)
	q := seen[0].URL.Query()
	require.Equal(t, "WETH", q.Get("sellToken"))
	require.Equal(t, "DAI", q.Get("buyToken"))
	require.Equal(t, domain.DefaultSellAmount, q.Get("sellAmount"))
	require.Equal(t, "api.0x.org", seen[0].URL.Host)
	require.Equal(t, "/swap/v1/quote", seen[0].URL.Path)
}

func TestZeroEx_BadStatus(t *testing.T) {
	p := provider.NewZeroEx(&httpx.Client{HTTP: httpClient(`{"code":100,"reason":"Validation Failed"}`, 400, nil)})
	_, err := p.Fetch(context.Background(), request(t, "http://example.com"))
	require.ErrorIs(t, err, domain.ErrBadStatus)
	require.Contains(t, err.Error(), "400")
	require.Contains(t, err.Error(), "WETH/DAI")
}

func TestZeroEx_AgainstServerFeedsExtractor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleQuote))
	}))
	defer srv.Close()

	p := provider.NewZeroEx(httpx.New(time.Second))
	body, err := p.Fetch(context.Background(), request(t, srv.URL))
	require.NoError(t, err)

	price, err := application.NewJSONExtractor(application.FieldPrice, false).Extract(body)
	require.NoError(t, err)
	require.Equal(t, "1800.123456", price.Raw)

	guaranteed, err := application.NewJSONExtractor(application.FieldGuaranteedPrice, true).Extract(body)
	require.NoError(t, err)
	require.Equal(t, "1782.122", guaranteed.Value.String())
}

func TestFake_CyclesPerPair(t *testing.T) {
	f := provider.NewFake("1", "2")
	ctx := context.Background()
	x := application.NewJSONExtractor(application.FieldPrice, false)
	weth := request(t, "http://example.com")
	usdc, err := domain.NewQuoteRequest("http://example.com", "USDC", "DAI", "")
	require.NoError(t, err)

	var got []string
	for _, req := range []domain.QuoteRequest{weth, weth, usdc, weth} {
		body, err := f.Fetch(ctx, req)
		require.NoError(t, err)
		p, err := x.Extract(body)
		require.NoError(t, err)
		got = append(got, p.Raw)
	}
	require.Equal(t, []string{"1", "2", "1", "1"}, got)
}

func TestFake_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := provider.NewFake().Fetch(ctx, request(t, "http://example.com"))
	require.ErrorIs(t, err, domain.ErrTransport)
}

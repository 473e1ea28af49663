package domain

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	DefaultQuoteBaseURL = "https://api.0x.org/swap/v1/quote"
	DefaultSellAmount   = "100000000"
)

// QuoteRequest identifies the quote a monitor polls. It is immutable for a run.
type QuoteRequest struct {
	BaseURL    string
	SellToken  string
	BuyToken   string
	SellAmount string
}

func NewQuoteRequest(baseURL, sellToken, buyToken, sellAmount string) (QuoteRequest, error) {
	if baseURL == "" {
		baseURL = DefaultQuoteBaseURL
	}
	if sellAmount == "" {
		sellAmount = DefaultSellAmount
	}
	r := QuoteRequest{
		BaseURL:    baseURL,
		SellToken:  strings.TrimSpace(sellToken),
		BuyToken:   strings.TrimSpace(buyToken),
		SellAmount: sellAmount,
	}
	if err := r.Validate(); err != nil {
		return QuoteRequest{}, err
	}
	return r, nil
}

func (r QuoteRequest) Validate() error {
	if r.SellToken == "" {
		return fmt.Errorf("%w: sell token is required", ErrInvalidRequest)
	}
	if r.BuyToken == "" {
		return fmt.Errorf("%w: buy token is required", ErrInvalidRequest)
	}
	if _, err := url.Parse(r.BaseURL); err != nil {
		return fmt.Errorf("%w: base url: %v", ErrInvalidRequest, err)
	}
	return nil
}

// Pair renders the request as SELL/BUY.
func (r QuoteRequest) Pair() string {
	return r.SellToken + "/" + r.BuyToken
}

// URL resolves the request into the GET target.
func (r QuoteRequest) URL() (string, error) {
	u, err := url.Parse(r.BaseURL)
	if err != nil {
		return "", fmt.Errorf("%w: base url: %v", ErrInvalidRequest, err)
	}
	q := u.Query()
	q.Set("sellAmount", r.SellAmount)
	q.Set("buyToken", r.BuyToken)
	q.Set("sellToken", r.SellToken)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

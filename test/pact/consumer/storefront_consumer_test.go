//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Apurer/go-gin-commerce-api/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type orderPayload struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Total      string `json:"total"`
	Lines      []struct {
		ProductID string `json:"product_id"`
		Price     string `json:"price"`
		Quantity  int64  `json:"quantity"`
	} `json:"lines"`
}

type problemDetail struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail"`
	Extensions map[string]any `json:"extensions"`
}

type apiError struct {
	problem problemDetail
}

func (e apiError) Error() string {
	return fmt.Sprintf("%s: %s (status %d)", e.problem.Title, e.problem.Detail, e.problem.Status)
}

func TestStorefrontContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	uuidPattern := "[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}"

	pact.AddInteraction().
		Given(pacttest.StateCatalogBaseline).
		UponReceiving("a request to place an order").
		WithRequest("POST", "/v1/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(pacttest.ExampleOrderRequest(pacttest.ExistingCustomerID, 2))
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"id":          matchers.Term("0f8fad5b-d9cb-469f-a165-70867728950e", uuidPattern),
				"customer_id": matchers.S(pacttest.ExistingCustomerID),
				"total":       matchers.Like("40"),
				"lines": matchers.ArrayMinLike(matchers.Map{
					"product_id": matchers.Term(pacttest.ProductOneID, uuidPattern),
					"price":      matchers.Like("10"),
					"quantity":   matchers.Like(2),
					"subtotal":   matchers.Like("20"),
				}, 2),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateLowStock).
		UponReceiving("an order asking for more than the stock").
		WithRequest("POST", "/v1/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(pacttest.ExampleOrderRequest(pacttest.ExistingCustomerID, 5))
		}).
		WillRespondWith(http.StatusUnprocessableEntity, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/unprocessable-entity"),
				"status": matchers.Like(http.StatusUnprocessableEntity),
				"extensions": matchers.Map{
					"productId":   matchers.S(pacttest.ProductOneID),
					"productName": matchers.S(pacttest.ProductOneName),
				},
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateNoCustomer).
		UponReceiving("an order for an unknown customer").
		WithRequest("POST", "/v1/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(pacttest.ExampleOrderRequest(pacttest.MissingCustomerID, 1))
		}).
		WillRespondWith(http.StatusBadRequest, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/bad-request"),
				"status": matchers.Like(http.StatusBadRequest),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newOrderClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		placed, err := client.PlaceOrder(ctx, pacttest.ExampleOrderRequest(pacttest.ExistingCustomerID, 2))
		if err != nil {
			return fmt.Errorf("place order: %w", err)
		}
		if placed.ID == "" || len(placed.Lines) < 2 {
			return fmt.Errorf("unexpected order %+v", placed)
		}

		_, err = client.PlaceOrder(ctx, pacttest.ExampleOrderRequest(pacttest.ExistingCustomerID, 5))
		apiErr, ok := err.(apiError)
		if !ok || apiErr.problem.Status != http.StatusUnprocessableEntity {
			return fmt.Errorf("expected 422, got %v", err)
		}
		if apiErr.problem.Extensions["productName"] != pacttest.ProductOneName {
			return fmt.Errorf("expected shortage on %s, got %v", pacttest.ProductOneName, apiErr.problem.Extensions)
		}

		_, err = client.PlaceOrder(ctx, pacttest.ExampleOrderRequest(pacttest.MissingCustomerID, 1))
		if apiErr, ok := err.(apiError); !ok || apiErr.problem.Status != http.StatusBadRequest {
			return fmt.Errorf("expected 400, got %v", err)
		}
		return nil
	})
	require.NoError(t, err)
}

type orderClient struct {
	baseURL    string
	httpClient *http.Client
}

func newOrderClient(config pactconsumer.MockServerConfig) *orderClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	return &orderClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: &http.Client{Transport: transport, Timeout: 10 * time.Second},
	}
}

func (c *orderClient) PlaceOrder(ctx context.Context, body map[string]any) (*orderPayload, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		var problem problemDetail
		_ = json.NewDecoder(res.Body).Decode(&problem)
		if problem.Status == 0 {
			problem.Status = res.StatusCode
		}
		return nil, apiError{problem: problem}
	}

	var payload orderPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

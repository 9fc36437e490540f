package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client is a thin REST client for the payment processor. Amounts cross
// this boundary in minor units and timestamps in epoch seconds; callers
// convert on ingress.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewClient(baseURL, secretKey string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type Customer struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type PaymentIntentObject struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	ClientSecret string `json:"client_secret"`
}

type SubscriptionObject struct {
	ID                string `json:"id"`
	Status            string `json:"status"`
	CancelAtPeriodEnd bool   `json:"cancel_at_period_end"`
	CancelAt          int64  `json:"cancel_at"`
	CurrentPeriodEnd  int64  `json:"current_period_end"`
	LatestInvoice     *struct {
		PaymentIntent *PaymentIntentObject `json:"payment_intent"`
	} `json:"latest_invoice"`
}

type Price struct {
	ID         string `json:"id"`
	UnitAmount int64  `json:"unit_amount"`
	Currency   string `json:"currency"`
	Created    int64  `json:"created"`
	Recurring  *struct {
		Interval string `json:"interval"`
	} `json:"recurring"`
	Product struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Description *string `json:"description"`
		Deleted     bool    `json:"deleted"`
	} `json:"product"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) CreateCustomer(ctx context.Context, email, name string) (*Customer, error) {
	form := url.Values{}
	form.Set("email", email)
	form.Set("name", name)

	var customer Customer
	if err := c.do(ctx, http.MethodPost, "/customers", form, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *Client) AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) error {
	form := url.Values{}
	form.Set("customer", customerID)
	return c.do(ctx, http.MethodPost, "/payment_methods/"+paymentMethodID+"/attach", form, nil)
}

func (c *Client) SetDefaultPaymentMethod(ctx context.Context, customerID, paymentMethodID string) error {
	form := url.Values{}
	form.Set("invoice_settings[default_payment_method]", paymentMethodID)
	return c.do(ctx, http.MethodPost, "/customers/"+customerID, form, nil)
}

func (c *Client) CreateSubscription(ctx context.Context, customerID, priceID string) (*SubscriptionObject, error) {
	form := url.Values{}
	form.Set("customer", customerID)
	form.Set("items[0][price]", priceID)
	form.Add("expand[]", "latest_invoice.payment_intent")

	var sub SubscriptionObject
	if err := c.do(ctx, http.MethodPost, "/subscriptions", form, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// SetCancelAtPeriodEnd schedules or unschedules cancellation at the end
// of the current billing period.
func (c *Client) SetCancelAtPeriodEnd(ctx context.Context, subscriptionID string, cancel bool) (*SubscriptionObject, error) {
	form := url.Values{}
	form.Set("cancel_at_period_end", strconv.FormatBool(cancel))

	var sub SubscriptionObject
	if err := c.do(ctx, http.MethodPost, "/subscriptions/"+subscriptionID, form, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (c *Client) CreatePaymentIntent(ctx context.Context, amountMinor int64, currency, customerID string, metadata map[string]string) (*PaymentIntentObject, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountMinor, 10))
	form.Set("currency", currency)
	form.Set("customer", customerID)
	for k, v := range metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	var intent PaymentIntentObject
	if err := c.do(ctx, http.MethodPost, "/payment_intents", form, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// CreatePrice registers a product with a one-time price and returns the
// price object.
func (c *Client) CreatePrice(ctx context.Context, productName string, amountMinor int64, currency string) (*Price, error) {
	form := url.Values{}
	form.Set("product_data[name]", productName)
	form.Set("unit_amount", strconv.FormatInt(amountMinor, 10))
	form.Set("currency", currency)

	var price Price
	if err := c.do(ctx, http.MethodPost, "/prices", form, &price); err != nil {
		return nil, err
	}
	return &price, nil
}

func (c *Client) ListPrices(ctx context.Context, currency string) ([]Price, error) {
	form := url.Values{}
	form.Set("active", "true")
	form.Set("currency", currency)
	form.Add("expand[]", "data.product")

	var list struct {
		Data []Price `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/prices?"+form.Encode(), nil, &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values, out interface{}) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("payment api %s %s: %s", method, path, apiErr.Error.Message)
		}
		return fmt.Errorf("payment api %s %s: status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

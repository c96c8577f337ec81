package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/product-catalog/internal/application/dto"
)

// Mensajes que ve el usuario cuando la API falla.
const (
	MsgListFailed    = "Error al cargar los productos."
	MsgCreateFailed  = "Error al crear el producto."
	MsgNetworkFailed = "No se pudo conectar con el servidor."
)

// APIError respuesta no-OK de la API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// NetworkError la petición no llegó a tener respuesta.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return MsgNetworkFailed }
func (e *NetworkError) Unwrap() error { return e.Err }

// APIClient cliente HTTP de /api/products.
type APIClient struct {
	HTTP    *http.Client
	BaseURL string
}

// NewAPIClient construye el cliente con timeout de 10s.
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (a *APIClient) productsURL() string { return a.BaseURL + "/api/products" }

// ListProducts GET /api/products.
func (a *APIClient) ListProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.productsURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("armar petición: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	res, err := a.HTTP.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, &APIError{Status: res.StatusCode, Message: MsgListFailed}
	}
	var out []dto.ProductResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, &APIError{Status: res.StatusCode, Message: MsgListFailed}
	}
	return out, nil
}

// CreateProduct POST /api/products. Si la API envía message se usa tal cual.
func (a *APIClient) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("serializar producto: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.productsURL(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("armar petición: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	res, err := a.HTTP.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusCreated && res.StatusCode != http.StatusOK {
		msg := MsgCreateFailed
		var e dto.ErrorResponse
		if json.NewDecoder(res.Body).Decode(&e) == nil && e.Message != "" {
			msg = e.Message
		}
		return nil, &APIError{Status: res.StatusCode, Message: msg}
	}
	var out dto.ProductResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, &APIError{Status: res.StatusCode, Message: MsgCreateFailed}
	}
	return &out, nil
}

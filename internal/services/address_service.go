package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"

	"facilicar_backend/internal/models"
)

var (
	ErrInvalidCEP         = errors.New("cep must have exactly 8 digits")
	ErrAddressNotFound    = errors.New("address not found for cep")
	ErrAddressUnavailable = errors.New("address lookup service unavailable")
)

// AddressService resolves Brazilian postal codes (CEP) against the public
// ViaCEP API to autofill establishment settings.
type AddressService struct {
	client  *http.Client
	baseURL string
}

// NewAddressService creates an AddressService with a short timeout so a slow
// upstream never stalls the settings form.
func NewAddressService() *AddressService {
	return &AddressService{
		client:  &http.Client{Timeout: 5 * time.Second},
		baseURL: "https://viacep.com.br/ws",
	}
}

// NormalizeCEP strips formatting and validates the 8-digit shape.
func NormalizeCEP(cep string) (string, error) {
	var digits strings.Builder
	for _, r := range cep {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	if digits.Len() != 8 {
		return "", ErrInvalidCEP
	}
	return digits.String(), nil
}

type viaCEPResponse struct {
	models.Address
	Erro bool `json:"erro"`
}

// Lookup fetches the address for a CEP. Unknown codes map to
// ErrAddressNotFound; upstream failures to ErrAddressUnavailable.
func (s *AddressService) Lookup(ctx context.Context, cep string) (*models.Address, error) {
	normalized, err := NormalizeCEP(cep)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s/json/", s.baseURL, normalized)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building cep request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAddressUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrAddressUnavailable, resp.StatusCode)
	}

	var payload viaCEPResponse
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrAddressUnavailable, err)
	}
	if payload.Erro {
		return nil, ErrAddressNotFound
	}
	return &payload.Address, nil
}

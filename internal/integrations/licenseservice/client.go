package licenseservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с LicenseService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента LicenseService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetAllowance получает лимиты бронирований компании
func (c *Client) GetAllowance(ctx context.Context, companyID int64) (*Allowance, error) {
	url := fmt.Sprintf("%s/internal/companies/%d/booking-allowance", c.baseURL, companyID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrCompanyNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var allowance Allowance
	if err := json.NewDecoder(resp.Body).Decode(&allowance); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &allowance, nil
}

// GetAllowanceWithGracefulDegradation получает лимиты с graceful degradation.
// При недоступности LicenseService возвращает ErrServiceDegraded -
// вызывающая сторона решает, пропускать ли бронирование без проверки лимита.
func (c *Client) GetAllowanceWithGracefulDegradation(ctx context.Context, companyID int64) (*Allowance, error) {
	allowance, err := c.GetAllowance(ctx, companyID)
	if err != nil {
		if err == ErrCompanyNotFound {
			c.log.Info("No license record for company id=%d", companyID)
			return nil, err
		}

		// Недоступность сервиса, timeout, ошибки парсинга - деградируем,
		// бронирования важнее проверки лимита
		c.log.Error("LicenseService unavailable, applying graceful degradation for company id=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: company_id=%d, error=%v", ErrServiceDegraded, companyID, err)
	}

	return allowance, nil
}

package proxy

import (
	"fmt"
	"io"
	"net/http"
	"net/textproto"
	"strings"

	"jobrelay/backend/internal/models"
)

// UserAgent заголовок для исходящих запросов
const UserAgent = "JobRelay/1.0"

// Client выполняет запросы к внешнему API и возвращает ответ как есть
type Client struct {
	httpClient *http.Client
}

// NewClient создает клиента. nil означает http.Client без таймаута
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{httpClient: httpClient}
}

// Do выполняет запрос и читает ответ целиком.
// Любой HTTP статус считается результатом, ошибкой считается только сбой транспорта.
func (c *Client) Do(req *http.Request) (*models.SearchResult, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", UserAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach %s: %w", req.URL.Host, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", req.URL.Host, err)
	}

	return &models.SearchResult{
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       body,
	}, nil
}

// hopHeaders заголовки соединения, которые не передаются клиенту
var hopHeaders = []string{
	"Connection",
	"Proxy-Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// WriteResult копирует заголовки, статус и тело ответа клиенту.
// Заголовки провайдера заменяют одноименные заголовки, выставленные middleware.
func WriteResult(w http.ResponseWriter, result *models.SearchResult) error {
	header := endToEndHeader(result.Header)

	dst := w.Header()
	for key := range header {
		dst.Del(key)
	}
	for key, values := range header {
		for _, value := range values {
			dst.Add(key, value)
		}
	}

	// Без Content-Type net/http подставит тип по содержимому тела
	if _, ok := dst["Content-Type"]; !ok {
		dst["Content-Type"] = nil
	}

	w.WriteHeader(result.Status())

	if _, err := w.Write(result.Body); err != nil {
		return fmt.Errorf("failed to write response body: %w", err)
	}
	return nil
}

// endToEndHeader копия заголовков без hop-by-hop, включая перечисленные в Connection
func endToEndHeader(src http.Header) http.Header {
	header := make(http.Header, len(src))
	for key, values := range src {
		header[http.CanonicalHeaderKey(key)] = append(header[http.CanonicalHeaderKey(key)], values...)
	}

	for _, value := range header["Connection"] {
		for _, name := range strings.Split(value, ",") {
			if name = textproto.TrimString(name); name != "" {
				header.Del(name)
			}
		}
	}
	for _, name := range hopHeaders {
		header.Del(name)
	}
	return header
}

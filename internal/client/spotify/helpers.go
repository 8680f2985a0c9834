package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dsmirnov/spotify-grabber/internal/logger"
	"github.com/dsmirnov/spotify-grabber/internal/utils"
)

// fetchJSON fetches JSON from the specified URI.
//
//nolint:revive // Has no sense, it's cause Go doesn't allow struct methods to be generic.
func fetchJSON[T any](c *ClientImpl, ctx context.Context, uri string) (*FetchJSONResult[T], error) {
	return fetchJSONWithQuery[T](c, ctx, uri, nil)
}

// fetchJSONWithQuery fetches JSON from the specified URI with the specified query.
// Transient failures (rate limiting, server errors) are retried a bounded number
// of times with a randomized pause between attempts.
//
//nolint:revive // Has no sense, it's cause Go doesn't allow struct methods to be generic.
func fetchJSONWithQuery[T any](
	c *ClientImpl,
	ctx context.Context,
	uri string,
	query url.Values,
) (*FetchJSONResult[T], error) {
	route, err := url.JoinPath(c.baseURL, uri)
	if err != nil {
		return nil, err
	}

	return fetchJSONFromURL[T](c, ctx, route, query)
}

// fetchJSONFromURL fetches JSON from an absolute URL, used for paginated "next" links.
//
//nolint:revive // Has no sense, it's cause Go doesn't allow struct methods to be generic.
func fetchJSONFromURL[T any](
	c *ClientImpl,
	ctx context.Context,
	route string,
	query url.Values,
) (*FetchJSONResult[T], error) {
	var (
		result *FetchJSONResult[T]
		err    error
	)

	for i := range c.cfg.RetryAttemptsCount {
		result, err = fetchJSONOnce[T](c, ctx, route, query)
		if err == nil {
			return result, nil
		}

		// Retry on rate limiting and server-side failures.
		if i < c.cfg.RetryAttemptsCount-1 && result != nil && isRetryableStatus(result.StatusCode) {
			logger.Infof(ctx, "Retrying due to error (%d attempts left): %v", c.cfg.RetryAttemptsCount-i-1, err)
			utils.RandomPause(c.cfg.ParsedMinRetryPause, c.cfg.ParsedMaxRetryPause)

			continue
		}

		return result, err
	}

	return nil, fmt.Errorf("%w: %v", ErrFailedAfterRetries, err) //nolint:errorlint // err context only.
}

// fetchJSONOnce performs a single authorized request.
// A rejected access token is refreshed once and the request replayed,
// a second rejection surfaces as ErrUnauthorized.
//
//nolint:revive // Has no sense, it's cause Go doesn't allow struct methods to be generic.
func fetchJSONOnce[T any](
	c *ClientImpl,
	ctx context.Context,
	route string,
	query url.Values,
) (*FetchJSONResult[T], error) {
	for attempt := range 2 {
		token, err := c.currentAccessToken(ctx)
		if err != nil {
			return nil, err
		}

		request, err := http.NewRequestWithContext(ctx, http.MethodGet, route, http.NoBody)
		if err != nil {
			return nil, err
		}

		if query != nil {
			request.URL.RawQuery = query.Encode()
		}

		request.Header.Set("Authorization", "Bearer "+token)

		response, err := c.httpClient.Do(request)
		if err != nil {
			return nil, err
		}

		if response.StatusCode == http.StatusUnauthorized && attempt == 0 {
			response.Body.Close() //nolint:gosec // Error on close is not critical here.
			logger.Debug(ctx, "Access token rejected, re-authenticating")

			if _, err = c.refreshAccessToken(ctx); err != nil {
				return nil, err
			}

			continue
		}

		return decodeJSONResponse[T](response)
	}

	return nil, ErrUnauthorized
}

// decodeJSONResponse consumes and decodes an HTTP response body.
func decodeJSONResponse[T any](response *http.Response) (*FetchJSONResult[T], error) {
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusNotFound:
		return &FetchJSONResult[T]{
			Data:       nil,
			StatusCode: response.StatusCode,
		}, ErrNotFound
	case response.StatusCode != http.StatusOK:
		return &FetchJSONResult[T]{
			Data:       nil,
			StatusCode: response.StatusCode,
		}, fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	var result T
	if err := json.NewDecoder(response.Body).Decode(&result); err != nil {
		return &FetchJSONResult[T]{
			Data:       nil,
			StatusCode: response.StatusCode,
		}, err
	}

	return &FetchJSONResult[T]{
		Data:       &result,
		StatusCode: response.StatusCode,
	}, nil
}

// fetchAllPages walks a paginated list endpoint until the last page,
// following the absolute "next" links the API returns.
//
//nolint:revive // Has no sense, it's cause Go doesn't allow struct methods to be generic.
func fetchAllPages[T any](
	c *ClientImpl,
	ctx context.Context,
	uri string,
	query url.Values,
) ([]T, error) {
	if len(query) == 0 {
		query = url.Values{}
	}

	query.Set("limit", strconv.Itoa(defaultPageLimit))

	result, err := fetchJSONWithQuery[Paging[T]](c, ctx, uri, query)
	if err != nil {
		return nil, err
	}

	page := result.Data
	items := make([]T, 0, page.Total)
	items = append(items, page.Items...)

	for page.Next != "" {
		if err = ctx.Err(); err != nil {
			return nil, err
		}

		result, err = fetchJSONFromURL[Paging[T]](c, ctx, page.Next, nil)
		if err != nil {
			return nil, err
		}

		page = result.Data
		items = append(items, page.Items...)
	}

	return items, nil
}

// isRetryableStatus reports whether a request with this status is worth replaying.
func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= http.StatusInternalServerError
}

// decodeJSON decodes a JSON stream into the given value.
func decodeJSON(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}

package utils

import (
	"bytes"
	"context"
	"io/ioutil"
	"net/http"
)

// PostAndReturnBody performs one POST and hands back the raw response
// body and status code. Interpreting a non-2xx status is left to the
// caller so it can raise a properly typed error.
func PostAndReturnBody(ctx context.Context, client *http.Client, url string, contentType string, body *bytes.Buffer) ([]byte, int, error) {
	request, requestErr := http.NewRequestWithContext(ctx, "POST", url, body)
	if requestErr != nil {
		return nil, 0, requestErr
	}
	request.Header.Set("Content-Type", contentType)

	response, responseErr := client.Do(request)
	if responseErr != nil {
		return nil, 0, responseErr
	}
	defer response.Body.Close()

	responseBody, readErr := ioutil.ReadAll(response.Body)
	if readErr != nil {
		return nil, response.StatusCode, readErr
	}

	return responseBody, response.StatusCode, nil
}

func GetAndReturnBody(ctx context.Context, client *http.Client, url string) ([]byte, int, error) {
	request, requestErr := http.NewRequestWithContext(ctx, "GET", url, nil)
	if requestErr != nil {
		return nil, 0, requestErr
	}

	response, responseErr := client.Do(request)
	if responseErr != nil {
		return nil, 0, responseErr
	}
	defer response.Body.Close()

	responseBody, readErr := ioutil.ReadAll(response.Body)
	if readErr != nil {
		return nil, response.StatusCode, readErr
	}

	return responseBody, response.StatusCode, nil
}

func Is2xx(statusCode int) bool {
	return statusCode >= 200 && statusCode <= 299
}

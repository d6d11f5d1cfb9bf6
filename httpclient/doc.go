// Package httpclient provides a small HTTP adapter with authentication,
// typed JSON helpers and error classification.
//
// Every call is a single round trip. There is no retry, circuit breaker or
// rate limiter in this package. Non-2xx responses come back as *Error with
// the remote service's own error message when its body carries one.
//
// # Basic Usage
//
//	a, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.assemblyai.com",
//	    Auth:    httpclient.APIKeyAuthHeader(key, "Authorization"),
//	})
//
//	resp, err := httpclient.Post[createResponse](a, ctx, "/v2/transcript", body)
package httpclient

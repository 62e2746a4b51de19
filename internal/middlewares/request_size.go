package middlewares

import "net/http"

// RequestSizeLimitMiddleware caps request bodies at maxRequestSize bytes.
// Document content arrives in JSON bodies, so an oversized upload is rejected
// with 413 before it reaches the decoder. A declared Content-Length over the
// cap fails fast; chunked bodies are cut off by the MaxBytesReader instead.
func RequestSizeLimitMiddleware(maxRequestSize int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxRequestSize {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				w.Write([]byte(`{"message":"request body too large"}`))
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)
			next.ServeHTTP(w, r)
		})
	}
}

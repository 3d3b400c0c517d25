package middleware

import "net/http"

// LimitBytes ограничивает размер тела запроса; превышение всплывёт
// ошибкой чтения (*http.MaxBytesError) в обработчике.
func LimitBytes(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if n > 0 && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}

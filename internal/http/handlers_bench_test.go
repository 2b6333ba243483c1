package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/kjstillabower/weather-forecast-service/internal/apidoc"
	"github.com/kjstillabower/weather-forecast-service/internal/forecast"
)

// setupBenchmarkRouter creates a router with a silent logger and no rate limiter.
func setupBenchmarkRouter(b *testing.B) http.Handler {
	docs, err := apidoc.NewRegistry(apidoc.DefaultDocuments...)
	if err != nil {
		b.Fatalf("NewRegistry: %v", err)
	}
	h := NewHandler(forecast.NewGenerator(forecast.NewSource(), zap.NewNop()), docs, nil, zap.NewNop())
	return NewRouter(h, zap.NewNop(), RouterOptions{})
}

func benchmarkGet(b *testing.B, target string) {
	router := setupBenchmarkRouter(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		if w.Code != http.StatusOK {
			b.Fatalf("status = %d", w.Code)
		}
	}
}

// BenchmarkGetForecastV1 measures the full middleware chain for v1.
func BenchmarkGetForecastV1(b *testing.B) {
	benchmarkGet(b, "/api/v1/weatherforecast")
}

// BenchmarkGetForecastV2_MaxDays measures the largest forecast response.
func BenchmarkGetForecastV2_MaxDays(b *testing.B) {
	benchmarkGet(b, "/api/v2/weatherforecast?days=14")
}

// BenchmarkGetAPIDoc measures serving a pre-rendered document.
func BenchmarkGetAPIDoc(b *testing.B) {
	benchmarkGet(b, "/swagger/v1/swagger.json")
}

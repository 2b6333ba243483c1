package http

import (
	"net/http"
	"testing"

	"github.com/gorilla/mux"

	"github.com/kjstillabower/weather-forecast-service/internal/models"
)

func TestForecastRoutes_Table(t *testing.T) {
	h, _, _ := newTestHandler(t, nil)
	routes := h.ForecastRoutes()

	want := map[string]models.Version{
		"/api/v1/weatherforecast": models.VersionV1,
		"/api/v2/weatherforecast": models.VersionV2,
		"/weatherforecast":        models.VersionLegacy,
	}
	if len(routes) != len(want) {
		t.Fatalf("routes = %d, want %d", len(routes), len(want))
	}
	for _, rt := range routes {
		if v, ok := want[rt.Path]; !ok || v != rt.Version {
			t.Errorf("route %s version = %s, want %s", rt.Path, rt.Version, v)
		}
		if rt.Handler == nil || rt.Name == "" {
			t.Errorf("route %s incomplete: %+v", rt.Path, rt)
		}
	}
}

func TestNewRouter_NamedRoutes(t *testing.T) {
	router, _ := newTestRouter(t, RouterOptions{})
	// named routes live on the forecast subrouter
	found := map[string]bool{}
	_ = router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		if name := route.GetName(); name != "" {
			found[name] = true
		}
		return nil
	})
	for _, name := range []string{"GetWeatherForecastV1", "GetWeatherForecastV2", "GetWeatherForecastLegacy"} {
		if !found[name] {
			t.Errorf("route %s not registered", name)
		}
	}
}

func TestNewRouter_ForecastRoutesAreGetOnly(t *testing.T) {
	router, _ := newTestRouter(t, RouterOptions{})
	for _, path := range []string{"/api/v1/weatherforecast", "/api/v2/weatherforecast", "/weatherforecast"} {
		if w := serve(router, http.MethodPost, path); w.Code != http.StatusMethodNotAllowed {
			t.Errorf("POST %s status = %d, want 405", path, w.Code)
		}
	}
}

func TestNewRouter_UnknownPath(t *testing.T) {
	router, _ := newTestRouter(t, RouterOptions{})
	if w := serve(router, http.MethodGet, "/api/v3/weatherforecast"); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestNewRouter_MetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, RouterOptions{})
	serve(router, http.MethodGet, "/api/v1/weatherforecast")
	w := serve(router, http.MethodGet, "/metrics")
	if w.Code != http.StatusOK {
		t.Errorf("/metrics status = %d, want 200", w.Code)
	}
}

package http

import (
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"fuelmx/internal/middleware"
	"fuelmx/pkg/contracts"
	"fuelmx/pkg/contracts/domain"
)

// ResultsHandler serves the computed result set
type ResultsHandler struct {
	results *domain.ResultSet
	logger  *slog.Logger
	started time.Time
}

// NewResultsHandler creates a handler serving the given result set
func NewResultsHandler(results *domain.ResultSet, logger *slog.Logger) *ResultsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResultsHandler{
		results: results,
		logger:  logger.With(slog.String("handler", "results")),
		started: time.Now(),
	}
}

// Routes returns the results API routes
func (h *ResultsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/results", h.GetResults)
	r.Get("/results/{table}", h.GetTable)
	r.Get("/health", h.HealthCheck)

	return r
}

// GetResults handles GET /api/results
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.results)
}

// tableFor maps a table name to its slice of the result set
func (h *ResultsHandler) tableFor(name string) (interface{}, bool) {
	tables := map[string]interface{}{
		"stations_per_state":                h.results.StationsPerState,
		"stations_per_municipality":         h.results.StationsPerMunicipality,
		"top_municipalities":                h.results.TopMunicipalities,
		"product_availability":              h.results.Availability,
		"stations_per_municipality_average": h.results.StationsPerMunicipalityAverage,
		"national_average_prices":           h.results.NationalAveragePrices,
		"state_prices":                      h.results.StatePrices,
		"municipality_prices":               h.results.MunicipalityPrices,
		"top_municipality_prices":           h.results.TopMunicipalityPrices,
		"top_municipality_deviations":       h.results.TopMunicipalityDeviations,
		"volume_by_fuel":                    h.results.VolumeByFuel,
		"volume_by_state_fuel":              h.results.VolumeByStateFuel,
		"market_value":                      h.results.MarketValue,
		"volume_per_capita":                 h.results.VolumePerCapita,
		"volume_per_station":                h.results.VolumePerStation,
		"historical_volume":                 h.results.HistoricalVolume,
	}
	table, ok := tables[name]
	return table, ok
}

// tableNames lists the valid table names in sorted order
func (h *ResultsHandler) tableNames() []string {
	names := []string{
		"stations_per_state", "stations_per_municipality", "top_municipalities",
		"product_availability", "stations_per_municipality_average",
		"national_average_prices", "state_prices", "municipality_prices",
		"top_municipality_prices", "top_municipality_deviations",
		"volume_by_fuel", "volume_by_state_fuel", "market_value",
		"volume_per_capita", "volume_per_station", "historical_volume",
	}
	sort.Strings(names)
	return names
}

// GetTable handles GET /api/results/{table}
func (h *ResultsHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "table")
	table, ok := h.tableFor(name)
	if !ok {
		h.logger.WarnContext(r.Context(), "unknown result table requested",
			slog.String("table", name))
		writeProblem(w, r, http.StatusNotFound, "Result Table Not Found",
			"No result table named "+name+". See valid_tables.", map[string]interface{}{
				"valid_tables": h.tableNames(),
			})
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"table":          name,
		"generated_at":   h.results.GeneratedAt,
		"reference_year": h.results.ReferenceYear,
		"data":           table,
	})
}

// HealthCheck handles GET /api/health
func (h *ResultsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status":               "healthy",
		"version":              contracts.GetVersionInfo(),
		"uptime":               time.Since(h.started).String(),
		"results_generated_at": h.results.GeneratedAt,
		"reference_year":       h.results.ReferenceYear,
	})
}

// writeProblem writes an RFC 7807 problem response
func writeProblem(w http.ResponseWriter, r *http.Request, status int, title, detail string, extra map[string]interface{}) {
	body := map[string]interface{}{
		"type":     "/errors/" + http.StatusText(status),
		"title":    title,
		"status":   status,
		"detail":   detail,
		"trace_id": middleware.GetRequestID(r.Context()),
	}
	for k, v := range extra {
		body[k] = v
	}
	render.Status(r, status)
	render.JSON(w, r, body)
}

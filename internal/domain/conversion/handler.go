package conversion

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/synfhir/synfhir/internal/convert"
	"github.com/synfhir/synfhir/internal/fhir"
	"github.com/synfhir/synfhir/internal/synthea"
	"github.com/synfhir/synfhir/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/kinds", h.ListKinds)
	api.POST("/convert/:kind", h.Convert)
	api.POST("/revert/:kind", h.Revert)
	api.POST("/bundles", h.Bundle)
	api.POST("/bundles/extract", h.Extract)
	if h.svc.HasStore() {
		api.GET("/conversions", h.ListConversions)
		api.GET("/conversions/:id", h.GetConversion)
	}
}

type overridesRequest struct {
	Patient      string `json:"patient"`
	Encounter    string `json:"encounter"`
	Provider     string `json:"provider"`
	Organization string `json:"organization"`
}

type convertRequest struct {
	Record    map[string]string `json:"record"`
	Overrides overridesRequest  `json:"overrides"`
}

type convertResponse struct {
	Documents []fhir.Resource `json:"documents"`
	Warnings  int             `json:"warnings"`
}

type revertResponse struct {
	Records  []map[string]string `json:"records"`
	Warnings int                 `json:"warnings"`
}

type bundleRequest struct {
	Patient    map[string]string   `json:"patient"`
	Encounters []map[string]string `json:"encounters"`
	Conditions []map[string]string `json:"conditions"`
	Allergies  []map[string]string `json:"allergies"`
}

type extractResponse struct {
	Patients   []map[string]string `json:"patients"`
	Encounters []map[string]string `json:"encounters"`
	Conditions []map[string]string `json:"conditions"`
	Allergies  []map[string]string `json:"allergies"`
}

func (h *Handler) ListKinds(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"kinds": Kinds()})
}

func (h *Handler) Convert(c echo.Context) error {
	kind := c.Param("kind")
	if !KnownKind(kind) {
		return echo.NewHTTPError(http.StatusNotFound, "unknown record kind "+kind)
	}
	var req convertRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ov := convert.Overrides{
		Patient:      req.Overrides.Patient,
		Encounter:    req.Overrides.Encounter,
		Provider:     req.Overrides.Provider,
		Organization: req.Overrides.Organization,
	}
	docs, warnings, err := h.svc.Convert(c.Request().Context(), kind, req.Record, ov)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, convertResponse{Documents: docs, Warnings: warnings})
}

func (h *Handler) Revert(c echo.Context) error {
	kind := c.Param("kind")
	if !KnownKind(kind) {
		return echo.NewHTTPError(http.StatusNotFound, "unknown record kind "+kind)
	}
	var doc fhir.Resource
	if err := c.Bind(&doc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	records, warnings, err := h.svc.Revert(c.Request().Context(), kind, doc)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, revertResponse{Records: records, Warnings: warnings})
}

func (h *Handler) Bundle(c echo.Context) error {
	var req bundleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	bundle := h.svc.Bundle(
		synthea.FromMap[synthea.Patient](req.Patient),
		fromMaps[synthea.Encounter](req.Encounters),
		fromMaps[synthea.Condition](req.Conditions),
		fromMaps[synthea.Allergy](req.Allergies),
	)
	return c.JSON(http.StatusOK, bundle)
}

func (h *Handler) Extract(c echo.Context) error {
	var bundle fhir.Resource
	if err := c.Bind(&bundle); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	tables, err := h.svc.Extract(bundle)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, extractResponse{
		Patients:   toMaps(tables.Patients),
		Encounters: toMaps(tables.Encounters),
		Conditions: toMaps(tables.Conditions),
		Allergies:  toMaps(tables.Allergies),
	})
}

func (h *Handler) ListConversions(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListConversions(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetConversion(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	item, err := h.svc.GetConversion(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "conversion not found")
	}
	return c.JSON(http.StatusOK, item)
}

func fromMaps[T any](fields []map[string]string) []T {
	out := make([]T, len(fields))
	for i, f := range fields {
		out[i] = synthea.FromMap[T](f)
	}
	return out
}

func toMaps[T any](recs []T) []map[string]string {
	out := make([]map[string]string, len(recs))
	for i, rec := range recs {
		out[i] = synthea.ToMap(rec)
	}
	return out
}

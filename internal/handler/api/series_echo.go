package api

import (
	"time"

	models "BCBSeries/internal/domain/models"
	"BCBSeries/internal/service/metrics"
	"BCBSeries/internal/usecase"
	xhttp "BCBSeries/pkg/http"
	xlogger "BCBSeries/pkg/logger"
	"BCBSeries/pkg/util"

	"github.com/labstack/echo/v4"
)

// SeriesEchoHandler exposes the series operations over REST.
type SeriesEchoHandler struct {
	logger     *xlogger.Logger
	series     *usecase.SeriesUseCase
	catalog    *usecase.CatalogUseCase
	indicators *usecase.IndicatorsUseCase
	variation  *usecase.VariationUseCase
	compare    *usecase.CompareUseCase
}

func NewSeriesEchoHandler(
	logger *xlogger.Logger,
	series *usecase.SeriesUseCase,
	catalog *usecase.CatalogUseCase,
	indicators *usecase.IndicatorsUseCase,
	variation *usecase.VariationUseCase,
	compare *usecase.CompareUseCase,
) *SeriesEchoHandler {
	metrics.Register()
	return &SeriesEchoHandler{
		logger:     logger,
		series:     series,
		catalog:    catalog,
		indicators: indicators,
		variation:  variation,
		compare:    compare,
	}
}

func (h *SeriesEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/series/:code/values", h.Values)
	g.GET("/series/:code/last", h.Last)
	g.GET("/series/:code/metadata", h.Metadata)
	g.GET("/series/:code/variation", h.Variation)
	g.GET("/catalog", h.Catalog)
	g.GET("/catalog/search", h.Search)
	g.GET("/indicators", h.Indicators)
	g.GET("/compare", h.Compare)
}

func (h *SeriesEchoHandler) Values(c echo.Context) error {
	defer observe("values", time.Now())
	req := &models.SeriesValuesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.series.Values(c.Request().Context(), usecase.GetValuesParams{Code: req.Code, From: req.From, To: req.To})
	if err != nil {
		return h.fail(c, "values", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *SeriesEchoHandler) Last(c echo.Context) error {
	defer observe("last", time.Now())
	req := &models.SeriesLastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.series.Last(c.Request().Context(), req.Code, req.N)
	if err != nil {
		return h.fail(c, "last", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *SeriesEchoHandler) Metadata(c echo.Context) error {
	defer observe("metadata", time.Now())
	req := &models.SeriesCodeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.series.Metadata(c.Request().Context(), req.Code)
	if err != nil {
		return h.fail(c, "metadata", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *SeriesEchoHandler) Variation(c echo.Context) error {
	defer observe("variation", time.Now())
	req := &models.VariationRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.variation.Variation(c.Request().Context(), usecase.GetVariationParams{
		Code:    req.Code,
		From:    req.From,
		To:      req.To,
		Periods: req.Periods,
	})
	if err != nil {
		return h.fail(c, "variation", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *SeriesEchoHandler) Catalog(c echo.Context) error {
	req := &models.CatalogRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=3600")
	return xhttp.SuccessResponse(c, h.catalog.List(req.Category))
}

func (h *SeriesEchoHandler) Search(c echo.Context) error {
	req := &models.SearchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.catalog.Search(req.Term)
	if err != nil {
		return h.fail(c, "search", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *SeriesEchoHandler) Indicators(c echo.Context) error {
	defer observe("indicators", time.Now())
	return xhttp.SuccessResponse(c, h.indicators.Current(c.Request().Context()))
}

func (h *SeriesEchoHandler) Compare(c echo.Context) error {
	defer observe("compare", time.Now())
	req := &models.CompareRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	codes, err := util.ParseIntList(req.Codes)
	if err != nil {
		return h.fail(c, "compare", xhttp.BadRequestErrorf("codes: %v", err))
	}

	res, err := h.compare.Compare(c.Request().Context(), usecase.CompareParams{Codes: codes, From: req.From, To: req.To})
	if err != nil {
		return h.fail(c, "compare", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *SeriesEchoHandler) fail(c echo.Context, endpoint string, err error) error {
	appErr := toAppError(err)
	metrics.EndpointErrors.WithLabelValues(endpoint, appErr.Code).Inc()
	if appErr.Status >= 500 {
		h.logger.Error(endpoint+" usecase error",
			xlogger.String("code", appErr.Code),
			xlogger.String("path", c.Request().URL.String()),
			xlogger.Error(err),
		)
	} else {
		h.logger.Debug(endpoint+" rejected", xlogger.String("code", appErr.Code), xlogger.Error(err))
	}
	return xhttp.AppErrorResponse(c, appErr)
}

func observe(endpoint string, start time.Time) {
	metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

package httpapi

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/i474232898/city-weather/internal/errclass"
	"github.com/i474232898/city-weather/internal/interpret"
	"github.com/i474232898/city-weather/internal/openmeteo"
	"github.com/i474232898/city-weather/internal/selection"
	"github.com/i474232898/city-weather/internal/store"
	"github.com/i474232898/city-weather/internal/view"
	"github.com/i474232898/city-weather/internal/weather"
)

var validate = validator.New()

// Service is the subset of *weather.Service the handlers call.
type Service interface {
	ResolveCity(ctx context.Context, name string) (weather.ResolvedCity, error)
	CurrentConditions(ctx context.Context, lat, lon float64) (weather.Conditions, error)
	DetailedForecast(ctx context.Context, lat, lon float64, days int) (*openmeteo.ForecastResponse, error)
	DetailedAirQuality(ctx context.Context, lat, lon float64, days int) (*openmeteo.AirQualityResponse, error)
	Comprehensive(ctx context.Context, cityName string, forecastDays int) (weather.Comprehensive, error)
}

// Selection is satisfied by *selection.Cell.
type Selection interface {
	Get() (weather.ResolvedCity, bool)
	Search(ctx context.Context, term string) (weather.ResolvedCity, error)
}

// ConditionsReader is satisfied by *store.MemoryStore.
type ConditionsReader interface {
	Status() store.Status
}

// Deps are the collaborators behind the routes.
type Deps struct {
	Service    Service
	Selection  Selection
	Conditions ConditionsReader
	Logger     *zap.Logger
}

type handlers struct {
	Deps
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	h := handlers{deps}

	v1 := app.Group("/api/v1")

	v1.Get("/cities/search", h.searchCity)
	v1.Get("/weather/current", h.currentWeather)
	v1.Get("/weather/forecast", h.forecast)
	v1.Get("/air-quality/forecast", h.airQualityForecast)
	v1.Get("/weather/comprehensive", h.comprehensive)

	v1.Get("/selection", h.getSelection)
	v1.Put("/selection", h.putSelection)
	v1.Get("/selection/conditions", h.selectionConditions)
}

// searchQuery holds query parameters for the city search endpoint.
type searchQuery struct {
	Name string `query:"name" validate:"required"`
}

// unitsQuery selects display units.
type unitsQuery struct {
	Unit     string `query:"unit" validate:"omitempty,oneof=C F"`
	Pressure string `query:"pressure" validate:"omitempty,oneof=hPa mmHg inHg"`
}

// Latitude and longitude are pointers so a missing value fails "required"
// while 0 stays valid.
type currentQuery struct {
	Latitude  *float64 `query:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `query:"longitude" validate:"required,gte=-180,lte=180"`
	Unit      string   `query:"unit" validate:"omitempty,oneof=C F"`
	Pressure  string   `query:"pressure" validate:"omitempty,oneof=hPa mmHg inHg"`
}

type forecastQuery struct {
	Latitude  *float64 `query:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `query:"longitude" validate:"required,gte=-180,lte=180"`
	Days      int      `query:"days" validate:"omitempty,min=1,max=16"`
}

type airQualityQuery struct {
	Latitude  *float64 `query:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `query:"longitude" validate:"required,gte=-180,lte=180"`
	Days      int      `query:"days" validate:"omitempty,min=1,max=5"`
}

type comprehensiveQuery struct {
	City string `query:"city" validate:"required"`
	Days int    `query:"days" validate:"omitempty,min=1,max=16"`
	Unit string `query:"unit" validate:"omitempty,oneof=C F"`
}

func viewOptions(unit, pressure string) view.Options {
	opts := view.DefaultOptions()
	if unit != "" {
		opts.TemperatureUnit = interpret.TemperatureUnit(unit)
	}
	if pressure != "" {
		opts.PressureUnit = interpret.PressureUnit(pressure)
	}
	return opts
}

type selectionBody struct {
	Name string `json:"name" validate:"required"`
}

func (h handlers) searchCity(c *fiber.Ctx) error {
	var q searchQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	term := q.Name
	city, err := h.Service.ResolveCity(c.UserContext(), selection.NormalizeTerm(term))
	if err != nil {
		return h.upstreamError(c, &selection.SearchError{Term: term, Err: err})
	}
	return c.JSON(city)
}

func (h handlers) currentWeather(c *fiber.Ctx) error {
	var q currentQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	lat, lon := *q.Latitude, *q.Longitude
	conditions, err := h.Service.CurrentConditions(c.UserContext(), lat, lon)
	if err != nil {
		return h.upstreamError(c, err)
	}

	city := weather.ResolvedCity{Coordinates: weather.Coordinates{Latitude: lat, Longitude: lon}}
	return c.JSON(fiber.Map{
		"conditions": conditions,
		"view":       view.BuildCurrent(city, conditions, viewOptions(q.Unit, q.Pressure)),
	})
}

func (h handlers) forecast(c *fiber.Ctx) error {
	var q forecastQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	resp, err := h.Service.DetailedForecast(c.UserContext(), *q.Latitude, *q.Longitude, q.Days)
	if err != nil {
		return h.upstreamError(c, err)
	}
	return c.JSON(resp)
}

func (h handlers) airQualityForecast(c *fiber.Ctx) error {
	var q airQualityQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	resp, err := h.Service.DetailedAirQuality(c.UserContext(), *q.Latitude, *q.Longitude, q.Days)
	if err != nil {
		return h.upstreamError(c, err)
	}
	return c.JSON(resp)
}

func (h handlers) comprehensive(c *fiber.Ctx) error {
	var q comprehensiveQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	result, err := h.Service.Comprehensive(c.UserContext(), q.City, q.Days)
	if err != nil {
		return h.upstreamError(c, err)
	}
	return c.JSON(fiber.Map{
		"result": result,
		"view":   view.BuildForecast(result, viewOptions(q.Unit, "")),
	})
}

func (h handlers) getSelection(c *fiber.Ctx) error {
	city, ok := h.Selection.Get()
	if !ok {
		return c.JSON(fiber.Map{"city": nil})
	}
	return c.JSON(fiber.Map{"city": city})
}

func (h handlers) putSelection(c *fiber.Ctx) error {
	var body selectionBody
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	city, err := h.Selection.Search(c.UserContext(), body.Name)
	if err != nil {
		if errors.Is(err, selection.ErrSuperseded) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return h.upstreamError(c, err)
	}
	return c.JSON(fiber.Map{"city": city})
}

func (h handlers) selectionConditions(c *fiber.Ctx) error {
	var q unitsQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	status := h.Conditions.Status()
	resp := fiber.Map{"status": status}
	if status.Snapshot != nil {
		snap := status.Snapshot
		resp["view"] = view.BuildCurrent(snap.City, weather.Conditions{
			Weather:    snap.Weather,
			AirQuality: snap.AirQuality,
		}, viewOptions(q.Unit, q.Pressure))
	}
	return c.JSON(resp)
}

func bindQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// upstreamError maps err onto a status and user-facing message. A failed
// search keeps its own message, which names the searched term.
func (h handlers) upstreamError(c *fiber.Ctx, err error) error {
	class := errclass.Classify(err)

	msg := class.Message
	var searchErr *selection.SearchError
	if errors.As(err, &searchErr) && errors.Is(err, weather.ErrCityNotFound) {
		msg = searchErr.Error()
	}

	if class.Status >= fiber.StatusInternalServerError {
		h.Logger.Warn("upstream request failed",
			zap.String("path", c.Path()),
			zap.Int("status", class.Status),
			zap.Error(err))
	}
	return fiber.NewError(class.Status, msg)
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

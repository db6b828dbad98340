package http

import (
	"context"
	"net/http"

	"agu/internal/core/application/queries"
	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/model/load"

	"github.com/labstack/echo/v4"
)

func (s *Server) ScheduleLoad(c echo.Context) error {
	var req LoadRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	date, ok := parseDate(req.Date)
	if !ok {
		return badRequest(c, "date must be formatted as YYYY-MM-DD")
	}
	res, err := s.svc.Loads.ScheduleLoad(c.Request().Context(), req.creation(date))
	return respond(c, res, err, http.StatusCreated, func(l *load.ScheduledLoad) any { return loadFromDomain(l) })
}

// GetLoads returns the loads of one day (date) or of an inclusive range (from, to).
// Without parameters it returns today's loads.
func (s *Server) GetLoads(c echo.Context) error {
	ctx := c.Request().Context()

	from, to := c.QueryParam("from"), c.QueryParam("to")
	if from != "" || to != "" {
		start, okFrom := parseDate(from)
		end, okTo := parseDate(to)
		if !okFrom || !okTo {
			return badRequest(c, "from and to must both be formatted as YYYY-MM-DD")
		}
		if end.Before(start) {
			return badRequest(c, "to must not be before from")
		}
		loads, err := s.svc.Loads.GetLoadsBetween(ctx, start, end)
		return s.writeLoads(c, loads, err)
	}

	day := load.Day(s.clock())
	if raw := c.QueryParam("date"); raw != "" {
		parsed, ok := parseDate(raw)
		if !ok {
			return badRequest(c, "date must be formatted as YYYY-MM-DD")
		}
		day = parsed
	}
	loads, err := s.svc.Loads.GetDailyLoads(ctx, day)
	return s.writeLoads(c, loads, err)
}

func (s *Server) writeLoads(c echo.Context, loads []*load.ScheduledLoad, err error) error {
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(loads, loadFromDomain))
}

// GetPendingLoads lists the undelivered loads from the from parameter on, today by default.
func (s *Server) GetPendingLoads(c echo.Context) error {
	from := s.clock()
	if raw := c.QueryParam("from"); raw != "" {
		parsed, ok := parseDate(raw)
		if !ok {
			return badRequest(c, "from must be formatted as YYYY-MM-DD")
		}
		from = parsed
	}
	query, err := queries.NewGetPendingLoadsQuery(from)
	if err != nil {
		return badRequest(c, err.Error())
	}
	pending, err := s.svc.PendingLoads.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(pending, pendingLoadFromQuery))
}

func (s *Server) GetLoad(c echo.Context) error {
	id, ok := pathUUID(c, "id")
	if !ok {
		return notFound(c, "load")
	}
	res, err := s.svc.Loads.GetLoadByID(c.Request().Context(), id)
	return respond(c, res, err, http.StatusOK, func(l *load.ScheduledLoad) any { return loadFromDomain(l) })
}

func (s *Server) ConfirmLoad(c echo.Context) error {
	return s.mutateLoad(c, s.svc.Loads.ConfirmLoad)
}

func (s *Server) RemoveLoad(c echo.Context) error {
	return s.mutateLoad(c, s.svc.Loads.RemoveLoad)
}

// ChangeLoadDay answers 409 when the load is missing or the target slot is taken,
// since the service does not tell the two apart.
func (s *Server) ChangeLoadDay(c echo.Context) error {
	var req DateRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	date, ok := parseDate(req.Date)
	if !ok {
		return badRequest(c, "date must be formatted as YYYY-MM-DD")
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return notFound(c, "load")
	}

	changed, err := s.svc.Loads.ChangeLoadDay(c.Request().Context(), id, date)
	if err != nil {
		return err
	}
	if !changed {
		return writeProblem(c, Problem{
			Type:   "urn:agu:problem:load-day-not-changed",
			Title:  http.StatusText(http.StatusConflict),
			Status: http.StatusConflict,
			Detail: "load not found or slot already taken",
		})
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) mutateLoad(c echo.Context, op func(context.Context, kernel.UUID) (bool, error)) error {
	id, ok := pathUUID(c, "id")
	if !ok {
		return notFound(c, "load")
	}
	done, err := op(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !done {
		return notFound(c, "load")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) RegisterDelivery(c echo.Context) error {
	id, ok := pathUUID(c, "id")
	if !ok {
		return notFound(c, "load")
	}
	var req DeliveryRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	companyID, err := kernel.UUIDFromString(req.TransportCompanyID)
	if err != nil {
		return badRequest(c, "transportCompanyId must be a UUID")
	}
	unload := s.clock()
	if req.UnloadTimestamp != nil {
		unload = req.UnloadTimestamp.UTC()
	}

	res, err := s.svc.Loads.RegisterDelivery(c.Request().Context(), id, companyID, unload)
	return respond(c, res, err, http.StatusOK, func(l *load.ScheduledLoad) any { return loadFromDomain(l) })
}

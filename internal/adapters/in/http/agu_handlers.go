package http

import (
	"net/http"
	"strconv"

	"agu/internal/core/application/services"
	"agu/internal/core/domain/model/agu"
	"agu/internal/core/domain/model/measure"

	"github.com/labstack/echo/v4"
)

const (
	defaultMeasureDays    = 7
	defaultPredictionDays = 3
)

func (s *Server) CreateAGU(c echo.Context) error {
	var req CreateAGURequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	res, err := s.svc.AGUs.CreateAGU(c.Request().Context(), req.creation())
	return respond(c, res, err, http.StatusCreated, func(a *agu.AGU) any { return aguFromDomain(a) })
}

func (s *Server) GetAGUs(c echo.Context) error {
	infos, err := s.svc.AGUs.GetAGUsBasicInfo(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(infos, basicInfoFromQuery))
}

func (s *Server) GetAGU(c echo.Context) error {
	res, err := s.svc.AGUs.GetAGUByCUI(c.Request().Context(), c.Param("cui"))
	return respond(c, res, err, http.StatusOK, func(d services.AGUDetails) any { return aguDetailsFromDomain(d) })
}

func (s *Server) DeleteAGU(c echo.Context) error {
	res, err := s.svc.AGUs.DeleteAGU(c.Request().Context(), c.Param("cui"))
	return respond(c, res, err, http.StatusNoContent, nil)
}

func (s *Server) UpdateFavourite(c echo.Context) error {
	var req FlagRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	res, err := s.svc.AGUs.UpdateFavouriteState(c.Request().Context(), c.Param("cui"), req.Value)
	return respond(c, res, err, http.StatusNoContent, nil)
}

func (s *Server) UpdateActive(c echo.Context) error {
	var req FlagRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	res, err := s.svc.AGUs.UpdateActiveState(c.Request().Context(), c.Param("cui"), req.Value)
	return respond(c, res, err, http.StatusNoContent, nil)
}

func (s *Server) UpdateNotes(c echo.Context) error {
	var req NotesRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	res, err := s.svc.AGUs.UpdateNotes(c.Request().Context(), c.Param("cui"), req.Notes)
	return respond(c, res, err, http.StatusNoContent, nil)
}

func (s *Server) UpdateGasLevels(c echo.Context) error {
	var req Levels
	if err := c.Bind(&req); err != nil {
		return err
	}
	res, err := s.svc.AGUs.UpdateGasLevels(c.Request().Context(), c.Param("cui"), req.Min, req.Max, req.Critical)
	return respond(c, res, err, http.StatusNoContent, nil)
}

func (s *Server) GetLatestLevels(c echo.Context) error {
	res, err := s.svc.AGUs.GetLatestLevels(c.Request().Context(), c.Param("cui"))
	return respond(c, res, err, http.StatusOK, func(ms []measure.GasMeasure) any {
		return mapSlice(ms, gasMeasureFromDomain)
	})
}

func (s *Server) GetGasMeasures(c echo.Context) error {
	days, ok := parseDays(c.QueryParam("days"), defaultMeasureDays)
	if !ok {
		return badRequest(c, "days must be an integer")
	}
	res, err := s.svc.AGUs.GetGasMeasures(c.Request().Context(), c.Param("cui"), days)
	return respond(c, res, err, http.StatusOK, func(ms []measure.GasMeasure) any {
		return mapSlice(ms, gasMeasureFromDomain)
	})
}

func (s *Server) GetTemperatureMeasures(c echo.Context) error {
	days, ok := parseDays(c.QueryParam("days"), defaultMeasureDays)
	if !ok {
		return badRequest(c, "days must be an integer")
	}
	res, err := s.svc.AGUs.GetTemperatureMeasures(c.Request().Context(), c.Param("cui"), days)
	return respond(c, res, err, http.StatusOK, func(ms []measure.TemperatureMeasure) any {
		return mapSlice(ms, temperatureMeasureFromDomain)
	})
}

func (s *Server) PredictConsumption(c echo.Context) error {
	days, ok := parseDays(c.QueryParam("days"), defaultPredictionDays)
	if !ok {
		return badRequest(c, "days must be an integer")
	}
	res, err := s.svc.Predictions.PredictConsumption(c.Request().Context(), c.Param("cui"), days)
	return respond(c, res, err, http.StatusOK, func(p services.Prediction) any { return predictionFromDomain(p) })
}

func (s *Server) GetTanks(c echo.Context) error {
	res, err := s.svc.Tanks.GetTanks(c.Request().Context(), c.Param("cui"))
	return respond(c, res, err, http.StatusOK, func(ts []*agu.Tank) any { return mapSlice(ts, tankFromDomain) })
}

func (s *Server) AddTank(c echo.Context) error {
	var req TankRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	res, err := s.svc.Tanks.AddTank(c.Request().Context(), c.Param("cui"), req.creation())
	return respond(c, res, err, http.StatusCreated, func(t *agu.Tank) any { return tankFromDomain(t) })
}

func (s *Server) UpdateTank(c echo.Context) error {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		return notFound(c, "tank")
	}
	var req TankRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	res, err := s.svc.Tanks.UpdateTank(c.Request().Context(), c.Param("cui"), number, req.update())
	return respond(c, res, err, http.StatusOK, func(t *agu.Tank) any { return tankFromDomain(t) })
}

func (s *Server) DeleteTank(c echo.Context) error {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		return notFound(c, "tank")
	}
	res, err := s.svc.Tanks.DeleteTank(c.Request().Context(), c.Param("cui"), number)
	return respond(c, res, err, http.StatusNoContent, nil)
}

func (s *Server) GetContacts(c echo.Context) error {
	res, err := s.svc.Contacts.GetContacts(c.Request().Context(), c.Param("cui"))
	return respond(c, res, err, http.StatusOK, func(cs []*agu.Contact) any { return mapSlice(cs, contactFromDomain) })
}

func (s *Server) AddContact(c echo.Context) error {
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	res, err := s.svc.Contacts.AddContact(c.Request().Context(), c.Param("cui"), req.creation())
	return respond(c, res, err, http.StatusCreated, func(ct *agu.Contact) any { return contactFromDomain(ct) })
}

func (s *Server) DeleteContact(c echo.Context) error {
	id, ok := pathUUID(c, "id")
	if !ok {
		return notFound(c, "contact")
	}
	res, err := s.svc.Contacts.DeleteContact(c.Request().Context(), c.Param("cui"), id)
	return respond(c, res, err, http.StatusNoContent, nil)
}

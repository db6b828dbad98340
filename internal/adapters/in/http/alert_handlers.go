package http

import (
	"net/http"

	"agu/internal/core/domain/model/alert"

	"github.com/labstack/echo/v4"
)

func (s *Server) CreateAlert(c echo.Context) error {
	var req AlertRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	res, err := s.svc.Alerts.CreateAlert(c.Request().Context(), c.Param("cui"), req.Title, req.Message)
	return respond(c, res, err, http.StatusCreated, func(a *alert.Alert) any { return alertFromDomain(a) })
}

func (s *Server) GetAlerts(c echo.Context) error {
	alerts, err := s.svc.Alerts.GetAlerts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(alerts, alertFromDomain))
}

func (s *Server) GetAlert(c echo.Context) error {
	id, ok := pathUUID(c, "id")
	if !ok {
		return notFound(c, "alert")
	}
	res, err := s.svc.Alerts.GetAlertByID(c.Request().Context(), id)
	return respond(c, res, err, http.StatusOK, func(a *alert.Alert) any { return alertFromDomain(a) })
}

// ResolveAlert marks the alert resolved and answers with the alerts still open.
func (s *Server) ResolveAlert(c echo.Context) error {
	id, ok := pathUUID(c, "id")
	if !ok {
		return notFound(c, "alert")
	}
	res, err := s.svc.Alerts.UpdateAlertStatus(c.Request().Context(), id)
	return respond(c, res, err, http.StatusOK, func(as []*alert.Alert) any { return mapSlice(as, alertFromDomain) })
}

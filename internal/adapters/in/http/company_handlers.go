package http

import (
	"net/http"

	"agu/internal/core/domain/model/company"

	"github.com/labstack/echo/v4"
)

func (s *Server) CreateDNO(c echo.Context) error {
	var req NameRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	res, err := s.svc.DNOs.CreateDNO(c.Request().Context(), req.Name, req.Region)
	return respond(c, res, err, http.StatusCreated, func(d *company.DNO) any { return dnoFromDomain(d) })
}

// GetDNOs lists every DNO, or looks one up when the name parameter is set.
func (s *Server) GetDNOs(c echo.Context) error {
	ctx := c.Request().Context()
	if name := c.QueryParam("name"); name != "" {
		res, err := s.svc.DNOs.GetDNOByName(ctx, name)
		return respond(c, res, err, http.StatusOK, func(d *company.DNO) any { return dnoFromDomain(d) })
	}

	dnos, err := s.svc.DNOs.GetAll(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(dnos, dnoFromDomain))
}

func (s *Server) GetDNO(c echo.Context) error {
	id, ok := pathUUID(c, "id")
	if !ok {
		return notFound(c, "dno")
	}
	res, err := s.svc.DNOs.GetDNOByID(c.Request().Context(), id)
	return respond(c, res, err, http.StatusOK, func(d *company.DNO) any { return dnoFromDomain(d) })
}

func (s *Server) DeleteDNO(c echo.Context) error {
	id, ok := pathUUID(c, "id")
	if !ok {
		return notFound(c, "dno")
	}
	res, err := s.svc.DNOs.DeleteDNO(c.Request().Context(), id)
	return respond(c, res, err, http.StatusNoContent, nil)
}

func (s *Server) CreateTransportCompany(c echo.Context) error {
	var req NameRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	res, err := s.svc.TransportCompanies.CreateTransportCompany(c.Request().Context(), req.Name)
	return respond(c, res, err, http.StatusCreated, func(tc *company.TransportCompany) any {
		return transportCompanyFromDomain(tc)
	})
}

func (s *Server) GetTransportCompanies(c echo.Context) error {
	companies, err := s.svc.TransportCompanies.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(companies, transportCompanyFromDomain))
}

func (s *Server) DeleteTransportCompany(c echo.Context) error {
	id, ok := pathUUID(c, "id")
	if !ok {
		return notFound(c, "transport-company")
	}
	res, err := s.svc.TransportCompanies.DeleteTransportCompany(c.Request().Context(), id)
	return respond(c, res, err, http.StatusNoContent, nil)
}

func (s *Server) GetAGUTransportCompanies(c echo.Context) error {
	res, err := s.svc.TransportCompanies.GetByAGU(c.Request().Context(), c.Param("cui"))
	return respond(c, res, err, http.StatusOK, func(tcs []*company.TransportCompany) any {
		return mapSlice(tcs, transportCompanyFromDomain)
	})
}

func (s *Server) AddTransportCompanyToAGU(c echo.Context) error {
	id, ok := pathUUID(c, "id")
	if !ok {
		return notFound(c, "transport-company")
	}
	res, err := s.svc.TransportCompanies.AddToAGU(c.Request().Context(), c.Param("cui"), id)
	return respond(c, res, err, http.StatusNoContent, nil)
}

func (s *Server) RemoveTransportCompanyFromAGU(c echo.Context) error {
	id, ok := pathUUID(c, "id")
	if !ok {
		return notFound(c, "transport-company")
	}
	res, err := s.svc.TransportCompanies.RemoveFromAGU(c.Request().Context(), c.Param("cui"), id)
	return respond(c, res, err, http.StatusNoContent, nil)
}

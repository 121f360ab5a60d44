package employee

import (
	"hotel/infras/otel"
	"hotel/internal/domains/employee/model/dto"
	"hotel/internal/domains/employee/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Employee
	otel    otel.Otel
}

func New(service service.Employee, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/empleado", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetEmployees)
		routerGroup.Post("/", handler.CreateEmployee)
		routerGroup.Put("/", handler.UpdateEmployee)
		routerGroup.Get("/{id}", handler.GetEmployeeByID)
		routerGroup.Delete("/{id}", handler.DeleteEmployee)
	})

	router.Get("/empleados", handler.GetEmployees)
}

// GetEmployees lists every employee.
// @Summary List employees
// @Tags Employee
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Envelope[[]dto.EmployeeResponse]
// @Failure 404 {object} response.Envelope[[]dto.EmployeeResponse] "No employees"
// @Failure 500 {object} response.Envelope[any]
// @Router /empleado [get]
// @Router /empleados [get]
func (handler *Handler) GetEmployees(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEmployees")
	defer scope.End()

	params := gDto.QueryParams{}
	params.FromRequest(r, false)

	employees, err := handler.service.GetAll(ctx, params)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get employees")

		response.WithError(w, err)

		return
	}

	if len(employees) == 0 {
		response.WithEmpty(w, http.StatusNotFound, []dto.EmployeeResponse{}, "no employees found")

		return
	}

	response.WithJSON(w, http.StatusOK, employees)
}

// GetEmployeeByID returns one employee.
// @Summary Get an employee
// @Tags Employee
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} response.Envelope[dto.EmployeeResponse]
// @Failure 400 {object} response.Envelope[any]
// @Failure 404 {object} response.Envelope[any]
// @Router /empleado/{id} [get]
func (handler *Handler) GetEmployeeByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEmployeeByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	employee, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to get employee")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, employee)
}

// CreateEmployee stores a new employee. The body must not carry an id.
// @Summary Create an employee
// @Tags Employee
// @Accept json
// @Produce json
// @Param request body dto.EmployeeRequest true "Employee"
// @Success 200 {object} response.Envelope[dto.EmployeeResponse]
// @Failure 400 {object} response.Envelope[any]
// @Router /empleado [post]
// @Security BearerAuth
func (handler *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateEmployee")
	defer scope.End()

	req := dto.EmployeeRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	employee, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create employee")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Employee created")

	response.WithJSON(w, http.StatusOK, employee, "employee created")
}

// UpdateEmployee replaces a stored employee. The body must carry the id.
// @Summary Update an employee
// @Tags Employee
// @Accept json
// @Produce json
// @Param request body dto.EmployeeRequest true "Employee"
// @Success 200 {object} response.Envelope[dto.EmployeeResponse]
// @Failure 400 {object} response.Envelope[any]
// @Router /empleado [put]
// @Security BearerAuth
func (handler *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateEmployee")
	defer scope.End()

	req := dto.EmployeeRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	employee, err := handler.service.Update(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update employee")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Employee updated")

	response.WithJSON(w, http.StatusOK, employee, "employee updated")
}

// DeleteEmployee removes an employee not assigned to any service.
// @Summary Delete an employee
// @Tags Employee
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} response.Envelope[any]
// @Failure 400 {object} response.Envelope[any] "Unknown employee or employee assigned to a service"
// @Router /empleado/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteEmployee")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to delete employee")

		response.WithDeleteError(w, err)

		return
	}

	scope.AddEvent("Employee deleted")

	response.WithMessage(w, http.StatusOK, "employee deleted")
}

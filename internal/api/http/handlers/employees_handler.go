package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/dto"
	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/service"
)

const employeeResource = "employee"

// EmployeesHandler exposes employee CRUD.
type EmployeesHandler struct {
	employees *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employees *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{employees: employees}
}

// List handles GET /employees?department_id=&search=.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	filter := domain.EmployeeFilter{Search: c.Query("search")}
	if raw := c.Query("department_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(dto.Data([]dto.EmployeeResponse{}))
		}
		filter.DepartmentID = id
	}

	emps, err := h.employees.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.Data(dto.NewEmployeeResponses(emps)))
}

// Create handles POST /employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	emp, err := h.employees.Create(c.UserContext(), req.Input())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.Data(dto.NewEmployeeResponse(*emp)))
}

// Get handles GET /employees/:id.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, employeeResource)
	if err != nil {
		return err
	}
	emp, err := h.employees.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.Data(dto.NewEmployeeResponse(*emp)))
}

// Update handles PUT /employees/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, employeeResource)
	if err != nil {
		return err
	}
	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	emp, err := h.employees.Update(c.UserContext(), id, req.Input())
	if err != nil {
		return err
	}
	return c.JSON(dto.Data(dto.NewEmployeeResponse(*emp)))
}

// Delete handles DELETE /employees/:id.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, employeeResource)
	if err != nil {
		return err
	}
	if err := h.employees.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

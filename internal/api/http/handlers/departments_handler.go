package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/dto"
	"github.com/spec-kit/employee-service/internal/service"
)

const departmentResource = "department"

// DepartmentsHandler exposes department CRUD.
type DepartmentsHandler struct {
	departments *service.DepartmentService
}

// NewDepartmentsHandler constructs handler.
func NewDepartmentsHandler(departments *service.DepartmentService) *DepartmentsHandler {
	return &DepartmentsHandler{departments: departments}
}

// List handles GET /departments.
func (h *DepartmentsHandler) List(c *fiber.Ctx) error {
	depts, err := h.departments.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.Data(dto.NewDepartmentResponses(depts)))
}

// Create handles POST /departments.
func (h *DepartmentsHandler) Create(c *fiber.Ctx) error {
	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	dept, err := h.departments.Create(c.UserContext(), service.DepartmentInput{Name: req.Name})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.Data(dto.NewDepartmentResponse(*dept)))
}

// Get handles GET /departments/:id.
func (h *DepartmentsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, departmentResource)
	if err != nil {
		return err
	}
	dept, err := h.departments.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.Data(dto.NewDepartmentResponse(*dept)))
}

// Update handles PUT /departments/:id.
func (h *DepartmentsHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, departmentResource)
	if err != nil {
		return err
	}
	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	dept, err := h.departments.Update(c.UserContext(), id, service.DepartmentInput{Name: req.Name})
	if err != nil {
		return err
	}
	return c.JSON(dto.Data(dto.NewDepartmentResponse(*dept)))
}

// Delete handles DELETE /departments/:id.
func (h *DepartmentsHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, departmentResource)
	if err != nil {
		return err
	}
	if err := h.departments.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

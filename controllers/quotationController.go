package controllers

import (
	"buildflow-backend/database"
	"buildflow-backend/middlewares"
	"buildflow-backend/services"

	"github.com/gofiber/fiber/v2"
)

// POST /api/quotation
func CreateQuotation(c *fiber.Ctx) error {
	var req services.CreateQuotationRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}
	q, err := services.NewQuotationService(database.DB).Create(req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(q)
}

// GET /api/quotations
func GetQuotations(c *fiber.Ctx) error {
	quotations, err := services.NewQuotationService(database.DB).List()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"quotations": quotations, "message": "success"})
}

// GET /api/quotation/:id
func GetQuotation(c *fiber.Ctx) error {
	q, err := services.NewQuotationService(database.DB).Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(q)
}

// PUT /api/quotation/:id
func UpdateQuotation(c *fiber.Ctx) error {
	var req services.UpdateQuotationRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}
	q, err := services.NewQuotationService(database.DB).Update(c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(q)
}

// DELETE /api/quotation/:id
func DeleteQuotation(c *fiber.Ctx) error {
	if err := services.NewQuotationService(database.DB).Delete(c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "quotation deleted"})
}

// PUT /api/quotation/:id/approve
func ApproveQuotation(c *fiber.Ctx) error {
	q, err := services.NewQuotationService(database.DB).Approve(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(q)
}

type RejectQuotationDTO struct {
	Reason string `json:"reason" validate:"required,min=1"`
}

// PUT /api/quotation/:id/reject
func RejectQuotation(c *fiber.Ctx) error {
	var in RejectQuotationDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	q, err := services.NewQuotationService(database.DB).Reject(c.Params("id"), in.Reason)
	if err != nil {
		return err
	}
	return c.JSON(q)
}

// POST /api/quotation/:id/convert
func ConvertQuotation(c *fiber.Ctx) error {
	var req services.ConvertQuotationRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}
	lpo, err := services.NewLPOService(database.DB).CreateFromQuotation(c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(lpo)
}

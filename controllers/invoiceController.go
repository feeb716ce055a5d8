package controllers

import (
	"buildflow-backend/database"
	"buildflow-backend/middlewares"
	"buildflow-backend/services"

	"github.com/gofiber/fiber/v2"
)

// POST /api/lpo/:id/invoice
func CreateInvoice(c *fiber.Ctx) error {
	var req services.CreateInvoiceRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}
	inv, err := services.NewInvoiceService(database.DB).CreateFromLPO(c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// GET /api/invoices
func GetInvoices(c *fiber.Ctx) error {
	invoices, err := services.NewInvoiceService(database.DB).List()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"invoices": invoices, "message": "success"})
}

// GET /api/invoice/:id
// Returns the populated document graph (LPO + quotation resolved) for
// read-only consumers such as the PDF renderer.
func GetInvoice(c *fiber.Ctx) error {
	inv, err := services.NewInvoiceService(database.DB).Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(inv)
}

// DELETE /api/invoice/:id
func DeleteInvoice(c *fiber.Ctx) error {
	if err := services.NewInvoiceService(database.DB).Delete(c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "invoice deleted"})
}

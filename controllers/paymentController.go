package controllers

import (
	"buildflow-backend/database"
	"buildflow-backend/middlewares"
	"buildflow-backend/services"

	"github.com/gofiber/fiber/v2"
)

// POST /api/invoice/:id/payments
func RecordPayment(c *fiber.Ctx) error {
	var req services.RecordPaymentRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}
	payment, err := services.NewPaymentService(database.DB).Record(c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

// GET /api/invoice/:id/payments
func ListPayments(c *fiber.Ctx) error {
	payments, err := services.NewPaymentService(database.DB).ListForInvoice(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"payments": payments, "message": "success"})
}

// PUT /api/payment/:id
func UpdatePayment(c *fiber.Ctx) error {
	var req services.UpdatePaymentRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}
	payment, err := services.NewPaymentService(database.DB).Update(c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(payment)
}

// DELETE /api/payment/:id
func DeletePayment(c *fiber.Ctx) error {
	if err := services.NewPaymentService(database.DB).Delete(c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "payment reversed"})
}

package controllers

import (
	"buildflow-backend/database"
	"buildflow-backend/middlewares"
	"buildflow-backend/services"

	"github.com/gofiber/fiber/v2"
)

// POST /api/lpo/:id/delivery-note
func CreateDeliveryNote(c *fiber.Ctx) error {
	var req services.CreateDeliveryRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}
	dn, err := services.NewDeliveryService(database.DB).CreateFromLPO(c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dn)
}

// GET /api/delivery-notes
func GetDeliveryNotes(c *fiber.Ctx) error {
	notes, err := services.NewDeliveryService(database.DB).List()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"delivery_notes": notes, "message": "success"})
}

// GET /api/delivery-note/:id
func GetDeliveryNote(c *fiber.Ctx) error {
	dn, err := services.NewDeliveryService(database.DB).Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dn)
}

// PUT /api/delivery-note/:id
func UpdateDeliveryNote(c *fiber.Ctx) error {
	var req services.UpdateDeliveryRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}
	dn, err := services.NewDeliveryService(database.DB).Update(c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(dn)
}

// DELETE /api/delivery-note/:id
func DeleteDeliveryNote(c *fiber.Ctx) error {
	if err := services.NewDeliveryService(database.DB).Delete(c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "delivery note deleted"})
}

// PUT /api/delivery-note/:id/dispatch
func DispatchDeliveryNote(c *fiber.Ctx) error {
	dn, err := services.NewDeliveryService(database.DB).Dispatch(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dn)
}

// PUT /api/delivery-note/:id/deliver
func MarkDeliveryNoteDelivered(c *fiber.Ctx) error {
	var req services.MarkDeliveredRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}
	dn, err := services.NewDeliveryService(database.DB).MarkDelivered(c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(dn)
}

// PUT /api/delivery-note/:id/cancel
func CancelDeliveryNote(c *fiber.Ctx) error {
	dn, err := services.NewDeliveryService(database.DB).Cancel(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dn)
}

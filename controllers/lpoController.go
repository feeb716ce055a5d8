package controllers

import (
	"buildflow-backend/database"
	"buildflow-backend/middlewares"
	"buildflow-backend/models"
	"buildflow-backend/services"

	"github.com/gofiber/fiber/v2"
)

// POST /api/lpo
func CreateLPO(c *fiber.Ctx) error {
	var req services.CreateLPORequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}
	lpo, err := services.NewLPOService(database.DB).Create(req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(lpo)
}

// GET /api/lpos
func GetLPOs(c *fiber.Ctx) error {
	lpos, err := services.NewLPOService(database.DB).List()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"lpos": lpos, "message": "success"})
}

// GET /api/lpo/:id
func GetLPO(c *fiber.Ctx) error {
	lpo, err := services.NewLPOService(database.DB).Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(lpo)
}

// PUT /api/lpo/:id
func UpdateLPO(c *fiber.Ctx) error {
	var req services.UpdateLPORequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}
	lpo, err := services.NewLPOService(database.DB).Update(c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(lpo)
}

// DELETE /api/lpo/:id
func DeleteLPO(c *fiber.Ctx) error {
	if err := services.NewLPOService(database.DB).Delete(c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "LPO deleted"})
}

type SetLPOStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=received processing fulfilled cancelled"`
}

// PUT /api/lpo/:id/status (administrative override, bypasses the automatic
// progression)
func SetLPOStatus(c *fiber.Ctx) error {
	var in SetLPOStatusDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	lpo, err := services.NewLPOService(database.DB).SetStatus(c.Params("id"), models.LPOStatus(in.Status))
	if err != nil {
		return err
	}
	return c.JSON(lpo)
}

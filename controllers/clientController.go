package controllers

import (
	"errors"
	"time"

	"buildflow-backend/database"
	"buildflow-backend/middlewares"
	"buildflow-backend/models"
	"buildflow-backend/services"
	"buildflow-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ClientCreateDTO struct {
	Name                 string  `json:"name" validate:"required,min=1"`
	Address              string  `json:"address" validate:"omitempty"`
	ContactPerson        string  `json:"contact_person" validate:"omitempty"`
	Phone                string  `json:"phone" validate:"omitempty"`
	Email                string  `json:"email" validate:"omitempty,email"`
	DueDateDays          int     `json:"due_date_days" validate:"omitempty,gte=0"`
	EarlyDiscountDays    int     `json:"early_discount_days" validate:"omitempty,gte=0"`
	EarlyDiscountPercent float64 `json:"early_discount_percent" validate:"omitempty,gte=0,lte=100"`
	VATPin               string  `json:"vat_pin" validate:"omitempty"`
	TaxExempt            bool    `json:"tax_exempt"`
}

type ClientUpdateDTO struct {
	Name                 *string  `json:"name" validate:"omitempty,min=1"`
	Address              *string  `json:"address" validate:"omitempty"`
	ContactPerson        *string  `json:"contact_person" validate:"omitempty"`
	Phone                *string  `json:"phone" validate:"omitempty"`
	Email                *string  `json:"email" validate:"omitempty,email"`
	DueDateDays          *int     `json:"due_date_days" validate:"omitempty,gte=0"`
	EarlyDiscountDays    *int     `json:"early_discount_days" validate:"omitempty,gte=0"`
	EarlyDiscountPercent *float64 `json:"early_discount_percent" validate:"omitempty,gte=0,lte=100"`
	VATPin               *string  `json:"vat_pin" validate:"omitempty"`
	TaxExempt            *bool    `json:"tax_exempt"`
	Status               *string  `json:"status" validate:"omitempty,oneof=active inactive"`
}

// POST /api/client
func CreateClient(c *fiber.Ctx) error {
	var in ClientCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	number, err := services.NextClientNumber(database.DB, time.Now())
	if err != nil {
		return err
	}

	dueDays := in.DueDateDays
	if dueDays == 0 {
		dueDays = 30
	}

	client := models.Client{
		ClientNumber:         number,
		Name:                 in.Name,
		Address:              in.Address,
		ContactPerson:        in.ContactPerson,
		Phone:                in.Phone,
		Email:                in.Email,
		Status:               models.ClientActive,
		DueDateDays:          dueDays,
		EarlyDiscountDays:    in.EarlyDiscountDays,
		EarlyDiscountPercent: in.EarlyDiscountPercent,
		VATPin:               in.VATPin,
		TaxExempt:            in.TaxExempt,
	}

	if err := database.DB.Create(&client).Error; err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// GET /api/clients
func GetClients(c *fiber.Ctx) error {
	var clients []models.Client
	if err := database.DB.Order("created_at DESC").Find(&clients).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"clients": clients, "message": "success"})
}

// GET /api/client/:id
func GetClient(c *fiber.Ctx) error {
	var client models.Client
	if err := database.DB.First(&client, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "client not found")
		}
		return err
	}
	return c.JSON(client)
}

// PUT /api/client/:id
func UpdateClient(c *fiber.Ctx) error {
	var in ClientUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	res := database.DB.Model(&models.Client{}).Where("id = ?", c.Params("id")).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "client not found")
	}

	var client models.Client
	if err := database.DB.First(&client, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	return c.JSON(client)
}

// DELETE /api/client/:id
func DeleteClient(c *fiber.Ctx) error {
	res := database.DB.Delete(&models.Client{}, "id = ?", c.Params("id"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "client not found")
	}
	return c.JSON(fiber.Map{"message": "client deleted"})
}

package controllers

import (
	"errors"
	"fmt"

	"buildflow-backend/database"
	"buildflow-backend/middlewares"
	"buildflow-backend/models"
	"buildflow-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ItemCreateDTO struct {
	Description string  `json:"description" validate:"required,min=1"`
	Category    string  `json:"category" validate:"required,oneof=transport equipment labour auxiliaries"`
	Units       string  `json:"units" validate:"omitempty"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
	IsParent    bool    `json:"is_parent"`
	ParentNo    string  `json:"parent_no" validate:"omitempty"`
}

type ItemUpdateDTO struct {
	Description *string  `json:"description" validate:"omitempty,min=1"`
	Category    *string  `json:"category" validate:"omitempty,oneof=transport equipment labour auxiliaries"`
	Units       *string  `json:"units" validate:"omitempty"`
	UnitPrice   *float64 `json:"unit_price" validate:"omitempty,gte=0"`
	IsParent    *bool    `json:"is_parent"`
	ParentNo    *string  `json:"parent_no" validate:"omitempty"`
}

// POST /api/item (batch create)
func CreateItems(c *fiber.Ctx) error {
	var inputs []ItemCreateDTO
	if err := c.BodyParser(&inputs); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	for i := range inputs {
		if err := middlewares.ValidateStruct(&inputs[i]); err != nil {
			return fmt.Errorf("item at index %d: %w", i, err)
		}
		utils.NormalizeDTO(&inputs[i])
	}

	var created []models.Item
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for _, in := range inputs {
			item := models.Item{
				Description: in.Description,
				Category:    models.ItemCategory(in.Category),
				Units:       in.Units,
				UnitPrice:   in.UnitPrice,
				IsParent:    in.IsParent,
				ParentNo:    in.ParentNo,
				Active:      true,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			created = append(created, item)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// GET /api/items
func GetItems(c *fiber.Ctx) error {
	var items []models.Item
	q := database.DB.Where("active = ?", true)
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Order("description ASC").Find(&items).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"items": items, "message": "success"})
}

// GET /api/item/:id
func GetItem(c *fiber.Ctx) error {
	var item models.Item
	if err := database.DB.First(&item, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "item not found")
		}
		return err
	}
	return c.JSON(item)
}

// PUT /api/item/:id
// Price edits do not cascade into documents that already reference this item;
// document lines keep their own copy.
func UpdateItem(c *fiber.Ctx) error {
	var in ItemUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	res := database.DB.Model(&models.Item{}).Where("id = ?", c.Params("id")).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "item not found")
	}

	var item models.Item
	if err := database.DB.First(&item, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	return c.JSON(item)
}

// DELETE /api/item/:id (soft: flips active off so existing documents keep
// their references)
func DeleteItem(c *fiber.Ctx) error {
	res := database.DB.Model(&models.Item{}).Where("id = ?", c.Params("id")).Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "item not found")
	}
	return c.JSON(fiber.Map{"message": "item deactivated"})
}

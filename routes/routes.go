package routes

import (
	"github.com/gofiber/fiber/v2"

	"buildflow-backend/controllers"
	"buildflow-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Idempotency guard for mutating requests
	api.Use(middlewares.Idempotency())

	// Clients
	api.Post("/client", controllers.CreateClient)
	api.Get("/clients", controllers.GetClients)
	api.Get("/client/:id", controllers.GetClient)
	api.Put("/client/:id", controllers.UpdateClient)
	api.Delete("/client/:id", controllers.DeleteClient)
	api.Get("/client/:id/statement", controllers.GetClientStatement)
	api.Get("/client/:id/statement/export", controllers.ExportClientStatement)

	// Catalog items
	api.Post("/item", controllers.CreateItems) // batch create
	api.Get("/items", controllers.GetItems)
	api.Get("/item/:id", controllers.GetItem)
	api.Put("/item/:id", controllers.UpdateItem)
	api.Delete("/item/:id", controllers.DeleteItem)

	// Quotations
	api.Post("/quotation", controllers.CreateQuotation)
	api.Get("/quotations", controllers.GetQuotations)
	api.Get("/quotation/:id", controllers.GetQuotation)
	api.Put("/quotation/:id", controllers.UpdateQuotation)
	api.Delete("/quotation/:id", controllers.DeleteQuotation)
	api.Put("/quotation/:id/approve", controllers.ApproveQuotation)
	api.Put("/quotation/:id/reject", controllers.RejectQuotation)
	api.Post("/quotation/:id/convert", controllers.ConvertQuotation) // -> LPO

	// LPOs
	api.Post("/lpo", controllers.CreateLPO)
	api.Get("/lpos", controllers.GetLPOs)
	api.Get("/lpo/:id", controllers.GetLPO)
	api.Put("/lpo/:id", controllers.UpdateLPO)
	api.Delete("/lpo/:id", controllers.DeleteLPO)
	api.Put("/lpo/:id/status", controllers.SetLPOStatus)              // administrative override
	api.Post("/lpo/:id/delivery-note", controllers.CreateDeliveryNote) // -> DeliveryNote
	api.Post("/lpo/:id/invoice", controllers.CreateInvoice)            // -> Invoice

	// Delivery notes
	api.Get("/delivery-notes", controllers.GetDeliveryNotes)
	api.Get("/delivery-note/:id", controllers.GetDeliveryNote)
	api.Put("/delivery-note/:id", controllers.UpdateDeliveryNote)
	api.Delete("/delivery-note/:id", controllers.DeleteDeliveryNote)
	api.Put("/delivery-note/:id/dispatch", controllers.DispatchDeliveryNote)
	api.Put("/delivery-note/:id/deliver", controllers.MarkDeliveryNoteDelivered)
	api.Put("/delivery-note/:id/cancel", controllers.CancelDeliveryNote)

	// Invoices
	api.Get("/invoices", controllers.GetInvoices)
	api.Get("/invoice/:id", controllers.GetInvoice)
	api.Delete("/invoice/:id", controllers.DeleteInvoice)

	// Payments
	api.Post("/invoice/:id/payments", controllers.RecordPayment)
	api.Get("/invoice/:id/payments", controllers.ListPayments)
	api.Put("/payment/:id", controllers.UpdatePayment)
	api.Delete("/payment/:id", controllers.DeletePayment)
}

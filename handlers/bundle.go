// File: bookingflow/handlers/bundle.go
package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all widget endpoint handlers into one struct.
type HandlerBundle struct {
	// Session endpoints
	OpenSession  gin.HandlerFunc
	GetSession   gin.HandlerFunc
	CloseSession gin.HandlerFunc
	ChooseOption gin.HandlerFunc
	UpdateForm   gin.HandlerFunc
	NextStep     gin.HandlerFunc
	PreviousStep gin.HandlerFunc
	LoadSlots    gin.HandlerFunc
	Submit       gin.HandlerFunc

	// Cancellation endpoints
	LookupBooking gin.HandlerFunc
	CancelBooking gin.HandlerFunc

	// Theme endpoints
	GetClientTheme gin.HandlerFunc

	Health gin.HandlerFunc
}

// NewHandlerBundle assembles the bundle from its handlers.
func NewHandlerBundle(sh *SessionHandler, ch *CancellationHandler, th *ThemeHandler) *HandlerBundle {
	return &HandlerBundle{
		OpenSession:    sh.OpenSession,
		GetSession:     sh.GetSession,
		CloseSession:   sh.CloseSession,
		ChooseOption:   sh.ChooseOption,
		UpdateForm:     sh.UpdateForm,
		NextStep:       sh.Next,
		PreviousStep:   sh.Back,
		LoadSlots:      sh.LoadSlots,
		Submit:         sh.Submit,
		LookupBooking:  ch.LookupBooking,
		CancelBooking:  ch.CancelBooking,
		GetClientTheme: th.GetClientTheme,
		Health:         HealthHandler,
	}
}

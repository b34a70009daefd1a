package main

import (
	"rehearsal-room-api/core/logger"
	"rehearsal-room-api/core/server"
)

// @title Rehearsal Room Reservation API
// @version 1.0
// @description Shared rehearsal room booking: slot availability, PIN-protected reservations and cancellations over a shared file ledger.

// @host localhost:7070
// @BasePath /api/v1

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", "error", err)
	}
}

package app

import (
	"log/slog"
	"os"

	"github.com/mrasouli/otpreg/internal/registration"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.registration.enabled") {
		if err := registration.New(registration.Dependency{
			Ctx:        a.ctx,
			Goroutine:  a.goroutine,
			DBConn:     a.dbConn,
			Router:     a.router,
			Messaging:  a.messaging,
			SMSGateway: a.smsGateway,
			Limiter:    a.limiter,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			UUID:       a.uuid,
			Token:      a.token,
			Codes:      a.codes,
			Bcrypt:     a.bcrypt,
			Clock:      a.clock,
			Validator:  a.validator,
			JWT:        a.jwt,
		}); err != nil {
			slog.Error("failed to init module registration", "error", err)
			os.Exit(1)
		}
	}
}

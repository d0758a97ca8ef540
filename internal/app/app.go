package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mrasouli/otpreg/internal/pkg/clock"
	"github.com/mrasouli/otpreg/internal/pkg/config"
	"github.com/mrasouli/otpreg/internal/pkg/goroutine"
	"github.com/mrasouli/otpreg/internal/pkg/hash"
	"github.com/mrasouli/otpreg/internal/pkg/instrument"
	"github.com/mrasouli/otpreg/internal/pkg/jwt"
	"github.com/mrasouli/otpreg/internal/pkg/messaging"
	"github.com/mrasouli/otpreg/internal/pkg/otpcode"
	"github.com/mrasouli/otpreg/internal/pkg/router"
	"github.com/mrasouli/otpreg/internal/pkg/smsgateway"
	"github.com/mrasouli/otpreg/internal/pkg/throttle"
	"github.com/mrasouli/otpreg/internal/pkg/uid"
	"github.com/mrasouli/otpreg/internal/pkg/validator"
	"github.com/redis/go-redis/v9"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	bcrypt    hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	token     uid.StringID
	codes     otpcode.Generator
	jwt       jwt.JWT

	// resources
	dbConn     *pgxpool.Pool
	cacheConn  *redis.Client
	limiter    throttle.Limiter
	messaging  messaging.Messaging
	smsGateway smsgateway.Gateway

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMessaging()
	app.initSMSGateway()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}

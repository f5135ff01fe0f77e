package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	prepx "github.com/salesloop/prepagent/agent/agents/prep"
	dispatchx "github.com/salesloop/prepagent/agent/dispatch"
	integrationx "github.com/salesloop/prepagent/agent/integration"
	storex "github.com/salesloop/prepagent/agent/store"
	toolx "github.com/salesloop/prepagent/agent/tool"
	calendarx "github.com/salesloop/prepagent/pkg/calendarapi"
	configx "github.com/salesloop/prepagent/pkg/config"
	crmx "github.com/salesloop/prepagent/pkg/crmapi"
	_ "github.com/salesloop/prepagent/pkg/logger/autoload"
	serverx "github.com/salesloop/prepagent/server"
)

type AppConfig struct {
	ServiceToken string `envconfig:"SERVICE_TOKEN" required:"true"`
	WindowHours  int    `envconfig:"PREP_WINDOW_HOURS" default:"24"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("")

	storeCfg := configx.MustNew[storex.Config]("POSTGRES")
	st, err := storex.NewPostgresStore(*storeCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init store")
	}
	defer st.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := st.Ping(pingCtx); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("store is unreachable")
	}
	cancel()

	calendarCfg := configx.MustNew[calendarx.Config]("CALENDAR_API")
	calendar := calendarx.MustNew(*calendarCfg)

	crmCfg := configx.MustNew[crmx.Config]("CRM_API")
	crm := crmx.MustNew(*crmCfg)

	registry, err := toolx.NewRegistry(toolx.Builtins()...)
	if err != nil {
		log.Fatal().Err(err).Msg("build tool registry")
	}

	gate := dispatchx.NewAuthGate(appCfg.ServiceToken)
	builder := dispatchx.NewContextBuilder(st, calendar, crm)

	dispatcher, err := dispatchx.New(registry, gate, builder)
	if err != nil {
		log.Fatal().Err(err).Msg("build dispatcher")
	}

	orch, err := prepx.New(dispatcher, integrationx.NewChecker(st), prepx.Config{
		WindowHours: appCfg.WindowHours,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build orchestrator")
	}

	serverCfg := configx.MustNew[serverx.Config]("SERVER")
	srv, err := serverx.New(dispatcher, registry, gate, orch, *serverCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("build server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Str("addr", serverCfg.Addr).Msg("prepagent listening")
	if err := srv.Start(ctx, serverCfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

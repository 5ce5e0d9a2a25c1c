package main

import (
	"context"
	"fmt"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/trials-agent/agent"
	"github.com/SaiNageswarS/trials-agent/appconfig"
	"github.com/SaiNageswarS/trials-agent/llm"
	"github.com/SaiNageswarS/trials-agent/memory"
	"github.com/SaiNageswarS/trials-agent/session"
	"github.com/SaiNageswarS/trials-agent/trials"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

// buildAgent wires models, registry client and session store from config.
// The returned func releases the session store.
func buildAgent(ctx context.Context, cfg *appconfig.AppConfig) (*agent.Agent, func(), error) {
	mini, err := llm.NewClient(cfg.LLMProvider, cfg.MiniModel)
	if err != nil {
		return nil, nil, fmt.Errorf("mini model: %w", err)
	}
	big, err := llm.NewClient(cfg.LLMProvider, cfg.BigModel)
	if err != nil {
		return nil, nil, fmt.Errorf("big model: %w", err)
	}

	registry := trials.NewClient(
		trials.WithBaseURL(cfg.RegistryURL),
		trials.WithPageSize(cfg.RegistryPageSize),
		trials.WithTimeout(cfg.RegistryTimeout()),
	)

	store, closeStore, err := openSessionStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	a := agent.NewAgentBuilder().
		WithMiniModel(mini).
		WithBigModel(big).
		WithEvidenceProvider(registry).
		WithConversationManager(memory.NewConversationManager(store, cfg.MaxSessionMessages)).
		Build()

	logger.Info("Agent ready",
		zap.String("provider", cfg.LLMProvider),
		zap.String("miniModel", mini.GetModel()),
		zap.String("bigModel", big.GetModel()),
		zap.String("sessionStore", cfg.SessionStore))

	return a, closeStore, nil
}

func openSessionStore(ctx context.Context, cfg *appconfig.AppConfig) (memory.Store, func(), error) {
	switch cfg.SessionStore {
	case appconfig.StoreMemory:
		return memory.NewInMemoryStore(), func() {}, nil

	case appconfig.StoreMongo:
		if cfg.MongoURI == "" {
			return nil, nil, fmt.Errorf("mongo session store requires MONGO-URI")
		}
		client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		closer := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Error("Failed to disconnect mongo", zap.Error(err))
			}
		}
		return session.NewMongoStore(odm.CollectionOf[session.SessionModel](client, cfg.MongoDatabase)), closer, nil

	case appconfig.StorePostgres, appconfig.StoreSQLite:
		store, err := session.OpenSQLStore(ctx, cfg.SessionStore, cfg.SessionDSN)
		if err != nil {
			return nil, nil, err
		}
		closer := func() {
			if err := store.Close(); err != nil {
				logger.Error("Failed to close session store", zap.Error(err))
			}
		}
		return store, closer, nil
	}

	return nil, nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
}

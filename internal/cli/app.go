package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sandeepkv93/taskbeat/internal/config"
	"github.com/sandeepkv93/taskbeat/internal/model"
	"github.com/sandeepkv93/taskbeat/internal/storage"
	"github.com/sandeepkv93/taskbeat/internal/tasks"
)

// app bundles the opened store and the service built on it. Every command
// opens its own handle and closes it on exit; nothing is global.
type app struct {
	cfg  config.Config
	repo *storage.SQLiteRepository
	svc  *tasks.Service
}

func openApp() (*app, error) {
	basePath := config.ResolveBasePath()
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, err
	}
	repo, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, repo: repo, svc: tasks.NewService(repo)}, nil
}

func (a *app) Close() {
	_ = a.repo.Close()
}

// resolveTask finds a single task whose id starts with the given prefix.
func (a *app) resolveTask(ctx context.Context, prefix string) (model.Task, error) {
	all, err := a.svc.All(ctx)
	if err != nil {
		return model.Task{}, err
	}
	var matches []model.Task
	for _, task := range all {
		if strings.HasPrefix(task.ID, prefix) {
			matches = append(matches, task)
		}
	}
	switch len(matches) {
	case 0:
		return model.Task{}, fmt.Errorf("no task matches id %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return model.Task{}, fmt.Errorf("id %q is ambiguous (%d matches)", prefix, len(matches))
	}
}

package graph

import (
	"context"

	"github.com/c360/memberhub/service"
	"github.com/c360/memberhub/store"
)

type contextKey int

const (
	storeKey contextKey = iota
	serviceKey
	loadersKey
)

// WithStore attaches the store handle to the context
func WithStore(ctx context.Context, st *store.Store) context.Context {
	return context.WithValue(ctx, storeKey, st)
}

// WithService attaches the service handle to the context
func WithService(ctx context.Context, svc *service.Service) context.Context {
	return context.WithValue(ctx, serviceKey, svc)
}

// WithLoaders attaches a per-request Loaders set to the context
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

func storeFrom(ctx context.Context) *store.Store {
	st, _ := ctx.Value(storeKey).(*store.Store)
	return st
}

func serviceFrom(ctx context.Context) *service.Service {
	svc, _ := ctx.Value(serviceKey).(*service.Service)
	return svc
}

func loadersFrom(ctx context.Context) *Loaders {
	l, _ := ctx.Value(loadersKey).(*Loaders)
	return l
}

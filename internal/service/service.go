package service

import (
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/config"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/operator"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/queries"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Loader   *LoaderService
	Pipeline *PipelineService
	Query    *QueryService
}

// NewService wires the services over one store. Writes go through delegator.
func NewService(env *config.Config, store *storage.Storage, delegator *operator.OperatorDelegator, resolver queries.Resolver) *Service {
	loader := NewLoaderService(env, store, delegator)
	return &Service{
		Loader:   loader,
		Pipeline: NewPipelineService(loader),
		Query:    NewQueryService(store, resolver),
	}
}

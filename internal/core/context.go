package core

import (
	"context"

	"golang.org/x/sync/errgroup"

	"landuse_service/internal/domain/model"
)

// ContextAggregator запускает конвейер над проектной границей и над её
// контекстом — той же границей, расширенной буфером. Оба прогона идут
// параллельно и не зависят друг от друга: ошибка одного отменяет второй
// через общий контекст.
type ContextAggregator struct {
	pipeline *Pipeline
	bufferM  float64
}

func NewContextAggregator(pipeline *Pipeline, bufferM float64) ContextAggregator {
	return ContextAggregator{pipeline: pipeline, bufferM: bufferM}
}

// Run возвращает пару результатов: проектный scope и контекстный.
func (a ContextAggregator) Run(
	ctx context.Context,
	scope model.Scope,
	zones []model.LandUseZone,
	services []model.ServicePoint,
) (*ScoreBundle, *ScoreBundle, error) {
	contextScope := model.Scope{
		ID:       scope.ID,
		Kind:     model.ScopeContext,
		Geometry: scope.Geometry,
	}

	var project, buffered *ScoreBundle
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		project, err = a.pipeline.Scores(gctx, scope, 0, zones, services)
		return err
	})
	g.Go(func() error {
		var err error
		buffered, err = a.pipeline.Scores(gctx, contextScope, a.bufferM, zones, services)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return project, buffered, nil
}

package responder

import (
	"context"
	"fmt"

	"github.com/ArYaNDaNy/ingres-proto-model/internal/agent/extract"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/dataset"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/llm"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/logging"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/tabular"
)

// Visualization produces a chart-ready structured payload. Its only
// model call is parameter extraction; the payload itself comes from the
// deterministic filter engine.
type Visualization struct {
	table     *dataset.Table
	extractor *extract.Extractor
	logger    *logging.Logger
}

// NewVisualization creates the visualization responder.
func NewVisualization(provider llm.Provider, table *dataset.Table) *Visualization {
	return &Visualization{
		table:     table,
		extractor: extract.New(provider),
		logger:    logging.GetLogger("responder.visualization"),
	}
}

// Name implements Responder.
func (v *Visualization) Name() Key { return KeyVisualization }

// Requires implements Responder. The filter chain reads only the
// dataset, not prior results.
func (v *Visualization) Requires() []Key { return nil }

// Respond implements Responder. Panics from the data step are converted
// into a structured error payload so the coordinator never sees a fault.
func (v *Visualization) Respond(ctx context.Context, req Request, _ *Context) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			v.logger.Error("visualization data step panicked: %v", r)
			res = Result{Table: &tabular.Result{
				Success: false,
				Query:   req.Query,
				Error:   fmt.Sprint(r),
				Data:    []map[string]interface{}{},
			}}
		}
	}()

	spec := v.extractor.Extract(ctx, v.table, req.Query)
	result := tabular.Apply(v.table, spec, req.Query)

	v.logger.DebugWithFields("visualization payload built",
		logging.Field("success", result.Success),
		logging.Field("records", result.Metadata.TotalRecords),
	)
	return Result{Table: &result}
}

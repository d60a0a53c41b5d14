package client

import (
	"context"
	"encoding/json"
)

// procedure is one row of the remote surface: how many positional arguments
// the call takes and how its result array unwraps.
type procedure struct {
	arity       int
	passthrough bool // return the whole result array instead of its first element
}

// The complete remote surface of fbaModelServices. Adding a procedure is one
// row here plus a wrapper method below; nothing else changes.
var procedures = map[string]procedure{
	"get_models":            {arity: 1},
	"get_fbas":              {arity: 1},
	"get_gapfills":          {arity: 1},
	"get_gapgens":           {arity: 1},
	"get_reactions":         {arity: 1},
	"get_compounds":         {arity: 1},
	"get_media":             {arity: 1},
	"get_biochemistry":      {arity: 1},
	"genome_to_workspace":   {arity: 1},
	"genome_to_fbamodel":    {arity: 1},
	"export_fbamodel":       {arity: 1},
	"runfba":                {arity: 1},
	"checkfba":              {arity: 1},
	"export_fba":            {arity: 1},
	"gapfill_model":         {arity: 2},
	"gapfill_check_results": {arity: 1},
	"gapfill_to_html":       {arity: 1},
	"gapfill_integrate":     {arity: 2, passthrough: true},
	"gapgen_model":          {arity: 2},
	"gapgen_check_results":  {arity: 1},
	"gapgen_to_html":        {arity: 1},
	"gapgen_integrate":      {arity: 2, passthrough: true},
}

// The wrappers below are the public surface: one per remote procedure, each a
// one-line binding over Invoke. Argument and result payloads are opaque to
// this layer — the service defines their shape, the client just carries them.
// A nil result with a nil error means the call returned no result.

// Object retrieval.

func (c *Client) GetModels(ctx context.Context, input any) (json.RawMessage, error) {
	return c.Invoke(ctx, "get_models", input)
}

func (c *Client) GetFBAs(ctx context.Context, input any) (json.RawMessage, error) {
	return c.Invoke(ctx, "get_fbas", input)
}

func (c *Client) GetGapfills(ctx context.Context, input any) (json.RawMessage, error) {
	return c.Invoke(ctx, "get_gapfills", input)
}

func (c *Client) GetGapgens(ctx context.Context, input any) (json.RawMessage, error) {
	return c.Invoke(ctx, "get_gapgens", input)
}

func (c *Client) GetReactions(ctx context.Context, input any) (json.RawMessage, error) {
	return c.Invoke(ctx, "get_reactions", input)
}

func (c *Client) GetCompounds(ctx context.Context, input any) (json.RawMessage, error) {
	return c.Invoke(ctx, "get_compounds", input)
}

func (c *Client) GetMedia(ctx context.Context, input any) (json.RawMessage, error) {
	return c.Invoke(ctx, "get_media", input)
}

func (c *Client) GetBiochemistry(ctx context.Context, input any) (json.RawMessage, error) {
	return c.Invoke(ctx, "get_biochemistry", input)
}

// Genome import and model construction.

func (c *Client) GenomeToWorkspace(ctx context.Context, input any) (json.RawMessage, error) {
	return c.Invoke(ctx, "genome_to_workspace", input)
}

func (c *Client) GenomeToFBAModel(ctx context.Context, input any) (json.RawMessage, error) {
	return c.Invoke(ctx, "genome_to_fbamodel", input)
}

func (c *Client) ExportFBAModel(ctx context.Context, input any) (json.RawMessage, error) {
	return c.Invoke(ctx, "export_fbamodel", input)
}

// Flux balance analysis.

func (c *Client) RunFBA(ctx context.Context, input any) (json.RawMessage, error) {
	return c.Invoke(ctx, "runfba", input)
}

func (c *Client) CheckFBA(ctx context.Context, input any) (json.RawMessage, error) {
	return c.Invoke(ctx, "checkfba", input)
}

func (c *Client) ExportFBA(ctx context.Context, input any) (json.RawMessage, error) {
	return c.Invoke(ctx, "export_fba", input)
}

// Gap filling.

func (c *Client) GapfillModel(ctx context.Context, model, formulation any) (json.RawMessage, error) {
	return c.Invoke(ctx, "gapfill_model", model, formulation)
}

func (c *Client) GapfillCheckResults(ctx context.Context, gapfill any) (json.RawMessage, error) {
	return c.Invoke(ctx, "gapfill_check_results", gapfill)
}

func (c *Client) GapfillToHTML(ctx context.Context, gapfill any) (json.RawMessage, error) {
	return c.Invoke(ctx, "gapfill_to_html", gapfill)
}

// GapfillIntegrate returns the full result sequence, not just its first
// element.
func (c *Client) GapfillIntegrate(ctx context.Context, gapfill, model any) ([]json.RawMessage, error) {
	return c.invokeList(ctx, "gapfill_integrate", gapfill, model)
}

// Gap generation.

func (c *Client) GapgenModel(ctx context.Context, model, formulation any) (json.RawMessage, error) {
	return c.Invoke(ctx, "gapgen_model", model, formulation)
}

func (c *Client) GapgenCheckResults(ctx context.Context, gapgen any) (json.RawMessage, error) {
	return c.Invoke(ctx, "gapgen_check_results", gapgen)
}

func (c *Client) GapgenToHTML(ctx context.Context, gapgen any) (json.RawMessage, error) {
	return c.Invoke(ctx, "gapgen_to_html", gapgen)
}

// GapgenIntegrate returns the full result sequence, not just its first
// element.
func (c *Client) GapgenIntegrate(ctx context.Context, gapgen, model any) ([]json.RawMessage, error) {
	return c.invokeList(ctx, "gapgen_integrate", gapgen, model)
}

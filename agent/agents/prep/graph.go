package prep

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	prepnode "github.com/salesloop/prepagent/agent/nodes/prep"
)

func (o *Orchestrator) compilePrepBriefGraph(
	ctx context.Context,
) (compose.Runnable[prepnode.GraphInput, prepnode.GraphOutput], error) {
	graph := compose.NewGraph[prepnode.GraphInput, prepnode.GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in prepnode.GraphInput) (*prepnode.GraphState, error) {
			return prepnode.ValidateRequest(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("check_integrations",
		compose.InvokableLambda(func(ctx context.Context, in *prepnode.GraphState) (*prepnode.GraphState, error) {
			return prepnode.CheckIntegrations(ctx, in, o.checker)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node check_integrations: %w", err)
	}

	if err := graph.AddLambdaNode("fetch_events",
		compose.InvokableLambda(func(ctx context.Context, in *prepnode.GraphState) (*prepnode.GraphState, error) {
			return prepnode.FetchEvents(ctx, in, o.invoker)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node fetch_events: %w", err)
	}

	if err := graph.AddLambdaNode("select_event",
		compose.InvokableLambda(func(ctx context.Context, in *prepnode.GraphState) (*prepnode.GraphState, error) {
			return prepnode.SelectEvent(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node select_event: %w", err)
	}

	if err := graph.AddLambdaNode("resolve_accounts",
		compose.InvokableLambda(func(ctx context.Context, in *prepnode.GraphState) (*prepnode.GraphState, error) {
			return prepnode.ResolveAccounts(ctx, in, o.invoker)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node resolve_accounts: %w", err)
	}

	if err := graph.AddLambdaNode("assemble_brief",
		compose.InvokableLambda(func(ctx context.Context, in *prepnode.GraphState) (prepnode.GraphOutput, error) {
			return prepnode.AssembleBrief(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node assemble_brief: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "check_integrations"},
		{"check_integrations", "fetch_events"},
		{"fetch_events", "select_event"},
		{"select_event", "resolve_accounts"},
		{"resolve_accounts", "assemble_brief"},
		{"assemble_brief", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("prep.brief"))
	if err != nil {
		return nil, fmt.Errorf("compile prep brief graph: %w", err)
	}
	return runner, nil
}

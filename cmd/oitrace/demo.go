package main

import (
	"context"
	"encoding/json"

	"github.com/xoplog/oitrace/oiconst"
	"github.com/xoplog/oitrace/oiotel"
	"github.com/xoplog/oitrace/oisetup"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type demoFlags struct {
	endpoint   string
	project    string
	configPath string
	mode       oiotel.DeliveryMode
}

func newDemoCommand(root *rootFlags) *cobra.Command {
	flags := &demoFlags{}
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Send a small agent trace to Phoenix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(root.logger)
			if err != nil {
				return err
			}
			return demo(cmd.Context(), flags.endpoint, flags.project, opts...)
		},
	}
	cmd.Flags().StringVar(&flags.endpoint, "endpoint", "", "collector URL, for example http://localhost:6006/v1/traces")
	cmd.Flags().StringVar(&flags.project, "project", "", "Phoenix project name (default agentscope)")
	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "YAML config file")
	cmd.Flags().Var(&flags.mode, "mode", "delivery mode: immediate or buffered")
	return cmd
}

func (f *demoFlags) options(logger *zap.Logger) ([]oisetup.Option, error) {
	var opts []oisetup.Option
	if logger != nil {
		opts = append(opts, oisetup.WithLogger(logger))
	}
	if f.configPath != "" {
		config, err := oisetup.LoadConfig(f.configPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, oisetup.WithConfig(config))
	}
	if f.mode != "" {
		mode := f.mode
		opts = append(opts, oisetup.WithConfigChanges(func(c *oisetup.Config) {
			c.Mode = mode
		}))
	}
	return opts, nil
}

// demo installs a Phoenix pipeline, records one agent turn, then flushes and
// shuts the pipeline down.
func demo(ctx context.Context, endpoint string, project string, opts ...oisetup.Option) error {
	tracerProvider, err := oisetup.SetupPhoenix(ctx, endpoint, project, opts...)
	if err != nil {
		return err
	}
	emitAgentTurn(ctx, uuid.NewString())
	if err := tracerProvider.ForceFlush(ctx); err != nil {
		_ = tracerProvider.Shutdown(ctx)
		return errors.Wrap(err, "flush")
	}
	return errors.Wrap(tracerProvider.Shutdown(ctx), "shutdown")
}

func emitAgentTurn(ctx context.Context, conversationID string) {
	tracer := oisetup.Tracer()
	ctx, agent := tracer.Start(ctx, "invoke_agent planner")
	agent.SetAttributes(
		oiconst.GenAIOperationName.String(oiconst.OperationInvokeAgent),
		oiconst.GenAIAgentName.String("planner"),
		oiconst.GenAIConversationID.String(conversationID),
		oiconst.FunctionInput.String(jsonString(map[string]any{"query": "weather in Paris"})),
	)

	_, chat := tracer.Start(ctx, "chat gpt-4o")
	chat.SetAttributes(
		oiconst.GenAIOperationName.String(oiconst.OperationChat),
		oiconst.GenAIRequestModel.String("gpt-4o"),
		oiconst.GenAIProviderName.String("openai"),
		oiconst.GenAIConversationID.String(conversationID),
		oiconst.GenAIInputTokens.Int(120),
		oiconst.GenAIOutputTokens.Int(32),
	)
	chat.End()

	_, tool := tracer.Start(ctx, "execute_tool get_weather")
	tool.SetAttributes(
		oiconst.GenAIOperationName.String(oiconst.OperationExecuteTool),
		oiconst.GenAIToolName.String("get_weather"),
		oiconst.FunctionInput.String(jsonString(map[string]any{"city": "Paris"})),
		oiconst.FunctionOutput.String(jsonString(map[string]any{"forecast": "sunny", "celsius": 21})),
	)
	tool.End()

	agent.SetAttributes(oiconst.FunctionOutput.String("It is sunny in Paris."))
	agent.End()
}

func jsonString(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

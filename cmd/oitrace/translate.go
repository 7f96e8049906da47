package main

import (
	"context"
	"io"
	"os"

	"github.com/xoplog/oitrace/oiotel"
	"github.com/xoplog/oitrace/oiotel/oioteltest"
	"github.com/xoplog/oitrace/oisetup"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type translateFlags struct {
	pretty   bool
	endpoint string
	project  string
	protocol string
}

func newTranslateCommand(root *rootFlags) *cobra.Command {
	flags := &translateFlags{}
	cmd := &cobra.Command{
		Use:   "translate [file]",
		Short: "Translate spans dumped by the stdouttrace exporter",
		Long: `Reads JSON spans as written by the OpenTelemetry stdouttrace exporter, from
file or standard input, and writes them back out with OpenInference attributes
added. With --endpoint the spans are sent over OTLP instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return errors.Wrap(err, "open spans")
				}
				defer f.Close()
				in = f
			}
			sink, err := flags.sink(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return translate(cmd.Context(), in, sink, root.logger)
		},
	}
	cmd.Flags().BoolVar(&flags.pretty, "pretty", false, "indent the JSON output")
	cmd.Flags().StringVar(&flags.endpoint, "endpoint", "", "send to this OTLP endpoint instead of writing JSON")
	cmd.Flags().StringVar(&flags.project, "project", "", "Phoenix project name header (with --endpoint)")
	cmd.Flags().StringVar(&flags.protocol, "protocol", string(oisetup.ProtocolHTTP), "OTLP protocol: http/protobuf or grpc")
	return cmd
}

func (f *translateFlags) sink(ctx context.Context, out io.Writer) (sdktrace.SpanExporter, error) {
	if f.endpoint == "" {
		opts := []stdouttrace.Option{stdouttrace.WithWriter(out)}
		if f.pretty {
			opts = append(opts, stdouttrace.WithPrettyPrint())
		}
		exporter, err := stdouttrace.New(opts...)
		if err != nil {
			return nil, errors.Wrap(err, "create stdout exporter")
		}
		return exporter, nil
	}
	config := oisetup.DefaultConfig()
	config.Endpoint = f.endpoint
	config.ProjectName = f.project
	config.Protocol = oisetup.Protocol(f.protocol)
	return oisetup.NewSink(ctx, config)
}

// translate decodes every span from in and exports them, translated, as one
// batch.
func translate(ctx context.Context, in io.Reader, sink sdktrace.SpanExporter, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.L()
	}
	stubs, err := oioteltest.Decode(in)
	if err != nil {
		return err
	}
	exporter := oiotel.NewExporter(sink, oiotel.WithLogger(logger))
	defer func() {
		if err := exporter.Shutdown(ctx); err != nil {
			logger.Warn("shutdown exporter", zap.Error(err))
		}
	}()
	if len(stubs) == 0 {
		logger.Info("no spans to translate")
		return nil
	}
	if err := exporter.ExportSpans(ctx, stubs.Snapshots()); err != nil {
		return errors.Wrap(err, "export spans")
	}
	logger.Debug("translated spans", zap.Int("count", len(stubs)))
	return nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/omeyang/xrid/pkg/context/xrid"
	"github.com/omeyang/xrid/pkg/lifecycle/xrun"
	"github.com/omeyang/xrid/pkg/observability/xlog"
	"github.com/omeyang/xrid/pkg/observability/xmetrics"
	"github.com/omeyang/xrid/pkg/observability/xrotate"
	"github.com/omeyang/xrid/pkg/util/xproc"
)

func createDemoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "在同一个根作用域下并发运行 worker，演示日志中的 runtime_id",
		Flags: append([]cli.Flag{
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Value: 3, Usage: "worker 数量"},
			&cli.StringFlag{Name: "log-format", Value: "text", Usage: "日志格式 (text/json)"},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "日志级别 (debug/info/warn/error)"},
			&cli.StringFlag{Name: "log-file", Usage: "写入按大小轮转的日志文件而非标准输出"},
			&cli.IntFlag{Name: "log-max-size", Value: xrotate.DefaultMaxSizeMB, Usage: "单个日志文件最大 MB"},
			&cli.BoolFlag{Name: "metrics", Usage: "结束后打印作用域计数"},
		}, guardFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cmdDemo(ctx, cmd, cmd.Root().Writer)
		},
	}
}

func cmdDemo(ctx context.Context, cmd *cli.Command, w io.Writer) (err error) {
	workers := cmd.Int("workers")
	if workers <= 0 {
		return &usageError{msg: fmt.Sprintf("--workers 必须大于 0: %d", workers)}
	}

	builder := xlog.New().
		SetOutput(w).
		SetFormat(cmd.String("log-format")).
		SetLevelString(cmd.String("log-level"))
	if file := cmd.String("log-file"); file != "" {
		builder = builder.SetRotation(file, xrotate.WithMaxSize(cmd.Int("log-max-size")))
	}
	logger, cleanup, err := builder.Build()
	if err != nil {
		return &usageError{msg: "日志配置无效", err: err}
	}
	defer func() {
		if cerr := cleanup(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()
	observer, err := xmetrics.NewOTelObserver(xmetrics.WithMeterProvider(provider))
	if err != nil {
		return err
	}

	guard, err := newGuard(cmd,
		xrid.WithName("demo"),
		xrid.WithLogger(logger.Slog()),
		xrid.WithObserver(observer),
	)
	if err != nil {
		return err
	}

	err = guard.Run(ctx, func(ctx context.Context) error {
		logger.Info(ctx, "demo started",
			slog.String("process", xproc.ProcessName()),
			xlog.Count(int64(workers)),
		)

		g, _ := xrun.NewGroup(ctx,
			xrun.WithName("demo"),
			xrun.WithGuard(guard),
			xrun.WithLogger(logger.Slog()),
		)
		for i := range workers {
			g.GoWithName(fmt.Sprintf("worker-%d", i), func(ctx context.Context) error {
				return runWorker(ctx, guard, logger, i)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		logger.Info(ctx, "demo finished")
		return nil
	})
	if err != nil {
		return err
	}

	if cmd.Bool("metrics") {
		return printMetrics(ctx, reader, w)
	}
	return nil
}

// runWorker 在 worker 自己的作用域内记录日志，并在更深一层异步执行一个步骤。
func runWorker(ctx context.Context, guard *xrid.Guard, logger xlog.Logger, n int) error {
	log := logger.With(xlog.Worker(n))
	log.Info(ctx, "worker running")

	step := xrid.Go(ctx, guard, func(ctx context.Context) (string, error) {
		log.Debug(ctx, "worker step", xlog.Operation("step"))
		return xrid.ID(ctx), nil
	})
	id, err := step.Wait(ctx)
	if err != nil {
		log.Warn(ctx, "worker step failed", xlog.Err(err))
		return err
	}
	log.Info(ctx, "worker done", slog.String("step_id", id))
	return nil
}

// printMetrics 以 "名称 值" 的形式输出每个计数器的累计值。
func printMetrics(ctx context.Context, reader *sdkmetric.ManualReader, w io.Writer) error {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return err
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			if _, err := fmt.Fprintf(w, "%s %d\n", m.Name, total); err != nil {
				return err
			}
		}
	}
	return nil
}

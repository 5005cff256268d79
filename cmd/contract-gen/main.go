// Copyright (c) 2026 Palantir Technologies. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/palantir/pkg/metrics"
	"github.com/palantir/pkg/uuid"
	"github.com/palantir/witchcraft-go-logging/wlog"
	"github.com/palantir/witchcraft-go-logging/wlog/svclog/svc1log"
	"github.com/spf13/cobra"

	"github.com/ZacSweers/kotlinpoet-contracts/codecs"
	"github.com/ZacSweers/kotlinpoet-contracts/descriptor"
	"github.com/ZacSweers/kotlinpoet-contracts/metadata"
)

// Timers are tagged with the subcommand that recorded them; counters track
// how much source each run produced.
const (
	metricRender         = "descriptor.render"
	metricValidate       = "descriptor.validate"
	metricImport         = "metadata.import"
	metricSchema         = "schema.generate"
	metricRenderedFuncs  = "render.functions"
	metricFindings       = "validate.findings"
	metricImportedBlocks = "import.contracts"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "contract-gen",
	Short: "Kotlin function contract generator",
	Long:  "contract-gen renders, validates and imports Kotlin function contract descriptors.\nGenerated source goes to stdout; the service log and validation reports go to stderr.",
}

// --- render ---

var (
	renderOut        string
	renderBlocksOnly bool
)

var renderCmd = &cobra.Command{
	Use:   "render [descriptor]",
	Short: "Render Kotlin declarations from a contract descriptor",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx, registry := runContext(cmd)
	defer logMetrics(ctx, registry)
	start := time.Now()

	file, err := descriptor.LoadFile(args[0])
	if err != nil {
		svc1log.FromContext(ctx).Error("Failed to load descriptor", svc1log.Stacktrace(err))
		return err
	}
	built, err := descriptor.Build(file)
	if err != nil {
		svc1log.FromContext(ctx).Error("Failed to build descriptor", svc1log.Stacktrace(err))
		return err
	}

	var pieces []string
	for _, fn := range built {
		if renderBlocksOnly {
			if fn.Contract == nil {
				continue
			}
			block, err := fn.Contract.Render(fn.Function)
			if err != nil {
				return err
			}
			pieces = append(pieces, block)
			continue
		}
		decl, err := fn.Declaration()
		if err != nil {
			return err
		}
		pieces = append(pieces, decl.String())
	}

	metrics.FromContext(ctx).Timer(metricRender).Update(time.Since(start))
	metrics.FromContext(ctx).Counter(metricRenderedFuncs).Inc(int64(len(pieces)))

	source := strings.Join(pieces, "\n\n")
	if source != "" {
		source += "\n"
	}
	if renderOut != "" {
		if err := os.WriteFile(renderOut, []byte(source), 0644); err != nil {
			return fmt.Errorf("write %s: %w", renderOut, err)
		}
		svc1log.FromContext(ctx).Info("Wrote generated source", svc1log.SafeParams(map[string]interface{}{
			"path":      renderOut,
			"functions": len(pieces),
		}))
		return nil
	}
	fmt.Print(source)
	return nil
}

// --- validate ---

var validateCmd = &cobra.Command{
	Use:   "validate [descriptor]",
	Short: "Validate a contract descriptor file",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx, registry := runContext(cmd)
	defer logMetrics(ctx, registry)
	start := time.Now()

	file, findings := descriptor.ValidateFile(args[0])
	metrics.FromContext(ctx).Timer(metricValidate).Update(time.Since(start))
	metrics.FromContext(ctx).Counter(metricFindings).Inc(int64(len(findings)))

	if len(findings) > 0 {
		var errors []*descriptor.ValidationError
		var warnings []*descriptor.ValidationError
		for _, f := range findings {
			if f.Severity == "warning" {
				warnings = append(warnings, f)
			} else {
				errors = append(errors, f)
			}
		}
		for _, w := range warnings {
			svc1log.FromContext(ctx).Warn(w.Message, svc1log.SafeParams(w.SafeParams()))
		}
		if len(errors) > 0 {
			fmt.Fprintf(os.Stderr, "Validation failed: %d error(s)\n\n", len(errors))
			for i, e := range errors {
				fmt.Fprintf(os.Stderr, "  %d. [%s] %s\n", i+1, e.Phase, e.Message)
				if e.Path != "" {
					fmt.Fprintf(os.Stderr, "     at: %s\n", e.Path)
				}
			}
			return fmt.Errorf("validation failed with %d error(s)", len(errors))
		}
	}
	fmt.Printf("✓ %s is valid (%d functions)\n", args[0], len(file.Functions))
	return nil
}

// --- schema ---

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the descriptor JSON Schema",
	Args:  cobra.NoArgs,
	RunE:  runSchema,
}

func runSchema(cmd *cobra.Command, args []string) error {
	ctx, registry := runContext(cmd)
	defer logMetrics(ctx, registry)
	start := time.Now()

	data, err := descriptor.JSONSchema()
	if err != nil {
		return err
	}
	metrics.FromContext(ctx).Timer(metricSchema).Update(time.Since(start))
	fmt.Println(string(data))
	return nil
}

// --- import ---

var importCmd = &cobra.Command{
	Use:   "import [metadata.json]",
	Short: "Recover contract blocks from a compiled-metadata dump",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx, registry := runContext(cmd)
	defer logMetrics(ctx, registry)
	start := time.Now()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	var file metadata.File
	if err := codecs.JSON.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse %s: %w", args[0], err)
	}

	var pieces []string
	for _, fn := range file.Functions {
		converted, err := metadata.ConvertContract(fn.Contract)
		if err != nil {
			svc1log.FromContext(ctx).Error("Failed to convert metadata contract", svc1log.Stacktrace(err),
				svc1log.SafeParams(map[string]interface{}{"functionName": fn.Name}))
			return fmt.Errorf("function %s: %w", fn.Name, err)
		}
		block, err := converted.Render(fn.Signature())
		if err != nil {
			return fmt.Errorf("function %s: %w", fn.Name, err)
		}
		header := "// " + fn.Name + "(" + strings.Join(fn.ParameterNames, ", ") + ")"
		pieces = append(pieces, header+"\n"+block)
	}

	metrics.FromContext(ctx).Timer(metricImport).Update(time.Since(start))
	metrics.FromContext(ctx).Counter(metricImportedBlocks).Inc(int64(len(pieces)))

	source := strings.Join(pieces, "\n\n")
	if source != "" {
		source += "\n"
	}
	fmt.Print(source)
	return nil
}

// runContext builds the context every command runs under: a JSON service log
// on stderr and a fresh metrics registry, opened with a logged invocation id.
func runContext(cmd *cobra.Command) (context.Context, metrics.RootRegistry) {
	wlog.SetDefaultLoggerProvider(wlog.NewJSONMarshalLoggerProvider())
	registry := metrics.NewRootMetricsRegistry()
	ctx := metrics.WithRegistry(context.Background(), registry)
	ctx = svc1log.WithLogger(ctx, svc1log.New(os.Stderr, wlog.InfoLevel))
	svc1log.FromContext(ctx).Info("contract-gen invoked", svc1log.SafeParams(map[string]interface{}{
		"invocationId": uuid.NewUUID(),
		"command":      cmd.Name(),
	}))
	return ctx, registry
}

// logMetrics flushes every metric the run recorded into the service log.
func logMetrics(ctx context.Context, registry metrics.RootRegistry) {
	registry.Each(func(name string, tags metrics.Tags, value metrics.MetricVal) {
		svc1log.FromContext(ctx).Info("Run metric", svc1log.SafeParams(map[string]interface{}{
			"metric": name,
			"values": value.Values(),
		}))
	})
}

func init() {
	renderCmd.Flags().StringVar(&renderOut, "out", "", "Write generated source to this path instead of stdout")
	renderCmd.Flags().BoolVar(&renderBlocksOnly, "blocks-only", false, "Emit bare contract blocks without their declarations")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(importCmd)
}
